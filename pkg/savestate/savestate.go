// Package savestate serializes a running NES machine to the binary layout
// described by the emulator's save-state contract: magic "CNES", a
// cartridge SHA-256 for validation, the CPU/PPU/bus-owned memories and
// register files, and a 64-byte mapper-specific blob. All multi-byte
// integers are little-endian.
package savestate

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/retrobus/nescore/pkg/nes"
	"github.com/retrobus/nescore/pkg/ppu"
)

// Magic identifies a save-state file.
const Magic = "CNES"

// mapperState is implemented by mappers with persistent register state
// worth round-tripping (MMC1, MMC3); mappers without it save a zeroed blob.
type mapperState interface {
	SaveState() [64]uint8
	LoadState([64]uint8)
}

// State is the in-memory representation of a save state, mirroring the
// on-disk layout field for field.
type State struct {
	CartSHA256 [32]uint8

	SysMem [0x800]uint8
	VRAM   [0x4000]uint8
	OAM    [256]uint8
	PRGRAM []uint8
	CHRRAM []uint8

	CPURegs    CPURegisters
	PPURegs    PPURegisters
	PPUInterns ppu.InternalRegs

	CPUCycles       int
	CPUStallCycles  int
	PPUCycle        int
	PPUScanline     int
	PPUFrame        uint64
	APUCycles       uint64
	APUFrameCounter uint8
	APUFrameStep    int
	APUFrameIRQ     bool

	MapperRegs [64]uint8
}

// CPURegisters mirrors the 6502 register file.
type CPURegisters struct {
	A, X, Y, SP uint8
	PC          uint16
	P           uint8
}

// PPURegisters mirrors the memory-mapped PPU register file.
type PPURegisters struct {
	PPUCTRL, PPUMASK, PPUSTATUS, OAMADDR, OAMDATA, PPUSCROLL, PPUADDR, PPUDATA uint8
}

// Capture snapshots a running machine into a State.
func Capture(machine *nes.NES) *State {
	s := &State{}

	if machine.Cartridge != nil {
		h := sha256.New()
		h.Write(machine.Cartridge.PRGROM)
		h.Write(machine.Cartridge.CHRROM)
		copy(s.CartSHA256[:], h.Sum(nil))
	}

	s.SysMem = machine.Memory.RAM
	s.VRAM = machine.PPU.VRAM
	s.OAM = machine.PPU.OAM
	if machine.Cartridge != nil {
		s.PRGRAM = append([]uint8(nil), machine.Cartridge.PRGRAM...)
		s.CHRRAM = append([]uint8(nil), machine.Cartridge.CHRRAM...)
	}

	s.CPURegs = CPURegisters{
		A: machine.CPU.A, X: machine.CPU.X, Y: machine.CPU.Y,
		SP: machine.CPU.SP, PC: machine.CPU.PC, P: machine.CPU.P,
	}
	s.PPURegs = PPURegisters{
		PPUCTRL: machine.PPU.PPUCTRL, PPUMASK: machine.PPU.PPUMASK,
		PPUSTATUS: machine.PPU.PPUSTATUS, OAMADDR: machine.PPU.OAMADDR,
		OAMDATA: machine.PPU.OAMDATA, PPUSCROLL: machine.PPU.PPUSCROLL,
		PPUADDR: machine.PPU.PPUADDR, PPUDATA: machine.PPU.PPUDATA,
	}
	s.PPUInterns = machine.PPU.GetInternalRegs()

	s.CPUCycles = machine.CPU.Cycles
	s.CPUStallCycles = machine.CPU.StallCycles
	s.PPUCycle = machine.PPU.Cycle
	s.PPUScanline = machine.PPU.Scanline
	s.PPUFrame = machine.PPU.Frame

	s.APUCycles = machine.APU.Cycles
	s.APUFrameCounter = machine.APU.FrameCounter
	s.APUFrameStep = machine.APU.FrameStep
	s.APUFrameIRQ = machine.APU.FrameIRQ

	if machine.Cartridge != nil {
		if saver, ok := machine.Cartridge.Mapper.(mapperState); ok {
			s.MapperRegs = saver.SaveState()
		}
	}

	return s
}

// Restore applies a State onto a machine that already has the matching
// cartridge loaded. It returns an error if the state's cartridge hash
// doesn't match the loaded cartridge, per the load-time rejection contract.
func Restore(machine *nes.NES, s *State) error {
	if machine.Cartridge != nil {
		h := sha256.New()
		h.Write(machine.Cartridge.PRGROM)
		h.Write(machine.Cartridge.CHRROM)
		var want [32]uint8
		copy(want[:], h.Sum(nil))
		if want != s.CartSHA256 {
			return fmt.Errorf("save state does not match loaded cartridge")
		}
	}

	machine.Memory.RAM = s.SysMem
	machine.PPU.VRAM = s.VRAM
	machine.PPU.OAM = s.OAM
	if machine.Cartridge != nil {
		copy(machine.Cartridge.PRGRAM, s.PRGRAM)
		copy(machine.Cartridge.CHRRAM, s.CHRRAM)
	}

	machine.CPU.A, machine.CPU.X, machine.CPU.Y = s.CPURegs.A, s.CPURegs.X, s.CPURegs.Y
	machine.CPU.SP, machine.CPU.PC, machine.CPU.P = s.CPURegs.SP, s.CPURegs.PC, s.CPURegs.P
	machine.CPU.Cycles = s.CPUCycles
	machine.CPU.StallCycles = s.CPUStallCycles

	machine.PPU.PPUCTRL, machine.PPU.PPUMASK, machine.PPU.PPUSTATUS = s.PPURegs.PPUCTRL, s.PPURegs.PPUMASK, s.PPURegs.PPUSTATUS
	machine.PPU.OAMADDR, machine.PPU.OAMDATA = s.PPURegs.OAMADDR, s.PPURegs.OAMDATA
	machine.PPU.PPUSCROLL, machine.PPU.PPUADDR, machine.PPU.PPUDATA = s.PPURegs.PPUSCROLL, s.PPURegs.PPUADDR, s.PPURegs.PPUDATA
	machine.PPU.SetInternalRegs(s.PPUInterns)
	machine.PPU.Cycle, machine.PPU.Scanline, machine.PPU.Frame = s.PPUCycle, s.PPUScanline, s.PPUFrame

	machine.APU.Cycles = s.APUCycles
	machine.APU.FrameCounter = s.APUFrameCounter
	machine.APU.FrameStep = s.APUFrameStep
	machine.APU.FrameIRQ = s.APUFrameIRQ

	if machine.Cartridge != nil {
		if loader, ok := machine.Cartridge.Mapper.(mapperState); ok {
			loader.LoadState(s.MapperRegs)
		}
	}

	return nil
}

// Encode serializes a State to the on-disk "CNES" binary format.
func Encode(s *State) ([]byte, error) {
	buf := &bytes.Buffer{}

	buf.WriteString(Magic)
	buf.Write(s.CartSHA256[:])
	buf.Write(s.SysMem[:])
	buf.Write(s.VRAM[:])
	buf.Write(s.OAM[:])

	if err := binary.Write(buf, binary.LittleEndian, uint32(len(s.PRGRAM))); err != nil {
		return nil, err
	}
	buf.Write(s.PRGRAM)
	if err := binary.Write(buf, binary.LittleEndian, uint32(len(s.CHRRAM))); err != nil {
		return nil, err
	}
	buf.Write(s.CHRRAM)

	fields := []any{
		s.CPURegs.A, s.CPURegs.X, s.CPURegs.Y, s.CPURegs.SP, s.CPURegs.PC, s.CPURegs.P,
		s.PPURegs.PPUCTRL, s.PPURegs.PPUMASK, s.PPURegs.PPUSTATUS, s.PPURegs.OAMADDR,
		s.PPURegs.OAMDATA, s.PPURegs.PPUSCROLL, s.PPURegs.PPUADDR, s.PPURegs.PPUDATA,
		s.PPUInterns.V, s.PPUInterns.T, s.PPUInterns.X, s.PPUInterns.W,
		int32(s.CPUCycles), int32(s.CPUStallCycles),
		int32(s.PPUCycle), int32(s.PPUScanline), s.PPUFrame,
		s.APUCycles, s.APUFrameCounter, int32(s.APUFrameStep), s.APUFrameIRQ,
	}
	for _, f := range fields {
		if err := binary.Write(buf, binary.LittleEndian, f); err != nil {
			return nil, fmt.Errorf("encode save state: %w", err)
		}
	}

	buf.Write(s.MapperRegs[:])

	return buf.Bytes(), nil
}

// Decode parses the on-disk "CNES" binary format into a State.
func Decode(data []byte) (*State, error) {
	buf := bytes.NewReader(data)

	magic := make([]byte, 4)
	if _, err := buf.Read(magic); err != nil {
		return nil, fmt.Errorf("decode save state: %w", err)
	}
	if string(magic) != Magic {
		return nil, fmt.Errorf("bad save state magic %q", magic)
	}

	s := &State{}
	if _, err := buf.Read(s.CartSHA256[:]); err != nil {
		return nil, fmt.Errorf("decode save state: %w", err)
	}
	if _, err := buf.Read(s.SysMem[:]); err != nil {
		return nil, fmt.Errorf("decode save state: %w", err)
	}
	if _, err := buf.Read(s.VRAM[:]); err != nil {
		return nil, fmt.Errorf("decode save state: %w", err)
	}
	if _, err := buf.Read(s.OAM[:]); err != nil {
		return nil, fmt.Errorf("decode save state: %w", err)
	}

	var prgRAMLen, chrRAMLen uint32
	if err := binary.Read(buf, binary.LittleEndian, &prgRAMLen); err != nil {
		return nil, fmt.Errorf("decode save state: %w", err)
	}
	s.PRGRAM = make([]uint8, prgRAMLen)
	if _, err := buf.Read(s.PRGRAM); err != nil {
		return nil, fmt.Errorf("decode save state: %w", err)
	}
	if err := binary.Read(buf, binary.LittleEndian, &chrRAMLen); err != nil {
		return nil, fmt.Errorf("decode save state: %w", err)
	}
	s.CHRRAM = make([]uint8, chrRAMLen)
	if _, err := buf.Read(s.CHRRAM); err != nil {
		return nil, fmt.Errorf("decode save state: %w", err)
	}

	fields := []any{
		&s.CPURegs.A, &s.CPURegs.X, &s.CPURegs.Y, &s.CPURegs.SP, &s.CPURegs.PC, &s.CPURegs.P,
		&s.PPURegs.PPUCTRL, &s.PPURegs.PPUMASK, &s.PPURegs.PPUSTATUS, &s.PPURegs.OAMADDR,
		&s.PPURegs.OAMDATA, &s.PPURegs.PPUSCROLL, &s.PPURegs.PPUADDR, &s.PPURegs.PPUDATA,
		&s.PPUInterns.V, &s.PPUInterns.T, &s.PPUInterns.X, &s.PPUInterns.W,
	}
	for _, f := range fields {
		if err := binary.Read(buf, binary.LittleEndian, f); err != nil {
			return nil, fmt.Errorf("decode save state: %w", err)
		}
	}

	var cpuCycles, cpuStall, ppuCycle, ppuScanline, apuFrameStep int32
	var apuFrameIRQ bool
	for _, f := range []any{&cpuCycles, &cpuStall, &ppuCycle, &ppuScanline, &s.PPUFrame, &s.APUCycles, &s.APUFrameCounter, &apuFrameStep, &apuFrameIRQ} {
		if err := binary.Read(buf, binary.LittleEndian, f); err != nil {
			return nil, fmt.Errorf("decode save state: %w", err)
		}
	}
	s.CPUCycles, s.CPUStallCycles = int(cpuCycles), int(cpuStall)
	s.PPUCycle, s.PPUScanline = int(ppuCycle), int(ppuScanline)
	s.APUFrameStep, s.APUFrameIRQ = int(apuFrameStep), apuFrameIRQ

	if _, err := buf.Read(s.MapperRegs[:]); err != nil {
		return nil, fmt.Errorf("decode save state: %w", err)
	}

	return s, nil
}
