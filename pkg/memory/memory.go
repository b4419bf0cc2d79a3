package memory

import (
	"github.com/retrobus/nescore/pkg/logger"
)

// Memory represents the NES memory map
type Memory struct {
	// CPU RAM (2KB, mirrored to fill 8KB)
	RAM [2048]uint8

	// Test memory for high addresses (for testing purposes)
	HighMem [0xA000]uint8 // 0x6000-0xFFFF

	// openBus holds the last byte driven onto the CPU data bus, returned by
	// reads from addresses nothing responds to ($4018-$401F, unmapped
	// cartridge space with no PRG RAM present).
	openBus uint8

	// PPU interface
	PPU interface {
		ReadRegister(addr uint16) uint8
		WriteRegister(addr uint16, value uint8)
	}

	// APU interface
	APU interface {
		ReadRegister(addr uint16) uint8
		WriteRegister(addr uint16, value uint8)
	}

	// Cartridge interface
	Cartridge interface {
		ReadPRG(addr uint16) uint8
		WritePRG(addr uint16, value uint8)
	}

	// Input is the two-port standard controller system addressed at
	// $4016/$4017.
	Input interface {
		WriteStrobe(value uint8)
		ReadPort1() uint8
		ReadPort2() uint8
	}

	// CPU receives OAM DMA stall-cycle notifications. Set via SetCPU; left
	// nil in bus-only unit tests that never trigger $4014 writes.
	CPU interface {
		RequestStall(cycles int)
	}
}

// New creates a new Memory instance
func New() *Memory {
	return &Memory{}
}

// SetCPU sets the CPU reference used to apply OAM DMA stall cycles.
func (m *Memory) SetCPU(cpu interface{ RequestStall(cycles int) }) {
	m.CPU = cpu
}

// SetCartridge sets the cartridge reference
func (m *Memory) SetCartridge(cart interface {
	ReadPRG(addr uint16) uint8
	WritePRG(addr uint16, value uint8)
}) {
	m.Cartridge = cart
}

// SetPPU sets the PPU reference
func (m *Memory) SetPPU(ppu interface {
	ReadRegister(addr uint16) uint8
	WriteRegister(addr uint16, value uint8)
}) {
	m.PPU = ppu
}

// SetAPU sets the APU reference
func (m *Memory) SetAPU(apu interface {
	ReadRegister(addr uint16) uint8
	WriteRegister(addr uint16, value uint8)
}) {
	m.APU = apu
}

// SetInput sets the input reference
func (m *Memory) SetInput(input interface {
	WriteStrobe(value uint8)
	ReadPort1() uint8
	ReadPort2() uint8
}) {
	m.Input = input
}

// Read reads a byte from the given address with optimized path for common cases
func (m *Memory) Read(addr uint16) uint8 {

	// Fast path for most common accesses (CPU RAM and cartridge)
	if addr < 0x2000 {
		// CPU RAM (0x0000-0x1FFF, mirrored every 0x800 bytes)
		m.openBus = m.RAM[addr&0x7FF] // Use bitwise AND for faster modulo
		return m.openBus
	}

	if addr >= 0x6000 {
		// Cartridge PRG ROM space (0x8000-0xFFFF) - most frequent after RAM
		if m.Cartridge != nil {
			m.openBus = m.Cartridge.ReadPRG(addr)
			return m.openBus
		}
		// For testing: use HighMem when no cartridge is present
		index := addr - 0x6000
		if index >= 0xA000 {
			// Index out of bounds - this shouldn't happen
			return m.openBus
		}
		m.openBus = m.HighMem[index]
		return m.openBus
	}

	// Less frequent accesses
	if addr < 0x4000 {
		// PPU registers (0x2000-0x3FFF, mirrored every 8 bytes)
		if m.PPU != nil {
			m.openBus = m.PPU.ReadRegister(0x2000 + (addr & 0x7))
		}
		return m.openBus
	}

	if addr == 0x4016 {
		// Controller 1 serial shift (high 7 bits are open bus on real
		// hardware; approximated here by leaving them at the bus's last
		// driven value rather than forcing them to 0).
		if m.Input != nil {
			m.openBus = (m.openBus &^ 0x01) | (m.Input.ReadPort1() & 0x01)
		}
		return m.openBus
	}

	if addr == 0x4017 {
		// Controller 2 serial shift ($4017 is write-only for the APU frame
		// counter; reads belong entirely to the second controller port).
		if m.Input != nil {
			m.openBus = (m.openBus &^ 0x01) | (m.Input.ReadPort2() & 0x01)
		}
		return m.openBus
	}

	if addr < 0x4018 {
		// APU registers (0x4000-0x4013, 0x4015)
		if m.APU != nil {
			m.openBus = m.APU.ReadRegister(addr)
		}
		return m.openBus
	}

	// $4018-$401F: unused CPU test-mode registers, drive open bus.
	if addr < 0x4020 {
		return m.openBus
	}

	// Unmapped addr > 0x4020 && addr < 0x6000
	return m.openBus
}

// Write writes a byte to the given address
func (m *Memory) Write(addr uint16, value uint8) {

	m.openBus = value

	switch {
	case addr < 0x2000:
		// CPU RAM (0x0000-0x1FFF, mirrored every 0x800 bytes)
		m.RAM[addr%0x800] = value

	case addr < 0x4000:
		// PPU registers (0x2000-0x3FFF, mirrored every 8 bytes)
		if m.PPU != nil {
			ppuAddr := 0x2000 + (addr & 0x7)
			// Debug: Log $2006/$2007 writes specifically
			if ppuAddr == 0x2006 || ppuAddr == 0x2007 {
				logger.LogCPU("Memory Write PPU $%04X: value=$%02X", ppuAddr, value)
			}
			m.PPU.WriteRegister(ppuAddr, value)
		}

	case addr == 0x4014:
		// OAM DMA
		m.performOAMDMA(value)

	case addr == 0x4016:
		// Controller strobe, latched into both ports simultaneously
		if m.Input != nil {
			m.Input.WriteStrobe(value)
		}

	case addr < 0x4018:
		// APU registers (0x4000-0x4013, 0x4015, 0x4017 frame counter)
		if m.APU != nil {
			m.APU.WriteRegister(addr, value)
		}

	case addr < 0x4020:
		// $4018-$401F: unused CPU test-mode registers, writes ignored

	case addr >= 0x6000:
		// Cartridge PRG ROM space (0x8000-0xFFFF)
		if m.Cartridge != nil {
			m.Cartridge.WritePRG(addr, value)
		} else {
			// For testing: use HighMem when no cartridge is present
			index := addr - 0x6000
			if index >= 0xA000 {
				// Index out of bounds - this shouldn't happen
				return
			}
			m.HighMem[index] = value
		}

	default:
		// Unmapped addr > 0x4020 && addr < 0x6000
	}
}

// performOAMDMA performs OAM DMA transfer, stalling the CPU for 513 cycles
// (514 when the write lands on an odd CPU cycle) per the $4014 contract.
func (m *Memory) performOAMDMA(page uint8) {
	baseAddr := uint16(page) << 8

	for i := 0; i < 256; i++ {
		value := m.Read(baseAddr + uint16(i))
		if m.PPU != nil {
			m.PPU.WriteRegister(0x2004, value)
		}
	}

	if m.CPU != nil {
		stall := 513
		if oddCycle, ok := m.CPU.(interface{ OddCycle() bool }); ok && oddCycle.OddCycle() {
			stall = 514
		}
		m.CPU.RequestStall(stall)
	}
}
