package cpu

import "fmt"

// Trace renders the instruction about to execute at PC in nestest's log
// format: address, raw opcode bytes, disassembly, and register file. It
// reads straight from Memory rather than through the addressing-mode
// helpers, so producing a trace line never performs a side-effecting
// register read (PPUSTATUS, OAMDATA, the controller ports) that executing
// the instruction itself would.
func (c *CPU) Trace() string {
	opcode := c.Memory.Read(c.PC)
	info := opcodeTable[opcode]
	if info.Len == 0 {
		info = opcodeInfo{Mnemonic: "???", Mode: AddrImplied, Len: 1}
	}

	bytes := make([]uint8, info.Len)
	bytes[0] = opcode
	for i := 1; i < info.Len; i++ {
		bytes[i] = c.Memory.Read(c.PC + uint16(i))
	}

	hexBytes := ""
	for i, b := range bytes {
		if i > 0 {
			hexBytes += " "
		}
		hexBytes += fmt.Sprintf("%02X", b)
	}

	disasm := disassemble(info, bytes, c.PC)

	return fmt.Sprintf("%04X  %-9s %-31s A:%02X X:%02X Y:%02X P:%02X SP:%02X",
		c.PC, hexBytes, disasm, c.A, c.X, c.Y, c.P, c.SP)
}

// disassemble formats the mnemonic and operand text for one instruction
// without touching memory beyond the raw bytes already fetched by Trace:
// effective addresses for indexed/indirect modes are shown unresolved so
// that generating a trace can never itself trigger a hardware side effect.
func disassemble(info opcodeInfo, bytes []uint8, pc uint16) string {
	mnemonic := info.Mnemonic
	illegalMark := ""
	if info.Illegal {
		illegalMark = "*"
	}

	var operand string
	switch info.Mode {
	case AddrImplied:
		operand = ""
	case AddrAccumulator:
		operand = "A"
	case AddrImmediate:
		operand = fmt.Sprintf("#$%02X", bytes[1])
	case AddrZeroPage:
		operand = fmt.Sprintf("$%02X", bytes[1])
	case AddrZeroPageX:
		operand = fmt.Sprintf("$%02X,X", bytes[1])
	case AddrZeroPageY:
		operand = fmt.Sprintf("$%02X,Y", bytes[1])
	case AddrRelative:
		target := pc + 2 + uint16(int8(bytes[1]))
		operand = fmt.Sprintf("$%04X", target)
	case AddrAbsolute:
		addr := uint16(bytes[2])<<8 | uint16(bytes[1])
		operand = fmt.Sprintf("$%04X", addr)
	case AddrAbsoluteX:
		addr := uint16(bytes[2])<<8 | uint16(bytes[1])
		operand = fmt.Sprintf("$%04X,X", addr)
	case AddrAbsoluteY:
		addr := uint16(bytes[2])<<8 | uint16(bytes[1])
		operand = fmt.Sprintf("$%04X,Y", addr)
	case AddrIndirect:
		addr := uint16(bytes[2])<<8 | uint16(bytes[1])
		operand = fmt.Sprintf("($%04X)", addr)
	case AddrIndexedIndirect:
		operand = fmt.Sprintf("($%02X,X)", bytes[1])
	case AddrIndirectIndexed:
		operand = fmt.Sprintf("($%02X),Y", bytes[1])
	}

	if operand == "" {
		return illegalMark + mnemonic
	}
	return illegalMark + mnemonic + " " + operand
}
