package cpu

// opcodeEntry is one row of the dispatch table: the mnemonic and
// addressing mode (kept for disassembly and diagnostics), the base
// cycle count, and the function that carries out the semantics.
type opcodeEntry struct {
	mnemonic string
	mode     Mode
	cycles   uint8
	fn       opFunc
}

// exec resolves nothing itself; it hands mode straight to fn, which
// calls c.resolve(mode) at the point the instruction actually needs
// the operand (branches and jumps need the address at different
// points than loads/stores do).
func (e *opcodeEntry) exec(c *CPU) error {
	return e.fn(c, e.mode)
}

// dispatchTable is indexed by opcode byte. A nil slot is an
// undocumented opcode; Step reports it as UnknownOpcode rather than
// guessing at behavior this core doesn't implement.
var dispatchTable [256]*opcodeEntry

func op(opcode uint8, mnemonic string, mode Mode, cycles uint8, fn opFunc) {
	dispatchTable[opcode] = &opcodeEntry{mnemonic: mnemonic, mode: mode, cycles: cycles, fn: fn}
}

// Describe reports the mnemonic and addressing mode a documented
// opcode byte decodes to. ok is false for undocumented opcodes, the
// same set Step rejects as UnknownOpcode.
func Describe(opcode uint8) (mnemonic string, mode Mode, ok bool) {
	e := dispatchTable[opcode]
	if e == nil {
		return "", Implicit, false
	}
	return e.mnemonic, e.mode, true
}

func init() {
	// LDA
	op(0xA9, "LDA", Immediate, 2, lda)
	op(0xA5, "LDA", ZeroPage, 3, lda)
	op(0xB5, "LDA", ZeroPageX, 4, lda)
	op(0xAD, "LDA", Absolute, 4, lda)
	op(0xBD, "LDA", AbsoluteX, 4, lda)
	op(0xB9, "LDA", AbsoluteY, 4, lda)
	op(0xA1, "LDA", IndirectX, 6, lda)
	op(0xB1, "LDA", IndirectY, 5, lda)

	// LDX
	op(0xA2, "LDX", Immediate, 2, ldx)
	op(0xA6, "LDX", ZeroPage, 3, ldx)
	op(0xB6, "LDX", ZeroPageY, 4, ldx)
	op(0xAE, "LDX", Absolute, 4, ldx)
	op(0xBE, "LDX", AbsoluteY, 4, ldx)

	// LDY
	op(0xA0, "LDY", Immediate, 2, ldy)
	op(0xA4, "LDY", ZeroPage, 3, ldy)
	op(0xB4, "LDY", ZeroPageX, 4, ldy)
	op(0xAC, "LDY", Absolute, 4, ldy)
	op(0xBC, "LDY", AbsoluteX, 4, ldy)

	// STA
	op(0x85, "STA", ZeroPage, 3, sta)
	op(0x95, "STA", ZeroPageX, 4, sta)
	op(0x8D, "STA", Absolute, 4, sta)
	op(0x9D, "STA", AbsoluteX, 5, sta)
	op(0x99, "STA", AbsoluteY, 5, sta)
	op(0x81, "STA", IndirectX, 6, sta)
	op(0x91, "STA", IndirectY, 6, sta)

	// STX / STY
	op(0x86, "STX", ZeroPage, 3, stx)
	op(0x96, "STX", ZeroPageY, 4, stx)
	op(0x8E, "STX", Absolute, 4, stx)
	op(0x84, "STY", ZeroPage, 3, sty)
	op(0x94, "STY", ZeroPageX, 4, sty)
	op(0x8C, "STY", Absolute, 4, sty)

	// Transfers
	op(0xAA, "TAX", Implicit, 2, tax)
	op(0xA8, "TAY", Implicit, 2, tay)
	op(0x8A, "TXA", Implicit, 2, txa)
	op(0x98, "TYA", Implicit, 2, tya)
	op(0xBA, "TSX", Implicit, 2, tsx)
	op(0x9A, "TXS", Implicit, 2, txs)

	// Stack
	op(0x48, "PHA", Implicit, 3, pha)
	op(0x08, "PHP", Implicit, 3, php)
	op(0x68, "PLA", Implicit, 4, pla)
	op(0x28, "PLP", Implicit, 4, plp)

	// ADC
	op(0x69, "ADC", Immediate, 2, adc)
	op(0x65, "ADC", ZeroPage, 3, adc)
	op(0x75, "ADC", ZeroPageX, 4, adc)
	op(0x6D, "ADC", Absolute, 4, adc)
	op(0x7D, "ADC", AbsoluteX, 4, adc)
	op(0x79, "ADC", AbsoluteY, 4, adc)
	op(0x61, "ADC", IndirectX, 6, adc)
	op(0x71, "ADC", IndirectY, 5, adc)

	// SBC
	op(0xE9, "SBC", Immediate, 2, sbc)
	op(0xE5, "SBC", ZeroPage, 3, sbc)
	op(0xF5, "SBC", ZeroPageX, 4, sbc)
	op(0xED, "SBC", Absolute, 4, sbc)
	op(0xFD, "SBC", AbsoluteX, 4, sbc)
	op(0xF9, "SBC", AbsoluteY, 4, sbc)
	op(0xE1, "SBC", IndirectX, 6, sbc)
	op(0xF1, "SBC", IndirectY, 5, sbc)

	// AND
	op(0x29, "AND", Immediate, 2, and)
	op(0x25, "AND", ZeroPage, 3, and)
	op(0x35, "AND", ZeroPageX, 4, and)
	op(0x2D, "AND", Absolute, 4, and)
	op(0x3D, "AND", AbsoluteX, 4, and)
	op(0x39, "AND", AbsoluteY, 4, and)
	op(0x21, "AND", IndirectX, 6, and)
	op(0x31, "AND", IndirectY, 5, and)

	// ORA
	op(0x09, "ORA", Immediate, 2, ora)
	op(0x05, "ORA", ZeroPage, 3, ora)
	op(0x15, "ORA", ZeroPageX, 4, ora)
	op(0x0D, "ORA", Absolute, 4, ora)
	op(0x1D, "ORA", AbsoluteX, 4, ora)
	op(0x19, "ORA", AbsoluteY, 4, ora)
	op(0x01, "ORA", IndirectX, 6, ora)
	op(0x11, "ORA", IndirectY, 5, ora)

	// EOR
	op(0x49, "EOR", Immediate, 2, eor)
	op(0x45, "EOR", ZeroPage, 3, eor)
	op(0x55, "EOR", ZeroPageX, 4, eor)
	op(0x4D, "EOR", Absolute, 4, eor)
	op(0x5D, "EOR", AbsoluteX, 4, eor)
	op(0x59, "EOR", AbsoluteY, 4, eor)
	op(0x41, "EOR", IndirectX, 6, eor)
	op(0x51, "EOR", IndirectY, 5, eor)

	// BIT
	op(0x24, "BIT", ZeroPage, 3, bit)
	op(0x2C, "BIT", Absolute, 4, bit)

	// ASL
	op(0x0A, "ASL", Accumulator, 2, asl)
	op(0x06, "ASL", ZeroPage, 5, asl)
	op(0x16, "ASL", ZeroPageX, 6, asl)
	op(0x0E, "ASL", Absolute, 6, asl)
	op(0x1E, "ASL", AbsoluteX, 7, asl)

	// LSR
	op(0x4A, "LSR", Accumulator, 2, lsr)
	op(0x46, "LSR", ZeroPage, 5, lsr)
	op(0x56, "LSR", ZeroPageX, 6, lsr)
	op(0x4E, "LSR", Absolute, 6, lsr)
	op(0x5E, "LSR", AbsoluteX, 7, lsr)

	// ROL
	op(0x2A, "ROL", Accumulator, 2, rol)
	op(0x26, "ROL", ZeroPage, 5, rol)
	op(0x36, "ROL", ZeroPageX, 6, rol)
	op(0x2E, "ROL", Absolute, 6, rol)
	op(0x3E, "ROL", AbsoluteX, 7, rol)

	// ROR
	op(0x6A, "ROR", Accumulator, 2, ror)
	op(0x66, "ROR", ZeroPage, 5, ror)
	op(0x76, "ROR", ZeroPageX, 6, ror)
	op(0x6E, "ROR", Absolute, 6, ror)
	op(0x7E, "ROR", AbsoluteX, 7, ror)

	// Compares
	op(0xC9, "CMP", Immediate, 2, cmp)
	op(0xC5, "CMP", ZeroPage, 3, cmp)
	op(0xD5, "CMP", ZeroPageX, 4, cmp)
	op(0xCD, "CMP", Absolute, 4, cmp)
	op(0xDD, "CMP", AbsoluteX, 4, cmp)
	op(0xD9, "CMP", AbsoluteY, 4, cmp)
	op(0xC1, "CMP", IndirectX, 6, cmp)
	op(0xD1, "CMP", IndirectY, 5, cmp)

	op(0xE0, "CPX", Immediate, 2, cpx)
	op(0xE4, "CPX", ZeroPage, 3, cpx)
	op(0xEC, "CPX", Absolute, 4, cpx)

	op(0xC0, "CPY", Immediate, 2, cpy)
	op(0xC4, "CPY", ZeroPage, 3, cpy)
	op(0xCC, "CPY", Absolute, 4, cpy)

	// Inc/Dec
	op(0xE6, "INC", ZeroPage, 5, inc)
	op(0xF6, "INC", ZeroPageX, 6, inc)
	op(0xEE, "INC", Absolute, 6, inc)
	op(0xFE, "INC", AbsoluteX, 7, inc)

	op(0xC6, "DEC", ZeroPage, 5, dec)
	op(0xD6, "DEC", ZeroPageX, 6, dec)
	op(0xCE, "DEC", Absolute, 6, dec)
	op(0xDE, "DEC", AbsoluteX, 7, dec)

	op(0xE8, "INX", Implicit, 2, inx)
	op(0xC8, "INY", Implicit, 2, iny)
	op(0xCA, "DEX", Implicit, 2, dex)
	op(0x88, "DEY", Implicit, 2, dey)

	// Branches
	op(0x90, "BCC", Relative, 2, bcc)
	op(0xB0, "BCS", Relative, 2, bcs)
	op(0xF0, "BEQ", Relative, 2, beq)
	op(0xD0, "BNE", Relative, 2, bne)
	op(0x30, "BMI", Relative, 2, bmi)
	op(0x10, "BPL", Relative, 2, bpl)
	op(0x50, "BVC", Relative, 2, bvc)
	op(0x70, "BVS", Relative, 2, bvs)

	// Jumps / subroutines
	op(0x4C, "JMP", Absolute, 3, jmp)
	op(0x6C, "JMP", Indirect, 5, jmp)
	op(0x20, "JSR", Absolute, 6, jsr)
	op(0x60, "RTS", Implicit, 6, rts)
	op(0x40, "RTI", Implicit, 6, rti)

	// Flag set/clear
	op(0x18, "CLC", Implicit, 2, clc)
	op(0x38, "SEC", Implicit, 2, sec)
	op(0x58, "CLI", Implicit, 2, cli)
	op(0x78, "SEI", Implicit, 2, sei)
	op(0xD8, "CLD", Implicit, 2, cld)
	op(0xF8, "SED", Implicit, 2, sed)
	op(0xB8, "CLV", Implicit, 2, clv)

	// BRK / NOP
	op(0x00, "BRK", Implicit, 7, brk)
	op(0xEA, "NOP", Implicit, 2, nop)
}
