package cpu

import "github.com/retrobus/mos6502/memory"

// opFunc is the shape every dispatch table entry's executor takes:
// given the CPU and the addressing mode this opcode was decoded with,
// resolve the operand (which advances PC past it) and carry out the
// mnemonic's documented semantics.
type opFunc func(c *CPU, mode Mode) error

// readOperand returns the 8 bit value an operand names, pulling from
// the accumulator when the mode resolved to it instead of memory.
func readOperand(c *CPU, op operand) uint8 {
	if op.acc {
		return c.A
	}
	return c.bus.Read(op.addr)
}

// writeOperand stores val back to wherever op names.
func writeOperand(c *CPU, op operand, val uint8) {
	if op.acc {
		c.A = val
		return
	}
	c.bus.Write(op.addr, val)
}

// load assigns val to *reg and derives N,Z from it. Shared by
// LDA/LDX/LDY and by the register-to-register transfers.
func load(c *CPU, reg *uint8, val uint8) {
	*reg = val
	c.P.setNZ(val)
}

// --- Loads ---

func lda(c *CPU, mode Mode) error {
	op := c.resolve(mode)
	load(c, &c.A, readOperand(c, op))
	return nil
}

func ldx(c *CPU, mode Mode) error {
	op := c.resolve(mode)
	load(c, &c.X, readOperand(c, op))
	return nil
}

func ldy(c *CPU, mode Mode) error {
	op := c.resolve(mode)
	load(c, &c.Y, readOperand(c, op))
	return nil
}

// --- Stores ---

func sta(c *CPU, mode Mode) error {
	op := c.resolve(mode)
	writeOperand(c, op, c.A)
	return nil
}

func stx(c *CPU, mode Mode) error {
	op := c.resolve(mode)
	writeOperand(c, op, c.X)
	return nil
}

func sty(c *CPU, mode Mode) error {
	op := c.resolve(mode)
	writeOperand(c, op, c.Y)
	return nil
}

// --- Transfers ---

func tax(c *CPU, _ Mode) error { load(c, &c.X, c.A); return nil }
func tay(c *CPU, _ Mode) error { load(c, &c.Y, c.A); return nil }
func txa(c *CPU, _ Mode) error { load(c, &c.A, c.X); return nil }
func tya(c *CPU, _ Mode) error { load(c, &c.A, c.Y); return nil }
func tsx(c *CPU, _ Mode) error { load(c, &c.X, c.S); return nil }

// txs copies X into S without touching any flag.
func txs(c *CPU, _ Mode) error {
	c.S = c.X
	return nil
}

// --- Stack ---

func pha(c *CPU, _ Mode) error {
	c.push(c.A)
	return nil
}

// php pushes the status byte with B and the reserved bit forced to 1.
func php(c *CPU, _ Mode) error {
	c.push(c.P.Byte(true))
	return nil
}

func pla(c *CPU, _ Mode) error {
	load(c, &c.A, c.pull())
	return nil
}

// plp pulls the status byte; B is discarded (reads back as 0) and the
// reserved bit is forced back to 1.
func plp(c *CPU, _ Mode) error {
	c.P = FlagsFromByte(c.pull())
	return nil
}

// --- Arithmetic ---

// adc implements ADC. sbc repeats the same carry/overflow derivation
// on the one's complement of the operand.
func adc(c *CPU, mode Mode) error {
	op := c.resolve(mode)
	m := readOperand(c, op)
	carry := uint16(0)
	if c.P.Carry() {
		carry = 1
	}
	sum := uint16(c.A) + uint16(m) + carry
	result := uint8(sum)
	c.P.SetOverflow((c.A^result)&(m^result)&0x80 != 0)
	c.P.SetCarry(sum > 0xFF)
	load(c, &c.A, result)
	return nil
}

// sbc is ADC with the operand's bits complemented, which yields
// A - M - (1 - C) using the same carry/overflow derivation.
func sbc(c *CPU, mode Mode) error {
	op := c.resolve(mode)
	m := readOperand(c, op) ^ 0xFF
	carry := uint16(0)
	if c.P.Carry() {
		carry = 1
	}
	sum := uint16(c.A) + uint16(m) + carry
	result := uint8(sum)
	c.P.SetOverflow((c.A^result)&(m^result)&0x80 != 0)
	c.P.SetCarry(sum > 0xFF)
	load(c, &c.A, result)
	return nil
}

// --- Bitwise ---

func and(c *CPU, mode Mode) error {
	op := c.resolve(mode)
	load(c, &c.A, c.A&readOperand(c, op))
	return nil
}

func ora(c *CPU, mode Mode) error {
	op := c.resolve(mode)
	load(c, &c.A, c.A|readOperand(c, op))
	return nil
}

func eor(c *CPU, mode Mode) error {
	op := c.resolve(mode)
	load(c, &c.A, c.A^readOperand(c, op))
	return nil
}

func bit(c *CPU, mode Mode) error {
	op := c.resolve(mode)
	m := readOperand(c, op)
	c.P.SetZero(c.A&m == 0)
	c.P.SetNegative(m&0x80 != 0)
	c.P.SetOverflow(m&0x40 != 0)
	return nil
}

// --- Shifts/rotates ---

func asl(c *CPU, mode Mode) error {
	op := c.resolve(mode)
	v := readOperand(c, op)
	r := v << 1
	c.P.SetCarry(v&0x80 != 0)
	c.P.setNZ(r)
	writeOperand(c, op, r)
	return nil
}

func lsr(c *CPU, mode Mode) error {
	op := c.resolve(mode)
	v := readOperand(c, op)
	r := v >> 1
	c.P.SetCarry(v&0x01 != 0)
	c.P.setNZ(r)
	writeOperand(c, op, r)
	return nil
}

func rol(c *CPU, mode Mode) error {
	op := c.resolve(mode)
	v := readOperand(c, op)
	var bit0 uint8
	if c.P.Carry() {
		bit0 = 1
	}
	r := (v << 1) | bit0
	c.P.SetCarry(v&0x80 != 0)
	c.P.setNZ(r)
	writeOperand(c, op, r)
	return nil
}

func ror(c *CPU, mode Mode) error {
	op := c.resolve(mode)
	v := readOperand(c, op)
	var bit7 uint8
	if c.P.Carry() {
		bit7 = 0x80
	}
	r := (v >> 1) | bit7
	c.P.SetCarry(v&0x01 != 0)
	c.P.setNZ(r)
	writeOperand(c, op, r)
	return nil
}

// --- Compares ---

// compare derives C/Z/N from reg-M without modifying either operand.
func compare(c *CPU, reg uint8, m uint8) {
	r := reg - m
	c.P.SetCarry(reg >= m)
	c.P.SetZero(r == 0)
	c.P.SetNegative(r&0x80 != 0)
}

func cmp(c *CPU, mode Mode) error {
	op := c.resolve(mode)
	compare(c, c.A, readOperand(c, op))
	return nil
}

func cpx(c *CPU, mode Mode) error {
	op := c.resolve(mode)
	compare(c, c.X, readOperand(c, op))
	return nil
}

func cpy(c *CPU, mode Mode) error {
	op := c.resolve(mode)
	compare(c, c.Y, readOperand(c, op))
	return nil
}

// --- Inc/Dec ---

func inc(c *CPU, mode Mode) error {
	op := c.resolve(mode)
	r := readOperand(c, op) + 1
	c.P.setNZ(r)
	writeOperand(c, op, r)
	return nil
}

func dec(c *CPU, mode Mode) error {
	op := c.resolve(mode)
	r := readOperand(c, op) - 1
	c.P.setNZ(r)
	writeOperand(c, op, r)
	return nil
}

func inx(c *CPU, _ Mode) error { load(c, &c.X, c.X+1); return nil }
func iny(c *CPU, _ Mode) error { load(c, &c.Y, c.Y+1); return nil }
func dex(c *CPU, _ Mode) error { load(c, &c.X, c.X-1); return nil }
func dey(c *CPU, _ Mode) error { load(c, &c.Y, c.Y-1); return nil }

// --- Branches ---

// branch resolves the relative target unconditionally (so PC always
// advances past the offset byte) and jumps to it only if taken.
func branch(c *CPU, taken bool) error {
	op := c.resolve(Relative)
	if taken {
		c.PC = op.addr
	}
	return nil
}

func bcc(c *CPU, _ Mode) error { return branch(c, !c.P.Carry()) }
func bcs(c *CPU, _ Mode) error { return branch(c, c.P.Carry()) }
func beq(c *CPU, _ Mode) error { return branch(c, c.P.Zero()) }
func bne(c *CPU, _ Mode) error { return branch(c, !c.P.Zero()) }
func bmi(c *CPU, _ Mode) error { return branch(c, c.P.Negative()) }
func bpl(c *CPU, _ Mode) error { return branch(c, !c.P.Negative()) }
func bvc(c *CPU, _ Mode) error { return branch(c, !c.P.Overflow()) }
func bvs(c *CPU, _ Mode) error { return branch(c, c.P.Overflow()) }

// --- Jumps ---

func jmp(c *CPU, mode Mode) error {
	op := c.resolve(mode)
	c.PC = op.addr
	return nil
}

// jsr pushes the address of its own last byte (PC, after the operand
// has been consumed, minus one) and jumps to the operand.
func jsr(c *CPU, mode Mode) error {
	op := c.resolve(mode)
	c.pushU16(c.PC - 1)
	c.PC = op.addr
	return nil
}

func rts(c *CPU, _ Mode) error {
	c.PC = c.pullU16() + 1
	return nil
}

// rti pulls status (B discarded) then PC, with no +1 adjustment.
func rti(c *CPU, _ Mode) error {
	c.P = FlagsFromByte(c.pull())
	c.PC = c.pullU16()
	return nil
}

// --- Flag set/clear ---

func clc(c *CPU, _ Mode) error { c.P.SetCarry(false); return nil }
func sec(c *CPU, _ Mode) error { c.P.SetCarry(true); return nil }
func cli(c *CPU, _ Mode) error { c.P.SetInterruptDisable(false); return nil }
func sei(c *CPU, _ Mode) error { c.P.SetInterruptDisable(true); return nil }
func cld(c *CPU, _ Mode) error { c.P.SetDecimal(false); return nil }
func sed(c *CPU, _ Mode) error { c.P.SetDecimal(true); return nil }
func clv(c *CPU, _ Mode) error { c.P.SetOverflow(false); return nil }

// --- BRK / NOP ---

// brk skips its signature byte, pushes PC then status (B set), raises
// I, and loads PC from the IRQ vector. It runs only when a BRK opcode
// is executed; this core has no IRQ/NMI injection.
func brk(c *CPU, _ Mode) error {
	c.PC++
	c.pushU16(c.PC)
	c.push(c.P.Byte(true))
	c.P.SetInterruptDisable(true)
	c.PC = memory.ReadU16(c.bus, IRQVector)
	return nil
}

func nop(c *CPU, _ Mode) error { return nil }
