// Package cpu implements the MOS 6502 instruction decoder, addressing
// resolver, and the semantics of the documented instruction set
// against a memory.Bus. It is a synchronous, single-threaded state
// machine: callers drive it one instruction at a time via Step.
//
// Sub-instruction cycle timing, undocumented opcodes, decimal-mode
// arithmetic, and asynchronous IRQ/NMI delivery are out of scope; only
// the software-triggered BRK vector transfer is implemented.
package cpu

import "github.com/retrobus/mos6502/memory"

// Vector addresses the core reads on Reset and BRK.
const (
	ResetVector uint16 = 0xFFFC
	IRQVector   uint16 = 0xFFFE
)

// StackBase is the fixed address of the stack page; the stack
// pointer S indexes into it as StackBase+S.
const StackBase uint16 = 0x0100

// Registers is a point-in-time snapshot of the CPU's externally
// visible state, handed out by Registers so debuggers and tests don't
// need to reach into CPU internals directly.
type Registers struct {
	A, X, Y, S uint8
	PC         uint16
	P          Flags
}

// CPU holds the 6502's register file and a reference to the bus it
// executes against. It has no internal concurrency: Step must only
// ever be called by one goroutine at a time, and two independently
// running machines need two independent CPU+Bus pairs.
type CPU struct {
	A, X, Y, S uint8
	P          Flags
	PC         uint16

	bus memory.Bus
}

// New returns a CPU wired to bus. Registers are left at their zero
// value; call Reset to bring the CPU to the documented post-reset
// state before the first Step.
func New(bus memory.Bus) *CPU {
	return &CPU{bus: bus}
}

// Registers returns a snapshot of the current register file.
func (c *CPU) Registers() Registers {
	return Registers{A: c.A, X: c.X, Y: c.Y, S: c.S, PC: c.PC, P: c.P}
}

// Flags returns the current status register.
func (c *CPU) Flags() Flags {
	return c.P
}

// Reset brings the CPU to the documented post-reset state: PC is
// loaded from the reset vector, S is set to the conventional 0xFD,
// A/X/Y are cleared, the interrupt-disable flag is set, and D is
// cleared. Real hardware leaves C/Z/V/N undefined across reset; this
// core zeroes them so behavior is deterministic for tests.
func (c *CPU) Reset() {
	c.A, c.X, c.Y = 0, 0, 0
	c.S = 0xFD
	c.P = FlagsFromByte(0)
	c.P.SetInterruptDisable(true)
	c.P.SetDecimal(false)
	c.PC = memory.ReadU16(c.bus, ResetVector)
}

// Step fetches the opcode byte at PC, decodes it via the dispatch
// table, resolves its addressing mode (which advances PC past the
// operand bytes), and executes it. It returns the instruction's base
// cycle count (no sub-instruction timing is modeled) or an
// UnknownOpcode error.
//
// On UnknownOpcode, PC and all registers are left exactly as they
// were before the fetch: the caller may patch memory and retry, or
// treat it as fatal.
func (c *CPU) Step() (uint8, error) {
	opcode := c.bus.Read(c.PC)
	entry := dispatchTable[opcode]
	if entry == nil {
		return 0, UnknownOpcode{PC: c.PC, Opcode: opcode}
	}
	c.PC++
	if err := entry.exec(c); err != nil {
		return 0, err
	}
	return entry.cycles, nil
}

// RunUntil repeatedly calls Step until done reports true or Step
// returns an error, whichever comes first. done is evaluated after
// each successful Step so callers can check whatever condition they
// need (PC reaching a sentinel, the break flag having been set by a
// BRK, a step budget, etc).
func (c *CPU) RunUntil(done func(*CPU) bool) error {
	for {
		if _, err := c.Step(); err != nil {
			return err
		}
		if done(c) {
			return nil
		}
	}
}

// push writes b to the current stack slot and moves S down by one,
// wrapping modulo 256.
func (c *CPU) push(b uint8) {
	c.bus.Write(StackBase+uint16(c.S), b)
	c.S--
}

// pull moves S up by one (wrapping modulo 256) and returns the byte
// now at the top of the stack.
func (c *CPU) pull() uint8 {
	c.S++
	return c.bus.Read(StackBase + uint16(c.S))
}

// pushU16 pushes w as high byte then low byte, so the matching pullU16
// reads them back in the order a real 6502 does (low first).
func (c *CPU) pushU16(w uint16) {
	c.push(uint8(w >> 8))
	c.push(uint8(w & 0xFF))
}

// pullU16 pulls low byte then high byte and recombines them.
func (c *CPU) pullU16() uint16 {
	lo := c.pull()
	hi := c.pull()
	return uint16(lo) | uint16(hi)<<8
}
