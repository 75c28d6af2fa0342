// Package disassembler renders the documented 6502 instruction set as
// text, one instruction per Step call. It never executes anything; it
// only reads bytes off the bus to figure out how far to advance.
package disassembler

import (
	"fmt"

	"github.com/retrobus/mos6502/cpu"
	"github.com/retrobus/mos6502/memory"
)

// Step disassembles the instruction at pc and returns its text along
// with the number of bytes (opcode + operand) it occupies. An
// undocumented opcode disassembles as "???" occupying one byte, since
// this core has no record of what it would have done.
func Step(bus memory.Bus, pc uint16) (string, int) {
	opcode := bus.Read(pc)
	mnemonic, mode, ok := cpu.Describe(opcode)
	if !ok {
		return fmt.Sprintf("$%04X: ??? (0x%02X)", pc, opcode), 1
	}

	length := 1 + mode.OperandLen()
	var operandText string
	switch mode {
	case cpu.Implicit:
		operandText = ""
	case cpu.Accumulator:
		operandText = "A"
	case cpu.Immediate:
		operandText = fmt.Sprintf("#$%02X", bus.Read(pc+1))
	case cpu.ZeroPage:
		operandText = fmt.Sprintf("$%02X", bus.Read(pc+1))
	case cpu.ZeroPageX:
		operandText = fmt.Sprintf("$%02X,X", bus.Read(pc+1))
	case cpu.ZeroPageY:
		operandText = fmt.Sprintf("$%02X,Y", bus.Read(pc+1))
	case cpu.Absolute:
		operandText = fmt.Sprintf("$%04X", memory.ReadU16(bus, pc+1))
	case cpu.AbsoluteX:
		operandText = fmt.Sprintf("$%04X,X", memory.ReadU16(bus, pc+1))
	case cpu.AbsoluteY:
		operandText = fmt.Sprintf("$%04X,Y", memory.ReadU16(bus, pc+1))
	case cpu.Indirect:
		operandText = fmt.Sprintf("($%04X)", memory.ReadU16(bus, pc+1))
	case cpu.IndirectX:
		operandText = fmt.Sprintf("($%02X,X)", bus.Read(pc+1))
	case cpu.IndirectY:
		operandText = fmt.Sprintf("($%02X),Y", bus.Read(pc+1))
	case cpu.Relative:
		off := int8(bus.Read(pc + 1))
		operandText = fmt.Sprintf("$%04X", uint16(int32(pc+2)+int32(off)))
	}

	if operandText == "" {
		return fmt.Sprintf("$%04X: %s", pc, mnemonic), length
	}
	return fmt.Sprintf("$%04X: %s %s", pc, mnemonic, operandText), length
}

// Trace runs c one instruction at a time, calling emit with the
// disassembly of each instruction before it executes, until done
// reports true or Step returns an error. It's the tracing counterpart
// to CPU.RunUntil, used by the CLI's --trace flag.
func Trace(c *cpu.CPU, bus memory.Bus, emit func(string), done func(*cpu.CPU) bool) error {
	for {
		text, _ := Step(bus, c.Registers().PC)
		emit(text)
		if _, err := c.Step(); err != nil {
			return err
		}
		if done(c) {
			return nil
		}
	}
}
