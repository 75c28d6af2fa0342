package cpu

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	deep "github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retrobus/mos6502/memory"
)

// newMachine wires a fresh CPU to a fresh flat RAM, sets the reset
// vector to origin, and brings the CPU out of Reset pointing there.
func newMachine(t *testing.T, origin uint16) (*CPU, *memory.RAM) {
	t.Helper()
	ram := memory.NewRAM()
	memory.WriteU16(ram, ResetVector, origin)
	c := New(ram)
	c.Reset()
	require.Equal(t, origin, c.PC)
	return c, ram
}

// dumpOnFail prints a spew dump of the CPU's registers if the test has
// already failed, so a broken scenario shows its final state.
func dumpOnFail(t *testing.T, c *CPU) {
	t.Helper()
	if t.Failed() {
		t.Log(spew.Sdump(c.Registers()))
	}
}

func step(t *testing.T, c *CPU) {
	t.Helper()
	_, err := c.Step()
	require.NoError(t, err)
}

// --- End-to-end scenarios ---

func TestScenarioLoadTransferIncrement(t *testing.T) {
	c, ram := newMachine(t, 0x0600)
	prog := []uint8{
		0xA9, 0x41, // LDA #$41
		0xAA,       // TAX
		0xE8,       // INX
		0x8E, 0x00, 0x02, // STX $0200
	}
	for i, b := range prog {
		ram.Write(0x0600+uint16(i), b)
	}
	step(t, c)
	assert.Equal(t, uint8(0x41), c.A)
	step(t, c)
	assert.Equal(t, uint8(0x41), c.X)
	step(t, c)
	assert.Equal(t, uint8(0x42), c.X)
	step(t, c)
	assert.Equal(t, uint8(0x42), ram.Read(0x0200))
	dumpOnFail(t, c)
}

func TestScenarioSignedOverflow(t *testing.T) {
	c, ram := newMachine(t, 0x0600)
	// 0x50 + 0x50 = 0xA0: two positives producing a negative result.
	ram.Write(0x0600, 0xA9) // LDA #$50
	ram.Write(0x0601, 0x50)
	ram.Write(0x0602, 0x69) // ADC #$50
	ram.Write(0x0603, 0x50)
	step(t, c)
	step(t, c)
	assert.Equal(t, uint8(0xA0), c.A)
	assert.True(t, c.P.Overflow())
	assert.True(t, c.P.Negative())
	assert.False(t, c.P.Carry())
	dumpOnFail(t, c)
}

func TestScenarioSubtractionWithBorrow(t *testing.T) {
	c, ram := newMachine(t, 0x0600)
	ram.Write(0x0600, 0x38) // SEC (no incoming borrow)
	ram.Write(0x0601, 0xA9) // LDA #$05
	ram.Write(0x0602, 0x05)
	ram.Write(0x0603, 0xE9) // SBC #$06
	ram.Write(0x0604, 0x06)
	step(t, c)
	step(t, c)
	step(t, c)
	assert.Equal(t, uint8(0xFF), c.A)
	assert.False(t, c.P.Carry()) // borrow occurred
	assert.True(t, c.P.Negative())
	dumpOnFail(t, c)
}

func TestScenarioJSRRTSRoundTrip(t *testing.T) {
	c, ram := newMachine(t, 0x0600)
	ram.Write(0x0600, 0x20) // JSR $0610
	ram.Write(0x0601, 0x10)
	ram.Write(0x0602, 0x06)
	ram.Write(0x0603, 0xEA) // NOP (landing pad after RTS)
	ram.Write(0x0610, 0x60) // RTS
	step(t, c)
	assert.Equal(t, uint16(0x0610), c.PC)
	step(t, c)
	assert.Equal(t, uint16(0x0603), c.PC)
	dumpOnFail(t, c)
}

func TestScenarioBranchTakenNotTaken(t *testing.T) {
	c, ram := newMachine(t, 0x0600)
	ram.Write(0x0600, 0xA9) // LDA #$00
	ram.Write(0x0601, 0x00)
	ram.Write(0x0602, 0xF0) // BEQ +2 (taken: Z is set)
	ram.Write(0x0603, 0x02)
	ram.Write(0x0604, 0xEA) // NOP (skipped)
	ram.Write(0x0605, 0xEA) // NOP (skipped)
	ram.Write(0x0606, 0xD0) // BNE +2 (not taken: Z is still set)
	ram.Write(0x0607, 0x02)
	ram.Write(0x0608, 0xEA) // NOP (landed on)
	step(t, c)
	step(t, c)
	assert.Equal(t, uint16(0x0606), c.PC)
	step(t, c)
	assert.Equal(t, uint16(0x0608), c.PC)
	dumpOnFail(t, c)
}

func TestScenarioIndirectJMPPageBug(t *testing.T) {
	c, ram := newMachine(t, 0x0600)
	ram.Write(0x0600, 0x6C) // JMP ($02FF)
	ram.Write(0x0601, 0xFF)
	ram.Write(0x0602, 0x02)
	ram.Write(0x02FF, 0x00) // low byte of target
	ram.Write(0x0300, 0x80) // NOT read: the bug reads 0x0200 instead
	ram.Write(0x0200, 0x12) // high byte of target, per the bug
	step(t, c)
	assert.Equal(t, uint16(0x1200), c.PC)
	dumpOnFail(t, c)
}

// --- Round-trip properties ---

func TestRoundTripPushPull(t *testing.T) {
	c, _ := newMachine(t, 0x0600)
	c.A = 0x77
	c.push(c.A)
	c.A = 0
	c.A = c.pull()
	assert.Equal(t, uint8(0x77), c.A)
}

func TestRoundTripStatusPushPull(t *testing.T) {
	c, _ := newMachine(t, 0x0600)
	c.P.SetCarry(true)
	c.P.SetOverflow(true)
	before := c.P.Byte(false)
	c.push(c.P.Byte(false))
	c.P = FlagsFromByte(c.pull())
	assert.Equal(t, before, c.P.Byte(false))
}

func TestRoundTripShiftThenRotate(t *testing.T) {
	c, ram := newMachine(t, 0x0600)
	c.A = 0x81
	ram.Write(0x0600, 0x0A) // ASL A
	ram.Write(0x0601, 0x6A) // ROR A
	step(t, c)
	assert.Equal(t, uint8(0x02), c.A)
	assert.True(t, c.P.Carry())
	step(t, c)
	assert.Equal(t, uint8(0x81), c.A)
	dumpOnFail(t, c)
}

func TestRoundTripSECSBCEquivalentToCLCADCComplement(t *testing.T) {
	a, aram := newMachine(t, 0x0600)
	b, bram := newMachine(t, 0x0600)
	a.A, b.A = 0x10, 0x10
	aram.Write(0x0600, 0x38) // SEC
	aram.Write(0x0601, 0xE9) // SBC #$03
	aram.Write(0x0602, 0x03)
	bram.Write(0x0600, 0x18) // CLC
	bram.Write(0x0601, 0x69) // ADC #$FD (two's complement of $03)
	bram.Write(0x0602, 0xFD)
	step(t, a)
	step(t, a)
	step(t, b)
	step(t, b)
	if diff := deep.Equal(a.Registers(), b.Registers()); diff != nil {
		t.Errorf("SBC/ADC-complement divergence: %v", diff)
	}
}

// --- Boundary behaviors ---

func TestINXWrapsAt256(t *testing.T) {
	c, ram := newMachine(t, 0x0600)
	c.X = 0xFF
	ram.Write(0x0600, 0xE8) // INX
	step(t, c)
	assert.Equal(t, uint8(0x00), c.X)
	assert.True(t, c.P.Zero())
}

func TestDEXWrapsBelowZero(t *testing.T) {
	c, ram := newMachine(t, 0x0600)
	c.X = 0x00
	ram.Write(0x0600, 0xCA) // DEX
	step(t, c)
	assert.Equal(t, uint8(0xFF), c.X)
	assert.True(t, c.P.Negative())
}

func TestLDASetsZeroFlag(t *testing.T) {
	c, ram := newMachine(t, 0x0600)
	ram.Write(0x0600, 0xA9) // LDA #$00
	ram.Write(0x0601, 0x00)
	step(t, c)
	assert.True(t, c.P.Zero())
	assert.False(t, c.P.Negative())
}

func TestLDASetsNegativeFlag(t *testing.T) {
	c, ram := newMachine(t, 0x0600)
	ram.Write(0x0600, 0xA9) // LDA #$80
	ram.Write(0x0601, 0x80)
	step(t, c)
	assert.False(t, c.P.Zero())
	assert.True(t, c.P.Negative())
}

func TestADCOverflowBoundaryNegativePlusNegative(t *testing.T) {
	c, ram := newMachine(t, 0x0600)
	// -1 + -1 = -2: no overflow (both operands and result negative is fine).
	ram.Write(0x0600, 0xA9) // LDA #$FF
	ram.Write(0x0601, 0xFF)
	ram.Write(0x0602, 0x69) // ADC #$FF
	ram.Write(0x0603, 0xFF)
	step(t, c)
	step(t, c)
	assert.Equal(t, uint8(0xFE), c.A)
	assert.False(t, c.P.Overflow())
	assert.True(t, c.P.Carry())
}

// --- Universal invariants ---

func TestReserveFlagAlwaysReadsAsOne(t *testing.T) {
	c, ram := newMachine(t, 0x0600)
	ram.Write(0x0600, 0x08) // PHP
	ram.Write(0x0601, 0x68) // PLA — pulls the pushed status byte into A
	step(t, c)
	step(t, c)
	assert.NotZero(t, c.A&0x20)
}

func TestTXSDoesNotTouchFlags(t *testing.T) {
	c, ram := newMachine(t, 0x0600)
	c.X = 0x00
	c.P.SetZero(false)
	c.P.SetNegative(true)
	ram.Write(0x0600, 0x9A) // TXS
	step(t, c)
	assert.Equal(t, uint8(0x00), c.S)
	assert.False(t, c.P.Zero())
	assert.True(t, c.P.Negative())
}

func TestBRKVectorsThroughIRQVector(t *testing.T) {
	c, ram := newMachine(t, 0x0600)
	memory.WriteU16(ram, IRQVector, 0x9000)
	ram.Write(0x0600, 0x00) // BRK
	step(t, c)
	assert.Equal(t, uint16(0x9000), c.PC)
	assert.True(t, c.P.InterruptDisable())
}

func TestUnknownOpcodeLeavesStateUntouched(t *testing.T) {
	c, ram := newMachine(t, 0x0600)
	ram.Write(0x0600, 0x02) // undocumented
	before := c.Registers()
	_, err := c.Step()
	require.Error(t, err)
	var unk UnknownOpcode
	require.ErrorAs(t, err, &unk)
	assert.Equal(t, uint8(0x02), unk.Opcode)
	assert.Equal(t, before, c.Registers())
}
