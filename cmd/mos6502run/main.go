// Command mos6502run loads a program image and runs it against a flat
// 64KiB bus, optionally tracing each instruction as it executes.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/retrobus/mos6502/cpu"
	"github.com/retrobus/mos6502/disassembler"
	"github.com/retrobus/mos6502/loader"
	"github.com/retrobus/mos6502/memory"
)

var (
	origin   uint16
	isHex    bool
	trace    bool
	maxSteps int
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mos6502run",
		Short: "Run a 6502 program image against an emulated core",
	}
	root.AddCommand(runCmd())
	return root
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Load a program image and execute it",
		Args:  cobra.ExactArgs(1),
		RunE:  runRun,
	}
	flags := cmd.Flags()
	var originArg uint32
	flags.Uint32Var(&originArg, "origin", 0x0600, "load address for a flat binary image; with --hex, the address written to the reset vector")
	flags.BoolVar(&isHex, "hex", false, "treat the input file as Intel HEX records instead of a flat binary")
	flags.BoolVar(&trace, "trace", false, "print a disassembly of each instruction before it executes")
	flags.IntVar(&maxSteps, "max-steps", 1_000_000, "stop after this many instructions even if the program hasn't halted")
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		origin = uint16(originArg)
		return nil
	}
	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	bus := memory.NewRAM()
	if isHex || strings.EqualFold(filepath.Ext(path), ".hex") {
		if err := loader.LoadIntelHex(bus, strings.NewReader(string(data))); err != nil {
			return fmt.Errorf("loading %s as Intel HEX: %w", path, err)
		}
		memory.WriteU16(bus, cpu.ResetVector, origin)
	} else {
		loader.LoadFlat(bus, origin, data)
	}

	c := cpu.New(bus)
	c.Reset()

	steps := 0
	done := func(*cpu.CPU) bool {
		steps++
		return steps >= maxSteps
	}

	if trace {
		emit := func(text string) { fmt.Fprintln(cmd.OutOrStdout(), text) }
		return disassembler.Trace(c, bus, emit, done)
	}
	return c.RunUntil(done)
}
