package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/intuitionamiga/m68kemu/internal/atari"
	"github.com/intuitionamiga/m68kemu/internal/m68k"
)

func main() {
	var (
		romPath   string
		base      string
		debug     bool
		maxCycles uint64
	)

	rootCmd := &cobra.Command{
		Use:   "m68kemu",
		Short: "M68000 core emulator — boots a flat program image against an Atari ST profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := os.ReadFile(romPath)
			if err != nil {
				return fmt.Errorf("reading rom: %w", err)
			}

			baseAddr := atari.SystemBase
			if base != "" {
				v, err := strconv.ParseUint(base, 0, 32)
				if err != nil {
					return fmt.Errorf("parsing --base: %w", err)
				}
				baseAddr = uint32(v)
			}

			emu := atari.Profile()
			emu.MaxInstructions = maxCycles
			if err := atari.LoadAndBootAt(emu, baseAddr, program); err != nil {
				return fmt.Errorf("booting image: %w", err)
			}

			if debug {
				runDebug(emu)
				return nil
			}
			emu.Run()
			fmt.Printf("halted after %d instructions at PC=%#08x\n",
				emu.CPU.InstructionCount, emu.CPU.PC)
			return nil
		},
	}

	rootCmd.Flags().StringVar(&romPath, "rom", "", "path to a flat binary program image (required)")
	rootCmd.Flags().StringVar(&base, "base", "", "load/start address override, decimal or 0x-hex (default: profile system base)")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "single-step and print CPU state after every instruction")
	rootCmd.Flags().Uint64Var(&maxCycles, "max-cycles", 0, "stop after this many instructions (0 = unbounded)")
	_ = rootCmd.MarkFlagRequired("rom")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "m68kemu: %v\n", err)
		os.Exit(1)
	}
}

// runDebug single-steps the CPU, printing register state after each
// instruction, until a device signals Quit, the CPU halts, or
// MaxInstructions is reached.
func runDebug(emu *m68k.Emulator) {
	for {
		sig := emu.Step()
		c := emu.CPU
		fmt.Printf("PC=%#08x SR=%#04x D0-3=%08x %08x %08x %08x A0-3=%08x %08x %08x %08x count=%d\n",
			c.PC, c.SR, c.D[0], c.D[1], c.D[2], c.D[3],
			c.AddrReg(0), c.AddrReg(1), c.AddrReg(2), c.AddrReg(3),
			c.InstructionCount)
		if sig.Kind == m68k.SignalQuit {
			return
		}
		if emu.MaxInstructions != 0 && c.InstructionCount >= emu.MaxInstructions {
			return
		}
	}
}
