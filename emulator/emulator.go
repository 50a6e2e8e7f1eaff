// Copyright 2026, SarahGreyWolf

package emulator

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"maps"
	"time"

	"github.com/SarahGreyWolf/grey6502/cpu"
	"github.com/SarahGreyWolf/grey6502/internal"
)

// DEFAULT_ORIGIN is where images load when the listing has no origin
// directive of its own.
const DEFAULT_ORIGIN = uint16(0x0600)

var _emulator_defines = map[string]string{
	"DEFAULT_ORIGIN": fmt.Sprintf("0x%x", DEFAULT_ORIGIN),
}

// Emulator couples a processor with a program listing: it loads the
// assembled image, steps the processor, paces execution against a
// wall clock, and maps failures back to source lines.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program listing.

	Clock time.Duration // Per-instruction pacing; zero runs unpaced.
}

// NewEmulator creates a new emulator with an empty program.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	return
}

// Defines returns an iterator over all of the defines.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Load places a raw image into memory at origin. The program listing
// is cleared; line mapping needs an assembled listing.
func (emu *Emulator) Load(origin uint16, image []byte) {
	emu.Program = &cpu.Program{Origin: origin}
	for n, b := range image {
		emu.Cpu.Mem.Write(origin+uint16(n), b)
	}
	emu.Cpu.Reg.PC = origin
}

// LoadProgram attaches an assembled listing and resets into it.
func (emu *Emulator) LoadProgram(prog *cpu.Program) {
	emu.Program = prog
	emu.Reset()
}

// Reset returns the processor to power-on state, reloads the program
// image, and points the program counter at its origin.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose

	emu.Cpu.Reset()

	origin := emu.Program.Origin
	for n, b := range emu.Program.Binary() {
		emu.Cpu.Mem.Write(origin+uint16(n), b)
	}
	emu.Cpu.Reg.PC = origin
}

// Steps returns the count of completed instructions since a reset.
func (emu *Emulator) Steps() int {
	return emu.Cpu.Steps
}

// LineNo returns the source line of the instruction the program
// counter addresses, or 0 when it points outside the listing.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Cpu.Reg.PC)
	if dbg.Opcode == nil {
		return 0
	}
	return dbg.LineNo
}

// Tick executes a single instruction. A halt reports done rather than
// an error; anything else is wrapped with the source line it happened
// on.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Step()
	if errors.Is(err, cpu.ErrHalted) {
		err = nil
		done = true
	}

	return
}

// Run ticks until the program halts, fails, or the context is
// canceled. A nonzero Clock paces each instruction against the wall
// clock; pacing is advisory scheduling around the loop, never
// interleaved with an instruction.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	var tick <-chan time.Time
	if emu.Clock > 0 {
		ticker := time.NewTicker(emu.Clock)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		done, err := emu.Tick()
		if done || err != nil {
			return err
		}

		if tick == nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick:
		}
	}
}
