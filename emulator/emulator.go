// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"log"
	"slices"

	"github.com/ezrec/simplecpu/cpu"
	"github.com/ezrec/simplecpu/io"
)

// Emulator state. CPU + loaded program.
type Emulator struct {
	Verbose  bool        // If set, enables verbose logging.
	*cpu.Cpu             // Reference to the CPU simulation.
	Program  *io.Program // Reference to the currently loaded program listing.

	Policy ResetPolicy // State cleared between runs.

	ran bool
}

// Snapshot is the post-run state of the emulator.
type Snapshot struct {
	Registers [cpu.REGISTER_COUNT]int // Register bank, R0 through R7.
	Memory    []io.Datum              // Non-zero memory cells, ascending by address.
	Cache     []io.Datum              // Cache entries, ascending by address.
	Pc        int                     // Final program counter.
	Steps     int                     // Instructions executed.
	Halted    bool                    // Set if HALT stopped the run.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &io.Program{},
	}

	return
}

// Initialize stores each pair into memory, and offers it to the cache.
// The cache only keeps the pairs if it is already enabled.
func (emu *Emulator) Initialize(data []io.Datum) (err error) {
	for n, datum := range data {
		err = emu.Cpu.Memory.Write(datum.Address, datum.Value)
		if err != nil {
			err = &ErrInitialize{Index: n, Err: err}
			return
		}
		emu.Cpu.Cache.Set(datum.Address, datum.Value)
	}

	if emu.Verbose {
		log.Printf("emulator: initialized %v memory cells", len(data))
	}

	return
}

// Reset clears the state selected by the reset policy.
func (emu *Emulator) Reset() {
	if emu.Policy&RESET_MEMORY != 0 {
		emu.Cpu.Memory.Reset()
	}
	if emu.Policy&RESET_CACHE != 0 {
		emu.Cpu.Cache.Reset()
	}
	if emu.Policy&RESET_REGISTERS != 0 {
		emu.Cpu.ClearRegisters()
	}

	emu.Cpu.Reset()
}

// LineNo returns the source line number of the current instruction.
func (emu *Emulator) LineNo() int {
	return emu.Program.LineNo(emu.Cpu.Pc)
}

// Run runs the loaded program to completion. The reset policy is applied
// before every run but the first, so initialized memory reaches the first run.
func (emu *Emulator) Run() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	if emu.ran {
		emu.Reset()
	}
	emu.ran = true

	err = emu.Cpu.Run(emu.Program.Records())
	if err != nil {
		lineno := emu.LineNo()
		if errors.Is(err, cpu.ErrPcRange) {
			// Name the instruction that moved the PC out of the program.
			lineno = emu.Program.LineNo(emu.Cpu.LastPc)
		}
		err = &ErrRuntime{LineNo: lineno, Pc: emu.Cpu.Pc, Err: err}
		return
	}

	return
}

// Snapshot captures the registers, memory, and cache.
func (emu *Emulator) Snapshot() (snap Snapshot) {
	snap = Snapshot{
		Registers: emu.Cpu.Registers(),
		Pc:        emu.Cpu.Pc,
		Steps:     emu.Cpu.Steps,
		Halted:    emu.Cpu.Halted(),
	}

	for address, value := range emu.Cpu.Memory.NonZero() {
		snap.Memory = append(snap.Memory, io.Datum{Address: address, Value: value})
	}

	for address, value := range emu.Cpu.Cache.All() {
		snap.Cache = append(snap.Cache, io.Datum{Address: address, Value: value})
	}

	snap.Memory = slices.Clip(snap.Memory)
	snap.Cache = slices.Clip(snap.Cache)

	return
}
