package cpu

import (
	"fmt"
	"log"
	"sync/atomic"
)

const (
	REGISTER_COUNT = 8 // Number of general purpose registers.
	LINK_REGISTER  = 7 // Register written by JAL.
)

// Cpu is the simulation context for the SimpleCPU register machine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Pc       int                 // Program counter, as an index into the program.
	LastPc   int                 // Program counter of the last executed instruction.
	Register [REGISTER_COUNT]int // Register bank.
	Running  bool                // Cleared by HALT.
	Steps    int                 // Instructions executed since the last Reset.

	Memory Memory // Memory bus.
	Cache  Cache  // Cache in front of the memory bus.

	busy atomic.Bool
}

// NewCpu creates a new CPU with zeroed registers and memory, and a disabled
// cache.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Running: true,
	}

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 5s: %v\n", "pc", cpu.Pc)
	text += fmt.Sprintf("% 5s: %v\n", "run", cpu.Running)
	text += fmt.Sprintf("% 5s: %v (%d)\n", "cache", cpu.Cache.Enabled, cpu.Cache.Len())
	for n, val := range cpu.Register {
		text += fmt.Sprintf("% 5s: %v\n", fmt.Sprintf("r%d", n), val)
	}

	return
}

// Reset prepares the CPU for a new run.
// - Sets the PC to 0.
// - Sets the CPU running.
// - Zeros the step counter and the last executed PC.
//
// Registers, memory, and cache are retained.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Pc = 0
	cpu.LastPc = 0
	cpu.Running = true
	cpu.Steps = 0
}

// ClearRegisters zeroes the register bank.
func (cpu *Cpu) ClearRegisters() {
	clear(cpu.Register[:])
}

// Registers returns a snapshot of the register bank.
func (cpu *Cpu) Registers() [REGISTER_COUNT]int {
	return cpu.Register
}

// Halted returns true if the last run was stopped by HALT.
func (cpu *Cpu) Halted() bool {
	return !cpu.Running
}

// Run executes program from PC 0 until HALT, or until the PC is past the
// end of the program.
func (cpu *Cpu) Run(program []string) (err error) {
	if !cpu.busy.CompareAndSwap(false, true) {
		err = ErrCpuBusy
		return
	}
	defer cpu.busy.Store(false)

	cpu.Reset()

	for cpu.Running && cpu.Pc < len(program) {
		err = cpu.Step(program)
		if err != nil {
			return
		}
	}

	if cpu.Verbose {
		log.Printf("cpu: stopped at pc %v after %v steps, halted %v", cpu.Pc, cpu.Steps, cpu.Halted())
	}

	return
}

// Step decodes and executes the instruction at the PC, then advances the PC.
func (cpu *Cpu) Step(program []string) (err error) {
	pc := cpu.Pc
	defer func() {
		if err != nil {
			err = ErrStep{Pc: pc, Err: err}
		}
	}()

	if pc < 0 || pc >= len(program) {
		err = ErrPc(pc)
		return
	}

	ins, err := Decode(program[pc])
	if err != nil {
		return
	}

	err = cpu.Execute(ins)
	if err != nil {
		return
	}

	cpu.LastPc = pc
	cpu.Pc++
	cpu.Steps++

	return
}

// Execute executes a single decoded instruction.
//
// Branches and jumps modify the PC directly; the caller still advances the
// PC by one afterwards, as Step does.
func (cpu *Cpu) Execute(ins Instruction) (err error) {
	err = ins.Valid()
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("%03d: %v", cpu.Pc, ins)
	}

	reg := &cpu.Register

	switch ins.Kind {
	case OP_ADD:
		reg[ins.Rd] = reg[ins.Rs] + reg[ins.Rt]
	case OP_ADDI:
		reg[ins.Rt] = reg[ins.Rs] + ins.Imm
	case OP_SUB:
		reg[ins.Rd] = reg[ins.Rs] - reg[ins.Rt]
	case OP_SLT:
		reg[ins.Rd] = 0
		if reg[ins.Rs] < reg[ins.Rt] {
			reg[ins.Rd] = 1
		}
	case OP_BNE:
		if reg[ins.Rs] != reg[ins.Rt] {
			cpu.Pc += ins.Imm
		}
	case OP_J:
		cpu.Pc = ins.Imm
	case OP_JAL:
		reg[LINK_REGISTER] = cpu.Pc + 1
		cpu.Pc = ins.Imm
	case OP_LW:
		address := reg[ins.Rs] + ins.Imm
		value, ok := cpu.Cache.Get(address)
		if !ok {
			value, err = cpu.Memory.Read(address)
			if err != nil {
				return
			}
			cpu.Cache.Set(address, value)
		}
		reg[ins.Rt] = value
	case OP_SW:
		address := reg[ins.Rs] + ins.Imm
		value := reg[ins.Rt]
		err = cpu.Memory.Write(address, value)
		if err != nil {
			return
		}
		cpu.Cache.Set(address, value)
	case OP_CACHE:
		switch CodeCache(ins.Imm) {
		case CACHE_DISABLE:
			cpu.Cache.Disable()
		case CACHE_ENABLE:
			cpu.Cache.Enable()
		case CACHE_FLUSH:
			cpu.Cache.Flush()
		default:
			// Unknown cache controls are ignored.
		}
	case OP_HALT:
		cpu.Running = false
	default:
		err = ErrUnknownInstruction
		return
	}

	return
}
