package cpu

import (
	"errors"
	"maps"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCpu(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()

	assert.False(cpu.Verbose)
	assert.True(cpu.Running)
	assert.Equal(0, cpu.Pc)
	assert.Equal([REGISTER_COUNT]int{}, cpu.Registers())
	assert.False(cpu.Cache.Enabled)
	assert.Contains(cpu.String(), "r7: 0")
}

func TestCpuArithmetic(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name     string
		ins      Instruction
		rs, rt   int
		expected int
	}){
		{"add", Instruction{Kind: OP_ADD, Rd: 3, Rs: 1, Rt: 2}, 5, 7, 12},
		{"add_neg", Instruction{Kind: OP_ADD, Rd: 3, Rs: 1, Rt: 2}, -5, 2, -3},
		{"sub", Instruction{Kind: OP_SUB, Rd: 3, Rs: 1, Rt: 2}, 5, 7, -2},
		{"slt_lt", Instruction{Kind: OP_SLT, Rd: 3, Rs: 1, Rt: 2}, 5, 7, 1},
		{"slt_eq", Instruction{Kind: OP_SLT, Rd: 3, Rs: 1, Rt: 2}, 7, 7, 0},
		{"slt_gt", Instruction{Kind: OP_SLT, Rd: 3, Rs: 1, Rt: 2}, 8, 7, 0},
		{"addi", Instruction{Kind: OP_ADDI, Rt: 3, Rs: 1, Imm: -9}, 5, 7, -4},
	}

	for _, entry := range table {
		cpu := NewCpu()
		for n := range cpu.Register {
			cpu.Register[n] = 100 + n
		}
		cpu.Register[1] = entry.rs
		cpu.Register[2] = entry.rt

		before := cpu.Registers()
		assert.NoError(cpu.Execute(entry.ins), entry.name)

		after := cpu.Registers()
		assert.Equal(entry.expected, after[3], entry.name)
		for n := range after {
			if n != 3 {
				assert.Equal(before[n], after[n], entry.name)
			}
		}
	}
}

func TestCpuBranch(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	program := []string{"ADDI,R1,R0,1", "BNE,R1,R2,3", "BNE,R1,R1,3"}

	cpu.Reset()
	assert.NoError(cpu.Step(program))
	assert.Equal(1, cpu.Pc)

	// Unequal: offset plus the step increment.
	assert.NoError(cpu.Step(program))
	assert.Equal(5, cpu.Pc)

	// Equal: only the step increment.
	cpu.Pc = 2
	assert.NoError(cpu.Step(program))
	assert.Equal(3, cpu.Pc)
}

func TestCpuJump(t *testing.T) {
	assert := assert.New(t)

	program := make([]string, 30)
	for n := range program {
		program[n] = "HALT"
	}
	program[5] = "JAL,20"
	program[6] = "J,10"

	cpu := NewCpu()
	cpu.Reset()
	cpu.Pc = 5
	assert.NoError(cpu.Step(program))
	assert.Equal(6, cpu.Register[LINK_REGISTER])
	assert.Equal(21, cpu.Pc)

	cpu.Pc = 6
	assert.NoError(cpu.Step(program))
	assert.Equal(11, cpu.Pc)
	assert.Equal(6, cpu.Register[LINK_REGISTER])
}

func TestCpuLoadStore(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	program := []string{
		"CACHE,1",
		"ADDI,R1,R0,42",
		"ADDI,R2,R0,30",
		"SW,R1,5(R2)",
		"LW,R3,5(R2)",
		"HALT",
	}

	assert.NoError(cpu.Run(program))
	assert.Equal(42, cpu.Register[3])

	value, err := cpu.Memory.Read(35)
	assert.NoError(err)
	assert.Equal(42, value)

	cached, ok := cpu.Cache.Get(35)
	assert.True(ok)
	assert.Equal(42, cached)
}

func TestCpuLoadDisabled(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.NoError(cpu.Memory.Write(12, 99))

	program := []string{
		"CACHE,0",
		"LW,R1,12(R0)",
		"ADDI,R2,R0,5",
		"SW,R2,13(R0)",
		"LW,R3,13(R0)",
	}

	assert.NoError(cpu.Run(program))
	assert.Equal(99, cpu.Register[1])
	assert.Equal(5, cpu.Register[3])
	assert.Equal(0, cpu.Cache.Len())
}

func TestCpuCacheFlush(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.NoError(cpu.Memory.Write(20, 7))

	program := []string{
		"CACHE,1",
		"LW,R1,20(R0)",
		"CACHE,2",
		"LW,R2,20(R0)",
	}

	assert.NoError(cpu.Run(program[:2]))
	assert.Equal(map[int]int{20: 7}, maps.Collect(cpu.Cache.All()))

	// A stale entry hides a write that bypassed the cache.
	assert.NoError(cpu.Memory.Write(20, 8))
	assert.NoError(cpu.Run([]string{"LW,R3,20(R0)"}))
	assert.Equal(7, cpu.Register[3])

	// Flushing re-fetches from memory and repopulates.
	assert.NoError(cpu.Run(program))
	assert.Equal(7, cpu.Register[1])
	assert.Equal(8, cpu.Register[2])
	assert.Equal(map[int]int{20: 8}, maps.Collect(cpu.Cache.All()))
}

func TestCpuCacheDivergence(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	program := []string{
		"CACHE,1",
		"ADDI,R1,R0,1",
		"SW,R1,0(R0)",
		"CACHE,0",
		"ADDI,R1,R0,2",
		"SW,R1,0(R0)",
		"LW,R2,0(R0)",
		"CACHE,9",
	}

	assert.NoError(cpu.Run(program))

	// The disabled store updated memory only; the old entry still hits.
	value, err := cpu.Memory.Read(0)
	assert.NoError(err)
	assert.Equal(2, value)
	assert.Equal(1, cpu.Register[2])
	assert.False(cpu.Cache.Enabled)
}

func TestCpuRun(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.NoError(cpu.Memory.Write(10, 7))

	program := []string{
		"ADDI R2,R0,10",
		"LW R1,0(R2)",
		"HALT",
		"ADDI,R3,R0,1",
	}

	assert.NoError(cpu.Run(program))
	assert.Equal(7, cpu.Register[1])
	assert.Equal(10, cpu.Register[2])
	assert.Equal(0, cpu.Register[3])
	assert.False(cpu.Running)
	assert.True(cpu.Halted())
	assert.Equal(3, cpu.Steps)
	assert.Equal(3, cpu.Pc)
}

func TestCpuRunExhausted(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	program := []string{
		"ADDI,R1,R1,1",
		"ADDI,R1,R1,1",
		"ADDI,R1,R1,1",
		"ADDI,R1,R1,1",
	}

	assert.NoError(cpu.Run(program))
	assert.Equal(4, cpu.Steps)
	assert.Equal(4, cpu.Pc)
	assert.True(cpu.Running)
	assert.False(cpu.Halted())

	// Registers persist across runs; the PC and running flag do not.
	cpu.Running = false
	assert.NoError(cpu.Run(program))
	assert.Equal(8, cpu.Register[1])
	assert.True(cpu.Running)

	cpu.ClearRegisters()
	assert.Equal([REGISTER_COUNT]int{}, cpu.Registers())

	assert.NoError(cpu.Run(nil))
	assert.Equal(0, cpu.Steps)
}

func TestCpuLoop(t *testing.T) {
	assert := assert.New(t)

	// Sum 5+4+3+2+1 into R2.
	program := []string{
		"ADDI,R1,R0,5",
		"ADD,R2,R2,R1",
		"ADDI,R1,R1,-1",
		"BNE,R1,R0,-3",
		"SW,R2,100(R0)",
	}

	cpu := NewCpu()
	assert.NoError(cpu.Run(program))
	assert.Equal(15, cpu.Register[2])

	value, err := cpu.Memory.Read(100)
	assert.NoError(err)
	assert.Equal(15, value)
	assert.Equal(map[int]int{100: 15}, maps.Collect(cpu.Memory.NonZero()))
}

func TestCpuErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []string
		pc      int
		err     error
	}){
		{"unknown", []string{"ADDI,R1,R0,1", "NOP", "HALT"}, 1, ErrUnknownInstruction},
		{"malformed", []string{"ADD,R1,R0"}, 0, ErrMalformedInstruction},
		{"load_range", []string{"ADDI,R1,R0,250", "LW,R2,6(R1)"}, 1, ErrAddressRange},
		{"store_range", []string{"SW,R2,-1(R0)"}, 0, ErrAddressRange},
		{"pc_range", []string{"ADDI,R1,R0,1", "BNE,R1,R0,-4"}, -2, ErrPcRange},
	}

	for _, entry := range table {
		cpu := NewCpu()
		err := cpu.Run(entry.program)
		assert.ErrorIs(err, entry.err, entry.name)

		var step ErrStep
		if assert.True(errors.As(err, &step), entry.name) {
			assert.Equal(entry.pc, step.Pc, entry.name)
		}
	}

	// A branch out of the program is attributed to the branch itself.
	cpu := NewCpu()
	err := cpu.Run([]string{"ADDI,R1,R0,1", "BNE,R1,R0,-4"})
	assert.ErrorIs(err, ErrPcRange)
	assert.Equal(-2, cpu.Pc)
	assert.Equal(1, cpu.LastPc)

	// Nothing after the failure executes.
	cpu = NewCpu()
	err = cpu.Run([]string{"ADDI,R1,R0,1", "BOGUS", "ADDI,R1,R0,2"})
	assert.Error(err)
	assert.Equal(1, cpu.Register[1])
	assert.Equal(1, cpu.Pc)
}

func TestCpuExecuteInvalid(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()

	err := cpu.Execute(Instruction{Kind: Kind(42)})
	assert.ErrorIs(err, ErrUnknownInstruction)

	err = cpu.Execute(Instruction{Kind: OP_ADD, Rd: 8})
	assert.ErrorIs(err, ErrMalformedInstruction)
	assert.Equal([REGISTER_COUNT]int{}, cpu.Registers())
}

func TestCpuBusy(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.busy.Store(true)
	assert.ErrorIs(cpu.Run([]string{"HALT"}), ErrCpuBusy)
	assert.True(cpu.Running)

	cpu.busy.Store(false)
	assert.NoError(cpu.Run([]string{"HALT"}))

	// Concurrent runs either complete or are rejected; none interleave.
	var wg sync.WaitGroup
	errs := make([]error, 8)
	for n := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[n] = cpu.Run([]string{"ADDI,R1,R1,1"})
		}()
	}
	wg.Wait()

	completed := 0
	for _, err := range errs {
		if err == nil {
			completed++
		} else {
			assert.ErrorIs(err, ErrCpuBusy)
		}
	}
	assert.Equal(completed, cpu.Register[1])
}
