package cpu

import (
	"fmt"
)

// Kind is the operation performed by an instruction.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	OP_ADD   = Kind(0)  // ADD
	OP_ADDI  = Kind(1)  // ADDI
	OP_SUB   = Kind(2)  // SUB
	OP_SLT   = Kind(3)  // SLT
	OP_BNE   = Kind(4)  // BNE
	OP_J     = Kind(5)  // J
	OP_JAL   = Kind(6)  // JAL
	OP_LW    = Kind(7)  // LW
	OP_SW    = Kind(8)  // SW
	OP_CACHE = Kind(9)  // CACHE
	OP_HALT  = Kind(10) // HALT
)

// Shape is the operand layout of an instruction.
type Shape int

const (
	SHAPE_NONE   = Shape(0) // HALT
	SHAPE_RRR    = Shape(1) // rd,rs,rt
	SHAPE_RRI    = Shape(2) // r,r,imm
	SHAPE_IMM    = Shape(3) // imm
	SHAPE_OFFSET = Shape(4) // rt,imm(rs)
)

// CodeCache is a CACHE instruction control code.
type CodeCache int

const (
	CACHE_DISABLE = CodeCache(0)
	CACHE_ENABLE  = CodeCache(1)
	CACHE_FLUSH   = CodeCache(2)
)

// kindMap maps instruction mnemonics to their kind.
var kindMap = map[string]Kind{
	"ADD":   OP_ADD,
	"ADDI":  OP_ADDI,
	"SUB":   OP_SUB,
	"SLT":   OP_SLT,
	"BNE":   OP_BNE,
	"J":     OP_J,
	"JAL":   OP_JAL,
	"LW":    OP_LW,
	"SW":    OP_SW,
	"CACHE": OP_CACHE,
	"HALT":  OP_HALT,
}

// Shape returns the operand layout used by the kind.
func (kind Kind) Shape() Shape {
	switch kind {
	case OP_ADD, OP_SUB, OP_SLT:
		return SHAPE_RRR
	case OP_ADDI, OP_BNE:
		return SHAPE_RRI
	case OP_J, OP_JAL, OP_CACHE:
		return SHAPE_IMM
	case OP_LW, OP_SW:
		return SHAPE_OFFSET
	}

	return SHAPE_NONE
}

// Operands returns the number of comma separated operands of the shape.
func (shape Shape) Operands() int {
	switch shape {
	case SHAPE_RRR, SHAPE_RRI:
		return 3
	case SHAPE_IMM:
		return 1
	case SHAPE_OFFSET:
		return 2
	}

	return 0
}

// Instruction is a single decoded instruction.
//
// Which fields are meaningful depends on the Kind:
//
//	ADD, SUB, SLT  Rd, Rs, Rt
//	ADDI           Rt, Rs, Imm
//	BNE            Rs, Rt, Imm (branch offset)
//	J, JAL         Imm (target)
//	LW, SW         Rt, Imm (offset), Rs (base)
//	CACHE          Imm (control code)
//	HALT           -
type Instruction struct {
	Kind Kind
	Rd   int
	Rs   int
	Rt   int
	Imm  int
}

// Registers returns the register operands used by the instruction.
func (ins Instruction) Registers() (regs []int) {
	switch ins.Kind {
	case OP_ADD, OP_SUB, OP_SLT:
		regs = []int{ins.Rd, ins.Rs, ins.Rt}
	case OP_ADDI, OP_LW, OP_SW:
		regs = []int{ins.Rt, ins.Rs}
	case OP_BNE:
		regs = []int{ins.Rs, ins.Rt}
	}

	return
}

// Valid returns nil if the instruction can be executed.
func (ins Instruction) Valid() (err error) {
	if ins.Kind < OP_ADD || ins.Kind > OP_HALT {
		err = ErrUnknownInstruction
		return
	}

	for _, reg := range ins.Registers() {
		if reg < 0 || reg >= REGISTER_COUNT {
			err = malformed(ErrParseRegister(fmt.Sprintf("R%d", reg)))
			return
		}
	}

	return
}

// String returns the canonical record text of the instruction.
func (ins Instruction) String() (text string) {
	switch ins.Kind.Shape() {
	case SHAPE_RRR:
		text = fmt.Sprintf("%v,R%d,R%d,R%d", ins.Kind, ins.Rd, ins.Rs, ins.Rt)
	case SHAPE_RRI:
		if ins.Kind == OP_BNE {
			text = fmt.Sprintf("%v,R%d,R%d,%d", ins.Kind, ins.Rs, ins.Rt, ins.Imm)
		} else {
			text = fmt.Sprintf("%v,R%d,R%d,%d", ins.Kind, ins.Rt, ins.Rs, ins.Imm)
		}
	case SHAPE_IMM:
		text = fmt.Sprintf("%v,%d", ins.Kind, ins.Imm)
	case SHAPE_OFFSET:
		text = fmt.Sprintf("%v,R%d,%d(R%d)", ins.Kind, ins.Rt, ins.Imm, ins.Rs)
	default:
		text = ins.Kind.String()
	}

	return
}
