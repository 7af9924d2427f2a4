package cpu

import (
	"errors"
	"strconv"
	"strings"
)

// malformed marks err as an operand decoding failure.
func malformed(err ...error) error {
	return errors.Join(append([]error{ErrMalformedInstruction}, err...)...)
}

// parseNumber parses a signed integer operand.
// Decimal is preferred, so "010" is ten; 0x, 0o and 0b prefixes are accepted.
func parseNumber(word string) (value int, err error) {
	v64, err := strconv.ParseInt(word, 10, 64)
	if err != nil {
		v64, err = strconv.ParseInt(word, 0, 64)
	}
	if err != nil {
		err = malformed(ErrParseNumber(word))
		return
	}

	value = int(v64)
	return
}

// parseRegister parses an 'R<n>' register operand.
func parseRegister(word string) (reg int, err error) {
	if len(word) < 2 || (word[0] != 'R' && word[0] != 'r') {
		err = malformed(ErrRegisterInvalid, ErrParseRegister(word))
		return
	}

	reg, err = strconv.Atoi(word[1:])
	if err != nil || reg < 0 || reg >= REGISTER_COUNT {
		err = malformed(ErrRegisterInvalid, ErrParseRegister(word))
		return
	}

	return
}

// parseOffset parses an 'offset(Rn)' load/store operand.
func parseOffset(word string) (offset int, reg int, err error) {
	open := strings.IndexByte(word, '(')
	if open < 0 || !strings.HasSuffix(word, ")") {
		err = malformed(ErrOffsetSyntax)
		return
	}

	offset, err = parseNumber(strings.TrimSpace(word[:open]))
	if err != nil {
		return
	}

	reg, err = parseRegister(strings.TrimSpace(word[open+1 : len(word)-1]))
	return
}

// splitRecord separates the mnemonic from its comma separated operands.
// The mnemonic may be followed by either a comma or whitespace.
func splitRecord(line string) (mnemonic string, args []string) {
	line = strings.TrimSpace(line)

	end := strings.IndexAny(line, ", \t")
	if end < 0 {
		mnemonic = line
		return
	}

	mnemonic = line[:end]
	rest := strings.TrimSpace(line[end:])
	rest = strings.TrimPrefix(rest, ",")
	if len(strings.TrimSpace(rest)) == 0 && line[end] != ',' {
		return
	}

	for _, arg := range strings.Split(rest, ",") {
		args = append(args, strings.TrimSpace(arg))
	}

	return
}

// Decode decodes a single instruction record, such as "ADD,R1,R2,R3" or
// "LW R1,4(R2)".
func Decode(line string) (ins Instruction, err error) {
	defer func() {
		if err != nil {
			err = ErrDecode{Line: line, Err: err}
		}
	}()

	mnemonic, args := splitRecord(line)

	kind, ok := kindMap[mnemonic]
	if !ok {
		err = ErrUnknownInstruction
		return
	}

	ins.Kind = kind

	shape := kind.Shape()
	if len(args) != shape.Operands() {
		err = malformed(ErrOperandCount)
		return
	}

	for _, arg := range args {
		if len(arg) == 0 {
			err = malformed(ErrOperandMissing)
			return
		}
	}

	switch shape {
	case SHAPE_NONE:
		// pass
	case SHAPE_RRR:
		targets := []*int{&ins.Rd, &ins.Rs, &ins.Rt}
		for n, arg := range args {
			*targets[n], err = parseRegister(arg)
			if err != nil {
				return
			}
		}
	case SHAPE_RRI:
		first, second := &ins.Rt, &ins.Rs
		if kind == OP_BNE {
			first, second = &ins.Rs, &ins.Rt
		}
		*first, err = parseRegister(args[0])
		if err != nil {
			return
		}
		*second, err = parseRegister(args[1])
		if err != nil {
			return
		}
		ins.Imm, err = parseNumber(args[2])
	case SHAPE_IMM:
		ins.Imm, err = parseNumber(args[0])
	case SHAPE_OFFSET:
		ins.Rt, err = parseRegister(args[0])
		if err != nil {
			return
		}
		ins.Imm, ins.Rs, err = parseOffset(args[1])
	}

	return
}
