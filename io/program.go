// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package io reads the instruction and data files that feed the simulator.
package io

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Line is a single instruction record and its source line number.
type Line struct {
	LineNo int
	Text   string
}

// Program is an ordered list of instruction records.
type Program struct {
	Lines []Line
}

// Records returns the instruction records in program order.
func (prog *Program) Records() (records []string) {
	records = make([]string, len(prog.Lines))
	for n, line := range prog.Lines {
		records[n] = line.Text
	}
	return
}

// LineNo returns the source line number of the record at pc, or 0.
func (prog *Program) LineNo(pc int) int {
	if pc < 0 || pc >= len(prog.Lines) {
		return 0
	}
	return prog.Lines[pc].LineNo
}

// Loader reads instruction files.
//
// Beyond plain records, a file may contain:
//
//	; comments, and blank lines
//	.equ NAME VALUE       ; replaces later NAME operands with VALUE
//	ADDI,R1,R0,$(4*SIZE)  ; compile-time integer expression
type Loader struct {
	Verbose bool              // If set, verbosely logs the loader actions.
	Equate  map[string]string // Map of equates.

	predefine map[string]string
}

// Predefine defines an equate before any file is read.
func (ld *Loader) Predefine(equ string, value string) {
	if ld.predefine == nil {
		ld.predefine = map[string]string{equ: value}
	} else {
		ld.predefine[equ] = value
	}
}

// valueOf returns the integer value of a word.
func valueOf(word string) (value int64, err error) {
	value, err = strconv.ParseInt(word, 10, 64)
	if err != nil {
		value, err = strconv.ParseInt(word, 0, 64)
	}
	if err != nil {
		err = ErrParseNumber(word)
	}
	return
}

// parenEval does compile-time $(...) evaluations
func (ld *Loader) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "equ"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range ld.Equate {
		var v64 int64
		v64, err = valueOf(str)
		if err != nil {
			// Ignore non-integer equates, such as register names.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

var (
	reParen = regexp.MustCompile(`\$\([^\$]*\)`)
	reWord  = regexp.MustCompile(`\b[A-Za-z_][A-Za-z0-9_]*\b`)
)

// parseLine expands a single line. An empty result is not a record.
func (ld *Loader) parseLine(line string, lineno int) (record string, err error) {
	ld.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	line = strings.TrimSpace(strings.Split(line, ";")[0])
	if len(line) == 0 {
		return
	}

	// Do $() evaluations
	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := ld.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	// .equ NAME VALUE
	words := strings.Fields(line)
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := ld.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		ld.Equate[words[1]] = words[2]
		return
	}

	// Replace equates in the operands, leaving the mnemonic alone.
	head := reWord.FindStringIndex(line)
	if head == nil || head[0] != 0 {
		head = []int{0, 0}
	}
	record = line[:head[1]] + reWord.ReplaceAllStringFunc(line[head[1]:], func(word string) string {
		equate, ok := ld.Equate[word]
		if ok {
			return equate
		}
		return word
	})

	return
}

// Parse parses an input stream into a Program.
func (ld *Loader) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	ld.Equate = map[string]string{"LINENO": "0"}
	maps.Copy(ld.Equate, ld.predefine)

	var lines []Line
	for scanner.Scan() {
		line = scanner.Text()
		lineno += 1

		if ld.Verbose {
			log.Printf("%v: %v\n", lineno, line)
		}

		var record string
		record, err = ld.parseLine(line, lineno)
		if err != nil {
			return
		}
		if len(record) == 0 {
			continue
		}

		lines = append(lines, Line{LineNo: lineno, Text: record})
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	prog = &Program{
		Lines: slices.Clip(lines),
	}

	return
}
