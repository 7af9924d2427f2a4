// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ezrec/simplecpu/emulator"
	"github.com/ezrec/simplecpu/io"
	"github.com/ezrec/simplecpu/report"
	"github.com/ezrec/simplecpu/translate"
)

var f = translate.From

var styleMap = map[string]report.Style{
	"auto":  report.STYLE_AUTO,
	"grid":  report.STYLE_GRID,
	"plain": report.STYLE_PLAIN,
}

func main() {
	var dir string
	var instructions string
	var data string
	var style string
	var reset string
	var verbose bool

	ld := &io.Loader{}

	flag.StringVar(&dir, "C", ".", "Directory of the input files")
	flag.StringVar(&instructions, "i", "instruction_input.txt", "Instruction input file")
	flag.StringVar(&data, "d", "data_input.txt", "Data input file, or empty for none")
	flag.StringVar(&style, "style", "auto", "Table style: auto, grid, or plain")
	flag.StringVar(&reset, "reset", "none", "State reset before the run: none, memory, cache, registers, all")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Func("D", "Predefine an equate, as NAME=VALUE", func(text string) error {
		name, value, ok := strings.Cut(text, "=")
		if !ok || len(name) == 0 {
			return fmt.Errorf("%v: expected NAME=VALUE", text)
		}
		ld.Predefine(name, value)
		return nil
	})

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	table_style, ok := styleMap[style]
	if !ok {
		log.Fatalf("%v: Unknown table style: %v", os.Args[0], style)
	}

	policy, err := emulator.ParseResetPolicy(reset)
	if err != nil {
		log.Fatalf("%v: %v: %v", os.Args[0], reset, err)
	}

	filesys := os.DirFS(dir)

	ld.Verbose = verbose
	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Policy = policy

	fmt.Println("---------------------------------------------------")
	fmt.Println(f("Welcome to the SimpleCPU simulator!"))
	fmt.Println("---------------------------------------------------")

	if len(data) != 0 {
		fmt.Println(f("Initializing memory bus from %v...", data))
		cells, err := io.LoadData(filesys, data)
		if err != nil {
			log.Fatalf("%v: %v", data, err)
		}
		err = emu.Initialize(cells)
		if err != nil {
			log.Fatalf("%v: %v", data, err)
		}
		fmt.Println(f("Memory bus initialized"))
		fmt.Println("---------------------------------------------------")
	}

	fmt.Println(f("Sending instructions from %v to the CPU...", instructions))
	emu.Program, err = ld.LoadProgram(filesys, instructions)
	if err != nil {
		log.Fatalf("%v: %v", instructions, err)
	}

	err = emu.Run()
	if err != nil {
		log.Fatalf("%v: %v", instructions, err)
	}
	fmt.Println("---------------------------------------------------")

	snap := emu.Snapshot()
	if snap.Halted {
		fmt.Println(f("Halted after %d steps", snap.Steps))
	} else {
		fmt.Println(f("Program ended after %d steps", snap.Steps))
	}

	fmt.Println(f("Final state of registers and memory:"))
	rep := &report.Reporter{Output: os.Stdout, Style: table_style}
	err = rep.Report(snap)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(f("Terminating CPU processing..."))
}
