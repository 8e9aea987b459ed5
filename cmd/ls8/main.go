// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/emulator"
	"github.com/ezrec/ls8/io"
)

// Process exit status for each termination reason.
const (
	EXIT_HALT  = 0
	EXIT_FAULT = 1
	EXIT_LIMIT = 2
)

func main() {
	var compile string
	var save bool
	var output string
	var verbose bool
	var limit int
	var skip bool
	var step bool

	flag.StringVar(&compile, "c", "", ".asm file to compile")
	flag.BoolVar(&save, "s", false, "Save compiled listing, do not execute")
	flag.StringVar(&output, "o", "-", "Listing output")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.IntVar(&limit, "n", 0, "Maximum instructions to execute, 0 for no limit")
	flag.BoolVar(&skip, "skip", false, "Skip unknown opcodes instead of faulting")
	flag.BoolVar(&step, "step", false, "Single step, 'q' to quit as if halted")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %v [options] [program.ls8]\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	emu := emulator.NewEmulator()

	switch {
	case len(compile) != 0:
		if flag.NArg() != 0 {
			log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
		}

		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		for key, value := range emu.Defines() {
			asm.Predefine(key, value)
		}
		emu.Program, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	case flag.NArg() == 1:
		input := flag.Arg(0)
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()

		emu.Image, err = io.ReadProgram(inf)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
	default:
		flag.Usage()
		os.Exit(EXIT_FAULT)
	}

	if save {
		listings := emu.Program.Listings()
		if len(listings) == 0 {
			listings = []io.Listing{{Data: emu.Image}}
		}

		ouf := os.Stdout
		if output != "-" {
			var err error
			ouf, err = os.Create(output)
			if err != nil {
				log.Fatalf("%v: %v", output, err)
			}
			defer ouf.Close()
		}

		err := io.WriteProgram(ouf, listings)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		return
	}

	emu.Verbose = verbose
	emu.MaxTicks = limit
	if skip {
		emu.Cpu.Unknown = cpu.UNKNOWN_SKIP
	}

	err := emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	var reason emulator.Termination
	if step {
		reason, err = stepRun(emu, os.Stdin, os.Stderr)
	} else {
		reason, err = emu.Run()
	}

	switch reason {
	case emulator.TERM_HALT:
		os.Exit(EXIT_HALT)
	case emulator.TERM_LIMIT:
		log.Print(err)
		os.Exit(EXIT_LIMIT)
	default:
		log.Print(err)
		os.Exit(EXIT_FAULT)
	}
}
