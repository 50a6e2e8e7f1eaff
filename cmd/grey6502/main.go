// Copyright 2026, SarahGreyWolf

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/SarahGreyWolf/grey6502/cpu"
	"github.com/SarahGreyWolf/grey6502/emulator"
)

func main() {
	var compile string
	var binary string
	var org uint
	var hz float64
	var trace bool
	var verbose bool

	flag.StringVar(&compile, "c", "", ".s file to assemble and run")
	flag.StringVar(&binary, "b", "", "raw binary image to load and run")
	flag.UintVar(&org, "org", uint(emulator.DEFAULT_ORIGIN), "load origin for raw binary images")
	flag.Float64Var(&hz, "hz", 0, "instructions per second; 0 runs unpaced")
	flag.BoolVar(&trace, "t", false, "Trace each executed instruction")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	if hz > 0 {
		emu.Clock = time.Duration(float64(time.Second) / hz)
	}

	switch {
	case len(compile) != 0:
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		for key, value := range emu.Defines() {
			asm.Predefine(key, value)
		}

		prog, err := asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}

		emu.LoadProgram(prog)

	case len(binary) != 0:
		if org >= cpu.MEM_SIZE {
			log.Fatalf("%v: origin 0x%x out of range", os.Args[0], org)
		}

		image, err := os.ReadFile(binary)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}

		emu.Load(uint16(org), image)

	default:
		log.Fatalf("%v: nothing to run; use -c or -b", os.Args[0])
	}

	if !trace {
		err := emu.Run(context.Background())
		if err != nil {
			log.Fatal(err)
		}
		return
	}

	for {
		text, _ := emu.Cpu.Disassemble(emu.Cpu.Reg.PC)
		fmt.Printf("%04x: %v\n", emu.Cpu.Reg.PC, text)

		done, err := emu.Tick()
		if err != nil {
			log.Fatal(err)
		}
		if done {
			break
		}

		if emu.Clock > 0 {
			time.Sleep(emu.Clock)
		}
	}
	fmt.Print(emu.Cpu.String())
}
