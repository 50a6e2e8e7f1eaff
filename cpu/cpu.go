package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
)

// IRQ_VECTOR is the fixed location BRK loads the program counter from.
const IRQ_VECTOR = uint16(0xFFFE)

var _cpu_defines = map[string]string{
	"MEM_SIZE":   fmt.Sprintf("0x%x", MEM_SIZE),
	"STACK_SIZE": fmt.Sprintf("0x%x", STACK_SIZE),
	"IRQ_VECTOR": fmt.Sprintf("0x%x", IRQ_VECTOR),
}

// Cpu is the simulation context for a MOS 6502 processor: the register
// file, the 64KiB address space, and the dedicated stack region. A Cpu
// owns its memory exclusively for its lifetime; execution is a single
// sequential loop with no internal concurrency.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Reg   Registers // Register file.
	Mem   Memory    // 64KiB address space.
	Stack Stack     // Dedicated stack region.

	Steps int // Completed instruction counter.
}

// NewCpu creates a powered-on processor: memory zeroed, registers and
// flags at power-on defaults, program counter at 0.
func NewCpu() (cpu *Cpu) {
	return &Cpu{}
}

// Defines for the cpu, fed to the assembler as predefined equates.
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset returns the processor to power-on state.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Reg = Registers{}
	cpu.Mem = Memory{}
	cpu.Stack = Stack{}
	cpu.Steps = 0
}

// String returns the current register and flag state.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("   pc: %04X\n", cpu.Reg.PC)
	text += fmt.Sprintf("    a: %02X\n", cpu.Reg.A)
	text += fmt.Sprintf("    x: %02X\n", cpu.Reg.X)
	text += fmt.Sprintf("    y: %02X\n", cpu.Reg.Y)
	text += fmt.Sprintf("   sp: %02X\n", cpu.Reg.SP)
	text += fmt.Sprintf("   sr: %v (%02X)\n", cpu.Reg.SR, cpu.Reg.SR.Byte())
	return
}

// Step executes exactly one fetch-decode-execute cycle. A fetched byte
// with no table entry surfaces as ErrUnknownOpcode with the program
// counter unmoved; the embedder decides whether to halt, trap, or skip.
func (cpu *Cpu) Step() (err error) {
	fetched := cpu.Mem.Read(cpu.Reg.PC)
	op := opcodes[fetched]
	if op.inst == XXX {
		return ErrUnknownOpcode{Opcode: fetched, Address: cpu.Reg.PC}
	}

	if cpu.Verbose {
		text, _ := cpu.Disassemble(cpu.Reg.PC)
		log.Printf("%04x: %v", cpu.Reg.PC, text)
	}

	advance, err := cpu.execute(op.inst, op.mode)
	if advance {
		// The instruction left the program counter on its last
		// consumed byte; move past it to the next opcode.
		cpu.Reg.AdvancePC()
	}
	cpu.Steps++

	return
}

// Run repeatedly invokes Step until the first failure, then stops
// rather than continuing with corrupted state. A BRK through an unset
// interrupt vector surfaces as ErrHalted, the clean termination.
func (cpu *Cpu) Run() (err error) {
	for err == nil {
		err = cpu.Step()
	}
	return
}
