package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCpuReset(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Reg.A = 0x42
	cpu.Reg.PC = 0x1234
	cpu.Reg.SR.Carry = true
	cpu.Mem.Write(0x2000, 0xff)
	cpu.Push(0x99)
	cpu.Steps = 7

	cpu.Reset()
	assert.Equal(Registers{}, cpu.Reg)
	assert.Equal(uint8(0), cpu.Mem.Read(0x2000))
	assert.Equal(uint8(0), cpu.Stack[0])
	assert.Equal(0, cpu.Steps)
}

func TestCpuDefines(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	defines := map[string]string{}
	for key, value := range cpu.Defines() {
		defines[key] = value
	}

	assert.Equal("0x10000", defines["MEM_SIZE"])
	assert.Equal("0x100", defines["STACK_SIZE"])
	assert.Equal("0xfffe", defines["IRQ_VECTOR"])
}

func TestCpuStoreLoad(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	loadAt(cpu, 0x0600, []uint8{
		0xA9, 0x05, // lda #$05
		0x85, 0x10, // sta $10
		0xA9, 0x00, // lda #$00
		0xA5, 0x10, // lda $10
	})

	for range 4 {
		assert.NoError(cpu.Step())
	}

	assert.Equal(uint8(0x05), cpu.Reg.A)
	assert.Equal(uint8(0x05), cpu.Mem.Read(0x0010))
	assert.False(cpu.Reg.SR.Zero)
	assert.Equal(uint16(0x0608), cpu.Reg.PC)
	assert.Equal(4, cpu.Steps)
}

func TestCpuBranchToSelf(t *testing.T) {
	assert := assert.New(t)

	// beq back to its own opcode byte.
	cpu := NewCpu()
	cpu.Reg.SR.Zero = true
	loadAt(cpu, 0x0000, []uint8{0xF0, 0xFE})
	assert.NoError(cpu.Step())
	assert.Equal(uint16(0x0000), cpu.Reg.PC)
}

func TestCpuUnknownOpcode(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	loadAt(cpu, 0x1000, []uint8{0x02})

	err := cpu.Step()
	assert.ErrorIs(err, ErrUnknownOpcode{})

	var unknown ErrUnknownOpcode
	assert.True(errors.As(err, &unknown))
	assert.Equal(uint8(0x02), unknown.Opcode)
	assert.Equal(uint16(0x1000), unknown.Address)

	// The program counter does not move past an undecodable byte.
	assert.Equal(uint16(0x1000), cpu.Reg.PC)
	assert.Equal(0, cpu.Steps)
}

func TestCpuRun(t *testing.T) {
	assert := assert.New(t)

	// Count down from 5, then halt through the unset vector.
	cpu := NewCpu()
	loadAt(cpu, 0x0600, []uint8{
		0xA2, 0x05, // ldx #$05
		0xCA,       // dex
		0xD0, 0xFD, // bne dex
		0x00, // brk
	})

	err := cpu.Run()
	assert.ErrorIs(err, ErrHalted)
	assert.Equal(uint8(0), cpu.Reg.X)
	assert.True(cpu.Reg.SR.Zero)

	// ldx, 5 x (dex + bne), brk
	assert.Equal(12, cpu.Steps)
}

func TestCpuRunStopsOnError(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	loadAt(cpu, 0x1000, []uint8{0xEA, 0x02})

	err := cpu.Run()
	assert.ErrorIs(err, ErrUnknownOpcode{})
	assert.Equal(uint16(0x1001), cpu.Reg.PC)
	assert.Equal(1, cpu.Steps)
}

func TestControlFlowConformance(t *testing.T) {
	assert := assert.New(t)

	// Every opcode that repositions the program counter, checked
	// against the address a hand trace lands on. Branches appear
	// twice, taken and not.
	table := [](struct {
		name  string
		image []uint8
		sr    Status
		setup func(cpu *Cpu)
		pc    uint16
	}){
		{name: "bpl_taken", image: []uint8{0x10, 0x10}, pc: 0x1012},
		{name: "bpl_not", image: []uint8{0x10, 0x10}, sr: Status{Negative: true}, pc: 0x1002},
		{name: "bmi_taken", image: []uint8{0x30, 0x10}, sr: Status{Negative: true}, pc: 0x1012},
		{name: "bmi_not", image: []uint8{0x30, 0x10}, pc: 0x1002},
		{name: "bvc_taken", image: []uint8{0x50, 0x10}, pc: 0x1012},
		{name: "bvc_not", image: []uint8{0x50, 0x10}, sr: Status{Overflow: true}, pc: 0x1002},
		{name: "bvs_taken", image: []uint8{0x70, 0x10}, sr: Status{Overflow: true}, pc: 0x1012},
		{name: "bvs_not", image: []uint8{0x70, 0x10}, pc: 0x1002},
		{name: "bcc_taken", image: []uint8{0x90, 0x10}, pc: 0x1012},
		{name: "bcc_not", image: []uint8{0x90, 0x10}, sr: Status{Carry: true}, pc: 0x1002},
		{name: "bcs_taken", image: []uint8{0xB0, 0x10}, sr: Status{Carry: true}, pc: 0x1012},
		{name: "bcs_not", image: []uint8{0xB0, 0x10}, pc: 0x1002},
		{name: "bne_taken", image: []uint8{0xD0, 0x10}, pc: 0x1012},
		{name: "bne_not", image: []uint8{0xD0, 0x10}, sr: Status{Zero: true}, pc: 0x1002},
		{name: "beq_taken", image: []uint8{0xF0, 0x10}, sr: Status{Zero: true}, pc: 0x1012},
		{name: "beq_not", image: []uint8{0xF0, 0x10}, pc: 0x1002},
		{name: "jmp_absolute", image: []uint8{0x4C, 0x00, 0x20}, pc: 0x2000},
		{name: "jmp_indirect", image: []uint8{0x6C, 0x00, 0x30},
			setup: func(cpu *Cpu) { cpu.Mem.WriteWord(0x3000, 0x4000) },
			pc:    0x4000},
		{name: "jsr", image: []uint8{0x20, 0x00, 0x20}, pc: 0x2000},
		{name: "rts", image: []uint8{0x60},
			setup: func(cpu *Cpu) { cpu.PushWord(0x1234) },
			pc:    0x1234},
		{name: "brk", image: []uint8{0x00},
			setup: func(cpu *Cpu) { cpu.Mem.WriteWord(IRQ_VECTOR, 0x8000) },
			pc:    0x8000},
		{name: "rti", image: []uint8{0x40},
			setup: func(cpu *Cpu) {
				cpu.PushWord(0x1234)
				cpu.Push(Status{Carry: true}.Byte())
			},
			pc: 0x1234},
	}

	for _, entry := range table {
		cpu := NewCpu()
		cpu.Reg.SR = entry.sr
		if entry.setup != nil {
			entry.setup(cpu)
		}
		loadAt(cpu, 0x1000, entry.image)

		assert.NoError(cpu.Step(), entry.name)
		assert.Equal(entry.pc, cpu.Reg.PC, entry.name)
	}
}

func TestCpuString(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Reg.PC = 0x1234
	cpu.Reg.A = 0xa5
	cpu.Reg.SR.Carry = true

	text := cpu.String()
	assert.True(strings.Contains(text, "pc: 1234"))
	assert.True(strings.Contains(text, "a: A5"))
	assert.True(strings.Contains(text, "nv-bdizC"))
}
