package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assemble(t *testing.T, lines ...string) *Program {
	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(lines, "\n")))
	if err != nil {
		t.Fatal(err)
	}
	return prog
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Opcodes))
	assert.Equal(uint16(0), prog.Origin)

	assert.Equal("0", asm.Equate["LINENO"])
	assert.Equal("0x10000", asm.Equate["MEM_SIZE"])
	assert.Equal("0x100", asm.Equate["STACK_SIZE"])
	assert.Equal("0xfffe", asm.Equate["IRQ_VECTOR"])
}

func TestAssemblerProgram(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		".org $0600",
		"lda #$05   ; load the constant",
		"sta $10",
	)

	assert.Equal(uint16(0x0600), prog.Origin)
	assert.Equal(2, len(prog.Opcodes))

	assert.Equal(uint16(0x0600), prog.Opcodes[0].Addr)
	assert.Equal([]byte{0xA9, 0x05}, prog.Opcodes[0].Bytes)
	assert.Equal(2, prog.Opcodes[0].LineNo)

	assert.Equal(uint16(0x0602), prog.Opcodes[1].Addr)
	assert.Equal([]byte{0x85, 0x10}, prog.Opcodes[1].Bytes)

	assert.Equal([]byte{0xA9, 0x05, 0x85, 0x10}, prog.Binary())
}

func TestAssemblerModes(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		text  string
		bytes []byte
	}){
		{"implied", "nop", []byte{0xEA}},
		{"accumulator", "asl a", []byte{0x0A}},
		{"accumulator_bare", "asl", []byte{0x0A}},
		{"immediate", "lda #$42", []byte{0xA9, 0x42}},
		{"immediate_binary", "lda #%10000000", []byte{0xA9, 0x80}},
		{"immediate_decimal", "lda #66", []byte{0xA9, 0x42}},
		{"zeropage", "lda $10", []byte{0xA5, 0x10}},
		{"zeropage_x", "lda $10,x", []byte{0xB5, 0x10}},
		{"zeropage_y", "ldx $10,y", []byte{0xB6, 0x10}},
		{"absolute", "lda $1234", []byte{0xAD, 0x34, 0x12}},
		{"absolute_x", "lda $1234,x", []byte{0xBD, 0x34, 0x12}},
		{"absolute_y", "lda $1234,y", []byte{0xB9, 0x34, 0x12}},
		{"absolute_promoted", "jsr $10", []byte{0x20, 0x10, 0x00}},
		{"indirect", "jmp ($0600)", []byte{0x6C, 0x00, 0x06}},
		{"indirect_x", "lda ($10,x)", []byte{0xA1, 0x10}},
		{"indirect_y", "lda ($10),y", []byte{0xB1, 0x10}},
	}

	for _, entry := range table {
		prog := assemble(t, entry.text)
		assert.Equal(entry.bytes, prog.Binary(), entry.name)
	}
}

func TestAssemblerLabels(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		".org $0600",
		"start: ldx #$03",
		"loop: dex",
		"bne loop",
		"jmp start",
	)

	assert.Equal([]byte{
		0xA2, 0x03, // start: ldx #$03
		0xCA,       // loop: dex
		0xD0, 0xFD, // bne loop
		0x4C, 0x00, 0x06, // jmp start
	}, prog.Binary())

	assert.Equal("loop", prog.Opcodes[2].LinkLabel)
	assert.Equal(Relative, prog.Opcodes[2].LinkMode)
	assert.Equal("start", prog.Opcodes[3].LinkLabel)
	assert.Equal(Absolute, prog.Opcodes[3].LinkMode)
}

func TestAssemblerForwardLabel(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		".org $0600",
		"beq done",
		"nop",
		"done: brk",
	)

	assert.Equal([]byte{
		0xF0, 0x01, // beq done
		0xEA, // nop
		0x00, // done: brk
	}, prog.Binary())
}

func TestAssemblerBranchNumeric(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		".org $0600",
		"beq $0600",
	)

	assert.Equal([]byte{0xF0, 0xFE}, prog.Binary())
}

func TestAssemblerEquates(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		".equ COUNT 3",
		".equ TARGET $10",
		"lda #COUNT",
		"sta TARGET",
		"ldx #$(COUNT + 2)",
	)

	assert.Equal([]byte{
		0xA9, 0x03,
		0x85, 0x10,
		0xA2, 0x05,
	}, prog.Binary())
}

func TestAssemblerPredefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("START", "$0700")

	prog, err := asm.Parse(strings.NewReader(strings.Join([]string{
		".org START",
		"nop",
	}, "\n")))
	assert.NoError(err)
	assert.Equal(uint16(0x0700), prog.Origin)
}

func TestAssemblerData(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		".org $0700",
		".byte $01 $02 $ff",
		".word $1234",
	)

	assert.Equal([]byte{0x01, 0x02, 0xFF, 0x34, 0x12}, prog.Binary())
}

func TestAssemblerMacro(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		".macro pair val",
		"lda #val",
		"ldx #val",
		".endm",
		".org $0600",
		"pair $42",
	)

	assert.Equal([]byte{
		0xA9, 0x42,
		0xA2, 0x42,
	}, prog.Binary())
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		lines []string
		want  error
	}){
		{"bad_mnemonic", []string{"xyzzy #$01"}, ErrMnemonicInvalid("xyzzy")},
		{"bad_mode", []string{"lda"}, ErrModeInvalid{Inst: LDA, Mode: Accumulator}},
		{"bad_number", []string{"lda #$zz"}, ErrParseNumber("$zz")},
		{"equate_duplicate", []string{".equ A 1", ".equ A 2"}, ErrEquateDuplicate},
		{"label_duplicate", []string{"a: nop", "a: nop"}, ErrLabelDuplicate},
		{"label_missing", []string{"jmp nowhere"}, ErrLabelMissing("nowhere")},
		{"label_in_data", []string{"a: nop", ".byte a"}, ErrLabelOperand},
		{"branch_range", []string{
			".org $0600",
			"beq far",
			".org $0800",
			"far: nop",
		}, ErrBranchRange},
		{"macro_lonely", []string{".macro broken"}, ErrMacroLonely},
		{"macro_endm_lonely", []string{".endm"}, ErrMacroLonelyEndm},
		{"org_syntax", []string{".org"}, ErrOriginSyntax},
		{"data_syntax", []string{".byte"}, ErrDataSyntax},
	}

	for _, entry := range table {
		asm := &Assembler{}
		_, err := asm.Parse(strings.NewReader(strings.Join(entry.lines, "\n")))
		assert.ErrorIs(err, entry.want, entry.name)

		var syn *ErrSyntax
		assert.ErrorAs(err, &syn, entry.name)
	}
}

func TestAssemblerRoundTrip(t *testing.T) {
	assert := assert.New(t)

	// Assembled output runs to completion on the processor.
	prog := assemble(t,
		".org $0600",
		".equ VALUE $05",
		"lda #VALUE",
		"sta $10",
		"lda #$00",
		"lda $10",
		"brk",
	)

	cpu := NewCpu()
	for n, b := range prog.Binary() {
		cpu.Mem.Write(prog.Origin+uint16(n), b)
	}
	cpu.Reg.PC = prog.Origin

	err := cpu.Run()
	assert.ErrorIs(err, ErrHalted)
	assert.Equal(uint8(0x05), cpu.Reg.A)
	assert.Equal(uint8(0x05), cpu.Mem.Read(0x0010))
}
