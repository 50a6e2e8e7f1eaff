package cpu

import (
	"fmt"
	"strings"
)

// Mnemonic identifies an instruction independent of addressing mode.
// The zero value marks an undefined opcode byte.
type Mnemonic int

const (
	XXX Mnemonic = iota // undefined
	ADC                 // Add with Carry
	AND                 // Logical AND
	ASL                 // Arithmetic Shift Left
	BCC                 // Branch if Carry Clear
	BCS                 // Branch if Carry Set
	BEQ                 // Branch if Equal
	BIT                 // Bit Test
	BMI                 // Branch if Minus
	BNE                 // Branch if Not Equal
	BPL                 // Branch if Positive
	BRK                 // Force Interrupt
	BVC                 // Branch if Overflow Clear
	BVS                 // Branch if Overflow Set
	CLC                 // Clear Carry Flag
	CLD                 // Clear Decimal Mode
	CLI                 // Clear Interrupt Disable
	CLV                 // Clear Overflow Flag
	CMP                 // Compare Accumulator
	CPX                 // Compare X Register
	CPY                 // Compare Y Register
	DEC                 // Decrement Memory
	DEX                 // Decrement X Register
	DEY                 // Decrement Y Register
	EOR                 // Exclusive OR
	INC                 // Increment Memory
	INX                 // Increment X Register
	INY                 // Increment Y Register
	JMP                 // Jump
	JSR                 // Jump to Subroutine
	LDA                 // Load Accumulator
	LDX                 // Load X Register
	LDY                 // Load Y Register
	LSR                 // Logical Shift Right
	NOP                 // No Operation
	ORA                 // Logical Inclusive OR
	PHA                 // Push Accumulator
	PHP                 // Push Processor Status
	PLA                 // Pull Accumulator
	PLP                 // Pull Processor Status
	ROL                 // Rotate Left
	ROR                 // Rotate Right
	RTI                 // Return from Interrupt
	RTS                 // Return from Subroutine
	SBC                 // Subtract with Carry
	SEC                 // Set Carry Flag
	SED                 // Set Decimal Flag
	SEI                 // Set Interrupt Disable
	STA                 // Store Accumulator
	STX                 // Store X Register
	STY                 // Store Y Register
	TAX                 // Transfer Accumulator to X
	TAY                 // Transfer Accumulator to Y
	TSX                 // Transfer Stack Pointer to X
	TXA                 // Transfer X to Accumulator
	TXS                 // Transfer X to Stack Pointer
	TYA                 // Transfer Y to Accumulator
)

var mnemonicNames = [...]string{
	XXX: "???",
	ADC: "ADC", AND: "AND", ASL: "ASL", BCC: "BCC", BCS: "BCS",
	BEQ: "BEQ", BIT: "BIT", BMI: "BMI", BNE: "BNE", BPL: "BPL",
	BRK: "BRK", BVC: "BVC", BVS: "BVS", CLC: "CLC", CLD: "CLD",
	CLI: "CLI", CLV: "CLV", CMP: "CMP", CPX: "CPX", CPY: "CPY",
	DEC: "DEC", DEX: "DEX", DEY: "DEY", EOR: "EOR", INC: "INC",
	INX: "INX", INY: "INY", JMP: "JMP", JSR: "JSR", LDA: "LDA",
	LDX: "LDX", LDY: "LDY", LSR: "LSR", NOP: "NOP", ORA: "ORA",
	PHA: "PHA", PHP: "PHP", PLA: "PLA", PLP: "PLP", ROL: "ROL",
	ROR: "ROR", RTI: "RTI", RTS: "RTS", SBC: "SBC", SEC: "SEC",
	SED: "SED", SEI: "SEI", STA: "STA", STX: "STX", STY: "STY",
	TAX: "TAX", TAY: "TAY", TSX: "TSX", TXA: "TXA", TXS: "TXS",
	TYA: "TYA",
}

func (inst Mnemonic) String() string {
	if inst < 0 || int(inst) >= len(mnemonicNames) {
		return "???"
	}
	return mnemonicNames[inst]
}

// opcode describes one entry of the 256-way dispatch table.
type opcode struct {
	inst Mnemonic
	mode AddressMode
}

func (op opcode) String() string {
	return fmt.Sprintf("{%v, %v}", op.inst, op.mode)
}

// opcodes maps every documented opcode byte to its instruction
// variant. Entries left zero are undefined opcodes.
var opcodes = [256]opcode{
	0x69: {ADC, Immediate},
	0x65: {ADC, Zeropage},
	0x75: {ADC, ZeropageX},
	0x6D: {ADC, Absolute},
	0x7D: {ADC, AbsoluteX},
	0x79: {ADC, AbsoluteY},
	0x61: {ADC, IndirectX},
	0x71: {ADC, IndirectY},

	0x29: {AND, Immediate},
	0x25: {AND, Zeropage},
	0x35: {AND, ZeropageX},
	0x2D: {AND, Absolute},
	0x3D: {AND, AbsoluteX},
	0x39: {AND, AbsoluteY},
	0x21: {AND, IndirectX},
	0x31: {AND, IndirectY},

	0x0A: {ASL, Accumulator},
	0x06: {ASL, Zeropage},
	0x16: {ASL, ZeropageX},
	0x0E: {ASL, Absolute},
	0x1E: {ASL, AbsoluteX},

	0x90: {BCC, Relative},
	0xB0: {BCS, Relative},
	0xF0: {BEQ, Relative},
	0x30: {BMI, Relative},
	0xD0: {BNE, Relative},
	0x10: {BPL, Relative},
	0x50: {BVC, Relative},
	0x70: {BVS, Relative},

	0x24: {BIT, Zeropage},
	0x2C: {BIT, Absolute},

	0x00: {BRK, Implied},

	0x18: {CLC, Implied},
	0xD8: {CLD, Implied},
	0x58: {CLI, Implied},
	0xB8: {CLV, Implied},

	0xC9: {CMP, Immediate},
	0xC5: {CMP, Zeropage},
	0xD5: {CMP, ZeropageX},
	0xCD: {CMP, Absolute},
	0xDD: {CMP, AbsoluteX},
	0xD9: {CMP, AbsoluteY},
	0xC1: {CMP, IndirectX},
	0xD1: {CMP, IndirectY},

	0xE0: {CPX, Immediate},
	0xE4: {CPX, Zeropage},
	0xEC: {CPX, Absolute},

	0xC0: {CPY, Immediate},
	0xC4: {CPY, Zeropage},
	0xCC: {CPY, Absolute},

	0xC6: {DEC, Zeropage},
	0xD6: {DEC, ZeropageX},
	0xCE: {DEC, Absolute},
	0xDE: {DEC, AbsoluteX},

	0xCA: {DEX, Implied},
	0x88: {DEY, Implied},

	0x49: {EOR, Immediate},
	0x45: {EOR, Zeropage},
	0x55: {EOR, ZeropageX},
	0x4D: {EOR, Absolute},
	0x5D: {EOR, AbsoluteX},
	0x59: {EOR, AbsoluteY},
	0x41: {EOR, IndirectX},
	0x51: {EOR, IndirectY},

	0xE6: {INC, Zeropage},
	0xF6: {INC, ZeropageX},
	0xEE: {INC, Absolute},
	0xFE: {INC, AbsoluteX},

	0xE8: {INX, Implied},
	0xC8: {INY, Implied},

	0x4C: {JMP, Absolute},
	0x6C: {JMP, Indirect},

	0x20: {JSR, Absolute},

	0xA9: {LDA, Immediate},
	0xA5: {LDA, Zeropage},
	0xB5: {LDA, ZeropageX},
	0xAD: {LDA, Absolute},
	0xBD: {LDA, AbsoluteX},
	0xB9: {LDA, AbsoluteY},
	0xA1: {LDA, IndirectX},
	0xB1: {LDA, IndirectY},

	0xA2: {LDX, Immediate},
	0xA6: {LDX, Zeropage},
	0xB6: {LDX, ZeropageY},
	0xAE: {LDX, Absolute},
	0xBE: {LDX, AbsoluteY},

	0xA0: {LDY, Immediate},
	0xA4: {LDY, Zeropage},
	0xB4: {LDY, ZeropageX},
	0xAC: {LDY, Absolute},
	0xBC: {LDY, AbsoluteX},

	0x4A: {LSR, Accumulator},
	0x46: {LSR, Zeropage},
	0x56: {LSR, ZeropageX},
	0x4E: {LSR, Absolute},
	0x5E: {LSR, AbsoluteX},

	0xEA: {NOP, Implied},

	0x09: {ORA, Immediate},
	0x05: {ORA, Zeropage},
	0x15: {ORA, ZeropageX},
	0x0D: {ORA, Absolute},
	0x1D: {ORA, AbsoluteX},
	0x19: {ORA, AbsoluteY},
	0x01: {ORA, IndirectX},
	0x11: {ORA, IndirectY},

	0x48: {PHA, Implied},
	0x08: {PHP, Implied},
	0x68: {PLA, Implied},
	0x28: {PLP, Implied},

	0x2A: {ROL, Accumulator},
	0x26: {ROL, Zeropage},
	0x36: {ROL, ZeropageX},
	0x2E: {ROL, Absolute},
	0x3E: {ROL, AbsoluteX},

	0x6A: {ROR, Accumulator},
	0x66: {ROR, Zeropage},
	0x76: {ROR, ZeropageX},
	0x6E: {ROR, Absolute},
	0x7E: {ROR, AbsoluteX},

	0x40: {RTI, Implied},
	0x60: {RTS, Implied},

	0xE9: {SBC, Immediate},
	0xE5: {SBC, Zeropage},
	0xF5: {SBC, ZeropageX},
	0xED: {SBC, Absolute},
	0xFD: {SBC, AbsoluteX},
	0xF9: {SBC, AbsoluteY},
	0xE1: {SBC, IndirectX},
	0xF1: {SBC, IndirectY},

	0x38: {SEC, Implied},
	0xF8: {SED, Implied},
	0x78: {SEI, Implied},

	0x85: {STA, Zeropage},
	0x95: {STA, ZeropageX},
	0x8D: {STA, Absolute},
	0x9D: {STA, AbsoluteX},
	0x99: {STA, AbsoluteY},
	0x81: {STA, IndirectX},
	0x91: {STA, IndirectY},

	0x86: {STX, Zeropage},
	0x96: {STX, ZeropageY},
	0x8E: {STX, Absolute},

	0x84: {STY, Zeropage},
	0x94: {STY, ZeropageX},
	0x8C: {STY, Absolute},

	0xAA: {TAX, Implied},
	0xA8: {TAY, Implied},
	0xBA: {TSX, Implied},
	0x8A: {TXA, Implied},
	0x9A: {TXS, Implied},
	0x98: {TYA, Implied},
}

// variants maps mnemonic + addressing mode back to the opcode byte.
// Built once from the dispatch table; the assembler encodes through it.
var variants = func() map[opcode]uint8 {
	m := make(map[opcode]uint8, 256)
	for b, op := range opcodes {
		if op.inst != XXX {
			m[op] = uint8(b)
		}
	}
	return m
}()

// mnemonics maps assembler names to instruction identities.
var mnemonics = func() map[string]Mnemonic {
	m := make(map[string]Mnemonic, len(mnemonicNames))
	for inst, name := range mnemonicNames {
		if Mnemonic(inst) != XXX {
			m[name] = Mnemonic(inst)
		}
	}
	return m
}()

// Disassemble renders the instruction stored at address and reports
// its total size in bytes. Undefined opcodes render as raw bytes.
func (cpu *Cpu) Disassemble(address uint16) (text string, size uint16) {
	op := opcodes[cpu.Mem.Read(address)]
	if op.inst == XXX {
		return fmt.Sprintf(".byte $%02X", cpu.Mem.Read(address)), 1
	}

	size = 1 + op.mode.OperandSize()
	operand := uint16(cpu.Mem.Read(address + 1))
	if op.mode.OperandSize() == 2 {
		operand |= uint16(cpu.Mem.Read(address+2)) << 8
	}

	var suffix string
	switch op.mode {
	case Implied:
	case Accumulator:
		suffix = " a"
	case Immediate:
		suffix = fmt.Sprintf(" #$%02X", operand)
	case Zeropage:
		suffix = fmt.Sprintf(" $%02X", operand)
	case ZeropageX:
		suffix = fmt.Sprintf(" $%02X,x", operand)
	case ZeropageY:
		suffix = fmt.Sprintf(" $%02X,y", operand)
	case Relative:
		target := uint16(int16(address+2) + int16(int8(operand)))
		suffix = fmt.Sprintf(" $%04X", target)
	case Absolute:
		suffix = fmt.Sprintf(" $%04X", operand)
	case AbsoluteX:
		suffix = fmt.Sprintf(" $%04X,x", operand)
	case AbsoluteY:
		suffix = fmt.Sprintf(" $%04X,y", operand)
	case Indirect:
		suffix = fmt.Sprintf(" ($%04X)", operand)
	case IndirectX:
		suffix = fmt.Sprintf(" ($%02X,x)", operand)
	case IndirectY:
		suffix = fmt.Sprintf(" ($%02X),y", operand)
	}

	text = strings.ToLower(op.inst.String()) + suffix
	return
}
