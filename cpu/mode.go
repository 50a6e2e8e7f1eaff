package cpu

// AddressMode identifies how an instruction variant locates its
// operand.
type AddressMode int

const (
	Implied AddressMode = iota
	Accumulator
	Immediate
	Zeropage
	ZeropageX
	ZeropageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndirectX
	IndirectY
)

var modeNames = map[AddressMode]string{
	Implied:     "implied",
	Accumulator: "accumulator",
	Immediate:   "immediate",
	Zeropage:    "zeropage",
	ZeropageX:   "zeropage,x",
	ZeropageY:   "zeropage,y",
	Relative:    "relative",
	Absolute:    "absolute",
	AbsoluteX:   "absolute,x",
	AbsoluteY:   "absolute,y",
	Indirect:    "indirect",
	IndirectX:   "(indirect,x)",
	IndirectY:   "(indirect),y",
}

func (mode AddressMode) String() string {
	return modeNames[mode]
}

// OperandSize returns the number of operand bytes the mode consumes
// after the opcode byte.
func (mode AddressMode) OperandSize() uint16 {
	switch mode {
	case Immediate, Zeropage, ZeropageX, ZeropageY, Relative, IndirectX, IndirectY:
		return 1
	case Absolute, AbsoluteX, AbsoluteY, Indirect:
		return 2
	}
	return 0
}

// EffectiveAddress consumes the mode's operand bytes, advancing the
// program counter once per byte consumed, and returns the address the
// mode resolves to. For Immediate the effective address is the operand
// byte's own address. Implied and Accumulator have no effective
// address; resolving one is a defect in the emulator, not the emulated
// program, and panics.
func (cpu *Cpu) EffectiveAddress(mode AddressMode) (address uint16) {
	switch mode {
	case Immediate:
		address = cpu.Reg.AdvancePC()
	case Zeropage:
		address = uint16(cpu.Mem.Read(cpu.Reg.AdvancePC()))
	case ZeropageX:
		address = uint16(cpu.Mem.Read(cpu.Reg.AdvancePC()) + cpu.Reg.X)
	case ZeropageY:
		address = uint16(cpu.Mem.Read(cpu.Reg.AdvancePC()) + cpu.Reg.Y)
	case Absolute:
		address = cpu.readOperandWord()
	case AbsoluteX:
		address = cpu.readOperandWord() + uint16(cpu.Reg.X)
	case AbsoluteY:
		address = cpu.readOperandWord() + uint16(cpu.Reg.Y)
	case Indirect:
		address = cpu.Mem.ReadWord(cpu.readOperandWord())
	case IndirectX:
		pointer := cpu.Mem.Read(cpu.Reg.AdvancePC()) + cpu.Reg.X
		address = cpu.readZeropageWord(pointer)
	case IndirectY:
		pointer := cpu.Mem.Read(cpu.Reg.AdvancePC())
		address = cpu.readZeropageWord(pointer) + uint16(cpu.Reg.Y)
	case Relative:
		operand := cpu.Reg.AdvancePC()
		offset := int8(cpu.Mem.Read(operand))
		address = uint16(int16(operand+1) + int16(offset))
	default:
		panic(f("mode %v has no effective address", mode))
	}

	return
}

// ResolveRead consumes the mode's operand bytes and returns the value
// the mode designates. Accumulator mode reads the accumulator and
// consumes nothing.
func (cpu *Cpu) ResolveRead(mode AddressMode) (value uint8) {
	if mode == Accumulator {
		return cpu.Reg.A
	}
	return cpu.Mem.Read(cpu.EffectiveAddress(mode))
}

// ResolveWrite performs the same address computation as ResolveRead,
// stores value there, and derives the Negative and Zero flags from
// value. Every write path sets the flags the same way.
func (cpu *Cpu) ResolveWrite(mode AddressMode, value uint8) {
	if mode == Accumulator {
		cpu.Reg.A = value
	} else {
		cpu.Mem.Write(cpu.EffectiveAddress(mode), value)
	}
	cpu.Reg.SR.SetNZ(value)
}

// RewindOperand retreats the program counter by the mode's operand
// size, so a read-modify-write instruction can resolve the same
// operand bytes a second time for its write-back.
func (cpu *Cpu) RewindOperand(mode AddressMode) {
	cpu.Reg.RetreatPCBy(mode.OperandSize())
}

// readOperandWord consumes the two little-endian operand bytes that
// follow the opcode.
func (cpu *Cpu) readOperandWord() uint16 {
	lo := cpu.Mem.Read(cpu.Reg.AdvancePC())
	hi := cpu.Mem.Read(cpu.Reg.AdvancePC())
	return uint16(lo) | uint16(hi)<<8
}

// readZeropageWord reads a little-endian word from the zero page,
// wrapping the high byte fetch at the page boundary.
func (cpu *Cpu) readZeropageWord(pointer uint8) uint16 {
	lo := cpu.Mem.Read(uint16(pointer))
	hi := cpu.Mem.Read(uint16(pointer + 1))
	return uint16(lo) | uint16(hi)<<8
}
