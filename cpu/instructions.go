package cpu

// execute runs one decoded instruction. On entry the program counter
// addresses the opcode byte; operand resolution advances it once per
// operand byte consumed. The advance return signals the engine's
// post-execution policy: true means the engine must move the program
// counter past the instruction, false means the instruction already
// repositioned it (branch taken, jump, call, return, vector load) and
// it must not be touched again.
func (cpu *Cpu) execute(inst Mnemonic, mode AddressMode) (advance bool, err error) {
	reg := &cpu.Reg
	sr := &reg.SR
	advance = true

	switch inst {
	case LDA:
		reg.A = cpu.ResolveRead(mode)
		sr.SetNZ(reg.A)
	case LDX:
		reg.X = cpu.ResolveRead(mode)
		sr.SetNZ(reg.X)
	case LDY:
		reg.Y = cpu.ResolveRead(mode)
		sr.SetNZ(reg.Y)

	case STA:
		cpu.ResolveWrite(mode, reg.A)
	case STX:
		cpu.ResolveWrite(mode, reg.X)
	case STY:
		cpu.ResolveWrite(mode, reg.Y)

	case ADC:
		cpu.adc(cpu.ResolveRead(mode))
	case SBC:
		cpu.sbc(cpu.ResolveRead(mode))

	case AND:
		reg.A &= cpu.ResolveRead(mode)
		sr.SetNZ(reg.A)
	case ORA:
		reg.A |= cpu.ResolveRead(mode)
		sr.SetNZ(reg.A)
	case EOR:
		reg.A ^= cpu.ResolveRead(mode)
		sr.SetNZ(reg.A)

	case CMP:
		cpu.compare(reg.A, cpu.ResolveRead(mode))
	case CPX:
		cpu.compare(reg.X, cpu.ResolveRead(mode))
	case CPY:
		cpu.compare(reg.Y, cpu.ResolveRead(mode))

	case BIT:
		value := cpu.ResolveRead(mode)
		sr.Zero = reg.A&value == 0
		sr.Negative = value&FLAG_NEGATIVE == FLAG_NEGATIVE
		sr.Overflow = value&FLAG_OVERFLOW == FLAG_OVERFLOW

	case ASL:
		cpu.modify(mode, func(value uint8) uint8 {
			sr.Carry = value&0x80 == 0x80
			return value << 1
		})
	case LSR:
		cpu.modify(mode, func(value uint8) uint8 {
			sr.Carry = value&0x01 == 0x01
			return value >> 1
		})
	case ROL:
		cpu.modify(mode, func(value uint8) uint8 {
			carryIn := uint8(0)
			if sr.Carry {
				carryIn = 1
			}
			sr.Carry = value&0x80 == 0x80
			return value<<1 | carryIn
		})
	case ROR:
		cpu.modify(mode, func(value uint8) uint8 {
			carryIn := uint8(0)
			if sr.Carry {
				carryIn = 0x80
			}
			sr.Carry = value&0x01 == 0x01
			return value>>1 | carryIn
		})

	case INC:
		cpu.modify(mode, func(value uint8) uint8 { return value + 1 })
	case DEC:
		cpu.modify(mode, func(value uint8) uint8 { return value - 1 })
	case INX:
		reg.X++
		sr.SetNZ(reg.X)
	case INY:
		reg.Y++
		sr.SetNZ(reg.Y)
	case DEX:
		reg.X--
		sr.SetNZ(reg.X)
	case DEY:
		reg.Y--
		sr.SetNZ(reg.Y)

	case BPL:
		advance = cpu.branch(!sr.Negative)
	case BMI:
		advance = cpu.branch(sr.Negative)
	case BVC:
		advance = cpu.branch(!sr.Overflow)
	case BVS:
		advance = cpu.branch(sr.Overflow)
	case BCC:
		advance = cpu.branch(!sr.Carry)
	case BCS:
		advance = cpu.branch(sr.Carry)
	case BNE:
		advance = cpu.branch(!sr.Zero)
	case BEQ:
		advance = cpu.branch(sr.Zero)

	case PHA:
		cpu.Push(reg.A)
	case PLA:
		reg.A = cpu.Pull()
		sr.SetNZ(reg.A)
	case PHP:
		cpu.Push(sr.Byte())
	case PLP:
		*sr = StatusFromByte(cpu.Pull())

	case CLC:
		sr.Carry = false
	case SEC:
		sr.Carry = true
	case CLI:
		sr.Interrupt = false
	case SEI:
		sr.Interrupt = true
	case CLD:
		sr.Decimal = false
	case SED:
		sr.Decimal = true
	case CLV:
		sr.Overflow = false

	case TAX:
		reg.X = reg.A
		sr.SetNZ(reg.X)
	case TAY:
		reg.Y = reg.A
		sr.SetNZ(reg.Y)
	case TXA:
		reg.A = reg.X
		sr.SetNZ(reg.A)
	case TYA:
		reg.A = reg.Y
		sr.SetNZ(reg.A)
	case TSX:
		reg.X = reg.SP
		sr.SetNZ(reg.X)
	case TXS:
		// Destination is the stack pointer; flags untouched.
		reg.SP = reg.X

	case JMP:
		reg.PC = cpu.EffectiveAddress(mode)
		advance = false

	case JSR:
		target := cpu.EffectiveAddress(Absolute)
		// The counter now rests on the last operand byte; the
		// resume address is one past it.
		cpu.PushWord(reg.PC + 1)
		reg.PC = target
		advance = false

	case RTS:
		reg.PC = cpu.PullWord()
		advance = false

	case BRK:
		cpu.PushWord(reg.PC + 2)
		cpu.Push(sr.Byte())
		// All flags clear except interrupt-disable, which is kept.
		*sr = Status{Interrupt: sr.Interrupt}
		target := cpu.Mem.ReadWord(IRQ_VECTOR)
		reg.PC = target
		advance = false
		if target == 0 {
			err = ErrHalted
		}

	case RTI:
		*sr = StatusFromByte(cpu.Pull())
		reg.PC = cpu.PullWord()
		advance = false

	case NOP:
		// No state change.

	default:
		panic(f("instruction %v not dispatched", inst))
	}

	return
}

// adc adds value and the carry flag to the accumulator using two
// chained wrapping 8-bit additions; Carry is the carry out of either,
// Overflow the signed overflow of the whole operation.
func (cpu *Cpu) adc(value uint8) {
	reg := &cpu.Reg
	a := reg.A

	carryIn := uint8(0)
	if reg.SR.Carry {
		carryIn = 1
	}
	partial := a + value
	result := partial + carryIn

	reg.SR.Carry = partial < a || (carryIn == 1 && partial == 0xFF)
	reg.SR.Overflow = (a^result)&(value^result)&0x80 == 0x80
	reg.A = result
	reg.SR.SetNZ(result)
}

// sbc subtracts value and the borrow (the inverted carry flag) from
// the accumulator; Carry means no borrow occurred.
func (cpu *Cpu) sbc(value uint8) {
	reg := &cpu.Reg
	a := reg.A

	borrowIn := uint8(1)
	if reg.SR.Carry {
		borrowIn = 0
	}
	partial := a - value
	result := partial - borrowIn

	reg.SR.Carry = !(partial > a || (borrowIn == 1 && partial == 0))
	reg.SR.Overflow = (a^value)&(a^result)&0x80 == 0x80
	reg.A = result
	reg.SR.SetNZ(result)
}

// compare performs a wrapping subtraction of value from a register;
// Carry is set when no borrow was needed, Negative and Zero follow the
// subtraction result.
func (cpu *Cpu) compare(register, value uint8) {
	result := register - value
	cpu.Reg.SR.Carry = register >= value
	cpu.Reg.SR.SetNZ(result)
}

// modify is the read-modify-write path shared by the shifts, rotates,
// and memory increments: resolve the operand, transform it, rewind the
// program counter by the mode's operand size, and resolve again for
// the write-back so the value lands at the same effective address.
func (cpu *Cpu) modify(mode AddressMode, op func(value uint8) uint8) {
	value := cpu.ResolveRead(mode)
	result := op(value)
	cpu.RewindOperand(mode)
	cpu.ResolveWrite(mode, result)
}

// branch consumes the relative offset byte. When taken, the program
// counter moves to the resolved target and the caller must suppress
// the engine's post-execution advance.
func (cpu *Cpu) branch(taken bool) (advance bool) {
	target := cpu.EffectiveAddress(Relative)
	if !taken {
		return true
	}
	cpu.Reg.PC = target
	return false
}
