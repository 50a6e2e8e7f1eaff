package cpu

// STACK_SIZE is the depth of the dedicated stack region.
const STACK_SIZE = 0x100

// Stack is a 256-byte region kept separate from main memory, indexed
// by the stack pointer. Both push and pull wrap circularly at the
// region boundary instead of faulting on overflow or underflow.
type Stack [STACK_SIZE]uint8

// Push stores value at the current stack pointer, then advances the
// pointer.
func (cpu *Cpu) Push(value uint8) {
	cpu.Stack[cpu.Reg.SP] = value
	cpu.Reg.SP++
}

// Pull retreats the stack pointer, then loads the byte stored there.
func (cpu *Cpu) Pull() (value uint8) {
	cpu.Reg.SP--
	return cpu.Stack[cpu.Reg.SP]
}

// PushWord pushes a 16-bit value, high byte first.
func (cpu *Cpu) PushWord(value uint16) {
	cpu.Push(uint8(value >> 8))
	cpu.Push(uint8(value))
}

// PullWord pulls a 16-bit value pushed by PushWord: low byte first,
// then high.
func (cpu *Cpu) PullWord() uint16 {
	lo := cpu.Pull()
	hi := cpu.Pull()
	return uint16(lo) | uint16(hi)<<8
}
