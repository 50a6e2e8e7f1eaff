package cpu

// Registers is the 6502 register file. All arithmetic on the program
// counter is modular; there is no overflow condition.
type Registers struct {
	PC uint16 // Program counter.
	A  uint8  // Accumulator.
	X  uint8  // Index register X.
	Y  uint8  // Index register Y.
	SP uint8  // Stack pointer into the dedicated stack region.
	SR Status // Status register.
}

// AdvancePC increments the program counter, wrapping modulo 65536, and
// returns the new value. The return value is the address the next
// fetch reads from, not the prior one.
func (reg *Registers) AdvancePC() uint16 {
	reg.PC++
	return reg.PC
}

// AdvancePCBy advances the program counter by n, wrapping, and returns
// the new value.
func (reg *Registers) AdvancePCBy(n uint16) uint16 {
	reg.PC += n
	return reg.PC
}

// RetreatPC decrements the program counter, wrapping, and returns the
// new value.
func (reg *Registers) RetreatPC() uint16 {
	reg.PC--
	return reg.PC
}

// RetreatPCBy retreats the program counter by n, wrapping, and returns
// the new value.
func (reg *Registers) RetreatPCBy(n uint16) uint16 {
	reg.PC -= n
	return reg.PC
}
