package cpu

// Bit assignments of the packed status byte.
const (
	FLAG_CARRY     = uint8(1 << 0)
	FLAG_ZERO      = uint8(1 << 1)
	FLAG_INTERRUPT = uint8(1 << 2)
	FLAG_DECIMAL   = uint8(1 << 3)
	FLAG_BREAK     = uint8(1 << 4)
	FLAG_IGNORED   = uint8(1 << 5)
	FLAG_OVERFLOW  = uint8(1 << 6)
	FLAG_NEGATIVE  = uint8(1 << 7)
)

// Status is the unpacked processor status register.
type Status struct {
	Negative  bool // N: bit 7 of the last result.
	Overflow  bool // V: signed overflow of the last arithmetic result.
	Ignored   bool // Unused bit 5.
	Break     bool // B: set by BRK pushes.
	Decimal   bool // D: decimal mode (stored, never consulted).
	Interrupt bool // I: interrupt disable.
	Zero      bool // Z: last result was zero.
	Carry     bool // C: carry out / no borrow.
}

// StatusFromByte unpacks a status byte into its flags.
func StatusFromByte(b uint8) Status {
	return Status{
		Negative:  b&FLAG_NEGATIVE == FLAG_NEGATIVE,
		Overflow:  b&FLAG_OVERFLOW == FLAG_OVERFLOW,
		Ignored:   b&FLAG_IGNORED == FLAG_IGNORED,
		Break:     b&FLAG_BREAK == FLAG_BREAK,
		Decimal:   b&FLAG_DECIMAL == FLAG_DECIMAL,
		Interrupt: b&FLAG_INTERRUPT == FLAG_INTERRUPT,
		Zero:      b&FLAG_ZERO == FLAG_ZERO,
		Carry:     b&FLAG_CARRY == FLAG_CARRY,
	}
}

// Byte packs the flags into a single status byte.
func (sr Status) Byte() (b uint8) {
	set := func(on bool, mask uint8) {
		if on {
			b |= mask
		}
	}
	set(sr.Negative, FLAG_NEGATIVE)
	set(sr.Overflow, FLAG_OVERFLOW)
	set(sr.Ignored, FLAG_IGNORED)
	set(sr.Break, FLAG_BREAK)
	set(sr.Decimal, FLAG_DECIMAL)
	set(sr.Interrupt, FLAG_INTERRUPT)
	set(sr.Zero, FLAG_ZERO)
	set(sr.Carry, FLAG_CARRY)
	return
}

// SetNZ derives the Negative and Zero flags from an 8-bit result.
func (sr *Status) SetNZ(value uint8) {
	sr.Negative = value&FLAG_NEGATIVE == FLAG_NEGATIVE
	sr.Zero = value == 0
}

// String renders the flags in the conventional NV-BDIZC order, with
// cleared flags lowercased.
func (sr Status) String() string {
	text := []byte("nv-bdizc")
	for n, on := range []bool{sr.Negative, sr.Overflow, false, sr.Break, sr.Decimal, sr.Interrupt, sr.Zero, sr.Carry} {
		if on {
			text[n] = text[n] - 'a' + 'A'
		}
	}
	return string(text)
}
