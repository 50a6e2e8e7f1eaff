package cpu

import (
	"iter"
)

// Opcode represents a line of assembled code: its source location, the
// address it was placed at, and the bytes it generated.
type Opcode struct {
	LineNo    int
	Addr      uint16
	Words     []string
	Bytes     []byte
	LinkLabel string
	LinkMode  AddressMode
}

// Program is an assembled listing plus the origin it loads at.
type Program struct {
	Origin  uint16
	Opcodes []Opcode
}

// Debug maps an address back to the listing entry that produced it.
type Debug struct {
	*Opcode
	Index int
}

func (prog *Program) Debug(addr uint16) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if addr >= op.Addr && addr < op.Addr+uint16(len(op.Bytes)) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  int(addr - op.Addr),
			}
			break
		}
	}

	return
}

// Binary flattens the listing into a loadable image starting at the
// program origin. Gaps left by .org jumps are zero-filled.
func (prog *Program) Binary() (image []byte) {
	for addr, bytes := range prog.Lines() {
		offset := int(addr - prog.Origin)
		if need := offset + len(bytes); need > len(image) {
			image = append(image, make([]byte, need-len(image))...)
		}
		copy(image[offset:], bytes)
	}

	return
}

// Lines iterates the listing as (address, bytes) pairs.
func (prog *Program) Lines() iter.Seq2[uint16, []byte] {
	return func(yield func(addr uint16, bytes []byte) bool) {
		for _, op := range prog.Opcodes {
			if len(op.Bytes) == 0 {
				continue
			}
			if !yield(op.Addr, op.Bytes) {
				return
			}
		}
	}
}
