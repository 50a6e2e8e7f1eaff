package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgramBinary(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Origin: 0x0600,
		Opcodes: []Opcode{
			{LineNo: 1, Addr: 0x0600, Bytes: []byte{0xA9, 0x05}},
			{LineNo: 2, Addr: 0x0602, Bytes: []byte{0x85, 0x10}},
		},
	}

	assert.Equal([]byte{0xA9, 0x05, 0x85, 0x10}, prog.Binary())
}

func TestProgramBinaryGap(t *testing.T) {
	assert := assert.New(t)

	// An .org jump leaves a zero-filled gap in the image.
	prog := &Program{
		Origin: 0x0600,
		Opcodes: []Opcode{
			{LineNo: 1, Addr: 0x0600, Bytes: []byte{0xEA}},
			{LineNo: 3, Addr: 0x0604, Bytes: []byte{0x60}},
		},
	}

	assert.Equal([]byte{0xEA, 0x00, 0x00, 0x00, 0x60}, prog.Binary())
}

func TestProgramDebug(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Origin: 0x0600,
		Opcodes: []Opcode{
			{LineNo: 1, Addr: 0x0600, Bytes: []byte{0xA9, 0x05}},
			{LineNo: 2, Addr: 0x0602, Bytes: []byte{0x4C, 0x00, 0x06}},
		},
	}

	dbg := prog.Debug(0x0600)
	assert.NotNil(dbg.Opcode)
	assert.Equal(1, dbg.LineNo)
	assert.Equal(0, dbg.Index)

	// Addresses inside a multi-byte instruction map to its line.
	dbg = prog.Debug(0x0604)
	assert.NotNil(dbg.Opcode)
	assert.Equal(2, dbg.LineNo)
	assert.Equal(2, dbg.Index)

	dbg = prog.Debug(0x0700)
	assert.Nil(dbg.Opcode)
}

func TestProgramLines(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Origin: 0x0600,
		Opcodes: []Opcode{
			{LineNo: 1, Addr: 0x0600, Bytes: []byte{0xA9, 0x05}},
			{LineNo: 2, Addr: 0x0602},
			{LineNo: 3, Addr: 0x0602, Bytes: []byte{0x60}},
		},
	}

	var addrs []uint16
	for addr, bytes := range prog.Lines() {
		addrs = append(addrs, addr)
		assert.NotEmpty(bytes)
	}
	assert.Equal([]uint16{0x0600, 0x0602}, addrs)
}
