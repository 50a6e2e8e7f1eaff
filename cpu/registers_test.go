package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistersAdvancePC(t *testing.T) {
	assert := assert.New(t)

	reg := &Registers{PC: 0x1000}
	assert.Equal(uint16(0x1001), reg.AdvancePC())
	assert.Equal(uint16(0x1001), reg.PC)
	assert.Equal(uint16(0x1004), reg.AdvancePCBy(3))
	assert.Equal(uint16(0x1004), reg.PC)
}

func TestRegistersRetreatPC(t *testing.T) {
	assert := assert.New(t)

	reg := &Registers{PC: 0x1000}
	assert.Equal(uint16(0x0fff), reg.RetreatPC())
	assert.Equal(uint16(0x0ffd), reg.RetreatPCBy(2))
	assert.Equal(uint16(0x0ffd), reg.PC)
}

func TestRegistersPCWrap(t *testing.T) {
	assert := assert.New(t)

	reg := &Registers{PC: 0xffff}
	assert.Equal(uint16(0x0000), reg.AdvancePC())
	assert.Equal(uint16(0xffff), reg.RetreatPC())
	assert.Equal(uint16(0x0001), reg.AdvancePCBy(2))
	assert.Equal(uint16(0xffff), reg.RetreatPCBy(2))
}
