package cpu

// MEM_SIZE is the size of the addressable memory space.
const MEM_SIZE = 0x10000

// Memory is the flat 64KiB address space, the single source of truth
// for both code and data. Every 16-bit address is valid by
// construction; there is no bounds failure.
type Memory [MEM_SIZE]uint8

// Read returns the byte stored at address.
func (m *Memory) Read(address uint16) uint8 {
	return m[address]
}

// Write stores value at address.
func (m *Memory) Write(address uint16, value uint8) {
	m[address] = value
}

// ReadWord reads a little-endian 16-bit word starting at address. The
// high byte fetch wraps modulo 65536.
func (m *Memory) ReadWord(address uint16) uint16 {
	lo := m.Read(address)
	hi := m.Read(address + 1)
	return uint16(lo) | uint16(hi)<<8
}

// WriteWord stores a little-endian 16-bit word starting at address.
func (m *Memory) WriteWord(address uint16, value uint16) {
	m.Write(address, uint8(value))
	m.Write(address+1, uint8(value>>8))
}
