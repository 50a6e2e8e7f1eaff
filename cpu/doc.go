// Package cpu implements the MOS 6502 microprocessor and its assembler.
//
// The processor consists of a 16-bit program counter, an accumulator,
// two index registers, a stack pointer into a dedicated 256-byte stack
// region, and a packed status register. Execution is a sequential
// fetch-decode-execute loop dispatching through a 256-entry opcode
// table; each instruction variant resolves its operand through one of
// the thirteen 6502 addressing modes.
//
// The assembler provides a single-pass macro assembler for 6502
// assembly, supporting macros, labels, equates, and compile-time
// expression evaluation.
package cpu
