// Package cpu implements the microprocessor and assembler for the LS-8 system.
//
// The CPU consists of 256 bytes of memory, eight 8-bit general-purpose
// registers (r0-r7), a program counter (PC), a stack pointer (SP) and a flags
// register (FL). Instructions are a single opcode byte followed by zero, one
// or two operand bytes; the two most-significant bits of the opcode give the
// operand count. Opcodes are dispatched through a fixed instruction table.
//
// By convention r7 holds the initial stack pointer (0xF4) and r6 mirrors the
// flags. The CPU keeps SP and FL in dedicated fields and only synchronizes
// them with r7 and r6 on reset.
//
// The assembler provides a small assembly language for the LS-8 instruction
// set, supporting macros, labels, equates, and compile-time expression
// evaluation.
package cpu
