package cpu

import (
	"fmt"
)

// Opcode is the first byte of an instruction.
type Opcode byte

const (
	OP_HLT  = Opcode(0b0000_0001) // hlt
	OP_RET  = Opcode(0b0001_0001) // ret
	OP_PUSH = Opcode(0b0100_0101) // push
	OP_POP  = Opcode(0b0100_0110) // pop
	OP_PRN  = Opcode(0b0100_0111) // prn
	OP_CALL = Opcode(0b0101_0000) // call
	OP_JMP  = Opcode(0b0101_0100) // jmp
	OP_JEQ  = Opcode(0b0101_0101) // jeq
	OP_LDI  = Opcode(0b1000_0010) // ldi
	OP_ADD  = Opcode(0b1010_0000) // add
	OP_MUL  = Opcode(0b1010_0010) // mul
	OP_CMP  = Opcode(0b1010_0111) // cmp
)

// Register aliases.
const (
	REG_FL = 6 // Mirrors the flags register at reset.
	REG_SP = 7 // Holds the initial stack pointer at reset.
)

// Operands returns the operand count encoded in the top two bits of the opcode.
func (op Opcode) Operands() int {
	return int(op >> 6)
}

// Decode returns the operand count of a raw opcode byte.
func Decode(op byte) int {
	return Opcode(op).Operands()
}

// String returns the mnemonic of the opcode.
func (op Opcode) String() string {
	inst, ok := Lookup(op)
	if !ok {
		return fmt.Sprintf("Opcode(0x%02x)", uint8(op))
	}
	return inst.Name
}

// Instruction describes how a single opcode is executed.
type Instruction struct {
	Name     string                             // Assembler mnemonic.
	Operands int                                // Operand bytes following the opcode.
	Exec     func(cpu *Cpu, args []byte) error // Mutates CPU state, and advances or sets Pc.
}

// instructionTable is the dispatch table of all implemented opcodes.
var instructionTable = map[Opcode]Instruction{
	OP_HLT:  {"hlt", 0, (*Cpu).execHlt},
	OP_RET:  {"ret", 0, (*Cpu).execRet},
	OP_PUSH: {"push", 1, (*Cpu).execPush},
	OP_POP:  {"pop", 1, (*Cpu).execPop},
	OP_PRN:  {"prn", 1, (*Cpu).execPrn},
	OP_CALL: {"call", 1, (*Cpu).execCall},
	OP_JMP:  {"jmp", 1, (*Cpu).execJmp},
	OP_JEQ:  {"jeq", 1, (*Cpu).execJeq},
	OP_LDI:  {"ldi", 2, (*Cpu).execLdi},
	OP_ADD:  {"add", 2, aluExec(ALU_OP_ADD)},
	OP_MUL:  {"mul", 2, aluExec(ALU_OP_MUL)},
	OP_CMP:  {"cmp", 2, aluExec(ALU_OP_CMP)},
}

// Lookup returns the instruction for an opcode.
func Lookup(op Opcode) (inst Instruction, ok bool) {
	inst, ok = instructionTable[op]
	return
}

// Code is a single fetched instruction: its address, opcode, and operands.
type Code struct {
	Pc       int
	Opcode   Opcode
	Operands []byte
}

// MakeCode creates an instruction at address zero.
func MakeCode(op Opcode, args ...byte) Code {
	return Code{Opcode: op, Operands: args}
}

// Bytes returns the encoded instruction.
func (code Code) Bytes() (data []byte) {
	data = append(data, byte(code.Opcode))
	data = append(data, code.Operands...)
	return
}

// String returns the assembly language representation of this instruction.
func (code Code) String() (out string) {
	out = code.Opcode.String()
	for _, arg := range code.Operands {
		out += fmt.Sprintf(" 0x%02x", arg)
	}
	return
}
