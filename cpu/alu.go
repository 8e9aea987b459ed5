package cpu

import (
	"log"
)

// AluOp is an ALU operation type.
type AluOp int

const (
	ALU_OP_ADD = AluOp(0) // add
	ALU_OP_MUL = AluOp(1) // mul
	ALU_OP_CMP = AluOp(2) // cmp
)

var aluOpName = map[AluOp]string{
	ALU_OP_ADD: "add",
	ALU_OP_MUL: "mul",
	ALU_OP_CMP: "cmp",
}

func (op AluOp) String() string {
	name, ok := aluOpName[op]
	if !ok {
		return f("AluOp(%d)", int(op))
	}
	return name
}

// Flag register states, as set by ALU_OP_CMP.
const (
	FLAG_E = byte(0b001) // Equal
	FLAG_G = byte(0b010) // Greater than
	FLAG_L = byte(0b100) // Less than
)

// Alu performs the requested ALU operation on two registers.
// ADD and MUL write the result (mod 256) into dst; CMP replaces the flags.
func (cpu *Cpu) Alu(op AluOp, dst, src int) (err error) {
	a, err := cpu.Reg(dst)
	if err != nil {
		return
	}
	b, err := cpu.Reg(src)
	if err != nil {
		return
	}

	switch op {
	case ALU_OP_ADD:
		cpu.Register[dst] = a + b
	case ALU_OP_MUL:
		cpu.Register[dst] = a * b
	case ALU_OP_CMP:
		switch {
		case a == b:
			cpu.Fl = FLAG_E
		case a > b:
			cpu.Fl = FLAG_G
		default:
			cpu.Fl = FLAG_L
		}
	default:
		err = ErrAluOp(op)
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: alu %v r%d(%d) r%d(%d) => r%d=%d fl=%03b", op, dst, a, src, b, dst, cpu.Register[dst], cpu.Fl)
	}

	return
}
