package cpu

import (
	"log"
)

func (cpu *Cpu) execHlt(args []byte) (err error) {
	cpu.Halted = true
	return
}

func (cpu *Cpu) execLdi(args []byte) (err error) {
	err = cpu.SetReg(int(args[0]), args[1])
	if err != nil {
		return
	}
	cpu.Pc += 3
	return
}

func (cpu *Cpu) execPrn(args []byte) (err error) {
	value, err := cpu.Reg(int(args[0]))
	if err != nil {
		return
	}
	err = cpu.Output.Print(value)
	if err != nil {
		return
	}
	cpu.Pc += 2
	return
}

// aluExec returns the handler for a two-register ALU instruction.
func aluExec(op AluOp) func(cpu *Cpu, args []byte) error {
	return func(cpu *Cpu, args []byte) (err error) {
		err = cpu.Alu(op, int(args[0]), int(args[1]))
		if err != nil {
			return
		}
		cpu.Pc += 3
		return
	}
}

func (cpu *Cpu) execPush(args []byte) (err error) {
	value, err := cpu.Reg(int(args[0]))
	if err != nil {
		return
	}
	err = cpu.Push(value)
	if err != nil {
		return
	}
	cpu.Pc += 2
	return
}

func (cpu *Cpu) execPop(args []byte) (err error) {
	// Validate the target before the stack is modified.
	_, err = cpu.Reg(int(args[0]))
	if err != nil {
		return
	}
	value, err := cpu.Pop()
	if err != nil {
		return
	}
	cpu.Register[args[0]] = value
	cpu.Pc += 2
	return
}

func (cpu *Cpu) execCall(args []byte) (err error) {
	target, err := cpu.Reg(int(args[0]))
	if err != nil {
		return
	}
	ret := cpu.Pc + 2
	if ret >= MEMORY_SIZE {
		err = ErrAddress(ret)
		return
	}
	err = cpu.Push(byte(ret))
	if err != nil {
		return
	}
	if cpu.Verbose {
		log.Printf("cpu: call 0x%02x, return to 0x%02x", target, ret)
	}
	cpu.Pc = int(target)
	return
}

func (cpu *Cpu) execRet(args []byte) (err error) {
	ret, err := cpu.Pop()
	if err != nil {
		return
	}
	cpu.Pc = int(ret)
	return
}

func (cpu *Cpu) execJmp(args []byte) (err error) {
	target, err := cpu.Reg(int(args[0]))
	if err != nil {
		return
	}
	cpu.Pc = int(target)
	return
}

func (cpu *Cpu) execJeq(args []byte) (err error) {
	target, err := cpu.Reg(int(args[0]))
	if err != nil {
		return
	}
	if cpu.Fl == FLAG_E {
		cpu.Pc = int(target)
	} else {
		cpu.Pc += 2
	}
	return
}
