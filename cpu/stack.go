package cpu

const (
	SP_INIT   = 0xf4            // Initial stack pointer.
	STACK_TOP = MEMORY_SIZE - 1 // Highest address the stack pointer may hold.
)

// Push decrements the stack pointer, and stores value at the new top.
func (cpu *Cpu) Push(value byte) (err error) {
	if cpu.Sp <= 0 {
		err = ErrStackFull
		return
	}

	err = cpu.Memory.Write(cpu.Sp-1, value)
	if err != nil {
		return
	}
	cpu.Sp--

	return
}

// Pop reads the value at the top of the stack, and increments the stack pointer.
func (cpu *Cpu) Pop() (value byte, err error) {
	if cpu.Sp >= STACK_TOP {
		err = ErrStackEmpty
		return
	}

	value, err = cpu.Memory.Read(cpu.Sp)
	if err != nil {
		return
	}
	cpu.Sp++

	return
}

// Peek returns the value at the top of the stack without removing it.
func (cpu *Cpu) Peek() (value byte, ok bool) {
	value, err := cpu.Memory.Read(cpu.Sp)
	ok = err == nil && cpu.Sp < STACK_TOP
	return
}

// Depth is the number of bytes pushed below the initial stack pointer.
func (cpu *Cpu) Depth() int {
	return SP_INIT - cpu.Sp
}
