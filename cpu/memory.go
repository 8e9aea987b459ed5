package cpu

const (
	MEMORY_SIZE    = 256 // Bytes of addressable memory.
	REGISTER_COUNT = 8   // General-purpose registers.
)

// Memory is the flat, byte-addressed store of the LS-8.
type Memory [MEMORY_SIZE]byte

// Read a byte from memory.
func (mem *Memory) Read(addr int) (value byte, err error) {
	if addr < 0 || addr >= len(mem) {
		err = ErrAddress(addr)
		return
	}

	value = mem[addr]
	return
}

// Write a byte to memory.
func (mem *Memory) Write(addr int, value byte) (err error) {
	if addr < 0 || addr >= len(mem) {
		err = ErrAddress(addr)
		return
	}

	mem[addr] = value
	return
}

// Reg returns the value of a general-purpose register.
func (cpu *Cpu) Reg(index int) (value byte, err error) {
	if index < 0 || index >= len(cpu.Register) {
		err = ErrRegister(index)
		return
	}

	value = cpu.Register[index]
	return
}

// SetReg sets the value of a general-purpose register.
func (cpu *Cpu) SetReg(index int, value byte) (err error) {
	if index < 0 || index >= len(cpu.Register) {
		err = ErrRegister(index)
		return
	}

	cpu.Register[index] = value
	return
}
