package cpu

// The stack lives in RAM and grows down. Register SP holds the address of
// the current top cell. Faulting pushes and pops leave SP unchanged.

// Push moves SP down one cell, then stores register reg at the new top.
// The register is read after SP moves, so pushing SP stores the new SP.
func (cpu *Cpu) Push(reg byte) (err error) {
	err = cpu.checkRegister(reg)
	if err != nil {
		return
	}

	top := int(cpu.Register[SP] - 1)
	err = cpu.checkAddress(top)
	if err != nil {
		return
	}

	cpu.Register[SP] = byte(top)
	cpu.Ram[top] = cpu.Register[reg]

	return
}

// PushValue moves SP down one cell, then stores value at the new top.
func (cpu *Cpu) PushValue(value byte) (err error) {
	top := int(cpu.Register[SP] - 1)
	err = cpu.checkAddress(top)
	if err != nil {
		return
	}

	cpu.Register[SP] = byte(top)
	cpu.Ram[top] = value

	return
}

// Pop loads the top cell into register reg, then moves SP up one cell.
// Popping into SP therefore leaves SP one above the loaded value.
func (cpu *Cpu) Pop(reg byte) (err error) {
	err = cpu.checkRegister(reg)
	if err != nil {
		return
	}

	value, err := cpu.RamRead(int(cpu.Register[SP]))
	if err != nil {
		return
	}

	cpu.Register[reg] = value
	cpu.Register[SP]++

	return
}

// Peek returns the top cell, if SP addresses RAM.
func (cpu *Cpu) Peek() (value byte, ok bool) {
	value, err := cpu.RamRead(int(cpu.Register[SP]))
	ok = err == nil
	return
}
