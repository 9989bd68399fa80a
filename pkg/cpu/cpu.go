package cpu

import (
	"fmt"
)

const (
	ROMSize = 32768
	RAMSize = 32768

	// Memory map.
	ScreenBase  uint16 = 0x4000
	ScreenWords        = 8192
	KBD         uint16 = 0x6000

	addrMask = 0x7FFF
)

// Compute instruction fields: 111a_cccc_ccdd_djjj.
const (
	bitCompute uint16 = 1 << 15
	bitA       uint16 = 1 << 12
	bitZX      uint16 = 1 << 11
	bitNX      uint16 = 1 << 10
	bitZY      uint16 = 1 << 9
	bitNY      uint16 = 1 << 8
	bitF       uint16 = 1 << 7
	bitNO      uint16 = 1 << 6
	bitDestA   uint16 = 1 << 5
	bitDestD   uint16 = 1 << 4
	bitDestM   uint16 = 1 << 3
	bitJLT     uint16 = 1 << 2
	bitJEQ     uint16 = 1 << 1
	bitJGT     uint16 = 1 << 0

	jumpMask uint16 = bitJLT | bitJEQ | bitJGT
	destMask uint16 = bitDestA | bitDestD | bitDestM
)

// CPU is the Hack computer: separate instruction ROM and data RAM, two
// registers and a program counter. The screen and keyboard live in RAM.
type CPU struct {
	ROM [ROMSize]uint16
	RAM [RAMSize]uint16

	A  uint16
	D  uint16
	PC uint16

	// Halted is set when PC leaves the loaded program or the program
	// parks itself in an "(END) @END 0;JMP" loop.
	Halted bool

	Steps uint64

	programSize int
}

func NewCPU() *CPU {
	c := &CPU{}
	c.Reset()
	return c
}

// Load copies program into ROM and resets the registers. RAM is kept.
func (c *CPU) Load(program []uint16) error {
	if len(program) > ROMSize {
		return fmt.Errorf("program too large for ROM: %d words > %d words", len(program), ROMSize)
	}
	c.ROM = [ROMSize]uint16{}
	copy(c.ROM[:], program)
	c.programSize = len(program)
	c.Reset()
	return nil
}

// Reset clears the registers and the halt flag, as the Hack reset line does.
func (c *CPU) Reset() {
	c.A, c.D, c.PC = 0, 0, 0
	c.Halted = c.programSize == 0
	c.Steps = 0
}

func (c *CPU) ProgramSize() int {
	return c.programSize
}

func (c *CPU) Peek(addr uint16) uint16 {
	return c.RAM[addr&addrMask]
}

func (c *CPU) Poke(addr uint16, val uint16) {
	c.RAM[addr&addrMask] = val
}

// SetKey publishes the code of the key currently held down; 0 means none.
func (c *CPU) SetKey(code uint16) {
	c.RAM[KBD] = code
}

// alu evaluates the comp field of instr against D and y (A or M).
func alu(instr, d, y uint16) uint16 {
	x := d
	if instr&bitZX != 0 {
		x = 0
	}
	if instr&bitNX != 0 {
		x = ^x
	}
	if instr&bitZY != 0 {
		y = 0
	}
	if instr&bitNY != 0 {
		y = ^y
	}

	var out uint16
	if instr&bitF != 0 {
		out = x + y
	} else {
		out = x & y
	}
	if instr&bitNO != 0 {
		out = ^out
	}
	return out
}

func jumps(instr, out uint16) bool {
	neg := out&0x8000 != 0
	zero := out == 0
	return (instr&bitJLT != 0 && neg) ||
		(instr&bitJEQ != 0 && zero) ||
		(instr&bitJGT != 0 && !neg && !zero)
}

func (c *CPU) Step() {
	if c.Halted {
		return
	}
	if int(c.PC) >= c.programSize {
		c.Halted = true
		return
	}

	instr := c.ROM[c.PC]
	c.Steps++

	if instr&bitCompute == 0 {
		c.A = instr
		c.PC++
		return
	}

	y := c.A
	if instr&bitA != 0 {
		y = c.RAM[c.A&addrMask]
	}
	out := alu(instr, c.D, y)

	// M is addressed by A as it was before this instruction.
	target := c.A
	if instr&bitDestM != 0 {
		c.RAM[target&addrMask] = out
	}
	if instr&bitDestA != 0 {
		c.A = out
	}
	if instr&bitDestD != 0 {
		c.D = out
	}

	if !jumps(instr, out) {
		c.PC++
		return
	}

	next := target & addrMask
	if instr&jumpMask == jumpMask && instr&destMask == 0 && next+1 == c.PC && c.ROM[next] == next {
		c.Halted = true
	}
	c.PC = next
}

// Run executes until the CPU halts.
func (c *CPU) Run() {
	for !c.Halted {
		c.Step()
	}
}

// RunSteps executes at most n instructions and returns how many ran.
func (c *CPU) RunSteps(n int) int {
	start := c.Steps
	for c.Steps-start < uint64(n) && !c.Halted {
		c.Step()
	}
	return int(c.Steps - start)
}
