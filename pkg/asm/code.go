package asm

import (
	"fmt"
	"strings"
)

// computeHeader marks a compute instruction: 111a_cccc_ccdd_djjj.
const computeHeader uint16 = 0xE000

// compCodes holds the 7-bit a+cccccc field. Bit 6 selects M over A.
var compCodes = map[string]uint16{
	"0":   0b0101010,
	"1":   0b0111111,
	"-1":  0b0111010,
	"D":   0b0001100,
	"A":   0b0110000,
	"!D":  0b0001101,
	"!A":  0b0110001,
	"-D":  0b0001111,
	"-A":  0b0110011,
	"D+1": 0b0011111,
	"A+1": 0b0110111,
	"D-1": 0b0001110,
	"A-1": 0b0110010,
	"D+A": 0b0000010,
	"D-A": 0b0010011,
	"A-D": 0b0000111,
	"D&A": 0b0000000,
	"D|A": 0b0010101,

	"M":   0b1110000,
	"!M":  0b1110001,
	"-M":  0b1110011,
	"M+1": 0b1110111,
	"M-1": 0b1110010,
	"D+M": 0b1000010,
	"D-M": 0b1010011,
	"M-D": 0b1000111,
	"D&M": 0b1000000,
	"D|M": 0b1010101,
}

var destCodes = map[string]uint16{
	"":    0,
	"M":   1,
	"D":   2,
	"MD":  3,
	"DM":  3,
	"A":   4,
	"AM":  5,
	"AD":  6,
	"AMD": 7,
	"ADM": 7,
}

var jumpCodes = map[string]uint16{
	"":    0,
	"JGT": 1,
	"JEQ": 2,
	"JGE": 3,
	"JLT": 4,
	"JNE": 5,
	"JLE": 6,
	"JMP": 7,
}

// EncodeAddress encodes an address instruction. Bit 15 is always clear.
func EncodeAddress(value uint16) (uint16, error) {
	if value > MaxAddress {
		return 0, fmt.Errorf("%w: %d > %d", ErrOverflow, value, MaxAddress)
	}
	return value, nil
}

// SplitCompute splits "[dest=]comp[;jump]" into its three fields. A field
// separator is only honoured when it splits its input into exactly two
// parts; otherwise the leading part is kept and the optional field is empty.
func SplitCompute(line string) (comp, dest, jump string) {
	parts := strings.Split(line, ";")
	if len(parts) == 2 {
		jump = parts[1]
	}
	parts = strings.Split(parts[0], "=")
	if len(parts) == 2 {
		return parts[1], parts[0], jump
	}
	return parts[0], "", jump
}

func LookupComp(comp string) (uint16, error) {
	code, ok := compCodes[comp]
	if !ok {
		return 0, fmt.Errorf("%w '%s'", ErrUnknownComputation, comp)
	}
	return code, nil
}

// LookupDest returns the 3-bit destination code. Unknown destinations map to
// 0 (no destination) with ok == false.
func LookupDest(dest string) (code uint16, ok bool) {
	code, ok = destCodes[dest]
	return code, ok
}

// LookupJump returns the 3-bit jump code. Unknown jumps map to 0 (no jump)
// with ok == false.
func LookupJump(jump string) (code uint16, ok bool) {
	code, ok = jumpCodes[jump]
	return code, ok
}

// EncodeCompute packs a compute instruction. Only an unknown comp is an
// error; see LookupDest and LookupJump for the other two fields.
func EncodeCompute(comp, dest, jump string) (uint16, error) {
	c, err := LookupComp(comp)
	if err != nil {
		return 0, err
	}
	d, _ := LookupDest(dest)
	j, _ := LookupJump(jump)
	return computeHeader | c<<6 | d<<3 | j, nil
}
