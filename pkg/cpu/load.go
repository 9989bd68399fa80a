package cpu

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseHack reads the .hack text format: one instruction per line, each
// exactly 16 characters of '0' and '1'. Blank lines are skipped.
func ParseHack(r io.Reader) ([]uint16, error) {
	var program []uint16

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if len(line) != 16 {
			return nil, fmt.Errorf("line %d: expected 16 binary digits, got %d characters", lineNo, len(line))
		}

		var word uint16
		for _, ch := range line {
			word <<= 1
			switch ch {
			case '0':
			case '1':
				word |= 1
			default:
				return nil, fmt.Errorf("line %d: invalid binary digit %q", lineNo, ch)
			}
		}
		program = append(program, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return program, nil
}
