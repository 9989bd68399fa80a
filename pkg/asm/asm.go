package asm

import (
	"fmt"
	"strings"

	"github.com/golang/glog"
)

// ROMSize is the number of instruction words the Hack ROM holds.
const ROMSize = 32768

type lineKind int

const (
	labelLine lineKind = iota
	addressLine
	computeLine
)

type parsedLine struct {
	lineNo int
	kind   lineKind
	// label name for labelLine, operand for addressLine, the whole
	// instruction for computeLine
	operand string
}

// Assembler translates one program at a time. Each call to Assemble starts
// from a freshly seeded symbol table, which stays available through Symbols
// until the next call.
type Assembler struct {
	symbols *SymbolTable
}

func NewAssembler() *Assembler {
	return &Assembler{
		symbols: NewSymbolTable(),
	}
}

// Translate assembles an already-cleaned instruction sequence.
func Translate(lines []string) ([]uint16, error) {
	words, _, err := NewAssembler().Assemble(numbered(lines))
	return words, err
}

// AssembleSource cleans raw assembly text and assembles it. The source map
// is keyed by ROM address and holds line numbers of src.
func AssembleSource(src string) ([]uint16, map[uint16]int, error) {
	return NewAssembler().Assemble(Clean(src))
}

// Symbols returns the table built by the last call to Assemble.
func (a *Assembler) Symbols() *SymbolTable {
	return a.symbols
}

// Assemble runs both passes over lines. On any fatal error no words are
// returned.
func (a *Assembler) Assemble(lines []Line) ([]uint16, map[uint16]int, error) {
	a.symbols = NewSymbolTable()

	parsed := make([]parsedLine, 0, len(lines))
	for _, l := range lines {
		p, err := parseLine(l.Text, l.No)
		if err != nil {
			return nil, nil, err
		}
		parsed = append(parsed, p)
	}

	if err := a.pass1(parsed); err != nil {
		return nil, nil, err
	}

	return a.pass2(parsed)
}

// pass1 binds every label to the ROM address of the instruction after it.
func (a *Assembler) pass1(lines []parsedLine) error {
	var address uint32

	for _, p := range lines {
		if p.kind == labelLine {
			if address > MaxAddress {
				return fmt.Errorf("%w: label '%s' on line %d points past ROM", ErrProgramTooLarge, p.operand, p.lineNo)
			}
			a.symbols.DeclareLabel(p.operand, uint16(address))
			glog.V(1).Infof("label '%s' -> %d", p.operand, address)
			continue
		}

		address++
		if address > ROMSize {
			return fmt.Errorf("%w near line %d: more than %d instructions", ErrProgramTooLarge, p.lineNo, ROMSize)
		}
	}

	return nil
}

func (a *Assembler) pass2(lines []parsedLine) ([]uint16, map[uint16]int, error) {
	program := make([]uint16, 0, len(lines))
	sourceMap := make(map[uint16]int)

	for _, p := range lines {
		var word uint16

		switch p.kind {
		case labelLine:
			continue

		case addressLine:
			value, err := a.symbols.ResolveOrAllocate(p.operand)
			if err != nil {
				return nil, nil, fmt.Errorf("%w on line %d", err, p.lineNo)
			}
			word, err = EncodeAddress(value)
			if err != nil {
				return nil, nil, fmt.Errorf("%w on line %d", err, p.lineNo)
			}

		case computeLine:
			comp, dest, jump := SplitCompute(p.operand)
			if _, ok := LookupDest(dest); !ok {
				glog.Warningf("unknown destination '%s' on line %d, assembling with no destination", dest, p.lineNo)
			}
			if _, ok := LookupJump(jump); !ok {
				glog.Warningf("unknown jump '%s' on line %d, assembling with no jump", jump, p.lineNo)
			}
			var err error
			word, err = EncodeCompute(comp, dest, jump)
			if err != nil {
				return nil, nil, fmt.Errorf("%w on line %d", err, p.lineNo)
			}
		}

		glog.V(2).Infof("%5d: %016b  (line %d)", len(program), word, p.lineNo)
		sourceMap[uint16(len(program))] = p.lineNo
		program = append(program, word)
	}

	return program, sourceMap, nil
}

func parseLine(text string, lineNo int) (parsedLine, error) {
	p := parsedLine{lineNo: lineNo}

	switch {
	case strings.HasPrefix(text, "("):
		if !strings.HasSuffix(text, ")") {
			return p, fmt.Errorf("%w '%s' on line %d: missing ')'", ErrInvalidLabel, text, lineNo)
		}
		name := text[1 : len(text)-1]
		if !isSymbol(name) {
			return p, fmt.Errorf("%w '%s' on line %d", ErrInvalidLabel, text, lineNo)
		}
		p.kind = labelLine
		p.operand = name

	case strings.HasPrefix(text, "@"):
		if len(text) == 1 {
			return p, fmt.Errorf("%w: empty address on line %d", ErrInvalidSymbol, lineNo)
		}
		p.kind = addressLine
		p.operand = text[1:]

	default:
		p.kind = computeLine
		p.operand = text
	}

	return p, nil
}
