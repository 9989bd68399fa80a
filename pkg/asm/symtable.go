package asm

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/golang/glog"
)

const (
	// MaxAddress is the largest value an address instruction can load.
	MaxAddress = 0x7FFF

	// FirstVariable is the RAM address handed to the first variable.
	FirstVariable = 16

	ScreenAddress   = 16384
	KeyboardAddress = 24576
)

// predefined holds the names every Hack program can use without declaring.
// R0..R15 are added by NewSymbolTable.
var predefined = map[string]uint16{
	"SP":     0,
	"LCL":    1,
	"ARG":    2,
	"THIS":   3,
	"THAT":   4,
	"SCREEN": ScreenAddress,
	"KBD":    KeyboardAddress,
}

// SymbolTable maps symbol names to addresses. Labels are ROM addresses bound
// during the first pass; variables are RAM addresses allocated on first use
// during the second pass, starting at FirstVariable.
type SymbolTable struct {
	symbols map[string]uint16

	// Next RAM address handed out to a variable.
	nextVariable uint32
}

func NewSymbolTable() *SymbolTable {
	s := &SymbolTable{
		symbols:      make(map[string]uint16, len(predefined)+16),
		nextVariable: FirstVariable,
	}
	for name, addr := range predefined {
		s.symbols[name] = addr
	}
	for i := 0; i < 16; i++ {
		s.symbols["R"+strconv.Itoa(i)] = uint16(i)
	}
	return s
}

// DeclareLabel binds name to a ROM address. A second declaration of the same
// name replaces the first.
func (s *SymbolTable) DeclareLabel(name string, romAddress uint16) {
	if prev, exists := s.symbols[name]; exists {
		glog.Warningf("label '%s' redeclared: %d replaces %d", name, romAddress, prev)
	}
	s.symbols[name] = romAddress
}

// ResolveOrAllocate returns the address for the operand of an address
// instruction. Decimal literals are returned as is, bound names return their
// binding, and any other valid name is bound to the next free variable
// address.
func (s *SymbolTable) ResolveOrAllocate(token string) (uint16, error) {
	if isDecimal(token) {
		return parseLiteral(token)
	}

	if addr, ok := s.symbols[token]; ok {
		return addr, nil
	}

	if !isSymbol(token) {
		return 0, fmt.Errorf("%w '%s'", ErrInvalidSymbol, token)
	}

	if s.nextVariable > MaxAddress {
		return 0, fmt.Errorf("%w: no RAM left for variable '%s'", ErrOverflow, token)
	}
	addr := uint16(s.nextVariable)
	s.symbols[token] = addr
	s.nextVariable++
	glog.V(1).Infof("variable '%s' -> %d", token, addr)
	return addr, nil
}

// Lookup reports the binding of name, if any.
func (s *SymbolTable) Lookup(name string) (uint16, bool) {
	addr, ok := s.symbols[name]
	return addr, ok
}

func (s *SymbolTable) Len() int {
	return len(s.symbols)
}

// NextVariable is the address the next new variable will receive.
func (s *SymbolTable) NextVariable() uint16 {
	return uint16(s.nextVariable)
}

// Symbols returns a copy of every binding.
func (s *SymbolTable) Symbols() map[string]uint16 {
	out := make(map[string]uint16, len(s.symbols))
	for name, addr := range s.symbols {
		out[name] = addr
	}
	return out
}

// String lists the bindings ordered by address, then by name.
func (s *SymbolTable) String() string {
	names := make([]string, 0, len(s.symbols))
	for name := range s.symbols {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ai, aj := s.symbols[names[i]], s.symbols[names[j]]
		if ai != aj {
			return ai < aj
		}
		return names[i] < names[j]
	})

	var sb strings.Builder
	for _, name := range names {
		fmt.Fprintf(&sb, "%-24s %5d\n", name, s.symbols[name])
	}
	return sb.String()
}

func parseLiteral(token string) (uint16, error) {
	value, err := strconv.ParseUint(token, 10, 64)
	if err != nil || value > MaxAddress {
		return 0, fmt.Errorf("%w: %s > %d", ErrOverflow, token, MaxAddress)
	}
	return uint16(value), nil
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// isSymbol reports whether s is a legal Hack symbol:
// a letter, '_', '.', '$' or ':' followed by those or digits.
func isSymbol(s string) bool {
	if s == "" {
		return false
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c == '_', c == '.', c == '$', c == ':':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}

	return true
}
