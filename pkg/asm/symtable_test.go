package asm

import (
	"errors"
	"strconv"
	"strings"
	"testing"
)

func TestSymbolTable(t *testing.T) {
	t.Run("Predefined", func(t *testing.T) {
		s := NewSymbolTable()
		want := map[string]uint16{
			"SP":     0,
			"LCL":    1,
			"ARG":    2,
			"THIS":   3,
			"THAT":   4,
			"SCREEN": 16384,
			"KBD":    24576,
		}
		for i := 0; i < 16; i++ {
			want["R"+strconv.Itoa(i)] = uint16(i)
		}

		if s.Len() != len(want) {
			t.Errorf("Len() = %d; want %d", s.Len(), len(want))
		}
		for name, addr := range want {
			got, err := s.ResolveOrAllocate(name)
			if err != nil {
				t.Errorf("ResolveOrAllocate(%q) error: %v", name, err)
				continue
			}
			if got != addr {
				t.Errorf("ResolveOrAllocate(%q) = %d; want %d", name, got, addr)
			}
		}
		if s.NextVariable() != FirstVariable {
			t.Errorf("NextVariable() = %d after predefined lookups; want %d", s.NextVariable(), FirstVariable)
		}
	})

	t.Run("VariableAllocation", func(t *testing.T) {
		s := NewSymbolTable()
		tokens := []string{"i", "sum", "i", "j", "sum"}
		want := []uint16{16, 17, 16, 18, 17}
		for k, tok := range tokens {
			got, err := s.ResolveOrAllocate(tok)
			if err != nil {
				t.Fatalf("ResolveOrAllocate(%q) error: %v", tok, err)
			}
			if got != want[k] {
				t.Errorf("ResolveOrAllocate(%q) #%d = %d; want %d", tok, k, got, want[k])
			}
		}
		if s.NextVariable() != 19 {
			t.Errorf("NextVariable() = %d; want 19", s.NextVariable())
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		s := NewSymbolTable()
		first, _ := s.ResolveOrAllocate("counter")
		second, _ := s.ResolveOrAllocate("counter")
		if first != second {
			t.Errorf("second ResolveOrAllocate = %d; want %d", second, first)
		}
	})

	t.Run("Literals", func(t *testing.T) {
		s := NewSymbolTable()
		tests := []struct {
			token string
			want  uint16
		}{
			{"0", 0},
			{"7", 7},
			{"007", 7},
			{"16384", 16384},
			{"32767", 32767},
		}
		for _, tc := range tests {
			got, err := s.ResolveOrAllocate(tc.token)
			if err != nil {
				t.Errorf("ResolveOrAllocate(%q) error: %v", tc.token, err)
				continue
			}
			if got != tc.want {
				t.Errorf("ResolveOrAllocate(%q) = %d; want %d", tc.token, got, tc.want)
			}
		}
		if s.Len() != 23 {
			t.Errorf("literals touched the table: Len() = %d; want 23", s.Len())
		}
	})

	t.Run("Overflow", func(t *testing.T) {
		s := NewSymbolTable()
		for _, tok := range []string{"32768", "65535", "65536", "99999999999999999999999"} {
			if _, err := s.ResolveOrAllocate(tok); !errors.Is(err, ErrOverflow) {
				t.Errorf("ResolveOrAllocate(%q) error = %v; want ErrOverflow", tok, err)
			}
		}
	})

	t.Run("InvalidSymbol", func(t *testing.T) {
		s := NewSymbolTable()
		for _, tok := range []string{"1abc", "a-b", "x+1", "a b"} {
			if _, err := s.ResolveOrAllocate(tok); !errors.Is(err, ErrInvalidSymbol) {
				t.Errorf("ResolveOrAllocate(%q) error = %v; want ErrInvalidSymbol", tok, err)
			}
		}
		if s.NextVariable() != FirstVariable {
			t.Errorf("invalid symbols allocated RAM: NextVariable() = %d", s.NextVariable())
		}
	})

	t.Run("DeclareLabel", func(t *testing.T) {
		s := NewSymbolTable()
		s.DeclareLabel("LOOP", 4)
		if addr, ok := s.Lookup("LOOP"); !ok || addr != 4 {
			t.Errorf("Lookup(LOOP) = %d, %v; want 4, true", addr, ok)
		}

		// last declaration wins
		s.DeclareLabel("LOOP", 9)
		if got, _ := s.ResolveOrAllocate("LOOP"); got != 9 {
			t.Errorf("ResolveOrAllocate(LOOP) after redeclare = %d; want 9", got)
		}
		if s.NextVariable() != FirstVariable {
			t.Errorf("label resolution allocated RAM: NextVariable() = %d", s.NextVariable())
		}
	})

	t.Run("Exhausted", func(t *testing.T) {
		s := NewSymbolTable()
		s.nextVariable = MaxAddress
		if got, err := s.ResolveOrAllocate("last"); err != nil || got != MaxAddress {
			t.Fatalf("ResolveOrAllocate(last) = %d, %v; want %d, nil", got, err, MaxAddress)
		}
		if _, err := s.ResolveOrAllocate("one_more"); !errors.Is(err, ErrOverflow) {
			t.Errorf("ResolveOrAllocate(one_more) error = %v; want ErrOverflow", err)
		}
	})

	t.Run("SymbolsIsCopy", func(t *testing.T) {
		s := NewSymbolTable()
		m := s.Symbols()
		m["SP"] = 99
		if got, _ := s.Lookup("SP"); got != 0 {
			t.Errorf("mutating Symbols() changed the table: SP = %d", got)
		}
	})

	t.Run("String", func(t *testing.T) {
		s := NewSymbolTable()
		s.DeclareLabel("END", 42)
		out := s.String()
		lines := strings.Split(strings.TrimSpace(out), "\n")
		if len(lines) != s.Len() {
			t.Fatalf("String() has %d lines; want %d", len(lines), s.Len())
		}
		if !strings.HasPrefix(lines[0], "R0 ") {
			t.Errorf("first line = %q; want R0 first (address 0, sorted by name)", lines[0])
		}
		if !strings.HasPrefix(lines[len(lines)-1], "KBD ") {
			t.Errorf("last line = %q; want KBD", lines[len(lines)-1])
		}
	})
}

func TestIsSymbol(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"abc", true},
		{"_abc", true},
		{"abc1", true},
		{"Main.loop$if_1", true},
		{":x", true},
		{"ponggame.0", true},
		{"1abc", false},
		{"", false},
		{"ab-c", false},
		{"(x)", false},
	}
	for _, tc := range tests {
		if got := isSymbol(tc.input); got != tc.want {
			t.Errorf("isSymbol(%q) = %v; want %v", tc.input, got, tc.want)
		}
	}
}
