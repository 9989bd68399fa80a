package asm

import (
	"errors"
	"testing"
)

func TestEncodeAddress(t *testing.T) {
	for n := 0; n <= MaxAddress; n++ {
		got, err := EncodeAddress(uint16(n))
		if err != nil {
			t.Fatalf("EncodeAddress(%d) error: %v", n, err)
		}
		if got&0x8000 != 0 || got != uint16(n) {
			t.Fatalf("EncodeAddress(%d) = 0x%04X; want 0x%04X", n, got, n)
		}
	}

	if _, err := EncodeAddress(MaxAddress + 1); !errors.Is(err, ErrOverflow) {
		t.Errorf("EncodeAddress(32768) error = %v; want ErrOverflow", err)
	}
}

func TestSplitCompute(t *testing.T) {
	tests := []struct {
		line                       string
		wantComp, wantDest, wantJp string
	}{
		{"a=b;c", "b", "a", "c"},
		{"a=b", "b", "a", ""},
		{"a;c", "a", "", "c"},
		{"D+1", "D+1", "", ""},
		{"AMD=M-1;JNE", "M-1", "AMD", "JNE"},
		// separators only count when they split into exactly two parts
		{"a;b;c", "a", "", ""},
		{"a=b=c", "a", "", ""},
	}
	for _, tc := range tests {
		comp, dest, jump := SplitCompute(tc.line)
		if comp != tc.wantComp || dest != tc.wantDest || jump != tc.wantJp {
			t.Errorf("SplitCompute(%q) = (%q, %q, %q); want (%q, %q, %q)",
				tc.line, comp, dest, jump, tc.wantComp, tc.wantDest, tc.wantJp)
		}
	}
}

func TestLookupComp(t *testing.T) {
	if len(compCodes) != 28 {
		t.Errorf("comp table has %d entries; want 28", len(compCodes))
	}

	tests := []struct {
		comp string
		want uint16
	}{
		{"0", 0b0101010},
		{"-1", 0b0111010},
		{"A", 0b0110000},
		{"M", 0b1110000},
		{"D&M", 0b1000000},
		{"D|M", 0b1010101},
	}
	for _, tc := range tests {
		got, err := LookupComp(tc.comp)
		if err != nil || got != tc.want {
			t.Errorf("LookupComp(%q) = %07b, %v; want %07b", tc.comp, got, err, tc.want)
		}
	}

	// every M form is its A twin with bit 6 set
	for comp, code := range compCodes {
		twin := []byte(comp)
		hasM := false
		for i, c := range twin {
			if c == 'M' {
				twin[i] = 'A'
				hasM = true
			}
		}
		if !hasM {
			continue
		}
		aCode, ok := compCodes[string(twin)]
		if !ok {
			t.Errorf("comp %q has no A twin %q", comp, twin)
			continue
		}
		if code != aCode|1<<6 {
			t.Errorf("comp %q = %07b; want %07b", comp, code, aCode|1<<6)
		}
	}

	for _, bad := range []string{"", "D+2", "M+D", "d", "A+M"} {
		if _, err := LookupComp(bad); !errors.Is(err, ErrUnknownComputation) {
			t.Errorf("LookupComp(%q) error = %v; want ErrUnknownComputation", bad, err)
		}
	}
}

func TestLookupDest(t *testing.T) {
	tests := []struct {
		dest   string
		want   uint16
		wantOk bool
	}{
		{"", 0, true},
		{"M", 1, true},
		{"D", 2, true},
		{"MD", 3, true},
		{"DM", 3, true},
		{"A", 4, true},
		{"AM", 5, true},
		{"AD", 6, true},
		{"AMD", 7, true},
		{"ADM", 7, true},
		{"error", 0, false},
		{"MA", 0, false},
	}
	for _, tc := range tests {
		got, ok := LookupDest(tc.dest)
		if got != tc.want || ok != tc.wantOk {
			t.Errorf("LookupDest(%q) = %d, %v; want %d, %v", tc.dest, got, ok, tc.want, tc.wantOk)
		}
	}
}

func TestLookupJump(t *testing.T) {
	tests := []struct {
		jump   string
		want   uint16
		wantOk bool
	}{
		{"", 0, true},
		{"JGT", 1, true},
		{"JEQ", 2, true},
		{"JGE", 3, true},
		{"JLT", 4, true},
		{"JNE", 5, true},
		{"JLE", 6, true},
		{"JMP", 7, true},
		{"jmp", 0, false},
		{"JMPX", 0, false},
	}
	for _, tc := range tests {
		got, ok := LookupJump(tc.jump)
		if got != tc.want || ok != tc.wantOk {
			t.Errorf("LookupJump(%q) = %d, %v; want %d, %v", tc.jump, got, ok, tc.want, tc.wantOk)
		}
	}
}

func TestEncodeCompute(t *testing.T) {
	tests := []struct {
		comp, dest, jump string
		want             uint16
	}{
		{"A", "D", "", 0b1110110000010000},
		{"D", "", "JGT", 0b1110001100000001},
		{"M+1", "M", "", 0b1111110111001000},
		{"0", "", "JMP", 0b1110101010000111},
		{"M-1", "AM", "", 0b1111110010101000},
		{"D|A", "AMD", "JNE", 0b1110010101111101},
		// lenient fields fall back to 0
		{"D", "X", "JXX", 0b1110001100000000},
	}
	for _, tc := range tests {
		got, err := EncodeCompute(tc.comp, tc.dest, tc.jump)
		if err != nil {
			t.Errorf("EncodeCompute(%q, %q, %q) error: %v", tc.comp, tc.dest, tc.jump, err)
			continue
		}
		if got != tc.want {
			t.Errorf("EncodeCompute(%q, %q, %q) = %016b; want %016b", tc.comp, tc.dest, tc.jump, got, tc.want)
		}
	}

	if _, err := EncodeCompute("D*A", "D", ""); !errors.Is(err, ErrUnknownComputation) {
		t.Errorf("EncodeCompute(D*A) error = %v; want ErrUnknownComputation", err)
	}
}
