package asm

import (
	"io"
	"strconv"
	"strings"
)

// FormatWord renders w as 16 binary digits, most significant bit first.
func FormatWord(w uint16) string {
	s := strconv.FormatUint(uint64(w), 2)
	return strings.Repeat("0", 16-len(s)) + s
}

// FormatHack renders words in the .hack text format: 16-digit lines joined
// by newlines, followed by a final newline. An empty program renders as a
// single newline.
func FormatHack(words []uint16) string {
	lines := make([]string, len(words))
	for i, w := range words {
		lines[i] = FormatWord(w)
	}
	return strings.Join(lines, "\n") + "\n"
}

// WriteHack writes FormatHack(words) to w.
func WriteHack(w io.Writer, words []uint16) error {
	_, err := io.WriteString(w, FormatHack(words))
	return err
}
