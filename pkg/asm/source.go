package asm

import "strings"

// Line is one cleaned, non-empty source line together with its 1-based line
// number in the source text.
type Line struct {
	No   int
	Text string
}

// Clean strips comments and whitespace from src and drops the lines left
// empty.
func Clean(src string) []Line {
	raw := strings.Split(src, "\n")
	lines := make([]Line, 0, len(raw))
	for i, r := range raw {
		text := CleanLine(r)
		if text == "" {
			continue
		}
		lines = append(lines, Line{No: i + 1, Text: text})
	}
	return lines
}

var whitespace = strings.NewReplacer(" ", "", "\t", "", "\r", "")

// CleanLine removes a trailing // comment and every blank from a single line.
func CleanLine(s string) string {
	if cut := strings.Index(s, "//"); cut >= 0 {
		s = s[:cut]
	}
	return whitespace.Replace(s)
}

// numbered turns an already-cleaned sequence into Lines, numbering them by
// position.
func numbered(texts []string) []Line {
	lines := make([]Line, len(texts))
	for i, t := range texts {
		lines[i] = Line{No: i + 1, Text: t}
	}
	return lines
}
