package asm

import "errors"

// Fatal translation errors. Every error returned by the assembler wraps one
// of these, so callers can test with errors.Is.
var (
	ErrOverflow           = errors.New("address out of range")
	ErrUnknownComputation = errors.New("unknown computation")
	ErrInvalidSymbol      = errors.New("invalid symbol")
	ErrInvalidLabel       = errors.New("invalid label")
	ErrProgramTooLarge    = errors.New("program too large")
)
