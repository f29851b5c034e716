package pipeline

import "errors"

// Sentinel errors for pipeline operations.
var (
	ErrReadInput      = errors.New("cannot read input")
	ErrWriteOutput    = errors.New("cannot write output")
	ErrFormat         = errors.New("cannot format document")
	ErrMissingRule    = errors.New("missing rule")
	ErrDuplicateToken = errors.New("duplicate rule token")
	ErrInvalidRule    = errors.New("invalid rule")
	ErrInvalidPattern = errors.New("invalid rule pattern")
	ErrTemplate       = errors.New("preamble template failed")
)
