package simtex

import (
	"errors"

	"github.com/alnah/go-simtex/internal/assets"
	"github.com/alnah/go-simtex/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrReadInput   = errors.New("cannot read input")
	ErrWriteOutput = errors.New("cannot write output")
	ErrFormat      = errors.New("cannot format document")
	ErrPreamble    = errors.New("preamble rendering failed")

	// Rule table validation errors.
	ErrMissingRule    = errors.New("missing rule")
	ErrDuplicateToken = errors.New("duplicate rule token")
	ErrInvalidRule    = errors.New("invalid rule")
	ErrInvalidPattern = errors.New("invalid rule pattern")

	// Document validation errors.
	ErrInvalidDocument = errors.New("invalid document settings")

	// Asset loading errors.
	ErrListingsNotFound = errors.New("listings style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")

	// Build errors.
	ErrCompilerNotFound = errors.New("LaTeX compiler not found")
	ErrCompile          = errors.New("LaTeX compilation failed")
	ErrView             = errors.New("cannot open PDF viewer")
)

// convertPipelineError maps internal pipeline errors to public errors.
func convertPipelineError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, pipeline.ErrReadInput):
		return wrapError(ErrReadInput, err)
	case errors.Is(err, pipeline.ErrWriteOutput):
		return wrapError(ErrWriteOutput, err)
	case errors.Is(err, pipeline.ErrFormat):
		return wrapError(ErrFormat, err)
	case errors.Is(err, pipeline.ErrTemplate):
		return wrapError(ErrPreamble, err)
	case errors.Is(err, pipeline.ErrMissingRule):
		return wrapError(ErrMissingRule, err)
	case errors.Is(err, pipeline.ErrDuplicateToken):
		return wrapError(ErrDuplicateToken, err)
	case errors.Is(err, pipeline.ErrInvalidRule):
		return wrapError(ErrInvalidRule, err)
	case errors.Is(err, pipeline.ErrInvalidPattern):
		return wrapError(ErrInvalidPattern, err)
	default:
		return err
	}
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrListingsNotFound):
		return wrapError(ErrListingsNotFound, err)
	case errors.Is(err, assets.ErrTemplateNotFound):
		return wrapError(ErrTemplateNotFound, err)
	case errors.Is(err, assets.ErrInvalidBasePath),
		errors.Is(err, assets.ErrPathTraversal),
		errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrInvalidAssetPath, err)
	default:
		return err
	}
}

// wrapError creates an error that keeps the original message and matches
// both the public sentinel and the original chain with errors.Is.
func wrapError(sentinel, original error) error {
	return &wrappedError{sentinel: sentinel, original: original}
}

type wrappedError struct {
	sentinel error
	original error
}

func (e *wrappedError) Error() string {
	return e.original.Error()
}

func (e *wrappedError) Unwrap() []error {
	return []error{e.sentinel, e.original}
}
