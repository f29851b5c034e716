package main

import (
	"errors"
	"os"

	simtex "github.com/alnah/go-simtex"
	"github.com/alnah/go-simtex/internal/config"
)

// Exit codes for the simtex CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBuild   = 4 // LaTeX compiler or viewer errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Build errors (exit 4)
	if errors.Is(err, simtex.ErrCompilerNotFound) ||
		errors.Is(err, simtex.ErrCompile) ||
		errors.Is(err, simtex.ErrView) {
		return ExitBuild
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrMissingField) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, simtex.ErrMissingRule) ||
		errors.Is(err, simtex.ErrDuplicateToken) ||
		errors.Is(err, simtex.ErrInvalidRule) ||
		errors.Is(err, simtex.ErrInvalidPattern) ||
		errors.Is(err, simtex.ErrInvalidDocument) ||
		errors.Is(err, simtex.ErrInvalidDateFormat) ||
		errors.Is(err, simtex.ErrListingsNotFound) ||
		errors.Is(err, simtex.ErrTemplateNotFound) ||
		errors.Is(err, simtex.ErrInvalidAssetPath) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidFlag) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, os.ErrExist) ||
		errors.Is(err, simtex.ErrReadInput) ||
		errors.Is(err, simtex.ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	return ExitGeneral
}
