package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks that an asset name is a bare file stem.
// Path separators and dots are rejected, which rules out traversal and
// extension tricks such as "../preamble" or "default.tex".
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
