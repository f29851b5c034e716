package assets

import (
	"embed"
	"fmt"
)

//go:embed listings/*.tex
var listings embed.FS

//go:embed templates/*.tex
var templates embed.FS

//go:embed config/simtex.yaml
var defaultConfig []byte

// EmbeddedLoader loads assets from embedded filesystem.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadListings loads a listings style from embedded assets by name.
func (e *EmbeddedLoader) LoadListings(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := listings.ReadFile("listings/" + name + ".tex")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrListingsNotFound, name)
	}

	return string(content), nil
}

// LoadTemplate loads a LaTeX template from embedded assets by name.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := templates.ReadFile("templates/" + name + ".tex")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}

	return string(content), nil
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
