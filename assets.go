package simtex

import (
	"github.com/alnah/go-simtex/internal/assets"
)

// DefaultListings is the name of the built-in listings style.
const DefaultListings = assets.DefaultListingsName

// AssetLoader defines the contract for loading listings styles and the
// preamble template. Implementations may load from the filesystem, embedded
// assets, or anything else.
//
// The library provides NewAssetLoader() for filesystem-based loading with
// fallback to embedded defaults.
type AssetLoader interface {
	// LoadListings loads a listings style by name (without .tex extension).
	// Returns ErrListingsNotFound if the style doesn't exist.
	LoadListings(name string) (string, error)

	// LoadTemplate loads a LaTeX template by name (without .tex extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) (string, error)
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, custom assets take precedence with fallback to embedded.
//
// The basePath directory should contain:
//   - listings/{name}.tex for listings styles
//   - templates/preamble.tex for the preamble template
//
// Returns ErrInvalidAssetPath if basePath is set but not a readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// assetLoaderAdapter wraps the internal resolver to return public errors.
type assetLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *assetLoaderAdapter) LoadListings(name string) (string, error) {
	content, err := a.resolver.LoadListings(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

func (a *assetLoaderAdapter) LoadTemplate(name string) (string, error) {
	content, err := a.resolver.LoadTemplate(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}
