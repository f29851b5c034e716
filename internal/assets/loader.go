package assets

// AssetLoader defines the contract for loading listings styles and LaTeX
// templates. Implementations may load from embedded assets, the filesystem, etc.
type AssetLoader interface {
	// LoadListings loads a listings style by name (without .tex extension).
	// Returns ErrListingsNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadListings(name string) (string, error)

	// LoadTemplate loads a LaTeX template by name (without .tex extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) (string, error)
}

// DefaultListingsName is the name of the built-in listings style.
const DefaultListingsName = "default"

// PreambleTemplateName is the name of the built-in preamble template.
const PreambleTemplateName = "preamble"
