package assets

import (
	"io/fs"
	"sort"
	"strings"
)

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadListings loads a listings style by name using the default embedded loader.
func LoadListings(name string) (string, error) {
	return defaultLoader.LoadListings(name)
}

// LoadTemplate loads a LaTeX template by name using the default embedded loader.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}

// DefaultConfig returns a copy of the shipped simtex.yaml.
func DefaultConfig() []byte {
	out := make([]byte, len(defaultConfig))
	copy(out, defaultConfig)
	return out
}

// ListingsNames returns the names of the embedded listings styles, sorted.
func ListingsNames() []string {
	entries, err := fs.ReadDir(listings, "listings")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".tex"); ok && !e.IsDir() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
