package assets

import (
	"bytes"
	"strings"
	"testing"
)

func TestPackageLoaders(t *testing.T) {
	t.Parallel()

	if _, err := LoadListings(DefaultListingsName); err != nil {
		t.Errorf("LoadListings(default) error = %v", err)
	}
	if _, err := LoadTemplate(PreambleTemplateName); err != nil {
		t.Errorf("LoadTemplate(preamble) error = %v", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	data := DefaultConfig()
	for _, section := range []string{"rules:", "document:", "output:", "build:", "code:", "assets:", "remote:"} {
		if !bytes.Contains(data, []byte("\n"+section)) && !bytes.HasPrefix(data, []byte(section)) {
			t.Errorf("default config missing section %q", section)
		}
	}

	// Callers own the returned slice.
	data[0] = 'X'
	if DefaultConfig()[0] == 'X' {
		t.Error("DefaultConfig() should return a copy")
	}
}

func TestListingsNames(t *testing.T) {
	t.Parallel()

	got := strings.Join(ListingsNames(), ",")
	if got != "default,minimal" {
		t.Errorf("ListingsNames() = %q, want %q", got, "default,minimal")
	}
}
