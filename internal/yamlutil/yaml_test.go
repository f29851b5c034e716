package yamlutil_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-simtex/internal/yamlutil"
)

type tokens struct {
	Section string `yaml:"section"`
	Code    string `yaml:"code"`
	Sloppy  bool   `yaml:"sloppy"`
}

// ---------------------------------------------------------------------------
// TestUnmarshal - Lenient decoding
// ---------------------------------------------------------------------------

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		check   func(t *testing.T, v any)
	}{
		{
			name: "quoted tokens",
			data: []byte("section: \"#\"\ncode: \"```\"\nsloppy: true"),
			dest: &tokens{},
			check: func(t *testing.T, v any) {
				got := v.(*tokens)
				if got.Section != "#" {
					t.Errorf("Section = %q, want %q", got.Section, "#")
				}
				if got.Code != "```" {
					t.Errorf("Code = %q, want %q", got.Code, "```")
				}
				if !got.Sloppy {
					t.Error("Sloppy = false, want true")
				}
			},
		},
		{
			name: "unknown keys ignored",
			data: []byte("section: \"#\"\nextra: 1"),
			dest: &tokens{},
			check: func(t *testing.T, v any) {
				if v.(*tokens).Section != "#" {
					t.Errorf("Section = %q, want %q", v.(*tokens).Section, "#")
				}
			},
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &tokens{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("section: x"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
		{
			name:    "invalid syntax",
			data:    []byte("section: [unclosed"),
			dest:    &tokens{},
			wantErr: errors.New("yamlutil:"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.Unmarshal(tt.data, tt.dest)
			if tt.wantErr != nil {
				assertErr(t, err, tt.wantErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, tt.dest)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Unknown keys are rejected
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	var got tokens
	if err := yamlutil.UnmarshalStrict([]byte("section: \"#\""), &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Section != "#" {
		t.Errorf("Section = %q, want %q", got.Section, "#")
	}

	err := yamlutil.UnmarshalStrict([]byte("section: \"#\"\nsubsecton: \"##\""), &tokens{})
	if err == nil {
		t.Fatal("expected error for misspelled key, got nil")
	}
	if !strings.HasPrefix(err.Error(), "yamlutil:") {
		t.Errorf("error = %q, want prefix 'yamlutil:'", err)
	}
}

// ---------------------------------------------------------------------------
// TestMarshal - Two-space layout
// ---------------------------------------------------------------------------

func TestMarshal(t *testing.T) {
	t.Parallel()

	type nested struct {
		Rules tokens `yaml:"rules"`
	}

	data, err := yamlutil.Marshal(nested{Rules: tokens{Section: "#"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(data), "\n  section:") {
		t.Errorf("expected two-space indented section key, got:\n%s", data)
	}

	var back nested
	if err := yamlutil.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal(Marshal()) failed: %v", err)
	}
	if back.Rules.Section != "#" {
		t.Errorf("Section = %q, want %q", back.Rules.Section, "#")
	}
}

// ---------------------------------------------------------------------------
// TestReadFileStrict - File-backed decoding
// ---------------------------------------------------------------------------

func TestReadFileStrict(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("missing file keeps fs.ErrNotExist", func(t *testing.T) {
		t.Parallel()

		err := yamlutil.ReadFileStrict(filepath.Join(dir, "absent.yaml"), &tokens{})
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("errors.Is(err, fs.ErrNotExist) = false, got: %v", err)
		}
	})

	t.Run("valid file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(dir, "rules.yaml")
		if err := os.WriteFile(path, []byte("code: \"~~~\"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		var got tokens
		if err := yamlutil.ReadFileStrict(path, &got); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Code != "~~~" {
			t.Errorf("Code = %q, want %q", got.Code, "~~~")
		}
	})
}

// ---------------------------------------------------------------------------
// TestMergeMissing - Filling a user file from the defaults
// ---------------------------------------------------------------------------

func TestMergeMissing(t *testing.T) {
	t.Parallel()

	defaults := []byte(`rules:
  section: "#"
  code: "~~~"
  links: x
document:
  makeTitle: true
  author: ""
build:
  compiler: pdflatex
`)

	t.Run("fills missing and empty keys, keeps user values", func(t *testing.T) {
		t.Parallel()

		user := []byte(`rules:
  section: "="
  code: ""
document:
  makeTitle: false
`)
		out, added, err := yamlutil.MergeMissing(user, defaults)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{"rules.code", "rules.links", "document.author", "build"}
		if strings.Join(added, ",") != strings.Join(want, ",") {
			t.Errorf("added = %v, want %v", added, want)
		}

		var got struct {
			Rules struct {
				Section string `yaml:"section"`
				Code    string `yaml:"code"`
				Links   string `yaml:"links"`
			} `yaml:"rules"`
			Document struct {
				MakeTitle bool `yaml:"makeTitle"`
			} `yaml:"document"`
			Build struct {
				Compiler string `yaml:"compiler"`
			} `yaml:"build"`
		}
		if err := yamlutil.Unmarshal(out, &got); err != nil {
			t.Fatalf("merged output does not decode: %v\n%s", err, out)
		}
		if got.Rules.Section != "=" {
			t.Errorf("Section = %q, user value lost", got.Rules.Section)
		}
		if got.Rules.Code != "~~~" || got.Rules.Links != "x" {
			t.Errorf("Code, Links = %q, %q, want defaults", got.Rules.Code, got.Rules.Links)
		}
		if got.Document.MakeTitle {
			t.Error("MakeTitle = true, explicit false was overwritten")
		}
		if got.Build.Compiler != "pdflatex" {
			t.Errorf("Compiler = %q, want pdflatex", got.Build.Compiler)
		}
		if strings.Index(string(out), "rules:") > strings.Index(string(out), "build:") {
			t.Errorf("user key order not preserved:\n%s", out)
		}
	})

	t.Run("complete file is returned unchanged", func(t *testing.T) {
		t.Parallel()

		out, added, err := yamlutil.MergeMissing(defaults, defaults)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(added) != 0 || string(out) != string(defaults) {
			t.Errorf("MergeMissing(d, d) = (%q, %v), want input unchanged", out, added)
		}
	})

	t.Run("empty user file takes everything", func(t *testing.T) {
		t.Parallel()

		_, added, err := yamlutil.MergeMissing(nil, defaults)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(added) != 3 {
			t.Errorf("added = %v, want the three top-level sections", added)
		}
	})

	t.Run("invalid user yaml", func(t *testing.T) {
		t.Parallel()

		if _, _, err := yamlutil.MergeMissing([]byte("rules: [unclosed"), defaults); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})
}

// ---------------------------------------------------------------------------
// TestInputSizeLimit - MaxInputSize enforcement
// ---------------------------------------------------------------------------

// Not parallel: mutates the package-level MaxInputSize.
func TestInputSizeLimit(t *testing.T) {
	originalMax := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = originalMax })

	yamlutil.MaxInputSize = 50
	err := yamlutil.UnmarshalStrict([]byte(strings.Repeat("#", 100)), &tokens{})
	if !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Fatalf("errors.Is(err, ErrInputTooLarge) = false, got: %v", err)
	}
	if !strings.Contains(err.Error(), "100 bytes") || !strings.Contains(err.Error(), "max 50") {
		t.Errorf("error should contain sizes, got: %s", err)
	}
}

func assertErr(t *testing.T, err, want error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error containing %q, got nil", want)
	}
	if errors.Is(err, want) {
		return
	}
	if !strings.Contains(err.Error(), want.Error()) {
		t.Fatalf("error = %q, want containing %q", err, want)
	}
}
