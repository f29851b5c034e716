package simtex

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestNewAssetLoader - Public loader over the internal resolver
// ---------------------------------------------------------------------------

func TestNewAssetLoader(t *testing.T) {
	t.Parallel()

	t.Run("embedded only", func(t *testing.T) {
		t.Parallel()

		loader, err := NewAssetLoader("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		lst, err := loader.LoadListings(DefaultListings)
		if err != nil {
			t.Fatalf("LoadListings() unexpected error: %v", err)
		}
		if !strings.Contains(lst, `\lstset`) {
			t.Error("default listings style should contain \\lstset")
		}
		tmpl, err := loader.LoadTemplate("preamble")
		if err != nil {
			t.Fatalf("LoadTemplate() unexpected error: %v", err)
		}
		if !strings.Contains(tmpl, `\documentclass`) {
			t.Error("preamble template should contain \\documentclass")
		}
	})

	t.Run("custom directory overrides embedded", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := os.MkdirAll(filepath.Join(dir, "listings"), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "listings", "default.tex"), []byte("% mine"), 0o644); err != nil {
			t.Fatal(err)
		}

		loader, err := NewAssetLoader(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, err := loader.LoadListings("default")
		if err != nil || got != "% mine" {
			t.Errorf("LoadListings() = %q, %v, want custom style", got, err)
		}
		if _, err := loader.LoadTemplate("preamble"); err != nil {
			t.Errorf("LoadTemplate() should fall back to embedded, got %v", err)
		}
	})

	t.Run("errors map to public sentinels", func(t *testing.T) {
		t.Parallel()

		if _, err := NewAssetLoader(filepath.Join(t.TempDir(), "absent")); !errors.Is(err, ErrInvalidAssetPath) {
			t.Errorf("NewAssetLoader(absent) error = %v, want ErrInvalidAssetPath", err)
		}

		loader, _ := NewAssetLoader("")
		if _, err := loader.LoadListings("nonexistent"); !errors.Is(err, ErrListingsNotFound) {
			t.Errorf("LoadListings(nonexistent) error = %v, want ErrListingsNotFound", err)
		}
		if _, err := loader.LoadTemplate("cover"); !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("LoadTemplate(cover) error = %v, want ErrTemplateNotFound", err)
		}
		if _, err := loader.LoadListings("../etc"); !errors.Is(err, ErrInvalidAssetPath) {
			t.Errorf("LoadListings(../etc) error = %v, want ErrInvalidAssetPath", err)
		}
	})
}
