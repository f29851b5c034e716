package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

// ---------------------------------------------------------------------------
// TestResolve - Seeding and repairing configuration files
// ---------------------------------------------------------------------------

func TestResolve_RepairsMissingFields(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "course.yaml")
	partial := "rules:\n  section: \"=\"\ndocument:\n  author: Ada\n  makeTitle: false\n"
	if err := os.WriteFile(path, []byte(partial), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, got, err := Resolve(context.Background(), path, EmbeddedFetcher{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Resolve() unexpected error: %v", err)
	}
	if got != path {
		t.Errorf("path = %q, want %q", got, path)
	}
	if cfg.Rules.Section != "=" || cfg.Document.Author != "Ada" || cfg.Document.MakeTitle {
		t.Errorf("user values lost: %+v", cfg.Document)
	}
	if cfg.Rules.Code != "```" {
		t.Errorf("Rules.Code = %q, want repaired default", cfg.Rules.Code)
	}

	bak, err := os.ReadFile(path + BackupSuffix)
	if err != nil || string(bak) != partial {
		t.Errorf("backup = %q, %v, want the original file", bak, err)
	}
}

func TestResolve_CompleteFileUntouched(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "simtex.yaml")
	writeDefaultConfig(t, path)

	if _, _, err := Resolve(context.Background(), path, failingFetcher{errors.New("unused")}, zerolog.Nop()); err != nil {
		t.Fatalf("Resolve() unexpected error: %v", err)
	}
	if _, err := os.Stat(path + BackupSuffix); !errors.Is(err, os.ErrNotExist) {
		t.Error("a complete file should not be rewritten")
	}
}

func TestResolve_Errors(t *testing.T) {
	t.Parallel()

	t.Run("repair needs the fetcher", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "course.yaml")
		if err := os.WriteFile(path, []byte("rules:\n  section: \"#\"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, _, err := Resolve(context.Background(), path, failingFetcher{ErrFetch}, zerolog.Nop())
		if !errors.Is(err, ErrFetch) {
			t.Errorf("error = %v, want ErrFetch", err)
		}
	})

	t.Run("named config other than default is not seeded", func(t *testing.T) {
		t.Parallel()

		_, _, err := Resolve(context.Background(), "./absent/other.yaml", EmbeddedFetcher{}, zerolog.Nop())
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("parse errors are not repaired", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "course.yaml")
		if err := os.WriteFile(path, []byte("rules:\n  sectoin: x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, _, err := Resolve(context.Background(), path, EmbeddedFetcher{}, zerolog.Nop())
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})
}

// Not parallel: changes the working directory and the user config directory.
func TestResolve_SeedsDefault(t *testing.T) {
	home := t.TempDir()
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)
	t.Setenv("AppData", home)

	want, err := DefaultPath()
	if err != nil {
		t.Skipf("no user config directory: %v", err)
	}

	cfg, path, err := Resolve(context.Background(), DefaultName, EmbeddedFetcher{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Resolve() unexpected error: %v", err)
	}
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	if cfg.Rules.Section != "#" {
		t.Errorf("Rules.Section = %q", cfg.Rules.Section)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("default config not written: %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestRepair - Reporting the added keys
// ---------------------------------------------------------------------------

func TestRepair(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "course.yaml")
	if err := os.WriteFile(path, []byte("rules:\n  section: \"=\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	added, err := Repair(ctx, path, EmbeddedFetcher{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Repair() unexpected error: %v", err)
	}
	if len(added) == 0 || added[0] != "rules.subsection" {
		t.Errorf("added = %v, want rules.subsection first", added)
	}

	added, err = Repair(ctx, path, EmbeddedFetcher{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("second Repair() unexpected error: %v", err)
	}
	if len(added) != 0 {
		t.Errorf("second Repair() added = %v, want none", added)
	}

	if _, err := Repair(ctx, filepath.Join(t.TempDir(), "absent.yaml"), EmbeddedFetcher{}, zerolog.Nop()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Repair(missing) error = %v, want os.ErrNotExist", err)
	}
}

// ---------------------------------------------------------------------------
// TestInit
// ---------------------------------------------------------------------------

func TestInit(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "simtex.yaml")
	ctx := context.Background()

	if err := Init(ctx, path, EmbeddedFetcher{}, false); err != nil {
		t.Fatalf("Init() unexpected error: %v", err)
	}
	if err := Init(ctx, path, EmbeddedFetcher{}, false); !errors.Is(err, os.ErrExist) {
		t.Errorf("second Init() error = %v, want os.ErrExist", err)
	}
	if err := Init(ctx, path, EmbeddedFetcher{}, true); err != nil {
		t.Errorf("forced Init() unexpected error: %v", err)
	}
	if _, err := os.Stat(path + BackupSuffix); err != nil {
		t.Errorf("forced Init() should keep a backup: %v", err)
	}
}
