package main

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-simtex/internal/config"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Environment, config and note fixtures
// ---------------------------------------------------------------------------

var fixedNow = func() time.Time { return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC) }

// lockedBuffer is a bytes.Buffer safe for the concurrent writes of batch
// workers and their logger.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// newTestEnv returns an Environment with captured output and vars as the
// process environment. The remote config URL is empty, so --online falls
// back to the embedded defaults without touching the network.
func newTestEnv(vars map[string]string) (*Environment, *lockedBuffer, *lockedBuffer) {
	stdout, stderr := &lockedBuffer{}, &lockedBuffer{}
	env := &Environment{
		Now:    fixedNow,
		Stdout: stdout,
		Stderr: stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			sort.Strings(out)
			return out
		},
	}
	return env, stdout, stderr
}

// writeConfig writes the default config, changed by mutate, to dir.
func writeConfig(t *testing.T, dir string, mutate func(*config.Config)) string {
	t.Helper()
	cfg := config.DefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}
	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}
	path := filepath.Join(dir, "simtex.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeNote(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
