package simtex

import (
	"context"
	"errors"
	"os/exec"
	"reflect"
	"strings"
	"testing"
)

func notFound(string) (string, error) { return "", exec.ErrNotFound }

// ---------------------------------------------------------------------------
// TestNewBuilder - Defaults and options
// ---------------------------------------------------------------------------

func TestNewBuilder(t *testing.T) {
	t.Parallel()

	b := NewBuilder("")
	if b.Compiler() != DefaultCompiler {
		t.Errorf("Compiler() = %q, want %q", b.Compiler(), DefaultCompiler)
	}
	if b.timeout != DefaultBuildTimeout {
		t.Errorf("timeout = %v, want %v", b.timeout, DefaultBuildTimeout)
	}

	b = NewBuilder("xelatex", WithBuildArgs("-shell-escape"), WithViewer("zathura"))
	if b.Compiler() != "xelatex" {
		t.Errorf("Compiler() = %q, want xelatex", b.Compiler())
	}
	if !reflect.DeepEqual(b.args, []string{"-shell-escape"}) {
		t.Errorf("args = %v", b.args)
	}
}

func TestWithBuildTimeout_PanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("WithBuildTimeout(0) should panic")
		}
	}()
	WithBuildTimeout(0)
}

// ---------------------------------------------------------------------------
// TestBuilder_BuildCompilerNotFound
// ---------------------------------------------------------------------------

func TestBuilder_BuildCompilerNotFound(t *testing.T) {
	t.Parallel()

	b := NewBuilder("pdflatex")
	b.lookPath = notFound

	_, err := b.Build(context.Background(), "notes.tex")
	if !errors.Is(err, ErrCompilerNotFound) {
		t.Fatalf("error = %v, want ErrCompilerNotFound", err)
	}
	if !IsBuildError(err) {
		t.Error("IsBuildError() = false, want true")
	}
}

// ---------------------------------------------------------------------------
// TestBuilder_ViewerCommand - Platform openers
// ---------------------------------------------------------------------------

func TestBuilder_ViewerCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		viewer   string
		goos     string
		wantName string
		wantArgs []string
	}{
		{name: "linux", goos: "linux", wantName: "xdg-open", wantArgs: []string{"a.pdf"}},
		{name: "darwin", goos: "darwin", wantName: "open", wantArgs: []string{"a.pdf"}},
		{name: "windows", goos: "windows", wantName: "cmd", wantArgs: []string{"/c", "start", "", "a.pdf"}},
		{name: "configured viewer", viewer: "zathura", goos: "linux", wantName: "zathura", wantArgs: []string{"a.pdf"}},
		{name: "viewer with flags", viewer: "evince --fullscreen", goos: "darwin", wantName: "evince", wantArgs: []string{"--fullscreen", "a.pdf"}},
		{name: "blank viewer uses opener", viewer: "  ", goos: "linux", wantName: "xdg-open", wantArgs: []string{"a.pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := NewBuilder("", WithViewer(tt.viewer))
			b.goos = tt.goos

			name, args := b.viewerCommand("a.pdf")
			if name != tt.wantName || !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("viewerCommand() = %q %v, want %q %v", name, args, tt.wantName, tt.wantArgs)
			}
		})
	}
}

func TestBuilder_ViewMissingViewer(t *testing.T) {
	t.Parallel()

	b := NewBuilder("", WithViewer("no-such-viewer"))
	b.lookPath = notFound

	if err := b.View(context.Background(), "a.pdf"); !errors.Is(err, ErrView) {
		t.Errorf("View() error = %v, want ErrView", err)
	}
}

// ---------------------------------------------------------------------------
// TestLogTail
// ---------------------------------------------------------------------------

func TestLogTail(t *testing.T) {
	t.Parallel()

	log := "line 1\n\nline 2\nline 3\n! Undefined control sequence.\n\n"

	tests := []struct {
		n    int
		want string
	}{
		{n: 2, want: "line 3\n! Undefined control sequence."},
		{n: 10, want: "line 1\nline 2\nline 3\n! Undefined control sequence."},
	}

	for _, tt := range tests {
		if got := logTail(log, tt.n); got != tt.want {
			t.Errorf("logTail(n=%d) = %q, want %q", tt.n, got, tt.want)
		}
	}

	if got := logTail("", 5); strings.TrimSpace(got) != "" {
		t.Errorf("logTail(\"\") = %q, want empty", got)
	}
}
