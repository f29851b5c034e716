package hints

// Notes:
// - ForCompilerNotFound tests are not parallel: they swap the package-level
//   IsInContainer and GOOS variables.

import (
	"strings"
	"testing"
)

func stubPlatform(t *testing.T, goos string, container bool) {
	t.Helper()
	origGOOS, origContainer := GOOS, IsInContainer
	t.Cleanup(func() { GOOS, IsInContainer = origGOOS, origContainer })
	GOOS = goos
	IsInContainer = func() bool { return container }
}

// ---------------------------------------------------------------------------
// TestForCompilerNotFound - Platform-specific install hints
// ---------------------------------------------------------------------------

func TestForCompilerNotFound(t *testing.T) {
	tests := []struct {
		name      string
		goos      string
		container bool
		compiler  string
		want      []string
		notWant   []string
	}{
		{name: "linux", goos: "linux", compiler: "pdflatex", want: []string{"texlive"}, notWant: []string{"build.compiler"}},
		{name: "container wins over platform", goos: "darwin", container: true, compiler: "pdflatex", want: []string{"image"}},
		{name: "darwin", goos: "darwin", compiler: "pdflatex", want: []string{"MacTeX"}},
		{name: "windows", goos: "windows", compiler: "pdflatex", want: []string{"MiKTeX"}},
		{name: "custom compiler", goos: "linux", compiler: "xelatex", want: []string{"texlive", "build.compiler (xelatex)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubPlatform(t, tt.goos, tt.container)

			hint := ForCompilerNotFound(tt.compiler)
			if !strings.HasPrefix(hint, "\n  hint: ") {
				t.Errorf("hint %q lacks prefix", hint)
			}
			for _, w := range tt.want {
				if !strings.Contains(hint, w) {
					t.Errorf("hint %q should contain %q", hint, w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(hint, w) {
					t.Errorf("hint %q should not contain %q", hint, w)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestSimpleHints
// ---------------------------------------------------------------------------

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	hint := ForConfigNotFound([]string{"simtex.yaml", "/home/u/.config/simtex/simtex.yaml"})
	if !strings.Contains(hint, "--config") {
		t.Errorf("hint %q should mention --config", hint)
	}
	if !strings.Contains(hint, "/home/u/.config/simtex/simtex.yaml") {
		t.Errorf("hint %q should suggest the user config path", hint)
	}

	hint = ForConfigNotFound(nil)
	if strings.Contains(hint, "to create") {
		t.Errorf("hint %q should not suggest a path", hint)
	}
}

func TestForFetch(t *testing.T) {
	t.Parallel()

	if hint := ForFetch(true); !strings.Contains(hint, "--online") {
		t.Errorf("ForFetch(true) = %q", hint)
	}
	if hint := ForFetch(false); hint != "" {
		t.Errorf("ForFetch(false) = %q, want empty", hint)
	}
}

func TestForListingsNotFound(t *testing.T) {
	t.Parallel()

	if hint := ForListingsNotFound(nil); hint != "" {
		t.Errorf("ForListingsNotFound(nil) = %q, want empty", hint)
	}
	if hint := ForListingsNotFound([]string{"default", "minimal"}); !strings.Contains(hint, "default, minimal") {
		t.Errorf("ForListingsNotFound() = %q", hint)
	}
}

func TestStaticHints(t *testing.T) {
	t.Parallel()

	for name, hint := range map[string]string{
		"timeout":      ForTimeout(),
		"missingField": ForMissingField(),
		"outputDir":    ForOutputDirectory(),
	} {
		if !strings.HasPrefix(hint, "\n  hint: ") {
			t.Errorf("%s hint %q lacks prefix", name, hint)
		}
	}
}
