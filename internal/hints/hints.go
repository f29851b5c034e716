// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"runtime"
	"strings"

	"github.com/alnah/go-simtex/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// GOOS is the platform used to pick install instructions.
var GOOS = runtime.GOOS

// ForCompilerNotFound returns hints for a LaTeX compiler missing from PATH.
func ForCompilerNotFound(compiler string) string {
	var hints []string

	switch {
	case IsInContainer():
		hints = append(hints, "add texlive-latex-base to the image")
	case GOOS == "darwin":
		hints = append(hints, "install MacTeX or BasicTeX")
	case GOOS == "windows":
		hints = append(hints, "install MiKTeX and restart the shell")
	default:
		hints = append(hints, "install texlive from your package manager")
	}

	if compiler != "" && compiler != "pdflatex" {
		hints = append(hints, "check build.compiler ("+compiler+") in simtex.yaml")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for large documents, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and, when one was searched, the user config location.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/simtex.yaml or run 'simtex config init'"

	for _, p := range searchedPaths {
		if strings.Contains(filepathSlash(p), "/simtex/") {
			hint += " to create " + p
			break
		}
	}

	return format(hint)
}

// ForMissingField returns hints for a config that lacks required rules.
func ForMissingField() string {
	return format("run 'simtex config update' to fill missing fields from the default config")
}

// ForFetch returns hints for a failed remote config download.
func ForFetch(online bool) string {
	if online {
		return format("check your network or drop --online to use the built-in defaults")
	}
	return ""
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForListingsNotFound returns hints for listings style not found errors.
func ForListingsNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

func filepathSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
