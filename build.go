package simtex

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/go-simtex/internal/fileutil"
	"github.com/alnah/go-simtex/internal/process"
)

// Build defaults.
const (
	DefaultCompiler     = "pdflatex"
	DefaultBuildTimeout = 2 * time.Minute

	// logTailLines is how much compiler output ErrCompile carries.
	logTailLines = 20

	// waitDelay bounds how long Wait blocks on inherited pipes after the
	// process group was killed.
	waitDelay = 5 * time.Second
)

// compilerArgs keep the compiler from prompting on errors.
var compilerArgs = []string{"-interaction=nonstopmode", "-halt-on-error"}

// BuildOption configures a Builder.
type BuildOption func(*Builder)

// Builder compiles .tex files to PDF with an external LaTeX compiler and
// opens the result in a viewer.
type Builder struct {
	compiler string
	args     []string
	viewer   string
	timeout  time.Duration
	logger   zerolog.Logger

	// Injected for tests.
	lookPath func(string) (string, error)
	command  func(ctx context.Context, name string, args ...string) *exec.Cmd
	goos     string
}

// WithBuildArgs appends extra compiler arguments after the defaults.
func WithBuildArgs(args ...string) BuildOption {
	return func(b *Builder) {
		b.args = append(b.args, args...)
	}
}

// WithViewer sets the PDF viewer command. Empty uses the platform opener.
func WithViewer(viewer string) BuildOption {
	return func(b *Builder) {
		b.viewer = viewer
	}
}

// WithBuildTimeout bounds a single compiler run.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithBuildTimeout(d time.Duration) BuildOption {
	if d <= 0 {
		panic("simtex: WithBuildTimeout duration must be positive")
	}
	return func(b *Builder) {
		b.timeout = d
	}
}

// WithBuildLogger sets the logger for build events.
func WithBuildLogger(log zerolog.Logger) BuildOption {
	return func(b *Builder) {
		b.logger = log
	}
}

// NewBuilder creates a Builder for compiler. An empty compiler means
// pdflatex.
func NewBuilder(compiler string, opts ...BuildOption) *Builder {
	if compiler == "" {
		compiler = DefaultCompiler
	}
	b := &Builder{
		compiler: compiler,
		timeout:  DefaultBuildTimeout,
		logger:   zerolog.Nop(),
		lookPath: exec.LookPath,
		command:  exec.CommandContext,
		goos:     runtime.GOOS,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Compiler returns the compiler command name.
func (b *Builder) Compiler() string {
	return b.compiler
}

// Build compiles texPath into a PDF in the same directory and returns the
// PDF path. The compiler runs in its own process group, which is killed when
// ctx is done or the build timeout elapses.
func (b *Builder) Build(ctx context.Context, texPath string) (string, error) {
	bin, err := b.lookPath(b.compiler)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrCompilerNotFound, b.compiler, err)
	}

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	dir := filepath.Dir(texPath)
	args := make([]string, 0, len(compilerArgs)+len(b.args)+3)
	args = append(args, compilerArgs...)
	args = append(args, "-output-directory", dir)
	args = append(args, b.args...)
	args = append(args, filepath.Base(texPath))

	cmd := b.command(ctx, bin, args...) // #nosec G204 -- compiler comes from user configuration
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	process.SetProcessGroup(cmd)
	cmd.Cancel = func() error {
		if cmd.Process != nil {
			process.KillProcessGroup(cmd.Process.Pid)
		}
		return nil
	}
	cmd.WaitDelay = waitDelay

	start := time.Now()
	b.logger.Info().Str("compiler", b.compiler).Str("input", texPath).Msg("building")

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrCompile, b.compiler, ctxErr)
		}
		return "", fmt.Errorf("%w: %s: %w\n%s", ErrCompile, b.compiler, err, logTail(out.String(), logTailLines))
	}

	pdfPath := filepath.Join(dir, fileutil.StripExt(texPath)+".pdf")
	b.logger.Info().Str("output", pdfPath).Dur("duration", time.Since(start)).Msg("built")
	return pdfPath, nil
}

// View opens pdfPath with the configured viewer, or the platform opener.
// It does not wait for the viewer to exit.
func (b *Builder) View(ctx context.Context, pdfPath string) error {
	name, args := b.viewerCommand(pdfPath)
	if _, err := b.lookPath(name); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrView, name, err)
	}

	cmd := b.command(ctx, name, args...) // #nosec G204 -- viewer comes from user configuration
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrView, name, err)
	}
	b.logger.Debug().Str("viewer", name).Str("pdf", pdfPath).Msg("viewer started")
	return cmd.Process.Release()
}

func (b *Builder) viewerCommand(pdfPath string) (string, []string) {
	if fields := strings.Fields(b.viewer); len(fields) > 0 {
		return fields[0], append(fields[1:], pdfPath)
	}
	switch b.goos {
	case "darwin":
		return "open", []string{pdfPath}
	case "windows":
		return "cmd", []string{"/c", "start", "", pdfPath}
	default:
		return "xdg-open", []string{pdfPath}
	}
}

// logTail returns the last n non-empty lines of a compiler log.
func logTail(log string, n int) string {
	lines := strings.Split(strings.TrimRight(log, "\n"), "\n")
	kept := lines[:0]
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			kept = append(kept, l)
		}
	}
	if len(kept) > n {
		kept = kept[len(kept)-n:]
	}
	return strings.Join(kept, "\n")
}

// IsBuildError reports whether err came from compiling or viewing.
func IsBuildError(err error) bool {
	return errors.Is(err, ErrCompilerNotFound) || errors.Is(err, ErrCompile) || errors.Is(err, ErrView)
}
