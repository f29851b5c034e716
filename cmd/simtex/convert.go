package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"
	"golang.org/x/term"

	simtex "github.com/alnah/go-simtex"
	"github.com/alnah/go-simtex/internal/assets"
	"github.com/alnah/go-simtex/internal/config"
	"github.com/alnah/go-simtex/internal/hints"
	"github.com/alnah/go-simtex/internal/logging"
)

// Sentinel errors for the convert command.
var (
	ErrNoInput     = errors.New("no input specified")
	ErrInvalidFlag = errors.New("invalid flag combination")
)

// runConvertCmd parses convert flags, runs the conversion and returns the
// exit code.
func runConvertCmd(ctx context.Context, args []string, env *Environment) int {
	f, positional, err := parseConvertFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printConvertUsage(env.Stdout)
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		fmt.Fprintln(env.Stderr, "Run 'simtex help convert' for usage.")
		return ExitUsage
	}

	if err := runConvert(ctx, f, positional, env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, f.online))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runConvert resolves the configuration, applies environment and flag
// overrides, then converts every note.
func runConvert(ctx context.Context, f *convertFlags, positional []string, env *Environment) error {
	inputs := collectInputs(f.file, positional)
	if len(inputs) == 0 {
		return ErrNoInput
	}
	inputs, err := discoverNotes(inputs)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("%w: no .txt or .md notes found", ErrNoInput)
	}
	if err := validateConvertFlags(f, len(inputs)); err != nil {
		return err
	}

	warnUnknownEnvVars(env.Stderr, env.Environ())
	envCfg := loadEnvConfig(env)
	log := newLogger(env, f.common)

	name := configName(f.common.config, envCfg.ConfigPath)
	cfg, path, err := config.Resolve(ctx, name, defaultsFetcher(f.online, env, log), log)
	if err != nil {
		return err
	}
	log.Debug().Str("config", path).Msg("config loaded")

	applyEnvConfig(envCfg, cfg)
	mergeFlags(f, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if len(inputs) > 1 && cfg.Output.FileName != "" {
		return fmt.Errorf("%w: output file name %q given for %d notes", ErrInvalidFlag, cfg.Output.FileName, len(inputs))
	}
	if err := checkOutputCollisions(inputs, cfg.Output.Folder); err != nil {
		return err
	}

	job, err := newConvertJob(cfg, f, env, log)
	if err != nil {
		return err
	}

	if f.watch {
		return watchNote(ctx, inputs[0], job, f.common, env, log)
	}

	workers := resolveWorkers(f.workers, envCfg.Workers, len(inputs))
	log.Debug().Int("workers", workers).Int("notes", len(inputs)).Msg("starting conversion")

	results := convertBatch(ctx, job, inputs, workers)
	return reportResults(results, f.common, env)
}

// validateConvertFlags rejects contradictory flags.
func validateConvertFlags(f *convertFlags, inputs int) error {
	if f.common.quiet && f.common.verbose {
		return fmt.Errorf("%w: --quiet and --verbose", ErrInvalidFlag)
	}
	if f.watch && inputs > 1 {
		return fmt.Errorf("%w: --watch takes a single note, got %d", ErrInvalidFlag, inputs)
	}
	if f.build.timeout < 0 {
		return fmt.Errorf("%w: --timeout must be positive, got %s", ErrInvalidFlag, f.build.timeout)
	}
	return validateWorkers(f.workers)
}

// collectInputs returns --file followed by the positional notes, without
// duplicates.
func collectInputs(file string, positional []string) []string {
	seen := make(map[string]bool, len(positional)+1)
	var inputs []string
	for _, p := range append([]string{file}, positional...) {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		inputs = append(inputs, p)
	}
	return inputs
}

// configName picks the config to load: --config, then SIMTEX_CONFIG, then
// the default name.
func configName(flagValue, envValue string) string {
	switch {
	case flagValue != "":
		return flagValue
	case envValue != "":
		return envValue
	default:
		return config.DefaultName
	}
}

// defaultsFetcher returns where missing configuration is taken from. Online
// mode tries the repository first and falls back to the embedded copy.
func defaultsFetcher(online bool, env *Environment, log zerolog.Logger) config.Fetcher {
	if !online {
		return config.EmbeddedFetcher{}
	}
	return config.Chain(
		config.NewHTTPFetcher(env.Remote, config.WithFetchLogger(log)),
		config.EmbeddedFetcher{},
	)
}

// mergeFlags applies CLI flags over cfg. Flags left at their zero value keep
// the configured value.
func mergeFlags(f *convertFlags, cfg *config.Config) {
	d := &cfg.Document
	if f.document.author != "" {
		d.Author = f.document.author
	}
	if f.document.date != "" {
		d.Date = f.document.date
	}
	if f.document.noTitle {
		d.MakeTitle = false
	}
	if f.layout.font != "" {
		d.Font = f.layout.font
	}
	if f.layout.fontSize != 0 {
		d.FontSize = f.layout.fontSize
	}
	if f.layout.paperSize != "" {
		d.PaperSize = f.layout.paperSize
	}
	if f.build.timeout > 0 {
		cfg.Build.Timeout = f.build.timeout.String()
	}
	if f.output != "" {
		cfg.Output.Folder, cfg.Output.FileName = splitOutput(f.output, cfg.Output.Folder)
	}
}

// splitOutput interprets --output. A trailing separator or an existing
// directory names the output folder; a bare name renames the file next to
// the note; anything else sets both.
func splitOutput(output, folder string) (string, string) {
	if strings.HasSuffix(output, "/") || strings.HasSuffix(output, string(filepath.Separator)) {
		return output, ""
	}
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return output, ""
	}
	dir, name := filepath.Split(output)
	if dir == "" {
		return folder, name
	}
	return filepath.Clean(dir), name
}

// newLogger builds the CLI logger. Logs go to stderr: warnings by default,
// debug with --verbose, errors only with --quiet.
func newLogger(env *Environment, f commonFlags) zerolog.Logger {
	level := logging.LevelWarn
	switch {
	case f.verbose:
		level = logging.LevelDebug
	case f.quiet:
		level = logging.LevelError
	}
	return logging.New(env.Stderr, logging.Options{
		Level:   level,
		JSON:    f.logJSON,
		NoColor: env.Getenv("NO_COLOR") != "" || !isTerminal(env.Stderr),
	})
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error, online bool) string {
	var notFound *config.NotFoundError
	switch {
	case errors.Is(err, simtex.ErrCompilerNotFound):
		return hints.ForCompilerNotFound(compilerName(err))
	case errors.Is(err, simtex.ErrCompile) && errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.As(err, &notFound):
		return hints.ForConfigNotFound(notFound.Tried)
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(nil)
	case errors.Is(err, config.ErrMissingField):
		return hints.ForMissingField()
	case errors.Is(err, config.ErrFetch):
		return hints.ForFetch(online)
	case errors.Is(err, simtex.ErrListingsNotFound):
		return hints.ForListingsNotFound(assets.ListingsNames())
	case errors.Is(err, simtex.ErrWriteOutput) && errors.Is(err, os.ErrPermission):
		return hints.ForOutputDirectory()
	default:
		return ""
	}
}

// compilerName extracts the compiler from a "LaTeX compiler not found: NAME: ..."
// message.
func compilerName(err error) string {
	_, rest, ok := strings.Cut(err.Error(), simtex.ErrCompilerNotFound.Error()+": ")
	if !ok {
		return ""
	}
	name, _, _ := strings.Cut(rest, ":")
	return name
}
