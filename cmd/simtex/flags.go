package main

import (
	"io"
	"time"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	logJSON bool
}

// documentFlags holds the \title, \author and \date overrides.
type documentFlags struct {
	title   string
	author  string
	date    string
	noTitle bool
}

// layoutFlags holds font and paper overrides.
type layoutFlags struct {
	font      string
	fontSize  int
	paperSize string
}

// buildFlags holds LaTeX compilation flags.
type buildFlags struct {
	build   bool
	view    bool
	timeout time.Duration
}

// convertFlags holds every flag of the convert command.
type convertFlags struct {
	common   commonFlags
	file     string
	output   string
	workers  int
	watch    bool
	online   bool
	document documentFlags
	layout   layoutFlags
	build    buildFlags
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config name or path (default: simtex)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only print errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "print debug logs and timings")
	fs.BoolVar(&f.logJSON, "log-json", false, "write logs as JSON lines")
}

func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVarP(&f.title, "title", "T", "", "document title (default: file name)")
	fs.StringVarP(&f.author, "author", "a", "", "document author")
	fs.StringVarP(&f.date, "date", "d", "", "document date: text, today, auto or auto:FORMAT")
	fs.BoolVar(&f.noTitle, "no-title", false, "do not emit \\maketitle")
}

func addLayoutFlags(fs *flag.FlagSet, f *layoutFlags) {
	fs.StringVarP(&f.font, "font", "F", "", "font package")
	fs.IntVarP(&f.fontSize, "font-size", "s", 0, "font size in pt (10, 11 or 12)")
	fs.StringVarP(&f.paperSize, "paper-size", "p", "", "paper size (a4paper, letterpaper, ...)")
}

func addBuildFlags(fs *flag.FlagSet, f *buildFlags) {
	fs.BoolVarP(&f.build, "build", "b", false, "compile the generated file to PDF")
	fs.BoolVarP(&f.view, "build-view", "B", false, "compile and open the PDF")
	fs.DurationVar(&f.timeout, "timeout", 0, "compilation timeout (e.g., 30s, 2m)")
}

// newConvertFlagSet registers the convert flags into f.
// Completion reads the same FlagSet, so it is the single source of truth.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	// I/O flags
	fs.StringVarP(&f.file, "file", "f", "", "note to convert")
	fs.StringVarP(&f.output, "output", "o", "", "output file name or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel conversions (0 = auto)")
	fs.BoolVar(&f.watch, "watch", false, "convert again whenever the note is saved")
	fs.BoolVar(&f.online, "online", false, "fetch missing config from the repository")

	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addLayoutFlags(fs, &f.layout)
	addBuildFlags(fs, &f.build)

	return fs
}

// parseConvertFlags parses convert arguments and returns the flags and the
// positional arguments.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// hasVerboseFlag reports whether args request verbose output. It is checked
// before any command parses its flags.
func hasVerboseFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}
		if arg == "-v" || arg == "--verbose" {
			return true
		}
	}
	return false
}
