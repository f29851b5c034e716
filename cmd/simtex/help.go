package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: simtex <command> [flags] [args]")
	fmt.Fprintln(w, "       simtex [flags] <note>...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate a LaTeX file from your notes with few commands!")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert     Convert notes to LaTeX (default)")
	fmt.Fprintln(w, "  config      Create, update or locate the config file")
	fmt.Fprintln(w, "  doctor      Check LaTeX and config setup")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'simtex help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: simtex convert [flags] <note>...")
	fmt.Fprintln(w, "       simtex -f <note> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert plain-text notes to LaTeX documents.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -f, --file <path>         Note to convert")
	fmt.Fprintln(w, "  -o, --output <path>       Output file name, directory (trailing /), or both")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (default: simtex)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel conversions (0 = auto)")
	fmt.Fprintln(w, "      --watch               Convert again whenever the note is saved")
	fmt.Fprintln(w, "      --online              Fetch missing config from the repository")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "  -T, --title <s>           Title (default: file name)")
	fmt.Fprintln(w, "  -a, --author <s>          Author")
	fmt.Fprintln(w, "  -d, --date <s>            Date: literal, \"today\", \"auto\" or \"auto:FORMAT\"")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w, "                            Use [text] to escape literals: [Week of] MMMM D")
	fmt.Fprintln(w, "      --no-title            Do not emit \\maketitle")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Layout:")
	fmt.Fprintln(w, "  -F, --font <s>            Font package (lmodern, times, ...)")
	fmt.Fprintln(w, "  -s, --font-size <n>       Font size in pt: 10, 11, 12")
	fmt.Fprintln(w, "  -p, --paper-size <s>      Paper size: a4paper, letterpaper, ...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build:")
	fmt.Fprintln(w, "  -b, --build               Compile the generated file to PDF")
	fmt.Fprintln(w, "  -B, --build-view          Compile and open the PDF")
	fmt.Fprintln(w, "      --timeout <d>         Compilation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timings")
	fmt.Fprintln(w, "      --log-json            Write logs as JSON lines")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  SIMTEX_CONFIG, SIMTEX_AUTHOR, SIMTEX_OUTPUT_DIR, SIMTEX_COMPILER,")
	fmt.Fprintln(w, "  SIMTEX_TIMEOUT, SIMTEX_WORKERS override the config file; flags win.")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: simtex doctor [--json] [-c <name>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the LaTeX compiler, PDF viewer and config file.")
	fmt.Fprintln(w, "Exits with 1 when an error prevents conversion.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: simtex version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: simtex help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
