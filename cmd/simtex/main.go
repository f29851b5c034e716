package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/automaxprocs/maxprocs"
	"pkt.systems/version"
)

// ErrUnknownCommand is returned for an unrecognized command.
var ErrUnknownCommand = errors.New("unknown command")

func init() {
	version.SetDefaultModule("github.com/alnah/go-simtex")
}

func main() {
	// Configure GOMAXPROCS with conditional logging.
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasVerboseFlag(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args, DefaultEnv())
	stop()
	os.Exit(code)
}

// runMain dispatches args to a command and returns the exit code.
// A first argument that is a flag or an existing file runs convert, so
// "simtex -f notes.txt -b" and "simtex lectures/" work as well as "simtex convert notes.txt -b".
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	switch cmd {
	case "convert":
		return runConvertCmd(ctx, rest, env)
	case "config":
		return runConfigCmd(ctx, rest, env)
	case "doctor":
		return runDoctorCmd(ctx, rest, env)
	case "completion":
		if err := runCompletion(rest, env); err != nil {
			fmt.Fprintf(env.Stderr, "error: %v\n", err)
			return exitCodeFor(err)
		}
		return ExitSuccess
	case "version", "--version":
		fmt.Fprintln(env.Stdout, version.Module(), version.Current())
		return ExitSuccess
	case "help", "-h", "--help":
		return runHelp(rest, env)
	}

	if isConvertArg(cmd) {
		return runConvertCmd(ctx, args[1:], env)
	}

	fmt.Fprintf(env.Stderr, "error: %v: %s\n", ErrUnknownCommand, cmd)
	printUsage(env.Stderr)
	return ExitUsage
}

// isConvertArg reports whether arg starts an implicit convert command: a
// flag, or an existing note or directory of notes.
func isConvertArg(arg string) bool {
	if strings.HasPrefix(arg, "-") {
		return true
	}
	_, err := os.Stat(arg)
	return err == nil
}
