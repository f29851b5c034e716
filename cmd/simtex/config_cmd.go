package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-simtex/internal/config"
	"github.com/alnah/go-simtex/internal/fileutil"
)

// configFlags holds the flags of the config subcommands.
type configFlags struct {
	common commonFlags
	force  bool
	online bool
}

// newConfigFlagSet registers the config subcommand flags into f.
func newConfigFlagSet(f *configFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	addCommonFlags(fs, &f.common)
	fs.BoolVar(&f.force, "force", false, "replace an existing file (init)")
	fs.BoolVar(&f.online, "online", false, "download the defaults from the repository")
	return fs
}

// runConfigCmd handles "simtex config init|update|path" and returns the exit
// code.
func runConfigCmd(ctx context.Context, args []string, env *Environment) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printConfigUsage(env.Stdout)
		return ExitSuccess
	}

	sub := args[0]
	f := &configFlags{}
	fs := newConfigFlagSet(f)

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printConfigUsage(env.Stdout)
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	var err error
	switch sub {
	case "init":
		err = runConfigInit(ctx, f, env)
	case "update":
		err = runConfigUpdate(ctx, f, env)
	case "path":
		err = runConfigPath(f, env)
	default:
		err = fmt.Errorf("%w: config %s", ErrUnknownCommand, sub)
	}

	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, f.online))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// configFetcher returns the source of default configuration. Unlike convert,
// an explicit --online does not fall back to the embedded copy.
func configFetcher(online bool, env *Environment, f commonFlags) config.Fetcher {
	if !online {
		return config.EmbeddedFetcher{}
	}
	return config.NewHTTPFetcher(env.Remote, config.WithFetchLogger(newLogger(env, f)))
}

// initPath returns where "config init" writes: a --config path as given, a
// --config name in the user config directory, or the default path.
func initPath(nameOrPath string) (string, error) {
	switch {
	case nameOrPath == "":
		return config.DefaultPath()
	case fileutil.IsFilePath(nameOrPath):
		return nameOrPath, nil
	default:
		dir, err := config.Dir()
		if err != nil {
			return "", err
		}
		name := strings.TrimSuffix(strings.TrimSuffix(nameOrPath, ".yaml"), ".yml")
		return filepath.Join(dir, name+".yaml"), nil
	}
}

func runConfigInit(ctx context.Context, f *configFlags, env *Environment) error {
	path, err := initPath(f.common.config)
	if err != nil {
		return err
	}
	if err := config.Init(ctx, path, configFetcher(f.online, env, f.common), f.force); err != nil {
		return err
	}
	if !f.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", path)
	}
	return nil
}

func runConfigUpdate(ctx context.Context, f *configFlags, env *Environment) error {
	path, err := config.Locate(configName(f.common.config, env.Getenv("SIMTEX_CONFIG")))
	if err != nil {
		return err
	}

	added, err := config.Repair(ctx, path, configFetcher(f.online, env, f.common), newLogger(env, f.common))
	if err != nil {
		return err
	}
	if _, err := config.LoadFile(path); err != nil {
		return err
	}

	if f.common.quiet {
		return nil
	}
	if len(added) == 0 {
		fmt.Fprintf(env.Stdout, "%s is up to date\n", path)
		return nil
	}
	fmt.Fprintf(env.Stdout, "Updated %s (backup: %s)\n", path, path+config.BackupSuffix)
	for _, key := range added {
		fmt.Fprintf(env.Stdout, "  + %s\n", key)
	}
	return nil
}

func runConfigPath(f *configFlags, env *Environment) error {
	path, err := config.Locate(configName(f.common.config, env.Getenv("SIMTEX_CONFIG")))
	if err != nil {
		return err
	}
	fmt.Fprintln(env.Stdout, path)
	return nil
}

// printConfigUsage prints help for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: simtex config <init|update|path> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Subcommands:")
	fmt.Fprintln(w, "  init     Write the default config (user config dir, or --config)")
	fmt.Fprintln(w, "  update   Add keys missing from a config, keeping a .bak copy")
	fmt.Fprintln(w, "  path     Print the config file that convert would load")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name|path>  Config name or path (default: simtex)")
	fmt.Fprintln(w, "      --force               Replace an existing file (init)")
	fmt.Fprintln(w, "      --online              Download defaults from the repository")
	fmt.Fprintln(w, "  -q, --quiet               Only print errors")
}
