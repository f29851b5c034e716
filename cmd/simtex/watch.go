package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	simtex "github.com/alnah/go-simtex"
)

// watchDebounce coalesces the burst of events editors emit on save.
const watchDebounce = 150 * time.Millisecond

// watchNote converts path, then converts it again each time it is saved,
// until ctx is done. Failed conversions are reported and watching goes on.
//
// The note's directory is watched rather than the file, so editors that save
// by writing a new file and renaming it over the old one are still seen.
func watchNote(ctx context.Context, path string, runner noteRunner, f commonFlags, env *Environment, log zerolog.Logger) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %w", simtex.ErrReadInput, err)
	}
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: %w", simtex.ErrReadInput, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(target), err)
	}

	convertOnce(ctx, runner, path, f, env)
	if !f.quiet {
		fmt.Fprintf(env.Stdout, "Watching %s (Ctrl+C to stop)\n", path)
	}

	debounce := time.NewTimer(watchDebounce)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if name, err := filepath.Abs(event.Name); err != nil || name != target {
				continue
			}
			log.Debug().Str("event", event.Op.String()).Str("note", path).Msg("note changed")
			debounce.Reset(watchDebounce)

		case <-debounce.C:
			convertOnce(ctx, runner, path, f, env)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watch error")
		}
	}
}

// convertOnce runs one conversion and prints its outcome.
func convertOnce(ctx context.Context, runner noteRunner, path string, f commonFlags, env *Environment) {
	result := runner.Run(ctx, path)
	if err := reportResults([]ConversionResult{result}, f, env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, false))
	}
}
