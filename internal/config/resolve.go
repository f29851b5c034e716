package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// Resolve finds and loads the configuration named by nameOrPath and returns
// it with the path it was read from.
//
// When the default configuration does not exist yet it is seeded from
// fetcher. When a loaded file lacks required fields, the missing keys are
// filled from fetcher, the file is saved (keeping a .bak copy) and loaded
// again once.
func Resolve(ctx context.Context, nameOrPath string, fetcher Fetcher, log zerolog.Logger) (*Config, string, error) {
	path, err := Locate(nameOrPath)
	if errors.Is(err, ErrConfigNotFound) && nameOrPath == DefaultName {
		path, err = seedDefault(ctx, fetcher, log)
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := LoadFile(path)
	if !errors.Is(err, ErrMissingField) {
		if err != nil {
			return nil, "", err
		}
		return cfg, path, nil
	}

	log.Warn().Err(err).Str("config", path).Msg("config incomplete, repairing")
	if _, err := Repair(ctx, path, fetcher, log); err != nil {
		return nil, "", err
	}

	cfg, err = LoadFile(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// Repair fills the keys missing from the file at path with the defaults from
// fetcher, saves it and returns the dotted paths that were added. A file with
// nothing missing is left untouched.
func Repair(ctx context.Context, path string, fetcher Fetcher, log zerolog.Logger) ([]string, error) {
	user, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	defaults, err := fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	merged, added, err := Merge(user, defaults)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(added) == 0 {
		log.Debug().Str("config", path).Msg("config complete")
		return nil, nil
	}

	if err := Save(path, merged); err != nil {
		return nil, err
	}
	log.Info().Str("config", path).Strs("added", added).Msg("config repaired")
	return added, nil
}

// seedDefault writes a fresh default configuration to DefaultPath.
func seedDefault(ctx context.Context, fetcher Fetcher, log zerolog.Logger) (string, error) {
	path, err := DefaultPath()
	if err != nil {
		return "", fmt.Errorf("%w: no user config directory: %v", ErrConfigNotFound, err)
	}

	data, err := fetcher.Fetch(ctx)
	if err != nil {
		return "", err
	}
	if err := Save(path, data); err != nil {
		return "", err
	}
	log.Info().Str("config", path).Msg("default config created")
	return path, nil
}

// Init writes the default configuration from fetcher to path. An existing
// file is only replaced when force is set, and is then kept as .bak.
func Init(ctx context.Context, path string, fetcher Fetcher, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%w: %s", os.ErrExist, path)
	}
	data, err := fetcher.Fetch(ctx)
	if err != nil {
		return err
	}
	return Save(path, data)
}
