package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-simtex/internal/config"
)

// envPrefix marks the environment variables read by simtex.
const envPrefix = "SIMTEX_"

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without editing the YAML file.
type envConfig struct {
	ConfigPath string // SIMTEX_CONFIG: config name or path
	Author     string // SIMTEX_AUTHOR: document author
	OutputDir  string // SIMTEX_OUTPUT_DIR: output folder
	Compiler   string // SIMTEX_COMPILER: LaTeX compiler command
	Timeout    string // SIMTEX_TIMEOUT: build timeout, validated with the config
	Workers    int    // SIMTEX_WORKERS: parallel conversions
}

// knownEnvVars lists valid SIMTEX_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"SIMTEX_CONFIG":     true,
	"SIMTEX_AUTHOR":     true,
	"SIMTEX_OUTPUT_DIR": true,
	"SIMTEX_COMPILER":   true,
	"SIMTEX_TIMEOUT":    true,
	"SIMTEX_WORKERS":    true,
}

// loadEnvConfig reads the recognized SIMTEX_* values from env.
func loadEnvConfig(env *Environment) *envConfig {
	cfg := &envConfig{
		ConfigPath: env.Getenv("SIMTEX_CONFIG"),
		Author:     env.Getenv("SIMTEX_AUTHOR"),
		OutputDir:  env.Getenv("SIMTEX_OUTPUT_DIR"),
		Compiler:   env.Getenv("SIMTEX_COMPILER"),
		Timeout:    env.Getenv("SIMTEX_TIMEOUT"),
	}

	if workers := env.Getenv("SIMTEX_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars writes a warning for each unrecognized SIMTEX_* variable.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides config values with the environment.
// Precedence is CLI flags > env vars > config file; flags are applied
// afterwards by mergeFlags.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Author != "" {
		cfg.Document.Author = env.Author
	}
	if env.OutputDir != "" {
		cfg.Output.Folder = env.OutputDir
	}
	if env.Compiler != "" {
		cfg.Build.Compiler = env.Compiler
	}
	if env.Timeout != "" {
		cfg.Build.Timeout = env.Timeout
	}
}
