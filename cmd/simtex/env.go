package main

import (
	"io"
	"os"
	"time"

	"github.com/alnah/go-simtex/internal/config"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, process environment and the remote config location.
type Environment struct {
	Now     func() time.Time
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	Environ func() []string
	Remote  config.RemoteConfig // used by --online and config init/update
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
		Remote:  config.DefaultConfig().Remote,
	}
}
