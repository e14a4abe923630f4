package main

import (
	"io"
	"os"
	"time"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer

	// IsTerminal reports whether w is an interactive terminal. It decides
	// the log format and whether --color=auto highlights output.
	IsTerminal func(w io.Writer) bool

	// Getenv reads CAPTAINHOOK_* overrides. Nil means os.Getenv.
	Getenv func(string) string
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:        time.Now,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		IsTerminal: isTerminal,
		Getenv:     os.Getenv,
	}
}

// getenv reads an environment variable through the injected lookup.
func (e *Environment) getenv(key string) string {
	if e.Getenv == nil {
		return os.Getenv(key)
	}
	return e.Getenv(key)
}

// isTTY reports whether w is a terminal according to the environment.
func (e *Environment) isTTY(w io.Writer) bool {
	if e.IsTerminal == nil {
		return false
	}
	return e.IsTerminal(w)
}
