// Package ports defines the interfaces between the orchestration core and
// its adapters.
package ports

import (
	"context"
	"time"
)

// ExitHarnessFailure is the sentinel exit code reported when a command could
// not produce a real exit status (timeout, spawn failure, lost connection).
const ExitHarnessFailure = -1

// StderrTimeout is the sentinel diagnostic placed in Invocation.Stderr when
// a command exceeded its timeout.
const StderrTimeout = "Timeout"

// CommandSpec describes a single external process invocation.
type CommandSpec struct {
	// Args is the full argument vector. Args[0] is the executable path.
	Args []string

	// Env holds extra environment variables layered on top of the target's
	// environment. Remote runners forward only recognized prefixes.
	Env map[string]string

	// Dir is the working directory. Empty means the runner's default.
	Dir string

	// Timeout bounds the wall-clock duration. Zero means no timeout.
	Timeout time.Duration
}

// Invocation captures the complete outcome of one CommandSpec run.
// It is created exactly once per run and never mutated afterwards.
type Invocation struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Output returns stdout and stderr merged, in that order. Marker scanning
// in the classifier operates on this merged text.
func (inv Invocation) Output() string {
	return inv.Stdout + inv.Stderr
}

// HarnessFailure reports whether the run failed before the tool could report
// its own exit status.
func (inv Invocation) HarnessFailure() bool {
	return inv.ExitCode == ExitHarnessFailure
}

// CommandRunner executes commands on a target machine, either the local host
// or a remote one reached over SSH. All failures surface as structured
// Invocation values; Run never panics and never returns an error.
type CommandRunner interface {
	// Run executes the command and waits for it to exit or time out.
	// On timeout or spawn failure the returned Invocation carries
	// ExitHarnessFailure and a short diagnostic in Stderr.
	Run(ctx context.Context, spec CommandSpec) Invocation

	// FileExists reports whether a regular file exists on the target.
	FileExists(path string) bool

	// FileNonEmpty reports whether a file exists on the target and has a
	// size greater than zero.
	FileNonEmpty(path string) bool

	// DirExists reports whether a directory exists on the target.
	DirExists(path string) bool

	// MkdirAll creates a directory tree on the target.
	MkdirAll(path string) error

	// CheckConnectivity verifies the target is reachable. Local runners
	// always succeed; remote runners attempt a short probe command.
	CheckConnectivity(ctx context.Context) error

	// Target returns a human-readable description of the execution target
	// for banners and reports.
	Target() string
}
