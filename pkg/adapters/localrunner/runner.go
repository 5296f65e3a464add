// Package localrunner executes commands on the local machine.
package localrunner

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"time"

	"github.com/user/vkvideobench/pkg/ports"
)

// Runner implements ports.CommandRunner by spawning local processes.
type Runner struct{}

// New creates a local command runner.
func New() *Runner {
	return &Runner{}
}

// Run executes the command and waits for it to finish. A timeout or spawn
// failure yields the harness-failure sentinel instead of an exit code; the
// tool's own non-zero exits are reported as-is.
func (r *Runner) Run(ctx context.Context, spec ports.CommandSpec) ports.Invocation {
	if spec.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, spec.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, spec.Args[0], spec.Args[1:]...)
	cmd.Dir = spec.Dir
	cmd.Env = os.Environ()
	for k, v := range spec.Env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	var stdout, stderr limitedBuffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	setupProcessGroup(cmd)
	// Encoder and decoder spawn GPU worker children; kill the whole group
	// on timeout so they do not outlive the run.
	cmd.Cancel = func() error {
		return killProcessGroup(cmd)
	}

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if ctx.Err() == context.DeadlineExceeded {
		return ports.Invocation{
			ExitCode: ports.ExitHarnessFailure,
			Stdout:   stdout.String(),
			Stderr:   ports.StderrTimeout,
			Duration: elapsed,
		}
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return ports.Invocation{
				ExitCode: exitErr.ExitCode(),
				Stdout:   stdout.String(),
				Stderr:   stderr.String(),
				Duration: elapsed,
			}
		}
		// Spawn failure: binary missing, not executable, etc.
		return ports.Invocation{
			ExitCode: ports.ExitHarnessFailure,
			Stdout:   stdout.String(),
			Stderr:   err.Error(),
			Duration: elapsed,
		}
	}

	return ports.Invocation{
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: elapsed,
	}
}

// FileExists checks whether a path exists.
func (r *Runner) FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// FileNonEmpty checks whether a file exists with size greater than zero.
func (r *Runner) FileNonEmpty(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Size() > 0
}

// DirExists checks whether a path exists and is a directory.
func (r *Runner) DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// MkdirAll creates a directory and all parents.
func (r *Runner) MkdirAll(path string) error {
	return os.MkdirAll(path, 0755)
}

// CheckConnectivity always succeeds for the local machine.
func (r *Runner) CheckConnectivity(ctx context.Context) error {
	return nil
}

// Target identifies the execution target in logs and reports.
func (r *Runner) Target() string {
	return "local"
}

var _ ports.CommandRunner = (*Runner)(nil)
