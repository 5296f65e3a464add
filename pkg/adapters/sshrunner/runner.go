// Package sshrunner executes commands on a remote machine over ssh.
//
// Each Run call is a fresh ssh invocation; the adapter relies on the
// operator's connection multiplexing (ControlMaster) for performance and
// on key-based auth being configured for the target.
package sshrunner

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/user/vkvideobench/pkg/ports"
)

// EnvPrefix selects which environment variables are forwarded to the
// remote command. Vulkan loader and validation settings all share it.
const EnvPrefix = "VK_"

const probeTimeout = 10 * time.Second

// Runner implements ports.CommandRunner over ssh.
type Runner struct {
	target string
	local  ports.CommandRunner
}

// New creates a runner for the given target, typically user@host. The
// local runner spawns the ssh client itself.
func New(target string, local ports.CommandRunner) *Runner {
	return &Runner{target: target, local: local}
}

// Run executes the command remotely. The remote command line is assembled
// with per-argument shell quoting and env assignments limited to VK_
// variables, then handed to ssh as a single argument.
func (r *Runner) Run(ctx context.Context, spec ports.CommandSpec) ports.Invocation {
	var parts []string
	if spec.Dir != "" {
		parts = append(parts, "cd "+Quote(spec.Dir), "&&")
	}
	for _, k := range sortedKeys(spec.Env) {
		if strings.HasPrefix(k, EnvPrefix) {
			parts = append(parts, k+"="+Quote(spec.Env[k]))
		}
	}
	for _, arg := range spec.Args {
		parts = append(parts, Quote(arg))
	}

	return r.local.Run(ctx, ports.CommandSpec{
		Args:    []string{"ssh", r.target, strings.Join(parts, " ")},
		Timeout: spec.Timeout,
	})
}

// FileExists probes a remote path with test -f.
func (r *Runner) FileExists(path string) bool {
	return r.probe("-f", path)
}

// FileNonEmpty probes a remote file with test -s.
func (r *Runner) FileNonEmpty(path string) bool {
	return r.probe("-s", path)
}

// DirExists probes a remote path with test -d.
func (r *Runner) DirExists(path string) bool {
	return r.probe("-d", path)
}

// MkdirAll creates a remote directory tree.
func (r *Runner) MkdirAll(path string) error {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	inv := r.local.Run(ctx, ports.CommandSpec{
		Args: []string{"ssh", r.target, "mkdir -p " + Quote(path)},
	})
	if inv.ExitCode != 0 {
		return &RemoteError{Target: r.target, Op: "mkdir -p " + path, Stderr: inv.Stderr}
	}
	return nil
}

// CheckConnectivity verifies the target is reachable before a run begins.
func (r *Runner) CheckConnectivity(ctx context.Context) error {
	inv := r.local.Run(ctx, ports.CommandSpec{
		Args:    []string{"ssh", "-o", "ConnectTimeout=5", r.target, "echo OK"},
		Timeout: probeTimeout,
	})
	if inv.ExitCode != 0 || !strings.Contains(inv.Stdout, "OK") {
		return &RemoteError{Target: r.target, Op: "connect", Stderr: inv.Stderr}
	}
	return nil
}

// Target returns the ssh destination.
func (r *Runner) Target() string {
	return r.target
}

func (r *Runner) probe(flag, path string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	inv := r.local.Run(ctx, ports.CommandSpec{
		Args: []string{"ssh", r.target, "test " + flag + " " + Quote(path)},
	})
	return inv.ExitCode == 0
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RemoteError describes a failed remote operation.
type RemoteError struct {
	Target string
	Op     string
	Stderr string
}

func (e *RemoteError) Error() string {
	msg := "remote " + e.Target + ": " + e.Op + " failed"
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

var _ ports.CommandRunner = (*Runner)(nil)
