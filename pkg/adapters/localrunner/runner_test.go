//go:build !windows

package localrunner

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/user/vkvideobench/pkg/ports"
)

func TestRunCapturesOutput(t *testing.T) {
	r := New()
	inv := r.Run(context.Background(), ports.CommandSpec{
		Args: []string{"/bin/sh", "-c", "echo out; echo err >&2"},
	})
	if inv.ExitCode != 0 {
		t.Fatalf("exit = %d, stderr = %q", inv.ExitCode, inv.Stderr)
	}
	if !strings.Contains(inv.Stdout, "out") {
		t.Errorf("stdout = %q", inv.Stdout)
	}
	if !strings.Contains(inv.Stderr, "err") {
		t.Errorf("stderr = %q", inv.Stderr)
	}
	if inv.Duration <= 0 {
		t.Error("duration must be recorded")
	}
}

func TestRunExitCode(t *testing.T) {
	r := New()
	inv := r.Run(context.Background(), ports.CommandSpec{
		Args: []string{"/bin/sh", "-c", "exit 3"},
	})
	if inv.ExitCode != 3 {
		t.Errorf("exit = %d, want 3", inv.ExitCode)
	}
}

func TestRunEnvInjection(t *testing.T) {
	r := New()
	inv := r.Run(context.Background(), ports.CommandSpec{
		Args: []string{"/bin/sh", "-c", "echo $PROBE_VALUE"},
		Env:  map[string]string{"PROBE_VALUE": "injected"},
	})
	if !strings.Contains(inv.Stdout, "injected") {
		t.Errorf("stdout = %q", inv.Stdout)
	}
}

func TestRunTimeout(t *testing.T) {
	r := New()
	inv := r.Run(context.Background(), ports.CommandSpec{
		Args:    []string{"/bin/sh", "-c", "sleep 10"},
		Timeout: 100 * time.Millisecond,
	})
	if !inv.HarnessFailure() {
		t.Fatalf("expected harness failure, exit = %d", inv.ExitCode)
	}
	if inv.Stderr != ports.StderrTimeout {
		t.Errorf("stderr = %q, want the timeout sentinel", inv.Stderr)
	}
}

func TestRunSpawnFailure(t *testing.T) {
	r := New()
	inv := r.Run(context.Background(), ports.CommandSpec{
		Args: []string{"/definitely/not/a/binary"},
	})
	if !inv.HarnessFailure() {
		t.Errorf("exit = %d, want harness failure", inv.ExitCode)
	}
	if inv.Stderr == "" {
		t.Error("expected a diagnostic")
	}
}

func TestProbes(t *testing.T) {
	r := New()
	dir := t.TempDir()

	full := filepath.Join(dir, "full.bin")
	empty := filepath.Join(dir, "empty.bin")
	if err := os.WriteFile(full, []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatal(err)
	}

	if !r.FileExists(full) || !r.FileExists(empty) {
		t.Error("both files exist")
	}
	if r.FileExists(dir) {
		t.Error("a directory is not a file")
	}
	if !r.FileNonEmpty(full) {
		t.Error("full file must be non-empty")
	}
	if r.FileNonEmpty(empty) {
		t.Error("empty file must not count")
	}
	if !r.DirExists(dir) || r.DirExists(full) {
		t.Error("DirExists must distinguish files from directories")
	}
}

func TestMkdirAll(t *testing.T) {
	r := New()
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	if err := r.MkdirAll(dir); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if !r.DirExists(dir) {
		t.Error("expected directory tree created")
	}
}

func TestTarget(t *testing.T) {
	r := New()
	if r.Target() != "local" {
		t.Errorf("target = %q", r.Target())
	}
	if err := r.CheckConnectivity(context.Background()); err != nil {
		t.Errorf("local connectivity must always succeed: %v", err)
	}
}
