// Package mocks provides hand-written mock implementations of the ports
// interfaces for testing.
package mocks

import (
	"context"

	"github.com/user/vkvideobench/pkg/ports"
)

// CommandRunner is a mock implementation of ports.CommandRunner.
type CommandRunner struct {
	RunFunc               func(ctx context.Context, spec ports.CommandSpec) ports.Invocation
	FileExistsFunc        func(path string) bool
	FileNonEmptyFunc      func(path string) bool
	DirExistsFunc         func(path string) bool
	MkdirAllFunc          func(path string) error
	CheckConnectivityFunc func(ctx context.Context) error

	// Recorded calls for verification
	RunCalls      []ports.CommandSpec
	MkdirAllCalls []string
}

func (m *CommandRunner) Run(ctx context.Context, spec ports.CommandSpec) ports.Invocation {
	m.RunCalls = append(m.RunCalls, spec)
	if m.RunFunc != nil {
		return m.RunFunc(ctx, spec)
	}
	return ports.Invocation{ExitCode: 0}
}

func (m *CommandRunner) FileExists(path string) bool {
	if m.FileExistsFunc != nil {
		return m.FileExistsFunc(path)
	}
	return true
}

func (m *CommandRunner) FileNonEmpty(path string) bool {
	if m.FileNonEmptyFunc != nil {
		return m.FileNonEmptyFunc(path)
	}
	return true
}

func (m *CommandRunner) DirExists(path string) bool {
	if m.DirExistsFunc != nil {
		return m.DirExistsFunc(path)
	}
	return true
}

func (m *CommandRunner) MkdirAll(path string) error {
	m.MkdirAllCalls = append(m.MkdirAllCalls, path)
	if m.MkdirAllFunc != nil {
		return m.MkdirAllFunc(path)
	}
	return nil
}

func (m *CommandRunner) CheckConnectivity(ctx context.Context) error {
	if m.CheckConnectivityFunc != nil {
		return m.CheckConnectivityFunc(ctx)
	}
	return nil
}

func (m *CommandRunner) Target() string {
	return "mock"
}

var _ ports.CommandRunner = (*CommandRunner)(nil)
