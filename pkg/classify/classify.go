// Package classify turns raw invocation results into test outcomes.
package classify

import (
	"strings"

	"github.com/user/vkvideobench/pkg/ports"
)

// Outcome is the terminal state of one test case.
type Outcome string

const (
	// Passed: the tool exited zero, no error markers, expected artifacts
	// exist and are non-empty.
	Passed Outcome = "PASSED"
	// Failed: the tool itself reported failure, either through a non-zero
	// exit code, an error marker in its output, or a missing artifact.
	Failed Outcome = "FAILED"
	// Skipped: a required input was absent before the process was ever
	// launched.
	Skipped Outcome = "SKIPPED"
	// Error: a harness-level failure (timeout, spawn error) where the
	// tool's own exit status is unknown.
	Error Outcome = "ERROR"
)

// Glyph returns the one-character status marker used in live output.
func (o Outcome) Glyph() string {
	switch o {
	case Passed:
		return "✓"
	case Failed:
		return "✗"
	case Skipped:
		return "○"
	case Error:
		return "!"
	default:
		return "?"
	}
}

// MessageLimit bounds diagnostic messages carried into reports.
const MessageLimit = 300

// Result pairs an outcome with its diagnostic message.
type Result struct {
	Outcome Outcome
	Message string
}

// Skip builds the result for a case whose input was missing at resolution
// time. No process is launched for such cases.
func Skip(message string) Result {
	return Result{Outcome: Skipped, Message: message}
}

// Expectation describes what a passing invocation must have produced.
type Expectation struct {
	// OutputFile, when non-empty, must exist and be non-empty on the
	// target for the invocation to pass. The artifact check dominates the
	// exit code: a zero exit with a missing artifact is a failure.
	OutputFile string

	// DecoderLog enables the decoder-specific error scan: the word
	// "error" marks a failure only when "validation" does not appear
	// anywhere in the output, since decoder self-diagnostics mention
	// validation layers without anything being wrong.
	DecoderLog bool
}

// ArtifactProbe checks produced artifacts on the execution target.
// ports.CommandRunner satisfies it.
type ArtifactProbe interface {
	FileNonEmpty(path string) bool
}

// Classify decides the outcome of a completed invocation.
func Classify(inv ports.Invocation, exp Expectation, probe ArtifactProbe) Result {
	if inv.HarnessFailure() {
		msg := strings.TrimSpace(inv.Stderr)
		if msg == "" {
			msg = "Harness failure"
		}
		return Result{Outcome: Error, Message: Truncate(msg, MessageLimit)}
	}

	output := inv.Output()

	if inv.ExitCode != 0 {
		msg := strings.TrimSpace(inv.Stderr)
		if msg == "" {
			msg = strings.TrimSpace(output)
		}
		if msg == "" {
			msg = "Unknown error"
		}
		return Result{Outcome: Failed, Message: Truncate(msg, MessageLimit)}
	}

	if HasValidationError(output) {
		return Result{Outcome: Failed, Message: "Validation errors"}
	}

	if exp.DecoderLog && HasDecodeError(output) {
		return Result{Outcome: Failed, Message: "Decode error in output"}
	}

	if exp.OutputFile != "" && !probe.FileNonEmpty(exp.OutputFile) {
		return Result{Outcome: Failed, Message: "Output artifact missing or empty"}
	}

	return Result{Outcome: Passed}
}

// HasValidationError reports whether the merged tool output contains the
// validation-layer failure marker. The match is a case-insensitive
// substring search for the compound phrase; the word "error" alone is not
// enough.
func HasValidationError(output string) bool {
	return strings.Contains(strings.ToLower(output), "validation error")
}

// HasDecodeError reports whether decoder output signals a decode failure.
// Decoder logs legitimately mention validation layers, so "error" only
// counts when "validation" is absent from the output entirely.
func HasDecodeError(output string) bool {
	lower := strings.ToLower(output)
	return strings.Contains(lower, "error") && !strings.Contains(lower, "validation")
}

// Truncate bounds a diagnostic string to at most limit characters so report
// tables stay readable.
func Truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	return s[:limit]
}
