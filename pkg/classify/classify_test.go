package classify

import (
	"strings"
	"testing"

	"github.com/user/vkvideobench/pkg/ports"
)

type probeFunc func(path string) bool

func (f probeFunc) FileNonEmpty(path string) bool { return f(path) }

var probeAlways = probeFunc(func(string) bool { return true })
var probeNever = probeFunc(func(string) bool { return false })

func TestClassifyPassed(t *testing.T) {
	inv := ports.Invocation{ExitCode: 0, Stdout: "encoded 30 frames"}
	res := Classify(inv, Expectation{OutputFile: "/tmp/out.264"}, probeAlways)
	if res.Outcome != Passed {
		t.Errorf("expected PASSED, got %s (%s)", res.Outcome, res.Message)
	}
}

func TestClassifyNonZeroExit(t *testing.T) {
	inv := ports.Invocation{ExitCode: 1, Stderr: "segfault"}
	res := Classify(inv, Expectation{}, probeAlways)
	if res.Outcome != Failed {
		t.Errorf("expected FAILED, got %s", res.Outcome)
	}
	if res.Message != "segfault" {
		t.Errorf("expected stderr carried as message, got %q", res.Message)
	}
}

func TestClassifyArtifactDominatesExitCode(t *testing.T) {
	// A zero exit with a missing or empty output file is still a failure.
	inv := ports.Invocation{ExitCode: 0, Stdout: "done"}
	res := Classify(inv, Expectation{OutputFile: "/tmp/out.265"}, probeNever)
	if res.Outcome != Failed {
		t.Errorf("expected FAILED for empty artifact, got %s", res.Outcome)
	}
	if res.Message != "Output artifact missing or empty" {
		t.Errorf("unexpected message %q", res.Message)
	}
}

func TestClassifyValidationError(t *testing.T) {
	cases := []struct {
		name   string
		stdout string
		want   Outcome
	}{
		{"lowercase", "frame 1 ok\nvalidation error: VUID-123", Failed},
		{"uppercase", "Validation Error: sync hazard", Failed},
		{"mixed", "VALIDATION ERROR detected", Failed},
		{"word error alone is fine", "0 errors reported", Passed},
		{"clean", "all frames decoded", Passed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inv := ports.Invocation{ExitCode: 0, Stdout: tc.stdout}
			res := Classify(inv, Expectation{}, probeAlways)
			if res.Outcome != tc.want {
				t.Errorf("got %s, want %s", res.Outcome, tc.want)
			}
		})
	}
}

func TestClassifyDecoderLog(t *testing.T) {
	// The word "error" fails a decode only when "validation" is absent,
	// since decoder self-diagnostics mention validation layers routinely.
	cases := []struct {
		name   string
		stdout string
		want   Outcome
	}{
		{"plain decode error", "error: failed to parse NAL unit", Failed},
		{"validation mention neutralizes", "Decoder: using validation layer, no errors detected", Passed},
		{"clean output", "decoded 300 frames", Passed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inv := ports.Invocation{ExitCode: 0, Stdout: tc.stdout}
			res := Classify(inv, Expectation{DecoderLog: true}, probeAlways)
			if res.Outcome != tc.want {
				t.Errorf("got %s, want %s", res.Outcome, tc.want)
			}
		})
	}
}

func TestClassifyDecoderLogOffByDefault(t *testing.T) {
	inv := ports.Invocation{ExitCode: 0, Stdout: "error: something odd"}
	res := Classify(inv, Expectation{}, probeAlways)
	if res.Outcome != Passed {
		t.Errorf("decoder error scan must be opt-in, got %s", res.Outcome)
	}
}

func TestClassifyHarnessFailure(t *testing.T) {
	inv := ports.Invocation{ExitCode: ports.ExitHarnessFailure, Stderr: ports.StderrTimeout}
	res := Classify(inv, Expectation{OutputFile: "/tmp/out.264"}, probeAlways)
	if res.Outcome != Error {
		t.Errorf("expected ERROR for harness failure, got %s", res.Outcome)
	}
	if res.Message != "Timeout" {
		t.Errorf("expected timeout diagnostic, got %q", res.Message)
	}
}

func TestClassifyMessageTruncated(t *testing.T) {
	inv := ports.Invocation{ExitCode: 1, Stderr: strings.Repeat("x", 1000)}
	res := Classify(inv, Expectation{}, probeAlways)
	if len(res.Message) != MessageLimit {
		t.Errorf("expected message capped at %d, got %d", MessageLimit, len(res.Message))
	}
}

func TestSkip(t *testing.T) {
	res := Skip("File not found")
	if res.Outcome != Skipped || res.Message != "File not found" {
		t.Errorf("unexpected skip result %+v", res)
	}
}

func TestGlyph(t *testing.T) {
	pairs := map[Outcome]string{
		Passed:  "✓",
		Failed:  "✗",
		Skipped: "○",
		Error:   "!",
	}
	for o, want := range pairs {
		if got := o.Glyph(); got != want {
			t.Errorf("%s glyph: got %s, want %s", o, got, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("short strings must pass through, got %q", got)
	}
	if got := Truncate("abcdef", 3); got != "abc" {
		t.Errorf("got %q", got)
	}
	if got := Truncate("abcdef", 0); got != "abcdef" {
		t.Errorf("zero limit must disable truncation, got %q", got)
	}
}
