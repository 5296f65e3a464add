// Package suite drives the decode, encode, and AQ test catalogs against
// the codec binaries, one case at a time.
package suite

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/user/vkvideobench/pkg/catalog"
	"github.com/user/vkvideobench/pkg/classify"
	"github.com/user/vkvideobench/pkg/ports"
	"github.com/user/vkvideobench/pkg/testcase"
)

const caseTimeout = 300 * time.Second

// CaseResult records one executed (or skipped) case.
type CaseResult struct {
	Name     string
	Group    string
	Outcome  classify.Outcome
	Duration time.Duration
	Message  string
}

// Summary aggregates a full suite run.
type Summary struct {
	Results  []CaseResult
	Passed   int
	Failed   int
	Skipped  int
	Errors   int
	Duration time.Duration
}

// Ok reports whether the run should exit zero. Skips alone do not fail a
// run.
func (s Summary) Ok() bool {
	return s.Failed == 0 && s.Errors == 0
}

func (s *Summary) add(r CaseResult) {
	s.Results = append(s.Results, r)
	switch r.Outcome {
	case classify.Passed:
		s.Passed++
	case classify.Failed:
		s.Failed++
	case classify.Skipped:
		s.Skipped++
	case classify.Error:
		s.Errors++
	}
}

// Mode selects which binary a catalog group exercises.
type Mode int

const (
	ModeDecode Mode = iota
	ModeEncode
)

// Style holds the terminal escape sequences for live output. Color
// capability is decided once when the style is built, never re-read from
// process globals.
type Style struct {
	Red    string
	Green  string
	Yellow string
	Cyan   string
	Bold   string
	Reset  string
}

// NewStyle returns colored or plain escape sequences.
func NewStyle(color bool) Style {
	if !color {
		return Style{}
	}
	return Style{
		Red:    "\033[0;31m",
		Green:  "\033[0;32m",
		Yellow: "\033[1;33m",
		Cyan:   "\033[0;36m",
		Bold:   "\033[1m",
		Reset:  "\033[0m",
	}
}

func (st Style) glyph(o classify.Outcome) string {
	switch o {
	case classify.Passed:
		return st.Green + o.Glyph() + st.Reset
	case classify.Failed, classify.Error:
		return st.Red + o.Glyph() + st.Reset
	case classify.Skipped:
		return st.Yellow + o.Glyph() + st.Reset
	default:
		return o.Glyph()
	}
}

// Driver executes catalog groups sequentially, printing a live glyph per
// case and recording results in submission order.
type Driver struct {
	runner  ports.CommandRunner
	logger  ports.Logger
	out     io.Writer
	style   Style
	verbose bool

	// EncoderPath and DecoderPath are the resolved binaries on the
	// execution target.
	EncoderPath string
	DecoderPath string

	// LibraryEnvName and LibraryEnvValue inject the shared-library
	// search path into every invocation.
	LibraryEnvName  string
	LibraryEnvValue string
}

// NewDriver creates a suite driver writing live output to out.
func NewDriver(runner ports.CommandRunner, logger ports.Logger, out io.Writer, style Style, verbose bool) *Driver {
	return &Driver{
		runner:  runner,
		logger:  logger.WithComponent("suite"),
		out:     out,
		style:   style,
		verbose: verbose,
	}
}

// Run executes all groups and returns the aggregated summary. Results
// keep the exact submission order of the catalog.
func (d *Driver) Run(ctx context.Context, groups []catalog.Group, mode Mode) Summary {
	start := time.Now()
	summary := Summary{}

	for _, g := range groups {
		d.printHeader(g.Title)
		for _, c := range g.Cases {
			r := d.runCase(ctx, c, mode)
			r.Group = g.Title
			summary.add(r)
		}
	}

	summary.Duration = time.Since(start)
	d.printSummary(summary)
	return summary
}

// runCase executes one case. A missing input never spawns a process.
func (d *Driver) runCase(ctx context.Context, c testcase.Case, mode Mode) CaseResult {
	if !d.runner.FileExists(c.Input) {
		res := classify.Skip("File not found")
		fmt.Fprintf(d.out, "  %s %s - File not found\n", d.style.glyph(res.Outcome), c.Name)
		return CaseResult{Name: c.Name, Outcome: res.Outcome, Message: res.Message}
	}

	var args []string
	var exp classify.Expectation
	switch mode {
	case ModeEncode:
		args = c.EncodeArgs(d.EncoderPath)
		exp = classify.Expectation{OutputFile: c.Output}
	default:
		args = c.DecodeArgs(d.DecoderPath)
	}

	env := map[string]string{}
	if d.LibraryEnvName != "" {
		env[d.LibraryEnvName] = d.LibraryEnvValue
	}
	for k, v := range c.ValidationEnv() {
		env[k] = v
	}

	if d.verbose {
		fmt.Fprintf(d.out, "\n  %sCommand: %s%s\n", d.style.Cyan, strings.Join(args, " "), d.style.Reset)
	}

	inv := d.runner.Run(ctx, ports.CommandSpec{
		Args:    args,
		Env:     env,
		Timeout: caseTimeout,
	})

	res := classify.Classify(inv, exp, d.runner)
	switch res.Outcome {
	case classify.Passed:
		fmt.Fprintf(d.out, "  %s %s (%.2fs)\n", d.style.glyph(res.Outcome), c.Name, inv.Duration.Seconds())
	default:
		fmt.Fprintf(d.out, "  %s %s - %s (%.2fs)\n", d.style.glyph(res.Outcome), c.Name, res.Message, inv.Duration.Seconds())
		if d.verbose && res.Message != "" {
			fmt.Fprintf(d.out, "    %s\n", classify.Truncate(inv.Output(), 200))
		}
	}

	return CaseResult{
		Name:     c.Name,
		Outcome:  res.Outcome,
		Duration: inv.Duration,
		Message:  res.Message,
	}
}

func (d *Driver) printHeader(title string) {
	bar := strings.Repeat("=", 50)
	fmt.Fprintf(d.out, "\n%s%s%s\n", d.style.Bold, bar, d.style.Reset)
	fmt.Fprintf(d.out, "%s%s%s\n", d.style.Bold, title, d.style.Reset)
	fmt.Fprintf(d.out, "%s%s%s\n", d.style.Bold, bar, d.style.Reset)
}

func (d *Driver) printSummary(s Summary) {
	d.printHeader("Test Summary")
	total := s.Passed + s.Failed + s.Skipped + s.Errors
	fmt.Fprintf(d.out, "\nTotal Tests:    %d\n", total)
	fmt.Fprintf(d.out, "  %s✓ Passed:%s    %d\n", d.style.Green, d.style.Reset, s.Passed)
	fmt.Fprintf(d.out, "  %s✗ Failed:%s    %d\n", d.style.Red, d.style.Reset, s.Failed)
	fmt.Fprintf(d.out, "  %s○ Skipped:%s   %d\n", d.style.Yellow, d.style.Reset, s.Skipped)
	if s.Errors > 0 {
		fmt.Fprintf(d.out, "  %s! Errors:%s    %d\n", d.style.Red, d.style.Reset, s.Errors)
	}
	fmt.Fprintf(d.out, "\nTotal Duration: %ds\n\n", int(s.Duration.Seconds()))

	if s.Ok() && s.Passed > 0 {
		fmt.Fprintf(d.out, "%s%sAll tests passed!%s\n", d.style.Green, d.style.Bold, d.style.Reset)
	} else if !s.Ok() {
		fmt.Fprintf(d.out, "%s%sSome tests failed.%s\n", d.style.Red, d.style.Bold, d.style.Reset)
	}
}
