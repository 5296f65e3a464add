package suite

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/user/vkvideobench/pkg/classify"
	"github.com/user/vkvideobench/pkg/codec"
	"github.com/user/vkvideobench/pkg/ports"
	"github.com/user/vkvideobench/pkg/resolver"
	"github.com/user/vkvideobench/pkg/testcase"
)

// ProfileOptions scope one profile test run.
type ProfileOptions struct {
	VideoDir  string
	OutputDir string

	// FilterCodec keeps only profiles targeting one codec.
	FilterCodec codec.Codec
	// FilterName keeps only profiles whose name contains the substring.
	FilterName string

	MaxFrames  int
	Validation bool

	// MaxQualityPreset is the highest qualityPreset the driver will run;
	// profiles pinning a higher one are skipped.
	MaxQualityPreset int

	// Input overrides input discovery when set.
	Input       resolver.RawFrameInfo
	InputPinned bool

	PathSep string
}

func (o ProfileOptions) sep() string {
	if o.PathSep == "" {
		return "/"
	}
	return o.PathSep
}

// RunProfiles encodes one input per discovered profile and classifies
// the results. Profiles are driven through the same executor, classifier,
// and summary machinery as the fixed catalogs.
func (d *Driver) RunProfiles(ctx context.Context, files []resolver.ProfileFile, o ProfileOptions) Summary {
	start := time.Now()
	summary := Summary{}

	d.printHeader("Running Profiles")
	for _, f := range files {
		if o.FilterName != "" && !strings.Contains(strings.ToLower(f.Name), strings.ToLower(o.FilterName)) {
			continue
		}
		r := d.runProfile(ctx, f, o)
		if r.Name == "" {
			continue
		}
		r.Group = "Profiles"
		summary.add(r)
		d.printProfileResult(r)
	}

	summary.Duration = time.Since(start)
	d.printSummary(summary)
	return summary
}

func (d *Driver) runProfile(ctx context.Context, f resolver.ProfileFile, o ProfileOptions) CaseResult {
	profile, err := resolver.LoadProfile(f.Path)
	if err != nil {
		if errors.Is(err, resolver.ErrUnknownCodec) {
			return CaseResult{Name: f.Name, Outcome: classify.Skipped, Message: "Missing/unknown codec"}
		}
		return CaseResult{Name: f.Name, Outcome: classify.Failed, Message: "Invalid JSON"}
	}
	profile.Name = f.Name

	if o.FilterCodec != codec.Unknown && o.FilterCodec != profile.Codec {
		return CaseResult{}
	}

	if profile.QualityPreset != nil && *profile.QualityPreset > o.MaxQualityPreset {
		return CaseResult{
			Name:    f.Name,
			Outcome: classify.Skipped,
			Message: fmt.Sprintf("Unsupported qualityPreset=%d (max=%d)", *profile.QualityPreset, o.MaxQualityPreset),
		}
	}

	input, ok := d.resolveProfileInput(o)
	if !ok {
		return CaseResult{Name: f.Name, Outcome: classify.Skipped, Message: "No input YUV found"}
	}

	outputName := "profile_" + strings.ReplaceAll(f.Name, "/", "_") + profile.Codec.Extension()
	c := testcase.Case{
		Name:          f.Name,
		Codec:         profile.Codec,
		Input:         input.Path,
		Output:        o.OutputDir + o.sep() + outputName,
		Width:         input.Width,
		Height:        input.Height,
		Chroma:        input.Chroma,
		NumFrames:     o.MaxFrames,
		Validation:    o.Validation,
		EncoderConfig: f.Path,
	}
	if input.Bpp != 8 {
		c.Bpp = input.Bpp
	}

	env := map[string]string{}
	if d.LibraryEnvName != "" {
		env[d.LibraryEnvName] = d.LibraryEnvValue
	}
	for k, v := range c.ValidationEnv() {
		env[k] = v
	}

	args := c.EncodeArgs(d.EncoderPath)
	if d.verbose {
		fmt.Fprintf(d.out, "\n  %sProfile: %s (%s)%s\n", d.style.Cyan, f.Name, profile.Codec, d.style.Reset)
		fmt.Fprintf(d.out, "  %sCommand: %s%s\n", d.style.Cyan, strings.Join(args, " "), d.style.Reset)
	}

	inv := d.runner.Run(ctx, ports.CommandSpec{Args: args, Env: env, Timeout: caseTimeout})
	res := classify.Classify(inv, classify.Expectation{OutputFile: c.Output}, d.runner)

	return CaseResult{
		Name:     f.Name,
		Outcome:  res.Outcome,
		Duration: inv.Duration,
		Message:  res.Message,
	}
}

// resolveProfileInput returns the raw input to encode, preferring the
// pinned input, then well-known CTS clips from largest to smallest.
func (d *Driver) resolveProfileInput(o ProfileOptions) (resolver.RawFrameInfo, bool) {
	if o.InputPinned {
		return o.Input, true
	}

	candidates := []resolver.RawFrameInfo{
		{Width: 720, Height: 480, Chroma: "420", Bpp: 8},
		{Width: 352, Height: 288, Chroma: "420", Bpp: 8},
		{Width: 176, Height: 144, Chroma: "420", Bpp: 8},
	}
	for _, c := range candidates {
		for _, dir := range []string{
			o.VideoDir + o.sep() + "cts" + o.sep() + "video",
			o.VideoDir,
		} {
			path := dir + o.sep() + c.FileName()
			if d.runner.FileExists(path) {
				c.Path = path
				return c, true
			}
		}
	}
	return resolver.RawFrameInfo{}, false
}

func (d *Driver) printProfileResult(r CaseResult) {
	switch r.Outcome {
	case classify.Passed:
		fmt.Fprintf(d.out, "  %s %s (%.2fs)\n", d.style.glyph(r.Outcome), r.Name, r.Duration.Seconds())
	default:
		fmt.Fprintf(d.out, "  %s %s - %s\n", d.style.glyph(r.Outcome), r.Name, r.Message)
	}
}
