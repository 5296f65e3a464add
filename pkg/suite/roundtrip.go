package suite

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/user/vkvideobench/pkg/classify"
	"github.com/user/vkvideobench/pkg/codec"
	"github.com/user/vkvideobench/pkg/ports"
	"github.com/user/vkvideobench/pkg/testcase"
)

// RoundtripOptions scope one decoder round-trip run.
type RoundtripOptions struct {
	// Timeout bounds each decode.
	Timeout time.Duration

	// DetectCodec, when set, resolves the codec of container files whose
	// extension does not identify one. Raw bitstreams are left to the
	// decoder's own elementary-stream detection.
	DetectCodec func(path string) codec.Codec
}

// isContainer reports whether the file is an MP4 container rather than
// a raw elementary stream. The decoder auto-detects raw streams but
// needs an explicit codec for containers.
func isContainer(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".mp4")
}

func (o RoundtripOptions) timeout() time.Duration {
	if o.Timeout > 0 {
		return o.Timeout
	}
	return 60 * time.Second
}

// RunRoundtrip decodes every given bitstream and verifies the decoder
// accepts its own encoder's output. Decoder logs are scanned with the
// validation nullifier rule from the classifier.
func (d *Driver) RunRoundtrip(ctx context.Context, bitstreams []string, o RoundtripOptions) Summary {
	start := time.Now()
	summary := Summary{}

	for _, bs := range bitstreams {
		name := filepath.Base(bs)
		display := codec.FromExtension(filepath.Ext(bs))
		pinned := codec.Unknown
		if isContainer(bs) && o.DetectCodec != nil {
			if detected := o.DetectCodec(bs); detected != codec.Unknown {
				display = detected
				pinned = detected
			}
		}
		c := testcase.Case{
			Name:  name,
			Input: bs,
			Codec: pinned,
		}
		args := c.DecodeArgs(d.DecoderPath)

		env := map[string]string{}
		if d.LibraryEnvName != "" {
			env[d.LibraryEnvName] = d.LibraryEnvValue
		}
		if d.verbose {
			fmt.Fprintf(d.out, "    %s%s %s%s\n", d.style.Cyan, d.DecoderPath, bs, d.style.Reset)
		}

		inv := d.runner.Run(ctx, ports.CommandSpec{Args: args, Env: env, Timeout: o.timeout()})
		res := classify.Classify(inv, classify.Expectation{DecoderLog: true}, d.runner)

		label := display.Display()
		if display == codec.Unknown {
			label = "?"
		}
		fmt.Fprintf(d.out, "  %s %-60s %-6s %.2fs\n", d.style.glyph(res.Outcome), name, label, inv.Duration.Seconds())
		if res.Outcome != classify.Passed && res.Message != "" {
			fmt.Fprintf(d.out, "    %s\n", res.Message)
		}

		summary.add(CaseResult{
			Name:     name,
			Group:    "Roundtrip",
			Outcome:  res.Outcome,
			Duration: inv.Duration,
			Message:  res.Message,
		})
	}

	summary.Duration = time.Since(start)
	return summary
}
