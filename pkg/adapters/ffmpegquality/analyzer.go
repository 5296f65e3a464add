// Package ffmpegquality measures encode quality by shelling out to ffmpeg
// for decode, PSNR, and VMAF stages.
package ffmpegquality

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/user/vkvideobench/pkg/ports"
)

// VMAF dominates the cost of a measurement, so it gets double the budget.
const (
	decodeTimeout = 300 * time.Second
	psnrTimeout   = 300 * time.Second
	vmafTimeout   = 600 * time.Second
)

// ffmpeg prints both metrics to stderr as free text.
var (
	psnrPattern = regexp.MustCompile(`PSNR y:([0-9.]+) u:([0-9.]+) v:([0-9.]+) average:([0-9.]+) min:([0-9.]+) max:([0-9.]+)`)
	vmafPattern = regexp.MustCompile(`VMAF score:\s*([0-9.]+)`)
)

// Analyzer implements ports.QualityAnalyzer using ffmpeg through a
// command runner.
type Analyzer struct {
	ffmpeg string
	runner ports.CommandRunner
	logger ports.Logger
}

// New creates an analyzer that invokes the given ffmpeg binary through
// the runner.
func New(ffmpegPath string, runner ports.CommandRunner, logger ports.Logger) *Analyzer {
	return &Analyzer{
		ffmpeg: ffmpegPath,
		runner: runner,
		logger: logger.WithComponent("quality"),
	}
}

// Measure decodes the encoded artifact and compares it against the raw
// reference. A decode failure returns an error; metric parse or filter
// failures degrade to zero-valued metrics so a measurement problem never
// aborts a benchmark run.
func (a *Analyzer) Measure(ctx context.Context, encoded, reference string, width, height int, opts ports.MeasureOptions) (ports.QualityMetrics, error) {
	var m ports.QualityMetrics

	decoded := filepath.Join(opts.WorkDir, "decoded.yuv")
	decodeArgs := []string{a.ffmpeg, "-y", "-i", encoded, "-f", "rawvideo", "-pix_fmt", "yuv420p", decoded}
	m.DecodeCommand = strings.Join(decodeArgs, " ")

	inv := a.runner.Run(ctx, ports.CommandSpec{Args: decodeArgs, Timeout: decodeTimeout})
	if inv.ExitCode != 0 {
		return m, fmt.Errorf("decode failed (exit %d): %s", inv.ExitCode, tail(inv.Stderr))
	}

	geometry := fmt.Sprintf("%dx%d", width, height)
	rawInput := []string{
		"-f", "rawvideo", "-pix_fmt", "yuv420p", "-s", geometry,
	}

	if !opts.SkipPSNR {
		args := []string{a.ffmpeg}
		args = append(args, rawInput...)
		args = append(args, "-i", decoded)
		args = append(args, rawInput...)
		args = append(args, "-i", reference,
			"-lavfi", "[0:v][1:v]psnr", "-f", "null", "-")
		m.PSNRCommand = strings.Join(args, " ")

		inv := a.runner.Run(ctx, ports.CommandSpec{Args: args, Timeout: psnrTimeout})
		if psnr, ok := parsePSNR(inv.Output()); ok {
			m.PSNR = psnr
		} else {
			a.logger.Warn("PSNR output not recognized, recording zeros")
		}
	}

	if !opts.SkipVMAF {
		args := []string{a.ffmpeg}
		args = append(args, rawInput...)
		args = append(args, "-i", decoded)
		args = append(args, rawInput...)
		args = append(args, "-i", reference,
			"-lavfi", "[0:v][1:v]libvmaf", "-f", "null", "-")
		m.VMAFCommand = strings.Join(args, " ")

		inv := a.runner.Run(ctx, ports.CommandSpec{Args: args, Timeout: vmafTimeout})
		if score, ok := parseVMAF(inv.Output()); ok {
			m.VMAF = score
		} else {
			a.logger.Warn("VMAF output not recognized, recording zero")
		}
	}

	return m, nil
}

func parsePSNR(output string) (ports.PSNR, bool) {
	m := psnrPattern.FindStringSubmatch(output)
	if m == nil {
		return ports.PSNR{}, false
	}
	vals := make([]float64, 6)
	for i := range vals {
		v, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return ports.PSNR{}, false
		}
		vals[i] = v
	}
	return ports.PSNR{
		Y: vals[0], U: vals[1], V: vals[2],
		Average: vals[3], Min: vals[4], Max: vals[5],
	}, true
}

func parseVMAF(output string) (float64, bool) {
	m := vmafPattern.FindStringSubmatch(output)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func tail(s string) string {
	s = strings.TrimSpace(s)
	const limit = 300
	if len(s) <= limit {
		return s
	}
	return s[len(s)-limit:]
}

var _ ports.QualityAnalyzer = (*Analyzer)(nil)
