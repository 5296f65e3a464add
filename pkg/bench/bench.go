package bench

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ideamans/go-l10n"

	"github.com/user/vkvideobench/pkg/codec"
	"github.com/user/vkvideobench/pkg/pipeline"
	"github.com/user/vkvideobench/pkg/ports"
	"github.com/user/vkvideobench/pkg/resolver"
	"github.com/user/vkvideobench/pkg/testcase"
)

// GPU encodes can be slow at 4K; one configuration gets ten minutes.
const encodeTimeout = 600 * time.Second

// Result is the outcome of one benchmark configuration.
type Result struct {
	Config        Configuration
	OutputFile    string
	AQDumpDir     string
	Success       bool
	FileSize      int64
	EncodeTime    time.Duration
	Metrics       ports.QualityMetrics
	EncodeCommand string
	Error         string
}

// Runner drives the benchmark matrix sequentially, one configuration at
// a time.
type Runner struct {
	runner   ports.CommandRunner
	analyzer ports.QualityAnalyzer
	fs       ports.FileSystem
	logger   ports.Logger
}

// NewRunner creates a benchmark runner.
func NewRunner(runner ports.CommandRunner, analyzer ports.QualityAnalyzer, fs ports.FileSystem, logger ports.Logger) *Runner {
	return &Runner{
		runner:   runner,
		analyzer: analyzer,
		fs:       fs,
		logger:   logger.WithComponent("bench"),
	}
}

// Run executes the full matrix and returns one result per configuration,
// in matrix order. A failed configuration produces a failed result; only
// setup problems (unreachable target, unusable reference) abort the run.
func (r *Runner) Run(ctx context.Context, p Params) ([]Result, error) {
	if p.Codec == codec.Unknown {
		return nil, fmt.Errorf("codec is required")
	}
	if err := testcase.ValidateAQStrength("spatial AQ", p.SpatialStrength); err != nil {
		return nil, err
	}
	if err := testcase.ValidateAQStrength("temporal AQ", p.TemporalStrength); err != nil {
		return nil, err
	}

	if err := r.runner.CheckConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("target %s unreachable: %w", r.runner.Target(), err)
	}

	if err := os.MkdirAll(p.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	workDir := filepath.Join(p.OutputDir, "work")
	if err := os.MkdirAll(workDir, 0755); err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}

	reference := filepath.Join(workDir, "reference.yuv")
	frameSize := rawFrameSize(p.Width, p.Height, p.Chroma, p.Bpp)
	r.logger.Info(l10n.F("Extracting %d reference frames", p.ReferenceFrames()))
	if err := ExtractReference(p.Input, reference, frameSize, p.ReferenceFrames()); err != nil {
		return nil, fmt.Errorf("extract reference: %w", err)
	}
	defer func() {
		os.Remove(reference)
		os.Remove(workDir)
	}()

	encode := r.encodeStage(p)
	measure := r.measureStage(p, reference, workDir)

	configs := Matrix(p.SpatialStrength, p.TemporalStrength)
	results := make([]Result, 0, len(configs))
	for i, cfg := range configs {
		r.logger.Info(l10n.F("[%d/%d] Encoding: %s", i+1, len(configs), cfg.Description))

		res, err := encode.Execute(ctx, cfg)
		if err != nil {
			res = Result{Config: cfg, Error: err.Error()}
		}
		if res.Success {
			r.logger.Info(l10n.F("Encoded %d bytes in %.1fs", res.FileSize, res.EncodeTime.Seconds()))
			res, _ = measure.Execute(ctx, res)
		} else {
			r.logger.Warn(l10n.F("Encode failed: %s", res.Error))
		}
		results = append(results, res)
	}

	return results, nil
}

// encodeStage builds and runs one encoder invocation per configuration.
func (r *Runner) encodeStage(p Params) pipeline.Stage[Configuration, Result] {
	return pipeline.StageFunc[Configuration, Result](func(ctx context.Context, cfg Configuration) (Result, error) {
		res := Result{Config: cfg}

		outputFile := filepath.Join(p.OutputDir, "encoded_"+cfg.Name+p.Codec.Extension())
		res.OutputFile = outputFile

		aqDumpBase := p.AQDumpDir
		if aqDumpBase == "" {
			aqDumpBase = p.OutputDir
		}
		aqDump := filepath.Join(aqDumpBase, "aq_dump_"+cfg.Name)
		if err := r.runner.MkdirAll(aqDump); err != nil {
			res.Error = fmt.Sprintf("create AQ dump dir: %v", err)
			return res, nil
		}
		res.AQDumpDir = aqDump

		exe := p.Paths.TestExecutable(resolver.Encoder)
		if !r.runner.FileExists(exe) {
			res.Error = fmt.Sprintf("Encoder not found: %s", exe)
			return res, nil
		}

		c := testcase.Case{
			Name:              cfg.Name,
			Codec:             p.Codec,
			Input:             p.Input,
			Output:            outputFile,
			Width:             p.Width,
			Height:            p.Height,
			EncodeWidth:       orDefault(p.EncodeWidth, p.Width),
			EncodeHeight:      orDefault(p.EncodeHeight, p.Height),
			NumFrames:         p.NumFrames,
			Chroma:            p.Chroma,
			Bpp:               p.Bpp,
			RateControlMode:   p.RateControlMode,
			AverageBitrate:    p.AverageBitrate,
			GopFrameCount:     p.GopFrameCount,
			IdrPeriod:         p.IdrPeriod,
			ConsecutiveBCount: p.ConsecutiveBCount,
			QualityLevel:      p.QualityLevel,
			UsageHints:        p.UsageHints,
			ContentHints:      p.ContentHints,
			TuningMode:        p.TuningMode,
			AQAware:           true,
			SpatialAQ:         cfg.SpatialAQ,
			TemporalAQ:        cfg.TemporalAQ,
			AQDumpDir:         aqDump,
			EncoderConfig:     p.EncoderConfig,
		}
		if p.StartFrame > 0 {
			start := p.StartFrame
			c.StartFrame = &start
		}

		args := c.EncodeArgs(exe)
		res.EncodeCommand = joinCommand(args)

		envName, envValue := p.Paths.LibraryEnv(os.Getenv(libraryEnvName(p)))
		inv := r.runner.Run(ctx, ports.CommandSpec{
			Args:    args,
			Env:     map[string]string{envName: envValue},
			Timeout: encodeTimeout,
		})
		res.EncodeTime = inv.Duration

		if inv.ExitCode == 0 && r.runner.FileNonEmpty(outputFile) {
			res.Success = true
			if size, err := r.fs.FileSize(outputFile); err == nil {
				res.FileSize = size
			}
		} else if inv.HarnessFailure() {
			res.Error = inv.Stderr
		} else {
			res.Error = truncate(inv.Stderr, 500)
			if res.Error == "" {
				res.Error = "Unknown error"
			}
		}
		return res, nil
	})
}

// measureStage runs the quality pipeline for a successful encode.
func (r *Runner) measureStage(p Params, reference, workDir string) pipeline.Stage[Result, Result] {
	return pipeline.StageFunc[Result, Result](func(ctx context.Context, res Result) (Result, error) {
		metrics, err := r.analyzer.Measure(ctx, res.OutputFile, reference, p.Width, p.Height, ports.MeasureOptions{
			SkipPSNR: p.SkipPSNR,
			SkipVMAF: p.SkipVMAF,
			WorkDir:  workDir,
		})
		res.Metrics = metrics
		if err != nil {
			res.Error = "Failed to decode for quality analysis"
		}
		return res, nil
	})
}

func orDefault(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

// rawFrameSize returns the byte size of one raw frame at the given
// geometry.
func rawFrameSize(width, height int, chroma string, bpp int) int64 {
	luma := int64(width) * int64(height)
	var samples int64
	switch chroma {
	case "400":
		samples = luma
	case "422":
		samples = luma * 2
	case "444":
		samples = luma * 3
	default:
		samples = luma * 3 / 2
	}
	if bpp > 8 {
		return samples * 2
	}
	return samples
}

func libraryEnvName(p Params) string {
	if p.Paths.OS == "windows" {
		return "PATH"
	}
	return "LD_LIBRARY_PATH"
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
