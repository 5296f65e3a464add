// Package main provides the CLI entry point for vkbench.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"

	"github.com/user/vkvideobench/pkg/adapters/containerprobe"
	"github.com/user/vkvideobench/pkg/adapters/ffmpegquality"
	"github.com/user/vkvideobench/pkg/adapters/localrunner"
	"github.com/user/vkvideobench/pkg/adapters/logger"
	"github.com/user/vkvideobench/pkg/adapters/osfilesystem"
	"github.com/user/vkvideobench/pkg/adapters/sshrunner"
	"github.com/user/vkvideobench/pkg/bench"
	"github.com/user/vkvideobench/pkg/catalog"
	"github.com/user/vkvideobench/pkg/codec"
	"github.com/user/vkvideobench/pkg/config"
	"github.com/user/vkvideobench/pkg/ports"
	"github.com/user/vkvideobench/pkg/resolver"
	"github.com/user/vkvideobench/pkg/suite"
)

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Bench     BenchCmd     `cmd:"" help:"Run the adaptive quantization quality benchmark."`
	Suite     SuiteCmd     `cmd:"" help:"Run the decoder and encoder test suites."`
	Profiles  ProfilesCmd  `cmd:"" help:"Run encoder JSON profile tests."`
	Roundtrip RoundtripCmd `cmd:"" help:"Decode every bitstream in a directory back through the decoder."`
	Version   VersionCmd   `cmd:"" help:"Show version information."`
}

var version = "dev"

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("vkbench"),
		kong.Description("Test and benchmark orchestration for the Vulkan Video codec binaries."),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext(log ports.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	return ctx, cancel
}

func buildLogger(level string, quiet bool) ports.Logger {
	if quiet {
		return logger.NewNoop()
	}
	return logger.NewConsole(ports.ParseLogLevel(level))
}

// buildRunner picks the execution target. Remote execution wraps the
// local runner's ssh client; the target OS is assumed linux for remote
// hosts.
func buildRunner(local bool, target string) (ports.CommandRunner, string) {
	lr := localrunner.New()
	if local {
		return lr, runtime.GOOS
	}
	return sshrunner.New(target, lr), "linux"
}

func terminalStyle() suite.Style {
	color := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	return suite.NewStyle(color)
}

// BenchCmd runs the fixed four-configuration AQ benchmark.
type BenchCmd struct {
	Input     string `required:"" help:"Path to input YUV file (raw planar format)."`
	Width     int    `required:"" help:"Input video width in pixels."`
	Height    int    `required:"" help:"Input video height in pixels."`
	Codec     string `required:"" enum:"avc,h264,hevc,h265,av1" help:"Video codec: avc/h264, hevc/h265, or av1."`
	OutputDir string `required:"" help:"Output directory for encoded files and reports."`

	NumFrames    int    `help:"Number of frames to encode (default: all frames in input)."`
	StartFrame   int    `help:"Starting frame number in input file."`
	EncodeWidth  int    `help:"Encoded video width, for scaling (default: same as input)."`
	EncodeHeight int    `help:"Encoded video height, for scaling (default: same as input)."`
	Chroma       string `default:"420" enum:"400,420,422,444" help:"Chroma subsampling format."`
	BitDepth     int    `default:"8" enum:"8,10" help:"Video bit depth: 8 or 10 bits per sample."`

	RateControlMode        string `default:"vbr" enum:"default,disabled,cbr,vbr" help:"Rate control mode."`
	AverageBitrate         int    `help:"Target average bitrate in bits/sec."`
	GopFrameCount          int    `default:"16" help:"Number of frames in Group of Pictures."`
	IdrPeriod              int    `default:"4294967295" help:"Frames between IDR frames."`
	ConsecutiveBFrameCount int    `default:"3" help:"Number of consecutive B-frames between references."`

	QualityLevel int    `default:"4" help:"Encoder quality level 0-7, higher is better."`
	UsageHints   string `default:"transcoding" enum:"default,transcoding,streaming,recording" help:"Usage hint for encoder optimization."`
	ContentHints string `default:"default" enum:"default,camera,desktop,rendered" help:"Content type hint."`
	TuningMode   string `default:"default" enum:"default,highquality,lowlatency,lossless" help:"Encoder tuning mode."`

	SpatialAqStrength  float64 `default:"0.0" help:"Spatial AQ strength [-1.0 to 1.0] for spatial/combined modes."`
	TemporalAqStrength float64 `default:"0.0" help:"Temporal AQ strength [-1.0 to 1.0] for temporal/combined modes."`
	AqDumpDir          string  `help:"Base directory for AQ library dumps (default: output dir)."`
	EncoderConfig      string  `help:"JSON encoder profile passed through to the encoder."`

	SkipVmaf bool `help:"Skip VMAF calculation for faster benchmarks (PSNR only)."`
	SkipPsnr bool `help:"Skip PSNR calculation (not recommended)."`

	ProjectRoot string `default:"." help:"Path to the codec project root directory."`
	BuildType   string `default:"release" enum:"debug,release" help:"Build tree to use."`
	FFmpegPath  string `help:"Path to ffmpeg (falls back to FFMPEG_PATH env, then PATH)."`

	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// Run executes the bench command.
func (cmd *BenchCmd) Run() error {
	log := buildLogger(cmd.LogLevel, cmd.Quiet)
	ctx, cancel := signalContext(log)
	defer cancel()

	ffmpeg, err := ffmpegquality.FindFFmpeg(cmd.FFmpegPath)
	if err != nil {
		return err
	}

	runner := localrunner.New()
	fs := osfilesystem.New()
	analyzer := ffmpegquality.New(ffmpeg, runner, log)

	variant := resolver.Release
	if cmd.BuildType == "debug" {
		variant = resolver.Debug
	}

	p := bench.Params{
		Input:  cmd.Input,
		Width:  cmd.Width,
		Height: cmd.Height,
		Codec:  codec.Normalize(cmd.Codec),

		NumFrames:    cmd.NumFrames,
		StartFrame:   cmd.StartFrame,
		EncodeWidth:  cmd.EncodeWidth,
		EncodeHeight: cmd.EncodeHeight,
		Chroma:       cmd.Chroma,
		Bpp:          cmd.BitDepth,

		RateControlMode:   cmd.RateControlMode,
		AverageBitrate:    cmd.AverageBitrate,
		GopFrameCount:     &cmd.GopFrameCount,
		IdrPeriod:         &cmd.IdrPeriod,
		ConsecutiveBCount: &cmd.ConsecutiveBFrameCount,

		QualityLevel: &cmd.QualityLevel,
		UsageHints:   cmd.UsageHints,
		ContentHints: cmd.ContentHints,
		TuningMode:   cmd.TuningMode,

		SpatialStrength:  cmd.SpatialAqStrength,
		TemporalStrength: cmd.TemporalAqStrength,

		EncoderConfig: cmd.EncoderConfig,

		OutputDir: cmd.OutputDir,
		AQDumpDir: cmd.AqDumpDir,

		SkipPSNR: cmd.SkipPsnr,
		SkipVMAF: cmd.SkipVmaf,

		Paths: resolver.Paths{Root: cmd.ProjectRoot, Variant: variant, OS: runtime.GOOS},
	}

	runner2 := bench.NewRunner(runner, analyzer, fs, log)
	results, err := runner2.Run(ctx, p)
	if err != nil {
		return err
	}

	report, err := bench.SaveReports(fs, results, p, time.Now())
	if err != nil {
		return err
	}
	fmt.Println(report)

	return nil
}

// SuiteCmd runs the decode/encode correctness catalogs.
type SuiteCmd struct {
	VideoDir string `required:"" help:"Directory containing test video files."`

	Decoder bool `help:"Run decoder tests only."`
	Encoder bool `help:"Run encoder tests only."`

	Validate bool   `short:"v" help:"Enable Vulkan validation layers."`
	Aq       bool   `help:"Include Adaptive Quantization (AQ) tests."`
	Codec    string `help:"Only test specific codec (h264, h265, av1, vp9)."`

	Local      bool   `help:"Run locally instead of on remote."`
	Remote     string `default:"127.0.0.1" help:"Remote hostname/IP."`
	RemoteUser string `help:"Remote username (default: current user)."`

	Quick     bool   `help:"Quick test mode (fewer frames)."`
	MaxFrames int    `help:"Maximum frames per test (default: 30, or 5 in quick mode)."`
	OutputDir string `default:"/tmp/vulkan_video_tests" help:"Output directory for test artifacts."`
	Report    string `help:"Write a JSON report to this path."`

	ProjectRoot string `default:"." help:"Path to the codec project root directory."`

	Verbose  bool   `help:"Show detailed output."`
	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// Run executes the suite command.
func (cmd *SuiteCmd) Run() error {
	log := buildLogger(cmd.LogLevel, cmd.Quiet)
	ctx, cancel := signalContext(log)
	defer cancel()

	cfg := config.Defaults()
	cfg.VideoDir = cmd.VideoDir
	cfg.OutputDir = cmd.OutputDir
	cfg.Validation = cmd.Validate
	cfg.Codec = cmd.Codec
	cfg.IncludeAQ = cmd.Aq
	cfg.ProjectRoot = cmd.ProjectRoot
	cfg.Local = cmd.Local
	cfg.Remote = cmd.Remote
	cfg.RemoteUser = cmd.RemoteUser
	cfg.MaxFrames = cmd.MaxFrames
	if cfg.MaxFrames == 0 {
		if cmd.Quick {
			cfg.MaxFrames = 5
		} else {
			cfg.MaxFrames = 30
		}
	}

	runner, targetOS := buildRunner(cmd.Local, cfg.SSHTarget())
	cfg.TargetOS = targetOS

	if !cmd.Local {
		log.Info(l10n.T("Checking remote connectivity..."))
		if err := runner.CheckConnectivity(ctx); err != nil {
			return fmt.Errorf("cannot connect to remote at %s: %w", runner.Target(), err)
		}
	}
	if !runner.DirExists(cmd.VideoDir) {
		return fmt.Errorf("video directory does not exist on %s: %s", runner.Target(), cmd.VideoDir)
	}
	if err := runner.MkdirAll(cfg.OutputDir); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	paths := cfg.Paths()
	envName, envValue := paths.LibraryEnv(os.Getenv("LD_LIBRARY_PATH"))

	driver := suite.NewDriver(runner, log, os.Stdout, terminalStyle(), cmd.Verbose)
	driver.EncoderPath = paths.DemoExecutable(resolver.Encoder)
	driver.DecoderPath = paths.DemoExecutable(resolver.Decoder)
	driver.LibraryEnvName = envName
	driver.LibraryEnvValue = envValue

	runDecoder := cmd.Decoder || (!cmd.Decoder && !cmd.Encoder)
	runEncoder := cmd.Encoder || (!cmd.Decoder && !cmd.Encoder)

	opts := cfg.ToCatalogOptions()
	total := suite.Summary{}
	start := time.Now()

	if runDecoder {
		s := driver.Run(ctx, catalog.DecodeGroups(opts), suite.ModeDecode)
		total = mergeSummaries(total, s)
	}
	if runEncoder {
		s := driver.Run(ctx, catalog.EncodeGroups(opts), suite.ModeEncode)
		total = mergeSummaries(total, s)
	}
	total.Duration = time.Since(start)

	if cmd.Report != "" {
		if err := writeSuiteReport(cmd.Report, total, cfg, runner.Target()); err != nil {
			return err
		}
		log.Info(l10n.F("Report saved to %s", cmd.Report))
	}

	if !total.Ok() {
		return fmt.Errorf("some tests failed")
	}
	return nil
}

// ProfilesCmd runs every discovered encoder JSON profile.
type ProfilesCmd struct {
	VideoDir   string `required:"" help:"Directory containing test video files."`
	ProfileDir string `help:"Profile directory (default: <project-root>/vk_video_encoder/json_config)."`

	Filter string `help:"Only run profiles whose name contains this substring."`
	Codec  string `help:"Only run profiles for a specific codec (h264, h265, av1)."`

	Validate         bool `short:"v" help:"Enable Vulkan validation layers."`
	MaxFrames        int  `default:"30" help:"Maximum frames to encode per profile."`
	MaxQualityPreset int  `default:"4" help:"Highest supported qualityPreset; profiles above it are skipped."`

	Input       string `help:"Input YUV file (default: discovered from video dir)."`
	InputWidth  int    `help:"Input width when --input is set."`
	InputHeight int    `help:"Input height when --input is set."`
	InputBpp    int    `default:"8" help:"Input bit depth when --input is set."`
	InputChroma string `default:"420" help:"Input chroma subsampling when --input is set."`

	Local      bool   `help:"Run locally instead of on remote."`
	Remote     string `default:"127.0.0.1" help:"Remote hostname/IP."`
	RemoteUser string `help:"Remote username (default: current user)."`

	OutputDir   string `default:"/tmp/vulkan_encoder_profile_tests" help:"Output directory for encoded bitstreams."`
	ProjectRoot string `default:"." help:"Path to the codec project root directory."`

	Verbose  bool   `help:"Show detailed output."`
	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// Run executes the profiles command.
func (cmd *ProfilesCmd) Run() error {
	log := buildLogger(cmd.LogLevel, cmd.Quiet)
	ctx, cancel := signalContext(log)
	defer cancel()

	cfg := config.Defaults()
	cfg.ProjectRoot = cmd.ProjectRoot
	cfg.Local = cmd.Local
	cfg.Remote = cmd.Remote
	cfg.RemoteUser = cmd.RemoteUser

	runner, targetOS := buildRunner(cmd.Local, cfg.SSHTarget())
	cfg.TargetOS = targetOS

	if !cmd.Local {
		if err := runner.CheckConnectivity(ctx); err != nil {
			return fmt.Errorf("cannot connect to remote at %s: %w", runner.Target(), err)
		}
	}

	profileDir := cmd.ProfileDir
	if profileDir == "" {
		profileDir = filepath.Join(cmd.ProjectRoot, "vk_video_encoder", "json_config")
	}
	// Profiles live with the harness; inputs may live on the remote.
	files, err := resolver.DiscoverProfileFiles(profileDir)
	if err != nil {
		return fmt.Errorf("discover profiles: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no JSON profiles found in %s", profileDir)
	}

	paths := cfg.Paths()
	if err := runner.MkdirAll(cmd.OutputDir); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	envName, envValue := paths.LibraryEnv(os.Getenv("LD_LIBRARY_PATH"))
	driver := suite.NewDriver(runner, log, os.Stdout, terminalStyle(), cmd.Verbose)
	driver.EncoderPath = paths.DemoExecutable(resolver.Encoder)
	driver.LibraryEnvName = envName
	driver.LibraryEnvValue = envValue

	opts := suite.ProfileOptions{
		VideoDir:         cmd.VideoDir,
		OutputDir:        cmd.OutputDir,
		FilterCodec:      codec.Normalize(cmd.Codec),
		FilterName:       cmd.Filter,
		MaxFrames:        cmd.MaxFrames,
		Validation:       cmd.Validate,
		MaxQualityPreset: cmd.MaxQualityPreset,
	}
	if cmd.Input != "" {
		opts.InputPinned = true
		opts.Input = resolver.RawFrameInfo{
			Path:   cmd.Input,
			Width:  cmd.InputWidth,
			Height: cmd.InputHeight,
			Bpp:    cmd.InputBpp,
			Chroma: cmd.InputChroma,
		}
	}

	summary := driver.RunProfiles(ctx, files, opts)
	if !summary.Ok() {
		return fmt.Errorf("some profile tests failed")
	}
	return nil
}

// RoundtripCmd decodes previously produced bitstreams.
type RoundtripCmd struct {
	Directory string `arg:"" help:"Directory containing encoded bitstreams (.264, .265, .ivf)."`

	Decoder string `help:"Path to the decoder test binary (default: resolved from project root)."`
	Filter  string `help:"Only decode files whose name contains this substring."`
	Timeout int    `default:"60" help:"Timeout per decode in seconds."`

	ProjectRoot string `default:"." help:"Path to the codec project root directory."`
	BuildType   string `default:"debug" enum:"debug,release" help:"Build tree to use."`

	Verbose  bool   `help:"Show decode commands."`
	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// Run executes the roundtrip command.
func (cmd *RoundtripCmd) Run() error {
	log := buildLogger(cmd.LogLevel, cmd.Quiet)
	ctx, cancel := signalContext(log)
	defer cancel()

	variant := resolver.Debug
	if cmd.BuildType == "release" {
		variant = resolver.Release
	}
	paths := resolver.Paths{Root: cmd.ProjectRoot, Variant: variant, OS: runtime.GOOS}

	decoder := cmd.Decoder
	if decoder == "" {
		decoder = paths.TestExecutable(resolver.Decoder)
	}

	runner := localrunner.New()
	if !runner.FileExists(decoder) {
		return fmt.Errorf("decoder not found: %s", decoder)
	}

	bitstreams, err := resolver.DiscoverBitstreams(cmd.Directory, cmd.Filter)
	if err != nil {
		return fmt.Errorf("discover bitstreams: %w", err)
	}
	if len(bitstreams) == 0 {
		log.Warn(l10n.F("No bitstream files found in %s", cmd.Directory))
		return nil
	}

	envName, envValue := paths.LibraryEnv(os.Getenv("LD_LIBRARY_PATH"))
	driver := suite.NewDriver(runner, log, os.Stdout, terminalStyle(), cmd.Verbose)
	driver.DecoderPath = decoder
	driver.LibraryEnvName = envName
	driver.LibraryEnvValue = envValue

	log.Info(l10n.F("Decoding %d bitstreams from %s", len(bitstreams), cmd.Directory))
	summary := driver.RunRoundtrip(ctx, bitstreams, suite.RoundtripOptions{
		Timeout: time.Duration(cmd.Timeout) * time.Second,
		DetectCodec: func(path string) codec.Codec {
			c, err := containerprobe.DetectFromFile(path)
			if err != nil {
				log.Debug(l10n.F("Codec probe failed for %s: %s", path, err.Error()))
				return codec.Unknown
			}
			return c
		},
	})

	fmt.Printf("\nResults: %d passed, %d failed / %d total\n",
		summary.Passed, summary.Failed+summary.Errors, len(summary.Results))

	if !summary.Ok() {
		return fmt.Errorf("some decodes failed")
	}
	return nil
}

// VersionCmd shows version information.
type VersionCmd struct{}

// Run executes the version command.
func (cmd *VersionCmd) Run() error {
	fmt.Println(l10n.F("vkbench version %s", version))
	return nil
}

func mergeSummaries(a, b suite.Summary) suite.Summary {
	a.Results = append(a.Results, b.Results...)
	a.Passed += b.Passed
	a.Failed += b.Failed
	a.Skipped += b.Skipped
	a.Errors += b.Errors
	a.Duration += b.Duration
	return a
}

func writeSuiteReport(path string, s suite.Summary, cfg config.Config, target string) error {
	report := suite.BuildReport(s, suite.ReportConfig{
		Target:     target,
		VideoDir:   cfg.VideoDir,
		MaxFrames:  cfg.MaxFrames,
		Validation: cfg.Validation,
		Codec:      cfg.Codec,
	}, time.Now())
	data, err := report.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
