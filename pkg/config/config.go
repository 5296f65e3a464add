// Package config provides configuration loading and management.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/user/vkvideobench/pkg/bench"
	"github.com/user/vkvideobench/pkg/catalog"
	"github.com/user/vkvideobench/pkg/codec"
	"github.com/user/vkvideobench/pkg/resolver"
)

// Config represents the full configuration for vkbench.
type Config struct {
	// Project
	ProjectRoot  string `yaml:"project_root"`
	BuildVariant string `yaml:"build_variant"`
	TargetOS     string `yaml:"target_os"`

	// Execution target
	Remote     string `yaml:"remote"`
	RemoteUser string `yaml:"remote_user"`
	Local      bool   `yaml:"local"`

	// Inputs and outputs
	VideoDir   string `yaml:"video_dir"`
	OutputDir  string `yaml:"output_dir"`
	ProfileDir string `yaml:"profile_dir"`

	// Suite
	MaxFrames        int    `yaml:"max_frames"`
	Validation       bool   `yaml:"validation"`
	Codec            string `yaml:"codec"`
	IncludeAQ        bool   `yaml:"include_aq"`
	MaxQualityPreset int    `yaml:"max_quality_preset"`

	// Benchmark
	Bench BenchConfig `yaml:"bench"`

	// Roundtrip
	RoundtripTimeoutSec int `yaml:"roundtrip_timeout_sec"`

	// Tooling
	FFmpegPath string `yaml:"ffmpeg_path"`
	LogLevel   string `yaml:"log_level"`
	Verbose    bool   `yaml:"verbose"`
}

// BenchConfig carries the encoder settings shared by all benchmark
// configurations.
type BenchConfig struct {
	RateControlMode  string  `yaml:"rate_control_mode"`
	AverageBitrate   int     `yaml:"average_bitrate"`
	GopFrameCount    int     `yaml:"gop_frame_count"`
	IdrPeriod        int     `yaml:"idr_period"`
	BFrameCount      int     `yaml:"b_frame_count"`
	QualityLevel     int     `yaml:"quality_level"`
	UsageHints       string  `yaml:"usage_hints"`
	ContentHints     string  `yaml:"content_hints"`
	TuningMode       string  `yaml:"tuning_mode"`
	SpatialStrength  float64 `yaml:"spatial_aq_strength"`
	TemporalStrength float64 `yaml:"temporal_aq_strength"`
	SkipPSNR         bool    `yaml:"skip_psnr"`
	SkipVMAF         bool    `yaml:"skip_vmaf"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		BuildVariant: "release",

		Remote: "127.0.0.1",
		Local:  true,

		MaxFrames:        30,
		MaxQualityPreset: 4,

		Bench: BenchConfig{
			RateControlMode: "vbr",
			GopFrameCount:   16,
			IdrPeriod:       4294967295,
			BFrameCount:     3,
			QualityLevel:    4,
			UsageHints:      "transcoding",
		},

		RoundtripTimeoutSec: 60,
		LogLevel:            "info",
	}
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Paths returns the resolver for the configured project tree.
func (c Config) Paths() resolver.Paths {
	variant := resolver.Release
	if c.BuildVariant == "debug" {
		variant = resolver.Debug
	}
	return resolver.Paths{
		Root:    c.ProjectRoot,
		Variant: variant,
		OS:      c.TargetOS,
	}
}

// ToCatalogOptions converts Config to catalog.Options.
func (c Config) ToCatalogOptions() catalog.Options {
	sep := "/"
	if c.TargetOS == "windows" {
		sep = "\\"
	}
	return catalog.Options{
		VideoDir:    c.VideoDir,
		OutputDir:   c.OutputDir,
		FilterCodec: codec.Normalize(c.Codec),
		MaxFrames:   c.MaxFrames,
		Validation:  c.Validation,
		IncludeAQ:   c.IncludeAQ,
		PathSep:     sep,
	}
}

// ToBenchParams converts Config plus the per-run inputs to bench.Params.
func (c Config) ToBenchParams(input string, width, height int, cdc codec.Codec) bench.Params {
	p := bench.Params{
		Input:  input,
		Width:  width,
		Height: height,
		Codec:  cdc,

		RateControlMode:  c.Bench.RateControlMode,
		AverageBitrate:   c.Bench.AverageBitrate,
		UsageHints:       c.Bench.UsageHints,
		ContentHints:     c.Bench.ContentHints,
		TuningMode:       c.Bench.TuningMode,
		SpatialStrength:  c.Bench.SpatialStrength,
		TemporalStrength: c.Bench.TemporalStrength,
		SkipPSNR:         c.Bench.SkipPSNR,
		SkipVMAF:         c.Bench.SkipVMAF,

		OutputDir: c.OutputDir,
		Paths:     c.Paths(),
	}
	if c.Bench.GopFrameCount > 0 {
		v := c.Bench.GopFrameCount
		p.GopFrameCount = &v
	}
	if c.Bench.IdrPeriod > 0 {
		v := c.Bench.IdrPeriod
		p.IdrPeriod = &v
	}
	if c.Bench.BFrameCount >= 0 {
		v := c.Bench.BFrameCount
		p.ConsecutiveBCount = &v
	}
	if c.Bench.QualityLevel >= 0 {
		v := c.Bench.QualityLevel
		p.QualityLevel = &v
	}
	return p
}

// RoundtripTimeout returns the per-decode timeout for round-trip runs.
func (c Config) RoundtripTimeout() time.Duration {
	return time.Duration(c.RoundtripTimeoutSec) * time.Second
}

// SSHTarget returns the user@host string for remote execution.
func (c Config) SSHTarget() string {
	user := c.RemoteUser
	if user == "" {
		user = os.Getenv("USER")
		if user == "" {
			user = os.Getenv("USERNAME")
		}
		if user == "" {
			user = "root"
		}
	}
	return user + "@" + c.Remote
}
