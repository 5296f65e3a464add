// Package bench runs the adaptive quantization quality benchmark: a fixed
// matrix of encoder configurations against one reference input, with
// PSNR/VMAF measurement and comparative reporting.
package bench

import (
	"github.com/user/vkvideobench/pkg/codec"
	"github.com/user/vkvideobench/pkg/resolver"
	"github.com/user/vkvideobench/pkg/testcase"
)

// BaselineName identifies the configuration every delta is computed
// against.
const BaselineName = "no_aq"

// Configuration is one cell of the benchmark matrix.
type Configuration struct {
	Name        string
	Description string
	SpatialAQ   float64
	TemporalAQ  float64
}

// Matrix returns the four standard configurations in run order: baseline,
// each knob alone, then both. Custom strengths apply to the engaged knobs
// only.
func Matrix(spatial, temporal float64) []Configuration {
	return []Configuration{
		{"no_aq", "No AQ (Baseline)", testcase.AQDisabled, testcase.AQDisabled},
		{"spatial_only", "Spatial AQ Only", spatial, testcase.AQDisabled},
		{"temporal_only", "Temporal AQ Only", testcase.AQDisabled, temporal},
		{"combined", "Combined (Spatial + Temporal)", spatial, temporal},
	}
}

// Params describes one benchmark run.
type Params struct {
	Input  string
	Width  int
	Height int
	Codec  codec.Codec

	NumFrames    int
	StartFrame   int
	EncodeWidth  int
	EncodeHeight int
	Chroma       string
	Bpp          int

	RateControlMode   string
	AverageBitrate    int
	GopFrameCount     *int
	IdrPeriod         *int
	ConsecutiveBCount *int

	QualityLevel *int
	UsageHints   string
	ContentHints string
	TuningMode   string

	SpatialStrength  float64
	TemporalStrength float64

	EncoderConfig string

	OutputDir string
	AQDumpDir string

	SkipPSNR bool
	SkipVMAF bool

	Paths resolver.Paths
}

// ReferenceFrames returns the frame count extracted for comparison.
func (p Params) ReferenceFrames() int {
	if p.NumFrames > 0 {
		return p.NumFrames
	}
	return 64
}
