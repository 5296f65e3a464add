// Package testcase describes single codec invocations and builds their
// argument vectors.
package testcase

import (
	"fmt"
	"strconv"

	"github.com/user/vkvideobench/pkg/codec"
)

// AQDisabled is the sentinel strength passed to the encoder to engage the
// AQ subsystem with the knob inert. The tool distinguishes "flag absent"
// from "flag present but disabled", so AQ-aware cases always emit the
// flag.
const AQDisabled = -2.0

// IsAQDisabled reports whether a strength value means the knob is off.
// Any value below -1.0 disables; the band between -2.0 and -1.0 is
// reserved and treated the same as the sentinel.
func IsAQDisabled(v float64) bool {
	return v < -1.0
}

// ValidateAQStrength rejects strengths above the tool's upper bound.
// Values at or below the bound are accepted, including the disabling
// sentinel range.
func ValidateAQStrength(name string, v float64) error {
	if v > 1.0 {
		return fmt.Errorf("%s strength %.2f out of range: maximum is 1.0", name, v)
	}
	return nil
}

// Case is an immutable description of one codec invocation. Optional
// fields use pointers so an unset field omits its flag entirely and the
// tool's own default applies.
type Case struct {
	Name        string
	Description string
	Codec       codec.Codec

	Input  string
	Output string

	Width        int
	Height       int
	EncodeWidth  int
	EncodeHeight int

	NumFrames  int
	StartFrame *int

	Chroma string
	Bpp    int

	RateControlMode string
	AverageBitrate  int

	GopFrameCount     *int
	IdrPeriod         *int
	ConsecutiveBCount *int

	QualityLevel *int
	UsageHints   string
	ContentHints string
	TuningMode   string

	// AQAware causes the AQ strength flags to be emitted even when both
	// knobs are disabled.
	AQAware    bool
	SpatialAQ  float64
	TemporalAQ float64
	AQDumpDir  string

	EncoderConfig string

	Validation bool
	NoPresent  bool

	Extra []string
}

// Validate checks the case's AQ strengths at construction time so an out
// of range value is rejected before anything runs.
func (c Case) Validate() error {
	if err := ValidateAQStrength("spatial AQ", c.SpatialAQ); err != nil {
		return err
	}
	if err := ValidateAQStrength("temporal AQ", c.TemporalAQ); err != nil {
		return err
	}
	return nil
}

// EncodeArgs builds the encoder argument vector. Pure and deterministic:
// every set field appends its flag, unset fields are omitted.
func (c Case) EncodeArgs(executable string) []string {
	args := []string{executable,
		"-i", c.Input,
		"-o", c.Output,
		"-c", c.Codec.EncoderArg(),
	}
	if c.Width > 0 {
		args = append(args, "--inputWidth", itoa(c.Width))
	}
	if c.Height > 0 {
		args = append(args, "--inputHeight", itoa(c.Height))
	}
	if c.EncodeWidth > 0 {
		args = append(args, "--encodeWidth", itoa(c.EncodeWidth))
	}
	if c.EncodeHeight > 0 {
		args = append(args, "--encodeHeight", itoa(c.EncodeHeight))
	}
	if c.NumFrames > 0 {
		args = append(args, "--numFrames", itoa(c.NumFrames))
	}
	if c.StartFrame != nil {
		args = append(args, "--startFrame", itoa(*c.StartFrame))
	}
	if c.Chroma != "" {
		args = append(args, "--inputChromaSubsampling", c.Chroma)
	}
	if c.Bpp > 0 {
		args = append(args, "--inputBpp", itoa(c.Bpp))
	}
	if c.RateControlMode != "" {
		args = append(args, "--rateControlMode", c.RateControlMode)
	}
	if c.AverageBitrate > 0 {
		args = append(args, "--averageBitrate", itoa(c.AverageBitrate))
	}
	if c.GopFrameCount != nil {
		args = append(args, "--gopFrameCount", itoa(*c.GopFrameCount))
	}
	if c.IdrPeriod != nil {
		args = append(args, "--idrPeriod", itoa(*c.IdrPeriod))
	}
	if c.ConsecutiveBCount != nil {
		args = append(args, "--consecutiveBFrameCount", itoa(*c.ConsecutiveBCount))
	}
	if c.QualityLevel != nil {
		args = append(args, "--qualityLevel", itoa(*c.QualityLevel))
	}
	if c.UsageHints != "" {
		args = append(args, "--usageHints", c.UsageHints)
	}
	if c.ContentHints != "" {
		args = append(args, "--contentHints", c.ContentHints)
	}
	if c.TuningMode != "" {
		args = append(args, "--tuningMode", c.TuningMode)
	}
	if c.AQAware {
		args = append(args,
			"--spatialAQStrength", ftoa(c.SpatialAQ),
			"--temporalAQStrength", ftoa(c.TemporalAQ),
		)
		if c.AQDumpDir != "" {
			args = append(args, "--aqDumpDir", c.AQDumpDir)
		}
	}
	if c.EncoderConfig != "" {
		args = append(args, "--encoderConfig", c.EncoderConfig)
	}
	if c.NoPresent {
		args = append(args, "--noPresent")
	}
	args = append(args, c.Extra...)
	return args
}

// DecodeArgs builds the decoder argument vector. The decoder overloads -c
// as a frame count, unlike the encoder where it selects the codec.
func (c Case) DecodeArgs(executable string) []string {
	args := []string{executable, "-i", c.Input}
	if c.NoPresent {
		args = append(args, "--noPresent")
	}
	if c.Codec != codec.Unknown {
		args = append(args, "--codec", c.Codec.DecoderArg())
	}
	if c.NumFrames > 0 {
		args = append(args, "-c", itoa(c.NumFrames))
	}
	if c.Output != "" {
		args = append(args, "-o", c.Output)
	}
	if c.Validation {
		args = append(args, "-v")
	}
	args = append(args, c.Extra...)
	return args
}

// ValidationEnv returns the Vulkan validation layer settings enabled when
// the case requests validation.
func (c Case) ValidationEnv() map[string]string {
	if !c.Validation {
		return nil
	}
	return map[string]string{
		"VK_LOADER_LAYERS_ENABLE":     "*validation",
		"VK_VALIDATION_VALIDATE_SYNC": "true",
	}
}

func itoa(v int) string {
	return strconv.Itoa(v)
}

// ftoa renders a strength the way the tool expects: a plain decimal with
// no exponent.
func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
