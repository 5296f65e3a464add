package ports

import "context"

// PSNR holds the six PSNR components reported by the external comparison
// tool for one distorted/reference pair.
type PSNR struct {
	Y       float64
	U       float64
	V       float64
	Average float64
	Min     float64
	Max     float64
}

// QualityMetrics is the result of measuring one encoded bitstream against a
// raw reference. The command strings used at each stage are retained so
// reports can reproduce every measurement.
type QualityMetrics struct {
	PSNR PSNR
	VMAF float64

	DecodeCommand string
	PSNRCommand   string
	VMAFCommand   string
}

// MeasureOptions tunes a quality measurement.
type MeasureOptions struct {
	// SkipPSNR disables the PSNR pass.
	SkipPSNR bool

	// SkipVMAF disables the VMAF pass, which is by far the slowest stage.
	SkipVMAF bool

	// WorkDir is where the intermediate decoded raw file is written.
	WorkDir string
}

// QualityAnalyzer measures objective quality of an encoded bitstream against
// a raw reference at the given geometry. Parse failures and tool failures
// degrade to zero-valued metrics; the returned error is non-nil only when
// the bitstream could not be decoded at all.
type QualityAnalyzer interface {
	Measure(ctx context.Context, encoded, reference string, width, height int, opts MeasureOptions) (QualityMetrics, error)
}
