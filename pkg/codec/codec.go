// Package codec defines the closed set of video codecs the harness drives
// and the naming conventions around them.
package codec

import "strings"

// Codec is the canonical name of a video codec.
type Codec string

const (
	H264    Codec = "h264"
	H265    Codec = "h265"
	AV1     Codec = "av1"
	VP9     Codec = "vp9"
	Unknown Codec = ""
)

// Normalize maps the aliases accepted on the command line and in profile
// JSON to a canonical codec. Unrecognized names map to Unknown.
func Normalize(name string) Codec {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "h264", "264", "avc":
		return H264
	case "h265", "265", "hevc":
		return H265
	case "av1":
		return AV1
	case "vp9":
		return VP9
	default:
		return Unknown
	}
}

// EncoderArg returns the token the encoder's -c flag expects.
func (c Codec) EncoderArg() string {
	switch c {
	case H264:
		return "avc"
	case H265:
		return "hevc"
	default:
		return string(c)
	}
}

// DecoderArg returns the token the decoder's --codec flag expects.
func (c Codec) DecoderArg() string {
	return string(c)
}

// Extension returns the bitstream file extension produced when encoding
// with this codec. Codecs without a dedicated container format fall back
// to .bin.
func (c Codec) Extension() string {
	switch c {
	case H264:
		return ".264"
	case H265:
		return ".265"
	case AV1:
		return ".ivf"
	default:
		return ".bin"
	}
}

// EncodeCapable reports whether the encoder under test supports this codec.
// VP9 is decode-only.
func (c Codec) EncodeCapable() bool {
	switch c {
	case H264, H265, AV1:
		return true
	default:
		return false
	}
}

// Display returns an upper-case name for banners and reports.
func (c Codec) Display() string {
	return strings.ToUpper(string(c))
}

// FromExtension maps a bitstream file extension back to its codec.
func FromExtension(ext string) Codec {
	switch strings.ToLower(ext) {
	case ".264", ".h264":
		return H264
	case ".265", ".h265", ".hevc":
		return H265
	case ".ivf":
		return AV1
	default:
		return Unknown
	}
}
