// Package catalog enumerates the test cases the suite driver runs.
//
// Cases reference well-known media files under a caller-supplied video
// directory. Enumeration is declarative: whether an input actually exists
// on the execution target is checked at run time, and absent inputs turn
// into skipped cases rather than failures.
package catalog

import (
	"fmt"

	"github.com/user/vkvideobench/pkg/codec"
	"github.com/user/vkvideobench/pkg/testcase"
)

// Group is one named set of related cases, rendered as a report section.
type Group struct {
	Title string
	Cases []testcase.Case
}

// Options scope what the catalog generates.
type Options struct {
	// VideoDir holds the test media, with CTS clips under cts/ and
	// cts/video/.
	VideoDir string
	// OutputDir receives per-case artifacts.
	OutputDir string
	// FilterCodec, when set, keeps only cases for one codec.
	FilterCodec codec.Codec
	// MaxFrames bounds each case's frame count.
	MaxFrames int
	// Validation enables the Vulkan validation layers per case.
	Validation bool
	// IncludeAQ adds the adaptive quantization sweep to the encode set.
	IncludeAQ bool
	// PathSep joins VideoDir to filenames; it follows the execution
	// target's OS, not the harness's.
	PathSep string
}

func (o Options) sep() string {
	if o.PathSep == "" {
		return "/"
	}
	return o.PathSep
}

func (o Options) video(elem ...string) string {
	p := o.VideoDir
	for _, e := range elem {
		p += o.sep() + e
	}
	return p
}

func (o Options) output(name string) string {
	return o.OutputDir + o.sep() + name
}

func (o Options) wants(c codec.Codec) bool {
	return o.FilterCodec == codec.Unknown || o.FilterCodec == c
}

// DecodeGroups returns the decode-correctness catalog grouped by codec.
func DecodeGroups(o Options) []Group {
	type entry struct {
		name  string
		codec codec.Codec
		input string
	}

	h264 := []entry{
		{"H264_clip_a", codec.H264, o.video("cts", "clip-a.h264")},
		{"H264_clip_b", codec.H264, o.video("cts", "clip-b.h264")},
		{"H264_clip_c", codec.H264, o.video("cts", "clip-c.h264")},
		{"H264_4k_ibp", codec.H264, o.video("cts", "4k_26_ibp_main.h264")},
		{"H264_field", codec.H264, o.video("cts", "avc-720x480-field.h264")},
		{"H264_paff", codec.H264, o.video("cts", "avc-1440x1080-paff.h264")},
		{"H264_akiyo", codec.H264, o.video("akiyo_176x144_30p_1_0.264")},
		{"H264_jellyfish_4k", codec.H264, o.video("jellyfish-250-mbps-4k-uhd-h264.h264")},
		{"H264_jellyfish_mkv", codec.H264, o.video("jellyfish-100-mbps-hd-h264.mkv")},
		{"H264_golden_flower", codec.H264, o.video("golden_flower_h264_720_30p_7M.mp4")},
	}
	h265 := []entry{
		{"HEVC_clip_d", codec.H265, o.video("cts", "clip-d.h265")},
		{"HEVC_slist_a", codec.H265, o.video("cts", "video", "hevc-itu-slist-a.h265")},
		{"HEVC_slist_b", codec.H265, o.video("cts", "video", "hevc-itu-slist-b.h265")},
		{"HEVC_jellyfish_gob", codec.H265, o.video("cts", "jellyfish-250-mbps-4k-uhd-GOB-IPB13.h265")},
		{"HEVC_jellyfish_hd", codec.H265, o.video("jellyfish-110-mbps-hd-hevc.h265")},
		{"HEVC_jellyfish_4k_10bit", codec.H265, o.video("jellyfish-400-mbps-4k-uhd-hevc-10bit.h265")},
		{"HEVC_jellyfish_mkv", codec.H265, o.video("jellyfish-100-mbps-hd-hevc.mkv")},
	}
	av1 := []entry{
		{"AV1_basic_8", codec.AV1, o.video("cts", "basic-8.ivf")},
		{"AV1_cdef_8", codec.AV1, o.video("cts", "cdef-8.ivf")},
		{"AV1_fkf_8", codec.AV1, o.video("cts", "forward-key-frame-8.ivf")},
		{"AV1_gm_8", codec.AV1, o.video("cts", "global-motion-8.ivf")},
		{"AV1_lf_8", codec.AV1, o.video("cts", "loop-filter-8.ivf")},
		{"AV1_basic_10", codec.AV1, o.video("cts", "basic-10.ivf")},
		{"AV1_cdef_10", codec.AV1, o.video("cts", "cdef-10.ivf")},
		{"AV1_allintra", codec.AV1, o.video("cts", "av1-1-b8-02-allintra.ivf")},
		{"AV1_filmgrain", codec.AV1, o.video("cts", "av1-1-b8-23-film_grain-50.ivf")},
		{"AV1_176x144_basic_8", codec.AV1, o.video("cts", "video", "av1-176x144-main-basic-8.ivf")},
	}
	vp9 := []entry{
		{"VP9_big_buck_bunny", codec.VP9, o.video("Big_Buck_Bunny_1080_10s_30MB.webm")},
	}

	build := func(title string, entries []entry) Group {
		g := Group{Title: title}
		for _, e := range entries {
			if !o.wants(e.codec) {
				continue
			}
			g.Cases = append(g.Cases, testcase.Case{
				Name:       e.name,
				Codec:      e.codec,
				Input:      e.input,
				Output:     o.output(e.name + ".yuv"),
				NumFrames:  o.MaxFrames,
				NoPresent:  true,
				Validation: o.Validation,
			})
		}
		return g
	}

	var groups []Group
	for _, g := range []Group{
		build("H.264/AVC Decoder Tests", h264),
		build("H.265/HEVC Decoder Tests", h265),
		build("AV1 Decoder Tests", av1),
		build("VP9 Decoder Tests", vp9),
	} {
		if len(g.Cases) > 0 {
			groups = append(groups, g)
		}
	}
	return groups
}

// EncodeGroups returns the encode-correctness catalog grouped by codec,
// plus the AQ sweep when enabled.
func EncodeGroups(o Options) []Group {
	type entry struct {
		name  string
		input string
		w, h  int
		bpp   int
		extra []string
	}

	rawInput := func(w, h, bpp int) string {
		return o.video("cts", "video", fmt.Sprintf("%dx%d_420_%dle.yuv", w, h, bpp))
	}

	h264 := []entry{
		{"H264_176x144_8bit", rawInput(176, 144, 8), 176, 144, 8, nil},
		{"H264_352x288_8bit", rawInput(352, 288, 8), 352, 288, 8, nil},
		{"H264_720x480_8bit", rawInput(720, 480, 8), 720, 480, 8, nil},
		{"H264_1920x1080_8bit", rawInput(1920, 1080, 8), 1920, 1080, 8, nil},
		{"H264_gop_8", rawInput(352, 288, 8), 352, 288, 8,
			[]string{"--gopFrameCount", "8", "--consecutiveBFrameCount", "0"}},
		{"H264_gop_16_b3", rawInput(352, 288, 8), 352, 288, 8,
			[]string{"--gopFrameCount", "16", "--consecutiveBFrameCount", "3"}},
		{"H264_rc_cbr", rawInput(720, 480, 8), 720, 480, 8,
			[]string{"--rateControlMode", "cbr", "--averageBitrate", "2000000"}},
	}
	h265 := []entry{
		{"HEVC_176x144_8bit", rawInput(176, 144, 8), 176, 144, 8, nil},
		{"HEVC_352x288_8bit", rawInput(352, 288, 8), 352, 288, 8, nil},
		{"HEVC_720x480_8bit", rawInput(720, 480, 8), 720, 480, 8, nil},
		{"HEVC_1920x1080_8bit", rawInput(1920, 1080, 8), 1920, 1080, 8, nil},
		{"HEVC_352x288_10bit", rawInput(352, 288, 10), 352, 288, 10, nil},
		{"HEVC_720x480_10bit", rawInput(720, 480, 10), 720, 480, 10, nil},
		{"HEVC_gop_8", rawInput(352, 288, 8), 352, 288, 8,
			[]string{"--gopFrameCount", "8", "--consecutiveBFrameCount", "0"}},
		{"HEVC_rc_cbr", rawInput(720, 480, 8), 720, 480, 8,
			[]string{"--rateControlMode", "cbr", "--averageBitrate", "2000000"}},
	}
	av1 := []entry{
		{"AV1_176x144_8bit", rawInput(176, 144, 8), 176, 144, 8, nil},
		{"AV1_352x288_8bit", rawInput(352, 288, 8), 352, 288, 8, nil},
		{"AV1_720x480_8bit", rawInput(720, 480, 8), 720, 480, 8, nil},
		{"AV1_1920x1080_8bit", rawInput(1920, 1080, 8), 1920, 1080, 8, nil},
		{"AV1_352x288_10bit", rawInput(352, 288, 10), 352, 288, 10, nil},
		{"AV1_gop_8", rawInput(352, 288, 8), 352, 288, 8,
			[]string{"--gopFrameCount", "8", "--consecutiveBFrameCount", "0"}},
	}

	build := func(title string, c codec.Codec, entries []entry) Group {
		g := Group{Title: title}
		if !o.wants(c) {
			return g
		}
		for _, e := range entries {
			g.Cases = append(g.Cases, testcase.Case{
				Name:       e.name,
				Codec:      c,
				Input:      e.input,
				Output:     o.output(e.name + c.Extension()),
				Width:      e.w,
				Height:     e.h,
				Bpp:        e.bpp,
				Chroma:     "420",
				NumFrames:  o.MaxFrames,
				Validation: o.Validation,
				Extra:      e.extra,
			})
		}
		return g
	}

	var groups []Group
	for _, g := range []Group{
		build("H.264/AVC Encoder Tests", codec.H264, h264),
		build("H.265/HEVC Encoder Tests", codec.H265, h265),
		build("AV1 Encoder Tests", codec.AV1, av1),
	} {
		if len(g.Cases) > 0 {
			groups = append(groups, g)
		}
	}

	if o.IncludeAQ {
		if g := aqSweep(o); len(g.Cases) > 0 {
			groups = append(groups, g)
		}
	}
	return groups
}

// aqSweep enumerates the adaptive quantization strength sweep per
// encode-capable codec: each knob alone at default, middle, and maximum
// strength, then both together.
func aqSweep(o Options) Group {
	configs := []struct {
		desc     string
		spatial  float64
		temporal float64
	}{
		{"spatial_default", 0.0, testcase.AQDisabled},
		{"spatial_0.5", 0.5, testcase.AQDisabled},
		{"spatial_max", 1.0, testcase.AQDisabled},
		{"temporal_default", testcase.AQDisabled, 0.0},
		{"temporal_0.5", testcase.AQDisabled, 0.5},
		{"temporal_max", testcase.AQDisabled, 1.0},
		{"combined_default", 0.0, 0.0},
		{"combined_medium", 0.5, 0.5},
		{"combined_max", 1.0, 1.0},
	}

	input := o.video("cts", "video", "720x480_420_8le.yuv")
	w, h := 720, 480

	g := Group{Title: "Adaptive Quantization (AQ) Tests"}
	for _, c := range []codec.Codec{codec.H264, codec.H265, codec.AV1} {
		if !o.wants(c) {
			continue
		}
		for _, cfg := range configs {
			name := fmt.Sprintf("AQ_%s_%s", c, cfg.desc)
			g.Cases = append(g.Cases, testcase.Case{
				Name:       name,
				Codec:      c,
				Input:      input,
				Output:     o.output(name + c.Extension()),
				Width:      w,
				Height:     h,
				Bpp:        8,
				Chroma:     "420",
				NumFrames:  o.MaxFrames,
				Validation: o.Validation,
				AQAware:    true,
				SpatialAQ:  cfg.spatial,
				TemporalAQ: cfg.temporal,
			})
		}
	}
	return g
}
