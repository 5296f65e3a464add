package testcase

import (
	"strings"
	"testing"

	"github.com/user/vkvideobench/pkg/codec"
)

func TestIsAQDisabled(t *testing.T) {
	cases := []struct {
		v    float64
		want bool
	}{
		{AQDisabled, true},
		{-2.0, true},
		{-1.5, true},
		{-1.0, false},
		{0.0, false},
		{0.5, false},
		{1.0, false},
	}
	for _, tc := range cases {
		if got := IsAQDisabled(tc.v); got != tc.want {
			t.Errorf("IsAQDisabled(%v) = %v, want %v", tc.v, got, tc.want)
		}
	}
}

func TestValidateAQStrength(t *testing.T) {
	if err := ValidateAQStrength("spatial AQ", 1.5); err == nil {
		t.Error("expected 1.5 to be rejected")
	}
	for _, v := range []float64{1.0, 0.0, -0.5, -1.0, AQDisabled} {
		if err := ValidateAQStrength("spatial AQ", v); err != nil {
			t.Errorf("expected %v to be accepted, got %v", v, err)
		}
	}
}

func TestCaseValidate(t *testing.T) {
	c := Case{SpatialAQ: 0.5, TemporalAQ: 1.2}
	err := c.Validate()
	if err == nil {
		t.Fatal("expected out-of-range temporal strength to fail validation")
	}
	if !strings.Contains(err.Error(), "temporal") {
		t.Errorf("error must name the offending knob: %v", err)
	}
}

func TestEncodeArgsMinimal(t *testing.T) {
	c := Case{
		Codec:  codec.H264,
		Input:  "/videos/720x480_420_8le.yuv",
		Output: "/tmp/out.264",
	}
	args := c.EncodeArgs("/bin/enc")

	want := []string{"/bin/enc", "-i", "/videos/720x480_420_8le.yuv", "-o", "/tmp/out.264", "-c", "avc"}
	if len(args) != len(want) {
		t.Fatalf("unset fields must omit their flags: %v", args)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("args[%d] = %q, want %q", i, args[i], want[i])
		}
	}
}

func TestEncodeArgsOptionalFields(t *testing.T) {
	gop := 16
	c := Case{
		Codec:         codec.H265,
		Input:         "in.yuv",
		Output:        "out.265",
		Width:         720,
		Height:        480,
		NumFrames:     30,
		GopFrameCount: &gop,
	}
	joined := strings.Join(c.EncodeArgs("enc"), " ")

	for _, flag := range []string{"-c hevc", "--inputWidth 720", "--inputHeight 480", "--numFrames 30", "--gopFrameCount 16"} {
		if !strings.Contains(joined, flag) {
			t.Errorf("expected %q in %q", flag, joined)
		}
	}
	for _, flag := range []string{"--idrPeriod", "--qualityLevel", "--spatialAQStrength"} {
		if strings.Contains(joined, flag) {
			t.Errorf("unset field must not emit %q: %q", flag, joined)
		}
	}
}

func TestEncodeArgsAQAware(t *testing.T) {
	// AQ-aware cases always carry both strength flags, even disabled,
	// because the tool distinguishes an absent flag from a disabled one.
	c := Case{
		Codec:      codec.H264,
		Input:      "in.yuv",
		Output:     "out.264",
		AQAware:    true,
		SpatialAQ:  AQDisabled,
		TemporalAQ: 0.5,
		AQDumpDir:  "/tmp/aq",
	}
	joined := strings.Join(c.EncodeArgs("enc"), " ")

	if !strings.Contains(joined, "--spatialAQStrength -2") {
		t.Errorf("disabled spatial knob must still be emitted: %q", joined)
	}
	if !strings.Contains(joined, "--temporalAQStrength 0.5") {
		t.Errorf("expected temporal strength: %q", joined)
	}
	if !strings.Contains(joined, "--aqDumpDir /tmp/aq") {
		t.Errorf("expected dump dir: %q", joined)
	}
}

func TestEncodeArgsNotAQAware(t *testing.T) {
	c := Case{Codec: codec.H264, Input: "in.yuv", Output: "out.264", SpatialAQ: 0.5}
	joined := strings.Join(c.EncodeArgs("enc"), " ")
	if strings.Contains(joined, "AQStrength") {
		t.Errorf("non-AQ cases must not emit strength flags: %q", joined)
	}
}

func TestDecodeArgs(t *testing.T) {
	c := Case{
		Codec:      codec.H265,
		Input:      "clip.265",
		Output:     "clip.yuv",
		NumFrames:  30,
		NoPresent:  true,
		Validation: true,
	}
	args := c.DecodeArgs("/bin/dec")
	joined := strings.Join(args, " ")

	// The decoder reuses -c for the frame count.
	if !strings.Contains(joined, "-c 30") {
		t.Errorf("expected frame count via -c: %q", joined)
	}
	if !strings.Contains(joined, "--codec h265") {
		t.Errorf("expected codec flag: %q", joined)
	}
	if !strings.Contains(joined, "--noPresent") || !strings.Contains(joined, "-v") {
		t.Errorf("expected noPresent and validation flags: %q", joined)
	}
}

func TestDecodeArgsUnknownCodec(t *testing.T) {
	c := Case{Codec: codec.Unknown, Input: "clip.264"}
	joined := strings.Join(c.DecodeArgs("dec"), " ")
	if strings.Contains(joined, "--codec") {
		t.Errorf("unknown codec must leave detection to the decoder: %q", joined)
	}
}

func TestValidationEnv(t *testing.T) {
	c := Case{Validation: true}
	env := c.ValidationEnv()
	if env["VK_LOADER_LAYERS_ENABLE"] != "*validation" {
		t.Errorf("unexpected layer setting: %v", env)
	}
	if env["VK_VALIDATION_VALIDATE_SYNC"] != "true" {
		t.Errorf("unexpected sync setting: %v", env)
	}

	if env := (Case{}).ValidationEnv(); env != nil {
		t.Errorf("validation off must yield no env, got %v", env)
	}
}

func TestStrengthFormatting(t *testing.T) {
	cases := map[float64]string{
		-2.0: "-2",
		0.0:  "0",
		0.5:  "0.5",
		0.25: "0.25",
		1.0:  "1",
	}
	for v, want := range cases {
		if got := ftoa(v); got != want {
			t.Errorf("ftoa(%v) = %q, want %q", v, got, want)
		}
	}
}
