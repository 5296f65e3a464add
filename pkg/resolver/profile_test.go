package resolver

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/user/vkvideobench/pkg/codec"
)

func writeProfile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	return path
}

func TestDiscoverProfileFiles(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "generic.json", `{"codec": "h264"}`)
	writeProfile(t, dir, "nvidia/high_quality.json", `{"codec": "hevc"}`)
	writeProfile(t, dir, "encoder_config.schema.json", `{}`)
	writeProfile(t, dir, "encoder_config.md.json", `{}`)
	writeProfile(t, dir, "readme.txt", "not a profile")

	files, err := DiscoverProfileFiles(dir)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected exactly 2 profiles, got %d: %+v", len(files), files)
	}
	if files[0].Name != "generic" {
		t.Errorf("first profile = %q, want generic", files[0].Name)
	}
	if files[1].Name != "nvidia/high_quality" {
		t.Errorf("second profile = %q, want nvidia/high_quality", files[1].Name)
	}
}

func TestLoadProfile(t *testing.T) {
	dir := t.TempDir()
	path := writeProfile(t, dir, "hq.json", `{
		"codec": "hevc",
		"qualityPreset": 3,
		"rateControlMode": "cbr",
		"averageBitrate": 5000000
	}`)

	p, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Codec != codec.H265 {
		t.Errorf("codec = %q, want h265", p.Codec)
	}
	if p.QualityPreset == nil || *p.QualityPreset != 3 {
		t.Errorf("qualityPreset = %v, want 3", p.QualityPreset)
	}
	if _, ok := p.Extra["rateControlMode"]; !ok {
		t.Error("uninterpreted fields must pass through to Extra")
	}
	if _, ok := p.Extra["codec"]; ok {
		t.Error("codec must not leak into Extra")
	}
}

func TestLoadProfileNoPreset(t *testing.T) {
	dir := t.TempDir()
	path := writeProfile(t, dir, "plain.json", `{"codec": "av1"}`)

	p, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.QualityPreset != nil {
		t.Errorf("expected nil preset, got %d", *p.QualityPreset)
	}
}

func TestLoadProfileUnknownCodec(t *testing.T) {
	dir := t.TempDir()

	for name, content := range map[string]string{
		"missing.json": `{"qualityPreset": 1}`,
		"bogus.json":   `{"codec": "mpeg2"}`,
	} {
		path := writeProfile(t, dir, name, content)
		_, err := LoadProfile(path)
		if !errors.Is(err, ErrUnknownCodec) {
			t.Errorf("%s: expected ErrUnknownCodec, got %v", name, err)
		}
	}
}

func TestLoadProfileInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeProfile(t, dir, "broken.json", `{"codec": "h264"`)

	_, err := LoadProfile(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if errors.Is(err, ErrUnknownCodec) {
		t.Error("a parse error is not an unknown codec")
	}
}

func TestLoadProfileFractionalPreset(t *testing.T) {
	dir := t.TempDir()
	path := writeProfile(t, dir, "frac.json", `{"codec": "h264", "qualityPreset": 2.5}`)

	if _, err := LoadProfile(path); err == nil {
		t.Fatal("expected fractional qualityPreset to be rejected")
	}
}

func TestDiscoverProfilesStrict(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "good.json", `{"codec": "h264"}`)
	writeProfile(t, dir, "bad.json", `{"codec": "nope"}`)

	if _, err := DiscoverProfiles(dir); err == nil {
		t.Fatal("strict discovery must fail on the first bad profile")
	}
}
