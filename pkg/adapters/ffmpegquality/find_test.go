package ffmpegquality

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFindFFmpegCustomPath(t *testing.T) {
	dir := t.TempDir()
	fake := filepath.Join(dir, "ffmpeg")
	if err := os.WriteFile(fake, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatalf("write fake binary: %v", err)
	}

	got, err := FindFFmpeg(fake)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got != fake {
		t.Errorf("got %q, want %q", got, fake)
	}
}

func TestFindFFmpegCustomPathMissing(t *testing.T) {
	_, err := FindFFmpeg("/definitely/not/here/ffmpeg")
	if !errors.Is(err, ErrFFmpegNotFound) {
		t.Errorf("expected ErrFFmpegNotFound, got %v", err)
	}
}

func TestFindFFmpegEnvOverride(t *testing.T) {
	dir := t.TempDir()
	fake := filepath.Join(dir, "ffmpeg")
	if err := os.WriteFile(fake, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatalf("write fake binary: %v", err)
	}
	t.Setenv("FFMPEG_PATH", fake)

	got, err := FindFFmpeg("")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got != fake {
		t.Errorf("got %q, want env path %q", got, fake)
	}
}

func TestFindFFmpegEnvMissing(t *testing.T) {
	t.Setenv("FFMPEG_PATH", "/definitely/not/here/ffmpeg")
	if _, err := FindFFmpeg(""); !errors.Is(err, ErrFFmpegNotFound) {
		t.Errorf("a bad FFMPEG_PATH must not fall through to PATH, got %v", err)
	}
}
