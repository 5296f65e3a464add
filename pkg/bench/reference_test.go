package bench

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestExtractReference(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.yuv")
	output := filepath.Join(dir, "reference.yuv")

	frame := make([]byte, 16)
	var source []byte
	for i := 0; i < 10; i++ {
		for j := range frame {
			frame[j] = byte(i)
		}
		source = append(source, frame...)
	}
	if err := os.WriteFile(input, source, 0644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	if err := ExtractReference(input, output, 16, 4); err != nil {
		t.Fatalf("extract: %v", err)
	}

	got, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read reference: %v", err)
	}
	if len(got) != 64 {
		t.Fatalf("reference size = %d, want 64", len(got))
	}
	if !bytes.Equal(got, source[:64]) {
		t.Error("reference must be a byte-exact prefix of the source")
	}
}

func TestExtractReferenceShortSource(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.yuv")
	output := filepath.Join(dir, "reference.yuv")

	if err := os.WriteFile(input, make([]byte, 30), 0644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	if err := ExtractReference(input, output, 16, 4); err == nil {
		t.Fatal("a short source must be an error, not a truncated reference")
	}
}

func TestExtractReferenceMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := ExtractReference(filepath.Join(dir, "nope.yuv"), filepath.Join(dir, "ref.yuv"), 16, 1)
	if err == nil {
		t.Fatal("expected error for missing source")
	}
}
