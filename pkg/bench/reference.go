package bench

import (
	"fmt"
	"io"
	"os"
)

// ExtractReference copies the first frames of a raw source into a
// standalone reference file for quality comparison. The copy is
// byte-exact; a short source is an error rather than a truncated
// reference.
func ExtractReference(input, output string, frameSize int64, frames int) error {
	in, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create reference: %w", err)
	}
	defer out.Close()

	total := frameSize * int64(frames)
	n, err := io.CopyN(out, in, total)
	if err != nil {
		return fmt.Errorf("copy reference frames: %w", err)
	}
	if n != total {
		return fmt.Errorf("source too short: wanted %d bytes, copied %d", total, n)
	}
	return out.Close()
}
