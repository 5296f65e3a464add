package localrunner

import "bytes"

// Diagnostics past this point add nothing; validation runs can emit
// megabytes of layer output.
const maxCapturedOutput = 4 << 20

// limitedBuffer captures process output up to a fixed cap, discarding the
// rest so a chatty tool cannot exhaust memory.
type limitedBuffer struct {
	buf bytes.Buffer
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	remaining := maxCapturedOutput - b.buf.Len()
	if remaining <= 0 {
		return len(p), nil
	}
	if len(p) > remaining {
		b.buf.Write(p[:remaining])
		return len(p), nil
	}
	return b.buf.Write(p)
}

func (b *limitedBuffer) String() string {
	return b.buf.String()
}
