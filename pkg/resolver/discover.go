package resolver

import (
	"os"
	"path/filepath"
	"strings"
)

// DiscoverRawFrames scans a directory for raw frame files whose names
// follow the geometry convention, returned in preference order. Files
// that do not match the convention are ignored.
func DiscoverRawFrames(dir string) ([]RawFrameInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var frames []RawFrameInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(e.Name()), ".yuv") {
			continue
		}
		info, ok := ParseRawFrameName(e.Name())
		if !ok {
			continue
		}
		info.Path = filepath.Join(dir, e.Name())
		frames = append(frames, info)
	}
	SortByPreference(frames)
	return frames, nil
}

// FindRawFrame returns the best raw frame matching the requested bit
// depth and chroma subsampling. Zero values match anything. A miss
// returns ok=false so the caller can mark the case skipped.
func FindRawFrame(frames []RawFrameInfo, bpp int, chroma string) (RawFrameInfo, bool) {
	for _, f := range frames {
		if bpp != 0 && f.Bpp != bpp {
			continue
		}
		if chroma != "" && f.Chroma != chroma {
			continue
		}
		return f, true
	}
	return RawFrameInfo{}, false
}

// DiscoverBitstreams lists encoded bitstream files in a directory,
// optionally filtered by a name substring. Empty files are excluded.
func DiscoverBitstreams(dir, filter string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".264", ".265", ".ivf", ".bin", ".mp4":
		default:
			continue
		}
		if filter != "" && !strings.Contains(e.Name(), filter) {
			continue
		}
		info, err := e.Info()
		if err != nil || info.Size() == 0 {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}
