package resolver

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
)

// Raw frame files carry their geometry in the filename:
// {width}x{height}_{chroma}_{bitdepth}le[_packed].yuv
var rawFramePattern = regexp.MustCompile(`^(\d+)x(\d+)_(\d{3})_(\d+)le(_packed)?$`)

// RawFrameInfo is the geometry recovered from a raw frame filename.
type RawFrameInfo struct {
	Path   string
	Width  int
	Height int
	Chroma string
	Bpp    int
	Packed bool
}

// FrameSize returns the size in bytes of one frame at this geometry.
func (r RawFrameInfo) FrameSize() int64 {
	luma := int64(r.Width) * int64(r.Height)
	var samples int64
	switch r.Chroma {
	case "400":
		samples = luma
	case "422":
		samples = luma * 2
	case "444":
		samples = luma * 3
	default: // 420
		samples = luma * 3 / 2
	}
	if r.Bpp > 8 {
		return samples * 2
	}
	return samples
}

// FileName renders the canonical filename for this geometry.
func (r RawFrameInfo) FileName() string {
	name := fmt.Sprintf("%dx%d_%s_%dle", r.Width, r.Height, r.Chroma, r.Bpp)
	if r.Packed {
		name += "_packed"
	}
	return name + ".yuv"
}

// ParseRawFrameName recovers geometry from a raw frame filename. A name
// that does not match the convention yields ok=false, never a partial
// result.
func ParseRawFrameName(name string) (RawFrameInfo, bool) {
	base := filepath.Base(name)
	stem := base
	if ext := filepath.Ext(base); ext != "" {
		stem = base[:len(base)-len(ext)]
	}
	m := rawFramePattern.FindStringSubmatch(stem)
	if m == nil {
		return RawFrameInfo{}, false
	}
	width, err := strconv.Atoi(m[1])
	if err != nil {
		return RawFrameInfo{}, false
	}
	height, err := strconv.Atoi(m[2])
	if err != nil {
		return RawFrameInfo{}, false
	}
	bpp, err := strconv.Atoi(m[4])
	if err != nil {
		return RawFrameInfo{}, false
	}
	return RawFrameInfo{
		Path:   name,
		Width:  width,
		Height: height,
		Chroma: m[3],
		Bpp:    bpp,
		Packed: m[5] != "",
	}, true
}

// SortByPreference orders raw frame candidates for broadest codec
// compatibility: larger resolution first, then 4:2:0 chroma, then lower
// bit depth. The sort is stable so equally ranked inputs keep their
// discovery order.
func SortByPreference(frames []RawFrameInfo) {
	sort.SliceStable(frames, func(i, j int) bool {
		a, b := frames[i], frames[j]
		areaA := a.Width * a.Height
		areaB := b.Width * b.Height
		if areaA != areaB {
			return areaA > areaB
		}
		if (a.Chroma == "420") != (b.Chroma == "420") {
			return a.Chroma == "420"
		}
		return a.Bpp < b.Bpp
	})
}
