// Package containerprobe identifies the video codec carried by an MP4
// container so decode cases can pass the right codec name through.
package containerprobe

import (
	"fmt"
	"io"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/vkvideobench/pkg/codec"
)

// DetectFromFile returns the codec of the first video track in an MP4
// file.
func DetectFromFile(path string) (codec.Codec, error) {
	f, err := os.Open(path)
	if err != nil {
		return codec.Unknown, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return DetectFromReader(f)
}

// DetectFromReader returns the codec of the first video track read from
// an io.ReadSeeker.
func DetectFromReader(reader io.ReadSeeker) (codec.Codec, error) {
	mp4File, err := mp4.DecodeFile(reader)
	if err != nil {
		return codec.Unknown, fmt.Errorf("decode mp4: %w", err)
	}

	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return codec.Unknown, fmt.Errorf("seek: %w", err)
	}

	return detectFromMP4File(mp4File)
}

func detectFromMP4File(mp4File *mp4.File) (codec.Codec, error) {
	if mp4File.IsFragmented() {
		if mp4File.Init != nil && mp4File.Init.Moov != nil {
			for _, trak := range mp4File.Init.Moov.Traks {
				if c := detectCodecFromTrack(trak); c != codec.Unknown {
					return c, nil
				}
			}
		}
	}

	if mp4File.Moov != nil {
		for _, trak := range mp4File.Moov.Traks {
			if c := detectCodecFromTrack(trak); c != codec.Unknown {
				return c, nil
			}
		}
	}

	return codec.Unknown, fmt.Errorf("no video track found")
}

func detectCodecFromTrack(trak *mp4.TrakBox) codec.Codec {
	if trak.Mdia == nil || trak.Mdia.Hdlr == nil {
		return codec.Unknown
	}

	if trak.Mdia.Hdlr.HandlerType != "vide" {
		return codec.Unknown
	}

	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return codec.Unknown
	}

	for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
		switch child.Type() {
		case "avc1", "avc3":
			return codec.H264
		case "hvc1", "hev1":
			return codec.H265
		case "av01":
			return codec.AV1
		case "vp09":
			return codec.VP9
		}
	}

	return codec.Unknown
}
