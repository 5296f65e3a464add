package bench

import (
	"encoding/json"
	"time"
)

// JSONDocument is the machine-readable counterpart of the text report.
type JSONDocument struct {
	Timestamp     string            `json:"timestamp"`
	Configuration JSONConfiguration `json:"configuration"`
	Results       []JSONResult      `json:"results"`
}

// JSONConfiguration echoes the run parameters.
type JSONConfiguration struct {
	Input     string `json:"input"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Codec     string `json:"codec"`
	NumFrames int    `json:"num_frames"`
	Bitrate   int    `json:"bitrate"`
	GopSize   *int   `json:"gop_size"`
	BFrames   *int   `json:"b_frames"`
}

// JSONResult is one configuration's result.
type JSONResult struct {
	ConfigName  string       `json:"config_name"`
	Description string       `json:"description"`
	SpatialAQ   float64      `json:"spatial_aq"`
	TemporalAQ  float64      `json:"temporal_aq"`
	Success     bool         `json:"success"`
	FileSize    int64        `json:"file_size"`
	EncodeTime  float64      `json:"encode_time"`
	PSNR        JSONPSNR     `json:"psnr"`
	VMAF        float64      `json:"vmaf"`
	Error       *string      `json:"error"`
	OutputFile  string       `json:"output_file"`
	AQDumpDir   string       `json:"aq_dump_dir"`
	Commands    JSONCommands `json:"commands"`
}

// JSONPSNR carries the six PSNR components.
type JSONPSNR struct {
	Y       float64 `json:"y"`
	U       float64 `json:"u"`
	V       float64 `json:"v"`
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// JSONCommands preserves the exact command line used at each stage.
type JSONCommands struct {
	Encode string `json:"encode"`
	Decode string `json:"decode"`
	PSNR   string `json:"psnr"`
	VMAF   string `json:"vmaf"`
}

// BuildJSON assembles the JSON document from the accumulated results.
func BuildJSON(results []Result, p Params, now time.Time) JSONDocument {
	doc := JSONDocument{
		Timestamp: now.Format(time.RFC3339),
		Configuration: JSONConfiguration{
			Input:     p.Input,
			Width:     p.Width,
			Height:    p.Height,
			Codec:     string(p.Codec),
			NumFrames: p.NumFrames,
			Bitrate:   p.AverageBitrate,
			GopSize:   p.GopFrameCount,
			BFrames:   p.ConsecutiveBCount,
		},
		Results: make([]JSONResult, 0, len(results)),
	}
	for _, r := range results {
		jr := JSONResult{
			ConfigName:  r.Config.Name,
			Description: r.Config.Description,
			SpatialAQ:   r.Config.SpatialAQ,
			TemporalAQ:  r.Config.TemporalAQ,
			Success:     r.Success,
			FileSize:    r.FileSize,
			EncodeTime:  r.EncodeTime.Seconds(),
			PSNR: JSONPSNR{
				Y:       r.Metrics.PSNR.Y,
				U:       r.Metrics.PSNR.U,
				V:       r.Metrics.PSNR.V,
				Average: r.Metrics.PSNR.Average,
				Min:     r.Metrics.PSNR.Min,
				Max:     r.Metrics.PSNR.Max,
			},
			VMAF:       r.Metrics.VMAF,
			OutputFile: r.OutputFile,
			AQDumpDir:  r.AQDumpDir,
			Commands: JSONCommands{
				Encode: r.EncodeCommand,
				Decode: r.Metrics.DecodeCommand,
				PSNR:   r.Metrics.PSNRCommand,
				VMAF:   r.Metrics.VMAFCommand,
			},
		}
		if !r.Success {
			msg := r.Error
			jr.Error = &msg
		}
		doc.Results = append(doc.Results, jr)
	}
	return doc
}

// Marshal renders the document with indentation for readability.
func (d JSONDocument) Marshal() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
