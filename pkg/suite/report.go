package suite

import (
	"encoding/json"
	"time"
)

// Report is the machine-readable record of a suite run.
type Report struct {
	Timestamp string       `json:"timestamp"`
	Config    ReportConfig `json:"config"`
	Summary   ReportTotals `json:"summary"`
	Results   []ReportCase `json:"results"`
}

// ReportConfig echoes the run's inputs.
type ReportConfig struct {
	Target     string `json:"target"`
	VideoDir   string `json:"video_dir"`
	MaxFrames  int    `json:"max_frames"`
	Validation bool   `json:"validation"`
	Codec      string `json:"codec,omitempty"`
}

// ReportTotals carries the aggregate counts.
type ReportTotals struct {
	Total    int     `json:"total"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	Skipped  int     `json:"skipped"`
	Errors   int     `json:"errors"`
	Duration float64 `json:"duration"`
}

// ReportCase is one case's record, in submission order.
type ReportCase struct {
	Name     string  `json:"name"`
	Group    string  `json:"group"`
	Outcome  string  `json:"outcome"`
	Duration float64 `json:"duration"`
	Message  string  `json:"message,omitempty"`
}

// BuildReport assembles the JSON report from a summary.
func BuildReport(s Summary, cfg ReportConfig, now time.Time) Report {
	r := Report{
		Timestamp: now.Format(time.RFC3339),
		Config:    cfg,
		Summary: ReportTotals{
			Total:    len(s.Results),
			Passed:   s.Passed,
			Failed:   s.Failed,
			Skipped:  s.Skipped,
			Errors:   s.Errors,
			Duration: s.Duration.Seconds(),
		},
		Results: make([]ReportCase, 0, len(s.Results)),
	}
	for _, c := range s.Results {
		r.Results = append(r.Results, ReportCase{
			Name:     c.Name,
			Group:    c.Group,
			Outcome:  string(c.Outcome),
			Duration: c.Duration.Seconds(),
			Message:  c.Message,
		})
	}
	return r
}

// Marshal renders the report with indentation.
func (r Report) Marshal() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
