package bench

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/user/vkvideobench/pkg/ports"
)

// SaveReports writes the text report, the JSON document, and one command
// transcript per configuration into the output directory. It returns the
// rendered text report so callers can also print it.
func SaveReports(fs ports.FileSystem, results []Result, p Params, now time.Time) (string, error) {
	report := RenderReport(results, p, now)
	if err := fs.WriteFile(filepath.Join(p.OutputDir, "benchmark_report.txt"), []byte(report)); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	doc := BuildJSON(results, p, now)
	data, err := doc.Marshal()
	if err != nil {
		return "", fmt.Errorf("marshal results: %w", err)
	}
	if err := fs.WriteFile(filepath.Join(p.OutputDir, "benchmark_results.json"), data); err != nil {
		return "", fmt.Errorf("write results: %w", err)
	}

	for _, r := range results {
		path := filepath.Join(p.OutputDir, fmt.Sprintf("commands_%s.txt", r.Config.Name))
		if err := fs.WriteFile(path, []byte(CommandsFile(r, now))); err != nil {
			return "", fmt.Errorf("write commands: %w", err)
		}
	}
	return report, nil
}
