package bench

import (
	"fmt"
	"strings"
	"time"
)

func joinCommand(args []string) string {
	return strings.Join(args, " ")
}

// RenderReport produces the human-readable benchmark report. Rendering is
// driven purely by the result slice in its original order; only the
// best-of lines pick extrema.
func RenderReport(results []Result, p Params, now time.Time) string {
	baseline := findBaseline(results)
	var baselineSize int64
	var baselineVMAF float64
	if baseline != nil {
		baselineSize = baseline.FileSize
		baselineVMAF = baseline.Metrics.VMAF
	}

	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line(strings.Repeat("=", 80))
	line("           AQ QUALITY BENCHMARK REPORT")
	line(strings.Repeat("=", 80))
	line("")
	line("Generated: %s", now.Format("2006-01-02 15:04:05"))
	line("")

	line("## Test Configuration")
	line("")
	line("  Input File:     %s", p.Input)
	line("  Resolution:     %dx%d", p.Width, p.Height)
	line("  Codec:          %s", p.Codec.Display())
	line("  Frames:         %s", orAll(p.NumFrames))
	line("  Rate Control:   %s", orDefaultStr(p.RateControlMode))
	line("  Bitrate:        %s bps", orDefaultInt(p.AverageBitrate))
	line("  GOP Size:       %s", orDefaultPtr(p.GopFrameCount))
	line("  B-Frames:       %s", orDefaultPtr(p.ConsecutiveBCount))
	line("")

	sep := "+----------------------+------------+----------+----------+----------+----------+"
	line("## Results Summary")
	line("")
	line("```")
	line(sep)
	line("| Configuration        | Size (KB)  | vs Base  | PSNR     | VMAF     | vs Base  |")
	line(sep)
	for _, r := range results {
		if !r.Success {
			line("| %-20s | %10s | %8s | %8s | %8s | %8s |",
				r.Config.Description, "FAILED", "N/A", "N/A", "N/A", "N/A")
			continue
		}
		sizeDelta, sizeOK := SizeDelta(baselineSize, r.FileSize)
		vmafDelta, vmafOK := MetricDelta(baselineVMAF, r.Metrics.VMAF)
		line("| %-20s | %10.1f | %8s | %8.2f | %8.2f | %8s |",
			r.Config.Description,
			float64(r.FileSize)/1024,
			FormatDelta(sizeDelta, sizeOK, "%+.1f%%"),
			r.Metrics.PSNR.Average,
			r.Metrics.VMAF,
			FormatDelta(vmafDelta, vmafOK, "%+.2f"))
	}
	line(sep)
	line("```")
	line("")

	psep := "+----------------------+----------+----------+----------+----------+----------+----------+"
	line("## Detailed PSNR Breakdown")
	line("")
	line("```")
	line(psep)
	line("| Configuration        | PSNR Y   | PSNR U   | PSNR V   | Average  | Min      | Max      |")
	line(psep)
	for _, r := range results {
		if !r.Success {
			line("| %-20s | %8s | %8s | %8s | %8s | %8s | %8s |",
				r.Config.Description, "FAILED", "N/A", "N/A", "N/A", "N/A", "N/A")
			continue
		}
		psnr := r.Metrics.PSNR
		line("| %-20s | %8.2f | %8.2f | %8.2f | %8.2f | %8.2f | %8.2f |",
			r.Config.Description, psnr.Y, psnr.U, psnr.V, psnr.Average, psnr.Min, psnr.Max)
	}
	line(psep)
	line("```")
	line("")

	line("## Output Files")
	line("")
	for _, r := range results {
		if r.Success {
			line("  %s:", r.Config.Description)
			line("    File: %s", r.OutputFile)
			line("    Size: %d bytes (%.1f KB)", r.FileSize, float64(r.FileSize)/1024)
			line("    Encode time: %.2fs", r.EncodeTime.Seconds())
		} else {
			line("  %s: FAILED - %s", r.Config.Description, r.Error)
		}
		line("")
	}

	line("## Analysis")
	line("")
	renderAnalysis(&b, results, baseline)
	line("")

	line("## Command Lines Used")
	line("")
	line("All command lines are also saved to individual `commands_<config>.txt` files.")
	line("")
	for _, r := range results {
		line("### %s", r.Config.Description)
		line("")
		renderCommand(&b, "Encode", r.EncodeCommand)
		renderCommand(&b, "Decode", r.Metrics.DecodeCommand)
		renderCommand(&b, "PSNR", r.Metrics.PSNRCommand)
		renderCommand(&b, "VMAF", r.Metrics.VMAFCommand)
		if r.AQDumpDir != "" {
			line("**AQ Dump Dir:** `%s`", r.AQDumpDir)
			line("")
		}
	}

	line(strings.Repeat("=", 80))
	line("                         END OF REPORT")
	b.WriteString(strings.Repeat("=", 80))

	return b.String()
}

func renderAnalysis(b *strings.Builder, results []Result, baseline *Result) {
	var passing []Result
	for _, r := range results {
		if r.Success {
			passing = append(passing, r)
		}
	}
	if len(passing) == 0 {
		return
	}

	bestVMAF := passing[0]
	bestPSNR := passing[0]
	smallest := passing[0]
	for _, r := range passing[1:] {
		if r.Metrics.VMAF > bestVMAF.Metrics.VMAF {
			bestVMAF = r
		}
		if r.Metrics.PSNR.Average > bestPSNR.Metrics.PSNR.Average {
			bestPSNR = r
		}
		if r.FileSize < smallest.FileSize {
			smallest = r
		}
	}

	fmt.Fprintf(b, "  Best VMAF:      %s (%.2f)\n", bestVMAF.Config.Description, bestVMAF.Metrics.VMAF)
	fmt.Fprintf(b, "  Best PSNR:      %s (%.2f dB)\n", bestPSNR.Config.Description, bestPSNR.Metrics.PSNR.Average)
	fmt.Fprintf(b, "  Smallest Size:  %s (%.1f KB)\n", smallest.Config.Description, float64(smallest.FileSize)/1024)

	if baseline == nil || !baseline.Success {
		return
	}
	fmt.Fprintf(b, "\n  AQ Improvements vs Baseline:\n")
	for _, r := range results {
		if r.Config.Name == BaselineName || !r.Success {
			continue
		}
		sizeDelta, _ := SizeDelta(baseline.FileSize, r.FileSize)
		psnrDelta := r.Metrics.PSNR.Average - baseline.Metrics.PSNR.Average
		vmafDelta := r.Metrics.VMAF - baseline.Metrics.VMAF
		fmt.Fprintf(b, "    %s: Size %+.1f%%, PSNR %+.2f dB, VMAF %+.2f\n",
			r.Config.Description, sizeDelta, psnrDelta, vmafDelta)
	}
}

func renderCommand(b *strings.Builder, title, command string) {
	if command == "" {
		return
	}
	fmt.Fprintf(b, "**%s:**\n```\n%s\n```\n\n", title, command)
}

// CommandsFile renders the replayable command transcript for one
// configuration.
func CommandsFile(r Result, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Command lines for %s\n", r.Config.Description)
	fmt.Fprintf(&b, "# Generated: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "#%s\n\n", strings.Repeat("=", 78))

	fmt.Fprintf(&b, "## ENCODE COMMAND\n%s\n\n", r.EncodeCommand)
	if r.Metrics.DecodeCommand != "" {
		fmt.Fprintf(&b, "## DECODE COMMAND\n%s\n\n", r.Metrics.DecodeCommand)
	}
	if r.Metrics.PSNRCommand != "" {
		fmt.Fprintf(&b, "## PSNR CALCULATION COMMAND\n%s\n\n", r.Metrics.PSNRCommand)
	}
	if r.Metrics.VMAFCommand != "" {
		fmt.Fprintf(&b, "## VMAF CALCULATION COMMAND\n%s\n\n", r.Metrics.VMAFCommand)
	}
	if r.AQDumpDir != "" {
		fmt.Fprintf(&b, "## AQ DUMP DIRECTORY\n%s\n", r.AQDumpDir)
	}
	return b.String()
}

func findBaseline(results []Result) *Result {
	for i := range results {
		if results[i].Config.Name == BaselineName && results[i].Success {
			return &results[i]
		}
	}
	return nil
}

func orAll(v int) string {
	if v > 0 {
		return fmt.Sprintf("%d", v)
	}
	return "all"
}

func orDefaultStr(s string) string {
	if s != "" {
		return s
	}
	return "default"
}

func orDefaultInt(v int) string {
	if v > 0 {
		return fmt.Sprintf("%d", v)
	}
	return "default"
}

func orDefaultPtr(v *int) string {
	if v != nil {
		return fmt.Sprintf("%d", *v)
	}
	return "default"
}
