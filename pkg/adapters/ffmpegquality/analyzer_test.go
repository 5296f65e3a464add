package ffmpegquality

import (
	"context"
	"strings"
	"testing"

	"github.com/user/vkvideobench/pkg/adapters/logger"
	"github.com/user/vkvideobench/pkg/mocks"
	"github.com/user/vkvideobench/pkg/ports"
)

const psnrLine = "[Parsed_psnr_0 @ 0x5600] PSNR y:36.123 u:40.500 v:41.200 average:37.250 min:30.100 max:45.800"
const vmafLine = "[libvmaf @ 0x5601] VMAF score: 85.432100"

func TestParsePSNR(t *testing.T) {
	psnr, ok := parsePSNR(psnrLine)
	if !ok {
		t.Fatal("expected PSNR line to parse")
	}
	if psnr.Y != 36.123 || psnr.U != 40.5 || psnr.V != 41.2 {
		t.Errorf("components = %+v", psnr)
	}
	if psnr.Average != 37.25 || psnr.Min != 30.1 || psnr.Max != 45.8 {
		t.Errorf("aggregate = %+v", psnr)
	}

	if _, ok := parsePSNR("frame= 300 fps=25"); ok {
		t.Error("unrelated output must not parse")
	}
}

func TestParseVMAF(t *testing.T) {
	score, ok := parseVMAF(vmafLine)
	if !ok || score != 85.4321 {
		t.Errorf("score = %v ok=%v", score, ok)
	}

	if _, ok := parseVMAF("no score here"); ok {
		t.Error("unrelated output must not parse")
	}
}

func measureWith(t *testing.T, runner *mocks.CommandRunner, opts ports.MeasureOptions) (ports.QualityMetrics, error) {
	t.Helper()
	a := New("/usr/bin/ffmpeg", runner, logger.NewNoop())
	return a.Measure(context.Background(), "/out/enc.264", "/work/reference.yuv", 720, 480, opts)
}

func TestMeasure(t *testing.T) {
	runner := &mocks.CommandRunner{
		RunFunc: func(ctx context.Context, spec ports.CommandSpec) ports.Invocation {
			joined := strings.Join(spec.Args, " ")
			switch {
			case strings.Contains(joined, "psnr"):
				return ports.Invocation{ExitCode: 0, Stderr: psnrLine}
			case strings.Contains(joined, "libvmaf"):
				return ports.Invocation{ExitCode: 0, Stderr: vmafLine}
			default:
				return ports.Invocation{ExitCode: 0}
			}
		},
	}

	m, err := measureWith(t, runner, ports.MeasureOptions{WorkDir: "/work"})
	if err != nil {
		t.Fatalf("measure: %v", err)
	}
	if m.PSNR.Average != 37.25 {
		t.Errorf("psnr = %+v", m.PSNR)
	}
	if m.VMAF != 85.4321 {
		t.Errorf("vmaf = %v", m.VMAF)
	}
	if len(runner.RunCalls) != 3 {
		t.Errorf("expected decode+psnr+vmaf invocations, got %d", len(runner.RunCalls))
	}
	if !strings.Contains(m.DecodeCommand, "-pix_fmt yuv420p /work/decoded.yuv") {
		t.Errorf("decode command = %q", m.DecodeCommand)
	}
	if !strings.Contains(m.PSNRCommand, "-s 720x480") {
		t.Errorf("psnr command must pin the raw geometry: %q", m.PSNRCommand)
	}
	if !strings.Contains(m.VMAFCommand, "[0:v][1:v]libvmaf") {
		t.Errorf("vmaf command = %q", m.VMAFCommand)
	}
}

func TestMeasureDecodeFailure(t *testing.T) {
	runner := &mocks.CommandRunner{
		RunFunc: func(ctx context.Context, spec ports.CommandSpec) ports.Invocation {
			return ports.Invocation{ExitCode: 1, Stderr: "Invalid data found when processing input"}
		},
	}

	m, err := measureWith(t, runner, ports.MeasureOptions{WorkDir: "/work"})
	if err == nil {
		t.Fatal("an undecodable bitstream must be an error")
	}
	if m.DecodeCommand == "" {
		t.Error("the attempted command must be retained for the report")
	}
	if len(runner.RunCalls) != 1 {
		t.Errorf("metric passes must not run after a failed decode, got %d calls", len(runner.RunCalls))
	}
}

func TestMeasureParseFailureDegradesToZero(t *testing.T) {
	runner := &mocks.CommandRunner{
		RunFunc: func(ctx context.Context, spec ports.CommandSpec) ports.Invocation {
			return ports.Invocation{ExitCode: 0, Stderr: "unparseable chatter"}
		},
	}

	m, err := measureWith(t, runner, ports.MeasureOptions{WorkDir: "/work"})
	if err != nil {
		t.Fatalf("parse failures must not abort: %v", err)
	}
	if m.PSNR != (ports.PSNR{}) || m.VMAF != 0 {
		t.Errorf("expected zero metrics, got %+v", m)
	}
}

func TestMeasureSkips(t *testing.T) {
	runner := &mocks.CommandRunner{}
	m, err := measureWith(t, runner, ports.MeasureOptions{WorkDir: "/work", SkipPSNR: true, SkipVMAF: true})
	if err != nil {
		t.Fatalf("measure: %v", err)
	}
	if len(runner.RunCalls) != 1 {
		t.Errorf("only the decode should run when both metrics are skipped, got %d", len(runner.RunCalls))
	}
	if m.PSNRCommand != "" || m.VMAFCommand != "" {
		t.Error("skipped stages must not record commands")
	}
}
