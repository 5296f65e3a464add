package bench

import "testing"

func TestSizeDelta(t *testing.T) {
	v, ok := SizeDelta(1000, 800)
	if !ok {
		t.Fatal("expected usable delta")
	}
	if v != -20.0 {
		t.Errorf("size delta = %v, want -20.0", v)
	}

	v, ok = SizeDelta(1000, 1250)
	if !ok || v != 25.0 {
		t.Errorf("size delta = %v ok=%v, want +25.0", v, ok)
	}

	if _, ok := SizeDelta(0, 800); ok {
		t.Error("zero baseline must be unusable")
	}
	if _, ok := SizeDelta(-1, 800); ok {
		t.Error("negative baseline must be unusable")
	}
}

func TestMetricDelta(t *testing.T) {
	v, ok := MetricDelta(35.0, 37.0)
	if !ok || v != 2.0 {
		t.Errorf("psnr delta = %v ok=%v, want +2.0", v, ok)
	}

	v, ok = MetricDelta(80.0, 83.0)
	if !ok || v != 3.0 {
		t.Errorf("vmaf delta = %v ok=%v, want +3.0", v, ok)
	}

	if _, ok := MetricDelta(0, 37.0); ok {
		t.Error("a zero baseline metric means measurement failed")
	}
}

func TestFormatDelta(t *testing.T) {
	if got := FormatDelta(-20.0, true, "%+.1f%%"); got != "-20.0%" {
		t.Errorf("got %q", got)
	}
	if got := FormatDelta(2.0, true, "%+.2f"); got != "+2.00" {
		t.Errorf("got %q", got)
	}
	if got := FormatDelta(0, false, "%+.1f%%"); got != "N/A" {
		t.Errorf("unusable delta must render N/A, got %q", got)
	}
}
