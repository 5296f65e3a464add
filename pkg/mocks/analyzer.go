package mocks

import (
	"context"

	"github.com/user/vkvideobench/pkg/ports"
)

// QualityAnalyzer is a mock implementation of ports.QualityAnalyzer.
type QualityAnalyzer struct {
	MeasureFunc func(ctx context.Context, encoded, reference string, width, height int, opts ports.MeasureOptions) (ports.QualityMetrics, error)

	// Recorded calls for verification
	MeasureCalls []string
}

func (m *QualityAnalyzer) Measure(ctx context.Context, encoded, reference string, width, height int, opts ports.MeasureOptions) (ports.QualityMetrics, error) {
	m.MeasureCalls = append(m.MeasureCalls, encoded)
	if m.MeasureFunc != nil {
		return m.MeasureFunc(ctx, encoded, reference, width, height, opts)
	}
	return ports.QualityMetrics{}, nil
}

var _ ports.QualityAnalyzer = (*QualityAnalyzer)(nil)
