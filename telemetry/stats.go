// Package telemetry records celebration sessions and claim activity as CSV
// for later analysis.
package telemetry

import (
	"log/slog"
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"
)

// FrameStats summarizes the frame intervals of one session, in milliseconds.
type FrameStats struct {
	Frames int
	MeanMs float64
	// JitterMs is the sample standard deviation of the frame interval
	JitterMs float64
	P50Ms    float64
	P95Ms    float64
	MaxMs    float64
}

// ComputeFrameStats summarizes frame intervals. Empty input yields zeros.
func ComputeFrameStats(frames []time.Duration) FrameStats {
	n := len(frames)
	if n == 0 {
		return FrameStats{}
	}

	ms := make([]float64, n)
	for i, d := range frames {
		ms[i] = float64(d) / float64(time.Millisecond)
	}
	slices.Sort(ms)

	s := FrameStats{
		Frames: n,
		MeanMs: stat.Mean(ms, nil),
		P50Ms:  stat.Quantile(0.5, stat.Empirical, ms, nil),
		P95Ms:  stat.Quantile(0.95, stat.Empirical, ms, nil),
		MaxMs:  ms[n-1],
	}
	if n > 1 {
		s.JitterMs = stat.StdDev(ms, nil)
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s FrameStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("frames", s.Frames),
		slog.Float64("mean_ms", s.MeanMs),
		slog.Float64("jitter_ms", s.JitterMs),
		slog.Float64("p50_ms", s.P50Ms),
		slog.Float64("p95_ms", s.P95Ms),
		slog.Float64("max_ms", s.MaxMs),
	)
}
