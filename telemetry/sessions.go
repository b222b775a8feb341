package telemetry

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/podium/celebration"
)

// SessionRecord is one row of sessions.csv.
type SessionRecord struct {
	Generation uint64  `csv:"generation"`
	StartedMs  int64   `csv:"started_ms"`
	EndedMs    int64   `csv:"ended_ms"`
	Reason     string  `csv:"reason"`
	Particles  int     `csv:"particles"`
	Frames     int     `csv:"frames"`
	MeanMs     float64 `csv:"mean_frame_ms"`
	JitterMs   float64 `csv:"jitter_ms"`
	P95Ms      float64 `csv:"p95_frame_ms"`
	MaxMs      float64 `csv:"max_frame_ms"`
}

// NewSessionRecord flattens a session summary into a CSV row.
func NewSessionRecord(s celebration.SessionSummary) SessionRecord {
	fs := ComputeFrameStats(s.FrameTimes)
	return SessionRecord{
		Generation: s.Generation,
		StartedMs:  s.StartedAt.Milliseconds(),
		EndedMs:    s.EndedAt.Milliseconds(),
		Reason:     s.Reason.String(),
		Particles:  s.Particles,
		Frames:     fs.Frames,
		MeanMs:     fs.MeanMs,
		JitterMs:   fs.JitterMs,
		P95Ms:      fs.P95Ms,
		MaxMs:      fs.MaxMs,
	}
}

// SessionLog collects ended sessions. It implements celebration.SessionRecorder
// and forwards each record to the output manager when one is set.
type SessionLog struct {
	out     *OutputManager
	logger  *slog.Logger
	records []SessionRecord
}

// NewSessionLog creates a session log. out may be nil to keep records in memory only.
func NewSessionLog(out *OutputManager, logger *slog.Logger) *SessionLog {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionLog{out: out, logger: logger}
}

// RecordSession stores the summary and appends it to sessions.csv.
func (l *SessionLog) RecordSession(s celebration.SessionSummary) {
	rec := NewSessionRecord(s)
	l.records = append(l.records, rec)

	l.logger.Debug("session frame stats",
		"generation", s.Generation,
		"stats", ComputeFrameStats(s.FrameTimes),
	)

	if err := l.out.WriteSession(rec); err != nil {
		l.logger.Warn("failed to write session", "error", err)
	}
}

// Records returns the sessions recorded so far, oldest first.
func (l *SessionLog) Records() []SessionRecord {
	return append([]SessionRecord(nil), l.records...)
}

// Totals returns the number of sessions per end reason.
func (l *SessionLog) Totals() map[string]int {
	totals := make(map[string]int)
	for _, r := range l.records {
		totals[r.Reason]++
	}
	return totals
}

// Elapsed returns the on-screen time of a record.
func (r SessionRecord) Elapsed() time.Duration {
	return time.Duration(r.EndedMs-r.StartedMs) * time.Millisecond
}
