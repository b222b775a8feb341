package celebration

import (
	"errors"
	"log/slog"

	"github.com/pthm-cable/podium/components"
	"github.com/pthm-cable/podium/config"
	"github.com/pthm-cable/podium/ranking"
)

// Celebrator is the host-facing trigger API. It feeds each ranked list to a
// change detector and starts a celebration when the leading positions change.
// Failures are logged and never returned to the ranking flow.
type Celebrator struct {
	detector ranking.Detector
	manager  *Manager
	viewport components.Viewport
	topN     int
	logger   *slog.Logger
}

// NewCelebrator creates a celebrator that compares the first topN entries of
// each list and celebrates into vp.
func NewCelebrator(m *Manager, vp components.Viewport, topN int, logger *slog.Logger) *Celebrator {
	if topN <= 0 {
		topN = config.DefaultTopN
	}
	topN = min(topN, config.MaxTopN)
	if logger == nil {
		logger = slog.Default()
	}
	return &Celebrator{
		manager:  m,
		viewport: vp,
		topN:     topN,
		logger:   logger,
	}
}

// NotifyRanking observes a list sorted by non-increasing score and reports
// whether a celebration was started.
func (c *Celebrator) NotifyRanking(list []ranking.Entry) bool {
	snap := ranking.TopSnapshot(list, c.topN)
	if !c.detector.Observe(snap) {
		return false
	}

	c.logger.Info("top ranking changed", "top", snap.String())

	if _, err := c.manager.Begin(c.viewport); err != nil {
		if errors.Is(err, ErrNoViewport) {
			c.logger.Debug("celebration skipped", "error", err)
		} else {
			c.logger.Warn("celebration unavailable", "error", err)
		}
		return false
	}
	return true
}

// Teardown ends any active celebration and forgets the last snapshot, so a
// remounted host does not celebrate its first list.
func (c *Celebrator) Teardown() {
	c.manager.Teardown()
	c.detector.Reset()
}

// SetViewport replaces the viewport used by later celebrations. The active
// session, if any, stays on its original viewport until it ends.
func (c *Celebrator) SetViewport(vp components.Viewport) {
	c.viewport = vp
}

// Manager returns the underlying lifecycle manager.
func (c *Celebrator) Manager() *Manager {
	return c.manager
}
