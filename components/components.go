// Package components defines ECS components for the celebration session arena
// and the rendering contracts those components hold.
package components

import (
	"time"

	"github.com/pthm-cable/podium/scheduler"
	"github.com/pthm-cable/podium/systems"
)

// EndReason records why a session ended.
type EndReason uint8

const (
	EndExplicit   EndReason = iota // Ended by a direct call
	EndTimeout                     // Duration timer expired
	EndSuperseded                  // A newer trigger replaced it
	EndTeardown                    // The host view went away
)

// String returns the display name for an EndReason.
func (r EndReason) String() string {
	switch r {
	case EndTimeout:
		return "timeout"
	case EndSuperseded:
		return "superseded"
	case EndTeardown:
		return "teardown"
	}
	return "explicit"
}

// Session holds the bookkeeping of one celebration.
type Session struct {
	Generation uint64
	StartedAt  time.Duration // scheduler clock at start
	Duration   time.Duration
	Timer      scheduler.Token
}

// Field holds the particle state simulated for a session.
type Field struct {
	Particles *systems.ParticleField
}

// RenderTarget holds the rendering resources a session owns and the viewport
// its surface is attached to.
type RenderTarget struct {
	Surface  Surface
	Viewport Viewport
}
