// Package celebration runs the confetti celebration shown when the leading
// positions of a ranking change. A Manager owns at most one live session and
// guarantees its resources are released on every exit path.
package celebration

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"reflect"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/podium/components"
	"github.com/pthm-cable/podium/config"
	"github.com/pthm-cable/podium/scheduler"
	"github.com/pthm-cable/podium/systems"
)

// ErrNoViewport is returned by Begin when the viewport is missing or has no area.
var ErrNoViewport = errors.New("viewport missing or zero area")

// Handle refers to a session in the manager's arena. A handle outlives its
// session safely: once the session ends every operation on it is a no-op.
type Handle struct {
	entity     ecs.Entity
	generation uint64
}

// Generation returns the session generation, or 0 for the zero Handle.
func (h Handle) Generation() uint64 {
	return h.generation
}

// IsZero reports whether h refers to no session at all.
func (h Handle) IsZero() bool {
	return h.generation == 0
}

// SessionSummary describes a finished session.
type SessionSummary struct {
	Generation uint64
	StartedAt  time.Duration
	EndedAt    time.Duration
	Particles  int
	Reason     components.EndReason
	FrameTimes []time.Duration
}

// Frames returns the number of ticks the session rendered.
func (s SessionSummary) Frames() int {
	return len(s.FrameTimes)
}

// SessionRecorder receives a summary for each ended session.
type SessionRecorder interface {
	RecordSession(s SessionSummary)
}

// ManagerOptions configures a Manager. Zero fields take defaults.
type ManagerOptions struct {
	Config   config.CelebrationConfig
	Rand     *rand.Rand
	Logger   *slog.Logger
	Recorder SessionRecorder
}

// Manager owns the celebration session arena, the render loop and the
// duration timer.
type Manager struct {
	world      *ecs.World
	sessions   *ecs.Map3[components.Session, components.Field, components.RenderTarget]
	sessionMap *ecs.Map[components.Session]
	fieldMap   *ecs.Map[components.Field]
	targetMap  *ecs.Map[components.RenderTarget]

	sched    scheduler.Scheduler
	backend  components.Backend
	loop     *RenderLoop
	cfg      config.CelebrationConfig
	motion   systems.MotionParams
	rng      *rand.Rand
	logger   *slog.Logger
	recorder SessionRecorder

	active     Handle
	generation uint64
}

// NewManager creates a manager that acquires surfaces from backend and is
// driven by sched.
func NewManager(sched scheduler.Scheduler, backend components.Backend, opts ManagerOptions) *Manager {
	cfg := opts.Config
	cfg.ApplyDefaults()

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	world := ecs.NewWorld()
	return &Manager{
		world:      world,
		sessions:   ecs.NewMap3[components.Session, components.Field, components.RenderTarget](world),
		sessionMap: ecs.NewMap[components.Session](world),
		fieldMap:   ecs.NewMap[components.Field](world),
		targetMap:  ecs.NewMap[components.RenderTarget](world),
		sched:      sched,
		backend:    backend,
		loop:       NewRenderLoop(sched),
		cfg:        cfg,
		motion:     systems.MotionFromConfig(cfg),
		rng:        rng,
		logger:     logger,
		recorder:   opts.Recorder,
	}
}

// Begin ends any active session, then acquires a surface sized to the
// viewport, attaches it, builds a fresh particle field, starts the render loop
// and arms the duration timer. On error the manager is left idle.
func (m *Manager) Begin(vp components.Viewport) (Handle, error) {
	if !m.active.IsZero() {
		m.end(m.active, components.EndSuperseded)
	}

	if missingViewport(vp) {
		return Handle{}, ErrNoViewport
	}
	width, height := vp.Size()
	if width <= 0 || height <= 0 {
		return Handle{}, ErrNoViewport
	}

	surface, err := m.backend.Acquire(width, height, m.cfg.ParticleCount)
	if err != nil {
		return Handle{}, fmt.Errorf("acquiring surface: %w", err)
	}
	vp.Attach(surface)

	m.generation++
	gen := m.generation

	field := systems.NewParticleField(m.cfg.ParticleCount, m.cfg.Radius, m.motion, m.rng)
	duration := time.Duration(m.cfg.DurationMs) * time.Millisecond

	entity := m.sessions.NewEntity(
		&components.Session{Generation: gen, StartedAt: m.sched.Now(), Duration: duration},
		&components.Field{Particles: field},
		&components.RenderTarget{Surface: surface, Viewport: vp},
	)
	h := Handle{entity: entity, generation: gen}
	m.active = h

	m.sessionMap.Get(entity).Timer = m.sched.AfterFunc(duration, func() {
		m.expire(h)
	})
	m.loop.Start(gen, field, surface.Render)

	m.logger.Info("celebration started",
		"generation", gen,
		"particles", m.cfg.ParticleCount,
		"duration", duration,
		"viewport_w", width,
		"viewport_h", height,
	)

	return h, nil
}

// missingViewport reports whether vp is nil, including a nil pointer held in
// the interface.
func missingViewport(vp components.Viewport) bool {
	if vp == nil {
		return true
	}
	v := reflect.ValueOf(vp)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// End stops and releases the session referenced by h. It is a no-op for
// stale or zero handles, so it may be called any number of times.
func (m *Manager) End(h Handle) {
	m.end(h, components.EndExplicit)
}

// Teardown ends the active session, if any. Called when the host view goes away.
func (m *Manager) Teardown() {
	if !m.active.IsZero() {
		m.end(m.active, components.EndTeardown)
	}
}

// expire is the duration timer callback.
func (m *Manager) expire(h Handle) {
	if h != m.active {
		// A newer session replaced this one; its own timer governs it
		return
	}
	m.end(h, components.EndTimeout)
}

func (m *Manager) end(h Handle, reason components.EndReason) bool {
	if !m.Live(h) {
		return false
	}

	session := *m.sessionMap.Get(h.entity)
	target := *m.targetMap.Get(h.entity)

	if h == m.active {
		m.loop.Stop()
		m.active = Handle{}
	}
	m.sched.CancelTimer(session.Timer)

	target.Surface.Release()
	target.Viewport.Detach(target.Surface)

	m.world.RemoveEntity(h.entity)

	summary := SessionSummary{
		Generation: session.Generation,
		StartedAt:  session.StartedAt,
		EndedAt:    m.sched.Now(),
		Particles:  m.cfg.ParticleCount,
		Reason:     reason,
		FrameTimes: m.loop.FrameTimes(),
	}

	m.logger.Info("celebration ended",
		"generation", session.Generation,
		"reason", reason.String(),
		"frames", summary.Frames(),
		"elapsed", summary.EndedAt-summary.StartedAt,
	)

	if m.recorder != nil {
		m.recorder.RecordSession(summary)
	}
	return true
}

// Live reports whether h refers to a session that has not ended.
func (m *Manager) Live(h Handle) bool {
	if h.IsZero() || !m.world.Alive(h.entity) {
		return false
	}
	return m.sessionMap.Get(h.entity).Generation == h.generation
}

// Active returns the handle of the live session and whether one exists.
func (m *Manager) Active() (Handle, bool) {
	return m.active, !m.active.IsZero()
}

// Loop returns the manager's render loop.
func (m *Manager) Loop() *RenderLoop {
	return m.loop
}

// Field returns the particle field of a live session, or nil.
func (m *Manager) Field(h Handle) *systems.ParticleField {
	if !m.Live(h) {
		return nil
	}
	return m.fieldMap.Get(h.entity).Particles
}

// Config returns the effective celebration config.
func (m *Manager) Config() config.CelebrationConfig {
	return m.cfg
}
