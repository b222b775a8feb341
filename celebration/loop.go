package celebration

import (
	"time"

	"github.com/pthm-cable/podium/scheduler"
	"github.com/pthm-cable/podium/systems"
)

// LoopState is the render loop state.
type LoopState uint8

const (
	LoopIdle LoopState = iota
	LoopRunning
)

// String returns the display name for a LoopState.
func (s LoopState) String() string {
	if s == LoopRunning {
		return "running"
	}
	return "idle"
}

// RenderFunc draws the field after it has been stepped.
type RenderFunc func(field *systems.ParticleField)

// RenderLoop steps a particle field and renders it once per scheduler frame
// while running.
type RenderLoop struct {
	sched scheduler.Scheduler

	state      LoopState
	generation uint64
	epoch      uint64 // bumped by Stop; frames from an earlier epoch are dropped
	token      scheduler.Token

	field  *systems.ParticleField
	render RenderFunc

	lastFrame  time.Duration
	frameTimes []time.Duration
}

// NewRenderLoop creates an idle loop driven by sched.
func NewRenderLoop(sched scheduler.Scheduler) *RenderLoop {
	return &RenderLoop{sched: sched}
}

// Start begins ticking field for the given session generation. It returns
// false and changes nothing if the loop is already running.
func (l *RenderLoop) Start(generation uint64, field *systems.ParticleField, render RenderFunc) bool {
	if l.state == LoopRunning {
		return false
	}

	l.state = LoopRunning
	l.generation = generation
	l.field = field
	l.render = render
	l.lastFrame = l.sched.Now()
	l.frameTimes = l.frameTimes[:0]

	l.request()
	return true
}

// Stop cancels the pending frame and bumps the loop epoch. No tick from the
// stopped run executes after Stop returns, even if a later Start reuses the
// same generation.
// It returns false if the loop was already idle.
func (l *RenderLoop) Stop() bool {
	if l.state == LoopIdle {
		return false
	}

	l.sched.CancelFrame(l.token)
	l.token = 0
	l.epoch++
	l.state = LoopIdle
	l.field = nil
	l.render = nil
	return true
}

// request queues the next tick tagged with the current generation and epoch.
func (l *RenderLoop) request() {
	gen, epoch := l.generation, l.epoch
	l.token = l.sched.RequestFrame(func(now time.Duration) {
		l.tick(gen, epoch, now)
	})
}

func (l *RenderLoop) current(gen, epoch uint64) bool {
	return l.state == LoopRunning && gen == l.generation && epoch == l.epoch
}

func (l *RenderLoop) tick(gen, epoch uint64, now time.Duration) {
	if !l.current(gen, epoch) {
		return
	}

	dt := now - l.lastFrame
	l.lastFrame = now

	l.field.Step(dt)
	if l.render != nil {
		l.render(l.field)
	}
	l.frameTimes = append(l.frameTimes, dt)

	// The render callback may have stopped or restarted the loop
	if l.current(gen, epoch) {
		l.request()
	}
}

// State returns the current loop state.
func (l *RenderLoop) State() LoopState {
	return l.state
}

// Generation returns the generation of the current or most recent run.
func (l *RenderLoop) Generation() uint64 {
	return l.generation
}

// Frames returns the number of ticks in the current or most recent run.
func (l *RenderLoop) Frames() int {
	return len(l.frameTimes)
}

// FrameTimes returns a copy of the per-tick elapsed times of the current or
// most recent run.
func (l *RenderLoop) FrameTimes() []time.Duration {
	return append([]time.Duration(nil), l.frameTimes...)
}
