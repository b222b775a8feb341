package celebration

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/pthm-cable/podium/components"
	"github.com/pthm-cable/podium/scheduler"
)

func TestBeginAcquiresAndStarts(t *testing.T) {
	h := newHarness()

	handle, err := h.manager.Begin(h.viewport)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if handle.Generation() != 1 {
		t.Errorf("expected generation 1, got %d", handle.Generation())
	}
	if !h.manager.Live(handle) {
		t.Error("expected live handle")
	}
	if h.manager.Loop().State() != LoopRunning {
		t.Error("expected running loop")
	}
	if f := h.manager.Field(handle); f == nil || f.Len() != 40 {
		t.Errorf("expected 40-particle field, got %v", f)
	}

	want := []string{"acquire#1", "attach#1"}
	if diff := cmp.Diff(want, h.log.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestTimeoutEndsExactlyOnce(t *testing.T) {
	h := newHarness()
	handle, _ := h.manager.Begin(h.viewport)

	h.queue.RunFor(5000*time.Millisecond, frame)

	if h.manager.Live(handle) {
		t.Fatal("session still live after 5000ms")
	}
	if len(h.recorder.sessions) != 1 {
		t.Fatalf("expected 1 ended session, got %d", len(h.recorder.sessions))
	}
	s := h.recorder.sessions[0]
	if s.Reason != components.EndTimeout {
		t.Errorf("expected timeout, got %s", s.Reason)
	}
	if s.EndedAt-s.StartedAt != 5000*time.Millisecond {
		t.Errorf("expected 5000ms session, got %v", s.EndedAt-s.StartedAt)
	}

	surface := h.backend.surfaces[0]
	if surface.released != 1 {
		t.Errorf("expected one release, got %d", surface.released)
	}
	if h.viewport.attached != 0 {
		t.Errorf("surface still attached")
	}
	if h.queue.PendingFrames() != 0 || h.queue.PendingTimers() != 0 {
		t.Errorf("leftover callbacks: %d frames, %d timers", h.queue.PendingFrames(), h.queue.PendingTimers())
	}

	// Nothing renders into the released surface afterwards
	renders := surface.renders
	h.queue.RunFor(time.Second, frame)
	if surface.renders != renders {
		t.Errorf("render after release: %d -> %d", renders, surface.renders)
	}
	if len(h.recorder.sessions) != 1 {
		t.Errorf("session ended again")
	}
}

func TestTimeoutNotBeforeDuration(t *testing.T) {
	h := newHarness()
	handle, _ := h.manager.Begin(h.viewport)

	h.queue.RunFor(4990*time.Millisecond, frame)
	if !h.manager.Live(handle) {
		t.Error("session ended before its duration")
	}
}

func TestBeginSupersedesActiveSession(t *testing.T) {
	h := newHarness()
	first, _ := h.manager.Begin(h.viewport)
	h.queue.Step(frame)

	second, err := h.manager.Begin(h.viewport)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}

	want := []string{
		"acquire#1", "attach#1",
		"release#1", "detach#1",
		"acquire#2", "attach#2",
	}
	if diff := cmp.Diff(want, h.log.events); diff != "" {
		t.Errorf("old session not fully torn down before new allocation (-want +got):\n%s", diff)
	}

	if h.manager.Live(first) {
		t.Error("superseded handle still live")
	}
	if !h.manager.Live(second) {
		t.Error("new handle not live")
	}
	if second.Generation() <= first.Generation() {
		t.Errorf("generation did not increase: %d -> %d", first.Generation(), second.Generation())
	}
	if len(h.recorder.sessions) != 1 || h.recorder.sessions[0].Reason != components.EndSuperseded {
		t.Errorf("expected one superseded session, got %+v", h.recorder.sessions)
	}
	if h.queue.PendingFrames() != 1 {
		t.Errorf("expected a single tick stream, got %d pending frames", h.queue.PendingFrames())
	}
}

func TestSupersededTimerDoesNotEndNewSession(t *testing.T) {
	q := scheduler.NewQueue()
	h := newHarnessWith(q, lossyQueue{q})

	h.manager.Begin(h.viewport)
	q.RunFor(2*time.Second, frame)
	second, _ := h.manager.Begin(h.viewport)

	// First session's timer fires at 5s; cancellation was lost
	q.RunFor(3*time.Second+frame, frame)
	if !h.manager.Live(second) {
		t.Fatal("stale timer ended the newer session")
	}

	q.RunFor(2*time.Second, frame)
	if h.manager.Live(second) {
		t.Error("newer session outlived its own duration")
	}

	reasons := make([]components.EndReason, 0, len(h.recorder.sessions))
	for _, s := range h.recorder.sessions {
		reasons = append(reasons, s.Reason)
	}
	want := []components.EndReason{components.EndSuperseded, components.EndTimeout}
	if !slices.Equal(want, reasons) {
		t.Errorf("expected reasons %v, got %v", want, reasons)
	}
}

func TestEndIsIdempotent(t *testing.T) {
	h := newHarness()
	handle, _ := h.manager.Begin(h.viewport)

	h.manager.End(handle)
	h.manager.End(handle)
	h.manager.End(Handle{})
	h.manager.Teardown()

	if got := h.backend.surfaces[0].released; got != 1 {
		t.Errorf("expected one release, got %d", got)
	}
	if len(h.recorder.sessions) != 1 || h.recorder.sessions[0].Reason != components.EndExplicit {
		t.Errorf("expected one explicit end, got %+v", h.recorder.sessions)
	}
	if h.manager.Loop().State() != LoopIdle {
		t.Error("loop still running")
	}
	if _, ok := h.manager.Active(); ok {
		t.Error("manager still reports an active session")
	}
	if h.manager.Field(handle) != nil {
		t.Error("field reachable through ended handle")
	}
}

func TestStaleHandleDoesNotTouchNewSession(t *testing.T) {
	h := newHarness()
	old, _ := h.manager.Begin(h.viewport)
	h.manager.End(old)
	cur, _ := h.manager.Begin(h.viewport)

	h.manager.End(old)

	if !h.manager.Live(cur) {
		t.Error("ending a stale handle ended the live session")
	}
	if h.backend.surfaces[1].released != 0 {
		t.Error("live surface released through stale handle")
	}
}

func TestTeardownReleases(t *testing.T) {
	h := newHarness()
	h.manager.Begin(h.viewport)
	h.queue.RunFor(time.Second, frame)

	h.manager.Teardown()

	if len(h.recorder.sessions) != 1 || h.recorder.sessions[0].Reason != components.EndTeardown {
		t.Fatalf("expected teardown end, got %+v", h.recorder.sessions)
	}
	if h.backend.surfaces[0].released != 1 {
		t.Error("surface not released on teardown")
	}
	if h.queue.PendingTimers() != 0 {
		t.Error("duration timer left armed after teardown")
	}
	if frames := h.recorder.sessions[0].Frames(); frames < 59 || frames > 61 {
		t.Errorf("expected ~60 frames in 1s, got %d", frames)
	}
}

func TestBeginZeroAreaViewport(t *testing.T) {
	tests := []struct {
		name string
		vp   components.Viewport
	}{
		{"zero area", &fakeViewport{width: 0, height: 0, log: &eventLog{}}},
		{"zero height", &fakeViewport{width: 100, height: 0, log: &eventLog{}}},
		{"nil", nil},
		{"nil pointer", (*fakeViewport)(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			handle, err := h.manager.Begin(tt.vp)
			if !errors.Is(err, ErrNoViewport) {
				t.Errorf("expected ErrNoViewport, got %v", err)
			}
			if !handle.IsZero() {
				t.Error("expected zero handle")
			}
			if len(h.backend.surfaces) != 0 {
				t.Error("surface acquired for unusable viewport")
			}
			if h.manager.Loop().State() != LoopIdle {
				t.Error("loop started without a viewport")
			}
			if h.queue.PendingTimers() != 0 {
				t.Error("timer armed without a session")
			}
		})
	}
}

func TestBeginAcquireFailure(t *testing.T) {
	h := newHarness()
	h.backend.err = errNoGPU

	_, err := h.manager.Begin(h.viewport)
	if !errors.Is(err, errNoGPU) {
		t.Errorf("expected wrapped backend error, got %v", err)
	}
	if _, ok := h.manager.Active(); ok {
		t.Error("manager active after failed acquisition")
	}
	if h.viewport.attached != 0 {
		t.Error("nothing should be attached")
	}
}

func TestRendersOncePerFrame(t *testing.T) {
	h := newHarness()
	h.manager.Begin(h.viewport)

	h.queue.RunFor(500*time.Millisecond, frame)

	s := h.backend.surfaces[0]
	if s.renders < 29 || s.renders > 31 {
		t.Errorf("expected ~30 renders in 500ms, got %d", s.renders)
	}
}
