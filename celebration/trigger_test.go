package celebration

import (
	"testing"
	"time"

	"github.com/pthm-cable/podium/components"
	"github.com/pthm-cable/podium/ranking"
)

func entries(ids ...string) []ranking.Entry {
	list := make([]ranking.Entry, len(ids))
	for i, id := range ids {
		list[i] = ranking.Entry{ID: id, Name: id, Score: float64(100 - i)}
	}
	return list
}

func newTestCelebrator() (*Celebrator, *harness) {
	h := newHarness()
	return NewCelebrator(h.manager, h.viewport, 3, quietLogger()), h
}

func TestNotifyRankingScenarios(t *testing.T) {
	tests := []struct {
		name string
		next []ranking.Entry
		want bool
	}{
		{"swap", entries("B", "A", "C"), true},
		{"unchanged", entries("A", "B", "C"), false},
		{"third drops off", entries("A", "B"), true},
		{"change below top three", entries("A", "B", "C", "E"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, h := newTestCelebrator()
			if c.NotifyRanking(entries("A", "B", "C", "D")) {
				t.Fatal("first list must not celebrate")
			}
			if got := c.NotifyRanking(tt.next); got != tt.want {
				t.Errorf("NotifyRanking = %v, want %v", got, tt.want)
			}
			if tt.want && len(h.backend.surfaces) != 1 {
				t.Errorf("expected one acquisition, got %d", len(h.backend.surfaces))
			}
			if !tt.want && len(h.backend.surfaces) != 0 {
				t.Errorf("unexpected acquisition")
			}
		})
	}
}

func TestNotifyRankingRepeatedChangeFiresOnce(t *testing.T) {
	c, h := newTestCelebrator()
	c.NotifyRanking(entries("A", "B", "C"))

	fired := 0
	for i := 0; i < 3; i++ {
		if c.NotifyRanking(entries("B", "A", "C")) {
			fired++
		}
	}
	if fired != 1 {
		t.Errorf("expected one celebration, got %d", fired)
	}
	if len(h.backend.surfaces) != 1 {
		t.Errorf("expected one acquisition, got %d", len(h.backend.surfaces))
	}
}

func TestNotifyRankingSupersedes(t *testing.T) {
	c, h := newTestCelebrator()
	c.NotifyRanking(entries("A", "B", "C"))
	c.NotifyRanking(entries("B", "A", "C"))
	h.queue.RunFor(time.Second, frame)
	c.NotifyRanking(entries("C", "B", "A"))

	if len(h.recorder.sessions) != 1 || h.recorder.sessions[0].Reason != components.EndSuperseded {
		t.Errorf("expected first session superseded, got %+v", h.recorder.sessions)
	}
	if h.viewport.attached != 1 {
		t.Errorf("expected exactly one attached surface, got %d", h.viewport.attached)
	}
}

func TestNotifyRankingSoftFailures(t *testing.T) {
	c, h := newTestCelebrator()
	c.SetViewport(&fakeViewport{log: h.log})

	c.NotifyRanking(entries("A", "B", "C"))
	if c.NotifyRanking(entries("B", "A", "C")) {
		t.Error("zero-area viewport must not celebrate")
	}

	// The detector still advanced; an unchanged list stays quiet
	c.SetViewport(h.viewport)
	if c.NotifyRanking(entries("B", "A", "C")) {
		t.Error("detector did not record the failed trigger's snapshot")
	}

	h.backend.err = errNoGPU
	if c.NotifyRanking(entries("A", "B", "C")) {
		t.Error("acquisition failure must not report a celebration")
	}
	if _, ok := h.manager.Active(); ok {
		t.Error("manager active after failure")
	}
}

func TestNotifyRankingNilPointerViewport(t *testing.T) {
	h := newHarness()
	c := NewCelebrator(h.manager, (*fakeViewport)(nil), 3, quietLogger())

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("nil viewport panicked into the ranking flow: %v", r)
		}
	}()

	c.NotifyRanking(entries("A", "B"))
	if c.NotifyRanking(entries("B", "A")) {
		t.Error("nil viewport must not celebrate")
	}
	if len(h.backend.surfaces) != 0 {
		t.Error("surface acquired for a nil viewport")
	}
}

func TestNotifyRankingComparesAtMostThree(t *testing.T) {
	h := newHarness()
	c := NewCelebrator(h.manager, h.viewport, 5, quietLogger())

	c.NotifyRanking(entries("A", "B", "C", "D", "E"))
	if c.NotifyRanking(entries("A", "B", "C", "E", "D")) {
		t.Error("a change below third place must not celebrate")
	}
}

func TestTeardownEndsAndResets(t *testing.T) {
	c, h := newTestCelebrator()
	c.NotifyRanking(entries("A", "B", "C"))
	c.NotifyRanking(entries("B", "A", "C"))

	c.Teardown()

	if len(h.recorder.sessions) != 1 || h.recorder.sessions[0].Reason != components.EndTeardown {
		t.Errorf("expected teardown end, got %+v", h.recorder.sessions)
	}
	if c.NotifyRanking(entries("C", "A", "B")) {
		t.Error("first list after teardown must not celebrate")
	}

	c.Teardown() // idle teardown is harmless
}

func TestCelebrationScenarioFullDuration(t *testing.T) {
	c, h := newTestCelebrator()
	c.NotifyRanking(entries("A", "B", "C"))
	c.NotifyRanking(entries("A", "C", "B"))

	h.queue.RunFor(5000*time.Millisecond, frame)

	if len(h.recorder.sessions) != 1 {
		t.Fatalf("expected exactly one end, got %d", len(h.recorder.sessions))
	}
	if h.recorder.sessions[0].Reason != components.EndTimeout {
		t.Errorf("expected timeout, got %s", h.recorder.sessions[0].Reason)
	}
	if h.backend.surfaces[0].released != 1 {
		t.Error("resources not released")
	}
}
