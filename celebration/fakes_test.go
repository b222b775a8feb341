package celebration

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/podium/components"
	"github.com/pthm-cable/podium/config"
	"github.com/pthm-cable/podium/scheduler"
	"github.com/pthm-cable/podium/systems"
)

const frame = time.Second / 60

var errNoGPU = errors.New("no gpu")

// eventLog records resource operations in order.
type eventLog struct {
	events []string
}

func (l *eventLog) add(format string, args ...any) {
	l.events = append(l.events, fmt.Sprintf(format, args...))
}

type fakeSurface struct {
	id       int
	log      *eventLog
	renders  int
	released int
}

func (s *fakeSurface) Render(*systems.ParticleField) {
	s.renders++
}

func (s *fakeSurface) Release() {
	s.released++
	s.log.add("release#%d", s.id)
}

type fakeBackend struct {
	log      *eventLog
	err      error
	surfaces []*fakeSurface
}

func (b *fakeBackend) Acquire(width, height, instances int) (components.Surface, error) {
	if b.err != nil {
		return nil, b.err
	}
	s := &fakeSurface{id: len(b.surfaces) + 1, log: b.log}
	b.surfaces = append(b.surfaces, s)
	b.log.add("acquire#%d", s.id)
	return s, nil
}

type fakeViewport struct {
	width, height int
	log           *eventLog
	attached      int
}

func (v *fakeViewport) Size() (int, int) {
	return v.width, v.height
}

func (v *fakeViewport) Attach(s components.Surface) {
	v.attached++
	v.log.add("attach#%d", s.(*fakeSurface).id)
}

func (v *fakeViewport) Detach(s components.Surface) {
	v.attached--
	v.log.add("detach#%d", s.(*fakeSurface).id)
}

type sessionRecorder struct {
	sessions []SessionSummary
}

func (r *sessionRecorder) RecordSession(s SessionSummary) {
	r.sessions = append(r.sessions, s)
}

// lossyQueue ignores cancellation, so only generation checks can stop stale callbacks.
type lossyQueue struct {
	*scheduler.Queue
}

func (lossyQueue) CancelFrame(scheduler.Token) {}
func (lossyQueue) CancelTimer(scheduler.Token) {}

type harness struct {
	queue    *scheduler.Queue
	log      *eventLog
	backend  *fakeBackend
	viewport *fakeViewport
	recorder *sessionRecorder
	manager  *Manager
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCelebrationConfig() config.CelebrationConfig {
	c := config.DefaultCelebration()
	c.ParticleCount = 40
	return c
}

func newHarness() *harness {
	return newHarnessWith(scheduler.NewQueue(), nil)
}

func newHarnessWith(q *scheduler.Queue, sched scheduler.Scheduler) *harness {
	if sched == nil {
		sched = q
	}
	log := &eventLog{}
	h := &harness{
		queue:    q,
		log:      log,
		backend:  &fakeBackend{log: log},
		viewport: &fakeViewport{width: 640, height: 360, log: log},
		recorder: &sessionRecorder{},
	}
	h.manager = NewManager(sched, h.backend, ManagerOptions{
		Config:   testCelebrationConfig(),
		Rand:     rand.New(rand.NewSource(1)),
		Logger:   quietLogger(),
		Recorder: h.recorder,
	})
	return h
}
