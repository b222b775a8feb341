// Package scheduler provides a single-threaded cooperative frame and timer
// queue. The host pumps it once per display refresh; nothing runs between
// pumps, so callbacks never race each other.
package scheduler

import (
	"container/heap"
	"time"
)

// Token identifies a pending frame request or timer. The zero Token is never issued.
type Token uint64

// FrameFunc is invoked once on the next pump with the pump's clock reading.
type FrameFunc func(now time.Duration)

// Scheduler is the interface consumed by the celebration subsystem.
type Scheduler interface {
	// RequestFrame queues fn for the next pump.
	RequestFrame(fn FrameFunc) Token
	// CancelFrame drops a pending frame request. Unknown tokens are ignored.
	CancelFrame(t Token)
	// AfterFunc runs fn on the first pump at or after Now()+d.
	AfterFunc(d time.Duration, fn func()) Token
	// CancelTimer drops a pending timer. Unknown tokens are ignored.
	CancelTimer(t Token)
	// Now returns the clock reading of the most recent pump.
	Now() time.Duration
}

type frameRequest struct {
	token Token
	fn    FrameFunc
}

type timer struct {
	token    Token
	deadline time.Duration
	seq      uint64
	fn       func()
	idx      int
}

// Queue is the Scheduler implementation. It has no clock of its own: time only
// moves when Advance is called, which makes it usable both behind a real
// display loop and as a deterministic clock in tests.
type Queue struct {
	now       time.Duration
	nextToken Token
	seq       uint64

	frames    []frameRequest
	cancelled map[Token]struct{}
	timers    timerHeap
	timerIdx  map[Token]*timer

	frameRuns int
	timerRuns int
}

// NewQueue creates a queue with its clock at zero.
func NewQueue() *Queue {
	return &Queue{
		cancelled: make(map[Token]struct{}),
		timerIdx:  make(map[Token]*timer),
	}
}

func (q *Queue) issue() Token {
	q.nextToken++
	return q.nextToken
}

// RequestFrame queues fn for the next Advance.
func (q *Queue) RequestFrame(fn FrameFunc) Token {
	t := q.issue()
	q.frames = append(q.frames, frameRequest{token: t, fn: fn})
	return t
}

// CancelFrame drops a pending frame request.
func (q *Queue) CancelFrame(t Token) {
	for i := range q.frames {
		if q.frames[i].token == t {
			q.frames = append(q.frames[:i], q.frames[i+1:]...)
			return
		}
	}
	// Already taken by an in-progress Advance; skip it when reached
	q.cancelled[t] = struct{}{}
}

// AfterFunc schedules fn to run once the clock reaches Now()+d.
func (q *Queue) AfterFunc(d time.Duration, fn func()) Token {
	if d < 0 {
		d = 0
	}
	t := q.issue()
	q.seq++
	tm := &timer{token: t, deadline: q.now + d, seq: q.seq, fn: fn}
	heap.Push(&q.timers, tm)
	q.timerIdx[t] = tm
	return t
}

// CancelTimer drops a pending timer.
func (q *Queue) CancelTimer(t Token) {
	tm, ok := q.timerIdx[t]
	if !ok {
		return
	}
	heap.Remove(&q.timers, tm.idx)
	delete(q.timerIdx, t)
}

// Now returns the clock reading of the most recent Advance.
func (q *Queue) Now() time.Duration {
	return q.now
}

// Advance moves the clock to now and runs, in order, every timer whose
// deadline has passed and then every frame request that was pending when the
// call began. Frames requested during the call run on the next Advance.
// A clock reading earlier than the current one is treated as no time passing.
func (q *Queue) Advance(now time.Duration) {
	if now > q.now {
		q.now = now
	}

	for q.timers.Len() > 0 && q.timers[0].deadline <= q.now {
		tm := heap.Pop(&q.timers).(*timer)
		delete(q.timerIdx, tm.token)
		q.timerRuns++
		tm.fn()
	}

	batch := q.frames
	q.frames = nil
	for _, req := range batch {
		if _, skip := q.cancelled[req.token]; skip {
			delete(q.cancelled, req.token)
			continue
		}
		q.frameRuns++
		req.fn(q.now)
	}
	clear(q.cancelled)
}

// Step advances the clock by d.
func (q *Queue) Step(d time.Duration) {
	q.Advance(q.now + d)
}

// RunFor pumps the queue at the given frame interval until total has elapsed.
func (q *Queue) RunFor(total, interval time.Duration) {
	if interval <= 0 {
		return
	}
	end := q.now + total
	for q.now < end {
		step := interval
		if q.now+step > end {
			step = end - q.now
		}
		q.Step(step)
	}
}

// PendingFrames returns the number of queued frame requests.
func (q *Queue) PendingFrames() int {
	return len(q.frames)
}

// PendingTimers returns the number of armed timers.
func (q *Queue) PendingTimers() int {
	return q.timers.Len()
}

// FrameRuns returns how many frame callbacks have been invoked.
func (q *Queue) FrameRuns() int {
	return q.frameRuns
}

// TimerRuns returns how many timer callbacks have been invoked.
func (q *Queue) TimerRuns() int {
	return q.timerRuns
}
