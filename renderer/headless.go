package renderer

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/pthm-cable/podium/components"
	"github.com/pthm-cable/podium/systems"
)

// ErrInstanceBudget is returned when a surface would exceed the backend's instance budget.
var ErrInstanceBudget = errors.New("instance budget exceeded")

// HeadlessBackend allocates surfaces that fill an instance buffer without
// drawing. Used when running without a window.
type HeadlessBackend struct {
	// Budget caps instances per surface; 0 means no cap
	Budget int

	rng  *rand.Rand
	live int
}

// NewHeadlessBackend creates a headless backend.
func NewHeadlessBackend(rng *rand.Rand, budget int) *HeadlessBackend {
	return &HeadlessBackend{rng: rng, Budget: budget}
}

// Acquire allocates an instance buffer for the requested size.
func (b *HeadlessBackend) Acquire(width, height, instances int) (components.Surface, error) {
	if b.Budget > 0 && instances > b.Budget {
		return nil, fmt.Errorf("%d instances over budget %d: %w", instances, b.Budget, ErrInstanceBudget)
	}
	b.live++
	return &HeadlessSurface{
		backend: b,
		Width:   width,
		Height:  height,
		Buffer:  NewInstanceBuffer(instances, b.rng),
	}, nil
}

// Live returns the number of surfaces acquired and not yet released.
func (b *HeadlessBackend) Live() int {
	return b.live
}

// HeadlessSurface keeps the instance buffer current and counts frames.
type HeadlessSurface struct {
	Width, Height int
	Buffer        *InstanceBuffer
	Frames        int

	backend  *HeadlessBackend
	released bool
}

// Render updates the instance buffer from the field.
func (s *HeadlessSurface) Render(field *systems.ParticleField) {
	if s.released {
		return
	}
	s.Buffer.Update(field)
	s.Frames++
}

// Release drops the instance buffer.
func (s *HeadlessSurface) Release() {
	if s.released {
		return
	}
	s.released = true
	s.Buffer = nil
	s.backend.live--
}

// Released reports whether Release has been called.
func (s *HeadlessSurface) Released() bool {
	return s.released
}
