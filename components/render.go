package components

import "github.com/pthm-cable/podium/systems"

// Surface is a rendering context plus instance buffer acquired for one session.
type Surface interface {
	// Render uploads the particle state and draws it into the surface.
	Render(field *systems.ParticleField)
	// Release frees the context and buffer. Calls after the first are no-ops.
	Release()
}

// Viewport is the host container a surface is composited into.
type Viewport interface {
	// Size returns the pixel size at the time of the call.
	Size() (width, height int)
	Attach(s Surface)
	Detach(s Surface)
}

// Backend allocates surfaces.
type Backend interface {
	// Acquire allocates a width x height context with room for instances particles.
	Acquire(width, height, instances int) (Surface, error)
}
