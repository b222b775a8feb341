package renderer

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/podium/components"
	"github.com/pthm-cable/podium/config"
	"github.com/pthm-cable/podium/systems"
)

// ErrContextUnavailable is returned when the GPU render target cannot be created.
var ErrContextUnavailable = errors.New("render context unavailable")

// ConfettiBackend allocates raylib confetti surfaces. Requires an open window.
type ConfettiBackend struct {
	cfg config.CelebrationConfig
	rng *rand.Rand
}

// NewConfettiBackend creates a backend drawing with the given celebration settings.
func NewConfettiBackend(cfg config.CelebrationConfig, rng *rand.Rand) *ConfettiBackend {
	cfg.ApplyDefaults()
	return &ConfettiBackend{cfg: cfg, rng: rng}
}

// Acquire creates a render texture of the viewport size and an instance buffer.
func (b *ConfettiBackend) Acquire(width, height, instances int) (components.Surface, error) {
	if !rl.IsWindowReady() {
		return nil, fmt.Errorf("no window: %w", ErrContextUnavailable)
	}

	target := rl.LoadRenderTexture(int32(width), int32(height))
	if target.ID == 0 {
		return nil, fmt.Errorf("loading %dx%d render texture: %w", width, height, ErrContextUnavailable)
	}

	radius := float32(b.cfg.Radius)
	return &ConfettiSurface{
		target: target,
		width:  float32(width),
		height: float32(height),
		camera: rl.Camera3D{
			Position:   rl.Vector3{Z: radius * math.Sqrt2},
			Target:     rl.Vector3{},
			Up:         rl.Vector3{Y: 1},
			Fovy:       float32(b.cfg.CameraFOV),
			Projection: rl.CameraPerspective,
		},
		buffer: NewInstanceBuffer(instances, b.rng),
		size:   float32(b.cfg.ConfettiSize),
	}, nil
}

// ConfettiSurface draws confetti into an off-screen render texture that the
// viewport composites over the host view.
type ConfettiSurface struct {
	target        rl.RenderTexture2D
	width, height float32
	camera        rl.Camera3D
	buffer        *InstanceBuffer
	size          float32
	released      bool
}

// Render uploads the field into the instance buffer and redraws the texture.
func (s *ConfettiSurface) Render(field *systems.ParticleField) {
	if s.released {
		return
	}
	n := s.buffer.Update(field)

	rl.BeginTextureMode(s.target)
	rl.ClearBackground(rl.Blank)
	rl.BeginMode3D(s.camera)
	rl.DisableBackfaceCulling()

	quad := rl.Vector2{X: s.size / 2, Y: s.size}
	for i := 0; i < n; i++ {
		inst := &s.buffer.Instances[i]
		m := rl.MatrixToFloat(inst.Transform())
		rl.PushMatrix()
		rl.MultMatrixf(m[:])
		rl.DrawPlane(rl.Vector3{}, quad, inst.Color)
		rl.PopMatrix()
	}

	rl.EnableBackfaceCulling()
	rl.EndMode3D()
	rl.EndTextureMode()
}

// Composite draws the surface texture at the given screen position.
func (s *ConfettiSurface) Composite(x, y float32) {
	if s.released {
		return
	}
	// Render textures are stored upside down
	src := rl.Rectangle{X: 0, Y: 0, Width: s.width, Height: -s.height}
	rl.DrawTextureRec(s.target.Texture, src, rl.Vector2{X: x, Y: y}, rl.White)
}

// Release frees the render texture and the instance buffer.
func (s *ConfettiSurface) Release() {
	if s.released {
		return
	}
	rl.UnloadRenderTexture(s.target)
	s.buffer = nil
	s.released = true
}
