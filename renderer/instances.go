package renderer

import (
	"math"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/podium/systems"
)

// paletteHues are the confetti hues in degrees, fully saturated.
var paletteHues = [12]float32{0, 30, 60, 90, 120, 150, 180, 210, 240, 270, 300, 330}

// PaletteColor returns the confetti color for palette slot i.
func PaletteColor(i int) rl.Color {
	return rl.ColorFromHSV(paletteHues[i%len(paletteHues)], 1, 1)
}

// Instance is the per-particle draw record.
type Instance struct {
	Position rl.Vector3
	Rotation rl.Vector3 // degrees
	Color    rl.Color
}

// InstanceBuffer is the CPU-side instance data for one surface. Its size is
// fixed at allocation; colors are assigned once.
type InstanceBuffer struct {
	Instances []Instance
}

// NewInstanceBuffer allocates n instances with random palette colors.
func NewInstanceBuffer(n int, rng *rand.Rand) *InstanceBuffer {
	if n < 0 {
		n = 0
	}
	b := &InstanceBuffer{Instances: make([]Instance, n)}
	for i := range b.Instances {
		b.Instances[i].Color = PaletteColor(rng.Intn(len(paletteHues)))
	}
	return b
}

// Update copies particle transforms into the buffer. Particles beyond the
// buffer size are not drawn. Returns the number of instances written.
func (b *InstanceBuffer) Update(field *systems.ParticleField) int {
	n := min(len(b.Instances), field.Len())
	for i := 0; i < n; i++ {
		p := &field.Particles[i]
		inst := &b.Instances[i]
		inst.Position = rl.Vector3{
			X: float32(p.Position.X),
			Y: float32(p.Position.Y),
			Z: float32(p.Position.Z),
		}
		inst.Rotation = rl.Vector3{
			X: float32(math.Mod(p.Rotation.X, 2*math.Pi) * rl.Rad2deg),
			Z: float32(math.Mod(p.Rotation.Z, 2*math.Pi) * rl.Rad2deg),
		}
	}
	return n
}

// Len returns the buffer capacity in instances.
func (b *InstanceBuffer) Len() int {
	return len(b.Instances)
}

// Transform returns the model matrix of the instance. DrawPlane lies in the
// XZ plane, so the quad is first stood up into XY facing the camera, then
// spun on X and Z and moved to its position.
func (inst Instance) Transform() rl.Matrix {
	m := rl.MatrixRotateX(math.Pi / 2)
	m = rl.MatrixMultiply(m, rl.MatrixRotateX(inst.Rotation.X*rl.Deg2rad))
	m = rl.MatrixMultiply(m, rl.MatrixRotateZ(inst.Rotation.Z*rl.Deg2rad))
	return rl.MatrixMultiply(m, rl.MatrixTranslate(inst.Position.X, inst.Position.Y, inst.Position.Z))
}
