package systems

import (
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/podium/config"
)

// ReferenceFrame is the frame duration that per-step speeds are expressed in.
const ReferenceFrame = time.Second / 60

// NumLanes is the number of particle lanes.
const NumLanes = 4

// Lane identifies a particle's index-derived class. Higher lanes fall faster;
// each lane drifts in its own fixed horizontal direction.
type Lane uint8

const (
	LaneBackLeft   Lane = iota // drifts -x, -z
	LaneFrontRight             // drifts +x, +z
	LaneBackRight              // drifts +x, -z
	LaneFrontLeft              // drifts -x, +z
)

var laneDirections = [NumLanes]r3.Vec{
	LaneBackLeft:   {X: -1, Z: -1},
	LaneFrontRight: {X: 1, Z: 1},
	LaneBackRight:  {X: 1, Z: -1},
	LaneFrontLeft:  {X: -1, Z: 1},
}

// LaneFor returns the lane of the particle at index i.
func LaneFor(i int) Lane {
	return Lane(i % NumLanes)
}

// Direction returns the unit-sign drift direction of the lane on the x/z plane.
func (l Lane) Direction() r3.Vec {
	return laneDirections[l]
}

// FallFactor returns the vertical speed multiplier of the lane.
func (l Lane) FallFactor() float64 {
	return float64(l) + 1
}

// Rotation holds a particle's cosmetic spin angles in radians.
type Rotation struct {
	X, Z float64
}

// Particle is a single confetti piece.
type Particle struct {
	Position r3.Vec
	Rotation Rotation
	Lane     Lane

	// Velocity per reference frame, fixed at creation from the lane
	Velocity r3.Vec
}

// MotionParams holds the per-reference-frame motion constants.
type MotionParams struct {
	VerticalSpeed   float64
	HorizontalSpeed float64 // drift magnitude along x
	DepthSpeed      float64 // drift magnitude along z
	MaxRotationX    float64
	MaxRotationZ    float64
}

// MotionFromConfig extracts motion constants from a celebration config.
func MotionFromConfig(c config.CelebrationConfig) MotionParams {
	return MotionParams{
		VerticalSpeed:   c.VerticalSpeed,
		HorizontalSpeed: c.HorizontalSpeed,
		DepthSpeed:      c.DepthSpeed,
		MaxRotationX:    c.MaxRotationRate.X,
		MaxRotationZ:    c.MaxRotationRate.Z,
	}
}

// ParticleField owns a fixed set of independent falling particles confined to
// a sphere of the given radius by teleporting them back to the top.
type ParticleField struct {
	Particles []Particle

	radius float64
	motion MotionParams
	rng    *rand.Rand
	steps  int
}

// NewParticleField creates count particles at random positions inside the
// sphere of the given radius, with random initial spin.
func NewParticleField(count int, radius float64, motion MotionParams, rng *rand.Rand) *ParticleField {
	if count < 0 {
		count = 0
	}
	f := &ParticleField{
		Particles: make([]Particle, count),
		radius:    radius,
		motion:    motion,
		rng:       rng,
	}

	for i := range f.Particles {
		lane := LaneFor(i)
		dir := lane.Direction()
		f.Particles[i] = Particle{
			Position: f.pointInSphere(),
			Rotation: Rotation{
				X: rng.Float64() * math.Pi,
				Z: rng.Float64() * math.Pi,
			},
			Lane: lane,
			Velocity: r3.Vec{
				X: dir.X * motion.HorizontalSpeed,
				Y: -motion.VerticalSpeed * lane.FallFactor(),
				Z: dir.Z * motion.DepthSpeed,
			},
		}
	}

	return f
}

// pointInSphere samples a uniform point inside the bounding sphere by rejection.
func (f *ParticleField) pointInSphere() r3.Vec {
	if f.radius <= 0 {
		return r3.Vec{}
	}
	for {
		p := r3.Vec{X: f.symmetric(), Y: f.symmetric(), Z: f.symmetric()}
		if r3.Norm(p) <= f.radius {
			return p
		}
	}
}

// symmetric returns a uniform value in [-radius, radius].
func (f *ParticleField) symmetric() float64 {
	return (f.rng.Float64()*2 - 1) * f.radius
}

// Step advances every particle by dt. Speeds scale with dt relative to
// ReferenceFrame; a non-positive dt leaves the field unchanged.
func (f *ParticleField) Step(dt time.Duration) {
	if dt <= 0 {
		return
	}
	scale := float64(dt) / float64(ReferenceFrame)

	for i := range f.Particles {
		p := &f.Particles[i]

		p.Position.Y += p.Velocity.Y * scale

		if p.Position.Y < -f.radius {
			// Back to the top at a fresh column; spin carries on
			p.Position = r3.Vec{X: f.symmetric(), Y: f.radius, Z: f.symmetric()}
		} else {
			drift := r3.Vec{X: p.Velocity.X, Z: p.Velocity.Z}
			p.Position = r3.Add(p.Position, r3.Scale(scale, drift))
		}

		p.Rotation.X += f.rng.Float64() * f.motion.MaxRotationX * scale
		p.Rotation.Z += f.rng.Float64() * f.motion.MaxRotationZ * scale
	}

	f.steps++
}

// Len returns the number of particles.
func (f *ParticleField) Len() int {
	return len(f.Particles)
}

// Radius returns the bounding sphere radius.
func (f *ParticleField) Radius() float64 {
	return f.radius
}

// Steps returns how many steps have been applied.
func (f *ParticleField) Steps() int {
	return f.steps
}
