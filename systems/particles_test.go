package systems

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/podium/config"
)

func testMotion() MotionParams {
	return MotionFromConfig(config.DefaultCelebration())
}

func newTestField(count int) *ParticleField {
	return NewParticleField(count, 5, testMotion(), rand.New(rand.NewSource(42)))
}

func TestParticleFieldInit(t *testing.T) {
	f := newTestField(1000)

	if f.Len() != 1000 {
		t.Fatalf("expected 1000 particles, got %d", f.Len())
	}

	for i, p := range f.Particles {
		if p.Lane != Lane(i%4) {
			t.Errorf("particle %d: expected lane %d, got %d", i, i%4, p.Lane)
		}
		if r3.Norm(p.Position) > 5+1e-9 {
			t.Errorf("particle %d outside sphere: %v", i, p.Position)
		}
		if p.Rotation.X < 0 || p.Rotation.X >= math.Pi || p.Rotation.Z < 0 || p.Rotation.Z >= math.Pi {
			t.Errorf("particle %d: rotation out of [0, pi): %+v", i, p.Rotation)
		}
	}
}

func TestParticleFieldNegativeCount(t *testing.T) {
	f := newTestField(-3)
	if f.Len() != 0 {
		t.Errorf("expected empty field, got %d", f.Len())
	}
	f.Step(ReferenceFrame)
}

func TestLaneFallSpeedStratified(t *testing.T) {
	f := newTestField(4)
	// Place all particles at the same height so the fall is comparable
	for i := range f.Particles {
		f.Particles[i].Position = r3.Vec{}
	}

	f.Step(ReferenceFrame)

	vs := testMotion().VerticalSpeed
	for i, p := range f.Particles {
		want := -vs * float64(i+1)
		if math.Abs(p.Position.Y-want) > 1e-12 {
			t.Errorf("lane %d: expected y=%f, got %f", i, want, p.Position.Y)
		}
	}
}

func TestLaneDriftDirections(t *testing.T) {
	want := map[Lane][2]float64{
		LaneBackLeft:   {-1, -1},
		LaneFrontRight: {1, 1},
		LaneBackRight:  {1, -1},
		LaneFrontLeft:  {-1, 1},
	}

	f := newTestField(4)
	for i := range f.Particles {
		f.Particles[i].Position = r3.Vec{}
	}
	f.Step(ReferenceFrame)

	m := testMotion()
	for _, p := range f.Particles {
		sign := want[p.Lane]
		if math.Abs(p.Position.X-sign[0]*m.HorizontalSpeed) > 1e-12 {
			t.Errorf("lane %d: x drift %f", p.Lane, p.Position.X)
		}
		if math.Abs(p.Position.Z-sign[1]*m.DepthSpeed) > 1e-12 {
			t.Errorf("lane %d: z drift %f", p.Lane, p.Position.Z)
		}
	}
}

func TestParticleStaysAboveFloor(t *testing.T) {
	f := newTestField(200)

	for step := 0; step < 5000; step++ {
		f.Step(ReferenceFrame)
		for i, p := range f.Particles {
			if p.Position.Y < -f.Radius() {
				t.Fatalf("step %d particle %d below floor: y=%f", step, i, p.Position.Y)
			}
			if p.Position.Y > f.Radius() {
				t.Fatalf("step %d particle %d above ceiling: y=%f", step, i, p.Position.Y)
			}
		}
	}
}

func TestParticleStaysAboveFloorLargeDT(t *testing.T) {
	f := newTestField(100)
	for step := 0; step < 50; step++ {
		f.Step(2 * time.Second)
		for i, p := range f.Particles {
			if p.Position.Y < -f.Radius() {
				t.Fatalf("particle %d below floor after large step: %f", i, p.Position.Y)
			}
		}
	}
}

func TestTeleportKeepsRotation(t *testing.T) {
	f := newTestField(1)
	p := &f.Particles[0]
	p.Position = r3.Vec{X: 1, Y: -f.Radius() + 1e-6, Z: 1}
	p.Rotation = Rotation{X: 2, Z: 3}

	f.Step(ReferenceFrame)

	if p.Position.Y != f.Radius() {
		t.Errorf("expected teleport to y=%f, got %f", f.Radius(), p.Position.Y)
	}
	if math.Abs(p.Position.X) > f.Radius() || math.Abs(p.Position.Z) > f.Radius() {
		t.Errorf("teleported x/z outside [-R, R]: %v", p.Position)
	}

	m := testMotion()
	if p.Rotation.X < 2 || p.Rotation.X > 2+m.MaxRotationX {
		t.Errorf("rotation x discontinuous across teleport: %f", p.Rotation.X)
	}
	if p.Rotation.Z < 3 || p.Rotation.Z > 3+m.MaxRotationZ {
		t.Errorf("rotation z discontinuous across teleport: %f", p.Rotation.Z)
	}
}

func TestRotationIncreasesWithinBound(t *testing.T) {
	f := newTestField(64)
	before := make([]Rotation, f.Len())
	for i, p := range f.Particles {
		before[i] = p.Rotation
	}

	f.Step(ReferenceFrame)

	m := testMotion()
	for i, p := range f.Particles {
		dx := p.Rotation.X - before[i].X
		dz := p.Rotation.Z - before[i].Z
		if dx < 0 || dx > m.MaxRotationX {
			t.Errorf("particle %d: x spin %f outside [0, %f]", i, dx, m.MaxRotationX)
		}
		if dz < 0 || dz > m.MaxRotationZ {
			t.Errorf("particle %d: z spin %f outside [0, %f]", i, dz, m.MaxRotationZ)
		}
	}
}

func TestStepZeroDTIsNoop(t *testing.T) {
	f := newTestField(8)
	before := append([]Particle(nil), f.Particles...)

	f.Step(0)

	for i := range f.Particles {
		if f.Particles[i] != before[i] {
			t.Errorf("particle %d changed on zero dt", i)
		}
	}
	if f.Steps() != 0 {
		t.Errorf("expected 0 steps, got %d", f.Steps())
	}
}

func TestParticleFieldDeterministicWithSeed(t *testing.T) {
	a := newTestField(32)
	b := newTestField(32)
	for i := 0; i < 100; i++ {
		a.Step(ReferenceFrame)
		b.Step(ReferenceFrame)
	}
	for i := range a.Particles {
		if a.Particles[i] != b.Particles[i] {
			t.Fatalf("particle %d diverged with same seed", i)
		}
	}
}
