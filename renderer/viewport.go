package renderer

import (
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/podium/components"
)

// compositor is implemented by surfaces that can be drawn onto the screen.
type compositor interface {
	Composite(x, y float32)
}

// Overlay is a screen region that hosts celebration surfaces on top of the
// view beneath it.
type Overlay struct {
	Bounds   rl.Rectangle
	surfaces []components.Surface
}

// NewOverlay creates an overlay covering bounds.
func NewOverlay(bounds rl.Rectangle) *Overlay {
	return &Overlay{Bounds: bounds}
}

// Size returns the overlay size in whole pixels. A nil overlay has no area.
func (o *Overlay) Size() (width, height int) {
	if o == nil {
		return 0, 0
	}
	return int(o.Bounds.Width), int(o.Bounds.Height)
}

// Attach adds a surface to the overlay.
func (o *Overlay) Attach(s components.Surface) {
	if slices.Contains(o.surfaces, s) {
		return
	}
	o.surfaces = append(o.surfaces, s)
}

// Detach removes a surface from the overlay.
func (o *Overlay) Detach(s components.Surface) {
	o.surfaces = slices.DeleteFunc(o.surfaces, func(x components.Surface) bool {
		return x == s
	})
}

// Attached returns the number of attached surfaces.
func (o *Overlay) Attached() int {
	return len(o.surfaces)
}

// Draw composites every attached surface at the overlay origin.
func (o *Overlay) Draw() {
	for _, s := range o.surfaces {
		if c, ok := s.(compositor); ok {
			c.Composite(o.Bounds.X, o.Bounds.Y)
		}
	}
}
