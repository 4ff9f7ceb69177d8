package level

import "github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/core"

// Box is a block in simulation space, positioned by its center.
type Box struct {
	Center        core.Vec
	Width, Height float64
}

// SimLevel is a level in simulation space: meters, bottom-left origin, y up.
type SimLevel struct {
	ID       string
	Targets  []core.Vec
	Boxes    []Box
	Launcher core.Vec
}

// Options controls how editor geometry maps into the world.
type Options struct {
	Scale           float64  // editor pixels per meter
	BaseHeight      float64  // minimum editor canvas height
	DefaultLauncher core.Vec // used when a level has no catapult
}

// DefaultOptions returns the editor conventions the game ships with.
func DefaultOptions() Options {
	return Options{
		Scale:           30,
		BaseHeight:      600,
		DefaultLauncher: core.V(5, 5),
	}
}

// ReferenceHeight returns the canvas height levels are flipped around: the
// base height, or the lowest element edge if the level extends past it.
func ReferenceHeight(d Descriptor, base float64) float64 {
	h := base
	for _, e := range d.Blocks {
		h = max(h, e.Y+e.Height)
	}
	return h
}

// Translate converts editor geometry into simulation space around the given
// reference height. It does not modify d.
func Translate(d Descriptor, referenceHeight float64, opts Options) SimLevel {
	sim := SimLevel{
		ID:       d.ID,
		Launcher: opts.DefaultLauncher,
	}

	for _, e := range d.Blocks {
		cx := (e.X + e.Width/2) / opts.Scale
		cy := (referenceHeight - (e.Y + e.Height/2)) / opts.Scale

		switch e.Kind() {
		case TypeEnemy:
			sim.Targets = append(sim.Targets, core.V(cx, cy))
		case TypeCatapult:
			// last catapult wins
			sim.Launcher = core.V(cx, cy)
		default:
			sim.Boxes = append(sim.Boxes, Box{
				Center: core.V(cx, cy),
				Width:  e.Width / opts.Scale,
				Height: e.Height / opts.Scale,
			})
		}
	}
	return sim
}

// FromDescriptor translates d around its own reference height.
func FromDescriptor(d Descriptor, opts Options) SimLevel {
	return Translate(d, ReferenceHeight(d, opts.BaseHeight), opts)
}

// FromDescriptors translates a whole campaign, in order.
func FromDescriptors(ds []Descriptor, opts Options) []SimLevel {
	out := make([]SimLevel, 0, len(ds))
	for _, d := range ds {
		out = append(out, FromDescriptor(d, opts))
	}
	return out
}
