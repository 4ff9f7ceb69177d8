package slingshot

import (
	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/config"
	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/core"
	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/level"
	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/physics"
)

// fakeWorld is a scripted physics world: bodies stay where tests put them
// and each Step returns the contacts queued for it.
type fakeWorld struct {
	next     physics.BodyID
	ground   physics.BodyID
	bodies   map[physics.BodyID]*physics.BodyState
	queued   []physics.Contact
	launches []core.Vec

	steps     int
	teardowns int
	destroyed []physics.BodyID
}

func newFakeWorld() *fakeWorld {
	w := &fakeWorld{bodies: make(map[physics.BodyID]*physics.BodyState)}
	w.ground = w.add(physics.KindGround, core.Vec{})
	return w
}

func (w *fakeWorld) add(k physics.Kind, pos core.Vec) physics.BodyID {
	w.next++
	w.bodies[w.next] = &physics.BodyState{ID: w.next, Kind: k, Position: pos}
	return w.next
}

func (w *fakeWorld) Ground() physics.BodyID { return w.ground }

func (w *fakeWorld) Teardown() {
	w.teardowns++
	for id := range w.bodies {
		if id != w.ground {
			delete(w.bodies, id)
		}
	}
}

func (w *fakeWorld) CreateBox(center core.Vec, width, height float64, _ config.Material, _ bool) physics.BodyID {
	id := w.add(physics.KindBox, center)
	hx, hy := width/2, height/2
	w.bodies[id].Vertices = []core.Vec{core.V(-hx, -hy), core.V(hx, -hy), core.V(hx, hy), core.V(-hx, hy)}
	return id
}

func (w *fakeWorld) CreateTarget(pos core.Vec, radius float64, _ config.Material) physics.BodyID {
	id := w.add(physics.KindTarget, pos)
	w.bodies[id].Radius = radius
	return id
}

func (w *fakeWorld) CreateProjectile(pos core.Vec, radius float64, _ config.Material) physics.BodyID {
	id := w.add(physics.KindProjectile, pos)
	w.bodies[id].Radius = radius
	return id
}

func (w *fakeWorld) Destroy(id physics.BodyID) bool {
	if _, ok := w.bodies[id]; !ok || id == w.ground {
		return false
	}
	delete(w.bodies, id)
	w.destroyed = append(w.destroyed, id)
	return true
}

func (w *fakeWorld) Body(id physics.BodyID) (physics.BodyState, bool) {
	b, ok := w.bodies[id]
	if !ok {
		return physics.BodyState{}, false
	}
	return *b, true
}

func (w *fakeWorld) Launch(id physics.BodyID, impulse core.Vec) {
	w.launches = append(w.launches, impulse)
	if b, ok := w.bodies[id]; ok {
		b.Velocity = impulse
		b.AngularVelocity = 0
	}
}

func (w *fakeWorld) Step() []physics.Contact {
	w.steps++
	out := w.queued
	w.queued = nil
	return out
}

func (w *fakeWorld) queue(cs ...physics.Contact) {
	w.queued = append(w.queued, cs...)
}

func (w *fakeWorld) move(id physics.BodyID, pos, vel core.Vec) {
	if b, ok := w.bodies[id]; ok {
		b.Position = pos
		b.Velocity = vel
	}
}

func (w *fakeWorld) count(k physics.Kind) int {
	n := 0
	for _, b := range w.bodies {
		if b.Kind == k {
			n++
		}
	}
	return n
}

// testLevels returns two small levels with the launcher at (5, 5).
func testLevels() []level.SimLevel {
	return []level.SimLevel{
		{
			ID:       "one",
			Targets:  []core.Vec{core.V(20, 0.3)},
			Boxes:    []level.Box{{Center: core.V(15, 1), Width: 1, Height: 2}},
			Launcher: core.V(5, 5),
		},
		{
			ID:       "two",
			Targets:  []core.Vec{core.V(20, 0.3), core.V(25, 0.3)},
			Boxes:    []level.Box{{Center: core.V(15, 1), Width: 1, Height: 2}, {Center: core.V(22, 1), Width: 3, Height: 0.5}},
			Launcher: core.V(5, 5),
		},
	}
}

func newFakeGame(levels []level.SimLevel, cfg config.SlingshotConfig) (*Game, *fakeWorld) {
	fw := newFakeWorld()
	g := NewWithLevels(levels, cfg)
	g.newWorld = func(config.SlingshotConfig) World { return fw }
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60})
	return g, fw
}

func idle() core.InputFrame {
	return core.NewInputFrame()
}

// stepN runs n ticks without input.
func stepN(g *Game, n int) core.StepResult {
	var res core.StepResult
	for i := 0; i < n; i++ {
		res = g.Step(idle())
	}
	return res
}

// pointerAt returns the cell under a world position.
func pointerAt(g *Game, p core.Vec) (int, int) {
	return g.view.ToCell(p)
}

// launch grabs the projectile, drags it by cells and releases it.
func launch(g *Game, dragCols, dragRows int) {
	proj, _ := g.world.Body(g.state.Projectile)
	x, y := pointerAt(g, proj.Position)

	in := core.NewInputFrame()
	in.AddPointer(core.PointerDown, x, y)
	in.AddPointer(core.PointerMove, x-dragCols, y+dragRows)
	in.AddPointer(core.PointerUp, x-dragCols, y+dragRows)
	g.Step(in)
}
