package slingshot

import (
	"math"

	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/core"
)

// Terminal cells are about twice as tall as they are wide.
const (
	DefaultCellsPerMeterX = 2.0
	DefaultCellsPerMeterY = 1.0
)

// Viewport maps screen cells to world meters. The bottom row shows the
// ground line; world y = 0 is its top edge.
type Viewport struct {
	Width, Height  int
	CellsPerMeterX float64
	CellsPerMeterY float64
}

// NewViewport creates a viewport for a screen of the given size.
func NewViewport(width, height int) Viewport {
	return Viewport{
		Width:          width,
		Height:         height,
		CellsPerMeterX: DefaultCellsPerMeterX,
		CellsPerMeterY: DefaultCellsPerMeterY,
	}
}

// GroundRow returns the row the ground line is drawn on.
func (v Viewport) GroundRow() int {
	return v.Height - 1
}

// ToWorld returns the world position of a cell's center.
func (v Viewport) ToWorld(col, row int) core.Vec {
	return core.V(
		(float64(col)+0.5)/v.CellsPerMeterX,
		(float64(v.GroundRow()-row)-0.5)/v.CellsPerMeterY,
	)
}

// ToCell returns the cell containing a world position.
func (v Viewport) ToCell(p core.Vec) (col, row int) {
	col = int(math.Floor(p.X * v.CellsPerMeterX))
	row = v.GroundRow() - 1 - int(math.Floor(p.Y*v.CellsPerMeterY))
	return col, row
}

// handlePointer runs the drag-to-aim gesture for one pointer event.
func (g *Game) handlePointer(ev core.PointerEvent) {
	pos := g.view.ToWorld(ev.X, ev.Y)

	switch ev.Kind {
	case core.PointerDown:
		if g.state.Phase != PhaseIdle || g.state.Remaining <= 0 {
			return
		}
		proj, ok := g.world.Body(g.state.Projectile)
		if !ok || proj.Position.Dist(pos) >= g.cfg.Projectile.GrabRadius {
			return
		}
		g.apply(AimStarted{Pointer: pos})

	case core.PointerMove:
		if !g.state.Aiming() {
			return
		}
		proj, ok := g.world.Body(g.state.Projectile)
		if !ok {
			return
		}
		g.apply(AimMoved{Pointer: pos, LaunchVector: proj.Position.Sub(pos)})

	case core.PointerUp:
		if !g.state.Aiming() {
			return
		}
		g.world.Launch(g.state.Projectile, g.state.LaunchVector.Scale(g.cfg.Projectile.LaunchMultiplier))
		g.session.ResetTimers()
		g.apply(ProjectileLaunched{})
		g.logger.Debug("projectile launched", "level", g.state.Level, "vector", g.state.LaunchVector, "remaining", g.state.Remaining)
	}
}
