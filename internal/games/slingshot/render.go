package slingshot

import (
	"fmt"

	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/core"
	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/physics"
)

// Visual characters for rendering
const (
	GroundChar     = '▀'
	BoxChar        = '█'
	TargetChar     = '●'
	ProjectileChar = '◉'
	AimChar        = '·'
)

// Render draws the current game state into the provided screen buffer.
func (g *Game) Render(dst *core.Screen) {
	g.view = NewViewport(dst.Width(), dst.Height())

	if len(g.levels) == 0 {
		dst.DrawTextCentered(dst.Height()/2, NoticeNoLevels, core.ColorRed)
		return
	}
	if g.world == nil {
		return
	}

	dst.DrawHLine(0, g.view.GroundRow(), dst.Width(), GroundChar, core.ColorTeal)

	for _, id := range g.state.Boxes {
		if b, ok := g.world.Body(id); ok {
			g.drawPolygon(dst, b, BoxChar, core.ColorBrown)
		}
	}
	for _, id := range g.state.Targets {
		if t, ok := g.world.Body(id); ok {
			g.drawDisc(dst, t, TargetChar, core.ColorGreen)
		}
	}
	if p, ok := g.world.Body(g.state.Projectile); ok {
		if g.state.Aiming() {
			x0, y0 := g.view.ToCell(p.Position)
			x1, y1 := g.view.ToCell(g.state.Pointer)
			dst.DrawLine(x0, y0, x1, y1, AimChar, core.ColorGray)
		}
		g.drawDisc(dst, p, ProjectileChar, core.ColorRed)
	}

	g.drawHUD(dst)

	switch {
	case g.notice != "":
		drawBanner(dst, g.notice, core.ColorYellow)
	case g.paused:
		drawBanner(dst, "PAUSED", core.ColorCyan)
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	dst.DrawTextColored(1, 0, fmt.Sprintf("Score: %d", g.state.Score), core.ColorBrightWhite)
	dst.DrawTextColored(1, 1, fmt.Sprintf("Level: %d/%d", g.state.Level+1, len(g.levels)), core.ColorBrightWhite)
	dst.DrawTextColored(1, 2, fmt.Sprintf("Birds Remaining: %d", g.state.Remaining), core.ColorBrightWhite)
}

// drawPolygon fills every cell whose center lies inside the rotated shape.
// Shapes thinner than a cell still get their center cell.
func (g *Game) drawPolygon(dst *core.Screen, b physics.BodyState, ch rune, c core.Color) {
	if len(b.Vertices) == 0 {
		return
	}
	poly := make([]core.Vec, len(b.Vertices))
	for i, v := range b.Vertices {
		poly[i] = b.WorldPoint(v)
	}

	lo, hi := poly[0], poly[0]
	for _, p := range poly[1:] {
		lo = core.V(min(lo.X, p.X), min(lo.Y, p.Y))
		hi = core.V(max(hi.X, p.X), max(hi.Y, p.Y))
	}

	c0, r1 := g.view.ToCell(lo)
	c1, r0 := g.view.ToCell(hi)
	drawn := g.fillCells(dst, c0, r0, c1, r1, ch, c, func(p core.Vec) bool {
		return core.PointInPolygon(p, poly)
	})
	if !drawn {
		col, row := g.view.ToCell(b.Position)
		dst.SetColored(col, row, ch, c)
	}
}

// drawDisc fills the cells whose center lies inside a circle body.
func (g *Game) drawDisc(dst *core.Screen, b physics.BodyState, ch rune, c core.Color) {
	r := b.Radius
	c0, r1 := g.view.ToCell(b.Position.Sub(core.V(r, r)))
	c1, r0 := g.view.ToCell(b.Position.Add(core.V(r, r)))
	g.fillCells(dst, c0, r0, c1, r1, ch, c, func(p core.Vec) bool {
		return p.Dist(b.Position) <= r
	})
	col, row := g.view.ToCell(b.Position)
	dst.SetColored(col, row, ch, c)
}

// fillCells sets every on-screen cell in the range whose center passes inside.
func (g *Game) fillCells(dst *core.Screen, c0, r0, c1, r1 int, ch rune, c core.Color, inside func(core.Vec) bool) bool {
	c0, c1 = core.Clamp(c0, 0, dst.Width()-1), core.Clamp(c1, 0, dst.Width()-1)
	r0, r1 = core.Clamp(r0, 0, dst.Height()-1), core.Clamp(r1, 0, dst.Height()-1)

	drawn := false
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if inside(g.view.ToWorld(col, row)) {
				dst.SetColored(col, row, ch, c)
				drawn = true
			}
		}
	}
	return drawn
}

func drawBanner(dst *core.Screen, text string, c core.Color) {
	w := len([]rune(text)) + 4
	x := (dst.Width() - w) / 2
	y := dst.Height()/3 - 1
	box := core.NewRect(x, y, w, 3)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)
	dst.DrawTextColored(x+2, y+1, text, c)
}
