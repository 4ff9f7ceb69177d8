package slingshot

import (
	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/config"
	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/core"
	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/level"
	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/physics"
)

// World is the part of the physics world the game drives.
// *physics.World implements it.
type World interface {
	Ground() physics.BodyID
	Teardown()
	CreateBox(center core.Vec, width, height float64, m config.Material, static bool) physics.BodyID
	CreateTarget(pos core.Vec, radius float64, m config.Material) physics.BodyID
	CreateProjectile(pos core.Vec, radius float64, m config.Material) physics.BodyID
	Destroy(id physics.BodyID) bool
	Body(id physics.BodyID) (physics.BodyState, bool)
	Launch(id physics.BodyID, impulse core.Vec)
	Step() []physics.Contact
}

// Built lists the bodies created for a level.
type Built struct {
	Targets    []physics.BodyID
	Boxes      []physics.BodyID
	Projectile physics.BodyID
}

// BuildLevel clears everything but the ground and creates the level's
// blocks, targets and projectile.
func BuildLevel(w World, lvl level.SimLevel, cfg config.SlingshotConfig) Built {
	w.Teardown()

	built := Built{
		Boxes:   make([]physics.BodyID, 0, len(lvl.Boxes)),
		Targets: make([]physics.BodyID, 0, len(lvl.Targets)),
	}
	for _, b := range lvl.Boxes {
		built.Boxes = append(built.Boxes, w.CreateBox(b.Center, b.Width, b.Height, cfg.Box.Material, cfg.Box.Static))
	}
	for _, p := range lvl.Targets {
		built.Targets = append(built.Targets, w.CreateTarget(p, cfg.Target.Radius, cfg.Target.Material))
	}
	built.Projectile = spawnProjectile(w, lvl.Launcher, cfg)
	return built
}

func spawnProjectile(w World, at core.Vec, cfg config.SlingshotConfig) physics.BodyID {
	return w.CreateProjectile(at, cfg.Projectile.Radius, cfg.Projectile.Material)
}
