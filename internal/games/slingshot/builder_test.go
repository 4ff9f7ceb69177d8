package slingshot

import (
	"testing"

	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/config"
	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/core"
	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/level"
	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/physics"
)

func TestBuildLevelIsIdempotent(t *testing.T) {
	cfg := config.DefaultSlingshotConfig()
	lvl := level.Builtin(core.V(5, 5))[1]

	worlds := map[string]World{
		"fake":  newFakeWorld(),
		"box2d": physics.NewWorld(physics.ParamsFromConfig(cfg.World)),
	}

	for name, w := range worlds {
		t.Run(name, func(t *testing.T) {
			first := BuildLevel(w, lvl, cfg)
			second := BuildLevel(w, lvl, cfg)

			if len(second.Targets) != len(lvl.Targets) || len(second.Boxes) != len(lvl.Boxes) {
				t.Errorf("built %d targets %d boxes, expected %d and %d",
					len(second.Targets), len(second.Boxes), len(lvl.Targets), len(lvl.Boxes))
			}
			if len(first.Targets) != len(second.Targets) || len(first.Boxes) != len(second.Boxes) {
				t.Error("second build differs from the first")
			}
			for _, id := range first.Targets {
				if _, ok := w.Body(id); ok {
					t.Errorf("body %d from the first build survived", id)
				}
			}
			if _, ok := w.Body(first.Projectile); ok {
				t.Error("first projectile survived the rebuild")
			}
			if _, ok := w.Body(w.Ground()); !ok {
				t.Error("ground removed by rebuild")
			}

			p, ok := w.Body(second.Projectile)
			if !ok || p.Kind != physics.KindProjectile || p.Position != lvl.Launcher {
				t.Errorf("projectile = %+v, %v", p, ok)
			}
		})
	}
}

func TestBuildLevelBodyCount(t *testing.T) {
	cfg := config.DefaultSlingshotConfig()
	w := physics.NewWorld(physics.ParamsFromConfig(cfg.World))

	for _, lvl := range level.Builtin(core.V(5, 5)) {
		BuildLevel(w, lvl, cfg)
		want := 1 + len(lvl.Targets) + len(lvl.Boxes) + 1
		if w.BodyCount() != want {
			t.Errorf("level %s: BodyCount() = %d, expected %d", lvl.ID, w.BodyCount(), want)
		}
	}
}
