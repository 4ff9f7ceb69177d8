package slingshot

import (
	"math"
	"strings"
	"testing"

	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/config"
	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/core"
	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/level"
	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/physics"
	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/registry"
)

// ticksFor returns how many default-rate ticks cover the given seconds.
func ticksFor(seconds float64) int {
	return int(math.Ceil(seconds*60)) + 1
}

func TestGameReset(t *testing.T) {
	g, fw := newFakeGame(testLevels(), config.DefaultSlingshotConfig())

	s := g.Current()
	if s.Level != 0 || s.Score != 0 || s.Remaining != 3 || s.Phase != PhaseIdle {
		t.Errorf("after Reset state = %+v", s)
	}
	if len(s.Targets) != 1 || len(s.Boxes) != 1 {
		t.Errorf("targets=%d boxes=%d, expected 1 and 1", len(s.Targets), len(s.Boxes))
	}
	p, ok := fw.Body(s.Projectile)
	if !ok || p.Position != core.V(5, 5) {
		t.Errorf("projectile = %+v, %v; expected at launcher (5, 5)", p, ok)
	}
	if fw.teardowns != 1 {
		t.Errorf("teardowns = %d, expected 1", fw.teardowns)
	}
}

func TestLaunchGesture(t *testing.T) {
	g, fw := newFakeGame(testLevels(), config.DefaultSlingshotConfig())

	proj, _ := fw.Body(g.state.Projectile)
	x, y := pointerAt(g, proj.Position)

	in := core.NewInputFrame()
	in.AddPointer(core.PointerDown, x, y)
	g.Step(in)
	if !g.state.Aiming() {
		t.Fatalf("Phase = %v, expected aiming", g.state.Phase)
	}

	in = core.NewInputFrame()
	in.AddPointer(core.PointerMove, x-4, y+2)
	g.Step(in)
	pointer := g.view.ToWorld(x-4, y+2)
	wantVec := proj.Position.Sub(pointer)
	if g.state.LaunchVector != wantVec {
		t.Errorf("LaunchVector = %v, expected %v", g.state.LaunchVector, wantVec)
	}
	if g.state.Pointer != pointer {
		t.Errorf("Pointer = %v, expected %v", g.state.Pointer, pointer)
	}

	in = core.NewInputFrame()
	in.AddPointer(core.PointerUp, x-4, y+2)
	g.Step(in)

	if !g.state.Launched() {
		t.Fatalf("Phase = %v, expected launched", g.state.Phase)
	}
	if g.state.Remaining != 2 {
		t.Errorf("Remaining = %d, expected 2", g.state.Remaining)
	}
	if len(fw.launches) != 1 || fw.launches[0] != wantVec.Scale(5) {
		t.Errorf("launches = %v, expected [%v]", fw.launches, wantVec.Scale(5))
	}
}

func TestGrabNeedsProjectile(t *testing.T) {
	g, fw := newFakeGame(testLevels(), config.DefaultSlingshotConfig())

	in := core.NewInputFrame()
	in.AddPointer(core.PointerDown, 60, 5)
	in.AddPointer(core.PointerUp, 60, 5)
	g.Step(in)

	if g.state.Phase != PhaseIdle {
		t.Errorf("Phase = %v, expected idle", g.state.Phase)
	}
	if len(fw.launches) != 0 {
		t.Errorf("pointer up without aiming launched %d times", len(fw.launches))
	}

	// no second grab while in flight
	launch(g, 2, 0)
	proj, _ := fw.Body(g.state.Projectile)
	x, y := pointerAt(g, proj.Position)
	in = core.NewInputFrame()
	in.AddPointer(core.PointerDown, x, y)
	g.Step(in)
	if g.state.Phase != PhaseLaunched {
		t.Errorf("Phase = %v, expected launched", g.state.Phase)
	}
}

func TestDestroyedTargetCompletesLevelOnce(t *testing.T) {
	g, fw := newFakeGame(testLevels(), config.DefaultSlingshotConfig())
	target := g.state.Targets[0]
	box := g.state.Boxes[0]

	fw.queue(physics.Contact{A: box, B: target, NormalImpulse: 2.5})
	g.Step(idle())

	if len(g.state.Targets) != 0 {
		t.Fatalf("Targets = %v, expected none", g.state.Targets)
	}
	if _, ok := fw.Body(target); ok {
		t.Error("target body not destroyed")
	}
	if g.state.Score != 100 {
		t.Errorf("Score = %d, expected 100", g.state.Score)
	}
	if !g.state.Complete || !g.session.CompletePending() {
		t.Fatalf("level not completed: complete=%v pending=%v", g.state.Complete, g.session.CompletePending())
	}

	for i := 0; i < 10; i++ {
		g.Step(idle())
		if n := g.sched.Len(); n != 1 {
			t.Fatalf("tick %d: %d transitions pending, expected 1", i, n)
		}
	}

	stepN(g, ticksFor(0.5))
	if g.state.Level != 1 {
		t.Fatalf("Level = %d, expected 1", g.state.Level)
	}
	if g.Notice() != NoticeLevelComplete {
		t.Errorf("Notice() = %q, expected %q", g.Notice(), NoticeLevelComplete)
	}
	if g.state.Score != 100 || g.state.Remaining != 3 || len(g.state.Targets) != 2 {
		t.Errorf("level 2 state = %+v", g.state)
	}
}

func TestWeakHitsAndGroundContactsKeepTargets(t *testing.T) {
	g, fw := newFakeGame(testLevels(), config.DefaultSlingshotConfig())
	target := g.state.Targets[0]

	fw.queue(
		physics.Contact{A: target, B: fw.Ground(), NormalImpulse: 100},
		physics.Contact{A: target, B: g.state.Boxes[0], NormalImpulse: 1.0},
		physics.Contact{A: g.state.Projectile, B: target, NormalImpulse: 0},
	)
	g.Step(idle())

	if len(g.state.Targets) != 1 || g.state.Score != 0 {
		t.Errorf("targets=%v score=%d, expected target intact", g.state.Targets, g.state.Score)
	}
}

func TestRespawnThenDefeat(t *testing.T) {
	cfg := config.DefaultSlingshotConfig()
	cfg.Projectile.PerLevel = 2
	g, fw := newFakeGame(testLevels(), cfg)

	launch(g, 2, 0)
	if g.state.Remaining != 1 {
		t.Fatalf("Remaining = %d, expected 1", g.state.Remaining)
	}
	old := g.state.Projectile
	fw.move(old, core.V(60, 3), core.V(10, 0)) // past the right edge
	g.Step(idle())

	if g.state.Projectile == old {
		t.Fatal("projectile not respawned")
	}
	p, _ := fw.Body(g.state.Projectile)
	if p.Position != core.V(5, 5) || p.Velocity != (core.Vec{}) {
		t.Errorf("fresh projectile = %+v, expected at launcher at rest", p)
	}
	if g.state.Remaining != 1 || g.state.Phase != PhaseIdle || g.state.LaunchVector != (core.Vec{}) {
		t.Errorf("after respawn state = %+v", g.state)
	}
	if g.session.IdleTime != 0 || g.session.FlightTime != 0 {
		t.Errorf("timers not reset: idle=%v flight=%v", g.session.IdleTime, g.session.FlightTime)
	}
	if _, ok := fw.Body(old); ok {
		t.Error("old projectile still in the world")
	}

	launch(g, 2, 0)
	if g.state.Remaining != 0 {
		t.Fatalf("Remaining = %d, expected 0", g.state.Remaining)
	}
	fw.move(g.state.Projectile, core.V(10, -20), core.V(0, -10)) // fell off the world
	g.Step(idle())

	if !g.session.DefeatPending() {
		t.Fatal("defeat not scheduled")
	}
	for i := 0; i < 10; i++ {
		g.Step(idle())
		if n := g.sched.Len(); n != 1 {
			t.Fatalf("tick %d: %d transitions pending, expected 1", i, n)
		}
	}

	stepN(g, ticksFor(0.5))
	if g.Notice() != NoticeGameOver {
		t.Errorf("Notice() = %q, expected %q", g.Notice(), NoticeGameOver)
	}
	if g.state.Level != 0 || g.state.Remaining != 2 || len(g.state.Targets) != 1 {
		t.Errorf("level not reset: %+v", g.state)
	}
}

func TestIdleProjectileRespawns(t *testing.T) {
	g, fw := newFakeGame(testLevels(), config.DefaultSlingshotConfig())

	launch(g, 2, 0)
	first := g.state.Projectile
	fw.move(first, core.V(8, 0.5), core.Vec{})

	stepN(g, 50)
	if g.state.Projectile != first {
		t.Fatal("projectile respawned before the idle threshold")
	}
	stepN(g, 15)
	if g.state.Projectile == first {
		t.Errorf("projectile idle for %.2fs not respawned", g.session.IdleTime)
	}
}

func TestMovingProjectileTimesOut(t *testing.T) {
	g, fw := newFakeGame(testLevels(), config.DefaultSlingshotConfig())

	launch(g, 2, 0)
	first := g.state.Projectile
	fw.move(first, core.V(8, 2), core.V(0.5, 0))

	stepN(g, 590)
	if g.state.Projectile != first {
		t.Fatal("projectile respawned before the flight limit")
	}
	stepN(g, 20)
	if g.state.Projectile == first {
		t.Errorf("projectile in flight for %.2fs not respawned", g.session.FlightTime)
	}
}

func TestCompletionCancelsPendingDefeat(t *testing.T) {
	cfg := config.DefaultSlingshotConfig()
	cfg.Projectile.PerLevel = 1
	g, fw := newFakeGame(testLevels(), cfg)

	launch(g, 2, 0)
	fw.move(g.state.Projectile, core.V(60, 1), core.V(1, 0))
	g.Step(idle())
	if !g.session.DefeatPending() {
		t.Fatal("defeat not scheduled")
	}

	fw.queue(physics.Contact{A: g.state.Boxes[0], B: g.state.Targets[0], NormalImpulse: 3})
	g.Step(idle())

	if g.session.DefeatPending() {
		t.Error("defeat still pending after the level was cleared")
	}
	if !g.session.CompletePending() || g.sched.Len() != 1 {
		t.Errorf("completion pending=%v timers=%d", g.session.CompletePending(), g.sched.Len())
	}

	stepN(g, ticksFor(0.5))
	if g.state.Level != 1 {
		t.Errorf("Level = %d, expected 1", g.state.Level)
	}
}

func TestCampaignWrapReportsRun(t *testing.T) {
	g, fw := newFakeGame(testLevels()[:1], config.DefaultSlingshotConfig())

	fw.queue(physics.Contact{A: g.state.Boxes[0], B: g.state.Targets[0], NormalImpulse: 3})
	g.Step(idle())

	finished := 0
	for i := 0; i < ticksFor(0.5); i++ {
		if res := g.Step(idle()); res.FinishedRun != 0 {
			finished = res.FinishedRun
		}
	}
	if finished != 100 {
		t.Errorf("FinishedRun = %d, expected 100", finished)
	}
	if g.state.Level != 0 || g.state.Score != 0 {
		t.Errorf("after wrap level=%d score=%d, expected 0 and 0", g.state.Level, g.state.Score)
	}
	if g.Notice() != NoticeWon {
		t.Errorf("Notice() = %q, expected %q", g.Notice(), NoticeWon)
	}

	// notice disappears after its duration
	stepN(g, ticksFor(1.5))
	if g.Notice() != "" {
		t.Errorf("Notice() = %q, expected cleared", g.Notice())
	}
}

func TestRestartCancelsPendingTransitions(t *testing.T) {
	g, fw := newFakeGame(testLevels(), config.DefaultSlingshotConfig())

	fw.queue(physics.Contact{A: g.state.Boxes[0], B: g.state.Targets[0], NormalImpulse: 3})
	g.Step(idle())
	if g.sched.Len() != 1 {
		t.Fatalf("timers = %d, expected 1", g.sched.Len())
	}

	in := core.NewInputFrame()
	in.Set(core.ActionRestart)
	g.Step(in)

	if g.sched.Len() != 0 {
		t.Errorf("timers = %d after restart, expected 0", g.sched.Len())
	}
	stepN(g, ticksFor(1))
	if g.state.Level != 0 || len(g.state.Targets) != 1 {
		t.Errorf("stale transition fired: %+v", g.state)
	}
	if g.state.Score != 100 {
		t.Errorf("Score = %d, restart keeps the score", g.state.Score)
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	g, fw := newFakeGame(testLevels(), config.DefaultSlingshotConfig())

	in := core.NewInputFrame()
	in.Set(core.ActionPause)
	res := g.Step(in)
	if !res.State.Paused {
		t.Fatal("game not paused")
	}

	steps := fw.steps
	stepN(g, 5)
	if fw.steps != steps || g.tick != 0 {
		t.Errorf("paused game advanced: steps %d -> %d, tick %d", steps, fw.steps, g.tick)
	}

	res = g.Step(in)
	if res.State.Paused || fw.steps != steps+1 {
		t.Errorf("unpause failed: paused=%v steps=%d", res.State.Paused, fw.steps)
	}
}

func TestNoLevels(t *testing.T) {
	g, fw := newFakeGame(nil, config.DefaultSlingshotConfig())

	g.Step(idle())
	if fw.steps != 0 {
		t.Errorf("world stepped %d times without levels", fw.steps)
	}
	if g.Notice() != NoticeNoLevels {
		t.Errorf("Notice() = %q", g.Notice())
	}

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	if !strings.Contains(scr.String(), NoticeNoLevels) {
		t.Error("Render() does not show the no-levels notice")
	}
}

func TestRenderBeforeResetIsBlank(t *testing.T) {
	g := NewWithLevels(testLevels(), config.DefaultSlingshotConfig())

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	if got := strings.TrimSpace(scr.String()); got != "" {
		t.Errorf("Render() before Reset drew %q, expected a blank frame", got)
	}
}

func TestSelectLevel(t *testing.T) {
	g, _ := newFakeGame(testLevels(), config.DefaultSlingshotConfig())

	g.SelectLevel(1)
	if g.state.Level != 1 || len(g.state.Targets) != 2 {
		t.Errorf("SelectLevel(1) state = %+v", g.state)
	}
	g.SelectLevel(7)
	if g.state.Level != 1 {
		t.Errorf("out of range SelectLevel changed level to %d", g.state.Level)
	}
}

func TestRenderDrawsScene(t *testing.T) {
	g, _ := newFakeGame(testLevels(), config.DefaultSlingshotConfig())
	scr := core.NewScreen(80, 24)

	proj, _ := g.world.Body(g.state.Projectile)
	x, y := pointerAt(g, proj.Position)
	in := core.NewInputFrame()
	in.AddPointer(core.PointerDown, x, y)
	in.AddPointer(core.PointerMove, x-6, y+3)
	g.Step(in)

	g.Render(scr)
	out := scr.String()

	for _, want := range []string{"Score: 0", "Level: 1/2", "Birds Remaining: 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("HUD missing %q", want)
		}
	}
	if scr.Get(x, y) != ProjectileChar {
		t.Errorf("projectile cell = %q, expected %q", scr.Get(x, y), ProjectileChar)
	}
	if !strings.ContainsRune(out, AimChar) {
		t.Error("aim line not drawn while aiming")
	}
	if !strings.ContainsRune(out, TargetChar) || !strings.ContainsRune(out, BoxChar) {
		t.Error("targets or boxes missing")
	}
	if scr.Row(23) != strings.Repeat(string(GroundChar), 80) {
		t.Errorf("ground row = %q", scr.Row(23))
	}

	// box at (15, 1) 1x2 m covers columns 29-30 and rows 21-22
	if scr.Get(29, 21) != BoxChar || scr.Get(30, 22) != BoxChar {
		t.Errorf("box cells missing: %q %q", scr.Get(29, 21), scr.Get(30, 22))
	}
}

func TestViewportRoundTrip(t *testing.T) {
	v := NewViewport(80, 24)
	for _, c := range [][2]int{{0, 0}, {10, 17}, {79, 22}} {
		col, row := v.ToCell(v.ToWorld(c[0], c[1]))
		if col != c[0] || row != c[1] {
			t.Errorf("ToCell(ToWorld(%d, %d)) = (%d, %d)", c[0], c[1], col, row)
		}
	}
	if p := v.ToWorld(0, 22); p.Y != 0.5 {
		t.Errorf("row above ground center y = %v, expected 0.5", p.Y)
	}
}

func TestRegistered(t *testing.T) {
	if !registry.Exists(GameID) {
		t.Fatalf("game %q not registered", GameID)
	}
	g, err := registry.Create(GameID)
	if err != nil {
		t.Fatal(err)
	}
	if g.Title() != "Super Mad Flying Creatures" {
		t.Errorf("Title() = %q", g.Title())
	}
}

func TestSetLevelsFeedsRegistryGames(t *testing.T) {
	SetLevels(level.Builtin(core.V(5, 5)))
	defer SetLevels(nil)

	g := New()
	if g.Levels() != 2 {
		t.Errorf("Levels() = %d, expected 2", g.Levels())
	}
}
