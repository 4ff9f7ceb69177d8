// Package slingshot implements Super Mad Flying Creatures: pull the bird
// back, let it fly, and knock the pigs over hard enough to pop them.
package slingshot

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/config"
	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/core"
	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/level"
	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/physics"
	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/registry"
)

// GameID is the registry id of the game.
const GameID = "creatures"

// Notices shown when a pending transition fires.
const (
	NoticeLevelComplete = "Level Complete"
	NoticeGameOver      = "Game Over"
	NoticeWon           = "Congratulations, you won!"
	NoticeNoLevels      = "No levels available. Please create levels in the editor."
)

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset = config.DifficultyNormal

// campaign stores the levels loaded by the platform
var campaign []level.SimLevel

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names select normal.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = config.DifficultyNormal
	}
	difficultyPreset = p
}

// SetLevels sets the campaign used by games created through the registry.
func SetLevels(levels []level.SimLevel) {
	campaign = append([]level.SimLevel(nil), levels...)
}

// Game implements the slingshot game loop.
type Game struct {
	levels []level.SimLevel
	cfg    config.SlingshotConfig
	hasCfg bool

	newWorld func(config.SlingshotConfig) World
	world    World
	monitor  Monitor

	state   State
	session *Session
	sched   *Scheduler
	clock   time.Time

	view        Viewport
	tick        uint64
	paused      bool
	finishedRun int

	notice      string
	noticeUntil time.Time

	logger *log.Logger
}

// New creates a game over the campaign set with SetLevels, tuned by the
// config file and preset set through the package setters.
func New() *Game {
	return &Game{
		levels:   campaign,
		newWorld: newPhysicsWorld,
		logger:   log.New(io.Discard),
	}
}

// NewWithLevels creates a game over the given levels and config.
func NewWithLevels(levels []level.SimLevel, cfg config.SlingshotConfig) *Game {
	g := New()
	g.levels = append([]level.SimLevel(nil), levels...)
	g.cfg = cfg
	g.hasCfg = true
	return g
}

func newPhysicsWorld(cfg config.SlingshotConfig) World {
	return physics.NewWorld(physics.ParamsFromConfig(cfg.World))
}

// SetLogger sets the logger for level transitions.
func (g *Game) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	g.logger = l
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Super Mad Flying Creatures"
}

// Levels returns the number of levels in the campaign.
func (g *Game) Levels() int {
	return len(g.levels)
}

// Reset builds a fresh world and starts the campaign from the first level.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if !g.hasCfg {
		cfg, err := config.LoadSlingshot(configPath)
		if err != nil {
			g.logger.Warn("using default config", "err", err)
			cfg = config.DefaultSlingshotConfig()
		}
		config.ApplySlingshotPreset(&cfg, difficultyPreset)
		g.cfg = cfg
		g.hasCfg = true
	}

	if g.session != nil {
		g.session.Close()
	}
	g.view = NewViewport(runtime.ScreenW, runtime.ScreenH)
	g.monitor = Monitor{Threshold: g.cfg.Target.DestroyImpulse}
	g.clock = time.Unix(0, 0)
	g.sched = NewScheduler(func() time.Time { return g.clock })
	g.world = g.newWorld(g.cfg)
	g.state = State{}
	g.session = &Session{}
	g.tick = 0
	g.paused = false
	g.notice = ""
	g.finishedRun = 0

	if len(g.levels) == 0 {
		g.logger.Error("no levels to play")
		return
	}
	g.initLevel(0, true)
}

// SelectLevel restarts play at level i, keeping the score.
func (g *Game) SelectLevel(i int) {
	if i < 0 || i >= len(g.levels) {
		return
	}
	g.initLevel(i, false)
}

// initLevel cancels pending transitions, rebuilds the world and replaces the state.
func (g *Game) initLevel(i int, resetScore bool) {
	g.session.Close()
	g.session = &Session{}

	built := BuildLevel(g.world, g.levels[i], g.cfg)
	g.apply(LevelStarted{
		Level:       i,
		Projectiles: g.cfg.Projectile.PerLevel,
		Targets:     built.Targets,
		Boxes:       built.Boxes,
		Projectile:  built.Projectile,
		ResetScore:  resetScore,
	})
	g.logger.Debug("level started", "level", i, "id", g.levels[i].ID, "targets", len(built.Targets), "boxes", len(built.Boxes))
}

func (g *Game) apply(e Event) {
	g.state = Transition(g.state, e)
}

// Step advances the simulation by one fixed tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.finishedRun = 0

	if len(g.levels) == 0 {
		return g.result()
	}
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if in.Has(core.ActionRestart) {
		g.initLevel(g.state.Level, false)
	}
	if g.paused {
		return g.result()
	}

	g.tick++
	g.clock = g.clock.Add(g.tickDuration())
	g.sched.RunDue()

	for _, ev := range in.Pointer {
		g.handlePointer(ev)
	}

	contacts := g.world.Step()
	if hit := g.monitor.Flag(contacts, g.state.IsTarget, g.world.Ground()); len(hit) > 0 {
		g.apply(TargetsHit{IDs: hit})
	}

	g.updateTimers()
	g.cleanup()
	g.checkComplete()
	g.projectileLifecycle()

	if g.notice != "" && !g.clock.Before(g.noticeUntil) {
		g.notice = ""
	}
	return g.result()
}

func (g *Game) tickDuration() time.Duration {
	return time.Duration(g.cfg.World.TimeStep * float64(time.Second))
}

func (g *Game) result() core.StepResult {
	return core.StepResult{
		State:       g.State(),
		FinishedRun: g.finishedRun,
	}
}

func (g *Game) updateTimers() {
	if !g.state.Launched() {
		return
	}
	proj, ok := g.world.Body(g.state.Projectile)
	if !ok {
		return
	}

	dt := g.cfg.World.TimeStep
	g.session.FlightTime += dt

	slow := proj.Velocity.Len() < g.cfg.Projectile.StopSpeed
	still := math.Abs(proj.AngularVelocity) < g.cfg.Projectile.StopAngularSpeed
	if slow && still && !g.state.Aiming() {
		g.session.IdleTime += dt
	} else {
		g.session.IdleTime = 0
	}
}

// cleanup destroys flagged targets.
func (g *Game) cleanup() {
	if len(g.state.Flagged) == 0 {
		return
	}
	removed := append([]physics.BodyID(nil), g.state.Flagged...)
	for _, id := range removed {
		g.world.Destroy(id)
	}
	g.apply(TargetsRemoved{IDs: removed, Points: g.cfg.Target.Points})
	g.logger.Debug("targets destroyed", "count", len(removed), "score", g.state.Score)
}

func (g *Game) checkComplete() {
	if g.state.Complete || len(g.state.Targets) > 0 {
		return
	}
	g.apply(LevelCompleted{})

	// a cleared level beats a pending defeat
	g.session.defeat.Stop()

	if g.session.CompletePending() {
		return
	}
	sess := g.session
	sess.complete = g.sched.After(g.cfg.Transitions.CompleteDelay, func() {
		sess.complete = nil
		g.logger.Info("level complete", "level", g.state.Level, "score", g.state.Score)
		g.showNotice(NoticeLevelComplete)
		g.nextLevel()
	})
}

func (g *Game) nextLevel() {
	next := g.state.Level + 1
	if next < len(g.levels) {
		g.initLevel(next, false)
		return
	}

	g.finishedRun = g.state.Score
	g.logger.Info("campaign complete", "score", g.state.Score)
	g.showNotice(NoticeWon)
	g.initLevel(0, true)
}

// respawnDue reports whether the launched projectile is done.
func (g *Game) respawnDue() bool {
	if !g.state.Launched() {
		return false
	}
	proj, ok := g.world.Body(g.state.Projectile)
	if !ok {
		return true
	}
	p := g.cfg.Projectile
	return proj.Position.X > g.cfg.World.OutRightX ||
		proj.Position.Y < g.cfg.World.OutLowY ||
		g.session.IdleTime >= p.IdleSeconds ||
		g.session.FlightTime >= p.MaxFlightSeconds
}

func (g *Game) projectileLifecycle() {
	if !g.respawnDue() {
		return
	}

	if g.state.Remaining > 0 {
		g.world.Destroy(g.state.Projectile)
		id := spawnProjectile(g.world, g.levels[g.state.Level].Launcher, g.cfg)
		g.session.ResetTimers()
		g.apply(ProjectileRespawned{Projectile: id})
		g.logger.Debug("projectile respawned", "level", g.state.Level, "remaining", g.state.Remaining)
		return
	}

	if g.state.Complete || g.session.DefeatPending() {
		return
	}
	sess := g.session
	sess.defeat = g.sched.After(g.cfg.Transitions.DefeatDelay, func() {
		sess.defeat = nil
		g.logger.Info("level failed", "level", g.state.Level, "score", g.state.Score)
		g.showNotice(NoticeGameOver)
		g.initLevel(g.state.Level, false)
	})
}

func (g *Game) showNotice(text string) {
	g.notice = text
	g.noticeUntil = g.clock.Add(g.cfg.Transitions.NoticeDuration)
}

// Notice returns the banner currently shown, if any.
func (g *Game) Notice() string {
	if len(g.levels) == 0 {
		return NoticeNoLevels
	}
	return g.notice
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:  g.state.Score,
		Level:  g.state.Level,
		Paused: g.paused,
	}
}

// Current returns the full game record.
func (g *Game) Current() State {
	return g.state
}
