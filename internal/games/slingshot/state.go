package slingshot

import (
	"slices"

	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/core"
	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/physics"
)

// Phase is the lifecycle of the projectile currently in play.
type Phase int

const (
	PhaseIdle     Phase = iota // resting at the launcher, can be grabbed
	PhaseAiming                // grabbed and being pulled back
	PhaseLaunched              // in flight
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAiming:
		return "aiming"
	case PhaseLaunched:
		return "launched"
	default:
		return "unknown"
	}
}

// State is the game record for the level in play. It is never modified in
// place; Transition returns a new value.
type State struct {
	Level        int
	Score        int
	Remaining    int // projectiles left to launch
	Complete     bool
	Targets      []physics.BodyID
	Boxes        []physics.BodyID
	Projectile   physics.BodyID
	Phase        Phase
	Pointer      core.Vec // last pointer position while aiming, world space
	LaunchVector core.Vec
	Flagged      []physics.BodyID // targets hit hard enough, removed on the next cleanup
}

// Launched reports whether the projectile is in flight.
func (s State) Launched() bool {
	return s.Phase == PhaseLaunched
}

// Aiming reports whether the pointer is holding the projectile.
func (s State) Aiming() bool {
	return s.Phase == PhaseAiming
}

// IsTarget reports whether id is a live target.
func (s State) IsTarget(id physics.BodyID) bool {
	return slices.Contains(s.Targets, id)
}

func (s State) clone() State {
	s.Targets = slices.Clone(s.Targets)
	s.Boxes = slices.Clone(s.Boxes)
	s.Flagged = slices.Clone(s.Flagged)
	return s
}

// Event is an input to Transition.
type Event interface {
	event()
}

// LevelStarted replaces the whole record when a level is (re)built.
type LevelStarted struct {
	Level       int
	Projectiles int
	Targets     []physics.BodyID
	Boxes       []physics.BodyID
	Projectile  physics.BodyID
	ResetScore  bool
}

// AimStarted grabs the projectile at the given pointer position.
type AimStarted struct {
	Pointer core.Vec
}

// AimMoved drags the grabbed projectile.
type AimMoved struct {
	Pointer      core.Vec
	LaunchVector core.Vec
}

// ProjectileLaunched releases the grabbed projectile.
type ProjectileLaunched struct{}

// TargetsHit flags targets for removal.
type TargetsHit struct {
	IDs []physics.BodyID
}

// TargetsRemoved drops targets from play and awards points for each.
type TargetsRemoved struct {
	IDs    []physics.BodyID
	Points int
}

// LevelCompleted marks the level as cleared.
type LevelCompleted struct{}

// ProjectileRespawned puts a fresh projectile at the launcher.
type ProjectileRespawned struct {
	Projectile physics.BodyID
}

func (LevelStarted) event() {}
func (AimStarted) event() {}
func (AimMoved) event() {}
func (ProjectileLaunched) event() {}
func (TargetsHit) event() {}
func (TargetsRemoved) event() {}
func (LevelCompleted) event() {}
func (ProjectileRespawned) event() {}

// Transition applies e to s. Events that are not valid in the current
// phase leave the state unchanged.
func Transition(s State, e Event) State {
	switch ev := e.(type) {
	case LevelStarted:
		next := State{
			Level:      ev.Level,
			Score:      s.Score,
			Remaining:  ev.Projectiles,
			Targets:    slices.Clone(ev.Targets),
			Boxes:      slices.Clone(ev.Boxes),
			Projectile: ev.Projectile,
			Phase:      PhaseIdle,
		}
		if ev.ResetScore {
			next.Score = 0
		}
		return next

	case AimStarted:
		if s.Phase != PhaseIdle || s.Remaining <= 0 || s.Projectile == physics.NoBody {
			return s
		}
		next := s.clone()
		next.Phase = PhaseAiming
		next.Pointer = ev.Pointer
		return next

	case AimMoved:
		if s.Phase != PhaseAiming {
			return s
		}
		next := s.clone()
		next.Pointer = ev.Pointer
		next.LaunchVector = ev.LaunchVector
		return next

	case ProjectileLaunched:
		if s.Phase != PhaseAiming {
			return s
		}
		next := s.clone()
		next.Phase = PhaseLaunched
		next.Remaining--
		return next

	case TargetsHit:
		next := s.clone()
		for _, id := range ev.IDs {
			if next.IsTarget(id) && !slices.Contains(next.Flagged, id) {
				next.Flagged = append(next.Flagged, id)
			}
		}
		return next

	case TargetsRemoved:
		next := s.clone()
		removed := 0
		next.Targets = slices.DeleteFunc(next.Targets, func(id physics.BodyID) bool {
			if slices.Contains(ev.IDs, id) {
				removed++
				return true
			}
			return false
		})
		next.Flagged = slices.DeleteFunc(next.Flagged, func(id physics.BodyID) bool {
			return slices.Contains(ev.IDs, id)
		})
		next.Score += removed * ev.Points
		return next

	case LevelCompleted:
		next := s.clone()
		next.Complete = true
		return next

	case ProjectileRespawned:
		next := s.clone()
		next.Projectile = ev.Projectile
		next.Phase = PhaseIdle
		next.LaunchVector = core.Vec{}
		return next
	}
	return s
}
