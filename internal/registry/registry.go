// Package registry maps game ids to factories so the SSH server can start a
// fresh game per session.
package registry

import (
	"fmt"
	"sync"

	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/core"
)

// Game is a fixed-step simulation the platform drives once per tick.
type Game interface {
	// ID keys score rows.
	ID() string
	Title() string
	Reset(cfg core.RuntimeConfig)
	// Step consumes the actions and pointer events gathered since the last tick.
	Step(in core.InputFrame) core.StepResult
	// Render draws into a cleared screen.
	Render(dst *core.Screen)
	State() core.GameState
}

type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
)

// Register panics on a duplicate id.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	factories[id] = f
}

func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
