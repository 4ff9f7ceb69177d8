package level

import "github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/core"

// Builtin returns the two levels bundled with the game, used when playing
// without a level store.
func Builtin(launcher core.Vec) []SimLevel {
	base := []Box{
		{Center: core.V(15, 1), Width: 1, Height: 2},
		{Center: core.V(20, 1), Width: 1, Height: 2},
		{Center: core.V(23, 1), Width: 3, Height: 0.5},
	}

	second := append([]Box(nil), base...)
	second = append(second,
		Box{Center: core.V(21, 3), Width: 3, Height: 0.5},
		Box{Center: core.V(20, 3), Width: 3, Height: 0.5},
	)

	return []SimLevel{
		{
			ID:       "builtin-1",
			Targets:  []core.Vec{core.V(2, 1)},
			Boxes:    append([]Box(nil), base...),
			Launcher: launcher,
		},
		{
			ID:       "builtin-2",
			Targets:  []core.Vec{core.V(2, 1), core.V(4, 1)},
			Boxes:    second,
			Launcher: launcher,
		},
	}
}
