package slingshot

import (
	"slices"

	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/physics"
)

// Monitor decides which targets a batch of contacts destroys.
type Monitor struct {
	Threshold float64 // normal impulse a hit must exceed
}

// Flag returns the targets hit harder than the threshold, in contact order
// and without duplicates. Targets resting on the ground are never flagged.
// When two targets collide both are flagged.
func (m Monitor) Flag(contacts []physics.Contact, isTarget func(physics.BodyID) bool, ground physics.BodyID) []physics.BodyID {
	var flagged []physics.BodyID
	mark := func(id physics.BodyID) {
		if !slices.Contains(flagged, id) {
			flagged = append(flagged, id)
		}
	}

	for _, c := range contacts {
		if c.NormalImpulse <= 0 {
			continue
		}
		aTarget, bTarget := isTarget(c.A), isTarget(c.B)
		if !aTarget && !bTarget {
			continue
		}
		if c.A == ground || c.B == ground {
			continue
		}
		if c.NormalImpulse <= m.Threshold {
			continue
		}
		if aTarget {
			mark(c.A)
		}
		if bTarget {
			mark(c.B)
		}
	}
	return flagged
}
