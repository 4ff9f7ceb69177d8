package level

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/core"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTranslateCatapult(t *testing.T) {
	d := Descriptor{Blocks: []Element{
		{ID: "c", Type: "catapult", X: 0, Y: 0, Width: 2, Height: 2},
	}}

	sim := Translate(d, 600, DefaultOptions())

	if !near(sim.Launcher.X, 1.0/30) {
		t.Errorf("Launcher.X = %v, expected %v", sim.Launcher.X, 1.0/30)
	}
	if !near(sim.Launcher.Y, 599.0/30) {
		t.Errorf("Launcher.Y = %v, expected %v", sim.Launcher.Y, 599.0/30)
	}
	if len(sim.Targets) != 0 || len(sim.Boxes) != 0 {
		t.Errorf("catapult should not produce bodies, got %d targets %d boxes", len(sim.Targets), len(sim.Boxes))
	}
}

func TestTranslateDispatch(t *testing.T) {
	d := Descriptor{Blocks: []Element{
		{Type: "block", X: 300, Y: 540, Width: 60, Height: 60},
		{Type: "ENEMY", X: 600, Y: 570, Width: 30, Height: 30},
		{Type: "platform", X: 0, Y: 0, Width: 30, Height: 30},
		{Type: "catapult", X: 30, Y: 30, Width: 30, Height: 30},
		{Type: "Catapult", X: 90, Y: 540, Width: 60, Height: 60},
	}}

	sim := Translate(d, 600, DefaultOptions())

	if len(sim.Boxes) != 2 {
		t.Fatalf("len(Boxes) = %d, expected 2 (block + unknown type)", len(sim.Boxes))
	}
	b := sim.Boxes[0]
	if !near(b.Center.X, 11) || !near(b.Center.Y, 1) || !near(b.Width, 2) || !near(b.Height, 2) {
		t.Errorf("Boxes[0] = %+v, expected center (11, 1) size 2x2", b)
	}

	if len(sim.Targets) != 1 {
		t.Fatalf("len(Targets) = %d, expected 1", len(sim.Targets))
	}
	if p := sim.Targets[0]; !near(p.X, 20.5) || !near(p.Y, 0.5) {
		t.Errorf("Targets[0] = %v, expected (20.5, 0.5)", p)
	}

	// last catapult wins
	if !near(sim.Launcher.X, 4) || !near(sim.Launcher.Y, 1) {
		t.Errorf("Launcher = %v, expected (4, 1)", sim.Launcher)
	}
}

func TestTranslateDefaultLauncher(t *testing.T) {
	d := Descriptor{Blocks: []Element{{Type: "enemy", X: 0, Y: 570, Width: 30, Height: 30}}}
	opts := DefaultOptions()
	opts.DefaultLauncher = core.V(7, 3)

	if got := FromDescriptor(d, opts).Launcher; got != core.V(7, 3) {
		t.Errorf("Launcher = %v, expected fallback (7, 3)", got)
	}
}

func TestTranslateIsPure(t *testing.T) {
	d := Descriptor{ID: "lvl", Blocks: []Element{
		{ID: "1", Type: "block", X: 10, Y: 20, Width: 30, Height: 40},
		{ID: "2", Type: "enemy", X: 100, Y: 200, Width: 30, Height: 30},
	}}
	before := Descriptor{ID: d.ID, Blocks: append([]Element(nil), d.Blocks...)}

	first := Translate(d, 700, DefaultOptions())
	second := Translate(d, 700, DefaultOptions())

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Translate is not idempotent: %+v vs %+v", first, second)
	}
	if !reflect.DeepEqual(d, before) {
		t.Errorf("Translate mutated its input: %+v", d)
	}
	if first.ID != "lvl" {
		t.Errorf("ID = %q, expected lvl", first.ID)
	}
}

func TestReferenceHeight(t *testing.T) {
	tests := []struct {
		name     string
		blocks   []Element
		expected float64
	}{
		{"empty uses base", nil, 600},
		{"inside base", []Element{{Y: 100, Height: 50}}, 600},
		{"extends below base", []Element{{Y: 700, Height: 50}, {Y: 10, Height: 10}}, 750},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ReferenceHeight(Descriptor{Blocks: tc.blocks}, 600)
			if got != tc.expected {
				t.Errorf("ReferenceHeight() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestTallLevelStaysAboveGround(t *testing.T) {
	// editor canvas resized smaller than the content
	d := Descriptor{Blocks: []Element{{Type: "block", X: 0, Y: 800, Width: 60, Height: 60}}}

	sim := FromDescriptor(d, DefaultOptions())
	b := sim.Boxes[0]
	if bottom := b.Center.Y - b.Height/2; !near(bottom, 0) {
		t.Errorf("lowest block bottom = %v, expected 0", bottom)
	}
}

func TestParseDefaultsAndLegacyKey(t *testing.T) {
	data := []byte(`{"elements":[{"id":1712345678901,"type":"enemy"},{"id":"b","type":"block","x":5,"y":6,"width":0,"height":10}]}`)

	d, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(d.Blocks) != 2 {
		t.Fatalf("len(Blocks) = %d, expected 2", len(d.Blocks))
	}

	e := d.Blocks[0]
	if e.ID != "1712345678901" {
		t.Errorf("numeric id = %q, expected 1712345678901", e.ID)
	}
	if e.X != 0 || e.Y != 0 || e.Width != DefaultElementWidth || e.Height != DefaultElementHeight {
		t.Errorf("defaults not applied: %+v", e)
	}

	// explicit zero is kept
	if d.Blocks[1].Width != 0 || d.Blocks[1].Height != 10 {
		t.Errorf("explicit size lost: %+v", d.Blocks[1])
	}
}

func TestParseBlocksPreferredOverElements(t *testing.T) {
	d, err := Parse([]byte(`{"id":"x","blocks":[{"type":"enemy"}],"elements":[{"type":"block"},{"type":"block"}]}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if d.ID != "x" || len(d.Blocks) != 1 || d.Blocks[0].Kind() != TypeEnemy {
		t.Errorf("Parse() = %+v, expected the blocks key", d)
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := Parse([]byte(`{"blocks":`)); err == nil {
		t.Error("expected error for truncated document")
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(Descriptor{}); !errors.Is(err, ErrEmptyLevel) {
		t.Errorf("Validate(empty) = %v, expected ErrEmptyLevel", err)
	}
	if err := Validate(Descriptor{Blocks: []Element{{Width: -1, Height: 5}}}); err == nil {
		t.Error("expected error for negative width")
	}
	if err := Validate(Descriptor{Blocks: []Element{{Type: "enemy", Width: 30, Height: 30}}}); err != nil {
		t.Errorf("Validate(valid) = %v", err)
	}
}

func TestCounts(t *testing.T) {
	d := Descriptor{Blocks: []Element{
		{Type: "enemy"}, {Type: "enemy"}, {Type: "block"}, {Type: "catapult"}, {},
	}}
	targets, blocks, catapult := d.Counts()
	if targets != 2 || blocks != 2 || !catapult {
		t.Errorf("Counts() = %d, %d, %v; expected 2, 2, true", targets, blocks, catapult)
	}
}

func TestBuiltin(t *testing.T) {
	levels := Builtin(core.V(5, 5))
	if len(levels) != 2 {
		t.Fatalf("len(Builtin()) = %d, expected 2", len(levels))
	}
	if len(levels[0].Targets) != 1 || len(levels[0].Boxes) != 3 {
		t.Errorf("level 1 = %d targets, %d boxes", len(levels[0].Targets), len(levels[0].Boxes))
	}
	if len(levels[1].Targets) != 2 || len(levels[1].Boxes) != 5 {
		t.Errorf("level 2 = %d targets, %d boxes", len(levels[1].Targets), len(levels[1].Boxes))
	}

	// levels do not share backing arrays
	levels[0].Boxes[0].Width = 99
	if levels[1].Boxes[0].Width == 99 {
		t.Error("builtin levels share box slices")
	}
}
