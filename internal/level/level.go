// Package level holds the level documents produced by the level editor and
// their translation into simulation space.
package level

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Element types understood by the game. Anything else is treated as a block.
const (
	TypeBlock    = "block"
	TypeEnemy    = "enemy"
	TypeCatapult = "catapult"
)

// Editor fallbacks for elements saved without a size.
const (
	DefaultElementWidth  = 100
	DefaultElementHeight = 100
)

// ErrEmptyLevel is returned when a level has no elements.
var ErrEmptyLevel = errors.New("level: level has no elements")

// Element is a rectangle placed in the editor, in editor pixels with a
// top-left origin and y growing downward.
type Element struct {
	ID     string  `json:"id"`
	Type   string  `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Kind returns the normalized element type.
func (e Element) Kind() string {
	t := strings.ToLower(strings.TrimSpace(e.Type))
	switch t {
	case TypeEnemy, TypeCatapult:
		return t
	default:
		return TypeBlock
	}
}

// UnmarshalJSON applies the editor defaults for missing position and size.
func (e *Element) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID     json.RawMessage `json:"id"`
		Type   string          `json:"type"`
		X      *float64        `json:"x"`
		Y      *float64        `json:"y"`
		Width  *float64        `json:"width"`
		Height *float64        `json:"height"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*e = Element{
		ID:     rawID(raw.ID),
		Type:   raw.Type,
		Width:  DefaultElementWidth,
		Height: DefaultElementHeight,
	}
	if raw.X != nil {
		e.X = *raw.X
	}
	if raw.Y != nil {
		e.Y = *raw.Y
	}
	if raw.Width != nil {
		e.Width = *raw.Width
	}
	if raw.Height != nil {
		e.Height = *raw.Height
	}
	return nil
}

// rawID accepts both string and numeric ids; the editor generates
// timestamps for new elements.
func rawID(msg json.RawMessage) string {
	if len(msg) == 0 || string(msg) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(msg, &s); err == nil {
		return s
	}
	return string(msg)
}

// Descriptor is a level document as stored by the level store.
type Descriptor struct {
	ID     string    `json:"id,omitempty"`
	Blocks []Element `json:"blocks"`
}

// UnmarshalJSON accepts the legacy "elements" key used by early editor builds.
func (d *Descriptor) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID       string    `json:"id"`
		Blocks   []Element `json:"blocks"`
		Elements []Element `json:"elements"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	d.ID = raw.ID
	d.Blocks = raw.Blocks
	if d.Blocks == nil {
		d.Blocks = raw.Elements
	}
	return nil
}

// Parse decodes a level document.
func Parse(data []byte) (Descriptor, error) {
	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return Descriptor{}, fmt.Errorf("level: cannot decode document: %w", err)
	}
	return d, nil
}

// Validate reports whether a descriptor can be saved and played.
func Validate(d Descriptor) error {
	if len(d.Blocks) == 0 {
		return ErrEmptyLevel
	}
	for i, e := range d.Blocks {
		if e.Width < 0 || e.Height < 0 {
			return fmt.Errorf("level: element %d (%s) has negative size %vx%v", i, e.ID, e.Width, e.Height)
		}
	}
	return nil
}

// Counts returns the number of targets and blocks and whether a catapult is placed.
func (d Descriptor) Counts() (targets, blocks int, hasCatapult bool) {
	for _, e := range d.Blocks {
		switch e.Kind() {
		case TypeEnemy:
			targets++
		case TypeCatapult:
			hasCatapult = true
		default:
			blocks++
		}
	}
	return targets, blocks, hasCatapult
}
