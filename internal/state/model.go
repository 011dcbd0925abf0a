package state

import (
	"fmt"

	"SketchBoard/internal/geometry"
	"SketchBoard/internal/rough"
)

// PlacedShape is a committed shape. Its slot in the Store is its identity.
// Drawable is always regenerated from Kind, Start and End.
type PlacedShape struct {
	Kind     geometry.Kind  `json:"kind"`
	Start    geometry.Point `json:"start"`
	End      geometry.Point `json:"end"`
	Drawable rough.Drawable `json:"drawable"`
}

// Bounds returns the logical bounding box of the shape.
func (p PlacedShape) Bounds() geometry.Box {
	return p.Drawable.Bounds
}

// canonicalKind returns the stored kind tag, failing if it was never written.
func (p PlacedShape) canonicalKind() (geometry.Kind, error) {
	if !p.Kind.Valid() {
		return geometry.KindUnknown, fmt.Errorf("%w: %v", ErrMissingGeometryTag, p.Kind)
	}
	return p.Kind, nil
}

type modeKind int

const (
	modeNormal modeKind = iota
	modeMove
	modeAdd
)

// Mode is the interaction mode: normal (select), move (pan) or adding a kind
// of shape. The zero value is normal mode.
type Mode struct {
	kind  modeKind
	shape geometry.Kind
}

var (
	// ModeNormal selects, moves and resizes shapes.
	ModeNormal = Mode{kind: modeNormal}
	// ModeMove pans the canvas with the primary button.
	ModeMove = Mode{kind: modeMove}
)

// AddMode draws a new shape of kind on the next gesture.
func AddMode(kind geometry.Kind) Mode {
	return Mode{kind: modeAdd, shape: kind}
}

// Adding returns the kind being added, if m is an add mode.
func (m Mode) Adding() (geometry.Kind, bool) {
	return m.shape, m.kind == modeAdd
}

// Valid reports whether m is a well-formed mode.
func (m Mode) Valid() bool {
	switch m.kind {
	case modeNormal, modeMove:
		return m.shape == geometry.KindUnknown
	case modeAdd:
		return m.shape.Valid()
	}
	return false
}

func (m Mode) String() string {
	switch m.kind {
	case modeNormal:
		return "normal"
	case modeMove:
		return "move"
	case modeAdd:
		return "add-" + m.shape.String()
	}
	return fmt.Sprintf("mode(%d)", int(m.kind))
}

// Cursor is a hint for the pointer cursor to show over the canvas.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorCrosshair
	CursorGrab
)
