package state

import (
	"errors"
	"fmt"

	"SketchBoard/internal/geometry"
	"SketchBoard/internal/rough"
)

var (
	// ErrIndexOutOfRange is returned for a slot beyond the end of the store.
	ErrIndexOutOfRange = errors.New("shape index out of range")
	// ErrMissingGeometryTag is returned for a placed shape without a valid kind.
	ErrMissingGeometryTag = errors.New("placed shape has no geometry tag")
)

// Store is the ordered collection of placed shapes. Slots are stable across
// ReplaceAt; shapes are only ever appended or cleared.
type Store struct {
	shapes []PlacedShape
}

// Append adds a shape and returns its slot.
func (s *Store) Append(p PlacedShape) int {
	s.shapes = append(s.shapes, p)
	return len(s.shapes) - 1
}

// ReplaceAt swaps the shape in slot i.
func (s *Store) ReplaceAt(i int, p PlacedShape) error {
	if i < 0 || i >= len(s.shapes) {
		return fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, i, len(s.shapes))
	}
	s.shapes[i] = p
	return nil
}

// At returns the shape in slot i.
func (s *Store) At(i int) (PlacedShape, error) {
	if i < 0 || i >= len(s.shapes) {
		return PlacedShape{}, fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, i, len(s.shapes))
	}
	return s.shapes[i], nil
}

// Len returns the number of placed shapes.
func (s *Store) Len() int {
	return len(s.shapes)
}

// Clear removes every shape.
func (s *Store) Clear() {
	s.shapes = nil
}

// All returns a copy of the placed shapes in order.
func (s *Store) All() []PlacedShape {
	out := make([]PlacedShape, len(s.shapes))
	copy(out, s.shapes)
	return out
}

// Drawables returns the drawable of every shape in order.
func (s *Store) Drawables() []rough.Drawable {
	out := make([]rough.Drawable, 0, len(s.shapes))
	for _, p := range s.shapes {
		out = append(out, p.Drawable)
	}
	return out
}

// TopmostAt returns the last slot whose bounds, grown by pad, contain p.
func (s *Store) TopmostAt(p geometry.Point, pad float64) (int, bool) {
	for i := len(s.shapes) - 1; i >= 0; i-- {
		if s.shapes[i].Bounds().Expand(pad).Contains(p) {
			return i, true
		}
	}
	return 0, false
}
