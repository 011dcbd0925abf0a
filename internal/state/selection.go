package state

import (
	"fmt"

	"SketchBoard/internal/geometry"
)

// Corner names one of the four selection handles.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomRight
	BottomLeft
)

var cornerNames = [...]string{"tl", "tr", "br", "bl"}

func (c Corner) String() string {
	if c < TopLeft || c > BottomLeft {
		return fmt.Sprintf("corner(%d)", int(c))
	}
	return cornerNames[c]
}

// Opposite returns the diagonally opposite corner.
func (c Corner) Opposite() Corner {
	return (c + 2) % 4
}

// offCanvas is where handles sit while nothing is selected.
var offCanvas = geometry.Pt(-10, -10)

// Corners holds the handle positions, indexed by Corner.
type Corners [4]geometry.Point

// CornersOf derives the handle positions of a bounding box.
func CornersOf(b geometry.Box) Corners {
	return Corners{
		TopLeft:     b.TopLeft(),
		TopRight:    b.TopRight(),
		BottomRight: b.BottomRight(),
		BottomLeft:  b.BottomLeft(),
	}
}

func sentinelCorners() Corners {
	return Corners{offCanvas, offCanvas, offCanvas, offCanvas}
}

// Selection tracks the selected shape and its handles. While a move or
// resize is in progress a live override follows the gesture; it is folded
// into the committed corners when the gesture ends.
type Selection struct {
	index     int
	selected  bool
	committed Corners
	live      *Corners
}

func newSelection() Selection {
	return Selection{committed: sentinelCorners()}
}

// Index returns the selected slot, if any.
func (s Selection) Index() (int, bool) {
	return s.index, s.selected
}

// Corners returns the handles to display: the live override during a
// gesture, otherwise the committed corners.
func (s Selection) Corners() Corners {
	if s.live != nil {
		return *s.live
	}
	return s.committed
}

// Committed returns the corners as of the last completed gesture.
func (s Selection) Committed() Corners {
	return s.committed
}

// InProgress reports whether a live override is active.
func (s Selection) InProgress() bool {
	return s.live != nil
}

func (s *Selection) selectShape(index int, bounds geometry.Box) {
	s.index, s.selected = index, true
	s.committed = CornersOf(bounds)
	s.live = nil
}

func (s *Selection) preview(bounds geometry.Box) {
	c := CornersOf(bounds)
	s.live = &c
}

func (s *Selection) commit() {
	if s.live != nil {
		s.committed = *s.live
		s.live = nil
	}
}

func (s *Selection) reset() {
	*s = newSelection()
}
