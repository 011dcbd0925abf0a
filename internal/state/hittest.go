package state

import (
	"SketchBoard/internal/geometry"
)

// handleAt returns the selection handle under a screen position. Handles are
// hit-tested in screen space so their size does not change with zoom.
func (s *Session) handleAt(screen geometry.Point) (Corner, bool) {
	if _, ok := s.selection.Index(); !ok {
		return 0, false
	}
	corners := s.selection.Committed()
	for c := TopLeft; c <= BottomLeft; c++ {
		if s.view.ToScreen(corners[c]).Distance(screen) <= s.opts.HandleRadius {
			return c, true
		}
	}
	return 0, false
}

// bodyAt returns the top-most shape whose bounds, padded by half the stroke
// width, contain the canvas position.
func (s *Session) bodyAt(p geometry.Point) (int, bool) {
	return s.store.TopmostAt(p, s.opts.Style.StrokeWidth/2)
}
