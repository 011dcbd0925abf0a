// Package export renders a surface to PDF, PNG and SVG.
package export

import (
	"image/color"
	"io"

	"SketchBoard/internal/geometry"
	"SketchBoard/internal/state"
)

const (
	// Margin is the blank border around the shapes, in canvas units.
	Margin = 20

	emptyWidth  = 800
	emptyHeight = 600
)

// Background is the paper colour behind every export.
var Background = color.RGBA{R: 0xe4, G: 0xd8, B: 0xb4, A: 0xff}

var ink = color.RGBA{A: 0xff}

// frame returns the canvas region to export: the placed shapes plus a
// margin, or a blank page when there are none. The preview and the
// selection overlay are never exported.
func frame(s state.Surface) geometry.Box {
	s.Preview = nil
	b, ok := s.Bounds()
	if !ok {
		return geometry.Box{Width: emptyWidth, Height: emptyHeight}
	}
	return b.Expand(Margin)
}

// errWriter remembers the first write error so writers without error
// reporting can be checked afterwards.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
