package state

import (
	"SketchBoard/internal/geometry"
	"SketchBoard/internal/rough"
)

// Overlay is the selection frame: four handles and the edges joining them.
type Overlay struct {
	Handles Corners             `json:"handles"`
	Edges   [4]geometry.Segment `json:"edges"`
	Active  bool                `json:"active"`
}

// Surface is everything a renderer needs to paint one frame.
type Surface struct {
	SessionID string           `json:"sessionId"`
	Revision  uint64           `json:"revision"`
	Mode      string           `json:"mode"`
	View      View             `json:"view"`
	Shapes    []rough.Drawable `json:"shapes"`
	Preview   *rough.Drawable  `json:"preview,omitempty"`
	Overlay   Overlay          `json:"overlay"`
}

func overlayOf(sel Selection) Overlay {
	h := sel.Corners()
	_, active := sel.Index()
	return Overlay{
		Handles: h,
		Edges: [4]geometry.Segment{
			{From: h[TopLeft], To: h[TopRight]},
			{From: h[TopRight], To: h[BottomRight]},
			{From: h[BottomRight], To: h[BottomLeft]},
			{From: h[BottomLeft], To: h[TopLeft]},
		},
		Active: active,
	}
}

// Drawables returns the placed shapes followed by the preview, if any.
func (s Surface) Drawables() []rough.Drawable {
	out := make([]rough.Drawable, 0, len(s.Shapes)+1)
	out = append(out, s.Shapes...)
	if s.Preview != nil {
		out = append(out, *s.Preview)
	}
	return out
}

// Bounds returns the union of every drawable's bounds, grown by their stroke
// width. It reports false for an empty surface.
func (s Surface) Bounds() (geometry.Box, bool) {
	var (
		box geometry.Box
		ok  bool
	)
	for _, d := range s.Drawables() {
		b := d.Bounds.Expand(d.StrokeWidth)
		if !ok {
			box, ok = b, true
			continue
		}
		box = box.Union(b)
	}
	return box, ok
}
