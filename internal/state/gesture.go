package state

import (
	"SketchBoard/internal/geometry"
)

// gesture is the single in-progress pointer interaction. A nil gesture means
// the pointer is idle.
type gesture interface {
	name() string
}

// drawing previews a new shape anchored where the pointer went down.
type drawing struct {
	kind   geometry.Kind
	anchor geometry.Point
}

// panning drags the view. Both baselines are in screen space.
type panning struct {
	pointerStart geometry.Point
	offsetStart  geometry.Point
}

// movingSelection translates a placed shape by the pointer delta. The delta
// is divided by the zoom so the shape stays under the pointer at any scale.
type movingSelection struct {
	index        int
	pointerStart geometry.Point
	start, end   geometry.Point
}

// resizingSelection drags one corner while the opposite one stays put.
type resizingSelection struct {
	index    int
	corner   Corner
	opposite geometry.Point
}

func (*drawing) name() string           { return "drawing" }
func (*panning) name() string           { return "panning" }
func (*movingSelection) name() string   { return "moving" }
func (*resizingSelection) name() string { return "resizing" }
