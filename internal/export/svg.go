package export

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"SketchBoard/internal/state"
)

// SVG writes the shapes as polylines and text on a paper background.
func SVG(w io.Writer, s state.Surface) error {
	f := frame(s)
	ew := &errWriter{w: w}
	canvas := svg.New(ew)

	width, height := int(math.Ceil(f.Width)), int(math.Ceil(f.Height))
	canvas.Start(width, height)
	canvas.Title("SketchBoard " + s.SessionID)
	canvas.Rect(0, 0, width, height, "fill:"+hex(Background))

	for _, d := range s.Shapes {
		style := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%g;stroke-linecap:round;stroke-linejoin:round", hex(ink), d.StrokeWidth)
		for _, st := range d.Strokes {
			xs := make([]int, len(st.Points))
			ys := make([]int, len(st.Points))
			for i, p := range st.Points {
				xs[i] = int(math.Round(p.X - f.X))
				ys[i] = int(math.Round(p.Y - f.Y))
			}
			canvas.Polyline(xs, ys, style)
		}
		if d.Text != nil {
			x := int(math.Round(d.Text.At.X - f.X))
			y := int(math.Round(d.Text.At.Y - f.Y + d.Text.Size*0.8))
			canvas.Text(x, y, d.Text.Content, fmt.Sprintf("font-family:sans-serif;font-size:%gpx;fill:%s", d.Text.Size, hex(ink)))
		}
	}
	canvas.End()

	if ew.err != nil {
		return fmt.Errorf("export svg: %w", ew.err)
	}
	return nil
}

func hex(c interface{ RGBA() (r, g, b, a uint32) }) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
