package export

import (
	"fmt"
	"io"
	"log"

	"github.com/jung-kurt/gofpdf"

	"SketchBoard/internal/state"
)

// PDF writes a single page sized to the shapes, in points.
func PDF(w io.Writer, s state.Surface) error {
	f := frame(s)

	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: f.Width, Ht: f.Height},
	})
	p.SetTitle("SketchBoard "+s.SessionID, true)
	p.SetCreator("SketchBoard", true)
	p.AddPage()

	p.SetFillColor(int(Background.R), int(Background.G), int(Background.B))
	p.Rect(0, 0, f.Width, f.Height, "F")

	p.SetDrawColor(int(ink.R), int(ink.G), int(ink.B))
	p.SetTextColor(int(ink.R), int(ink.G), int(ink.B))
	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")

	for _, d := range s.Shapes {
		p.SetLineWidth(d.StrokeWidth)
		for _, st := range d.Strokes {
			for i := 1; i < len(st.Points); i++ {
				a, b := st.Points[i-1], st.Points[i]
				p.Line(a.X-f.X, a.Y-f.Y, b.X-f.X, b.Y-f.Y)
			}
		}
		if d.Text != nil {
			p.SetFont("Helvetica", "", d.Text.Size)
			// Text takes the baseline; the label box starts at the top.
			p.Text(d.Text.At.X-f.X, d.Text.At.Y-f.Y+d.Text.Size*0.8, d.Text.Content)
		}
	}

	if err := p.Output(w); err != nil {
		return fmt.Errorf("export pdf: %w", err)
	}
	log.Printf("[EXPORT] pdf %d shapes, %.0fx%.0f pt", len(s.Shapes), f.Width, f.Height)
	return nil
}
