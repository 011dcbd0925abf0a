package export

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"log"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"SketchBoard/internal/geometry"
	"SketchBoard/internal/state"
)

// MaxPNGPixels bounds the raster PNG will allocate.
const MaxPNGPixels = 64 << 20

// ErrImageTooLarge is returned when the shapes span more than MaxPNGPixels
// at the requested scale.
var ErrImageTooLarge = errors.New("image too large")

// PNG rasterises the shapes at scale pixels per canvas unit.
func PNG(w io.Writer, s state.Surface, scale float64) error {
	if scale <= 0 || math.IsInf(scale, 0) || math.IsNaN(scale) {
		return fmt.Errorf("export png: scale must be positive, got %g", scale)
	}
	f := frame(s)
	fw, fh := math.Ceil(f.Width*scale), math.Ceil(f.Height*scale)
	if fw*fh > MaxPNGPixels {
		return fmt.Errorf("export png: %w: %.0fx%.0f exceeds %d pixels", ErrImageTooLarge, fw, fh, MaxPNGPixels)
	}
	width, height := int(fw), int(fh)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	toImage := func(p geometry.Point) geometry.Point {
		return geometry.Point{X: (p.X - f.X) * scale, Y: (p.Y - f.Y) * scale}
	}

	r := vector.NewRasterizer(width, height)
	src := image.NewUniform(ink)
	for _, d := range s.Shapes {
		half := d.StrokeWidth * scale / 2
		for _, st := range d.Strokes {
			for i := 1; i < len(st.Points); i++ {
				strokeSegment(r, img, src, toImage(st.Points[i-1]), toImage(st.Points[i]), half)
			}
		}
	}

	faces := map[float64]font.Face{}
	for _, d := range s.Shapes {
		if d.Text == nil {
			continue
		}
		size := d.Text.Size * scale
		face, ok := faces[size]
		if !ok {
			var err error
			if face, err = newFace(size); err != nil {
				return fmt.Errorf("export png: %w", err)
			}
			faces[size] = face
		}
		at := toImage(d.Text.At)
		drawer := &font.Drawer{
			Dst:  img,
			Src:  src,
			Face: face,
			Dot: fixed.Point26_6{
				X: fixed.Int26_6(at.X * 64),
				Y: fixed.Int26_6(at.Y*64) + face.Metrics().Ascent,
			},
		}
		drawer.DrawString(d.Text.Content)
	}

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("export png: %w", err)
	}
	log.Printf("[EXPORT] png %d shapes, %dx%d px", len(s.Shapes), width, height)
	return nil
}

// strokeSegment fills the rectangle of half-width half around a→b, extended
// by half at both ends so consecutive segments join without gaps.
func strokeSegment(r *vector.Rasterizer, dst draw.Image, src image.Image, a, b geometry.Point, half float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	ux, uy := 1.0, 0.0
	if length > 0 {
		ux, uy = dx/length, dy/length
	}
	// along and across the segment
	ax, ay := ux*half, uy*half
	nx, ny := -uy*half, ux*half

	r.Reset(dst.Bounds().Dx(), dst.Bounds().Dy())
	r.MoveTo(float32(a.X-ax+nx), float32(a.Y-ay+ny))
	r.LineTo(float32(b.X+ax+nx), float32(b.Y+ay+ny))
	r.LineTo(float32(b.X+ax-nx), float32(b.Y+ay-ny))
	r.LineTo(float32(a.X-ax-nx), float32(a.Y-ay-ny))
	r.ClosePath()
	r.Draw(dst, dst.Bounds(), src, image.Point{})
}

func newFace(size float64) (font.Face, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}
