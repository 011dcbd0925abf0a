package export

import (
	"bytes"
	"errors"
	"image/png"
	"strings"
	"testing"

	"SketchBoard/internal/geometry"
	"SketchBoard/internal/rough"
	"SketchBoard/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lineSurface holds one straight 4px stroke from (0,0) to (100,0) and a label.
func lineSurface() state.Surface {
	return state.Surface{
		SessionID: "test-session",
		Shapes: []rough.Drawable{
			{
				Kind:        geometry.Line,
				Strokes:     []rough.Stroke{{Points: []geometry.Point{geometry.Pt(0, 0), geometry.Pt(100, 0)}}},
				StrokeWidth: 4,
				Bounds:      geometry.Box{Width: 100},
			},
			{
				Kind:        geometry.Text,
				Text:        &rough.Text{At: geometry.Pt(0, 20), Content: "Text", Size: 24},
				StrokeWidth: 4,
				Bounds:      geometry.Box{Y: 20, Width: 57.6, Height: 24},
			},
		},
	}
}

func TestFrameAddsMarginAndIgnoresPreview(t *testing.T) {
	s := lineSurface()
	s.Shapes = s.Shapes[:1]
	s.Preview = &rough.Drawable{Bounds: geometry.Box{X: 1000, Y: 1000, Width: 5, Height: 5}}

	assert.Equal(t, geometry.Box{X: -24, Y: -24, Width: 148, Height: 48}, frame(s))
	assert.Equal(t, geometry.Box{Width: emptyWidth, Height: emptyHeight}, frame(state.Surface{}))
}

func TestPNG(t *testing.T) {
	s := lineSurface()
	s.Shapes = s.Shapes[:1]

	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, s, 1))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 148, img.Bounds().Dx())
	assert.Equal(t, 48, img.Bounds().Dy())

	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, []uint32{0xe4, 0xd8, 0xb4}, []uint32{r >> 8, g >> 8, b >> 8}, "paper")

	r, g, b, _ = img.At(74, 24).RGBA()
	assert.Equal(t, []uint32{0, 0, 0}, []uint32{r >> 8, g >> 8, b >> 8}, "ink on the stroke")
}

func TestPNGScalesAndDrawsText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, lineSurface(), 2))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 296, img.Bounds().Dx())
}

func TestPNGRejectsBadScale(t *testing.T) {
	assert.Error(t, PNG(&bytes.Buffer{}, lineSurface(), 0))
	assert.Error(t, PNG(&bytes.Buffer{}, lineSurface(), -1))
}

func TestPNGRefusesHugeRaster(t *testing.T) {
	var buf bytes.Buffer
	err := PNG(&buf, lineSurface(), 1e4)
	assert.ErrorIs(t, err, ErrImageTooLarge)
	assert.Zero(t, buf.Len())
}

func TestPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, lineSurface()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.True(t, bytes.Contains(buf.Bytes(), []byte("%%EOF")))
}

func TestPDFEmptySurface(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, state.Surface{}))
	assert.NotZero(t, buf.Len())
}

func TestSVG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SVG(&buf, lineSurface()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, "#e4d8b4")
	assert.Contains(t, out, "<polyline")
	assert.Contains(t, out, ">Text</text>")
	assert.Contains(t, out, "stroke-width:4")
	assert.Contains(t, out, "test-session")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestSVGReportsWriteErrors(t *testing.T) {
	err := SVG(failingWriter{}, lineSurface())
	assert.ErrorContains(t, err, "disk full")
}
