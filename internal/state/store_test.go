package state

import (
	"testing"

	"SketchBoard/internal/geometry"
	"SketchBoard/internal/rough"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placed(t *testing.T, kind geometry.Kind, start, end geometry.Point) PlacedShape {
	t.Helper()
	shape, err := geometry.Compute(kind, start, end)
	require.NoError(t, err)
	return PlacedShape{
		Kind:     shape.Kind,
		Start:    shape.Start,
		End:      shape.End,
		Drawable: rough.NewSketcher(1).Render(shape, rough.Bold),
	}
}

func TestStoreAppendReplaceClear(t *testing.T) {
	var s Store
	a := placed(t, geometry.Rectangle, geometry.Pt(0, 0), geometry.Pt(10, 10))
	b := placed(t, geometry.Line, geometry.Pt(0, 0), geometry.Pt(5, 5))

	assert.Equal(t, 0, s.Append(a))
	assert.Equal(t, 1, s.Append(a))
	require.NoError(t, s.ReplaceAt(1, b))

	got, err := s.At(1)
	require.NoError(t, err)
	assert.Equal(t, geometry.Line, got.Kind)
	assert.Equal(t, 2, s.Len())
	assert.Len(t, s.Drawables(), 2)

	s.Clear()
	assert.Zero(t, s.Len())
}

func TestStoreIndexOutOfRange(t *testing.T) {
	var s Store
	s.Append(placed(t, geometry.Text, geometry.Pt(1, 1), geometry.Pt(1, 1)))

	assert.ErrorIs(t, s.ReplaceAt(1, PlacedShape{}), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.ReplaceAt(-1, PlacedShape{}), ErrIndexOutOfRange)
	_, err := s.At(5)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestStoreAllIsACopy(t *testing.T) {
	var s Store
	s.Append(placed(t, geometry.Rectangle, geometry.Pt(0, 0), geometry.Pt(10, 10)))

	all := s.All()
	all[0].Kind = geometry.Arrow

	got, err := s.At(0)
	require.NoError(t, err)
	assert.Equal(t, geometry.Rectangle, got.Kind)
}

func TestTopmostAtPrefersLastShape(t *testing.T) {
	var s Store
	s.Append(placed(t, geometry.Rectangle, geometry.Pt(0, 0), geometry.Pt(100, 100)))
	s.Append(placed(t, geometry.Ellipse, geometry.Pt(50, 50), geometry.Pt(150, 150)))

	i, ok := s.TopmostAt(geometry.Pt(75, 75), 0)
	require.True(t, ok)
	assert.Equal(t, 1, i)

	i, ok = s.TopmostAt(geometry.Pt(10, 10), 0)
	require.True(t, ok)
	assert.Equal(t, 0, i)

	_, ok = s.TopmostAt(geometry.Pt(160, 10), 0)
	assert.False(t, ok)

	_, ok = s.TopmostAt(geometry.Pt(-1, 10), 2)
	assert.True(t, ok, "padding widens the hit box")
}

func TestMissingGeometryTag(t *testing.T) {
	_, err := PlacedShape{}.canonicalKind()
	assert.ErrorIs(t, err, ErrMissingGeometryTag)
}
