package state

import (
	"testing"

	"SketchBoard/internal/geometry"
	"SketchBoard/internal/rough"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession() *Session {
	opts := DefaultOptions()
	opts.Renderer = rough.NewSketcher(7)
	return NewSession(opts)
}

func down(s *Session, x, y float64) { s.PointerDown(PointerEvent{Position: geometry.Pt(x, y)}) }
func move(s *Session, x, y float64) { s.PointerMove(PointerEvent{Position: geometry.Pt(x, y)}) }
func up(s *Session, x, y float64)   { s.PointerUp(PointerEvent{Position: geometry.Pt(x, y)}) }

func drawShape(s *Session, kind geometry.Kind, x0, y0, x1, y1 float64) {
	s.SetMode(AddMode(kind))
	down(s, x0, y0)
	move(s, x1, y1)
	up(s, x1, y1)
}

func bounds(t *testing.T, s *Session, index int) geometry.Box {
	t.Helper()
	shapes := s.Shapes()
	require.Greater(t, len(shapes), index)
	return shapes[index].Bounds()
}

func TestDrawRectangle(t *testing.T) {
	s := newTestSession()
	s.SetMode(AddMode(geometry.Rectangle))
	assert.Equal(t, CursorCrosshair, s.Cursor())

	down(s, 0, 0)
	move(s, 100, 50)

	surface := s.Surface()
	require.NotNil(t, surface.Preview, "preview follows the pointer")
	assert.Equal(t, geometry.Box{Width: 100, Height: 50}, surface.Preview.Bounds)
	assert.Empty(t, s.Shapes(), "preview is not committed")

	up(s, 100, 50)

	shapes := s.Shapes()
	require.Len(t, shapes, 1)
	assert.Equal(t, geometry.Rectangle, shapes[0].Kind)
	assert.Equal(t, geometry.Box{Width: 100, Height: 50}, shapes[0].Bounds())
	assert.Equal(t, ModeNormal, s.Mode())
	assert.Nil(t, s.Surface().Preview)
}

func TestShiftDrawsSymmetricVariantWithCanonicalTag(t *testing.T) {
	s := newTestSession()
	s.SetMode(AddMode(geometry.Rectangle))
	down(s, 0, 0)
	s.PointerMove(PointerEvent{Position: geometry.Pt(10, 4), Shift: true})
	assert.Equal(t, geometry.Box{Width: 4, Height: 4}, s.Surface().Preview.Bounds)

	s.PointerUp(PointerEvent{Position: geometry.Pt(10, 4), Shift: true})
	shapes := s.Shapes()
	require.Len(t, shapes, 1)
	assert.Equal(t, geometry.Rectangle, shapes[0].Kind)
	assert.Equal(t, geometry.Box{Width: 4, Height: 4}, shapes[0].Bounds())

	s.SetMode(AddMode(geometry.Ellipse))
	down(s, 0, 0)
	s.PointerUp(PointerEvent{Position: geometry.Pt(3, 4), Shift: true})
	shapes = s.Shapes()
	require.Len(t, shapes, 2)
	assert.Equal(t, geometry.Ellipse, shapes[1].Kind)
	assert.Equal(t, geometry.Box{X: -1, Y: -0.5, Width: 5, Height: 5}, shapes[1].Bounds())
}

func TestReleasingShiftRevertsOnNextMove(t *testing.T) {
	s := newTestSession()
	s.SetMode(AddMode(geometry.Rectangle))
	down(s, 0, 0)
	s.PointerMove(PointerEvent{Position: geometry.Pt(10, 4), Shift: true})
	move(s, 10, 4)
	assert.Equal(t, geometry.Box{Width: 10, Height: 4}, s.Surface().Preview.Bounds)
}

func TestAddTextIsImmediate(t *testing.T) {
	s := newTestSession()
	s.SetMode(AddMode(geometry.Text))
	down(s, 30, 40)

	shapes := s.Shapes()
	require.Len(t, shapes, 1)
	assert.Equal(t, geometry.Text, shapes[0].Kind)
	require.NotNil(t, shapes[0].Drawable.Text)
	assert.Equal(t, geometry.Pt(30, 40), shapes[0].Drawable.Text.At)
	assert.Equal(t, ModeNormal, s.Mode())

	up(s, 30, 40)
	assert.Len(t, s.Shapes(), 1)
}

func TestPanInMoveMode(t *testing.T) {
	s := newTestSession()
	s.SetMode(ModeMove)
	assert.Equal(t, CursorGrab, s.Cursor())

	down(s, 10, 10)
	move(s, 40, 30)
	assert.Equal(t, geometry.Pt(30, 20), s.View().Pan())
	up(s, 40, 30)

	down(s, 0, 0)
	move(s, -5, 5)
	up(s, -5, 5)
	assert.Equal(t, geometry.Pt(25, 25), s.View().Pan())
}

func TestMiddleButtonPansInAnyMode(t *testing.T) {
	s := newTestSession()
	s.view.Zoom = 2
	s.SetMode(AddMode(geometry.Line))

	s.PointerDown(PointerEvent{Position: geometry.Pt(0, 0), Button: ButtonMiddle})
	assert.Equal(t, CursorGrab, s.Cursor())
	s.PointerMove(PointerEvent{Position: geometry.Pt(5, 7), Button: ButtonMiddle})
	assert.Equal(t, geometry.Pt(5, 7), s.View().Pan(), "pan is not scaled by zoom")
	s.PointerUp(PointerEvent{Position: geometry.Pt(5, 7), Button: ButtonMiddle})

	assert.Equal(t, CursorCrosshair, s.Cursor())
	assert.Empty(t, s.Shapes())
	assert.Equal(t, AddMode(geometry.Line), s.Mode())
}

func TestDrawingUsesCanvasSpace(t *testing.T) {
	s := newTestSession()
	s.view = View{Zoom: 2, PanX: 10, PanY: 10}
	drawShape(s, geometry.Rectangle, 10, 10, 210, 110)
	assert.Equal(t, geometry.Box{Width: 100, Height: 50}, bounds(t, s, 0))
}

func TestClickSelectsAndDragMoves(t *testing.T) {
	s := newTestSession()
	drawShape(s, geometry.Rectangle, 0, 0, 100, 50)

	down(s, 50, 25)
	index, ok := s.Selection().Index()
	require.True(t, ok)
	assert.Equal(t, 0, index)
	assert.True(t, s.Surface().Overlay.Active)

	move(s, 60, 45)
	assert.Equal(t, geometry.Box{X: 10, Y: 20, Width: 100, Height: 50}, bounds(t, s, 0))
	assert.Equal(t, geometry.Pt(10, 20), s.Selection().Corners()[TopLeft], "live corners follow")
	assert.Equal(t, geometry.Pt(0, 0), s.Selection().Committed()[TopLeft], "committed corners wait")

	up(s, 60, 45)
	assert.Equal(t, geometry.Pt(10, 20), s.Selection().Committed()[TopLeft])
	assert.False(t, s.Selection().InProgress())
}

func TestMoveTracksPointerWhenZoomed(t *testing.T) {
	s := newTestSession()
	drawShape(s, geometry.Arrow, 0, 0, 100, 0)
	s.view.Zoom = 2

	down(s, 100, 0)
	move(s, 120, 40)
	up(s, 120, 40)

	shapes := s.Shapes()
	assert.Equal(t, geometry.Pt(10, 20), shapes[0].Start)
	assert.Equal(t, geometry.Pt(110, 20), shapes[0].End)
}

func TestMoveKeepsSquareSquare(t *testing.T) {
	s := newTestSession()
	s.SetMode(AddMode(geometry.Rectangle))
	down(s, 0, 0)
	s.PointerUp(PointerEvent{Position: geometry.Pt(40, 20), Shift: true})

	down(s, 10, 10)
	move(s, 30, 15)
	up(s, 30, 15)
	assert.Equal(t, geometry.Box{X: 20, Y: 5, Width: 20, Height: 20}, bounds(t, s, 0))
}

func TestResizeHoldsOppositeCorner(t *testing.T) {
	s := newTestSession()
	drawShape(s, geometry.Rectangle, 0, 0, 100, 50)
	down(s, 50, 25)
	up(s, 50, 25)
	before := s.Selection().Committed()[TopLeft]

	down(s, 100, 50)
	move(s, 140, 70)
	up(s, 150, 80)

	b := bounds(t, s, 0)
	assert.Equal(t, before, b.TopLeft())
	assert.Equal(t, geometry.Pt(150, 80), b.BottomRight())
	assert.Equal(t, geometry.Pt(150, 80), s.Selection().Committed()[BottomRight])
	assert.Equal(t, geometry.Rectangle, s.Shapes()[0].Kind)
}

func TestResizeWithShiftAndAcrossOpposite(t *testing.T) {
	s := newTestSession()
	drawShape(s, geometry.Rectangle, 0, 0, 100, 50)
	s.Select(0)

	down(s, 100, 50)
	s.PointerMove(PointerEvent{Position: geometry.Pt(150, 80), Shift: true})
	assert.Equal(t, geometry.Box{Width: 80, Height: 80}, bounds(t, s, 0))
	assert.Equal(t, geometry.Rectangle, s.Shapes()[0].Kind, "stored tag stays canonical")

	up(s, -50, -20)
	assert.Equal(t, geometry.Box{X: -50, Y: -20, Width: 50, Height: 20}, bounds(t, s, 0))
}

func TestHandlesIgnoredWithoutSelection(t *testing.T) {
	s := newTestSession()
	down(s, -10, -10)
	move(s, 20, 20)
	up(s, 20, 20)
	assert.Empty(t, s.Shapes())
	assert.Equal(t, geometry.Pt(0, 0), s.View().Pan())
}

func TestBodiesIgnoredInAddMode(t *testing.T) {
	s := newTestSession()
	drawShape(s, geometry.Rectangle, 0, 0, 100, 50)
	drawShape(s, geometry.Ellipse, 20, 20, 60, 40)

	require.Len(t, s.Shapes(), 2)
	_, ok := s.Selection().Index()
	assert.False(t, ok)
}

func TestProgrammaticResize(t *testing.T) {
	s := newTestSession()
	drawShape(s, geometry.Ellipse, 0, 0, 100, 50)

	s.Resize(0, BottomRight, geometry.Pt(40, 30), true)
	assert.Equal(t, geometry.Ellipse, s.Shapes()[0].Kind)
	assert.InDelta(t, bounds(t, s, 0).Width, bounds(t, s, 0).Height, 1e-9)

	index, ok := s.Selection().Index()
	assert.True(t, ok)
	assert.Equal(t, 0, index)
}

func TestConfirmClear(t *testing.T) {
	s := newTestSession()
	drawShape(s, geometry.Rectangle, 0, 0, 100, 50)
	drawShape(s, geometry.Line, 0, 0, 10, 10)
	s.Select(1)
	s.SetMode(AddMode(geometry.Arrow))

	s.ConfirmClear()

	assert.Empty(t, s.Shapes())
	_, ok := s.Selection().Index()
	assert.False(t, ok)
	assert.Equal(t, ModeNormal, s.Mode())
	assert.Equal(t, sentinelCorners(), s.Selection().Corners())
	assert.False(t, s.Surface().Overlay.Active)
}

func TestStaleDownFinalizesPreviousGesture(t *testing.T) {
	s := newTestSession()
	s.SetMode(AddMode(geometry.Rectangle))
	down(s, 0, 0)
	move(s, 20, 20)

	down(s, 200, 200)

	require.Len(t, s.Shapes(), 1)
	assert.Equal(t, geometry.Box{Width: 20, Height: 20}, bounds(t, s, 0))
	assert.Equal(t, CursorDefault, s.Cursor())
}

func TestPointerCancelCommitsLastState(t *testing.T) {
	s := newTestSession()
	drawShape(s, geometry.Rectangle, 0, 0, 100, 50)
	down(s, 50, 25)
	move(s, 70, 25)

	s.PointerCancel()

	assert.False(t, s.Selection().InProgress())
	assert.Equal(t, geometry.Pt(20, 0), s.Selection().Committed()[TopLeft])
	s.PointerCancel()
}

func TestMoveWithoutGestureIsNoop(t *testing.T) {
	s := newTestSession()
	rev := s.Revision()
	move(s, 10, 10)
	up(s, 10, 10)
	s.PointerDown(PointerEvent{Position: geometry.Pt(1, 1), Button: ButtonSecondary})
	assert.Equal(t, rev, s.Revision())
}

func TestWheelZoom(t *testing.T) {
	s := newTestSession()
	s.Wheel(WheelEvent{DeltaY: -1})
	s.Wheel(WheelEvent{DeltaY: -3})
	assert.InDelta(t, 1.21, s.View().Zoom, 1e-12)

	s.Wheel(WheelEvent{})
	assert.InDelta(t, 1.21, s.View().Zoom, 1e-12)

	s.Wheel(WheelEvent{DeltaY: 1})
	assert.InDelta(t, 1.089, s.View().Zoom, 1e-12)
}

func TestZeroOptionsTakeDefaults(t *testing.T) {
	s := NewSession(Options{})
	s.Wheel(WheelEvent{DeltaY: -1})
	assert.InDelta(t, 1.1, s.View().Zoom, 1e-12)
	assert.InDelta(t, 10/1.1, s.View().ToCanvas(geometry.Pt(10, 10)).X, 1e-9)

	for i := 0; i < 100; i++ {
		s.Wheel(WheelEvent{DeltaY: 1})
	}
	assert.InDelta(t, 0.1, s.View().Zoom, 1e-12)

	drawShape(s, geometry.Rectangle, 0, 0, 40, 20)
	require.Len(t, s.Shapes(), 1)
	assert.Equal(t, rough.Bold.StrokeWidth, s.Shapes()[0].Drawable.StrokeWidth)
}

func TestInvertedZoomBoundsPanic(t *testing.T) {
	assert.Panics(t, func() { NewSession(Options{MinZoom: 5, MaxZoom: 2}) })
}

func TestOnChangeReceivesEachRevision(t *testing.T) {
	s := newTestSession()
	var got []Surface
	s.OnChange = func(surface Surface) { got = append(got, surface) }

	drawShape(s, geometry.Line, 0, 0, 10, 10)

	require.NotEmpty(t, got)
	for i := 1; i < len(got); i++ {
		assert.Greater(t, got[i].Revision, got[i-1].Revision)
	}
	last := got[len(got)-1]
	assert.Equal(t, s.ID, last.SessionID)
	assert.Equal(t, s.Revision(), last.Revision)
	assert.Len(t, last.Shapes, 1)
	assert.Equal(t, "normal", last.Mode)
}

func TestInvariantViolationsPanic(t *testing.T) {
	s := newTestSession()
	assert.Panics(t, func() { s.SetMode(AddMode(geometry.KindUnknown)) })
	assert.Panics(t, func() { s.Select(3) })
	assert.Panics(t, func() { s.Resize(0, TopLeft, geometry.Pt(1, 1), false) })
}

func TestSurfaceBounds(t *testing.T) {
	s := newTestSession()
	_, ok := s.Surface().Bounds()
	assert.False(t, ok)

	drawShape(s, geometry.Rectangle, 0, 0, 100, 50)
	drawShape(s, geometry.Line, 200, 200, 300, 250)
	b, ok := s.Surface().Bounds()
	require.True(t, ok)
	w := rough.Bold.StrokeWidth
	assert.Equal(t, geometry.Box{X: -w, Y: -w, Width: 300 + 2*w, Height: 250 + 2*w}, b)
}
