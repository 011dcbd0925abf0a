package ui

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"SketchBoard/internal/geometry"
	"SketchBoard/internal/rough"
	"SketchBoard/internal/state"
)

var (
	paperColor   = color.NRGBA{R: 0xe4, G: 0xd8, B: 0xb4, A: 0xff}
	gridColor    = color.NRGBA{R: 0x80, G: 0x70, B: 0x50, A: 0x30}
	inkColor     = color.NRGBA{A: 0xff}
	overlayColor = color.NRGBA{R: 0xff, G: 0x9f, B: 0xa0, A: 0xff}
)

const (
	gridSize     = 50
	minGridStep  = 8
	handleRadius = 6
)

// BoardWidget is the canvas. It forwards pointer input to a Session and
// paints the surfaces the session emits.
type BoardWidget struct {
	widget.BaseWidget

	session   *state.Session
	mu        sync.RWMutex
	surface   state.Surface
	showGrid  bool
	statusBar *widget.Label
	shareLink string

	// Pointer bookkeeping for the fyne event stream: moves can arrive both
	// as hover and as drag events, and neither carries modifiers. Shift is
	// followed through the window's key events instead.
	pressed bool
	button  state.Button
	shift   bool
	lastPos fyne.Position

	// OnChange is called after the board has taken a new surface.
	OnChange func(state.Surface)
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ fyne.Scrollable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)
var _ desktop.Cursorable = (*BoardWidget)(nil)

func NewBoardWidget(session *state.Session) *BoardWidget {
	b := &BoardWidget{
		session:   session,
		surface:   session.Surface(),
		showGrid:  true,
		statusBar: widget.NewLabel("Ready"),
	}
	session.OnChange = b.setSurface
	b.ExtendBaseWidget(b)
	b.updateStatus()
	return b
}

func (b *BoardWidget) setSurface(s state.Surface) {
	b.mu.Lock()
	b.surface = s
	b.mu.Unlock()
	b.updateStatus()
	b.Refresh()
	if b.OnChange != nil {
		b.OnChange(s)
	}
}

// Surface returns the last surface the board painted.
func (b *BoardWidget) Surface() state.Surface {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.surface
}

func (b *BoardWidget) Session() *state.Session { return b.session }

func (b *BoardWidget) SetMode(m state.Mode) { b.session.SetMode(m) }

// ConfirmClear clears the canvas; the caller has already asked the user.
func (b *BoardWidget) ConfirmClear() { b.session.ConfirmClear() }

func (b *BoardWidget) SetShowGrid(show bool) {
	b.showGrid = show
	b.Refresh()
}

// SetShareLink shows where viewers can watch the canvas.
func (b *BoardWidget) SetShareLink(link string) {
	b.shareLink = link
	b.updateStatus()
}

func (b *BoardWidget) StatusBar() *widget.Label { return b.statusBar }

// SetStatus shows a transient message. Safe to call from any goroutine.
func (b *BoardWidget) SetStatus(text string) {
	fyne.Do(func() {
		b.statusBar.SetText(text)
	})
}

func (b *BoardWidget) updateStatus() {
	b.statusBar.SetText(statusText(b.Surface(), b.shareLink))
}

func toPoint(p fyne.Position) geometry.Point {
	return geometry.Point{X: float64(p.X), Y: float64(p.Y)}
}

func toPos(p geometry.Point) fyne.Position {
	return fyne.NewPos(float32(p.X), float32(p.Y))
}

func toButton(b desktop.MouseButton) state.Button {
	switch b {
	case desktop.MouseButtonTertiary:
		return state.ButtonMiddle
	case desktop.MouseButtonSecondary:
		return state.ButtonSecondary
	}
	return state.ButtonPrimary
}

func (b *BoardWidget) pointer(pos fyne.Position) state.PointerEvent {
	return state.PointerEvent{Position: toPoint(pos), Button: b.button, Shift: b.shift}
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	b.pressed = true
	b.button = toButton(e.Button)
	b.shift = e.Modifier&fyne.KeyModifierShift != 0
	b.lastPos = e.Position
	b.session.PointerDown(b.pointer(e.Position))
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if !b.pressed {
		return
	}
	b.pressed = false
	b.shift = e.Modifier&fyne.KeyModifierShift != 0
	b.lastPos = e.Position
	b.session.PointerUp(b.pointer(e.Position))
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent) {}

func (b *BoardWidget) MouseOut() {}

func (b *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	b.move(e.Position)
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.move(e.Position)
}

// DragEnd covers releases the widget never saw, e.g. outside the window.
func (b *BoardWidget) DragEnd() {
	if b.pressed {
		b.pressed = false
		b.session.PointerCancel()
	}
}

func (b *BoardWidget) move(pos fyne.Position) {
	if !b.pressed || pos == b.lastPos {
		return
	}
	b.lastPos = pos
	b.session.PointerMove(b.pointer(pos))
}

// watchModifiers follows Shift through c's key events, keeping any handlers
// already installed. Canvases without desktop key events are ignored.
func (b *BoardWidget) watchModifiers(c fyne.Canvas) {
	dc, ok := c.(desktop.Canvas)
	if !ok {
		return
	}
	down, up := dc.OnKeyDown(), dc.OnKeyUp()
	dc.SetOnKeyDown(func(e *fyne.KeyEvent) {
		b.shiftKey(e, true)
		if down != nil {
			down(e)
		}
	})
	dc.SetOnKeyUp(func(e *fyne.KeyEvent) {
		b.shiftKey(e, false)
		if up != nil {
			up(e)
		}
	})
}

// shiftKey re-evaluates the gesture in progress at the last pointer position
// when Shift changes, so the preview toggles symmetry without a move.
func (b *BoardWidget) shiftKey(e *fyne.KeyEvent, pressed bool) {
	if e.Name != desktop.KeyShiftLeft && e.Name != desktop.KeyShiftRight {
		return
	}
	if b.shift == pressed {
		return
	}
	b.shift = pressed
	if b.pressed {
		b.session.PointerMove(b.pointer(b.lastPos))
	}
}

// Scrolled zooms. fyne reports wheel-up as positive DY.
func (b *BoardWidget) Scrolled(e *fyne.ScrollEvent) {
	b.session.Wheel(state.WheelEvent{DeltaY: -float64(e.Scrolled.DY)})
}

func (b *BoardWidget) Cursor() desktop.Cursor {
	switch b.session.Cursor() {
	case state.CursorGrab:
		return desktop.PointerCursor
	case state.CursorCrosshair:
		return desktop.CrosshairCursor
	}
	return desktop.DefaultCursor
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.background = canvas.NewRectangle(paperColor)
	r.build()
	return r
}

type boardWidgetRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
	size       fyne.Size
	objects    []fyne.CanvasObject
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *boardWidgetRenderer) Refresh() {
	r.build()
	canvas.Refresh(r.board)
}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.size = size
	r.background.Resize(size)
	r.build()
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *boardWidgetRenderer) Destroy() {}

// build turns the surface into canvas objects in screen space.
func (r *boardWidgetRenderer) build() {
	s := r.board.Surface()
	objects := []fyne.CanvasObject{r.background}

	if r.board.showGrid {
		objects = append(objects, r.grid(s.View)...)
	}
	for _, d := range s.Drawables() {
		objects = append(objects, drawableObjects(d, s.View)...)
	}
	if s.Overlay.Active {
		objects = append(objects, overlayObjects(s.Overlay, s.View)...)
	}
	r.objects = objects
}

func (r *boardWidgetRenderer) grid(v state.View) []fyne.CanvasObject {
	step := float32(gridSize * v.Zoom)
	if step < minGridStep || r.size.Width <= 0 || r.size.Height <= 0 {
		return nil
	}
	var lines []fyne.CanvasObject
	for x := mod(float32(v.PanX), step); x < r.size.Width; x += step {
		line := canvas.NewLine(gridColor)
		line.Position1 = fyne.NewPos(x, 0)
		line.Position2 = fyne.NewPos(x, r.size.Height)
		line.StrokeWidth = 0.5
		lines = append(lines, line)
	}
	for y := mod(float32(v.PanY), step); y < r.size.Height; y += step {
		line := canvas.NewLine(gridColor)
		line.Position1 = fyne.NewPos(0, y)
		line.Position2 = fyne.NewPos(r.size.Width, y)
		line.StrokeWidth = 0.5
		lines = append(lines, line)
	}
	return lines
}

func mod(a, m float32) float32 {
	r := a - m*float32(int(a/m))
	if r < 0 {
		r += m
	}
	return r
}

func drawableObjects(d rough.Drawable, v state.View) []fyne.CanvasObject {
	var objects []fyne.CanvasObject
	width := float32(d.StrokeWidth * v.Zoom)
	for _, st := range d.Strokes {
		for i := 1; i < len(st.Points); i++ {
			seg := canvas.NewLine(inkColor)
			seg.StrokeWidth = width
			seg.Position1 = toPos(v.ToScreen(st.Points[i-1]))
			seg.Position2 = toPos(v.ToScreen(st.Points[i]))
			objects = append(objects, seg)
		}
	}
	if d.Text != nil {
		text := canvas.NewText(d.Text.Content, inkColor)
		text.TextSize = float32(d.Text.Size * v.Zoom)
		text.Move(toPos(v.ToScreen(d.Text.At)))
		text.Resize(text.MinSize())
		objects = append(objects, text)
	}
	return objects
}

func overlayObjects(o state.Overlay, v state.View) []fyne.CanvasObject {
	var objects []fyne.CanvasObject
	for _, e := range o.Edges {
		edge := canvas.NewLine(overlayColor)
		edge.StrokeWidth = 1
		edge.Position1 = toPos(v.ToScreen(e.From))
		edge.Position2 = toPos(v.ToScreen(e.To))
		objects = append(objects, edge)
	}
	for _, h := range o.Handles {
		c := toPos(v.ToScreen(h))
		handle := canvas.NewCircle(paperColor)
		handle.StrokeColor = overlayColor
		handle.StrokeWidth = 2
		handle.Position1 = c.SubtractXY(handleRadius, handleRadius)
		handle.Position2 = c.AddXY(handleRadius, handleRadius)
		objects = append(objects, handle)
	}
	return objects
}
