package state

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"SketchBoard/internal/geometry"
	"SketchBoard/internal/rough"
)

// Button identifies the mouse button behind a pointer event.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonMiddle
	ButtonSecondary
)

// PointerEvent is a pointer sample in screen space.
type PointerEvent struct {
	Position geometry.Point
	Button   Button
	Shift    bool
}

// WheelEvent is one scroll tick. Negative DeltaY zooms in.
type WheelEvent struct {
	DeltaY float64
}

// Options configures a Session.
type Options struct {
	Style    rough.Style
	Renderer rough.Renderer

	ZoomIn  float64
	ZoomOut float64
	MinZoom float64
	MaxZoom float64

	// HandleRadius is the hit radius of a selection handle, in screen pixels.
	HandleRadius float64
}

// DefaultOptions returns the bold style, a time-seeded sketcher and the
// standard zoom steps.
func DefaultOptions() Options {
	return Options{
		Style:        rough.Bold,
		Renderer:     rough.NewSketcher(0),
		ZoomIn:       1.1,
		ZoomOut:      0.9,
		MinZoom:      0.1,
		MaxZoom:      10,
		HandleRadius: 8,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Style == (rough.Style{}) {
		o.Style = def.Style
	}
	if o.Renderer == nil {
		o.Renderer = def.Renderer
	}
	if o.ZoomIn <= 0 {
		o.ZoomIn = def.ZoomIn
	}
	if o.ZoomOut <= 0 {
		o.ZoomOut = def.ZoomOut
	}
	if o.MinZoom <= 0 {
		o.MinZoom = def.MinZoom
	}
	if o.MaxZoom <= 0 {
		o.MaxZoom = def.MaxZoom
	}
	if o.HandleRadius <= 0 {
		o.HandleRadius = def.HandleRadius
	}
	return o
}

// Session owns all editor state for one canvas: the view, the mode, the
// placed shapes, the selection and the gesture in progress. It is driven by
// one event stream and is not safe for concurrent use.
type Session struct {
	ID string

	// OnChange is called with a fresh snapshot after every mutation.
	OnChange func(Surface)

	opts      Options
	view      View
	mode      Mode
	store     Store
	selection Selection
	gesture   gesture
	preview   *rough.Drawable
	last      PointerEvent
	clock     Clock
}

// NewSession returns an empty session in normal mode. Zero fields of opts
// take their DefaultOptions values.
func NewSession(opts Options) *Session {
	opts = opts.withDefaults()
	if opts.MinZoom > opts.MaxZoom {
		panic(fmt.Sprintf("state: zoom bounds %g > %g", opts.MinZoom, opts.MaxZoom))
	}
	return &Session{
		ID:        uuid.NewString(),
		opts:      opts,
		view:      NewView(),
		mode:      ModeNormal,
		selection: newSelection(),
	}
}

// PointerDown starts at most one gesture. A gesture left over from a lost
// pointer-up is finalized first.
func (s *Session) PointerDown(ev PointerEvent) {
	if s.gesture != nil {
		log.Printf("[SESSION] stale %s gesture finalized on pointer down", s.gesture.name())
		s.finish(s.last)
	}
	s.last = ev

	if ev.Button == ButtonMiddle {
		s.beginPan(ev)
		return
	}
	if ev.Button != ButtonPrimary {
		return
	}

	p := s.view.ToCanvas(ev.Position)

	if corner, ok := s.handleAt(ev.Position); ok {
		index, _ := s.selection.Index()
		s.gesture = &resizingSelection{
			index:    index,
			corner:   corner,
			opposite: s.selection.Committed()[corner.Opposite()],
		}
		s.notify()
		return
	}

	if s.mode == ModeNormal {
		if index, ok := s.bodyAt(p); ok {
			placed := s.mustAt(index)
			s.selection.selectShape(index, placed.Bounds())
			s.gesture = &movingSelection{
				index:        index,
				pointerStart: ev.Position,
				start:        placed.Start,
				end:          placed.End,
			}
			log.Printf("[SESSION] selected shape %d (%v)", index, placed.Kind)
			s.notify()
			return
		}
	}

	if kind, ok := s.mode.Adding(); ok {
		if kind == geometry.Text {
			index := s.store.Append(s.place(geometry.Text, p, p))
			s.mode = ModeNormal
			log.Printf("[SESSION] committed text %d at (%.1f, %.1f)", index, p.X, p.Y)
			s.notify()
			return
		}
		s.gesture = &drawing{kind: kind, anchor: p}
		s.notify()
		return
	}

	if s.mode == ModeMove {
		s.beginPan(ev)
	}
}

// PointerMove advances the gesture in progress. Without one it does nothing.
func (s *Session) PointerMove(ev PointerEvent) {
	if s.gesture == nil {
		return
	}
	s.track(ev)
	s.last = ev
	s.notify()
}

// PointerUp completes the gesture in progress.
func (s *Session) PointerUp(ev PointerEvent) {
	if s.gesture == nil {
		return
	}
	s.finish(ev)
}

// PointerCancel completes the gesture in progress with the last known pointer
// state, as if the pointer had been released there.
func (s *Session) PointerCancel() {
	if s.gesture == nil {
		return
	}
	s.finish(s.last)
}

// Wheel zooms by one step in the direction of the tick.
func (s *Session) Wheel(ev WheelEvent) {
	var factor float64
	switch {
	case ev.DeltaY < 0:
		factor = s.opts.ZoomIn
	case ev.DeltaY > 0:
		factor = s.opts.ZoomOut
	default:
		return
	}
	s.view = s.view.Zoomed(factor, s.opts.MinZoom, s.opts.MaxZoom)
	s.notify()
}

// SetMode switches the interaction mode. It panics on a malformed mode.
func (s *Session) SetMode(m Mode) {
	if !m.Valid() {
		panic(fmt.Sprintf("state: invalid mode %v", m))
	}
	if s.mode == m {
		return
	}
	s.mode = m
	s.notify()
}

// Mode returns the current interaction mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// ConfirmClear removes every shape and resets the mode and selection. The
// caller is responsible for asking the user first.
func (s *Session) ConfirmClear() {
	n := s.store.Len()
	s.store.Clear()
	s.mode = ModeNormal
	s.selection.reset()
	s.gesture = nil
	s.preview = nil
	log.Printf("[SESSION] cleared %d shapes", n)
	s.notify()
}

// Select makes the shape in slot index the selection. It panics if the slot
// does not exist.
func (s *Session) Select(index int) {
	placed := s.mustAt(index)
	s.selection.selectShape(index, placed.Bounds())
	s.notify()
}

// Resize moves one corner of the shape in slot index to the canvas point to,
// keeping the opposite corner fixed. Symmetric draws the square or circle
// variant. The shape becomes the selection.
func (s *Session) Resize(index int, corner Corner, to geometry.Point, symmetric bool) {
	placed := s.mustAt(index)
	opposite := CornersOf(placed.Bounds())[corner.Opposite()]
	kind := s.mustKind(placed)
	if symmetric {
		kind = kind.Symmetric()
	}
	next := s.place(kind, opposite, to)
	s.mustReplace(index, next)
	s.selection.selectShape(index, next.Bounds())
	s.notify()
}

// View returns the current view transform.
func (s *Session) View() View {
	return s.view
}

// Selection returns the selection state.
func (s *Session) Selection() Selection {
	return s.selection
}

// Shapes returns a copy of the placed shapes.
func (s *Session) Shapes() []PlacedShape {
	return s.store.All()
}

// Revision returns the number of mutations applied so far.
func (s *Session) Revision() uint64 {
	return s.clock.Now()
}

// Cursor suggests the pointer cursor for the current state.
func (s *Session) Cursor() Cursor {
	if _, ok := s.gesture.(*panning); ok || s.mode == ModeMove {
		return CursorGrab
	}
	if _, ok := s.mode.Adding(); ok {
		return CursorCrosshair
	}
	return CursorDefault
}

// Surface snapshots the session for rendering.
func (s *Session) Surface() Surface {
	surface := Surface{
		SessionID: s.ID,
		Revision:  s.clock.Now(),
		Mode:      s.mode.String(),
		View:      s.view,
		Shapes:    s.store.Drawables(),
		Overlay:   overlayOf(s.selection),
	}
	if s.preview != nil {
		p := *s.preview
		surface.Preview = &p
	}
	return surface
}

func (s *Session) beginPan(ev PointerEvent) {
	s.gesture = &panning{pointerStart: ev.Position, offsetStart: s.view.Pan()}
	s.notify()
}

// track applies a pointer sample to the gesture in progress.
func (s *Session) track(ev PointerEvent) {
	p := s.view.ToCanvas(ev.Position)

	switch g := s.gesture.(type) {
	case *drawing:
		kind := g.kind
		if ev.Shift {
			kind = kind.Symmetric()
		}
		d := s.opts.Renderer.Render(s.mustCompute(kind, g.anchor, p), s.opts.Style)
		s.preview = &d

	case *panning:
		pan := ev.Position.Sub(g.pointerStart).Add(g.offsetStart)
		s.view.PanX, s.view.PanY = pan.X, pan.Y

	case *movingSelection:
		delta := ev.Position.Sub(g.pointerStart).Scale(1 / s.view.Zoom)
		kind := s.mustKind(s.mustAt(g.index))
		next := s.place(kind, g.start.Add(delta), g.end.Add(delta))
		s.mustReplace(g.index, next)
		s.selection.preview(next.Bounds())

	case *resizingSelection:
		kind := s.mustKind(s.mustAt(g.index))
		if ev.Shift {
			kind = kind.Symmetric()
		}
		next := s.place(kind, g.opposite, p)
		s.mustReplace(g.index, next)
		s.selection.preview(next.Bounds())
	}
}

// finish ends the gesture in progress using ev as the release sample.
func (s *Session) finish(ev PointerEvent) {
	switch g := s.gesture.(type) {
	case *drawing:
		kind := g.kind
		if ev.Shift {
			kind = kind.Symmetric()
		}
		end := s.view.ToCanvas(ev.Position)
		index := s.store.Append(s.place(kind, g.anchor, end))
		s.preview = nil
		s.mode = ModeNormal
		log.Printf("[SESSION] committed %v %d", kind, index)

	case *movingSelection, *resizingSelection:
		if ev != s.last {
			s.track(ev)
		}
		s.selection.commit()
	}

	s.gesture = nil
	s.last = ev
	s.notify()
}

// place computes and renders a shape, tagged with its canonical kind.
func (s *Session) place(kind geometry.Kind, start, end geometry.Point) PlacedShape {
	shape := s.mustCompute(kind, start, end)
	return PlacedShape{
		Kind:     shape.Kind,
		Start:    shape.Start,
		End:      shape.End,
		Drawable: s.opts.Renderer.Render(shape, s.opts.Style),
	}
}

func (s *Session) notify() {
	s.clock.Tick()
	if s.OnChange != nil {
		s.OnChange(s.Surface())
	}
}

func (s *Session) mustCompute(kind geometry.Kind, start, end geometry.Point) geometry.Shape {
	shape, err := geometry.Compute(kind, start, end)
	if err != nil {
		panic(fmt.Errorf("state: compute shape: %w", err))
	}
	return shape
}

func (s *Session) mustAt(index int) PlacedShape {
	placed, err := s.store.At(index)
	if err != nil {
		panic(fmt.Errorf("state: %w", err))
	}
	return placed
}

func (s *Session) mustReplace(index int, placed PlacedShape) {
	if err := s.store.ReplaceAt(index, placed); err != nil {
		panic(fmt.Errorf("state: %w", err))
	}
}

func (s *Session) mustKind(placed PlacedShape) geometry.Kind {
	kind, err := placed.canonicalKind()
	if err != nil {
		panic(fmt.Errorf("state: %w", err))
	}
	return kind
}
