package surface

import "log/slog"

// DragBounds constrains a drag session.
//
// Input is the envelope of legal pointer deltas from the drag start; samples
// outside it are ignored. Target is the envelope the resulting position is
// clamped into. Offset translates the clamped delta into the dragged
// widget's owner-relative space and is subtracted from it.
type DragBounds struct {
	Input  Rect
	Target Rect
	Offset Vec2
}

// UnboundedDrag accepts every sample and never clamps.
func UnboundedDrag() DragBounds {
	return DragBounds{Input: Unbounded, Target: Unbounded}
}

// DragBounder supplies the bounds of a drag starting at a global point.
// Widgets that don't implement it are dragged unbounded.
type DragBounder interface {
	DragBounds(start Vec2) DragBounds
}

// DragStarter takes over a drag when it starts. Such drags skip the
// built-in position assignment; the widget follows the session through
// Dragger instead.
type DragStarter interface {
	DragStart(start Vec2)
}

// Dragger receives the clamped position for every accepted drag sample.
type Dragger interface {
	Drag(pos Vec2)
}

// DragEnder is notified when the session stops.
type DragEnder interface {
	DragEnd()
}

// Positioner is the built-in drag target: widgets without a Dragger have
// their position assigned directly.
type Positioner interface {
	SetPosition(pos Vec2)
}

// DragState tracks the state of a drag operation.
type DragState struct {
	Widget Widget
	Kind   PointerKind // pointer that drives the session
	Start  Vec2        // global pointer position when the drag started
	Bounds DragBounds

	// HandlerDriven is set when the widget took over the drag in DragStart.
	HandlerDriven bool

	// Position is the last accepted position.
	Position Vec2
}

// DragController owns the single drag session of an engine.
type DragController struct {
	session *DragState
	log     *slog.Logger
}

// NewDragController creates a controller with no active session.
func NewDragController(log *slog.Logger) *DragController {
	if log == nil {
		log = engineLogger
	}
	return &DragController{log: log}
}

// Start begins dragging w from the global point start, stopping any active
// session first.
func (dc *DragController) Start(w Widget, kind PointerKind, start Vec2) error {
	if w == nil {
		return ErrNilWidget
	}
	if dc.session != nil {
		dc.Stop()
	}

	bounds := UnboundedDrag()
	if b, ok := w.(DragBounder); ok {
		bounds = b.DragBounds(start)
	}
	s := &DragState{Widget: w, Kind: kind, Start: start, Bounds: bounds}
	dc.session = s

	if h, ok := w.(DragStarter); ok {
		s.HandlerDriven = true
		h.DragStart(start)
	}
	dc.log.Debug("drag: start", "widget", w.ID(), "x", start.X, "y", start.Y, "handler", s.HandlerDriven)
	return nil
}

// Update relays a pointer sample to the dragged widget. Samples whose
// delta falls outside the input range are dropped; accepted ones are
// clamped into the target range.
func (dc *DragController) Update(p Vec2) {
	s := dc.session
	if s == nil {
		return
	}
	delta := p.Sub(s.Start)
	if !s.Bounds.Input.Encloses(delta) {
		dc.log.Debug("drag: sample outside input range", "dx", delta.X, "dy", delta.Y)
		return
	}
	pos := s.Bounds.Target.Clamp(delta).Sub(s.Bounds.Offset)
	s.Position = pos

	if h, ok := s.Widget.(Dragger); ok {
		h.Drag(pos)
		return
	}
	if s.HandlerDriven {
		return
	}
	if h, ok := s.Widget.(Positioner); ok {
		h.SetPosition(pos)
	}
}

// Stop ends the session. Without one it does nothing.
func (dc *DragController) Stop() {
	s := dc.session
	if s == nil {
		return
	}
	// Clear first so a DragEnd that starts a new drag is not undone.
	dc.session = nil
	if h, ok := s.Widget.(DragEnder); ok {
		h.DragEnd()
	}
	dc.log.Debug("drag: stop", "widget", s.Widget.ID())
}

// Active returns true while a session exists.
func (dc *DragController) Active() bool {
	return dc.session != nil
}

// ActiveFor returns true while a session driven by kind exists.
func (dc *DragController) ActiveFor(kind PointerKind) bool {
	return dc.session != nil && dc.session.Kind == kind
}

// Session returns a copy of the active session, or false without one.
func (dc *DragController) Session() (DragState, bool) {
	if dc.session == nil {
		return DragState{}, false
	}
	return *dc.session, true
}
