package surface

// MultiTouchHandler receives touch events while two or more touches are
// active. Pinch and rotate recognition lives behind it.
type MultiTouchHandler func(ev Event)

// touch feeds a touch event into the PointerTouch state machine. Only a
// single active touch drives it; with more touches down the event goes to
// multi instead. Once a pinch starts, the remaining touches are ignored
// until the last one lifts.
func (r *pointerRouter) touch(ev Event, multi MultiTouchHandler) {
	if len(ev.Touches) >= 2 || (ev.Kind == EventTouchEnd && len(ev.Touches) == 1 && r.pinching) {
		if !r.pinching {
			r.abandon(PointerTouch, ev)
			r.pinching = true
		}
		if multi != nil {
			multi(ev)
		}
		return
	}

	switch ev.Kind {
	case EventTouchStart:
		r.pinching = false
		r.down(PointerTouch, ev)
	case EventTouchMove:
		if r.pinching {
			// The remaining finger of a pinch does not hover.
			return
		}
		r.move(PointerTouch, ev)
	case EventTouchEnd:
		if r.pinching {
			// The gesture was closed when the pinch began.
			r.pinching = false
			return
		}
		r.up(PointerTouch, ev)
	}
}

// abandon closes the gesture of kind without a hit: the widget under the
// pointer is released and left, and a drag of that kind is stopped.
func (r *pointerRouter) abandon(kind PointerKind, ev Event) {
	if r.drag.ActiveFor(kind) {
		r.drag.Stop()
	}
	t := r.track(kind)
	r.leave(kind, t, ev)
	t.origin = nil
	t.current = nil
}
