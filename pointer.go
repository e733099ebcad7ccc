package surface

import "log/slog"

// pointerTrack is the per-kind gesture state. It is reset between gestures,
// never discarded.
type pointerTrack struct {
	origin  Widget // received PointerDown for the current gesture
	current Widget // last widget notified of PointerOver
}

// PointerTrack is a snapshot of one pointer kind's tracking state.
type PointerTrack struct {
	Origin  Widget
	Current Widget
}

// pointerRouter turns raw down/move/up samples into the over, down, move,
// up and out calls widgets see, using only the previous and current target.
type pointerRouter struct {
	resolver *Resolver
	drag     *DragController
	hits     *doubleHit
	log      *slog.Logger
	tracks   [pointerKindCount]*pointerTrack
	pinching bool // two or more touches are down
}

func newPointerRouter(resolver *Resolver, drag *DragController, hits *doubleHit, log *slog.Logger) *pointerRouter {
	return &pointerRouter{resolver: resolver, drag: drag, hits: hits, log: log}
}

func (r *pointerRouter) track(kind PointerKind) *pointerTrack {
	t := r.tracks[kind]
	if t == nil {
		t = &pointerTrack{}
		r.tracks[kind] = t
	}
	// Destroyed widgets drop out of the gesture.
	t.origin = live(t.origin)
	t.current = live(t.current)
	return t
}

func (r *pointerRouter) down(kind PointerKind, ev Event) {
	hit := r.resolver.Resolve(ev.Position)
	t := r.track(kind)
	t.origin = hit.Widget
	t.current = hit.Widget
	if hit.Widget != nil {
		pointerHandler(hit.Widget, func(h PointerHandler) {
			h.PointerDown(pointerEvent(kind, ev, hit.Local))
		})
	}
}

func (r *pointerRouter) move(kind PointerKind, ev Event) {
	if r.drag.ActiveFor(kind) {
		r.drag.Update(ev.Position)
		return
	}

	hit := r.resolver.Resolve(ev.Position)
	t := r.track(kind)
	c, o := hit.Widget, t.current

	if o != nil && sameWidget(c, o) {
		pointerHandler(o, func(h PointerHandler) {
			h.PointerMove(pointerEvent(kind, ev, hit.Local))
		})
		return
	}

	r.leave(kind, t, ev)
	t.current = c
	if c == nil {
		return
	}
	pe := pointerEvent(kind, ev, hit.Local)
	pointerHandler(c, func(h PointerHandler) {
		h.PointerOver(pe)
		// Re-entering the pressed widget presses it again.
		if sameWidget(c, t.origin) {
			h.PointerDown(pe)
		}
	})
}

func (r *pointerRouter) up(kind PointerKind, ev Event) {
	hit := r.resolver.Resolve(ev.Position)
	t := r.track(kind)
	o := t.origin
	t.origin = nil

	if r.drag.ActiveFor(kind) {
		// A drag end swallows the release and any hit it would produce.
		r.drag.Stop()
		return
	}

	c := hit.Widget
	if c == nil {
		r.log.Debug("pointer up: no target", "kind", kind, "x", ev.Position.X, "y", ev.Position.Y)
		return
	}
	pe := pointerEvent(kind, ev, hit.Local)
	pointerHandler(c, func(h PointerHandler) {
		h.PointerUp(pe)
	})
	if sameWidget(o, c) {
		r.hits.hit(c, pe)
	}
}

// leave sends PointerOut to the current widget. Leaving the pressed widget
// closes the press with a PointerUp first.
func (r *pointerRouter) leave(kind PointerKind, t *pointerTrack, ev Event) {
	o := t.current
	if o == nil {
		return
	}
	left := pointerEvent(kind, ev, ev.Position)
	pointerHandler(o, func(h PointerHandler) {
		if sameWidget(o, t.origin) {
			h.PointerUp(left)
		}
		h.PointerOut(left)
	})
}

// snapshot returns the current tracking state for kind.
func (r *pointerRouter) snapshot(kind PointerKind) PointerTrack {
	t := r.track(kind)
	return PointerTrack{Origin: t.origin, Current: t.current}
}

func (r *pointerRouter) reset() {
	for _, t := range r.tracks {
		if t != nil {
			*t = pointerTrack{}
		}
	}
	r.pinching = false
}

func pointerEvent(kind PointerKind, ev Event, local Vec2) PointerEvent {
	return PointerEvent{
		Kind:      kind,
		Position:  ev.Position,
		Local:     local,
		Button:    ev.Button,
		Modifiers: ev.Modifiers,
		Raw:       ev.Raw,
	}
}

func pointerHandler(w Widget, f func(PointerHandler)) {
	if h, ok := w.(PointerHandler); ok {
		f(h)
	}
}
