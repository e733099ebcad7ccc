package surface

import "log/slog"

// Element is one entry of the surface stack under a point.
type Element interface {
	// Widget returns the widget that owns the element, or nil for
	// decorative elements with no widget behind them.
	Widget() Widget

	// ToLocal translates a global point into the widget's local space.
	ToLocal(p Vec2) Vec2
}

// Surface lists the elements under a global point, topmost first.
type Surface interface {
	ElementsAt(p Vec2) []Element
}

// Hit is the result of resolving a point. Widget is nil when nothing
// eligible was found, in which case Local holds the raw point.
type Hit struct {
	Widget Widget
	Local  Vec2
}

// Resolver finds the widget that should receive a pointer event.
// It keeps no state between queries.
type Resolver struct {
	surface Surface
	root    Widget
	log     *slog.Logger
}

// NewResolver creates a resolver over the given surface. root may be nil.
func NewResolver(surface Surface, root Widget, log *slog.Logger) *Resolver {
	if log == nil {
		log = engineLogger
	}
	return &Resolver{surface: surface, root: root, log: log}
}

// Resolve walks the elements under p from the top. The first widget that
// is neither interactive nor yields focus through blocks everything below
// it. The root is accepted unconditionally. Any other widget is accepted
// unless it requires an opaque hit and p lands on a transparent part of
// it, in which case the walk continues with the next element.
func (r *Resolver) Resolve(p Vec2) Hit {
	for _, el := range r.surface.ElementsAt(p) {
		w := live(el.Widget())
		if w == nil {
			continue
		}
		if !w.Interactive() && !w.YieldsFocusThrough() {
			r.log.Debug("resolve: blocked", "widget", w.ID(), "x", p.X, "y", p.Y)
			return Hit{Local: p}
		}
		local := el.ToLocal(p)
		if r.root != nil && sameWidget(w, r.root) {
			return Hit{Widget: w, Local: local}
		}
		if !w.RequiresOpaqueHit() || w.OpaqueAt(local) {
			return Hit{Widget: w, Local: local}
		}
		r.log.Debug("resolve: transparent, falling through", "widget", w.ID(), "lx", local.X, "ly", local.Y)
	}
	return Hit{Local: p}
}
