package surface

import (
	"fmt"
	"strings"
	"testing"
)

// recorder collects widget callbacks in the order they happen.
type recorder struct {
	calls []string
}

func (r *recorder) add(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) reset() { r.calls = nil }

func (r *recorder) String() string { return strings.Join(r.calls, ", ") }

// expect compares the recorded calls with want.
func (r *recorder) expect(t *testing.T, want ...string) {
	t.Helper()
	got := r.String()
	if exp := strings.Join(want, ", "); got != exp {
		t.Errorf("Expected calls [%s], got [%s]", exp, got)
	}
}

// fakeWidget implements Widget and every optional handler interface.
type fakeWidget struct {
	name        string
	interactive bool
	opaqueHit   bool
	yields      bool
	dead        bool
	opaque      func(Vec2) bool
	parent      Container
	rec         *recorder

	pos        Vec2
	nativeHits int
	onRender   func()
}

func newWidget(rec *recorder, name string) *fakeWidget {
	return &fakeWidget{name: name, interactive: true, rec: rec}
}

func (w *fakeWidget) ID() ID                   { return NewID(0, w.name) }
func (w *fakeWidget) Interactive() bool        { return w.interactive }
func (w *fakeWidget) RequiresOpaqueHit() bool  { return w.opaqueHit }
func (w *fakeWidget) YieldsFocusThrough() bool { return w.yields }
func (w *fakeWidget) Container() Container     { return w.parent }
func (w *fakeWidget) FocusTarget() FocusTarget { return w }
func (w *fakeWidget) Alive() bool              { return !w.dead }

func (w *fakeWidget) OpaqueAt(local Vec2) bool {
	if w.opaque == nil {
		return true
	}
	return w.opaque(local)
}

func (w *fakeWidget) Focus() { w.nativeHits++ }

func (w *fakeWidget) PointerDown(e PointerEvent) { w.rec.add("down %s", w.name) }
func (w *fakeWidget) PointerMove(e PointerEvent) { w.rec.add("move %s", w.name) }
func (w *fakeWidget) PointerUp(e PointerEvent)   { w.rec.add("up %s", w.name) }
func (w *fakeWidget) PointerOver(e PointerEvent) { w.rec.add("over %s", w.name) }
func (w *fakeWidget) PointerOut(e PointerEvent)  { w.rec.add("out %s", w.name) }
func (w *fakeWidget) Hit(e PointerEvent)         { w.rec.add("hit %s", w.name) }
func (w *fakeWidget) DoubleHit(e PointerEvent)   { w.rec.add("double %s", w.name) }
func (w *fakeWidget) FocusIn()                   { w.rec.add("focusin %s", w.name) }
func (w *fakeWidget) FocusOut()                  { w.rec.add("focusout %s", w.name) }
func (w *fakeWidget) Activate()                  { w.rec.add("activate %s", w.name) }
func (w *fakeWidget) Recalculate()               { w.rec.add("recalc %s", w.name) }
func (w *fakeWidget) SetPosition(p Vec2)         { w.pos = p }

func (w *fakeWidget) Render() {
	w.rec.add("render %s", w.name)
	if w.onRender != nil {
		w.onRender()
	}
}

// fakeContainer is a fakeWidget with a focus scope.
type fakeContainer struct {
	fakeWidget
	Scope
}

func newContainer(rec *recorder, name string, children ...*fakeWidget) *fakeContainer {
	c := &fakeContainer{fakeWidget: fakeWidget{name: name, rec: rec}}
	for _, w := range children {
		w.parent = c
		c.Add(w)
	}
	return c
}

// fakeSurface stacks rectangles; later layers are on top.
type fakeSurface struct {
	layers []fakeElement
}

type fakeElement struct {
	w    Widget
	rect Rect
}

func (e fakeElement) Widget() Widget      { return e.w }
func (e fakeElement) ToLocal(p Vec2) Vec2 { return Vec2{X: p.X - e.rect.X, Y: p.Y - e.rect.Y} }

func (s *fakeSurface) add(w Widget, r Rect) {
	s.layers = append(s.layers, fakeElement{w: w, rect: r})
}

func (s *fakeSurface) ElementsAt(p Vec2) []Element {
	var out []Element
	for i := len(s.layers) - 1; i >= 0; i-- {
		if s.layers[i].rect.Contains(p) {
			out = append(out, s.layers[i])
		}
	}
	return out
}

// newTestEngine builds an engine on a ManualHost and closes it when the
// test ends.
func newTestEngine(t *testing.T, root Widget, surf Surface, opts ...Option) (*Engine, *ManualHost) {
	t.Helper()
	host := NewManualHost()
	opts = append([]Option{WithRoot(root), WithSurface(surf), WithHost(host)}, opts...)
	e, err := NewEngine(opts...)
	if err != nil {
		t.Fatalf("NewEngine() returned error: %v", err)
	}
	t.Cleanup(func() { e.Close() })
	return e, host
}

func down(e *Engine, x, y float32) {
	e.Dispatch(Event{Kind: EventPointerDown, Position: Vec2{X: x, Y: y}})
}

func move(e *Engine, x, y float32) {
	e.Dispatch(Event{Kind: EventPointerMove, Position: Vec2{X: x, Y: y}})
}

func up(e *Engine, x, y float32) {
	e.Dispatch(Event{Kind: EventPointerUp, Position: Vec2{X: x, Y: y}})
}

func key(e *Engine, k Key, mods Modifiers) {
	e.Dispatch(Event{Kind: EventKeyDown, Key: k, Modifiers: mods})
}
