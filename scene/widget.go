package scene

import (
	"image"

	"github.com/go-theft-auto/surface"
)

// base is the part of a scene widget shared by leaves and groups. It
// records every callback the engine makes into the scene's log.
type base struct {
	scene *Scene
	self  surface.Widget // the Node or Group embedding this base

	name        string
	id          surface.ID
	rect        surface.Rect
	interactive bool
	opaqueHit   bool
	yields      bool
	mask        *image.Alpha
	parent      *Group
	dead        bool

	nativeFocus int
}

func (b *base) ID() surface.ID                  { return b.id }
func (b *base) Name() string                    { return b.name }
func (b *base) Rect() surface.Rect              { return b.rect }
func (b *base) Interactive() bool               { return b.interactive }
func (b *base) RequiresOpaqueHit() bool         { return b.opaqueHit }
func (b *base) YieldsFocusThrough() bool        { return b.yields }
func (b *base) FocusTarget() surface.FocusTarget { return b }
func (b *base) Alive() bool                     { return !b.dead }

// Container returns the enclosing group. The root has none.
func (b *base) Container() surface.Container {
	if b.parent == nil {
		return nil
	}
	return b.parent
}

// OpaqueAt samples the mask, or the scene's prober for widgets without
// one. Without either the widget is opaque everywhere.
func (b *base) OpaqueAt(local surface.Vec2) bool {
	if b.mask == nil {
		if b.scene.probe != nil {
			return b.scene.probe.OpaqueAt(surface.Vec2{X: b.rect.X + local.X, Y: b.rect.Y + local.Y})
		}
		return true
	}
	x, y := int(local.X), int(local.Y)
	if !(image.Point{X: x, Y: y}).In(b.mask.Rect) {
		return false
	}
	return b.mask.AlphaAt(x, y).A > 0
}

// Focus counts native focus requests.
func (b *base) Focus() { b.nativeFocus++ }

// NativeFocus returns how often native focus was applied.
func (b *base) NativeFocus() int { return b.nativeFocus }

func (b *base) PointerDown(e surface.PointerEvent) {
	b.record("pointer-down", e.Local)
}

func (b *base) PointerMove(e surface.PointerEvent) {
	b.record("pointer-move", e.Local)
}

func (b *base) PointerUp(e surface.PointerEvent) {
	b.record("pointer-up", e.Local)
}

func (b *base) PointerOver(e surface.PointerEvent) {
	b.record("pointer-over", e.Local)
	b.scene.invalidate(b.self)
}

func (b *base) PointerOut(e surface.PointerEvent) {
	b.record("pointer-out", e.Local)
	b.scene.invalidate(b.self)
}

func (b *base) Hit(e surface.PointerEvent)       { b.record("hit", e.Local) }
func (b *base) DoubleHit(e surface.PointerEvent) { b.record("double-hit", e.Local) }

func (b *base) FocusIn() {
	b.scene.log.add(Call{Widget: b.name, Event: "focus-in"})
	b.scene.invalidate(b.self)
}

func (b *base) FocusOut() {
	b.scene.log.add(Call{Widget: b.name, Event: "focus-out"})
	b.scene.invalidate(b.self)
}

func (b *base) KeyDown(k surface.Key, mods surface.Modifiers) {
	b.scene.log.add(Call{Widget: b.name, Event: "key-down", Key: k.String()})
}

func (b *base) KeyUp(k surface.Key, mods surface.Modifiers) {
	b.scene.log.add(Call{Widget: b.name, Event: "key-up", Key: k.String()})
}

func (b *base) Activate()    { b.scene.log.add(Call{Widget: b.name, Event: "activate"}) }
func (b *base) Render()      { b.scene.log.add(Call{Widget: b.name, Event: "render"}) }
func (b *base) Recalculate() { b.scene.log.add(Call{Widget: b.name, Event: "recalculate"}) }

func (b *base) record(event string, local surface.Vec2) {
	b.scene.log.add(Call{Widget: b.name, Event: event, X: local.X, Y: local.Y})
}

// Node is a leaf widget of a scene.
type Node struct {
	base
	drag *DragDoc
}

// PointerDown starts a drag on draggable nodes.
func (n *Node) PointerDown(e surface.PointerEvent) {
	n.base.PointerDown(e)
	if n.drag != nil {
		n.scene.startDrag(n, e.Position)
	}
}

// Draggable reports whether a press starts a drag.
func (n *Node) Draggable() bool { return n.drag != nil }

// DragBounds maps the document ranges into a session. Positions come out
// as the node's new top-left corner.
func (n *Node) DragBounds(start surface.Vec2) surface.DragBounds {
	b := surface.UnboundedDrag()
	if n.drag.Input != nil {
		b.Input = *n.drag.Input
	}
	if n.drag.Target != nil {
		b.Target = *n.drag.Target
	}
	b.Offset = surface.Vec2{X: -n.rect.X, Y: -n.rect.Y}
	return b
}

func (n *Node) SetPosition(p surface.Vec2) {
	n.rect.X, n.rect.Y = p.X, p.Y
	n.scene.invalidate(n)
}

func (n *Node) DragEnd() {
	n.scene.log.add(Call{Widget: n.name, Event: "drag-end", X: n.rect.X, Y: n.rect.Y})
}

// Group is a container widget of a scene. Its children form its focus
// scope in document order.
type Group struct {
	base
	surface.Scope
}

// Children returns the direct children in traversal order.
func (g *Group) Children() []surface.Widget {
	return g.Items()
}
