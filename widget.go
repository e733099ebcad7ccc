package surface

// Widget is the capability interface every node in the widget tree exposes
// to the engine. The engine only queries it; construction, painting and
// layout belong to the widget toolkit.
type Widget interface {
	// ID identifies the widget. Two values with the same ID are the same
	// widget as far as the engine is concerned.
	ID() ID

	// Interactive reports whether the widget takes pointer input and focus.
	Interactive() bool

	// RequiresOpaqueHit reports whether hits must be confirmed with
	// OpaqueAt before the widget is accepted as a pointer target.
	RequiresOpaqueHit() bool

	// YieldsFocusThrough lets a non-interactive widget take part in hit
	// resolution so that transparent areas fall through to what is below.
	YieldsFocusThrough() bool

	// OpaqueAt tests the widget's shape at a point in its local space.
	OpaqueAt(local Vec2) bool

	// Container returns the enclosing focus scope, or nil at the root.
	Container() Container

	// FocusTarget returns the element that takes native input focus.
	// May be nil.
	FocusTarget() FocusTarget

	// Alive is false once the widget has been destroyed.
	Alive() bool
}

// Container is a widget that owns a focus scope and a traversal order over
// its focusable descendants.
type Container interface {
	Widget

	// FocusedChild returns the descendant that holds logical focus within
	// this container.
	FocusedChild() Widget
	SetFocusedChild(w Widget)

	// DefaultAction returns the widget activated by Enter, or nil.
	DefaultAction() Widget

	// DefaultFocus returns the preferred focusable descendant, used when the
	// container itself is asked to take focus. May be nil.
	DefaultFocus() Widget

	// NextFocusable returns the widget after from in traversal order, or
	// before it when reverse is set. from may be nil (start of sequence) or
	// a direct child container that ran out of widgets. It returns nil at
	// the end of the sequence unless Loop is set.
	NextFocusable(from Widget, reverse bool) Widget

	// Loop reports whether traversal wraps within this container.
	Loop() bool
}

// FocusTarget is the native input-focus handle of a widget.
type FocusTarget interface {
	Focus()
}

// PointerKind distinguishes the pointer sources that have their own
// tracking state.
type PointerKind uint8

const (
	PointerMouse PointerKind = iota
	PointerTouch
	pointerKindCount
)

func (k PointerKind) String() string {
	switch k {
	case PointerMouse:
		return "mouse"
	case PointerTouch:
		return "touch"
	default:
		return "unknown"
	}
}

// PointerEvent is what widgets receive from the pointer router.
type PointerEvent struct {
	Kind PointerKind

	// Position is the global position of the sample.
	Position Vec2

	// Local is Position translated into the receiving widget's space. For
	// synthetic events sent to a widget the pointer has left it equals
	// Position.
	Local Vec2

	Button    MouseButton
	Modifiers Modifiers
	Raw       any
}

// PointerHandler receives the normalized pointer stream.
type PointerHandler interface {
	PointerDown(e PointerEvent)
	PointerMove(e PointerEvent)
	PointerUp(e PointerEvent)
	PointerOver(e PointerEvent)
	PointerOut(e PointerEvent)
}

// HitHandler receives completed press-and-release gestures.
type HitHandler interface {
	Hit(e PointerEvent)
	DoubleHit(e PointerEvent)
}

// FocusHandler is notified when logical focus enters or leaves a widget.
type FocusHandler interface {
	FocusIn()
	FocusOut()
}

// KeyHandler receives the key events the focus manager did not consume.
// Only the focused widget is asked.
type KeyHandler interface {
	KeyDown(key Key, mods Modifiers)
	KeyUp(key Key, mods Modifiers)
}

// Activator is triggered by the activate key.
type Activator interface {
	Activate()
}

// Renderer is the render step of the frame cycle.
type Renderer interface {
	Render()
}

// Recalculator is the layout-recalculation step of the frame cycle.
type Recalculator interface {
	Recalculate()
}

// sameWidget compares widgets by identity. Two nils are the same.
func sameWidget(a, b Widget) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID() == b.ID()
}

// live returns w, or nil if w has been destroyed.
func live(w Widget) Widget {
	if w == nil || !w.Alive() {
		return nil
	}
	return w
}
