package surface

import (
	"fmt"
	"strings"
)

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
	MouseButtonCount
)

// Key represents a keyboard key.
type Key int

const (
	KeyNone Key = iota
	KeyTab
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyInsert
	KeyDelete
	KeyBackspace
	KeySpace
	KeyEnter
	KeyEscape
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyCount
)

var keyNames = map[Key]string{
	KeyNone:      "--",
	KeyTab:       "Tab",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyPageUp:    "PgUp",
	KeyPageDown:  "PgDn",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyInsert:    "Ins",
	KeyDelete:    "Del",
	KeyBackspace: "Backspace",
	KeySpace:     "Space",
	KeyEnter:     "Enter",
	KeyEscape:    "Esc",
	KeyF1:        "F1",
	KeyF2:        "F2",
	KeyF3:        "F3",
	KeyF4:        "F4",
	KeyF5:        "F5",
	KeyF6:        "F6",
	KeyF7:        "F7",
	KeyF8:        "F8",
	KeyF9:        "F9",
	KeyF10:       "F10",
	KeyF11:       "F11",
	KeyF12:       "F12",
}

// KeyName returns a human-readable name for a key.
func KeyName(k Key) string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "?"
}

// String implements fmt.Stringer.
func (k Key) String() string { return KeyName(k) }

// ParseKey is the inverse of KeyName. Matching is case-insensitive.
func ParseKey(name string) (Key, error) {
	for k, n := range keyNames {
		if strings.EqualFold(n, name) {
			return k, nil
		}
	}
	return KeyNone, fmt.Errorf("unknown key %q", name)
}

// Modifiers is a bitmask of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

// Contain reports whether all modifiers in m2 are held in m.
func (m Modifiers) Contain(m2 Modifiers) bool {
	return m&m2 == m2
}

// EventKind tags a boundary input event. The engine dispatches on it.
type EventKind uint8

const (
	EventPointerDown EventKind = iota
	EventPointerMove
	EventPointerUp
	EventTouchStart
	EventTouchMove
	EventTouchEnd
	EventKeyDown
	EventKeyUp
	EventResize
	eventKindCount
)

var eventKindNames = [...]string{
	EventPointerDown: "pointer-down",
	EventPointerMove: "pointer-move",
	EventPointerUp:   "pointer-up",
	EventTouchStart:  "touch-start",
	EventTouchMove:   "touch-move",
	EventTouchEnd:    "touch-end",
	EventKeyDown:     "key-down",
	EventKeyUp:       "key-up",
	EventResize:      "resize",
}

func (k EventKind) String() string {
	if k < eventKindCount {
		return eventKindNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// ParseEventKind parses the names produced by EventKind.String.
func ParseEventKind(name string) (EventKind, error) {
	for i, n := range eventKindNames {
		if n == name {
			return EventKind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEvent, name)
}

// Touch is one active touch point.
type Touch struct {
	ID       int
	Position Vec2
}

// Event is a boundary input event delivered by the host environment.
// Which fields are meaningful depends on Kind.
type Event struct {
	Kind EventKind

	// Position is the global pointer position for pointer and touch events.
	// For touch events it is the position of the touch that changed.
	Position Vec2
	Button   MouseButton

	// Touches lists the touches still active after the event.
	Touches []Touch

	Key Key

	// Size is the new viewport size for EventResize.
	Size Vec2

	Modifiers Modifiers

	// Raw is the host's native event, passed through to widgets untouched.
	Raw any
}

// KeyMap binds the keys the focus manager intercepts.
type KeyMap struct {
	Next     Key // Moves focus forward, backward with Shift
	Activate Key // Triggers the default action
}

// DefaultKeyMap returns the conventional Tab / Enter bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{Next: KeyTab, Activate: KeyEnter}
}
