package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/surface"
)

// GLFWInputAdapter turns GLFW window callbacks into engine events.
// GLFW invokes callbacks from PollEvents, so events reach the engine on
// the main goroutine together with the FrameHost callbacks.
type GLFWInputAdapter struct {
	window *glfw.Window
	engine *surface.Engine

	cursor surface.Vec2
	mods   surface.Modifiers

	// The button that started the current press. Other buttons pressed
	// while it is held are ignored.
	pressed bool
	button  surface.MouseButton

	// OnError receives dispatch errors. Defaults to dropping them.
	OnError func(error)
}

// NewGLFWInputAdapter installs callbacks on window that feed engine.
func NewGLFWInputAdapter(window *glfw.Window, engine *surface.Engine) *GLFWInputAdapter {
	adapter := &GLFWInputAdapter{
		window:  window,
		engine:  engine,
		OnError: func(error) {},
	}

	// Setup callbacks
	window.SetKeyCallback(adapter.keyCallback)
	window.SetMouseButtonCallback(adapter.mouseButtonCallback)
	window.SetCursorPosCallback(adapter.cursorPosCallback)
	window.SetSizeCallback(adapter.sizeCallback)
	window.SetFocusCallback(adapter.focusCallback)

	x, y := window.GetCursorPos()
	adapter.cursor = surface.Vec2{X: float32(x), Y: float32(y)}
	w, h := window.GetSize()
	adapter.dispatch(surface.Event{Kind: surface.EventResize, Size: surface.Vec2{X: float32(w), Y: float32(h)}})

	return adapter
}

// Cursor returns the last cursor position in window coordinates.
func (a *GLFWInputAdapter) Cursor() surface.Vec2 {
	return a.cursor
}

func (a *GLFWInputAdapter) dispatch(ev surface.Event) {
	if err := a.engine.Listener(ev.Kind).Handle(ev); err != nil {
		a.OnError(err)
	}
}

func (a *GLFWInputAdapter) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	a.mods = glfwModsToSurface(mods)
	k := glfwKeyToSurfaceKey(key)
	if k == surface.KeyNone {
		return
	}

	ev := surface.Event{Key: k, Modifiers: a.mods, Raw: key}
	switch action {
	case glfw.Press, glfw.Repeat:
		ev.Kind = surface.EventKeyDown
	case glfw.Release:
		ev.Kind = surface.EventKeyUp
	default:
		return
	}
	a.dispatch(ev)
}

func (a *GLFWInputAdapter) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	b := glfwMouseButtonToSurface(button)
	if b < 0 {
		return
	}
	a.mods = glfwModsToSurface(mods)

	kind, ok := a.buttonEvent(b, action)
	if !ok {
		return
	}
	a.dispatch(surface.Event{Kind: kind, Position: a.cursor, Button: b, Modifiers: a.mods, Raw: button})
}

// buttonEvent maps a button transition to a pointer event. The engine
// tracks one press per pointer kind, so only the first button held starts
// a press and only its release ends it.
func (a *GLFWInputAdapter) buttonEvent(b surface.MouseButton, action glfw.Action) (surface.EventKind, bool) {
	switch action {
	case glfw.Press:
		if a.pressed {
			return 0, false
		}
		a.pressed, a.button = true, b
		return surface.EventPointerDown, true
	case glfw.Release:
		if !a.pressed || b != a.button {
			return 0, false
		}
		a.pressed = false
		return surface.EventPointerUp, true
	}
	return 0, false
}

func (a *GLFWInputAdapter) cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	a.cursor = surface.Vec2{X: float32(xpos), Y: float32(ypos)}
	a.dispatch(surface.Event{Kind: surface.EventPointerMove, Position: a.cursor, Modifiers: a.mods})
}

func (a *GLFWInputAdapter) sizeCallback(w *glfw.Window, width, height int) {
	a.dispatch(surface.Event{Kind: surface.EventResize, Size: surface.Vec2{X: float32(width), Y: float32(height)}})
}

// focusCallback drops gestures in flight when the window loses focus;
// their release would never be delivered.
func (a *GLFWInputAdapter) focusCallback(w *glfw.Window, focused bool) {
	if !focused {
		a.pressed = false
		a.engine.Reset()
	}
}

func glfwModsToSurface(mods glfw.ModifierKey) surface.Modifiers {
	var m surface.Modifiers
	if mods&glfw.ModShift != 0 {
		m |= surface.ModShift
	}
	if mods&glfw.ModControl != 0 {
		m |= surface.ModCtrl
	}
	if mods&glfw.ModAlt != 0 {
		m |= surface.ModAlt
	}
	if mods&glfw.ModSuper != 0 {
		m |= surface.ModSuper
	}
	return m
}

// glfwKeyToSurfaceKey maps GLFW keys to engine keys.
func glfwKeyToSurfaceKey(key glfw.Key) surface.Key {
	switch key {
	case glfw.KeyTab:
		return surface.KeyTab
	case glfw.KeyLeft:
		return surface.KeyLeft
	case glfw.KeyRight:
		return surface.KeyRight
	case glfw.KeyUp:
		return surface.KeyUp
	case glfw.KeyDown:
		return surface.KeyDown
	case glfw.KeyPageUp:
		return surface.KeyPageUp
	case glfw.KeyPageDown:
		return surface.KeyPageDown
	case glfw.KeyHome:
		return surface.KeyHome
	case glfw.KeyEnd:
		return surface.KeyEnd
	case glfw.KeyInsert:
		return surface.KeyInsert
	case glfw.KeyDelete:
		return surface.KeyDelete
	case glfw.KeyBackspace:
		return surface.KeyBackspace
	case glfw.KeySpace:
		return surface.KeySpace
	case glfw.KeyEnter, glfw.KeyKPEnter:
		return surface.KeyEnter
	case glfw.KeyEscape:
		return surface.KeyEscape
	case glfw.KeyF1:
		return surface.KeyF1
	case glfw.KeyF2:
		return surface.KeyF2
	case glfw.KeyF3:
		return surface.KeyF3
	case glfw.KeyF4:
		return surface.KeyF4
	case glfw.KeyF5:
		return surface.KeyF5
	case glfw.KeyF6:
		return surface.KeyF6
	case glfw.KeyF7:
		return surface.KeyF7
	case glfw.KeyF8:
		return surface.KeyF8
	case glfw.KeyF9:
		return surface.KeyF9
	case glfw.KeyF10:
		return surface.KeyF10
	case glfw.KeyF11:
		return surface.KeyF11
	case glfw.KeyF12:
		return surface.KeyF12
	default:
		return surface.KeyNone
	}
}

// glfwMouseButtonToSurface maps GLFW mouse buttons to engine buttons.
func glfwMouseButtonToSurface(button glfw.MouseButton) surface.MouseButton {
	switch button {
	case glfw.MouseButtonLeft:
		return surface.MouseButtonLeft
	case glfw.MouseButtonRight:
		return surface.MouseButtonRight
	case glfw.MouseButtonMiddle:
		return surface.MouseButtonMiddle
	default:
		return -1
	}
}
