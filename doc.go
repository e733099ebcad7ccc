/*
Package surface routes raw pointer and keyboard input to a widget tree.
It resolves hit targets through layered surfaces, tracks hover and press
state per pointer kind, detects double hits, runs drag sessions, moves
keyboard focus across nested containers and batches widget updates into a
two-phase frame cycle.

# Overview

The engine never owns widgets. The application implements Widget (and
Container for widgets holding others) and hands the engine a Surface that
lists the elements under a point, topmost first. Everything else a widget
can react to is an optional interface: PointerHandler, HitHandler,
FocusHandler, KeyHandler, Activator, Renderer, Recalculator and the drag
interfaces. The engine checks for them at each call site.

# Quick Start

	host := surface.NewManualHost() // or surface.NewLoop(0), or a backend host
	engine, err := surface.NewEngine(
	    surface.WithRoot(root),
	    surface.WithSurface(stack),
	    surface.WithHost(host),
	)
	if err != nil {
	    return err
	}
	defer engine.Close()

	// Feed boundary events from the windowing layer.
	engine.Dispatch(surface.Event{Kind: surface.EventPointerDown, Position: p})

	// Widgets call Invalidate when they need to repaint.
	engine.Invalidate(w)

Only one engine may be open at a time; NewEngine returns
ErrDuplicateSingleton until the previous one is closed.

# Threading

The engine is single-threaded. Dispatch, Invalidate and every Host
callback must run on one goroutine. ManualHost runs timers and frames only
when told to and is what tests and script replays use. Loop runs them in
real time and accepts work from other goroutines through Post.

# Pointer Events

Mouse and touch keep separate tracks. For each kind the engine remembers
the widget pressed (origin) and the widget under the pointer (current).
Widgets see:

	PointerOver    the pointer entered it
	PointerDown    a press started on it, or the pointer re-entered it while pressed
	PointerMove    the pointer moved within it
	PointerUp      the press ended over it, or the pointer left it while pressed
	Hit            the press ended over the widget it started on
	PointerOut     the pointer left it

A second Hit on the same widget within the double-hit timeout (500ms by
default) also delivers DoubleHit. While a drag session is active, moves
steer the drag and are not delivered as PointerMove.

# Keyboard Focus

Tab moves focus forward through the focused container, Shift+Tab moves it
backwards. A container that runs out of candidates passes the move to its
own container unless it loops. Enter activates the focused widget, or the
default action of the nearest container that has one. Other keys go to
the focused widget's KeyHandler. WithKeyMap rebinds Tab and Enter.

# Debugging

	surface.SetVerbose(true)

enables Debug logging of routing decisions: resolution misses, rejected
focus, drag samples outside the input range and frame phases.
*/
package surface
