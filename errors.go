package surface

import "errors"

var (
	// ErrDuplicateSingleton is returned by NewEngine while another engine
	// is still open.
	ErrDuplicateSingleton = errors.New("surface: engine already exists")

	// ErrEngineClosed is returned when a closed engine receives input.
	ErrEngineClosed = errors.New("surface: engine closed")

	ErrNoSurface    = errors.New("surface: no surface configured")
	ErrNoHost       = errors.New("surface: no host configured")
	ErrNilWidget    = errors.New("surface: nil widget")
	ErrUnknownEvent = errors.New("surface: unknown event kind")
	ErrLoopStopped  = errors.New("surface: loop stopped")
)
