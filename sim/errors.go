package sim

import "errors"

// Error kinds surfaced by the simulation core. Call sites wrap these with
// context via fmt.Errorf("%w: ...") so callers can match with errors.Is.
var (
	// ErrInvalidDelay is returned when an event is scheduled in the past.
	ErrInvalidDelay = errors.New("invalid delay")
	// ErrInvalidCapacity is returned when a station is built with capacity <= 0.
	ErrInvalidCapacity = errors.New("invalid capacity")
	// ErrInvalidRelease is returned when a station is released with no holders.
	ErrInvalidRelease = errors.New("release without matching grant")
	// ErrInvalidInput marks a non-integer or non-positive target quantity.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidConfig marks a factory configuration that fails validation.
	ErrInvalidConfig = errors.New("invalid config")
)
