package interaction

import "errors"

// Configuration and occupancy errors. Scene validation wraps these with
// positional context; callers match with errors.Is.
var (
	ErrOccupied         = errors.New("socket already occupied")
	ErrNilOccupant      = errors.New("nil occupant")
	ErrSequenceMismatch = errors.New("socket count does not match label count")
	ErrNoEntries        = errors.New("sequence needs at least one socket")
	ErrNilSocket        = errors.New("nil socket in sequence")
	ErrZeroAxis         = errors.New("rotation axis must be non-zero")
	ErrNegativeDuration = errors.New("animation duration must not be negative")
	ErrNegativeRadius   = errors.New("trigger radius must not be negative")
	ErrNoActorTag       = errors.New("trigger actor tag must not be empty")
)
