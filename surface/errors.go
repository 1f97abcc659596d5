package surface

import "errors"

// Sentinel errors reported by surfaces.
var (
	ErrInvalidColor = errors.New("surface: invalid color")
	ErrInvalidFont  = errors.New("surface: invalid font data")
	ErrEncode       = errors.New("surface: encoding failed")
	ErrTooLarge     = errors.New("surface: backing store too large")
)
