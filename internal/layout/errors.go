package layout

import "errors"

// Sentinel errors for template and geometry problems.
var (
	ErrInvalidGeometry = errors.New("layout: invalid geometry")
	ErrInvalidTemplate = errors.New("layout: invalid template")
	ErrUnknownTemplate = errors.New("layout: unknown template")
)
