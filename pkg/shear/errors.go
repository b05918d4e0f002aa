package shear

import "github.com/pkg/errors"

var (
	// ErrUnsupportedShearType means a strategy reached a shear type it was not
	// validated for. It points to a construction bug.
	ErrUnsupportedShearType = errors.New("unsupported shear type")
	// ErrMissingPosition is returned when a position dependent field is lensed
	// without AtPosition.
	ErrMissingPosition = errors.New("object position must be set")
	// ErrStrongLensing is returned when the lensing field at a position is not
	// in the weak regime (|g| >= 1 or mu <= 0).
	ErrStrongLensing = errors.New("strong lensing regime")
)
