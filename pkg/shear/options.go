package shear

type lensOptions struct {
	x, y        float64
	hasPosition bool
	zSource     float64
	hasZSource  bool
}

// LensOption describes the object being lensed.
type LensOption func(o *lensOptions)

// AtPosition sets the projected position of the object, in arcsec, in the
// same frame as the halo position.
func AtPosition(x, y float64) LensOption {
	return func(o *lensOptions) {
		o.x, o.y = x, y
		o.hasPosition = true
	}
}

// SourceRedshift sets the redshift of the object, overriding the strategy default.
func SourceRedshift(z float64) LensOption {
	return func(o *lensOptions) {
		o.zSource = z
		o.hasZSource = true
	}
}

func newLensOptions(opts []LensOption) *lensOptions {
	o := &lensOptions{}
	for _, opt := range opts {
		opt(o)
	}

	return o
}
