// Package shear applies gravitational lensing transforms to galaxy light profiles.
//
// A shear strategy is built once from the `shear` section of an image
// simulation config with Build, then Lens is called for every simulated object.
// Two strategies exist: a constant shear field across the focal plane and the
// field of an NFW halo.
package shear

import (
	"github.com/askiada/go-lensing/pkg/params"
	"github.com/askiada/go-lensing/pkg/profile"
)

// Shear is a lensing strategy. Values are only handed out fully validated.
type Shear interface {
	// Name returns the registry name of the strategy.
	Name() string
	// Config returns the resolved configuration.
	Config() params.Config
	// Lens shears and magnifies obj. The returned LensParams are the parameters
	// that were actually applied.
	Lens(obj profile.Profile, opts ...LensOption) (profile.Profile, LensParams, error)
}

// LensParams reports the lensing parameters applied to an object.
type LensParams struct {
	G1 float64
	G2 float64
	Mu float64
}

// Map returns the parameters keyed by g1, g2 and mu.
func (lp LensParams) Map() map[string]float64 {
	return map[string]float64{
		"g1": lp.G1,
		"g2": lp.G2,
		"mu": lp.Mu,
	}
}
