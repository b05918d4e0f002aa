// Package profile models the galaxy light profiles that lensing transforms act on.
//
// Profile is the contract a simulation library object has to satisfy to be
// lensed. Gaussian is a small concrete implementation used by the command line
// tool and the tests: it keeps the accumulated linear transformation so that the
// observed shape can be measured back.
package profile

import (
	"math"

	"github.com/pkg/errors"
)

// ErrInvalidMagnification is returned for non-positive magnifications.
var ErrInvalidMagnification = errors.New("magnification must be positive")

// Profile is a light profile that can be sheared and magnified.
// Implementations are immutable: every transform returns a new Profile.
type Profile interface {
	Shear(s Shear) Profile
	Magnify(mu float64) (Profile, error)
}

// Lens applies a shear followed by a magnification.
func Lens(p Profile, s Shear, mu float64) (Profile, error) {
	return p.Shear(s).Magnify(mu)
}

// jacobian is a row-major 2x2 matrix mapping intrinsic to observed coordinates.
type jacobian [4]float64

var identity = jacobian{1, 0, 0, 1}

func (j jacobian) mul(o jacobian) jacobian {
	return jacobian{
		j[0]*o[0] + j[1]*o[2], j[0]*o[1] + j[1]*o[3],
		j[2]*o[0] + j[3]*o[2], j[2]*o[1] + j[3]*o[3],
	}
}

func (j jacobian) det() float64 {
	return j[0]*j[3] - j[1]*j[2]
}

// hlrPerSigma converts a Gaussian sigma to its half-light radius.
var hlrPerSigma = math.Sqrt(2 * math.Ln2)

// Gaussian is an elliptical Gaussian light profile.
type Gaussian struct {
	flux  float64
	sigma float64
	jac   jacobian
}

// NewGaussian returns a round Gaussian with the given flux and half-light radius.
func NewGaussian(flux, hlr float64) (*Gaussian, error) {
	if hlr <= 0 {
		return nil, errors.Errorf("half-light radius must be positive, got %g", hlr)
	}

	return &Gaussian{
		flux:  flux,
		sigma: hlr / hlrPerSigma,
		jac:   identity,
	}, nil
}

// Shear returns a copy of g distorted by s.
func (g *Gaussian) Shear(s Shear) Profile {
	out := *g
	out.jac = s.matrix().mul(g.jac)

	return &out
}

// Magnify returns a copy of g with flux and area scaled by mu.
func (g *Gaussian) Magnify(mu float64) (Profile, error) {
	if mu <= 0 || math.IsNaN(mu) {
		return nil, errors.Wrapf(ErrInvalidMagnification, "got %g", mu)
	}

	scale := math.Sqrt(mu)
	out := *g
	out.flux *= mu

	for i := range out.jac {
		out.jac[i] *= scale
	}

	return &out, nil
}

// Flux returns the total flux.
func (g *Gaussian) Flux() float64 {
	return g.flux
}

// HalfLightRadius returns the half-light radius of the circle with the same area
// as the observed profile.
func (g *Gaussian) HalfLightRadius() float64 {
	return g.sigma * hlrPerSigma * math.Sqrt(math.Abs(g.jac.det()))
}

// Ellipticity returns the reduced shear of the observed shape.
func (g *Gaussian) Ellipticity() Shear {
	// second moments up to sigma^2: J J^T
	j := g.jac
	q11 := j[0]*j[0] + j[1]*j[1]
	q22 := j[2]*j[2] + j[3]*j[3]
	q12 := j[0]*j[2] + j[1]*j[3]

	trace := q11 + q22
	if trace == 0 {
		return Shear{}
	}

	s, err := NewDistortion((q11-q22)/trace, 2*q12/trace)
	if err != nil {
		return Shear{}
	}

	return s
}
