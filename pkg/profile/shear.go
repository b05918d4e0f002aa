package profile

import (
	"math"

	"github.com/pkg/errors"
)

// ErrInvalidShear is returned when a shear or distortion magnitude is not below 1.
var ErrInvalidShear = errors.New("invalid shear")

// Shear is an area-preserving shape distortion, stored as reduced shear.
type Shear struct {
	g1, g2 float64
}

// NewReducedShear returns the shear with reduced shear components (g1, g2).
func NewReducedShear(g1, g2 float64) (Shear, error) {
	if g := math.Hypot(g1, g2); g >= 1 || math.IsNaN(g) {
		return Shear{}, errors.Wrapf(ErrInvalidShear, "|g| = %g must be < 1", g)
	}

	return Shear{g1: g1, g2: g2}, nil
}

// NewDistortion returns the shear with distortion components (e1, e2), where
// |e| = (a^2 - b^2) / (a^2 + b^2) for an ellipse with axes a and b.
func NewDistortion(e1, e2 float64) (Shear, error) {
	e := math.Hypot(e1, e2)
	if e >= 1 || math.IsNaN(e) {
		return Shear{}, errors.Wrapf(ErrInvalidShear, "|e| = %g must be < 1", e)
	}

	if e == 0 {
		return Shear{}, nil
	}

	scale := 1 / (1 + math.Sqrt(1-e*e))

	return Shear{g1: e1 * scale, g2: e2 * scale}, nil
}

// G1 returns the first reduced shear component.
func (s Shear) G1() float64 { return s.g1 }

// G2 returns the second reduced shear component.
func (s Shear) G2() float64 { return s.g2 }

// G returns the reduced shear magnitude.
func (s Shear) G() float64 { return math.Hypot(s.g1, s.g2) }

// E1 returns the first distortion component.
func (s Shear) E1() float64 { return s.g1 * s.distortionScale() }

// E2 returns the second distortion component.
func (s Shear) E2() float64 { return s.g2 * s.distortionScale() }

func (s Shear) distortionScale() float64 {
	return 2 / (1 + s.g1*s.g1 + s.g2*s.g2)
}

// matrix returns the unit-determinant transformation for s.
func (s Shear) matrix() jacobian {
	norm := 1 / math.Sqrt(1-s.g1*s.g1-s.g2*s.g2)

	return jacobian{
		norm * (1 + s.g1), norm * s.g2,
		norm * s.g2, norm * (1 - s.g1),
	}
}
