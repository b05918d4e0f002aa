package shear

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// Units: distances in Mpc/h, masses in Msun/h.
const (
	speedOfLight = 299792.458  // km/s
	gravity      = 4.300917e-9 // Mpc (km/s)^2 / Msun
	hubble100    = 100.0       // km/s/(Mpc/h)
	arcsec       = math.Pi / 180 / 3600
	quadPoints   = 128
)

var (
	hubbleDistance = speedOfLight / hubble100
	// critical density today, (Msun/h) / (Mpc/h)^3
	rhoCrit0 = 3 * hubble100 * hubble100 / (8 * math.Pi * gravity)
	// c^2 / (4 pi G), Msun/Mpc
	sigmaCritCoeff = speedOfLight * speedOfLight / (4 * math.Pi * gravity)
)

// cosmology is a Lambda-CDM background with matter and dark energy densities;
// curvature is whatever is left.
type cosmology struct {
	omegaM   float64
	omegaLam float64
}

func (c cosmology) omegaK() float64 {
	return 1 - c.omegaM - c.omegaLam
}

// e returns H(z)/H0.
func (c cosmology) e(z float64) float64 {
	a := 1 + z

	return math.Sqrt(c.omegaM*a*a*a + c.omegaK()*a*a + c.omegaLam)
}

func (c cosmology) rhoCrit(z float64) float64 {
	ez := c.e(z)

	return rhoCrit0 * ez * ez
}

// angularDiameterDistance returns the angular diameter distance of z2 seen from z1.
func (c cosmology) angularDiameterDistance(z1, z2 float64) float64 {
	if z2 <= z1 {
		return 0
	}

	dc := quad.Fixed(func(z float64) float64 { return 1 / c.e(z) }, z1, z2, quadPoints, nil, 0)

	dm := dc
	switch ok := c.omegaK(); {
	case ok > 1e-8:
		sq := math.Sqrt(ok)
		dm = math.Sinh(sq*dc) / sq
	case ok < -1e-8:
		sq := math.Sqrt(-ok)
		dm = math.Sin(sq*dc) / sq
	}

	return hubbleDistance * dm / (1 + z2)
}
