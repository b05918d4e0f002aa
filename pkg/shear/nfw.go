package shear

import (
	"math"

	"github.com/pkg/errors"

	"github.com/askiada/go-lensing/pkg/params"
	"github.com/askiada/go-lensing/pkg/profile"
)

// NFWName is the registry name of the NFW halo shear field.
const NFWName = "nfw"

var (
	nfwRequired = []string{"mass", "z", "concentration"}
	nfwOptional = map[string]any{
		"halo_x":    0.0,
		"halo_y":    0.0,
		"z_source":  1.0,
		"omega_m":   0.3,
		"omega_lam": 0.7,
	}
)

// NFW is the shear field of a Navarro-Frenk-White halo.
//
// mass is M200 in Msun/h, z the halo redshift and concentration r200/rs.
// The halo centre (halo_x, halo_y) and the object positions are in arcsec.
type NFW struct {
	config params.Config
	cosmo  cosmology

	mass, conc, zLens float64
	haloX, haloY      float64
	zSource           float64

	rs    float64 // scale radius, Mpc/h
	rhoS  float64 // delta_c * rho_crit(z), (Msun/h)/(Mpc/h)^3
	dLens float64 // Mpc/h
}

// NewNFW validates config and builds an NFW halo shear field.
func NewNFW(config params.Config) (*NFW, error) {
	cfg, err := params.Parse(config, nfwRequired, nfwOptional, NFWName)
	if err != nil {
		return nil, err
	}

	n := &NFW{config: cfg}

	fields := []struct {
		key string
		dst *float64
	}{
		{"mass", &n.mass},
		{"z", &n.zLens},
		{"concentration", &n.conc},
		{"halo_x", &n.haloX},
		{"halo_y", &n.haloY},
		{"z_source", &n.zSource},
		{"omega_m", &n.cosmo.omegaM},
		{"omega_lam", &n.cosmo.omegaLam},
	}
	for _, f := range fields {
		if *f.dst, err = cfg.Float(f.key); err != nil {
			return nil, errors.Wrap(err, NFWName)
		}
	}

	switch {
	case n.mass <= 0:
		return nil, errors.Wrapf(params.ErrConfig, "nfw: mass must be positive, got %g", n.mass)
	case n.conc <= 0:
		return nil, errors.Wrapf(params.ErrConfig, "nfw: concentration must be positive, got %g", n.conc)
	case n.zLens <= 0:
		return nil, errors.Wrapf(params.ErrConfig, "nfw: z must be positive, got %g", n.zLens)
	case n.cosmo.omegaM <= 0:
		return nil, errors.Wrapf(params.ErrConfig, "nfw: omega_m must be positive, got %g", n.cosmo.omegaM)
	}

	rhoCrit := n.cosmo.rhoCrit(n.zLens)
	r200 := math.Cbrt(3 * n.mass / (4 * math.Pi * 200 * rhoCrit))
	n.rs = r200 / n.conc
	deltaC := 200.0 / 3 * n.conc * n.conc * n.conc / (math.Log(1+n.conc) - n.conc/(1+n.conc))
	n.rhoS = deltaC * rhoCrit
	n.dLens = n.cosmo.angularDiameterDistance(0, n.zLens)

	return n, nil
}

// Name implements Shear.
func (n *NFW) Name() string {
	return NFWName
}

// Config implements Shear.
func (n *NFW) Config() params.Config {
	return n.config.Clone()
}

// Lens implements Shear. AtPosition is required; SourceRedshift overrides z_source.
func (n *NFW) Lens(obj profile.Profile, opts ...LensOption) (profile.Profile, LensParams, error) {
	o := newLensOptions(opts)
	if !o.hasPosition {
		return nil, LensParams{}, errors.Wrap(ErrMissingPosition, NFWName)
	}

	zSource := n.zSource
	if o.hasZSource {
		zSource = o.zSource
	}

	lp, err := n.Field(o.x, o.y, zSource)
	if err != nil {
		return nil, LensParams{}, err
	}

	s, err := profile.NewReducedShear(lp.G1, lp.G2)
	if err != nil {
		return nil, LensParams{}, errors.Wrapf(ErrStrongLensing, "at (%g, %g): %v", o.x, o.y, err)
	}

	lensed, err := profile.Lens(obj, s, lp.Mu)
	if err != nil {
		return nil, LensParams{}, errors.Wrap(err, "unable to lens object")
	}

	return lensed, lp, nil
}

// Field returns the reduced shear and magnification at (x, y) arcsec for a
// source at redshift zSource. Sources in front of the halo are not lensed.
func (n *NFW) Field(x, y, zSource float64) (LensParams, error) {
	if zSource <= n.zLens {
		return LensParams{Mu: 1}, nil
	}

	dx, dy := x-n.haloX, y-n.haloY
	theta := math.Hypot(dx, dy) * arcsec
	if theta == 0 {
		return LensParams{}, errors.Wrapf(ErrStrongLensing, "object at the halo centre (%g, %g)", x, y)
	}

	dSource := n.cosmo.angularDiameterDistance(0, zSource)
	dLensSource := n.cosmo.angularDiameterDistance(n.zLens, zSource)
	sigmaCrit := sigmaCritCoeff * dSource / (n.dLens * dLensSource)
	ks := n.rhoS * n.rs / sigmaCrit

	xr := theta * n.dLens / n.rs
	kappa := 2 * ks * nfwSurface(xr)
	gamma := 4*ks*nfwMeanSurface(xr)/(xr*xr) - kappa

	if kappa >= 1 {
		return LensParams{}, errors.Wrapf(ErrStrongLensing, "kappa = %g at (%g, %g)", kappa, x, y)
	}

	g := gamma / (1 - kappa)
	mu := 1 / ((1-kappa)*(1-kappa) - gamma*gamma)

	if math.Abs(g) >= 1 || mu <= 0 {
		return LensParams{}, errors.Wrapf(ErrStrongLensing, "g = %g, mu = %g at (%g, %g)", g, mu, x, y)
	}

	// tangential alignment around the halo centre
	phi := math.Atan2(dy, dx)

	return LensParams{
		G1: -g * math.Cos(2*phi),
		G2: -g * math.Sin(2*phi),
		Mu: mu,
	}, nil
}

// nfwSurface returns the projected density profile in units of 2 rho_s r_s,
// as a function of x = r / r_s.
func nfwSurface(x float64) float64 {
	switch {
	case math.Abs(x-1) < 1e-6:
		return 1.0 / 3
	case x < 1:
		s := math.Sqrt(1 - x*x)
		return (1 - 2/s*math.Atanh(math.Sqrt((1-x)/(1+x)))) / (x*x - 1)
	default:
		s := math.Sqrt(x*x - 1)
		return (1 - 2/s*math.Atan(math.Sqrt((x-1)/(1+x)))) / (x*x - 1)
	}
}

// nfwMeanSurface returns x^2/4 times the mean projected density inside x, in
// units of rho_s r_s.
func nfwMeanSurface(x float64) float64 {
	switch {
	case math.Abs(x-1) < 1e-6:
		return 1 + math.Log(0.5)
	case x < 1:
		s := math.Sqrt(1 - x*x)
		return 2/s*math.Atanh(math.Sqrt((1-x)/(1+x))) + math.Log(x/2)
	default:
		s := math.Sqrt(x*x - 1)
		return 2/s*math.Atan(math.Sqrt((x-1)/(1+x))) + math.Log(x/2)
	}
}

var _ Shear = (*NFW)(nil)
