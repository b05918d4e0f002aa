package shear

import (
	"github.com/pkg/errors"

	"github.com/askiada/go-lensing/pkg/params"
	"github.com/askiada/go-lensing/pkg/profile"
)

// ConstantName is the registry name of the constant shear field.
const ConstantName = "constant"

// Type selects how the shear components of a Constant field are interpreted.
type Type string

const (
	// TypeReduced uses (g1, g2) as reduced shear.
	TypeReduced Type = "g"
	// TypeDistortion uses (e1, e2) as distortion.
	TypeDistortion Type = "e"
)

var (
	constantRequired = []string{}
	constantOptional = map[string]any{
		"g1": nil,
		"g2": nil,
		"e1": nil,
		"e2": nil,
		"mu": 1.0,
	}
)

// Constant is a shear field that is the same across the whole focal plane.
type Constant struct {
	config    params.Config
	shearType Type
	c1, c2    float64
	mu        float64
}

// NewConstant validates config and builds a constant shear field.
//
// Exactly one of the pairs (g1, g2) or (e1, e2) must be given. When g1 is set
// the reduced shear pair is used, otherwise e1 must be set. mu defaults to 1.
func NewConstant(config params.Config) (*Constant, error) {
	cfg, err := params.Parse(config, constantRequired, constantOptional, ConstantName)
	if err != nil {
		return nil, err
	}

	c := &Constant{config: cfg}

	first, second := "g1", "g2"
	c.shearType = TypeReduced

	if !cfg.IsSet("g1") {
		if !cfg.IsSet("e1") {
			return nil, errors.Wrap(params.ErrConfig, "constant: must pass either (g1, g2) or (e1, e2)")
		}

		first, second = "e1", "e2"
		c.shearType = TypeDistortion
	}

	if !cfg.IsSet(second) {
		return nil, errors.Wrapf(params.ErrConfig, "constant: %s is set but %s is not", first, second)
	}

	if c.c1, err = cfg.Float(first); err != nil {
		return nil, errors.Wrap(err, "constant")
	}

	if c.c2, err = cfg.Float(second); err != nil {
		return nil, errors.Wrap(err, "constant")
	}

	if c.mu, err = cfg.Float("mu"); err != nil {
		return nil, errors.Wrap(err, "constant")
	}

	if c.mu <= 0 {
		return nil, errors.Wrapf(params.ErrConfig, "constant: mu must be positive, got %g", c.mu)
	}

	if _, err := c.shear(); err != nil {
		return nil, errors.Wrapf(params.ErrConfig, "constant: %v", err)
	}

	return c, nil
}

// Name implements Shear.
func (c *Constant) Name() string {
	return ConstantName
}

// Config implements Shear.
func (c *Constant) Config() params.Config {
	return c.config.Clone()
}

// ShearType returns which component pair was configured.
func (c *Constant) ShearType() Type {
	return c.shearType
}

// Lens implements Shear. Position options are ignored.
//
// For distortion fields the reported g1 and g2 are the reduced shear induced by
// (e1, e2), which is what is actually applied to the profile.
func (c *Constant) Lens(obj profile.Profile, _ ...LensOption) (profile.Profile, LensParams, error) {
	s, err := c.shear()
	if err != nil {
		return nil, LensParams{}, err
	}

	lensed, err := profile.Lens(obj, s, c.mu)
	if err != nil {
		return nil, LensParams{}, errors.Wrap(err, "unable to lens object")
	}

	return lensed, LensParams{G1: s.G1(), G2: s.G2(), Mu: c.mu}, nil
}

func (c *Constant) shear() (profile.Shear, error) {
	switch c.shearType {
	case TypeDistortion:
		return profile.NewDistortion(c.c1, c.c2)
	case TypeReduced:
		return profile.NewReducedShear(c.c1, c.c2)
	default:
		return profile.Shear{}, errors.Wrapf(ErrUnsupportedShearType, "%q is not supported for constant shear", c.shearType)
	}
}

var _ Shear = (*Constant)(nil)
