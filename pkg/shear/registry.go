package shear

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/askiada/go-lensing/pkg/params"
)

type constructor func(config params.Config) (Shear, error)

// registry allows for a few different naming conventions. Lookups are exact
// and there is no fallback.
var registry = map[string]constructor{
	"default":    newNFWShear,
	NFWName:      newNFWShear,
	ConstantName: newConstantShear,
}

func newNFWShear(config params.Config) (Shear, error) {
	n, err := NewNFW(config)
	if err != nil {
		return nil, err
	}

	return n, nil
}

func newConstantShear(config params.Config) (Shear, error) {
	c, err := NewConstant(config)
	if err != nil {
		return nil, err
	}

	return c, nil
}

// Build returns the shear strategy registered as shearType, configured with config.
func Build(shearType string, config params.Config) (Shear, error) {
	build, ok := registry[shearType]
	if !ok {
		return nil, errors.Wrapf(params.ErrConfig, "%q is not a valid shear type (valid: %v)", shearType, Types())
	}

	s, err := build(config)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to build %s shear", shearType)
	}

	return s, nil
}

// Types returns the registered shear type names in lexical order.
func Types() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
