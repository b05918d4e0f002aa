package diagnostics

import (
	"sort"
	"strings"

	"github.com/askiada/go-lensing/pkg/params"
)

type constructor func(name string, config params.Config, o options) Diagnostics

// kinds maps stage names to their variant.
var kinds = map[string]Kind{
	"galsim":        KindGalSim,
	"medsmaker":     KindMedsmaker,
	"metacal":       KindMetacal,
	"ngmix_fit":     KindNgmixFit,
	"shear_profile": KindShearProfile,
}

var constructors = map[Kind]constructor{
	KindGeneric: func(name string, config params.Config, _ options) Diagnostics {
		return NewBase(name, config)
	},
	KindGalSim:       newGalSim,
	KindMedsmaker:    newMedsmaker,
	KindMetacal:      newMetacal,
	KindNgmixFit:     newNgmixFit,
	KindShearProfile: newShearProfile,
}

// KindOf returns the variant used for stage name. Unknown stages are generic.
func KindOf(name string) Kind {
	if kind, ok := kinds[strings.ToLower(name)]; ok {
		return kind
	}

	return KindGeneric
}

// Build returns the diagnostics of stage name. The name is lowercased; stages
// without a dedicated variant get the generic diagnostics.
func Build(name string, config params.Config, opts ...Option) Diagnostics {
	name = strings.ToLower(name)

	return constructors[KindOf(name)](name, config, newOptions(opts))
}

// Types returns the stage names with a dedicated variant, in lexical order.
func Types() []string {
	names := make([]string, 0, len(kinds))
	for name := range kinds {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
