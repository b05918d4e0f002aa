package diagnostics

import (
	"github.com/askiada/go-lensing/pkg/params"
)

// Medsmaker audits the MEDS making stage. It only prepares its plot directories.
type Medsmaker struct {
	*Base
}

func newMedsmaker(name string, config params.Config, _ options) Diagnostics {
	return &Medsmaker{Base: NewBase(name, config)}
}

// Kind implements Diagnostics.
func (m *Medsmaker) Kind() Kind {
	return KindMedsmaker
}

// ShearProfile audits the shear profile stage. It only prepares its plot directories.
type ShearProfile struct {
	*Base
}

func newShearProfile(name string, config params.Config, _ options) Diagnostics {
	return &ShearProfile{Base: NewBase(name, config)}
}

// Kind implements Diagnostics.
func (s *ShearProfile) Kind() Kind {
	return KindShearProfile
}

var (
	_ Diagnostics = (*Medsmaker)(nil)
	_ Diagnostics = (*ShearProfile)(nil)
)
