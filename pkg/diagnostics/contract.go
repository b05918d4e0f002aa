// Package diagnostics audits the outputs of pipeline stages, typically by
// comparing them to the truth catalog of the simulation and plotting the result.
//
// Every stage gets a Diagnostics from Build. Stages without a dedicated
// variant get the generic one, which only prepares the plot directories.
package diagnostics

import (
	"github.com/askiada/go-lensing/pkg/params"
)

// LogPrint receives progress and error messages. Error messages start with "ERROR:".
type LogPrint func(msg string)

// Kind is the closed set of diagnostics variants.
type Kind string

const (
	KindGeneric      Kind = "generic"
	KindGalSim       Kind = "galsim"
	KindMedsmaker    Kind = "medsmaker"
	KindMetacal      Kind = "metacal"
	KindNgmixFit     Kind = "ngmix_fit"
	KindShearProfile Kind = "shear_profile"
)

// Diagnostics runs after a pipeline stage completes.
type Diagnostics interface {
	// Name is the stage being audited.
	Name() string
	Kind() Kind
	// Run resolves the output directory, prepares the plot directories and
	// produces the variant's plots. runOptions must carry "outdir" unless the
	// diagnostics config already did.
	Run(runOptions params.Config, logprint LogPrint) error
}
