package diagnostics

import (
	"math"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/askiada/go-lensing/pkg/catalog"
	"github.com/askiada/go-lensing/pkg/figure"
	"github.com/askiada/go-lensing/pkg/params"
)

const (
	compareMagsFile = "compare_mags.pdf"
	// zeroPoint of the simulated images, in AB magnitudes.
	zeroPoint = 30.0
)

// Metacal audits the metacalibration stage.
type Metacal struct {
	*Base
	truth *Truth
}

func newMetacal(name string, config params.Config, o options) Diagnostics {
	return &Metacal{
		Base:  NewBase(name, config),
		truth: NewTruth(o.reader),
	}
}

// Kind implements Diagnostics.
func (m *Metacal) Kind() Kind {
	return KindMetacal
}

// Truth returns the truth catalog loaded by the last Run.
func (m *Metacal) Truth() *catalog.Table {
	return m.truth.Table()
}

// Run implements Diagnostics.
func (m *Metacal) Run(runOptions params.Config, logprint LogPrint) error {
	if err := m.Base.Run(runOptions, logprint); err != nil {
		return err
	}

	if err := m.truth.Setup(m.outdir); err != nil {
		return errors.Wrap(err, m.name)
	}

	return m.PlotCompareMags(logprint)
}

// PlotCompareMags plots the distribution of truth magnitudes to
// plot_outdir/compare_mags.pdf. Objects without positive flux are skipped.
func (m *Metacal) PlotCompareMags(logprint LogPrint) error {
	logprint("Diagnostic: Comparing truth magnitudes...")

	table := m.truth.Table()
	if table == nil || m.plotOutdir == "" {
		return errors.Wrap(ErrOutdirUnresolved, "compare mags")
	}

	flux, err := table.Column("flux")
	if err != nil {
		return err
	}

	fig := figure.New(figure.Bins(compareBins), figure.Alpha(compareAlpha))
	fig.AddPanel(figure.Panel{
		XLabel: "True mag",
		Series: []figure.Series{{Label: "Truth", Values: magnitudes(flux)}},
	})

	if err := fig.Save(filepath.Join(m.plotOutdir, compareMagsFile)); err != nil {
		return errors.Wrap(err, "unable to save magnitude comparison")
	}

	return nil
}

func magnitudes(flux []float64) []float64 {
	mags := make([]float64, 0, len(flux))

	for _, f := range flux {
		if f > 0 {
			mags = append(mags, zeroPoint-2.5*math.Log10(f))
		}
	}

	return mags
}

var _ Diagnostics = (*Metacal)(nil)
