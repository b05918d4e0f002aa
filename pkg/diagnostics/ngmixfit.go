package diagnostics

import (
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"

	"github.com/askiada/go-lensing/pkg/catalog"
	"github.com/askiada/go-lensing/pkg/figure"
	"github.com/askiada/go-lensing/pkg/params"
)

const parsCompareFile = "pars_compare.pdf"

// ngmixPars are compared between the ngmix fit and the truth catalog.
var ngmixPars = []string{"flux", "hlr"}

// NgmixFit audits the ngmix fitting stage.
//
// The optional "meas_catalog" config entry names a catalog of fitted
// parameters, relative to outdir. When it is set the measured distributions
// are drawn over the true ones.
type NgmixFit struct {
	*Base
	truth  *Truth
	reader catalog.Reader
}

func newNgmixFit(name string, config params.Config, o options) Diagnostics {
	return &NgmixFit{
		Base:   NewBase(name, config),
		truth:  NewTruth(o.reader),
		reader: o.reader,
	}
}

// Kind implements Diagnostics.
func (n *NgmixFit) Kind() Kind {
	return KindNgmixFit
}

// Truth returns the truth catalog loaded by the last Run.
func (n *NgmixFit) Truth() *catalog.Table {
	return n.truth.Table()
}

// Run implements Diagnostics.
func (n *NgmixFit) Run(runOptions params.Config, logprint LogPrint) error {
	if err := n.Base.Run(runOptions, logprint); err != nil {
		return err
	}

	if err := n.truth.Setup(n.outdir); err != nil {
		return errors.Wrap(err, n.name)
	}

	return n.CompareToTruth(logprint)
}

// CompareToTruth compares measured and true ngmix parameters.
func (n *NgmixFit) CompareToTruth(logprint LogPrint) error {
	return n.PlotParsCompare(logprint)
}

// PlotParsCompare logs summary statistics of the compared parameters and
// plots their distributions to plot_outdir/pars_compare.pdf.
func (n *NgmixFit) PlotParsCompare(logprint LogPrint) error {
	logprint("Comparing meas vs. true ngmix pars")

	truth := n.truth.Table()
	if truth == nil || n.plotOutdir == "" {
		return errors.Wrap(ErrOutdirUnresolved, "compare ngmix pars")
	}

	meas, err := n.measured()
	if err != nil {
		return err
	}

	sources := []struct {
		label string
		table *catalog.Table
	}{
		{"True", truth},
		{"Meas", meas},
	}

	fig := figure.New(figure.Bins(compareBins), figure.Alpha(compareAlpha))

	for _, par := range ngmixPars {
		panel := figure.Panel{XLabel: par, LogY: true}

		for _, src := range sources {
			if src.table == nil {
				continue
			}

			values, err := src.table.Column(par)
			if err != nil {
				return err
			}

			mean, std := stat.MeanStdDev(values, nil)
			logprint(fmt.Sprintf("%s %s: n=%d mean=%.4g std=%.4g", src.label, par, len(values), mean, std))

			panel.Series = append(panel.Series, figure.Series{Label: src.label, Values: values})
		}

		fig.AddPanel(panel)
	}

	if err := fig.Save(filepath.Join(n.plotOutdir, parsCompareFile)); err != nil {
		return errors.Wrap(err, "unable to save ngmix comparison")
	}

	return nil
}

func (n *NgmixFit) measured() (*catalog.Table, error) {
	file, ok := n.config["meas_catalog"].(string)
	if !ok || file == "" {
		return nil, nil
	}

	if !filepath.IsAbs(file) {
		outdir, _ := n.outdir.Path()
		file = filepath.Join(outdir, file)
	}

	table, err := n.reader.Read(file)
	if err != nil {
		return nil, errors.Wrap(err, "unable to load measured catalog")
	}

	return table, nil
}

var _ Diagnostics = (*NgmixFit)(nil)
