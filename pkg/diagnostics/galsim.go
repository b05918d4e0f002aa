package diagnostics

import (
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-lensing/pkg/catalog"
	"github.com/askiada/go-lensing/pkg/figure"
	"github.com/askiada/go-lensing/pkg/params"
)

const (
	compareTruthFile = "compare_truth_tables.pdf"
	compareBins      = 30
	compareAlpha     = 0.75
)

// compareColumns are plotted one per row; flux and hlr span decades.
var compareColumns = []struct {
	name string
	logY bool
}{
	{"ra", false},
	{"flux", true},
	{"hlr", true},
}

// GalSim audits the image simulation stage.
type GalSim struct {
	*Base
	truth   *Truth
	reader  catalog.Reader
	loaders int
}

func newGalSim(name string, config params.Config, o options) Diagnostics {
	return &GalSim{
		Base:    NewBase(name, config),
		truth:   NewTruth(o.reader),
		reader:  o.reader,
		loaders: o.loaders,
	}
}

// Kind implements Diagnostics.
func (g *GalSim) Kind() Kind {
	return KindGalSim
}

// Truth returns the truth catalog loaded by the last Run.
func (g *GalSim) Truth() *catalog.Table {
	return g.truth.Table()
}

// Run implements Diagnostics.
func (g *GalSim) Run(runOptions params.Config, logprint LogPrint) error {
	if err := g.Base.Run(runOptions, logprint); err != nil {
		return err
	}

	if err := g.truth.Setup(g.outdir); err != nil {
		return errors.Wrap(err, g.name)
	}

	return g.PlotCompareTruths(logprint)
}

// PlotCompareTruths overlays the ra, flux and hlr distributions of every
// truth*.fits table of the output directory and saves them to
// plotdir/compare_truth_tables.pdf. Older runs wrote one table per exposure;
// the plot checks they agree.
func (g *GalSim) PlotCompareTruths(logprint LogPrint) error {
	logprint("Diagnostic: Comparing truth catalogs...")

	if g.plotdir == "" {
		return errors.Wrap(ErrOutdirUnresolved, "compare truth tables")
	}

	outdir, _ := g.outdir.Path()

	files, err := catalog.Glob(outdir, legacyTruthPattern)
	if err != nil {
		return err
	}

	tables, err := g.loadTables(files)
	if err != nil {
		return err
	}

	fig := figure.New(
		figure.Bins(compareBins),
		figure.Alpha(compareAlpha),
		figure.Size(9, float64(3*len(compareColumns)+2)),
	)

	for _, col := range compareColumns {
		panel := figure.Panel{
			XLabel: "True " + col.name,
			LogY:   col.logY,
		}

		for k, table := range tables {
			values, err := table.Column(col.name)
			if err != nil {
				return err
			}

			panel.Series = append(panel.Series, figure.Series{
				Label:  fmt.Sprintf("Truth_%d", k+1),
				Values: values,
			})
		}

		fig.AddPanel(panel)
	}

	outfile := filepath.Join(g.plotdir, compareTruthFile)
	if err := fig.Save(outfile); err != nil {
		return errors.Wrap(err, "unable to save truth comparison")
	}

	return nil
}

// loadTables reads files concurrently, keeping their order.
func (g *GalSim) loadTables(files []string) ([]*catalog.Table, error) {
	tables := make([]*catalog.Table, len(files))

	var errGrp errgroup.Group
	errGrp.SetLimit(g.loaders)

	for i, file := range files {
		i, file := i, file

		errGrp.Go(func() error {
			table, err := g.reader.Read(file)
			if err != nil {
				return errors.Wrapf(err, "unable to load %s", file)
			}

			tables[i] = table

			return nil
		})
	}

	if err := errGrp.Wait(); err != nil {
		return nil, err
	}

	return tables, nil
}

var _ Diagnostics = (*GalSim)(nil)
