package diagnostics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/askiada/go-lensing/pkg/params"
)

const (
	plotsDirName = "plots"
	dirPerm      = 0o755
)

// Base is the generic diagnostics. Every variant runs it first.
type Base struct {
	name   string
	config params.Config
	outdir Outdir

	// plotdir holds the plots of every stage, plotOutdir the ones of this stage.
	plotdir    string
	plotOutdir string
}

// NewBase creates the generic diagnostics of stage name. A string "outdir" in
// config resolves the output directory straight away and wins over run options.
func NewBase(name string, config params.Config) *Base {
	b := &Base{
		name:   name,
		config: config.Clone(),
	}

	if path, ok := b.config["outdir"].(string); ok && path != "" {
		b.outdir = ResolvedOutdir(path)
	}

	return b
}

// Name implements Diagnostics.
func (b *Base) Name() string {
	return b.name
}

// Kind implements Diagnostics.
func (b *Base) Kind() Kind {
	return KindGeneric
}

// Config returns a copy of the diagnostics config.
func (b *Base) Config() params.Config {
	return b.config.Clone()
}

// Outdir returns the output root state.
func (b *Base) Outdir() Outdir {
	return b.outdir
}

// Plotdir returns outdir/plots once the plot directories are set up.
func (b *Base) Plotdir() string {
	return b.plotdir
}

// PlotOutdir returns outdir/plots/<name> once the plot directories are set up.
func (b *Base) PlotOutdir() string {
	return b.plotOutdir
}

// Run implements Diagnostics.
func (b *Base) Run(runOptions params.Config, logprint LogPrint) error {
	logprint(fmt.Sprintf("Running diagnostics for %s", b.name))

	if err := b.outdir.resolve(runOptions["outdir"]); err != nil {
		logprint("ERROR: Outdir must be set in either module config or run_options!")

		return errors.Wrap(err, b.name)
	}

	return b.setupPlotDirs()
}

func (b *Base) setupPlotDirs() error {
	outdir, ok := b.outdir.Path()
	if !ok {
		return errors.Wrapf(ErrOutdirUnresolved, "plot directories of %s", b.name)
	}

	b.plotdir = filepath.Join(outdir, plotsDirName)
	b.plotOutdir = filepath.Join(b.plotdir, b.name)

	for _, dir := range []string{b.plotdir, b.plotOutdir} {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return errors.Wrapf(err, "unable to create %s", dir)
		}
	}

	return nil
}

var _ Diagnostics = (*Base)(nil)
