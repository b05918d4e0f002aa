package diagnostics

import (
	"github.com/pkg/errors"

	"github.com/askiada/go-lensing/pkg/catalog"
)

const (
	// truthPattern matches the single truth catalog of a run.
	truthPattern = "*truth*.fits"
	// legacyTruthPattern matches every truth table older runs produced.
	legacyTruthPattern = "truth*.fits"
)

// Truth loads the truth catalog of an output directory.
type Truth struct {
	reader catalog.Reader
	table  *catalog.Table
}

// NewTruth creates a truth loader reading catalogs with reader.
func NewTruth(reader catalog.Reader) *Truth {
	return &Truth{reader: reader}
}

// Setup loads the truth catalog of outdir. Exactly one file must match *truth*.fits.
func (t *Truth) Setup(outdir Outdir) error {
	dir, ok := outdir.Path()
	if !ok {
		return errors.Wrap(ErrOutdirUnresolved, "truth catalog")
	}

	files, err := catalog.Glob(dir, truthPattern)
	if err != nil {
		return err
	}

	if n := len(files); n != 1 {
		return errors.Wrapf(ErrTruthCount, "there should only be 1 truth table in %s, not %d", dir, n)
	}

	table, err := t.reader.Read(files[0])
	if err != nil {
		return errors.Wrap(err, "unable to load truth catalog")
	}

	t.table = table

	return nil
}

// Table returns the loaded catalog, or nil before Setup succeeded.
func (t *Truth) Table() *catalog.Table {
	return t.table
}
