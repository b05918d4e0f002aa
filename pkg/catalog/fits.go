package catalog

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/astrogo/fitsio"
	"github.com/pkg/errors"
)

// Row is one object of a truth catalog, as stored in a FITS binary table.
type Row struct {
	RA   float64 `fits:"ra"`
	Flux float64 `fits:"flux"`
	HLR  float64 `fits:"hlr"`
}

// Reader loads a catalog file into a Table.
type Reader interface {
	Read(path string) (*Table, error)
}

// FITSReader reads truth catalogs from the first binary table HDU of a FITS file.
type FITSReader struct{}

// Read implements Reader.
func (FITSReader) Read(path string) (*Table, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", path)
	}
	defer r.Close()

	f, err := fitsio.Open(r)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to decode %s", path)
	}
	defer f.Close()

	table, err := firstTable(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}

	for _, name := range TruthColumns {
		if table.Index(name) < 0 {
			return nil, errors.Wrapf(ErrMissingColumn, "%q in %s", name, path)
		}
	}

	rows, err := table.Read(0, table.NumRows())
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read rows of %s", path)
	}
	defer rows.Close()

	var out []Row

	for rows.Next() {
		var row Row
		if err := rows.Scan(&row); err != nil {
			return nil, errors.Wrapf(err, "unable to scan row %d of %s", len(out), path)
		}

		out = append(out, row)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "unable to iterate rows of %s", path)
	}

	return FromRows(filepath.Base(path), out), nil
}

func firstTable(f *fitsio.File) (*fitsio.Table, error) {
	for _, hdu := range f.HDUs() {
		if table, ok := hdu.(*fitsio.Table); ok {
			return table, nil
		}
	}

	return nil, errors.New("no table HDU")
}

// WriteFITS writes rows as a binary table named "truth" to path.
func WriteFITS(path string, rows []Row) (err error) {
	w, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "unable to create %s", path)
	}

	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "unable to close %s", path)
		}
	}()

	f, err := fitsio.Create(w)
	if err != nil {
		return errors.Wrapf(err, "unable to start fits file %s", path)
	}
	defer f.Close()

	phdu, err := fitsio.NewPrimaryHDU(nil)
	if err != nil {
		return errors.Wrap(err, "unable to create primary hdu")
	}

	if err := f.Write(phdu); err != nil {
		return errors.Wrap(err, "unable to write primary hdu")
	}

	cols := make([]fitsio.Column, 0, len(TruthColumns))
	for _, name := range TruthColumns {
		cols = append(cols, fitsio.Column{Name: name, Format: "D"})
	}

	table, err := fitsio.NewTable("truth", cols, fitsio.BINARY_TBL)
	if err != nil {
		return errors.Wrap(err, "unable to create truth table")
	}
	defer table.Close()

	for i := range rows {
		if err := table.Write(&rows[i]); err != nil {
			return errors.Wrapf(err, "unable to write row %d", i)
		}
	}

	if err := f.Write(table); err != nil {
		return errors.Wrapf(err, "unable to write table to %s", path)
	}

	return nil
}

// Glob returns the files of dir matching pattern, sorted by name.
func Glob(dir, pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid pattern %q", pattern)
	}

	sort.Strings(matches)

	return matches, nil
}
