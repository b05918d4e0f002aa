// Package catalog holds tabular truth catalogs and the readers that load them.
package catalog

import (
	"github.com/pkg/errors"
)

var (
	// ErrMissingColumn is returned when a table does not carry a requested column.
	ErrMissingColumn = errors.New("missing column")
	// ErrColumnLength is returned when a column does not match the table length.
	ErrColumnLength = errors.New("column length mismatch")
)

// TruthColumns are the columns every truth catalog must provide.
var TruthColumns = []string{"ra", "flux", "hlr"}

// Table is a named set of float64 columns of equal length.
type Table struct {
	name  string
	order []string
	cols  map[string][]float64
}

// NewTable creates an empty table.
func NewTable(name string) *Table {
	return &Table{
		name: name,
		cols: make(map[string][]float64),
	}
}

// FromRows builds a truth table from rows.
func FromRows(name string, rows []Row) *Table {
	ra := make([]float64, len(rows))
	flux := make([]float64, len(rows))
	hlr := make([]float64, len(rows))

	for i, r := range rows {
		ra[i], flux[i], hlr[i] = r.RA, r.Flux, r.HLR
	}

	t := NewTable(name)
	t.order = []string{"ra", "flux", "hlr"}
	t.cols["ra"], t.cols["flux"], t.cols["hlr"] = ra, flux, hlr

	return t
}

// Name returns the table name, usually the file it was read from.
func (t *Table) Name() string {
	return t.name
}

// Set adds or replaces a column.
func (t *Table) Set(name string, values []float64) error {
	// the only column may be replaced by one of any length
	onlyColumn := len(t.order) == 1 && t.order[0] == name
	if len(t.order) > 0 && !onlyColumn && len(values) != t.Len() {
		return errors.Wrapf(ErrColumnLength, "column %q has %d rows, table %s has %d", name, len(values), t.name, t.Len())
	}

	if _, ok := t.cols[name]; !ok {
		t.order = append(t.order, name)
	}

	t.cols[name] = values

	return nil
}

// Column returns the values of the named column. The slice is shared with the table.
func (t *Table) Column(name string) ([]float64, error) {
	values, ok := t.cols[name]
	if !ok {
		return nil, errors.Wrapf(ErrMissingColumn, "%q in table %s", name, t.name)
	}

	return values, nil
}

// Columns returns the column names in insertion order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.order...)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if len(t.order) == 0 {
		return 0
	}

	return len(t.cols[t.order[0]])
}
