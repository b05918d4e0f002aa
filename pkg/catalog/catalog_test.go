package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-lensing/pkg/catalog"
)

func TestTableColumns(t *testing.T) {
	t.Parallel()

	tbl := catalog.NewTable("t")
	assert.Equal(t, 0, tbl.Len())

	require.NoError(t, tbl.Set("flux", []float64{1, 2, 3}))
	require.NoError(t, tbl.Set("hlr", []float64{0.1, 0.2, 0.3}))
	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, []string{"flux", "hlr"}, tbl.Columns())

	err := tbl.Set("ra", []float64{1})
	require.ErrorIs(t, err, catalog.ErrColumnLength)

	_, err = tbl.Column("ra")
	require.ErrorIs(t, err, catalog.ErrMissingColumn)
	assert.Contains(t, err.Error(), `"ra"`)

	flux, err := tbl.Column("flux")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, flux)
}

func TestTableReplaceOnlyColumn(t *testing.T) {
	t.Parallel()

	tbl := catalog.NewTable("t")
	require.NoError(t, tbl.Set("flux", []float64{1, 2, 3}))
	require.NoError(t, tbl.Set("flux", []float64{4}))
	assert.Equal(t, 1, tbl.Len())
	assert.Equal(t, []string{"flux"}, tbl.Columns())
}

func TestFromRows(t *testing.T) {
	t.Parallel()

	tbl := catalog.FromRows("truth", []catalog.Row{
		{RA: 10, Flux: 100, HLR: 0.5},
		{RA: 11, Flux: 200, HLR: 0.6},
	})

	assert.Equal(t, "truth", tbl.Name())
	assert.Equal(t, catalog.TruthColumns, tbl.Columns())

	hlr, err := tbl.Column("hlr")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.6}, hlr)
}

func TestFITSRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "run_truth.fits")
	rows := []catalog.Row{
		{RA: 150.1, Flux: 1200, HLR: 0.45},
		{RA: 150.2, Flux: 80, HLR: 0.3},
		{RA: 150.3, Flux: 5400, HLR: 1.2},
	}

	require.NoError(t, catalog.WriteFITS(path, rows))

	tbl, err := catalog.FITSReader{}.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "run_truth.fits", tbl.Name())

	want := catalog.FromRows("run_truth.fits", rows)
	for _, name := range catalog.TruthColumns {
		got, err := tbl.Column(name)
		require.NoError(t, err)

		exp, err := want.Column(name)
		require.NoError(t, err)

		if diff := cmp.Diff(exp, got); diff != "" {
			t.Errorf("column %s mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestFITSReaderErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := catalog.FITSReader{}.Read(filepath.Join(dir, "missing.fits"))
	require.Error(t, err)

	junk := filepath.Join(dir, "junk.fits")
	require.NoError(t, os.WriteFile(junk, []byte("not a fits file"), 0o600))

	_, err = catalog.FITSReader{}.Read(junk)
	require.Error(t, err)
}

func TestGlob(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"b_truth.fits", "truth_1.fits", "truth_0.fits", "meds.fits"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}

	got, err := catalog.Glob(dir, "truth*.fits")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "truth_0.fits"),
		filepath.Join(dir, "truth_1.fits"),
	}, got)

	got, err = catalog.Glob(dir, "*truth*.fits")
	require.NoError(t, err)
	assert.Len(t, got, 3)

	_, err = catalog.Glob(dir, "[")
	require.Error(t, err)
}
