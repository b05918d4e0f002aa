package diagnostics_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-lensing/pkg/catalog"
)

var errUnknownFile = errors.New("unknown file")

// fakeReader serves tables by file base name.
type fakeReader struct {
	tables map[string][]catalog.Row

	mu    sync.Mutex
	reads []string
}

func newFakeReader(tables map[string][]catalog.Row) *fakeReader {
	return &fakeReader{tables: tables}
}

func (f *fakeReader) Read(path string) (*catalog.Table, error) {
	name := filepath.Base(path)

	f.mu.Lock()
	f.reads = append(f.reads, name)
	f.mu.Unlock()

	rows, ok := f.tables[name]
	if !ok {
		return nil, errors.Wrap(errUnknownFile, name)
	}

	return catalog.FromRows(name, rows), nil
}

func (f *fakeReader) Reads() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.reads...)
}

type recorder struct {
	msgs []string
}

func (r *recorder) print(msg string) {
	r.msgs = append(r.msgs, msg)
}

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()

	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}
}

func requireDir(t *testing.T, path string) {
	t.Helper()

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.True(t, info.IsDir(), "%s is not a directory", path)
}

func requireFile(t *testing.T, path string) {
	t.Helper()

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.False(t, info.IsDir())
	require.Positive(t, info.Size())
}

func truthRows() []catalog.Row {
	return []catalog.Row{
		{RA: 150.10, Flux: 1200, HLR: 0.45},
		{RA: 150.12, Flux: 85, HLR: 0.31},
		{RA: 150.15, Flux: 5400, HLR: 1.20},
		{RA: 150.20, Flux: 430, HLR: 0.62},
	}
}
