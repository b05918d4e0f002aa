package diagnostics

import (
	"github.com/askiada/go-lensing/pkg/catalog"
)

const defaultLoaders = 4

type options struct {
	reader  catalog.Reader
	loaders int
}

// Option configures the diagnostics returned by Build.
type Option func(*options)

// WithCatalogReader sets how truth catalogs are read. Defaults to catalog.FITSReader.
func WithCatalogReader(reader catalog.Reader) Option {
	return func(o *options) {
		o.reader = reader
	}
}

// WithLoaders bounds how many catalogs are read at the same time.
func WithLoaders(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.loaders = n
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		reader:  catalog.FITSReader{},
		loaders: defaultLoaders,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
