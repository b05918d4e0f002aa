package diagnostics

import "github.com/pkg/errors"

var (
	// ErrOutdirUnresolved is returned when neither the diagnostics config nor the
	// run options provide an output directory.
	ErrOutdirUnresolved = errors.New("outdir must be set in either module config or run_options")
	// ErrTruthCount is returned when the output directory does not hold exactly one truth catalog.
	ErrTruthCount = errors.New("unexpected number of truth tables")
)
