package diagnostics

import (
	"github.com/pkg/errors"
)

type outdirState int

const (
	outdirUnresolved outdirState = iota
	outdirResolved
)

// Outdir is the output root of a stage. It is resolved at most once.
type Outdir struct {
	state outdirState
	path  string
}

// ResolvedOutdir returns an Outdir already set to path.
func ResolvedOutdir(path string) Outdir {
	return Outdir{state: outdirResolved, path: path}
}

// Path returns the resolved directory, and false while unresolved.
func (o Outdir) Path() (string, bool) {
	return o.path, o.state == outdirResolved
}

// Resolved reports whether the directory is known.
func (o Outdir) Resolved() bool {
	return o.state == outdirResolved
}

// resolve sets the directory from candidate unless already resolved.
func (o *Outdir) resolve(candidate any) error {
	if o.state == outdirResolved {
		return nil
	}

	path, ok := candidate.(string)
	if !ok || path == "" {
		return errors.Wrapf(ErrOutdirUnresolved, "run_options outdir is %v", candidate)
	}

	o.state, o.path = outdirResolved, path

	return nil
}

func (o Outdir) String() string {
	if o.state == outdirUnresolved {
		return "<unresolved>"
	}

	return o.path
}
