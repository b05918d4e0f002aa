package pipeline

import (
	"github.com/pkg/errors"
)

var (
	ErrEmptyStageName = errors.New("stage name must be set")
	ErrDuplicateStage = errors.New("stage already exists")
	ErrUnknownStage   = errors.New("unknown stage")
	// ErrReservedStageName is returned for the names of the virtual start and end stages.
	ErrReservedStageName = errors.New("stage name is reserved")
)
