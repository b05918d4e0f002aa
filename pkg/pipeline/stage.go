package pipeline

import (
	"context"

	"github.com/askiada/go-lensing/pkg/diagnostics"
	"github.com/askiada/go-lensing/pkg/params"
	"github.com/askiada/go-lensing/pkg/pipeline/model"
)

// StageFunc does the work of a stage. A nil StageFunc marks a stage whose
// outputs already exist, only its diagnostics run.
type StageFunc func(ctx context.Context, runOptions params.Config) error

type stage struct {
	info       *model.StageInfo
	fn         StageFunc
	diagConfig params.Config
	diagOpts   []diagnostics.Option
	diag       diagnostics.Diagnostics
}

// StageOption configures a stage.
type StageOption func(s *stage)

// DependsOn makes the stage wait for the named stages, which must already be added.
func DependsOn(names ...string) StageOption {
	return func(s *stage) {
		s.info.DependsOn = append(s.info.DependsOn, names...)
	}
}

// DiagnosticsConfig sets the config handed to the stage diagnostics.
func DiagnosticsConfig(config params.Config) StageOption {
	return func(s *stage) {
		s.diagConfig = config
	}
}

// DiagnosticsOptions sets the options used to build the stage diagnostics.
func DiagnosticsOptions(opts ...diagnostics.Option) StageOption {
	return func(s *stage) {
		s.diagOpts = append(s.diagOpts, opts...)
	}
}
