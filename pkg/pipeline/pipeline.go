package pipeline

import (
	"context"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/askiada/go-lensing/pkg/diagnostics"
	"github.com/askiada/go-lensing/pkg/params"
	"github.com/askiada/go-lensing/pkg/pipeline/model"
)

// Pipeline is a graph of stages.
type Pipeline struct {
	opts   []model.PipelineOption
	graph  graph.Graph[string, *stage]
	stages []*stage
	logger *zap.Logger
	runID  uuid.UUID
}

func stageHash(s *stage) string {
	return s.info.Name
}

// New creates a new pipeline. A nil logger discards logs.
func New(logger *zap.Logger, opts ...model.PipelineOption) (*Pipeline, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	pipe := &Pipeline{
		opts:   opts,
		graph:  graph.New(stageHash, graph.Directed(), graph.PreventCycles()),
		runID:  uuid.New(),
		logger: logger,
	}

	pipe.logger = logger.With(zap.String("run_id", pipe.runID.String()))

	for _, opt := range opts {
		err := opt.New()
		if err != nil {
			return nil, errors.Wrap(err, "unable to apply pipeline option")
		}
	}

	return pipe, nil
}

// RunID identifies the pipeline in logs.
func (p *Pipeline) RunID() uuid.UUID {
	return p.runID
}

// AddStage adds a stage and builds its diagnostics.
func (p *Pipeline) AddStage(name string, fn StageFunc, opts ...StageOption) error {
	if name == "" {
		return ErrEmptyStageName
	}

	if model.IsReserved(name) {
		return errors.Wrap(ErrReservedStageName, name)
	}

	s := &stage{
		info: &model.StageInfo{Name: name, Index: len(p.stages)},
		fn:   fn,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.info.DependsOn = unique(s.info.DependsOn)

	parents := make([]*model.StageInfo, 0, len(s.info.DependsOn))

	for _, dep := range s.info.DependsOn {
		parent, err := p.graph.Vertex(dep)
		if err != nil {
			return errors.Wrapf(ErrUnknownStage, "%s depends on %q", name, dep)
		}

		parents = append(parents, parent.info)
	}

	if len(parents) == 0 {
		parents = append(parents, model.StartStage)
	}

	err := p.graph.AddVertex(s)
	if errors.Is(err, graph.ErrVertexAlreadyExists) {
		return errors.Wrap(ErrDuplicateStage, name)
	}

	if err != nil {
		return errors.Wrapf(err, "unable to add stage %s", name)
	}

	for _, dep := range s.info.DependsOn {
		err := p.graph.AddEdge(dep, name)
		if err != nil {
			return errors.Wrapf(err, "unable to link %s to %s", dep, name)
		}
	}

	s.diag = diagnostics.Build(name, s.diagConfig, s.diagOpts...)
	s.info.Diagnostics = string(s.diag.Kind())
	p.stages = append(p.stages, s)

	for _, opt := range p.opts {
		err := opt.PrepareStage(parents, s.info)
		if err != nil {
			return errors.Wrapf(err, "unable to prepare stage %s", name)
		}
	}

	return nil
}

// Order returns the stage names in the order Run executes them.
func (p *Pipeline) Order() ([]string, error) {
	index := make(map[string]int, len(p.stages))
	for _, s := range p.stages {
		index[s.info.Name] = s.info.Index
	}

	order, err := graph.StableTopologicalSort(p.graph, func(a, b string) bool {
		return index[a] < index[b]
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to order stages")
	}

	return order, nil
}

// Run executes every stage and its diagnostics, one at a time, and stops at
// the first error.
func (p *Pipeline) Run(ctx context.Context, runOptions params.Config, logprint diagnostics.LogPrint) error {
	order, err := p.Order()
	if err != nil {
		return err
	}

	p.logger.Info("starting pipeline", zap.Int("stages", len(order)))

	start := time.Now()
	finished := map[string]time.Time{model.StartStage.Name: start}

	for _, name := range order {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "pipeline interrupted before %s", name)
		}

		s, err := p.graph.Vertex(name)
		if err != nil {
			return errors.Wrapf(err, "unable to get stage %s", name)
		}

		timing, err := p.runStage(ctx, s, runOptions, logprint, finished)
		if err != nil {
			p.logger.Error("stage failed", zap.String("stage", name), zap.Error(err))

			return err
		}

		for _, opt := range p.opts {
			err := opt.AfterStage(s.info, timing)
			if err != nil {
				return errors.Wrapf(err, "unable to record stage %s", name)
			}
		}
	}

	err = p.finishRun()
	if err != nil {
		return err
	}

	p.logger.Info("pipeline finished", zap.Duration("elapsed", time.Since(start)))

	return nil
}

func (p *Pipeline) runStage(
	ctx context.Context,
	s *stage,
	runOptions params.Config,
	logprint diagnostics.LogPrint,
	finished map[string]time.Time,
) (model.StageTiming, error) {
	name := s.info.Name
	stageStart := time.Now()

	timing := model.StageTiming{Wait: make(map[string]time.Duration)}

	parents := s.info.DependsOn
	if len(parents) == 0 {
		parents = []string{model.StartStage.Name}
	}

	for _, parent := range parents {
		timing.Wait[parent] = stageStart.Sub(finished[parent])
	}

	p.logger.Info("running stage", zap.String("stage", name), zap.String("diagnostics", s.info.Diagnostics))

	if s.fn != nil {
		if err := s.fn(ctx, runOptions); err != nil {
			return timing, errors.Wrapf(err, "stage %s failed", name)
		}
	}

	timing.Stage = time.Since(stageStart)
	diagStart := time.Now()

	if err := s.diag.Run(runOptions, logprint); err != nil {
		return timing, errors.Wrapf(err, "diagnostics of %s failed", name)
	}

	timing.Diagnostics = time.Since(diagStart)
	finished[name] = time.Now()

	p.logger.Info("stage done",
		zap.String("stage", name),
		zap.Duration("elapsed", timing.Stage),
		zap.Duration("diagnostics_elapsed", timing.Diagnostics),
	)

	return timing, nil
}

func (p *Pipeline) leaves() ([]*model.StageInfo, error) {
	adjacency, err := p.graph.AdjacencyMap()
	if err != nil {
		return nil, errors.Wrap(err, "unable to get adjacency map")
	}

	leaves := []*model.StageInfo{}

	for _, s := range p.stages {
		if len(adjacency[s.info.Name]) == 0 {
			leaves = append(leaves, s.info)
		}
	}

	return leaves, nil
}

func (p *Pipeline) finishRun() error {
	leaves, err := p.leaves()
	if err != nil {
		return err
	}

	for _, opt := range p.opts {
		err := opt.Finish(leaves)
		if err != nil {
			return errors.Wrap(err, "unable to finish pipeline option")
		}
	}

	return nil
}

func unique(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := names[:0]

	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}

		seen[name] = struct{}{}
		out = append(out, name)
	}

	return out
}
