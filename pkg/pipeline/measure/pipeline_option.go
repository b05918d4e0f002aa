package measure

import (
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-lensing/pkg/pipeline/model"
)

// ErrUnknownStage is returned when timings arrive for a stage never prepared.
var ErrUnknownStage = errors.New("unknown stage")

type pipelineMeasure struct {
	Measure
	startTime time.Time
}

func (pm *pipelineMeasure) New() error {
	pm.startTime = time.Now()
	pm.AddMetric(model.StartStage.Name)
	pm.AddMetric(model.EndStage.Name)

	return nil
}

func (pm *pipelineMeasure) PrepareStage(_ []*model.StageInfo, stage *model.StageInfo) error {
	pm.AddMetric(stage.Name)

	return nil
}

func (pm *pipelineMeasure) AfterStage(stage *model.StageInfo, timing model.StageTiming) error {
	mt := pm.GetMetric(stage.Name)
	if mt == nil {
		return errors.Wrap(ErrUnknownStage, stage.Name)
	}

	mt.AddDuration(timing.Stage)
	mt.AddDiagnosticsDuration(timing.Diagnostics)

	for parent, wait := range timing.Wait {
		mt.AddTransportDuration(parent, wait)
	}

	return nil
}

func (pm *pipelineMeasure) Finish(_ []*model.StageInfo) error {
	pm.GetMetric(model.EndStage.Name).SetTotalDuration(time.Since(pm.startTime))

	return nil
}

// PipelineMeasure records the timings of every stage into measure.
func PipelineMeasure(measure Measure) model.PipelineOption {
	return &pipelineMeasure{Measure: measure}
}
