package drawer

import (
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-lensing/pkg/pipeline/measure"
	"github.com/askiada/go-lensing/pkg/pipeline/model"
)

type pipelineDrawer struct {
	Drawer
	m         measure.Measure
	startTime time.Time
}

func (pd *pipelineDrawer) New() error {
	pd.startTime = time.Now()

	err := pd.AddStage(model.StartStage.Name)
	if err != nil {
		return errors.Wrap(err, "unable to add start stage to drawer")
	}

	err = pd.AddStage(model.EndStage.Name)
	if err != nil {
		return errors.Wrap(err, "unable to add end stage to drawer")
	}

	return nil
}

func (pd *pipelineDrawer) PrepareStage(parents []*model.StageInfo, stage *model.StageInfo) error {
	err := pd.AddStage(stage.Name)
	if err != nil {
		return err
	}

	for _, parent := range parents {
		err := pd.AddLink(parent.Name, stage.Name)
		if err != nil {
			return err
		}
	}

	return nil
}

func (pd *pipelineDrawer) AfterStage(_ *model.StageInfo, _ model.StageTiming) error {
	return nil
}

func (pd *pipelineDrawer) Finish(leaves []*model.StageInfo) error {
	for _, leaf := range leaves {
		err := pd.AddLink(leaf.Name, model.EndStage.Name)
		if err != nil {
			return err
		}
	}

	if pd.m != nil {
		err := pd.AddMeasure(pd.m)
		if err != nil {
			return errors.Wrap(err, "unable to add measure")
		}
	} else {
		err := pd.SetTotalTime(model.EndStage.Name, pd.startTime)
		if err != nil {
			return errors.Wrap(err, "unable to set total time")
		}
	}

	err := pd.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw pipeline")
	}

	return nil
}

// PipelineDrawer draws the stage graph with drawer once the pipeline
// finished. measure may be nil.
func PipelineDrawer(drawer Drawer, measure measure.Measure) model.PipelineOption {
	return &pipelineDrawer{Drawer: drawer, m: measure}
}
