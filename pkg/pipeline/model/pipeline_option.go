package model

// PipelineOption defines the interface for pipeline options.
type PipelineOption interface {
	// New initialises the pipeline option.
	New() error
	// PrepareStage runs when a stage is added to the pipeline. parents is
	// StartStage alone for stages without dependencies.
	PrepareStage(parents []*StageInfo, stage *StageInfo) error
	// AfterStage runs once the stage and its diagnostics completed.
	AfterStage(stage *StageInfo, timing StageTiming) error
	// Finish runs after the pipeline is finished. leaves are the stages
	// nothing depends on.
	Finish(leaves []*StageInfo) error
}
