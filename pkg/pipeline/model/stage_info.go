package model

import "time"

// StageInfo describes a pipeline stage.
type StageInfo struct {
	Name string
	// DependsOn lists the stages that must complete first.
	DependsOn []string
	// Diagnostics is the diagnostics kind that audits the stage.
	Diagnostics string
	// Index is the insertion order of the stage.
	Index int
}

// StageTiming is reported once a stage and its diagnostics completed.
type StageTiming struct {
	// Wait is the time between each parent finishing and the stage starting.
	Wait map[string]time.Duration
	// Stage is the duration of the stage itself.
	Stage time.Duration
	// Diagnostics is the duration of the stage diagnostics.
	Diagnostics time.Duration
}

var (
	// StartStage is the virtual parent of stages without dependencies.
	StartStage = &StageInfo{Name: "start", Index: -1}
	// EndStage is the virtual child of stages nothing depends on.
	EndStage = &StageInfo{Name: "end", Index: -1}
)

// IsReserved reports whether name is the name of StartStage or EndStage.
func IsReserved(name string) bool {
	return name == StartStage.Name || name == EndStage.Name
}
