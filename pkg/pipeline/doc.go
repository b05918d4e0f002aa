// Package pipeline runs the stages of a lensing pipeline in dependency order.
//
// Stages form a directed acyclic graph: a stage only starts once every stage it
// depends on completed. Each stage is audited by the diagnostics registered for
// its name, which run as soon as the stage itself finished. The pipeline stops
// on the first error, from a stage or from its diagnostics.
//
// Pipeline options observe the run through the hooks of model.PipelineOption.
// The measure and drawer subpackages provide options that time every stage and
// render the stage graph.
package pipeline
