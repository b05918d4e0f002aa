// Package measure records how long each stage, its diagnostics and the hand
// over from its parents took.
package measure

import "time"

// Measure holds one Metric per stage.
type Measure interface {
	AddMetric(name string) Metric
	GetMetric(name string) Metric
	AllMetrics() map[string]Metric
}

// Metric holds the timings of a stage.
type Metric interface {
	AddDuration(elapsed time.Duration)
	AddDiagnosticsDuration(elapsed time.Duration)
	AddTransportDuration(inputStageName string, elapsed time.Duration)
	AVGDuration() time.Duration
	AVGDiagnosticsDuration() time.Duration
	AVGTransportDuration() map[string]*TransportInfo
	SetTotalDuration(endDuration time.Duration)
	GetTotalDuration() time.Duration
	AllTransports() map[string]*TransportInfo
}
