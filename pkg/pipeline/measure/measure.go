package measure

import (
	"sync"
)

// DefaultMeasure keeps metrics in memory.
type DefaultMeasure struct {
	mu     sync.Mutex
	stages map[string]Metric
}

// NewDefaultMeasure creates an empty measure.
func NewDefaultMeasure() *DefaultMeasure {
	return &DefaultMeasure{
		stages: make(map[string]Metric),
	}
}

// AddMetric registers a stage, replacing any previous metric with that name.
func (m *DefaultMeasure) AddMetric(name string) Metric {
	mt := &DefaultMetric{
		allTransports: make(map[string]*TransportInfo),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.stages[name] = mt

	return mt
}

// GetMetric returns the metric of a stage, or nil.
func (m *DefaultMeasure) GetMetric(name string) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.stages[name]
}

// AllMetrics returns a copy of the metrics by stage name.
func (m *DefaultMeasure) AllMetrics() map[string]Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]Metric, len(m.stages))
	for name, mt := range m.stages {
		out[name] = mt
	}

	return out
}

var _ Measure = (*DefaultMeasure)(nil)
