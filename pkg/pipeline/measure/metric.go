package measure

import (
	"sync"
	"time"
)

// TransportInfo is the time spent between a parent stage finishing and a
// stage starting.
type TransportInfo struct {
	Elapsed time.Duration
	total   int64
}

// DefaultMetric is safe for concurrent use.
type DefaultMetric struct {
	mu            sync.Mutex
	allTransports map[string]*TransportInfo
	EndDuration   time.Duration
	stageElapsed  time.Duration
	diagElapsed   time.Duration
	total         int64
	diagTotal     int64
}

func (mt *DefaultMetric) AddDuration(elapsed time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.total++
	mt.stageElapsed += elapsed
}

func (mt *DefaultMetric) AddDiagnosticsDuration(elapsed time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.diagTotal++
	mt.diagElapsed += elapsed
}

func (mt *DefaultMetric) SetTotalDuration(endDuration time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.EndDuration = endDuration
}

func (mt *DefaultMetric) GetTotalDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.EndDuration
}

func (mt *DefaultMetric) AddTransportDuration(inputStageName string, elapsed time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	if mt.allTransports[inputStageName] == nil {
		mt.allTransports[inputStageName] = &TransportInfo{}
	}

	ch := mt.allTransports[inputStageName]
	ch.Elapsed += elapsed
	ch.total++
}

func (mt *DefaultMetric) AVGDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return average(mt.stageElapsed, mt.total)
}

func (mt *DefaultMetric) AVGDiagnosticsDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return average(mt.diagElapsed, mt.diagTotal)
}

// AVGTransportDuration returns a copy of the transports with averaged durations.
func (mt *DefaultMetric) AVGTransportDuration() map[string]*TransportInfo {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	out := make(map[string]*TransportInfo, len(mt.allTransports))
	for name, ch := range mt.allTransports {
		out[name] = &TransportInfo{Elapsed: average(ch.Elapsed, ch.total), total: ch.total}
	}

	return out
}

// AllTransports returns a copy of the accumulated transports.
func (mt *DefaultMetric) AllTransports() map[string]*TransportInfo {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	out := make(map[string]*TransportInfo, len(mt.allTransports))
	for name, ch := range mt.allTransports {
		cp := *ch
		out[name] = &cp
	}

	return out
}

func average(elapsed time.Duration, total int64) time.Duration {
	if total == 0 {
		return 0
	}

	return round(time.Duration(float64(elapsed) / float64(total)))
}

func round(d time.Duration) time.Duration {
	switch {
	case d > time.Hour:
		d = d.Round(time.Minute)
	case d > time.Minute:
		d = d.Round(time.Second)
	case d > time.Second:
		d = d.Round(time.Millisecond)
	case d > time.Millisecond:
		d = d.Round(time.Microsecond)
	}

	return d
}

var _ Metric = (*DefaultMetric)(nil)
