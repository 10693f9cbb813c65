package goToken

import "sync/atomic"

// MetricID defines a public type used by goToken APIs.
//
// MetricID instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricID uint16

const (
	// MetricIssueSuccess is an exported constant or variable used by the token repositories.
	MetricIssueSuccess MetricID = iota
	// MetricIssueFailure is an exported constant or variable used by the token repositories.
	MetricIssueFailure
	// MetricVerifySuccess is an exported constant or variable used by the token repositories.
	MetricVerifySuccess
	// MetricVerifyFailure is an exported constant or variable used by the token repositories.
	MetricVerifyFailure
	// MetricClaimsSuccess is an exported constant or variable used by the token repositories.
	MetricClaimsSuccess
	// MetricClaimsFailure is an exported constant or variable used by the token repositories.
	MetricClaimsFailure
	// MetricDecryptFailure is an exported constant or variable used by the token repositories.
	MetricDecryptFailure
	// MetricRefreshSuccess is an exported constant or variable used by the token repositories.
	MetricRefreshSuccess
	// MetricRefreshFailure is an exported constant or variable used by the token repositories.
	MetricRefreshFailure

	metricCount
)

// Metrics is a lock-free counter recorder shared by the repositories built
// from one [Builder]. A nil *Metrics is valid and records nothing.
type Metrics struct {
	counters [metricCount]atomic.Uint64
}

// NewMetrics describes the newmetrics operation and its observable behavior.
//
// NewMetrics does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) record(id MetricID) {
	if m == nil || id >= metricCount {
		return
	}
	m.counters[id].Add(1)
}

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// Snapshot describes the snapshot operation and its observable behavior.
//
// Snapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snapshot := MetricsSnapshot{
		Counters: make(map[MetricID]uint64, metricCount),
	}
	if m == nil {
		return snapshot
	}
	for id := MetricID(0); id < metricCount; id++ {
		snapshot.Counters[id] = m.counters[id].Load()
	}
	return snapshot
}
