package webgate

import "sync/atomic"

// MetricID defines a public type used by webgate APIs.
//
// MetricID instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricID uint16

const (
	// MetricDecisionPass is an exported constant or variable used by the gating engine.
	MetricDecisionPass MetricID = iota
	// MetricDecisionBypass is an exported constant or variable used by the gating engine.
	MetricDecisionBypass
	// MetricDecisionRedirectLogin is an exported constant or variable used by the gating engine.
	MetricDecisionRedirectLogin
	// MetricDecisionRedirectDashboard is an exported constant or variable used by the gating engine.
	MetricDecisionRedirectDashboard
	// MetricSessionCookieCleared is an exported constant or variable used by the gating engine.
	MetricSessionCookieCleared
	// MetricTokenExpired is an exported constant or variable used by the gating engine.
	MetricTokenExpired
	// MetricTokenInvalid is an exported constant or variable used by the gating engine.
	MetricTokenInvalid
	// MetricLegacyAccepted is an exported constant or variable used by the gating engine.
	MetricLegacyAccepted
	// MetricLegacyBlobMalformed is an exported constant or variable used by the gating engine.
	MetricLegacyBlobMalformed
	// MetricLoginIssued is an exported constant or variable used by the gating engine.
	MetricLoginIssued
	// MetricLoginRateLimited is an exported constant or variable used by the gating engine.
	MetricLoginRateLimited
	// MetricRefreshSuccess is an exported constant or variable used by the gating engine.
	MetricRefreshSuccess
	// MetricRefreshFailure is an exported constant or variable used by the gating engine.
	MetricRefreshFailure
	// MetricRefreshRateLimited is an exported constant or variable used by the gating engine.
	MetricRefreshRateLimited
	// MetricLogout is an exported constant or variable used by the gating engine.
	MetricLogout
	metricIDCount
)

const cacheLineSize = 64

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics holds the gate's decision and boundary counters. Increment is a
// single atomic add on the request hot path; no labels, no locks.
type Metrics struct {
	counters [metricIDCount]paddedCounter
}

// MetricsSnapshot defines a public type used by webgate APIs.
//
// MetricsSnapshot instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// Inc increments the counter for id. Unknown IDs are ignored.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Value returns the current value of the counter for id.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot returns a point-in-time copy of all counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{Counters: make(map[MetricID]uint64, metricIDCount)}
	if m == nil {
		return snap
	}
	for id := MetricID(0); id < metricIDCount; id++ {
		snap.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}
	return snap
}
