// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-hybridsign.
//
// go-hybridsign is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

// Package metrics defines Prometheus metrics for key lifecycle and signing
// operations. Post-quantum suites have very different timing profiles from
// classical ones, so every observation carries a suite label.
package metrics

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// Namespace is the Prometheus namespace for all hybridsign metrics
	Namespace = "hybridsign"

	// Label names
	LabelOperation = "operation"
	LabelSuite     = "suite"
	LabelStatus    = "status"

	// Status values
	StatusSuccess = "success"
	StatusError   = "error"

	// Operation names
	OpGenerate   = "generate"
	OpImport     = "import"
	OpDeactivate = "deactivate"
	OpSign       = "sign"
	OpVerify     = "verify"
	OpRotate     = "rotate"
	OpHybridSign = "hybrid_sign"
)

var (
	// OperationsTotal tracks the total number of lifecycle operations by
	// operation, suite, and status.
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "operations_total",
			Help:      "Total number of key lifecycle operations by operation, suite, and status",
		},
		[]string{LabelOperation, LabelSuite, LabelStatus},
	)

	// OperationDuration tracks operation latency in seconds. Buckets span
	// sub-millisecond classical signing through slow lattice key generation.
	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of key lifecycle operations in seconds",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{LabelOperation, LabelSuite},
	)

	// ActiveKeys tracks the number of active key records per suite.
	ActiveKeys = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "active_keys",
			Help:      "Number of active key records per suite",
		},
		[]string{LabelSuite},
	)
)

// disabled suppresses collection when metrics are turned off in config.
var disabled atomic.Bool

// SetEnabled turns metric collection on or off. Collection is on by default.
func SetEnabled(on bool) {
	disabled.Store(!on)
}

// Enabled reports whether metric collection is on.
func Enabled() bool {
	return !disabled.Load()
}

// RecordOperation increments OperationsTotal with a status derived from err.
func RecordOperation(operation, suite string, err error) {
	if disabled.Load() {
		return
	}
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	OperationsTotal.WithLabelValues(operation, suite, status).Inc()
}

// ObserveDuration records the elapsed time since start for an operation.
func ObserveDuration(operation, suite string, start time.Time) {
	if disabled.Load() {
		return
	}
	OperationDuration.WithLabelValues(operation, suite).Observe(time.Since(start).Seconds())
}

// IncActiveKeys increments the active key gauge for a suite.
func IncActiveKeys(suite string) {
	if disabled.Load() {
		return
	}
	ActiveKeys.WithLabelValues(suite).Inc()
}

// DecActiveKeys decrements the active key gauge for a suite.
func DecActiveKeys(suite string) {
	if disabled.Load() {
		return
	}
	ActiveKeys.WithLabelValues(suite).Dec()
}
