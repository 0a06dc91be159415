// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package observability provides metrics and instrumentation for the reviewer.
//
// # Description
//
// This package implements Prometheus metrics for monitoring proposal scoring
// operations. Metrics include:
//   - Review counters (by scheme and outcome)
//   - Scoring latency histograms
//   - Final score distributions
//   - Error counters (by error type)
//
// # Integration
//
// Metrics are exposed via the /metrics endpoint. Use with Prometheus +
// Grafana for dashboards and alerting.
//
// # Thread Safety
//
// All metric operations are thread-safe via Prometheus's internal locking.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// Metric Definitions
// =============================================================================

// Namespace for all metrics
const metricsNamespace = "grantpilot"

// Subsystem for review metrics
const reviewSubsystem = "reviews"

// ReviewMetrics holds all Prometheus metrics for proposal scoring operations.
//
// # Description
//
// Provides counters and histograms for monitoring scoring throughput,
// latency, and outcomes. Initialize once at startup via InitMetrics().
//
// # Fields
//
//   - ReviewsTotal: Counter of reviews by scheme and verdict
//   - ReviewDurationSeconds: Histogram of scoring latency
//   - ReviewScore: Histogram of final total scores by scheme
//   - DocumentWords: Histogram of submitted draft sizes
//   - ErrorsTotal: Counter of errors by type
//
// # Thread Safety
//
// All operations are thread-safe.
type ReviewMetrics struct {
	// ReviewsTotal counts completed reviews.
	// Labels: scheme (horizon-ri-2025, ...), verdict (passed, not_passed)
	ReviewsTotal *prometheus.CounterVec

	// ReviewDurationSeconds measures end-to-end scoring latency.
	// Labels: scheme
	ReviewDurationSeconds *prometheus.HistogramVec

	// ReviewScore records the final total score of each review.
	// Labels: scheme
	ReviewScore *prometheus.HistogramVec

	// DocumentWords records the word count of submitted drafts.
	// Labels: scheme
	DocumentWords *prometheus.HistogramVec

	// ErrorsTotal counts request failures by type.
	// Labels: error_code (validation, document_too_short, unknown_scheme, scoring)
	ErrorsTotal *prometheus.CounterVec
}

// DefaultMetrics is the singleton instance of ReviewMetrics.
// Initialized by InitMetrics().
var DefaultMetrics *ReviewMetrics

// InitMetrics initializes the default metrics instance.
//
// # Description
//
// Creates and registers all Prometheus metrics. Should be called once
// at application startup, after Prometheus registry is available.
//
// # Outputs
//
//   - *ReviewMetrics: The initialized metrics instance.
//
// # Limitations
//
//   - Panics if called twice (duplicate registration).
//
// # Assumptions
//
//   - Prometheus default registry is available.
func InitMetrics() *ReviewMetrics {
	DefaultMetrics = &ReviewMetrics{
		ReviewsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: reviewSubsystem,
				Name:      "total",
				Help:      "Total number of completed reviews by scheme and verdict",
			},
			[]string{"scheme", "verdict"},
		),

		ReviewDurationSeconds: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: reviewSubsystem,
				Name:      "duration_seconds",
				Help:      "End-to-end scoring latency in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
			[]string{"scheme"},
		),

		ReviewScore: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: reviewSubsystem,
				Name:      "score",
				Help:      "Final total score of each review",
				Buckets:   []float64{0, 2.5, 5, 7.5, 10, 12.5, 15},
			},
			[]string{"scheme"},
		),

		DocumentWords: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: reviewSubsystem,
				Name:      "document_words",
				Help:      "Word count of submitted proposal drafts",
				Buckets:   []float64{100, 500, 1000, 2500, 5000, 10000, 25000},
			},
			[]string{"scheme"},
		),

		ErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: reviewSubsystem,
				Name:      "errors_total",
				Help:      "Total request failures by error type",
			},
			[]string{"error_code"},
		),
	}

	return DefaultMetrics
}

// =============================================================================
// Error Codes
// =============================================================================

// ErrorCode represents a categorized error type for metrics.
type ErrorCode string

const (
	// ErrorCodeValidation indicates request body validation failure.
	ErrorCodeValidation ErrorCode = "validation"

	// ErrorCodeDocumentTooShort indicates a draft below the scoring minimum.
	ErrorCodeDocumentTooShort ErrorCode = "document_too_short"

	// ErrorCodeUnknownScheme indicates a scheme id with no loaded rubric.
	ErrorCodeUnknownScheme ErrorCode = "unknown_scheme"

	// ErrorCodeScoring indicates an internal failure during aggregation.
	ErrorCodeScoring ErrorCode = "scoring"
)

// RecordError increments the error counter for the given code.
// Safe to call when metrics are not initialized (no-op).
func RecordError(code ErrorCode) {
	if DefaultMetrics == nil {
		return
	}
	DefaultMetrics.ErrorsTotal.WithLabelValues(string(code)).Inc()
}

// RecordReview records a completed review's outcome, score, size, and
// latency in one call. Safe to call when metrics are not initialized.
func RecordReview(scheme string, passed bool, score float64, words int, seconds float64) {
	if DefaultMetrics == nil {
		return
	}
	verdict := "not_passed"
	if passed {
		verdict = "passed"
	}
	DefaultMetrics.ReviewsTotal.WithLabelValues(scheme, verdict).Inc()
	DefaultMetrics.ReviewScore.WithLabelValues(scheme).Observe(score)
	DefaultMetrics.DocumentWords.WithLabelValues(scheme).Observe(float64(words))
	DefaultMetrics.ReviewDurationSeconds.WithLabelValues(scheme).Observe(seconds)
}
