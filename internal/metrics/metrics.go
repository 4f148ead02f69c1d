// Interlink - Content Directory Relevance and Entity Linking Engine
// Copyright 2026 C. Palmer (cpalmer418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cpalmer418/interlink

// Package metrics provides Prometheus instrumentation for Interlink:
// API endpoint latency and throughput, dictionary build health, auto-link
// rewrite volume, related-content selection latency and cache efficiency.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Entity Dictionary Metrics
	DictionaryBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entity_dictionary_builds_total",
			Help: "Total number of entity dictionary builds by outcome",
		},
		[]string{"outcome"}, // "full", "fallback"
	)

	DictionaryEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "entity_dictionary_entries",
			Help: "Number of entries in the current entity dictionary snapshot",
		},
	)

	// Auto-Linker Metrics
	EntityRewritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entity_rewrites_total",
			Help: "Total number of entity occurrences rewritten by the auto-linker",
		},
		[]string{"form"}, // "link", "emphasis"
	)

	// Related-Content Selector Metrics
	SelectorDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "related_selection_duration_seconds",
			Help:    "Duration of related-content selection in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RelatedCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "related_cache_hits_total",
			Help: "Total number of related-content cache hits",
		},
	)

	RelatedCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "related_cache_misses_total",
			Help: "Total number of related-content cache misses",
		},
	)

	// Content Store Metrics
	StoreItemReads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_item_reads_total",
			Help: "Total number of content item reads by type",
		},
		[]string{"type"},
	)
)

// RecordAPIRequest records metrics for an API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordDictionaryBuild records a dictionary build with its outcome and size.
func RecordDictionaryBuild(fallback bool, entries int) {
	outcome := "full"
	if fallback {
		outcome = "fallback"
	}
	DictionaryBuildsTotal.WithLabelValues(outcome).Inc()
	DictionaryEntries.Set(float64(entries))
}

// RecordEntityRewrite records rewritten entity occurrences of one form.
func RecordEntityRewrite(form string, count int) {
	if count > 0 {
		EntityRewritesTotal.WithLabelValues(form).Add(float64(count))
	}
}

// RecordSelection records a related-content selection duration.
func RecordSelection(duration time.Duration) {
	SelectorDuration.Observe(duration.Seconds())
}
