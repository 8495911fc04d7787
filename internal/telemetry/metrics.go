/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "itinerary"

var (
	// APIRequestsTotal counts HTTP requests by method, route and status.
	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "HTTP requests handled, by method, route pattern and status code.",
	}, []string{"method", "endpoint", "status"})

	// APIRequestDuration observes HTTP request latency.
	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "api",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency, by method, route pattern and status code.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "endpoint", "status"})

	// APIActiveConnections tracks in-flight HTTP requests.
	APIActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "api",
		Name:      "active_connections",
		Help:      "HTTP requests currently being served.",
	})

	// AirportsIngested observes the airport table size of each call.
	AirportsIngested = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "airports_ingested",
		Help:      "Airports with a resolved timezone per aggregation call.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
	})

	// LegsIngested observes the leg table size of each call.
	LegsIngested = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "legs_ingested",
		Help:      "Legs resolved to an absolute departure per aggregation call.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
	})

	// ItinerariesTotal counts aggregated itineraries by operation and outcome.
	ItinerariesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "itineraries_total",
		Help:      "Itineraries aggregated, by operation and outcome (resolved/unresolved).",
	}, []string{"operation", "outcome"})
)

// Handler exposes the Prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
