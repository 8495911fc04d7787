/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package telemetry

import "github.com/friendsincode/itinerary_clock/internal/itinerary"

// MetricsObserver records itinerary calculator counts as Prometheus metrics.
type MetricsObserver struct{}

func (MetricsObserver) AirportsIngested(n int) {
	AirportsIngested.Observe(float64(n))
}

func (MetricsObserver) LegsIngested(n int) {
	LegsIngested.Observe(float64(n))
}

func (MetricsObserver) ItinerariesAggregated(op itinerary.Operation, total, unresolved int) {
	ItinerariesTotal.WithLabelValues(string(op), "resolved").Add(float64(total - unresolved))
	ItinerariesTotal.WithLabelValues(string(op), "unresolved").Add(float64(unresolved))
}
