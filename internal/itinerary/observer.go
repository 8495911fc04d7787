/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package itinerary

import "github.com/rs/zerolog"

// Observer receives ingestion and aggregation counts for one call.
type Observer interface {
	AirportsIngested(n int)
	LegsIngested(n int)
	ItinerariesAggregated(op Operation, total, unresolved int)
}

// LoggerBinder is implemented by observers that log. Run hands them the
// per-call logger carrying the batch id and operation.
type LoggerBinder interface {
	WithLogger(logger zerolog.Logger) Observer
}

// LogObserver reports counts as structured log lines.
type LogObserver struct {
	Logger zerolog.Logger
}

func (o LogObserver) WithLogger(logger zerolog.Logger) Observer {
	return LogObserver{Logger: logger}
}

func (o LogObserver) AirportsIngested(n int) {
	o.Logger.Info().Int("airports", n).Msg("airports ingested")
}

func (o LogObserver) LegsIngested(n int) {
	o.Logger.Info().Int("legs", n).Msg("legs ingested")
}

// ItinerariesAggregated relies on the bound logger for the operation field.
func (o LogObserver) ItinerariesAggregated(_ Operation, total, unresolved int) {
	o.Logger.Info().
		Int("itineraries", total).
		Int("unresolved", unresolved).
		Msg("itineraries aggregated")
}

// MultiObserver fans counts out to several observers.
type MultiObserver []Observer

func (m MultiObserver) WithLogger(logger zerolog.Logger) Observer {
	bound := make(MultiObserver, len(m))
	for i, o := range m {
		if b, ok := o.(LoggerBinder); ok {
			o = b.WithLogger(logger)
		}
		bound[i] = o
	}
	return bound
}

func (m MultiObserver) AirportsIngested(n int) {
	for _, o := range m {
		o.AirportsIngested(n)
	}
}

func (m MultiObserver) LegsIngested(n int) {
	for _, o := range m {
		o.LegsIngested(n)
	}
}

func (m MultiObserver) ItinerariesAggregated(op Operation, total, unresolved int) {
	for _, o := range m {
		o.ItinerariesAggregated(op, total, unresolved)
	}
}
