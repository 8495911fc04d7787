/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package itinerary computes itinerary durations from flight legs and an
// airport timezone table. Every call builds its own lookup tables; nothing is
// shared between calls.
package itinerary

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Unresolved marks an itinerary whose legs could not all be found.
const Unresolved int32 = -99999

// legSeparator separates leg ids inside an itinerary string.
const legSeparator = ";"

// Operation names one of the two aggregations.
type Operation string

const (
	// OpAirDuration sums the flight durations of every leg.
	OpAirDuration Operation = "air_duration"
	// OpSpanDuration measures first departure to last departure.
	OpSpanDuration Operation = "span_duration"
)

// ParseOperation converts "air_duration"/"air-duration" style names to an Operation.
func ParseOperation(s string) (Operation, error) {
	switch Operation(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")) {
	case OpAirDuration:
		return OpAirDuration, nil
	case OpSpanDuration:
		return OpSpanDuration, nil
	}
	return "", fmt.Errorf("unknown operation %q", s)
}

// Result is the outcome of one aggregation call.
type Result struct {
	BatchID   string
	Operation Operation
	Minutes   []int32
}

// Calculator runs aggregation calls.
type Calculator struct {
	resolve  ZoneResolver
	observer Observer
	logger   zerolog.Logger
	tracer   trace.Tracer
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithZoneResolver replaces the timezone lookup (default LoadZone).
func WithZoneResolver(r ZoneResolver) Option {
	return func(c *Calculator) {
		if r != nil {
			c.resolve = r
		}
	}
}

// WithObserver replaces the count observer (default LogObserver).
func WithObserver(o Observer) Option {
	return func(c *Calculator) {
		if o != nil {
			c.observer = o
		}
	}
}

// NewCalculator constructs a calculator.
func NewCalculator(logger zerolog.Logger, opts ...Option) *Calculator {
	logger = logger.With().Str("component", "itinerary").Logger()
	c := &Calculator{
		resolve:  LoadZone,
		observer: LogObserver{Logger: logger},
		logger:   logger,
		tracer:   otel.Tracer("itinerary"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run ingests airports and legs into fresh tables and aggregates every
// itinerary with op. Only an unknown op is an error; unresolvable data is
// reported through Unresolved values.
func (c *Calculator) Run(ctx context.Context, op Operation, itineraries []string, airports []AirportZone, legs []InputLeg) (Result, error) {
	var aggregate func(*Calculator, []string, LegTable) []int32
	switch op {
	case OpAirDuration:
		aggregate = (*Calculator).airDuration
	case OpSpanDuration:
		aggregate = (*Calculator).spanDuration
	default:
		return Result{}, fmt.Errorf("unknown operation %q", op)
	}

	batchID := uuid.NewString()
	_, span := c.tracer.Start(ctx, "itinerary."+string(op))
	defer span.End()
	span.SetAttributes(
		attribute.String("batch_id", batchID),
		attribute.Int("itineraries", len(itineraries)),
		attribute.Int("airports.input", len(airports)),
		attribute.Int("legs.input", len(legs)),
	)

	call := *c
	call.logger = c.logger.With().Str("batch_id", batchID).Str("operation", string(op)).Logger()
	if b, ok := call.observer.(LoggerBinder); ok {
		call.observer = b.WithLogger(call.logger)
	}

	airportTable := call.IngestAirports(airports)
	legTable := call.IngestLegs(legs, airportTable)
	minutes := aggregate(&call, itineraries, legTable)

	span.SetAttributes(
		attribute.Int("airports.ingested", len(airportTable)),
		attribute.Int("legs.ingested", len(legTable)),
	)

	return Result{BatchID: batchID, Operation: op, Minutes: minutes}, nil
}

// TotalAirDurationMin returns, per itinerary, the sum of its legs' durations
// or Unresolved when any leg is missing.
func (c *Calculator) TotalAirDurationMin(ctx context.Context, itineraries []string, airports []AirportZone, legs []InputLeg) []int32 {
	res, _ := c.Run(ctx, OpAirDuration, itineraries, airports, legs)
	return res.Minutes
}

// TotalDurationMin returns, per itinerary, the minutes elapsed between the
// first and the last leg's departure, or Unresolved when either is missing.
func (c *Calculator) TotalDurationMin(ctx context.Context, itineraries []string, airports []AirportZone, legs []InputLeg) []int32 {
	res, _ := c.Run(ctx, OpSpanDuration, itineraries, airports, legs)
	return res.Minutes
}

// splitItinerary returns the leg ids of an itinerary. The empty string has no legs.
func splitItinerary(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, legSeparator)
}

// An itinerary with no legs sums to 0 here, while spanDuration reports it as
// Unresolved. Callers rely on both behaviours.
func (c *Calculator) airDuration(itineraries []string, legs LegTable) []int32 {
	out := make([]int32, len(itineraries))
	unresolved := 0

	for i, itin := range itineraries {
		var total int32
		for _, id := range splitItinerary(itin) {
			leg, ok := legs[id]
			if !ok {
				total = Unresolved
				unresolved++
				break
			}
			total += leg.DurationMin
		}
		out[i] = total
	}

	c.observer.ItinerariesAggregated(OpAirDuration, len(itineraries), unresolved)
	return out
}

func (c *Calculator) spanDuration(itineraries []string, legs LegTable) []int32 {
	out := make([]int32, len(itineraries))
	unresolved := 0

	for i, itin := range itineraries {
		ids := splitItinerary(itin)
		if len(ids) == 0 {
			out[i] = Unresolved
			unresolved++
			continue
		}

		first, ok := legs[ids[0]]
		if !ok {
			out[i] = Unresolved
			unresolved++
			continue
		}
		last, ok := legs[ids[len(ids)-1]]
		if !ok {
			out[i] = Unresolved
			unresolved++
			continue
		}

		// Departure to departure only; the last leg's own flight time is not added.
		out[i] = int32(last.Departure.Sub(first.Departure) / time.Minute)
	}

	c.observer.ItinerariesAggregated(OpSpanDuration, len(itineraries), unresolved)
	return out
}
