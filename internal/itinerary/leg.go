/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package itinerary

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// codeLen is the width of an airport code inside a leg id.
const codeLen = 3

// InputLeg is one (leg id, local departure, duration) record as supplied by a caller.
type InputLeg struct {
	ID             string `json:"id" yaml:"id"`
	DepartureLocal string `json:"departure" yaml:"departure"`
	DurationMin    int32  `json:"duration_min" yaml:"duration_min"`
}

// Leg is a resolved flight segment.
type Leg struct {
	ID             string
	Origin         string
	Destination    string
	DepartureLocal Civil
	Departure      time.Time
	DurationMin    int32
}

// String renders the leg as origin;destination;local departure;duration.
func (l Leg) String() string {
	return strings.Join([]string{
		l.Origin,
		l.Destination,
		l.DepartureLocal.String(),
		strconv.Itoa(int(l.DurationMin)),
	}, ";")
}

// LegTable maps leg ids to resolved legs.
type LegTable map[string]Leg

// ParseLegID splits a fixed-width leg id into its origin and destination
// airport codes. Ids shorter than two codes are rejected; anything past the
// destination code is ignored.
func ParseLegID(id string) (origin, destination string, err error) {
	if len(id) < 2*codeLen {
		return "", "", fmt.Errorf("leg id %q shorter than %d characters", id, 2*codeLen)
	}
	return id[:codeLen], id[codeLen : 2*codeLen], nil
}

// IngestLegs builds the leg table for one call. A leg is skipped when its id
// is malformed, its local departure cannot be parsed, or its origin airport is
// not in airports. The first ingested leg for an id wins.
func (c *Calculator) IngestLegs(legs []InputLeg, airports AirportTable) LegTable {
	table := make(LegTable, len(legs))

	for _, in := range legs {
		if _, exists := table[in.ID]; exists {
			continue
		}

		origin, destination, err := ParseLegID(in.ID)
		if err != nil {
			c.logger.Debug().Err(err).Msg("skipping leg with malformed id")
			continue
		}

		local, err := ParseCivil(in.DepartureLocal)
		if err != nil {
			c.logger.Debug().Err(err).Str("leg", in.ID).Msg("skipping leg with unparseable departure")
			continue
		}

		airport, ok := airports[origin]
		if !ok {
			continue
		}

		leg := Leg{
			ID:             in.ID,
			Origin:         origin,
			Destination:    destination,
			DepartureLocal: local,
			Departure:      local.In(airport.Location),
			DurationMin:    in.DurationMin,
		}
		table[in.ID] = leg
		c.logger.Trace().Str("leg", in.ID).Str("row", leg.String()).Msg("leg ingested")
	}

	c.observer.LegsIngested(len(table))
	return table
}
