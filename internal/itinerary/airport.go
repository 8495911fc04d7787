/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package itinerary

import (
	"errors"
	"time"
	_ "time/tzdata" // fallback when the host has no zoneinfo
)

// AirportZone is one (airport code, IANA timezone name) pair as supplied by a caller.
type AirportZone struct {
	Code     string `json:"code" yaml:"code"`
	Timezone string `json:"timezone" yaml:"timezone"`
}

// Airport is an airport code with its resolved timezone.
type Airport struct {
	ID       string
	Location *time.Location
}

// AirportTable maps airport codes to resolved airports.
type AirportTable map[string]Airport

// ZoneResolver turns a timezone name into a location.
type ZoneResolver func(name string) (*time.Location, error)

var errEmptyZoneName = errors.New("empty timezone name")

// LoadZone resolves name against the runtime timezone database. Unlike
// time.LoadLocation it refuses the empty name instead of mapping it to UTC.
func LoadZone(name string) (*time.Location, error) {
	if name == "" {
		return nil, errEmptyZoneName
	}
	return time.LoadLocation(name)
}

// IngestAirports builds the airport table for one call. Pairs whose timezone
// cannot be resolved are skipped; the first resolved pair for a code wins.
func (c *Calculator) IngestAirports(zones []AirportZone) AirportTable {
	table := make(AirportTable, len(zones))
	resolved := make(map[string]*time.Location)

	for _, zone := range zones {
		if _, exists := table[zone.Code]; exists {
			continue
		}

		loc, ok := resolved[zone.Timezone]
		if !ok {
			var err error
			loc, err = c.resolve(zone.Timezone)
			if err != nil {
				c.logger.Debug().Err(err).
					Str("airport", zone.Code).
					Str("timezone", zone.Timezone).
					Msg("skipping airport with unresolvable timezone")
				continue
			}
			resolved[zone.Timezone] = loc
		}

		table[zone.Code] = Airport{ID: zone.Code, Location: loc}
	}

	c.observer.AirportsIngested(len(table))
	return table
}
