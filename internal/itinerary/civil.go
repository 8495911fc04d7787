/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package itinerary

import (
	"fmt"
	"strings"
	"time"
)

// Civil is a calendar date and time of day with no timezone attached.
type Civil struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
	Second int
}

// Time-of-day layouts accepted after the date, finest first.
var clockLayouts = []string{"15:04:05", "15:04", "15"}

// ParseCivil parses a local departure timestamp. The date and the time of day
// are parsed separately, so both "2022-06-19 12:25:45" and
// "2022-06-19T12:25:45" are accepted, as are the coarser forms "2022-06-19",
// "2022-06-19T12" and "2022-06-19 12:25". Missing fields default to zero.
func ParseCivil(s string) (Civil, error) {
	s = strings.TrimSpace(s)
	datePart, clockPart, hasClock := strings.Cut(s, " ")
	if !hasClock {
		datePart, clockPart, hasClock = strings.Cut(s, "T")
	}

	date, err := time.Parse(time.DateOnly, datePart)
	if err != nil {
		return Civil{}, fmt.Errorf("parse date %q: %w", datePart, err)
	}

	c := Civil{Year: date.Year(), Month: date.Month(), Day: date.Day()}
	if !hasClock {
		return c, nil
	}

	clockPart = strings.TrimSpace(clockPart)
	for _, layout := range clockLayouts {
		if len(clockPart) != len(layout) {
			continue
		}
		clock, err := time.Parse(layout, clockPart)
		if err != nil {
			return Civil{}, fmt.Errorf("parse time of day %q: %w", clockPart, err)
		}
		c.Hour, c.Minute, c.Second = clock.Clock()
		return c, nil
	}
	return Civil{}, fmt.Errorf("parse time of day %q: unsupported layout", clockPart)
}

// In resolves the civil time to an instant in loc. A repeated local time takes
// the earlier offset. A local time skipped by a forward transition is read
// with the offset in force before the transition, so it lands after it.
func (c Civil) In(loc *time.Location) time.Time {
	t := time.Date(c.Year, c.Month, c.Day, c.Hour, c.Minute, c.Second, 0, loc)

	want := time.Date(c.Year, c.Month, c.Day, c.Hour, c.Minute, c.Second, 0, time.UTC)
	wall := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
	if gap := want.Sub(wall); gap > 0 {
		t = t.Add(gap)
	}
	return t
}

// String formats the civil time as YYYY-MM-DDTHH:MM:SS.
func (c Civil) String() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d", c.Year, int(c.Month), c.Day, c.Hour, c.Minute, c.Second)
}
