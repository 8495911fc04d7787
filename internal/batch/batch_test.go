/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package batch

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/friendsincode/itinerary_clock/internal/itinerary"
)

func TestDecodeYAMLMixedForms(t *testing.T) {
	doc := `
itineraries:
  - "AAABBB;BBBCCC"
  - ""
airports:
  - {code: AAA, timezone: UTC}
  - [BBB, Europe/Paris]
legs:
  - id: AAABBB
    departure: "2022-06-19 12:00:00"
    duration_min: 90
  - [BBBCCC, "2022-06-19 15:00:00", 45]
`
	b, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if want := []string{"AAABBB;BBBCCC", ""}; !reflect.DeepEqual(b.Itineraries, want) {
		t.Fatalf("itineraries = %q, want %q", b.Itineraries, want)
	}
	wantAirports := []itinerary.AirportZone{
		{Code: "AAA", Timezone: "UTC"},
		{Code: "BBB", Timezone: "Europe/Paris"},
	}
	if !reflect.DeepEqual(b.Airports, wantAirports) {
		t.Fatalf("airports = %+v, want %+v", b.Airports, wantAirports)
	}
	wantLegs := []itinerary.InputLeg{
		{ID: "AAABBB", DepartureLocal: "2022-06-19 12:00:00", DurationMin: 90},
		{ID: "BBBCCC", DepartureLocal: "2022-06-19 15:00:00", DurationMin: 45},
	}
	if !reflect.DeepEqual(b.Legs, wantLegs) {
		t.Fatalf("legs = %+v, want %+v", b.Legs, wantLegs)
	}
}

func TestDecodeJSONTuples(t *testing.T) {
	doc := `{"itineraries":["AAABBB"],"airports":[["AAA","UTC"]],"legs":[["AAABBB","2022-06-19 12:00:00",90]]}`
	b, err := DecodeBytes([]byte(doc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(b.Airports) != 1 || b.Airports[0].Timezone != "UTC" {
		t.Fatalf("airports = %+v", b.Airports)
	}
	if len(b.Legs) != 1 || b.Legs[0].DurationMin != 90 {
		t.Fatalf("legs = %+v", b.Legs)
	}
}

func TestDecodeRejectsMalformedTuples(t *testing.T) {
	tests := map[string]string{
		"short airport":    `airports: [[AAA]]`,
		"short leg":        `legs: [[AAABBB, "2022-06-19 12:00:00"]]`,
		"non-int duration": `legs: [[AAABBB, "2022-06-19 12:00:00", soon]]`,
		"nested field":     `legs: [[AAABBB, [x], 90]]`,
		"not a document":   `[1, 2, 3]`,
	}
	for name, doc := range tests {
		if _, err := DecodeBytes([]byte(doc)); err == nil {
			t.Fatalf("%s: expected decode error", name)
		}
	}
}

func TestDecodeEmptyDocument(t *testing.T) {
	_, err := DecodeBytes(nil)
	if !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("err = %v, want ErrEmptyDocument", err)
	}
}

func TestEncodeFormats(t *testing.T) {
	out := NewOutput(itinerary.Result{
		BatchID:   "b-1",
		Operation: itinerary.OpSpanDuration,
		Minutes:   []int32{180, itinerary.Unresolved},
	})

	var buf bytes.Buffer
	if err := Encode(&buf, FormatJSON, out); err != nil {
		t.Fatalf("encode json: %v", err)
	}
	if !strings.Contains(buf.String(), `"results": [`) || !strings.Contains(buf.String(), "-99999") {
		t.Fatalf("unexpected json: %s", buf.String())
	}

	buf.Reset()
	if err := Encode(&buf, FormatYAML, out); err != nil {
		t.Fatalf("encode yaml: %v", err)
	}
	if !strings.Contains(buf.String(), "results: [180, -99999]") {
		t.Fatalf("unexpected yaml: %s", buf.String())
	}

	if err := Encode(&buf, Format("xml"), out); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewOutputNeverNil(t *testing.T) {
	out := NewOutput(itinerary.Result{Operation: itinerary.OpAirDuration})
	if out.Results == nil {
		t.Fatal("results should be an empty slice")
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatJSON, "JSON": FormatJSON, "yml": FormatYAML, "yaml": FormatYAML} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("csv"); err == nil {
		t.Fatal("expected error for csv")
	}
}
