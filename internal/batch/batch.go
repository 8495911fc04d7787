/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package batch decodes itinerary batch documents and encodes their results.
//
// A document carries three lists:
//
//	itineraries: ["AAABBB;BBBCCC"]
//	airports:
//	  - {code: AAA, timezone: UTC}
//	  - [BBB, Europe/Paris]          # tuple form
//	legs:
//	  - {id: AAABBB, departure: "2022-06-19 12:00:00", duration_min: 90}
//	  - [BBBCCC, "2022-06-19 15:00:00", 45]
//
// JSON is accepted as well since it is a subset of YAML.
package batch

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/friendsincode/itinerary_clock/internal/itinerary"
)

// ErrEmptyDocument is returned when the input holds no document at all.
var ErrEmptyDocument = errors.New("empty batch document")

// Batch is one aggregation request.
type Batch struct {
	Itineraries []string                `json:"itineraries" yaml:"itineraries"`
	Airports    []itinerary.AirportZone `json:"airports" yaml:"airports"`
	Legs        []itinerary.InputLeg    `json:"legs" yaml:"legs"`
}

type document struct {
	Itineraries []string      `yaml:"itineraries"`
	Airports    []airportNode `yaml:"airports"`
	Legs        []legNode     `yaml:"legs"`
}

type airportNode itinerary.AirportZone

func (a *airportNode) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		var tuple []string
		if err := node.Decode(&tuple); err != nil {
			return fmt.Errorf("line %d: airport tuple: %w", node.Line, err)
		}
		if len(tuple) != 2 {
			return fmt.Errorf("line %d: airport tuple has %d fields, want 2", node.Line, len(tuple))
		}
		a.Code, a.Timezone = tuple[0], tuple[1]
		return nil
	}
	return node.Decode((*itinerary.AirportZone)(a))
}

type legNode itinerary.InputLeg

func (l *legNode) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		if len(node.Content) != 3 {
			return fmt.Errorf("line %d: leg tuple has %d fields, want 3", node.Line, len(node.Content))
		}
		for _, field := range node.Content {
			if field.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: leg tuple fields must be scalars", field.Line)
			}
		}
		l.ID = node.Content[0].Value
		l.DepartureLocal = node.Content[1].Value
		minutes, err := strconv.ParseInt(node.Content[2].Value, 10, 32)
		if err != nil {
			return fmt.Errorf("line %d: leg duration: %w", node.Content[2].Line, err)
		}
		l.DurationMin = int32(minutes)
		return nil
	}
	return node.Decode((*itinerary.InputLeg)(l))
}

// Decode reads a single batch document from r.
func Decode(r io.Reader) (*Batch, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		return nil, fmt.Errorf("decode batch: %w", err)
	}

	b := &Batch{
		Itineraries: doc.Itineraries,
		Airports:    make([]itinerary.AirportZone, len(doc.Airports)),
		Legs:        make([]itinerary.InputLeg, len(doc.Legs)),
	}
	for i, a := range doc.Airports {
		b.Airports[i] = itinerary.AirportZone(a)
	}
	for i, l := range doc.Legs {
		b.Legs[i] = itinerary.InputLeg(l)
	}
	return b, nil
}

// DecodeBytes is Decode over an in-memory document.
func DecodeBytes(data []byte) (*Batch, error) {
	return Decode(bytes.NewReader(data))
}
