/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package batch

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/friendsincode/itinerary_clock/internal/itinerary"
)

// Format selects the result encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts json, yaml or yml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported format %q", s)
}

// Output is the encoded form of an aggregation result.
type Output struct {
	Operation itinerary.Operation `json:"operation" yaml:"operation"`
	BatchID   string              `json:"batch_id" yaml:"batch_id"`
	Results   []int32             `json:"results" yaml:"results,flow"`
}

// NewOutput wraps a calculator result. Results is never nil so it encodes as [].
func NewOutput(res itinerary.Result) Output {
	results := res.Minutes
	if results == nil {
		results = []int32{}
	}
	return Output{Operation: res.Operation, BatchID: res.BatchID, Results: results}
}

// Encode writes out to w in the requested format.
func Encode(w io.Writer, format Format, out Output) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unsupported format %q", format)
}
