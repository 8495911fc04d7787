/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/friendsincode/itinerary_clock/internal/batch"
	"github.com/friendsincode/itinerary_clock/internal/itinerary"
	"github.com/friendsincode/itinerary_clock/internal/storage"
)

// compute flags, shared by both aggregation commands
var (
	computeInput  string
	computeOutput string
	computeFormat string
)

var airDurationCmd = &cobra.Command{
	Use:   "air-duration",
	Short: "Sum leg flight minutes per itinerary",
	Long:  "Read a batch document and print the total in-air minutes of every itinerary (-99999 when a leg is unknown)",
	RunE:  computeRunner(itinerary.OpAirDuration),
}

var spanDurationCmd = &cobra.Command{
	Use:   "span-duration",
	Short: "Minutes between first and last departure per itinerary",
	Long:  "Read a batch document and print the minutes between the first and last leg departures of every itinerary (-99999 when an endpoint leg is unknown)",
	RunE:  computeRunner(itinerary.OpSpanDuration),
}

func init() {
	for _, c := range []*cobra.Command{airDurationCmd, spanDurationCmd} {
		c.Flags().StringVarP(&computeInput, "input", "i", "", "Batch document: file path, s3://bucket/key, or - for stdin (required)")
		c.Flags().StringVarP(&computeOutput, "output", "o", storage.StdioKey, "Result destination: file path, s3://bucket/key, or - for stdout")
		c.Flags().StringVarP(&computeFormat, "format", "f", string(batch.FormatJSON), "Output format: json or yaml")
		_ = c.MarkFlagRequired("input")
		rootCmd.AddCommand(c)
	}
}

func computeRunner(op itinerary.Operation) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}

		format, err := batch.ParseFormat(computeFormat)
		if err != nil {
			return err
		}

		return runCompute(cmd.Context(), op, computeInput, computeOutput, format, cmd.InOrStdin(), cmd.OutOrStdout())
	}
}

func runCompute(ctx context.Context, op itinerary.Operation, input, output string, format batch.Format, stdin io.Reader, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	src, key, err := locate(ctx, input, stdin, stdout)
	if err != nil {
		return fmt.Errorf("locate input: %w", err)
	}
	data, err := src.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("read input %s: %w", input, err)
	}

	b, err := batch.DecodeBytes(data)
	if err != nil {
		return err
	}

	res, err := newCalculator().Run(ctx, op, b.Itineraries, b.Airports, b.Legs)
	if err != nil {
		return err
	}

	logger.Info().
		Str("operation", string(op)).
		Str("batch_id", res.BatchID).
		Int("itineraries", len(b.Itineraries)).
		Msg("batch computed")

	var buf bytes.Buffer
	if err := batch.Encode(&buf, format, batch.NewOutput(res)); err != nil {
		return fmt.Errorf("encode results: %w", err)
	}

	dst, key, err := locate(ctx, output, stdin, stdout)
	if err != nil {
		return fmt.Errorf("locate output: %w", err)
	}
	if err := dst.Put(ctx, key, buf.Bytes()); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	return nil
}

// locate resolves a location, binding the stdio store to the command's streams.
func locate(ctx context.Context, uri string, stdin io.Reader, stdout io.Writer) (storage.ObjectStore, string, error) {
	if uri == storage.StdioKey {
		return &storage.StdioStore{In: stdin, Out: stdout}, storage.StdioKey, nil
	}
	return storage.Locate(ctx, uri, cfg.S3(), logger)
}
