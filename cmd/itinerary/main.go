/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/friendsincode/itinerary_clock/internal/config"
	"github.com/friendsincode/itinerary_clock/internal/itinerary"
	"github.com/friendsincode/itinerary_clock/internal/logging"
	"github.com/friendsincode/itinerary_clock/internal/server"
	"github.com/friendsincode/itinerary_clock/internal/telemetry"
	"github.com/friendsincode/itinerary_clock/internal/version"
)

var (
	logger zerolog.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "itinerary",
	Short:         "Itinerary clock - timezone-aware flight itinerary durations",
	Long:          "Itinerary clock computes air and span durations for flight itineraries from airport timezones and leg departures in local civil time.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Start the HTTP API that computes itinerary durations for posted batches",
	RunE:  runServe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads configuration (called by commands that need it)
func loadConfig() error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger = logging.Setup(cfg.Environment, cfg.LogLevel)
	return nil
}

func newCalculator() *itinerary.Calculator {
	return itinerary.NewCalculator(logger, itinerary.WithObserver(itinerary.MultiObserver{
		itinerary.LogObserver{},
		telemetry.MetricsObserver{},
	}))
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	logger.Info().Str("version", version.Version).Msg("itinerary clock starting")

	tracerProvider, err := telemetry.InitTracer(context.Background(), telemetry.TracerConfig{
		ServiceName:    "itinerary-clock",
		ServiceVersion: version.Version,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.TracingEnabled,
		SampleRate:     cfg.TracingSampleRate,
	}, logger)
	if err != nil {
		return fmt.Errorf("initialize tracer: %w", err)
	}

	srv := server.New(cfg, newCalculator(), logger)
	srv.DeferClose(func() error {
		return tracerProvider.Shutdown(context.Background())
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("http server: %w", err)
	}

	logger.Info().Msg("itinerary clock stopped")
	return nil
}
