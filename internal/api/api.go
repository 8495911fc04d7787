/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/friendsincode/itinerary_clock/internal/batch"
	"github.com/friendsincode/itinerary_clock/internal/itinerary"
)

// API exposes the itinerary calculator over HTTP.
type API struct {
	calc          *itinerary.Calculator
	maxBatchBytes int64
	logger        zerolog.Logger
}

// New creates the API handler set.
func New(calc *itinerary.Calculator, maxBatchBytes int64, logger zerolog.Logger) *API {
	return &API{
		calc:          calc,
		maxBatchBytes: maxBatchBytes,
		logger:        logger.With().Str("component", "api").Logger(),
	}
}

// Routes mounts the API under /api/v1.
func (a *API) Routes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", a.handleHealth)

		r.Route("/itineraries", func(r chi.Router) {
			r.Post("/air-duration", a.handleCompute(itinerary.OpAirDuration))
			r.Post("/span-duration", a.handleCompute(itinerary.OpSpanDuration))
		})
	})
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type computeResponse struct {
	batch.Output
	RequestID string `json:"request_id,omitempty"`
}

func (a *API) handleCompute(op itinerary.Operation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, a.maxBatchBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge, "batch_too_large")
				return
			}
			writeError(w, http.StatusBadRequest, "read_failed")
			return
		}

		req, err := batch.DecodeBytes(data)
		if errors.Is(err, batch.ErrEmptyDocument) {
			writeError(w, http.StatusBadRequest, "empty_batch")
			return
		}
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json")
			return
		}

		res, err := a.calc.Run(r.Context(), op, req.Itineraries, req.Airports, req.Legs)
		if err != nil {
			a.logger.Error().Err(err).Str("operation", string(op)).Msg("aggregation failed")
			writeError(w, http.StatusInternalServerError, "aggregation_failed")
			return
		}

		a.logger.Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("batch_id", res.BatchID).
			Int("itineraries", len(req.Itineraries)).
			Msg("batch computed")

		writeJSON(w, http.StatusOK, computeResponse{
			Output:    batch.NewOutput(res),
			RequestID: middleware.GetReqID(r.Context()),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
