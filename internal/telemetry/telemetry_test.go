/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/friendsincode/itinerary_clock/internal/itinerary"
)

func TestMetricsObserverCountsOutcomes(t *testing.T) {
	resolved := ItinerariesTotal.WithLabelValues(string(itinerary.OpAirDuration), "resolved")
	unresolved := ItinerariesTotal.WithLabelValues(string(itinerary.OpAirDuration), "unresolved")
	beforeResolved := testutil.ToFloat64(resolved)
	beforeUnresolved := testutil.ToFloat64(unresolved)

	MetricsObserver{}.ItinerariesAggregated(itinerary.OpAirDuration, 5, 2)

	if got := testutil.ToFloat64(resolved) - beforeResolved; got != 3 {
		t.Fatalf("resolved delta = %v, want 3", got)
	}
	if got := testutil.ToFloat64(unresolved) - beforeUnresolved; got != 2 {
		t.Fatalf("unresolved delta = %v, want 2", got)
	}
}

func TestMetricsObserverWiresIntoCalculator(t *testing.T) {
	counter := ItinerariesTotal.WithLabelValues(string(itinerary.OpSpanDuration), "unresolved")
	before := testutil.ToFloat64(counter)

	calc := itinerary.NewCalculator(zerolog.Nop(), itinerary.WithObserver(MetricsObserver{}))
	calc.TotalDurationMin(context.Background(), []string{"", "AAABBB"}, nil, nil)

	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Fatalf("unresolved delta = %v, want 2", got)
	}
}

func TestMetricsMiddlewareUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(MetricsMiddleware)
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	counter := APIRequestsTotal.WithLabelValues(http.MethodGet, "/items/{id}", "418")
	before := testutil.ToFloat64(counter)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/items/42", nil))

	if rr.Code != http.StatusTeapot {
		t.Fatalf("status = %d, want 418", rr.Code)
	}
	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Fatalf("request counter delta = %v, want 1", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	MetricsObserver{}.LegsIngested(3)

	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rr.Body.String(), "itinerary_legs_ingested") {
		t.Fatalf("metrics output missing itinerary_legs_ingested")
	}
}

func TestInitTracerDisabled(t *testing.T) {
	tp, err := InitTracer(context.Background(), TracerConfig{Enabled: false}, zerolog.Nop())
	if err != nil {
		t.Fatalf("init tracer: %v", err)
	}
	if err := tp.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestSamplerFor(t *testing.T) {
	tests := map[float64]string{
		1:   "AlwaysOnSampler",
		0:   "AlwaysOffSampler",
		0.5: "TraceIDRatioBased{0.5}",
	}
	for rate, want := range tests {
		if got := samplerFor(rate).Description(); !strings.Contains(got, want) {
			t.Fatalf("samplerFor(%v) = %q, want it to contain %q", rate, got, want)
		}
	}
}
