/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/friendsincode/itinerary_clock/internal/storage"
)

// Config covers process level configuration read from environment variables.
type Config struct {
	Environment    string
	LogLevel       string // overrides the environment default when set
	HTTPBind       string
	HTTPPort       int
	MetricsBind    string // empty serves /metrics on the API listener only
	MaxBatchBytes  int64
	RequestTimeout time.Duration

	// Tracing configuration
	TracingEnabled    bool
	OTLPEndpoint      string
	TracingSampleRate float64

	// S3 object storage for batch input/output
	S3Region          string
	S3Endpoint        string // For S3-compatible services (MinIO, Spaces, etc.)
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3UsePathStyle    bool
}

// Load reads environment variables, applies defaults, and validates the result.
func Load() (*Config, error) {
	cfg := &Config{
		Environment:    getEnvAny([]string{"ITINERARY_ENV"}, "development"),
		LogLevel:       getEnvAny([]string{"ITINERARY_LOG_LEVEL"}, ""),
		HTTPBind:       getEnvAny([]string{"ITINERARY_HTTP_BIND"}, "0.0.0.0"),
		HTTPPort:       getEnvIntAny([]string{"ITINERARY_HTTP_PORT", "PORT"}, 8080),
		MetricsBind:    getEnvAny([]string{"ITINERARY_METRICS_BIND"}, ""),
		MaxBatchBytes:  int64(getEnvIntAny([]string{"ITINERARY_MAX_BATCH_MB"}, 32)) * 1024 * 1024,
		RequestTimeout: time.Duration(getEnvIntAny([]string{"ITINERARY_REQUEST_TIMEOUT_SECONDS"}, 60)) * time.Second,

		TracingEnabled:    getEnvBoolAny([]string{"ITINERARY_TRACING_ENABLED"}, false),
		OTLPEndpoint:      getEnvAny([]string{"ITINERARY_OTLP_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT"}, "localhost:4317"),
		TracingSampleRate: getEnvFloatAny([]string{"ITINERARY_TRACING_SAMPLE_RATE"}, 1.0),

		S3Region:          getEnvAny([]string{"ITINERARY_S3_REGION", "AWS_REGION"}, "us-east-1"),
		S3Endpoint:        getEnvAny([]string{"ITINERARY_S3_ENDPOINT", "S3_ENDPOINT"}, ""),
		S3AccessKeyID:     getEnvAny([]string{"ITINERARY_S3_ACCESS_KEY_ID", "AWS_ACCESS_KEY_ID"}, ""),
		S3SecretAccessKey: getEnvAny([]string{"ITINERARY_S3_SECRET_ACCESS_KEY", "AWS_SECRET_ACCESS_KEY"}, ""),
		S3UsePathStyle:    getEnvBoolAny([]string{"ITINERARY_S3_USE_PATH_STYLE", "S3_USE_PATH_STYLE"}, false),
	}

	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("ITINERARY_HTTP_PORT out of range: %d", cfg.HTTPPort)
	}
	if cfg.MaxBatchBytes <= 0 {
		return nil, fmt.Errorf("ITINERARY_MAX_BATCH_MB must be positive")
	}
	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("ITINERARY_REQUEST_TIMEOUT_SECONDS must be positive")
	}
	if cfg.TracingSampleRate < 0 || cfg.TracingSampleRate > 1 {
		return nil, fmt.Errorf("ITINERARY_TRACING_SAMPLE_RATE must be between 0 and 1, got %v", cfg.TracingSampleRate)
	}
	if (cfg.S3AccessKeyID == "") != (cfg.S3SecretAccessKey == "") {
		return nil, fmt.Errorf("ITINERARY_S3_ACCESS_KEY_ID and ITINERARY_S3_SECRET_ACCESS_KEY must be set together")
	}

	return cfg, nil
}

// HTTPAddr is the API listen address.
func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.HTTPBind, c.HTTPPort)
}

// S3 returns the object storage settings without a bucket; the bucket comes
// from each s3:// uri.
func (c *Config) S3() storage.S3Config {
	return storage.S3Config{
		Region:          c.S3Region,
		Endpoint:        c.S3Endpoint,
		AccessKeyID:     c.S3AccessKeyID,
		SecretAccessKey: c.S3SecretAccessKey,
		UsePathStyle:    c.S3UsePathStyle,
	}
}

// getEnvAny returns the first non-empty environment variable value from keys, or def if none set.
func getEnvAny(keys []string, def string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return def
}

// getEnvIntAny returns the first set integer environment variable value from keys, or def.
func getEnvIntAny(keys []string, def int) int {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			if parsed, err := strconv.Atoi(v); err == nil {
				return parsed
			}
		}
	}
	return def
}

// getEnvBoolAny returns the first set boolean environment variable value from keys, or def.
func getEnvBoolAny(keys []string, def bool) bool {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			v = strings.ToLower(strings.TrimSpace(v))
			if v == "true" || v == "1" || v == "yes" {
				return true
			}
			if v == "false" || v == "0" || v == "no" {
				return false
			}
		}
	}
	return def
}

// getEnvFloatAny returns the first set float environment variable value from keys, or def.
func getEnvFloatAny(keys []string, def float64) float64 {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				return parsed
			}
		}
	}
	return def
}
