/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures zerolog for the process. Output goes to stderr so that
// results written to stdout stay machine-readable.
func Setup(environment, level string) zerolog.Logger {
	return SetupWithWriter(environment, level, os.Stderr)
}

// SetupWithWriter configures zerolog to write to w. Development gets a
// human-readable console writer at debug level; every other environment
// gets JSON at info level. A non-empty level overrides either default.
func SetupWithWriter(environment, level string, w io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	lvl := zerolog.InfoLevel
	var writer io.Writer = w
	if environment == "development" {
		lvl = zerolog.DebugLevel
		writer = zerolog.ConsoleWriter{Out: w}
	}
	if level != "" {
		if parsed, err := zerolog.ParseLevel(level); err == nil {
			lvl = parsed
		}
	}

	logger := zerolog.New(writer).With().Timestamp().Logger().Level(lvl)
	log.Logger = logger
	return logger
}
