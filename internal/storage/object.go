/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// ObjectStore abstracts object storage operations.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("object not found")

// StdioKey addresses standard input/output.
const StdioKey = "-"

// Locate picks a store for uri and returns it with the key inside that store.
//
//	s3://bucket/path/to/key  -> S3Store
//	-                        -> StdioStore
//	anything else            -> FilesystemStore rooted at the working directory
func Locate(ctx context.Context, uri string, s3cfg S3Config, logger zerolog.Logger) (ObjectStore, string, error) {
	switch {
	case uri == "":
		return nil, "", errors.New("empty object uri")
	case uri == StdioKey:
		return NewStdioStore(), StdioKey, nil
	case strings.HasPrefix(uri, "s3://"):
		bucket, key, ok := strings.Cut(strings.TrimPrefix(uri, "s3://"), "/")
		if !ok || bucket == "" || key == "" {
			return nil, "", fmt.Errorf("invalid s3 uri %q: want s3://bucket/key", uri)
		}
		s3cfg.Bucket = bucket
		store, err := NewS3Store(ctx, s3cfg, logger)
		if err != nil {
			return nil, "", err
		}
		return store, key, nil
	default:
		return NewFilesystemStore("", logger), uri, nil
	}
}
