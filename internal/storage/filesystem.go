/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// FilesystemStore implements ObjectStore on the local filesystem.
type FilesystemStore struct {
	rootDir string
	logger  zerolog.Logger
}

// NewFilesystemStore creates a store rooted at rootDir. An empty root resolves
// keys against the working directory and allows absolute paths.
func NewFilesystemStore(rootDir string, logger zerolog.Logger) *FilesystemStore {
	return &FilesystemStore{
		rootDir: rootDir,
		logger:  logger.With().Str("component", "fs-store").Logger(),
	}
}

func (fs *FilesystemStore) path(key string) (string, error) {
	if fs.rootDir == "" {
		return filepath.Clean(key), nil
	}
	full := filepath.Join(fs.rootDir, key)
	rel, err := filepath.Rel(fs.rootDir, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("key %q escapes store root", key)
	}
	return full, nil
}

// Get reads the file stored under key.
func (fs *FilesystemStore) Get(ctx context.Context, key string) ([]byte, error) {
	fullPath, err := fs.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(fullPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", fullPath, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	fs.logger.Debug().Str("path", fullPath).Int("bytes", len(data)).Msg("filesystem storage: file read")
	return data, nil
}

// Put writes data under key, creating parent directories.
func (fs *FilesystemStore) Put(ctx context.Context, key string, data []byte) error {
	fullPath, err := fs.path(key)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(fullPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directories: %w", err)
		}
	}
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	fs.logger.Debug().Str("path", fullPath).Int("bytes", len(data)).Msg("filesystem storage: file written")
	return nil
}

// StdioStore reads from standard input and writes to standard output. Keys
// are ignored.
type StdioStore struct {
	In  io.Reader
	Out io.Writer
}

// NewStdioStore binds the process stdin and stdout.
func NewStdioStore() *StdioStore {
	return &StdioStore{In: os.Stdin, Out: os.Stdout}
}

func (s *StdioStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := io.ReadAll(s.In)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return data, nil
}

func (s *StdioStore) Put(ctx context.Context, key string, data []byte) error {
	if _, err := s.Out.Write(data); err != nil {
		return fmt.Errorf("write stdout: %w", err)
	}
	return nil
}
