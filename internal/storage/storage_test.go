/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"
)

func TestFilesystemStoreRoundTrip(t *testing.T) {
	root := t.TempDir()
	store := NewFilesystemStore(root, zerolog.Nop())
	ctx := context.Background()

	if err := store.Put(ctx, "out/results.json", []byte(`{"results":[]}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	data, err := store.Get(ctx, "out/results.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(data) != `{"results":[]}` {
		t.Fatalf("data = %q", data)
	}
}

func TestFilesystemStoreNotFound(t *testing.T) {
	store := NewFilesystemStore(t.TempDir(), zerolog.Nop())
	_, err := store.Get(context.Background(), "missing.yaml")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestFilesystemStoreRejectsEscapingKeys(t *testing.T) {
	store := NewFilesystemStore(t.TempDir(), zerolog.Nop())
	if _, err := store.Get(context.Background(), "../etc/passwd"); err == nil {
		t.Fatal("expected error for key outside root")
	}
}

func TestFilesystemStoreWithoutRootAcceptsAbsolutePaths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.yaml")
	store := NewFilesystemStore("", zerolog.Nop())
	ctx := context.Background()

	if err := store.Put(ctx, path, []byte("itineraries: []")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := store.Get(ctx, path); err != nil {
		t.Fatalf("get: %v", err)
	}
}

func TestStdioStore(t *testing.T) {
	var out bytes.Buffer
	store := &StdioStore{In: strings.NewReader("legs: []"), Out: &out}
	ctx := context.Background()

	data, err := store.Get(ctx, StdioKey)
	if err != nil || string(data) != "legs: []" {
		t.Fatalf("get = %q, %v", data, err)
	}
	if err := store.Put(ctx, StdioKey, []byte("ok")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if out.String() != "ok" {
		t.Fatalf("stdout = %q", out.String())
	}
}

func TestLocate(t *testing.T) {
	ctx := context.Background()

	store, key, err := Locate(ctx, "-", S3Config{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("locate stdio: %v", err)
	}
	if _, ok := store.(*StdioStore); !ok || key != StdioKey {
		t.Fatalf("stdio locate = %T, %q", store, key)
	}

	store, key, err = Locate(ctx, "data/batch.yaml", S3Config{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("locate file: %v", err)
	}
	if _, ok := store.(*FilesystemStore); !ok || key != "data/batch.yaml" {
		t.Fatalf("file locate = %T, %q", store, key)
	}

	for _, bad := range []string{"", "s3://", "s3://bucket", "s3:///key"} {
		if _, _, err := Locate(ctx, bad, S3Config{}, zerolog.Nop()); err == nil {
			t.Fatalf("Locate(%q) expected error", bad)
		}
	}
}

type fakeS3 struct {
	objects map[string][]byte
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*in.Bucket+"/"+*in.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func TestS3StoreRoundTrip(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}}
	store := newS3Store(fake, "itineraries", zerolog.Nop())
	ctx := context.Background()

	if err := store.Put(ctx, "in/batch.json", []byte(`{"legs":[]}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	data, err := store.Get(ctx, "in/batch.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(data) != `{"legs":[]}` {
		t.Fatalf("data = %q", data)
	}

	if _, err := store.Get(ctx, "in/missing.json"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestContentTypeFor(t *testing.T) {
	if got := contentTypeFor([]byte("  {\"a\":1}")); got != "application/json" {
		t.Fatalf("json content type = %q", got)
	}
	if got := contentTypeFor([]byte("results: [1]")); got != "application/yaml" {
		t.Fatalf("yaml content type = %q", got)
	}
}
