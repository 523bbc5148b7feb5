package storage_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/pagelab/pagelab/internal/config"
	"github.com/pagelab/pagelab/internal/storage"
)

func newSystem(t *testing.T) storage.System {
	t.Helper()

	cfg := &config.StorageConfig{BasePath: t.TempDir()}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sys, err := storage.New(cfg, logger)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	return sys
}

func TestStoreAndRetrieve(t *testing.T) {
	sys := newSystem(t)
	ctx := context.Background()
	data := []byte("%PDF-1.7 payload")

	if err := sys.Store(ctx, "documents/abc/report.pdf", data); err != nil {
		t.Fatalf("store: %v", err)
	}

	got, err := sys.Retrieve(ctx, "documents/abc/report.pdf")
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("retrieved bytes differ: got %q, want %q", got, data)
	}
}

func TestStoreOverwrites(t *testing.T) {
	sys := newSystem(t)
	ctx := context.Background()

	if err := sys.Store(ctx, "doc.pdf", []byte("first")); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := sys.Store(ctx, "doc.pdf", []byte("second")); err != nil {
		t.Fatalf("store: %v", err)
	}

	got, err := sys.Retrieve(ctx, "doc.pdf")
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("got %q, want %q", got, "second")
	}
}

func TestRetrieveMissingKey(t *testing.T) {
	sys := newSystem(t)

	_, err := sys.Retrieve(context.Background(), "missing.pdf")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	sys := newSystem(t)
	ctx := context.Background()

	if err := sys.Store(ctx, "documents/xyz/doc.pdf", []byte("data")); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := sys.Delete(ctx, "documents/xyz/doc.pdf"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := sys.Retrieve(ctx, "documents/xyz/doc.pdf"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting again is not an error.
	if err := sys.Delete(ctx, "documents/xyz/doc.pdf"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestDeletePrunesEmptyDirectory(t *testing.T) {
	base := t.TempDir()
	cfg := &config.StorageConfig{BasePath: base}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sys, err := storage.New(cfg, logger)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := sys.Store(ctx, "documents/only/doc.pdf", []byte("data")); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := sys.Delete(ctx, "documents/only/doc.pdf"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := os.Stat(filepath.Join(base, "documents", "only")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected empty key directory to be pruned, stat err: %v", err)
	}
}

func TestInvalidKeys(t *testing.T) {
	sys := newSystem(t)
	ctx := context.Background()

	tests := []struct {
		name string
		key  string
	}{
		{"empty key", ""},
		{"parent traversal", "../escape.pdf"},
		{"nested traversal", "documents/../../escape.pdf"},
		{"absolute path", "/etc/passwd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := sys.Store(ctx, tt.key, []byte("data")); !errors.Is(err, storage.ErrInvalidKey) {
				t.Errorf("store: expected ErrInvalidKey, got %v", err)
			}
			if _, err := sys.Retrieve(ctx, tt.key); !errors.Is(err, storage.ErrInvalidKey) {
				t.Errorf("retrieve: expected ErrInvalidKey, got %v", err)
			}
			if err := sys.Delete(ctx, tt.key); !errors.Is(err, storage.ErrInvalidKey) {
				t.Errorf("delete: expected ErrInvalidKey, got %v", err)
			}
		})
	}
}
