package prompt

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeDoc(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write document: %v", err)
	}
}

func TestFileStore_Fetch(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "host-guidelines.md", "always respond within 24h")
	writeDoc(t, dir, "response-examples.txt", "example one")
	writeDoc(t, dir, "ignored.json", "{}")

	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("failed to create file store: %v", err)
	}

	body, err := store.Fetch(context.Background(), "host-guidelines")
	if err != nil {
		t.Fatalf("expected fetch to succeed, got %v", err)
	}
	if body != "always respond within 24h" {
		t.Errorf("unexpected body %q", body)
	}

	if _, err := store.Fetch(context.Background(), "response-examples"); err != nil {
		t.Errorf("expected .txt fallback to be loaded, got %v", err)
	}

	_, err = store.Fetch(context.Background(), "ignored")
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Errorf("expected FetchError for non-document extension, got %T", err)
	}
}

func TestFileStore_WatchReloads(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "host-guidelines.md", "v1")

	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("failed to create file store: %v", err)
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := store.Watch(ctx); err != nil {
		t.Fatalf("failed to start watcher: %v", err)
	}

	writeDoc(t, dir, "host-guidelines.md", "v2")

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		body, err := store.Fetch(context.Background(), "host-guidelines")
		if err == nil && body == "v2" {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("expected updated document content after reload")
}

func TestNewFileStore_MissingDir(t *testing.T) {
	if _, err := NewFileStore(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing directory")
	}
}
