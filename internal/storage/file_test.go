package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pixil98/go-forge/internal/document"
	"github.com/pixil98/go-testutil"
)

func TestFileBackend_SeedsOnFirstLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forge.json")
	b := NewFileBackend(path)

	doc, ver, err := b.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "version", ver, Version(""))
	testutil.AssertEqual(t, "users", len(doc.Users), 0)
	if len(doc.Marketplace) == 0 {
		t.Error("expected seeded marketplace")
	}

	// The seed must have been persisted
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected seed file on disk: %v", err)
	}
}

func TestFileBackend_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forge.json")
	b := NewFileBackend(path)
	ctx := context.Background()

	doc := document.New()
	doc.Users = append(doc.Users, &document.User{
		ID:        "u1",
		Username:  "Alice",
		Balance:   1000,
		Friends:   []string{},
		Inventory: []string{},
		CreatedAt: time.Now().UTC(),
	})

	if _, err := b.Save(ctx, doc, "", "create alice"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	back, _, err := b.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "users", len(back.Users), 1)
	testutil.AssertEqual(t, "username", back.Users[0].Username, "Alice")
	testutil.AssertEqual(t, "balance", back.Users[0].Balance, 1000)
}

func TestFileBackend_CorruptFileIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forge.json")
	if err := os.WriteFile(path, []byte(`{not json`), 0644); err != nil {
		t.Fatalf("writing corrupt file: %v", err)
	}

	b := NewFileBackend(path)
	_, _, err := b.Load(context.Background())
	if err == nil {
		t.Fatal("expected error for corrupt file")
	}
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got: %v", err)
	}
}

func TestFileBackend_SaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "forge.json")
	b := NewFileBackend(path)

	if _, err := b.Save(context.Background(), document.New(), "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "file count", len(entries), 1)
	testutil.AssertEqual(t, "file name", entries[0].Name(), "forge.json")

	// On-disk content is the plain document schema
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var doc document.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("on-disk content does not parse as a document: %v", err)
	}
}
