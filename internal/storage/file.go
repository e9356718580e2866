package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/pixil98/go-forge/internal/document"
)

// FileBackend persists the document as a single JSON file, rewritten
// wholesale on every save. It performs no version check of its own: the
// single-writer discipline is enforced above it by the store façade.
type FileBackend struct {
	path string
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (b *FileBackend) Load(ctx context.Context) (*document.Document, Version, error) {
	data, err := os.ReadFile(b.path)
	if os.IsNotExist(err) {
		// First boot: seed the document and persist it once so the
		// file exists for anyone inspecting the data directory.
		doc := document.New()
		if _, err := b.Save(ctx, doc, "", "seed document"); err != nil {
			return nil, "", fmt.Errorf("seeding document file: %w", err)
		}
		return doc, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w: %v", b.path, ErrUnavailable, err)
	}

	var doc document.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, "", fmt.Errorf("parsing %s: %w: %v", b.path, ErrCorrupt, err)
	}

	return &doc, "", nil
}

func (b *FileBackend) Save(_ context.Context, doc *document.Document, _ Version, _ string) (Version, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshalling document: %w", err)
	}

	if err := atomicWrite(b.path, data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w: %v", b.path, ErrUnavailable, err)
	}

	return "", nil
}

// atomicWrite writes data to a temp file then renames it to the target path.
// This prevents partial or empty files if the process is interrupted.
func atomicWrite(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		if removeErr := os.Remove(tmp); removeErr != nil {
			slog.Warn("failed to remove temp file after rename failure", "path", tmp, "error", removeErr)
		}
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
