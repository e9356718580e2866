package storage

import (
	"context"

	"github.com/pixil98/go-forge/internal/document"
)

// Version is an opaque revision token for a loaded document. Backends
// that support optimistic concurrency reject a Save whose base token no
// longer matches the stored revision. The zero value means "no known
// revision" (fresh store, or a backend that doesn't track versions).
type Version string

// Backend loads and persists the shared document. Implementations are
// not responsible for serializing callers; the store façade guarantees
// at most one in-flight Save per store instance.
type Backend interface {
	// Load returns the current document and its revision token. A
	// backend with no stored document yet returns a seed document.
	Load(ctx context.Context) (*document.Document, Version, error)

	// Save persists doc, which must derive from the revision named by
	// base. Returns the new revision token, or ErrConflict if the
	// stored revision has moved past base. The message describes the
	// change for backends that record one; others ignore it.
	Save(ctx context.Context, doc *document.Document, base Version, message string) (Version, error)
}
