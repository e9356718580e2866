package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/pixil98/go-forge/internal/document"
	"github.com/pixil98/go-forge/internal/storage"
)

const (
	DefaultConflictRetries = 3
	DefaultRetryBackoff    = 100 * time.Millisecond

	eventSubjectPrefix = "forge.mutations."
)

// Mutator transforms a private copy of the document and returns an
// operation result. It must be pure: no I/O, and a returned error means
// the document copy is discarded unwritten. Purity is what makes it
// safe to re-run a mutator against freshly loaded state after a
// conflict.
type Mutator func(doc *document.Document) (any, error)

// Publisher receives a JSON event after every successful mutation.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Event describes one applied mutation.
type Event struct {
	Op       string    `json:"op"`
	Revision string    `json:"revision,omitempty"`
	At       time.Time `json:"at"`
}

// Store is the single entry point for document mutations. It wraps
// load -> mutate copy -> persist as one unit and guarantees at most one
// in-flight persist per instance: concurrent Mutate calls queue on the
// mutex and each sees the result of the previous one.
type Store struct {
	backend storage.Backend
	events  Publisher

	attempts int
	backoff  time.Duration

	mu sync.Mutex
}

type StoreOpt func(*Store)

// WithPublisher wires an event publisher for applied mutations.
func WithPublisher(p Publisher) StoreOpt {
	return func(s *Store) {
		s.events = p
	}
}

// WithConflictRetries sets how many whole load-mutate-save attempts are
// made before a conflict is surfaced to the caller.
func WithConflictRetries(n int) StoreOpt {
	return func(s *Store) {
		s.attempts = n
	}
}

// WithRetryBackoff sets the base delay between conflict retries.
func WithRetryBackoff(d time.Duration) StoreOpt {
	return func(s *Store) {
		s.backoff = d
	}
}

func New(backend storage.Backend, opts ...StoreOpt) *Store {
	s := &Store{
		backend:  backend,
		attempts: DefaultConflictRetries,
		backoff:  DefaultRetryBackoff,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Mutate loads the current document, runs fn on a private copy, and
// persists the copy only if fn succeeds. The op name doubles as the
// commit message for backends that record one.
//
// Mutator failures never write and never retry. A save that loses an
// optimistic-concurrency race is retried from a fresh load up to the
// configured attempt count; backend availability, auth, and corruption
// failures surface immediately.
func (s *Store) Mutate(ctx context.Context, op string, fn Mutator) (*document.Document, any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var lastErr error
	for attempt := 0; attempt < s.attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, nil, Unavailablef("%s: %v", op, ctx.Err())
			case <-time.After(s.backoff * time.Duration(attempt)):
			}
		}

		doc, base, err := s.backend.Load(ctx)
		if err != nil {
			return nil, nil, backendError(op, err)
		}

		next := doc.Clone()
		result, err := fn(next)
		if errors.Is(err, ErrNoChange) {
			return doc, result, nil
		}
		if err != nil {
			return nil, nil, err
		}

		revision, err := s.backend.Save(ctx, next, base, op)
		if err != nil {
			if errors.Is(err, storage.ErrConflict) {
				lastErr = err
				slog.DebugContext(ctx, "mutation lost revision race, retrying", "op", op, "attempt", attempt+1)
				continue
			}
			return nil, nil, backendError(op, err)
		}

		s.publish(ctx, op, revision)
		return next, result, nil
	}

	return nil, nil, Conflictf("%s: gave up after %d attempts: %v", op, s.attempts, lastErr)
}

// Snapshot returns the current document for read-only use. Callers must
// not feed a snapshot back into a mutation; mutators always work from a
// fresh load.
func (s *Store) Snapshot(ctx context.Context) (*document.Document, error) {
	doc, _, err := s.backend.Load(ctx)
	if err != nil {
		return nil, backendError("snapshot", err)
	}
	return doc, nil
}

func (s *Store) publish(ctx context.Context, op string, revision storage.Version) {
	if s.events == nil {
		return
	}

	data, err := json.Marshal(Event{
		Op:       op,
		Revision: string(revision),
		At:       time.Now().UTC(),
	})
	if err != nil {
		slog.WarnContext(ctx, "marshalling mutation event", "op", op, "error", err)
		return
	}

	// Best effort: a dropped event never fails the mutation.
	if err := s.events.Publish(eventSubjectPrefix+op, data); err != nil {
		slog.WarnContext(ctx, "publishing mutation event", "op", op, "error", err)
	}
}

func backendError(op string, err error) *Error {
	switch {
	case errors.Is(err, storage.ErrCorrupt):
		return Corruptf("%s: %v", op, err)
	case errors.Is(err, storage.ErrConflict):
		return Conflictf("%s: %v", op, err)
	default:
		// Auth and transport failures are both environment problems
		// from the caller's point of view.
		return Unavailablef("%s: %v", op, err)
	}
}

// Apply runs a typed mutator through the store and returns its result.
func Apply[T any](ctx context.Context, s *Store, op string, fn func(doc *document.Document) (T, error)) (T, error) {
	_, result, err := s.Mutate(ctx, op, func(doc *document.Document) (any, error) {
		return fn(doc)
	})
	if err != nil {
		var zero T
		return zero, err
	}

	out, ok := result.(T)
	if !ok {
		var zero T
		return zero, nil
	}
	return out, nil
}
