package mutators

import (
	"context"
	"log/slog"
	"time"

	"github.com/pixil98/go-forge/internal/store"
)

// Janitor drains stale presence records on a timer so idle rooms empty
// out even when no presence writes arrive to trigger the sweep.
type Janitor struct {
	store *store.Store
}

func NewJanitor(s *store.Store) *Janitor {
	return &Janitor{store: s}
}

func (j *Janitor) Tick(ctx context.Context) error {
	evicted, err := store.Apply(ctx, j.store, "presence.sweep", SweepPresence(time.Now()))
	if err != nil {
		return err
	}

	if evicted > 0 {
		slog.InfoContext(ctx, "evicted stale presence records", "count", evicted)
	}

	return nil
}
