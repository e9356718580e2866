package storage

import "errors"

var (
	// ErrConflict reports that a Save lost an optimistic-concurrency
	// race: the stored revision no longer matches the base token.
	ErrConflict = errors.New("document revision conflict")

	// ErrCorrupt reports that stored content failed to parse. This is
	// fatal: it signals corruption, not a transient condition.
	ErrCorrupt = errors.New("document content corrupt")

	// ErrUnavailable reports an I/O or transport failure talking to
	// the backing store.
	ErrUnavailable = errors.New("document backend unavailable")

	// ErrAuth reports missing or rejected credentials. Never retried.
	ErrAuth = errors.New("document backend authentication failed")
)
