package mutators

import (
	"strings"
	"time"

	"github.com/pixil98/go-forge/internal/document"
	"github.com/pixil98/go-forge/internal/store"
)

// UpdatePresence replaces the user's record for the room and then
// sweeps every record past the TTL. The sweep runs on every presence
// write, not just inserts, so stale records drain under any traffic.
func UpdatePresence(userID, room string, x, y float64, now time.Time) func(*document.Document) (*document.PresenceRecord, error) {
	return func(doc *document.Document) (*document.PresenceRecord, error) {
		user := doc.UserByID(userID)
		if user == nil {
			return nil, store.NotFoundf("user %q not found", userID)
		}
		if strings.TrimSpace(room) == "" {
			return nil, store.InvalidInputf("presence room is required")
		}

		doc.RemovePresence(user.ID, room)
		record := &document.PresenceRecord{
			UserID:    user.ID,
			Room:      room,
			X:         x,
			Y:         y,
			UpdatedAt: now,
		}
		doc.Presence = append(doc.Presence, record)

		doc.SweepPresence(now, document.PresenceTTL)

		return record, nil
	}
}

// SweepPresence evicts presence records past the TTL without touching
// anything else. Returns the number evicted; an empty sweep skips the
// backend write entirely.
func SweepPresence(now time.Time) func(*document.Document) (int, error) {
	return func(doc *document.Document) (int, error) {
		evicted := doc.SweepPresence(now, document.PresenceTTL)
		if evicted == 0 {
			return 0, store.ErrNoChange
		}
		return evicted, nil
	}
}
