package document

import "time"

// PresenceRecord is the last known position of a user inside a room. At
// most one record exists per (user, room) pair, and records untouched
// for PresenceTTL are evicted on every presence write.
type PresenceRecord struct {
	UserID    string    `json:"user_id"`
	Room      string    `json:"room"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PresenceFor returns the record for the (user, room) pair, or nil.
func (d *Document) PresenceFor(userID, room string) *PresenceRecord {
	for _, p := range d.Presence {
		if p.UserID == userID && p.Room == room {
			return p
		}
	}
	return nil
}

// RemovePresence drops any record for the (user, room) pair.
func (d *Document) RemovePresence(userID, room string) {
	kept := d.Presence[:0]
	for _, p := range d.Presence {
		if p.UserID == userID && p.Room == room {
			continue
		}
		kept = append(kept, p)
	}
	d.Presence = kept
}

// SweepPresence evicts every record older than ttl relative to now and
// returns the number evicted.
func (d *Document) SweepPresence(now time.Time, ttl time.Duration) int {
	cutoff := now.Add(-ttl)
	kept := d.Presence[:0]
	evicted := 0
	for _, p := range d.Presence {
		if p.UpdatedAt.Before(cutoff) {
			evicted++
			continue
		}
		kept = append(kept, p)
	}
	d.Presence = kept
	return evicted
}
