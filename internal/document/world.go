package document

import "time"

// World is a published user creation. Worlds are kept newest-first.
type World struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
	Title   string `json:"title"`

	// Tags carries at most MaxWorldTags entries.
	Tags []string `json:"tags,omitempty"`

	ActivePlayers int `json:"active_players"`
	Likes         int `json:"likes"`
	Visits        int `json:"visits"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WorldByID returns the world with the given id, or nil.
func (d *Document) WorldByID(id string) *World {
	for _, w := range d.Worlds {
		if w.ID == id {
			return w
		}
	}
	return nil
}
