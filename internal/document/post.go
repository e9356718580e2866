package document

import "time"

// Post is a feed entry authored by a user. Posts are kept newest-first.
type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}

// PostByID returns the post with the given id, or nil.
func (d *Document) PostByID(id string) *Post {
	for _, p := range d.Posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}
