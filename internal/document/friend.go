package document

import "time"

// FriendRequest is a pending, directed friendship offer. At most one
// pending request exists per ordered (from, to) pair.
type FriendRequest struct {
	ID         string    `json:"id"`
	FromUserID string    `json:"from_user_id"`
	ToUserID   string    `json:"to_user_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// FriendRequestByID returns the request with the given id, or nil.
func (d *Document) FriendRequestByID(id string) *FriendRequest {
	for _, r := range d.FriendRequests {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// PendingFriendRequest returns the pending request for the ordered
// (from, to) pair, or nil.
func (d *Document) PendingFriendRequest(fromID, toID string) *FriendRequest {
	for _, r := range d.FriendRequests {
		if r.FromUserID == fromID && r.ToUserID == toID {
			return r
		}
	}
	return nil
}
