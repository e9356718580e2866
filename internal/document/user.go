package document

import (
	"slices"
	"strings"
	"time"
)

// User is a registered platform account.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`

	// Balance is the user's coin balance. Mutators must never let it
	// drop below zero.
	Balance int `json:"balance"`
	XP      int `json:"xp"`

	// Friends holds the ids of befriended users. Friendship is
	// symmetric: if a lists b, b lists a.
	Friends []string `json:"friends"`

	// Inventory holds owned marketplace item ids, no duplicates.
	Inventory []string `json:"inventory"`

	CreatedAt time.Time `json:"created_at"`
}

// MatchUsername reports whether name matches this user's username,
// case-insensitively.
func (u *User) MatchUsername(name string) bool {
	return strings.EqualFold(u.Username, name)
}

// HasFriend reports whether id is in the user's friend set.
func (u *User) HasFriend(id string) bool {
	return slices.Contains(u.Friends, id)
}

// OwnsItem reports whether the item id is already in the user's inventory.
func (u *User) OwnsItem(itemID string) bool {
	return slices.Contains(u.Inventory, itemID)
}

// UserByID returns the user with the given id, or nil.
func (d *Document) UserByID(id string) *User {
	for _, u := range d.Users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// UserByUsername returns the user with the given username
// (case-insensitive), or nil.
func (d *Document) UserByUsername(name string) *User {
	for _, u := range d.Users {
		if u.MatchUsername(name) {
			return u
		}
	}
	return nil
}
