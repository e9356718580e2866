package document

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-errors"
)

// Validate runs the full invariant pass over the document and returns
// every violation found, joined into a single error. Mutators are
// expected to preserve validity by construction, so this is a test and
// debugging aid rather than a hot-path check.
func (d *Document) Validate() error {
	el := errors.NewErrorList()

	userIDs := map[string]bool{}
	usernames := map[string]bool{}
	for _, u := range d.Users {
		if u.ID == "" {
			el.Add(fmt.Errorf("user %q: id must be set", u.Username))
		}
		if userIDs[u.ID] {
			el.Add(fmt.Errorf("duplicate user id %q", u.ID))
		}
		userIDs[u.ID] = true

		lower := strings.ToLower(u.Username)
		if usernames[lower] {
			el.Add(fmt.Errorf("duplicate username %q", u.Username))
		}
		usernames[lower] = true

		if u.Balance < 0 {
			el.Add(fmt.Errorf("user %q: negative balance %d", u.Username, u.Balance))
		}
		if u.XP < 0 {
			el.Add(fmt.Errorf("user %q: negative xp %d", u.Username, u.XP))
		}

		seen := map[string]bool{}
		for _, item := range u.Inventory {
			if seen[item] {
				el.Add(fmt.Errorf("user %q: duplicate inventory item %q", u.Username, item))
			}
			seen[item] = true
		}
	}

	for _, u := range d.Users {
		for _, fid := range u.Friends {
			friend := d.UserByID(fid)
			if friend == nil {
				el.Add(fmt.Errorf("user %q: unknown friend id %q", u.Username, fid))
				continue
			}
			if !friend.HasFriend(u.ID) {
				el.Add(fmt.Errorf("friendship %q -> %q is not symmetric", u.Username, friend.Username))
			}
		}
	}

	worldIDs := map[string]bool{}
	for _, w := range d.Worlds {
		if worldIDs[w.ID] {
			el.Add(fmt.Errorf("duplicate world id %q", w.ID))
		}
		worldIDs[w.ID] = true

		if !userIDs[w.OwnerID] {
			el.Add(fmt.Errorf("world %q: unknown owner %q", w.ID, w.OwnerID))
		}
		if len(w.Tags) > MaxWorldTags {
			el.Add(fmt.Errorf("world %q: %d tags exceeds limit of %d", w.ID, len(w.Tags), MaxWorldTags))
		}
		if w.ActivePlayers < 0 || w.Likes < 0 || w.Visits < 0 {
			el.Add(fmt.Errorf("world %q: negative counter", w.ID))
		}
	}

	for _, p := range d.Posts {
		if !userIDs[p.UserID] {
			el.Add(fmt.Errorf("post %q: unknown author %q", p.ID, p.UserID))
		}
		if p.Likes < 0 {
			el.Add(fmt.Errorf("post %q: negative likes", p.ID))
		}
	}

	pairs := map[string]bool{}
	for _, r := range d.FriendRequests {
		if r.FromUserID == r.ToUserID {
			el.Add(fmt.Errorf("friend request %q: self request", r.ID))
		}
		key := r.FromUserID + "\x00" + r.ToUserID
		if pairs[key] {
			el.Add(fmt.Errorf("duplicate pending friend request %q -> %q", r.FromUserID, r.ToUserID))
		}
		pairs[key] = true
	}

	for _, m := range d.Marketplace {
		if m.Price < 0 {
			el.Add(fmt.Errorf("marketplace item %q: negative price", m.ID))
		}
	}

	rooms := map[string]int{}
	for _, m := range d.Chat {
		rooms[m.Room]++
	}
	for room, count := range rooms {
		if count > ChatHistoryLimit {
			el.Add(fmt.Errorf("room %q: %d chat messages exceeds limit of %d", room, count, ChatHistoryLimit))
		}
	}

	present := map[string]bool{}
	for _, p := range d.Presence {
		key := p.UserID + "\x00" + p.Room
		if present[key] {
			el.Add(fmt.Errorf("duplicate presence record for user %q in room %q", p.UserID, p.Room))
		}
		present[key] = true
	}

	return el.Err()
}
