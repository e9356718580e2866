package document

import (
	"encoding/json"
	"time"
)

const (
	// ChatHistoryLimit bounds each room's chat feed. Older messages are
	// evicted after every append.
	ChatHistoryLimit = 100

	// PresenceTTL is how long a presence record survives without an update.
	PresenceTTL = 30 * time.Second

	// StartingBalance is granted to every newly registered user.
	StartingBalance = 1000

	// PublishRewardCoins and PublishRewardXP are credited to a world's
	// owner when the world is first published.
	PublishRewardCoins = 75
	PublishRewardXP    = 35

	// MaxWorldTags caps the number of tags a world may carry.
	MaxWorldTags = 5
)

// Document is the single shared aggregate holding the whole platform state.
// It is only ever replaced wholesale through a load -> mutate -> persist
// cycle; entities reference each other by id, never by embedded pointers.
type Document struct {
	Users          []*User            `json:"users"`
	Worlds         []*World           `json:"worlds"`
	Posts          []*Post            `json:"posts"`
	FriendRequests []*FriendRequest   `json:"friend_requests"`
	Transactions   []*Transaction     `json:"transactions"`
	Marketplace    []*MarketplaceItem `json:"marketplace"`
	Chat           []*ChatMessage     `json:"chat"`
	Presence       []*PresenceRecord  `json:"presence"`

	// Extensions preserves fields written by other writers of the same
	// blob so that a round-trip through this process doesn't drop them.
	Extensions ExtensionState `json:"extensions,omitempty"`
}

// New returns a fresh document with empty collections and the seeded
// marketplace catalogue.
func New() *Document {
	return &Document{
		Users:          []*User{},
		Worlds:         []*World{},
		Posts:          []*Post{},
		FriendRequests: []*FriendRequest{},
		Transactions:   []*Transaction{},
		Marketplace:    seedMarketplace(),
		Chat:           []*ChatMessage{},
		Presence:       []*PresenceRecord{},
	}
}

// Clone returns a deep copy of the document. Mutators only ever run
// against a clone so a failed mutation can never dirty the loaded state.
func (d *Document) Clone() *Document {
	c := &Document{
		Users:          make([]*User, len(d.Users)),
		Worlds:         make([]*World, len(d.Worlds)),
		Posts:          make([]*Post, len(d.Posts)),
		FriendRequests: make([]*FriendRequest, len(d.FriendRequests)),
		Transactions:   make([]*Transaction, len(d.Transactions)),
		Marketplace:    make([]*MarketplaceItem, len(d.Marketplace)),
		Chat:           make([]*ChatMessage, len(d.Chat)),
		Presence:       make([]*PresenceRecord, len(d.Presence)),
	}

	for i, u := range d.Users {
		uc := *u
		uc.Friends = append([]string(nil), u.Friends...)
		uc.Inventory = append([]string(nil), u.Inventory...)
		c.Users[i] = &uc
	}
	for i, w := range d.Worlds {
		wc := *w
		wc.Tags = append([]string(nil), w.Tags...)
		c.Worlds[i] = &wc
	}
	for i, p := range d.Posts {
		pc := *p
		c.Posts[i] = &pc
	}
	for i, r := range d.FriendRequests {
		rc := *r
		c.FriendRequests[i] = &rc
	}
	for i, t := range d.Transactions {
		tc := *t
		c.Transactions[i] = &tc
	}
	for i, m := range d.Marketplace {
		mc := *m
		c.Marketplace[i] = &mc
	}
	for i, msg := range d.Chat {
		mc := *msg
		c.Chat[i] = &mc
	}
	for i, p := range d.Presence {
		pc := *p
		c.Presence[i] = &pc
	}

	if d.Extensions != nil {
		c.Extensions = ExtensionState{}
		for k, v := range d.Extensions {
			c.Extensions[k] = append(json.RawMessage(nil), v...)
		}
	}

	return c
}

func (d *Document) UnmarshalJSON(b []byte) error {
	type Alias Document
	if err := json.Unmarshal(b, (*Alias)(d)); err != nil {
		return err
	}
	// Collections are always non-nil so mutators can append freely.
	if d.Users == nil {
		d.Users = []*User{}
	}
	if d.Worlds == nil {
		d.Worlds = []*World{}
	}
	if d.Posts == nil {
		d.Posts = []*Post{}
	}
	if d.FriendRequests == nil {
		d.FriendRequests = []*FriendRequest{}
	}
	if d.Transactions == nil {
		d.Transactions = []*Transaction{}
	}
	if d.Marketplace == nil {
		d.Marketplace = []*MarketplaceItem{}
	}
	if d.Chat == nil {
		d.Chat = []*ChatMessage{}
	}
	if d.Presence == nil {
		d.Presence = []*PresenceRecord{}
	}
	return nil
}
