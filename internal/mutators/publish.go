package mutators

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pixil98/go-forge/internal/document"
	"github.com/pixil98/go-forge/internal/store"
)

type PublishWorldRequest struct {
	// ID is optional: republishing an existing world id owned by the
	// same user updates it in place without granting a second reward.
	ID      string
	OwnerID string
	Title   string
	Tags    []string
}

// PublishWorld publishes a world and, for a first publish, credits the
// owner's reward and appends a publish_reward ledger entry. The world,
// the reward, and the ledger entry are one atomic mutation.
func PublishWorld(req PublishWorldRequest, now time.Time) func(*document.Document) (*document.World, error) {
	return func(doc *document.Document) (*document.World, error) {
		owner := doc.UserByID(req.OwnerID)
		if owner == nil {
			return nil, store.NotFoundf("user %q not found", req.OwnerID)
		}

		title := strings.TrimSpace(req.Title)
		if title == "" {
			return nil, store.InvalidInputf("world title is required")
		}
		if len(req.Tags) > document.MaxWorldTags {
			return nil, store.InvalidInputf("at most %d tags allowed, got %d", document.MaxWorldTags, len(req.Tags))
		}

		if req.ID != "" {
			if existing := doc.WorldByID(req.ID); existing != nil {
				if existing.OwnerID != owner.ID {
					return nil, store.InvalidInputf("world %q belongs to another user", req.ID)
				}
				existing.Title = title
				existing.Tags = append([]string(nil), req.Tags...)
				existing.UpdatedAt = now
				return existing, nil
			}
		}

		id := req.ID
		if id == "" {
			id = uuid.NewString()
		}
		world := &document.World{
			ID:        id,
			OwnerID:   owner.ID,
			Title:     title,
			Tags:      append([]string(nil), req.Tags...),
			CreatedAt: now,
			UpdatedAt: now,
		}
		doc.Worlds = append([]*document.World{world}, doc.Worlds...)

		owner.Balance += document.PublishRewardCoins
		owner.XP += document.PublishRewardXP

		doc.Transactions = append([]*document.Transaction{{
			ID:        uuid.NewString(),
			Type:      document.TransactionPublishReward,
			ToUserID:  owner.ID,
			WorldID:   world.ID,
			Amount:    document.PublishRewardCoins,
			CreatedAt: now,
		}}, doc.Transactions...)

		return world, nil
	}
}
