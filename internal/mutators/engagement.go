package mutators

import (
	"time"

	"github.com/pixil98/go-forge/internal/document"
	"github.com/pixil98/go-forge/internal/store"
)

// LikeWorld increments a world's like counter.
func LikeWorld(worldID string, now time.Time) func(*document.Document) (*document.World, error) {
	return func(doc *document.Document) (*document.World, error) {
		world := doc.WorldByID(worldID)
		if world == nil {
			return nil, store.NotFoundf("world %q not found", worldID)
		}

		world.Likes++
		world.UpdatedAt = now

		return world, nil
	}
}

// VisitWorld records a visit to a world.
func VisitWorld(worldID string, now time.Time) func(*document.Document) (*document.World, error) {
	return func(doc *document.Document) (*document.World, error) {
		world := doc.WorldByID(worldID)
		if world == nil {
			return nil, store.NotFoundf("world %q not found", worldID)
		}

		world.Visits++
		world.UpdatedAt = now

		return world, nil
	}
}
