package mutators

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pixil98/go-forge/internal/document"
	"github.com/pixil98/go-forge/internal/store"
)

// CreatePost prepends a feed post authored by the given user.
func CreatePost(userID, text string, now time.Time) func(*document.Document) (*document.Post, error) {
	return func(doc *document.Document) (*document.Post, error) {
		user := doc.UserByID(userID)
		if user == nil {
			return nil, store.NotFoundf("user %q not found", userID)
		}
		if strings.TrimSpace(text) == "" {
			return nil, store.InvalidInputf("post text is required")
		}

		post := &document.Post{
			ID:        uuid.NewString(),
			UserID:    user.ID,
			Text:      text,
			CreatedAt: now,
		}
		doc.Posts = append([]*document.Post{post}, doc.Posts...)

		return post, nil
	}
}
