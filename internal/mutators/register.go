// Package mutators holds the pure document mutation functions, one per
// platform operation. None perform I/O; each takes the request fields
// plus an injected clock and returns a closure the store façade runs
// against a private copy of the document.
package mutators

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pixil98/go-forge/internal/document"
	"github.com/pixil98/go-forge/internal/store"
)

// RegisterUser creates an account with the starting balance. Usernames
// are unique case-insensitively, and registering an existing name
// returns that user unchanged.
func RegisterUser(username string, now time.Time) func(*document.Document) (*document.User, error) {
	return func(doc *document.Document) (*document.User, error) {
		name := strings.TrimSpace(username)
		if name == "" {
			return nil, store.InvalidInputf("username is required")
		}

		if existing := doc.UserByUsername(name); existing != nil {
			return existing, nil
		}

		user := &document.User{
			ID:        uuid.NewString(),
			Username:  name,
			Balance:   document.StartingBalance,
			Friends:   []string{},
			Inventory: []string{},
			CreatedAt: now,
		}
		doc.Users = append(doc.Users, user)

		return user, nil
	}
}
