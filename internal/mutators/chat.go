package mutators

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pixil98/go-forge/internal/document"
	"github.com/pixil98/go-forge/internal/store"
)

// SendChat appends a message to a room's feed, then trims the feed to
// the configured history bound, evicting oldest first.
func SendChat(userID, room, text string, now time.Time) func(*document.Document) (*document.ChatMessage, error) {
	return func(doc *document.Document) (*document.ChatMessage, error) {
		user := doc.UserByID(userID)
		if user == nil {
			return nil, store.NotFoundf("user %q not found", userID)
		}
		if strings.TrimSpace(room) == "" {
			return nil, store.InvalidInputf("chat room is required")
		}
		if strings.TrimSpace(text) == "" {
			return nil, store.InvalidInputf("chat text is required")
		}

		msg := &document.ChatMessage{
			ID:        uuid.NewString(),
			Room:      room,
			UserID:    user.ID,
			Text:      text,
			CreatedAt: now,
		}
		doc.Chat = append(doc.Chat, msg)
		doc.TrimRoomChat(room, document.ChatHistoryLimit)

		return msg, nil
	}
}
