package mutators

import (
	"time"

	"github.com/google/uuid"

	"github.com/pixil98/go-forge/internal/document"
	"github.com/pixil98/go-forge/internal/store"
)

// RequestFriend records a pending friendship offer. A duplicate request
// for the same ordered pair returns the existing one instead of
// creating another.
func RequestFriend(fromID, toID string, now time.Time) func(*document.Document) (*document.FriendRequest, error) {
	return func(doc *document.Document) (*document.FriendRequest, error) {
		if fromID == toID {
			return nil, store.InvalidInputf("cannot send a friend request to yourself")
		}

		from := doc.UserByID(fromID)
		if from == nil {
			return nil, store.NotFoundf("user %q not found", fromID)
		}
		to := doc.UserByID(toID)
		if to == nil {
			return nil, store.NotFoundf("user %q not found", toID)
		}

		if from.HasFriend(to.ID) {
			return nil, store.InvalidInputf("%s and %s are already friends", from.Username, to.Username)
		}

		if existing := doc.PendingFriendRequest(from.ID, to.ID); existing != nil {
			return existing, nil
		}

		req := &document.FriendRequest{
			ID:         uuid.NewString(),
			FromUserID: from.ID,
			ToUserID:   to.ID,
			CreatedAt:  now,
		}
		doc.FriendRequests = append(doc.FriendRequests, req)

		return req, nil
	}
}

// AcceptFriend resolves a pending request: both users gain a symmetric
// friendship edge and the request is removed, atomically.
func AcceptFriend(requestID string) func(*document.Document) (*document.FriendRequest, error) {
	return func(doc *document.Document) (*document.FriendRequest, error) {
		req := doc.FriendRequestByID(requestID)
		if req == nil {
			return nil, store.NotFoundf("friend request %q not found", requestID)
		}

		from := doc.UserByID(req.FromUserID)
		if from == nil {
			return nil, store.NotFoundf("user %q not found", req.FromUserID)
		}
		to := doc.UserByID(req.ToUserID)
		if to == nil {
			return nil, store.NotFoundf("user %q not found", req.ToUserID)
		}

		if !from.HasFriend(to.ID) {
			from.Friends = append(from.Friends, to.ID)
		}
		if !to.HasFriend(from.ID) {
			to.Friends = append(to.Friends, from.ID)
		}

		kept := doc.FriendRequests[:0]
		for _, r := range doc.FriendRequests {
			if r.ID != req.ID {
				kept = append(kept, r)
			}
		}
		doc.FriendRequests = kept

		return req, nil
	}
}
