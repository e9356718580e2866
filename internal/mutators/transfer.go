package mutators

import (
	"time"

	"github.com/google/uuid"

	"github.com/pixil98/go-forge/internal/document"
	"github.com/pixil98/go-forge/internal/store"
)

// Transfer moves coins between two users and appends a transfer ledger
// entry, all within one atomic mutation.
func Transfer(fromID, toID string, amount int, now time.Time) func(*document.Document) (*document.Transaction, error) {
	return func(doc *document.Document) (*document.Transaction, error) {
		if amount <= 0 {
			return nil, store.InvalidInputf("transfer amount must be positive, got %d", amount)
		}
		if fromID == toID {
			return nil, store.InvalidInputf("cannot transfer to yourself")
		}

		from := doc.UserByID(fromID)
		if from == nil {
			return nil, store.NotFoundf("user %q not found", fromID)
		}
		to := doc.UserByID(toID)
		if to == nil {
			return nil, store.NotFoundf("user %q not found", toID)
		}

		if from.Balance < amount {
			return nil, store.InsufficientFundsf("%s has %d coins, needs %d", from.Username, from.Balance, amount)
		}

		from.Balance -= amount
		to.Balance += amount

		tx := &document.Transaction{
			ID:         uuid.NewString(),
			Type:       document.TransactionTransfer,
			FromUserID: from.ID,
			ToUserID:   to.ID,
			Amount:     amount,
			CreatedAt:  now,
		}
		doc.Transactions = append([]*document.Transaction{tx}, doc.Transactions...)

		return tx, nil
	}
}
