package mutators

import (
	"time"

	"github.com/google/uuid"

	"github.com/pixil98/go-forge/internal/document"
	"github.com/pixil98/go-forge/internal/store"
)

// BuyItem purchases a marketplace item: the price moves from buyer to
// seller (when the seller still exists), the item joins the buyer's
// inventory, and a marketplace_buy ledger entry is appended.
func BuyItem(userID, itemID string, now time.Time) func(*document.Document) (*document.Transaction, error) {
	return func(doc *document.Document) (*document.Transaction, error) {
		buyer := doc.UserByID(userID)
		if buyer == nil {
			return nil, store.NotFoundf("user %q not found", userID)
		}
		item := doc.ItemByID(itemID)
		if item == nil {
			return nil, store.NotFoundf("marketplace item %q not found", itemID)
		}

		if buyer.OwnsItem(item.ID) {
			return nil, store.AlreadyOwnedf("%s already owns %q", buyer.Username, item.Name)
		}
		if buyer.Balance < item.Price {
			return nil, store.InsufficientFundsf("%s has %d coins, %q costs %d", buyer.Username, buyer.Balance, item.Name, item.Price)
		}

		buyer.Balance -= item.Price
		// Seeded catalogue items have no seller; the price is simply
		// burned for those.
		if seller := doc.UserByID(item.SellerID); seller != nil {
			seller.Balance += item.Price
		}
		buyer.Inventory = append(buyer.Inventory, item.ID)

		tx := &document.Transaction{
			ID:         uuid.NewString(),
			Type:       document.TransactionMarketplaceBuy,
			FromUserID: buyer.ID,
			ToUserID:   item.SellerID,
			ItemID:     item.ID,
			Amount:     item.Price,
			CreatedAt:  now,
		}
		doc.Transactions = append([]*document.Transaction{tx}, doc.Transactions...)

		return tx, nil
	}
}
