package document

import "time"

// TransactionType enumerates the ledger entry kinds.
type TransactionType string

const (
	TransactionTransfer       TransactionType = "transfer"
	TransactionPublishReward  TransactionType = "publish_reward"
	TransactionMarketplaceBuy TransactionType = "marketplace_buy"
)

// Transaction is an immutable ledger entry. The ledger is append-only
// and kept newest-first.
type Transaction struct {
	ID         string          `json:"id"`
	Type       TransactionType `json:"type"`
	FromUserID string          `json:"from_user_id,omitempty"`
	ToUserID   string          `json:"to_user_id,omitempty"`
	ItemID     string          `json:"item_id,omitempty"`
	WorldID    string          `json:"world_id,omitempty"`
	Amount     int             `json:"amount"`
	CreatedAt  time.Time       `json:"created_at"`
}
