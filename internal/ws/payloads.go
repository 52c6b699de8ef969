package ws

import "wallet_backend/internal/domain"

// BalanceEvent is pushed to a user's connected clients after a wallet
// mutation has committed.
type BalanceEvent struct {
	Type        string              `json:"type"` // always "balance"
	UserID      int64               `json:"user_id"`
	Balance     int64               `json:"balance"`
	Transaction *domain.Transaction `json:"transaction,omitempty"`
}
