package domain

import "time"

// Wallet holds a user's balance and lifetime aggregates. Exactly one wallet
// exists per user (unique index on user_id). All amounts are paise.
type Wallet struct {
	ID                int64     `db:"id" json:"id"`
	UserID            int64     `db:"user_id" json:"user_id"`
	Balance           int64     `db:"balance" json:"balance"`
	TotalEarned       int64     `db:"total_earned" json:"total_earned"`
	TotalSpent        int64     `db:"total_spent" json:"total_spent"`
	IsActive          bool      `db:"is_active" json:"is_active"`
	LastTransactionAt time.Time `db:"last_transaction_at" json:"last_transaction_at"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// Spendable returns the maximum single payment amount allowed for this wallet
// given the configured spend percentage (0-100).
func (w *Wallet) Spendable(maxSpendPercentage int) int64 {
	if maxSpendPercentage <= 0 {
		return 0
	}
	if maxSpendPercentage >= 100 {
		return w.Balance
	}
	return w.Balance * int64(maxSpendPercentage) / 100
}
