package domain

import "time"

// TransactionType classifies the direction of a ledger entry
type TransactionType string

const (
	TxTypeCredit TransactionType = "CREDIT"
	TxTypeDebit  TransactionType = "DEBIT"
)

// TransactionSource records what produced a ledger entry
type TransactionSource string

const (
	TxSourceReferral    TransactionSource = "REFERRAL"
	TxSourcePurchase    TransactionSource = "PURCHASE"
	TxSourceAdminCredit TransactionSource = "ADMIN_CREDIT"
	TxSourceRefund      TransactionSource = "REFUND"
	TxSourceBonus       TransactionSource = "BONUS"
)

// TransactionStatus of a ledger entry. The service only ever writes COMPLETED;
// PENDING/FAILED exist for entries recorded by external payment flows.
type TransactionStatus string

const (
	TxStatusPending   TransactionStatus = "PENDING"
	TxStatusCompleted TransactionStatus = "COMPLETED"
	TxStatusFailed    TransactionStatus = "FAILED"
)

// Transaction is one immutable ledger entry. Rows are only ever inserted,
// inside the same database transaction as the wallet mutation they record.
type Transaction struct {
	ID           int64                  `db:"id" json:"id"`
	UserID       int64                  `db:"user_id" json:"user_id"`
	WalletID     int64                  `db:"wallet_id" json:"wallet_id"`
	Type         TransactionType        `db:"type" json:"type"`
	Amount       int64                  `db:"amount" json:"amount"`
	Source       TransactionSource      `db:"source" json:"source"`
	Description  string                 `db:"description" json:"description"`
	ReferenceID  string                 `db:"reference_id" json:"reference_id,omitempty"`
	BalanceAfter int64                  `db:"balance_after" json:"balance_after"`
	Status       TransactionStatus      `db:"status" json:"status"`
	Metadata     map[string]interface{} `db:"metadata" json:"metadata,omitempty"`
	CreatedAt    time.Time              `db:"created_at" json:"created_at"`
}

// ValidTransactionType reports whether s is an accepted type filter value.
func ValidTransactionType(s string) bool {
	return s == string(TxTypeCredit) || s == string(TxTypeDebit)
}

// ValidTransactionSource reports whether s is an accepted source filter value.
func ValidTransactionSource(s string) bool {
	switch TransactionSource(s) {
	case TxSourceReferral, TxSourcePurchase, TxSourceAdminCredit, TxSourceRefund, TxSourceBonus:
		return true
	}
	return false
}
