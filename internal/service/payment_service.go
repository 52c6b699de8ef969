package service

import (
	"context"

	"wallet_backend/internal/domain"
	"wallet_backend/internal/logger"
	"wallet_backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PaymentService validates and executes wallet-funded payments against the
// configured policy limits.
type PaymentService struct {
	db       *pgxpool.Pool
	wallets  *WalletService
	walletRp *repository.WalletRepository
	settings *SettingsService
	audit    *AuditService
}

func NewPaymentService(db *pgxpool.Pool, wallets *WalletService, settings *SettingsService, audit *AuditService) *PaymentService {
	return &PaymentService{
		db:       db,
		wallets:  wallets,
		walletRp: repository.NewWalletRepository(db),
		settings: settings,
		audit:    audit,
	}
}

// Pay executes a wallet-funded payment for an order. useWallet=false is a
// no-op success (the payment is settled by external means) and returns a nil
// transaction. Otherwise the debit and its ledger entry commit as one unit;
// every policy rejection happens before any mutation.
func (s *PaymentService) Pay(ctx context.Context, userID, amount int64, orderID string, useWallet bool) (*domain.Transaction, error) {
	if !useWallet {
		return nil, nil
	}
	if amount <= 0 {
		return nil, &domain.ValidationError{Field: "amount", Reason: "must be greater than 0"}
	}
	if orderID == "" {
		return nil, &domain.ValidationError{Field: "order_id", Reason: "is required"}
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	dbTx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, domain.StorageError("begin", err)
	}
	defer func() { _ = dbTx.Rollback(ctx) }()

	w, err := s.walletRp.GetForUpdateTx(ctx, dbTx, userID)
	if err != nil {
		return nil, domain.StorageError("lock wallet", err)
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}

	if amount > w.Balance {
		paymentsRejected.WithLabelValues("insufficient_balance").Inc()
		return nil, domain.ErrInsufficientBalance
	}

	spendable := w.Spendable(settings.MaxSpendPercentage)
	if amount > spendable {
		paymentsRejected.WithLabelValues("limit_exceeded").Inc()
		return nil, &domain.LimitExceededError{Spendable: spendable, Percentage: settings.MaxSpendPercentage}
	}

	w, t, err := s.wallets.DebitInTx(ctx, dbTx, userID, amount, TxContext{
		Source:      domain.TxSourcePurchase,
		Description: "Payment for order " + orderID,
		ReferenceID: orderID,
		Metadata: map[string]interface{}{
			"order_id":       orderID,
			"payment_method": "wallet",
		},
	})
	if err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, domain.StorageError("commit payment", err)
	}

	recordTransaction(t)
	s.wallets.EmitBalance(w, t)
	s.audit.Log(ctx, userID, domain.AuditActionPayment, domain.AuditCategoryWallet, map[string]interface{}{
		"order_id": orderID,
		"amount":   amount,
	})
	logger.Info("wallet payment processed", "user_id", userID, "order_id", orderID, "amount", amount, "balance_after", t.BalanceAfter)

	return t, nil
}
