package service

import (
	"context"
	"errors"

	"wallet_backend/internal/domain"
	"wallet_backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TxContext carries the ledger attribution for a credit or debit.
type TxContext struct {
	Source      domain.TransactionSource
	Description string
	ReferenceID string
	Metadata    map[string]interface{}
}

// BalanceNotifier receives balance-change events after a unit has committed.
type BalanceNotifier interface {
	NotifyBalance(userID, balance int64, tx *domain.Transaction)
}

// WalletService owns the mutable side of wallets. Every credit/debit is one
// database transaction spanning the balance mutation and the ledger append;
// the wallet row lock serializes concurrent operations on the same wallet.
type WalletService struct {
	db       *pgxpool.Pool
	wallets  *repository.WalletRepository
	ledger   *repository.TransactionRepository
	notifier BalanceNotifier
}

func NewWalletService(db *pgxpool.Pool) *WalletService {
	return &WalletService{
		db:      db,
		wallets: repository.NewWalletRepository(db),
		ledger:  repository.NewTransactionRepository(db),
	}
}

// SetNotifier wires the post-commit balance event sink (the ws hub).
func (s *WalletService) SetNotifier(n BalanceNotifier) {
	s.notifier = n
}

// GetOrCreate returns the user's wallet, creating a zero-balance one on
// first access. Idempotent under concurrent calls.
func (s *WalletService) GetOrCreate(ctx context.Context, userID int64) (*domain.Wallet, error) {
	if userID <= 0 {
		return nil, &domain.ValidationError{Field: "user_id", Reason: "must be positive"}
	}

	w, err := s.wallets.GetByUserID(ctx, userID)
	if err != nil {
		return nil, domain.StorageError("get wallet", err)
	}
	if w != nil {
		return w, nil
	}

	if err := s.wallets.EnsureExists(ctx, userID); err != nil {
		return nil, domain.StorageError("create wallet", err)
	}
	w, err = s.wallets.GetByUserID(ctx, userID)
	if err != nil {
		return nil, domain.StorageError("get wallet", err)
	}
	return w, nil
}

// Credit adds amount to the user's balance as a standalone atomic unit.
func (s *WalletService) Credit(ctx context.Context, userID, amount int64, txc TxContext) (*domain.Wallet, *domain.Transaction, error) {
	if amount <= 0 {
		return nil, nil, &domain.ValidationError{Field: "amount", Reason: "must be greater than 0"}
	}

	dbTx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, nil, domain.StorageError("begin", err)
	}
	defer func() { _ = dbTx.Rollback(ctx) }()

	w, t, err := s.CreditInTx(ctx, dbTx, userID, amount, txc)
	if err != nil {
		return nil, nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, nil, domain.StorageError("commit credit", err)
	}

	recordTransaction(t)
	s.EmitBalance(w, t)
	return w, t, nil
}

// Debit removes amount from the user's balance as a standalone atomic unit.
// Fails with ErrInsufficientBalance rather than ever going negative.
func (s *WalletService) Debit(ctx context.Context, userID, amount int64, txc TxContext) (*domain.Wallet, *domain.Transaction, error) {
	if amount <= 0 {
		return nil, nil, &domain.ValidationError{Field: "amount", Reason: "must be greater than 0"}
	}

	dbTx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, nil, domain.StorageError("begin", err)
	}
	defer func() { _ = dbTx.Rollback(ctx) }()

	w, t, err := s.DebitInTx(ctx, dbTx, userID, amount, txc)
	if err != nil {
		return nil, nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, nil, domain.StorageError("commit debit", err)
	}

	recordTransaction(t)
	s.EmitBalance(w, t)
	return w, t, nil
}

// CreditInTx performs the credit inside the caller's transaction so it can be
// part of a larger atomic unit (referral completion). Creates the wallet if
// absent, then locks it for the rest of the unit.
func (s *WalletService) CreditInTx(ctx context.Context, dbTx pgx.Tx, userID, amount int64, txc TxContext) (*domain.Wallet, *domain.Transaction, error) {
	if amount <= 0 {
		return nil, nil, &domain.ValidationError{Field: "amount", Reason: "must be greater than 0"}
	}

	if err := s.wallets.EnsureExistsTx(ctx, dbTx, userID); err != nil {
		return nil, nil, domain.StorageError("ensure wallet", err)
	}
	if _, err := s.wallets.GetForUpdateTx(ctx, dbTx, userID); err != nil {
		return nil, nil, domain.StorageError("lock wallet", err)
	}

	w, err := s.wallets.CreditTx(ctx, dbTx, userID, amount)
	if err != nil {
		return nil, nil, domain.StorageError("credit wallet", err)
	}

	t, err := s.appendEntry(ctx, dbTx, w, domain.TxTypeCredit, amount, txc)
	if err != nil {
		return nil, nil, err
	}
	return w, t, nil
}

// DebitInTx performs the debit inside the caller's transaction. The caller
// may have already locked the wallet; taking the lock twice in the same
// transaction is harmless.
func (s *WalletService) DebitInTx(ctx context.Context, dbTx pgx.Tx, userID, amount int64, txc TxContext) (*domain.Wallet, *domain.Transaction, error) {
	if amount <= 0 {
		return nil, nil, &domain.ValidationError{Field: "amount", Reason: "must be greater than 0"}
	}

	w, err := s.wallets.GetForUpdateTx(ctx, dbTx, userID)
	if err != nil {
		return nil, nil, domain.StorageError("lock wallet", err)
	}
	if w == nil {
		return nil, nil, domain.ErrNotFound
	}

	w, err = s.wallets.DebitTx(ctx, dbTx, userID, amount)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInsufficientBalance) {
			return nil, nil, err
		}
		return nil, nil, domain.StorageError("debit wallet", err)
	}

	t, err := s.appendEntry(ctx, dbTx, w, domain.TxTypeDebit, amount, txc)
	if err != nil {
		return nil, nil, err
	}
	return w, t, nil
}

// EmitBalance pushes a committed balance change to connected clients.
func (s *WalletService) EmitBalance(w *domain.Wallet, t *domain.Transaction) {
	if s.notifier != nil && w != nil {
		s.notifier.NotifyBalance(w.UserID, w.Balance, t)
	}
}

// appendEntry writes the ledger row for a just-applied mutation. balance_after
// is the wallet balance as committed in the same unit, keeping the replay
// invariant intact.
func (s *WalletService) appendEntry(ctx context.Context, dbTx pgx.Tx, w *domain.Wallet, typ domain.TransactionType, amount int64, txc TxContext) (*domain.Transaction, error) {
	t := &domain.Transaction{
		UserID:       w.UserID,
		WalletID:     w.ID,
		Type:         typ,
		Amount:       amount,
		Source:       txc.Source,
		Description:  txc.Description,
		ReferenceID:  txc.ReferenceID,
		BalanceAfter: w.Balance,
		Status:       domain.TxStatusCompleted,
		Metadata:     txc.Metadata,
	}
	if err := s.ledger.CreateTx(ctx, dbTx, t); err != nil {
		return nil, domain.StorageError("append ledger entry", err)
	}
	return t, nil
}
