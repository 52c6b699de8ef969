package repository

import (
	"context"
	"errors"

	"wallet_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const walletColumns = `id, user_id, balance, total_earned, total_spent, is_active, last_transaction_at, created_at, updated_at`

type WalletRepository struct {
	db *pgxpool.Pool
}

func NewWalletRepository(db *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{db: db}
}

// GetByUserID retrieves a wallet by user ID. Returns (nil, nil) when absent.
func (r *WalletRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Wallet, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+walletColumns+`
		FROM wallets
		WHERE user_id = $1
	`, userID)

	w, err := scanWallet(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return w, nil
}

// EnsureExists inserts a zero-balance wallet for the user if none exists.
// Safe under concurrent calls: the unique index on user_id plus
// ON CONFLICT DO NOTHING guarantees at most one row.
func (r *WalletRepository) EnsureExists(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO wallets (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
	`, userID)
	return err
}

// EnsureExistsTx is EnsureExists inside an existing database transaction.
func (r *WalletRepository) EnsureExistsTx(ctx context.Context, tx pgx.Tx, userID int64) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO wallets (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
	`, userID)
	return err
}

// GetForUpdateTx loads the wallet row with a row lock, serializing all
// balance operations against the same wallet for the duration of tx.
// Returns (nil, nil) when the wallet does not exist.
func (r *WalletRepository) GetForUpdateTx(ctx context.Context, tx pgx.Tx, userID int64) (*domain.Wallet, error) {
	row := tx.QueryRow(ctx, `
		SELECT `+walletColumns+`
		FROM wallets
		WHERE user_id = $1
		FOR UPDATE
	`, userID)

	w, err := scanWallet(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return w, nil
}

// CreditTx increases balance and total_earned by amount. Caller must already
// hold the row lock via GetForUpdateTx.
func (r *WalletRepository) CreditTx(ctx context.Context, tx pgx.Tx, userID, amount int64) (*domain.Wallet, error) {
	row := tx.QueryRow(ctx, `
		UPDATE wallets
		SET balance = balance + $1,
		    total_earned = total_earned + $1,
		    last_transaction_at = NOW(),
		    updated_at = NOW()
		WHERE user_id = $2
		RETURNING `+walletColumns+`
	`, amount, userID)

	return scanWallet(row)
}

// DebitTx decreases balance and increases total_spent by amount. The
// balance >= amount predicate makes a negative balance impossible even if a
// caller skips the explicit check.
func (r *WalletRepository) DebitTx(ctx context.Context, tx pgx.Tx, userID, amount int64) (*domain.Wallet, error) {
	row := tx.QueryRow(ctx, `
		UPDATE wallets
		SET balance = balance - $1,
		    total_spent = total_spent + $1,
		    last_transaction_at = NOW(),
		    updated_at = NOW()
		WHERE user_id = $2 AND balance >= $1
		RETURNING `+walletColumns+`
	`, amount, userID)

	w, err := scanWallet(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			_ = tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM wallets WHERE user_id = $1)`, userID).Scan(&exists)
			if !exists {
				return nil, domain.ErrNotFound
			}
			return nil, domain.ErrInsufficientBalance
		}
		return nil, err
	}
	return w, nil
}

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	var w domain.Wallet
	if err := row.Scan(
		&w.ID, &w.UserID, &w.Balance, &w.TotalEarned, &w.TotalSpent,
		&w.IsActive, &w.LastTransactionAt, &w.CreatedAt, &w.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &w, nil
}
