package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"wallet_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `id, user_id, wallet_id, type, amount, source, description, reference_id, balance_after, status, metadata, created_at`

// TransactionQuery filters and paginates a ledger read.
type TransactionQuery struct {
	Type   string // CREDIT or DEBIT, empty for all
	Source string // empty for all
	Page   int
	Limit  int
}

// TransactionRepository is the append-only ledger. There is deliberately no
// update or delete statement in this file.
type TransactionRepository struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// CreateTx appends a ledger entry inside the caller's database transaction,
// so the entry commits or rolls back together with the wallet mutation it
// records.
func (r *TransactionRepository) CreateTx(ctx context.Context, dbTx pgx.Tx, t *domain.Transaction) error {
	metaJSON, err := json.Marshal(t.Metadata)
	if err != nil {
		metaJSON = []byte("{}")
	}
	if t.Status == "" {
		t.Status = domain.TxStatusCompleted
	}

	var refID *string
	if t.ReferenceID != "" {
		refID = &t.ReferenceID
	}

	return dbTx.QueryRow(ctx, `
		INSERT INTO transactions (user_id, wallet_id, type, amount, source, description, reference_id, balance_after, status, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`, t.UserID, t.WalletID, t.Type, t.Amount, t.Source, t.Description, refID, t.BalanceAfter, t.Status, metaJSON,
	).Scan(&t.ID, &t.CreatedAt)
}

// GetByID returns a single transaction owned by userID.
// Returns (nil, nil) when absent.
func (r *TransactionRepository) GetByID(ctx context.Context, id, userID int64) (*domain.Transaction, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE id = $1 AND user_id = $2
	`, id, userID)

	t, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

// Query returns a page of ledger entries for a user, newest first, along
// with the total count matching the filters. Reads committed rows only and
// never blocks writers.
func (r *TransactionRepository) Query(ctx context.Context, userID int64, q TransactionQuery) ([]*domain.Transaction, int64, error) {
	where := `WHERE user_id = $1`
	args := []interface{}{userID}

	if q.Type != "" {
		args = append(args, q.Type)
		where += ` AND type = $` + strconv.Itoa(len(args))
	}
	if q.Source != "" {
		args = append(args, q.Source)
		where += ` AND source = $` + strconv.Itoa(len(args))
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM transactions `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}

	args = append(args, limit)
	limitPos := strconv.Itoa(len(args))
	args = append(args, (page-1)*limit)
	offsetPos := strconv.Itoa(len(args))

	rows, err := r.db.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions `+where+`
		ORDER BY created_at DESC
		LIMIT $`+limitPos+` OFFSET $`+offsetPos,
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []*domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, t)
	}
	return result, total, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		t        domain.Transaction
		refID    *string
		metaJSON []byte
	)

	if err := row.Scan(
		&t.ID, &t.UserID, &t.WalletID, &t.Type, &t.Amount, &t.Source,
		&t.Description, &refID, &t.BalanceAfter, &t.Status, &metaJSON, &t.CreatedAt,
	); err != nil {
		return nil, err
	}

	if refID != nil {
		t.ReferenceID = *refID
	}
	if len(metaJSON) > 0 {
		_ = json.Unmarshal(metaJSON, &t.Metadata)
	}
	return &t, nil
}
