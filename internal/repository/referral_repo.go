package repository

import (
	"context"
	"errors"
	"time"

	"wallet_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const referralColumns = `id, referrer_id, referee_id, referral_code, status, reward_amount, is_rewarded, completed_at, expires_at, created_at`

// ErrDuplicateReferee is returned when the referee already has a referral.
var ErrDuplicateReferee = errors.New("referee already has a referral")

type ReferralRepository struct {
	db *pgxpool.Pool
}

func NewReferralRepository(db *pgxpool.Pool) *ReferralRepository {
	return &ReferralRepository{db: db}
}

// Create inserts a new PENDING referral. The unique index on referee_id is
// the backstop against a user being referred twice, even under concurrent
// registration calls.
func (r *ReferralRepository) Create(ctx context.Context, ref *domain.Referral) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO referrals (referrer_id, referee_id, referral_code, status, reward_amount, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, ref.ReferrerID, ref.RefereeID, ref.ReferralCode, ref.Status, ref.RewardAmount, ref.ExpiresAt,
	).Scan(&ref.ID, &ref.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateReferee
	}
	return err
}

// GetByID returns a referral by primary key. Returns (nil, nil) when absent.
func (r *ReferralRepository) GetByID(ctx context.Context, id int64) (*domain.Referral, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+referralColumns+`
		FROM referrals
		WHERE id = $1
	`, id)

	ref, err := scanReferral(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return ref, nil
}

// GetForUpdateTx loads a referral with a row lock. Two concurrent Complete
// calls serialize here: the loser re-reads a COMPLETED status and bails out.
// Returns (nil, nil) when absent.
func (r *ReferralRepository) GetForUpdateTx(ctx context.Context, tx pgx.Tx, id int64) (*domain.Referral, error) {
	row := tx.QueryRow(ctx, `
		SELECT `+referralColumns+`
		FROM referrals
		WHERE id = $1
		FOR UPDATE
	`, id)

	ref, err := scanReferral(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return ref, nil
}

// CompleteTx flips a referral PENDING -> COMPLETED and records the reward.
// The status predicate means the transition happens at most once; returns
// false if the row was no longer PENDING.
func (r *ReferralRepository) CompleteTx(ctx context.Context, tx pgx.Tx, id, rewardAmount int64, completedAt time.Time) (bool, error) {
	tag, err := tx.Exec(ctx, `
		UPDATE referrals
		SET status = $2,
		    is_rewarded = TRUE,
		    reward_amount = $3,
		    completed_at = $4
		WHERE id = $1 AND status = $5
	`, id, domain.ReferralCompleted, rewardAmount, completedAt, domain.ReferralPending)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// ListByReferrer returns all referrals made by a user, newest first.
func (r *ReferralRepository) ListByReferrer(ctx context.Context, referrerID int64) ([]*domain.Referral, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+referralColumns+`
		FROM referrals
		WHERE referrer_id = $1
		ORDER BY created_at DESC
	`, referrerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []*domain.Referral
	for rows.Next() {
		ref, err := scanReferral(rows)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// Stats aggregates a referrer's totals. Earnings count only COMPLETED
// referrals, matching what was actually credited.
func (r *ReferralRepository) Stats(ctx context.Context, referrerID int64) (*domain.ReferralStats, error) {
	var s domain.ReferralStats
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = $2),
		       COALESCE(SUM(reward_amount) FILTER (WHERE status = $2), 0)
		FROM referrals
		WHERE referrer_id = $1
	`, referrerID, domain.ReferralCompleted).Scan(&s.Total, &s.Completed, &s.TotalEarnings)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func scanReferral(row pgx.Row) (*domain.Referral, error) {
	var ref domain.Referral
	if err := row.Scan(
		&ref.ID, &ref.ReferrerID, &ref.RefereeID, &ref.ReferralCode, &ref.Status,
		&ref.RewardAmount, &ref.IsRewarded, &ref.CompletedAt, &ref.ExpiresAt, &ref.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &ref, nil
}
