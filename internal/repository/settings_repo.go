package repository

import (
	"context"
	"errors"
	"time"

	"wallet_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const settingsColumns = `max_spend_percentage, referral_reward_amount, is_wallet_enabled, min_wallet_balance, max_daily_spend, updated_at`

// ErrSettingsConflict means a concurrent admin update won the compare-and-set.
var ErrSettingsConflict = errors.New("settings were updated concurrently")

type SettingsRepository struct {
	db *pgxpool.Pool
}

func NewSettingsRepository(db *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the singleton settings row, inserting the defaults on first
// read. Concurrent first reads race on the insert; ON CONFLICT DO NOTHING
// keeps exactly one row.
func (r *SettingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	s, err := r.get(ctx)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	if _, err := r.db.Exec(ctx, `
		INSERT INTO wallet_settings (id) VALUES (1)
		ON CONFLICT (id) DO NOTHING
	`); err != nil {
		return nil, err
	}
	return r.get(ctx)
}

// Update applies a partial update if the row has not changed since expected.
// This is the compare-and-set that prevents lost updates between concurrent
// administrative edits.
func (r *SettingsRepository) Update(ctx context.Context, upd domain.SettingsUpdate, expected time.Time) (*domain.Settings, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE wallet_settings
		SET max_spend_percentage   = COALESCE($1, max_spend_percentage),
		    referral_reward_amount = COALESCE($2, referral_reward_amount),
		    is_wallet_enabled      = COALESCE($3, is_wallet_enabled),
		    min_wallet_balance     = COALESCE($4, min_wallet_balance),
		    max_daily_spend        = COALESCE($5, max_daily_spend),
		    updated_at             = NOW()
		WHERE id = 1 AND updated_at = $6
		RETURNING `+settingsColumns+`
	`, upd.MaxSpendPercentage, upd.ReferralRewardAmount, upd.IsWalletEnabled,
		upd.MinWalletBalance, upd.MaxDailySpend, expected)

	s, err := scanSettings(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSettingsConflict
		}
		return nil, err
	}
	return s, nil
}

func (r *SettingsRepository) get(ctx context.Context) (*domain.Settings, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+settingsColumns+`
		FROM wallet_settings
		WHERE id = 1
	`)
	return scanSettings(row)
}

func scanSettings(row pgx.Row) (*domain.Settings, error) {
	var s domain.Settings
	if err := row.Scan(
		&s.MaxSpendPercentage, &s.ReferralRewardAmount, &s.IsWalletEnabled,
		&s.MinWalletBalance, &s.MaxDailySpend, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}
