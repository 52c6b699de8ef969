package service

import (
	"context"
	"errors"
	"sync"

	"wallet_backend/internal/domain"
	"wallet_backend/internal/logger"
	"wallet_backend/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SettingsService serves the wallet policy singleton. Reads come from an
// in-process cache; the cache is replaced on every successful administrative
// update, so a committed update is never silently dropped.
type SettingsService struct {
	repo *repository.SettingsRepository

	mu     sync.RWMutex
	cached *domain.Settings
}

func NewSettingsService(db *pgxpool.Pool) *SettingsService {
	return &SettingsService{repo: repository.NewSettingsRepository(db)}
}

// Get returns the current settings, materializing the default row on first
// read if the table is empty.
func (s *SettingsService) Get(ctx context.Context) (*domain.Settings, error) {
	s.mu.RLock()
	cached := s.cached
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	loaded, err := s.repo.Get(ctx)
	if err != nil {
		return nil, domain.StorageError("get settings", err)
	}

	s.mu.Lock()
	s.cached = loaded
	s.mu.Unlock()
	return loaded, nil
}

// Update applies a partial administrative update with a compare-and-set on
// updated_at. A lost race against a concurrent edit is retried on a fresh
// read, so updates merge instead of clobbering each other.
func (s *SettingsService) Update(ctx context.Context, upd domain.SettingsUpdate) (*domain.Settings, error) {
	if err := validateSettingsUpdate(upd); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < 3; attempt++ {
		current, err := s.repo.Get(ctx)
		if err != nil {
			return nil, domain.StorageError("get settings", err)
		}

		updated, err := s.repo.Update(ctx, upd, current.UpdatedAt)
		if errors.Is(err, repository.ErrSettingsConflict) {
			logger.Warn("settings update conflict, retrying", "attempt", attempt+1)
			continue
		}
		if err != nil {
			return nil, domain.StorageError("update settings", err)
		}

		s.mu.Lock()
		s.cached = updated
		s.mu.Unlock()
		return updated, nil
	}
	return nil, domain.StorageError("update settings", repository.ErrSettingsConflict)
}

// Invalidate drops the cache; the next Get re-reads committed state.
func (s *SettingsService) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

func validateSettingsUpdate(upd domain.SettingsUpdate) error {
	if upd.MaxSpendPercentage != nil && (*upd.MaxSpendPercentage < 0 || *upd.MaxSpendPercentage > 100) {
		return &domain.ValidationError{Field: "max_spend_percentage", Reason: "must be between 0 and 100"}
	}
	if upd.ReferralRewardAmount != nil && *upd.ReferralRewardAmount < 0 {
		return &domain.ValidationError{Field: "referral_reward_amount", Reason: "cannot be negative"}
	}
	if upd.MinWalletBalance != nil && *upd.MinWalletBalance < 0 {
		return &domain.ValidationError{Field: "min_wallet_balance", Reason: "cannot be negative"}
	}
	if upd.MaxDailySpend != nil && *upd.MaxDailySpend < 0 {
		return &domain.ValidationError{Field: "max_daily_spend", Reason: "cannot be negative"}
	}
	return nil
}
