package service

import (
	"context"
	"testing"

	"wallet_backend/internal/domain"
)

func TestSettingsDefaultsOnFirstRead(t *testing.T) {
	db := setupDB(t)
	svc := newServices(db)

	s, err := svc.settings.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if s.MaxSpendPercentage != domain.DefaultMaxSpendPercentage {
		t.Errorf("max_spend_percentage = %d, want %d", s.MaxSpendPercentage, domain.DefaultMaxSpendPercentage)
	}
	if s.ReferralRewardAmount != domain.DefaultReferralRewardAmount {
		t.Errorf("referral_reward_amount = %d, want %d", s.ReferralRewardAmount, domain.DefaultReferralRewardAmount)
	}
	if s.MaxDailySpend != domain.DefaultMaxDailySpend {
		t.Errorf("max_daily_spend = %d, want %d", s.MaxDailySpend, domain.DefaultMaxDailySpend)
	}
	if !s.IsWalletEnabled {
		t.Error("wallet should default to enabled")
	}
}

func TestSettingsPartialUpdate(t *testing.T) {
	db := setupDB(t)
	svc := newServices(db)
	ctx := context.Background()

	pct := 50
	updated, err := svc.settings.Update(ctx, domain.SettingsUpdate{MaxSpendPercentage: &pct})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.MaxSpendPercentage != 50 {
		t.Fatalf("max_spend_percentage = %d, want 50", updated.MaxSpendPercentage)
	}
	// Untouched fields keep their values.
	if updated.ReferralRewardAmount != domain.DefaultReferralRewardAmount {
		t.Fatalf("referral_reward_amount changed to %d", updated.ReferralRewardAmount)
	}

	// A fresh service (cold cache) sees the persisted value.
	other := NewSettingsService(db)
	s, err := other.Get(ctx)
	if err != nil {
		t.Fatalf("get via second service: %v", err)
	}
	if s.MaxSpendPercentage != 50 {
		t.Fatalf("persisted max_spend_percentage = %d, want 50", s.MaxSpendPercentage)
	}
}

func TestSettingsSequentialUpdates(t *testing.T) {
	db := setupDB(t)
	svc := newServices(db)
	ctx := context.Background()

	// Each update CASes on updated_at; back-to-back updates through the same
	// cache must both land.
	reward := int64(60000)
	if _, err := svc.settings.Update(ctx, domain.SettingsUpdate{ReferralRewardAmount: &reward}); err != nil {
		t.Fatalf("first update: %v", err)
	}
	daily := int64(2000000)
	s, err := svc.settings.Update(ctx, domain.SettingsUpdate{MaxDailySpend: &daily})
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	if s.ReferralRewardAmount != 60000 || s.MaxDailySpend != 2000000 {
		t.Fatalf("settings = %+v", s)
	}
}

func TestSettingsUpdateSurvivesStaleCache(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	a := NewSettingsService(db)
	b := NewSettingsService(db)
	if _, err := a.Get(ctx); err != nil {
		t.Fatalf("warm a: %v", err)
	}
	if _, err := b.Get(ctx); err != nil {
		t.Fatalf("warm b: %v", err)
	}

	// a writes; b still caches the old row, but its update CASes against a
	// fresh read and must land on top of a's change.
	pct := 60
	if _, err := a.Update(ctx, domain.SettingsUpdate{MaxSpendPercentage: &pct}); err != nil {
		t.Fatalf("update via a: %v", err)
	}
	reward := int64(70000)
	s, err := b.Update(ctx, domain.SettingsUpdate{ReferralRewardAmount: &reward})
	if err != nil {
		t.Fatalf("update via b: %v", err)
	}
	if s.MaxSpendPercentage != 60 || s.ReferralRewardAmount != 70000 {
		t.Fatalf("settings = %+v, want both updates applied", s)
	}
}
