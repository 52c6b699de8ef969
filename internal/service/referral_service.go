package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"wallet_backend/internal/domain"
	"wallet_backend/internal/logger"
	"wallet_backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReferralService owns the referral lifecycle: creation at registration time
// and the one-time completion that credits the referrer.
type ReferralService struct {
	db        *pgxpool.Pool
	referrals *repository.ReferralRepository
	wallets   *WalletService
	settings  *SettingsService
	audit     *AuditService
}

func NewReferralService(db *pgxpool.Pool, wallets *WalletService, settings *SettingsService, audit *AuditService) *ReferralService {
	return &ReferralService{
		db:        db,
		referrals: repository.NewReferralRepository(db),
		wallets:   wallets,
		settings:  settings,
		audit:     audit,
	}
}

// Create records a new PENDING referral. Called by the registration flow once
// the referred user exists and the referral code has been resolved to its
// owner. The reward captured here is a display default; the amount actually
// credited is re-read from settings at completion time.
func (s *ReferralService) Create(ctx context.Context, referrerID, refereeID int64, code string) (*domain.Referral, error) {
	if referrerID <= 0 {
		return nil, &domain.ValidationError{Field: "referrer_id", Reason: "must be positive"}
	}
	if refereeID <= 0 {
		return nil, &domain.ValidationError{Field: "referee_id", Reason: "must be positive"}
	}
	if code == "" {
		return nil, &domain.ValidationError{Field: "referral_code", Reason: "is required"}
	}
	if referrerID == refereeID {
		return nil, &domain.ValidationError{Field: "referee_id", Reason: "cannot refer yourself"}
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	ref := &domain.Referral{
		ReferrerID:   referrerID,
		RefereeID:    refereeID,
		ReferralCode: code,
		Status:       domain.ReferralPending,
		RewardAmount: settings.ReferralRewardAmount,
		ExpiresAt:    time.Now().Add(domain.ReferralTTL),
	}

	if err := s.referrals.Create(ctx, ref); err != nil {
		if errors.Is(err, repository.ErrDuplicateReferee) {
			return nil, &domain.ValidationError{Field: "referee_id", Reason: "user already has a referral"}
		}
		return nil, domain.StorageError("create referral", err)
	}

	logger.Info("referral created", "referral_id", ref.ID, "referrer_id", referrerID, "referee_id", refereeID)
	return ref, nil
}

// Complete transitions a referral PENDING -> COMPLETED and credits the
// referrer's wallet, as one atomic unit: reward credit, ledger entry and
// status flip commit together or not at all. The referral row lock makes the
// PENDING check mutually exclusive, so a referral is rewarded at most once no
// matter how many completion calls race.
func (s *ReferralService) Complete(ctx context.Context, referralID, actorID int64) (*domain.Transaction, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	dbTx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, domain.StorageError("begin", err)
	}
	defer func() { _ = dbTx.Rollback(ctx) }()

	ref, err := s.referrals.GetForUpdateTx(ctx, dbTx, referralID)
	if err != nil {
		return nil, domain.StorageError("lock referral", err)
	}
	if ref == nil {
		return nil, domain.ErrNotFound
	}
	if ref.ReferrerID != actorID {
		return nil, domain.ErrUnauthorized
	}
	if ref.Status != domain.ReferralPending {
		return nil, domain.ErrInvalidState
	}

	// Authoritative reward amount is resolved at completion time.
	reward := settings.ReferralRewardAmount

	w, t, err := s.wallets.CreditInTx(ctx, dbTx, ref.ReferrerID, reward, TxContext{
		Source:      domain.TxSourceReferral,
		Description: "Referral reward for inviting user",
		ReferenceID: strconv.FormatInt(ref.RefereeID, 10),
		Metadata: map[string]interface{}{
			"referral_id": ref.ID,
			"referee_id":  ref.RefereeID,
		},
	})
	if err != nil {
		return nil, err
	}

	completed, err := s.referrals.CompleteTx(ctx, dbTx, ref.ID, reward, time.Now())
	if err != nil {
		return nil, domain.StorageError("complete referral", err)
	}
	if !completed {
		// Unreachable while we hold the row lock, but the guard keeps the
		// exactly-once invariant independent of locking details.
		return nil, domain.ErrInvalidState
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, domain.StorageError("commit referral completion", err)
	}

	recordTransaction(t)
	referralsCompleted.Inc()
	s.wallets.EmitBalance(w, t)
	s.audit.Log(ctx, actorID, domain.AuditActionReferralComplete, domain.AuditCategoryReferral, map[string]interface{}{
		"referral_id": ref.ID,
		"referee_id":  ref.RefereeID,
		"reward":      reward,
	})
	logger.Info("referral completed", "referral_id", ref.ID, "referrer_id", ref.ReferrerID, "reward", reward)

	return t, nil
}

// ListByReferrer returns a referrer's referrals together with aggregates.
func (s *ReferralService) ListByReferrer(ctx context.Context, referrerID int64) ([]*domain.Referral, *domain.ReferralStats, error) {
	refs, err := s.referrals.ListByReferrer(ctx, referrerID)
	if err != nil {
		return nil, nil, domain.StorageError("list referrals", err)
	}
	stats, err := s.referrals.Stats(ctx, referrerID)
	if err != nil {
		return nil, nil, domain.StorageError("referral stats", err)
	}
	return refs, stats, nil
}
