package service

import (
	"context"

	"wallet_backend/internal/domain"
	"wallet_backend/internal/logger"
	"wallet_backend/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditService records administrative and balance-affecting actions. Audit
// writes are best-effort: a failure is logged but never fails the operation
// that produced it.
type AuditService struct {
	repo *repository.AuditRepository
}

func NewAuditService(db *pgxpool.Pool) *AuditService {
	return &AuditService{repo: repository.NewAuditRepository(db)}
}

// Log creates a new audit log entry
func (s *AuditService) Log(ctx context.Context, userID int64, action, category string, details map[string]interface{}) {
	entry := &domain.AuditLog{
		UserID:   userID,
		Action:   action,
		Category: category,
		Details:  details,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		logger.Error("failed to create audit log", "error", err, "action", action, "user_id", userID)
	}
}

// LogWithRequest creates an audit log with request info (IP, User-Agent)
func (s *AuditService) LogWithRequest(ctx context.Context, userID int64, action, category, ip, userAgent string, details map[string]interface{}) {
	entry := &domain.AuditLog{
		UserID:    userID,
		Action:    action,
		Category:  category,
		Details:   details,
		IP:        ip,
		UserAgent: userAgent,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		logger.Error("failed to create audit log", "error", err, "action", action, "user_id", userID)
	}
}

// LogAdminCredit logs a manual balance credit issued by an admin
func (s *AuditService) LogAdminCredit(ctx context.Context, adminID, targetUserID, amount int64, reason string) {
	s.Log(ctx, adminID, domain.AuditActionAdminCredit, domain.AuditCategoryAdmin, map[string]interface{}{
		"target_user_id": targetUserID,
		"amount":         amount,
		"reason":         reason,
	})
}

// LogSettingsUpdate logs an administrative settings change
func (s *AuditService) LogSettingsUpdate(ctx context.Context, adminID int64, upd domain.SettingsUpdate) {
	details := make(map[string]interface{})
	if upd.MaxSpendPercentage != nil {
		details["max_spend_percentage"] = *upd.MaxSpendPercentage
	}
	if upd.ReferralRewardAmount != nil {
		details["referral_reward_amount"] = *upd.ReferralRewardAmount
	}
	if upd.IsWalletEnabled != nil {
		details["is_wallet_enabled"] = *upd.IsWalletEnabled
	}
	if upd.MinWalletBalance != nil {
		details["min_wallet_balance"] = *upd.MinWalletBalance
	}
	if upd.MaxDailySpend != nil {
		details["max_daily_spend"] = *upd.MaxDailySpend
	}

	s.Log(ctx, adminID, domain.AuditActionSettingsUpdate, domain.AuditCategoryAdmin, details)
}
