package handlers

import (
	"wallet_backend/internal/repository"
	"wallet_backend/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB        *pgxpool.Pool
	Wallets   *service.WalletService
	Payments  *service.PaymentService
	Referrals *service.ReferralService
	Settings  *service.SettingsService
	Audit     *service.AuditService
	TxRepo    *repository.TransactionRepository
}

func NewHandler(db *pgxpool.Pool) *Handler {
	wallets := service.NewWalletService(db)
	settings := service.NewSettingsService(db)
	audit := service.NewAuditService(db)

	return &Handler{
		DB:        db,
		Wallets:   wallets,
		Payments:  service.NewPaymentService(db, wallets, settings, audit),
		Referrals: service.NewReferralService(db, wallets, settings, audit),
		Settings:  settings,
		Audit:     audit,
		TxRepo:    repository.NewTransactionRepository(db),
	}
}

// getUserID extracts the authenticated user id set by the JWT middleware
func getUserID(c interface{ Get(string) (any, bool) }) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
