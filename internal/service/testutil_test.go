package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

// setupDB connects to the test database, applies migrations and wipes wallet
// state. Tests that call it are integration tests and skip when DATABASE_URL
// is unset.
func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(pool.Close)

	applyMigrations(t, pool)

	ctx := context.Background()
	if _, err := pool.Exec(ctx, `TRUNCATE transactions, referrals, audit_logs, wallets RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	if _, err := pool.Exec(ctx, `DELETE FROM wallet_settings`); err != nil {
		t.Fatalf("reset settings: %v", err)
	}

	return pool
}

// services bundles the full service graph over one pool, the way main wires it.
type services struct {
	wallets   *WalletService
	payments  *PaymentService
	referrals *ReferralService
	settings  *SettingsService
}

func newServices(db *pgxpool.Pool) *services {
	wallets := NewWalletService(db)
	settings := NewSettingsService(db)
	audit := NewAuditService(db)
	return &services{
		wallets:   wallets,
		settings:  settings,
		payments:  NewPaymentService(db, wallets, settings, audit),
		referrals: NewReferralService(db, wallets, settings, audit),
	}
}

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()

	migDir := filepath.Join("..", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}
