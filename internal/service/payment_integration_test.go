package service

import (
	"context"
	"errors"
	"testing"

	"wallet_backend/internal/domain"
	"wallet_backend/internal/repository"
)

func TestPayWithinSpendCap(t *testing.T) {
	db := setupDB(t)
	svc := newServices(db)
	ctx := context.Background()
	const userID = 601

	if _, _, err := svc.wallets.Credit(ctx, userID, 100000, TxContext{Source: domain.TxSourceBonus}); err != nil {
		t.Fatalf("credit: %v", err)
	}

	// 80% of 100000 is the cap; paying exactly the cap is allowed.
	tx, err := svc.payments.Pay(ctx, userID, 80000, "ord-601", true)
	if err != nil {
		t.Fatalf("pay: %v", err)
	}
	if tx.Type != domain.TxTypeDebit || tx.Source != domain.TxSourcePurchase {
		t.Fatalf("unexpected entry: type=%s source=%s", tx.Type, tx.Source)
	}
	if tx.BalanceAfter != 20000 {
		t.Fatalf("balanceAfter = %d, want 20000", tx.BalanceAfter)
	}
	if tx.ReferenceID != "ord-601" {
		t.Fatalf("reference = %q, want order id", tx.ReferenceID)
	}
}

func TestPayOverSpendCap(t *testing.T) {
	db := setupDB(t)
	svc := newServices(db)
	ctx := context.Background()
	const userID = 602

	if _, _, err := svc.wallets.Credit(ctx, userID, 100000, TxContext{Source: domain.TxSourceBonus}); err != nil {
		t.Fatalf("credit: %v", err)
	}

	_, err := svc.payments.Pay(ctx, userID, 80001, "ord-602", true)
	var limErr *domain.LimitExceededError
	if !errors.As(err, &limErr) {
		t.Fatalf("err = %v, want LimitExceededError", err)
	}
	if limErr.Spendable != 80000 || limErr.Percentage != domain.DefaultMaxSpendPercentage {
		t.Fatalf("limit detail = %+v", limErr)
	}

	// Rejection must leave wallet and ledger untouched.
	w, err := svc.wallets.GetOrCreate(ctx, userID)
	if err != nil {
		t.Fatalf("reload wallet: %v", err)
	}
	if w.Balance != 100000 {
		t.Fatalf("balance mutated to %d on rejected payment", w.Balance)
	}
	txRepo := repository.NewTransactionRepository(db)
	_, total, err := txRepo.Query(ctx, userID, repository.TransactionQuery{Source: string(domain.TxSourcePurchase), Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("query ledger: %v", err)
	}
	if total != 0 {
		t.Fatalf("rejected payment left %d ledger entries", total)
	}
}

func TestPayInsufficientBalance(t *testing.T) {
	db := setupDB(t)
	svc := newServices(db)
	ctx := context.Background()
	const userID = 603

	if _, _, err := svc.wallets.Credit(ctx, userID, 50000, TxContext{Source: domain.TxSourceBonus}); err != nil {
		t.Fatalf("credit: %v", err)
	}
	if _, err := svc.payments.Pay(ctx, userID, 60000, "ord-603", true); !errors.Is(err, domain.ErrInsufficientBalance) {
		t.Fatalf("err = %v, want ErrInsufficientBalance", err)
	}
}

func TestPayMissingWallet(t *testing.T) {
	db := setupDB(t)
	svc := newServices(db)

	if _, err := svc.payments.Pay(context.Background(), 888, 100, "ord-888", true); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPayHonorsUpdatedPercentage(t *testing.T) {
	db := setupDB(t)
	svc := newServices(db)
	ctx := context.Background()
	const userID = 604

	if _, _, err := svc.wallets.Credit(ctx, userID, 100000, TxContext{Source: domain.TxSourceBonus}); err != nil {
		t.Fatalf("credit: %v", err)
	}

	pct := 100
	if _, err := svc.settings.Update(ctx, domain.SettingsUpdate{MaxSpendPercentage: &pct}); err != nil {
		t.Fatalf("update settings: %v", err)
	}

	// At 100% the whole balance is spendable.
	tx, err := svc.payments.Pay(ctx, userID, 100000, "ord-604", true)
	if err != nil {
		t.Fatalf("pay full balance: %v", err)
	}
	if tx.BalanceAfter != 0 {
		t.Fatalf("balanceAfter = %d, want 0", tx.BalanceAfter)
	}
}
