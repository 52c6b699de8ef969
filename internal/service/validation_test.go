package service

import (
	"context"
	"errors"
	"testing"

	"wallet_backend/internal/domain"
)

// Validation happens before any storage access, so these run without a
// database.

func TestPayRejectsBadInput(t *testing.T) {
	p := &PaymentService{}

	cases := []struct {
		name    string
		amount  int64
		orderID string
		field   string
	}{
		{"zero amount", 0, "ord-1", "amount"},
		{"negative amount", -500, "ord-1", "amount"},
		{"empty order id", 100, "", "order_id"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := p.Pay(context.Background(), 1, tc.amount, tc.orderID, true)
			var vErr *domain.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if vErr.Field != tc.field {
				t.Fatalf("field = %q; want %q", vErr.Field, tc.field)
			}
		})
	}
}

func TestPayWithoutWalletIsNoop(t *testing.T) {
	p := &PaymentService{}

	tx, err := p.Pay(context.Background(), 1, 100, "ord-1", false)
	if err != nil {
		t.Fatalf("expected no-op success, got %v", err)
	}
	if tx != nil {
		t.Fatalf("expected nil transaction for external payment, got %+v", tx)
	}
}

func TestCreditRejectsNonPositiveAmount(t *testing.T) {
	s := &WalletService{}

	for _, amount := range []int64{0, -1} {
		_, _, err := s.Credit(context.Background(), 1, amount, TxContext{Source: domain.TxSourceBonus})
		var vErr *domain.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("Credit(%d): expected ValidationError, got %v", amount, err)
		}
	}
}

func TestDebitRejectsNonPositiveAmount(t *testing.T) {
	s := &WalletService{}

	for _, amount := range []int64{0, -1} {
		_, _, err := s.Debit(context.Background(), 1, amount, TxContext{Source: domain.TxSourcePurchase})
		var vErr *domain.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("Debit(%d): expected ValidationError, got %v", amount, err)
		}
	}
}

func TestGetOrCreateRejectsBadUserID(t *testing.T) {
	s := &WalletService{}

	_, err := s.GetOrCreate(context.Background(), 0)
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestReferralCreateRejectsBadInput(t *testing.T) {
	s := &ReferralService{}

	cases := []struct {
		name       string
		referrerID int64
		refereeID  int64
		code       string
	}{
		{"bad referrer", 0, 2, "CODE"},
		{"bad referee", 1, 0, "CODE"},
		{"empty code", 1, 2, ""},
		{"self referral", 1, 1, "CODE"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Create(context.Background(), tc.referrerID, tc.refereeID, tc.code)
			var vErr *domain.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestSettingsUpdateValidation(t *testing.T) {
	bad := 120
	upd := domain.SettingsUpdate{MaxSpendPercentage: &bad}
	if err := validateSettingsUpdate(upd); err == nil {
		t.Fatal("expected error for percentage above 100")
	}

	negative := int64(-1)
	if err := validateSettingsUpdate(domain.SettingsUpdate{ReferralRewardAmount: &negative}); err == nil {
		t.Fatal("expected error for negative reward")
	}

	ok := 50
	if err := validateSettingsUpdate(domain.SettingsUpdate{MaxSpendPercentage: &ok}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
