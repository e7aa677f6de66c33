package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestBankTransaction_Validate(t *testing.T) {
	tx := &BankTransaction{Amount: decimal.Zero}
	if err := tx.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}

	tx.Amount = decimal.NewFromFloat(-45.20)
	if err := tx.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestBankTransaction_Direction(t *testing.T) {
	out := &BankTransaction{Amount: decimal.NewFromFloat(-123.45)}
	if !out.Outgoing() {
		t.Error("negative amount should be outgoing")
	}
	if !out.AbsAmount().Equal(decimal.NewFromFloat(123.45)) {
		t.Errorf("unexpected abs amount: %s", out.AbsAmount())
	}

	in := &BankTransaction{Amount: decimal.NewFromFloat(850)}
	if in.Outgoing() {
		t.Error("positive amount should be incoming")
	}
}

func TestBankTransaction_Bookable(t *testing.T) {
	tests := []struct {
		status TransactionStatus
		want   bool
	}{
		{TransactionStatusUnmatched, true},
		{TransactionStatusMatched, true},
		{TransactionStatusPending, false},
		{TransactionStatusBooked, false},
		{TransactionStatusReconciled, false},
	}

	for _, tt := range tests {
		tx := &BankTransaction{Status: tt.status}
		if got := tx.Bookable(); got != tt.want {
			t.Errorf("Bookable() with status %s = %v, want %v", tt.status, got, tt.want)
		}
	}
}
