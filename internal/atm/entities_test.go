package atm

import (
	"errors"
	"testing"
	"time"

	"github.com/govalues/money"

	"github.com/tinoosan/atm/internal/errs"
)

func TestDescribe(t *testing.T) {
	cases := []struct {
		kind    Kind
		amount  string
		balance string
		want    string
	}{
		{KindWithdrawal, "20", "280.30", "Withdrawal - Amount: $20.00, Updated Balance: $280.30"},
		{KindWithdrawal, "10", "270.3", "Withdrawal - Amount: $10.00, Updated Balance: $270.30"},
		{KindDeposit, "20", "320.30", "Deposit - Amount: $20.00, Updated Balance: $320.30"},
		{KindDeposit, "40000", "40099.90", "Deposit - Amount: $40000.00, Updated Balance: $40099.90"},
		{KindDeposit, "0", "0", "Deposit - Amount: $0.00, Updated Balance: $0.00"},
		{KindDeposit, "0.05", "1.05", "Deposit - Amount: $0.05, Updated Balance: $1.05"},
	}
	for _, c := range cases {
		got := Describe(c.kind, MustParseAmount(c.amount), MustParseAmount(c.balance))
		if got != c.want {
			t.Fatalf("Describe(%s, %s, %s) = %q, want %q", c.kind, c.amount, c.balance, got, c.want)
		}
	}
}

func TestParseAmount(t *testing.T) {
	a, err := ParseAmount("$300.3")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if units, _ := a.MinorUnits(); units != 30030 {
		t.Fatalf("units=%d want 30030", units)
	}
	neg, err := ParseAmount("-10")
	if err != nil {
		t.Fatalf("parse negative: %v", err)
	}
	if !neg.IsNeg() {
		t.Fatalf("expected negative amount, got %v", neg)
	}

	for _, bad := range []string{"", "abc", "1.005", "12,50"} {
		if _, err := ParseAmount(bad); !errors.Is(err, errs.ErrInvalidAmount) {
			t.Fatalf("ParseAmount(%q) err=%v want ErrInvalidAmount", bad, err)
		}
		if _, err := ParseAmount(bad); !errors.Is(err, errs.ErrInvalid) {
			t.Fatalf("ParseAmount(%q) should be an invalid argument", bad)
		}
	}
}

func TestNormalizeRejectsOtherCurrency(t *testing.T) {
	eur := money.MustParseAmount("EUR", "5.00")
	if _, err := Normalize(eur); !errors.Is(err, errs.ErrInvalidAmount) {
		t.Fatalf("want ErrInvalidAmount, got %v", err)
	}
}

func TestAccountKeyStringMasksPIN(t *testing.T) {
	k := AccountKey{Card: 12345678, PIN: 1234}
	if got := k.String(); got != "12345678:****" {
		t.Fatalf("String()=%q", got)
	}
}

func TestNewTransaction(t *testing.T) {
	key := AccountKey{Card: 1, PIN: 2}
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	tx := NewTransaction(key, KindWithdrawal, MustParseAmount("1.50"), MustParseAmount("8.50"), at)
	if tx.Key != key || tx.Kind != KindWithdrawal || !tx.Date.Equal(at) {
		t.Fatalf("unexpected transaction: %+v", tx)
	}
	if tx.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatalf("transaction id not set")
	}
	if tx.Description != "Withdrawal - Amount: $1.50, Updated Balance: $8.50" {
		t.Fatalf("description=%q", tx.Description)
	}
}
