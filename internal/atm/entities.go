// Package atm holds the domain types of the ATM simulator: account keys,
// accounts, and the transactions that make up an account's ledger.
package atm

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/money"

	"github.com/tinoosan/atm/internal/errs"
)

// Currency is the only currency the simulator dispenses.
const Currency = "USD"

// AccountKey identifies an account by card number and PIN.
type AccountKey struct {
	Card int64
	PIN  int
}

// String renders the key with the PIN masked so it is safe to log.
func (k AccountKey) String() string {
	return strconv.FormatInt(k.Card, 10) + ":****"
}

// ParseKey converts textual card and PIN values into an AccountKey.
func ParseKey(card, pin string) (AccountKey, error) {
	c, err := strconv.ParseInt(strings.TrimSpace(card), 10, 64)
	if err != nil || c < 0 {
		return AccountKey{}, fmt.Errorf("%w: invalid card number %q", errs.ErrInvalid, card)
	}
	p, err := strconv.Atoi(strings.TrimSpace(pin))
	if err != nil || p < 0 {
		return AccountKey{}, fmt.Errorf("%w: invalid pin", errs.ErrInvalid)
	}
	return AccountKey{Card: c, PIN: p}, nil
}

// Account is a registered cardholder account.
type Account struct {
	Key     AccountKey
	Owner   string
	Balance money.Amount
}

// Kind is the direction of a cash movement.
type Kind string

const (
	// KindDeposit adds cash to the account.
	KindDeposit Kind = "deposit"
	// KindWithdrawal removes cash from the account.
	KindWithdrawal Kind = "withdrawal"
)

// Label is the capitalized form used in ledger descriptions.
func (k Kind) Label() string {
	switch k {
	case KindDeposit:
		return "Deposit"
	case KindWithdrawal:
		return "Withdrawal"
	default:
		return string(k)
	}
}

// Transaction is one ledger entry. Balance is the account balance after the
// entry was applied.
type Transaction struct {
	ID          uuid.UUID
	Key         AccountKey
	Kind        Kind
	Amount      money.Amount
	Balance     money.Amount
	Date        time.Time
	Description string
}

// NewTransaction builds a ledger entry with its formatted description.
func NewTransaction(key AccountKey, kind Kind, amount, balance money.Amount, at time.Time) Transaction {
	return Transaction{
		ID:          uuid.New(),
		Key:         key,
		Kind:        kind,
		Amount:      amount,
		Balance:     balance,
		Date:        at,
		Description: Describe(kind, amount, balance),
	}
}

// Describe formats a ledger line, e.g.
// "Withdrawal - Amount: $20.00, Updated Balance: $280.30".
func Describe(kind Kind, amount, balance money.Amount) string {
	return kind.Label() + " - Amount: " + FormatDollars(amount) + ", Updated Balance: " + FormatDollars(balance)
}

// FormatDollars renders an amount as "$X.XX".
func FormatDollars(a money.Amount) string {
	units, _ := a.MinorUnits()
	sign := ""
	if units < 0 {
		sign = "-"
		units = -units
	}
	return fmt.Sprintf("%s$%d.%02d", sign, units/100, units%100)
}

// Zero returns a zero amount in the simulator currency.
func Zero() money.Amount {
	a, _ := money.NewAmountFromMinorUnits(Currency, 0)
	return a
}

// ParseAmount parses a decimal string such as "300.30" or "$20" into a
// normalized amount. Negative values parse; callers decide whether to accept them.
func ParseAmount(s string) (money.Amount, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	a, err := money.ParseAmount(Currency, s)
	if err != nil {
		return money.Amount{}, fmt.Errorf("%w: %q", errs.ErrInvalidAmount, s)
	}
	return Normalize(a)
}

// MustParseAmount is ParseAmount for literals known to be valid.
func MustParseAmount(s string) money.Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Normalize checks that a is in the simulator currency and representable in
// whole cents, and returns it rescaled to two decimals.
func Normalize(a money.Amount) (money.Amount, error) {
	if code := a.Curr().Code(); code != Currency {
		return money.Amount{}, fmt.Errorf("%w: currency %s not supported", errs.ErrInvalidAmount, code)
	}
	units, ok := a.MinorUnits()
	if !ok {
		return money.Amount{}, fmt.Errorf("%w: out of range", errs.ErrInvalidAmount)
	}
	exact, err := money.NewAmountFromMinorUnits(Currency, units)
	if err != nil {
		return money.Amount{}, fmt.Errorf("%w: %v", errs.ErrInvalidAmount, err)
	}
	diff, err := a.Sub(exact)
	if err != nil || !diff.IsZero() {
		return money.Amount{}, fmt.Errorf("%w: finer than one cent", errs.ErrInvalidAmount)
	}
	return exact, nil
}
