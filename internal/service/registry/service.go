// Package registry implements the account registry rules: unique (card, PIN)
// keys, non-negative balances, and an append-only ledger per account.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/govalues/money"

	"github.com/tinoosan/atm/internal/atm"
	"github.com/tinoosan/atm/internal/errs"
	"github.com/tinoosan/atm/internal/ledgerfile"
)

type Repo interface {
	GetAccount(ctx context.Context, key atm.AccountKey) (atm.Account, error)
	ListAccounts(ctx context.Context) ([]atm.Account, error)
	TransactionsByKey(ctx context.Context, key atm.AccountKey) ([]atm.Transaction, error)
	ListTransactions(ctx context.Context) (map[atm.AccountKey][]atm.Transaction, error)
}

type Writer interface {
	CreateAccount(ctx context.Context, a atm.Account) (atm.Account, error)
	// ApplyTransaction stores the account's new balance and appends tx in one step.
	ApplyTransaction(ctx context.Context, a atm.Account, tx atm.Transaction) (atm.Account, error)
}

type Service interface {
	RegisterAccount(ctx context.Context, key atm.AccountKey, owner string, initial money.Amount) error
	WithdrawCash(ctx context.Context, key atm.AccountKey, amount money.Amount) error
	DepositCash(ctx context.Context, key atm.AccountKey, amount money.Amount) error
	PrintLedger(ctx context.Context, path string, key atm.AccountKey) error
	Accounts(ctx context.Context) (map[atm.AccountKey]atm.Account, error)
	Transactions(ctx context.Context) (map[atm.AccountKey][]string, error)
	Account(ctx context.Context, key atm.AccountKey) (atm.Account, error)
	History(ctx context.Context, key atm.AccountKey) ([]atm.Transaction, error)
}

type service struct {
	// mu serializes read-check-apply sequences against the store.
	mu     sync.Mutex
	repo   Repo
	writer Writer
	log    *slog.Logger
	now    func() time.Time
}

func New(repo Repo, writer Writer, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{repo: repo, writer: writer, log: logger, now: time.Now}
}

func (s *service) RegisterAccount(ctx context.Context, key atm.AccountKey, owner string, initial money.Amount) (err error) {
	defer func() { observe("register", err) }()
	balance, err := nonNegative(initial)
	if err != nil {
		return fmt.Errorf("register %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.repo.GetAccount(ctx, key); err == nil {
		s.log.Info("registration rejected", "card", key.String(), "reason", "duplicate")
		return fmt.Errorf("register %s: %w", key, errs.ErrDuplicate)
	} else if !errors.Is(err, errs.ErrNotFound) {
		return err
	}
	if _, err := s.writer.CreateAccount(ctx, atm.Account{Key: key, Owner: owner, Balance: balance}); err != nil {
		return fmt.Errorf("register %s: %w", key, err)
	}
	s.log.Debug("account registered", "card", key.String(), "owner", owner, "balance", atm.FormatDollars(balance))
	return nil
}

func (s *service) WithdrawCash(ctx context.Context, key atm.AccountKey, amount money.Amount) (err error) {
	defer func() { observe("withdraw", err) }()
	return s.post(ctx, key, atm.KindWithdrawal, amount)
}

func (s *service) DepositCash(ctx context.Context, key atm.AccountKey, amount money.Amount) (err error) {
	defer func() { observe("deposit", err) }()
	return s.post(ctx, key, atm.KindDeposit, amount)
}

// post validates and applies a cash movement. Nothing is written unless every
// check passes.
func (s *service) post(ctx context.Context, key atm.AccountKey, kind atm.Kind, amount money.Amount) error {
	amount, err := nonNegative(amount)
	if err != nil {
		return fmt.Errorf("%s %s: %w", kind, key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acc, err := s.repo.GetAccount(ctx, key)
	if err != nil {
		return fmt.Errorf("%s %s: %w", kind, key, err)
	}

	var next money.Amount
	switch kind {
	case atm.KindDeposit:
		next, err = acc.Balance.Add(amount)
	case atm.KindWithdrawal:
		next, err = acc.Balance.Sub(amount)
		if err == nil && next.IsNeg() {
			s.log.Info("withdrawal rejected", "card", key.String(), "amount", atm.FormatDollars(amount), "balance", atm.FormatDollars(acc.Balance))
			return fmt.Errorf("withdraw %s from %s: %w", atm.FormatDollars(amount), key, errs.ErrInsufficientFunds)
		}
	default:
		return fmt.Errorf("%w: unknown transaction kind %q", errs.ErrInvalid, kind)
	}
	if err != nil {
		return fmt.Errorf("%s %s: %w: %v", kind, key, errs.ErrInvalidAmount, err)
	}

	acc.Balance = next
	tx := atm.NewTransaction(key, kind, amount, next, s.now())
	if _, err := s.writer.ApplyTransaction(ctx, acc, tx); err != nil {
		return fmt.Errorf("%s %s: %w", kind, key, err)
	}
	s.log.Debug("transaction posted", "card", key.String(), "id", tx.ID.String(), "description", tx.Description)
	return nil
}

func (s *service) PrintLedger(ctx context.Context, path string, key atm.AccountKey) (err error) {
	defer func() { observe("print_ledger", err) }()
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("print ledger %s: %w: path is required", key, errs.ErrInvalid)
	}
	txs, err := s.History(ctx, key)
	if err != nil {
		return fmt.Errorf("print ledger: %w", err)
	}
	lines := make([]string, len(txs))
	for i, tx := range txs {
		lines[i] = tx.Description
	}
	if err := ledgerfile.Write(path, lines); err != nil {
		return err
	}
	s.log.Debug("ledger printed", "card", key.String(), "path", path, "entries", len(lines))
	return nil
}

// Accounts returns a copy of every registered account keyed by AccountKey.
func (s *service) Accounts(ctx context.Context) (map[atm.AccountKey]atm.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.repo.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[atm.AccountKey]atm.Account, len(list))
	for _, a := range list {
		out[a.Key] = a
	}
	return out, nil
}

// Transactions returns a copy of every account's ledger descriptions.
// Registered accounts without postings map to an empty, non-nil slice.
func (s *service) Transactions(ctx context.Context) (map[atm.AccountKey][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	accs, err := s.repo.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	all, err := s.repo.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[atm.AccountKey][]string, len(accs))
	for _, a := range accs {
		txs := all[a.Key]
		lines := make([]string, len(txs))
		for i, tx := range txs {
			lines[i] = tx.Description
		}
		out[a.Key] = lines
	}
	return out, nil
}

func (s *service) Account(ctx context.Context, key atm.AccountKey) (atm.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.GetAccount(ctx, key)
}

// History returns the ledger entries of one account in insertion order.
func (s *service) History(ctx context.Context, key atm.AccountKey) ([]atm.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.repo.GetAccount(ctx, key); err != nil {
		return nil, err
	}
	return s.repo.TransactionsByKey(ctx, key)
}

func nonNegative(a money.Amount) (money.Amount, error) {
	n, err := atm.Normalize(a)
	if err != nil {
		return money.Amount{}, err
	}
	if n.IsNeg() {
		return money.Amount{}, fmt.Errorf("%w: %s is negative", errs.ErrInvalidAmount, atm.FormatDollars(n))
	}
	return n, nil
}
