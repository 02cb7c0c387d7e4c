// Package session drives one ATM registry from a line-oriented command
// script, the way a terminal session would for the lifetime of the process.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/tinoosan/atm/internal/atm"
	"github.com/tinoosan/atm/internal/errs"
	"github.com/tinoosan/atm/internal/ledgerfile"
	"github.com/tinoosan/atm/internal/service/registry"
)

// ErrUsage is returned for unknown commands and malformed arguments.
var ErrUsage = fmt.Errorf("%w: usage", errs.ErrInvalid)

// MaxLine is the longest script line Run accepts. A longer line ends Run
// with bufio.ErrTooLong.
const MaxLine = 1 << 20

// Summary counts the commands a Run executed.
type Summary struct {
	Executed int
	Failed   int
}

// Session executes commands against a registry and writes results to out.
type Session struct {
	svc registry.Service
	out io.Writer
	log *slog.Logger
}

func New(svc registry.Service, out io.Writer, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{svc: svc, out: out, log: logger}
}

// Run executes every command read from in. A failing command is reported and
// the session continues; Run itself fails only on read errors or cancellation.
func (s *Session) Run(ctx context.Context, in io.Reader) (Summary, error) {
	var sum Summary
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLine)
	lineNo := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sum.Executed++
		if err := s.Exec(ctx, line); err != nil {
			sum.Failed++
			s.log.Info("command failed", "line", lineNo, "err", err)
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
	if err := sc.Err(); err != nil {
		return sum, fmt.Errorf("read session: %w", err)
	}
	return sum, nil
}

// Exec runs a single command line.
func (s *Session) Exec(ctx context.Context, line string) error {
	args, err := split(line)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(args[0]), args[1:]
	switch cmd {
	case "register":
		return s.register(ctx, args)
	case "deposit", "withdraw":
		return s.post(ctx, cmd, args)
	case "balance":
		return s.balance(ctx, args)
	case "history":
		return s.history(ctx, args)
	case "print":
		return s.print(ctx, args)
	case "show":
		return s.show(args)
	case "accounts":
		return s.accounts(ctx, args)
	default:
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}
}

// register <card> <pin> <owner> <amount>
func (s *Session) register(ctx context.Context, args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("%w: register <card> <pin> <owner> <amount>", ErrUsage)
	}
	key, err := atm.ParseKey(args[0], args[1])
	if err != nil {
		return err
	}
	amount, err := atm.ParseAmount(args[3])
	if err != nil {
		return err
	}
	if err := s.svc.RegisterAccount(ctx, key, args[2], amount); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "registered %s for %s with %s\n", key, args[2], atm.FormatDollars(amount))
	return nil
}

// deposit|withdraw <card> <pin> <amount>
func (s *Session) post(ctx context.Context, cmd string, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("%w: %s <card> <pin> <amount>", ErrUsage, cmd)
	}
	key, err := atm.ParseKey(args[0], args[1])
	if err != nil {
		return err
	}
	amount, err := atm.ParseAmount(args[2])
	if err != nil {
		return err
	}
	if cmd == "deposit" {
		err = s.svc.DepositCash(ctx, key, amount)
	} else {
		err = s.svc.WithdrawCash(ctx, key, amount)
	}
	if err != nil {
		return err
	}
	hist, err := s.svc.History(ctx, key)
	if err != nil {
		return err
	}
	if len(hist) > 0 {
		fmt.Fprintln(s.out, hist[len(hist)-1].Description)
	}
	return nil
}

// balance <card> <pin>
func (s *Session) balance(ctx context.Context, args []string) error {
	key, err := keyArgs("balance", args)
	if err != nil {
		return err
	}
	acc, err := s.svc.Account(ctx, key)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s %s\n", acc.Owner, atm.FormatDollars(acc.Balance))
	return nil
}

// history <card> <pin>
func (s *Session) history(ctx context.Context, args []string) error {
	key, err := keyArgs("history", args)
	if err != nil {
		return err
	}
	hist, err := s.svc.History(ctx, key)
	if err != nil {
		return err
	}
	for _, tx := range hist {
		fmt.Fprintln(s.out, tx.Description)
	}
	return nil
}

// print <path> <card> <pin>
func (s *Session) print(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("%w: print <path> <card> <pin>", ErrUsage)
	}
	key, err := atm.ParseKey(args[1], args[2])
	if err != nil {
		return err
	}
	if err := s.svc.PrintLedger(ctx, args[0], key); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "ledger for %s written to %s\n", key, args[0])
	return nil
}

// show <path>
func (s *Session) show(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: show <path>", ErrUsage)
	}
	lines, err := ledgerfile.Read(args[0])
	if err != nil {
		return err
	}
	for _, l := range lines {
		fmt.Fprintln(s.out, l)
	}
	return nil
}

// accounts
func (s *Session) accounts(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("%w: accounts takes no arguments", ErrUsage)
	}
	all, err := s.svc.Accounts(ctx)
	if err != nil {
		return err
	}
	list := make([]atm.Account, 0, len(all))
	for _, a := range all {
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Key.Card == list[j].Key.Card {
			return list[i].Key.PIN < list[j].Key.PIN
		}
		return list[i].Key.Card < list[j].Key.Card
	})
	for _, a := range list {
		fmt.Fprintf(s.out, "%d %s %s\n", a.Key.Card, a.Owner, atm.FormatDollars(a.Balance))
	}
	return nil
}

func keyArgs(cmd string, args []string) (atm.AccountKey, error) {
	if len(args) != 2 {
		return atm.AccountKey{}, fmt.Errorf("%w: %s <card> <pin>", ErrUsage, cmd)
	}
	return atm.ParseKey(args[0], args[1])
}

// split breaks a command line into fields with POSIX shell quoting rules.
func split(line string) ([]string, error) {
	args, err := shellquote.Split(line)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return args, nil
}
