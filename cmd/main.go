package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tinoosan/atm/internal/atm"
	"github.com/tinoosan/atm/internal/config"
	"github.com/tinoosan/atm/internal/httpapi"
	"github.com/tinoosan/atm/internal/service/registry"
	"github.com/tinoosan/atm/internal/session"
	"github.com/tinoosan/atm/internal/storage/memory"
)

// Exit codes.
const (
	exitOK       = 0
	exitError    = 1
	exitConfig   = 2
	exitCommands = 3
)

func main() {
	os.Exit(run())
}

// run owns every deferred cleanup so main can exit once they have run.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitConfig
	}
	// Logs go to stderr so session output on stdout stays clean.
	logger := buildLogger(cfg, os.Stderr)
	slog.SetDefault(logger)

	store := memory.New()
	svc := registry.New(store, store, logger)

	if cfg.DevSeed {
		seed := atm.AccountKey{Card: 12345678, PIN: 1234}
		if err := svc.RegisterAccount(ctx, seed, "Sam Sepiol", atm.MustParseAmount("300.30")); err != nil {
			logger.Error("dev seed failed", "err", err)
		} else {
			logger.Info("DEV seed (memory)", "card", seed.String(), "owner", "Sam Sepiol")
			printDevSeedBanner(seed)
		}
	}

	var srv *http.Server
	if cfg.HTTPAddr != "" {
		srv = &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           httpapi.New(svc, logger).Handler(),
			ReadTimeout:       5 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
		go func() {
			logger.Info("diagnostics listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("server error", "err", err)
			}
		}()
	}

	in, closeIn, err := openScript(cfg.ScriptPath)
	if err != nil {
		logger.Error("failed to open session script", "path", cfg.ScriptPath, "err", err)
		return exitError
	}
	sum, runErr := session.New(svc, os.Stdout, logger).Run(ctx, in)
	closeIn()
	logger.Info("session finished", "executed", sum.Executed, "failed", sum.Failed)

	if srv != nil {
		// Keep diagnostics up until interrupted.
		if runErr == nil {
			<-ctx.Done()
		}
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctxShutdown); err != nil {
			logger.Error("server shutdown error", "err", err)
		}
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		logger.Error("session error", "err", runErr)
		return exitError
	}
	if sum.Failed > 0 {
		return exitCommands
	}
	return exitOK
}

func openScript(path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// printDevSeedBanner prints the seeded account to stdout for easy copy/paste
func printDevSeedBanner(key atm.AccountKey) {
	fmt.Println("==================== DEV SEED ====================")
	fmt.Printf("card: %d\n", key.Card)
	fmt.Printf("pin: %d\n", key.PIN)
	fmt.Println("owner: Sam Sepiol, balance: $300.30")
	fmt.Println("==================================================")
}

func buildLogger(cfg config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == config.FormatText {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	// default to JSON
	return slog.New(slog.NewJSONHandler(w, opts))
}
