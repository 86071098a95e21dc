package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/feledger/logger"
	"github.com/robinvdvleuten/feledger/web"
)

// Version is reported by the web server. Main sets it before running.
var Version = "dev"

type WebCmd struct {
	File     string `help:"Ledger file to serve." arg:""`
	Port     int    `help:"Port to listen on." default:"8080" env:"FELEDGER_PORT"`
	Host     string `help:"Host to bind to." default:"127.0.0.1" env:"FELEDGER_HOST"`
	Create   bool   `help:"Automatically create file if it doesn't exist (no confirmation prompt)." short:"c"`
	ReadOnly bool   `help:"Enable read-only mode (no write operations allowed)." short:"r" env:"FELEDGER_READ_ONLY"`
	Watch    bool   `help:"Reload the ledger when the file changes on disk." default:"true" negatable:""`
}

func (cmd *WebCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runCtx, reportTelemetry := startTelemetry(runCtx, ctx, globals, "web")
	defer reportTelemetry()

	ledgerFile, err := filepath.Abs(cmd.File)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if err := cmd.ensureFile(ctx, ledgerFile); err != nil {
		return err
	}

	log := logger.New(logger.Config{Level: globals.LogLevel, Format: globals.LogFormat}, ctx.Stderr)

	server := web.New(ledgerFile,
		web.WithPort(cmd.Port),
		web.WithHost(cmd.Host),
		web.WithVersion(Version),
		web.WithReadOnly(cmd.ReadOnly),
		web.WithWatch(cmd.Watch),
		web.WithLogger(log),
	)

	printInfof(ctx.Stdout, "Starting server on http://%s:%d", cmd.Host, cmd.Port)
	printInfof(ctx.Stdout, "Serving ledger: %s", pathStyle.Render(ledgerFile))

	if cmd.ReadOnly {
		printInfof(ctx.Stdout, "Server running in READ-ONLY mode")
	}

	return server.Start(runCtx)
}

// ensureFile creates a missing ledger file after confirmation, or without
// asking when --create is set.
func (cmd *WebCmd) ensureFile(ctx *kong.Context, ledgerFile string) error {
	_, err := os.Stat(ledgerFile)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to access file: %w", err)
	}

	shouldCreate := cmd.Create
	if !shouldCreate {
		confirmed, err := promptYesNo(fmt.Sprintf("File %q does not exist. Create it?", ledgerFile))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		shouldCreate = confirmed
	}

	if !shouldCreate {
		return fmt.Errorf("file does not exist: %s", ledgerFile)
	}

	if err := os.MkdirAll(filepath.Dir(ledgerFile), 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	if err := os.WriteFile(ledgerFile, nil, 0600); err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	printInfof(ctx.Stdout, "Created empty ledger file: %s", pathStyle.Render(ledgerFile))
	return nil
}
