package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/feledger/ledger"
	"github.com/robinvdvleuten/feledger/loader"
)

type CheckCmd struct {
	File FileOrStdin `help:"Ledger input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx, reportTelemetry := startTelemetry(context.Background(), ctx, globals,
		fmt.Sprintf("check %s", filepath.Base(cmd.File.Filename)))
	defer reportTelemetry()

	result, source, err := loadInput(runCtx, ctx, &cmd.File)
	if err != nil {
		return err
	}

	l := ledger.New()
	if err := l.Process(runCtx, result.Ledger); err != nil {
		var validationErrors *ledger.ValidationErrors
		if errors.As(err, &validationErrors) {
			renderer := NewErrorRenderer(source)
			_, _ = fmt.Fprintln(ctx.Stderr, renderer.RenderAll(validationErrors.Errors))

			_, _ = fmt.Fprintln(ctx.Stderr)
			printError(ctx.Stderr, fmt.Sprintf("%d validation error(s) found", len(validationErrors.Errors)))
			return NewCommandError(1)
		}
		return err
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Check passed: %d transactions, %d accounts",
		len(l.Transactions()), len(l.Accounts())))

	return nil
}

// loadInput parses the command input. A parse error is rendered with source
// context on stderr and turned into a CommandError.
func loadInput(runCtx context.Context, ctx *kong.Context, file *FileOrStdin) (*loader.Result, []byte, error) {
	source, err := file.GetSourceContent()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file: %w", err)
	}

	result, err := file.Load(runCtx, loader.New())
	if err != nil {
		renderer := NewErrorRenderer(source)
		_, _ = fmt.Fprintln(ctx.Stderr, renderer.Render(err))

		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, "parse error")
		return nil, nil, NewCommandError(1)
	}

	return result, source, nil
}
