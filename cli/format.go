package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/feledger/formatter"
)

type FormatCmd struct {
	File        FileOrStdin `help:"Ledger input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Write       bool        `help:"Write the result back to the input file instead of stdout." short:"w"`
	Yes         bool        `help:"Overwrite without asking for confirmation." short:"y"`
	ValueColumn int         `help:"Column at which amounts end (auto-calculated from content if 0)." default:"0"`
	Indent      int         `help:"Number of spaces before each account." default:"2"`
}

func (cmd *FormatCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	if cmd.Write && cmd.File.IsStdin() {
		return errors.New("cannot write formatted output back to stdin")
	}

	runCtx, reportTelemetry := startTelemetry(context.Background(), ctx, globals,
		fmt.Sprintf("format %s", filepath.Base(cmd.File.Filename)))
	defer reportTelemetry()

	result, source, err := loadInput(runCtx, ctx, &cmd.File)
	if err != nil {
		return err
	}

	opts := []formatter.Option{formatter.WithIndentation(cmd.Indent)}
	if cmd.ValueColumn > 0 {
		opts = append(opts, formatter.WithValueColumn(cmd.ValueColumn))
	}
	f := formatter.New(opts...)

	var buf bytes.Buffer
	if err := f.Format(runCtx, result.Ledger, &buf); err != nil {
		return err
	}

	if !cmd.Write {
		_, err := ctx.Stdout.Write(buf.Bytes())
		return err
	}

	filename := cmd.File.GetAbsoluteFilename()
	if bytes.Equal(buf.Bytes(), source) {
		printSuccess(ctx.Stdout, fmt.Sprintf("%s is already formatted", pathStyle.Render(filename)))
		return nil
	}

	if !cmd.Yes && isTerminal() {
		confirmed, err := promptYesNo(fmt.Sprintf("Overwrite %q?", filename))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !confirmed {
			printInfof(ctx.Stdout, "Left %s unchanged", pathStyle.Render(filename))
			return nil
		}
	}

	info, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to access file: %w", err)
	}
	if err := os.WriteFile(filename, buf.Bytes(), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Formatted %s", pathStyle.Render(filename)))
	return nil
}
