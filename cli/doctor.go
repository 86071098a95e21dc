package cli

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/robinvdvleuten/feledger/parser"
)

// DoctorCmd provides doctor utilities for debugging ledger files.
type DoctorCmd struct {
	Lex LexCmd `cmd:"" help:"Show lexical tokens from a ledger file."`
	AST ASTCmd `cmd:"" name:"ast" help:"Show the parsed transactions of a ledger file."`
}

// LexCmd shows lexical tokens from a ledger file.
type LexCmd struct {
	File FileOrStdin `help:"Ledger input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

// Run executes the lex command. Tokens read before a syntax error are still
// printed, followed by the error.
func (cmd *LexCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	content, err := cmd.File.GetSourceContent()
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	tokens, lexErr := parser.Tokenize(content, cmd.File.Filename)

	// Format: TYPE line:col "content"
	for _, token := range tokens {
		if token.Type == parser.EOF {
			continue
		}

		_, _ = fmt.Fprintf(ctx.Stdout, "%-10s %d:%d    %q\n",
			token.Type.String(),
			token.Line,
			token.Column,
			token.String(content))
	}

	if lexErr != nil {
		_, _ = fmt.Fprintln(ctx.Stderr, NewErrorRenderer(content).Render(lexErr))
		return NewCommandError(1)
	}

	return nil
}

// ASTCmd dumps the parsed ledger.
type ASTCmd struct {
	File FileOrStdin `help:"Ledger input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

// Run executes the ast command.
func (cmd *ASTCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	result, _, err := loadInput(context.Background(), ctx, &cmd.File)
	if err != nil {
		return err
	}

	p := repr.New(ctx.Stdout, repr.Indent("  "), repr.OmitEmpty(true))
	p.Println(result.Ledger)

	return nil
}
