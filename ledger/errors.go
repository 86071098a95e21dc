package ledger

import (
	"errors"
	"fmt"

	"github.com/robinvdvleuten/feledger/ast"
)

// Sentinel errors matched with errors.Is by callers that only care about the
// failure kind.
var (
	ErrUnbalanced       = errors.New("transaction does not balance")
	ErrCurrencyMismatch = errors.New("multiple currencies in one account")
)

// location renders "file:line" for errors tied to source, falling back to
// the transaction date for values built in code.
func location(pos ast.Position, date ast.Date) string {
	if pos.Filename == "" {
		if pos.Line == 0 {
			return date.String()
		}
		return fmt.Sprintf("line %d", pos.Line)
	}
	return fmt.Sprintf("%s:%d", pos.Filename, pos.Line)
}

// UnbalancedError is returned when some currency in a transaction does not
// sum to exactly zero. It deliberately carries only the transaction.
type UnbalancedError struct {
	Transaction *ast.Transaction
}

func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("%s: %s (%q)", location(e.Transaction.Pos, e.Transaction.Date),
		ErrUnbalanced, e.Transaction.Comment)
}

func (e *UnbalancedError) Unwrap() error {
	return ErrUnbalanced
}

func (e *UnbalancedError) GetPosition() ast.Position {
	return e.Transaction.Pos
}

func (e *UnbalancedError) GetTransaction() *ast.Transaction {
	return e.Transaction
}

// CurrencyMismatchError is returned when an entry would post a currency to an
// account already holding a different one.
type CurrencyMismatchError struct {
	Account     ast.Account
	Held        ast.Currency
	Got         ast.Currency
	Pos         ast.Position     // Position of the offending entry
	Transaction *ast.Transaction // Transaction containing the entry, if known
}

func (e *CurrencyMismatchError) Error() string {
	var date ast.Date
	if e.Transaction != nil {
		date = e.Transaction.Date
	}
	return fmt.Sprintf("%s: %s: account %s holds %q, entry posts %q",
		location(e.Pos, date), ErrCurrencyMismatch, e.Account, e.Held.Symbol, e.Got.Symbol)
}

func (e *CurrencyMismatchError) Unwrap() error {
	return ErrCurrencyMismatch
}

func (e *CurrencyMismatchError) GetPosition() ast.Position {
	return e.Pos
}

func (e *CurrencyMismatchError) GetTransaction() *ast.Transaction {
	return e.Transaction
}

// ValidationErrors wraps multiple validation errors
type ValidationErrors struct {
	Errors []error
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d validation errors occurred", len(e.Errors))
}

// Unwrap returns the underlying errors for error unwrapping
func (e *ValidationErrors) Unwrap() []error {
	return e.Errors
}
