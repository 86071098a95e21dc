package ast

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NewDate parses a date in YYYY/MM/DD form. Only the shape is checked: four,
// two and two ASCII digits separated by slashes.
//
// Example:
//
//	date, err := ast.NewDate("2016/08/24")
func NewDate(s string) (Date, error) {
	if len(s) != 10 || s[4] != '/' || s[7] != '/' {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY/MM/DD", s)
	}
	parts := [3]string{s[0:4], s[5:7], s[8:10]}
	var nums [3]int
	for i, part := range parts {
		for j := 0; j < len(part); j++ {
			if part[j] < '0' || part[j] > '9' {
				return Date{}, fmt.Errorf("invalid date %q: non-digit %q", s, part[j])
			}
		}
		n, _ := strconv.Atoi(part)
		nums[i] = n
	}
	return Date{Year: nums[0], Month: nums[1], Day: nums[2]}, nil
}

// MustDate is like NewDate but panics on error. Intended for tests and literals.
func MustDate(s string) Date {
	d, err := NewDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// NewDateFromTime creates a Date from the calendar portion of t.
func NewDateFromTime(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// NewAccount creates an Account from a label, rejecting labels that the
// parser would not accept: one or more runs of ASCII letters joined by colons.
//
// Example:
//
//	acct, err := ast.NewAccount("expenses:food")
func NewAccount(label string) (Account, error) {
	if label == "" {
		return Account{}, fmt.Errorf("invalid account: empty label")
	}
	for _, seg := range strings.Split(label, ":") {
		if seg == "" {
			return Account{}, fmt.Errorf("invalid account %q: empty segment", label)
		}
		for i := 0; i < len(seg); i++ {
			if !IsAlpha(seg[i]) {
				return Account{}, fmt.Errorf("invalid account %q: unexpected %q", label, seg[i])
			}
		}
	}
	return Account{Label: label}, nil
}

// IsAlpha reports whether b is an ASCII letter.
func IsAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// NewValue creates a Value of amount in the currency named by symbol.
func NewValue(amount float64, symbol string) Value {
	return Value{Amount: amount, Currency: Currency{Symbol: symbol}}
}

// NewEntry creates an entry for account with the given value. The account
// label is not validated; use NewAccount for that.
//
// Example:
//
//	entry := ast.NewEntry("assets:cash", ast.NewValue(-42.10, "$"))
func NewEntry(account string, value Value) Entry {
	return Entry{Account: Account{Label: account}, Value: value}
}

// TransactionOption is a functional option for configuring a Transaction.
type TransactionOption func(*Transaction)

// WithEntries appends entries to the transaction.
func WithEntries(entries ...Entry) TransactionOption {
	return func(t *Transaction) {
		t.Entries = append(t.Entries, entries...)
	}
}

// WithPosition sets the source position of the transaction header.
func WithPosition(pos Position) TransactionOption {
	return func(t *Transaction) {
		t.Pos = pos
	}
}

// NewTransaction creates a transaction with the given date and comment.
//
// Example:
//
//	txn := ast.NewTransaction(ast.MustDate("2016/08/24"), "Groceries",
//	    ast.WithEntries(
//	        ast.NewEntry("expenses:food", ast.NewValue(42.10, "$")),
//	        ast.NewEntry("assets:cash", ast.NewValue(-42.10, "$")),
//	    ),
//	)
func NewTransaction(date Date, comment string, opts ...TransactionOption) *Transaction {
	t := &Transaction{Date: date, Comment: comment}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// FormatAmount renders an amount in its shortest round-trippable decimal form,
// never using exponent notation so the result can be parsed back as a ledger
// value.
func FormatAmount(amount float64) string {
	if amount == 0 {
		// Avoid "-0".
		return "0"
	}
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
