package ast

import (
	"fmt"
	"strings"
)

// Date is a calendar date as written in the source (YYYY/MM/DD). No calendar
// validation is applied, so a month of 13 is representable.
type Date struct {
	Year  int
	Month int
	Day   int
}

// String renders the date in the ledger's YYYY/MM/DD layout.
func (d Date) String() string {
	return fmt.Sprintf("%04d/%02d/%02d", d.Year, d.Month, d.Day)
}

// Compare orders dates field by field. Returns -1, 0 or 1.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return sign(d.Year - other.Year)
	case d.Month != other.Month:
		return sign(d.Month - other.Month)
	default:
		return sign(d.Day - other.Day)
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

// Account is a hierarchical account label whose segments are joined by a colon,
// for example "expenses:food". Two accounts with the same label are equal and
// interchangeable as map keys.
type Account struct {
	Label string
}

// Segments splits the label into its colon-separated parts.
func (a Account) Segments() []string {
	if a.Label == "" {
		return nil
	}
	return strings.Split(a.Label, ":")
}

// Parent returns the account one level up and true, or the zero Account and
// false for a top-level account.
func (a Account) Parent() (Account, bool) {
	i := strings.LastIndexByte(a.Label, ':')
	if i < 0 {
		return Account{}, false
	}
	return Account{Label: a.Label[:i]}, true
}

// Depth returns the number of segments minus one. Top-level accounts have depth 0.
func (a Account) Depth() int {
	return strings.Count(a.Label, ":")
}

func (a Account) String() string { return a.Label }

// Currency is the unit a value is expressed in. Only the symbol is retained;
// where it appeared relative to the number is not.
type Currency struct {
	Symbol string
}

func (c Currency) String() string { return c.Symbol }

// Value is a signed quantity of a currency. Whether a negative amount is a
// debit or a credit is left to the caller.
type Value struct {
	Amount   float64
	Currency Currency
}

// String renders the value the way it is written in a ledger file: the symbol
// followed by the signed amount.
func (v Value) String() string {
	return v.Currency.Symbol + FormatAmount(v.Amount)
}

// Entry is one account/value leg of a transaction.
type Entry struct {
	Pos     Position
	Account Account
	Value   Value
}
