package ast

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestDate_String(t *testing.T) {
	assert.Equal(t, "2016/08/24", Date{Year: 2016, Month: 8, Day: 24}.String())
	assert.Equal(t, "0001/01/01", Date{Year: 1, Month: 1, Day: 1}.String())
}

func TestDate_Compare(t *testing.T) {
	a := Date{2016, 8, 24}
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, -1, a.Compare(Date{2016, 8, 25}))
	assert.Equal(t, 1, a.Compare(Date{2016, 7, 31}))
	assert.Equal(t, -1, a.Compare(Date{2017, 1, 1}))
}

func TestAccount_Hierarchy(t *testing.T) {
	acct := Account{Label: "expenses:food:groceries"}
	assert.Equal(t, []string{"expenses", "food", "groceries"}, acct.Segments())
	assert.Equal(t, 2, acct.Depth())

	parent, ok := acct.Parent()
	assert.True(t, ok)
	assert.Equal(t, Account{Label: "expenses:food"}, parent)

	root, ok := Account{Label: "expenses"}.Parent()
	assert.False(t, ok)
	assert.Equal(t, Account{}, root)

	assert.Equal(t, 0, len(Account{}.Segments()))
}

func TestAccount_MapKey(t *testing.T) {
	m := map[Account]int{}
	m[Account{Label: "assets:cash"}]++
	m[Account{Label: "assets:cash"}]++
	assert.Equal(t, 1, len(m))
	assert.Equal(t, 2, m[Account{Label: "assets:cash"}])
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, "$100", NewValue(100, "$").String())
	assert.Equal(t, "$-0.5", NewValue(-0.5, "$").String())
	assert.Equal(t, "USD 12.25", NewValue(12.25, "USD ").String())
}

func TestLedger_Counts(t *testing.T) {
	var empty *Ledger
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, 0, empty.Entries())

	l := &Ledger{Transactions: []*Transaction{
		NewTransaction(Date{2016, 8, 24}, "", WithEntries(
			NewEntry("a", NewValue(1, "$")),
			NewEntry("b", NewValue(-1, "$")),
		)),
		NewTransaction(Date{2016, 8, 25}, "", WithEntries(
			NewEntry("a", NewValue(2, "€")),
		)),
	}}
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, 3, l.Entries())
}
