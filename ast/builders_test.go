package ast

import (
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
)

func TestNewDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{"Valid", "2016/08/24", Date{2016, 8, 24}, false},
		{"NoCalendarCheck", "2016/13/45", Date{2016, 13, 45}, false},
		{"Dashes", "2016-08-24", Date{}, true},
		{"Short", "2016/8/24", Date{}, true},
		{"Letters", "20x6/08/24", Date{}, true},
		{"Empty", "", Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, err := NewDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, date)
		})
	}
}

func TestNewDateFromTime(t *testing.T) {
	date := NewDateFromTime(time.Date(2024, time.March, 5, 13, 45, 0, 0, time.UTC))
	assert.Equal(t, Date{Year: 2024, Month: 3, Day: 5}, date)
	assert.Equal(t, "2024/03/05", date.String())
}

func TestNewAccount(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		wantErr bool
	}{
		{"Single", "assets", false},
		{"Nested", "expenses:food:groceries", false},
		{"MixedCase", "Assets:Cash", false},
		{"Empty", "", true},
		{"TrailingColon", "assets:", true},
		{"DoubleColon", "assets::cash", true},
		{"Digit", "assets:bank1", true},
		{"Space", "assets cash", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acct, err := NewAccount(tt.label)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.label, acct.Label)
		})
	}
}

func TestNewTransaction(t *testing.T) {
	txn := NewTransaction(MustDate("2016/08/24"), "A test transaction",
		WithEntries(
			NewEntry("expenses:time", NewValue(100, "$")),
			NewEntry("assets:joy", NewValue(-100, "$")),
		),
		WithPosition(Position{Filename: "test.ledger", Line: 1, Column: 1}),
	)

	assert.Equal(t, "A test transaction", txn.Comment)
	assert.Equal(t, 2, len(txn.Entries))
	assert.Equal(t, Account{Label: "assets:joy"}, txn.Entries[1].Account)
	assert.Equal(t, "test.ledger:1:1", txn.Pos.String())
	assert.Equal(t, []Currency{{Symbol: "$"}}, txn.Currencies())
	assert.Equal(t, []Account{{Label: "expenses:time"}, {Label: "assets:joy"}}, txn.Accounts())
}

func TestMustDatePanics(t *testing.T) {
	assert.Panics(t, func() { MustDate("not a date") })
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{100, "100"},
		{-100, "-100"},
		{0.5, "0.5"},
		{-42.1, "-42.1"},
		{1e21, "1000000000000000000000"},
		{0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.amount))
		})
	}
}
