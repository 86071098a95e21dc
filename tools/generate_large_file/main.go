// Large Ledger File Generator
//
// This tool generates a large ledger file for performance testing and profiling.
// Every generated transaction balances, so the output also passes `feledger check`.
//
// Usage:
//
//	go run main.go > large.feledger
//	go run main.go 20000000 > large.feledger  # Specify target size in bytes
package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/feledger/ast"
)

const (
	defaultTargetSize = 10 * 1024 * 1024 // 10MB
)

var (
	// Each account only ever holds one currency.
	dollarAccounts = []string{
		"assets:bank:checking",
		"assets:bank:savings",
		"assets:cash",
		"liabilities:creditcard:visa",
		"income:salary",
		"income:bonus",
		"expenses:food:groceries",
		"expenses:food:restaurant",
		"expenses:housing:rent",
		"expenses:housing:utilities",
		"expenses:transport:gas",
		"expenses:shopping:clothing",
		"expenses:entertainment:movies",
		"expenses:healthcare:dental",
		"equity:opening",
	}

	euroAccounts = []string{
		"assets:bank:berlin",
		"liabilities:creditcard:euro",
		"expenses:travel:train",
		"expenses:travel:hotel",
		"expenses:travel:food",
	}

	comments = []string{
		"Grocery shopping", "Fuel purchase", "Rent payment",
		"Salary deposit", "Utility bill", "Online purchase",
		"Restaurant dinner", "Coffee", "Monthly subscription",
		"Medical appointment", "Train to Berlin", "Hotel night",
	}
)

func main() {
	targetSize := defaultTargetSize
	if len(os.Args) > 1 {
		if size, err := strconv.Atoi(os.Args[1]); err == nil {
			targetSize = size
		}
	}

	w := bufio.NewWriter(os.Stdout)
	defer func() { _ = w.Flush() }()

	currentDate := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	bytesWritten := 0
	transactionCount := 0

	for bytesWritten < targetSize {
		var output string

		switch rand.Intn(10) {
		case 0, 1, 2, 3, 4, 5: // 60% - Dollar transaction
			output = generateSimpleTransaction(currentDate, dollarAccounts, "$")
		case 6, 7: // 20% - Euro transaction
			output = generateSimpleTransaction(currentDate, euroAccounts, "€")
		default: // 20% - Split over three accounts
			output = generateSplitTransaction(currentDate)
		}

		_, _ = w.WriteString(output)
		bytesWritten += len(output)
		transactionCount++

		// Advance date by 0-2 days
		currentDate = currentDate.AddDate(0, 0, rand.Intn(3))
	}

	_, _ = fmt.Fprintf(os.Stderr, "\nGenerated %d bytes with %d transactions\n", bytesWritten, transactionCount)
}

func header(date time.Time) string {
	return fmt.Sprintf("%s %s\n", ast.NewDateFromTime(date), comments[rand.Intn(len(comments))])
}

func pick(accounts []string) (string, string) {
	a := rand.Intn(len(accounts))
	b := (a + 1 + rand.Intn(len(accounts)-1)) % len(accounts)
	return accounts[a], accounts[b]
}

func generateSimpleTransaction(date time.Time, accounts []string, symbol string) string {
	acc1, acc2 := pick(accounts)
	amount := randAmount(1, 500)

	return header(date) +
		fmt.Sprintf("  %s  %s%s\n", acc1, symbol, amount) +
		fmt.Sprintf("  %s  %s%s\n\n", acc2, symbol, amount.Neg())
}

// generateSplitTransaction uses whole amounts only, so the three entries sum
// to exactly zero as floats.
func generateSplitTransaction(date time.Time) string {
	acc1, acc2 := pick(dollarAccounts)
	acc3 := "assets:cash"
	if acc1 == acc3 || acc2 == acc3 {
		acc3 = "equity:opening"
	}
	if acc1 == acc3 || acc2 == acc3 {
		return generateSimpleTransaction(date, dollarAccounts, "$")
	}

	a := decimal.NewFromInt(int64(rand.Intn(400) + 1))
	b := decimal.NewFromInt(int64(rand.Intn(400) + 1))

	return header(date) +
		fmt.Sprintf("  %s  $%s\n", acc1, a) +
		fmt.Sprintf("  %s  $%s\n", acc2, b) +
		fmt.Sprintf("  %s  $%s\n\n", acc3, a.Add(b).Neg())
}

func randAmount(min, max float64) decimal.Decimal {
	return decimal.NewFromFloat(min + rand.Float64()*(max-min)).Round(2)
}
