package cli

import (
	"context"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/feledger/ast"
	"github.com/robinvdvleuten/feledger/formatter"
	"github.com/robinvdvleuten/feledger/ledger"
)

var (
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	headerStyle = cellStyle.Bold(true)
	amountStyle = cellStyle.Align(lipgloss.Right)
)

type BalancesCmd struct {
	File FileOrStdin `help:"Ledger input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Tree bool        `help:"Roll balances up along the account hierarchy." short:"t"`
}

func (cmd *BalancesCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx, reportTelemetry := startTelemetry(context.Background(), ctx, globals,
		fmt.Sprintf("balances %s", filepath.Base(cmd.File.Filename)))
	defer reportTelemetry()

	result, source, err := loadInput(runCtx, ctx, &cmd.File)
	if err != nil {
		return err
	}

	l := ledger.New()
	procErr := l.Process(runCtx, result.Ledger)

	if cmd.Tree {
		renderBalanceTree(ctx.Stdout, l.BalanceTree())
	} else {
		renderTrialBalance(ctx.Stdout, l)
	}

	// Balances are printed for the valid transactions either way.
	if procErr != nil {
		_, _ = fmt.Fprintln(ctx.Stderr)
		_, _ = fmt.Fprintln(ctx.Stderr, NewErrorRenderer(source).RenderAll(l.Errors()))
		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, fmt.Sprintf("%d transaction(s) skipped", len(l.Errors())))
		return NewCommandError(1)
	}

	return nil
}

// renderTrialBalance prints one row per account followed by the totals per
// currency.
func renderTrialBalance(w io.Writer, l *ledger.Ledger) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 1:
				return amountStyle
			default:
				return cellStyle
			}
		}).
		Headers("Account", "Balance")

	for _, row := range l.TrialBalance() {
		t.Row(row.Account.Label, formatter.FormatValue(row.Value))
	}

	for _, total := range sortedTotals(l.Totals()) {
		t.Row("total", total)
	}

	_, _ = fmt.Fprintln(w, t.String())
}

func sortedTotals(totals map[ast.Currency]float64) []string {
	out := make([]string, 0, len(totals))
	for c, amount := range totals {
		out = append(out, formatter.FormatValue(ast.Value{Amount: round(amount), Currency: c}))
	}
	slices.Sort(out)
	return out
}

// round trims float noise from summed amounts. Overflowed sums are left
// as is and rendered by the formatter.
func round(amount float64) float64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return amount
	}
	f, _ := decimal.NewFromFloat(amount).Round(8).Float64()
	return f
}

// renderBalanceTree prints the account hierarchy with one column per
// currency. Names are padded by display width so wide labels stay aligned.
func renderBalanceTree(w io.Writer, tree *ledger.BalanceTree) {
	nameWidth := 0
	tree.Walk(func(n *ledger.BalanceNode) {
		nameWidth = max(nameWidth, runewidth.StringWidth(treeLabel(n)))
	})

	columns := make([][]string, len(tree.Currencies))
	widths := make([]int, len(tree.Currencies))
	var nodes []*ledger.BalanceNode
	tree.Walk(func(n *ledger.BalanceNode) {
		nodes = append(nodes, n)
		for i, c := range tree.Currencies {
			cell := ""
			if amount, ok := n.Balance[c]; ok {
				cell = formatter.FormatValue(ast.Value{Amount: round(amount), Currency: c})
			}
			columns[i] = append(columns[i], cell)
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	})

	for row, n := range nodes {
		var line strings.Builder
		label := treeLabel(n)
		line.WriteString(label)
		line.WriteString(strings.Repeat(" ", nameWidth-runewidth.StringWidth(label)))
		for i := range tree.Currencies {
			cell := columns[i][row]
			line.WriteString("  ")
			line.WriteString(strings.Repeat(" ", widths[i]-runewidth.StringWidth(cell)))
			line.WriteString(cell)
		}
		_, _ = fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
	}
}

func treeLabel(n *ledger.BalanceNode) string {
	return strings.Repeat("  ", n.Depth) + n.Name
}
