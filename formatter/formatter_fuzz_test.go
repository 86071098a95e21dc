package formatter

import (
	"bytes"
	"context"
	"testing"

	"github.com/robinvdvleuten/feledger/parser"
)

// FuzzFormatRoundTrip checks that anything the parser accepts formats to
// text the parser accepts again, with the same shape.
func FuzzFormatRoundTrip(f *testing.F) {
	seeds := []string{
		"2016/08/24 A test transaction in a file\n  expenses:time  $100\n  assets:joy  $-100\n\n",
		"\n2016/08/24 \n  a  1\n\n",
		"2016/08/24 x\n  a  USD 3.\n  b  €-.5 trailing\n\n\n2016/08/25 y\n  c  ¥1e\n\n",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		ctx := context.Background()
		tree, err := parser.ParseString(ctx, input)
		if err != nil {
			return
		}

		var buf bytes.Buffer
		if err := New().Format(ctx, tree, &buf); err != nil {
			t.Fatalf("format failed: %v", err)
		}

		again, err := parser.ParseBytes(ctx, buf.Bytes())
		if err != nil {
			t.Fatalf("formatted output does not parse: %v\n%s", err, buf.String())
		}
		if again.Len() != tree.Len() || again.Entries() != tree.Entries() {
			t.Fatalf("shape changed: %d/%d -> %d/%d", tree.Len(), tree.Entries(), again.Len(), again.Entries())
		}
	})
}
