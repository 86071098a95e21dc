package parser

import (
	"context"
	"errors"
	"testing"
)

func FuzzParse(f *testing.F) {
	seeds := []string{
		"2016/08/24 A test transaction in a file\n  expenses:time  $100\n  assets:joy  $-100\n\n",
		"\n\n2016/08/24 \n  a  1\n\n",
		"2016/08/24 x\n  a  $1\n  b  €-.5 trailing\n\n\n2016/08/25 y\n  c  USD 3.\n\n",

		// Rejected inputs
		"",
		"\n",
		"2016/08/24 x\n  a  $1\n",
		"2016/08/24 x\r\n  a  $1\r\n\r\n",
		"2016/08/24 x\n  a  $\n\n",
		"2016/08/24 x\n  a  $-.\n\n",
		"2016/08/24\n",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		result, err := ParseString(context.Background(), input)
		if err != nil {
			if !errors.Is(err, ErrParse) {
				t.Fatalf("unexpected error type: %v", err)
			}
			if result != nil {
				t.Fatal("result returned alongside error")
			}
			return
		}
		if result.Len() == 0 {
			t.Fatal("successful parse without transactions")
		}
		for _, txn := range result.Transactions {
			if len(txn.Entries) == 0 {
				t.Fatalf("transaction at %s has no entries", txn.Pos)
			}
		}

		tokens, err := Tokenize([]byte(input), "")
		if err != nil {
			t.Fatalf("tokenize failed on parseable input: %v", err)
		}
		if tokens[len(tokens)-1].Type != EOF {
			t.Fatal("token stream not terminated by EOF")
		}
	})
}
