package parser

import (
	"context"
	"os"
	"strings"
	"testing"
)

func BenchmarkParseExample(b *testing.B) {
	data, err := os.ReadFile("../testdata/example.feledger")
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := ParseBytes(context.Background(), data)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseLarge(b *testing.B) {
	var sb strings.Builder
	for i := 0; i < 10000; i++ {
		sb.WriteString("2016/08/24 Groceries at the market\n  expenses:food:groceries  $42.10\n  assets:bank:checking  $-42.10\n\n")
	}
	data := []byte(sb.String())

	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := ParseBytes(context.Background(), data)
		if err != nil {
			b.Fatal(err)
		}
	}
}
