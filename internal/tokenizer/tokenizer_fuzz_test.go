package tokenizer

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// FuzzTokenizer checks that tokenizing never panics and never drops input.
// Run with: go test -fuzz=FuzzTokenizer -fuzztime=30s ./internal/tokenizer
func FuzzTokenizer(f *testing.F) {
	seeds := []string{
		"",
		"a",
		",",
		"\"",
		"\"\"",
		"a,b,c",
		"\"quoted\"",
		"\"with,comma\"",
		"\"with\"\"quote\"",
	}

	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		tok := NewTokenizerForLine(input)
		var sb strings.Builder
		for {
			token, ok := tok.NextToken()
			if !ok {
				break
			}
			sb.WriteString(token.ValueString())
		}
		if utf8.ValidString(input) && sb.String() != input {
			t.Fatalf("tokens of %q rebuild %q", input, sb.String())
		}
	})
}
