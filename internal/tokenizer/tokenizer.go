package tokenizer

import (
	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// NewTokenizer creates a tokenizer for one CSV line.
//
// Matchers are tried in order:
// 1. Comma
// 2. Double quote
// 3. Text run (everything else)
//
// Every character is covered by exactly one matcher, so the token stream
// always reaches the end of the input. Input must be valid UTF-8; callers
// holding arbitrary bytes mask them first (see parser.ParseLine).
func NewTokenizer() tokenizer.Tokenizer {
	return tokenizer.NewTokenizerWithoutWhitespace(
		tokenizer.StringMatcherFunc(TokenComma, ","),
		tokenizer.StringMatcherFunc(TokenDQuote, `"`),
		TextMatcher(),
	)
}

// NewTokenizerForLine creates a tokenizer already initialized with line.
func NewTokenizerForLine(line string) tokenizer.Tokenizer {
	tok := NewTokenizer()
	tok.Initialize(line)
	return tok
}

// TextMatcher matches runs of characters that are not a comma or a quote.
//
// Whitespace is part of the run; trimming happens when a field is closed.
//
// Performance: Uses ByteStream for fast scanning when available.
func TextMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		if byteStream, ok := stream.(tokenizer.ByteStream); ok {
			return textMatcherByte(byteStream)
		}
		return textMatcherRune(stream)
	}
}

// textMatcherByte scans bytes; comma and quote are ASCII so multi-byte
// sequences are never split.
func textMatcherByte(stream tokenizer.ByteStream) *tokenizer.Token {
	startPos := stream.BytePosition()

	for {
		b, ok := stream.PeekByte()
		if !ok || b == ',' || b == '"' {
			break
		}
		stream.NextByte()
	}

	if stream.BytePosition() == startPos {
		return nil
	}

	value := stream.SliceFrom(startPos)
	return tokenizer.NewToken(TokenText, []rune(string(value)))
}

func textMatcherRune(stream tokenizer.Stream) *tokenizer.Token {
	var value []rune

	for {
		r, ok := stream.PeekChar()
		if !ok || r == ',' || r == '"' {
			break
		}
		stream.NextChar()
		value = append(value, r)
	}

	if len(value) == 0 {
		return nil
	}

	return tokenizer.NewToken(TokenText, value)
}
