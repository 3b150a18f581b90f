// Package parser splits CSV text into lines and lines into fields.
//
// Grammar of a single line:
//
//	Line   = Field { "," Field } ;
//	Field  = { Text | Quoted } ;
//	Quoted = '"' { Text | "," | '""' } [ '"' ] ;
//
// The scan is lenient: an unterminated quote runs to the end of the line and
// a quote in the middle of a field simply toggles quote state. Structural
// checks (column counts) belong to the caller.
package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/shapestone/shape-csv2json/internal/tokenizer"
)

// ParseLine splits one CSV line into its fields.
//
// The result always holds at least one field; an empty line yields a single
// empty field. ParseLine never fails. Bytes that are not valid UTF-8 are
// carried into the fields unchanged.
func ParseLine(line string) []string {
	// The tokenizer only sees a valid UTF-8 copy of line with the same byte
	// length. Field text is sliced from line by byte offset.
	tok := tokenizer.NewTokenizerForLine(maskInvalid(line))

	fields := make([]string, 0, 8)
	var cur strings.Builder
	inQuotes := false
	off := 0

	token, ok := tok.NextToken()
	for ok {
		next, hasNext := tok.NextToken()

		switch token.Kind() {
		case tokenizer.TokenDQuote:
			off++
			if inQuotes && hasNext && next.Kind() == tokenizer.TokenDQuote {
				// "" inside quotes is one literal quote; consume both.
				cur.WriteByte('"')
				off++
				next, hasNext = tok.NextToken()
			} else {
				inQuotes = !inQuotes
			}
		case tokenizer.TokenComma:
			off++
			if inQuotes {
				cur.WriteByte(',')
			} else {
				fields = append(fields, closeField(cur.String()))
				cur.Reset()
			}
		default:
			n := len(token.ValueString())
			cur.WriteString(line[off:min(off+n, len(line))])
			off += n
		}

		token, ok = next, hasNext
	}

	return append(fields, closeField(cur.String()))
}

// maskInvalid replaces every byte that is not part of a valid UTF-8 sequence
// with '?', keeping each byte at its offset. Valid input is returned as is.
func maskInvalid(line string) string {
	if utf8.ValidString(line) {
		return line
	}
	masked := []byte(line)
	for i := 0; i < len(line); {
		r, size := utf8.DecodeRuneInString(line[i:])
		if r == utf8.RuneError && size == 1 {
			masked[i] = '?'
		}
		i += size
	}
	return string(masked)
}

// closeField trims a finished field and strips one surrounding quote pair
// left over from quoting that the scan did not consume.
func closeField(raw string) string {
	field := TrimSpace(raw)
	if len(field) >= 2 && field[0] == '"' && field[len(field)-1] == '"' {
		field = field[1 : len(field)-1]
	}
	return field
}
