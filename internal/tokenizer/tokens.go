// Package tokenizer provides CSV line tokenization using Shape's tokenizer framework.
package tokenizer

// Token kinds emitted for a single CSV line.
//
// Lines reach the tokenizer after line splitting, so there is no newline
// token: a carriage return or line feed that does reach it is ordinary field
// content. Quote state is tracked by the parser, not here.
const (
	TokenComma  = "Comma"  // , (field separator)
	TokenDQuote = "DQuote" // " (quote delimiter)
	TokenText   = "Text"   // maximal run of characters that are neither comma nor quote
)
