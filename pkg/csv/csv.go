// Package csv converts CSV text into an ordered list of header-keyed records
// ready to be serialized as JSON.
//
// The first non-blank line holds the headers. Every following non-blank line
// becomes one Record that maps each header name to the field in the same
// column. All values stay text; nothing is coerced.
//
// # Quoting
//
// Fields may be wrapped in double quotes to carry commas. Inside quotes a
// doubled quote ("") stands for one literal quote. Whitespace around every
// field is trimmed. An unterminated quote runs to the end of its line rather
// than failing the conversion.
//
// Lines are split before fields are read, so a quoted field cannot contain a
// line break.
//
// # Errors
//
// Conversion fails fast. The first problem aborts the whole call and no
// partial Document is returned:
//
//   - ErrEmptyInput - input is empty or whitespace
//   - ErrNoData - no lines survive splitting
//   - ErrNoHeaders - the header line has no fields
//   - *ColumnCountError - a data line has a different field count than the header
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use by multiple goroutines.
// Each call builds its own state and returns a Document that is never mutated.
//
//	// Safe: Concurrent conversion
//	go func() { csv.Convert(input1) }()
//	go func() { csv.Convert(input2) }()
//
// # Example usage:
//
//	doc, err := csv.Convert("name,city\nAlice,\"Portland, OR\"\n")
//	if err != nil {
//	    // handle error
//	}
//	out, _ := csv.RenderJSON(doc, "  ")
//	// [
//	//   {
//	//     "name": "Alice",
//	//     "city": "Portland, OR"
//	//   }
//	// ]
package csv

import (
	"io"

	"github.com/shapestone/shape-csv2json/internal/parser"
)

// Convert turns CSV text into a Document.
//
// Line endings may be "\n", "\r\n" or "\r". Blank lines anywhere in the
// input are skipped and do not count toward line numbers in errors.
//
// Example:
//
//	doc, err := csv.Convert("a,b\n\n1,2\n")
//	// doc.Len() == 1, record {"a": "1", "b": "2"}
func Convert(raw string) (*Document, error) {
	if parser.IsBlank(raw) {
		return nil, ErrEmptyInput
	}
	return convertLines(raw)
}

// convertLines splits raw and builds the Document without the emptiness
// check done by Convert.
func convertLines(raw string) (*Document, error) {
	lines := parser.SplitLines(raw)
	if len(lines) == 0 {
		return nil, ErrNoData
	}
	return build(lines)
}

// ConvertBytes is Convert for a byte slice.
//
// No charset decoding is done: bytes that are not valid UTF-8 are copied
// into field values unchanged and never affect where fields split.
func ConvertBytes(data []byte) (*Document, error) {
	return Convert(string(data))
}

// ConvertReader reads all of reader and converts it.
//
// The whole input is held in memory; conversion starts only after the reader
// reports io.EOF. Read errors are returned unchanged. Bytes are handled as
// in ConvertBytes.
//
// Example:
//
//	file, err := os.Open("data.csv")
//	if err != nil {
//	    // handle error
//	}
//	defer file.Close()
//
//	doc, err := csv.ConvertReader(file)
func ConvertReader(reader io.Reader) (*Document, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	return ConvertBytes(data)
}

// Format returns the format identifier for this converter.
// Returns "CSV" to identify the input format.
func Format() string {
	return "CSV"
}
