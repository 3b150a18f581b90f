package csv

import (
	"github.com/shapestone/shape-csv2json/internal/parser"
)

// build assembles a Document from the non-blank lines of the input.
// lines[0] is the header line.
//
// The first data line whose field count differs from the header stops the
// build; no partial Document is returned.
func build(lines []string) (*Document, error) {
	headers := parser.ParseLine(lines[0])
	if len(headers) == 0 {
		return nil, ErrNoHeaders
	}

	keys := distinctKeys(headers)
	records := make([]Record, 0, len(lines)-1)

	for i := 1; i < len(lines); i++ {
		row := parser.ParseLine(lines[i])
		if len(row) != len(headers) {
			return nil, &ColumnCountError{
				Line:     i + 1,
				Expected: len(headers),
				Actual:   len(row),
			}
		}
		records = append(records, newRecord(keys, headers, row))
	}

	return &Document{
		headers: headers,
		keys:    keys,
		records: records,
	}, nil
}

// newRecord zips headers with row. A repeated header overwrites the value
// stored by its earlier occurrence.
func newRecord(keys, headers, row []string) Record {
	values := make(map[string]string, len(keys))
	for i, h := range headers {
		values[h] = row[i]
	}
	return Record{keys: keys, values: values}
}

// distinctKeys returns headers without repeats, keeping first occurrences.
func distinctKeys(headers []string) []string {
	seen := make(map[string]struct{}, len(headers))
	keys := make([]string, 0, len(headers))
	for _, h := range headers {
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		keys = append(keys, h)
	}
	return keys
}
