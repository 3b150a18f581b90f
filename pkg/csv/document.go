// Package csv provides the Document and Record types produced by conversion.
//
// # Document Type
//
// Document is the ordered list of records built from one conversion call:
//
//	doc, err := csv.Convert("name,age\nAlice,30\nBob,25")
//	doc.Len()     // 2
//	doc.Headers() // []string{"name", "age"}
//
// # Record Type
//
// Record maps header names to the field values of one data line. Keys keep
// header order:
//
//	record, _ := doc.Record(0)
//	name, _ := record.Get("name") // "Alice"
//	record.Keys()                 // []string{"name", "age"}
//
// # Duplicate Headers
//
// Header names are not renamed. When a name repeats, the key keeps the
// position of its first occurrence and the value of its last one:
//
//	doc, _ := csv.Convert("id,id\n1,2")
//	record, _ := doc.Record(0)
//	record.Get("id") // "2"
//
// Documents are never mutated after Convert returns them, so they can be
// shared between goroutines.
package csv

import (
	"bytes"
	"encoding/json"
)

// Document is the result of converting CSV text: one Record per data line.
type Document struct {
	headers []string // header fields as parsed, repeats included
	keys    []string // distinct header names in first-seen order
	records []Record
}

// Record is one data line keyed by header name.
type Record struct {
	keys   []string // shared with the owning Document, never modified
	values map[string]string
}

// Headers returns the header fields exactly as parsed, including repeats.
func (d *Document) Headers() []string {
	return cloneStrings(d.headers)
}

// Keys returns the distinct header names in the order records expose them.
func (d *Document) Keys() []string {
	return cloneStrings(d.keys)
}

// Len returns the number of records. The header line is not counted.
func (d *Document) Len() int {
	return len(d.records)
}

// Records returns all records in input order.
func (d *Document) Records() []Record {
	records := make([]Record, len(d.records))
	copy(records, d.records)
	return records
}

// Record returns the record at index (0 = first data line).
// Returns (Record{}, false) if index is out of bounds.
func (d *Document) Record(index int) (Record, bool) {
	if index < 0 || index >= len(d.records) {
		return Record{}, false
	}
	return d.records[index], true
}

// Maps returns every record as a plain map. Key order is lost; use Records
// or MarshalJSON when order matters.
func (d *Document) Maps() []map[string]string {
	maps := make([]map[string]string, len(d.records))
	for i, r := range d.records {
		maps[i] = r.Map()
	}
	return maps
}

// MarshalJSON encodes the document as a JSON array of objects whose keys
// follow header order.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, r := range d.records {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := r.writeJSON(&buf); err != nil {
			return nil, err
		}
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// Get returns the value stored under key.
func (r Record) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the record keys in header order.
func (r Record) Keys() []string {
	return cloneStrings(r.keys)
}

// Values returns the record values in key order.
func (r Record) Values() []string {
	values := make([]string, len(r.keys))
	for i, k := range r.keys {
		values[i] = r.values[k]
	}
	return values
}

// Len returns the number of keys in the record.
func (r Record) Len() int {
	return len(r.keys)
}

// Map returns a copy of the record as a map.
func (r Record) Map() map[string]string {
	m := make(map[string]string, len(r.values))
	for k, v := range r.values {
		m[k] = v
	}
	return m
}

// MarshalJSON encodes the record as a JSON object with keys in header order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r Record) writeJSON(buf *bytes.Buffer) error {
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONString(buf, k); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := writeJSONString(buf, r.values[k]); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

// writeJSONString writes s as a JSON string without HTML escaping, so
// values such as "<b>" come out the way a browser's JSON.stringify writes them.
func writeJSONString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte{'\n'}))
	return nil
}

func cloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
