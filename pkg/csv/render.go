// Package csv provides rendering of converted Documents.
//
// Rendering is separate from conversion: Convert builds the Document, and
// the functions in this file serialize it for display, download or storage.
package csv

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// Output formats accepted by Render.
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// DefaultIndent is the indentation width used for JSON output.
const DefaultIndent = 2

// Render serializes doc in the named output format.
// indent is the number of spaces per JSON nesting level; 0 renders compact
// JSON. YAML output ignores indent.
func Render(doc *Document, format string, indent int) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", OutputJSON:
		return RenderJSON(doc, strings.Repeat(" ", indent))
	case OutputYAML:
		return RenderYAML(doc)
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

// RenderJSON renders doc as a JSON array of objects.
//
// Keys follow header order, "<", ">" and "&" are not escaped, and there is no
// trailing newline. An empty indent renders compact JSON.
//
// Example:
//
//	doc, _ := csv.Convert("name,age\nAlice,30")
//	out, _ := csv.RenderJSON(doc, "  ")
//	// [
//	//   {
//	//     "name": "Alice",
//	//     "age": "30"
//	//   }
//	// ]
func RenderJSON(doc *Document, indent string) ([]byte, error) {
	if doc == nil {
		return []byte("[]"), nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

// RenderYAML renders doc as a YAML sequence of mappings with keys in header
// order. Every value is a string.
func RenderYAML(doc *Document) ([]byte, error) {
	items := make([]yaml.MapSlice, 0)
	if doc != nil {
		for _, r := range doc.records {
			item := make(yaml.MapSlice, 0, len(r.keys))
			for _, k := range r.keys {
				item = append(item, yaml.MapItem{Key: k, Value: r.values[k]})
			}
			items = append(items, item)
		}
	}
	return yaml.Marshal(items)
}

// RenderCSV renders doc back to CSV text: one header line with the distinct
// keys, then one line per record. Lines end with "\n".
//
// Fields containing commas, quotes or line breaks are quoted and inner
// quotes are doubled, so Convert(RenderCSV(doc)) rebuilds the same records
// as long as values carry no surrounding whitespace.
func RenderCSV(doc *Document) ([]byte, error) {
	if doc == nil || len(doc.keys) == 0 {
		return []byte{}, nil
	}

	var buf bytes.Buffer
	writeCSVLine(&buf, doc.keys)
	for _, r := range doc.records {
		writeCSVLine(&buf, r.Values())
	}
	return buf.Bytes(), nil
}

// writeCSVLine writes fields separated by commas and terminated by "\n".
func writeCSVLine(buf *bytes.Buffer, fields []string) {
	for i, field := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeCSVField(buf, field)
	}
	buf.WriteByte('\n')
}

// writeCSVField writes a CSV field to the buffer with proper escaping.
// Fields containing commas, quotes, newlines, or carriage returns are quoted.
// Quotes within quoted fields are escaped by doubling them.
func writeCSVField(buf *bytes.Buffer, value string) {
	if !strings.ContainsAny(value, ",\"\n\r") {
		buf.WriteString(value)
		return
	}

	buf.WriteByte('"')
	for _, ch := range value {
		if ch == '"' {
			buf.WriteString(`""`)
		} else {
			buf.WriteRune(ch)
		}
	}
	buf.WriteByte('"')
}
