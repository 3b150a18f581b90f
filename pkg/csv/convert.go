// Package csv provides conversion of Documents to Shape AST nodes.
package csv

import (
	"github.com/shapestone/shape-core/pkg/ast"
)

// ToNode converts a Document to Shape's unified AST.
//
// The result is:
//   - *ast.ArrayDataNode for the document (array of records)
//   - Each record is an *ast.ObjectNode keyed by header name
//   - Each value is an *ast.LiteralNode containing a string
//
// ObjectNode properties are a map, so key order is not carried into the
// AST. A nil Document yields an empty array.
func ToNode(doc *Document) *ast.ArrayDataNode {
	if doc == nil {
		return ast.NewArrayDataNode([]ast.SchemaNode{}, ast.ZeroPosition())
	}

	records := make([]ast.SchemaNode, len(doc.records))
	for i, r := range doc.records {
		records[i] = recordToNode(r)
	}
	return ast.NewArrayDataNode(records, ast.ZeroPosition())
}

// ParseNode converts CSV text and returns the result as an AST.
// Errors are the same as Convert's.
//
// Example:
//
//	node, err := csv.ParseNode("name,age\nAlice,30")
//	array := node.(*ast.ArrayDataNode)
//	// array.Elements()[0] is an *ast.ObjectNode for Alice
func ParseNode(raw string) (ast.SchemaNode, error) {
	doc, err := Convert(raw)
	if err != nil {
		return nil, err
	}
	return ToNode(doc), nil
}

func recordToNode(r Record) ast.SchemaNode {
	props := make(map[string]ast.SchemaNode, len(r.values))
	for k, v := range r.values {
		props[k] = ast.NewLiteralNode(v, ast.ZeroPosition())
	}
	return ast.NewObjectNode(props, ast.ZeroPosition())
}
