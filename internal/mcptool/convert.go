// Package mcptool exposes CSV conversion as a Model Context Protocol tool.
package mcptool

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/shapestone/shape-csv2json/internal/logger"
	"github.com/shapestone/shape-csv2json/pkg/csv"
)

// MetadataConvertCSV describes the convert_csv tool.
var MetadataConvertCSV = &mcp.Tool{
	Name: "convert_csv",
	Description: "Convert CSV text into an array of JSON objects, one per data row, keyed by the " +
		"header row. Quoted fields may contain commas and doubled quotes. Every value is returned " +
		"as a string. Fails if a row has a different number of fields than the header.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"content"},
		"properties": map[string]interface{}{
			"content": map[string]interface{}{
				"type":        "string",
				"description": "CSV text; the first non-blank line is the header",
			},
			"format": map[string]interface{}{
				"type":        "string",
				"description": "Format of the rendered field. One of: json, yaml. Defaults to json.",
				"enum":        []string{csv.OutputJSON, csv.OutputYAML},
			},
		},
	},
}

// InputConvertCSV is the input for the ConvertCSV tool.
type InputConvertCSV struct {
	Content string `json:"content"`
	Format  string `json:"format,omitempty"`
}

// OutputConvertCSV is the output for the ConvertCSV tool.
type OutputConvertCSV struct {
	// Rows is the number of data records.
	Rows int `json:"rows"`
	// Headers is the header row in source order, duplicates included.
	Headers []string `json:"headers"`
	// Records holds one object per data row.
	Records []map[string]string `json:"records"`
	// Rendered is the document rendered in the requested format, keys in header order.
	Rendered string `json:"rendered"`
}

// ConvertCSV converts the provided CSV content.
func ConvertCSV(ctx context.Context, _ *mcp.CallToolRequest, input InputConvertCSV) (*mcp.CallToolResult, OutputConvertCSV, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, OutputConvertCSV{}, fmt.Errorf("content is required")
	}

	format := strings.ToLower(input.Format)
	if format == "" {
		format = csv.OutputJSON
	}

	doc, err := csv.Convert(input.Content)
	if err != nil {
		return nil, OutputConvertCSV{}, err
	}

	rendered, err := csv.Render(doc, format, csv.DefaultIndent)
	if err != nil {
		return nil, OutputConvertCSV{}, err
	}

	logger.C(ctx).Debug().
		Str("tool", MetadataConvertCSV.Name).
		Int("rows", doc.Len()).
		Int("bytes", len(input.Content)).
		Msg("csv converted")

	return nil, OutputConvertCSV{
		Rows:     doc.Len(),
		Headers:  doc.Headers(),
		Records:  doc.Maps(),
		Rendered: string(rendered),
	}, nil
}

// NewServer returns an MCP server with every tool registered.
func NewServer(version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "csv2json",
		Version: version,
	}, nil)
	mcp.AddTool(server, MetadataConvertCSV, ConvertCSV)
	return server
}
