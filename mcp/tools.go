package mcp

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/lvillar/canvastable"
	"github.com/lvillar/canvastable/tabletpl"
)

// RegisterDefaultTools adds all built-in table tools to the server.
func RegisterDefaultTools(s *Server) {
	s.AddTool(renderTableTool(s))
	s.AddTool(measureTableTool(s))
}

var documentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"document": map[string]any{
			"type":        "object",
			"description": "Table document: width, height, columns [{title, style, minWidth, maxWidth}], rows (arrays of strings or {value, color, background, textAlign, barcode: {kind, data}}), options (see table://defaults)",
		},
		"source": map[string]any{
			"type":        "string",
			"description": "The same document as YAML or JSON text. Used when 'document' is omitted.",
		},
	},
}

func renderTableTool(s *Server) Tool {
	schema := cloneSchema(documentSchema)
	schema["properties"].(map[string]any)["outputPath"] = map[string]any{
		"type":        "string",
		"description": "Optional file path to save the PNG. If omitted, the image is returned inline.",
	}
	return Tool{
		Name:        "render_table",
		Description: "Render a table document to a PNG image. Column widths are computed from the text; overflowing cells are truncated with an ellipsis.",
		InputSchema: schema,
		Handler: func(ctx context.Context, args map[string]any) (ToolResult, error) {
			return handleRenderTable(ctx, s, args)
		},
	}
}

func handleRenderTable(ctx context.Context, s *Server, args map[string]any) (ToolResult, error) {
	doc, err := documentArg(args)
	if err != nil {
		return ToolResult{}, err
	}

	var buf bytes.Buffer
	if err := tabletpl.RenderDocument(ctx, &buf, doc, s.tableOptions()...); err != nil {
		return ToolResult{}, fmt.Errorf("rendering table: %w", err)
	}

	// Save to file if outputPath specified
	if outputPath, ok := args["outputPath"].(string); ok && outputPath != "" {
		if err := os.WriteFile(outputPath, buf.Bytes(), 0o644); err != nil {
			return ToolResult{}, fmt.Errorf("writing file: %w", err)
		}
		return ToolResult{
			Content: []ContentBlock{{
				Type: "text",
				Text: fmt.Sprintf("Table rendered successfully: %s (%d bytes)", outputPath, buf.Len()),
			}},
		}, nil
	}

	return ToolResult{
		Content: []ContentBlock{
			{
				Type: "text",
				Text: fmt.Sprintf("Table rendered successfully (%dx%d, %d bytes)", doc.Width, doc.Height, buf.Len()),
			},
			{
				Type:     "image",
				MIMEType: canvastable.PNGMimeType,
				Data:     base64.StdEncoding.EncodeToString(buf.Bytes()),
			},
		},
	}, nil
}

func measureTableTool(s *Server) Tool {
	return Tool{
		Name:        "measure_table",
		Description: "Lay out a table document without producing an image. Returns the table area, the final cursor position and the width of every column.",
		InputSchema: cloneSchema(documentSchema),
		Handler: func(ctx context.Context, args map[string]any) (ToolResult, error) {
			doc, err := documentArg(args)
			if err != nil {
				return ToolResult{}, err
			}
			m, err := tabletpl.Measure(ctx, doc, s.tableOptions()...)
			if err != nil {
				return ToolResult{}, fmt.Errorf("measuring table: %w", err)
			}
			jsonBytes, err := json.MarshalIndent(m, "", "  ")
			if err != nil {
				return ToolResult{}, err
			}
			return ToolResult{
				Content: []ContentBlock{{Type: "text", Text: string(jsonBytes)}},
			}, nil
		},
	}
}

// documentArg reads the table document from the 'document' object or the
// 'source' text argument.
func documentArg(args map[string]any) (*tabletpl.Document, error) {
	if raw, ok := args["document"]; ok && raw != nil {
		jsonBytes, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("encoding document: %w", err)
		}
		return tabletpl.Parse(jsonBytes)
	}
	if src, ok := args["source"].(string); ok && src != "" {
		return tabletpl.Parse([]byte(src))
	}
	return nil, fmt.Errorf("missing 'document' or 'source' argument")
}

func cloneSchema(schema map[string]any) map[string]any {
	props := make(map[string]any)
	for k, v := range schema["properties"].(map[string]any) {
		props[k] = v
	}
	return map[string]any{"type": schema["type"], "properties": props}
}
