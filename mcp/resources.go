package mcp

import (
	"encoding/json"

	"github.com/lvillar/canvastable"
	"github.com/lvillar/canvastable/surface"
)

// RegisterDefaultResources adds all built-in table resources to the server.
// Resources use the table:// scheme.
func RegisterDefaultResources(s *Server) {
	s.AddResource(Resource{
		URI:         "table://defaults",
		Name:        "Table Defaults",
		Description: "Default value of every table option. Options in a document are merged over these field by field.",
		MIMEType:    "application/json",
		Handler:     handleDefaultsResource,
	})

	s.AddResource(Resource{
		URI:         "table://fonts",
		Name:        "Font Families",
		Description: "Font families available to fontFamily without registering a font file.",
		MIMEType:    "application/json",
		Handler:     handleFontsResource,
	})

	s.AddResource(Resource{
		URI:         "table://example",
		Name:        "Example Document",
		Description: "A complete table document to start from.",
		MIMEType:    "application/json",
		Handler:     handleExampleResource,
	})
}

func handleDefaultsResource(uri string) ([]ResourceContent, error) {
	return jsonContent(uri, canvastable.DefaultSettings())
}

func handleFontsResource(uri string) ([]ResourceContent, error) {
	return jsonContent(uri, map[string]any{
		"default":  surface.DefaultFamily,
		"families": surface.DefaultFonts().Families(),
		"weights":  []string{"normal", "bold"},
	})
}

const exampleDocument = `{
  "width": 640,
  "height": 250,
  "columns": [
    {"title": "Text"},
    {"title": "Expenses", "style": {"textAlign": "right", "color": "#4caf50"}},
    {"title": "Net", "style": {"textAlign": "right"}}
  ],
  "rows": [
    ["lorem ipsum dolor sit amet", "200$", "-3$"],
    ["consectetur", {"value": "12$", "color": "#c00"}, "1$"],
    ["ticket", {"barcode": {"kind": "qr", "data": "https://example.com"}}, ""]
  ],
  "options": {
    "title": {"text": "Expenses"},
    "subtitle": {"text": "Q3"},
    "borders": {"column": {"color": "#eee", "width": 1}},
    "fit": true
  }
}`

func handleExampleResource(uri string) ([]ResourceContent, error) {
	return []ResourceContent{{
		URI:      uri,
		MIMEType: "application/json",
		Text:     exampleDocument,
	}}, nil
}

func jsonContent(uri string, v any) ([]ResourceContent, error) {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return []ResourceContent{{
		URI:      uri,
		MIMEType: "application/json",
		Text:     string(jsonBytes),
	}}, nil
}
