// Package tabletpl provides a declarative document format for table images.
//
// A document describes the canvas size, the columns, the rows and the table
// options. It is written in YAML or JSON (JSON is parsed as YAML), which
// makes it easy for both humans and LLMs to produce.
//
// Example JSON:
//
//	{
//	  "width": 640,
//	  "height": 250,
//	  "columns": [
//	    {"title": "Text"},
//	    {"title": "Expenses", "style": {"textAlign": "right"}}
//	  ],
//	  "rows": [
//	    ["lorem", {"value": "200$", "color": "#c00"}],
//	    ["ticket", {"barcode": {"kind": "qr", "data": "https://example.com"}}]
//	  ],
//	  "options": {"title": {"text": "Expenses"}, "fit": true}
//	}
package tabletpl

import (
	"github.com/lvillar/canvastable"
	"github.com/lvillar/canvastable/table"
)

// Default canvas size in logical pixels.
const (
	DefaultWidth  = 640
	DefaultHeight = 250
)

// MaxSide bounds the canvas width and height.
const MaxSide = 8192

// Document is a table image described declaratively.
type Document struct {
	Width   int                  `json:"width,omitempty" yaml:"width,omitempty"`
	Height  int                  `json:"height,omitempty" yaml:"height,omitempty"`
	Columns []table.Column       `json:"columns,omitempty" yaml:"columns,omitempty"`
	Rows    [][]table.Cell       `json:"rows" yaml:"rows"`
	Options *canvastable.Options `json:"options,omitempty" yaml:"options,omitempty"`
	Fonts   []FontFile           `json:"fonts,omitempty" yaml:"fonts,omitempty"`
}

// FontFile registers a TrueType or OpenType file under a family name for
// this document. Relative paths are resolved against the document's
// directory when it is loaded from a file.
type FontFile struct {
	Family string `json:"family" yaml:"family"`
	Weight string `json:"weight,omitempty" yaml:"weight,omitempty"` // normal (default) or bold
	Path   string `json:"path" yaml:"path"`
}

// Config returns the table configuration described by d.
func (d *Document) Config() canvastable.Config {
	return canvastable.Config{
		Columns: d.Columns,
		Data:    d.Rows,
		Options: d.Options,
	}
}
