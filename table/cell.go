package table

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/lvillar/canvastable/barcode"
)

// CellContent represents the content of a table cell.
type CellContent interface {
	cellContent()
}

// TextContent is a simple text cell content. Only the first line is drawn.
type TextContent struct {
	Text string
}

func (TextContent) cellContent() {}

// BarcodeContent draws Data encoded as a barcode of the given kind.
type BarcodeContent struct {
	Kind barcode.Kind
	Data string
}

func (BarcodeContent) cellContent() {}

// Cell represents a single cell in a table row: its content and optional
// style overrides.
type Cell struct {
	Content CellContent
	Style   Style
}

// Text creates a plain text cell.
func Text(s string) Cell {
	return Cell{Content: TextContent{Text: s}}
}

// Textf creates a plain text cell from a format string.
func Textf(format string, args ...any) Cell {
	return Text(fmt.Sprintf(format, args...))
}

// Styled creates a text cell with style overrides.
func Styled(s string, style Style) Cell {
	return Cell{Content: TextContent{Text: s}, Style: style}
}

// Barcode creates a barcode cell.
func Barcode(kind barcode.Kind, data string) Cell {
	return Cell{Content: BarcodeContent{Kind: kind, Data: data}}
}

// Value returns the cell's raw value: the text, or the encoded barcode data.
// Missing content is the empty string.
func (c Cell) Value() string {
	switch v := c.Content.(type) {
	case TextContent:
		return v.Text
	case BarcodeContent:
		return v.Data
	}
	return ""
}

// Row builds a row of plain text cells.
func Row(values ...string) []Cell {
	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = Text(v)
	}
	return cells
}

// UnmarshalYAML accepts a scalar (plain text) or a mapping with a value,
// an optional barcode and style fields:
//
//	"200$"
//	{value: "200$", color: "#c00", textAlign: right}
//	{barcode: {kind: qr, data: "https://example.com"}}
func (c *Cell) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var s string
		if err := node.Decode(&s); err != nil {
			return fmt.Errorf("cell: %w", err)
		}
		*c = Text(s)
		return nil
	}
	var aux struct {
		Value   string `yaml:"value"`
		Barcode *struct {
			Kind barcode.Kind `yaml:"kind"`
			Data string       `yaml:"data"`
		} `yaml:"barcode"`
		Style `yaml:",inline"`
	}
	if err := node.Decode(&aux); err != nil {
		return fmt.Errorf("cell: %w", err)
	}
	*c = Cell{Content: TextContent{Text: aux.Value}, Style: aux.Style}
	if aux.Barcode != nil {
		data := aux.Barcode.Data
		if data == "" {
			data = aux.Value
		}
		c.Content = BarcodeContent{Kind: aux.Barcode.Kind, Data: data}
	}
	return nil
}

// UnmarshalJSON accepts the same forms as UnmarshalYAML.
func (c *Cell) UnmarshalJSON(data []byte) error {
	return yaml.Unmarshal(data, c)
}

type barcodeDoc struct {
	Kind barcode.Kind `json:"kind" yaml:"kind"`
	Data string       `json:"data" yaml:"data"`
}

type cellDoc struct {
	Value   string      `json:"value,omitempty" yaml:"value,omitempty"`
	Barcode *barcodeDoc `json:"barcode,omitempty" yaml:"barcode,omitempty"`
	Style   `yaml:",inline"`
}

// document is the encoded form: a bare string for unstyled text, a mapping
// otherwise.
func (c Cell) document() any {
	switch v := c.Content.(type) {
	case BarcodeContent:
		return cellDoc{Barcode: &barcodeDoc{Kind: v.Kind, Data: v.Data}, Style: c.Style}
	default:
		if c.Style == (Style{}) {
			return c.Value()
		}
		return cellDoc{Value: c.Value(), Style: c.Style}
	}
}

func (c Cell) MarshalYAML() (any, error) {
	return c.document(), nil
}

func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.document())
}

// Column defines a table column: its header title, style overrides and
// width constraints. A zero MinWidth or MaxWidth is unset.
type Column struct {
	Title    string  `json:"title" yaml:"title"`
	Style    Style   `json:"style,omitempty" yaml:"style,omitempty"`
	MinWidth float64 `json:"minWidth,omitempty" yaml:"minWidth,omitempty"`
	MaxWidth float64 `json:"maxWidth,omitempty" yaml:"maxWidth,omitempty"`
}
