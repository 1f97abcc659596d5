package table

import "strings"

// RowKind distinguishes the synthesized header row from body rows.
type RowKind int

const (
	HeaderRow RowKind = iota
	BodyRow
)

func (k RowKind) String() string {
	if k == HeaderRow {
		return "header"
	}
	return "body"
}

// PreparedCell is a cell ready to be measured and drawn.
type PreparedCell struct {
	// Text is the first line of the cell value.
	Text    string
	Content CellContent
	Style   Style
}

// PreparedRow is a row with its kind, resolved cell styles and padding.
type PreparedRow struct {
	Kind    RowKind
	Cells   []PreparedCell
	Padding Padding
}

// Height is the tallest line among the row's cells plus vertical padding.
func (r PreparedRow) Height() float64 {
	var line float64
	for _, c := range r.Cells {
		if h := c.Style.LinePixels(); h > line {
			line = h
		}
	}
	return line + r.Padding.Vertical()
}

// RowClass is the style and padding applied to one kind of row.
type RowClass struct {
	Style   Style
	Padding Padding
}

// PrepareOptions controls Prepare.
type PrepareOptions struct {
	// Header synthesizes a header row from the column titles.
	Header bool
	// Global is the lowest style layer for every cell.
	Global Style
	Head   RowClass
	Body   RowClass
}

// Prepared is the output of Prepare.
type Prepared struct {
	Columns []Column
	Rows    []PreparedRow
	// Dropped counts cells beyond the column count that were discarded.
	Dropped int
}

// Prepare normalizes data into rows of exactly len(columns) cells, attaches
// each row's kind and resolves every cell's style. Short rows are padded
// with empty cells. When columns is empty the column count is taken from
// the first data row and no header row is synthesized.
//
// Body cells resolve Global < Body < column < cell. Header cells resolve
// Global < Head and take only the alignment from their column.
func Prepare(columns []Column, data [][]Cell, opts PrepareOptions) Prepared {
	p := Prepared{Columns: columns}
	header := opts.Header
	if len(p.Columns) == 0 {
		header = false
		if len(data) > 0 {
			p.Columns = make([]Column, len(data[0]))
		}
	}
	n := len(p.Columns)

	if header {
		row := PreparedRow{Kind: HeaderRow, Cells: make([]PreparedCell, n), Padding: opts.Head.Padding}
		for i, col := range p.Columns {
			row.Cells[i] = PreparedCell{
				Text:    firstLine(col.Title),
				Content: TextContent{Text: col.Title},
				Style:   ResolveStyle(opts.Global, opts.Head.Style, Style{TextAlign: col.Style.TextAlign}),
			}
		}
		p.Rows = append(p.Rows, row)
	}

	for _, cells := range data {
		row := PreparedRow{Kind: BodyRow, Cells: make([]PreparedCell, n), Padding: opts.Body.Padding}
		if len(cells) > n {
			p.Dropped += len(cells) - n
		}
		for i := 0; i < n; i++ {
			var c Cell
			if i < len(cells) {
				c = cells[i]
			}
			content := c.Content
			if content == nil {
				content = TextContent{}
			}
			row.Cells[i] = PreparedCell{
				Text:    firstLine(c.Value()),
				Content: content,
				Style:   ResolveStyle(opts.Global, opts.Body.Style, p.Columns[i].Style, c.Style),
			}
		}
		p.Rows = append(p.Rows, row)
	}
	return p
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSuffix(s[:i], "\r")
	}
	return s
}
