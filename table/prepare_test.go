package table_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvillar/canvastable/table"
)

var prepareOpts = table.PrepareOptions{
	Header: true,
	Global: table.Style{FontFamily: "sans-serif", FontSize: 12, FontWeight: "normal", Color: "#444444", TextAlign: "left", LineHeight: 1.2},
	Head: table.RowClass{
		Style:   table.Style{FontWeight: "bold", Color: "#666666"},
		Padding: table.UniformPadding(5),
	},
	Body: table.RowClass{Padding: table.UniformPadding(5)},
}

func TestPrepareHeaderAndKinds(t *testing.T) {
	columns := []table.Column{
		{Title: "Text"},
		{Title: "Expenses", Style: table.Style{TextAlign: "right", Color: "green"}},
	}
	p := table.Prepare(columns, [][]table.Cell{table.Row("lorem", "200$")}, prepareOpts)

	require.Len(t, p.Rows, 2)
	head, body := p.Rows[0], p.Rows[1]
	assert.Equal(t, table.HeaderRow, head.Kind)
	assert.Equal(t, table.BodyRow, body.Kind)

	assert.Equal(t, "Expenses", head.Cells[1].Text)
	assert.Equal(t, "bold", head.Cells[1].Style.FontWeight)
	assert.Equal(t, "right", string(head.Cells[1].Style.TextAlign), "header takes the column alignment")
	assert.Equal(t, "#666666", string(head.Cells[1].Style.Color), "header keeps its own color")

	assert.Equal(t, "normal", body.Cells[1].Style.FontWeight)
	assert.Equal(t, "green", string(body.Cells[1].Style.Color))
	assert.Equal(t, "right", string(body.Cells[1].Style.TextAlign))
}

func TestPrepareCellOverridesColumn(t *testing.T) {
	columns := []table.Column{{Title: "Net", Style: table.Style{Color: "green", TextAlign: "right"}}}
	data := [][]table.Cell{{table.Styled("-3$", table.Style{Color: "red"})}}

	p := table.Prepare(columns, data, prepareOpts)
	cell := p.Rows[1].Cells[0]
	assert.Equal(t, "red", string(cell.Style.Color))
	assert.Equal(t, "right", string(cell.Style.TextAlign))
}

func TestPrepareNormalizesRowLength(t *testing.T) {
	columns := []table.Column{{Title: "A"}, {Title: "B"}, {Title: "C"}}
	data := [][]table.Cell{
		table.Row("1"),
		table.Row("1", "2", "3", "4", "5"),
		{{}},
	}
	p := table.Prepare(columns, data, prepareOpts)

	require.Len(t, p.Rows, 4)
	for _, row := range p.Rows {
		assert.Len(t, row.Cells, 3)
	}
	assert.Equal(t, "", p.Rows[1].Cells[2].Text)
	assert.Equal(t, table.TextContent{}, p.Rows[3].Cells[0].Content, "missing content is empty text")
	assert.Equal(t, 2, p.Dropped)
}

func TestPrepareFirstLineOnly(t *testing.T) {
	p := table.Prepare([]table.Column{{Title: "Notes\nmore"}}, [][]table.Cell{table.Row("first\r\nsecond")}, prepareOpts)
	assert.Equal(t, "Notes", p.Rows[0].Cells[0].Text)
	assert.Equal(t, "first", p.Rows[1].Cells[0].Text)
}

func TestPrepareWithoutColumns(t *testing.T) {
	p := table.Prepare(nil, [][]table.Cell{table.Row("a", "b")}, prepareOpts)
	require.Len(t, p.Columns, 2)
	require.Len(t, p.Rows, 1, "no header row without column titles")
	assert.Equal(t, table.BodyRow, p.Rows[0].Kind)
}

func TestPrepareHeaderDisabled(t *testing.T) {
	opts := prepareOpts
	opts.Header = false
	p := table.Prepare([]table.Column{{Title: "A"}}, nil, opts)
	assert.Empty(t, p.Rows)
}

func TestPreparedRowHeight(t *testing.T) {
	p := table.Prepare([]table.Column{{Title: "A"}, {Title: "B"}}, [][]table.Cell{
		{table.Text("x"), table.Styled("big", table.Style{FontSize: 24})},
	}, prepareOpts)

	assert.InDelta(t, 12*1.2+10, p.Rows[0].Height(), 1e-9)
	assert.InDelta(t, 24*1.2+10, p.Rows[1].Height(), 1e-9, "tallest cell drives the row")
}
