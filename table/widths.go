package table

import (
	"github.com/samber/lo"

	"github.com/lvillar/canvastable/barcode"
	"github.com/lvillar/canvastable/surface"
)

// MinColumnWidth is the smallest natural width a column can have.
const MinColumnWidth = 1

// Mode records which branch of the allocator produced the widths.
type Mode int

const (
	// ModeExact keeps natural widths; the table may be narrower than the
	// available width.
	ModeExact Mode = iota
	// ModeOverflow shrinks elastic columns to fit the available width.
	ModeOverflow
	// ModeFit grows every column so the table fills the available width.
	ModeFit
)

func (m Mode) String() string {
	switch m {
	case ModeOverflow:
		return "overflow"
	case ModeFit:
		return "fit"
	}
	return "exact"
}

// Measurements holds the measured widths of a prepared table.
type Measurements struct {
	// Columns is the widest cell per column, at least MinColumnWidth.
	Columns []float64
	// Cells is the measured width of every cell, by row then column.
	Cells [][]float64
}

// MeasureColumns measures every cell with its resolved style. Barcode cells
// are not measured; their width follows from their line height and the
// barcode's aspect ratio.
func MeasureColumns(m surface.Measurer, rows []PreparedRow, columnCount int) Measurements {
	ms := Measurements{
		Columns: make([]float64, columnCount),
		Cells:   make([][]float64, len(rows)),
	}
	for i := range ms.Columns {
		ms.Columns[i] = MinColumnWidth
	}
	for r, row := range rows {
		ms.Cells[r] = make([]float64, columnCount)
		for c, cell := range row.Cells {
			var w float64
			switch content := cell.Content.(type) {
			case BarcodeContent:
				w = cell.Style.LinePixels() * barcode.AspectRatio(content.Kind)
			default:
				w = m.MeasureText(cell.Style.Font(), cell.Text)
			}
			ms.Cells[r][c] = w
			if w > ms.Columns[c] {
				ms.Columns[c] = w
			}
		}
	}
	return ms
}

// Allocation is the input of Allocate.
type Allocation struct {
	// Natural is the measured natural width of each column.
	Natural []float64
	// Columns supplies MinWidth and MaxWidth constraints. It may be shorter
	// than Natural.
	Columns []Column
	// Padding is the horizontal cell padding added to every column.
	Padding float64
	// Available is the width the table may occupy.
	Available float64
	Fit       bool
	// EllipsisWidth is the measured width of two ellipsis glyphs. An elastic
	// column never shrinks below EllipsisWidth + Padding.
	EllipsisWidth float64
}

// Widths is the result of Allocate.
type Widths struct {
	// Natural widths after MinWidth/MaxWidth clamping.
	Natural []float64
	// Outer is Natural plus padding.
	Outer []float64
	// Computed is the final drawn width of each column.
	Computed []float64
	// Elastic marks columns that were shrunk in ModeOverflow.
	Elastic []bool
	Mode    Mode
}

// Total is the sum of the computed widths.
func (w Widths) Total() float64 {
	return lo.Sum(w.Computed)
}

// Allocate reconciles natural widths, column constraints and the available
// width into per-column widths.
//
// When the outer widths overflow the available width, columns wider than an
// equal share and without MinWidth are elastic: they split whatever the
// fixed columns leave, in proportion to their outer width, but never below
// the ellipsis floor. Fixed columns keep their outer width, so the result
// can still be wider than Available; that overflow is left visible.
//
// With Fit set and spare room, every column grows in proportion to its
// natural width until the table fills Available exactly.
func Allocate(a Allocation) Widths {
	n := len(a.Natural)
	w := Widths{
		Natural: make([]float64, n),
		Elastic: make([]bool, n),
		Mode:    ModeExact,
	}
	for i, natural := range a.Natural {
		var col Column
		if i < len(a.Columns) {
			col = a.Columns[i]
		}
		if col.MaxWidth > 0 && natural > col.MaxWidth {
			natural = col.MaxWidth
		}
		if col.MinWidth > 0 && natural < col.MinWidth {
			natural = col.MinWidth
		}
		w.Natural[i] = max(natural, MinColumnWidth)
	}
	w.Outer = lo.Map(w.Natural, func(v float64, _ int) float64 { return v + a.Padding })
	w.Computed = append([]float64(nil), w.Outer...)
	if n == 0 {
		return w
	}

	totalOuter := lo.Sum(w.Outer)
	switch {
	case totalOuter > a.Available:
		w.Mode = ModeOverflow
		reserved := a.Available / float64(n)
		remaining := a.Available
		var totalElastic float64
		for i, outer := range w.Outer {
			hasMin := i < len(a.Columns) && a.Columns[i].MinWidth > 0
			if outer > reserved && !hasMin {
				w.Elastic[i] = true
				totalElastic += outer
			} else {
				remaining -= outer
			}
		}
		floor := a.EllipsisWidth + a.Padding
		for i, elastic := range w.Elastic {
			if !elastic {
				continue
			}
			w.Computed[i] = max(w.Outer[i]/totalElastic*remaining, floor)
		}
	case a.Fit && totalOuter < a.Available:
		w.Mode = ModeFit
		spare := a.Available - totalOuter
		totalNatural := lo.Sum(w.Natural)
		for i, natural := range w.Natural {
			w.Computed[i] = w.Outer[i] + spare*natural/totalNatural
		}
	}
	return w
}
