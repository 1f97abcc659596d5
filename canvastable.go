// Package canvastable renders tabular data onto a drawing surface.
//
// A CanvasTable lays out an optional title and subtitle, a header row
// synthesized from the column titles and the data rows. Column widths are
// computed from measured text; text that does not fit its column is
// truncated with an ellipsis. Rows that fall below the canvas are dropped
// and the overflowing edges are faded into the background.
//
// Example:
//
//	s := surface.NewRaster(640, 250)
//	t, err := canvastable.New(s, canvastable.Config{
//	    Columns: []table.Column{{Title: "Text"}, {Title: "Net"}},
//	    Data:    [][]table.Cell{table.Row("lorem", "-3$")},
//	})
//	if err != nil {
//	    return err
//	}
//	if err := t.Generate(ctx); err != nil {
//	    return err
//	}
//	return t.RenderToFile(ctx, "table.png")
package canvastable

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rudderlabs/rudder-go-kit/logger"

	"github.com/lvillar/canvastable/barcode"
	"github.com/lvillar/canvastable/surface"
	"github.com/lvillar/canvastable/table"
)

// Config is the table to render.
type Config struct {
	Columns []table.Column `json:"columns,omitempty" yaml:"columns,omitempty"`
	Data    [][]table.Cell `json:"data" yaml:"data"`
	Options *Options       `json:"options,omitempty" yaml:"options,omitempty"`
}

// Cursor is the next draw position in logical pixels.
type Cursor struct {
	X, Y float64
}

// Dimensions describes the rendered table: the size of the area inside the
// table padding and the final cursor position.
type Dimensions struct {
	Height float64 `json:"height" yaml:"height"`
	Width  float64 `json:"width" yaml:"width"`
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
}

// CanvasTable renders one table onto one surface. It is not safe for
// concurrent use.
type CanvasTable struct {
	s        surface.Surface
	cfg      Config
	settings Settings
	log      logger.Logger

	stage  stage
	dims   Dimensions
	widths table.Widths
}

// New creates a table drawing onto s. The options in cfg are merged over
// DefaultSettings, or over the settings given with WithBaseSettings.
func New(s surface.Surface, cfg Config, opts ...Option) (*CanvasTable, error) {
	if s == nil {
		return nil, newTableError("New", fmt.Errorf("%w: nil surface", ErrInvalidParam))
	}
	c := &tableConfig{
		log:  logger.NOP,
		base: DefaultSettings(),
	}
	for _, opt := range opts {
		opt(c)
	}
	settings := cfg.Options.Merge(c.base)
	if err := settings.validate(); err != nil {
		return nil, newTableError("New", err)
	}
	return &CanvasTable{
		s:        s,
		cfg:      cfg,
		settings: settings,
		log:      c.log,
	}, nil
}

// Settings returns the resolved configuration.
func (t *CanvasTable) Settings() Settings {
	return t.settings
}

// Generate draws the table. Every call redraws the whole table from a fresh
// cursor. The context is checked once before drawing starts; a pass is
// never interrupted. A fault reported by the surface fails the call and
// leaves the table not generated.
func (t *CanvasTable) Generate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return newTableError("Generate", err)
	}
	t.stage = stageInitial

	p := newPass(t)
	if err := p.run(); err != nil {
		return newTableError("Generate", err)
	}
	if err := t.s.Err(); err != nil {
		t.log.Warnn("Surface fault while generating table", logger.NewErrorField(err))
		return newTableError("Generate", err)
	}

	t.widths = p.widths
	t.dims = Dimensions{Height: p.tableHeight, Width: p.tableWidth, X: p.cursor.X, Y: p.cursor.Y}
	t.stage = p.stage
	t.log.Debugn("Generated table",
		logger.NewIntField("rows", int64(p.drawn)),
		logger.NewIntField("columns", int64(len(p.widths.Computed))),
		logger.NewStringField("mode", p.widths.Mode.String()),
	)
	return nil
}

// TableDimensions returns the size of the table area and the final cursor
// position of the last Generate.
func (t *CanvasTable) TableDimensions() (Dimensions, error) {
	if err := t.checkGenerated("TableDimensions"); err != nil {
		return Dimensions{}, err
	}
	return t.dims, nil
}

// ColumnWidths returns the drawn width of every column, padding included.
func (t *CanvasTable) ColumnWidths() ([]float64, error) {
	if err := t.checkGenerated("ColumnWidths"); err != nil {
		return nil, err
	}
	return append([]float64(nil), t.widths.Computed...), nil
}

func (t *CanvasTable) checkGenerated(op string) error {
	if t.stage != stageGenerated {
		return newTableError(op, ErrNotGenerated)
	}
	return nil
}

type stage int

const (
	stageInitial stage = iota
	stageTitlePlaced
	stageSubtitlePlaced
	stageColumnsSized
	stageRowsDrawn
	stageDecorationsDrawn
	stageGenerated
)

func (s stage) String() string {
	switch s {
	case stageInitial:
		return "initial"
	case stageTitlePlaced:
		return "title placed"
	case stageSubtitlePlaced:
		return "subtitle placed"
	case stageColumnsSized:
		return "columns sized"
	case stageRowsDrawn:
		return "rows drawn"
	case stageDecorationsDrawn:
		return "decorations drawn"
	case stageGenerated:
		return "generated"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// borderInset keeps cell backgrounds off the border lines around them.
const borderInset = 0.5

// pass holds the state of one Generate call.
type pass struct {
	s   surface.Surface
	cfg Config
	set Settings
	log logger.Logger

	stage  stage
	cursor Cursor
	start  Cursor

	tableWidth, tableHeight float64

	prepared table.Prepared
	measured table.Measurements
	widths   table.Widths
	drawn    int
}

func newPass(t *CanvasTable) *pass {
	return &pass{s: t.s, cfg: t.cfg, set: t.settings, log: t.log}
}

func (p *pass) run() error {
	steps := []func() error{
		p.placeTitle,
		p.placeSubtitle,
		p.sizeColumns,
		p.drawRows,
		p.drawDecorations,
		p.finish,
	}
	p.prepareSurface()
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// advance moves the pass from one stage to the next.
func (p *pass) advance(from, to stage) error {
	if p.stage != from {
		return fmt.Errorf("%w: %s requires %s, at %s", errStageOrder, to, from, p.stage)
	}
	p.stage = to
	return nil
}

// prepareSurface scales the surface for the device pixel ratio, paints the
// background and resets the cursor to the table's top left corner.
func (p *pass) prepareSurface() {
	dpr := p.set.DevicePixelRatio
	p.s.SetDevicePixelRatio(dpr)
	p.s.Scale(dpr, dpr)
	if p.set.Background != "" {
		p.s.FillRect(surface.Rect{W: p.s.Width(), H: p.s.Height()}, p.set.Background)
	}

	pad := p.set.Padding
	p.tableWidth = p.s.Width() - pad.Horizontal()
	p.tableHeight = p.s.Height() - pad.Vertical()
	p.cursor = Cursor{X: pad.Left, Y: pad.Top}
}

func (p *pass) placeTitle() error {
	if err := p.advance(stageInitial, stageTitlePlaced); err != nil {
		return err
	}
	p.drawTitle(p.set.Title)
	return nil
}

func (p *pass) placeSubtitle() error {
	if err := p.advance(stageTitlePlaced, stageSubtitlePlaced); err != nil {
		return err
	}
	p.drawTitle(p.set.Subtitle)
	return nil
}

func (p *pass) drawTitle(title TitleSettings) {
	if title.Text == "" {
		return
	}
	style := title.TextStyle()
	lineHeight := math.Round(title.FontSize * title.LineHeight)

	x := p.cursor.X
	switch title.TextAlign {
	case surface.AlignCenter:
		x += p.tableWidth / 2
	case surface.AlignRight:
		x += p.tableWidth
	}

	var lines []string
	for _, line := range strings.Split(title.Text, "\n") {
		if title.Multiline {
			lines = append(lines, table.Wrap(p.s, style.Font, line, p.tableWidth)...)
			continue
		}
		lines = append(lines, table.Fit(p.s, style.Font, line, p.tableWidth, 0))
	}
	for i, line := range lines {
		p.s.FillText(line, x, p.cursor.Y+float64(i)*lineHeight, style)
	}
	p.cursor.Y += float64(len(lines))*lineHeight + lineHeight/2
}

func (p *pass) sizeColumns() error {
	if err := p.advance(stageSubtitlePlaced, stageColumnsSized); err != nil {
		return err
	}
	p.prepared = table.Prepare(p.cfg.Columns, p.cfg.Data, table.PrepareOptions{
		Header: !p.set.HideHeader,
		Global: p.set.Cell.Style,
		Head:   p.set.Header.class(),
		Body:   table.RowClass{Padding: p.set.Cell.Padding},
	})
	if p.prepared.Dropped > 0 {
		p.log.Warnn("Dropping cells beyond the column count",
			logger.NewIntField("cells", int64(p.prepared.Dropped)),
			logger.NewIntField("columns", int64(len(p.prepared.Columns))),
		)
	}

	n := len(p.prepared.Columns)
	p.measured = table.MeasureColumns(p.s, p.prepared.Rows, n)
	ellipsis := p.s.MeasureText(p.set.Cell.Font(), table.EllipsisSample)
	p.widths = table.Allocate(table.Allocation{
		Natural:       p.measured.Columns,
		Columns:       p.prepared.Columns,
		Padding:       p.set.Cell.Padding.Horizontal(),
		Available:     p.tableWidth,
		Fit:           p.set.Fit,
		EllipsisWidth: ellipsis,
	})
	if total := p.widths.Total(); total > p.tableWidth {
		p.log.Debugn("Columns overflow the table width",
			logger.NewField("total", total),
			logger.NewField("available", p.tableWidth),
		)
	}
	p.start = p.cursor
	return nil
}

func (p *pass) drawRows() error {
	if err := p.advance(stageColumnsSized, stageRowsDrawn); err != nil {
		return err
	}
	for r, row := range p.prepared.Rows {
		height := row.Height()
		p.cursor.X = p.start.X
		for c, cell := range row.Cells {
			width := p.widths.Computed[c]
			p.drawCell(row, cell, p.measured.Cells[r][c], width, height)
			p.cursor.X += width
			p.drawRowBorder(height)
		}
		p.cursor.Y += height
		p.drawColumnBorder(row.Kind)
		p.drawn++
		if p.cursor.Y > p.s.Height() {
			break
		}
	}
	return nil
}

// drawCell draws one cell at the cursor. natural is the cell's measured
// width, so text that fits is not measured again. Header cells get no
// background fill.
func (p *pass) drawCell(row table.PreparedRow, cell table.PreparedCell, natural, width, height float64) {
	pad := row.Padding
	if cell.Style.Background != "" && row.Kind != table.HeaderRow {
		p.s.FillRect(surface.Rect{
			X: p.cursor.X + borderInset,
			Y: p.cursor.Y + borderInset,
			W: width - 2*borderInset,
			H: height - 2*borderInset,
		}, cell.Style.Background)
	}

	available := width - pad.Horizontal()
	if content, ok := cell.Content.(table.BarcodeContent); ok {
		p.drawBarcode(content, cell.Style, pad, available, width)
		return
	}

	text := cell.Text
	if natural > available {
		text = table.Truncate(p.s, cell.Style.Font(), text, available, p.set.MinCharWidth)
	}
	x := p.cursor.X + pad.Left
	switch cell.Style.TextAlign {
	case surface.AlignRight:
		x = p.cursor.X + width - pad.Right
	case surface.AlignCenter:
		x = p.cursor.X + width/2
	}
	p.s.FillText(text, x, p.cursor.Y+pad.Top, cell.Style.TextStyle())
}

// drawBarcode scales the symbol to the cell's line height, or narrower if
// the column is too small, and aligns it like text.
func (p *pass) drawBarcode(content table.BarcodeContent, style table.Style, pad table.Padding, available, width float64) {
	img, err := barcode.Encode(content.Kind, content.Data)
	if err != nil {
		p.log.Warnn("Skipping barcode cell",
			logger.NewStringField("kind", string(content.Kind)),
			logger.NewErrorField(err),
		)
		return
	}
	ratio := barcode.AspectRatio(content.Kind)
	h := style.LinePixels()
	w := h * ratio
	if w > available {
		w = max(available, 0)
		h = w / ratio
	}
	x := p.cursor.X + pad.Left
	switch style.TextAlign {
	case surface.AlignRight:
		x = p.cursor.X + width - pad.Right - w
	case surface.AlignCenter:
		x = p.cursor.X + (width-w)/2
	}
	p.s.DrawImage(img, surface.Rect{X: x, Y: p.cursor.Y + pad.Top, W: w, H: h})
}

// drawRowBorder draws the vertical line after the cell that ends at the
// cursor.
func (p *pass) drawRowBorder(height float64) {
	b := p.set.Borders.Row
	if !b.Enabled() {
		return
	}
	p.s.StrokePath([]surface.Point{
		{X: p.cursor.X, Y: p.cursor.Y},
		{X: p.cursor.X, Y: p.cursor.Y + height},
	}, b.stroke())
}

// drawColumnBorder draws the horizontal line below the row that ends at the
// cursor. The header border, when set, replaces it below the header row.
func (p *pass) drawColumnBorder(kind table.RowKind) {
	b := p.set.Borders.Column
	if kind == table.HeaderRow && p.set.Borders.Header.Enabled() {
		b = p.set.Borders.Header
	}
	if !b.Enabled() {
		return
	}
	p.s.StrokePath([]surface.Point{
		{X: p.start.X, Y: p.cursor.Y},
		{X: p.cursor.X, Y: p.cursor.Y},
	}, b.stroke())
}

func (p *pass) drawDecorations() error {
	if err := p.advance(stageRowsDrawn, stageDecorationsDrawn); err != nil {
		return err
	}
	p.drawFaders()
	if b := p.set.Borders.Table; b.Enabled() {
		p.s.StrokeRect(surface.Rect{
			X: p.start.X,
			Y: p.start.Y,
			W: p.cursor.X - p.start.X,
			H: p.cursor.Y - p.start.Y,
		}, b.stroke())
	}
	return nil
}

// drawFaders fades the bottom and right edges into the background when the
// table runs past them.
func (p *pass) drawFaders() {
	f := p.set.Fader
	if f.Size <= 0 || p.set.Background == "" {
		return
	}
	w, h := p.s.Width(), p.s.Height()
	stops := []surface.ColorStop{
		{Offset: 0, Color: "transparent"},
		{Offset: 1, Color: p.set.Background},
	}
	if p.cursor.Y > h && f.Bottom {
		p.s.FillRect(surface.Rect{Y: h - f.Size, W: w, H: f.Size},
			surface.LinearGradient{X0: 0, Y0: h - f.Size, X1: 0, Y1: h, Stops: stops})
	}
	if p.cursor.X > w && f.Right {
		p.s.FillRect(surface.Rect{X: w - f.Size, W: f.Size, H: h},
			surface.LinearGradient{X0: w - f.Size, Y0: 0, X1: w, Y1: 0, Stops: stops})
	}
}

func (p *pass) finish() error {
	return p.advance(stageDecorationsDrawn, stageGenerated)
}
