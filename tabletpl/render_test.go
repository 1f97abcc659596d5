package tabletpl

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/gomono"

	"github.com/lvillar/canvastable"
	"github.com/lvillar/canvastable/surface"
)

const expensesJSON = `{
	"width": 320,
	"height": 120,
	"columns": [
		{"title": "Text"},
		{"title": "Expenses", "style": {"textAlign": "right"}},
		{"title": "Net", "minWidth": 40, "style": {"textAlign": "right"}}
	],
	"rows": [
		["lorem", {"value": "200$", "color": "#c00"}, "-3$"],
		["ipsum", "50$", "12$"]
	],
	"options": {
		"devicePixelRatio": 1,
		"padding": 10,
		"title": {"text": "Expenses"}
	}
}`

func TestParseDefaults(t *testing.T) {
	doc, err := Parse([]byte(`rows: [[a, b]]`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if doc.Width != DefaultWidth || doc.Height != DefaultHeight {
		t.Fatalf("expected default canvas, got %dx%d", doc.Width, doc.Height)
	}
	if len(doc.Rows) != 1 || doc.Rows[0][1].Value() != "b" {
		t.Fatalf("unexpected rows: %+v", doc.Rows)
	}
}

func TestParseJSON(t *testing.T) {
	doc, err := Parse([]byte(expensesJSON))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(doc.Columns) != 3 || doc.Columns[2].MinWidth != 40 {
		t.Fatalf("unexpected columns: %+v", doc.Columns)
	}
	if got := string(doc.Rows[0][1].Style.Color); got != "#c00" {
		t.Errorf("cell color = %q", got)
	}
	if doc.Options == nil || doc.Options.Title == nil || doc.Options.Title.Text != "Expenses" {
		t.Fatalf("title option not decoded: %+v", doc.Options)
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"syntax":         `{"rows": [`,
		"too wide":       `{"width": 100000, "rows": []}`,
		"negative":       `{"height": -1, "rows": []}`,
		"font path":      `{"rows": [], "fonts": [{"family": "x"}]}`,
		"ratio":          `{"columns": [{"title": "A"}], "rows": [["x"]], "options": {"devicePixelRatio": 1000000}}`,
		"negative ratio": `{"rows": [], "options": {"devicePixelRatio": -2}}`,
		"backing":        `{"width": 8192, "height": 8192, "rows": [], "options": {"devicePixelRatio": 4}}`,
	}
	for name, src := range tests {
		if _, err := Parse([]byte(src)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestMeasureBackingTooLarge(t *testing.T) {
	doc, err := Parse([]byte(`{"width": 2000, "height": 2000, "columns": [{"title": "A"}], "rows": [["x"]]}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	base := canvastable.DefaultSettings()
	base.DevicePixelRatio = canvastable.MaxDevicePixelRatio

	_, err = Measure(context.Background(), doc, canvastable.WithBaseSettings(base))
	if !errors.Is(err, surface.ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	var te *canvastable.TableError
	if !errors.As(err, &te) || te.Op != "Generate" {
		t.Fatalf("expected a Generate TableError, got %v", err)
	}
}

func TestRenderPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(context.Background(), &buf, []byte(expensesJSON)); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 120 {
		t.Fatalf("unexpected image size %v", b)
	}
}

func TestMeasure(t *testing.T) {
	doc, err := Parse([]byte(expensesJSON))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	m, err := Measure(context.Background(), doc)
	if err != nil {
		t.Fatalf("Measure failed: %v", err)
	}
	if m.Dimensions.Width != 300 || m.Dimensions.Height != 100 {
		t.Errorf("unexpected table area %+v", m.Dimensions)
	}
	if len(m.ColumnWidths) != 3 {
		t.Fatalf("expected 3 column widths, got %v", m.ColumnWidths)
	}
	if m.ColumnWidths[2] < 50 {
		t.Errorf("minWidth column too narrow: %v", m.ColumnWidths[2])
	}
}

func TestLoadResolvesFonts(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mono.ttf"), gomono.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	src := `
width: 200
height: 80
fonts:
  - {family: Code, path: mono.ttf}
columns: [{title: ID}]
rows: [[A-1]]
options:
  cell: {fontFamily: Code}
`
	path := filepath.Join(dir, "table.yaml")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if want := filepath.Join(dir, "mono.ttf"); doc.Fonts[0].Path != want {
		t.Fatalf("font path = %q, want %q", doc.Fonts[0].Path, want)
	}
	var buf bytes.Buffer
	if err := RenderDocument(context.Background(), &buf, doc); err != nil {
		t.Fatalf("RenderDocument failed: %v", err)
	}
}

func TestMissingFont(t *testing.T) {
	doc := &Document{
		Width:  100,
		Height: 100,
		Fonts:  []FontFile{{Family: "Gone", Path: filepath.Join(t.TempDir(), "gone.ttf")}},
	}
	err := RenderDocument(context.Background(), &bytes.Buffer{}, doc)
	if err == nil || !strings.Contains(err.Error(), "Gone") {
		t.Fatalf("expected font error, got %v", err)
	}
}
