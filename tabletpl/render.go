package tabletpl

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/lvillar/canvastable"
	"github.com/lvillar/canvastable/surface"
)

// Parse decodes a YAML or JSON document and applies the default canvas size.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("tabletpl: parsing document: %w", err)
	}
	if doc.Width == 0 {
		doc.Width = DefaultWidth
	}
	if doc.Height == 0 {
		doc.Height = DefaultHeight
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tabletpl: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	dir := filepath.Dir(path)
	for i, f := range doc.Fonts {
		if f.Path != "" && !filepath.IsAbs(f.Path) {
			doc.Fonts[i].Path = filepath.Join(dir, f.Path)
		}
	}
	return doc, nil
}

func (d *Document) validate() error {
	if d.Width <= 0 || d.Width > MaxSide || d.Height <= 0 || d.Height > MaxSide {
		return fmt.Errorf("tabletpl: canvas %dx%d outside 1..%d", d.Width, d.Height, MaxSide)
	}
	if d.Options != nil && d.Options.DevicePixelRatio != 0 {
		ratio := d.Options.DevicePixelRatio
		if !(ratio > 0 && ratio <= canvastable.MaxDevicePixelRatio) {
			return fmt.Errorf("tabletpl: devicePixelRatio %v outside (0, %d]", ratio, canvastable.MaxDevicePixelRatio)
		}
		if float64(d.Width)*ratio*float64(d.Height)*ratio > surface.MaxPixels {
			return fmt.Errorf("tabletpl: canvas %dx%d at devicePixelRatio %v exceeds %d pixels", d.Width, d.Height, ratio, surface.MaxPixels)
		}
	}
	for _, f := range d.Fonts {
		if f.Family == "" || f.Path == "" {
			return fmt.Errorf("tabletpl: font needs a family and a path")
		}
	}
	return nil
}

// Render parses a document and writes the table as a PNG image to w.
func Render(ctx context.Context, w io.Writer, src []byte, opts ...canvastable.Option) error {
	doc, err := Parse(src)
	if err != nil {
		return err
	}
	return RenderDocument(ctx, w, doc, opts...)
}

// RenderDocument renders doc and writes the table as a PNG image to w.
func RenderDocument(ctx context.Context, w io.Writer, doc *Document, opts ...canvastable.Option) error {
	ct, s, err := generate(ctx, doc, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	if _, err := ct.WriteTo(w); err != nil {
		return fmt.Errorf("tabletpl: %w", err)
	}
	return nil
}

// Measurement is the layout of a rendered document.
type Measurement struct {
	Dimensions   canvastable.Dimensions `json:"dimensions" yaml:"dimensions"`
	ColumnWidths []float64              `json:"columnWidths" yaml:"columnWidths"`
}

// Measure lays out doc without encoding an image.
func Measure(ctx context.Context, doc *Document, opts ...canvastable.Option) (Measurement, error) {
	ct, s, err := generate(ctx, doc, opts)
	if err != nil {
		return Measurement{}, err
	}
	defer s.Close()

	var m Measurement
	if m.Dimensions, err = ct.TableDimensions(); err != nil {
		return Measurement{}, fmt.Errorf("tabletpl: %w", err)
	}
	if m.ColumnWidths, err = ct.ColumnWidths(); err != nil {
		return Measurement{}, fmt.Errorf("tabletpl: %w", err)
	}
	return m, nil
}

func generate(ctx context.Context, doc *Document, opts []canvastable.Option) (*canvastable.CanvasTable, *surface.Raster, error) {
	if err := doc.validate(); err != nil {
		return nil, nil, err
	}
	var rasterOpts []surface.RasterOption
	if len(doc.Fonts) > 0 {
		reg, err := doc.fontRegistry()
		if err != nil {
			return nil, nil, err
		}
		rasterOpts = append(rasterOpts, surface.WithFontRegistry(reg))
	}

	s := surface.NewRaster(doc.Width, doc.Height, rasterOpts...)
	ct, err := canvastable.New(s, doc.Config(), opts...)
	if err != nil {
		s.Close()
		return nil, nil, fmt.Errorf("tabletpl: %w", err)
	}
	if err := ct.Generate(ctx); err != nil {
		s.Close()
		return nil, nil, fmt.Errorf("tabletpl: %w", err)
	}
	return ct, s, nil
}

func (d *Document) fontRegistry() (*surface.FontRegistry, error) {
	reg := surface.NewFontRegistry()
	for _, f := range d.Fonts {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			return nil, fmt.Errorf("tabletpl: font %s: %w", f.Family, err)
		}
		weight := f.Weight
		if weight == "" {
			weight = "normal"
		}
		if err := reg.Register(f.Family, weight, data); err != nil {
			return nil, fmt.Errorf("tabletpl: font %s: %w", f.Family, err)
		}
	}
	return reg, nil
}
