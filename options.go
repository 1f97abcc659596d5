package canvastable

import (
	"fmt"

	"github.com/rudderlabs/rudder-go-kit/logger"

	"github.com/lvillar/canvastable/surface"
	"github.com/lvillar/canvastable/table"
)

// Border is a line style. A zero Width disables the border.
type Border struct {
	Color surface.Color `json:"color" yaml:"color"`
	Width float64       `json:"width" yaml:"width"`
}

// Enabled reports whether the border is drawn.
func (b Border) Enabled() bool {
	return b.Width > 0 && b.Color != ""
}

func (b Border) stroke() surface.Stroke {
	return surface.Stroke{Color: b.Color, Width: b.Width}
}

// Borders groups the table's border styles. Column borders are the
// horizontal lines between rows, row borders the vertical lines between
// cells; Header replaces Column below the header row.
type Borders struct {
	Column Border `json:"column,omitempty" yaml:"column,omitempty"`
	Header Border `json:"header,omitempty" yaml:"header,omitempty"`
	Row    Border `json:"row,omitempty" yaml:"row,omitempty"`
	Table  Border `json:"table,omitempty" yaml:"table,omitempty"`
}

// RowSettings is the resolved style and padding of header or body cells.
// Background is painted for body cells only; the header row is drawn on the
// table background.
type RowSettings struct {
	table.Style `yaml:",inline"`
	Padding     table.Padding `json:"padding" yaml:"padding"`
}

func (r RowSettings) class() table.RowClass {
	return table.RowClass{Style: r.Style, Padding: r.Padding}
}

// Fader fades the table into the background at an edge the table overflows.
type Fader struct {
	Right  bool    `json:"right" yaml:"right"`
	Bottom bool    `json:"bottom" yaml:"bottom"`
	Size   float64 `json:"size" yaml:"size"`
}

// TitleSettings is a resolved title or subtitle.
type TitleSettings struct {
	table.Style `yaml:",inline"`
	Text        string `json:"text,omitempty" yaml:"text,omitempty"`
	Multiline   bool   `json:"multiline" yaml:"multiline"`
}

// Settings is a fully resolved configuration. DefaultSettings documents the
// default of every option.
type Settings struct {
	Borders          Borders       `json:"borders" yaml:"borders"`
	Header           RowSettings   `json:"header" yaml:"header"`
	Cell             RowSettings   `json:"cell" yaml:"cell"`
	Background       surface.Color `json:"background" yaml:"background"`
	DevicePixelRatio float64       `json:"devicePixelRatio" yaml:"devicePixelRatio"`
	Fader            Fader         `json:"fader" yaml:"fader"`
	Fit              bool          `json:"fit" yaml:"fit"`
	HideHeader       bool          `json:"hideHeader" yaml:"hideHeader"`
	MinCharWidth     int           `json:"minCharWidth" yaml:"minCharWidth"`
	Padding          table.Padding `json:"padding" yaml:"padding"`
	Subtitle         TitleSettings `json:"subtitle" yaml:"subtitle"`
	Title            TitleSettings `json:"title" yaml:"title"`
}

// DefaultSettings returns the default configuration.
func DefaultSettings() Settings {
	return Settings{
		Borders: Borders{
			Header: Border{Color: "#ccc", Width: 1},
		},
		Header: RowSettings{
			Style: table.Style{
				FontFamily: surface.DefaultFamily,
				FontSize:   12,
				FontWeight: "bold",
				Color:      "#666666",
				TextAlign:  surface.AlignLeft,
				LineHeight: 1.2,
			},
			Padding: table.UniformPadding(5),
		},
		Cell: RowSettings{
			Style: table.Style{
				FontFamily: surface.DefaultFamily,
				FontSize:   12,
				FontWeight: "normal",
				Color:      "#444444",
				TextAlign:  surface.AlignLeft,
				LineHeight: 1.2,
			},
			Padding: table.UniformPadding(5),
		},
		Background:       "#ffffff",
		DevicePixelRatio: 2,
		Fader:            Fader{Right: true, Bottom: true, Size: 40},
		MinCharWidth:     3,
		Padding:          table.UniformPadding(20),
		Subtitle: TitleSettings{
			Style: table.Style{
				FontFamily: surface.DefaultFamily,
				FontSize:   14,
				FontWeight: "normal",
				Color:      "#888888",
				TextAlign:  surface.AlignCenter,
				LineHeight: 1,
			},
		},
		Title: TitleSettings{
			Style: table.Style{
				FontFamily: surface.DefaultFamily,
				FontSize:   14,
				FontWeight: "bold",
				Color:      "#666666",
				TextAlign:  surface.AlignCenter,
				LineHeight: 1,
			},
		},
	}
}

// MaxDevicePixelRatio is the largest accepted device pixel ratio.
const MaxDevicePixelRatio = 16

func (s Settings) validate() error {
	switch {
	case !(s.DevicePixelRatio > 0 && s.DevicePixelRatio <= MaxDevicePixelRatio):
		return fmt.Errorf("%w: devicePixelRatio %v", ErrInvalidParam, s.DevicePixelRatio)
	case s.MinCharWidth < 0:
		return fmt.Errorf("%w: minCharWidth %d", ErrInvalidParam, s.MinCharWidth)
	case s.Fader.Size < 0:
		return fmt.Errorf("%w: fader size %v", ErrInvalidParam, s.Fader.Size)
	}
	return nil
}

// Options is a partial configuration as supplied by callers. Nil and zero
// fields keep the value of the Settings they are merged over.
type Options struct {
	Borders          *BordersOptions    `json:"borders,omitempty" yaml:"borders,omitempty"`
	Header           *RowOptions        `json:"header,omitempty" yaml:"header,omitempty"`
	Cell             *RowOptions        `json:"cell,omitempty" yaml:"cell,omitempty"`
	Background       *surface.Color     `json:"background,omitempty" yaml:"background,omitempty"`
	DevicePixelRatio float64            `json:"devicePixelRatio,omitempty" yaml:"devicePixelRatio,omitempty"`
	Fader            *FaderOptions      `json:"fader,omitempty" yaml:"fader,omitempty"`
	Fit              *bool              `json:"fit,omitempty" yaml:"fit,omitempty"`
	HideHeader       *bool              `json:"hideHeader,omitempty" yaml:"hideHeader,omitempty"`
	MinCharWidth     *int               `json:"minCharWidth,omitempty" yaml:"minCharWidth,omitempty"`
	Padding          *table.PaddingSpec `json:"padding,omitempty" yaml:"padding,omitempty"`
	Subtitle         *TitleOptions      `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Title            *TitleOptions      `json:"title,omitempty" yaml:"title,omitempty"`
}

// BordersOptions overrides individual borders.
type BordersOptions struct {
	Column *Border `json:"column,omitempty" yaml:"column,omitempty"`
	Header *Border `json:"header,omitempty" yaml:"header,omitempty"`
	Row    *Border `json:"row,omitempty" yaml:"row,omitempty"`
	Table  *Border `json:"table,omitempty" yaml:"table,omitempty"`
}

// RowOptions overrides header or body cell style and padding.
type RowOptions struct {
	table.Style `yaml:",inline"`
	Padding     *table.PaddingSpec `json:"padding,omitempty" yaml:"padding,omitempty"`
}

// FaderOptions overrides the fader.
type FaderOptions struct {
	Right  *bool    `json:"right,omitempty" yaml:"right,omitempty"`
	Bottom *bool    `json:"bottom,omitempty" yaml:"bottom,omitempty"`
	Size   *float64 `json:"size,omitempty" yaml:"size,omitempty"`
}

// TitleOptions overrides a title or subtitle.
type TitleOptions struct {
	table.Style `yaml:",inline"`
	Text        string `json:"text,omitempty" yaml:"text,omitempty"`
	Multiline   *bool  `json:"multiline,omitempty" yaml:"multiline,omitempty"`
}

// Merge returns base with every option set in o applied. Nested options are
// merged field by field, so {padding: {left: 3}} only changes the left
// padding. A nil receiver returns base unchanged.
func (o *Options) Merge(base Settings) Settings {
	s := base
	if o == nil {
		return s
	}
	if o.Borders != nil {
		s.Borders = o.Borders.merge(s.Borders)
	}
	if o.Header != nil {
		s.Header = o.Header.merge(s.Header)
	}
	if o.Cell != nil {
		s.Cell = o.Cell.merge(s.Cell)
	}
	if o.Background != nil {
		s.Background = *o.Background
	}
	if o.DevicePixelRatio > 0 {
		s.DevicePixelRatio = o.DevicePixelRatio
	}
	if o.Fader != nil {
		s.Fader = o.Fader.merge(s.Fader)
	}
	if o.Fit != nil {
		s.Fit = *o.Fit
	}
	if o.HideHeader != nil {
		s.HideHeader = *o.HideHeader
	}
	if o.MinCharWidth != nil {
		s.MinCharWidth = *o.MinCharWidth
	}
	if o.Padding != nil {
		s.Padding = table.NormalizePadding(o.Padding, s.Padding)
	}
	if o.Subtitle != nil {
		s.Subtitle = o.Subtitle.merge(s.Subtitle)
	}
	if o.Title != nil {
		s.Title = o.Title.merge(s.Title)
	}
	return s
}

func (o *BordersOptions) merge(base Borders) Borders {
	b := base
	if o.Column != nil {
		b.Column = *o.Column
	}
	if o.Header != nil {
		b.Header = *o.Header
	}
	if o.Row != nil {
		b.Row = *o.Row
	}
	if o.Table != nil {
		b.Table = *o.Table
	}
	return b
}

func (o *RowOptions) merge(base RowSettings) RowSettings {
	r := base
	r.Style = table.ResolveStyle(base.Style, o.Style)
	if o.Padding != nil {
		r.Padding = table.NormalizePadding(o.Padding, base.Padding)
	}
	return r
}

func (o *FaderOptions) merge(base Fader) Fader {
	f := base
	if o.Right != nil {
		f.Right = *o.Right
	}
	if o.Bottom != nil {
		f.Bottom = *o.Bottom
	}
	if o.Size != nil {
		f.Size = *o.Size
	}
	return f
}

func (o *TitleOptions) merge(base TitleSettings) TitleSettings {
	t := base
	t.Style = table.ResolveStyle(base.Style, o.Style)
	if o.Text != "" {
		t.Text = o.Text
	}
	if o.Multiline != nil {
		t.Multiline = *o.Multiline
	}
	return t
}

// Option is a functional option for New.
type Option func(*tableConfig)

type tableConfig struct {
	log  logger.Logger
	base Settings
}

// WithLogger sets the logger used for render diagnostics. The default
// discards everything.
func WithLogger(log logger.Logger) Option {
	return func(c *tableConfig) {
		c.log = log
	}
}

// WithBaseSettings replaces DefaultSettings as the base the table's Options
// are merged over.
func WithBaseSettings(s Settings) Option {
	return func(c *tableConfig) {
		c.base = s
	}
}
