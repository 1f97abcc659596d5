// Package table holds the table data model and the layout algorithms that do
// not depend on a particular drawing surface: padding normalization, style
// resolution, row preprocessing, column width allocation and text fitting.
package table

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/lvillar/canvastable/surface"
)

// Style is a set of text style overrides. A zero field is unset and does not
// override lower layers.
type Style struct {
	FontFamily string        `json:"fontFamily,omitempty" yaml:"fontFamily,omitempty"`
	FontSize   float64       `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	FontWeight string        `json:"fontWeight,omitempty" yaml:"fontWeight,omitempty"`
	Color      surface.Color `json:"color,omitempty" yaml:"color,omitempty"`
	TextAlign  surface.Align `json:"textAlign,omitempty" yaml:"textAlign,omitempty"`
	Background surface.Color `json:"background,omitempty" yaml:"background,omitempty"`
	LineHeight float64       `json:"lineHeight,omitempty" yaml:"lineHeight,omitempty"`
}

// Font returns the surface font described by s.
func (s Style) Font() surface.Font {
	return surface.Font{Family: s.FontFamily, Size: s.FontSize, Weight: s.FontWeight}
}

// TextStyle returns the FillText style described by s.
func (s Style) TextStyle() surface.TextStyle {
	return surface.TextStyle{Font: s.Font(), Color: s.Color, Align: s.TextAlign}
}

// LinePixels is the height of one line of text: font size times line height.
func (s Style) LinePixels() float64 {
	return s.FontSize * s.LineHeight
}

// ResolveStyle merges layers from left to right; later layers override the
// fields they set.
func ResolveStyle(layers ...Style) Style {
	var result Style
	for _, l := range layers {
		mergeStyle(&result, l)
	}
	return result
}

// mergeStyle copies set fields from src to dst.
func mergeStyle(dst *Style, src Style) {
	if src.FontFamily != "" {
		dst.FontFamily = src.FontFamily
	}
	if src.FontSize > 0 {
		dst.FontSize = src.FontSize
	}
	if src.FontWeight != "" {
		dst.FontWeight = src.FontWeight
	}
	if src.Color != "" {
		dst.Color = src.Color
	}
	if src.TextAlign != "" {
		dst.TextAlign = src.TextAlign
	}
	if src.Background != "" {
		dst.Background = src.Background
	}
	if src.LineHeight > 0 {
		dst.LineHeight = src.LineHeight
	}
}

// Padding defines spacing on each side.
type Padding struct {
	Top    float64 `json:"top" yaml:"top"`
	Right  float64 `json:"right" yaml:"right"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
	Left   float64 `json:"left" yaml:"left"`
}

// UniformPadding creates a Padding with the same value on all sides.
func UniformPadding(v float64) Padding {
	return Padding{Top: v, Right: v, Bottom: v, Left: v}
}

// Horizontal is Left + Right.
func (p Padding) Horizontal() float64 { return p.Left + p.Right }

// Vertical is Top + Bottom.
func (p Padding) Vertical() float64 { return p.Top + p.Bottom }

// Spec returns a fully specified PaddingSpec equal to p.
func (p Padding) Spec() *PaddingSpec {
	return &PaddingSpec{Top: &p.Top, Right: &p.Right, Bottom: &p.Bottom, Left: &p.Left}
}

// PaddingSpec is padding as callers supply it: a single number for every
// side, individual sides, or both (sides win over All). In YAML and JSON it
// is either a bare number or an object with top/right/bottom/left keys.
type PaddingSpec struct {
	All    *float64
	Top    *float64
	Right  *float64
	Bottom *float64
	Left   *float64
}

// Uniform returns a spec that sets every side to v.
func Uniform(v float64) *PaddingSpec {
	return &PaddingSpec{All: &v}
}

// NormalizePadding turns spec into four-sided padding. A nil spec is all
// zero; unspecified sides of a partial spec keep their value from base.
func NormalizePadding(spec *PaddingSpec, base Padding) Padding {
	if spec == nil {
		return Padding{}
	}
	p := base
	if spec.All != nil {
		p = UniformPadding(*spec.All)
	}
	if spec.Top != nil {
		p.Top = *spec.Top
	}
	if spec.Right != nil {
		p.Right = *spec.Right
	}
	if spec.Bottom != nil {
		p.Bottom = *spec.Bottom
	}
	if spec.Left != nil {
		p.Left = *spec.Left
	}
	return p
}

// UnmarshalYAML accepts a number or a mapping of sides.
func (s *PaddingSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var v float64
		if err := node.Decode(&v); err != nil {
			return fmt.Errorf("padding: %w", err)
		}
		*s = PaddingSpec{All: &v}
		return nil
	case yaml.MappingNode:
		var sides struct {
			Top    *float64 `yaml:"top"`
			Right  *float64 `yaml:"right"`
			Bottom *float64 `yaml:"bottom"`
			Left   *float64 `yaml:"left"`
		}
		if err := node.Decode(&sides); err != nil {
			return fmt.Errorf("padding: %w", err)
		}
		*s = PaddingSpec{Top: sides.Top, Right: sides.Right, Bottom: sides.Bottom, Left: sides.Left}
		return nil
	}
	return fmt.Errorf("padding: line %d: expected a number or a mapping", node.Line)
}

// UnmarshalJSON accepts the same forms as UnmarshalYAML.
func (s *PaddingSpec) UnmarshalJSON(data []byte) error {
	return yaml.Unmarshal(data, s)
}

// document is a bare number when only All is set and a mapping of the set
// sides otherwise, with All filling the sides that are not overridden.
func (s PaddingSpec) document() any {
	sides := map[string]*float64{"top": s.Top, "right": s.Right, "bottom": s.Bottom, "left": s.Left}
	if s.All != nil {
		if s.Top == nil && s.Right == nil && s.Bottom == nil && s.Left == nil {
			return *s.All
		}
		for name, v := range sides {
			if v == nil {
				sides[name] = s.All
			}
		}
	}
	out := make(map[string]float64, len(sides))
	for name, v := range sides {
		if v != nil {
			out[name] = *v
		}
	}
	return out
}

func (s PaddingSpec) MarshalYAML() (any, error) {
	return s.document(), nil
}

func (s PaddingSpec) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.document())
}
