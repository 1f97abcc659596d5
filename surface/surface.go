// Package surface defines the drawing surface a table is rendered onto.
//
// A Surface measures text and exposes a small set of canvas-like drawing
// primitives. Coordinates are logical pixels; the backing resolution is
// controlled with SetDevicePixelRatio and Scale, the same way an HTML canvas
// is prepared for high-density output.
//
// Two implementations are provided: Raster, an in-memory image built on
// golang.org/x/image, and HTMLCanvas (js/wasm only), which draws into a
// browser canvas element. Surfaces keep a sticky error: once a primitive
// fails, later calls are no-ops and Err reports the first failure.
package surface

import (
	"context"
	"image"
	"io"
)

// Kind distinguishes native surfaces from browser surfaces. Export operations
// depend on it.
type Kind int

const (
	KindNative Kind = iota
	KindBrowser
)

func (k Kind) String() string {
	switch k {
	case KindNative:
		return "native"
	case KindBrowser:
		return "browser"
	}
	return "unknown"
}

// Align is a horizontal text alignment relative to the x coordinate passed
// to FillText.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Font identifies a face by family, pixel size and weight ("normal", "bold",
// or a CSS numeric weight).
type Font struct {
	Family string
	Size   float64
	Weight string
}

// Rect is an axis-aligned rectangle in logical pixels.
type Rect struct {
	X, Y, W, H float64
}

// Point is a position in logical pixels.
type Point struct {
	X, Y float64
}

// Paint is what a filled area is painted with: a Color or a LinearGradient.
type Paint interface {
	paint()
}

// Color is a CSS color string such as "#ccc", "purple", "transparent" or
// "rgba(255,255,255,0)".
type Color string

func (Color) paint() {}

// ColorStop is one stop of a LinearGradient. Offset is in [0, 1].
type ColorStop struct {
	Offset float64
	Color  Color
}

// LinearGradient blends its stops along the line (X0,Y0)-(X1,Y1).
type LinearGradient struct {
	X0, Y0, X1, Y1 float64
	Stops          []ColorStop
}

func (LinearGradient) paint() {}

// Stroke describes how lines are drawn.
type Stroke struct {
	Color Color
	Width float64
}

// TextStyle describes how a string is drawn by FillText. Text is positioned
// with its top edge at y.
type TextStyle struct {
	Font  Font
	Color Color
	Align Align
}

// Measurer measures the advance width of text rendered with a font.
type Measurer interface {
	MeasureText(f Font, text string) float64
}

// Surface is a drawing target. Implementations are not safe for concurrent
// use.
type Surface interface {
	Measurer

	// Width and Height report the logical size in pixels.
	Width() float64
	Height() float64
	Kind() Kind

	// SetDevicePixelRatio resizes the backing store to ratio times the
	// logical size. Like resizing a canvas, it clears the surface and resets
	// the current transform.
	SetDevicePixelRatio(ratio float64)
	Scale(sx, sy float64)

	FillRect(r Rect, p Paint)
	FillText(text string, x, y float64, style TextStyle)
	StrokePath(points []Point, s Stroke)
	StrokeRect(r Rect, s Stroke)
	DrawImage(img image.Image, r Rect)

	// Err returns the first error raised by a drawing primitive.
	Err() error
}

// Encoder is implemented by native surfaces that can serialize their content
// as a PNG image.
type Encoder interface {
	Encode(w io.Writer) error
}

// Blob is a handle to a browser-native binary object.
type Blob struct {
	MIMEType string
	Size     int
	// Handle is the underlying js.Value on js/wasm.
	Handle any
}

// BlobEncoder is implemented by browser surfaces.
type BlobEncoder interface {
	Blob(ctx context.Context, mimeType string) (Blob, error)
}
