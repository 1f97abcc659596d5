// Package surfacetest provides a recording surface for tests.
//
// Recorder measures every character as CharWidth pixels and records each
// call in canvas vocabulary ("scale", "fillRect", "measureText", "fillText",
// "beginPath", "moveTo", "lineTo", "stroke", ...), so a test can assert the
// exact drawing sequence a render produced.
package surfacetest

import (
	"context"
	"encoding/json"
	"image"
	"io"
	"unicode/utf8"

	"github.com/lvillar/canvastable/surface"
)

// DefaultCharWidth is the width of every character measured by a Recorder.
const DefaultCharWidth = 5

// Call is one recorded surface call.
type Call struct {
	Method string `json:"method"`
	Args   []any  `json:"args,omitempty"`
	// Style holds the text style of fillText and measureText calls.
	Style *surface.TextStyle `json:"-"`
}

// Recorder is a surface.Surface that records calls instead of drawing.
type Recorder struct {
	width, height float64
	kind          surface.Kind
	charWidth     float64
	calls         []Call
	failAt        int
	failErr       error
	err           error
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithKind makes the recorder report k, e.g. surface.KindBrowser.
func WithKind(k surface.Kind) Option {
	return func(r *Recorder) { r.kind = k }
}

// WithCharWidth changes the per-character measurement.
func WithCharWidth(w float64) Option {
	return func(r *Recorder) { r.charWidth = w }
}

// FailAt makes the n-th call (1-based) set err as the sticky surface error.
func FailAt(n int, err error) Option {
	return func(r *Recorder) {
		r.failAt = n
		r.failErr = err
	}
}

// NewRecorder returns a native-kind recorder of the given logical size.
func NewRecorder(width, height float64, opts ...Option) *Recorder {
	r := &Recorder{width: width, height: height, charWidth: DefaultCharWidth}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Calls returns every recorded call in order.
func (r *Recorder) Calls() []Call { return r.calls }

// Methods returns the recorded calls with their style stripped.
func (r *Recorder) Methods() [][]any {
	out := make([][]any, 0, len(r.calls))
	for _, c := range r.calls {
		out = append(out, append([]any{c.Method}, c.Args...))
	}
	return out
}

// Filter returns the calls whose method is one of methods.
func (r *Recorder) Filter(methods ...string) []Call {
	var out []Call
	for _, c := range r.calls {
		for _, m := range methods {
			if c.Method == m {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// Reset forgets all recorded calls and the sticky error.
func (r *Recorder) Reset() {
	r.calls = nil
	r.err = nil
}

func (r *Recorder) Width() float64     { return r.width }
func (r *Recorder) Height() float64    { return r.height }
func (r *Recorder) Kind() surface.Kind { return r.kind }
func (r *Recorder) Err() error         { return r.err }

func (r *Recorder) SetDevicePixelRatio(ratio float64) {
	r.record(Call{Method: "setDevicePixelRatio", Args: []any{ratio}})
}

func (r *Recorder) Scale(sx, sy float64) {
	r.record(Call{Method: "scale", Args: []any{sx, sy}})
}

func (r *Recorder) MeasureText(f surface.Font, text string) float64 {
	r.record(Call{Method: "measureText", Args: []any{text}, Style: &surface.TextStyle{Font: f}})
	return float64(utf8.RuneCountInString(text)) * r.charWidth
}

func (r *Recorder) FillRect(rect surface.Rect, p surface.Paint) {
	if g, ok := p.(surface.LinearGradient); ok {
		r.record(Call{Method: "createLinearGradient", Args: []any{g.X0, g.Y0, g.X1, g.Y1}})
	}
	r.record(Call{Method: "fillRect", Args: []any{rect.X, rect.Y, rect.W, rect.H}})
}

func (r *Recorder) FillText(text string, x, y float64, style surface.TextStyle) {
	s := style
	r.record(Call{Method: "fillText", Args: []any{text, x, y}, Style: &s})
}

func (r *Recorder) StrokePath(points []surface.Point, s surface.Stroke) {
	if len(points) < 2 {
		return
	}
	r.record(Call{Method: "beginPath"})
	r.record(Call{Method: "moveTo", Args: []any{points[0].X, points[0].Y}})
	for _, p := range points[1:] {
		r.record(Call{Method: "lineTo", Args: []any{p.X, p.Y}})
	}
	r.record(Call{Method: "stroke", Args: []any{string(s.Color), s.Width}})
}

func (r *Recorder) StrokeRect(rect surface.Rect, s surface.Stroke) {
	r.record(Call{Method: "strokeRect", Args: []any{rect.X, rect.Y, rect.W, rect.H}})
}

func (r *Recorder) DrawImage(img image.Image, rect surface.Rect) {
	b := img.Bounds()
	r.record(Call{Method: "drawImage", Args: []any{b.Dx(), b.Dy(), rect.X, rect.Y, rect.W, rect.H}})
}

// Encode writes the recorded calls as JSON. Only native recorders implement
// it meaningfully; the table checks the kind before calling it.
func (r *Recorder) Encode(w io.Writer) error {
	if r.err != nil {
		return r.err
	}
	return json.NewEncoder(w).Encode(r.Methods())
}

// Blob returns a handle describing the recorded calls.
func (r *Recorder) Blob(ctx context.Context, mimeType string) (surface.Blob, error) {
	if err := ctx.Err(); err != nil {
		return surface.Blob{}, err
	}
	if r.err != nil {
		return surface.Blob{}, r.err
	}
	data, err := json.Marshal(r.Methods())
	if err != nil {
		return surface.Blob{}, err
	}
	return surface.Blob{MIMEType: mimeType, Size: len(data), Handle: data}, nil
}

func (r *Recorder) record(c Call) {
	r.calls = append(r.calls, c)
	if r.failAt > 0 && len(r.calls) == r.failAt && r.err == nil {
		r.err = r.failErr
	}
}
