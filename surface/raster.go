package surface

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// MaxPixels bounds the backing store of a Raster: an 8192x8192 canvas at a
// device pixel ratio of 2.
const MaxPixels = 1 << 28

// Raster is an in-memory RGBA surface. It is the native surface kind.
type Raster struct {
	width, height float64
	ratio         float64
	sx, sy        float64
	img           *image.RGBA
	faces         *faceCache
	err           error
}

// RasterOption configures a Raster.
type RasterOption func(*Raster)

// WithFontRegistry makes the raster resolve fonts from reg instead of the
// default registry.
func WithFontRegistry(reg *FontRegistry) RasterOption {
	return func(r *Raster) {
		r.faces = newFaceCache(reg)
	}
}

// NewRaster creates a transparent surface of the given logical size with a
// device pixel ratio of 1.
func NewRaster(width, height int, opts ...RasterOption) *Raster {
	r := &Raster{
		width:  float64(width),
		height: float64(height),
		faces:  newFaceCache(nil),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.SetDevicePixelRatio(1)
	return r
}

func (r *Raster) Width() float64  { return r.width }
func (r *Raster) Height() float64 { return r.height }
func (r *Raster) Kind() Kind      { return KindNative }
func (r *Raster) Err() error      { return r.err }

// Image returns the backing image. Its size is the logical size times the
// device pixel ratio.
func (r *Raster) Image() *image.RGBA { return r.img }

func (r *Raster) SetDevicePixelRatio(ratio float64) {
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		r.fail(fmt.Errorf("surface: invalid device pixel ratio %v", ratio))
		return
	}
	w := math.Round(r.width * ratio)
	h := math.Round(r.height * ratio)
	if w < 0 || h < 0 {
		r.fail(fmt.Errorf("surface: invalid size %vx%v", r.width, r.height))
		return
	}
	if w*h > MaxPixels {
		r.fail(fmt.Errorf("%w: %vx%v pixels at ratio %v", ErrTooLarge, w, h, ratio))
		return
	}
	r.ratio = ratio
	r.sx, r.sy = 1, 1
	r.img = image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
}

func (r *Raster) Scale(sx, sy float64) {
	r.sx *= sx
	r.sy *= sy
}

func (r *Raster) MeasureText(f Font, text string) float64 {
	if r.err != nil || text == "" {
		return 0
	}
	face, err := r.faces.face(f, 1)
	if err != nil {
		r.fail(err)
		return 0
	}
	return fixedToFloat(font.MeasureString(face, text))
}

func (r *Raster) FillRect(rect Rect, p Paint) {
	if r.err != nil || rect.W == 0 || rect.H == 0 {
		return
	}
	src, err := r.source(p)
	if err != nil {
		r.fail(err)
		return
	}
	x0, y0 := r.device(rect.X, rect.Y)
	x1, y1 := r.device(rect.X+rect.W, rect.Y+rect.H)
	r.fillPolygon([]Point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}, src)
}

func (r *Raster) FillText(text string, x, y float64, style TextStyle) {
	if r.err != nil || text == "" {
		return
	}
	c, err := ParseColor(style.Color)
	if err != nil {
		r.fail(err)
		return
	}
	face, err := r.faces.face(style.Font, r.sy)
	if err != nil {
		r.fail(err)
		return
	}
	dx, dy := r.device(x, y)
	width := fixedToFloat(font.MeasureString(face, text))
	switch style.Align {
	case AlignCenter:
		dx -= width / 2
	case AlignRight:
		dx -= width
	}
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: floatToFixed(dx), Y: floatToFixed(dy) + face.Metrics().Ascent},
	}
	d.DrawString(text)
}

func (r *Raster) StrokePath(points []Point, s Stroke) {
	if r.err != nil || len(points) < 2 || s.Width <= 0 {
		return
	}
	c, err := ParseColor(s.Color)
	if err != nil {
		r.fail(err)
		return
	}
	src := image.NewUniform(c)
	half := s.Width * (r.sx + r.sy) / 4
	for i := 1; i < len(points); i++ {
		ax, ay := r.device(points[i-1].X, points[i-1].Y)
		bx, by := r.device(points[i].X, points[i].Y)
		dx, dy := bx-ax, by-ay
		length := math.Hypot(dx, dy)
		if length == 0 {
			continue
		}
		// Extend each segment by half the width so corners are filled.
		ux, uy := dx/length*half, dy/length*half
		nx, ny := -uy, ux
		r.fillPolygon([]Point{
			{ax - ux + nx, ay - uy + ny},
			{bx + ux + nx, by + uy + ny},
			{bx + ux - nx, by + uy - ny},
			{ax - ux - nx, ay - uy - ny},
		}, src)
	}
}

func (r *Raster) StrokeRect(rect Rect, s Stroke) {
	r.StrokePath([]Point{
		{rect.X, rect.Y},
		{rect.X + rect.W, rect.Y},
		{rect.X + rect.W, rect.Y + rect.H},
		{rect.X, rect.Y + rect.H},
		{rect.X, rect.Y},
	}, s)
}

func (r *Raster) DrawImage(img image.Image, rect Rect) {
	if r.err != nil || img == nil {
		return
	}
	x0, y0 := r.device(rect.X, rect.Y)
	x1, y1 := r.device(rect.X+rect.W, rect.Y+rect.H)
	dst := image.Rect(int(math.Round(x0)), int(math.Round(y0)), int(math.Round(x1)), int(math.Round(y1)))
	if dst.Empty() {
		return
	}
	draw.NearestNeighbor.Scale(r.img, dst, img, img.Bounds(), draw.Over, nil)
}

// Encode writes the backing image as PNG.
func (r *Raster) Encode(w io.Writer) error {
	if r.err != nil {
		return r.err
	}
	if err := png.Encode(w, r.img); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return nil
}

// Close releases cached font faces. The image stays valid.
func (r *Raster) Close() error {
	r.faces.close()
	return nil
}

func (r *Raster) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *Raster) device(x, y float64) (float64, float64) {
	return x * r.sx, y * r.sy
}

func (r *Raster) source(p Paint) (image.Image, error) {
	switch p := p.(type) {
	case Color:
		c, err := ParseColor(p)
		if err != nil {
			return nil, err
		}
		return image.NewUniform(c), nil
	case LinearGradient:
		g := &gradient{}
		g.x0, g.y0 = r.device(p.X0, p.Y0)
		g.x1, g.y1 = r.device(p.X1, p.Y1)
		for _, s := range p.Stops {
			c, err := ParseColor(s.Color)
			if err != nil {
				return nil, err
			}
			g.stops = append(g.stops, gradientStop{offset: clamp(s.Offset, 0, 1), color: c})
		}
		if len(g.stops) == 0 {
			return image.Transparent, nil
		}
		return g, nil
	case nil:
		return nil, fmt.Errorf("surface: nil paint")
	default:
		return nil, fmt.Errorf("surface: unsupported paint %T", p)
	}
}

// fillPolygon rasterizes pts in device space. The mask covers only the
// polygon's bounding box clipped to the image; src is sampled in device
// coordinates.
func (r *Raster) fillPolygon(pts []Point, src image.Image) {
	if len(pts) == 0 {
		return
	}
	minX, minY, maxX, maxY := pts[0].X, pts[0].Y, pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	if math.IsNaN(minX+minY+maxX+maxY) || math.IsInf(minX+minY+maxX+maxY, 0) {
		return
	}
	b := r.img.Bounds()
	x0, x1 := float64(b.Min.X), float64(b.Max.X)
	y0, y1 := float64(b.Min.Y), float64(b.Max.Y)
	box := image.Rect(
		int(math.Floor(clamp(minX, x0, x1))),
		int(math.Floor(clamp(minY, y0, y1))),
		int(math.Ceil(clamp(maxX, x0, x1))),
		int(math.Ceil(clamp(maxY, y0, y1))),
	).Intersect(b)
	if box.Empty() {
		return
	}
	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	z := vector.NewRasterizer(box.Dx(), box.Dy())
	z.DrawOp = draw.Over
	z.MoveTo(float32(pts[0].X-ox), float32(pts[0].Y-oy))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X-ox), float32(p.Y-oy))
	}
	z.ClosePath()
	z.Draw(r.img, box, src, box.Min)
}

type gradientStop struct {
	offset float64
	color  color.NRGBA
}

// gradient is an unbounded image whose color varies along one axis.
type gradient struct {
	x0, y0, x1, y1 float64
	stops          []gradientStop
}

func (g *gradient) ColorModel() color.Model { return color.NRGBAModel }

func (g *gradient) Bounds() image.Rectangle {
	return image.Rect(-1<<20, -1<<20, 1<<20, 1<<20)
}

func (g *gradient) At(x, y int) color.Color {
	dx, dy := g.x1-g.x0, g.y1-g.y0
	den := dx*dx + dy*dy
	t := 0.0
	if den > 0 {
		t = ((float64(x)+0.5-g.x0)*dx + (float64(y)+0.5-g.y0)*dy) / den
	}
	t = clamp(t, 0, 1)
	if t <= g.stops[0].offset {
		return g.stops[0].color
	}
	for i := 1; i < len(g.stops); i++ {
		a, b := g.stops[i-1], g.stops[i]
		if t <= b.offset {
			span := b.offset - a.offset
			if span <= 0 {
				return b.color
			}
			return blend(a.color, b.color, (t-a.offset)/span)
		}
	}
	return g.stops[len(g.stops)-1].color
}

func fixedToFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

func floatToFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(math.Round(v * 64)) }
