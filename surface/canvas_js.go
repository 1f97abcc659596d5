//go:build js && wasm

package surface

import (
	"context"
	"fmt"
	"image"
	"strconv"
	"syscall/js"

	"golang.org/x/image/draw"
)

// HTMLCanvas draws into a browser <canvas> element through its 2D context.
type HTMLCanvas struct {
	canvas        js.Value
	ctx           js.Value
	width, height float64
	err           error
}

// NewHTMLCanvas wraps a canvas element. The element's current width and
// height become the logical size.
func NewHTMLCanvas(canvas js.Value) *HTMLCanvas {
	return &HTMLCanvas{
		canvas: canvas,
		ctx:    canvas.Call("getContext", "2d"),
		width:  canvas.Get("width").Float(),
		height: canvas.Get("height").Float(),
	}
}

func (c *HTMLCanvas) Width() float64  { return c.width }
func (c *HTMLCanvas) Height() float64 { return c.height }
func (c *HTMLCanvas) Kind() Kind      { return KindBrowser }
func (c *HTMLCanvas) Err() error      { return c.err }

func (c *HTMLCanvas) SetDevicePixelRatio(ratio float64) {
	c.guard(func() {
		c.canvas.Set("width", c.width*ratio)
		c.canvas.Set("height", c.height*ratio)
		style := c.canvas.Get("style")
		style.Set("width", strconv.FormatFloat(c.width, 'f', -1, 64)+"px")
		style.Set("height", strconv.FormatFloat(c.height, 'f', -1, 64)+"px")
		c.ctx.Set("textBaseline", "top")
	})
}

func (c *HTMLCanvas) Scale(sx, sy float64) {
	c.guard(func() { c.ctx.Call("scale", sx, sy) })
}

func (c *HTMLCanvas) MeasureText(f Font, text string) float64 {
	var w float64
	c.guard(func() {
		c.ctx.Set("font", cssFont(f))
		w = c.ctx.Call("measureText", text).Get("width").Float()
	})
	return w
}

func (c *HTMLCanvas) FillRect(r Rect, p Paint) {
	c.guard(func() {
		switch p := p.(type) {
		case Color:
			c.ctx.Set("fillStyle", string(p))
		case LinearGradient:
			g := c.ctx.Call("createLinearGradient", p.X0, p.Y0, p.X1, p.Y1)
			for _, s := range p.Stops {
				col := string(s.Color)
				if s.Color == "transparent" {
					col = "rgba(255,255,255,0)"
				}
				g.Call("addColorStop", s.Offset, col)
			}
			c.ctx.Set("fillStyle", g)
		default:
			panic(fmt.Sprintf("surface: unsupported paint %T", p))
		}
		c.ctx.Call("fillRect", r.X, r.Y, r.W, r.H)
	})
}

func (c *HTMLCanvas) FillText(text string, x, y float64, style TextStyle) {
	c.guard(func() {
		c.ctx.Set("font", cssFont(style.Font))
		c.ctx.Set("fillStyle", string(style.Color))
		c.ctx.Set("textAlign", string(style.Align))
		c.ctx.Call("fillText", text, x, y)
	})
}

func (c *HTMLCanvas) StrokePath(points []Point, s Stroke) {
	if len(points) < 2 {
		return
	}
	c.guard(func() {
		c.ctx.Call("beginPath")
		c.ctx.Call("moveTo", points[0].X, points[0].Y)
		for _, p := range points[1:] {
			c.ctx.Call("lineTo", p.X, p.Y)
		}
		c.ctx.Set("strokeStyle", string(s.Color))
		c.ctx.Set("lineWidth", s.Width)
		c.ctx.Call("stroke")
	})
}

func (c *HTMLCanvas) StrokeRect(r Rect, s Stroke) {
	c.guard(func() {
		c.ctx.Set("strokeStyle", string(s.Color))
		c.ctx.Set("lineWidth", s.Width)
		c.ctx.Call("strokeRect", r.X, r.Y, r.W, r.H)
	})
}

// DrawImage copies img into an offscreen canvas and draws it scaled to r
// without smoothing. The copy is synchronous, so the image is on the canvas
// when DrawImage returns.
func (c *HTMLCanvas) DrawImage(img image.Image, r Rect) {
	if img == nil || img.Bounds().Empty() {
		return
	}
	b := img.Bounds()
	pix := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(pix, pix.Bounds(), img, b.Min, draw.Src)

	c.guard(func() {
		off := c.canvas.Get("ownerDocument").Call("createElement", "canvas")
		off.Set("width", b.Dx())
		off.Set("height", b.Dy())
		offCtx := off.Call("getContext", "2d")
		data := offCtx.Call("createImageData", b.Dx(), b.Dy())
		if n := js.CopyBytesToJS(data.Get("data"), pix.Pix); n != len(pix.Pix) {
			panic(fmt.Sprintf("copied %d of %d image bytes", n, len(pix.Pix)))
		}
		offCtx.Call("putImageData", data, 0, 0)

		c.ctx.Set("imageSmoothingEnabled", false)
		c.ctx.Call("drawImage", off, r.X, r.Y, r.W, r.H)
	})
}

// Blob exports the canvas with HTMLCanvasElement.toBlob. If ctx is done
// first, the pending callback stays registered until the browser calls it.
func (c *HTMLCanvas) Blob(ctx context.Context, mimeType string) (Blob, error) {
	if c.err != nil {
		return Blob{}, c.err
	}
	done := make(chan js.Value, 1)
	var cb js.Func
	cb = js.FuncOf(func(_ js.Value, args []js.Value) any {
		cb.Release()
		blob := js.Null()
		if len(args) > 0 {
			blob = args[0]
		}
		done <- blob
		return nil
	})
	if err := call(func() { c.canvas.Call("toBlob", cb, mimeType) }); err != nil {
		cb.Release()
		return Blob{}, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	select {
	case <-ctx.Done():
		return Blob{}, ctx.Err()
	case v := <-done:
		if v.IsNull() || v.IsUndefined() {
			return Blob{}, fmt.Errorf("%w: canvas produced no blob", ErrEncode)
		}
		return Blob{MIMEType: v.Get("type").String(), Size: v.Get("size").Int(), Handle: v}, nil
	}
}

func (c *HTMLCanvas) guard(fn func()) {
	if c.err != nil {
		return
	}
	if err := call(fn); err != nil {
		c.fail(fmt.Errorf("surface: canvas: %w", err))
	}
}

// call runs fn and turns a panic, such as a thrown JavaScript exception,
// into an error.
func call(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	fn()
	return nil
}

func (c *HTMLCanvas) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

func cssFont(f Font) string {
	weight := f.Weight
	if weight == "" {
		weight = "normal"
	}
	return weight + " " + strconv.FormatFloat(f.Size, 'f', -1, 64) + "px " + f.Family
}
