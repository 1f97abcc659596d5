//go:build js && wasm

package surface_test

import (
	"context"
	"image"
	"image/color"
	"syscall/js"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvillar/canvastable/surface"
)

// fakeCanvas is a canvas element whose 2D context records calls by name.
// createElement hands out the same element, so offscreen drawing lands in
// the same log.
type fakeCanvas struct {
	el      js.Value
	calls   []string
	pixels  []byte
	pending js.Value
}

func newFakeCanvas(t *testing.T) *fakeCanvas {
	t.Helper()
	object := js.Global().Get("Object")
	f := &fakeCanvas{el: object.New()}
	var funcs []js.Func
	fn := func(impl func(args []js.Value) any) js.Func {
		jf := js.FuncOf(func(_ js.Value, args []js.Value) any { return impl(args) })
		funcs = append(funcs, jf)
		return jf
	}
	t.Cleanup(func() {
		for _, jf := range funcs {
			jf.Release()
		}
	})

	ctx := object.New()
	for _, name := range []string{"scale", "fillRect", "fillText", "drawImage"} {
		ctx.Set(name, fn(func([]js.Value) any {
			f.calls = append(f.calls, name)
			return nil
		}))
	}
	ctx.Set("createImageData", fn(func(args []js.Value) any {
		data := object.New()
		data.Set("data", js.Global().Get("Uint8ClampedArray").New(args[0].Int()*args[1].Int()*4))
		return data
	}))
	ctx.Set("putImageData", fn(func(args []js.Value) any {
		f.calls = append(f.calls, "putImageData")
		src := args[0].Get("data")
		f.pixels = make([]byte, src.Length())
		js.CopyBytesToGo(f.pixels, src)
		return nil
	}))

	doc := object.New()
	doc.Set("createElement", fn(func([]js.Value) any { return f.el }))
	f.el.Set("ownerDocument", doc)
	f.el.Set("width", 100)
	f.el.Set("height", 50)
	f.el.Set("style", object.New())
	f.el.Set("getContext", fn(func([]js.Value) any { return ctx }))
	f.el.Set("toBlob", fn(func(args []js.Value) any {
		f.pending = args[0]
		return nil
	}))
	return f
}

func TestHTMLCanvasDrawImageIsSynchronous(t *testing.T) {
	f := newFakeCanvas(t)
	c := surface.NewHTMLCanvas(f.el)

	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{B: 255, A: 128})
	c.DrawImage(img, surface.Rect{X: 1, Y: 2, W: 4, H: 2})
	require.NoError(t, c.Err())

	assert.Equal(t, []string{"putImageData", "drawImage"}, f.calls)
	assert.Equal(t, []byte{255, 0, 0, 255, 0, 0, 255, 128}, f.pixels)
}

func TestHTMLCanvasBlob(t *testing.T) {
	f := newFakeCanvas(t)
	c := surface.NewHTMLCanvas(f.el)

	blob := js.Global().Get("Object").New()
	blob.Set("type", "image/png")
	blob.Set("size", 42)
	resolve := js.FuncOf(func(_ js.Value, args []js.Value) any {
		args[0].Invoke(blob)
		return nil
	})
	defer resolve.Release()
	f.el.Set("toBlob", resolve)

	got, err := c.Blob(context.Background(), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", got.MIMEType)
	assert.Equal(t, 42, got.Size)
}

func TestHTMLCanvasBlobCanceledKeepsCallback(t *testing.T) {
	f := newFakeCanvas(t)
	c := surface.NewHTMLCanvas(f.el)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Blob(ctx, "image/png")
	require.ErrorIs(t, err, context.Canceled)

	require.True(t, f.pending.Truthy(), "toBlob was called")
	assert.NotPanics(t, func() { f.pending.Invoke(js.Null()) }, "a late callback is still registered")
}
