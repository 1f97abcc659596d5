package canvastable

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/lvillar/canvastable/surface"
)

// PNGMimeType is the MIME type of exported images.
const PNGMimeType = "image/png"

// RenderToBuffer returns the rendered table as a PNG image. It is only
// available on native surfaces.
func (t *CanvasTable) RenderToBuffer(ctx context.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.encode(ctx, "RenderToBuffer", &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderToFile writes the rendered table as a PNG file.
func (t *CanvasTable) RenderToFile(ctx context.Context, path string) error {
	var buf bytes.Buffer
	if err := t.encode(ctx, "RenderToFile", &buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return newTableError("RenderToFile", err)
	}
	return nil
}

// WriteTo writes the rendered table to w as a PNG image.
func (t *CanvasTable) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := t.encode(context.Background(), "WriteTo", cw)
	return cw.n, err
}

// RenderToBlob returns a browser Blob holding the rendered table. It is only
// available on browser surfaces.
func (t *CanvasTable) RenderToBlob(ctx context.Context) (surface.Blob, error) {
	const op = "RenderToBlob"
	if err := t.checkGenerated(op); err != nil {
		return surface.Blob{}, err
	}
	enc, ok := t.s.(surface.BlobEncoder)
	if !ok || t.s.Kind() != surface.KindBrowser {
		return surface.Blob{}, newTableError(op, fmt.Errorf("%w: %s surface", ErrNotAvailable, t.s.Kind()))
	}
	blob, err := enc.Blob(ctx, PNGMimeType)
	if err != nil {
		return surface.Blob{}, newTableError(op, err)
	}
	return blob, nil
}

func (t *CanvasTable) encode(ctx context.Context, op string, w io.Writer) error {
	if err := t.checkGenerated(op); err != nil {
		return err
	}
	enc, ok := t.s.(surface.Encoder)
	if !ok || t.s.Kind() != surface.KindNative {
		return newTableError(op, fmt.Errorf("%w: %s surface", ErrNotAvailable, t.s.Kind()))
	}
	if err := ctx.Err(); err != nil {
		return newTableError(op, err)
	}
	if err := enc.Encode(w); err != nil {
		return newTableError(op, err)
	}
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
