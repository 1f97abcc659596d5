package canvastable_test

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvillar/canvastable"
	"github.com/lvillar/canvastable/surface"
)

func TestRasterExports(t *testing.T) {
	ctx := context.Background()
	s := surface.NewRaster(320, 120)
	defer s.Close()

	dpr := 1.5
	cfg := expensesConfig()
	cfg.Options = &canvastable.Options{DevicePixelRatio: dpr}
	ct := generate(t, s, cfg)

	data, err := ct.RenderToBuffer(ctx)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 480, img.Bounds().Dx())
	assert.Equal(t, 180, img.Bounds().Dy())

	path := filepath.Join(t.TempDir(), "table.png")
	require.NoError(t, ct.RenderToFile(ctx, path))
	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, written)

	var buf bytes.Buffer
	n, err := ct.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), n)
	assert.Equal(t, data, buf.Bytes())

	_, err = ct.RenderToBlob(ctx)
	assert.ErrorIs(t, err, canvastable.ErrNotAvailable)
}

func TestRenderToFileError(t *testing.T) {
	ct := generate(t, surface.NewRaster(100, 100), expensesConfig())
	err := ct.RenderToFile(context.Background(), filepath.Join(t.TempDir(), "missing", "table.png"))
	var te *canvastable.TableError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "RenderToFile", te.Op)
}
