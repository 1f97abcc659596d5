package surface_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/lvillar/canvastable/surface"
)

func TestIsBold(t *testing.T) {
	for weight, want := range map[string]bool{
		"bold": true, "Bolder": true, "700": true, "600": true,
		"": false, "normal": false, "400": false, "lighter": false, "heavy": false,
	} {
		assert.Equal(t, want, surface.IsBold(weight), "weight %q", weight)
	}
}

func TestFontRegistry(t *testing.T) {
	reg := surface.NewFontRegistry()
	assert.Equal(t, []string{"go", "monospace", "sans-serif"}, reg.Families())

	err := reg.Register("Broken", "normal", []byte("not a font"))
	require.ErrorIs(t, err, surface.ErrInvalidFont)

	require.NoError(t, reg.Register("Code", "normal", gomono.TTF))
	assert.Contains(t, reg.Families(), "code")

	r := surface.NewRaster(10, 10, surface.WithFontRegistry(reg))
	mono := r.MeasureText(surface.Font{Family: "'Code', sans-serif", Size: 10}, "iiii")
	wide := r.MeasureText(surface.Font{Family: "Code", Size: 10}, "mmmm")
	require.NoError(t, r.Err())
	assert.Equal(t, mono, wide, "monospace family resolves through the font stack")
}

func TestUnknownFamilyFallsBack(t *testing.T) {
	r := surface.NewRaster(10, 10)
	known := r.MeasureText(surface.Font{Family: "sans-serif", Size: 12}, "Net")
	unknown := r.MeasureText(surface.Font{Family: "Helvetica Neue", Size: 12}, "Net")
	require.NoError(t, r.Err())
	assert.Equal(t, known, unknown)
}
