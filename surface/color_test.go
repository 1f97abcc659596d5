package surface_test

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvillar/canvastable/surface"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   surface.Color
		want color.NRGBA
	}{
		{"#ccc", color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}},
		{"#666666", color.NRGBA{R: 0x66, G: 0x66, B: 0x66, A: 0xff}},
		{"#ff000080", color.NRGBA{R: 0xff, A: 0x80}},
		{"#f008", color.NRGBA{R: 0xff, A: 0x88}},
		{"purple", color.NRGBA{R: 0x80, B: 0x80, A: 0xff}},
		{" Red ", color.NRGBA{R: 0xff, A: 0xff}},
		{"transparent", color.NRGBA{}},
		{"rgb(1, 2, 3)", color.NRGBA{R: 1, G: 2, B: 3, A: 0xff}},
		{"rgba(255,255,255,0)", color.NRGBA{R: 0xff, G: 0xff, B: 0xff}},
		{"rgba(0,0,0,0.5)", color.NRGBA{A: 128}},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			got, err := surface.ParseColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseColorInvalid(t *testing.T) {
	for _, in := range []surface.Color{"", "#12", "rgb(1,2)", "rgb(a,b,c)", "chartreuse-ish"} {
		_, err := surface.ParseColor(in)
		assert.ErrorIs(t, err, surface.ErrInvalidColor, "input %q", in)
	}
}
