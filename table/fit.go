package table

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/lvillar/canvastable/surface"
)

// Truncation markers.
const (
	Ellipsis = "…"
	Period   = "."
)

// EllipsisSample is measured to find the narrowest useful column.
const EllipsisSample = Ellipsis + Ellipsis

// Fit returns text unchanged if it measures at most maxWidth in font f.
// Otherwise it returns Truncate(m, f, text, maxWidth, minChars).
func Fit(m surface.Measurer, f surface.Font, text string, maxWidth float64, minChars int) string {
	if m.MeasureText(f, text) <= maxWidth {
		return text
	}
	return Truncate(m, f, text, maxWidth, minChars)
}

// Truncate removes trailing grapheme clusters from text until the remainder
// plus a marker fits maxWidth. The marker is Ellipsis when more than
// minChars clusters remain and Period otherwise, so very narrow columns do
// not end up with a lone character and an ellipsis.
//
// The result is never empty. When maxWidth is narrower than the bare
// marker, Truncate returns Period even though it is wider than maxWidth:
// a visible mark wins over the width bound.
func Truncate(m surface.Measurer, f surface.Font, text string, maxWidth float64, minChars int) string {
	ends := clusterEnds(text)
	for n := len(ends); n > 0; n-- {
		candidate := text[:ends[n-1]] + marker(n, minChars)
		if m.MeasureText(f, candidate) <= maxWidth {
			return candidate
		}
	}
	return marker(0, minChars)
}

func marker(clusters, minChars int) string {
	if clusters > minChars {
		return Ellipsis
	}
	return Period
}

// clusterEnds returns the byte offset just past each grapheme cluster.
func clusterEnds(text string) []int {
	var ends []int
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		_, to := g.Positions()
		ends = append(ends, to)
	}
	return ends
}

// Wrap breaks text into lines no wider than maxWidth, splitting only between
// words. Explicit newlines always start a new line. A single word wider than
// maxWidth is kept whole on its own line.
func Wrap(m surface.Measurer, f surface.Font, text string, maxWidth float64) []string {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		current := words[0]
		for _, word := range words[1:] {
			candidate := current + " " + word
			if m.MeasureText(f, candidate) > maxWidth {
				lines = append(lines, current)
				current = word
				continue
			}
			current = candidate
		}
		lines = append(lines, current)
	}
	return lines
}
