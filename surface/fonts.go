package surface

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// DefaultFamily is used when a requested family is not registered, the same
// way a browser falls back to its default sans-serif face.
const DefaultFamily = "sans-serif"

// FontRegistry maps family names to parsed OpenType fonts. Parsed fonts are
// immutable and shared; font.Face values are not, so each surface keeps its
// own face cache.
type FontRegistry struct {
	mu    sync.RWMutex
	fonts map[string][2]*opentype.Font // [regular, bold]
}

// NewFontRegistry returns a registry preloaded with the Go font family as
// "sans-serif" (also "go") and Go Mono as "monospace".
func NewFontRegistry() *FontRegistry {
	r := &FontRegistry{fonts: make(map[string][2]*opentype.Font)}
	must := func(family string, regular, bold []byte) {
		if err := r.Register(family, "normal", regular); err != nil {
			panic(err)
		}
		if err := r.Register(family, "bold", bold); err != nil {
			panic(err)
		}
	}
	must(DefaultFamily, goregular.TTF, gobold.TTF)
	must("go", goregular.TTF, gobold.TTF)
	must("monospace", gomono.TTF, gomonobold.TTF)
	return r
}

var defaultRegistry = NewFontRegistry()

// DefaultFonts returns the process-wide registry used by surfaces created
// without an explicit one.
func DefaultFonts() *FontRegistry { return defaultRegistry }

// RegisterFont adds a TrueType or OpenType font to the default registry.
func RegisterFont(family, weight string, data []byte) error {
	return defaultRegistry.Register(family, weight, data)
}

// Register parses data and makes it available under family for the given
// weight. Registering only one weight serves it for both.
func (r *FontRegistry) Register(family, weight string, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidFont, family, err)
	}
	key := normalizeFamily(family)
	r.mu.Lock()
	defer r.mu.Unlock()
	pair := r.fonts[key]
	if IsBold(weight) {
		pair[1] = f
		if pair[0] == nil {
			pair[0] = f
		}
	} else {
		pair[0] = f
		if pair[1] == nil {
			pair[1] = f
		}
	}
	r.fonts[key] = pair
	return nil
}

// Families lists the registered family names.
func (r *FontRegistry) Families() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.fonts))
	for name := range r.fonts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *FontRegistry) lookup(f Font) *opentype.Font {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx := 0
	if IsBold(f.Weight) {
		idx = 1
	}
	// CSS font stacks: the first registered family wins.
	for _, family := range strings.Split(f.Family, ",") {
		if pair, ok := r.fonts[normalizeFamily(family)]; ok {
			return pair[idx]
		}
	}
	return r.fonts[DefaultFamily][idx]
}

func normalizeFamily(family string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(family), `"'`))
}

// IsBold reports whether a CSS font weight selects the bold face.
func IsBold(weight string) bool {
	switch w := strings.ToLower(strings.TrimSpace(weight)); w {
	case "bold", "bolder":
		return true
	case "", "normal", "lighter":
		return false
	default:
		n, err := strconv.Atoi(w)
		return err == nil && n >= 600
	}
}

type faceKey struct {
	family string
	bold   bool
	size   int32 // 26.6 fixed point
}

// faceCache creates font.Face values on demand. It is owned by one surface.
type faceCache struct {
	registry *FontRegistry
	faces    map[faceKey]font.Face
}

func newFaceCache(r *FontRegistry) *faceCache {
	if r == nil {
		r = defaultRegistry
	}
	return &faceCache{registry: r, faces: make(map[faceKey]font.Face)}
}

// face returns the face for f at scale times its nominal size.
func (c *faceCache) face(f Font, scale float64) (font.Face, error) {
	size := f.Size * scale
	if size <= 0 || math.IsNaN(size) {
		size = 1
	}
	key := faceKey{family: normalizeFamily(f.Family), bold: IsBold(f.Weight), size: int32(math.Round(size * 64))}
	if face, ok := c.faces[key]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(c.registry.lookup(f), &opentype.FaceOptions{
		Size:    float64(key.size) / 64,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s %vpx: %v", ErrInvalidFont, f.Family, size, err)
	}
	c.faces[key] = face
	return face, nil
}

func (c *faceCache) close() {
	for k, face := range c.faces {
		face.Close()
		delete(c.faces, k)
	}
}
