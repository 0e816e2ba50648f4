package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// BuiltinFontPrefix selects one of the Go fonts compiled into the binary
const BuiltinFontPrefix = "builtin:"

var builtinFonts = map[string][]byte{
	"goregular": goregular.TTF,
	"gobold":    gobold.TTF,
	"goitalic":  goitalic.TTF,
	"gomono":    gomono.TTF,
}

// FontLoader returns faces for a font at a pixel size. LoadFont faces are for
// drawing, MeasureFont faces are only good for metrics and advances.
type FontLoader interface {
	LoadFont(dir string, name string, size int) (font.Face, error)
	MeasureFont(dir string, name string, size int) (font.Face, error)
}

// Parsed fonts are shared across goroutines, faces are not
var fontCache sync.Map

func parseFont(dir string, name string) (*truetype.Font, error) {
	key := name
	if !strings.HasPrefix(name, BuiltinFontPrefix) {
		key = filepath.Join(dir, name)
	}
	if v, found := fontCache.Load(key); found {
		return v.(*truetype.Font), nil
	}

	var fontBytes []byte
	if strings.HasPrefix(name, BuiltinFontPrefix) {
		var found bool
		fontBytes, found = builtinFonts[strings.TrimPrefix(name, BuiltinFontPrefix)]
		if !found {
			return nil, fmt.Errorf("unknown builtin font %s", name)
		}
	} else {
		var err error
		fontBytes, err = os.ReadFile(key)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
	}
	f, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", name, err)
	}
	v, _ := fontCache.LoadOrStore(key, f)
	return v.(*truetype.Font), nil
}

// loadFont loads a font into memory and returns a face at size pixels.
// The face's glyph mask cache grows with size squared times glyphCacheEntries.
func loadFont(dir string, name string, size int, glyphCacheEntries int) (font.Face, error) {
	f, err := parseFont(dir, name)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:              float64(size),
		GlyphCacheEntries: glyphCacheEntries,
	}), nil
}

type faceKey struct {
	dir  string
	name string
	size int
}

// FontFaceCache keeps the faces of one worker. Not safe for concurrent use
// since font.Face is not.
type FontFaceCache struct {
	faces map[faceKey]font.Face
}

// NewFontFaceCache returns an empty cache
func NewFontFaceCache() *FontFaceCache {
	return &FontFaceCache{faces: make(map[faceKey]font.Face)}
}

// LoadFont returns a cached face or loads a new one
func (cache *FontFaceCache) LoadFont(dir string, name string, size int) (font.Face, error) {
	key := faceKey{dir, name, size}
	if fontFace, found := cache.faces[key]; found {
		return fontFace, nil
	}
	fontFace, err := loadFont(dir, name, size, 0)
	if err != nil {
		return nil, err
	}
	cache.faces[key] = fontFace
	return fontFace, nil
}

// MeasureFont returns an uncached face with a single glyph cache entry. A
// descent measures dozens of sizes and only the final one gets drawn.
func (cache *FontFaceCache) MeasureFont(dir string, name string, size int) (font.Face, error) {
	if fontFace, found := cache.faces[faceKey{dir, name, size}]; found {
		return fontFace, nil
	}
	return loadFont(dir, name, size, 1)
}

// Len returns the number of cached faces
func (cache *FontFaceCache) Len() int {
	return len(cache.faces)
}
