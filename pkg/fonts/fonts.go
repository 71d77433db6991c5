// Package fonts provides the label typeface for every visual output.
//
// Labels are set in Go Regular; the PDF fallback caption uses Go Bold.
// Both ship with golang.org/x/image, so neither PDF nor PNG output needs
// system fonts and the two draw the same label glyphs.
package fonts

import (
	"sync"
	"unicode"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Family is the display name of the label typeface.
const Family = "Go Regular"

var (
	regularOnce sync.Once
	regularFont *truetype.Font
	regularErr  error
)

// Regular returns the parsed Go Regular font. The result is cached after
// first computation.
func Regular() (*truetype.Font, error) {
	regularOnce.Do(func() {
		regularFont, regularErr = truetype.Parse(goregular.TTF)
	})
	return regularFont, regularErr
}

// RegularTTF returns the raw Go Regular TrueType data for embedding.
func RegularTTF() []byte { return goregular.TTF }

// BoldTTF returns the raw Go Bold TrueType data for embedding.
func BoldTTF() []byte { return gobold.TTF }

// Missing returns the distinct runes of s, in order of first appearance,
// that the label typeface has no glyph for. Whitespace is ignored.
func Missing(s string) ([]rune, error) {
	ttf, err := Regular()
	if err != nil {
		return nil, err
	}
	var out []rune
	seen := map[rune]bool{}
	for _, r := range s {
		if unicode.IsSpace(r) || seen[r] {
			continue
		}
		seen[r] = true
		if ttf.Index(r) == 0 {
			out = append(out, r)
		}
	}
	return out, nil
}

// Faces caches font faces by size for one rendering pass. It is not safe
// for concurrent use.
type Faces struct {
	ttf   *truetype.Font
	scale float64
	faces map[float64]font.Face
}

// NewFaces returns a face cache for ttf where sizes given to Face are
// multiplied by scale to get the pixel size.
func NewFaces(ttf *truetype.Font, scale float64) *Faces {
	return &Faces{ttf: ttf, scale: scale, faces: map[float64]font.Face{}}
}

// Face returns the face for size, creating it on first use.
func (f *Faces) Face(size float64) font.Face {
	if face, ok := f.faces[size]; ok {
		return face
	}
	face := truetype.NewFace(f.ttf, &truetype.Options{Size: size * f.scale})
	f.faces[size] = face
	return face
}

// Close releases all cached faces.
func (f *Faces) Close() error {
	for size, face := range f.faces {
		_ = face.Close()
		delete(f.faces, size)
	}
	return nil
}
