package ebitenkit

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

// Font is a marquee.Font backed by a text/v2 face.
type Font struct {
	face text.Face
	lh   float64
}

// NewFont wraps a text/v2 face.
func NewFont(face text.Face) *Font {
	m := face.Metrics()
	return &Font{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}
}

// LoadFont parses TrueType or OpenType data at the given pixel size.
func LoadFont(data []byte, size float64) (*Font, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("ebitenkit: parse font: %w", err)
	}
	return NewFont(&text.GoTextFace{Source: src, Size: size}), nil
}

// DefaultFont returns Go Regular at the given size.
func DefaultFont(size float64) *Font {
	f, err := LoadFont(goregular.TTF, size)
	if err != nil {
		panic(err)
	}
	return f
}

// BitmapFont returns the fixed 7x13 basicfont face.
func BitmapFont() *Font {
	return NewFont(text.NewGoXFace(basicfont.Face7x13))
}

// MeasureString returns the size of s laid out with the font's line height.
func (f *Font) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the distance between baselines.
func (f *Font) LineHeight() float64 { return f.lh }

// Face returns the underlying text/v2 face.
func (f *Font) Face() text.Face { return f.face }
