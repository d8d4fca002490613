package sdlkit

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

// Font is a marquee.Font backed by an SDL_ttf font. ttf must be initialized,
// which Open does.
type Font struct {
	f *ttf.Font
	// data keeps memory-backed font bytes alive for SDL.
	data []byte
}

// OpenFont opens a TrueType font file at the given point size.
func OpenFont(path string, size int) (*Font, error) {
	f, err := ttf.OpenFont(path, size)
	if err != nil {
		return nil, fmt.Errorf("sdlkit: open font %s: %w", path, err)
	}
	return &Font{f: f}, nil
}

// OpenFontData opens an in-memory TrueType font, such as an embedded one.
func OpenFontData(data []byte, size int) (*Font, error) {
	rw, err := sdl.RWFromMem(data)
	if err != nil {
		return nil, fmt.Errorf("sdlkit: font data: %w", err)
	}
	f, err := ttf.OpenFontRW(rw, 1, size)
	if err != nil {
		return nil, fmt.Errorf("sdlkit: open font data: %w", err)
	}
	return &Font{f: f, data: data}, nil
}

// MeasureString returns the rendered size of s.
func (f *Font) MeasureString(s string) (width, height float64) {
	if s == "" {
		return 0, float64(f.f.Height())
	}
	w, h, err := f.f.SizeUTF8(s)
	if err != nil {
		return 0, float64(f.f.Height())
	}
	return float64(w), float64(h)
}

// LineHeight returns the recommended distance between lines.
func (f *Font) LineHeight() float64 { return float64(f.f.LineSkip()) }

// TTF returns the wrapped font.
func (f *Font) TTF() *ttf.Font { return f.f }

// Close releases the font.
func (f *Font) Close() {
	if f.f != nil {
		f.f.Close()
		f.f = nil
	}
}
