package marquee

import (
	"errors"
	"math"
	"time"
	"unicode/utf8"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

var errDraw = errors.New("draw failed")

type fakeTexture struct {
	w, h int
}

func (t *fakeTexture) Size() (int, int) { return t.w, t.h }

// fixedFont measures every rune as width pixels wide.
type fixedFont struct {
	width, height float64
}

func (f fixedFont) MeasureString(s string) (float64, float64) {
	return float64(utf8.RuneCountInString(s)) * f.width, f.height
}

func (f fixedFont) LineHeight() float64 { return f.height }

type drawCall struct {
	kind  string
	img   Image
	dst   Rect
	opts  DrawOptions
	color Color
	text  string
	pos   Vec2
}

// recordSurface records every draw call. When failOn names a call kind
// ("image", "fill" or "text") that call returns errDraw.
type recordSurface struct {
	bounds    Rect
	calls     []drawCall
	failOn    string
	presented int
}

func newRecordSurface(w, h float64) *recordSurface {
	return &recordSurface{bounds: Rect{Width: w, Height: h}}
}

func (s *recordSurface) Bounds() Rect { return s.bounds }

func (s *recordSurface) DrawImage(img Image, dst Rect, opts DrawOptions) error {
	if s.failOn == "image" {
		return errDraw
	}
	s.calls = append(s.calls, drawCall{kind: "image", img: img, dst: dst, opts: opts})
	return nil
}

func (s *recordSurface) FillRect(r Rect, c Color) error {
	if s.failOn == "fill" {
		return errDraw
	}
	s.calls = append(s.calls, drawCall{kind: "fill", dst: r, color: c})
	return nil
}

func (s *recordSurface) DrawText(_ Font, str string, pos Vec2, _ float64, c Color) error {
	if s.failOn == "text" {
		return errDraw
	}
	s.calls = append(s.calls, drawCall{kind: "text", text: str, pos: pos, color: c})
	return nil
}

func (s *recordSurface) Present() error {
	s.presented++
	return nil
}

func (s *recordSurface) texts() []string {
	var out []string
	for _, c := range s.calls {
		if c.kind == "text" {
			out = append(out, c.text)
		}
	}
	return out
}

func (s *recordSurface) count(kind string) int {
	n := 0
	for _, c := range s.calls {
		if c.kind == kind {
			n++
		}
	}
	return n
}

func (s *recordSurface) reset() { s.calls = nil }

// bufferedSurface is a recordSurface that can allocate offscreen targets.
type bufferedSurface struct {
	*recordSurface
	targets []*recordTarget
}

type recordTarget struct {
	*recordSurface
	tex     *fakeTexture
	cleared int
}

func (t *recordTarget) Image() Image {
	return Image{Texture: t.tex, Src: t.bounds}
}

func (t *recordTarget) Clear() error {
	t.cleared++
	t.reset()
	return nil
}

func (s *bufferedSurface) NewTarget(w, h int) (Target, error) {
	t := &recordTarget{recordSurface: newRecordSurface(float64(w), float64(h)), tex: &fakeTexture{w: w, h: h}}
	s.targets = append(s.targets, t)
	return t, nil
}

type recordAudio struct {
	cues []Cue
}

func (a *recordAudio) Play(c Cue) { a.cues = append(a.cues, c) }

func (a *recordAudio) count(c Cue) int {
	n := 0
	for _, x := range a.cues {
		if x == c {
			n++
		}
	}
	return n
}

func (a *recordAudio) reset() { a.cues = nil }

// testImages returns an image set of n 10x10 images cut from one texture.
func testImages(n int) *ImageSet {
	set, err := NewImageSet(FromTexture(&fakeTexture{w: 10 * n, h: 10}, Grid{Width: 10, Height: 10}), nil)
	if err != nil {
		panic(err)
	}
	return set
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }
