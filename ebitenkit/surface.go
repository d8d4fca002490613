package ebitenkit

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/phanxgames/marquee"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Texture is a marquee.Texture backed by an *ebiten.Image.
type Texture struct {
	img *ebiten.Image
}

// NewTexture wraps img. The image is shared, not copied.
func NewTexture(img *ebiten.Image) *Texture {
	return &Texture{img: img}
}

// Size returns the image size in pixels.
func (t *Texture) Size() (w, h int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

// Ebiten returns the wrapped image.
func (t *Texture) Ebiten() *ebiten.Image { return t.img }

// Surface draws marquee images, rectangles and text into an *ebiten.Image.
// The zero value must be given a destination with SetTarget before use.
type Surface struct {
	dst *ebiten.Image
	// size is reported by Bounds until a destination is set.
	size marquee.Rect

	imgOp  ebiten.DrawImageOptions
	textOp text.DrawOptions
}

// NewSurface creates a surface drawing into dst.
func NewSurface(dst *ebiten.Image) *Surface {
	return &Surface{dst: dst}
}

// NewScreenSurface creates a surface for a w x h screen that is handed over
// later with SetTarget. Bounds reports the screen size in the meantime, so
// menus can be laid out before the first frame.
func NewScreenSurface(w, h int) *Surface {
	return &Surface{size: marquee.Rect{Width: float64(w), Height: float64(h)}}
}

// SetTarget redirects drawing to dst, typically the screen handed to
// ebiten.Game.Draw each frame.
func (s *Surface) SetTarget(dst *ebiten.Image) { s.dst = dst }

// Target returns the current destination image.
func (s *Surface) Target() *ebiten.Image { return s.dst }

// Bounds returns the destination bounds.
func (s *Surface) Bounds() marquee.Rect {
	if s.dst == nil {
		return s.size
	}
	b := s.dst.Bounds()
	return marquee.Rect{X: float64(b.Min.X), Y: float64(b.Min.Y), Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// DrawImage draws the region img names into dst.
func (s *Surface) DrawImage(img marquee.Image, dst marquee.Rect, opts marquee.DrawOptions) error {
	if s.dst == nil {
		return errNoTarget
	}
	tex, ok := img.Texture.(*Texture)
	if !ok {
		return fmt.Errorf("ebitenkit: texture %T was not created by ebitenkit", img.Texture)
	}
	if img.Src.Width <= 0 || img.Src.Height <= 0 {
		return nil
	}
	sub := tex.img.SubImage(srcRect(img.Src)).(*ebiten.Image)

	op := &s.imgOp
	op.GeoM = drawGeoM(img.Src, dst, opts)
	op.ColorScale.Reset()
	r, g, b, a := premultiply(opts.Tint, opts.Alpha)
	op.ColorScale.Scale(r, g, b, a)
	s.dst.DrawImage(sub, op)
	return nil
}

// FillRect fills r with c.
func (s *Surface) FillRect(r marquee.Rect, c marquee.Color) error {
	if s.dst == nil {
		return errNoTarget
	}
	vector.DrawFilledRect(s.dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), nrgba(c), false)
	return nil
}

// DrawText draws str with its top-left corner at pos. f must be a *Font.
func (s *Surface) DrawText(f marquee.Font, str string, pos marquee.Vec2, scale float64, c marquee.Color) error {
	if s.dst == nil {
		return errNoTarget
	}
	font, ok := f.(*Font)
	if !ok {
		return fmt.Errorf("ebitenkit: font %T was not created by ebitenkit", f)
	}
	if scale <= 0 {
		scale = 1
	}
	op := &s.textOp
	op.GeoM.Reset()
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(pos.X, pos.Y)
	op.ColorScale.Reset()
	op.ColorScale.ScaleWithColor(nrgba(c))
	op.LineSpacing = font.lh
	text.Draw(s.dst, str, font.face, op)
	return nil
}

// NewTarget allocates an offscreen w x h target.
func (s *Surface) NewTarget(w, h int) (marquee.Target, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("ebitenkit: invalid target size %dx%d", w, h)
	}
	img := ebiten.NewImage(w, h)
	return &Target{Surface: Surface{dst: img}, tex: NewTexture(img)}, nil
}

// Target is an offscreen surface that can itself be drawn as an image.
type Target struct {
	Surface
	tex *Texture
}

// Image returns the whole target as an image.
func (t *Target) Image() marquee.Image {
	w, h := t.tex.Size()
	return marquee.Image{Texture: t.tex, Src: marquee.Rect{Width: float64(w), Height: float64(h)}}
}

// Clear clears the target to transparent.
func (t *Target) Clear() error {
	t.dst.Clear()
	return nil
}

var errNoTarget = errors.New("ebitenkit: surface has no target image")

func srcRect(r marquee.Rect) image.Rectangle {
	x, y := int(math.Round(r.X)), int(math.Round(r.Y))
	return image.Rect(x, y, x+int(math.Round(r.Width)), y+int(math.Round(r.Height)))
}

// drawGeoM maps the source region onto dst: flip in source space, scale to
// the destination size, rotate clockwise around the origin, then translate.
func drawGeoM(src, dst marquee.Rect, opts marquee.DrawOptions) ebiten.GeoM {
	var m ebiten.GeoM
	if opts.Flip&marquee.FlipX != 0 {
		m.Scale(-1, 1)
		m.Translate(src.Width, 0)
	}
	if opts.Flip&marquee.FlipY != 0 {
		m.Scale(1, -1)
		m.Translate(0, src.Height)
	}
	m.Scale(dst.Width/src.Width, dst.Height/src.Height)
	if opts.Angle != 0 {
		m.Translate(-opts.Origin.X, -opts.Origin.Y)
		m.Rotate(opts.Angle * math.Pi / 180)
		m.Translate(opts.Origin.X, opts.Origin.Y)
	}
	m.Translate(dst.X, dst.Y)
	return m
}

// premultiply returns the color scale for a tint and an alpha in [0, 255].
// An unset tint draws untinted.
func premultiply(tint marquee.Color, alpha float64) (r, g, b, a float32) {
	if tint.IsZero() {
		tint = marquee.ColorWhite
	}
	av := tint.A * math.Max(0, math.Min(alpha, 255)) / 255
	return float32(tint.R * av), float32(tint.G * av), float32(tint.B * av), float32(av)
}

func nrgba(c marquee.Color) color.NRGBA {
	r, g, b, a := c.RGBA8()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}
