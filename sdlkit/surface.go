package sdlkit

import (
	"errors"
	"fmt"
	"math"

	"github.com/phanxgames/marquee"

	"github.com/veandco/go-sdl2/sdl"
)

// Texture is a marquee.Texture backed by an *sdl.Texture.
type Texture struct {
	tex  *sdl.Texture
	w, h int
}

// NewTexture wraps tex, querying its size.
func NewTexture(tex *sdl.Texture) (*Texture, error) {
	if tex == nil {
		return nil, errors.New("sdlkit: nil texture")
	}
	_, _, w, h, err := tex.Query()
	if err != nil {
		return nil, fmt.Errorf("sdlkit: query texture: %w", err)
	}
	tex.SetBlendMode(sdl.BLENDMODE_BLEND)
	return &Texture{tex: tex, w: int(w), h: int(h)}, nil
}

// Size returns the texture size in pixels.
func (t *Texture) Size() (w, h int) { return t.w, t.h }

// SDL returns the wrapped texture.
func (t *Texture) SDL() *sdl.Texture { return t.tex }

// Destroy releases the texture.
func (t *Texture) Destroy() {
	if t.tex != nil {
		t.tex.Destroy()
		t.tex = nil
	}
}

// Surface draws through an *sdl.Renderer, either to the window or to an
// offscreen target texture.
type Surface struct {
	r *sdl.Renderer
	// target is the render target texture, nil for the window.
	target *sdl.Texture
	size   marquee.Rect
}

// NewSurface creates a surface drawing to the renderer's window. size is the
// logical viewport.
func NewSurface(r *sdl.Renderer, w, h int) *Surface {
	return &Surface{r: r, size: marquee.Rect{Width: float64(w), Height: float64(h)}}
}

// Bounds returns the logical viewport.
func (s *Surface) Bounds() marquee.Rect { return s.size }

// bind selects the surface's render target and returns a function restoring
// the previous one.
func (s *Surface) bind() (func(), error) {
	if s.target == nil {
		return func() {}, nil
	}
	prev := s.r.GetRenderTarget()
	if err := s.r.SetRenderTarget(s.target); err != nil {
		return nil, err
	}
	return func() { s.r.SetRenderTarget(prev) }, nil
}

// DrawImage copies the region img names into dst. Tint and alpha are applied
// as color and alpha modulation for this copy only.
func (s *Surface) DrawImage(img marquee.Image, dst marquee.Rect, opts marquee.DrawOptions) error {
	tex, ok := img.Texture.(*Texture)
	if !ok {
		return fmt.Errorf("sdlkit: texture %T was not created by sdlkit", img.Texture)
	}
	if tex.tex == nil {
		return errors.New("sdlkit: texture was destroyed")
	}
	restore, err := s.bind()
	if err != nil {
		return err
	}
	defer restore()

	r, g, b, a := modulation(opts.Tint, opts.Alpha)
	tex.tex.SetColorMod(r, g, b)
	tex.tex.SetAlphaMod(a)
	defer func() {
		tex.tex.SetColorMod(255, 255, 255)
		tex.tex.SetAlphaMod(255)
	}()

	src := srcRect(img.Src)
	d := dstRect(dst)
	center := sdl.FPoint{X: float32(opts.Origin.X), Y: float32(opts.Origin.Y)}
	return s.r.CopyExF(tex.tex, &src, &d, opts.Angle, &center, rendererFlip(opts.Flip))
}

// FillRect fills r with c using alpha blending.
func (s *Surface) FillRect(r marquee.Rect, c marquee.Color) error {
	restore, err := s.bind()
	if err != nil {
		return err
	}
	defer restore()

	cr, cg, cb, ca := c.RGBA8()
	if err := s.r.SetDrawColor(cr, cg, cb, ca); err != nil {
		return err
	}
	d := dstRect(r)
	return s.r.FillRectF(&d)
}

// DrawText renders str with a *Font and copies it with its top-left corner
// at pos.
func (s *Surface) DrawText(f marquee.Font, str string, pos marquee.Vec2, scale float64, c marquee.Color) error {
	font, ok := f.(*Font)
	if !ok {
		return fmt.Errorf("sdlkit: font %T was not created by sdlkit", f)
	}
	if str == "" {
		return nil
	}
	if scale <= 0 {
		scale = 1
	}
	cr, cg, cb, ca := c.RGBA8()
	rendered, err := font.f.RenderUTF8Blended(str, sdl.Color{R: cr, G: cg, B: cb, A: ca})
	if err != nil {
		return fmt.Errorf("sdlkit: render text: %w", err)
	}
	defer rendered.Free()

	tex, err := s.r.CreateTextureFromSurface(rendered)
	if err != nil {
		return fmt.Errorf("sdlkit: text texture: %w", err)
	}
	defer tex.Destroy()

	restore, err := s.bind()
	if err != nil {
		return err
	}
	defer restore()
	d := sdl.FRect{
		X: float32(pos.X),
		Y: float32(pos.Y),
		W: float32(float64(rendered.W) * scale),
		H: float32(float64(rendered.H) * scale),
	}
	return s.r.CopyF(tex, nil, &d)
}

// Present flips the window. Offscreen targets present nothing.
func (s *Surface) Present() error {
	if s.target == nil {
		s.r.Present()
	}
	return nil
}

// Clear clears the surface to transparent black.
func (s *Surface) Clear() error {
	restore, err := s.bind()
	if err != nil {
		return err
	}
	defer restore()
	if err := s.r.SetDrawColor(0, 0, 0, 0); err != nil {
		return err
	}
	return s.r.Clear()
}

// NewTarget allocates an offscreen render target.
func (s *Surface) NewTarget(w, h int) (marquee.Target, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("sdlkit: invalid target size %dx%d", w, h)
	}
	raw, err := s.r.CreateTexture(sdl.PIXELFORMAT_RGBA8888, sdl.TEXTUREACCESS_TARGET, int32(w), int32(h))
	if err != nil {
		return nil, fmt.Errorf("sdlkit: create target: %w", err)
	}
	tex, err := NewTexture(raw)
	if err != nil {
		raw.Destroy()
		return nil, err
	}
	t := &Target{
		Surface: Surface{r: s.r, target: raw, size: marquee.Rect{Width: float64(w), Height: float64(h)}},
		tex:     tex,
	}
	return t, nil
}

// Target is an offscreen render target texture.
type Target struct {
	Surface
	tex *Texture
}

// Image returns the whole target as an image.
func (t *Target) Image() marquee.Image {
	return marquee.Image{Texture: t.tex, Src: marquee.Rect{Width: float64(t.tex.w), Height: float64(t.tex.h)}}
}

// Destroy releases the target texture.
func (t *Target) Destroy() { t.tex.Destroy() }

func srcRect(r marquee.Rect) sdl.Rect {
	return sdl.Rect{
		X: int32(math.Round(r.X)),
		Y: int32(math.Round(r.Y)),
		W: int32(math.Round(r.Width)),
		H: int32(math.Round(r.Height)),
	}
}

func dstRect(r marquee.Rect) sdl.FRect {
	return sdl.FRect{X: float32(r.X), Y: float32(r.Y), W: float32(r.Width), H: float32(r.Height)}
}

func rendererFlip(f marquee.Flip) sdl.RendererFlip {
	flip := sdl.RendererFlip(sdl.FLIP_NONE)
	if f&marquee.FlipX != 0 {
		flip |= sdl.FLIP_HORIZONTAL
	}
	if f&marquee.FlipY != 0 {
		flip |= sdl.FLIP_VERTICAL
	}
	return flip
}

// modulation returns the color and alpha modulation for a tint and an
// alpha in [0, 255]. An unset tint draws untinted.
func modulation(tint marquee.Color, alpha float64) (r, g, b, a uint8) {
	if tint.IsZero() {
		tint = marquee.ColorWhite
	}
	r, g, b, ta := tint.RGBA8()
	av := float64(ta) * math.Max(0, math.Min(alpha, 255)) / 255
	return r, g, b, uint8(math.Round(av))
}
