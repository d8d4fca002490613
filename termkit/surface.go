package termkit

import (
	"errors"
	"math"
	"strings"

	"github.com/phanxgames/marquee"

	"github.com/gdamore/tcell/v2"
)

var errForeignTexture = errors.New("termkit: texture was not created by termkit")

// Texture is text art used as an image sheet. Each rune is one pixel; spaces
// are transparent.
type Texture struct {
	rows [][]rune
	w, h int
	// Color is the foreground of every drawn rune before tinting.
	Color marquee.Color
}

// NewTexture builds a texture from newline-separated rows. Short rows are
// padded with transparent cells.
func NewTexture(art string, c marquee.Color) *Texture {
	art = strings.TrimSuffix(art, "\n")
	t := &Texture{Color: c}
	for _, line := range strings.Split(art, "\n") {
		row := []rune(strings.TrimRight(line, "\r"))
		t.rows = append(t.rows, row)
		t.w = max(t.w, len(row))
	}
	t.h = len(t.rows)
	return t
}

// Size returns the texture size in cells.
func (t *Texture) Size() (w, h int) { return t.w, t.h }

func (t *Texture) at(x, y int) rune {
	if y < 0 || y >= t.h || x < 0 || x >= len(t.rows[y]) {
		return ' '
	}
	return t.rows[y][x]
}

// Surface draws into a tcell screen, one unit per cell.
type Surface struct {
	screen tcell.Screen
	font   Font
}

// NewSurface wraps an initialized screen.
func NewSurface(screen tcell.Screen) *Surface {
	return &Surface{screen: screen}
}

// Screen returns the wrapped screen.
func (s *Surface) Screen() tcell.Screen { return s.screen }

// Bounds returns the terminal size in cells.
func (s *Surface) Bounds() marquee.Rect {
	w, h := s.screen.Size()
	return marquee.Rect{Width: float64(w), Height: float64(h)}
}

// DrawImage stretches the image's cells over dst with nearest sampling.
// Rotation is ignored.
func (s *Surface) DrawImage(img marquee.Image, dst marquee.Rect, opts marquee.DrawOptions) error {
	tex, ok := img.Texture.(*Texture)
	if !ok {
		return errForeignTexture
	}
	if opts.Alpha <= 0 || img.Src.Width <= 0 || img.Src.Height <= 0 {
		return nil
	}
	tint := opts.Tint
	if tint.IsZero() {
		tint = marquee.ColorWhite
	}
	fg := toColor(tex.Color.Mul(tint))

	x0, y0 := cell(dst.X), cell(dst.Y)
	w, h := cell(dst.X+dst.Width)-x0, cell(dst.Y+dst.Height)-y0
	sw, sh := img.Src.Width/float64(w), img.Src.Height/float64(h)
	for cy := range h {
		v := int((float64(cy) + 0.5) * sh)
		if opts.Flip&marquee.FlipY != 0 {
			v = int(img.Src.Height) - 1 - v
		}
		for cx := range w {
			u := int((float64(cx) + 0.5) * sw)
			if opts.Flip&marquee.FlipX != 0 {
				u = int(img.Src.Width) - 1 - u
			}
			r := tex.at(int(img.Src.X)+u, int(img.Src.Y)+v)
			if r == ' ' || r == 0 {
				continue
			}
			x, y := x0+cx, y0+cy
			s.screen.SetContent(x, y, r, nil, s.styleAt(x, y).Foreground(fg))
		}
	}
	return nil
}

// FillRect sets the background of every covered cell. Translucent colors
// are blended over the current background.
func (s *Surface) FillRect(r marquee.Rect, c marquee.Color) error {
	if c.A <= 0 {
		return nil
	}
	x0, y0 := cell(r.X), cell(r.Y)
	x1, y1 := cell(r.X+r.Width), cell(r.Y+r.Height)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			st := s.styleAt(x, y)
			bg := c
			if c.A < 1 {
				_, prev, _ := st.Decompose()
				bg = blend(fromColor(prev), c)
			}
			s.screen.SetContent(x, y, ' ', nil, st.Background(toColor(bg)))
		}
	}
	return nil
}

// DrawText writes s from pos, keeping each cell's background. Newlines start
// a new row at pos.X. The scale is ignored.
func (s *Surface) DrawText(f marquee.Font, text string, pos marquee.Vec2, scale float64, c marquee.Color) error {
	font := s.font
	if tf, ok := f.(Font); ok {
		font = tf
	}
	fg := toColor(c)
	x0, y := cell(pos.X), cell(pos.Y)
	for _, line := range strings.Split(text, "\n") {
		x := x0
		for _, r := range line {
			w := font.runeWidth(r)
			if w == 0 {
				continue
			}
			s.screen.SetContent(x, y, r, nil, s.styleAt(x, y).Foreground(fg))
			x += w
		}
		y++
	}
	return nil
}

// Clear blanks the screen.
func (s *Surface) Clear() error {
	s.screen.Clear()
	return nil
}

// Present flushes pending cells to the terminal.
func (s *Surface) Present() error {
	s.screen.Show()
	return nil
}

func (s *Surface) styleAt(x, y int) tcell.Style {
	_, _, st, _ := s.screen.GetContent(x, y)
	return st
}

func cell(v float64) int { return int(math.Floor(v + 0.5)) }

func toColor(c marquee.Color) tcell.Color {
	r, g, b, _ := c.RGBA8()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// fromColor converts a cell color back, treating the terminal default as black.
func fromColor(c tcell.Color) marquee.Color {
	r, g, b := c.RGB()
	if r < 0 {
		return marquee.ColorBlack
	}
	return marquee.RGB8(uint8(r), uint8(g), uint8(b))
}

func blend(under, over marquee.Color) marquee.Color {
	a := over.A
	return marquee.Color{
		R: under.R*(1-a) + over.R*a,
		G: under.G*(1-a) + over.G*a,
		B: under.B*(1-a) + over.B*a,
		A: 1,
	}
}
