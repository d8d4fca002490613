package marquee

import "math"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Backends premultiply at draw submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is opaque black, the default menu background.
var ColorBlack = Color{0, 0, 0, 1}

// RGB8 builds an opaque Color from 8-bit channel values.
func RGB8(r, g, b uint8) Color {
	return Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255, A: 1}
}

// RGBA8 returns the color as 8-bit channel values, clamping out-of-range components.
func (c Color) RGBA8() (r, g, b, a uint8) {
	return unit8(c.R), unit8(c.G), unit8(c.B), unit8(c.A)
}

// Mul returns the component-wise product of c and o.
func (c Color) Mul(o Color) Color {
	return Color{R: c.R * o.R, G: c.G * o.G, B: c.B * o.B, A: c.A * o.A}
}

// IsZero reports whether every component is zero, the unset color.
func (c Color) IsZero() bool { return c == Color{} }

func unit8(v float64) uint8 {
	return uint8(math.Round(clamp(v, 0, 1) * 255))
}

// Vec2 is a 2D vector used for positions, offsets, sizes, and rates
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Inflate grows the rectangle by dw and dh while keeping its center fixed.
// Negative values shrink it.
func (r Rect) Inflate(dw, dh float64) Rect {
	return Rect{X: r.X - dw/2, Y: r.Y - dh/2, Width: r.Width + dw, Height: r.Height + dh}
}

// Move returns the rectangle translated by (dx, dy).
func (r Rect) Move(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// CenteredAt returns a copy of r repositioned so that its center is (x, y).
func (r Rect) CenteredAt(x, y float64) Rect {
	r.X = x - r.Width/2
	r.Y = y - r.Height/2
	return r
}

// Flip is a bit set of mirror flags applied when an image is drawn.
type Flip uint8

const (
	FlipX Flip = 1 << iota // mirror horizontally
	FlipY                  // mirror vertically
)

// MouseButton identifies a pointer button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
