package marquee

import (
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera is a scroll offset and zoom shared by the sprites drawn over a
// scrolling background. A world point p appears on screen at (p - (X, Y)) * Zoom.
type Camera struct {
	// X and Y are the world-space coordinates of the viewport's top-left corner.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// Viewport is the screen-space size of the view, used by Follow and bounds.
	Viewport Rect

	followTarget *Sprite
	followOffset Vec2
	followLerp   float64

	// BoundsEnabled clamps the camera so the visible area stays within Bounds.
	BoundsEnabled bool
	// Bounds is the world-space rectangle the camera is clamped to when
	// BoundsEnabled is true.
	Bounds Rect

	scrollTween *scrollAnim
}

// NewCamera creates a camera at the world origin with zoom 1.
func NewCamera(viewport Rect) *Camera {
	return &Camera{Zoom: 1.0, Viewport: viewport}
}

// Follow makes the camera keep target centered in the viewport, displaced by
// offset. A lerp of 1.0 snaps immediately; lower values give smoother following.
func (c *Camera) Follow(target *Sprite, offset Vec2, lerp float64) {
	c.followTarget = target
	c.followOffset = offset
	c.followLerp = lerp
}

// Unfollow stops tracking the current target.
func (c *Camera) Unfollow() {
	c.followTarget = nil
}

// ScrollTo animates the camera's top-left corner to (x, y) over duration.
func (c *Camera) ScrollTo(x, y float64, duration time.Duration, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.Linear
	}
	d := float32(duration.Seconds())
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(x), d, easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), d, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (c *Camera) Scrolling() bool {
	return c.scrollTween != nil
}

// SetBounds enables camera bounds clamping.
func (c *Camera) SetBounds(bounds Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
}

// ClearBounds disables camera bounds clamping.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

// Update advances follow, scroll and bounds clamping. Call it once per tick,
// after the followed sprite has been updated.
func (c *Camera) Update(dt time.Duration) {
	if c.followTarget != nil {
		halfW, halfH := c.halfView()
		targetX := c.followTarget.Pos.X + c.followOffset.X - halfW
		targetY := c.followTarget.Pos.Y + c.followOffset.Y - halfH
		c.X += (targetX - c.X) * c.followLerp
		c.Y += (targetY - c.Y) * c.followLerp
	}

	if c.scrollTween != nil {
		step := float32(dt.Seconds())
		if !c.scrollTween.doneX {
			val, done := c.scrollTween.tweenX.Update(step)
			c.X = float64(val)
			c.scrollTween.doneX = done
		}
		if !c.scrollTween.doneY {
			val, done := c.scrollTween.tweenY.Update(step)
			c.Y = float64(val)
			c.scrollTween.doneY = done
		}
		if c.scrollTween.doneX && c.scrollTween.doneY {
			c.scrollTween = nil
		}
	}

	if c.BoundsEnabled {
		c.clampToBounds()
	}
}

func (c *Camera) zoom() float64 {
	if c.Zoom == 0 {
		return 1
	}
	return c.Zoom
}

func (c *Camera) halfView() (float64, float64) {
	z := c.zoom()
	return c.Viewport.Width / (2 * z), c.Viewport.Height / (2 * z)
}

// clampToBounds restricts the camera so the visible area stays within Bounds.
func (c *Camera) clampToBounds() {
	z := c.zoom()
	visW := c.Viewport.Width / z
	visH := c.Viewport.Height / z

	maxX := c.Bounds.X + c.Bounds.Width - visW
	maxY := c.Bounds.Y + c.Bounds.Height - visH

	// If bounds are smaller than the visible area, center on them.
	if maxX < c.Bounds.X {
		c.X = c.Bounds.X + (c.Bounds.Width-visW)/2
	} else {
		c.X = math.Max(c.Bounds.X, math.Min(c.X, maxX))
	}
	if maxY < c.Bounds.Y {
		c.Y = c.Bounds.Y + (c.Bounds.Height-visH)/2
	} else {
		c.Y = math.Max(c.Bounds.Y, math.Min(c.Y, maxY))
	}
}

// Apply maps a world-space rectangle to screen space. A nil camera is the
// identity transform.
func (c *Camera) Apply(r Rect) Rect {
	if c == nil {
		return r
	}
	z := c.zoom()
	return Rect{
		X:      (r.X-c.X)*z + c.Viewport.X,
		Y:      (r.Y-c.Y)*z + c.Viewport.Y,
		Width:  r.Width * z,
		Height: r.Height * z,
	}
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	if c == nil {
		return wx, wy
	}
	z := c.zoom()
	return (wx-c.X)*z + c.Viewport.X, (wy-c.Y)*z + c.Viewport.Y
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	if c == nil {
		return sx, sy
	}
	z := c.zoom()
	return (sx-c.Viewport.X)/z + c.X, (sy-c.Viewport.Y)/z + c.Y
}

// VisibleBounds returns the world-space rectangle currently in view.
func (c *Camera) VisibleBounds() Rect {
	z := c.zoom()
	return Rect{X: c.X, Y: c.Y, Width: c.Viewport.Width / z, Height: c.Viewport.Height / z}
}
