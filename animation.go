package marquee

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on a Sprite simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenTint) and call Update(dt) each tick, after the sprite's own Update.
// Tweens are an eased alternative to the constant-rate Motion channels; both
// may drive the same sprite but the last writer of a field wins.
//
// There is no global animation manager; callers call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Sprite
	Done   bool
}

// Update advances all tweens by dt, writes values to the target fields and
// refreshes the sprite's rectangles.
func (g *TweenGroup) Update(dt time.Duration) {
	if g.Done {
		return
	}

	step := float32(dt.Seconds())
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(step)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.updateRects()
	}
}

func newTween(from, to float64, duration time.Duration, fn ease.TweenFunc) *gween.Tween {
	if fn == nil {
		fn = ease.Linear
	}
	return gween.New(float32(from), float32(to), float32(duration.Seconds()), fn)
}

// TweenPosition creates a TweenGroup that moves the sprite to (toX, toY).
func TweenPosition(s *Sprite, toX, toY float64, duration time.Duration, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: s}
	g.tweens[0] = newTween(s.Pos.X, toX, duration, fn)
	g.tweens[1] = newTween(s.Pos.Y, toY, duration, fn)
	g.fields[0] = &s.Pos.X
	g.fields[1] = &s.Pos.Y
	return g
}

// TweenScale creates a TweenGroup that animates the sprite's uniform scale.
func TweenScale(s *Sprite, to float64, duration time.Duration, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: s}
	g.tweens[0] = newTween(s.Scale, to, duration, fn)
	g.fields[0] = &s.Scale
	return g
}

// TweenTint creates a TweenGroup that animates all four tint components.
func TweenTint(s *Sprite, to Color, duration time.Duration, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 4, target: s}
	g.tweens[0] = newTween(s.Tint.R, to.R, duration, fn)
	g.tweens[1] = newTween(s.Tint.G, to.G, duration, fn)
	g.tweens[2] = newTween(s.Tint.B, to.B, duration, fn)
	g.tweens[3] = newTween(s.Tint.A, to.A, duration, fn)
	g.fields[0] = &s.Tint.R
	g.fields[1] = &s.Tint.G
	g.fields[2] = &s.Tint.B
	g.fields[3] = &s.Tint.A
	return g
}

// TweenAlpha creates a TweenGroup that animates the sprite's opacity.
func TweenAlpha(s *Sprite, to float64, duration time.Duration, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: s}
	g.tweens[0] = newTween(s.Alpha, to, duration, fn)
	g.fields[0] = &s.Alpha
	return g
}

// TweenRotation creates a TweenGroup that animates the sprite's angle in degrees.
func TweenRotation(s *Sprite, to float64, duration time.Duration, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: s}
	g.tweens[0] = newTween(s.Angle, to, duration, fn)
	g.fields[0] = &s.Angle
	return g
}
