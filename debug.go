package marquee

import "time"

// DebugColor is the default outline color used by DrawDebug.
var DebugColor = Color{R: 1, G: 0, B: 1, A: 1}

// debugLineWidth is the thickness of debug outlines in screen pixels.
const debugLineWidth = 1

// DrawDebug outlines the sprite's collision rectangle and marks its anchor
// point. Both are drawn through the sprite's camera.
func (s *Sprite) DrawDebug(surface Surface, c Color) error {
	if err := outline(surface, s.Camera.Apply(s.hit), c); err != nil {
		return &RenderTargetError{Op: "debug " + s.Name, Err: err}
	}
	x, y := s.Camera.WorldToScreen(s.Pos.X, s.Pos.Y)
	const arm = 3
	marks := []Rect{
		{X: x - arm, Y: y, Width: arm*2 + 1, Height: debugLineWidth},
		{X: x, Y: y - arm, Width: debugLineWidth, Height: arm*2 + 1},
	}
	for _, r := range marks {
		if err := surface.FillRect(r, c); err != nil {
			return &RenderTargetError{Op: "debug " + s.Name, Err: err}
		}
	}
	return nil
}

// outline draws the four edges of r.
func outline(surface Surface, r Rect, c Color) error {
	edges := []Rect{
		{X: r.X, Y: r.Y, Width: r.Width, Height: debugLineWidth},
		{X: r.X, Y: r.Bottom() - debugLineWidth, Width: r.Width, Height: debugLineWidth},
		{X: r.X, Y: r.Y, Width: debugLineWidth, Height: r.Height},
		{X: r.Right() - debugLineWidth, Y: r.Y, Width: debugLineWidth, Height: r.Height},
	}
	for _, e := range edges {
		if err := surface.FillRect(e, c); err != nil {
			return err
		}
	}
	return nil
}

// GroupStats holds the timing and draw metrics of one SpriteGroup.Tick.
type GroupStats struct {
	UpdateTime time.Duration
	DrawTime   time.Duration
	Sprites    int
	Drawn      int
	Culled     int
	Failed     int
}

// debugMaxGroupSize is the member count above which a debug group warns.
const debugMaxGroupSize = 1000

// debugLog writes the stats of the last tick at debug level.
func (g *SpriteGroup) debugLog(stats GroupStats) {
	log := g.logger()
	log.Debug("sprite group: tick",
		"update", stats.UpdateTime, "draw", stats.DrawTime,
		"sprites", stats.Sprites, "drawn", stats.Drawn,
		"culled", stats.Culled, "failed", stats.Failed)
	if stats.Sprites > debugMaxGroupSize {
		log.Warn("sprite group: large group", "sprites", stats.Sprites, "threshold", debugMaxGroupSize)
	}
}
