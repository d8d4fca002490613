package marquee

import (
	"log/slog"
	"time"
)

// SpriteGroup owns an ordered set of sprites that are advanced and drawn
// together. Each member is advanced exactly once per Update and drawn in
// insertion order.
type SpriteGroup struct {
	// Cull skips members whose destination rectangle misses the surface bounds.
	Cull bool
	// Logger receives per-sprite draw failures. Nil uses the package logger.
	Logger *slog.Logger
	// Debug logs per-tick stats and draws every member's debug outline.
	Debug bool

	sprites []*Sprite
	index   map[*Sprite]int
	tick    uint64
	drawn   uint64
	stats   GroupStats
}

// NewSpriteGroup creates a group containing sprites.
func NewSpriteGroup(sprites ...*Sprite) *SpriteGroup {
	g := &SpriteGroup{index: make(map[*Sprite]int)}
	g.Add(sprites...)
	return g
}

// Add appends sprites to the group. Sprites already present are ignored.
func (g *SpriteGroup) Add(sprites ...*Sprite) {
	if g.index == nil {
		g.index = make(map[*Sprite]int)
	}
	for _, s := range sprites {
		if s == nil {
			continue
		}
		if _, ok := g.index[s]; ok {
			continue
		}
		g.index[s] = len(g.sprites)
		g.sprites = append(g.sprites, s)
	}
}

// Remove deletes s from the group, preserving the order of the rest.
func (g *SpriteGroup) Remove(s *Sprite) bool {
	i, ok := g.index[s]
	if !ok {
		return false
	}
	copy(g.sprites[i:], g.sprites[i+1:])
	g.sprites[len(g.sprites)-1] = nil
	g.sprites = g.sprites[:len(g.sprites)-1]
	delete(g.index, s)
	for j := i; j < len(g.sprites); j++ {
		g.index[g.sprites[j]] = j
	}
	return true
}

// Has reports whether s is a member.
func (g *SpriteGroup) Has(s *Sprite) bool {
	_, ok := g.index[s]
	return ok
}

// Len returns the number of members.
func (g *SpriteGroup) Len() int { return len(g.sprites) }

// Sprites returns the members in draw order. The slice must not be modified.
func (g *SpriteGroup) Sprites() []*Sprite { return g.sprites }

// Update advances every member by dt.
func (g *SpriteGroup) Update(dt time.Duration) {
	start := time.Now()
	for _, s := range g.sprites {
		s.Update(dt)
	}
	g.tick++
	g.stats.UpdateTime = time.Since(start)
}

func (g *SpriteGroup) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return Logger()
}

// Stats returns the metrics of the most recent Update and Draw.
func (g *SpriteGroup) Stats() GroupStats { return g.stats }

// Draw renders every visible member. A member that fails to draw is logged
// and skipped; the rest of the group still draws. Draw reports the number of
// failures.
func (g *SpriteGroup) Draw(surface Surface) int {
	start := time.Now()
	log := g.logger()
	if g.drawn == g.tick && g.tick > 0 {
		log.Debug("sprite group: drawn twice without update", "tick", g.tick)
	}
	g.drawn = g.tick

	var bounds Rect
	if g.Cull {
		bounds = surface.Bounds()
	}
	stats := GroupStats{UpdateTime: g.stats.UpdateTime, Sprites: len(g.sprites)}
	for _, s := range g.sprites {
		if g.Cull && !s.DestRect().Intersects(bounds) {
			stats.Culled++
			continue
		}
		if err := s.Draw(surface); err != nil {
			stats.Failed++
			log.Error("sprite group: draw failed", "sprite", s.Name, "error", err)
			continue
		}
		stats.Drawn++
		if g.Debug {
			if err := s.DrawDebug(surface, DebugColor); err != nil {
				log.Error("sprite group: debug draw failed", "sprite", s.Name, "error", err)
			}
		}
	}
	stats.DrawTime = time.Since(start)
	g.stats = stats
	if g.Debug {
		g.debugLog(stats)
	}
	return stats.Failed
}

// Tick advances then draws the group, the required order within one frame.
func (g *SpriteGroup) Tick(dt time.Duration, surface Surface) int {
	g.Update(dt)
	return g.Draw(surface)
}

// Collide returns the members whose collision rectangle intersects s's.
func (g *SpriteGroup) Collide(s *Sprite) []*Sprite {
	var hits []*Sprite
	r := s.Rect()
	for _, o := range g.sprites {
		if o != s && o.Rect().Intersects(r) {
			hits = append(hits, o)
		}
	}
	return hits
}
