package ecs

import (
	"log/slog"
	"slices"
	"time"

	"github.com/phanxgames/marquee"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// SpriteData is the component stored on sprite entities. Lower layers draw
// first; equal layers draw in creation order.
type SpriteData struct {
	Sprite *marquee.Sprite
	Layer  int
}

// SpriteComponent marks entities drawn by the AnimationSystem.
var SpriteComponent = donburi.NewComponentType[SpriteData]()

// AddSprite creates an entity holding s at the given layer.
func AddSprite(world donburi.World, s *marquee.Sprite, layer int) donburi.Entity {
	e := world.Create(SpriteComponent)
	SpriteComponent.SetValue(world.Entry(e), SpriteData{Sprite: s, Layer: layer})
	return e
}

// AnimationSystem advances and draws every sprite entity in a world.
type AnimationSystem struct {
	// Cull skips sprites whose destination misses the surface bounds.
	Cull   bool
	Logger *slog.Logger

	query *donburi.Query
	order []drawItem
}

type drawItem struct {
	seq   int
	layer int
	s     *marquee.Sprite
}

// NewAnimationSystem creates a system. A nil logger uses the marquee logger.
func NewAnimationSystem(logger *slog.Logger) *AnimationSystem {
	return &AnimationSystem{
		Logger: logger,
		query:  donburi.NewQuery(filter.Contains(SpriteComponent)),
	}
}

func (a *AnimationSystem) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return marquee.Logger()
}

// Update advances each sprite entity by dt.
func (a *AnimationSystem) Update(world donburi.World, dt time.Duration) {
	a.query.Each(world, func(entry *donburi.Entry) {
		if s := SpriteComponent.Get(entry).Sprite; s != nil {
			s.Update(dt)
		}
	})
}

// Draw draws every sprite entity onto surface and returns the number of
// failed draws. Failures are logged and do not stop the pass.
func (a *AnimationSystem) Draw(world donburi.World, surface marquee.Surface) int {
	a.order = a.order[:0]
	a.query.Each(world, func(entry *donburi.Entry) {
		d := SpriteComponent.Get(entry)
		if d.Sprite == nil {
			return
		}
		a.order = append(a.order, drawItem{seq: len(a.order), layer: d.Layer, s: d.Sprite})
	})
	slices.SortStableFunc(a.order, func(x, y drawItem) int {
		if x.layer != y.layer {
			return x.layer - y.layer
		}
		return x.seq - y.seq
	})

	bounds := surface.Bounds()
	failed := 0
	for _, it := range a.order {
		if a.Cull && !it.s.DestRect().Intersects(bounds) {
			continue
		}
		if err := it.s.Draw(surface); err != nil {
			failed++
			a.logger().Error("ecs: draw failed", "sprite", it.s.Name, "error", err)
		}
	}
	return failed
}

// Tick advances then draws.
func (a *AnimationSystem) Tick(world donburi.World, dt time.Duration, surface marquee.Surface) int {
	a.Update(world, dt)
	return a.Draw(world, surface)
}

// MenuResult is published when a modeless menu attached with OpenMenu
// produces a result: when it closes, or when an options menu changes a value.
// Value holds the session's result type, such as marquee.SelectResult.
type MenuResult struct {
	Name   string
	Value  any
	Closed bool
}

// MenuResultEventType carries MenuResult events. Subscribe with
// MenuResultEventType.Subscribe and deliver with ProcessEvents.
var MenuResultEventType = events.NewEventType[MenuResult]()

// MenuData is the component stored on menu entities.
type MenuData struct {
	Name string
	step  func([]marquee.Event) (any, bool)
	draw  func()
	alive func() bool
}

// MenuComponent marks entities holding an open menu session.
var MenuComponent = donburi.NewComponentType[MenuData]()

// OpenMenu attaches a modeless session to a new entity.
func OpenMenu[R any](world donburi.World, name string, session *marquee.Session[R]) donburi.Entity {
	step := func(evs []marquee.Event) (any, bool) {
		return session.Handle(evs)
	}
	e := world.Create(MenuComponent)
	MenuComponent.SetValue(world.Entry(e), MenuData{Name: name, step: step, draw: session.Draw, alive: session.Alive})
	return e
}

// MenuSystem steps every open menu each tick.
type MenuSystem struct {
	query *donburi.Query
	done  []donburi.Entity
}

// NewMenuSystem creates a menu system.
func NewMenuSystem() *MenuSystem {
	return &MenuSystem{query: donburi.NewQuery(filter.Contains(MenuComponent))}
}

// Update hands events to every open menu. Menus that produce a result
// publish it; menus that close are removed from the world. Published events are delivered on
// the next ProcessEvents call.
func (m *MenuSystem) Update(world donburi.World, evs []marquee.Event) {
	m.done = m.done[:0]
	m.query.Each(world, func(entry *donburi.Entry) {
		d := MenuComponent.Get(entry)
		if d.step == nil || d.alive == nil {
			return
		}
		v, produced := d.step(evs)
		closed := !d.alive()
		if produced || closed {
			MenuResultEventType.Publish(world, MenuResult{Name: d.Name, Value: v, Closed: closed})
		}
		if closed {
			m.done = append(m.done, entry.Entity())
		}
	})
	for _, e := range m.done {
		world.Remove(e)
	}
}

// Draw draws every open menu.
func (m *MenuSystem) Draw(world donburi.World) {
	m.query.Each(world, func(entry *donburi.Entry) {
		if d := MenuComponent.Get(entry); d.draw != nil {
			d.draw()
		}
	})
}

// Open reports the number of open menus.
func (m *MenuSystem) Open(world donburi.World) int {
	return m.query.Count(world)
}
