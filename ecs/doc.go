// Package ecs adapts marquee sprites and menus to a [Donburi] world.
//
// Sprites live in entities carrying [SpriteComponent]. The [AnimationSystem]
// advances every sprite once per tick and then draws them in layer order, so
// a frame never shows a sprite that has not been advanced yet.
//
// Modeless menus are attached with [OpenMenu]. [MenuSystem] steps them with
// the tick's input events, publishes a [MenuResult] on [MenuResultEventType]
// when one closes, and removes the entity.
//
// Usage:
//
//	world := donburi.NewWorld()
//	ecs.AddSprite(world, hero, 1)
//	sys := ecs.NewAnimationSystem(nil)
//	sys.Tick(world, dt, surface)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
