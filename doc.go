// Package marquee animates texture regions and builds keyboard, pointer and
// controller driven menus on top of a small drawing interface.
//
// The core is backend-agnostic. A backend implements [Surface], [Font],
// [InputSource] and optionally [Presenter], [TargetFactory] and
// [TextureLoader]; ready-made backends live in marquee/ebitenkit (Ebitengine),
// marquee/sdlkit (SDL2) and marquee/termkit (tcell terminals).
//
// # Sprites
//
// A [Sprite] plays a list of [Keyframe] values over an [ImageSet]. Each
// keyframe names an image and a duration and may override the transform or
// start constant-rate motion:
//
//	images, _ := marquee.NewImageSet(marquee.FromTexture(tex, marquee.Grid{Width: 32, Height: 32}), nil)
//	hero := marquee.NewSprite(images, marquee.SpriteOptions{Name: "hero"})
//	hero.SetAnimation(marquee.KeyRange(0, 3, 100*time.Millisecond), marquee.LoopInfinite, marquee.LoopForward)
//
// Animations can be queued to follow the current one, or interrupt it and
// resume it afterwards:
//
//	hero.QueueAnimation(jump, 0, marquee.LoopForward)
//	hero.Interrupt(hit, marquee.LoopForward)
//	hero.QueueEvent(func() { log.Println("done") })
//
// Call [Sprite.Update] once per tick before drawing. [SpriteGroup] does this
// for many sprites and logs draw failures instead of stopping.
//
// Animations may also be loaded from YAML with [LoadAnimationsYAML].
//
// # Cameras and tweens
//
// A [Camera] scrolls and zooms every sprite that references it, follows a
// target sprite and scrolls with easing from [gween]. [TweenPosition],
// [TweenScale], [TweenAlpha], [TweenRotation] and [TweenTint] animate sprite
// fields with easing instead of constant rates.
//
// # Menus
//
// A [Menu] opens four kinds of menu: dialogs, text inputs, select lists and
// options menus. Each has a blocking form driven by [MenuConfig.Input] and
// [MenuConfig.Clock]:
//
//	m, _ := marquee.NewMenu(surface, marquee.MenuConfig{Font: font, Input: input})
//	res, _ := m.Select([]string{"New game", "Continue", "Quit"}, marquee.SelectOptions{Title: "Main"})
//
// and a modeless form for hosts with their own frame loop, such as Ebitengine:
//
//	sess, _ := m.OpenSelect(items, marquee.SelectOptions{})
//	// every frame:
//	if res, done := sess.Step(events); done { ... }
//
// Options menus edit an [OptionSet] of labels, items, toggles, sliders and
// spacers in place. Option sets can be built directly, from heterogeneous
// descriptors with [NormalizeOptions], or from YAML with [LoadOptionsYAML].
//
// # Logging and errors
//
// The package logs through [log/slog]. [SetLogger] replaces the logger and
// [SetRawLogLevel] changes its level. Construction errors are returned as
// [*ConfigurationError]; per-frame draw failures are logged and skipped.
//
// [gween]: https://github.com/tanema/gween
package marquee
