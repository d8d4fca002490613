// Package ebitenkit implements the marquee drawing, text and input
// interfaces on top of Ebitengine.
//
// A [Surface] wraps an *ebiten.Image, usually the screen passed to Draw.
// Textures loaded through [Loader] or wrapped with [NewTexture] can be cut
// into marquee image sets. [Font] wraps text/v2 faces. [Input] turns the
// keyboard, mouse, gamepads and clipboard into marquee events.
//
// Ebitengine owns the frame loop, so menus are used in their modeless form.
// [Game] implements ebiten.Game, advances sprite groups and a camera, and
// routes input to the topmost menu opened with [Show]:
//
//	g := ebitenkit.NewGame(640, 480)
//	m, _ := marquee.NewMenu(g.Surface, marquee.MenuConfig{Font: ebitenkit.DefaultFont(16)})
//	sess, _ := m.OpenSelect(items, marquee.SelectOptions{})
//	ebitenkit.Show(g, sess, func(r marquee.SelectResult) { ... })
//	ebitenkit.Run(g, ebitenkit.RunConfig{Title: "demo"})
package ebitenkit
