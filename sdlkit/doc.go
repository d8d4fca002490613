// Package sdlkit implements the marquee drawing, text and input interfaces on
// SDL2 through go-sdl2.
//
// SDL leaves the frame loop to the caller, which makes it the natural host
// for marquee's blocking menus:
//
//	win, err := sdlkit.Open(sdlkit.Config{Title: "menu", Width: 640, Height: 480})
//	if err != nil { ... }
//	defer win.Close()
//	font, _ := sdlkit.OpenFont("font.ttf", 18)
//	m, _ := marquee.NewMenu(win.Surface(), marquee.MenuConfig{
//		Font:  font,
//		Input: win.Input(),
//		Clock: sdlkit.NewClock(),
//	})
//	res, _ := m.Select(items, marquee.SelectOptions{})
//
// The window surface implements marquee.Presenter and marquee.TargetFactory.
package sdlkit
