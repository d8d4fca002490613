// Package termkit runs marquee menus and sprites in a terminal through tcell.
//
// One surface unit is one character cell. [Surface] draws filled rectangles
// as cell backgrounds, text through the cell grid with East Asian wide runes
// taking two columns, and images cut from text-art [Texture] values. [Input]
// pumps tcell events in the background and hands them to Poll as marquee
// events.
//
// Terminals have no frame loop of their own, so menus are normally run
// modally:
//
//	scr, _ := termkit.Open()
//	defer scr.Close()
//	m, _ := marquee.NewMenu(scr.Surface(), marquee.MenuConfig{
//		Font:    termkit.Font{},
//		Input:   scr.Input(),
//		Spacing: 1,
//	})
//	res, err := m.Select([]string{"New", "Load", "Quit"}, marquee.SelectOptions{})
package termkit
