// Package evdevkit reads game controllers and keyboards from Linux evdev
// devices and delivers them to menus as marquee events. It is meant for
// handhelds and kiosks that run without a window system's input layer.
//
//	r, err := evdevkit.Open() // every device with gamepad buttons
//	if err != nil { ... }
//	defer r.Close()
//	m, _ := marquee.NewMenu(surface, marquee.MenuConfig{Font: f, Input: r})
package evdevkit
