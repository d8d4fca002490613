package sdlkit

import (
	"strings"

	"github.com/phanxgames/marquee"

	"github.com/veandco/go-sdl2/sdl"
)

var menuKeys = map[sdl.Keycode]marquee.Key{
	sdl.K_UP:        marquee.KeyUp,
	sdl.K_DOWN:      marquee.KeyDown,
	sdl.K_LEFT:      marquee.KeyLeft,
	sdl.K_RIGHT:     marquee.KeyRight,
	sdl.K_RETURN:    marquee.KeyEnter,
	sdl.K_KP_ENTER:  marquee.KeyEnter,
	sdl.K_SPACE:     marquee.KeySpace,
	sdl.K_ESCAPE:    marquee.KeyEscape,
	sdl.K_BACKSPACE: marquee.KeyBackspace,
	sdl.K_TAB:       marquee.KeyTab,
}

var padButtons = map[sdl.GameControllerButton]marquee.PadButton{
	sdl.CONTROLLER_BUTTON_A:             marquee.PadA,
	sdl.CONTROLLER_BUTTON_B:             marquee.PadB,
	sdl.CONTROLLER_BUTTON_X:             marquee.PadX,
	sdl.CONTROLLER_BUTTON_Y:             marquee.PadY,
	sdl.CONTROLLER_BUTTON_START:         marquee.PadStart,
	sdl.CONTROLLER_BUTTON_BACK:          marquee.PadSelect,
	sdl.CONTROLLER_BUTTON_DPAD_UP:       marquee.PadUp,
	sdl.CONTROLLER_BUTTON_DPAD_DOWN:     marquee.PadDown,
	sdl.CONTROLLER_BUTTON_DPAD_LEFT:     marquee.PadLeft,
	sdl.CONTROLLER_BUTTON_DPAD_RIGHT:    marquee.PadRight,
	sdl.CONTROLLER_BUTTON_LEFTSHOULDER:  marquee.PadL1,
	sdl.CONTROLLER_BUTTON_RIGHTSHOULDER: marquee.PadR1,
}

var mouseButtons = map[uint8]marquee.MouseButton{
	sdl.BUTTON_LEFT:   marquee.MouseButtonLeft,
	sdl.BUTTON_RIGHT:  marquee.MouseButtonRight,
	sdl.BUTTON_MIDDLE: marquee.MouseButtonMiddle,
}

// Input drains the SDL event queue into marquee events. Poll must run on the
// thread that created the window.
type Input struct {
	// Clipboard is read on Ctrl+V. Defaults to SDL's clipboard.
	Clipboard func() (string, error)

	events []marquee.Event
}

// NewInput creates an event reader using SDL's clipboard.
func NewInput() *Input {
	return &Input{Clipboard: sdl.GetClipboardText}
}

// Poll returns the events queued since the previous poll.
func (in *Input) Poll() []marquee.Event {
	in.events = in.events[:0]
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		in.events = in.translate(ev, in.events)
	}
	return in.events
}

// translate appends the marquee events for one SDL event.
func (in *Input) translate(ev sdl.Event, out []marquee.Event) []marquee.Event {
	switch e := ev.(type) {
	case *sdl.QuitEvent:
		out = append(out, marquee.QuitEvent())
	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN {
			break
		}
		if e.Keysym.Sym == sdl.K_v && e.Keysym.Mod&uint16(sdl.KMOD_CTRL) != 0 {
			if s := in.paste(); s != "" {
				out = append(out, marquee.TextEvent(s))
			}
			break
		}
		if k, ok := menuKeys[e.Keysym.Sym]; ok {
			out = append(out, marquee.KeyEvent(k))
		}
	case *sdl.TextInputEvent:
		if s := e.GetText(); s != "" {
			out = append(out, marquee.TextEvent(s))
		}
	case *sdl.MouseMotionEvent:
		out = append(out, marquee.MoveEvent(float64(e.X), float64(e.Y)))
	case *sdl.MouseButtonEvent:
		b, ok := mouseButtons[e.Button]
		if !ok {
			break
		}
		me := marquee.Event{X: float64(e.X), Y: float64(e.Y), Button: b}
		if e.Type == sdl.MOUSEBUTTONDOWN {
			me.Type, me.Pressed = marquee.EventPointerDown, true
		} else {
			me.Type = marquee.EventPointerUp
		}
		out = append(out, me)
	case *sdl.ControllerButtonEvent:
		if b, ok := padButtons[sdl.GameControllerButton(e.Button)]; ok {
			out = append(out, marquee.PadEvent(b, e.Type == sdl.CONTROLLERBUTTONDOWN))
		}
	case *sdl.ControllerAxisEvent:
		switch sdl.GameControllerAxis(e.Axis) {
		case sdl.CONTROLLER_AXIS_LEFTX:
			out = append(out, marquee.AxisEvent(0, axisValue(e.Value)))
		case sdl.CONTROLLER_AXIS_LEFTY:
			out = append(out, marquee.AxisEvent(1, axisValue(e.Value)))
		}
	}
	return out
}

// axisValue maps a raw SDL axis reading onto [-1, 1].
func axisValue(v int16) float64 {
	if v < 0 {
		return float64(v) / 32768
	}
	return float64(v) / 32767
}

func (in *Input) paste() string {
	if in.Clipboard == nil {
		return ""
	}
	s, err := in.Clipboard()
	if err != nil {
		marquee.Logger().Debug("sdlkit: clipboard read failed", "error", err)
		return ""
	}
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = s[:i]
	}
	return s
}
