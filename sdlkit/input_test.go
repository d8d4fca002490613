package sdlkit

import (
	"errors"
	"testing"

	"github.com/phanxgames/marquee"

	"github.com/veandco/go-sdl2/sdl"
)

func keyDown(sym sdl.Keycode, mod uint16) *sdl.KeyboardEvent {
	return &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Sym: sym, Mod: mod}}
}

func TestTranslate(t *testing.T) {
	in := &Input{Clipboard: func() (string, error) { return "pasted\nignored", nil }}
	tests := []struct {
		name string
		ev   sdl.Event
		want []marquee.Event
	}{
		{"quit", &sdl.QuitEvent{Type: sdl.QUIT}, []marquee.Event{marquee.QuitEvent()}},
		{"arrow", keyDown(sdl.K_UP, 0), []marquee.Event{marquee.KeyEvent(marquee.KeyUp)}},
		{"keypad enter", keyDown(sdl.K_KP_ENTER, 0), []marquee.Event{marquee.KeyEvent(marquee.KeyEnter)}},
		{"unmapped key", keyDown(sdl.K_q, 0), nil},
		{"key up", &sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: sdl.Keysym{Sym: sdl.K_UP}}, nil},
		{"paste", keyDown(sdl.K_v, uint16(sdl.KMOD_LCTRL)), []marquee.Event{marquee.TextEvent("pasted")}},
		{"motion", &sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, X: 10, Y: 20}, []marquee.Event{marquee.MoveEvent(10, 20)}},
		{"press", &sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_LEFT, X: 3, Y: 4}, []marquee.Event{marquee.PressEvent(3, 4)}},
		{"release", &sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP, Button: sdl.BUTTON_LEFT, X: 3, Y: 4}, []marquee.Event{marquee.ReleaseEvent(3, 4)}},
		{"pad down", &sdl.ControllerButtonEvent{Type: sdl.CONTROLLERBUTTONDOWN, Button: uint8(sdl.CONTROLLER_BUTTON_B)}, []marquee.Event{marquee.PadEvent(marquee.PadB, true)}},
		{"pad up", &sdl.ControllerButtonEvent{Type: sdl.CONTROLLERBUTTONUP, Button: uint8(sdl.CONTROLLER_BUTTON_DPAD_UP)}, []marquee.Event{marquee.PadEvent(marquee.PadUp, false)}},
		{"axis", &sdl.ControllerAxisEvent{Type: sdl.CONTROLLERAXISMOTION, Axis: uint8(sdl.CONTROLLER_AXIS_LEFTY), Value: -32768}, []marquee.Event{marquee.AxisEvent(1, -1)}},
		{"right stick", &sdl.ControllerAxisEvent{Type: sdl.CONTROLLERAXISMOTION, Axis: uint8(sdl.CONTROLLER_AXIS_RIGHTX), Value: 100}, nil},
	}
	for _, tt := range tests {
		got := in.translate(tt.ev, nil)
		if len(got) != len(tt.want) {
			t.Errorf("%s: got %d events %+v, want %+v", tt.name, len(got), got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s: event %d = %+v, want %+v", tt.name, i, got[i], tt.want[i])
			}
		}
	}
}

func TestPasteFailures(t *testing.T) {
	in := &Input{Clipboard: func() (string, error) { return "", errors.New("no clipboard") }}
	if got := in.translate(keyDown(sdl.K_v, uint16(sdl.KMOD_RCTRL)), nil); len(got) != 0 {
		t.Errorf("failed paste produced %+v", got)
	}
	in.Clipboard = nil
	if got := in.translate(keyDown(sdl.K_v, uint16(sdl.KMOD_LCTRL)), nil); len(got) != 0 {
		t.Errorf("paste without clipboard produced %+v", got)
	}
}

func TestAxisValue(t *testing.T) {
	tests := map[int16]float64{-32768: -1, 0: 0, 32767: 1}
	for raw, want := range tests {
		if got := axisValue(raw); got != want {
			t.Errorf("axisValue(%d) = %v, want %v", raw, got, want)
		}
	}
}
