//go:build linux

package evdevkit

import (
	"github.com/phanxgames/marquee"

	"github.com/holoplot/go-evdev"
)

var padCodes = map[evdev.EvCode]marquee.PadButton{
	evdev.BTN_SOUTH:      marquee.PadA,
	evdev.BTN_EAST:       marquee.PadB,
	evdev.BTN_WEST:       marquee.PadX,
	evdev.BTN_NORTH:      marquee.PadY,
	evdev.BTN_START:      marquee.PadStart,
	evdev.BTN_SELECT:     marquee.PadSelect,
	evdev.BTN_TL:         marquee.PadL1,
	evdev.BTN_TR:         marquee.PadR1,
	evdev.BTN_DPAD_UP:    marquee.PadUp,
	evdev.BTN_DPAD_DOWN:  marquee.PadDown,
	evdev.BTN_DPAD_LEFT:  marquee.PadLeft,
	evdev.BTN_DPAD_RIGHT: marquee.PadRight,
}

var keyCodes = map[evdev.EvCode]marquee.Key{
	evdev.KEY_UP:        marquee.KeyUp,
	evdev.KEY_DOWN:      marquee.KeyDown,
	evdev.KEY_LEFT:      marquee.KeyLeft,
	evdev.KEY_RIGHT:     marquee.KeyRight,
	evdev.KEY_ENTER:     marquee.KeyEnter,
	evdev.KEY_KPENTER:   marquee.KeyEnter,
	evdev.KEY_SPACE:     marquee.KeySpace,
	evdev.KEY_ESC:       marquee.KeyEscape,
	evdev.KEY_BACKSPACE: marquee.KeyBackspace,
	evdev.KEY_TAB:       marquee.KeyTab,
}

// Key event values.
const (
	keyUp     = 0
	keyDown   = 1
	keyRepeat = 2
)

// defaultAbs is assumed for sticks that report no axis range.
var defaultAbs = evdev.AbsInfo{Minimum: -32768, Maximum: 32767}

// mapper converts the raw events of one device.
type mapper struct {
	abs map[evdev.EvCode]evdev.AbsInfo
	// hat holds the last d-pad hat position per axis.
	hat [2]int32
}

func newMapper(abs map[evdev.EvCode]evdev.AbsInfo) *mapper {
	if abs == nil {
		abs = map[evdev.EvCode]evdev.AbsInfo{}
	}
	return &mapper{abs: abs}
}

func (m *mapper) translate(ev evdev.InputEvent, out []marquee.Event) []marquee.Event {
	switch ev.Type {
	case evdev.EV_KEY:
		if b, ok := padCodes[ev.Code]; ok && ev.Value != keyRepeat {
			return append(out, marquee.PadEvent(b, ev.Value == keyDown))
		}
		if k, ok := keyCodes[ev.Code]; ok && ev.Value != keyUp {
			return append(out, marquee.KeyEvent(k))
		}
	case evdev.EV_ABS:
		switch ev.Code {
		case evdev.ABS_X:
			return append(out, marquee.AxisEvent(0, m.normalize(ev.Code, ev.Value)))
		case evdev.ABS_Y:
			return append(out, marquee.AxisEvent(1, m.normalize(ev.Code, ev.Value)))
		case evdev.ABS_HAT0X:
			return m.hatMove(0, ev.Value, marquee.PadLeft, marquee.PadRight, out)
		case evdev.ABS_HAT0Y:
			return m.hatMove(1, ev.Value, marquee.PadUp, marquee.PadDown, out)
		}
	}
	return out
}

// normalize maps an axis value onto [-1, 1].
func (m *mapper) normalize(code evdev.EvCode, v int32) float64 {
	info, ok := m.abs[code]
	if !ok || info.Maximum <= info.Minimum {
		info = defaultAbs
	}
	span := float64(info.Maximum) - float64(info.Minimum)
	f := (float64(v)-float64(info.Minimum))/span*2 - 1
	return max(-1, min(1, f))
}

// hatMove turns a d-pad hat into button presses and releases.
func (m *mapper) hatMove(axis int, v int32, neg, pos marquee.PadButton, out []marquee.Event) []marquee.Event {
	prev := m.hat[axis]
	if prev == v {
		return out
	}
	m.hat[axis] = v
	switch {
	case prev < 0:
		out = append(out, marquee.PadEvent(neg, false))
	case prev > 0:
		out = append(out, marquee.PadEvent(pos, false))
	}
	switch {
	case v < 0:
		out = append(out, marquee.PadEvent(neg, true))
	case v > 0:
		out = append(out, marquee.PadEvent(pos, true))
	}
	return out
}
