package ebitenkit

import (
	"math"
	"strings"

	"github.com/phanxgames/marquee"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var menuKeys = map[ebiten.Key]marquee.Key{
	ebiten.KeyArrowUp:     marquee.KeyUp,
	ebiten.KeyArrowDown:   marquee.KeyDown,
	ebiten.KeyArrowLeft:   marquee.KeyLeft,
	ebiten.KeyArrowRight:  marquee.KeyRight,
	ebiten.KeyEnter:       marquee.KeyEnter,
	ebiten.KeyNumpadEnter: marquee.KeyEnter,
	ebiten.KeySpace:       marquee.KeySpace,
	ebiten.KeyEscape:      marquee.KeyEscape,
	ebiten.KeyBackspace:   marquee.KeyBackspace,
	ebiten.KeyTab:         marquee.KeyTab,
}

var padButtons = [...]struct {
	eb  ebiten.StandardGamepadButton
	pad marquee.PadButton
}{
	{ebiten.StandardGamepadButtonRightBottom, marquee.PadA},
	{ebiten.StandardGamepadButtonRightRight, marquee.PadB},
	{ebiten.StandardGamepadButtonRightLeft, marquee.PadX},
	{ebiten.StandardGamepadButtonRightTop, marquee.PadY},
	{ebiten.StandardGamepadButtonCenterRight, marquee.PadStart},
	{ebiten.StandardGamepadButtonCenterLeft, marquee.PadSelect},
	{ebiten.StandardGamepadButtonLeftTop, marquee.PadUp},
	{ebiten.StandardGamepadButtonLeftBottom, marquee.PadDown},
	{ebiten.StandardGamepadButtonLeftLeft, marquee.PadLeft},
	{ebiten.StandardGamepadButtonLeftRight, marquee.PadRight},
	{ebiten.StandardGamepadButtonFrontTopLeft, marquee.PadL1},
	{ebiten.StandardGamepadButtonFrontTopRight, marquee.PadR1},
}

var mouseButtons = [...]struct {
	eb ebiten.MouseButton
	mb marquee.MouseButton
}{
	{ebiten.MouseButtonLeft, marquee.MouseButtonLeft},
	{ebiten.MouseButtonRight, marquee.MouseButtonRight},
	{ebiten.MouseButtonMiddle, marquee.MouseButtonMiddle},
}

// axisDeadzone is the smallest stick change reported as an axis event.
const axisDeadzone = 0.05

// Input polls Ebitengine input state into marquee events. Poll must be
// called from ebiten.Game.Update.
type Input struct {
	// Paste reads the clipboard on Ctrl+V. Defaults to the system clipboard.
	// A nil result function disables pasting.
	Paste func() (string, error)
	// HandleClose turns window close requests into quit events. It calls
	// ebiten.SetWindowClosingHandled on first poll.
	HandleClose bool

	keys    []ebiten.Key
	chars   []rune
	pads    []ebiten.GamepadID
	axes    map[ebiten.GamepadID][2]float64
	mx, my  int
	started bool
	events  []marquee.Event
}

// NewInput creates an input reader using the system clipboard.
func NewInput() *Input {
	return &Input{Paste: clipboard.ReadAll, HandleClose: true}
}

// Poll returns the events since the previous poll.
func (in *Input) Poll() []marquee.Event {
	in.events = in.events[:0]
	if in.HandleClose && !in.started {
		ebiten.SetWindowClosingHandled(true)
	}
	if in.HandleClose && ebiten.IsWindowBeingClosed() {
		in.events = append(in.events, marquee.QuitEvent())
	}

	in.pollKeys()
	in.pollPointer()
	in.pollPads()
	in.started = true
	return in.events
}

func ctrlPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
}

func (in *Input) pollKeys() {
	in.keys = inpututil.AppendJustPressedKeys(in.keys[:0])
	for _, k := range in.keys {
		if k == ebiten.KeyV && ctrlPressed() {
			if s := in.paste(); s != "" {
				in.events = append(in.events, marquee.TextEvent(s))
			}
			continue
		}
		if mk, ok := menuKeys[k]; ok {
			in.events = append(in.events, marquee.KeyEvent(mk))
		}
	}
	in.chars = ebiten.AppendInputChars(in.chars[:0])
	if len(in.chars) > 0 && !ctrlPressed() {
		in.events = append(in.events, marquee.TextEvent(string(in.chars)))
	}
}

// paste returns the first line of the clipboard.
func (in *Input) paste() string {
	if in.Paste == nil {
		return ""
	}
	s, err := in.Paste()
	if err != nil {
		marquee.Logger().Debug("ebitenkit: clipboard read failed", "error", err)
		return ""
	}
	return pasteText(s)
}

// pasteText keeps the first line of s without control characters.
func pasteText(s string) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = s[:i]
	}
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}

func (in *Input) pollPointer() {
	x, y := ebiten.CursorPosition()
	if !in.started || x != in.mx || y != in.my {
		in.mx, in.my = x, y
		in.events = append(in.events, marquee.MoveEvent(float64(x), float64(y)))
	}
	fx, fy := float64(x), float64(y)
	for _, b := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(b.eb) {
			in.events = append(in.events, marquee.Event{Type: marquee.EventPointerDown, X: fx, Y: fy, Button: b.mb, Pressed: true})
		}
		if inpututil.IsMouseButtonJustReleased(b.eb) {
			in.events = append(in.events, marquee.Event{Type: marquee.EventPointerUp, X: fx, Y: fy, Button: b.mb})
		}
	}
}

func (in *Input) pollPads() {
	in.pads = ebiten.AppendGamepadIDs(in.pads[:0])
	if in.axes == nil {
		in.axes = make(map[ebiten.GamepadID][2]float64)
	}
	for _, id := range in.pads {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		for _, b := range padButtons {
			if inpututil.IsStandardGamepadButtonJustPressed(id, b.eb) {
				in.events = append(in.events, marquee.PadEvent(b.pad, true))
			}
			if inpututil.IsStandardGamepadButtonJustReleased(id, b.eb) {
				in.events = append(in.events, marquee.PadEvent(b.pad, false))
			}
		}
		prev := in.axes[id]
		cur := [2]float64{
			ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal),
			ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical),
		}
		for axis := range cur {
			if math.Abs(cur[axis]-prev[axis]) >= axisDeadzone {
				in.events = append(in.events, marquee.AxisEvent(axis, cur[axis]))
			}
		}
		in.axes[id] = cur
	}
}
