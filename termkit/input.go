package termkit

import (
	"strings"
	"sync"

	"github.com/phanxgames/marquee"

	"github.com/gdamore/tcell/v2"
)

var menuKeys = map[tcell.Key]marquee.Key{
	tcell.KeyUp:         marquee.KeyUp,
	tcell.KeyDown:       marquee.KeyDown,
	tcell.KeyLeft:       marquee.KeyLeft,
	tcell.KeyRight:      marquee.KeyRight,
	tcell.KeyEnter:      marquee.KeyEnter,
	tcell.KeyEscape:     marquee.KeyEscape,
	tcell.KeyBackspace:  marquee.KeyBackspace,
	tcell.KeyBackspace2: marquee.KeyBackspace,
	tcell.KeyTab:        marquee.KeyTab,
}

var mouseButtons = [...]struct {
	mask tcell.ButtonMask
	mb   marquee.MouseButton
}{
	{tcell.Button1, marquee.MouseButtonLeft},
	{tcell.Button2, marquee.MouseButtonRight},
	{tcell.Button3, marquee.MouseButtonMiddle},
}

// eventBuffer is the number of tcell events held between polls.
const eventBuffer = 256

// Input reads tcell events on a background goroutine and converts them to
// marquee events on Poll. Ctrl+C and Ctrl+Q become quit events and the
// mouse wheel scrolls like the arrow keys.
type Input struct {
	screen  tcell.Screen
	events  chan tcell.Event
	done    chan struct{}
	once    sync.Once
	buttons tcell.ButtonMask
	pasting bool
	paste   strings.Builder
	out     []marquee.Event
}

// NewInput starts pumping events from an initialized screen. Call Close to
// stop the pump before finalizing the screen. Bracketed pastes arrive as one
// text event when the screen has paste enabled.
func NewInput(screen tcell.Screen) *Input {
	in := &Input{
		screen: screen,
		events: make(chan tcell.Event, eventBuffer),
		done:   make(chan struct{}),
	}
	go in.pump()
	return in
}

func (in *Input) pump() {
	for {
		ev := in.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case in.events <- ev:
		case <-in.done:
			return
		}
	}
}

// Poll returns the events received since the previous call without blocking.
func (in *Input) Poll() []marquee.Event {
	in.out = in.out[:0]
	for {
		select {
		case ev := <-in.events:
			in.out = in.translate(ev, in.out)
		default:
			return in.out
		}
	}
}

// Close stops the event pump. The pump goroutine exits once the screen is
// finalized or the next event arrives.
func (in *Input) Close() {
	in.once.Do(func() { close(in.done) })
}

func (in *Input) translate(ev tcell.Event, out []marquee.Event) []marquee.Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		if in.pasting {
			in.collect(e)
			return out
		}
		return translateKey(e, out)
	case *tcell.EventPaste:
		if e.Start() {
			in.pasting = true
			in.paste.Reset()
			return out
		}
		in.pasting = false
		if text := pasteText(in.paste.String()); text != "" {
			out = append(out, marquee.TextEvent(text))
		}
	case *tcell.EventMouse:
		return in.translateMouse(e, out)
	case *tcell.EventResize:
		in.screen.Sync()
	}
	return out
}

func translateKey(e *tcell.EventKey, out []marquee.Event) []marquee.Event {
	switch e.Key() {
	case tcell.KeyCtrlC, tcell.KeyCtrlQ:
		return append(out, marquee.QuitEvent())
	case tcell.KeyRune:
		r := e.Rune()
		if e.Modifiers()&tcell.ModCtrl != 0 && (r == 'c' || r == 'q') {
			return append(out, marquee.QuitEvent())
		}
		if r == ' ' {
			out = append(out, marquee.KeyEvent(marquee.KeySpace))
		}
		if e.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return out
		}
		return append(out, marquee.TextEvent(string(r)))
	}
	if k, ok := menuKeys[e.Key()]; ok {
		return append(out, marquee.KeyEvent(k))
	}
	return out
}

func (in *Input) translateMouse(e *tcell.EventMouse, out []marquee.Event) []marquee.Event {
	cx, cy := e.Position()
	// Pointer coordinates address cell centers.
	x, y := float64(cx)+0.5, float64(cy)+0.5
	out = append(out, marquee.MoveEvent(x, y))

	buttons := e.Buttons()
	for _, m := range mouseButtons {
		was, is := in.buttons&m.mask != 0, buttons&m.mask != 0
		switch {
		case is && !was:
			out = append(out, marquee.Event{Type: marquee.EventPointerDown, X: x, Y: y, Button: m.mb, Pressed: true})
		case was && !is:
			out = append(out, marquee.Event{Type: marquee.EventPointerUp, X: x, Y: y, Button: m.mb})
		}
	}
	in.buttons = buttons & (tcell.Button1 | tcell.Button2 | tcell.Button3)

	if buttons&tcell.WheelUp != 0 {
		out = append(out, marquee.KeyEvent(marquee.KeyUp))
	}
	if buttons&tcell.WheelDown != 0 {
		out = append(out, marquee.KeyEvent(marquee.KeyDown))
	}
	return out
}

func (in *Input) collect(e *tcell.EventKey) {
	switch e.Key() {
	case tcell.KeyRune:
		in.paste.WriteRune(e.Rune())
	case tcell.KeyEnter:
		in.paste.WriteByte('\n')
	case tcell.KeyTab:
		in.paste.WriteByte(' ')
	}
}

// pasteText keeps the first line of pasted text.
func pasteText(s string) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = s[:i]
	}
	return s
}
