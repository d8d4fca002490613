package marquee

import (
	"math"
	"strconv"
	"unicode"
)

// Characters offered by the character wheel, per input type.
const (
	wheelString = " abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789.-_"
	wheelInt    = "0123456789"
	wheelFloat  = "0123456789."
)

// tickInput is the resolved input of one tick. sel is -1 to cancel, 1 to
// confirm and 0 for neither.
type tickInput struct {
	moveX, moveY int
	sel          int
	click        *Vec2
	drag         *Vec2
	text         []rune
	backspace    int
}

// handle runs one tick: resolve every event, then mutate. It reports whether
// a result was produced.
func (s *session) handle(events []Event) bool {
	if !s.alive {
		return false
	}
	in := s.resolve(events)
	produced := s.apply(in)
	s.ticks++
	return produced
}

func (s *session) resolve(events []Event) tickInput {
	var in tickInput
	for _, ev := range events {
		switch ev.Type {
		case EventKeyDown:
			s.resolveKey(ev.Key, &in)
		case EventText:
			if s.mode == modeInput {
				in.text = append(in.text, []rune(ev.Text)...)
			}
		case EventPointerMove:
			s.setPointer(ev.X, ev.Y)
			s.hover()
			if s.pressed {
				in.drag = &Vec2{X: ev.X, Y: ev.Y}
			}
		case EventPointerDown:
			if ev.Button != MouseButtonLeft {
				continue
			}
			s.setPointer(ev.X, ev.Y)
			s.pressed = true
			s.resolvePress(&in)
		case EventPointerUp:
			if ev.Button == MouseButtonLeft {
				s.pressed = false
			}
		case EventQuit:
			in.sel, in.click = -1, nil
		case EventControllerAxis:
			s.resolveAxis(ev, &in)
		case EventControllerButton:
			if ev.Pressed {
				s.resolvePad(ev.Pad, &in)
			}
		}
	}
	return in
}

func (s *session) resolveKey(k Key, in *tickInput) {
	switch k {
	case KeyUp:
		in.moveY = -1
	case KeyDown:
		in.moveY = 1
	case KeyLeft:
		in.moveX = -1
	case KeyRight:
		in.moveX = 1
	case KeyTab:
		if s.mode == modeDialog || s.mode == modeInput {
			in.moveX = 1
		} else {
			in.moveY = 1
		}
	case KeyEnter:
		in.sel, in.click = 1, nil
	case KeySpace:
		// Typed spaces arrive as text events.
		if s.mode != modeInput {
			in.sel, in.click = 1, nil
		}
	case KeyEscape:
		in.sel, in.click = -1, nil
	case KeyBackspace:
		if s.mode == modeInput {
			in.backspace++
		}
	}
}

func (s *session) resolvePad(b PadButton, in *tickInput) {
	switch b {
	case s.cfg.Controller.Confirm:
		in.sel, in.click = 1, nil
	case s.cfg.Controller.Cancel:
		in.sel, in.click = -1, nil
	case PadUp:
		in.moveY = -1
	case PadDown:
		in.moveY = 1
	case PadLeft:
		in.moveX = -1
	case PadRight:
		in.moveX = 1
	}
}

// resolveAxis turns a stick past the threshold into one move, latched until
// the stick returns inside the threshold.
func (s *session) resolveAxis(ev Event, in *tickInput) {
	dir := 0
	if math.Abs(ev.Value) >= s.cfg.Controller.Threshold {
		dir = 1
		if ev.Value < 0 {
			dir = -1
		}
	}
	switch ev.Axis {
	case s.cfg.Controller.AxisX:
		if dir != s.axisX {
			s.axisX = dir
			if dir != 0 {
				in.moveX = dir
			}
		}
	case s.cfg.Controller.AxisY:
		if dir != s.axisY {
			s.axisY = dir
			if dir != 0 {
				in.moveY = dir
			}
		}
	}
}

func (s *session) setPointer(x, y float64) {
	s.pointer = Vec2{X: x, Y: y}
	s.menu.pointer = s.pointer
}

// hover focuses the row or button under the pointer, playing the move cue
// once per focus change.
func (s *session) hover() {
	p := s.pointer
	for i := range s.focusCount() {
		if r, ok := s.focusRect(i); ok && r.Contains(p.X, p.Y) {
			if s.focus != i {
				s.focus = i
				s.play(CueMove)
			}
			return
		}
	}
	if s.mode == modeSelect {
		return
	}
	for i, r := range s.buttonsR {
		if !r.Contains(p.X, p.Y) {
			continue
		}
		changed := s.button != i
		if s.mode == modeOptions && !s.onButtons() {
			s.focus = len(s.interactive)
			changed = true
		}
		s.button = i
		if changed {
			s.play(CueMove)
		}
		return
	}
}

// resolvePress handles a left press: outside the menu cancels, on a row or
// button focuses and confirms, on a page icon turns the page.
func (s *session) resolvePress(in *tickInput) {
	p := s.pointer
	if !s.area.Contains(p.X, p.Y) {
		in.sel, in.click = -1, nil
		return
	}
	s.hover()
	at := &Vec2{X: p.X, Y: p.Y}
	if s.mode == modeSelect && s.paged() {
		if s.pageLeft.Contains(p.X, p.Y) {
			in.moveX = -1
			return
		}
		if s.pageRight.Contains(p.X, p.Y) {
			in.moveX = 1
			return
		}
	}
	if r, ok := s.focusRect(s.focus); ok && r.Contains(p.X, p.Y) {
		in.sel, in.click = 1, at
		return
	}
	for _, r := range s.buttonsR {
		if r.Contains(p.X, p.Y) {
			in.sel, in.click = 1, at
			return
		}
	}
	if s.mode == modeDialog && len(s.buttons) == 0 {
		in.sel, in.click = 1, at
	}
}

func (s *session) play(c Cue) {
	if s.cfg.Audio != nil {
		s.cfg.Audio.Play(c)
	}
}

// apply mutates the session from resolved input. Cancel is ignored on the
// first tick so a key still held from before the menu opened cannot close it.
func (s *session) apply(in tickInput) bool {
	if in.sel == -1 {
		if s.canCancel && s.ticks > 0 {
			s.cancel()
			return true
		}
		in.sel = 0
	}
	produced := false
	switch s.mode {
	case modeDialog:
		s.moveButtons(in.moveX)
		if in.moveY != 0 {
			s.play(CueError)
		}
	case modeInput:
		for _, r := range in.text {
			s.acceptRune(r, true)
		}
		for range in.backspace {
			s.deleteRune()
		}
		if s.wheel {
			s.moveWheel(in.moveX, in.moveY)
		} else {
			s.moveButtons(in.moveX)
			if in.moveY != 0 {
				s.play(CueError)
			}
		}
	case modeSelect:
		s.moveSelect(in.moveX, in.moveY)
	case modeOptions:
		if in.drag != nil && s.dragSlider(*in.drag) {
			produced = true
		}
		if s.moveOptions(in.moveX, in.moveY) {
			produced = true
		}
	}
	if in.sel == 1 && s.confirm(in.click) {
		produced = true
	}
	return produced
}

func (s *session) moveButtons(dx int) {
	if dx == 0 {
		return
	}
	if len(s.buttons) < 2 {
		s.play(CueError)
		return
	}
	s.button = posMod(s.button+dx, len(s.buttons))
	s.play(CueMove)
}

func (s *session) moveSelect(dx, dy int) {
	if dy != 0 {
		s.focus = posMod(s.focus+dy, s.pageLen())
		s.play(CueMove)
	}
	if dx != 0 {
		if !s.paged() {
			s.play(CueError)
			return
		}
		s.page = posMod(s.page+dx, s.pageCount())
		s.focus = min(s.focus, s.pageLen()-1)
		s.play(CueMove)
	}
}

// moveOptions moves focus vertically and mutates the focused row
// horizontally. It reports whether a value changed.
func (s *session) moveOptions(dx, dy int) bool {
	if n := s.focusCount(); dy != 0 && n > 0 {
		s.focus = posMod(s.focus+dy, n)
		s.play(CueMove)
	}
	if dx == 0 {
		return false
	}
	if s.onButtons() {
		s.moveButtons(dx)
		return false
	}
	row, ok := s.focusedRow()
	if !ok || !row.opt.Mutable() {
		s.play(CueError)
		return false
	}
	row.opt.Change(dx, nil)
	s.play(CueMove)
	s.changed(row)
	return true
}

// dragSlider maps a drag over the focused slider onto its value.
func (s *session) dragSlider(p Vec2) bool {
	row, ok := s.focusedRow()
	if !ok || row.opt.Kind != OptionSlider {
		return false
	}
	if p.Y < row.rect.Y || p.Y > row.rect.Bottom() {
		return false
	}
	before := row.opt.Number()
	row.opt.Change(0, &PointerHit{X: p.X, Row: row.rect})
	if row.opt.Number() == before {
		return false
	}
	s.changed(row)
	return true
}

func (s *session) focusedRow() (optionRow, bool) {
	if s.mode != modeOptions || s.focus < 0 || s.focus >= len(s.interactive) {
		return optionRow{}, false
	}
	return s.rows[s.interactive[s.focus]], true
}

func (s *session) changed(row optionRow) {
	s.opt = OptionsResult{Kind: OptionsChanged, Key: row.key, Value: row.opt.Value(), Options: s.options}
	if s.onChange != nil {
		s.onChange(s.opt)
	}
}

// confirm acts on the focused element. It reports whether a result was
// produced.
func (s *session) confirm(click *Vec2) bool {
	switch s.mode {
	case modeDialog:
		s.dialog = DialogResult{Index: -1}
		if len(s.buttons) > 0 {
			s.dialog = DialogResult{Index: s.button, Button: s.buttons[s.button]}
		}
	case modeInput:
		s.input = s.inputResult()
	case modeSelect:
		i := s.page*s.perPage + s.focus
		s.sel = SelectResult{Index: i, Item: s.items[i]}
	case modeOptions:
		if s.focusCount() == 0 {
			s.play(CueError)
			return false
		}
		if s.onButtons() {
			s.opt = OptionsResult{Kind: OptionsButton, Button: s.buttons[s.button], Options: s.options}
			break
		}
		row, _ := s.focusedRow()
		if row.opt.Mutable() {
			var hit *PointerHit
			if click != nil {
				hit = &PointerHit{X: click.X, Row: row.rect}
			}
			row.opt.Change(1, hit)
			s.play(CueMove)
			s.changed(row)
			return true
		}
		s.opt = OptionsResult{Kind: OptionsItem, Key: row.key, Value: row.opt.Value(), Options: s.options}
	}
	s.play(CueConfirm)
	s.alive = false
	return true
}

func (s *session) cancel() {
	switch s.mode {
	case modeDialog:
		s.dialog = DialogResult{Index: -1, Cancelled: true}
	case modeInput:
		s.input = InputResult{Text: string(s.text), ButtonIndex: -1, Cancelled: true}
	case modeSelect:
		s.sel = SelectResult{Index: -1, Cancelled: true}
	case modeOptions:
		s.opt = OptionsResult{Kind: OptionsCancelled, Options: s.options}
	}
	s.alive = false
}

// inputResult builds the confirmed input. Numeric text that does not parse
// yields 0.
func (s *session) inputResult() InputResult {
	r := InputResult{Text: string(s.text), ButtonIndex: -1}
	if len(s.buttons) > 0 {
		r.ButtonIndex, r.Button = s.button, s.buttons[s.button]
	}
	switch s.inputType {
	case InputInt:
		if n, err := strconv.Atoi(r.Text); err == nil {
			r.Int, r.Float = n, float64(n)
		}
	case InputFloat:
		if f, err := strconv.ParseFloat(r.Text, 64); err == nil {
			r.Float, r.Int = f, int(f)
		}
	}
	return r
}

// acceptRune appends r when the input type and max length allow it.
func (s *session) acceptRune(r rune, sound bool) bool {
	ok := s.maxLength == 0 || len(s.text) < s.maxLength
	if ok {
		switch s.inputType {
		case InputInt:
			ok = isDigit(r) || (r == '-' && len(s.text) == 0)
		case InputFloat:
			ok = isDigit(r) || (r == '-' && len(s.text) == 0) || (r == '.' && !s.hasRune('.'))
		default:
			ok = unicode.IsPrint(r)
		}
	}
	if ok {
		s.text = append(s.text, r)
	}
	if sound {
		if ok {
			s.play(CueKey)
		} else {
			s.play(CueError)
		}
	}
	return ok
}

func (s *session) deleteRune() {
	if len(s.text) == 0 {
		s.play(CueError)
		return
	}
	s.text = s.text[:len(s.text)-1]
	s.play(CueKey)
}

func (s *session) hasRune(r rune) bool {
	for _, c := range s.text {
		if c == r {
			return true
		}
	}
	return false
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func (s *session) wheelChars() []rune {
	switch s.inputType {
	case InputInt:
		return []rune(wheelInt)
	case InputFloat:
		return []rune(wheelFloat)
	}
	return []rune(wheelString)
}

// wheelRune is the character currently offered by the wheel.
func (s *session) wheelRune() rune {
	chars := s.wheelChars()
	return chars[posMod(s.wheelIdx, len(chars))]
}

func (s *session) moveWheel(dx, dy int) {
	if dy != 0 {
		s.wheelIdx = posMod(s.wheelIdx+dy, len(s.wheelChars()))
		s.play(CueMove)
	}
	switch {
	case dx > 0:
		s.acceptRune(s.wheelRune(), true)
	case dx < 0:
		s.deleteRune()
	}
}
