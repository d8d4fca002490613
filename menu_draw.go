package marquee

import "unicode/utf8"

// painter forwards draw calls to a Surface until the first failure, after
// which every call is a no-op and err holds the failure.
type painter struct {
	s   Surface
	err error
}

func (p *painter) fill(r Rect, c Color) {
	if p.err == nil {
		p.err = p.s.FillRect(r, c)
	}
}

func (p *painter) text(f Font, str string, pos Vec2, scale float64, c Color) {
	if p.err == nil && str != "" {
		p.err = p.s.DrawText(f, str, pos, scale, c)
	}
}

func (p *painter) image(img Image, dst Rect) {
	if p.err == nil && !img.IsZero() {
		p.err = p.s.DrawImage(img, dst, DefaultDrawOptions())
	}
}

func (p *painter) panel(pn Panel, r Rect, tint *Color) {
	if p.err == nil {
		p.err = pn.Draw(p.s, r, tint)
	}
}

func (p *painter) surround(pn Panel, r Rect) {
	if p.err == nil {
		p.err = pn.Surround(p.s, r)
	}
}

// draw renders the session. Background failures skip the background; any
// other surface failure or panic skips the rest of the frame. All are logged.
func (s *session) draw() {
	if !s.alive {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("menu: draw failed", "mode", s.mode.String(),
				"error", &RenderTargetError{Op: "menu " + s.mode.String(), Err: recoverAsError(r)})
		}
	}()
	screen := s.menu.surface
	s.drawBackground(screen)

	dst := screen
	t := s.buffer()
	if t != nil {
		if err := t.Clear(); err != nil {
			s.log.Error("menu: clear buffer failed", "mode", s.mode.String(), "error", err)
			t = nil
		} else {
			dst = t
		}
	}
	p := &painter{s: dst}
	s.drawMenu(p)
	if t != nil && p.err == nil {
		p.s = screen
		p.image(t.Image(), screen.Bounds())
	}
	if p.err != nil {
		s.log.Error("menu: draw failed", "mode", s.mode.String(),
			"error", &RenderTargetError{Op: "menu " + s.mode.String(), Err: p.err})
	}
}

// buffer returns the session's offscreen target, creating it on first use.
func (s *session) buffer() Target {
	if !s.cfg.Buffered || s.noTarget {
		return nil
	}
	if s.target != nil {
		return s.target
	}
	tf, ok := s.menu.surface.(TargetFactory)
	if !ok {
		s.log.Warn("menu: surface cannot allocate targets, drawing unbuffered")
		s.noTarget = true
		return nil
	}
	vp := s.viewport()
	t, err := tf.NewTarget(int(vp.Width), int(vp.Height))
	if err != nil {
		s.log.Error("menu: allocate buffer failed", "error", err)
		s.noTarget = true
		return nil
	}
	s.target = t
	return t
}

func (s *session) drawBackground(screen Surface) {
	bg := s.cfg.Background
	vp := screen.Bounds()
	p := &painter{s: screen}
	if !bg.Color.IsZero() {
		p.fill(vp, bg.Color)
	}
	if !bg.Image.IsZero() {
		if bg.Tiled && bg.Image.Src.Width > 0 && bg.Image.Src.Height > 0 {
			w, h := bg.Image.Src.Width, bg.Image.Src.Height
			for y := vp.Y; y < vp.Bottom(); y += h {
				for x := vp.X; x < vp.Right(); x += w {
					p.image(bg.Image, Rect{X: x, Y: y, Width: w, Height: h})
				}
			}
		} else {
			p.image(bg.Image, vp)
		}
	}
	if p.err != nil {
		s.log.Error("menu: background failed", "error", &RenderTargetError{Op: "background", Err: p.err})
	}
	if bg.Func != nil {
		if err := callBackground(bg.Func, screen); err != nil {
			s.log.Error("menu: background failed", "error", err)
		}
	}
	if !s.cfg.Dim.IsZero() {
		if err := screen.FillRect(vp, s.cfg.Dim); err != nil {
			s.log.Error("menu: dim failed", "error", err)
		}
	}
}

// callBackground runs a user background drawer, converting errors and panics
// into a BackgroundCallbackError.
func callBackground(fn func(Surface) error, screen Surface) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &BackgroundCallbackError{Err: recoverAsError(r)}
		}
	}()
	if e := fn(screen); e != nil {
		return &BackgroundCallbackError{Err: e}
	}
	return nil
}

func (s *session) defaultPanel() Panel {
	return RectPanel{Fill: s.cfg.Box.Fill, Border: s.cfg.Box.Outline, Thickness: s.cfg.Box.Thickness}
}

func (s *session) boxPanel() Panel {
	if s.cfg.BoxPanel != nil {
		return s.cfg.BoxPanel
	}
	return s.defaultPanel()
}

func (s *session) drawMenu(p *painter) {
	if s.cfg.Panel != nil {
		p.surround(s.cfg.Panel, s.area)
	} else {
		p.surround(s.defaultPanel(), s.area)
	}
	s.drawTitle(p)
	switch s.mode {
	case modeDialog:
		for i, line := range s.lines {
			p.text(s.cfg.TextFont, line, Vec2{X: s.content.X, Y: s.textY + float64(i)*s.lineH}, s.cfg.TextScale, s.cfg.TextColor)
		}
	case modeInput:
		s.drawInput(p)
	case modeSelect:
		s.drawSelect(p)
	case modeOptions:
		s.drawOptions(p)
	}
	s.drawButtons(p)
}

func (s *session) drawTitle(p *painter) {
	title := s.tr(s.title)
	if s.mode == modeSelect {
		title = s.pageTitle()
	}
	if title == "" {
		return
	}
	w := s.titleWidthRaw(title)
	p.text(s.cfg.TitleFont, title, Vec2{X: s.content.Center().X - w/2, Y: s.titleY}, s.cfg.TitleScale, s.cfg.TitleColor)
	if s.mode == modeSelect && s.paged() {
		s.drawArrow(p, s.cfg.OptionLeft, "<", s.pageLeft)
		s.drawArrow(p, s.cfg.OptionRight, ">", s.pageRight)
	}
}

// drawArrow draws img centered in r, or fallback text when no image is set.
func (s *session) drawArrow(p *painter, img Image, fallback string, r Rect) {
	if !img.IsZero() {
		p.image(img, img.Rect().CenteredAt(r.Center().X, r.Center().Y))
		return
	}
	w := s.textWidthRaw(fallback)
	p.text(s.cfg.TextFont, fallback, Vec2{X: r.Center().X - w/2, Y: r.Y}, s.cfg.TextScale, s.cfg.TextColor)
}

func (s *session) drawButtons(p *painter) {
	for i, r := range s.buttonsR {
		focused := i == s.button && (s.mode != modeOptions || s.onButtons())
		var tint *Color
		if focused {
			tint = &s.cfg.PressColor
		}
		if s.cfg.ButtonPanel != nil {
			p.panel(s.cfg.ButtonPanel, r, tint)
		} else {
			p.panel(s.defaultPanel(), r, tint)
		}
		label := s.tr(s.buttons[i])
		w, _ := s.cfg.Font.MeasureString(label)
		c := s.cfg.TextColor
		if focused {
			c = s.cfg.SelectedColor
		}
		lh := s.cfg.Font.LineHeight() * s.cfg.Scale
		p.text(s.cfg.Font, label, Vec2{X: r.Center().X - w*s.cfg.Scale/2, Y: r.Center().Y - lh/2}, s.cfg.Scale, c)
	}
}

func (s *session) drawInput(p *painter) {
	p.panel(s.boxPanel(), s.box, nil)
	inset := s.cfg.Box.Thickness + 2
	inner := s.box.Inflate(-inset*2, 0)
	shown := string(s.text)
	if s.wheel {
		shown += string(s.wheelRune())
	}
	shown = fitTail(shown, inner.Width, s.textWidthRaw)
	y := s.box.Center().Y - s.lineH/2
	p.text(s.cfg.TextFont, shown, Vec2{X: inner.X, Y: y}, s.cfg.TextScale, s.cfg.BoxTextColor)
	if half := max(s.cfg.FPS/2, 1); s.ticks%(half*2) < half {
		x := inner.X + s.textWidthRaw(shown)
		p.fill(Rect{X: x, Y: y, Width: 2, Height: s.lineH}, s.cfg.BoxTextColor)
	}
}

// fitTail drops leading runes until str is narrower than width.
func fitTail(str string, width float64, measure func(string) float64) string {
	for str != "" && measure(str) >= width {
		_, size := utf8.DecodeRuneInString(str)
		str = str[size:]
	}
	return str
}

// drawSelected marks a focused row whose text starts at x and is w wide.
func (s *session) drawSelected(p *painter, r Rect, x, w float64) {
	if s.cfg.SelectedPanel != nil {
		hl := Rect{X: x, Y: r.Y, Width: w, Height: r.Height}
		if s.cfg.Stretch {
			hl = r
		}
		p.panel(s.cfg.SelectedPanel, hl, nil)
	}
	if img := s.cfg.SelectLeft; !img.IsZero() {
		p.image(img, img.Rect().CenteredAt(r.X+img.Src.Width/2, r.Center().Y))
	}
	if img := s.cfg.SelectRight; !img.IsZero() {
		p.image(img, img.Rect().CenteredAt(r.Right()-img.Src.Width/2, r.Center().Y))
	}
}

func (s *session) drawSelect(p *painter) {
	for i := range s.pageLen() {
		item := s.tr(s.items[s.page*s.perPage+i])
		r := s.selectRow(i)
		x := r.X + s.cfg.LeftSpace
		c := s.cfg.TextColor
		if i == s.focus {
			s.drawSelected(p, r, x, s.textWidthRaw(item))
			c = s.cfg.SelectedColor
		}
		p.text(s.cfg.TextFont, item, Vec2{X: x, Y: r.Y}, s.cfg.TextScale, c)
	}
}

func (s *session) drawOptions(p *painter) {
	focused, hasFocus := s.focusedRow()
	for _, row := range s.rows {
		o := row.opt
		if o.Kind == OptionSpacer {
			continue
		}
		r := row.rect
		x := r.X + s.cfg.LeftSpace
		label := s.tr(o.Text)
		c := s.cfg.TextColor
		if o.Kind == OptionLabel {
			c = s.cfg.LabelColor
		}
		isFocused := hasFocus && focused.key == row.key
		if isFocused {
			s.drawSelected(p, r, x, s.textWidthRaw(label))
			c = s.cfg.SelectedColor
		}
		p.text(s.cfg.TextFont, label, Vec2{X: x, Y: r.Y}, s.cfg.TextScale, c)

		v := s.valueRect(row)
		switch o.Kind {
		case OptionToggle:
			if !s.cfg.OptionLeft.IsZero() {
				img := s.cfg.OptionLeft
				p.image(img, img.Rect().CenteredAt(v.X+img.Src.Width/2, v.Center().Y))
			}
			if !s.cfg.OptionRight.IsZero() {
				img := s.cfg.OptionRight
				p.image(img, img.Rect().CenteredAt(v.Right()-img.Src.Width/2, v.Center().Y))
			}
			choice := s.tr(o.Prefix + o.Choice() + o.Suffix)
			w := s.textWidthRaw(choice)
			p.text(s.cfg.TextFont, choice, Vec2{X: v.Center().X - w/2, Y: r.Y}, s.cfg.TextScale, c)
		case OptionSlider:
			track := Rect{X: v.X, Y: v.Center().Y - s.lineH/4, Width: v.Width, Height: s.lineH / 2}
			p.panel(s.boxPanel(), track, nil)
			fill := track.Inflate(-s.cfg.Box.Thickness*2, -s.cfg.Box.Thickness*2)
			fill.Width *= o.Fraction()
			if fill.Width > 0 && fill.Height > 0 {
				p.fill(fill, c)
			}
			num := o.Display()
			w := s.textWidthRaw(num)
			p.text(s.cfg.TextFont, num, Vec2{X: v.Center().X - w/2, Y: r.Y}, s.cfg.TextScale, s.cfg.BoxTextColor)
		}
	}
}
