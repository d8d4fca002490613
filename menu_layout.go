package marquee

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"unicode/utf8"
)

const (
	viewportFraction = 0.9
	ellipsis         = "…"
)

type menuMode uint8

const (
	modeDialog menuMode = iota
	modeInput
	modeSelect
	modeOptions
)

func (m menuMode) String() string {
	switch m {
	case modeDialog:
		return "dialog"
	case modeInput:
		return "input"
	case modeSelect:
		return "select"
	case modeOptions:
		return "options"
	}
	return "unknown"
}

// optionRow is one laid-out option.
type optionRow struct {
	key  string
	opt  *Option
	rect Rect
}

// session is the state shared by all menu kinds. Layout fields are computed
// once when the session opens.
type session struct {
	menu *Menu
	cfg  *MenuConfig
	log  *slog.Logger
	mode menuMode

	title     string
	buttons   []string
	canCancel bool
	alive     bool
	ticks     int

	area     Rect
	content  Rect
	titleY   float64
	titleLH  float64
	lineH    float64
	buttonsR []Rect

	// focus indexes focusable rows; in dialog and input modes, and on the
	// options button sentinel, button is the focused button.
	focus   int
	button  int
	pointer Vec2
	pressed bool
	axisX   int
	axisY   int

	lines []string
	textY float64

	text      []rune
	inputType InputType
	maxLength int
	wheel     bool
	wheelIdx  int
	box       Rect

	items     []string
	perPage   int
	page      int
	rowsY     float64
	pageLeft  Rect
	pageRight Rect

	options     *OptionSet
	onChange    func(OptionsResult)
	rows        []optionRow
	interactive []int

	dialog DialogResult
	input  InputResult
	sel    SelectResult
	opt    OptionsResult

	target   Target
	noTarget bool
}

func (m *Menu) newSession(mode menuMode, title string, buttons []string, canCancel bool) *session {
	s := &session{
		menu:      m,
		cfg:       &m.cfg,
		log:       m.log,
		mode:      mode,
		title:     title,
		buttons:   buttons,
		canCancel: canCancel,
		alive:     true,
		pointer:   m.pointer,
	}
	s.titleLH = m.cfg.TitleFont.LineHeight() * m.cfg.TitleScale
	s.lineH = m.cfg.TextFont.LineHeight() * m.cfg.TextScale
	return s
}

func (s *session) tr(str string) string { return s.cfg.Translate(str) }

func (s *session) textWidth(str string) float64 {
	w, _ := s.cfg.TextFont.MeasureString(s.tr(str))
	return w * s.cfg.TextScale
}

func (s *session) titleWidth(str string) float64 {
	w, _ := s.cfg.TitleFont.MeasureString(s.tr(str))
	return w * s.cfg.TitleScale
}

func (s *session) buttonWidth(str string) float64 {
	w, _ := s.cfg.Font.MeasureString(s.tr(str))
	return w*s.cfg.Scale + s.cfg.ButtonPadding.X*2
}

func (s *session) buttonHeight() float64 {
	h := s.cfg.Font.LineHeight()*s.cfg.Scale + s.cfg.ButtonPadding.Y*2
	if s.cfg.ButtonPanel != nil {
		h = math.Max(h, s.cfg.ButtonPanel.MinHeight())
	}
	return h
}

// titleBlock is the height taken by the title line and its spacing.
func (s *session) titleBlock(title string) float64 {
	if title == "" {
		return 0
	}
	return s.titleLH + s.cfg.Spacing
}

// buttonBlock is the height taken by the button row and its spacing.
func (s *session) buttonBlock() float64 {
	if len(s.buttons) == 0 {
		return 0
	}
	return s.buttonHeight() + s.cfg.Spacing
}

// buttonsWidth is the width needed to lay out every button side by side.
func (s *session) buttonsWidth() float64 {
	var w float64
	for _, b := range s.buttons {
		w = math.Max(w, s.buttonWidth(b))
	}
	n := float64(len(s.buttons))
	return w*n + s.cfg.Spacing*(n-1)
}

func (s *session) viewport() Rect { return s.menu.surface.Bounds() }

// place sizes the area around content of w by h, clamps it to 90% of the
// viewport height, anchors it and lays out the shared title and buttons.
func (s *session) place(w, h float64) {
	vp := s.viewport()
	sp := s.cfg.Spacing
	aw := math.Min(w+sp*2, vp.Width)
	ah := math.Min(h+sp*2, math.Floor(vp.Height*viewportFraction))
	s.area = s.anchor(vp, aw, ah)
	s.content = s.area.Inflate(-sp*2, -sp*2)
	s.titleY = s.content.Y

	n := len(s.buttons)
	if n == 0 {
		return
	}
	bh := s.buttonHeight()
	y := s.content.Bottom() - bh
	s.buttonsR = make([]Rect, n)
	for i, b := range s.buttons {
		cx := s.content.X + s.content.Width*float64(2*i+1)/float64(2*n)
		s.buttonsR[i] = Rect{Width: s.buttonWidth(b), Height: bh}.CenteredAt(cx, y+bh/2)
	}
}

// anchor positions a w by h rectangle by keypad code or pointer, kept inside vp.
func (s *session) anchor(vp Rect, w, h float64) Rect {
	r := Rect{Width: w, Height: h}
	if s.cfg.Position == PositionPointer {
		r = r.CenteredAt(s.pointer.X, s.pointer.Y)
	} else {
		code := int(s.cfg.Position) - 1
		col, row := code%3, code/3
		r.X = vp.X + float64(col)*(vp.Width-w)/2
		r.Y = vp.Y + float64(row)*(vp.Height-h)/2
	}
	r.X = math.Max(vp.X, math.Min(r.X, vp.Right()-w))
	r.Y = math.Max(vp.Y, math.Min(r.Y, vp.Bottom()-h))
	return r
}

func (s *session) layoutDialog(text string, width float64) {
	vp := s.viewport()
	sp := s.cfg.Spacing
	if width <= 0 {
		width = vp.Width
	}
	width = math.Min(width, vp.Width*viewportFraction)
	cw := math.Max(width-sp*2, math.Max(s.titleWidth(s.title), s.buttonsWidth()))
	cw = math.Min(cw, vp.Width-sp*2)

	maxH := math.Floor(vp.Height*viewportFraction) - sp*2 - s.titleBlock(s.title) - s.buttonBlock()
	lines := wrapText(s.tr(text), cw, s.textWidthRaw)
	if s.lineH > 0 {
		if limit := max(int(maxH/s.lineH), 0); len(lines) > limit {
			s.log.Debug("menu: dialog text truncated", "lines", len(lines), "limit", limit)
			lines = lines[:limit]
		}
	}
	s.lines = lines
	h := s.titleBlock(s.title) + float64(len(lines))*s.lineH + s.buttonBlock()
	s.place(cw, h)
	s.textY = s.content.Y + s.titleBlock(s.title)
}

// textWidthRaw measures already translated text.
func (s *session) textWidthRaw(str string) float64 {
	w, _ := s.cfg.TextFont.MeasureString(str)
	return w * s.cfg.TextScale
}

// wrapText greedily fills lines narrower than width. Words that cannot fit on
// a line of their own keep their tail behind a leading ellipsis.
func wrapText(text string, width float64, measure func(string) float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := ""
		for _, w := range words {
			cand := w
			if line != "" {
				cand = line + " " + w
			}
			if measure(cand) < width {
				line = cand
				continue
			}
			if line != "" {
				lines = append(lines, line)
			}
			line = w
			if measure(w) >= width {
				line = truncateLeft(w, width, measure)
			}
		}
		lines = append(lines, line)
	}
	return lines
}

// truncateLeft drops leading runes of w until an ellipsis plus the rest is
// narrower than width.
func truncateLeft(w string, width float64, measure func(string) float64) string {
	for rest := w; rest != ""; {
		_, size := utf8.DecodeRuneInString(rest)
		rest = rest[size:]
		if measure(ellipsis+rest) < width {
			return ellipsis + rest
		}
	}
	return ellipsis
}

func (s *session) boxHeight() float64 {
	h := s.lineH + s.cfg.Box.Thickness*2
	if s.cfg.BoxPanel != nil {
		h = math.Max(h, s.cfg.BoxPanel.MinHeight())
	}
	return h
}

func (s *session) layoutInput(width float64) {
	vp := s.viewport()
	sp := s.cfg.Spacing
	if width <= 0 {
		width = vp.Width * 0.75
	}
	width = math.Min(width, vp.Width*viewportFraction)
	cw := math.Max(width-sp*2, math.Max(s.titleWidth(s.title), s.buttonsWidth()))
	cw = math.Min(cw, vp.Width-sp*2)
	bh := s.boxHeight()
	s.place(cw, s.titleBlock(s.title)+bh+sp+s.buttonBlock())
	s.box = Rect{X: s.content.X, Y: s.content.Y + s.titleBlock(s.title), Width: s.content.Width, Height: bh}
}

// paged reports whether a select list spans more than one page.
func (s *session) paged() bool { return len(s.items) > s.perPage }

func (s *session) pageCount() int {
	return (len(s.items) + s.perPage - 1) / s.perPage
}

// pageLen is the number of items on the current page.
func (s *session) pageLen() int {
	return min(s.perPage, len(s.items)-s.page*s.perPage)
}

// pageTitle is the title drawn above a select list; untitled paged lists
// show the page number.
func (s *session) pageTitle() string {
	if s.title == "" && s.paged() {
		return s.pageTitleFor(s.page)
	}
	return s.tr(s.title)
}

func (s *session) perPageFor(titleBlock float64) int {
	avail := math.Floor(s.viewport().Height*viewportFraction) - titleBlock - s.cfg.Spacing*2
	step := s.lineH + s.cfg.Spacing
	if step <= 0 {
		return max(len(s.items), 1)
	}
	return max(1, int((avail+s.cfg.Spacing)/step))
}

func (s *session) pageIconWidth() float64 {
	w := s.textWidthRaw("<")
	if !s.cfg.OptionLeft.IsZero() {
		w = math.Max(w, s.cfg.OptionLeft.Src.Width)
	}
	return w
}

func (s *session) layoutSelect(minWidth float64) {
	sp := s.cfg.Spacing
	tb := s.titleBlock(s.title)
	s.perPage = s.perPageFor(tb)
	if s.paged() && s.title == "" {
		tb = s.titleLH + sp
		s.perPage = s.perPageFor(tb)
	}

	w := minWidth
	for _, it := range s.items {
		w = math.Max(w, s.textWidth(it)+s.cfg.LeftSpace+s.cfg.RightSpace)
	}
	titleW := s.titleWidth(s.title)
	if s.paged() {
		titleW = math.Max(titleW, s.titleWidthRaw(s.pageTitleFor(s.pageCount()-1)))
		titleW += (s.pageIconWidth() + sp) * 2
	}
	w = math.Max(w, titleW)

	rows := min(s.perPage, len(s.items))
	h := tb + float64(rows)*s.lineH + float64(max(rows-1, 0))*sp
	s.place(w, h)
	s.rowsY = s.content.Y + tb
	if s.paged() {
		iw := s.pageIconWidth()
		s.pageLeft = Rect{X: s.content.X, Y: s.titleY, Width: iw, Height: s.titleLH}
		s.pageRight = Rect{X: s.content.Right() - iw, Y: s.titleY, Width: iw, Height: s.titleLH}
	}
}

func (s *session) titleWidthRaw(str string) float64 {
	w, _ := s.cfg.TitleFont.MeasureString(str)
	return w * s.cfg.TitleScale
}

func (s *session) pageTitleFor(page int) string {
	return fmt.Sprintf("%d/%d", page+1, s.pageCount())
}

// selectRow returns the rectangle of row i on the current page.
func (s *session) selectRow(i int) Rect {
	return Rect{
		X:      s.content.X,
		Y:      s.rowsY + float64(i)*(s.lineH+s.cfg.Spacing),
		Width:  s.content.Width,
		Height: s.lineH,
	}
}

// arrowsWidth is the extra width taken by toggle arrows.
func (s *session) arrowsWidth() float64 {
	var w float64
	for _, img := range []Image{s.cfg.OptionLeft, s.cfg.OptionRight} {
		if !img.IsZero() {
			w += img.Src.Width + s.cfg.Spacing
		}
	}
	return w
}

func (s *session) layoutOptions(width float64) {
	sp := s.cfg.Spacing
	vp := s.viewport()
	w := math.Max(width, math.Max(s.titleWidth(s.title), s.buttonsWidth()))
	heights := make([]float64, s.options.Len())
	for i := range s.options.Len() {
		_, o := s.options.At(i)
		heights[i] = s.lineH
		label := s.textWidth(o.Text)
		switch o.Kind {
		case OptionSpacer:
			heights[i] = s.lineH * o.Amount
		case OptionToggle:
			var widest float64
			for _, c := range o.Choices {
				widest = math.Max(widest, s.textWidth(o.Prefix+c+o.Suffix))
			}
			if label > 0 {
				label += sp
			}
			w = math.Max(w, label+widest+s.arrowsWidth())
		case OptionSlider:
			if label > 0 {
				label += sp
			}
			w = math.Max(w, label+s.lineH*4)
		default:
			w = math.Max(w, label)
		}
	}
	w = math.Min(w+s.cfg.LeftSpace+s.cfg.RightSpace, vp.Width-sp*2)

	h := s.titleBlock(s.title) + s.buttonBlock()
	for i, rh := range heights {
		h += rh
		if i > 0 {
			h += sp
		}
	}
	s.place(w, h)

	y := s.content.Y + s.titleBlock(s.title)
	s.rows = make([]optionRow, s.options.Len())
	for i := range s.options.Len() {
		k, o := s.options.At(i)
		s.rows[i] = optionRow{key: k, opt: o, rect: Rect{X: s.content.X, Y: y, Width: s.content.Width, Height: heights[i]}}
		y += heights[i] + sp
	}
	s.interactive = s.options.Interactive()
}

// valueRect is the part of an option row right of its label, where toggle
// choices and slider tracks are drawn. Pointer hits map over the whole row.
func (s *session) valueRect(r optionRow) Rect {
	inner := Rect{X: r.rect.X + s.cfg.LeftSpace, Y: r.rect.Y, Width: r.rect.Width - s.cfg.LeftSpace - s.cfg.RightSpace, Height: r.rect.Height}
	if r.opt.Text == "" || !r.opt.Mutable() {
		return inner
	}
	lw := s.textWidth(r.opt.Text) + s.cfg.Spacing
	inner.X += lw
	inner.Width = math.Max(inner.Width-lw, 0)
	return inner
}

// focusCount is the number of focus positions, including the options button
// sentinel.
func (s *session) focusCount() int {
	switch s.mode {
	case modeSelect:
		return s.pageLen()
	case modeOptions:
		n := len(s.interactive)
		if len(s.buttons) > 0 {
			n++
		}
		return n
	}
	return 0
}

// onButtons reports whether options focus is on the button sentinel.
func (s *session) onButtons() bool {
	return s.mode == modeOptions && len(s.buttons) > 0 && s.focus == len(s.interactive)
}

// focusRect returns the rectangle of focus position i.
func (s *session) focusRect(i int) (Rect, bool) {
	switch s.mode {
	case modeSelect:
		if i >= 0 && i < s.pageLen() {
			return s.selectRow(i), true
		}
	case modeOptions:
		if i >= 0 && i < len(s.interactive) {
			return s.rows[s.interactive[i]].rect, true
		}
	}
	return Rect{}, false
}
