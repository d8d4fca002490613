package marquee

import (
	"fmt"
	"log/slog"
)

// Position anchors a menu within the viewport using keypad-style codes:
// 1 is the top-left corner, 5 the center and 9 the bottom-right corner.
type Position int

const (
	PositionDefault     Position = 0 // center
	PositionTopLeft     Position = 1
	PositionTop         Position = 2
	PositionTopRight    Position = 3
	PositionLeft        Position = 4
	PositionCenter      Position = 5
	PositionRight       Position = 6
	PositionBottomLeft  Position = 7
	PositionBottom      Position = 8
	PositionBottomRight Position = 9
	// PositionPointer centers the menu on the last known pointer location.
	PositionPointer Position = 10
)

// Background describes what is drawn behind a menu each frame. The zero
// value draws nothing, leaving whatever the caller rendered.
type Background struct {
	// Color clears the viewport when non-zero.
	Color Color
	// Image is stretched over the viewport, or repeated when Tiled is set.
	Image Image
	Tiled bool
	// Func draws a custom background. Errors and panics are logged and the
	// background is skipped for that frame.
	Func func(Surface) error
}

// MenuConfig is the styling and wiring shared by every menu opened from a
// Menu. Zero fields take the documented defaults.
type MenuConfig struct {
	// Font is required. TitleFont and TextFont default to Font.
	Font      Font
	TitleFont Font
	TextFont  Font
	// Scale, TitleScale and TextScale multiply the font sizes. Default 1.
	Scale      float64
	TitleScale float64
	TextScale  float64

	// TextColor defaults to white. LabelColor, SelectedColor, TitleColor and
	// BoxTextColor default to TextColor. PressColor tints the focused button
	// panel and defaults to light grey.
	TextColor     Color
	LabelColor    Color
	SelectedColor Color
	TitleColor    Color
	PressColor    Color
	BoxTextColor  Color

	// Spacing is the vertical gap between rows and the padding around content.
	Spacing  float64
	Position Position

	Background Background
	// Dim, when non-zero, is filled over the viewport before the menu is drawn.
	Dim Color

	// Panel surrounds the whole menu; ButtonPanel is drawn behind buttons and
	// SelectedPanel behind the focused row. BoxPanel replaces Box for text
	// input boxes and slider tracks.
	Panel         Panel
	ButtonPanel   Panel
	SelectedPanel Panel
	BoxPanel      Panel
	Box           BoxStyle
	// ButtonPadding is added around button text.
	ButtonPadding Vec2

	// OptionLeft and OptionRight are arrows drawn at the ends of toggle rows
	// and used as page icons in paged selects.
	OptionLeft  Image
	OptionRight Image
	// SelectLeft and SelectRight are drawn beside the focused row. Their
	// widths add to LeftSpace and RightSpace.
	SelectLeft  Image
	SelectRight Image
	LeftSpace   float64
	RightSpace  float64
	// Stretch draws the selected panel across the full row width.
	Stretch bool

	Audio Audio
	// Input and Clock drive the blocking entry points. Clock defaults to a
	// SystemClock.
	Input InputSource
	Clock Clock
	// FPS is the modal loop tick rate. Default DefaultFPS.
	FPS        int
	Controller ControllerMap
	// Translate localizes every displayed string. Results still report the
	// untranslated strings.
	Translate Translator
	Logger    *slog.Logger
	// Buffered draws each frame into an offscreen target owned by the
	// session, created on first draw, when the surface is a TargetFactory.
	Buffered bool
}

// withDefaults returns a copy of c with defaults applied and validates it.
func (c MenuConfig) withDefaults() (MenuConfig, error) {
	if c.Font == nil {
		return c, configError("new menu", "", ErrNoFont)
	}
	if c.TitleFont == nil {
		c.TitleFont = c.Font
	}
	if c.TextFont == nil {
		c.TextFont = c.Font
	}
	for _, s := range []*float64{&c.Scale, &c.TitleScale, &c.TextScale} {
		if *s < 0 {
			return c, configError("new menu", fmt.Sprintf("negative scale %v", *s), nil)
		}
		if *s == 0 {
			*s = 1
		}
	}
	if c.Spacing < 0 {
		return c, configError("new menu", fmt.Sprintf("negative spacing %v", c.Spacing), nil)
	}
	if c.Position < PositionDefault || c.Position > PositionPointer {
		return c, configError("new menu", fmt.Sprintf("invalid position %d", c.Position), nil)
	}
	if c.Position == PositionDefault {
		c.Position = PositionCenter
	}
	if c.FPS < 0 {
		return c, configError("new menu", fmt.Sprintf("negative fps %d", c.FPS), nil)
	}
	if c.FPS == 0 {
		c.FPS = DefaultFPS
	}
	if c.TextColor.IsZero() {
		c.TextColor = ColorWhite
	}
	for _, col := range []*Color{&c.LabelColor, &c.SelectedColor, &c.TitleColor, &c.BoxTextColor} {
		if col.IsZero() {
			*col = c.TextColor
		}
	}
	if c.PressColor.IsZero() {
		c.PressColor = RGB8(200, 200, 200)
	}
	if c.Box == (BoxStyle{}) {
		c.Box = DefaultBoxStyle
	}
	if c.Controller == (ControllerMap{}) {
		c.Controller = DefaultControllerMap()
	}
	if !c.SelectLeft.IsZero() {
		c.LeftSpace += c.SelectLeft.Src.Width
	}
	if !c.SelectRight.IsZero() {
		c.RightSpace += c.SelectRight.Src.Width
	}
	if c.Clock == nil {
		c.Clock = NewSystemClock()
	}
	if c.Translate == nil {
		c.Translate = func(s string) string { return s }
	}
	return c, nil
}

// Menu builds dialog, input, select and options menus on a Surface with
// shared styling. Each call opens an independent session; the Menu itself
// keeps no state between sessions other than the last pointer location.
type Menu struct {
	surface Surface
	cfg     MenuConfig
	log     *slog.Logger
	pointer Vec2
}

// NewMenu validates cfg and creates a Menu drawing on surface.
func NewMenu(surface Surface, cfg MenuConfig) (*Menu, error) {
	if surface == nil {
		return nil, configError("new menu", "nil surface", nil)
	}
	c, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	log := c.Logger
	if log == nil {
		log = Logger()
	}
	return &Menu{surface: surface, cfg: c, log: log}, nil
}

// Config returns the effective configuration with defaults applied.
func (m *Menu) Config() MenuConfig { return m.cfg }

// SetPointer records the pointer location used by PositionPointer.
func (m *Menu) SetPointer(x, y float64) { m.pointer = Vec2{X: x, Y: y} }

// DialogOptions configures a dialog.
type DialogOptions struct {
	// Buttons are laid out left to right.
	Buttons []string
	// Width defaults to the viewport width and is capped at 90% of it.
	Width float64
	// NoCancel ignores escape, quit and clicks outside the menu.
	NoCancel bool
}

// DialogResult reports how a dialog closed. Index is -1 and Button empty when
// a dialog without buttons was confirmed or the dialog was cancelled.
type DialogResult struct {
	Index     int
	Button    string
	Cancelled bool
}

// InputType restricts the characters accepted by a text input.
type InputType uint8

const (
	InputString InputType = iota
	InputInt
	InputFloat
)

// InputOptions configures a text input.
type InputOptions struct {
	// Buttons defaults to a single "OK" when nil.
	Buttons []string
	// Width defaults to 75% of the viewport width.
	Width     float64
	Type      InputType
	MaxLength int
	Initial   string
	NoCancel  bool
	// CharacterWheel enables the controller path: up and down scroll through
	// the accepted characters, right appends and left deletes.
	CharacterWheel bool
}

// InputResult reports the entered text. Int and Float hold the parsed value
// for numeric input types, or 0 when the text does not parse.
type InputResult struct {
	Text        string
	Int         int
	Float       float64
	ButtonIndex int
	Button      string
	Cancelled   bool
}

// SelectOptions configures a select list.
type SelectOptions struct {
	Title    string
	MinWidth float64
	// Focus is the absolute index focused when the list opens.
	Focus    int
	NoCancel bool
}

// SelectResult reports the chosen item by absolute index.
type SelectResult struct {
	Index     int
	Item      string
	Cancelled bool
}

// OptionsResultKind classifies an options menu result.
type OptionsResultKind uint8

const (
	// OptionsChanged reports a mutation; the menu stays open.
	OptionsChanged OptionsResultKind = iota + 1
	// OptionsItem reports that an item row closed the menu.
	OptionsItem
	// OptionsButton reports that a button closed the menu.
	OptionsButton
	// OptionsCancelled reports that the menu was cancelled.
	OptionsCancelled
)

// OptionsOptions configures an options menu.
type OptionsOptions struct {
	Title    string
	Buttons  []string
	Width    float64
	NoCancel bool
	// OnChange is called with every mutation while the menu is open.
	OnChange func(OptionsResult)
}

// OptionsResult reports a mutation or the way an options menu closed.
type OptionsResult struct {
	Kind    OptionsResultKind
	Key     string
	Value   any
	Button  string
	Options *OptionSet
}

// Session is a menu driven one tick at a time. Modeless callers call Step
// (or Handle then Draw) once per frame until Alive reports false.
type Session[R any] struct {
	s      *session
	result func(*session) R
}

// Type aliases for the four session kinds.
type (
	DialogSession  = Session[DialogResult]
	InputSession   = Session[InputResult]
	SelectSession  = Session[SelectResult]
	OptionsSession = Session[OptionsResult]
)

// Handle resolves events and applies them. It reports a result when the
// session closed this tick or, for options menus, when a value changed.
func (x *Session[R]) Handle(events []Event) (R, bool) {
	produced := x.s.handle(events)
	return x.result(x.s), produced
}

// Draw renders the session. Failures are logged, never returned.
func (x *Session[R]) Draw() { x.s.draw() }

// Step handles events then draws, the required order within one tick.
func (x *Session[R]) Step(events []Event) (R, bool) {
	r, ok := x.Handle(events)
	x.s.draw()
	return r, ok
}

// Alive reports whether the session is still open.
func (x *Session[R]) Alive() bool { return x.s.alive }

// Area returns the menu rectangle computed when the session opened.
func (x *Session[R]) Area() Rect { return x.s.area }

// Result returns the most recent result.
func (x *Session[R]) Result() R { return x.result(x.s) }

// Close ends the session without a result.
func (x *Session[R]) Close() { x.s.alive = false }

// OpenDialog opens a modeless dialog showing word-wrapped text.
func (m *Menu) OpenDialog(text, title string, opts DialogOptions) (*DialogSession, error) {
	s := m.newSession(modeDialog, title, opts.Buttons, !opts.NoCancel)
	s.layoutDialog(text, opts.Width)
	s.dialog = DialogResult{Index: -1}
	return &DialogSession{s: s, result: func(s *session) DialogResult { return s.dialog }}, nil
}

// OpenInput opens a modeless single-line text input.
func (m *Menu) OpenInput(title string, opts InputOptions) (*InputSession, error) {
	buttons := opts.Buttons
	if buttons == nil {
		buttons = []string{"OK"}
	}
	if opts.Type > InputFloat {
		return nil, configError("open input", fmt.Sprintf("invalid input type %d", opts.Type), nil)
	}
	if opts.MaxLength < 0 {
		return nil, configError("open input", fmt.Sprintf("negative max length %d", opts.MaxLength), nil)
	}
	s := m.newSession(modeInput, title, buttons, !opts.NoCancel)
	s.inputType = opts.Type
	s.maxLength = opts.MaxLength
	s.wheel = opts.CharacterWheel
	for _, r := range opts.Initial {
		s.acceptRune(r, false)
	}
	s.layoutInput(opts.Width)
	s.input = InputResult{ButtonIndex: -1}
	return &InputSession{s: s, result: func(s *session) InputResult { return s.input }}, nil
}

// OpenSelect opens a modeless select list. Lists longer than fit in 90% of
// the viewport are paged.
func (m *Menu) OpenSelect(items []string, opts SelectOptions) (*SelectSession, error) {
	if len(items) == 0 {
		return nil, configError("open select", "no items", nil)
	}
	s := m.newSession(modeSelect, opts.Title, nil, !opts.NoCancel)
	s.items = items
	s.layoutSelect(opts.MinWidth)
	if opts.Focus > 0 && opts.Focus < len(items) {
		if s.paged() {
			s.page = opts.Focus / s.perPage
		}
		s.focus = opts.Focus - s.page*s.perPage
	}
	s.sel = SelectResult{Index: -1}
	return &SelectSession{s: s, result: func(s *session) SelectResult { return s.sel }}, nil
}

// OpenOptions opens a modeless options menu over set. Options are mutated in
// place.
func (m *Menu) OpenOptions(set *OptionSet, opts OptionsOptions) (*OptionsSession, error) {
	if set == nil || set.Len() == 0 {
		return nil, configError("open options", "no options", nil)
	}
	s := m.newSession(modeOptions, opts.Title, opts.Buttons, !opts.NoCancel)
	s.options = set
	s.onChange = opts.OnChange
	s.layoutOptions(opts.Width)
	s.opt = OptionsResult{Options: set}
	return &OptionsSession{s: s, result: func(s *session) OptionsResult { return s.opt }}, nil
}

// Dialog shows a dialog and blocks until it closes.
func (m *Menu) Dialog(text, title string, opts DialogOptions) (DialogResult, error) {
	x, err := m.OpenDialog(text, title, opts)
	if err != nil {
		return DialogResult{Index: -1}, err
	}
	return runModal(m, x)
}

// Input shows a text input and blocks until it closes.
func (m *Menu) Input(title string, opts InputOptions) (InputResult, error) {
	x, err := m.OpenInput(title, opts)
	if err != nil {
		return InputResult{ButtonIndex: -1}, err
	}
	return runModal(m, x)
}

// Select shows a select list and blocks until it closes.
func (m *Menu) Select(items []string, opts SelectOptions) (SelectResult, error) {
	x, err := m.OpenSelect(items, opts)
	if err != nil {
		return SelectResult{Index: -1}, err
	}
	return runModal(m, x)
}

// Options shows an options menu and blocks until it closes. Mutations are
// reported through opts.OnChange; the returned result describes the close.
func (m *Menu) Options(set *OptionSet, opts OptionsOptions) (OptionsResult, error) {
	x, err := m.OpenOptions(set, opts)
	if err != nil {
		return OptionsResult{Options: set}, err
	}
	return runModal(m, x)
}

// FiniteInput is implemented by input sources that can run out of events,
// such as scripted input. A modal loop whose source is exhausted returns
// ErrCancelled.
type FiniteInput interface {
	Exhausted() bool
}

// runModal drives a session until it closes: poll, resolve and mutate, draw,
// present, wait.
func runModal[R any](m *Menu, x *Session[R]) (R, error) {
	if m.cfg.Input == nil {
		return x.Result(), configError("run menu", "no input source", ErrCancelled)
	}
	presenter, _ := m.surface.(Presenter)
	finite, _ := m.cfg.Input.(FiniteInput)
	for x.Alive() {
		x.Step(m.cfg.Input.Poll())
		if presenter != nil {
			if err := presenter.Present(); err != nil {
				m.log.Error("menu: present failed", "error", err)
			}
		}
		if !x.Alive() {
			break
		}
		if finite != nil && finite.Exhausted() {
			x.Close()
			return x.Result(), ErrCancelled
		}
		m.cfg.Clock.Wait(m.cfg.FPS)
	}
	return x.Result(), nil
}
