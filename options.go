package marquee

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// OptionKind classifies a row in an options menu.
type OptionKind uint8

const (
	OptionLabel  OptionKind = iota // static text, not focusable
	OptionItem                     // selectable entry that closes the menu
	OptionToggle                   // cycles through a list of choices
	OptionSlider                   // numeric value stepped within [Min, Max]
	OptionSpacer                   // vertical gap, not focusable
)

var optionKindNames = [...]string{"label", "item", "toggle", "slider", "spacer"}

// String returns the lowercase kind name used in option files.
func (k OptionKind) String() string {
	if int(k) < len(optionKindNames) {
		return optionKindNames[k]
	}
	return "unknown"
}

// parseOptionKind accepts the kind names used in option files.
func parseOptionKind(s string) (OptionKind, bool) {
	switch strings.ToLower(s) {
	case "label":
		return OptionLabel, true
	case "item":
		return OptionItem, true
	case "toggle", "option":
		return OptionToggle, true
	case "slider":
		return OptionSlider, true
	case "spacer":
		return OptionSpacer, true
	}
	return 0, false
}

// Slider defaults applied when a descriptor leaves the fields unset.
const (
	DefaultSliderMin  = 0
	DefaultSliderMax  = 100
	DefaultSliderStep = 5
)

// Option is one mutable row of an options menu. Toggle and slider values are
// always derived from Selected or the clamped slider value; there is no
// independent value field to drift out of sync.
type Option struct {
	Kind OptionKind
	// Text is the row label.
	Text string

	// Choices and Selected describe a toggle.
	Choices  []string
	Selected int
	// Prefix and Suffix are drawn around the selected choice.
	Prefix, Suffix string

	// Min, Max and Step describe a slider.
	Min, Max, Step float64
	value          float64

	// Amount is a spacer's height in line-height units.
	Amount float64
}

// Label creates a static text row.
func Label(text string) *Option {
	return &Option{Kind: OptionLabel, Text: text}
}

// Item creates a terminal row: confirming it closes the menu.
func Item(text string) *Option {
	return &Option{Kind: OptionItem, Text: text}
}

// Toggle creates a row cycling through choices, starting at the first.
func Toggle(text string, choices ...string) *Option {
	return &Option{Kind: OptionToggle, Text: text, Choices: choices}
}

// Slider creates a numeric row. value is clamped to [min, max]; a max below
// min is swapped.
func Slider(text string, min, max, step, value float64) *Option {
	if max < min {
		min, max = max, min
	}
	o := &Option{Kind: OptionSlider, Text: text, Min: min, Max: max, Step: step}
	o.SetValue(value)
	return o
}

// DefaultSlider creates a slider with the default range and step, starting at
// the midpoint.
func DefaultSlider(text string) *Option {
	return Slider(text, DefaultSliderMin, DefaultSliderMax, DefaultSliderStep,
		DefaultSliderMin+(DefaultSliderMax-DefaultSliderMin)/2)
}

// Spacer creates a vertical gap of amount line heights.
func Spacer(amount float64) *Option {
	if amount <= 0 {
		amount = 1
	}
	return &Option{Kind: OptionSpacer, Amount: amount}
}

// WithAffixes sets the text drawn before and after a toggle's choice.
func (o *Option) WithAffixes(prefix, suffix string) *Option {
	o.Prefix, o.Suffix = prefix, suffix
	return o
}

// WithSelected selects choice i, wrapped into range.
func (o *Option) WithSelected(i int) *Option {
	if n := len(o.Choices); n > 0 {
		o.Selected = posMod(i, n)
	}
	return o
}

// Interactive reports whether the row can take focus.
func (o *Option) Interactive() bool {
	return o.Kind == OptionItem || o.Kind == OptionToggle || o.Kind == OptionSlider
}

// Mutable reports whether confirming the row changes it in place instead of
// closing the menu.
func (o *Option) Mutable() bool {
	return o.Kind == OptionToggle || o.Kind == OptionSlider
}

// Choice returns a toggle's selected choice.
func (o *Option) Choice() string {
	if o.Kind != OptionToggle || len(o.Choices) == 0 {
		return ""
	}
	return o.Choices[posMod(o.Selected, len(o.Choices))]
}

// Number returns a slider's value.
func (o *Option) Number() float64 { return o.value }

// SetValue sets a slider's value, clamped to [Min, Max].
func (o *Option) SetValue(v float64) {
	o.value = clamp(v, o.Min, o.Max)
}

// Value returns the row's current value: the selected choice for a toggle,
// the number for a slider, the label text otherwise.
func (o *Option) Value() any {
	switch o.Kind {
	case OptionToggle:
		return o.Choice()
	case OptionSlider:
		return o.value
	default:
		return o.Text
	}
}

// Display returns the value text drawn on the right of the row.
func (o *Option) Display() string {
	switch o.Kind {
	case OptionToggle:
		return o.Prefix + o.Choice() + o.Suffix
	case OptionSlider:
		return strconv.FormatFloat(o.value, 'f', -1, 64)
	default:
		return ""
	}
}

// PointerHit locates a pressed pointer relative to the row it is over.
type PointerHit struct {
	X   float64
	Row Rect
}

// Change applies one mutation step. For a toggle, direction cycles the
// selection modulo the number of choices; with a pointer hit the side of the
// row midpoint the pointer is on decides the direction instead. For a slider,
// direction adds Step*direction and clamps; with a pointer hit the pointer x
// maps linearly onto [Min, Max] and rounds half up to an integer. It reports
// whether the row is mutable.
func (o *Option) Change(direction int, hit *PointerHit) bool {
	switch o.Kind {
	case OptionToggle:
		if len(o.Choices) == 0 {
			return true
		}
		if hit != nil && hit.Row.Width > 0 {
			if hit.X-hit.Row.X > hit.Row.Width/2 {
				direction = 1
			} else {
				direction = -1
			}
		}
		o.Selected = posMod(o.Selected+direction, len(o.Choices))
		return true
	case OptionSlider:
		if hit != nil && hit.Row.Width > 0 {
			f := clamp((hit.X-hit.Row.X)/hit.Row.Width, 0, 1)
			v := o.Min + (o.Max-o.Min)*f
			o.SetValue(math.Floor(v + 0.5))
		} else {
			o.SetValue(o.value + o.Step*float64(direction))
		}
		return true
	}
	return false
}

// Fraction returns a slider's position in [0, 1].
func (o *Option) Fraction() float64 {
	if o.Max == o.Min {
		return 0
	}
	return (o.value - o.Min) / (o.Max - o.Min)
}

func posMod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// OptionEntry pairs a key with an option for NewOptionSet.
type OptionEntry struct {
	Key    string
	Option *Option
}

// Entry builds an OptionEntry.
func Entry(key string, o *Option) OptionEntry {
	return OptionEntry{Key: key, Option: o}
}

// OptionSet is an ordered mapping of key to option.
type OptionSet struct {
	keys  []string
	byKey map[string]*Option
}

// NewOptionSet builds a set from entries in order. A repeated key replaces the
// earlier option but keeps its position.
func NewOptionSet(entries ...OptionEntry) *OptionSet {
	s := &OptionSet{byKey: make(map[string]*Option, len(entries))}
	for _, e := range entries {
		s.Set(e.Key, e.Option)
	}
	return s
}

// Set stores o under key.
func (s *OptionSet) Set(key string, o *Option) {
	if o == nil {
		return
	}
	if s.byKey == nil {
		s.byKey = make(map[string]*Option)
	}
	if _, ok := s.byKey[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.byKey[key] = o
}

// Get returns the option stored under key.
func (s *OptionSet) Get(key string) (*Option, bool) {
	o, ok := s.byKey[key]
	return o, ok
}

// Keys returns the keys in order.
func (s *OptionSet) Keys() []string { return s.keys }

// Len returns the number of options.
func (s *OptionSet) Len() int { return len(s.keys) }

// At returns the key and option at position i.
func (s *OptionSet) At(i int) (string, *Option) {
	k := s.keys[i]
	return k, s.byKey[k]
}

// Values returns every option's current value keyed by option key.
func (s *OptionSet) Values() map[string]any {
	out := make(map[string]any, len(s.keys))
	for _, k := range s.keys {
		out[k] = s.byKey[k].Value()
	}
	return out
}

// Interactive returns the positions of focusable options, in order.
func (s *OptionSet) Interactive() []int {
	var idx []int
	for i, k := range s.keys {
		if s.byKey[k].Interactive() {
			idx = append(idx, i)
		}
	}
	return idx
}

// NormalizeOptions converts heterogeneous descriptors into an OptionSet keyed
// by position ("0", "1", ...). Accepted descriptors:
//
//   - string: a label
//   - a one-element list: an item
//   - a list of two or more strings: an unlabeled toggle over those choices;
//     a trailing two-element list sets the toggle prefix and suffix
//   - a map with a "type" key: any kind, with fields text, choices,
//     selected, prefix, suffix, min, max, step, value, amount
//   - *Option
//
// Anything else is skipped and logged.
func NormalizeOptions(descs []any) *OptionSet {
	set := NewOptionSet()
	for i, d := range descs {
		o, err := normalizeOption(d)
		if err != nil {
			Logger().Warn("options: skipping descriptor", "index", i, "error", err)
			continue
		}
		set.Set(strconv.Itoa(i), o)
	}
	return set
}

func normalizeOption(d any) (*Option, error) {
	switch v := d.(type) {
	case *Option:
		if v == nil {
			return nil, fmt.Errorf("nil option")
		}
		return v, nil
	case string:
		return Label(v), nil
	case []string:
		items := make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}
		return listOption(items)
	case []any:
		return listOption(v)
	case map[string]any:
		return mapOption(v)
	default:
		return nil, fmt.Errorf("unsupported descriptor type %T", d)
	}
}

// listOption handles the list descriptor forms.
func listOption(items []any) (*Option, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("empty list descriptor")
	}
	var pre, post string
	var affixes bool
	if last, ok := stringPair(items[len(items)-1]); ok && len(items) >= 2 {
		pre, post = last[0], last[1]
		affixes = true
		items = items[:len(items)-1]
	}
	strs := make([]string, len(items))
	for i, it := range items {
		s, ok := it.(string)
		if !ok {
			return nil, fmt.Errorf("list element %d is %T, want string", i, it)
		}
		strs[i] = s
	}
	if len(strs) == 1 && !affixes {
		return Item(strs[0]), nil
	}
	o := Toggle("", strs...)
	if affixes {
		o.WithAffixes(pre, post)
	}
	return o, nil
}

func stringPair(v any) ([2]string, bool) {
	switch p := v.(type) {
	case [2]string:
		return p, true
	case []string:
		if len(p) == 2 {
			return [2]string{p[0], p[1]}, true
		}
	case []any:
		if len(p) == 2 {
			a, ok1 := p[0].(string)
			b, ok2 := p[1].(string)
			if ok1 && ok2 {
				return [2]string{a, b}, true
			}
		}
	}
	return [2]string{}, false
}

// mapOption handles the map descriptor form.
func mapOption(m map[string]any) (*Option, error) {
	typ, _ := m["type"].(string)
	kind, ok := parseOptionKind(typ)
	if !ok {
		return nil, fmt.Errorf("unknown option type %q", typ)
	}
	text, _ := m["text"].(string)

	switch kind {
	case OptionLabel:
		return Label(text), nil
	case OptionItem:
		return Item(text), nil
	case OptionSpacer:
		amount, _ := number(m["amount"])
		return Spacer(amount), nil
	case OptionToggle:
		var choices []string
		switch cs := m["choices"].(type) {
		case []string:
			choices = cs
		case []any:
			for _, c := range cs {
				choices = append(choices, fmt.Sprint(c))
			}
		}
		if len(choices) == 0 {
			return nil, fmt.Errorf("toggle %q has no choices", text)
		}
		o := Toggle(text, choices...)
		if sel, ok := number(m["selected"]); ok {
			o.WithSelected(int(sel))
		}
		pre, _ := m["prefix"].(string)
		post, _ := m["suffix"].(string)
		return o.WithAffixes(pre, post), nil
	default:
		lo, ok := number(m["min"])
		if !ok {
			lo = DefaultSliderMin
		}
		hi, ok := number(m["max"])
		if !ok {
			hi = DefaultSliderMax
		}
		step, ok := number(m["step"])
		if !ok {
			step = DefaultSliderStep
		}
		val, ok := number(m["value"])
		if !ok {
			val = lo + (hi-lo)/2
		}
		return Slider(text, lo, hi, step, val), nil
	}
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	return 0, false
}
