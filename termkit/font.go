package termkit

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Font measures text in terminal cells. Wide runes count as two columns and
// every line is one cell tall. The zero value is ready to use.
type Font struct {
	// EastAsian treats ambiguous-width runes as wide.
	EastAsian bool
}

func (f Font) condition() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = f.EastAsian
	return c
}

// MeasureString returns the column width of the widest line and the number
// of lines.
func (f Font) MeasureString(text string) (width, height float64) {
	if text == "" {
		return 0, 0
	}
	c := f.condition()
	lines := strings.Split(text, "\n")
	w := 0
	for _, l := range lines {
		w = max(w, c.StringWidth(l))
	}
	return float64(w), float64(len(lines))
}

// LineHeight is always one cell.
func (Font) LineHeight() float64 { return 1 }

// runeWidth returns the columns r occupies, with zero-width runes taking none.
func (f Font) runeWidth(r rune) int {
	return f.condition().RuneWidth(r)
}
