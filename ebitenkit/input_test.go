package ebitenkit

import (
	"testing"

	"github.com/phanxgames/marquee"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestMenuKeys(t *testing.T) {
	tests := map[ebiten.Key]marquee.Key{
		ebiten.KeyArrowUp:     marquee.KeyUp,
		ebiten.KeyArrowLeft:   marquee.KeyLeft,
		ebiten.KeyNumpadEnter: marquee.KeyEnter,
		ebiten.KeyEscape:      marquee.KeyEscape,
		ebiten.KeyBackspace:   marquee.KeyBackspace,
	}
	for k, want := range tests {
		if got := menuKeys[k]; got != want {
			t.Errorf("menuKeys[%v] = %v, want %v", k, got, want)
		}
	}
	if _, ok := menuKeys[ebiten.KeyA]; ok {
		t.Error("letter keys must arrive as text, not key events")
	}
}

func TestPadButtonsUnique(t *testing.T) {
	seen := map[marquee.PadButton]bool{}
	for _, b := range padButtons {
		if seen[b.pad] {
			t.Errorf("pad button %v mapped twice", b.pad)
		}
		seen[b.pad] = true
	}
	if len(seen) != 12 {
		t.Errorf("mapped %d pad buttons, want 12", len(seen))
	}
}

func TestPasteText(t *testing.T) {
	tests := []struct{ in, want string }{
		{"hello", "hello"},
		{"first\nsecond", "first"},
		{"a\tb", "ab"},
		{"crlf\r\nnext", "crlf"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := pasteText(tt.in); got != tt.want {
			t.Errorf("pasteText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
