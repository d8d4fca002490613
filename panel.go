package marquee

// Panel draws decorative frames behind menus, buttons and boxes. Nine-patch
// panels are implemented by backends; RectPanel is the built-in solid one.
type Panel interface {
	// Surround draws the panel so that its interior covers area.
	Surround(s Surface, area Rect) error
	// Draw fills r with the panel, optionally multiplied by tint.
	Draw(s Surface, r Rect, tint *Color) error
	// MinHeight is the smallest height the panel can be drawn at.
	MinHeight() float64
}

// RectPanel is a filled rectangle with an optional border.
type RectPanel struct {
	Fill      Color
	Border    Color
	Thickness float64
}

// Surround draws the border and fill outside area by Thickness.
func (p RectPanel) Surround(s Surface, area Rect) error {
	return p.Draw(s, area.Inflate(p.Thickness*2, p.Thickness*2), nil)
}

// Draw fills r, drawing the border first when Thickness is positive.
func (p RectPanel) Draw(s Surface, r Rect, tint *Color) error {
	fill, border := p.Fill, p.Border
	if tint != nil {
		fill = fill.Mul(*tint)
		border = border.Mul(*tint)
	}
	if p.Thickness > 0 {
		if err := s.FillRect(r, border); err != nil {
			return err
		}
		r = r.Inflate(-p.Thickness*2, -p.Thickness*2)
	}
	return s.FillRect(r, fill)
}

// MinHeight returns twice the border thickness.
func (p RectPanel) MinHeight() float64 { return p.Thickness * 2 }

// BoxStyle draws text-input boxes and slider tracks when no box panel is set.
type BoxStyle struct {
	Outline   Color
	Fill      Color
	Thickness float64
}

// DefaultBoxStyle is a white outline around a black fill.
var DefaultBoxStyle = BoxStyle{Outline: ColorWhite, Fill: ColorBlack, Thickness: 2}
