package marquee

import "time"

// Texture is a backend-owned GPU (or terminal) image. The core never reads
// or mutates pixels; it only passes textures back to the Surface that made them.
type Texture interface {
	Size() (w, h int)
}

// Image names a rectangular region of a Texture. Value type; copying an
// Image never copies pixels.
type Image struct {
	Texture Texture
	Src     Rect
}

// Rect returns the region's size positioned at the origin.
func (img Image) Rect() Rect {
	return Rect{Width: img.Src.Width, Height: img.Src.Height}
}

// IsZero reports whether the image has no texture attached.
func (img Image) IsZero() bool {
	return img.Texture == nil
}

// DrawOptions carries the transient render state applied to a single draw.
// Backends must treat these as per-call parameters, never store them on the
// shared texture.
type DrawOptions struct {
	// Angle is the clockwise rotation in degrees around Origin.
	Angle float64
	// Origin is the rotation pivot relative to the destination top-left.
	Origin Vec2
	Flip   Flip
	Tint   Color
	// Alpha is the opacity in [0, 255].
	Alpha float64
}

// DefaultDrawOptions returns untinted, opaque, unrotated draw options.
func DefaultDrawOptions() DrawOptions {
	return DrawOptions{Tint: ColorWhite, Alpha: 255}
}

// Font measures and lays out text. Fonts are created by a backend and drawn
// through that backend's Surface.
type Font interface {
	MeasureString(text string) (width, height float64)
	LineHeight() float64
}

// Surface is the render target the core draws into: "draw this region of this
// texture into this destination rectangle".
type Surface interface {
	// Bounds returns the viewport of the surface.
	Bounds() Rect
	DrawImage(img Image, dst Rect, opts DrawOptions) error
	FillRect(r Rect, c Color) error
	// DrawText draws s with its top-left corner at pos.
	DrawText(f Font, s string, pos Vec2, scale float64, c Color) error
}

// Presenter is implemented by surfaces that need an explicit flip at the end
// of a frame (SDL, terminals). The modal loop calls Present once per tick.
type Presenter interface {
	Present() error
}

// Target is an offscreen surface whose contents can be drawn as an Image.
type Target interface {
	Surface
	Image() Image
	Clear() error
}

// TargetFactory is implemented by surfaces that can allocate offscreen targets.
type TargetFactory interface {
	NewTarget(w, h int) (Target, error)
}

// TextureLoader loads a texture from a file path. Implemented by backends and
// used through a ResourceCache.
type TextureLoader interface {
	LoadTexture(path string) (Texture, error)
}

// InputSource yields the discrete input events that arrived since the last poll.
type InputSource interface {
	Poll() []Event
}

// InputFunc adapts a function to the InputSource interface.
type InputFunc func() []Event

// Poll calls f.
func (f InputFunc) Poll() []Event { return f() }

// Clock is the caller-owned frame clock.
type Clock interface {
	// Delta returns the time elapsed since the previous tick.
	Delta() time.Duration
	// Wait blocks until the next tick boundary for the given frame rate.
	Wait(fps int)
}

// Cue identifies a menu sound effect.
type Cue uint8

const (
	CueMove    Cue = iota // focus changed or value mutated
	CueError              // rejected action
	CueKey                // key typed or deleted in text input
	CueConfirm            // selection confirmed
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueMove:
		return "move"
	case CueError:
		return "error"
	case CueKey:
		return "key"
	case CueConfirm:
		return "confirm"
	default:
		return "unknown"
	}
}

// Audio plays menu cues. A nil Audio is valid and silent.
type Audio interface {
	Play(cue Cue)
}

// AudioFunc adapts a function to the Audio interface.
type AudioFunc func(Cue)

// Play calls f.
func (f AudioFunc) Play(c Cue) { f(c) }

// Translator maps a menu string to its localized form.
type Translator func(string) string
