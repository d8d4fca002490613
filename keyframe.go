package marquee

import "time"

// LoopMode determines how a sprite's frame cursor progresses through an animation.
type LoopMode uint8

const (
	// LoopForward plays frames 0..N-1 and wraps to 0.
	LoopForward LoopMode = iota
	// LoopBackForth plays 0..N-1 then N-2..1, a cycle of 2N-2 frames.
	LoopBackForth
)

// LoopInfinite repeats an animation until it is replaced or interrupted.
const LoopInfinite = -1

// String returns the loop mode name used in animation files.
func (m LoopMode) String() string {
	switch m {
	case LoopForward:
		return "forward"
	case LoopBackForth:
		return "back_forth"
	default:
		return "unknown"
	}
}

// ParseLoopMode converts an animation file loop name into a LoopMode.
func ParseLoopMode(s string) (LoopMode, bool) {
	switch s {
	case "", "forward":
		return LoopForward, true
	case "back_forth", "backforth", "pingpong":
		return LoopBackForth, true
	default:
		return LoopForward, false
	}
}

// Keyframe is one step of an animation: an image reference, how long it is
// shown, and optional overrides applied when the frame becomes current.
// A nil override keeps the sprite's previous value. Kinematic channels set
// here persist across later frames until overwritten or Sprite.Stop.
type Keyframe struct {
	// Frame indexes the sprite's image set. Ignored when Name is set.
	Frame int
	// Name looks the image up by name in the image set.
	Name string
	// Duration is how long the frame is shown. Zero means the frame is
	// static and never advances on its own.
	Duration time.Duration

	Angle *float64
	Alpha *float64
	Scale *float64
	FlipX *bool
	FlipY *bool
	Tint  *Color
	Pos   *Vec2

	Velocity *Vec2
	Accel    *Vec2
	Rotation *float64
	Scaling  *float64
	Fading   *float64
	Coloring *Color
}

// FrameOption sets an override on a Keyframe.
type FrameOption func(*Keyframe)

// KeyFrame builds a single keyframe for image index frame.
func KeyFrame(frame int, duration time.Duration, opts ...FrameOption) Keyframe {
	kf := Keyframe{Frame: frame, Duration: duration}
	for _, o := range opts {
		o(&kf)
	}
	return kf
}

// NamedFrame builds a keyframe that references an image by name.
func NamedFrame(name string, duration time.Duration, opts ...FrameOption) Keyframe {
	kf := KeyFrame(0, duration, opts...)
	kf.Name = name
	return kf
}

// KeyFrames builds one keyframe per image index, all sharing duration and options.
func KeyFrames(frames []int, duration time.Duration, opts ...FrameOption) []Keyframe {
	out := make([]Keyframe, 0, len(frames))
	for _, f := range frames {
		out = append(out, KeyFrame(f, duration, opts...))
	}
	return out
}

// KeyRange builds keyframes for image indices start..end, including end, so
// KeyRange(0, 3, d) yields four frames. A start greater than end produces a
// descending range.
func KeyRange(start, end int, duration time.Duration, opts ...FrameOption) []Keyframe {
	step := 1
	if start > end {
		step = -1
	}
	out := make([]Keyframe, 0, (end-start)*step+1)
	for f := start; ; f += step {
		out = append(out, KeyFrame(f, duration, opts...))
		if f == end {
			break
		}
	}
	return out
}

// WithAngle sets the absolute rotation in degrees.
func WithAngle(deg float64) FrameOption {
	return func(k *Keyframe) { k.Angle = &deg }
}

// WithAlpha sets the opacity in [0, 255].
func WithAlpha(a float64) FrameOption {
	return func(k *Keyframe) { k.Alpha = &a }
}

// WithScale sets the uniform draw scale.
func WithScale(s float64) FrameOption {
	return func(k *Keyframe) { k.Scale = &s }
}

// WithFlip sets both mirror flags.
func WithFlip(x, y bool) FrameOption {
	return func(k *Keyframe) {
		k.FlipX = &x
		k.FlipY = &y
	}
}

// WithTint sets the color multiplier.
func WithTint(c Color) FrameOption {
	return func(k *Keyframe) { k.Tint = &c }
}

// WithPos moves the sprite to an absolute position.
func WithPos(x, y float64) FrameOption {
	return func(k *Keyframe) { k.Pos = &Vec2{X: x, Y: y} }
}

// WithVelocity starts the velocity channel, in units per second.
func WithVelocity(x, y float64) FrameOption {
	return func(k *Keyframe) { k.Velocity = &Vec2{X: x, Y: y} }
}

// WithAccel starts the acceleration channel, in units per second squared.
func WithAccel(x, y float64) FrameOption {
	return func(k *Keyframe) { k.Accel = &Vec2{X: x, Y: y} }
}

// WithRotation starts the rotation channel, in degrees per second.
func WithRotation(degPerSec float64) FrameOption {
	return func(k *Keyframe) { k.Rotation = &degPerSec }
}

// WithScaling starts the scale channel, in scale units per second.
func WithScaling(perSec float64) FrameOption {
	return func(k *Keyframe) { k.Scaling = &perSec }
}

// WithFading starts the fade channel. Positive values fade out, in alpha
// units per second.
func WithFading(perSec float64) FrameOption {
	return func(k *Keyframe) { k.Fading = &perSec }
}

// WithColoring starts the tint drift channel, in color units per second.
func WithColoring(perSec Color) FrameOption {
	return func(k *Keyframe) { k.Coloring = &perSec }
}
