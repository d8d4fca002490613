package marquee

import (
	"context"
	"log/slog"
	"math"
	"time"
)

// DefaultMaxVelocity is the per-axis velocity limit applied when
// SpriteOptions.MaxVelocity is zero.
const DefaultMaxVelocity = 1000

// maxTransitionsPerTick bounds the number of frame transitions a single
// Update may perform when catching up on a long delta.
const maxTransitionsPerTick = 4096

// SpriteOptions configures a new Sprite.
type SpriteOptions struct {
	// Name identifies the sprite in log output.
	Name string
	// Anchor is subtracted from Pos to find the draw origin. Zero anchors the
	// image at its top-left corner.
	Anchor Vec2
	// Hitbox is the collision area relative to the image's top-left corner.
	// Nil uses the scaled image bounds.
	Hitbox *Rect
	// Camera transforms the destination rectangle. Nil draws in screen space.
	Camera *Camera
	// MaxVelocity clamps each velocity axis. Zero selects DefaultMaxVelocity.
	MaxVelocity float64
}

// Motion holds the constant-rate channels integrated every tick. A nil channel
// is not animating.
type Motion struct {
	Velocity *Vec2
	Accel    *Vec2
	Rotation *float64
	Scaling  *float64
	Fading   *float64
	Coloring *Color
}

type queuedAnimation struct {
	frames    []Keyframe
	loopCount int
	mode      LoopMode
}

type heldAnimation struct {
	frames    []Keyframe
	cursor    int
	mode      LoopMode
	loopCount int
}

// Sprite is an animated image: a keyframe sequencer plus the kinematic state
// it drives. All methods must be called from one goroutine.
type Sprite struct {
	Name string

	// Pos is the world position of the anchor point.
	Pos Vec2
	// Angle is the rotation in degrees, clockwise.
	Angle float64
	// Scale is the uniform draw scale.
	Scale float64
	// Alpha is the opacity in [0, 255].
	Alpha float64
	Tint  Color
	Flip  Flip
	// Speed multiplies both frame timing and kinematics. Zero freezes the
	// sprite without discarding state.
	Speed float64
	// Visible controls whether Draw emits anything.
	Visible bool

	Anchor      Vec2
	Hitbox      *Rect
	Camera      *Camera
	MaxVelocity float64
	Motion      Motion

	images *ImageSet
	image  Image

	frames    []Keyframe
	cursor    int
	mode      LoopMode
	loopCount int
	duration  time.Duration
	elapsed   time.Duration
	gen       uint64

	held   *heldAnimation
	queue  []queuedAnimation
	events []func()

	dest Rect
	hit  Rect
}

// NewSprite creates a sprite showing the first image of images.
func NewSprite(images *ImageSet, opts SpriteOptions) *Sprite {
	s := &Sprite{
		Name:        opts.Name,
		Scale:       1,
		Alpha:       255,
		Tint:        ColorWhite,
		Speed:       1,
		Visible:     true,
		Anchor:      opts.Anchor,
		Hitbox:      opts.Hitbox,
		Camera:      opts.Camera,
		MaxVelocity: opts.MaxVelocity,
		images:      images,
	}
	if s.MaxVelocity <= 0 {
		s.MaxVelocity = DefaultMaxVelocity
	}
	s.SetFrame(Keyframe{})
	return s
}

// SetAnimation replaces the current animation, resetting the frame cursor and
// timers and applying the first keyframe. loopCount is the number of passes
// to play (0 and 1 both play once, LoopInfinite repeats). An empty frame list
// returns a *ConfigurationError and leaves the sprite unchanged.
//
// The frame slice is retained, not copied, and must not be modified while
// it is playing.
func (s *Sprite) SetAnimation(frames []Keyframe, loopCount int, mode LoopMode) error {
	if len(frames) == 0 {
		return configError("set animation", s.Name, ErrEmptyAnimation)
	}
	s.start(frames, loopCount, mode)
	return nil
}

func (s *Sprite) start(frames []Keyframe, loopCount int, mode LoopMode) {
	s.frames = frames
	s.cursor = 0
	s.loopCount = loopCount
	s.mode = mode
	s.gen++
	s.SetFrame(frames[0])
}

// QueueAnimation plays frames after the current animation completes. When the
// sprite is not timing a frame the animation starts immediately. Queued
// animations play in FIFO order and only once the current loop count is spent
// and no interrupted animation is waiting to resume.
func (s *Sprite) QueueAnimation(frames []Keyframe, loopCount int, mode LoopMode) error {
	if len(frames) == 0 {
		return configError("queue animation", s.Name, ErrEmptyAnimation)
	}
	if s.duration == 0 {
		s.start(frames, loopCount, mode)
		return nil
	}
	s.queue = append(s.queue, queuedAnimation{frames: frames, loopCount: loopCount, mode: mode})
	return nil
}

// Interrupt saves the current animation and plays frames once. When the
// interruption completes the saved animation resumes at the saved frame.
// Only one animation is saved: interrupting an interruption replaces the
// saved state with the interrupting animation's own.
func (s *Sprite) Interrupt(frames []Keyframe, mode LoopMode) error {
	if len(frames) == 0 {
		return configError("interrupt", s.Name, ErrEmptyAnimation)
	}
	if len(s.frames) > 0 {
		s.held = &heldAnimation{
			frames:    s.frames,
			cursor:    s.cursor,
			mode:      s.mode,
			loopCount: s.loopCount,
		}
	}
	s.start(frames, 0, mode)
	return nil
}

// QueueEvent registers fn to run once when the sprite finishes its animations
// with nothing left to play. All registered callbacks run in order, then the
// list is cleared.
func (s *Sprite) QueueEvent(fn func()) {
	if fn != nil {
		s.events = append(s.events, fn)
	}
}

// Stop halts frame progression and clears every kinematic channel. The
// current image and transform stay as they are.
func (s *Sprite) Stop() {
	s.duration = 0
	s.elapsed = 0
	s.Motion = Motion{}
}

// SetFrame shows a single keyframe, applying its overrides and restarting the
// frame timer. It does not change the active animation.
func (s *Sprite) SetFrame(kf Keyframe) {
	s.elapsed = 0
	s.applyFrame(kf)
}

// applyFrame resolves the image and applies the keyframe's overrides.
func (s *Sprite) applyFrame(kf Keyframe) {
	s.image = s.resolveImage(kf)
	s.duration = kf.Duration

	if kf.Angle != nil {
		s.Angle = *kf.Angle
	}
	if kf.Alpha != nil {
		s.Alpha = clamp(*kf.Alpha, 0, 255)
	}
	if kf.Scale != nil {
		s.Scale = *kf.Scale
	}
	if kf.FlipX != nil {
		s.Flip = setFlip(s.Flip, FlipX, *kf.FlipX)
	}
	if kf.FlipY != nil {
		s.Flip = setFlip(s.Flip, FlipY, *kf.FlipY)
	}
	if kf.Tint != nil {
		s.Tint = *kf.Tint
	}
	if kf.Pos != nil {
		s.Pos = *kf.Pos
	}

	if kf.Velocity != nil {
		v := *kf.Velocity
		s.Motion.Velocity = &v
	}
	if kf.Accel != nil {
		a := *kf.Accel
		s.Motion.Accel = &a
	}
	if kf.Rotation != nil {
		r := *kf.Rotation
		s.Motion.Rotation = &r
	}
	if kf.Scaling != nil {
		sc := *kf.Scaling
		s.Motion.Scaling = &sc
	}
	if kf.Fading != nil {
		f := *kf.Fading
		s.Motion.Fading = &f
	}
	if kf.Coloring != nil {
		c := *kf.Coloring
		s.Motion.Coloring = &c
	}
	s.updateRects()
}

func setFlip(f, bit Flip, on bool) Flip {
	if on {
		return f | bit
	}
	return f &^ bit
}

func (s *Sprite) resolveImage(kf Keyframe) Image {
	if s.images == nil || s.images.Len() == 0 {
		return Image{}
	}
	idx := kf.Frame
	if kf.Name != "" {
		i, ok := s.images.Index(kf.Name)
		if !ok {
			Logger().Debug("sprite: unknown frame name", "sprite", s.Name, "frame", kf.Name)
		}
		idx = i
	}
	if idx < 0 || idx >= s.images.Len() {
		idx = 0
	}
	return s.images.At(idx)
}

// Update advances the sprite by dt: frame transitions first, then kinematic
// integration, then the destination rectangle. Call it once per tick, before
// the sprite is drawn.
func (s *Sprite) Update(dt time.Duration) {
	if s.Speed == 0 {
		return
	}
	s.elapsed += dt

	for n := 0; s.duration > 0 && len(s.frames) > 0; n++ {
		threshold := time.Duration(float64(s.duration) / math.Abs(s.Speed))
		if threshold <= 0 {
			threshold = 1
		}
		if s.elapsed <= threshold {
			break
		}
		if n == maxTransitionsPerTick {
			s.elapsed = 0
			break
		}
		rem := s.elapsed - threshold
		s.advanceFrame()
		if s.duration > 0 {
			s.elapsed = rem
		} else {
			s.elapsed = 0
		}
	}

	s.integrate(dt.Seconds() * s.Speed)
	s.updateRects()
}

// advanceFrame performs one frame transition.
func (s *Sprite) advanceFrame() {
	n := len(s.frames)
	s.cursor++

	switch s.mode {
	case LoopBackForth:
		cycle := 2*n - 2
		if n == 1 {
			cycle = 1
		}
		if s.cursor < cycle {
			s.traceTransition()
			s.applyFrame(s.frames[s.frameForCursor(s.cursor)])
			return
		}
	default:
		if s.cursor < n {
			s.traceTransition()
			s.applyFrame(s.frames[s.cursor])
			return
		}
	}
	s.endCycle()
}

// endCycle runs at the completion of a full pass through the animation.
func (s *Sprite) endCycle() {
	if s.loopCount > 0 {
		s.loopCount--
	}
	if s.nextAnimation() {
		return
	}
	if s.loopCount != 0 {
		s.cursor = 0
		s.traceTransition()
		s.applyFrame(s.frames[0])
		return
	}

	// Freeze on the last frame shown.
	n := len(s.frames)
	switch {
	case n == 1:
		s.cursor = 0
	case s.mode == LoopBackForth:
		s.cursor = 2*n - 3
	default:
		s.cursor = n - 1
	}
	Logger().Debug("sprite: animation finished", "sprite", s.Name, "frame", s.FrameIndex())
	s.Stop()
}

// nextAnimation resumes the held animation or starts the next queued one.
// When neither follows and the loop count is spent it fires queued events.
// It reports whether playback moved to another animation.
func (s *Sprite) nextAnimation() bool {
	if h := s.held; h != nil {
		s.held = nil
		s.frames = h.frames
		s.cursor = h.cursor
		s.mode = h.mode
		s.loopCount = h.loopCount
		s.gen++
		s.applyFrame(s.frames[s.frameForCursor(s.cursor)])
		return true
	}
	if s.loopCount > 0 {
		return false
	}
	if len(s.queue) > 0 {
		next := s.queue[0]
		s.queue = s.queue[1:]
		s.start(next.frames, next.loopCount, next.mode)
		return true
	}
	if len(s.events) > 0 {
		events := s.events
		s.events = nil
		gen := s.gen
		for _, fn := range events {
			fn()
		}
		if s.gen != gen {
			return true
		}
		// A callback may queue a follow-up while this frame is still timed.
		if len(s.queue) > 0 {
			next := s.queue[0]
			s.queue = s.queue[1:]
			s.start(next.frames, next.loopCount, next.mode)
			return true
		}
	}
	return false
}

// frameForCursor maps the loop cursor to an index into frames.
func (s *Sprite) frameForCursor(c int) int {
	n := len(s.frames)
	if s.mode == LoopBackForth && c >= n {
		c = 2*n - 2 - c
	}
	if c < 0 || c >= n {
		return 0
	}
	return c
}

func (s *Sprite) traceTransition() {
	if l := Logger(); l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug("sprite: frame", "sprite", s.Name, "cursor", s.cursor, "loops", s.loopCount)
	}
}

// FrameIndex returns the index into Frames of the keyframe being shown.
func (s *Sprite) FrameIndex() int {
	if len(s.frames) == 0 {
		return 0
	}
	return s.frameForCursor(s.cursor)
}

// Frames returns the active animation.
func (s *Sprite) Frames() []Keyframe { return s.frames }

// LoopCount returns the remaining loop count.
func (s *Sprite) LoopCount() int { return s.loopCount }

// LoopMode returns the active loop mode.
func (s *Sprite) LoopMode() LoopMode { return s.mode }

// Playing reports whether the current frame is timed.
func (s *Sprite) Playing() bool { return s.duration > 0 }

// HasHeld reports whether an interrupted animation is waiting to resume.
func (s *Sprite) HasHeld() bool { return s.held != nil }

// QueuedAnimations returns the number of animations waiting in the queue.
func (s *Sprite) QueuedAnimations() int { return len(s.queue) }

// Image returns the image currently shown.
func (s *Sprite) Image() Image { return s.image }

// Images returns the sprite's image set.
func (s *Sprite) Images() *ImageSet { return s.images }
