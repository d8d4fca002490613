package marquee

import (
	"errors"
	"testing"
)

// imageIndex returns which test image the sprite is showing.
func imageIndex(s *Sprite) int { return int(s.Image().Src.X) / 10 }

func TestSpriteAdvanceWrapsAndDecrements(t *testing.T) {
	s := NewSprite(testImages(3), SpriteOptions{Name: "hero"})
	if err := s.SetAnimation(KeyRange(0, 2, ms(100)), 2, LoopForward); err != nil {
		t.Fatal(err)
	}
	s.Update(ms(250))
	if got := s.FrameIndex(); got != 2 {
		t.Errorf("FrameIndex after 250ms = %d, want 2", got)
	}
	if got := s.LoopCount(); got != 2 {
		t.Errorf("LoopCount after 250ms = %d, want 2", got)
	}
	s.Update(ms(150))
	if got := s.FrameIndex(); got != 0 {
		t.Errorf("FrameIndex after 400ms = %d, want 0", got)
	}
	if got := s.LoopCount(); got != 1 {
		t.Errorf("LoopCount after 400ms = %d, want 1", got)
	}
	if !s.Playing() {
		t.Error("Playing = false, want true")
	}
}

func TestSpriteExactBoundaryKeepsPlaying(t *testing.T) {
	s := NewSprite(testImages(3), SpriteOptions{})
	if err := s.SetAnimation(KeyRange(0, 2, ms(100)), 1, LoopForward); err != nil {
		t.Fatal(err)
	}
	s.Update(ms(300))
	if s.FrameIndex() != 2 || !s.Playing() {
		t.Errorf("after exactly one pass: index %d, playing %v, want 2, true", s.FrameIndex(), s.Playing())
	}
	s.Update(1)
	if s.FrameIndex() != 2 || s.Playing() {
		t.Errorf("past the pass: index %d, playing %v, want 2, false", s.FrameIndex(), s.Playing())
	}
}

func TestSpriteForwardStopsOnLastFrame(t *testing.T) {
	frames := KeyRange(0, 2, ms(100))
	for _, loops := range []int{0, 1, 2, 3, 5} {
		passes := max(loops, 1)
		total := ms(passes*300 + 1)

		one := NewSprite(testImages(3), SpriteOptions{})
		if err := one.SetAnimation(frames, loops, LoopForward); err != nil {
			t.Fatal(err)
		}
		one.Update(total)

		many := NewSprite(testImages(3), SpriteOptions{})
		if err := many.SetAnimation(frames, loops, LoopForward); err != nil {
			t.Fatal(err)
		}
		for i := 0; i < passes*30+1; i++ {
			many.Update(ms(10) + 1)
		}

		for name, s := range map[string]*Sprite{"single tick": one, "many ticks": many} {
			if got := s.FrameIndex(); got != 2 {
				t.Errorf("loops=%d %s: FrameIndex = %d, want 2", loops, name, got)
			}
			if s.Playing() {
				t.Errorf("loops=%d %s: Playing = true, want false", loops, name)
			}
			if got := s.LoopCount(); got != 0 {
				t.Errorf("loops=%d %s: LoopCount = %d, want 0", loops, name, got)
			}
		}
	}
}

func TestSpriteBackForthCycle(t *testing.T) {
	for _, k := range []int{2, 3, 4, 6} {
		s := NewSprite(testImages(k), SpriteOptions{})
		if err := s.SetAnimation(KeyRange(0, k-1, ms(100)), LoopInfinite, LoopBackForth); err != nil {
			t.Fatal(err)
		}
		var seen []int
		seen = append(seen, s.FrameIndex())
		s.Update(ms(101))
		for len(seen) < 2*(2*k-2) {
			seen = append(seen, s.FrameIndex())
			s.Update(ms(100))
		}
		cycle := 2*k - 2
		for i := cycle; i < len(seen); i++ {
			if seen[i] != seen[i-cycle] {
				t.Fatalf("k=%d: sequence %v does not repeat every %d ticks", k, seen, cycle)
			}
		}
		for i := 1; i < cycle; i++ {
			if seen[i] == 0 {
				t.Errorf("k=%d: sequence %v returns to 0 before %d ticks", k, seen, cycle)
			}
		}
		if got := seen[k-1]; got != k-1 {
			t.Errorf("k=%d: seen[%d] = %d, want %d", k, k-1, got, k-1)
		}
	}
}

func TestSpriteSingleFrameNeverTransitions(t *testing.T) {
	for _, mode := range []LoopMode{LoopForward, LoopBackForth} {
		s := NewSprite(testImages(2), SpriteOptions{})
		if err := s.SetAnimation([]Keyframe{KeyFrame(1, ms(50))}, LoopInfinite, mode); err != nil {
			t.Fatal(err)
		}
		for range 20 {
			s.Update(ms(37))
			if got := s.FrameIndex(); got != 0 {
				t.Fatalf("%v: FrameIndex = %d, want 0", mode, got)
			}
			if got := imageIndex(s); got != 1 {
				t.Fatalf("%v: image = %d, want 1", mode, got)
			}
		}
	}
}

func TestSpriteQueueDrainOrder(t *testing.T) {
	s := NewSprite(testImages(6), SpriteOptions{})
	if err := s.SetAnimation(KeyFrames([]int{0}, ms(100)), 0, LoopForward); err != nil {
		t.Fatal(err)
	}
	for _, f := range [][]int{{1, 2}, {3}, {4, 5}} {
		if err := s.QueueAnimation(KeyFrames(f, ms(100)), 0, LoopForward); err != nil {
			t.Fatal(err)
		}
	}
	if got := s.QueuedAnimations(); got != 3 {
		t.Fatalf("QueuedAnimations = %d, want 3", got)
	}

	want := []int{1, 2, 3, 4, 5, 5, 5}
	s.Update(ms(101))
	for i, w := range want {
		if got := imageIndex(s); got != w {
			t.Errorf("tick %d: image = %d, want %d", i, got, w)
		}
		s.Update(ms(100))
	}
	if s.Playing() {
		t.Error("Playing = true after queue drained, want false")
	}
	if got := s.QueuedAnimations(); got != 0 {
		t.Errorf("QueuedAnimations = %d, want 0", got)
	}
}

func TestSpriteQueueStartsWhenStatic(t *testing.T) {
	s := NewSprite(testImages(4), SpriteOptions{})
	if err := s.QueueAnimation(KeyRange(2, 3, ms(100)), 0, LoopForward); err != nil {
		t.Fatal(err)
	}
	if got := s.QueuedAnimations(); got != 0 {
		t.Errorf("QueuedAnimations = %d, want 0", got)
	}
	if got := imageIndex(s); got != 2 {
		t.Errorf("image = %d, want 2", got)
	}
}

func TestSpriteQueueWaitsForLoops(t *testing.T) {
	s := NewSprite(testImages(3), SpriteOptions{})
	if err := s.SetAnimation(KeyFrames([]int{0}, ms(100)), 3, LoopForward); err != nil {
		t.Fatal(err)
	}
	if err := s.QueueAnimation(KeyFrames([]int{2}, ms(100)), 0, LoopForward); err != nil {
		t.Fatal(err)
	}
	s.Update(ms(101))
	s.Update(ms(100))
	if got := imageIndex(s); got != 0 {
		t.Errorf("image after 2 passes = %d, want 0", got)
	}
	s.Update(ms(100))
	if got := imageIndex(s); got != 2 {
		t.Errorf("image after 3 passes = %d, want 2", got)
	}
}

func TestSpriteInterruptRestoresHeld(t *testing.T) {
	s := NewSprite(testImages(6), SpriteOptions{})
	base := KeyRange(0, 3, ms(100))
	if err := s.SetAnimation(base, LoopInfinite, LoopForward); err != nil {
		t.Fatal(err)
	}
	s.Update(ms(101))
	s.Update(ms(100))
	if got := s.FrameIndex(); got != 2 {
		t.Fatalf("FrameIndex before interrupt = %d, want 2", got)
	}

	if err := s.Interrupt(KeyFrames([]int{4, 5}, ms(100)), LoopForward); err != nil {
		t.Fatal(err)
	}
	if !s.HasHeld() {
		t.Fatal("HasHeld = false after Interrupt, want true")
	}
	if got := imageIndex(s); got != 4 {
		t.Errorf("image during interrupt = %d, want 4", got)
	}
	s.Update(ms(101))
	s.Update(ms(100))

	if s.HasHeld() {
		t.Error("HasHeld = true after interrupt finished, want false")
	}
	if got := s.FrameIndex(); got != 2 {
		t.Errorf("FrameIndex after restore = %d, want 2", got)
	}
	if got := s.Frames(); len(got) != len(base) || &got[0] != &base[0] {
		t.Error("Frames after restore is not the interrupted animation")
	}
	if got := s.LoopCount(); got != LoopInfinite {
		t.Errorf("LoopCount after restore = %d, want %d", got, LoopInfinite)
	}
}

// Only one interrupted animation is kept: a second interrupt saves the first
// interrupt, and the original animation is not resumed.
func TestSpriteReinterruptKeepsLastHeld(t *testing.T) {
	s := NewSprite(testImages(6), SpriteOptions{})
	base := KeyRange(0, 1, ms(100))
	first := KeyFrames([]int{2, 3}, ms(100))
	second := KeyFrames([]int{4}, ms(100))
	if err := s.SetAnimation(base, LoopInfinite, LoopForward); err != nil {
		t.Fatal(err)
	}
	if err := s.Interrupt(first, LoopForward); err != nil {
		t.Fatal(err)
	}
	if err := s.Interrupt(second, LoopForward); err != nil {
		t.Fatal(err)
	}

	s.Update(ms(101))
	if got := s.Frames(); &got[0] != &first[0] {
		t.Fatal("after second interrupt finished, Frames is not the first interrupt")
	}
	for range 10 {
		s.Update(ms(100))
		if got := s.Frames(); &got[0] == &base[0] {
			t.Fatal("original animation resumed, want it discarded")
		}
	}
	if got := imageIndex(s); got != 3 {
		t.Errorf("image = %d, want 3", got)
	}
	if s.Playing() {
		t.Error("Playing = true, want false")
	}
}

func TestSpriteEventsFireInOrderOnce(t *testing.T) {
	s := NewSprite(testImages(2), SpriteOptions{})
	if err := s.SetAnimation(KeyFrames([]int{0}, ms(100)), 0, LoopForward); err != nil {
		t.Fatal(err)
	}
	if err := s.QueueAnimation(KeyFrames([]int{1}, ms(100)), 0, LoopForward); err != nil {
		t.Fatal(err)
	}
	var order []string
	s.QueueEvent(func() { order = append(order, "a") })
	s.QueueEvent(func() { order = append(order, "b") })
	s.QueueEvent(nil)

	s.Update(ms(101))
	if len(order) != 0 {
		t.Fatalf("events fired before queue drained: %v", order)
	}
	s.Update(ms(100))
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("events = %v, want [a b]", order)
	}
	s.Update(ms(500))
	if len(order) != 2 {
		t.Errorf("events fired again: %v", order)
	}
}

func TestSpriteEventCanQueueFollowUp(t *testing.T) {
	s := NewSprite(testImages(3), SpriteOptions{})
	if err := s.SetAnimation(KeyFrames([]int{0}, ms(100)), 0, LoopForward); err != nil {
		t.Fatal(err)
	}
	s.QueueEvent(func() {
		if err := s.QueueAnimation(KeyFrames([]int{2}, ms(100)), 0, LoopForward); err != nil {
			t.Error(err)
		}
	})
	s.Update(ms(101))
	if got := imageIndex(s); got != 2 {
		t.Errorf("image = %d, want 2", got)
	}
}

func TestSpriteSpeedZeroFreezes(t *testing.T) {
	s := NewSprite(testImages(3), SpriteOptions{})
	if err := s.SetAnimation(KeyRange(0, 2, ms(100), WithVelocity(10, 0)), LoopInfinite, LoopForward); err != nil {
		t.Fatal(err)
	}
	s.Speed = 0
	s.Update(ms(1000))
	if got := s.FrameIndex(); got != 0 {
		t.Errorf("FrameIndex = %d, want 0", got)
	}
	if s.Pos.X != 0 {
		t.Errorf("Pos.X = %v, want 0", s.Pos.X)
	}
	s.Speed = 2
	s.Update(ms(60))
	if got := s.FrameIndex(); got != 1 {
		t.Errorf("FrameIndex at speed 2 = %d, want 1", got)
	}
	if !approxEqual(s.Pos.X, 1.2, 1e-6) {
		t.Errorf("Pos.X at speed 2 = %v, want 1.2", s.Pos.X)
	}
}

func TestSpriteEmptyFramesError(t *testing.T) {
	s := NewSprite(testImages(1), SpriteOptions{Name: "empty"})
	calls := map[string]func() error{
		"SetAnimation":   func() error { return s.SetAnimation(nil, 0, LoopForward) },
		"QueueAnimation": func() error { return s.QueueAnimation([]Keyframe{}, 0, LoopForward) },
		"Interrupt":      func() error { return s.Interrupt(nil, LoopForward) },
	}
	for name, call := range calls {
		err := call()
		var cfgErr *ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Errorf("%s error = %v, want *ConfigurationError", name, err)
		}
		if !errors.Is(err, ErrEmptyAnimation) {
			t.Errorf("%s error = %v, want ErrEmptyAnimation", name, err)
		}
	}
	if len(s.Frames()) != 0 {
		t.Error("failed call changed Frames")
	}
}

func TestSpriteNamedFrames(t *testing.T) {
	images := testImages(3)
	if err := images.Name("jump", 2); err != nil {
		t.Fatal(err)
	}
	s := NewSprite(images, SpriteOptions{})
	s.SetFrame(NamedFrame("jump", 0))
	if got := imageIndex(s); got != 2 {
		t.Errorf("named image = %d, want 2", got)
	}
	s.SetFrame(NamedFrame("missing", 0))
	if got := imageIndex(s); got != 0 {
		t.Errorf("missing name image = %d, want 0", got)
	}
	s.SetFrame(KeyFrame(99, 0))
	if got := imageIndex(s); got != 0 {
		t.Errorf("out of range image = %d, want 0", got)
	}
}

func TestSpriteOverridesPersist(t *testing.T) {
	s := NewSprite(testImages(2), SpriteOptions{})
	frames := []Keyframe{
		KeyFrame(0, ms(100), WithAngle(45), WithFlip(true, false), WithAlpha(300)),
		KeyFrame(1, ms(100)),
	}
	if err := s.SetAnimation(frames, LoopInfinite, LoopForward); err != nil {
		t.Fatal(err)
	}
	if s.Alpha != 255 {
		t.Errorf("Alpha = %v, want clamped 255", s.Alpha)
	}
	s.Update(ms(101))
	if s.Angle != 45 {
		t.Errorf("Angle on frame 1 = %v, want 45", s.Angle)
	}
	if s.Flip&FlipX == 0 {
		t.Error("FlipX cleared on frame without override")
	}
}

func TestKinematicsVelocityClamp(t *testing.T) {
	s := NewSprite(testImages(1), SpriteOptions{})
	s.SetFrame(KeyFrame(0, 0, WithVelocity(5000, -5000)))
	s.Update(ms(1000))
	if s.Pos.X != 1000 || s.Pos.Y != -1000 {
		t.Errorf("Pos = %v, want (1000, -1000)", s.Pos)
	}
	if v := s.Velocity(); v.X != 1000 || v.Y != -1000 {
		t.Errorf("Velocity = %v, want (1000, -1000)", v)
	}

	slow := NewSprite(testImages(1), SpriteOptions{MaxVelocity: 50})
	slow.SetFrame(KeyFrame(0, 0, WithVelocity(80, 20)))
	slow.Update(ms(1000))
	if slow.Pos.X != 50 || slow.Pos.Y != 20 {
		t.Errorf("Pos with MaxVelocity 50 = %v, want (50, 20)", slow.Pos)
	}
}

func TestKinematicsAcceleration(t *testing.T) {
	s := NewSprite(testImages(1), SpriteOptions{})
	s.SetFrame(KeyFrame(0, 0, WithAccel(10, 0)))
	s.Update(ms(1000))
	if v := s.Velocity(); v.X != 10 {
		t.Errorf("Velocity.X = %v, want 10", v.X)
	}
	if s.Pos.X != 10 {
		t.Errorf("Pos.X = %v, want 10", s.Pos.X)
	}
	s.Update(ms(1000))
	if s.Pos.X != 30 {
		t.Errorf("Pos.X after 2s = %v, want 30", s.Pos.X)
	}
}

func TestKinematicsChannelsClamp(t *testing.T) {
	s := NewSprite(testImages(1), SpriteOptions{})
	s.SetFrame(KeyFrame(0, 0,
		WithFading(100),
		WithScaling(-0.5),
		WithRotation(90),
		WithColoring(Color{R: -2, G: 0.5, B: 0, A: 0})))
	s.Update(ms(1000))
	if s.Alpha != 155 {
		t.Errorf("Alpha = %v, want 155", s.Alpha)
	}
	if s.Scale != 0.5 {
		t.Errorf("Scale = %v, want 0.5", s.Scale)
	}
	if s.Angle != 90 {
		t.Errorf("Angle = %v, want 90", s.Angle)
	}
	s.Update(ms(3000))
	if s.Alpha != 0 {
		t.Errorf("Alpha = %v, want 0", s.Alpha)
	}
	if s.Scale != 0 {
		t.Errorf("Scale = %v, want 0", s.Scale)
	}
	if s.Tint.R != 0 || s.Tint.G != 1 {
		t.Errorf("Tint = %v, want R 0 and G 1", s.Tint)
	}
}

func TestSpriteStopClearsMotion(t *testing.T) {
	s := NewSprite(testImages(2), SpriteOptions{})
	if err := s.SetAnimation(KeyRange(0, 1, ms(100), WithVelocity(10, 10), WithAccel(1, 1)), LoopInfinite, LoopForward); err != nil {
		t.Fatal(err)
	}
	s.Stop()
	if s.Motion != (Motion{}) {
		t.Errorf("Motion = %+v, want zero", s.Motion)
	}
	s.Update(ms(500))
	if s.Pos != (Vec2{}) || s.FrameIndex() != 0 {
		t.Errorf("stopped sprite moved: pos %v frame %d", s.Pos, s.FrameIndex())
	}
}

func TestSpriteRects(t *testing.T) {
	cam := NewCamera(Rect{Width: 100, Height: 100})
	cam.X = 10
	s := NewSprite(testImages(1), SpriteOptions{Anchor: Vec2{X: 5, Y: 5}, Camera: cam})
	s.Scale = 2
	s.SetPos(50, 50)

	want := Rect{X: 30, Y: 40, Width: 20, Height: 20}
	if got := s.DestRect(); got != want {
		t.Errorf("DestRect = %v, want %v", got, want)
	}
	if got := s.Rect(); got != (Rect{X: 40, Y: 40, Width: 20, Height: 20}) {
		t.Errorf("Rect = %v, want world bounds", got)
	}

	s.Hitbox = &Rect{X: 2, Y: 3, Width: 4, Height: 5}
	s.SetPos(50, 50)
	if got := s.Rect(); got != (Rect{X: 47, Y: 48, Width: 4, Height: 5}) {
		t.Errorf("Rect with hitbox = %v", got)
	}
}

func TestSpriteDraw(t *testing.T) {
	surf := newRecordSurface(100, 100)
	s := NewSprite(testImages(1), SpriteOptions{Name: "hero"})
	s.Angle = 30
	s.SetPos(5, 5)
	if err := s.Draw(surf); err != nil {
		t.Fatal(err)
	}
	if len(surf.calls) != 1 {
		t.Fatalf("draw calls = %d, want 1", len(surf.calls))
	}
	c := surf.calls[0]
	if c.dst != (Rect{X: 5, Y: 5, Width: 10, Height: 10}) {
		t.Errorf("dst = %v", c.dst)
	}
	if c.opts.Angle != 30 || c.opts.Origin != (Vec2{X: 5, Y: 5}) || c.opts.Alpha != 255 {
		t.Errorf("opts = %+v", c.opts)
	}

	s.Visible = false
	if err := s.Draw(surf); err != nil || len(surf.calls) != 1 {
		t.Errorf("invisible sprite drew: err %v calls %d", err, len(surf.calls))
	}

	s.Visible = true
	surf.failOn = "image"
	err := s.Draw(surf)
	var rtErr *RenderTargetError
	if !errors.As(err, &rtErr) || !errors.Is(err, errDraw) {
		t.Errorf("Draw error = %v, want RenderTargetError wrapping errDraw", err)
	}
}
