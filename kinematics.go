package marquee

import "math"

// integrate applies one explicit Euler step of dt seconds to every active
// motion channel.
func (s *Sprite) integrate(dt float64) {
	m := &s.Motion
	if m.Accel != nil {
		if m.Velocity == nil {
			m.Velocity = &Vec2{}
		}
		m.Velocity.X += m.Accel.X * dt
		m.Velocity.Y += m.Accel.Y * dt
	}
	if m.Velocity != nil {
		m.Velocity.X = clampMagnitude(m.Velocity.X, s.MaxVelocity)
		m.Velocity.Y = clampMagnitude(m.Velocity.Y, s.MaxVelocity)
		s.Pos.X += m.Velocity.X * dt
		s.Pos.Y += m.Velocity.Y * dt
	}
	if m.Rotation != nil {
		s.Angle += *m.Rotation * dt
	}
	if m.Scaling != nil {
		s.Scale += *m.Scaling * dt
		if s.Scale < 0 {
			s.Scale = 0
		}
	}
	if m.Fading != nil {
		s.Alpha = clamp(s.Alpha-*m.Fading*dt, 0, 255)
	}
	if m.Coloring != nil {
		s.Tint = Color{
			R: clamp(s.Tint.R+m.Coloring.R*dt, 0, 1),
			G: clamp(s.Tint.G+m.Coloring.G*dt, 0, 1),
			B: clamp(s.Tint.B+m.Coloring.B*dt, 0, 1),
			A: clamp(s.Tint.A+m.Coloring.A*dt, 0, 1),
		}
	}
}

// clampMagnitude limits |v| to limit, preserving sign.
func clampMagnitude(v, limit float64) float64 {
	if limit > 0 && math.Abs(v) > limit {
		return math.Copysign(limit, v)
	}
	return v
}

// updateRects recomputes the world-space bounds, the hit rectangle and the
// camera-transformed destination rectangle from the current transform.
func (s *Sprite) updateRects() {
	size := s.image.Rect()
	world := Rect{
		X:      s.Pos.X - s.Anchor.X,
		Y:      s.Pos.Y - s.Anchor.Y,
		Width:  size.Width,
		Height: size.Height,
	}
	if s.Scale != 1 {
		world = world.Inflate(size.Width*(s.Scale-1), size.Height*(s.Scale-1))
	}

	if s.Hitbox != nil {
		s.hit = Rect{
			X:      s.Pos.X - s.Anchor.X + s.Hitbox.X,
			Y:      s.Pos.Y - s.Anchor.Y + s.Hitbox.Y,
			Width:  s.Hitbox.Width,
			Height: s.Hitbox.Height,
		}
	} else {
		s.hit = world
	}
	s.dest = s.Camera.Apply(world)
}

// SetPos moves the sprite and refreshes its rectangles immediately.
func (s *Sprite) SetPos(x, y float64) {
	s.Pos = Vec2{X: x, Y: y}
	s.updateRects()
}

// DestRect returns the screen-space rectangle the current image is drawn into.
func (s *Sprite) DestRect() Rect { return s.dest }

// Rect returns the world-space collision rectangle.
func (s *Sprite) Rect() Rect { return s.hit }

// Velocity returns the current velocity, or zero when the channel is off.
func (s *Sprite) Velocity() Vec2 {
	if s.Motion.Velocity == nil {
		return Vec2{}
	}
	return *s.Motion.Velocity
}

// DrawOptions returns the per-draw render state for the current transform.
func (s *Sprite) DrawOptions() DrawOptions {
	return DrawOptions{
		Angle:  s.Angle,
		Origin: Vec2{X: s.dest.Width / 2, Y: s.dest.Height / 2},
		Flip:   s.Flip,
		Tint:   s.Tint,
		Alpha:  s.Alpha,
	}
}

// Draw renders the current image into its destination rectangle.
func (s *Sprite) Draw(surface Surface) error {
	if !s.Visible || s.image.IsZero() {
		return nil
	}
	if err := surface.DrawImage(s.image, s.dest, s.DrawOptions()); err != nil {
		return &RenderTargetError{Op: "sprite " + s.Name, Err: err}
	}
	return nil
}
