package marquee

import (
	"fmt"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// Animation is a named, ready-to-play animation.
type Animation struct {
	Name      string
	Frames    []Keyframe
	LoopCount int
	Mode      LoopMode
}

// AnimationLibrary maps animation names to animations.
type AnimationLibrary map[string]Animation

// Names returns the animation names in sorted order.
func (l AnimationLibrary) Names() []string {
	names := make([]string, 0, len(l))
	for n := range l {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (l AnimationLibrary) lookup(op, name string) (Animation, error) {
	a, ok := l[name]
	if !ok {
		return Animation{}, configError(op, name, ErrUnknownAnimation)
	}
	return a, nil
}

// Play sets the named animation on s.
func (l AnimationLibrary) Play(s *Sprite, name string) error {
	a, err := l.lookup("play animation", name)
	if err != nil {
		return err
	}
	return s.SetAnimation(a.Frames, a.LoopCount, a.Mode)
}

// Queue queues the named animation on s.
func (l AnimationLibrary) Queue(s *Sprite, name string) error {
	a, err := l.lookup("queue animation", name)
	if err != nil {
		return err
	}
	return s.QueueAnimation(a.Frames, a.LoopCount, a.Mode)
}

// Interrupt plays the named animation once on s, then resumes the current one.
func (l AnimationLibrary) Interrupt(s *Sprite, name string) error {
	a, err := l.lookup("interrupt", name)
	if err != nil {
		return err
	}
	return s.Interrupt(a.Frames, a.Mode)
}

// overridesDoc holds the keyframe fields shared by the YAML shorthands.
// Durations are in milliseconds; vectors are [x, y]; colors are [r, g, b]
// or [r, g, b, a] in [0, 1].
type overridesDoc struct {
	Duration *float64  `yaml:"duration"`
	Angle    *float64  `yaml:"angle"`
	Alpha    *float64  `yaml:"alpha"`
	Scale    *float64  `yaml:"scale"`
	FlipX    *bool     `yaml:"flip_x"`
	FlipY    *bool     `yaml:"flip_y"`
	Tint     []float64 `yaml:"tint"`
	Pos      []float64 `yaml:"pos"`
	Velocity []float64 `yaml:"velocity"`
	Accel    []float64 `yaml:"accel"`
	Rotation *float64  `yaml:"rotation"`
	Scaling  *float64  `yaml:"scaling"`
	Fading   *float64  `yaml:"fading"`
	Coloring []float64 `yaml:"coloring"`
}

type frameDoc struct {
	Frame        int    `yaml:"frame"`
	Name         string `yaml:"name"`
	overridesDoc `yaml:",inline"`
}

type animationDoc struct {
	Loop         string     `yaml:"loop"`
	Count        int        `yaml:"count"`
	Frames       []int      `yaml:"frames"`
	Range        []int      `yaml:"range"`
	Keyframes    []frameDoc `yaml:"keyframes"`
	overridesDoc `yaml:",inline"`
}

// LoadAnimationsYAML parses a YAML animation library:
//
//	walk:
//	  loop: forward        # or back_forth
//	  count: -1            # LoopInfinite
//	  range: [0, 3]        # inclusive, same as frames: [0, 1, 2, 3]
//	  duration: 100
//	attack:
//	  duration: 80
//	  keyframes:
//	    - {frame: 4, velocity: [120, 0]}
//	    - {name: strike, duration: 150, angle: 15}
//
// Fields set on the animation are shared by every keyframe; keyframe fields
// override them. Malformed or empty animations return a *ConfigurationError.
func LoadAnimationsYAML(data []byte) (AnimationLibrary, error) {
	var docs map[string]animationDoc
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, configError("load animations", "", err)
	}
	lib := make(AnimationLibrary, len(docs))
	for name, d := range docs {
		a, err := d.animation(name)
		if err != nil {
			return nil, err
		}
		lib[name] = a
	}
	return lib, nil
}

func (d animationDoc) animation(name string) (Animation, error) {
	op := "load animation " + name
	mode, ok := ParseLoopMode(d.Loop)
	if !ok {
		return Animation{}, configError(op, fmt.Sprintf("unknown loop mode %q", d.Loop), nil)
	}
	if d.Count < LoopInfinite {
		return Animation{}, configError(op, fmt.Sprintf("invalid count %d", d.Count), nil)
	}
	shapes := 0
	for _, set := range []bool{len(d.Frames) > 0, len(d.Range) > 0, len(d.Keyframes) > 0} {
		if set {
			shapes++
		}
	}
	if shapes == 0 {
		return Animation{}, configError(op, "", ErrEmptyAnimation)
	}
	if shapes > 1 {
		return Animation{}, configError(op, "only one of frames, range or keyframes may be set", nil)
	}

	shared, err := d.overridesDoc.keyframe(Keyframe{})
	if err != nil {
		return Animation{}, configError(op, "", err)
	}
	var frames []Keyframe
	switch {
	case len(d.Range) > 0:
		if len(d.Range) != 2 {
			return Animation{}, configError(op, "range needs [start, end]", nil)
		}
		for _, kf := range KeyRange(d.Range[0], d.Range[1], 0) {
			shared.Frame = kf.Frame
			frames = append(frames, shared)
		}
	case len(d.Frames) > 0:
		for _, f := range d.Frames {
			shared.Frame = f
			frames = append(frames, shared)
		}
	default:
		for i, fd := range d.Keyframes {
			kf, err := fd.overridesDoc.keyframe(shared)
			if err != nil {
				return Animation{}, configError(op, fmt.Sprintf("keyframe %d", i), err)
			}
			kf.Frame, kf.Name = fd.Frame, fd.Name
			frames = append(frames, kf)
		}
	}
	return Animation{Name: name, Frames: frames, LoopCount: d.Count, Mode: mode}, nil
}

// keyframe applies the set fields of o on top of base.
func (o overridesDoc) keyframe(base Keyframe) (Keyframe, error) {
	kf := base
	if o.Duration != nil {
		if *o.Duration < 0 {
			return kf, fmt.Errorf("negative duration %v", *o.Duration)
		}
		kf.Duration = time.Duration(*o.Duration * float64(time.Millisecond))
	}
	kf.Angle = pick(o.Angle, kf.Angle)
	kf.Alpha = pick(o.Alpha, kf.Alpha)
	kf.Scale = pick(o.Scale, kf.Scale)
	kf.FlipX = pick(o.FlipX, kf.FlipX)
	kf.FlipY = pick(o.FlipY, kf.FlipY)
	kf.Rotation = pick(o.Rotation, kf.Rotation)
	kf.Scaling = pick(o.Scaling, kf.Scaling)
	kf.Fading = pick(o.Fading, kf.Fading)

	var err error
	if kf.Pos, err = vecField("pos", o.Pos, kf.Pos); err != nil {
		return kf, err
	}
	if kf.Velocity, err = vecField("velocity", o.Velocity, kf.Velocity); err != nil {
		return kf, err
	}
	if kf.Accel, err = vecField("accel", o.Accel, kf.Accel); err != nil {
		return kf, err
	}
	if kf.Tint, err = colorField("tint", o.Tint, kf.Tint); err != nil {
		return kf, err
	}
	if kf.Coloring, err = colorField("coloring", o.Coloring, kf.Coloring); err != nil {
		return kf, err
	}
	return kf, nil
}

func pick[T any](v, fallback *T) *T {
	if v != nil {
		return v
	}
	return fallback
}

func vecField(field string, v []float64, fallback *Vec2) (*Vec2, error) {
	switch len(v) {
	case 0:
		return fallback, nil
	case 2:
		return &Vec2{X: v[0], Y: v[1]}, nil
	}
	return nil, fmt.Errorf("%s needs 2 components, got %d", field, len(v))
}

func colorField(field string, v []float64, fallback *Color) (*Color, error) {
	switch len(v) {
	case 0:
		return fallback, nil
	case 3:
		return &Color{R: v[0], G: v[1], B: v[2], A: 1}, nil
	case 4:
		return &Color{R: v[0], G: v[1], B: v[2], A: v[3]}, nil
	}
	return nil, fmt.Errorf("%s needs 3 or 4 components, got %d", field, len(v))
}
