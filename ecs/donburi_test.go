package ecs

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/phanxgames/marquee"

	"github.com/yohamta/donburi"
)

type texture struct{ w, h int }

func (t *texture) Size() (int, int) { return t.w, t.h }

type font struct{}

func (font) MeasureString(s string) (float64, float64) {
	return float64(utf8.RuneCountInString(s)) * 8, 10
}

func (font) LineHeight() float64 { return 10 }

type surface struct {
	images []marquee.Image
	dsts   []marquee.Rect
	fail   bool
}

func (s *surface) Bounds() marquee.Rect { return marquee.Rect{Width: 320, Height: 240} }

func (s *surface) DrawImage(img marquee.Image, dst marquee.Rect, _ marquee.DrawOptions) error {
	if s.fail {
		return errors.New("lost device")
	}
	s.images = append(s.images, img)
	s.dsts = append(s.dsts, dst)
	return nil
}

func (s *surface) FillRect(marquee.Rect, marquee.Color) error { return nil }

func (s *surface) DrawText(marquee.Font, string, marquee.Vec2, float64, marquee.Color) error {
	return nil
}

func newImages(t *testing.T, n int) *marquee.ImageSet {
	t.Helper()
	set, err := marquee.NewImageSet(marquee.FromTexture(&texture{w: 10 * n, h: 10}, marquee.Grid{Width: 10, Height: 10}), nil)
	if err != nil {
		t.Fatal(err)
	}
	return set
}

func TestAnimationSystemAdvancesBeforeDraw(t *testing.T) {
	world := donburi.NewWorld()
	images := newImages(t, 2)
	s := marquee.NewSprite(images, marquee.SpriteOptions{Name: "hero"})
	frames := []marquee.Keyframe{{Frame: 0, Duration: 100 * time.Millisecond}, {Frame: 1, Duration: 100 * time.Millisecond}}
	if err := s.SetAnimation(frames, marquee.LoopInfinite, marquee.LoopForward); err != nil {
		t.Fatal(err)
	}
	AddSprite(world, s, 0)

	surf := &surface{}
	sys := NewAnimationSystem(nil)
	if n := sys.Tick(world, 101*time.Millisecond, surf); n != 0 {
		t.Fatalf("failures = %d, want 0", n)
	}
	if len(surf.images) != 1 || surf.images[0] != images.At(1) {
		t.Errorf("drew %v, want the advanced frame", surf.images)
	}
}

func TestAnimationSystemLayerOrder(t *testing.T) {
	world := donburi.NewWorld()
	for i, layer := range []int{2, 0, 1, 0} {
		s := marquee.NewSprite(newImages(t, 1), marquee.SpriteOptions{})
		s.SetPos(float64(i*20), 0)
		AddSprite(world, s, layer)
	}
	surf := &surface{}
	NewAnimationSystem(nil).Draw(world, surf)

	var xs []float64
	for _, d := range surf.dsts {
		xs = append(xs, d.X)
	}
	want := []float64{20, 60, 40, 0}
	if len(xs) != len(want) {
		t.Fatalf("drew %d sprites, want %d", len(xs), len(want))
	}
	for i := range want {
		if xs[i] != want[i] {
			t.Errorf("draw order X = %v, want %v", xs, want)
			break
		}
	}
}

func TestAnimationSystemCullAndFailures(t *testing.T) {
	world := donburi.NewWorld()
	on := marquee.NewSprite(newImages(t, 1), marquee.SpriteOptions{Name: "on"})
	off := marquee.NewSprite(newImages(t, 1), marquee.SpriteOptions{Name: "off"})
	off.SetPos(1000, 1000)
	AddSprite(world, on, 0)
	AddSprite(world, off, 0)

	var buf bytes.Buffer
	sys := NewAnimationSystem(marquee.NewLogger(&buf, slog.LevelDebug))
	sys.Cull = true

	surf := &surface{}
	sys.Draw(world, surf)
	if len(surf.images) != 1 {
		t.Errorf("culled draw emitted %d images, want 1", len(surf.images))
	}

	surf.fail = true
	if n := sys.Draw(world, surf); n != 1 {
		t.Errorf("failures = %d, want 1", n)
	}
	if !strings.Contains(buf.String(), "ecs: draw failed") {
		t.Errorf("logs = %s, want draw failure", buf.String())
	}
}

func TestMenuSystemPublishesResult(t *testing.T) {
	world := donburi.NewWorld()
	menu, err := marquee.NewMenu(&surface{}, marquee.MenuConfig{Font: font{}})
	if err != nil {
		t.Fatal(err)
	}
	session, err := menu.OpenSelect([]string{"new", "load", "quit"}, marquee.SelectOptions{})
	if err != nil {
		t.Fatal(err)
	}
	OpenMenu(world, "main", session)

	var received []MenuResult
	MenuResultEventType.Subscribe(world, func(_ donburi.World, r MenuResult) {
		received = append(received, r)
	})

	sys := NewMenuSystem()
	sys.Update(world, []marquee.Event{marquee.KeyEvent(marquee.KeyDown)})
	sys.Draw(world)
	if sys.Open(world) != 1 {
		t.Fatalf("Open = %d, want 1", sys.Open(world))
	}
	sys.Update(world, []marquee.Event{marquee.KeyEvent(marquee.KeyEnter)})
	MenuResultEventType.ProcessEvents(world)

	if len(received) != 1 {
		t.Fatalf("received %d results, want 1", len(received))
	}
	r := received[0]
	res, ok := r.Value.(marquee.SelectResult)
	if !ok || r.Name != "main" || !r.Closed || res.Index != 1 || res.Item != "load" {
		t.Errorf("result = %+v", r)
	}
	if sys.Open(world) != 0 {
		t.Errorf("closed menu was not removed")
	}
}

func TestMenuSystemOptionsChanges(t *testing.T) {
	world := donburi.NewWorld()
	menu, err := marquee.NewMenu(&surface{}, marquee.MenuConfig{Font: font{}})
	if err != nil {
		t.Fatal(err)
	}
	set := marquee.NewOptionSet(marquee.Entry("color", marquee.Toggle("Color", "red", "green")))
	session, err := menu.OpenOptions(set, marquee.OptionsOptions{})
	if err != nil {
		t.Fatal(err)
	}
	OpenMenu(world, "settings", session)

	var received []MenuResult
	MenuResultEventType.Subscribe(world, func(_ donburi.World, r MenuResult) {
		received = append(received, r)
	})
	sys := NewMenuSystem()
	sys.Update(world, []marquee.Event{marquee.KeyEvent(marquee.KeyRight)})
	sys.Update(world, []marquee.Event{marquee.KeyEvent(marquee.KeyEscape)})
	MenuResultEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("received %d results, want 2", len(received))
	}
	if received[0].Closed || received[0].Value.(marquee.OptionsResult).Kind != marquee.OptionsChanged {
		t.Errorf("first result = %+v, want an open change", received[0])
	}
	if !received[1].Closed || received[1].Value.(marquee.OptionsResult).Kind != marquee.OptionsCancelled {
		t.Errorf("second result = %+v, want a cancel", received[1])
	}
}
