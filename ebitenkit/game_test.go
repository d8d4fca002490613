package ebitenkit

import (
	"errors"
	"testing"
	"time"

	"github.com/phanxgames/marquee"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestGameRoutesInputToMenu(t *testing.T) {
	g := NewGame(320, 240)
	g.Input = marquee.NewScriptedInput().Key(marquee.KeyDown, marquee.KeyEnter).Key(marquee.KeyEscape)

	var seen int
	g.OnUpdate = func(_ time.Duration, events []marquee.Event) error {
		seen += len(events)
		return nil
	}

	m, err := marquee.NewMenu(g.Surface, marquee.MenuConfig{Font: BitmapFont()})
	if err != nil {
		t.Fatal(err)
	}
	sess, err := m.OpenSelect([]string{"new", "load", "quit"}, marquee.SelectOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if sess.Area().Width <= 0 {
		t.Fatalf("menu laid out against an empty screen: %v", sess.Area())
	}

	var got *marquee.SelectResult
	Show(g, sess, func(r marquee.SelectResult) { got = &r })

	for range 2 {
		if err := g.Update(); err != nil {
			t.Fatal(err)
		}
	}
	if got == nil || got.Index != 1 || got.Item != "load" {
		t.Fatalf("result = %+v, want load", got)
	}
	if g.MenuOpen() {
		t.Error("menu still open after confirming")
	}
	if seen != 0 {
		t.Errorf("OnUpdate saw %d events while the menu was open", seen)
	}

	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	if seen != 1 {
		t.Errorf("OnUpdate saw %d events after the menu closed, want 1", seen)
	}
}


func TestGameChainsMenus(t *testing.T) {
	g := NewGame(320, 240)
	g.Input = marquee.NewScriptedInput().Key(marquee.KeyEnter, marquee.KeyEnter)
	m, err := marquee.NewMenu(g.Surface, marquee.MenuConfig{Font: BitmapFont()})
	if err != nil {
		t.Fatal(err)
	}
	first, _ := m.OpenSelect([]string{"next"}, marquee.SelectOptions{})
	var second *marquee.DialogResult
	Show(g, first, func(marquee.SelectResult) {
		d, _ := m.OpenDialog("done", "", marquee.DialogOptions{Buttons: []string{"OK"}})
		Show(g, d, func(r marquee.DialogResult) { second = &r })
	})

	g.Update()
	if !g.MenuOpen() {
		t.Fatal("menu shown from done was dropped")
	}
	g.Update()
	if second == nil || second.Button != "OK" || g.MenuOpen() {
		t.Errorf("second result = %+v, open %v", second, g.MenuOpen())
	}
}
func TestGameQuit(t *testing.T) {
	g := NewGame(100, 100)
	g.Input = marquee.NewScriptedInput().Quit()
	if err := g.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Update on quit = %v, want ebiten.Termination", err)
	}

	g = NewGame(100, 100)
	g.Input = nil
	g.Quit()
	if err := g.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Update after Quit = %v, want ebiten.Termination", err)
	}
}

func TestGameAdvancesGroups(t *testing.T) {
	tex := NewTexture(ebiten.NewImage(8, 8))
	images, err := marquee.NewImageSet(marquee.FromTexture(tex, marquee.Grid{}), nil)
	if err != nil {
		t.Fatal(err)
	}
	s := marquee.NewSprite(images, marquee.SpriteOptions{Name: "mover"})
	s.Motion.Velocity = &marquee.Vec2{X: 60}

	g := NewGame(100, 100)
	g.Input = nil
	g.Groups = append(g.Groups, marquee.NewSpriteGroup(s))
	g.OnUpdate = func(dt time.Duration, _ []marquee.Event) error {
		if dt != tickDuration() {
			t.Errorf("dt = %v, want one tick", dt)
		}
		return nil
	}
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	want := 60 * tickDuration().Seconds()
	if !approx(s.Pos.X, want) {
		t.Errorf("X = %v, want %v", s.Pos.X, want)
	}

	g.ClearColor = marquee.ColorBlack
	g.Draw(ebiten.NewImage(100, 100))
	if g.Surface.Target() == nil {
		t.Error("Draw did not hand the screen to the surface")
	}

	if w, h := g.Layout(640, 480); w != 100 || h != 100 {
		t.Errorf("Layout = %dx%d, want 100x100", w, h)
	}
}
