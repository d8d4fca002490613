package ebitenkit

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/phanxgames/marquee"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Game is an ebiten.Game that advances sprite groups and a camera each tick
// and routes input to the topmost open menu.
type Game struct {
	Surface *Surface
	Input   marquee.InputSource
	Groups  []*marquee.SpriteGroup
	Camera  *marquee.Camera
	// ClearColor fills the screen before drawing. Zero leaves it untouched.
	ClearColor marquee.Color
	ShowFPS    bool
	// OnUpdate runs each tick after menus have taken their input. events is
	// empty while a menu is open.
	OnUpdate func(dt time.Duration, events []marquee.Event) error
	// OnDraw runs after the groups are drawn and before menus.
	OnDraw func(s *Surface)
	Logger *slog.Logger

	width, height int
	menus         []*openMenu
	quit          bool
}

type openMenu struct {
	handle func([]marquee.Event) bool
	draw   func()
	finish func()
}

// NewGame creates a game with a w x h logical screen reading Ebitengine input.
func NewGame(w, h int) *Game {
	return &Game{
		Surface: NewScreenSurface(w, h),
		Input:   NewInput(),
		width:   w,
		height:  h,
	}
}

// Show pushes a modeless menu session. It receives every event until it
// closes, after which done (if non-nil) is called with its result. done may
// show the next menu.
func Show[R any](g *Game, s *marquee.Session[R], done func(R)) {
	g.menus = append(g.menus, &openMenu{
		handle: func(evs []marquee.Event) bool {
			s.Handle(evs)
			return !s.Alive()
		},
		draw: s.Draw,
		finish: func() {
			if done != nil {
				done(s.Result())
			}
		},
	})
}

// MenuOpen reports whether any menu is open.
func (g *Game) MenuOpen() bool { return len(g.menus) > 0 }

// Quit makes the next Update end the game.
func (g *Game) Quit() { g.quit = true }

func (g *Game) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return marquee.Logger()
}

// tickDuration returns the duration of one Ebitengine tick.
func tickDuration() time.Duration {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return time.Second / time.Duration(tps)
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	dt := tickDuration()
	var events []marquee.Event
	if g.Input != nil {
		events = g.Input.Poll()
	}

	if n := len(g.menus); n > 0 {
		if top := g.menus[n-1]; top.handle(events) {
			g.menus[n-1] = nil
			g.menus = g.menus[:n-1]
			top.finish()
		}
		events = nil
	} else {
		for _, ev := range events {
			if ev.Type == marquee.EventQuit {
				return ebiten.Termination
			}
		}
	}

	if g.OnUpdate != nil {
		if err := g.OnUpdate(dt, events); err != nil {
			return err
		}
	}
	if g.Camera != nil {
		g.Camera.Update(dt)
	}
	for _, grp := range g.Groups {
		grp.Update(dt)
	}
	if g.quit {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.Surface.SetTarget(screen)
	if !g.ClearColor.IsZero() {
		screen.Fill(nrgba(g.ClearColor))
	}
	for _, grp := range g.Groups {
		if failed := grp.Draw(g.Surface); failed > 0 {
			g.logger().Debug("ebitenkit: group draw failures", "failed", failed)
		}
	}
	if g.OnDraw != nil {
		g.OnDraw(g.Surface)
	}
	for _, m := range g.menus {
		m.draw()
	}
	if g.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

// Layout implements ebiten.Game with a fixed logical size.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
}

// Run opens a window and runs g until it quits. Zero sizes use the game's
// logical size.
func Run(g *Game, cfg RunConfig) error {
	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		w, h = g.width, g.height
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(w, h)
	if cfg.ShowFPS {
		g.ShowFPS = true
	}
	return ebiten.RunGame(g)
}
