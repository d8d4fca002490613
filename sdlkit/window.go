package sdlkit

import (
	"fmt"

	"github.com/phanxgames/marquee"

	"github.com/veandco/go-sdl2/img"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

// Config describes the window opened by Open.
type Config struct {
	Title string
	// Width and Height are the window size and the renderer's logical size.
	Width, Height int32
	// Borderless removes window decorations, as on handheld devices.
	Borderless bool
	// NoVSync presents without waiting for the display refresh.
	NoVSync bool
}

// Window owns the SDL window, renderer and opened game controllers.
type Window struct {
	Window   *sdl.Window
	Renderer *sdl.Renderer

	surface     *Surface
	input       *Input
	controllers []*sdl.GameController
}

// Open initializes SDL, SDL_ttf and SDL_image and opens a window.
func Open(cfg Config) (*Window, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("sdlkit: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_GAMECONTROLLER); err != nil {
		return nil, fmt.Errorf("sdlkit: init: %w", err)
	}
	if err := ttf.Init(); err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdlkit: init ttf: %w", err)
	}
	img.Init(img.INIT_PNG | img.INIT_JPG)

	flags := uint32(sdl.WINDOW_SHOWN)
	if cfg.Borderless {
		flags |= sdl.WINDOW_BORDERLESS
	}
	marquee.Logger().Debug("sdlkit: creating window", "width", cfg.Width, "height", cfg.Height)
	window, err := sdl.CreateWindow(cfg.Title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, cfg.Width, cfg.Height, flags)
	if err != nil {
		quitAll()
		return nil, fmt.Errorf("sdlkit: create window: %w", err)
	}

	rflags := uint32(sdl.RENDERER_ACCELERATED | sdl.RENDERER_TARGETTEXTURE)
	if !cfg.NoVSync {
		rflags |= sdl.RENDERER_PRESENTVSYNC
	}
	renderer, err := sdl.CreateRenderer(window, -1, rflags)
	if err != nil {
		window.Destroy()
		quitAll()
		return nil, fmt.Errorf("sdlkit: create renderer: %w", err)
	}
	renderer.SetLogicalSize(cfg.Width, cfg.Height)
	renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND)

	w := &Window{Window: window, Renderer: renderer}
	w.surface = NewSurface(renderer, int(cfg.Width), int(cfg.Height))
	w.openControllers()
	w.input = NewInput()
	sdl.StartTextInput()
	return w, nil
}

func (w *Window) openControllers() {
	n := sdl.NumJoysticks()
	for i := range n {
		if !sdl.IsGameController(i) {
			continue
		}
		c := sdl.GameControllerOpen(i)
		if c == nil {
			marquee.Logger().Warn("sdlkit: failed to open game controller", "index", i)
			continue
		}
		marquee.Logger().Debug("sdlkit: opened game controller", "index", i, "name", c.Name())
		w.controllers = append(w.controllers, c)
	}
}

// Surface returns the window's render surface.
func (w *Window) Surface() *Surface { return w.surface }

// Input returns the window's event reader.
func (w *Window) Input() *Input { return w.input }

// Loader returns a texture loader bound to the window's renderer.
func (w *Window) Loader() *Loader { return &Loader{Renderer: w.Renderer} }

// Close releases every SDL resource opened by Open.
func (w *Window) Close() {
	sdl.StopTextInput()
	for _, c := range w.controllers {
		c.Close()
	}
	w.controllers = nil
	w.Renderer.Destroy()
	w.Window.Destroy()
	quitAll()
}

func quitAll() {
	img.Quit()
	ttf.Quit()
	sdl.Quit()
}
