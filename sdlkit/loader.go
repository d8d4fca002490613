package sdlkit

import (
	"fmt"
	"io/fs"

	"github.com/phanxgames/marquee"

	"github.com/veandco/go-sdl2/img"
	"github.com/veandco/go-sdl2/sdl"
)

// Loader loads textures with SDL_image. With a nil FS paths are read from
// the operating system.
type Loader struct {
	Renderer *sdl.Renderer
	FS       fs.FS
}

// LoadTexture loads the image at path onto the renderer.
func (l *Loader) LoadTexture(path string) (marquee.Texture, error) {
	if l.Renderer == nil {
		return nil, fmt.Errorf("sdlkit: load %s: no renderer", path)
	}
	var (
		tex *sdl.Texture
		err error
	)
	if l.FS == nil {
		tex, err = img.LoadTexture(l.Renderer, path)
	} else {
		tex, err = l.loadFS(path)
	}
	if err != nil {
		return nil, fmt.Errorf("sdlkit: load %s: %w", path, err)
	}
	return NewTexture(tex)
}

func (l *Loader) loadFS(path string) (*sdl.Texture, error) {
	data, err := fs.ReadFile(l.FS, path)
	if err != nil {
		return nil, err
	}
	rw, err := sdl.RWFromMem(data)
	if err != nil {
		return nil, err
	}
	return img.LoadTextureRW(l.Renderer, rw, true)
}
