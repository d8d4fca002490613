package termkit

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/phanxgames/marquee"
)

// Loader reads text-art textures from files, from FS when set.
type Loader struct {
	FS fs.FS
	// Color is the foreground given to loaded textures. Default white.
	Color marquee.Color
}

// LoadTexture reads path as newline-separated rows of cells.
func (l Loader) LoadTexture(path string) (marquee.Texture, error) {
	var (
		data []byte
		err  error
	)
	if l.FS != nil {
		data, err = fs.ReadFile(l.FS, path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("termkit: load texture %s: %w", path, err)
	}
	c := l.Color
	if c.IsZero() {
		c = marquee.ColorWhite
	}
	return NewTexture(string(data), c), nil
}
