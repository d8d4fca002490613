package ebitenkit

import (
	"fmt"
	"io/fs"

	// Decoders for ebitenutil.NewImageFromReader.
	_ "image/jpeg"
	_ "image/png"

	"github.com/phanxgames/marquee"

	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Loader loads textures from files. With a nil FS paths are read from the
// operating system.
type Loader struct {
	FS fs.FS
}

// LoadTexture decodes the PNG or JPEG at path into a texture.
func (l Loader) LoadTexture(path string) (marquee.Texture, error) {
	if l.FS == nil {
		img, _, err := ebitenutil.NewImageFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("ebitenkit: load %s: %w", path, err)
		}
		return NewTexture(img), nil
	}
	f, err := l.FS.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ebitenkit: load %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := ebitenutil.NewImageFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("ebitenkit: decode %s: %w", path, err)
	}
	return NewTexture(img), nil
}
