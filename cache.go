package marquee

import (
	"io/fs"
	"os"
	"path/filepath"
)

// ResourceCache memoizes textures and atlas image sets by path. It is owned by
// the caller and lives exactly as long as the caller keeps it; there is no
// process-wide registry. Not safe for concurrent use.
type ResourceCache struct {
	loader   TextureLoader
	fsys     fs.FS
	textures map[string]Texture
	atlases  map[string]*ImageSet
}

// NewResourceCache creates a cache loading textures through loader. When fsys
// is nil, atlas metadata is read from the OS filesystem.
func NewResourceCache(loader TextureLoader, fsys fs.FS) *ResourceCache {
	return &ResourceCache{
		loader:   loader,
		fsys:     fsys,
		textures: make(map[string]Texture),
		atlases:  make(map[string]*ImageSet),
	}
}

// Texture returns the texture at path, loading it on first use.
func (c *ResourceCache) Texture(path string) (Texture, error) {
	if tex, ok := c.textures[path]; ok {
		return tex, nil
	}
	if c.loader == nil {
		return nil, configError("load texture", path+": no texture loader", nil)
	}
	tex, err := c.loader.LoadTexture(path)
	if err != nil {
		return nil, configError("load texture", path, err)
	}
	c.textures[path] = tex
	return tex, nil
}

// Atlas returns the image set described by the atlas file at path. Page
// textures are loaded relative to the atlas file's directory.
func (c *ResourceCache) Atlas(path string) (*ImageSet, error) {
	if set, ok := c.atlases[path]; ok {
		return set, nil
	}
	data, err := c.readFile(path)
	if err != nil {
		return nil, configError("load atlas", path, err)
	}
	doc, err := decodeAtlas(data)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	pages := make([]Texture, len(doc.pages))
	for i, p := range doc.pages {
		if p == "" {
			return nil, configError("load atlas", path+": page has no image path", nil)
		}
		tex, err := c.Texture(filepath.Join(dir, p))
		if err != nil {
			return nil, err
		}
		pages[i] = tex
	}
	set, err := doc.imageSet(pages)
	if err != nil {
		return nil, err
	}
	if set.Len() == 0 {
		return nil, configError("load atlas", path+": atlas has no regions", nil)
	}
	c.atlases[path] = set
	return set, nil
}

// Len returns the number of cached textures.
func (c *ResourceCache) Len() int { return len(c.textures) }

// Clear drops every cached entry.
func (c *ResourceCache) Clear() {
	clear(c.textures)
	clear(c.atlases)
}

func (c *ResourceCache) readFile(path string) ([]byte, error) {
	if c.fsys != nil {
		return fs.ReadFile(c.fsys, filepath.ToSlash(path))
	}
	return os.ReadFile(path)
}
