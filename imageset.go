package marquee

import (
	"fmt"
	"sort"
)

// ImageSet is the ordered, optionally named list of images a sprite's
// keyframes index into.
type ImageSet struct {
	images []Image
	names  map[string]int
}

// Len returns the number of images.
func (s *ImageSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.images)
}

// At returns image i. It panics if i is out of range.
func (s *ImageSet) At(i int) Image { return s.images[i] }

// Index returns the position of the named image.
func (s *ImageSet) Index(name string) (int, bool) {
	i, ok := s.names[name]
	return i, ok
}

// Named returns the image registered under name.
func (s *ImageSet) Named(name string) (Image, bool) {
	i, ok := s.names[name]
	if !ok {
		return Image{}, false
	}
	return s.images[i], true
}

// Names returns the registered image names in index order.
func (s *ImageSet) Names() []string {
	out := make([]string, 0, len(s.names))
	for n := range s.names {
		out = append(out, n)
	}
	sort.Slice(out, func(a, b int) bool { return s.names[out[a]] < s.names[out[b]] })
	return out
}

// Name associates name with image i, replacing any previous association.
func (s *ImageSet) Name(name string, i int) error {
	if i < 0 || i >= len(s.images) {
		return configError("name image", fmt.Sprintf("index %d out of range [0,%d)", i, len(s.images)), nil)
	}
	if s.names == nil {
		s.names = make(map[string]int)
	}
	s.names[name] = i
	return nil
}

func (s *ImageSet) add(name string, img Image) {
	if name != "" {
		if s.names == nil {
			s.names = make(map[string]int)
		}
		s.names[name] = len(s.images)
	}
	s.images = append(s.images, img)
}

// Grid describes how a sprite sheet is sliced into frames.
type Grid struct {
	// Width and Height are the frame size in pixels, or the number of
	// columns and rows when ByCount is set.
	Width, Height int
	ByCount       bool
	// Spacing is the gap between adjacent frames.
	Spacing int
	// Margin is the empty border around the sheet.
	Margin int
	// Rects lists explicit source rectangles, relative to the sheet, and
	// overrides the grid fields.
	Rects []Rect
}

type sourceKind uint8

const (
	sourceNone sourceKind = iota
	sourceTexture
	sourceRegion
	sourceAtlasFile
	sourceAtlasData
	sourceImageList
)

// ImageSource is a tagged description of where an ImageSet's images come
// from. Build one with FromTexture, FromRegion, FromAtlasFile, FromAtlasData
// or FromImageList.
type ImageSource struct {
	kind    sourceKind
	texture Texture
	region  Image
	grid    Grid
	path    string
	data    []byte
	pages   []Texture
	images  []Image
}

// FromTexture slices a whole texture with grid.
func FromTexture(tex Texture, grid Grid) ImageSource {
	return ImageSource{kind: sourceTexture, texture: tex, grid: grid}
}

// FromRegion slices a region of a texture with grid.
func FromRegion(img Image, grid Grid) ImageSource {
	return ImageSource{kind: sourceRegion, region: img, grid: grid}
}

// FromAtlasFile loads a TextureAtlas XML or TexturePacker JSON file through
// a ResourceCache. Page textures are resolved relative to the file.
func FromAtlasFile(path string) ImageSource {
	return ImageSource{kind: sourceAtlasFile, path: path}
}

// FromAtlasData parses atlas metadata with already-loaded page textures.
func FromAtlasData(data []byte, pages ...Texture) ImageSource {
	return ImageSource{kind: sourceAtlasData, data: data, pages: pages}
}

// FromImageList uses images as given, in order.
func FromImageList(images ...Image) ImageSource {
	return ImageSource{kind: sourceImageList, images: images}
}

// NewImageSet builds an ImageSet from src. cache is required only for
// FromAtlasFile. A malformed or empty source returns a *ConfigurationError.
func NewImageSet(src ImageSource, cache *ResourceCache) (*ImageSet, error) {
	var (
		set *ImageSet
		err error
	)
	switch src.kind {
	case sourceTexture:
		if src.texture == nil {
			return nil, configError("image set", "nil texture", nil)
		}
		w, h := src.texture.Size()
		set, err = sliceGrid(Image{Texture: src.texture, Src: Rect{Width: float64(w), Height: float64(h)}}, src.grid)
	case sourceRegion:
		if src.region.IsZero() {
			return nil, configError("image set", "nil texture", nil)
		}
		set, err = sliceGrid(src.region, src.grid)
	case sourceAtlasFile:
		if cache == nil {
			return nil, configError("image set", "atlas file requires a resource cache", nil)
		}
		return cache.Atlas(src.path)
	case sourceAtlasData:
		set, err = ParseAtlas(src.data, src.pages)
	case sourceImageList:
		set = &ImageSet{}
		for i, img := range src.images {
			if img.IsZero() {
				return nil, configError("image set", fmt.Sprintf("image %d has no texture", i), nil)
			}
			set.add("", img)
		}
	default:
		return nil, configError("image set", "", ErrUnsupportedSource)
	}
	if err != nil {
		return nil, err
	}
	if set.Len() == 0 {
		return nil, configError("image set", "source produced no images", nil)
	}
	return set, nil
}

// sliceGrid cuts base into frames row by row.
func sliceGrid(base Image, g Grid) (*ImageSet, error) {
	set := &ImageSet{}
	if len(g.Rects) > 0 {
		for _, r := range g.Rects {
			set.add("", Image{Texture: base.Texture, Src: r.Move(base.Src.X, base.Src.Y)})
		}
		return set, nil
	}

	texW, texH := int(base.Src.Width), int(base.Src.Height)
	w, h := g.Width, g.Height
	if g.ByCount {
		if w <= 0 || h <= 0 {
			return nil, configError("image set", "grid column and row counts must be positive", nil)
		}
		w = (texW - 2*g.Margin - (w-1)*g.Spacing) / w
		h = (texH - 2*g.Margin - (h-1)*g.Spacing) / h
	}
	if w <= 0 && h <= 0 {
		w, h = texW, texH
	}
	if w <= 0 || h <= 0 {
		return nil, configError("image set", fmt.Sprintf("invalid frame size %dx%d", w, h), nil)
	}

	for y := g.Margin; y+h <= texH-g.Margin; y += h + g.Spacing {
		for x := g.Margin; x+w <= texW-g.Margin; x += w + g.Spacing {
			set.add("", Image{
				Texture: base.Texture,
				Src: Rect{
					X:      base.Src.X + float64(x),
					Y:      base.Src.Y + float64(y),
					Width:  float64(w),
					Height: float64(h),
				},
			})
		}
	}
	return set, nil
}
