package marquee

import (
	"errors"
	"testing"
)

func TestImageSetGrid(t *testing.T) {
	tex := &fakeTexture{w: 64, h: 32}
	set, err := NewImageSet(FromTexture(tex, Grid{Width: 16, Height: 16}), nil)
	if err != nil {
		t.Fatal(err)
	}
	if set.Len() != 8 {
		t.Fatalf("Len = %d, want 8", set.Len())
	}
	// Row-major order.
	if got := set.At(5).Src; got != (Rect{X: 16, Y: 16, Width: 16, Height: 16}) {
		t.Errorf("At(5) = %v", got)
	}
	if set.At(0).Texture != tex {
		t.Error("image is not on the sheet texture")
	}
}

func TestImageSetGridByCount(t *testing.T) {
	tex := &fakeTexture{w: 100, h: 40}
	set, err := NewImageSet(FromTexture(tex, Grid{Width: 4, Height: 2, ByCount: true}), nil)
	if err != nil {
		t.Fatal(err)
	}
	if set.Len() != 8 {
		t.Fatalf("Len = %d, want 8", set.Len())
	}
	if got := set.At(7).Src; got != (Rect{X: 75, Y: 20, Width: 25, Height: 20}) {
		t.Errorf("At(7) = %v", got)
	}
}

func TestImageSetMarginSpacing(t *testing.T) {
	// 2px margin, 1px spacing, 10px frames: 2 + 10 + 1 + 10 + 2 = 25.
	tex := &fakeTexture{w: 25, h: 14}
	set, err := NewImageSet(FromTexture(tex, Grid{Width: 10, Height: 10, Margin: 2, Spacing: 1}), nil)
	if err != nil {
		t.Fatal(err)
	}
	if set.Len() != 2 {
		t.Fatalf("Len = %d, want 2", set.Len())
	}
	if got := set.At(1).Src; got != (Rect{X: 13, Y: 2, Width: 10, Height: 10}) {
		t.Errorf("At(1) = %v", got)
	}
}

func TestImageSetWholeTexture(t *testing.T) {
	set, err := NewImageSet(FromTexture(&fakeTexture{w: 30, h: 20}, Grid{}), nil)
	if err != nil {
		t.Fatal(err)
	}
	if set.Len() != 1 || set.At(0).Src != (Rect{Width: 30, Height: 20}) {
		t.Errorf("whole texture = %d images, first %v", set.Len(), set.At(0).Src)
	}
}

func TestImageSetRegionAndRects(t *testing.T) {
	tex := &fakeTexture{w: 200, h: 200}
	region := Image{Texture: tex, Src: Rect{X: 100, Y: 50, Width: 40, Height: 20}}

	set, err := NewImageSet(FromRegion(region, Grid{Width: 20, Height: 20}), nil)
	if err != nil {
		t.Fatal(err)
	}
	if set.Len() != 2 || set.At(1).Src.X != 120 || set.At(1).Src.Y != 50 {
		t.Errorf("region grid = %d images, second %v", set.Len(), set.At(1).Src)
	}

	rects := Grid{Rects: []Rect{{X: 0, Y: 0, Width: 5, Height: 5}, {X: 10, Y: 10, Width: 3, Height: 4}}}
	set, err = NewImageSet(FromRegion(region, rects), nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := set.At(1).Src; got != (Rect{X: 110, Y: 60, Width: 3, Height: 4}) {
		t.Errorf("explicit rect = %v, want offset by the region origin", got)
	}
}

func TestImageSetImageList(t *testing.T) {
	tex := &fakeTexture{w: 8, h: 8}
	a := Image{Texture: tex, Src: Rect{Width: 4, Height: 4}}
	b := Image{Texture: tex, Src: Rect{X: 4, Width: 4, Height: 4}}
	set, err := NewImageSet(FromImageList(a, b), nil)
	if err != nil {
		t.Fatal(err)
	}
	if set.Len() != 2 || set.At(1) != b {
		t.Errorf("image list = %d images", set.Len())
	}

	if err := set.Name("right", 1); err != nil {
		t.Fatal(err)
	}
	if img, ok := set.Named("right"); !ok || img != b {
		t.Errorf("Named(right) = %v, %v", img, ok)
	}
	if err := set.Name("bad", 2); err == nil {
		t.Error("Name out of range error = nil, want error")
	}
}

func TestImageSetErrors(t *testing.T) {
	tests := []struct {
		name string
		src  ImageSource
	}{
		{"zero source", ImageSource{}},
		{"nil texture", FromTexture(nil, Grid{})},
		{"zero region", FromRegion(Image{}, Grid{})},
		{"bad count", FromTexture(&fakeTexture{w: 10, h: 10}, Grid{Width: 0, Height: 2, ByCount: true})},
		{"negative size", FromTexture(&fakeTexture{w: 10, h: 10}, Grid{Width: -1, Height: 5})},
		{"frames larger than texture", FromTexture(&fakeTexture{w: 10, h: 10}, Grid{Width: 20, Height: 20})},
		{"zero image in list", FromImageList(Image{})},
		{"empty list", FromImageList()},
		{"atlas file without cache", FromAtlasFile("a.json")},
	}
	for _, tt := range tests {
		_, err := NewImageSet(tt.src, nil)
		var cfgErr *ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Errorf("%s: error = %v, want *ConfigurationError", tt.name, err)
		}
	}
	if _, err := NewImageSet(ImageSource{}, nil); !errors.Is(err, ErrUnsupportedSource) {
		t.Errorf("zero source error = %v, want ErrUnsupportedSource", err)
	}
}

func TestImageSetNilLen(t *testing.T) {
	var set *ImageSet
	if set.Len() != 0 {
		t.Errorf("nil Len = %d, want 0", set.Len())
	}
}
