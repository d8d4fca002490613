package marquee

import (
	"errors"
	"strings"
	"testing"
)

// --- Test fixtures ---

const singlePageJSON = `{
  "frames": {
    "hero.png": {
      "frame": {"x": 0, "y": 0, "w": 64, "h": 64},
      "rotated": false,
      "trimmed": false,
      "sourceSize": {"w": 64, "h": 64}
    },
    "enemy.png": {
      "frame": {"x": 64, "y": 0, "w": 32, "h": 48},
      "rotated": false,
      "trimmed": false,
      "sourceSize": {"w": 32, "h": 48}
    },
    "coin.png": {
      "frame": {"x": 100, "y": 50, "w": 16, "h": 16},
      "rotated": false,
      "trimmed": true,
      "sourceSize": {"w": 16, "h": 16}
    }
  },
  "meta": {
    "image": "atlas.png",
    "size": {"w": 1024, "h": 1024}
  }
}`

const arrayJSON = `{
  "frames": [
    {"filename": "walk_0", "frame": {"x": 0, "y": 0, "w": 8, "h": 8}},
    {"filename": "walk_1", "frame": {"x": 8, "y": 0, "w": 8, "h": 8}}
  ],
  "meta": {"image": "walk.png"}
}`

const multiPageJSON = `{
  "textures": [
    {
      "image": "atlas-0.png",
      "frames": {
        "page0_sprite.png": {"frame": {"x": 0, "y": 0, "w": 64, "h": 64}}
      }
    },
    {
      "image": "atlas-1.png",
      "frames": {
        "page1_sprite.png": {"frame": {"x": 10, "y": 20, "w": 50, "h": 50}}
      }
    }
  ]
}`

const textureAtlasXML = `<?xml version="1.0" encoding="UTF-8"?>
<TextureAtlas imagePath="sheet.png">
  <SubTexture name="buttonBlue" x="0" y="78" width="222" height="39"/>
  <SubTexture name="buttonRed" x="0" y="117" width="222" height="39"/>
  <SubTexture name="arrowLeft" x="222" y="0" width="22" height="21"/>
</TextureAtlas>`

// --- ParseAtlas tests ---

func TestParseAtlas_HashPreservesOrder(t *testing.T) {
	page := &fakeTexture{w: 1024, h: 1024}
	set, err := ParseAtlas([]byte(singlePageJSON), []Texture{page})
	if err != nil {
		t.Fatalf("ParseAtlas: %v", err)
	}
	if set.Len() != 3 {
		t.Fatalf("Len = %d, want 3", set.Len())
	}
	want := []string{"hero.png", "enemy.png", "coin.png"}
	if got := strings.Join(set.Names(), ","); got != strings.Join(want, ",") {
		t.Errorf("Names = %s, want %v", got, want)
	}
	enemy, ok := set.Named("enemy.png")
	if !ok {
		t.Fatal("enemy.png not registered")
	}
	if enemy.Src != (Rect{X: 64, Width: 32, Height: 48}) {
		t.Errorf("enemy Src = %v", enemy.Src)
	}
	if enemy.Texture != page {
		t.Error("enemy is not on the page texture")
	}
	if i, _ := set.Index("coin.png"); i != 2 {
		t.Errorf("Index(coin.png) = %d, want 2", i)
	}
}

func TestParseAtlas_Array(t *testing.T) {
	set, err := ParseAtlas([]byte(arrayJSON), []Texture{&fakeTexture{w: 16, h: 8}})
	if err != nil {
		t.Fatalf("ParseAtlas: %v", err)
	}
	img, ok := set.Named("walk_1")
	if !ok || img.Src.X != 8 {
		t.Errorf("walk_1 = %v, %v", img, ok)
	}
}

func TestParseAtlas_MultiPage(t *testing.T) {
	p0, p1 := &fakeTexture{w: 64, h: 64}, &fakeTexture{w: 64, h: 128}
	set, err := ParseAtlas([]byte(multiPageJSON), []Texture{p0, p1})
	if err != nil {
		t.Fatalf("ParseAtlas: %v", err)
	}
	img, _ := set.Named("page1_sprite.png")
	if img.Texture != p1 {
		t.Error("page1_sprite.png is not on the second page")
	}
	if img.Src != (Rect{X: 10, Y: 20, Width: 50, Height: 50}) {
		t.Errorf("Src = %v", img.Src)
	}

	if _, err := ParseAtlas([]byte(multiPageJSON), []Texture{p0}); err == nil {
		t.Error("missing page error = nil, want error")
	}
}

func TestParseAtlas_XML(t *testing.T) {
	page := &fakeTexture{w: 256, h: 256}
	set, err := ParseAtlas([]byte(textureAtlasXML), []Texture{page})
	if err != nil {
		t.Fatalf("ParseAtlas: %v", err)
	}
	if set.Len() != 3 {
		t.Fatalf("Len = %d, want 3", set.Len())
	}
	red, _ := set.Named("buttonRed")
	if red.Src != (Rect{Y: 117, Width: 222, Height: 39}) {
		t.Errorf("buttonRed Src = %v", red.Src)
	}
	doc, _ := decodeAtlas([]byte(textureAtlasXML))
	if len(doc.pages) != 1 || doc.pages[0] != "sheet.png" {
		t.Errorf("pages = %v, want [sheet.png]", doc.pages)
	}
}

func TestParseAtlas_Invalid(t *testing.T) {
	page := []Texture{&fakeTexture{w: 1, h: 1}}
	bad := []string{
		"",
		"   ",
		"{not json",
		`{"meta": {"image": "x.png"}}`,
		`{"frames": [1, 2]}`,
		"<TextureAtlas><SubTexture",
		"<Other/>",
	}
	for _, data := range bad {
		_, err := ParseAtlas([]byte(data), page)
		var cfgErr *ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Errorf("ParseAtlas(%q) error = %v, want *ConfigurationError", data, err)
		}
	}
}

func TestImageSetFromAtlasData(t *testing.T) {
	set, err := NewImageSet(FromAtlasData([]byte(textureAtlasXML), &fakeTexture{w: 256, h: 256}), nil)
	if err != nil {
		t.Fatal(err)
	}
	if img, ok := set.Named("arrowLeft"); !ok || img.Src.Width != 22 {
		t.Errorf("arrowLeft = %v, %v", img, ok)
	}

	empty := `<TextureAtlas imagePath="a.png"></TextureAtlas>`
	if _, err := NewImageSet(FromAtlasData([]byte(empty), &fakeTexture{}), nil); err == nil {
		t.Error("empty atlas error = nil, want error")
	}
}
