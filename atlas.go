package marquee

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
)

// atlasFrame is one named region parsed from atlas metadata.
type atlasFrame struct {
	name string
	page int
	rect Rect
}

// atlasDoc is the format-independent result of parsing an atlas file.
type atlasDoc struct {
	pages  []string
	frames []atlasFrame
}

// ParseAtlas parses TextureAtlas XML or TexturePacker JSON metadata and maps
// its regions onto pages. Images are indexed in file order and registered
// under their atlas names.
func ParseAtlas(data []byte, pages []Texture) (*ImageSet, error) {
	doc, err := decodeAtlas(data)
	if err != nil {
		return nil, err
	}
	return doc.imageSet(pages)
}

func (d atlasDoc) imageSet(pages []Texture) (*ImageSet, error) {
	set := &ImageSet{}
	for _, f := range d.frames {
		if f.page < 0 || f.page >= len(pages) || pages[f.page] == nil {
			return nil, configError("parse atlas", fmt.Sprintf("region %q references missing page %d", f.name, f.page), nil)
		}
		set.add(f.name, Image{Texture: pages[f.page], Src: f.rect})
	}
	return set, nil
}

func decodeAtlas(data []byte) (atlasDoc, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return atlasDoc{}, configError("parse atlas", "empty atlas data", nil)
	}
	if trimmed[0] == '<' {
		return decodeXMLAtlas(trimmed)
	}
	return decodeJSONAtlas(trimmed)
}

// --- TextureAtlas XML ---

type xmlAtlas struct {
	XMLName     xml.Name        `xml:"TextureAtlas"`
	ImagePath   string          `xml:"imagePath,attr"`
	SubTextures []xmlSubTexture `xml:"SubTexture"`
}

type xmlSubTexture struct {
	Name   string  `xml:"name,attr"`
	X      float64 `xml:"x,attr"`
	Y      float64 `xml:"y,attr"`
	Width  float64 `xml:"width,attr"`
	Height float64 `xml:"height,attr"`
}

func decodeXMLAtlas(data []byte) (atlasDoc, error) {
	var a xmlAtlas
	if err := xml.Unmarshal(data, &a); err != nil {
		return atlasDoc{}, configError("parse atlas", "not a TextureAtlas XML document", err)
	}
	doc := atlasDoc{pages: []string{a.ImagePath}}
	for _, st := range a.SubTextures {
		doc.frames = append(doc.frames, atlasFrame{
			name: st.Name,
			rect: Rect{X: st.X, Y: st.Y, Width: st.Width, Height: st.Height},
		})
	}
	return doc, nil
}

// --- TexturePacker JSON ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Filename string   `json:"filename"`
	Frame    jsonRect `json:"frame"`
}

type jsonTexturePage struct {
	Image  string          `json:"image"`
	Frames json.RawMessage `json:"frames"`
}

type jsonMeta struct {
	Image string `json:"image"`
}

// decodeJSONAtlas supports the hash format (single "frames" object), the
// array format ("frames" list with filenames) and the multi-page format
// ("textures" array with per-page frame lists).
func decodeJSONAtlas(data []byte) (atlasDoc, error) {
	var probe struct {
		Frames   json.RawMessage   `json:"frames"`
		Textures []jsonTexturePage `json:"textures"`
		Meta     jsonMeta          `json:"meta"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return atlasDoc{}, configError("parse atlas", "invalid atlas JSON", err)
	}

	var doc atlasDoc
	switch {
	case probe.Textures != nil:
		for i, tex := range probe.Textures {
			doc.pages = append(doc.pages, tex.Image)
			if err := appendJSONFrames(&doc, tex.Frames, i); err != nil {
				return atlasDoc{}, err
			}
		}
	case probe.Frames != nil:
		doc.pages = []string{probe.Meta.Image}
		if err := appendJSONFrames(&doc, probe.Frames, 0); err != nil {
			return atlasDoc{}, err
		}
	default:
		return atlasDoc{}, configError("parse atlas", `atlas JSON has neither "frames" nor "textures" key`, nil)
	}
	return doc, nil
}

// appendJSONFrames decodes a frames value, either an object keyed by name or
// an array of entries with a filename, preserving document order.
func appendJSONFrames(doc *atlasDoc, raw json.RawMessage, page int) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	add := func(name string, f jsonFrame) {
		r := Rect{X: float64(f.Frame.X), Y: float64(f.Frame.Y), Width: float64(f.Frame.W), Height: float64(f.Frame.H)}
		doc.frames = append(doc.frames, atlasFrame{name: name, page: page, rect: r})
	}

	if raw[0] == '[' {
		var frames []jsonFrame
		if err := json.Unmarshal(raw, &frames); err != nil {
			return configError("parse atlas", "invalid frames array", err)
		}
		for _, f := range frames {
			add(f.Filename, f)
		}
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return configError("parse atlas", "invalid frames object", err)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return configError("parse atlas", "invalid frames object", err)
		}
		name, _ := tok.(string)
		var f jsonFrame
		if err := dec.Decode(&f); err != nil {
			return configError("parse atlas", fmt.Sprintf("invalid frame %q", name), err)
		}
		add(name, f)
	}
	return nil
}
