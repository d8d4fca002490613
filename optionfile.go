package marquee

import (
	"strconv"

	"gopkg.in/yaml.v3"
)

// LoadOptionsYAML parses an option document. The top level is either a
// mapping of key to descriptor, whose order is preserved, or a sequence of
// descriptors keyed by position. Descriptors take the forms accepted by
// NormalizeOptions; malformed ones are skipped and logged.
//
//	difficulty: [easy, normal, hard]
//	volume: {type: slider, text: Volume, min: 0, max: 10, step: 1}
//	heading: Settings
//	start: [Start game]
func LoadOptionsYAML(data []byte) (*OptionSet, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, configError("load options", "invalid YAML", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, configError("load options", "empty document", nil)
	}
	doc := root.Content[0]

	set := NewOptionSet()
	add := func(key string, n *yaml.Node) {
		var v any
		if err := n.Decode(&v); err != nil {
			Logger().Warn("options: skipping descriptor", "key", key, "line", n.Line, "error", err)
			return
		}
		o, err := normalizeOption(v)
		if err != nil {
			Logger().Warn("options: skipping descriptor", "key", key, "line", n.Line, "error", err)
			return
		}
		set.Set(key, o)
	}

	switch doc.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(doc.Content); i += 2 {
			add(doc.Content[i].Value, doc.Content[i+1])
		}
	case yaml.SequenceNode:
		for i, n := range doc.Content {
			add(strconv.Itoa(i), n)
		}
	default:
		return nil, configError("load options", "top level must be a mapping or sequence", nil)
	}
	return set, nil
}
