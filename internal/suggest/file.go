package suggest

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for catalogue files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported catalogue format")

// UnmarshalYAML accepts either a bare label or a mapping.
func (i *Item) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		i.Label = node.Value
		i.Value = node.Value
		return nil
	}
	type plain Item
	var decoded plain
	if err := node.Decode(&decoded); err != nil {
		return err
	}
	*i = Item(decoded)
	return nil
}

type yamlCatalogue struct {
	Items []Item `yaml:"items"`
}

type tomlCatalogue struct {
	Labels []string `toml:"labels"`
	Items  []Item   `toml:"items"`
}

// LoadFile reads a catalogue from disk. The format follows the extension:
// .yaml/.yml, .toml, or anything else as one label per line.
func LoadFile(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalogue: %w", err)
	}
	items, err := Decode(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("decode catalogue %s: %w", path, err)
	}
	return items, nil
}

// Decode parses catalogue data in the format named by ext.
func Decode(ext string, data []byte) ([]Item, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return decodeYAML(data)
	case ".toml":
		return decodeTOML(data)
	case ".txt", ".list", "":
		return decodeText(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func decodeYAML(data []byte) ([]Item, error) {
	var doc yamlCatalogue
	if err := yaml.Unmarshal(data, &doc); err != nil {
		// A top-level sequence is accepted as well.
		var list []Item
		if listErr := yaml.Unmarshal(data, &list); listErr != nil {
			return nil, err
		}
		return normalise(list), nil
	}
	return normalise(doc.Items), nil
}

func decodeTOML(data []byte) ([]Item, error) {
	var doc tomlCatalogue
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	items := append([]Item(Labels(doc.Labels...)), doc.Items...)
	return normalise(items), nil
}

func decodeText(data []byte) ([]Item, error) {
	var items []Item
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		label, hint, _ := strings.Cut(line, "\t")
		items = append(items, Item{Label: label, Value: label, Hint: strings.TrimSpace(hint)})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return normalise(items), nil
}

// normalise trims entries, defaults values to labels, drops blanks and keeps
// the first occurrence of each value.
func normalise(items []Item) []Item {
	trimmed := lo.Map(items, func(item Item, _ int) Item {
		item.Label = strings.TrimSpace(item.Label)
		item.Value = strings.TrimSpace(item.Value)
		item.Hint = strings.TrimSpace(item.Hint)
		if item.Value == "" {
			item.Value = item.Label
		}
		if item.Label == "" {
			item.Label = item.Value
		}
		return item
	})
	present := lo.Filter(trimmed, func(item Item, _ int) bool {
		return item.Label != ""
	})
	return lo.UniqBy(present, func(item Item) string {
		return item.Value
	})
}
