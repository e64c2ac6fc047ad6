package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/matheus3301/cmdc/internal/center"
	"gopkg.in/yaml.v3"
)

// File is the on-disk layout of a user catalog.
type File struct {
	Items []center.Item `yaml:"items"`
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) ([]center.Item, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	for i := range f.Items {
		if err := f.Items[i].Validate(); err != nil {
			return nil, fmt.Errorf("catalog item %d: %w", i, err)
		}
	}
	return f.Items, nil
}

// LoadFile reads a user catalog. A missing file yields no items.
func LoadFile(path string) ([]center.Item, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Merge overlays user items on base by UUID. Overridden items keep their
// position; new items are appended in file order.
func Merge(base, user []center.Item) []center.Item {
	out := make([]center.Item, len(base))
	copy(out, base)
	pos := make(map[string]int, len(out))
	for i, it := range out {
		pos[it.UUID] = i
	}
	for _, it := range user {
		if i, ok := pos[it.UUID]; ok {
			out[i] = it
			continue
		}
		pos[it.UUID] = len(out)
		out = append(out, it)
	}
	return out
}
