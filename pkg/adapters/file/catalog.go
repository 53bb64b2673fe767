package file

import (
	"github.com/mengchil/visage/pkg/registry"
	"github.com/mengchil/visage/pkg/schema"
)

// LoadCatalog parses a YAML catalog file into a preset registry. The
// returned registry is immutable; reload by calling again and swapping
// the engine's source at the host level.
func LoadCatalog(path string) (*registry.Registry, error) {
	doc, err := schema.ParseFile(path)
	if err != nil {
		return nil, err
	}
	presets, err := doc.Presets()
	if err != nil {
		return nil, err
	}
	return registry.New(presets...)
}
