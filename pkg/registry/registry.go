package registry

import (
	"fmt"
	"sort"

	"github.com/mengchil/visage/pkg/domain"
)

// Registry is the static expression preset lookup. Membership never
// changes after construction, so lookups are lock-free and pure; every
// lookup returns a deep copy so callers can never mutate the catalog.
type Registry struct {
	presets map[string]domain.Preset
	ids     []string
}

// New builds a registry from the given presets. Every preset is validated
// and duplicate ids are rejected.
func New(presets ...domain.Preset) (*Registry, error) {
	r := &Registry{presets: make(map[string]domain.Preset, len(presets))}
	for _, p := range presets {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, exists := r.presets[p.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate id %q", domain.ErrInvalidPreset, p.ID)
		}
		r.presets[p.ID] = p.Clone()
		r.ids = append(r.ids, p.ID)
	}
	sort.Strings(r.ids)
	return r, nil
}

// Lookup returns the preset for id, or domain.ErrPresetNotFound.
func (r *Registry) Lookup(id string) (domain.Preset, error) {
	p, ok := r.presets[id]
	if !ok {
		return domain.Preset{}, fmt.Errorf("%w: %q", domain.ErrPresetNotFound, id)
	}
	return p.Clone(), nil
}

// List returns every preset, sorted by id.
func (r *Registry) List() []domain.Preset {
	out := make([]domain.Preset, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.presets[id].Clone())
	}
	return out
}

// IDs returns the sorted preset ids.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}
