package ports

import "github.com/mengchil/visage/pkg/domain"

// PresetSource is the engine's read-only view of the expression registry.
// Implementations are immutable after construction; lookups are pure.
type PresetSource interface {
	// Lookup returns the preset for the given id.
	// Returns domain.ErrPresetNotFound for unknown ids.
	Lookup(id string) (domain.Preset, error)

	// List returns every preset, sorted by id.
	List() []domain.Preset
}
