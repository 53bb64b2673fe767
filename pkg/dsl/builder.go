package dsl

import (
	"fmt"
	"strings"

	"github.com/mengchil/visage/pkg/domain"
	"github.com/mengchil/visage/pkg/registry"
)

// PresetBuilder accumulates a preset definition. Errors are collected and
// reported once at Build, so definitions read as one fluent chain.
type PresetBuilder struct {
	id     string
	label  string
	color  string
	base   domain.Tree
	motion domain.MotionRules
	errs   []string
}

// New starts a preset definition.
func New(id string) *PresetBuilder {
	return &PresetBuilder{
		id:     id,
		base:   domain.Tree{},
		motion: domain.MotionRules{},
	}
}

// Label sets the human-readable name.
func (b *PresetBuilder) Label(label string) *PresetBuilder {
	b.label = label
	return b
}

// Color sets the latched face color (#RRGGBB).
func (b *PresetBuilder) Color(color string) *PresetBuilder {
	b.color = color
	return b
}

// Channel sets a numeric base channel at a dot-separated path.
func (b *PresetBuilder) Channel(path string, value float64) *PresetBuilder {
	if !b.base.SetNumber(path, value) {
		b.errs = append(b.errs, fmt.Sprintf("channel %q crosses a leaf", path))
	}
	return b
}

// Sine attaches an oscillation rule to a numeric base channel.
func (b *PresetBuilder) Sine(path string, freq, amp float64) *PresetBuilder {
	if !setRule(b.motion, path, domain.RuleNode(freq, amp)) {
		b.errs = append(b.errs, fmt.Sprintf("motion rule %q crosses a leaf", path))
	}
	return b
}

// SharedJitter attaches the reserved shared jitter rule with the given
// amplitude.
func (b *PresetBuilder) SharedJitter(amp float64) *PresetBuilder {
	b.motion[domain.SharedJitterKey] = domain.RuleNode(0, amp)
	return b
}

// Build validates and returns the preset.
func (b *PresetBuilder) Build() (domain.Preset, error) {
	if len(b.errs) > 0 {
		return domain.Preset{}, fmt.Errorf("%w: preset %q: %s",
			domain.ErrInvalidPreset, b.id, strings.Join(b.errs, "; "))
	}
	p := domain.Preset{
		ID:     b.id,
		Label:  b.label,
		Color:  b.color,
		Base:   b.base,
		Motion: b.motion,
	}
	if err := p.Validate(); err != nil {
		return domain.Preset{}, err
	}
	return p.Clone(), nil
}

// MustBuild panics on an invalid definition. For static catalogs only.
func (b *PresetBuilder) MustBuild() domain.Preset {
	p, err := b.Build()
	if err != nil {
		panic(err)
	}
	return p
}

// BuildRegistry compiles preset definitions into a registry.
func BuildRegistry(builders ...*PresetBuilder) (*registry.Registry, error) {
	presets := make([]domain.Preset, 0, len(builders))
	for _, b := range builders {
		p, err := b.Build()
		if err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}
	return registry.New(presets...)
}

func setRule(rules domain.MotionRules, path string, node domain.MotionNode) bool {
	parts := strings.Split(path, ".")
	cur := rules
	for i, p := range parts {
		if i == len(parts)-1 {
			cur[p] = node
			return true
		}
		next, ok := cur[p]
		if !ok {
			sub := domain.MotionRules{}
			cur[p] = domain.GroupNode(sub)
			cur = sub
			continue
		}
		if next.Children == nil {
			return false
		}
		cur = next.Children
	}
	return false
}
