package domain

import (
	"fmt"
	"regexp"
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Preset is a named, immutable target expression: the resting parameter
// tree the engine interpolates toward, the motion rules that animate it,
// and a color latched whenever the preset becomes active.
type Preset struct {
	ID     string
	Label  string
	Color  string
	Base   Tree
	Motion MotionRules
}

// Clone returns a deep copy, so registry consumers can never mutate the
// stored preset.
func (p Preset) Clone() Preset {
	return Preset{
		ID:     p.ID,
		Label:  p.Label,
		Color:  p.Color,
		Base:   p.Base.Clone(),
		Motion: p.Motion.Clone(),
	}
}

// Validate checks the structural invariants: non-empty id, a base tree,
// a well-formed color, and motion rules that resolve to numeric channels
// of the base.
func (p Preset) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidPreset)
	}
	if len(p.Base) == 0 {
		return fmt.Errorf("%w: preset %q has no base tree", ErrInvalidPreset, p.ID)
	}
	if p.Color != "" && !colorPattern.MatchString(p.Color) {
		return fmt.Errorf("%w: preset %q color %q is not #RRGGBB", ErrInvalidPreset, p.ID, p.Color)
	}
	if err := validateRules(p.Base, p.Motion, ""); err != nil {
		return fmt.Errorf("%w: preset %q: %v", ErrInvalidPreset, p.ID, err)
	}
	return nil
}

func validateRules(base Tree, rules MotionRules, prefix string) error {
	for k, n := range rules {
		path := joinPath(prefix, k)
		if prefix == "" && k == SharedJitterKey {
			if n.Rule == nil {
				return fmt.Errorf("%s must be a rule leaf", SharedJitterKey)
			}
			continue
		}
		bv, ok := base[k]
		if !ok {
			return fmt.Errorf("motion rule %q has no base channel", path)
		}
		switch {
		case n.Rule != nil:
			if _, ok := bv.(Number); !ok {
				return fmt.Errorf("motion rule %q targets a non-numeric channel", path)
			}
		case n.Children != nil:
			sub, ok := bv.(Tree)
			if !ok {
				return fmt.Errorf("motion group %q targets a leaf channel", path)
			}
			if err := validateRules(sub, n.Children, path); err != nil {
				return err
			}
		default:
			return fmt.Errorf("motion node %q is empty", path)
		}
	}
	return nil
}
