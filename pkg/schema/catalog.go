package schema

import (
	"fmt"
	"os"
	"sort"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/mengchil/visage/pkg/domain"
)

// Version is the catalog document version this package reads.
const Version = 1

// Document is the raw catalog as decoded from YAML, before any shape
// checking.
type Document struct {
	Version int         `yaml:"version"`
	Entries []PresetDoc `yaml:"presets"`
}

// PresetDoc is one preset entry. Base and Motion stay loosely typed
// until Presets converts them, so one bad entry cannot hide the others.
type PresetDoc struct {
	ID     string         `yaml:"id"`
	Label  string         `yaml:"label"`
	Color  string         `yaml:"color"`
	Base   map[string]any `yaml:"base"`
	Motion map[string]any `yaml:"motion"`
}

// Parse decodes a YAML catalog. A missing version field defaults to the
// current version; an unknown version is rejected outright.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	if doc.Version == 0 {
		doc.Version = Version
	}
	if doc.Version != Version {
		return nil, &CatalogError{Field: "version", Reason: fmt.Sprintf("unsupported version %d", doc.Version)}
	}
	return &doc, nil
}

// ParseFile reads and decodes a catalog file.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return Parse(data)
}

// Presets converts the document into validated domain presets. Every
// problem across every entry is collected into one AggregateError.
func (d *Document) Presets() ([]domain.Preset, error) {
	var errs []error
	out := make([]domain.Preset, 0, len(d.Entries))

	for i, pd := range d.Entries {
		id := pd.ID
		if id == "" {
			errs = append(errs, &CatalogError{Field: fmt.Sprintf("presets[%d].id", i), Reason: "missing"})
			continue
		}

		base, err := domain.FromMap(pd.Base)
		if err != nil {
			errs = append(errs, &CatalogError{Preset: id, Field: "base", Reason: err.Error()})
			continue
		}

		motion, merrs := decodeMotion(pd.Motion, "")
		for _, e := range merrs {
			errs = append(errs, &CatalogError{Preset: id, Field: "motion", Reason: e.Error()})
		}
		if len(merrs) > 0 {
			continue
		}

		p := domain.Preset{ID: id, Label: pd.Label, Color: pd.Color, Base: base, Motion: motion}
		if err := p.Validate(); err != nil {
			errs = append(errs, &CatalogError{Preset: id, Field: "preset", Reason: err.Error()})
			continue
		}
		out = append(out, p)
	}

	if len(errs) > 0 {
		return nil, &AggregateError{Errors: errs}
	}
	return out, nil
}

// decodeMotion walks the loosely typed motion section. A map carrying
// freq or amp is a rule leaf; any other map is a nested group.
func decodeMotion(raw map[string]any, prefix string) (domain.MotionRules, []error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var errs []error
	rules := make(domain.MotionRules, len(raw))

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}

		node, ok := raw[k].(map[string]any)
		if !ok {
			errs = append(errs, fmt.Errorf("rule %q: expected a mapping, got %T", path, raw[k]))
			continue
		}

		if isRuleLeaf(node) {
			var rule domain.MotionRule
			dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
				Result:      &rule,
				ErrorUnused: true,
			})
			if err != nil {
				errs = append(errs, fmt.Errorf("rule %q: %w", path, err))
				continue
			}
			if err := dec.Decode(node); err != nil {
				errs = append(errs, fmt.Errorf("rule %q: %w", path, err))
				continue
			}
			rules[k] = domain.RuleNode(rule.Freq, rule.Amp)
			continue
		}

		children, childErrs := decodeMotion(node, path)
		errs = append(errs, childErrs...)
		if len(childErrs) == 0 {
			rules[k] = domain.GroupNode(children)
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return rules, nil
}

func isRuleLeaf(node map[string]any) bool {
	_, hasFreq := node["freq"]
	_, hasAmp := node["amp"]
	return hasFreq || hasAmp
}
