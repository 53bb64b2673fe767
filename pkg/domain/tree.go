package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Value is a single node in a parameter tree: a number, a text channel
// (e.g. a color), or a nested Tree. The variant is closed on purpose so
// merge/interpolate/add can reject shape mismatches explicitly instead of
// silently coercing.
type Value interface {
	isValue()
}

// Number is a numeric channel value.
type Number float64

// Text is an atomic string channel value. It is never interpolated, only
// replaced.
type Text string

// Tree maps channel names to values. Nested trees group related channels
// (eyes, gaze, mouth).
type Tree map[string]Value

func (Number) isValue() {}
func (Text) isValue()   {}
func (Tree) isValue()   {}

// Clone returns a deep copy of the tree.
func (t Tree) Clone() Tree {
	if t == nil {
		return nil
	}
	out := make(Tree, len(t))
	for k, v := range t {
		switch val := v.(type) {
		case Tree:
			out[k] = val.Clone()
		default:
			out[k] = val
		}
	}
	return out
}

// At resolves a dot-separated channel path ("eyes.left.openness").
func (t Tree) At(path string) (Value, bool) {
	parts := strings.Split(path, ".")
	cur := t
	for i, p := range parts {
		v, ok := cur[p]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		sub, ok := v.(Tree)
		if !ok {
			return nil, false
		}
		cur = sub
	}
	return nil, false
}

// NumberAt resolves a path to a numeric channel.
func (t Tree) NumberAt(path string) (float64, bool) {
	v, ok := t.At(path)
	if !ok {
		return 0, false
	}
	n, ok := v.(Number)
	return float64(n), ok
}

// SetNumber writes a numeric channel at a dot-separated path, creating
// intermediate trees as needed. Returns false if the path crosses a
// non-tree value.
func (t Tree) SetNumber(path string, val float64) bool {
	parts := strings.Split(path, ".")
	cur := t
	for i, p := range parts {
		if i == len(parts)-1 {
			cur[p] = Number(val)
			return true
		}
		next, ok := cur[p]
		if !ok {
			sub := Tree{}
			cur[p] = sub
			cur = sub
			continue
		}
		sub, ok := next.(Tree)
		if !ok {
			return false
		}
		cur = sub
	}
	return false
}

// Paths returns every leaf path in the tree, sorted, for deterministic
// iteration and diagnostics.
func (t Tree) Paths() []string {
	var out []string
	t.walk("", func(path string, _ Value) {
		out = append(out, path)
	})
	sort.Strings(out)
	return out
}

func (t Tree) walk(prefix string, fn func(path string, v Value)) {
	for k, v := range t {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		if sub, ok := v.(Tree); ok {
			sub.walk(path, fn)
			continue
		}
		fn(path, v)
	}
}

// ShapeError reports leaf paths whose shapes did not match during a tree
// operation. The operation still completes for all unaffected channels.
type ShapeError struct {
	Op    string
	Paths []string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: shape mismatch at %s", e.Op, strings.Join(e.Paths, ", "))
}

type shapeCollector struct {
	op    string
	paths []string
}

func (c *shapeCollector) add(path string) {
	c.paths = append(c.paths, path)
}

func (c *shapeCollector) err() error {
	if len(c.paths) == 0 {
		return nil
	}
	sort.Strings(c.paths)
	return &ShapeError{Op: c.op, Paths: c.paths}
}

// Lerp interpolates current toward target by alpha and returns the new
// tree. Per leaf: numbers blend as c + (t-c)*alpha; text is replaced
// atomically; keys present only in current are preserved; keys present
// only in target are adopted at their target value (there is no blend
// origin for them). Mismatched leaves keep the current value and are
// reported in a ShapeError; siblings are unaffected.
func Lerp(current, target Tree, alpha float64) (Tree, error) {
	c := &shapeCollector{op: "lerp"}
	out := lerpTree(current, target, alpha, "", c)
	return out, c.err()
}

func lerpTree(current, target Tree, alpha float64, prefix string, c *shapeCollector) Tree {
	out := make(Tree, len(current))
	for k, cv := range current {
		path := joinPath(prefix, k)
		tv, ok := target[k]
		if !ok {
			out[k] = cloneValue(cv)
			continue
		}
		out[k] = lerpValue(cv, tv, alpha, path, c)
	}
	for k, tv := range target {
		if _, ok := current[k]; ok {
			continue
		}
		out[k] = cloneValue(tv)
	}
	return out
}

func lerpValue(cv, tv Value, alpha float64, path string, c *shapeCollector) Value {
	switch cur := cv.(type) {
	case Number:
		t, ok := tv.(Number)
		if !ok {
			c.add(path)
			return cur
		}
		return cur + (t-cur)*Number(alpha)
	case Text:
		t, ok := tv.(Text)
		if !ok {
			c.add(path)
			return cur
		}
		return t
	case Tree:
		t, ok := tv.(Tree)
		if !ok {
			c.add(path)
			return cur.Clone()
		}
		return lerpTree(cur, t, alpha, path, c)
	default:
		c.add(path)
		return cv
	}
}

// Add applies a sparse offset tree additively onto base and returns the
// new tree. Channels absent from the offset are untouched. Offsets that
// target a text channel, or a channel the base does not have, are skipped
// and reported.
func Add(base, offset Tree) (Tree, error) {
	c := &shapeCollector{op: "add"}
	out := addTree(base, offset, "", c)
	return out, c.err()
}

func addTree(base, offset Tree, prefix string, c *shapeCollector) Tree {
	out := base.Clone()
	for k, ov := range offset {
		path := joinPath(prefix, k)
		bv, ok := out[k]
		if !ok {
			c.add(path)
			continue
		}
		switch off := ov.(type) {
		case Number:
			n, ok := bv.(Number)
			if !ok {
				c.add(path)
				continue
			}
			out[k] = n + off
		case Tree:
			sub, ok := bv.(Tree)
			if !ok {
				c.add(path)
				continue
			}
			out[k] = addTree(sub, off, path, c)
		default:
			c.add(path)
		}
	}
	return out
}

// Merge overlays partial onto base and returns the new tree. Values in the
// overlay replace or descend into the base; keys new to the base are
// adopted. Used by the manual tuning surface, which may introduce channels
// the active preset does not carry.
func Merge(base, overlay Tree) Tree {
	out := base.Clone()
	for k, ov := range overlay {
		if sub, ok := ov.(Tree); ok {
			if cur, ok := out[k].(Tree); ok {
				out[k] = Merge(cur, sub)
				continue
			}
		}
		out[k] = cloneValue(ov)
	}
	return out
}

func cloneValue(v Value) Value {
	if sub, ok := v.(Tree); ok {
		return sub.Clone()
	}
	return v
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// FromMap converts loosely typed data (JSON/YAML decoding output) into a
// Tree. Unsupported leaf types are an error.
func FromMap(m map[string]any) (Tree, error) {
	out := make(Tree, len(m))
	for k, v := range m {
		val, err := fromAny(v)
		if err != nil {
			return nil, fmt.Errorf("channel %q: %w", k, err)
		}
		out[k] = val
	}
	return out, nil
}

func fromAny(v any) (Value, error) {
	switch val := v.(type) {
	case float64:
		return Number(val), nil
	case float32:
		return Number(val), nil
	case int:
		return Number(val), nil
	case int64:
		return Number(val), nil
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return nil, err
		}
		return Number(f), nil
	case string:
		return Text(val), nil
	case map[string]any:
		return FromMap(val)
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

// MarshalJSON renders the tree as a plain JSON object.
func (t Tree) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.toAny())
}

// UnmarshalJSON parses a plain JSON object into the variant form.
func (t *Tree) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	tree, err := FromMap(raw)
	if err != nil {
		return err
	}
	*t = tree
	return nil
}

func (t Tree) toAny() map[string]any {
	out := make(map[string]any, len(t))
	for k, v := range t {
		switch val := v.(type) {
		case Number:
			out[k] = float64(val)
		case Text:
			out[k] = string(val)
		case Tree:
			out[k] = val.toAny()
		}
	}
	return out
}
