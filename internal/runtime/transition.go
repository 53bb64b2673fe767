package runtime

import (
	"sync"

	"github.com/mengchil/visage/pkg/domain"
)

// Transition holds the interpolation pair: the slowly moving current base
// and the target it converges toward. A transition begins implicitly
// whenever the target is replaced; there is no explicit start call.
//
// Writers (control surface, remote sync) swap or merge the whole target
// reference under the lock, never individual leaves, so the frame loop can
// never observe a half-written tree.
type Transition struct {
	mu      sync.Mutex
	current domain.Tree
	target  domain.Tree
}

// NewTransition starts with current == target == initial.
func NewTransition(initial domain.Tree) *Transition {
	return &Transition{
		current: initial.Clone(),
		target:  initial.Clone(),
	}
}

// SetTarget atomically replaces the target tree. Concurrent calls before
// the next frame overwrite each other; last write wins.
func (t *Transition) SetTarget(tree domain.Tree) {
	cp := tree.Clone()
	t.mu.Lock()
	t.target = cp
	t.mu.Unlock()
}

// MergeTarget merges a partial tree into the target, bypassing any preset.
// Used by the manual tuning surface.
func (t *Transition) MergeTarget(partial domain.Tree) {
	t.mu.Lock()
	t.target = domain.Merge(t.target, partial)
	t.mu.Unlock()
}

// Target returns a copy of the current target tree.
func (t *Transition) Target() domain.Tree {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.target.Clone()
}

// Advance recomputes current = Lerp(current, target, alpha) and returns
// the new current tree. The returned tree is freshly built and is not
// mutated afterwards. A ShapeError reports leaves that could not be
// blended; all other channels advance normally.
func (t *Transition) Advance(alpha float64) (domain.Tree, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	next, err := domain.Lerp(t.current, t.target, alpha)
	t.current = next
	return next, err
}
