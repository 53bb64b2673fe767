package runtime

import (
	"math"
	"math/rand"
	"time"

	"github.com/mengchil/visage/pkg/domain"
)

// Synthesizer evaluates a preset's motion rules against elapsed time,
// producing a sparse additive offset tree. Phase is measured from a single
// monotonic reference, so motion stays continuous across expression
// transitions.
type Synthesizer struct {
	rnd *rand.Rand
}

// NewSynthesizer creates a synthesizer. A nil source falls back to a
// time-seeded one.
func NewSynthesizer(rnd *rand.Rand) *Synthesizer {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Synthesizer{rnd: rnd}
}

// Evaluate renders the rule tree at the given elapsed time. Only channels
// referenced by rules appear in the output; no rules means an empty tree.
// Evaluate is called from the frame loop only and is not safe for
// concurrent use.
func (s *Synthesizer) Evaluate(rules domain.MotionRules, elapsed time.Duration) domain.Tree {
	out := domain.Tree{}
	if len(rules) == 0 {
		return out
	}

	evalRules(rules, elapsed, out)

	if amp, ok := rules.SharedJitter(); ok && amp > 0 {
		// one draw per evaluation, applied identically to the cluster
		draw := (s.rnd.Float64() - 0.5) * amp
		for _, path := range domain.SharedJitterPaths {
			prev, _ := out.NumberAt(path)
			out.SetNumber(path, prev+draw)
		}
	}
	return out
}

func evalRules(rules domain.MotionRules, elapsed time.Duration, out domain.Tree) {
	secs := elapsed.Seconds()
	for k, n := range rules {
		if k == domain.SharedJitterKey {
			continue
		}
		switch {
		case n.Rule != nil:
			out[k] = domain.Number(math.Sin(secs*n.Rule.Freq*2*math.Pi) * n.Rule.Amp)
		case n.Children != nil:
			sub := domain.Tree{}
			evalRules(n.Children, elapsed, sub)
			out[k] = sub
		}
	}
}
