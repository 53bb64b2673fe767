package domain

// SharedJitterKey is the reserved motion rule key for the shared random
// jitter. Its Amp is drawn once per evaluation and applied identically to
// the gaze and mouth position channels.
const SharedJitterKey = "shared_jitter"

// MotionRule is a sine oscillation: offset = sin(elapsed*Freq*2π) * Amp.
type MotionRule struct {
	Freq float64 `json:"freq" yaml:"freq" mapstructure:"freq"`
	Amp  float64 `json:"amp" yaml:"amp" mapstructure:"amp"`
}

// MotionNode is either a rule leaf or a nested rule group. Exactly one of
// the two fields is set.
type MotionNode struct {
	Rule     *MotionRule
	Children MotionRules
}

// MotionRules mirrors the numeric channels of a base tree with oscillation
// rules. Channels without a rule are left untouched by the synthesizer.
type MotionRules map[string]MotionNode

// Clone returns a deep copy of the rule tree.
func (m MotionRules) Clone() MotionRules {
	if m == nil {
		return nil
	}
	out := make(MotionRules, len(m))
	for k, n := range m {
		cp := MotionNode{}
		if n.Rule != nil {
			r := *n.Rule
			cp.Rule = &r
		}
		if n.Children != nil {
			cp.Children = n.Children.Clone()
		}
		out[k] = cp
	}
	return out
}

// RuleNode wraps a sine rule as a MotionNode.
func RuleNode(freq, amp float64) MotionNode {
	return MotionNode{Rule: &MotionRule{Freq: freq, Amp: amp}}
}

// GroupNode wraps nested rules as a MotionNode.
func GroupNode(children MotionRules) MotionNode {
	return MotionNode{Children: children}
}

// SharedJitter returns the amplitude of the reserved shared jitter rule,
// if present.
func (m MotionRules) SharedJitter() (amp float64, ok bool) {
	n, ok := m[SharedJitterKey]
	if !ok || n.Rule == nil {
		return 0, false
	}
	return n.Rule.Amp, true
}
