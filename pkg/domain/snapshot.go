package domain

import "time"

// Snapshot is one frame's fully composited parameter tree, ready for a
// renderer. It is handed out by value with a cloned tree and never mutated
// after publish.
type Snapshot struct {
	Seq          uint64    `json:"seq"`
	At           time.Time `json:"at"`
	ExpressionID string    `json:"expression_id"`
	Color        string    `json:"color"`
	Params       Tree      `json:"params"`
}

// Clone returns a copy safe to hand across goroutines.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Params = s.Params.Clone()
	return out
}
