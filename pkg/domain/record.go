package domain

import "time"

// ExpressionRecord is the persisted trace of the last applied expression,
// used to restore the face after a restart.
type ExpressionRecord struct {
	ExpressionID string    `json:"expression_id"`
	Source       string    `json:"source"`
	AppliedAt    time.Time `json:"applied_at"`
}
