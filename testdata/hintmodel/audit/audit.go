package audit

// Trail marks types whose changes are recorded.
type Trail struct{}
