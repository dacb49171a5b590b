package domain

import "time"

// AuditRecord captures one verdict issued by the CLI. The candidate value is
// never stored, only its length.
type AuditRecord struct {
	RunID       string    `json:"run_id"`
	Timestamp   time.Time `json:"timestamp"`
	Action      string    `json:"action"`
	Input       string    `json:"input"`
	Kind        Kind      `json:"kind"`
	Known       bool      `json:"known"`
	Accepted    bool      `json:"accepted"`
	Reason      Reason    `json:"reason,omitempty"`
	Detail      string    `json:"detail,omitempty"`
	ValueLength int       `json:"value_length"`
}

// AuditStats summarizes the audit log.
type AuditStats struct {
	Total    int
	Accepted int
	Rejected int
	ByReason map[Reason]int
}
