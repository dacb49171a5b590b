package domain

// Reason classifies a rejected value.
type Reason string

const (
	ReasonNone                 Reason = ""
	ReasonEmptyRequiredInput   Reason = "empty-required-input"
	ReasonShellInjection       Reason = "shell-injection-detected"
	ReasonPathTraversal        Reason = "path-traversal-detected"
	ReasonFormatInvalid        Reason = "format-invalid"
	ReasonUnknownInputRejected Reason = "unknown-input-rejected"
)

// Reasons lists every rejection reason.
func Reasons() []Reason {
	return []Reason{
		ReasonEmptyRequiredInput,
		ReasonShellInjection,
		ReasonPathTraversal,
		ReasonFormatInvalid,
		ReasonUnknownInputRejected,
	}
}

// Verdict is the outcome of one validation call.
type Verdict struct {
	Accepted bool   `json:"accepted"`
	Reason   Reason `json:"reason,omitempty"`
	Detail   string `json:"detail,omitempty"`
	Kind     Kind   `json:"kind"`
	Known    bool   `json:"known"`
}

// Accept builds an accepting verdict.
func Accept(kind Kind, known bool) Verdict {
	return Verdict{Accepted: true, Kind: kind, Known: known}
}

// Reject builds a rejecting verdict.
func Reject(kind Kind, known bool, reason Reason, detail string) Verdict {
	return Verdict{Reason: reason, Detail: detail, Kind: kind, Known: known}
}

// String renders the verdict for diagnostics.
func (v Verdict) String() string {
	if v.Accepted {
		return "accept"
	}
	if v.Detail == "" {
		return "reject " + string(v.Reason)
	}
	return "reject " + string(v.Reason) + ": " + v.Detail
}
