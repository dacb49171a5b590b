package domain

// Expectation is the outcome a batch case expects.
type Expectation string

const (
	ExpectNone   Expectation = ""
	ExpectAccept Expectation = "accept"
	ExpectReject Expectation = "reject"
)

// Case is one entry of a cases file.
type Case struct {
	Name   string      `yaml:"name"`
	Action string      `yaml:"action"`
	Input  string      `yaml:"input"`
	Value  string      `yaml:"value"`
	Expect Expectation `yaml:"expect"`
	Reason Reason      `yaml:"reason"`
}

// CaseResult pairs a case with its verdict.
type CaseResult struct {
	Case    Case
	Verdict Verdict
	// Skipped is set when the batch was cancelled before the case ran.
	Skipped bool
	// Mismatch describes an unmet expectation; empty when the case passed.
	Mismatch string
}

// BatchReport aggregates a batch run.
type BatchReport struct {
	Results  []CaseResult
	Accepted int
	Rejected int
	Skipped  int
	Failed   int
}

// OK reports whether every case met its expectation and none were skipped.
func (r BatchReport) OK() bool {
	return r.Failed == 0 && r.Skipped == 0
}
