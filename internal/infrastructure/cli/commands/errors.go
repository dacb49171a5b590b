package commands

import "fmt"

// RejectedError signals that a value was rejected or a batch expectation was
// unmet. Diagnostics have already been printed when it is returned.
type RejectedError struct {
	Action string
	Input  string
	Reason string
}

func (e *RejectedError) Error() string {
	if e.Action == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s/%s rejected: %s", e.Action, e.Input, e.Reason)
}
