package domain

// HealthStatus is the outcome of one `actionguard doctor` check.
type HealthStatus string

const (
	HealthOK    HealthStatus = "ok"
	HealthWarn  HealthStatus = "warn"
	HealthError HealthStatus = "error"
)

// HealthCheck is one doctor line, e.g. the rule self-test or the audit store.
// Details is shown verbatim next to the status.
type HealthCheck struct {
	Name    string
	Status  HealthStatus
	Details string
}

// HealthReport lists checks in the order they ran.
type HealthReport struct {
	Checks []HealthCheck
}

// Healthy reports whether no check ended in HealthError.
func (r HealthReport) Healthy() bool {
	for _, check := range r.Checks {
		if check.Status == HealthError {
			return false
		}
	}
	return true
}
