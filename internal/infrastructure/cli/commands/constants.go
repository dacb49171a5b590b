package commands

// Error messages
const (
	ErrDoctorServiceUnavailable = "doctor service unavailable"
	ErrCheckServiceUnavailable  = "check service unavailable"
	ErrAuditStoreUnavailable    = "audit store unavailable"
)

// Success messages
const (
	MsgConfigurationValid       = "Configuration valid"
	MsgNoDifferencesFromDefault = "No differences from default configuration."
	MsgNoAuditRecorded          = "No verdicts recorded yet."
	MsgAuditDisabled            = "Audit log is disabled; set audit.enabled: true to record verdicts."
	MsgInitCancelled            = "Init cancelled."
	MsgClearCancelled           = "Clear cancelled."
)

// Defaults
const (
	TopReasonsLimit = 5
)
