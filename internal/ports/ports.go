// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). The validator, the catalog, the audit log and the
// configuration loader are all reached through these interfaces, so application
// services can be tested with stubs and the adapters can be swapped.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., InputValidator, SpecCatalog)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"

	"github.com/doeshing/actionguard/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.actionguard/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// SpecCatalog resolves (action, input) pairs to their declared InputSpec.
// Implementations are immutable after construction.
type SpecCatalog interface {
	Lookup(action, input string) (domain.InputSpec, bool)
	Actions() []string
	Inputs(action string) []domain.InputSpec
	Len() int
}

// InputValidator decides whether a candidate value is safe for an action input.
// Validate is pure: identical arguments always produce identical verdicts.
type InputValidator interface {
	Validate(action, input, value string) domain.Verdict
	ValidateKind(kind domain.Kind, required bool, value string) domain.Verdict
}

// AuditRepository persists verdicts issued by the CLI.
type AuditRepository interface {
	Save(domain.AuditRecord) error
	Records(limit int, filter string) ([]domain.AuditRecord, error)
	Stats() (domain.AuditStats, error)
	Clear() error
	ExportJSON(dest string) error
	Path() string
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
