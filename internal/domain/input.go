// Package domain defines core entities and value objects for actionguard.
//
// The types here describe composite action inputs and the verdicts produced
// when a candidate value is checked against them. They carry no behavior
// that depends on infrastructure.
package domain

import "fmt"

// Kind classifies an action input and selects the rule set applied to it.
type Kind string

const (
	KindFreeformText Kind = "freeform-text"
	KindGlobPattern  Kind = "glob-pattern"
	KindSemver       Kind = "semver"
	KindGitHubToken  Kind = "github-token"
	KindRelativePath Kind = "relative-path"
	KindAbsoluteURL  Kind = "absolute-url"
	KindCSVList      Kind = "csv-list"
)

// Kinds lists every known kind in a stable order.
func Kinds() []Kind {
	return []Kind{
		KindFreeformText,
		KindGlobPattern,
		KindSemver,
		KindGitHubToken,
		KindRelativePath,
		KindAbsoluteURL,
		KindCSVList,
	}
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	for _, known := range Kinds() {
		if k == known {
			return true
		}
	}
	return false
}

// ParseKind converts a tag string into a Kind. The "semver-ish" spelling
// used by older tables is accepted as an alias.
func ParseKind(value string) (Kind, error) {
	if value == "semver-ish" {
		return KindSemver, nil
	}
	kind := Kind(value)
	if !kind.Valid() {
		return "", fmt.Errorf("unknown input kind %q", value)
	}
	return kind, nil
}

// InputSpec identifies a recognized (action, input) pair.
type InputSpec struct {
	Action      string `yaml:"-" json:"action"`
	Input       string `yaml:"-" json:"input"`
	Kind        Kind   `yaml:"kind" json:"kind"`
	Required    bool   `yaml:"required" json:"required"`
	Default     string `yaml:"default,omitempty" json:"default,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	// Source records where the entry came from (table or manifest path).
	Source string `yaml:"-" json:"source,omitempty"`
}

// InputKey is the lookup key of an InputSpec.
type InputKey struct {
	Action string
	Input  string
}

// Key returns the lookup key of the spec.
func (s InputSpec) Key() InputKey {
	return InputKey{Action: s.Action, Input: s.Input}
}
