package security

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/doeshing/actionguard/internal/domain"
	"github.com/doeshing/actionguard/internal/ports"
)

// Validator implements the InputValidator port. All state is fixed in
// NewValidator, so a single instance is safe for concurrent use.
type Validator struct {
	catalog  ports.SpecCatalog
	channels map[string]struct{}
	prefixes []string
	keywords *regexp.Regexp
}

// DefaultRules returns the rule parameters used when the config leaves them unset.
func DefaultRules() domain.RuleSettings {
	return domain.RuleSettings{
		VersionChannels: []string{"latest"},
		TokenPrefixes:   []string{"ghp_", "gho_", "ghu_", "ghs_", "ghr_", "github_pat_"},
		ShellKeywords: []string{
			"rm", "curl", "wget", "sh", "bash", "zsh", "eval", "exec", "sudo",
			"chmod", "chown", "mv", "dd", "mkfs", "nc", "python", "perl",
		},
	}
}

// NewValidator compiles the rule parameters. A nil catalog treats every
// input as unknown.
func NewValidator(catalog ports.SpecCatalog, rules domain.RuleSettings) (*Validator, error) {
	defaults := DefaultRules()
	if len(rules.VersionChannels) == 0 {
		rules.VersionChannels = defaults.VersionChannels
	}
	if len(rules.TokenPrefixes) == 0 {
		rules.TokenPrefixes = defaults.TokenPrefixes
	}
	if len(rules.ShellKeywords) == 0 {
		rules.ShellKeywords = defaults.ShellKeywords
	}

	channels := make(map[string]struct{}, len(rules.VersionChannels))
	for _, channel := range rules.VersionChannels {
		if channel == "" {
			return nil, fmt.Errorf("version channel must not be empty")
		}
		channels[channel] = struct{}{}
	}

	prefixes := make([]string, 0, len(rules.TokenPrefixes))
	for _, prefix := range rules.TokenPrefixes {
		if prefix == "" {
			return nil, fmt.Errorf("token prefix must not be empty")
		}
		prefixes = append(prefixes, prefix)
	}
	// longest first so github_pat_ wins over any shorter overlapping prefix
	sort.SliceStable(prefixes, func(i, j int) bool { return len(prefixes[i]) > len(prefixes[j]) })

	quoted := make([]string, 0, len(rules.ShellKeywords))
	for _, keyword := range rules.ShellKeywords {
		keyword = strings.TrimSpace(keyword)
		if keyword == "" {
			return nil, fmt.Errorf("shell keyword must not be empty")
		}
		quoted = append(quoted, regexp.QuoteMeta(keyword))
	}
	keywords, err := regexp.Compile(`\s(?:` + strings.Join(quoted, "|") + `)(?:\s|$)`)
	if err != nil {
		return nil, fmt.Errorf("compile shell keywords: %w", err)
	}

	return &Validator{
		catalog:  catalog,
		channels: channels,
		prefixes: prefixes,
		keywords: keywords,
	}, nil
}

// Validate implements ports.InputValidator. Unknown (action, input) pairs are
// checked with the strict generic rule set and never bypass it.
func (v *Validator) Validate(action, input, value string) domain.Verdict {
	if v.catalog != nil {
		if spec, ok := v.catalog.Lookup(action, input); ok {
			return v.ValidateKind(spec.Kind, spec.Required, value)
		}
	}
	reason, detail := v.evaluate(profileStrict, false, value)
	if reason == domain.ReasonNone {
		return domain.Accept(domain.KindFreeformText, false)
	}
	return domain.Reject(domain.KindFreeformText, false, domain.ReasonUnknownInputRejected,
		fmt.Sprintf("%s/%s is not a known input (%s: %s)", action, input, reason, detail))
}

// ValidateKind implements ports.InputValidator for a kind resolved by the caller.
func (v *Validator) ValidateKind(kind domain.Kind, required bool, value string) domain.Verdict {
	reason, detail := v.evaluate(profileFor(kind), required, value)
	if reason == domain.ReasonNone {
		return domain.Accept(kind, true)
	}
	return domain.Reject(kind, true, reason, detail)
}

// evaluate applies the fixed order: required, injection, traversal, format.
func (v *Validator) evaluate(p profile, required bool, value string) (domain.Reason, string) {
	if value == "" {
		if required {
			return domain.ReasonEmptyRequiredInput, "a value is required"
		}
		if p.nonEmpty {
			return domain.ReasonFormatInvalid, fmt.Sprintf("%s must not be empty", p.kind)
		}
		return domain.ReasonNone, ""
	}

	if p.expressions && isContextExpression(value) {
		return domain.ReasonNone, ""
	}

	if seq, ok := findDenied(value, p.deny); ok {
		return domain.ReasonShellInjection, fmt.Sprintf("shell metacharacter %q", seq)
	}
	if p.keywords {
		if match := v.keywords.FindString(value); match != "" {
			return domain.ReasonShellInjection, fmt.Sprintf("shell command %q after whitespace", strings.TrimSpace(match))
		}
	}

	if p.traversal {
		if hasParentSegment(value) {
			return domain.ReasonPathTraversal, `parent directory segment ".."`
		}
	}
	if p.relative && isAbsolutePath(value) {
		return domain.ReasonPathTraversal, "absolute path where a relative path is required"
	}

	return p.format(v, value)
}

var _ ports.InputValidator = (*Validator)(nil)
