package security

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/mod/semver"

	"github.com/doeshing/actionguard/internal/domain"
)

// fineGrainedPrefix marks tokens whose body may also contain underscores.
const fineGrainedPrefix = "github_pat_"

var (
	// baseDeny is rejected by every kind. "&&" precedes "&" so the
	// diagnostic names the longer sequence.
	baseDeny = []string{";", "&&", "&", "|", "`", "$(", "\n", "\r", "\x00"}

	// urlDeny allows a single "&" for query strings.
	urlDeny = []string{";", "&&", "|", "`", "$(", "\n", "\r", "\x00"}

	textDeny   = append(append([]string{}, baseDeny...), ")")
	pathDeny   = append(append([]string{}, baseDeny...), ")", "<", ">")
	tokenDeny  = append(append([]string{}, baseDeny...), "$")
	strictDeny = append(append([]string{}, baseDeny...), ")", "<", ">")

	versionRe     = regexp.MustCompile(`^v?[0-9]+(\.[0-9]+){0,2}$`)
	classicBodyRe = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	fineBodyRe    = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	expressionRe  = regexp.MustCompile(`^\$\{\{\s*[A-Za-z_][A-Za-z0-9_.\-]*(\[['"][A-Za-z0-9_\-]+['"]\])?(\.[A-Za-z0-9_\-]+)*\s*\}\}$`)
	driveLetterRe = regexp.MustCompile(`^[A-Za-z]:`)
)

// profile is the rule set bound to one kind.
type profile struct {
	kind        domain.Kind
	deny        []string
	keywords    bool
	traversal   bool
	relative    bool
	nonEmpty    bool
	expressions bool
	format      func(v *Validator, value string) (domain.Reason, string)
}

var (
	profileGlob = profile{
		kind: domain.KindGlobPattern, deny: baseDeny, keywords: true,
		traversal: true, nonEmpty: true, format: formatGlob,
	}
	profileSemver = profile{
		kind: domain.KindSemver, deny: baseDeny, format: formatSemver,
	}
	profileToken = profile{
		kind: domain.KindGitHubToken, deny: tokenDeny, expressions: true, format: formatToken,
	}
	profileRelativePath = profile{
		kind: domain.KindRelativePath, deny: pathDeny, traversal: true,
		relative: true, nonEmpty: true, format: formatPrintable,
	}
	profileURL = profile{
		kind: domain.KindAbsoluteURL, deny: urlDeny, format: formatURL,
	}
	profileText = profile{
		kind: domain.KindFreeformText, deny: textDeny, format: formatPrintable,
	}
	profileCSV = profile{
		kind: domain.KindCSVList, deny: textDeny, format: formatCSV,
	}
	profileStrict = profile{
		kind: domain.KindFreeformText, deny: strictDeny, format: formatPrintable,
	}
)

// profileFor dispatches on the kind tag. Unknown tags get the strict set;
// catalog loading rejects them long before this point.
func profileFor(kind domain.Kind) profile {
	switch kind {
	case domain.KindGlobPattern:
		return profileGlob
	case domain.KindSemver:
		return profileSemver
	case domain.KindGitHubToken:
		return profileToken
	case domain.KindRelativePath:
		return profileRelativePath
	case domain.KindAbsoluteURL:
		return profileURL
	case domain.KindFreeformText:
		return profileText
	case domain.KindCSVList:
		return profileCSV
	default:
		return profileStrict
	}
}

func findDenied(value string, deny []string) (string, bool) {
	for _, seq := range deny {
		if strings.Contains(value, seq) {
			return seq, true
		}
	}
	return "", false
}

func isContextExpression(value string) bool {
	return expressionRe.MatchString(value)
}

func hasParentSegment(value string) bool {
	segments := strings.FieldsFunc(value, func(r rune) bool {
		switch r {
		case '/', '\\', '{', '}', ',':
			return true
		}
		return false
	})
	for _, segment := range segments {
		if segment == ".." {
			return true
		}
	}
	return false
}

func isAbsolutePath(value string) bool {
	if strings.HasPrefix(value, "/") || strings.HasPrefix(value, `\`) || strings.HasPrefix(value, "~") {
		return true
	}
	return driveLetterRe.MatchString(value)
}

func firstUnprintable(value string) (rune, bool) {
	for _, r := range value {
		if r == '\t' {
			continue
		}
		if r == unicode.ReplacementChar || !unicode.IsPrint(r) {
			return r, true
		}
	}
	return 0, false
}

func formatPrintable(_ *Validator, value string) (domain.Reason, string) {
	if r, ok := firstUnprintable(value); ok {
		return domain.ReasonFormatInvalid, fmt.Sprintf("unprintable character %q", r)
	}
	return domain.ReasonNone, ""
}

func formatGlob(v *Validator, value string) (domain.Reason, string) {
	if reason, detail := formatPrintable(v, value); reason != domain.ReasonNone {
		return reason, detail
	}
	pattern := strings.TrimPrefix(value, "!")
	if pattern == "" || !doublestar.ValidatePattern(pattern) {
		return domain.ReasonFormatInvalid, "malformed glob pattern"
	}
	return domain.ReasonNone, ""
}

func formatSemver(v *Validator, value string) (domain.Reason, string) {
	if _, ok := v.channels[value]; ok {
		return domain.ReasonNone, ""
	}
	if !versionRe.MatchString(value) {
		return domain.ReasonFormatInvalid, "expected a dotted numeric version with 1-3 components"
	}
	if !semver.IsValid("v" + strings.TrimPrefix(value, "v")) {
		return domain.ReasonFormatInvalid, "version components must not have leading zeros"
	}
	return domain.ReasonNone, ""
}

func formatToken(v *Validator, value string) (domain.Reason, string) {
	if strings.IndexFunc(value, unicode.IsSpace) >= 0 {
		return domain.ReasonFormatInvalid, "token must not contain whitespace"
	}
	for _, prefix := range v.prefixes {
		if !strings.HasPrefix(value, prefix) {
			continue
		}
		body := strings.TrimPrefix(value, prefix)
		bodyRe := classicBodyRe
		if prefix == fineGrainedPrefix {
			bodyRe = fineBodyRe
		}
		if !bodyRe.MatchString(body) {
			return domain.ReasonFormatInvalid, fmt.Sprintf("unexpected characters after %q prefix", prefix)
		}
		return domain.ReasonNone, ""
	}
	return domain.ReasonFormatInvalid, "unrecognized token prefix"
}

func formatURL(v *Validator, value string) (domain.Reason, string) {
	if strings.IndexFunc(value, unicode.IsSpace) >= 0 {
		return domain.ReasonFormatInvalid, "url must not contain whitespace"
	}
	if reason, detail := formatPrintable(v, value); reason != domain.ReasonNone {
		return reason, detail
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return domain.ReasonFormatInvalid, "unparseable url"
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return domain.ReasonFormatInvalid, "url scheme must be http or https"
	}
	if parsed.Host == "" {
		return domain.ReasonFormatInvalid, "url must include a host"
	}
	return domain.ReasonNone, ""
}

func formatCSV(v *Validator, value string) (domain.Reason, string) {
	for i, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			return domain.ReasonFormatInvalid, fmt.Sprintf("list element %d is empty", i+1)
		}
		if reason, detail := formatPrintable(v, item); reason != domain.ReasonNone {
			return reason, detail
		}
	}
	return domain.ReasonNone, ""
}
