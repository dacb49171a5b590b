package catalog

import (
	"strings"

	"github.com/doeshing/actionguard/internal/domain"
)

var (
	relativePathNames = map[string]struct{}{
		"working-directory": {}, "context": {}, "dockerfile": {}, "destination": {}, "labels": {},
	}
	csvListNames = map[string]struct{}{
		"tags": {}, "platforms": {}, "extensions": {}, "tools": {}, "file-extensions": {},
	}
)

// InferKind guesses the kind of a manifest input from its name. Names that
// match no rule get freeform-text, the strictest general-purpose kind.
func InferKind(input string) domain.Kind {
	name := strings.ToLower(strings.ReplaceAll(input, "_", "-"))

	switch {
	case name == "token" || (strings.HasSuffix(name, "-token") && strings.Contains(name, "github")):
		return domain.KindGitHubToken
	case name == "version" || strings.HasSuffix(name, "-version"):
		return domain.KindSemver
	case strings.Contains(name, "pattern") || strings.Contains(name, "glob"):
		return domain.KindGlobPattern
	case strings.HasSuffix(name, "-url") || name == "url":
		return domain.KindAbsoluteURL
	}

	if _, ok := relativePathNames[name]; ok {
		return domain.KindRelativePath
	}
	if _, ok := csvListNames[name]; ok || strings.HasSuffix(name, "-list") {
		return domain.KindCSVList
	}
	for _, suffix := range []string{"-path", "-dir", "-directory", "-file"} {
		if strings.HasSuffix(name, suffix) {
			return domain.KindRelativePath
		}
	}
	return domain.KindFreeformText
}
