package check

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/actionguard/internal/domain"
)

type casesDocument struct {
	Cases []domain.Case `yaml:"cases"`
}

// LoadCases reads a cases file.
func LoadCases(path string) ([]domain.Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cases file: %w", err)
	}
	return ParseCases(data)
}

// ParseCases decodes a cases document and checks each expectation.
func ParseCases(data []byte) ([]domain.Case, error) {
	var doc casesDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse cases: %w", err)
	}
	for i, c := range doc.Cases {
		if c.Action == "" || c.Input == "" {
			return nil, fmt.Errorf("case %d: action and input are required", i+1)
		}
		switch c.Expect {
		case domain.ExpectNone, domain.ExpectAccept, domain.ExpectReject:
		default:
			return nil, fmt.Errorf("case %d: unknown expectation %q", i+1, c.Expect)
		}
		if c.Reason != domain.ReasonNone {
			if c.Expect != domain.ExpectReject {
				return nil, fmt.Errorf("case %d: reason requires expect: reject", i+1)
			}
			if !knownReason(c.Reason) {
				return nil, fmt.Errorf("case %d: unknown reason %q", i+1, c.Reason)
			}
		}
		if doc.Cases[i].Name == "" {
			doc.Cases[i].Name = fmt.Sprintf("%s/%s#%d", c.Action, c.Input, i+1)
		}
	}
	return doc.Cases, nil
}

func knownReason(reason domain.Reason) bool {
	for _, r := range domain.Reasons() {
		if r == reason {
			return true
		}
	}
	return false
}
