// Package catalog loads the InputSpec table that maps (action, input) pairs
// to input kinds. A Catalog is immutable once built.
package catalog

import (
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/actionguard/internal/domain"
	"github.com/doeshing/actionguard/internal/ports"
)

// ErrInvalidCatalog marks a malformed InputSpec table.
var ErrInvalidCatalog = errors.New("invalid input catalog")

// Catalog implements the SpecCatalog port.
type Catalog struct {
	specs   map[domain.InputKey]domain.InputSpec
	actions []string
}

// TableDocument is the YAML schema root of an input table.
type TableDocument struct {
	Actions map[string]ActionEntry `yaml:"actions"`
}

// ActionEntry declares the inputs of one action.
type ActionEntry struct {
	Description string                `yaml:"description,omitempty"`
	Inputs      map[string]InputEntry `yaml:"inputs"`
}

// InputEntry is one input row as written in YAML.
type InputEntry struct {
	Kind        string `yaml:"kind"`
	Required    bool   `yaml:"required,omitempty"`
	Default     string `yaml:"default,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// New builds a catalog from specs. Duplicate pairs and unknown kinds are rejected.
func New(specs []domain.InputSpec) (*Catalog, error) {
	c := &Catalog{specs: make(map[domain.InputKey]domain.InputSpec, len(specs))}
	seen := map[string]struct{}{}
	for _, spec := range specs {
		if spec.Action == "" || spec.Input == "" {
			return nil, fmt.Errorf("%w: entry with empty action or input name", ErrInvalidCatalog)
		}
		if !spec.Kind.Valid() {
			return nil, fmt.Errorf("%w: %s/%s has unknown kind %q", ErrInvalidCatalog, spec.Action, spec.Input, spec.Kind)
		}
		if _, dup := c.specs[spec.Key()]; dup {
			return nil, fmt.Errorf("%w: %s/%s declared twice", ErrInvalidCatalog, spec.Action, spec.Input)
		}
		c.specs[spec.Key()] = spec
		if _, ok := seen[spec.Action]; !ok {
			seen[spec.Action] = struct{}{}
			c.actions = append(c.actions, spec.Action)
		}
	}
	sort.Strings(c.actions)
	return c, nil
}

// ParseTable decodes a YAML input table. source is recorded on every spec.
func ParseTable(data []byte, source string) ([]domain.InputSpec, error) {
	var doc TableDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalidCatalog, source, err)
	}
	var specs []domain.InputSpec
	for action, entry := range doc.Actions {
		for input, row := range entry.Inputs {
			kind, err := domain.ParseKind(row.Kind)
			if err != nil {
				return nil, fmt.Errorf("%w: %s/%s in %s: %v", ErrInvalidCatalog, action, input, source, err)
			}
			specs = append(specs, domain.InputSpec{
				Action:      action,
				Input:       input,
				Kind:        kind,
				Required:    row.Required,
				Default:     row.Default,
				Description: row.Description,
				Source:      source,
			})
		}
	}
	sortSpecs(specs)
	return specs, nil
}

// Lookup implements ports.SpecCatalog.
func (c *Catalog) Lookup(action, input string) (domain.InputSpec, bool) {
	if c == nil {
		return domain.InputSpec{}, false
	}
	spec, ok := c.specs[domain.InputKey{Action: action, Input: input}]
	return spec, ok
}

// Actions implements ports.SpecCatalog.
func (c *Catalog) Actions() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.actions...)
}

// Inputs implements ports.SpecCatalog. Results are sorted by input name.
func (c *Catalog) Inputs(action string) []domain.InputSpec {
	if c == nil {
		return nil
	}
	var specs []domain.InputSpec
	for key, spec := range c.specs {
		if key.Action == action {
			specs = append(specs, spec)
		}
	}
	sortSpecs(specs)
	return specs
}

// Len implements ports.SpecCatalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.specs)
}

func sortSpecs(specs []domain.InputSpec) {
	sort.Slice(specs, func(i, j int) bool {
		if specs[i].Action == specs[j].Action {
			return specs[i].Input < specs[j].Input
		}
		return specs[i].Action < specs[j].Action
	})
}

var _ ports.SpecCatalog = (*Catalog)(nil)
