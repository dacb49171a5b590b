package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/actionguard/internal/domain"
)

var manifestNames = []string{"action.yml", "action.yaml"}

// manifest is the subset of a composite action.yml that declares inputs.
type manifest struct {
	Name   string                   `yaml:"name"`
	Inputs map[string]manifestInput `yaml:"inputs"`
}

type manifestInput struct {
	Description string `yaml:"description"`
	Required    bool   `yaml:"required"`
	Default     string `yaml:"default"`
}

// ScanManifests reads <dir>/<action>/action.yml (or .yaml) for every
// subdirectory and returns one spec per declared input with an inferred kind.
func ScanManifests(dir string) ([]domain.InputSpec, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan manifests: %w", err)
	}
	var specs []domain.InputSpec
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path, ok := findManifest(filepath.Join(dir, entry.Name()))
		if !ok {
			continue
		}
		found, err := parseManifest(path, entry.Name())
		if err != nil {
			return nil, err
		}
		specs = append(specs, found...)
	}
	sortSpecs(specs)
	return specs, nil
}

func findManifest(dir string) (string, bool) {
	for _, name := range manifestNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, true
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", false
		}
	}
	return "", false
}

func parseManifest(path, action string) ([]domain.InputSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var doc manifest
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalidCatalog, path, err)
	}
	names := make([]string, 0, len(doc.Inputs))
	for name := range doc.Inputs {
		names = append(names, name)
	}
	sort.Strings(names)

	specs := make([]domain.InputSpec, 0, len(names))
	for _, name := range names {
		input := doc.Inputs[name]
		specs = append(specs, domain.InputSpec{
			Action:      action,
			Input:       name,
			Kind:        InferKind(name),
			Required:    input.Required,
			Default:     input.Default,
			Description: input.Description,
			Source:      path,
		})
	}
	return specs, nil
}
