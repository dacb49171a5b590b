package catalog

import (
	"fmt"
	"os"

	"github.com/doeshing/actionguard/assets"
	"github.com/doeshing/actionguard/internal/domain"
	"github.com/doeshing/actionguard/internal/pkg/filesystem"
	"github.com/doeshing/actionguard/internal/ports"
)

// EmbeddedSource names the built-in table in InputSpec.Source.
const EmbeddedSource = "embedded"

// Options selects the table and manifest sources.
type Options struct {
	// File replaces the embedded table when set.
	File string
	// ManifestsDir adds inputs found in <dir>/<action>/action.yml.
	ManifestsDir string
	Logger       ports.Logger
}

// Load reads the table once and returns the immutable catalog. Entries from
// the table win over entries discovered in manifests.
func Load(opts Options) (*Catalog, error) {
	data, source := assets.DefaultInputsYAML, EmbeddedSource
	if opts.File != "" {
		path := filesystem.ExpandPath(opts.File)
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read input table: %w", err)
		}
		data, source = raw, path
	}

	specs, err := ParseTable(data, source)
	if err != nil {
		return nil, err
	}
	logDebug(opts.Logger, "input table parsed", map[string]interface{}{"source": source, "entries": len(specs)})

	if opts.ManifestsDir != "" {
		discovered, err := ScanManifests(filesystem.ExpandPath(opts.ManifestsDir))
		if err != nil {
			return nil, err
		}
		specs = merge(specs, discovered, opts.Logger)
	}

	return New(specs)
}

func merge(table, discovered []domain.InputSpec, log ports.Logger) []domain.InputSpec {
	known := make(map[domain.InputKey]struct{}, len(table))
	for _, spec := range table {
		known[spec.Key()] = struct{}{}
	}
	merged := append([]domain.InputSpec(nil), table...)
	for _, spec := range discovered {
		if _, ok := known[spec.Key()]; ok {
			continue
		}
		known[spec.Key()] = struct{}{}
		logDebug(log, "input inferred from manifest", map[string]interface{}{
			"action": spec.Action,
			"input":  spec.Input,
			"kind":   string(spec.Kind),
		})
		merged = append(merged, spec)
	}
	sortSpecs(merged)
	return merged
}

func logDebug(log ports.Logger, msg string, fields map[string]interface{}) {
	if log != nil {
		log.Debug(msg, fields)
	}
}
