package assets

import (
	_ "embed"
)

// DefaultConfigYAML contains the embedded default configuration.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte

// DefaultInputsYAML contains the embedded InputSpec table for the action library.
//
//go:embed defaults/inputs.yaml
var DefaultInputsYAML []byte
