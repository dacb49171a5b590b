package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/actionguard/assets"
	"github.com/doeshing/actionguard/internal/domain"
	"github.com/doeshing/actionguard/internal/pkg/filesystem"
	"github.com/doeshing/actionguard/internal/ports"
)

// EnvConfigPath overrides the config location.
const EnvConfigPath = "ACTIONGUARD_CONFIG"

// FileLoader loads YAML configuration from ~/.actionguard/config.yaml (overridable via ACTIONGUARD_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. A missing file yields the defaults;
// nothing is written to disk.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig()
		}
		return domain.Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	defaults, err := DefaultConfig()
	if err != nil {
		return domain.Config{}, err
	}
	return hydrateDefaults(cfg, defaults), nil
}

// Path returns the resolved config file location.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return filesystem.ExpandPath(l.overridePath)
	}
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), domain.AppDirName, domain.ConfigFileName)
}

// Exists reports whether the config file is present.
func (l *FileLoader) Exists() bool {
	_, err := os.Stat(l.Path())
	return err == nil
}

// Save writes cfg to the config path, creating the directory when needed.
func (l *FileLoader) Save(cfg domain.Config) error {
	path := l.Path()
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

// DefaultConfig decodes the embedded default configuration.
func DefaultConfig() (domain.Config, error) {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse embedded config: %w", err)
	}
	return cfg, nil
}

func hydrateDefaults(cfg, defaults domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = defaults.ConfigFormatVersion
	}
	if len(cfg.Rules.VersionChannels) == 0 {
		cfg.Rules.VersionChannels = defaults.Rules.VersionChannels
	}
	if len(cfg.Rules.TokenPrefixes) == 0 {
		cfg.Rules.TokenPrefixes = defaults.Rules.TokenPrefixes
	}
	if len(cfg.Rules.ShellKeywords) == 0 {
		cfg.Rules.ShellKeywords = defaults.Rules.ShellKeywords
	}
	if cfg.Audit.Path == "" {
		cfg.Audit.Path = defaults.Audit.Path
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaults.Logging.Level
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = defaults.Logging.Format
	}
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
