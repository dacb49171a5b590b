package domain

// Config mirrors ~/.actionguard/config.yaml.
type Config struct {
	ConfigFormatVersion string          `yaml:"config_format_version"`
	Catalog             CatalogSettings `yaml:"catalog"`
	Rules               RuleSettings    `yaml:"rules"`
	Audit               AuditSettings   `yaml:"audit"`
	Batch               BatchSettings   `yaml:"batch"`
	Logging             LoggingSettings `yaml:"logging"`
}

// CatalogSettings controls where the InputSpec table comes from.
type CatalogSettings struct {
	// File replaces the embedded table when set.
	File string `yaml:"file"`
	// ManifestsDir is scanned for <action>/action.yml manifests.
	ManifestsDir string `yaml:"manifests_dir"`
}

// RuleSettings parameterizes the validator. It is fixed once the validator is built.
type RuleSettings struct {
	VersionChannels []string `yaml:"version_channels"`
	TokenPrefixes   []string `yaml:"token_prefixes"`
	ShellKeywords   []string `yaml:"shell_keywords"`
}

// AuditSettings controls the verdict audit log.
type AuditSettings struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// BatchSettings controls batch validation.
type BatchSettings struct {
	// Workers bounds concurrent validations; 0 means GOMAXPROCS.
	Workers int `yaml:"workers"`
}

// LoggingSettings controls diagnostic logging.
type LoggingSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}
