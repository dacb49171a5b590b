package config

import (
	"fmt"
	"strings"

	"github.com/doeshing/actionguard/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if cfg.ConfigFormatVersion != "" && cfg.ConfigFormatVersion != "1" {
		return fmt.Errorf("config_format_version %s is not supported", cfg.ConfigFormatVersion)
	}
	if err := validateRules(cfg.Rules); err != nil {
		return err
	}
	if err := validateAudit(cfg.Audit); err != nil {
		return err
	}
	if err := validateBatch(cfg.Batch); err != nil {
		return err
	}
	return validateLogging(cfg.Logging)
}

func validateRules(rules domain.RuleSettings) error {
	for _, channel := range rules.VersionChannels {
		if strings.TrimSpace(channel) == "" {
			return fmt.Errorf("rules.version_channels must not contain empty entries")
		}
		if strings.ContainsAny(channel, ";|&`$()<> \t\n") {
			return fmt.Errorf("rules.version_channels entry %q contains shell metacharacters", channel)
		}
	}
	for _, prefix := range rules.TokenPrefixes {
		if strings.TrimSpace(prefix) == "" {
			return fmt.Errorf("rules.token_prefixes must not contain empty entries")
		}
	}
	for _, keyword := range rules.ShellKeywords {
		if strings.TrimSpace(keyword) == "" {
			return fmt.Errorf("rules.shell_keywords must not contain empty entries")
		}
	}
	return nil
}

func validateAudit(audit domain.AuditSettings) error {
	if audit.Enabled && audit.Path == "" {
		return fmt.Errorf("audit.path must be set when audit.enabled is true")
	}
	return nil
}

func validateBatch(batch domain.BatchSettings) error {
	if batch.Workers < 0 {
		return fmt.Errorf("batch.workers must be >= 0")
	}
	return nil
}

func validateLogging(logging domain.LoggingSettings) error {
	switch strings.ToLower(logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug|info|warn|error, got %s", logging.Level)
	}
	switch strings.ToLower(logging.Format) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console|json, got %s", logging.Format)
	}
	return nil
}
