package config

import (
	"testing"

	"github.com/doeshing/actionguard/internal/domain"
)

func TestValidate(t *testing.T) {
	valid := domain.Config{
		ConfigFormatVersion: "1",
		Rules: domain.RuleSettings{
			VersionChannels: []string{"latest"},
			TokenPrefixes:   []string{"ghp_"},
			ShellKeywords:   []string{"rm"},
		},
		Audit:   domain.AuditSettings{Enabled: true, Path: "~/.actionguard/audit.db"},
		Logging: domain.LoggingSettings{Level: "warn", Format: "console"},
	}

	tests := []struct {
		name    string
		mutate  func(*domain.Config)
		wantErr bool
	}{
		{name: "valid config", mutate: func(*domain.Config) {}},
		{name: "unsupported version", mutate: func(c *domain.Config) { c.ConfigFormatVersion = "2" }, wantErr: true},
		{name: "empty channel", mutate: func(c *domain.Config) { c.Rules.VersionChannels = []string{" "} }, wantErr: true},
		{name: "channel with metacharacter", mutate: func(c *domain.Config) { c.Rules.VersionChannels = []string{"latest;id"} }, wantErr: true},
		{name: "empty prefix", mutate: func(c *domain.Config) { c.Rules.TokenPrefixes = []string{""} }, wantErr: true},
		{name: "empty keyword", mutate: func(c *domain.Config) { c.Rules.ShellKeywords = []string{""} }, wantErr: true},
		{name: "audit without path", mutate: func(c *domain.Config) { c.Audit.Path = "" }, wantErr: true},
		{name: "negative workers", mutate: func(c *domain.Config) { c.Batch.Workers = -1 }, wantErr: true},
		{name: "bad level", mutate: func(c *domain.Config) { c.Logging.Level = "trace" }, wantErr: true},
		{name: "bad format", mutate: func(c *domain.Config) { c.Logging.Format = "xml" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			cfg.Rules.VersionChannels = append([]string(nil), valid.Rules.VersionChannels...)
			tt.mutate(&cfg)
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
