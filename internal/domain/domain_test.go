package domain_test

import (
	"testing"

	"github.com/doeshing/actionguard/internal/domain"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    domain.Kind
		wantErr bool
	}{
		{name: "glob", value: "glob-pattern", want: domain.KindGlobPattern},
		{name: "semver alias", value: "semver-ish", want: domain.KindSemver},
		{name: "csv", value: "csv-list", want: domain.KindCSVList},
		{name: "unknown tag", value: "integer", wantErr: true},
		{name: "empty tag", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseKind(tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseKind(%q) expected error, got %q", tt.value, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKind(%q) error = %v", tt.value, err)
			}
			if got != tt.want {
				t.Fatalf("ParseKind(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestVerdictString(t *testing.T) {
	if got := domain.Accept(domain.KindSemver, true).String(); got != "accept" {
		t.Fatalf("accept verdict rendered as %q", got)
	}
	v := domain.Reject(domain.KindGlobPattern, true, domain.ReasonShellInjection, `contains ";"`)
	if got := v.String(); got != `reject shell-injection-detected: contains ";"` {
		t.Fatalf("reject verdict rendered as %q", got)
	}
}

func TestBatchReportOK(t *testing.T) {
	if !(domain.BatchReport{Accepted: 3}).OK() {
		t.Fatal("report without failures should be OK")
	}
	if (domain.BatchReport{Failed: 1}).OK() {
		t.Fatal("report with failures should not be OK")
	}
	if (domain.BatchReport{Skipped: 1}).OK() {
		t.Fatal("report with skipped cases should not be OK")
	}
}

func TestHealthReportHealthy(t *testing.T) {
	report := domain.HealthReport{Checks: []domain.HealthCheck{
		{Name: "Config file", Status: domain.HealthOK},
		{Name: "Audit log", Status: domain.HealthWarn},
	}}
	if !report.Healthy() {
		t.Fatal("warnings alone must not make the report unhealthy")
	}
	report.Checks = append(report.Checks, domain.HealthCheck{Name: "Rule self-test", Status: domain.HealthError})
	if report.Healthy() {
		t.Fatal("an error check must make the report unhealthy")
	}
}
