package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/actionguard/internal/domain"
)

func TestLoadEmbeddedTable(t *testing.T) {
	c, err := Load(Options{})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if c.Len() == 0 {
		t.Fatal("expected embedded table to declare inputs")
	}

	tests := []struct {
		action   string
		input    string
		kind     domain.Kind
		required bool
	}{
		{"common-file-check", "file-pattern", domain.KindGlobPattern, true},
		{"sync-labels", "labels", domain.KindRelativePath, true},
		{"sync-labels", "token", domain.KindGitHubToken, false},
		{"docker-build", "tags", domain.KindCSVList, true},
		{"npm-publish", "registry-url", domain.KindAbsoluteURL, false},
	}
	for _, tt := range tests {
		spec, ok := c.Lookup(tt.action, tt.input)
		if !ok {
			t.Fatalf("%s/%s missing from embedded table", tt.action, tt.input)
		}
		if spec.Kind != tt.kind || spec.Required != tt.required {
			t.Fatalf("%s/%s = %+v, want kind %s required %v", tt.action, tt.input, spec, tt.kind, tt.required)
		}
		if spec.Source != EmbeddedSource {
			t.Fatalf("expected embedded source, got %q", spec.Source)
		}
	}

	token, _ := c.Lookup("sync-labels", "token")
	if token.Default != "${{ github.token }}" {
		t.Fatalf("expression default should be kept verbatim, got %q", token.Default)
	}
}

func TestCatalogListing(t *testing.T) {
	c, err := New([]domain.InputSpec{
		{Action: "b-action", Input: "z", Kind: domain.KindFreeformText},
		{Action: "a-action", Input: "y", Kind: domain.KindSemver},
		{Action: "b-action", Input: "a", Kind: domain.KindCSVList},
	})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if diff := cmp.Diff([]string{"a-action", "b-action"}, c.Actions()); diff != "" {
		t.Fatalf("Actions mismatch (-want +got):\n%s", diff)
	}
	var names []string
	for _, spec := range c.Inputs("b-action") {
		names = append(names, spec.Input)
	}
	if diff := cmp.Diff([]string{"a", "z"}, names); diff != "" {
		t.Fatalf("Inputs mismatch (-want +got):\n%s", diff)
	}
	if _, ok := c.Lookup("a-action", "z"); ok {
		t.Fatal("lookup must be keyed by action and input together")
	}
}

func TestNewRejectsDefects(t *testing.T) {
	tests := []struct {
		name  string
		specs []domain.InputSpec
	}{
		{
			name: "duplicate pair",
			specs: []domain.InputSpec{
				{Action: "a", Input: "x", Kind: domain.KindSemver},
				{Action: "a", Input: "x", Kind: domain.KindFreeformText},
			},
		},
		{
			name:  "unknown kind",
			specs: []domain.InputSpec{{Action: "a", Input: "x", Kind: "integer"}},
		},
		{
			name:  "empty name",
			specs: []domain.InputSpec{{Action: "a", Kind: domain.KindSemver}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.specs)
			if !errors.Is(err, ErrInvalidCatalog) {
				t.Fatalf("expected ErrInvalidCatalog, got %v", err)
			}
		})
	}
}

func TestParseTableUnknownKind(t *testing.T) {
	data := []byte("actions:\n  a:\n    inputs:\n      x:\n        kind: number\n")
	if _, err := ParseTable(data, "test"); !errors.Is(err, ErrInvalidCatalog) {
		t.Fatalf("expected ErrInvalidCatalog, got %v", err)
	}
}

func TestLoadTableFileOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inputs.yaml")
	table := "actions:\n  custom:\n    inputs:\n      version:\n        kind: semver-ish\n        required: true\n"
	if err := os.WriteFile(path, []byte(table), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(Options{File: path})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("override should replace the embedded table, got %d entries", c.Len())
	}
	spec, ok := c.Lookup("custom", "version")
	if !ok || spec.Kind != domain.KindSemver || !spec.Required {
		t.Fatalf("unexpected spec %+v", spec)
	}
}

func TestLoadMergesManifests(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "common-file-check", "action.yml", `name: Common File Check
inputs:
  file-pattern:
    description: overridden by the table
    required: false
  fail-on-missing:
    required: false
    default: "true"
runs:
  using: composite
  steps: []
`)
	writeManifest(t, dir, "new-action", "action.yaml", `name: New Action
inputs:
  github-token:
    required: true
  config-path:
    default: .config/new.yml
  cache-dependency-list:
    default: a,b
`)
	if err := os.MkdirAll(filepath.Join(dir, "not-an-action"), 0o755); err != nil {
		t.Fatal(err)
	}

	c, err := Load(Options{ManifestsDir: dir})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	pattern, _ := c.Lookup("common-file-check", "file-pattern")
	if pattern.Kind != domain.KindGlobPattern || !pattern.Required || pattern.Source != EmbeddedSource {
		t.Fatalf("table entry must win over manifest, got %+v", pattern)
	}

	want := map[string]domain.Kind{
		"fail-on-missing":       domain.KindFreeformText,
		"github-token":          domain.KindGitHubToken,
		"config-path":           domain.KindRelativePath,
		"cache-dependency-list": domain.KindCSVList,
	}
	for input, kind := range want {
		action := "new-action"
		if input == "fail-on-missing" {
			action = "common-file-check"
		}
		spec, ok := c.Lookup(action, input)
		if !ok {
			t.Fatalf("%s/%s not discovered", action, input)
		}
		if spec.Kind != kind {
			t.Fatalf("%s/%s kind = %s, want %s", action, input, spec.Kind, kind)
		}
	}

	token, _ := c.Lookup("new-action", "github-token")
	if !token.Required {
		t.Fatal("required flag should come from the manifest")
	}
}

func TestScanManifestsMissingDir(t *testing.T) {
	if _, err := ScanManifests(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestInferKind(t *testing.T) {
	tests := []struct {
		input string
		want  domain.Kind
	}{
		{"token", domain.KindGitHubToken},
		{"github_token", domain.KindGitHubToken},
		{"npm_token", domain.KindFreeformText},
		{"version", domain.KindSemver},
		{"node-version", domain.KindSemver},
		{"file-pattern", domain.KindGlobPattern},
		{"include-glob", domain.KindGlobPattern},
		{"registry-url", domain.KindAbsoluteURL},
		{"working-directory", domain.KindRelativePath},
		{"dockerfile", domain.KindRelativePath},
		{"output-dir", domain.KindRelativePath},
		{"config-file", domain.KindRelativePath},
		{"tags", domain.KindCSVList},
		{"exclude-list", domain.KindCSVList},
		{"username", domain.KindFreeformText},
	}
	for _, tt := range tests {
		if got := InferKind(tt.input); got != tt.want {
			t.Fatalf("InferKind(%q)=%s want %s", tt.input, got, tt.want)
		}
	}
}

func writeManifest(t *testing.T, root, action, name, body string) {
	t.Helper()
	dir := filepath.Join(root, action)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}
