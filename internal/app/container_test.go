package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestBuildContainerDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	container, err := BuildContainer(context.Background(), Options{ConfigPath: path})
	if err != nil {
		t.Fatalf("BuildContainer error: %v", err)
	}
	t.Cleanup(func() { _ = container.Close() })

	if container.AuditStore != nil {
		t.Fatal("audit store should stay closed when auditing is disabled")
	}
	if container.Catalog.Len() == 0 {
		t.Fatal("expected embedded catalog entries")
	}
	if container.CheckService.RunID == "" {
		t.Fatal("expected a run id")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("loading defaults must not create %s", path)
	}
	verdict := container.Validator.Validate("sync-labels", "labels", "../../../etc/passwd")
	if verdict.Accepted {
		t.Fatal("expected traversal rejection from wired validator")
	}
}

func TestBuildContainerWithAudit(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	dbPath := filepath.Join(dir, "audit.db")
	body := "audit:\n  enabled: true\n  path: " + dbPath + "\n"
	if err := os.WriteFile(cfgPath, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	provider := NewProvider(Options{ConfigPath: cfgPath})
	container, err := provider.Get(context.Background())
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	t.Cleanup(func() { _ = provider.Close() })

	if container.AuditStore == nil || container.AuditStore.Path() != dbPath {
		t.Fatalf("expected audit store at %s", dbPath)
	}
	if container.CheckService.Audit == nil || container.DoctorService.Audit == nil {
		t.Fatal("audit store should be wired into services")
	}
	again, _ := provider.Get(context.Background())
	if again != container {
		t.Fatal("provider must build the container once")
	}
}

func TestBuildContainerInvalidConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("batch:\n  workers: -1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := BuildContainer(context.Background(), Options{ConfigPath: cfgPath}); err == nil {
		t.Fatal("expected validation error")
	}
}
