package history

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/doeshing/actionguard/internal/domain"
	"github.com/doeshing/actionguard/internal/ports"
)

func sampleRecords() []domain.AuditRecord {
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	return []domain.AuditRecord{
		{RunID: "r1", Timestamp: now, Action: "sync-labels", Input: "labels", Kind: domain.KindRelativePath, Known: true, Accepted: true, ValueLength: 18},
		{RunID: "r2", Timestamp: now.Add(time.Second), Action: "sync-labels", Input: "labels", Kind: domain.KindRelativePath, Known: true, Reason: domain.ReasonPathTraversal, Detail: "parent directory segment", ValueLength: 19},
		{RunID: "r3", Timestamp: now.Add(2 * time.Second), Action: "common-file-check", Input: "file-pattern", Kind: domain.KindGlobPattern, Known: true, Reason: domain.ReasonShellInjection, ValueLength: 15},
	}
}

func exerciseStore(t *testing.T, store ports.AuditRepository) {
	t.Helper()
	for _, rec := range sampleRecords() {
		if err := store.Save(rec); err != nil {
			t.Fatalf("Save error: %v", err)
		}
	}

	records, err := store.Records(0, "")
	if err != nil {
		t.Fatalf("Records error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].RunID != "r3" {
		t.Fatalf("expected newest first, got %s", records[0].RunID)
	}
	if records[1].Reason != domain.ReasonPathTraversal || records[1].Accepted || !records[1].Known {
		t.Fatalf("record fields not preserved: %+v", records[1])
	}
	if !records[2].Timestamp.Equal(sampleRecords()[0].Timestamp) {
		t.Fatalf("timestamp not preserved: %v", records[2].Timestamp)
	}

	limited, err := store.Records(1, "sync-labels")
	if err != nil {
		t.Fatalf("Records error: %v", err)
	}
	if len(limited) != 1 || limited[0].RunID != "r2" {
		t.Fatalf("unexpected filtered records %+v", limited)
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats error: %v", err)
	}
	if stats.Total != 3 || stats.Accepted != 1 || stats.Rejected != 2 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if stats.ByReason[domain.ReasonShellInjection] != 1 || stats.ByReason[domain.ReasonPathTraversal] != 1 {
		t.Fatalf("unexpected reason counts %+v", stats.ByReason)
	}

	dest := filepath.Join(t.TempDir(), "export.jsonl")
	if err := store.ExportJSON(dest); err != nil {
		t.Fatalf("ExportJSON error: %v", err)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(string(data), "\n"); lines != 3 {
		t.Fatalf("expected 3 exported lines, got %d", lines)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	records, err = store.Records(0, "")
	if err != nil {
		t.Fatalf("Records after clear error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty store after clear, got %d", len(records))
	}
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	store := NewSQLiteStore(path)
	t.Cleanup(func() { _ = store.Close() })
	if store.Path() != path {
		t.Fatalf("expected sqlite path %s, got %s", path, store.Path())
	}
	exerciseStore(t, store)
}

func TestFileStore(t *testing.T) {
	exerciseStore(t, NewFileStore(filepath.Join(t.TempDir(), "audit.jsonl")))
}

func TestFileStoreMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "missing.jsonl"))
	records, err := store.Records(10, "")
	if err != nil || len(records) != 0 {
		t.Fatalf("expected no records and no error, got %v %v", records, err)
	}
}
