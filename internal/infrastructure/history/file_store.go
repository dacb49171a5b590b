package history

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/doeshing/actionguard/internal/domain"
	"github.com/doeshing/actionguard/internal/ports"
)

// FileStore appends audit records to a jsonl file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store backed by the jsonl file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save implements ports.AuditRepository.
func (f *FileStore) Save(record domain.AuditRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(f.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, domain.SecureFilePermissions)
	if err != nil {
		return err
	}
	defer file.Close()
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = file.Write(data)
	return err
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// Clear removes the audit file.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Records loads audit entries newest first (best-effort).
func (f *FileStore) Records(limit int, filter string) ([]domain.AuditRecord, error) {
	all, err := f.load()
	if err != nil {
		return nil, err
	}
	var records []domain.AuditRecord
	for i := len(all) - 1; i >= 0; i-- {
		rec := all[i]
		if filter != "" && !matchesFilter(rec, filter) {
			continue
		}
		records = append(records, rec)
		if limit > 0 && len(records) == limit {
			break
		}
	}
	return records, nil
}

// Stats implements ports.AuditRepository.
func (f *FileStore) Stats() (domain.AuditStats, error) {
	stats := domain.AuditStats{ByReason: map[domain.Reason]int{}}
	all, err := f.load()
	if err != nil {
		return stats, err
	}
	for _, rec := range all {
		stats.Total++
		if rec.Accepted {
			stats.Accepted++
			continue
		}
		stats.Rejected++
		stats.ByReason[rec.Reason]++
	}
	return stats, nil
}

// ExportJSON copies the records to dest, newest first.
func (f *FileStore) ExportJSON(dest string) error {
	records, err := f.Records(0, "")
	if err != nil {
		return err
	}
	return writeJSONL(dest, records)
}

func (f *FileStore) load() ([]domain.AuditRecord, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	var records []domain.AuditRecord
	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		var rec domain.AuditRecord
		if err := json.Unmarshal(line, &rec); err == nil {
			records = append(records, rec)
		}
	}
	return records, nil
}

func matchesFilter(rec domain.AuditRecord, filter string) bool {
	return strings.Contains(rec.Action, filter) ||
		strings.Contains(rec.Input, filter) ||
		strings.Contains(string(rec.Reason), filter)
}

var _ ports.AuditRepository = (*FileStore)(nil)
