package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/actionguard/internal/domain"
	"github.com/doeshing/actionguard/internal/ports"
)

// SQLiteStore persists audit records in a SQLite database.
type SQLiteStore struct {
	db       *sql.DB
	path     string
	fallback *FileStore
	mu       sync.Mutex
}

// NewSQLiteStore creates (or opens) the audit database at path. When the
// database cannot be initialized the store degrades to a JSONL file next to it.
func NewSQLiteStore(path string) *SQLiteStore {
	_ = os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
	fallback := NewFileStore(strings.TrimSuffix(path, filepath.Ext(path)) + ".jsonl")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &SQLiteStore{path: path, fallback: fallback}
	}
	store := &SQLiteStore{db: db, path: path, fallback: fallback}
	if err := store.init(); err != nil {
		_ = db.Close()
		return &SQLiteStore{path: path, fallback: fallback}
	}
	return store
}

func (s *SQLiteStore) init() error {
	if s.db == nil {
		return os.ErrInvalid
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS verdicts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT,
		timestamp TEXT,
		action TEXT,
		input TEXT,
		kind TEXT,
		known INTEGER,
		accepted INTEGER,
		reason TEXT,
		detail TEXT,
		value_length INTEGER
	);`)
	return err
}

// Save inserts a new record.
func (s *SQLiteStore) Save(record domain.AuditRecord) error {
	if s.db == nil {
		return s.fallback.Save(record)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO verdicts
		(run_id, timestamp, action, input, kind, known, accepted, reason, detail, value_length)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.RunID,
		record.Timestamp.Format(domain.TimestampFormat),
		record.Action,
		record.Input,
		string(record.Kind),
		boolToInt(record.Known),
		boolToInt(record.Accepted),
		string(record.Reason),
		record.Detail,
		record.ValueLength,
	)
	return err
}

// Records returns audit entries, newest first (limit/filter optional).
func (s *SQLiteStore) Records(limit int, filter string) ([]domain.AuditRecord, error) {
	if s.db == nil {
		return s.fallback.Records(limit, filter)
	}
	builder := strings.Builder{}
	builder.WriteString("SELECT run_id, timestamp, action, input, kind, known, accepted, reason, detail, value_length FROM verdicts")
	var args []interface{}
	if filter != "" {
		builder.WriteString(" WHERE action LIKE ? OR input LIKE ? OR reason LIKE ?")
		args = append(args, "%"+filter+"%", "%"+filter+"%", "%"+filter+"%")
	}
	builder.WriteString(" ORDER BY id DESC")
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	rows, err := s.db.Query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []domain.AuditRecord
	for rows.Next() {
		var rec domain.AuditRecord
		var ts, kind, reason string
		var known, accepted int
		if err := rows.Scan(&rec.RunID, &ts, &rec.Action, &rec.Input, &kind, &known, &accepted, &reason, &rec.Detail, &rec.ValueLength); err != nil {
			return nil, err
		}
		if t, err := time.Parse(domain.TimestampFormat, ts); err == nil {
			rec.Timestamp = t
		}
		rec.Kind = domain.Kind(kind)
		rec.Reason = domain.Reason(reason)
		rec.Known = known == 1
		rec.Accepted = accepted == 1
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Stats aggregates verdict counts.
func (s *SQLiteStore) Stats() (domain.AuditStats, error) {
	if s.db == nil {
		return s.fallback.Stats()
	}
	stats := domain.AuditStats{ByReason: map[domain.Reason]int{}}
	rows, err := s.db.Query("SELECT accepted, reason, COUNT(*) FROM verdicts GROUP BY accepted, reason")
	if err != nil {
		return stats, err
	}
	defer rows.Close()
	for rows.Next() {
		var accepted, count int
		var reason string
		if err := rows.Scan(&accepted, &reason, &count); err != nil {
			return stats, err
		}
		stats.Total += count
		if accepted == 1 {
			stats.Accepted += count
			continue
		}
		stats.Rejected += count
		stats.ByReason[domain.Reason(reason)] += count
	}
	return stats, rows.Err()
}

// Clear deletes all audit entries.
func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return s.fallback.Clear()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("DELETE FROM verdicts")
	return err
}

// ExportJSON writes the verdict table to a jsonl file.
func (s *SQLiteStore) ExportJSON(dest string) error {
	records, err := s.Records(0, "")
	if err != nil {
		return err
	}
	return writeJSONL(dest, records)
}

// Path returns the sqlite database path, or the JSONL path when degraded.
func (s *SQLiteStore) Path() string {
	if s.db == nil {
		return s.fallback.Path()
	}
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func writeJSONL(dest string, records []domain.AuditRecord) error {
	file, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer file.Close()
	for _, rec := range records {
		b, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if _, err := file.Write(append(b, '\n')); err != nil {
			return err
		}
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.AuditRepository = (*SQLiteStore)(nil)
