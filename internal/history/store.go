// Package history persists one snapshot row per completed scan so symbol and
// edge counts can be tracked over time.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"perlxref/internal/symtab"
)

const driverName = "sqlite"

type Store struct {
	path string
	db   *sql.DB
	mu   sync.Mutex
}

type Snapshot struct {
	Timestamp      time.Time
	Root           string
	Files          int
	PackageSymbols int
	LexicalSymbols int
	Edges          int
	Unresolved     int
	Conflicts      int
}

func Open(path string) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("history path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("history path %q is a directory, expected file", cleanPath)
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory %q: %w", dir, err)
		}
	}

	// busy_timeout + WAL reduce lock conflicts during watch-mode churn.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)&_pragma=journal_mode(WAL)", cleanPath)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite history %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite history %q: %w", cleanPath, err)
	}
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize sqlite schema %q: %w", cleanPath, err)
	}

	return &Store{path: cleanPath, db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveScan records the stats of one completed scan.
func (s *Store) SaveScan(root string, st symtab.Stats) error {
	return s.Save(Snapshot{
		Root:           root,
		Files:          st.Files,
		PackageSymbols: st.PackageSymbols,
		LexicalSymbols: st.LexicalSymbols,
		Edges:          st.Edges,
		Unresolved:     st.Unresolved,
		Conflicts:      st.Conflicts,
	})
}

func (s *Store) Save(snapshot Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snapshot.Timestamp.IsZero() {
		snapshot.Timestamp = time.Now().UTC()
	}

	query := `
INSERT INTO snapshots (
  root, ts_utc, file_count, package_symbol_count, lexical_symbol_count,
  edge_count, unresolved_count, conflict_count
) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(root, ts_utc) DO UPDATE SET
  file_count=excluded.file_count,
  package_symbol_count=excluded.package_symbol_count,
  lexical_symbol_count=excluded.lexical_symbol_count,
  edge_count=excluded.edge_count,
  unresolved_count=excluded.unresolved_count,
  conflict_count=excluded.conflict_count
`
	_, err := s.db.Exec(query,
		snapshot.Root,
		snapshot.Timestamp.UTC().Format(time.RFC3339Nano),
		snapshot.Files,
		snapshot.PackageSymbols,
		snapshot.LexicalSymbols,
		snapshot.Edges,
		snapshot.Unresolved,
		snapshot.Conflicts,
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Recent returns up to limit snapshots for a root, newest first.
func (s *Store) Recent(root string, limit int) ([]Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
SELECT root, ts_utc, file_count, package_symbol_count, lexical_symbol_count,
       edge_count, unresolved_count, conflict_count
FROM snapshots WHERE root = ? ORDER BY ts_utc DESC LIMIT ?`, root, limit)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var snap Snapshot
		var ts string
		if err := rows.Scan(&snap.Root, &ts, &snap.Files, &snap.PackageSymbols,
			&snap.LexicalSymbols, &snap.Edges, &snap.Unresolved, &snap.Conflicts); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			snap.Timestamp = parsed
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}
