// Package store implements the xgrid storage backend: named, versioned
// slots kept in JSONL files and queried through SQLite.
//
// The JSONL files in the data directory are the source of truth. Attach
// recreates the SQLite database and loads the files into it; every write
// goes to SQLite inside a transaction and is then persisted back to JSONL
// (slots.jsonl rewritten atomically, slot_history.jsonl appended).
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/xgrid/pkg/types"
)

// Backend is a SQLite-backed slot store.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	log      logrus.FieldLogger
}

// NewBackend creates a new backend. The backend is not attached; call
// Attach with a Config to initialize. A nil logger discards output.
func NewBackend(log logrus.FieldLogger) *Backend {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	return &Backend{log: log}
}

// Attach initializes the backend with the given configuration. It creates
// DataDir if needed, builds a fresh SQLite schema and loads the JSONL files.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	if config.DataDir == "" {
		config.DataDir = "."
	}
	if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	// The database is a cache of the JSONL files; start from scratch.
	dbPath := filepath.Join(config.DataDir, dbFileName)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("create schema: %w", err)
		}
	}

	b.db = db
	b.config = config

	for _, name := range []string{slotsJSONL, slotHistoryJSONL} {
		if err := ensureJSONL(filepath.Join(config.DataDir, name)); err != nil {
			db.Close()
			return err
		}
	}
	if err := b.loadJSONL(); err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	b.attached = true
	b.log.WithField("data_dir", config.DataDir).Debug("store attached")
	return nil
}

// Detach closes the database. Detach is idempotent; after Detach all
// operations return ErrDetached.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.attached = false
	b.log.Debug("store detached")
	return nil
}

// DataDir returns the directory the backend is attached to.
func (b *Backend) DataDir() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.config.DataDir
}

// loadJSONL fills the fresh database from the JSONL files. Records that do
// not decode are skipped.
func (b *Backend) loadJSONL() error {
	slots, err := readJSONL(filepath.Join(b.config.DataDir, slotsJSONL))
	if err != nil {
		return err
	}
	history, err := readJSONL(filepath.Join(b.config.DataDir, slotHistoryJSONL))
	if err != nil {
		return err
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, raw := range slots {
		var s types.Slot
		if err := json.Unmarshal(raw, &s); err != nil || s.Key == "" {
			b.log.WithField("file", slotsJSONL).Warn("skipping malformed record")
			continue
		}
		_, err := tx.Exec(
			"INSERT OR REPLACE INTO slots (key, data, version, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
			s.Key, s.Data, s.Version, formatTime(s.CreatedAt), formatTime(s.UpdatedAt),
		)
		if err != nil {
			return fmt.Errorf("loading slot %s: %w", s.Key, err)
		}
	}
	for _, raw := range history {
		var h types.SlotHistoryEntry
		if err := json.Unmarshal(raw, &h); err != nil || h.HistoryID == "" {
			b.log.WithField("file", slotHistoryJSONL).Warn("skipping malformed record")
			continue
		}
		_, err := tx.Exec(
			"INSERT OR REPLACE INTO slot_history (history_id, key, version, data, operation, created_at) VALUES (?, ?, ?, ?, ?, ?)",
			h.HistoryID, h.Key, h.Version, h.Data, h.Operation, formatTime(h.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("loading history %s: %w", h.HistoryID, err)
		}
	}
	return tx.Commit()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
