package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/xgrid/pkg/types"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// Get returns the slot stored under key.
// Returns ErrNotFound if the key has never been set.
func (b *Backend) Get(key string) (*types.Slot, error) {
	if key == "" {
		return nil, types.ErrInvalidKey
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrDetached
	}
	return b.getLocked(key)
}

func (b *Backend) getLocked(key string) (*types.Slot, error) {
	row := b.db.QueryRow(
		"SELECT key, data, version, created_at, updated_at FROM slots WHERE key = ?",
		key,
	)
	s, err := hydrateSlot(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting slot %s: %w", key, err)
	}
	return s, nil
}

// Set stores data under key. The first write creates version 1; later
// writes bump the version and append a history entry. Writing the value a
// slot already holds is a no-op and returns the current slot.
func (b *Backend) Set(key, data string) (*types.Slot, error) {
	if key == "" {
		return nil, types.ErrInvalidKey
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil, types.ErrDetached
	}

	now := time.Now().UTC()
	current, err := b.getLocked(key)
	var slot types.Slot
	operation := types.SlotOpSet
	switch {
	case errors.Is(err, types.ErrNotFound):
		slot = types.Slot{Key: key, Data: data, Version: 1, CreatedAt: now, UpdatedAt: now}
		operation = types.SlotOpCreate
	case err != nil:
		return nil, err
	case current.Data == data:
		return current, nil
	default:
		slot = *current
		slot.Data = data
		slot.Version++
		slot.UpdatedAt = now
	}

	histID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generating history UUID v7: %w", err)
	}
	entry := types.SlotHistoryEntry{
		HistoryID: histID.String(),
		Key:       key,
		Version:   slot.Version,
		Data:      data,
		Operation: operation,
		CreatedAt: now,
	}

	tx, err := b.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO slots (key, data, version, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET data = excluded.data, version = excluded.version, updated_at = excluded.updated_at`,
		slot.Key, slot.Data, slot.Version, formatTime(slot.CreatedAt), formatTime(slot.UpdatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("persisting slot: %w", err)
	}
	_, err = tx.Exec(
		"INSERT INTO slot_history (history_id, key, version, data, operation, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		entry.HistoryID, entry.Key, entry.Version, entry.Data, entry.Operation, formatTime(entry.CreatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("recording slot history: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing slot: %w", err)
	}

	if err := b.persistSlotsJSONL(); err != nil {
		return nil, fmt.Errorf("persisting %s: %w", slotsJSONL, err)
	}
	if err := appendJSONL(filepath.Join(b.config.DataDir, slotHistoryJSONL), entry); err != nil {
		return nil, fmt.Errorf("appending %s: %w", slotHistoryJSONL, err)
	}

	b.log.WithFields(logrus.Fields{"key": key, "version": slot.Version, "operation": operation}).Debug("slot written")
	return &slot, nil
}

// History returns every recorded version of key, oldest first.
// Returns ErrNotFound if the key has no history.
func (b *Backend) History(key string) ([]types.SlotHistoryEntry, error) {
	if key == "" {
		return nil, types.ErrInvalidKey
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrDetached
	}

	rows, err := b.db.Query(
		"SELECT history_id, key, version, data, operation, created_at FROM slot_history WHERE key = ? ORDER BY version ASC",
		key,
	)
	if err != nil {
		return nil, fmt.Errorf("querying history of %s: %w", key, err)
	}
	defer rows.Close()

	var entries []types.SlotHistoryEntry
	for rows.Next() {
		var h types.SlotHistoryEntry
		var createdAt string
		if err := rows.Scan(&h.HistoryID, &h.Key, &h.Version, &h.Data, &h.Operation, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning history: %w", err)
		}
		h.CreatedAt = parseTime(createdAt)
		entries = append(entries, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, types.ErrNotFound
	}
	return entries, nil
}

// persistSlotsJSONL rewrites slots.jsonl from the database.
// The caller must hold b.mu.
func (b *Backend) persistSlotsJSONL() error {
	rows, err := b.db.Query("SELECT key, data, version, created_at, updated_at FROM slots ORDER BY key")
	if err != nil {
		return fmt.Errorf("querying slots: %w", err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		s, err := hydrateSlot(rows)
		if err != nil {
			return err
		}
		data, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("marshaling slot %s: %w", s.Key, err)
		}
		records = append(records, data)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return writeJSONL(filepath.Join(b.config.DataDir, slotsJSONL), records)
}

func hydrateSlot(row rowScanner) (*types.Slot, error) {
	var s types.Slot
	var createdAt, updatedAt string
	if err := row.Scan(&s.Key, &s.Data, &s.Version, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	s.CreatedAt = parseTime(createdAt)
	s.UpdatedAt = parseTime(updatedAt)
	return &s, nil
}
