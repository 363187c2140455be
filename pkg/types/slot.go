package types

import (
	"errors"
	"time"
)

// Slot operation names recorded in history.
const (
	SlotOpCreate = "create"
	SlotOpSet    = "set"
)

// Slot is a named, versioned text value. The grid editor keeps its
// serialized grid in the slot named "grid".
type Slot struct {
	// Key is the slot name, unique within the store.
	Key string `json:"key"`

	// Data is the stored value.
	Data string `json:"data"`

	// Version starts at 1 and increases by one on every change.
	Version int64 `json:"version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SlotHistoryEntry records one version of a slot.
type SlotHistoryEntry struct {
	// HistoryID is a UUID v7.
	HistoryID string `json:"history_id"`

	Key     string `json:"key"`
	Version int64  `json:"version"`
	Data    string `json:"data"`

	// Operation is SlotOpCreate or SlotOpSet.
	Operation string `json:"operation"`

	CreatedAt time.Time `json:"created_at"`
}

// Backend lifecycle errors.
var (
	ErrDetached        = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)

// Slot operation errors.
var (
	ErrNotFound   = errors.New("slot not found")
	ErrInvalidKey = errors.New("invalid slot key")
)
