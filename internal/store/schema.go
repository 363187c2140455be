package store

// Schema DDL, executed on every Attach against a fresh database.
const (
	createSlots = `CREATE TABLE slots (
    key TEXT PRIMARY KEY,
    data TEXT NOT NULL,
    version INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createSlotHistory = `CREATE TABLE slot_history (
    history_id TEXT PRIMARY KEY,
    key TEXT NOT NULL,
    version INTEGER NOT NULL,
    data TEXT NOT NULL,
    operation TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

	createSlotHistoryIndex = `CREATE INDEX idx_slot_history_key ON slot_history (key, version);`
)

// schemaStatements lists the DDL in execution order.
var schemaStatements = []string{
	createSlots,
	createSlotHistory,
	createSlotHistoryIndex,
}

// JSONL file names inside the data directory.
const (
	slotsJSONL       = "slots.jsonl"
	slotHistoryJSONL = "slot_history.jsonl"
	dbFileName       = "xgrid.db"
)
