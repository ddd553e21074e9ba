package ledger

import (
	"encoding/json"
	"fmt"
	"time"
)

// =============================================================================
// SNAPSHOT - Portable backup of all four collections
// =============================================================================

// SnapshotVersion is the schema version written by EncodeSnapshot.
// Version 0 documents (no version field) are legacy exports and are
// accepted on import.
const SnapshotVersion = 1

// Snapshot is the full export of the ledger: every collection in one
// document. importing a snapshot replaces all four collections atomically.
type Snapshot struct {
	Version  int      `json:"version"`
	Sales    []Entry  `json:"sales"`
	Expenses []Entry  `json:"expenses"`
	Clients  []string `json:"clients"`
	Settings Settings `json:"settings"`
}

// EncodeSnapshot serializes a snapshot at the current schema version.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	s.Version = SnapshotVersion
	return json.MarshalIndent(s, "", "  ")
}

// DecodeSnapshot validates and decodes a backup document. All four
// collection keys must be present with the right shapes: sales, expenses
// and clients must be sequences, settings a document. Any violation
// yields a *SnapshotError wrapping ErrBadSnapshot and nothing is applied.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var raw struct {
		Version  *int             `json:"version"`
		Sales    *json.RawMessage `json:"sales"`
		Expenses *json.RawMessage `json:"expenses"`
		Clients  *json.RawMessage `json:"clients"`
		Settings *json.RawMessage `json:"settings"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Snapshot{}, &SnapshotError{Field: "document", Reason: err.Error()}
	}

	if raw.Version != nil && *raw.Version > SnapshotVersion {
		return Snapshot{}, &SnapshotError{
			Field:  "version",
			Reason: fmt.Sprintf("unsupported snapshot version %d", *raw.Version),
		}
	}

	var s Snapshot
	if raw.Version != nil {
		s.Version = *raw.Version
	}
	if err := decodeSnapshotField(raw.Sales, "sales", &s.Sales); err != nil {
		return Snapshot{}, err
	}
	if err := decodeSnapshotField(raw.Expenses, "expenses", &s.Expenses); err != nil {
		return Snapshot{}, err
	}
	if err := decodeSnapshotField(raw.Clients, "clients", &s.Clients); err != nil {
		return Snapshot{}, err
	}
	if err := decodeSnapshotField(raw.Settings, "settings", &s.Settings); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

func decodeSnapshotField(raw *json.RawMessage, field string, into any) error {
	if raw == nil {
		return &SnapshotError{Field: field, Reason: "missing"}
	}
	if err := json.Unmarshal(*raw, into); err != nil {
		return &SnapshotError{Field: field, Reason: err.Error()}
	}
	return nil
}

// BackupFileName returns the conventional backup file name for a given
// day, e.g. "Ledger_Backup_2025-12-01.json".
func BackupFileName(t time.Time) string {
	return "Ledger_Backup_" + t.UTC().Format("2006-01-02") + ".json"
}
