/*
repository.go - Typed access to the persisted collections

PURPOSE:
  The Repository is the only component that reads or writes the
  DocumentStore. Everything above it (balance engine, report builder,
  presentation) works on the in-memory slices it returns.

READ RECOVERY:
  Reads never fail the caller. A storage fault or corrupt document is
  decoded through an explicit step that returns a typed error; the
  repository logs that error and falls back to an empty collection (or the
  default settings document). The ledger keeps working with whatever data
  is still readable.

WRITE CYCLES:
  Upsert and Remove are read-modify-write over a whole collection
  document: load, apply, store back as one logical step. The store's own
  locking keeps that step atomic should this ever run with concurrent
  callers.

FIRST RUN:
  Bootstrap seeds one illustrative sale and one illustrative purchase the
  first time the ledger is opened, so a new book is never blank. This is a
  one-time courtesy, not a default-data policy: it only happens when the
  collection documents have never been written.
*/
package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Repository owns all persisted collections. The balance engine and
// report builder never mutate; they only consume what Sales/Expenses
// return.
type Repository struct {
	store DocumentStore
	log   zerolog.Logger
}

func NewRepository(store DocumentStore, log zerolog.Logger) *Repository {
	return &Repository{store: store, log: log}
}

// =============================================================================
// COLLECTION READS - recover locally, never fail the caller
// =============================================================================

// Sales returns the client-side collection (Sale and PaymentIn entries).
func (r *Repository) Sales(ctx context.Context) []Entry {
	return r.entries(ctx, CollectionSales)
}

// Expenses returns the supplier-side collection (Purchase and PaymentOut
// entries).
func (r *Repository) Expenses(ctx context.Context) []Entry {
	return r.entries(ctx, CollectionExpenses)
}

func (r *Repository) entries(ctx context.Context, col Collection) []Entry {
	doc, ok, err := r.store.Get(ctx, col)
	if err != nil {
		r.log.Warn().Err(err).Str("collection", string(col)).Msg("storage read failed, returning empty collection")
		return nil
	}
	if !ok {
		return nil
	}
	entries, err := decodeEntries(col, doc)
	if err != nil {
		r.log.Warn().Err(err).Str("collection", string(col)).Msg("corrupt collection document, returning empty collection")
		return nil
	}
	return entries
}

func decodeEntries(col Collection, doc []byte) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(doc, &entries); err != nil {
		return nil, &ParseError{Collection: col, Err: err}
	}
	return entries, nil
}

// Clients returns the flat list of client names.
func (r *Repository) Clients(ctx context.Context) []string {
	doc, ok, err := r.store.Get(ctx, CollectionClients)
	if err != nil {
		r.log.Warn().Err(err).Msg("storage read failed, returning empty client list")
		return nil
	}
	if !ok {
		return nil
	}
	var clients []string
	if err := json.Unmarshal(doc, &clients); err != nil {
		perr := &ParseError{Collection: CollectionClients, Err: err}
		r.log.Warn().Err(perr).Msg("corrupt client list, returning empty")
		return nil
	}
	return clients
}

// Settings returns the singleton business document, falling back to
// DefaultSettings when nothing usable has been persisted.
func (r *Repository) Settings(ctx context.Context) Settings {
	doc, ok, err := r.store.Get(ctx, CollectionSettings)
	if err != nil {
		r.log.Warn().Err(err).Msg("storage read failed, using default settings")
		return DefaultSettings()
	}
	if !ok {
		return DefaultSettings()
	}
	var s Settings
	if err := json.Unmarshal(doc, &s); err != nil {
		perr := &ParseError{Collection: CollectionSettings, Err: err}
		r.log.Warn().Err(perr).Msg("corrupt settings document, using defaults")
		return DefaultSettings()
	}
	return s
}

// =============================================================================
// COLLECTION WRITES
// =============================================================================

// SaveEntries replaces a collection wholesale.
func (r *Repository) SaveEntries(ctx context.Context, col Collection, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	doc, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode %s: %w", col, err)
	}
	if err := r.store.Put(ctx, col, doc); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// Append stores a new entry in the collection its kind implies, and
// registers the party as a client when the entry is client-side.
func (r *Repository) Append(ctx context.Context, e Entry) error {
	if err := r.Upsert(ctx, e); err != nil {
		return err
	}
	if e.Side() == SideClient {
		return r.RegisterClient(ctx, e.Party)
	}
	return nil
}

// Upsert appends the entry if its ID is unseen, or replaces it in place
// preserving the original position if seen. The entry's kind decides the
// collection; an entry never migrates between collections.
func (r *Repository) Upsert(ctx context.Context, e Entry) error {
	col := CollectionFor(e.Kind)
	entries := r.entries(ctx, col)
	replaced := false
	for i := range entries {
		if entries[i].ID == e.ID {
			entries[i] = e
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, e)
	}
	return r.SaveEntries(ctx, col, entries)
}

// Remove deletes exactly the entry with the given ID from the collection.
// Returns ErrEntryNotFound when the ID is absent; no write happens then.
func (r *Repository) Remove(ctx context.Context, col Collection, id string) error {
	entries := r.entries(ctx, col)
	for i := range entries {
		if entries[i].ID == id {
			entries = append(entries[:i], entries[i+1:]...)
			return r.SaveEntries(ctx, col, entries)
		}
	}
	return fmt.Errorf("%w: %s in %s", ErrEntryNotFound, id, col)
}

// Find locates an entry by ID across both collections.
func (r *Repository) Find(ctx context.Context, id string) (Entry, Collection, error) {
	for _, col := range []Collection{CollectionSales, CollectionExpenses} {
		for _, e := range r.entries(ctx, col) {
			if e.ID == id {
				return e, col, nil
			}
		}
	}
	return Entry{}, "", fmt.Errorf("%w: %s", ErrEntryNotFound, id)
}

// SaveClients replaces the client list wholesale.
func (r *Repository) SaveClients(ctx context.Context, clients []string) error {
	if clients == nil {
		clients = []string{}
	}
	doc, err := json.Marshal(clients)
	if err != nil {
		return fmt.Errorf("encode clients: %w", err)
	}
	if err := r.store.Put(ctx, CollectionClients, doc); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// RegisterClient appends a name to the client list unless already present.
// Matching is exact: names differing only in case are distinct clients.
func (r *Repository) RegisterClient(ctx context.Context, name string) error {
	clients := r.Clients(ctx)
	for _, c := range clients {
		if c == name {
			return nil
		}
	}
	return r.SaveClients(ctx, append(clients, name))
}

// SaveSettings replaces the settings document wholesale. The caller must
// supply the full document; there are no partial updates.
func (r *Repository) SaveSettings(ctx context.Context, s Settings) error {
	doc, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := r.store.Put(ctx, CollectionSettings, doc); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// =============================================================================
// FIRST-RUN BOOTSTRAP
// =============================================================================

// Bootstrap seeds illustrative data the first time each collection is
// opened. Collections that have ever been written (even to empty) are
// left alone.
func (r *Repository) Bootstrap(ctx context.Context) error {
	if _, ok, err := r.store.Get(ctx, CollectionSales); err == nil && !ok {
		seed := Entry{
			ID:        NewEntryID(),
			Date:      NewDate(2025, 12, 1),
			Party:     "Alice Smith",
			Kind:      KindSale,
			Product:   "Milk",
			Quantity:  decimal.NewFromInt(10),
			Unit:      "Liters",
			UnitPrice: decimal.NewFromInt(180),
			Amount:    decimal.NewFromInt(1800),
			CreatedAt: Today().Time,
		}
		if err := r.SaveEntries(ctx, CollectionSales, []Entry{seed}); err != nil {
			return err
		}
		if err := r.SaveClients(ctx, []string{seed.Party}); err != nil {
			return err
		}
		r.log.Info().Msg("seeded first-run sales collection")
	}

	if _, ok, err := r.store.Get(ctx, CollectionExpenses); err == nil && !ok {
		seed := Entry{
			ID:        NewEntryID(),
			Date:      NewDate(2025, 12, 2),
			Party:     "Local Farm A",
			Kind:      KindPurchase,
			Product:   "Raw Milk",
			Quantity:  decimal.NewFromInt(50),
			UnitPrice: decimal.NewFromInt(160),
			Amount:    decimal.NewFromInt(8000),
			CreatedAt: Today().Time,
		}
		if err := r.SaveEntries(ctx, CollectionExpenses, []Entry{seed}); err != nil {
			return err
		}
		r.log.Info().Msg("seeded first-run expenses collection")
	}
	return nil
}

// =============================================================================
// BACKUP / RESTORE
// =============================================================================

// ExportSnapshot assembles the full backup document from all four
// collections.
func (r *Repository) ExportSnapshot(ctx context.Context) Snapshot {
	return Snapshot{
		Version:  SnapshotVersion,
		Sales:    r.Sales(ctx),
		Expenses: r.Expenses(ctx),
		Clients:  r.Clients(ctx),
		Settings: r.Settings(ctx),
	}
}

// ImportSnapshot replaces all four collections with the snapshot's
// contents as one atomic write. On any failure existing data is left
// untouched. Callers are expected to have confirmed the overwrite with
// the user first; this is a destructive operation.
func (r *Repository) ImportSnapshot(ctx context.Context, s Snapshot) error {
	docs := make(map[Collection][]byte, 4)
	for col, v := range map[Collection]any{
		CollectionSales:    emptyIfNil(s.Sales),
		CollectionExpenses: emptyIfNil(s.Expenses),
		CollectionClients:  emptyClientsIfNil(s.Clients),
		CollectionSettings: s.Settings,
	} {
		doc, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", col, err)
		}
		docs[col] = doc
	}
	if err := r.store.PutAll(ctx, docs); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	r.log.Info().
		Int("sales", len(s.Sales)).
		Int("expenses", len(s.Expenses)).
		Int("clients", len(s.Clients)).
		Msg("restored snapshot")
	return nil
}

func emptyIfNil(entries []Entry) []Entry {
	if entries == nil {
		return []Entry{}
	}
	return entries
}

func emptyClientsIfNil(clients []string) []string {
	if clients == nil {
		return []string{}
	}
	return clients
}
