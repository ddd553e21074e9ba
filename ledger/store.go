/*
store.go - Persistence interface for the ledger collections

PURPOSE:
  Defines the boundary between the repository and the durable store.
  The store is a plain key→document mapping: one JSON document per
  collection, no knowledge of entry semantics. Different implementations
  can use SQLite or in-memory storage.

COLLECTIONS:
  sales:    entries with kind Sale or PaymentIn
  expenses: entries with kind Purchase or PaymentOut
  clients:  flat list of client names
  settings: the singleton business document

ATOMICITY:
  Each Put is one atomic document replacement. PutAll writes several
  documents as one unit; the backup restore path depends on this to
  replace all four collections or none of them.

IMPLEMENTATIONS:
  - store/sqlite: durable production store
  - ledger/store: in-memory store for tests
*/
package ledger

import "context"

// Collection names a persisted document.
type Collection string

const (
	CollectionSales    Collection = "sales"
	CollectionExpenses Collection = "expenses"
	CollectionClients  Collection = "clients"
	CollectionSettings Collection = "settings"
)

// CollectionFor returns the collection an entry of the given kind lives in.
// Client-side entries (Sale, PaymentIn) live in sales; supplier-side
// entries (Purchase, PaymentOut) live in expenses.
func CollectionFor(k Kind) Collection {
	if k.Side() == SideClient {
		return CollectionSales
	}
	return CollectionExpenses
}

// DocumentStore is a durable key→document mapping. Implementations must
// make each call atomic with respect to the others; the repository's
// read-modify-write cycles rely on it.
type DocumentStore interface {
	// Get returns the stored document and whether the key has ever been
	// written.
	Get(ctx context.Context, key Collection) (doc []byte, ok bool, err error)

	// Put replaces the document under key.
	Put(ctx context.Context, key Collection, doc []byte) error

	// PutAll replaces several documents as one atomic unit.
	// Either every key is written or none is.
	PutAll(ctx context.Context, docs map[Collection][]byte) error

	// Close releases the underlying resources.
	Close() error
}
