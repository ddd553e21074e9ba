// Package store provides DocumentStore implementations.
package store

import (
	"context"
	"sync"

	"github.com/daudsoft/khata/ledger"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu   sync.RWMutex
	docs map[ledger.Collection][]byte
}

func NewMemory() *Memory {
	return &Memory{docs: make(map[ledger.Collection][]byte)}
}

func (m *Memory) Get(_ context.Context, key ledger.Collection) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(doc))
	copy(out, doc)
	return out, true, nil
}

func (m *Memory) Put(_ context.Context, key ledger.Collection, doc []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.putLocked(key, doc)
	return nil
}

// PutAll replaces several documents as one unit. Trivially atomic under
// the single write lock.
func (m *Memory) PutAll(_ context.Context, docs map[ledger.Collection][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, doc := range docs {
		m.putLocked(key, doc)
	}
	return nil
}

func (m *Memory) putLocked(key ledger.Collection, doc []byte) {
	// Copy so callers may reuse their buffers.
	stored := make([]byte, len(doc))
	copy(stored, doc)
	m.docs[key] = stored
}

func (m *Memory) Close() error { return nil }
