package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daudsoft/khata/ledger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGet_NeverWrittenKey(t *testing.T) {
	s := newTestStore(t)

	doc, ok, err := s.Get(context.Background(), ledger.CollectionSales)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, doc)
}

func TestPutGet_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, ledger.CollectionSales, []byte(`[{"id":"x"}]`)))

	doc, ok, err := s.Get(ctx, ledger.CollectionSales)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"x"}]`, string(doc))
}

func TestPut_Overwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, ledger.CollectionSettings, []byte(`{"appName":"old"}`)))
	require.NoError(t, s.Put(ctx, ledger.CollectionSettings, []byte(`{"appName":"new"}`)))

	doc, ok, err := s.Get(ctx, ledger.CollectionSettings)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"appName":"new"}`, string(doc))
}

func TestPut_EmptyDocumentCountsAsWritten(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// An empty collection is a deliberate write, distinct from "never written".
	require.NoError(t, s.Put(ctx, ledger.CollectionSales, []byte(`[]`)))

	doc, ok, err := s.Get(ctx, ledger.CollectionSales)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, string(doc))
}

func TestPutAll_WritesEveryKey(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, ledger.CollectionClients, []byte(`["stale"]`)))

	docs := map[ledger.Collection][]byte{
		ledger.CollectionSales:    []byte(`[]`),
		ledger.CollectionExpenses: []byte(`[]`),
		ledger.CollectionClients:  []byte(`["Alice"]`),
		ledger.CollectionSettings: []byte(`{"appName":"Shop"}`),
	}
	require.NoError(t, s.PutAll(ctx, docs))

	for key, want := range docs {
		got, ok, err := s.Get(ctx, key)
		require.NoError(t, err)
		require.True(t, ok, "key %s", key)
		assert.Equal(t, string(want), string(got))
	}
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "khata.db")

	s, err := New(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, ledger.CollectionSales, []byte(`["durable"]`)))
	require.NoError(t, s.Close())

	reopened, err := New(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	doc, ok, err := reopened.Get(ctx, ledger.CollectionSales)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["durable"]`, string(doc))
}
