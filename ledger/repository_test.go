package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daudsoft/khata/ledger"
	"github.com/daudsoft/khata/ledger/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestRepo(t *testing.T) (*ledger.Repository, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	return ledger.NewRepository(mem, zerolog.Nop()), mem
}

func mustSale(t *testing.T, party string, amount int64, day int) ledger.Entry {
	t.Helper()
	e, err := ledger.NewEntry(ledger.KindSale, ledger.EntryInput{
		Date:    ledger.NewDate(2025, time.December, day),
		Party:   party,
		Product: "Milk",
		Amount:  dec(amount),
	})
	require.NoError(t, err)
	return e
}

// =============================================================================
// FIRST-RUN BOOTSTRAP
// =============================================================================

func TestBootstrap_SeedsOnce(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	// WHEN: Opening a brand-new book
	require.NoError(t, repo.Bootstrap(ctx))

	// THEN: One illustrative sale, one purchase, the implied client
	sales := repo.Sales(ctx)
	require.Len(t, sales, 1)
	assert.Equal(t, ledger.KindSale, sales[0].Kind)
	assert.Equal(t, "Alice Smith", sales[0].Party)
	assert.True(t, sales[0].Amount.Equal(dec(1800)))

	expenses := repo.Expenses(ctx)
	require.Len(t, expenses, 1)
	assert.Equal(t, ledger.KindPurchase, expenses[0].Kind)
	assert.Equal(t, "Local Farm A", expenses[0].Party)

	assert.Equal(t, []string{"Alice Smith"}, repo.Clients(ctx))

	// AND: Bootstrapping again leaves everything alone
	require.NoError(t, repo.Bootstrap(ctx))
	assert.Len(t, repo.Sales(ctx), 1)
}

func TestBootstrap_EmptiedCollectionStaysEmpty(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	// GIVEN: A book whose sales were deliberately cleared
	require.NoError(t, repo.SaveEntries(ctx, ledger.CollectionSales, nil))

	// THEN: Bootstrap respects the write; seeding is first-run only
	require.NoError(t, repo.Bootstrap(ctx))
	assert.Empty(t, repo.Sales(ctx))
}

// =============================================================================
// UPSERT / REMOVE
// =============================================================================

func TestUpsert_AppendsThenReplacesInPlace(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	first := mustSale(t, "Alice", 100, 1)
	second := mustSale(t, "Bob", 200, 2)
	third := mustSale(t, "Carol", 300, 3)
	for _, e := range []ledger.Entry{first, second, third} {
		require.NoError(t, repo.Upsert(ctx, e))
	}

	// WHEN: Editing the middle entry
	edited, err := ledger.UpdateEntry(second, ledger.EntryPatch{
		Date: second.Date, Party: second.Party, Product: second.Product, Amount: dec(250),
	})
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, edited))

	// THEN: Same length, same position, same id, new amount
	sales := repo.Sales(ctx)
	require.Len(t, sales, 3)
	assert.Equal(t, second.ID, sales[1].ID)
	assert.Equal(t, ledger.KindSale, sales[1].Kind)
	assert.True(t, sales[1].Amount.Equal(dec(250)))
	assert.Equal(t, first.ID, sales[0].ID)
	assert.Equal(t, third.ID, sales[2].ID)
}

func TestRemove_DeletesExactlyOne(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	keep := mustSale(t, "Alice", 100, 1)
	gone := mustSale(t, "Bob", 200, 2)
	require.NoError(t, repo.Upsert(ctx, keep))
	require.NoError(t, repo.Upsert(ctx, gone))

	require.NoError(t, repo.Remove(ctx, ledger.CollectionSales, gone.ID))

	sales := repo.Sales(ctx)
	require.Len(t, sales, 1)
	assert.Equal(t, keep.ID, sales[0].ID)
	assert.True(t, sales[0].Amount.Equal(keep.Amount))
}

func TestRemove_UnknownID(t *testing.T) {
	repo, _ := newTestRepo(t)
	err := repo.Remove(context.Background(), ledger.CollectionSales, "no-such-id")
	assert.ErrorIs(t, err, ledger.ErrEntryNotFound)
}

func TestFind_AcrossCollections(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	purchase, err := ledger.NewEntry(ledger.KindPurchase, ledger.EntryInput{
		Date: ledger.NewDate(2025, time.December, 2), Party: "Farm A", Product: "Raw Milk", Amount: dec(8000),
	})
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, purchase))

	found, col, err := repo.Find(ctx, purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, ledger.CollectionExpenses, col)
	assert.Equal(t, purchase.Party, found.Party)

	_, _, err = repo.Find(ctx, "missing")
	assert.ErrorIs(t, err, ledger.ErrEntryNotFound)
}

// =============================================================================
// CLIENT LIST
// =============================================================================

func TestAppend_RegistersNewClients(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, mustSale(t, "Alice", 100, 1)))
	require.NoError(t, repo.Append(ctx, mustSale(t, "Alice", 200, 2)))
	require.NoError(t, repo.Append(ctx, mustSale(t, "alice", 300, 3))) // distinct: exact match only

	assert.Equal(t, []string{"Alice", "alice"}, repo.Clients(ctx))
}

func TestAppend_SupplierSideDoesNotTouchClients(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	pay, err := ledger.NewEntry(ledger.KindPaymentOut, ledger.EntryInput{
		Date: ledger.NewDate(2025, time.December, 1), Party: "Farm A", Amount: dec(500),
	})
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, pay))

	assert.Empty(t, repo.Clients(ctx))
	require.Len(t, repo.Expenses(ctx), 1)
}

// =============================================================================
// SETTINGS & READ RECOVERY
// =============================================================================

func TestSettings_DefaultsAndWholesaleSave(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	// Defaults before anything is persisted.
	s := repo.Settings(ctx)
	assert.Equal(t, "Daud Dairy Products", s.AppName)
	assert.Len(t, s.Products, 4)
	assert.Equal(t, []string{"Local Farm A", "Milk Center B"}, s.Suppliers)

	s.AppName = "New Shop"
	s.Suppliers = []string{"Only Farm"}
	require.NoError(t, repo.SaveSettings(ctx, s))

	saved := repo.Settings(ctx)
	assert.Equal(t, "New Shop", saved.AppName)
	assert.Equal(t, []string{"Only Farm"}, saved.Suppliers)
}

func TestSettings_CorruptDocumentFallsBackToDefaults(t *testing.T) {
	repo, mem := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, mem.Put(ctx, ledger.CollectionSettings, []byte("{not json")))

	assert.Equal(t, "Daud Dairy Products", repo.Settings(ctx).AppName)
}

func TestEntries_CorruptDocumentFallsBackToEmpty(t *testing.T) {
	repo, mem := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, mem.Put(ctx, ledger.CollectionSales, []byte(`"garbage"`)))

	assert.Empty(t, repo.Sales(ctx))
}

func TestEntries_StorageFailureFallsBackToEmpty(t *testing.T) {
	repo := ledger.NewRepository(&brokenStore{}, zerolog.Nop())

	assert.Empty(t, repo.Sales(context.Background()))
	assert.Equal(t, "Daud Dairy Products", repo.Settings(context.Background()).AppName)
}

// =============================================================================
// BACKUP / RESTORE
// =============================================================================

func TestSnapshot_ExportImportFixedPoint(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Bootstrap(ctx))
	require.NoError(t, repo.Append(ctx, mustSale(t, "Bob", 999, 5)))

	before := repo.ExportSnapshot(ctx)

	// WHEN: Importing the book's own export
	require.NoError(t, repo.ImportSnapshot(ctx, before))

	// THEN: State is byte-for-byte the same snapshot
	after := repo.ExportSnapshot(ctx)
	assert.Equal(t, before, after)
}

func TestImportSnapshot_ReplacesEverything(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Bootstrap(ctx))

	incoming := ledger.Snapshot{
		Sales:    []ledger.Entry{mustSale(t, "Zed", 42, 9)},
		Expenses: []ledger.Entry{},
		Clients:  []string{"Zed"},
		Settings: ledger.Settings{AppName: "Restored Shop", Phone: "111"},
	}
	require.NoError(t, repo.ImportSnapshot(ctx, incoming))

	sales := repo.Sales(ctx)
	require.Len(t, sales, 1)
	assert.Equal(t, "Zed", sales[0].Party)
	assert.Empty(t, repo.Expenses(ctx))
	assert.Equal(t, []string{"Zed"}, repo.Clients(ctx))
	assert.Equal(t, "Restored Shop", repo.Settings(ctx).AppName)
}

func TestImportSnapshot_FailedWriteLeavesDataUntouched(t *testing.T) {
	// GIVEN: A store whose multi-key write fails
	mem := store.NewMemory()
	repo := ledger.NewRepository(&failingPutAll{Memory: mem}, zerolog.Nop())
	ctx := context.Background()
	require.NoError(t, repo.Bootstrap(ctx))
	before := repo.ExportSnapshot(ctx)

	// WHEN: A restore attempt fails mid-write
	err := repo.ImportSnapshot(ctx, ledger.Snapshot{Settings: ledger.Settings{AppName: "X"}})

	// THEN: The error surfaces and nothing changed
	require.ErrorIs(t, err, ledger.ErrStorageUnavailable)
	assert.Equal(t, before, repo.ExportSnapshot(ctx))
}

// =============================================================================
// STORE DOUBLES
// =============================================================================

type brokenStore struct{}

func (b *brokenStore) Get(context.Context, ledger.Collection) ([]byte, bool, error) {
	return nil, false, errors.New("disk on fire")
}
func (b *brokenStore) Put(context.Context, ledger.Collection, []byte) error {
	return errors.New("disk on fire")
}
func (b *brokenStore) PutAll(context.Context, map[ledger.Collection][]byte) error {
	return errors.New("disk on fire")
}
func (b *brokenStore) Close() error { return nil }

// failingPutAll behaves like the memory store except multi-key writes fail
// without writing anything, mimicking a rolled-back transaction.
type failingPutAll struct {
	*store.Memory
}

func (f *failingPutAll) PutAll(context.Context, map[ledger.Collection][]byte) error {
	return errors.New("transaction aborted")
}
