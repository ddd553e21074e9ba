package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daudsoft/khata/ledger"
)

// =============================================================================
// MONTHLY REPORT
// =============================================================================

func TestMonthlyReport_SingleBucket(t *testing.T) {
	// GIVEN: One sale and one purchase in December 2025
	sales := []ledger.Entry{entry(ledger.KindSale, "Alice", 1800, 1)}
	expenses := []ledger.Entry{entry(ledger.KindPurchase, "Farm A", 8000, 2)}

	report := ledger.MonthlyReport(sales, expenses)

	// THEN: Exactly one bucket with both volumes
	require.Len(t, report, 1)
	b := report[0]
	assert.Equal(t, "2025-12", b.Key)
	assert.Equal(t, "December 2025", b.Label)
	assert.True(t, b.SalesVolume.Equal(dec(1800)))
	assert.True(t, b.PurchaseVolume.Equal(dec(8000)))
	assert.Len(t, b.Entries, 2)
}

func TestMonthlyReport_PaymentsListedButNotCounted(t *testing.T) {
	// GIVEN: A sale and a payment in the same month
	sales := []ledger.Entry{
		entry(ledger.KindSale, "Alice", 1800, 1),
		entry(ledger.KindPaymentIn, "Alice", 800, 5),
	}

	report := ledger.MonthlyReport(sales, nil)

	// THEN: The payment shows in the bucket's entries but never in volume
	require.Len(t, report, 1)
	assert.True(t, report[0].SalesVolume.Equal(dec(1800)))
	assert.Len(t, report[0].Entries, 2)
}

func TestMonthlyReport_MostRecentMonthFirst(t *testing.T) {
	sales := []ledger.Entry{
		{ID: "a", Date: ledger.NewDate(2025, time.October, 3), Party: "A", Kind: ledger.KindSale, Amount: dec(100)},
		{ID: "b", Date: ledger.NewDate(2026, time.January, 1), Party: "B", Kind: ledger.KindSale, Amount: dec(200)},
		{ID: "c", Date: ledger.NewDate(2025, time.December, 9), Party: "C", Kind: ledger.KindSale, Amount: dec(300)},
	}

	report := ledger.MonthlyReport(sales, nil)

	require.Len(t, report, 3)
	assert.Equal(t, []string{"2026-01", "2025-12", "2025-10"},
		[]string{report[0].Key, report[1].Key, report[2].Key})
}

func TestMonthlyReport_Empty(t *testing.T) {
	assert.Empty(t, ledger.MonthlyReport(nil, nil))
}

// =============================================================================
// ACCOUNT STATEMENT
// =============================================================================

func TestAccountStatement_ChronologicalWithTotals(t *testing.T) {
	// GIVEN: Alice's history entered out of order, plus another client's noise
	sales := []ledger.Entry{
		entry(ledger.KindPaymentIn, "Alice", 800, 20),
		entry(ledger.KindSale, "Alice", 1800, 1),
		entry(ledger.KindSale, "Bob", 555, 2),
		entry(ledger.KindSale, "Alice", 700, 10),
	}

	st := ledger.AccountStatement(sales, "Alice", ledger.SideClient)

	// THEN: Statement reads oldest first, only Alice, with derived totals
	require.Len(t, st.Entries, 3)
	assert.Equal(t, []string{"Alice", "Alice", "Alice"}, partyNames(st.Entries))
	assert.True(t, st.Entries[0].Date.Before(st.Entries[1].Date))
	assert.True(t, st.Entries[1].Date.Before(st.Entries[2].Date))
	assert.True(t, st.Totals.Transacted.Equal(dec(2500)))
	assert.True(t, st.Totals.Settled.Equal(dec(800)))
	assert.True(t, st.Totals.Due.Equal(dec(1700)))
}

func TestAccountStatement_EmptyParty(t *testing.T) {
	st := ledger.AccountStatement(nil, "Ghost", ledger.SideSupplier)
	assert.Empty(t, st.Entries)
	assert.True(t, st.Totals.Due.IsZero())
}

// =============================================================================
// RECEIPT
// =============================================================================

func TestBuildReceipt_Titles(t *testing.T) {
	s := ledger.DefaultSettings()

	sale := entry(ledger.KindSale, "Alice", 1800, 1)
	r := ledger.BuildReceipt(sale, s)
	assert.Equal(t, "Sales Receipt", r.Title)
	assert.Equal(t, "Customer", r.PartyLabel)
	assert.Equal(t, s.AppName, r.Business)
	assert.False(t, r.IsPayment)

	purchase := entry(ledger.KindPurchase, "Farm A", 8000, 2)
	assert.Equal(t, "Purchase Voucher", ledger.BuildReceipt(purchase, s).Title)

	payment := entry(ledger.KindPaymentOut, "Farm A", 500, 3)
	r = ledger.BuildReceipt(payment, s)
	assert.Equal(t, "Payment Voucher", r.Title)
	assert.Equal(t, "Supplier", r.PartyLabel)
	assert.True(t, r.IsPayment)
}

func TestBuildReceipt_ReferenceFromID(t *testing.T) {
	e := entry(ledger.KindSale, "Alice", 100, 1)
	e.ID = "0123456789"

	r := ledger.BuildReceipt(e, ledger.DefaultSettings())
	assert.Equal(t, "56789", r.Reference)
}
