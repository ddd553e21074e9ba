/*
balance.go - Balance derivation

PURPOSE:
  Pure functions deriving party balances and aggregate totals from the
  entry collections. Nothing here reads storage or mutates anything; the
  repository hands these functions an in-memory snapshot of the sales and
  expenses collections.

THE ONE RULE:
  The sales collection holds Sale AND PaymentIn entries; the expenses
  collection holds Purchase AND PaymentOut entries. Every aggregate must
  therefore filter by Kind before summing. The filters here are exhaustive
  over the four kinds; no caller should ever re-derive them.

ACCOUNTING POLICY:
  Aggregate totals are VOLUME figures: payments move cash but never change
  recognized sales/purchase volume. A client paying off dues reduces their
  balance without reducing total sales. This is deliberate and mirrors the
  "Stock Balance" figure of the original books: a volume P&L, not a
  cash-flow statement.
*/
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// PARTY BALANCE
// =============================================================================

// AccountTotals is the derived position of one party.
// Transacted is recognized volume (sales or purchases), Settled is cash
// moved, Due is the outstanding difference.
type AccountTotals struct {
	Transacted decimal.Decimal
	Settled    decimal.Decimal
	Due        decimal.Decimal
}

// PartyTotals derives a party's account position from its side's
// collection. For a client: Transacted = Σ Sale, Settled = Σ PaymentIn.
// For a supplier: Transacted = Σ Purchase, Settled = Σ PaymentOut.
// A party with no entries gets all-zero totals, not an error.
func PartyTotals(entries []Entry, party string, side Side) AccountTotals {
	transactedKind, settledKind := KindSale, KindPaymentIn
	if side == SideSupplier {
		transactedKind, settledKind = KindPurchase, KindPaymentOut
	}

	t := AccountTotals{
		Transacted: decimal.Zero,
		Settled:    decimal.Zero,
	}
	for _, e := range entries {
		if e.Party != party {
			continue
		}
		switch e.Kind {
		case transactedKind:
			t.Transacted = t.Transacted.Add(e.Amount)
		case settledKind:
			t.Settled = t.Settled.Add(e.Amount)
		}
	}
	t.Due = t.Transacted.Sub(t.Settled)
	return t
}

// PartyBalance derives the outstanding balance of one party.
// Positive means the client owes the business (client side) or the
// business owes the supplier (supplier side).
func PartyBalance(entries []Entry, party string, side Side) decimal.Decimal {
	return PartyTotals(entries, party, side).Due
}

// =============================================================================
// AGGREGATE TOTALS
// =============================================================================

// Totals is the business-wide volume position shown on the dashboard.
type Totals struct {
	TotalSales     decimal.Decimal
	TotalPurchases decimal.Decimal
	NetPosition    decimal.Decimal
}

// AggregateTotals sums recognized volume across both collections.
// Payments are excluded from both totals: NetPosition is always
// TotalSales - TotalPurchases regardless of how much cash has moved.
func AggregateTotals(sales, expenses []Entry) Totals {
	totalSales := decimal.Zero
	for _, e := range sales {
		if e.Kind == KindSale {
			totalSales = totalSales.Add(e.Amount)
		}
	}
	totalPurchases := decimal.Zero
	for _, e := range expenses {
		if e.Kind == KindPurchase {
			totalPurchases = totalPurchases.Add(e.Amount)
		}
	}
	return Totals{
		TotalSales:     totalSales,
		TotalPurchases: totalPurchases,
		NetPosition:    totalSales.Sub(totalPurchases),
	}
}

// =============================================================================
// ORDERING
// =============================================================================

// SortNewestFirst orders entries for list views: date descending, ties
// broken by creation time descending (most recently entered wins for
// same-day entries).
func SortNewestFirst(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.After(entries[j].Date)
		}
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
}

// SortChronological orders entries for statements: date ascending, ties
// broken by creation time ascending. A statement reads like a running
// account history, oldest first.
func SortChronological(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
}

// Recent merges both collections and returns the n newest entries,
// list-view ordered. Backs the dashboard's recent-transactions feed.
func Recent(sales, expenses []Entry, n int) []Entry {
	merged := make([]Entry, 0, len(sales)+len(expenses))
	merged = append(merged, sales...)
	merged = append(merged, expenses...)
	SortNewestFirst(merged)
	if n >= 0 && len(merged) > n {
		merged = merged[:n]
	}
	return merged
}

// FilterParty returns the entries belonging to one party, preserving order.
func FilterParty(entries []Entry, party string) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Party == party {
			out = append(out, e)
		}
	}
	return out
}
