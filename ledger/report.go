/*
report.go - Monthly reports, account statements, receipts

PURPOSE:
  Groups entries into the structured summaries the presentation layer
  renders and prints. Everything here is a pure transform; the core never
  formats currency strings or markup.

VOLUME POLICY:
  Monthly buckets carry the same volume semantics as AggregateTotals:
  payments are excluded from both SalesVolume and PurchaseVolume. Cash
  settlements clear dues, they do not shrink the month's trade.
*/
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// MONTHLY REPORT
// =============================================================================

// MonthBucket summarizes one calendar month across both collections.
type MonthBucket struct {
	Key            string // "2006-01", sorts chronologically
	Label          string // "December 2025"
	SalesVolume    decimal.Decimal
	PurchaseVolume decimal.Decimal
	Entries        []Entry
}

// MonthlyReport groups all entries by (year, month) of their date and
// returns buckets sorted most recent month first. Payments appear in a
// bucket's entry list but never in its volumes.
func MonthlyReport(sales, expenses []Entry) []MonthBucket {
	buckets := make(map[string]*MonthBucket)

	add := func(e Entry) *MonthBucket {
		k := e.Date.MonthKey()
		b, ok := buckets[k]
		if !ok {
			b = &MonthBucket{
				Key:            k,
				Label:          e.Date.MonthLabel(),
				SalesVolume:    decimal.Zero,
				PurchaseVolume: decimal.Zero,
			}
			buckets[k] = b
		}
		b.Entries = append(b.Entries, e)
		return b
	}

	for _, e := range sales {
		b := add(e)
		if e.Kind == KindSale {
			b.SalesVolume = b.SalesVolume.Add(e.Amount)
		}
	}
	for _, e := range expenses {
		b := add(e)
		if e.Kind == KindPurchase {
			b.PurchaseVolume = b.PurchaseVolume.Add(e.Amount)
		}
	}

	out := make([]MonthBucket, 0, len(buckets))
	for _, b := range buckets {
		SortNewestFirst(b.Entries)
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key > out[j].Key })
	return out
}

// =============================================================================
// ACCOUNT STATEMENT
// =============================================================================

// Statement is one party's full account history with running totals.
type Statement struct {
	Party   string
	Side    Side
	Entries []Entry // chronological, oldest first
	Totals  AccountTotals
}

// AccountStatement builds the printable statement for one party from its
// side's collection. Entries are ordered chronologically, in contrast to
// list views which show newest first.
func AccountStatement(entries []Entry, party string, side Side) Statement {
	own := FilterParty(entries, party)
	SortChronological(own)
	return Statement{
		Party:   party,
		Side:    side,
		Entries: own,
		Totals:  PartyTotals(entries, party, side),
	}
}

// =============================================================================
// RECEIPT
// =============================================================================

// Receipt is the structured voucher data for one entry. The presentation
// layer decides fonts, currency formatting and print markup.
type Receipt struct {
	Title      string // "Sales Receipt" | "Purchase Voucher" | "Payment Voucher"
	Business   string
	Phone      string
	Reference  string // short voucher number from the entry ID
	Date       Date
	PartyLabel string // "Customer" | "Supplier"
	Party      string
	IsPayment  bool
	Product    string
	Quantity   decimal.Decimal
	Unit       string
	UnitPrice  decimal.Decimal
	Amount     decimal.Decimal
}

// BuildReceipt assembles the receipt/voucher for an entry under the
// current business settings.
func BuildReceipt(e Entry, s Settings) Receipt {
	title := "Payment Voucher"
	if !e.Kind.IsPayment() {
		if e.Kind == KindSale {
			title = "Sales Receipt"
		} else {
			title = "Purchase Voucher"
		}
	}
	return Receipt{
		Title:      title,
		Business:   s.AppName,
		Phone:      s.Phone,
		Reference:  e.Reference(),
		Date:       e.Date,
		PartyLabel: e.Side().Label(),
		Party:      e.Party,
		IsPayment:  e.Kind.IsPayment(),
		Product:    e.Product,
		Quantity:   e.Quantity,
		Unit:       e.Unit,
		UnitPrice:  e.UnitPrice,
		Amount:     e.Amount,
	}
}
