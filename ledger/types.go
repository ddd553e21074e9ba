/*
Package ledger provides the bookkeeping core for a single-user retail khata.

PURPOSE:
  This package contains the entry schema, validation rules, balance
  derivation and reporting for a credit-sales ledger. It records three
  things against named parties: credit sales to clients, purchases from
  suppliers, and the cash settlements that clear them. Balances are never
  stored; they are always derived from the entry collections.

KEY CONCEPTS IN THIS FILE (types.go):
  - Kind: The closed four-way classification of an entry
           (Sale | Purchase | PaymentIn | PaymentOut)
  - Side: Which party book an entry belongs to (client or supplier)
  - Date: A calendar date with no time-of-day semantics
  - Entry: One recorded transaction
  - Settings: The singleton business profile and product catalog

DESIGN PRINCIPLES:
  1. Explicit classification: Kind is stored on the entry. Aggregates filter
     by Kind exhaustively, never by inspecting which fields happen to be set.
  2. Precision: Uses decimal.Decimal for amounts, quantities and rates.
  3. Derivation: Balance and volume figures are pure functions of the
     collections (balance.go, report.go). Nothing here mutates state.
  4. Historical accuracy: Entries copy product name/rate at transaction
     time. Later catalog price changes never alter history.

SEE ALSO:
  - entry.go: Entry construction and validation
  - balance.go: Balance derivation
  - report.go: Monthly reports, statements, receipts
  - repository.go: Persistence over a DocumentStore
*/
package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// KIND - Closed classification of an entry
// =============================================================================

// Kind classifies an entry. Exactly four values exist; every aggregate in
// this package switches on Kind and nothing else.
type Kind string

const (
	KindSale       Kind = "Sale"       // Credit sale to a client
	KindPurchase   Kind = "Purchase"   // Purchase from a supplier
	KindPaymentIn  Kind = "PaymentIn"  // Cash received from a client
	KindPaymentOut Kind = "PaymentOut" // Cash paid to a supplier
)

// Valid reports whether k is one of the four known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindSale, KindPurchase, KindPaymentIn, KindPaymentOut:
		return true
	}
	return false
}

// IsPayment reports whether k is a cash settlement rather than a
// recognized sale or purchase.
func (k Kind) IsPayment() bool {
	return k == KindPaymentIn || k == KindPaymentOut
}

// Side returns which party book the kind belongs to. Sale and PaymentIn
// are client-side; Purchase and PaymentOut are supplier-side.
func (k Kind) Side() Side {
	if k == KindSale || k == KindPaymentIn {
		return SideClient
	}
	return SideSupplier
}

// Side identifies whether a party is a client or a supplier.
type Side string

const (
	SideClient   Side = "client"
	SideSupplier Side = "supplier"
)

// Label returns the display label used on receipts and statements.
func (s Side) Label() string {
	if s == SideClient {
		return "Customer"
	}
	return "Supplier"
}

// =============================================================================
// DATE - Calendar date (no time-of-day semantics)
// =============================================================================

// Date is a calendar date stored at day granularity. It marshals as
// "2006-01-02" and compares at midnight UTC.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "2006-01-02" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, &ValidationError{Field: "date", Reason: fmt.Sprintf("not a valid calendar date: %q", s)}
	}
	return Date{Time: t}, nil
}

// Today returns the current calendar date.
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), now.Month(), now.Day())
}

func (d Date) normalize() time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func (d Date) Before(other Date) bool { return d.normalize().Before(other.normalize()) }
func (d Date) After(other Date) bool  { return d.normalize().After(other.normalize()) }
func (d Date) Equal(other Date) bool  { return d.normalize().Equal(other.normalize()) }

func (d Date) String() string { return d.Time.Format(dateLayout) }

// MonthKey returns the "2006-01" grouping key used by monthly reports.
// Keys sort lexicographically in chronological order.
func (d Date) MonthKey() string { return d.Time.Format("2006-01") }

// MonthLabel returns the human label for the date's month, e.g. "December 2025".
func (d Date) MonthLabel() string { return d.Time.Format("January 2006") }

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("date must be a %q string", dateLayout)
	}
	t, err := time.Parse(dateLayout, s[1:len(s)-1])
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// =============================================================================
// ENTRY - One recorded transaction
// =============================================================================

// Entry is a single financial transaction. ID and Kind are immutable after
// creation; edits replace the remaining fields (see UpdateEntry).
//
// Amount is always stored positive; its direction is implied by Kind.
// Quantity, Unit and UnitPrice describe the traded goods for Sale/Purchase
// entries and are absent for payments. Amount is caller-supplied and is NOT
// required to equal Quantity × UnitPrice: manual overrides are accepted.
type Entry struct {
	ID        string          `json:"id"`
	Date      Date            `json:"date"`
	Party     string          `json:"party"`
	Kind      Kind            `json:"kind"`
	Product   string          `json:"product,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit,omitempty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Side returns the party book this entry belongs to.
func (e Entry) Side() Side { return e.Kind.Side() }

// Reference returns the short receipt/voucher number derived from the
// entry ID (its last five characters).
func (e Entry) Reference() string {
	if len(e.ID) <= 5 {
		return e.ID
	}
	return e.ID[len(e.ID)-5:]
}

// =============================================================================
// SETTINGS - Business profile, product catalog, supplier list
// =============================================================================

// Product is a catalog item embedded in Settings. Entries copy its name,
// price and unit at transaction time rather than referencing it.
type Product struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Unit  string          `json:"unit"`
}

// Settings is the singleton business document. Saved wholesale; partial
// updates are not supported.
type Settings struct {
	AppName   string    `json:"appName"`
	Phone     string    `json:"phone"`
	Products  []Product `json:"products"`
	Suppliers []string  `json:"suppliers"`
}

// FindProduct looks up a catalog product by exact name.
func (s Settings) FindProduct(name string) (Product, bool) {
	for _, p := range s.Products {
		if p.Name == name {
			return p, true
		}
	}
	return Product{}, false
}

// DefaultSettings returns the hard-coded starter document used when no
// settings have been persisted or the persisted document fails to parse.
func DefaultSettings() Settings {
	return Settings{
		AppName: "Daud Dairy Products",
		Phone:   "0300-1234567",
		Products: []Product{
			{Name: "Milk", Price: decimal.NewFromInt(180), Unit: "Liters"},
			{Name: "Butter", Price: decimal.NewFromInt(1200), Unit: "kg"},
			{Name: "Cream", Price: decimal.NewFromInt(800), Unit: "kg"},
			{Name: "Yogurt", Price: decimal.NewFromInt(250), Unit: "kg"},
		},
		Suppliers: []string{"Local Farm A", "Milk Center B"},
	}
}
