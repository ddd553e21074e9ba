/*
entry.go - Entry construction, validation and editing

PURPOSE:
  The only two ways an Entry comes into existence or changes:
    NewEntry    - validate caller input, assign an ID, stamp creation time
    UpdateEntry - replace the mutable fields of an existing entry

IMMUTABILITY:
  ID and Kind never change after creation. An edit replaces date, party,
  product, quantity, unit, rate and amount, but an entry is never re-typed
  and never moves between the client and supplier books.

AMOUNT POLICY:
  Amount is caller-supplied and trusted. It is NOT recomputed from
  quantity × unit price, and a mismatch between the two is accepted
  silently. Presentation layers may offer an auto-fill convenience, but
  the model honors whatever amount the caller settled on.
*/
package ledger

import (
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// EntryInput carries the caller-supplied fields for a new entry.
// Quantity and UnitPrice are optional for Sale/Purchase; a zero value
// means "not supplied".
type EntryInput struct {
	Date      Date
	Party     string
	Product   string
	Quantity  decimal.Decimal
	Unit      string
	UnitPrice decimal.Decimal
	Amount    decimal.Decimal
}

// EntryPatch carries the replacement values for an edit. All fields are
// applied; callers start from the existing entry's values for fields they
// do not intend to change.
type EntryPatch struct {
	Date      Date
	Party     string
	Product   string
	Quantity  decimal.Decimal
	Unit      string
	UnitPrice decimal.Decimal
	Amount    decimal.Decimal
}

// NewEntryID returns a fresh opaque entry identifier.
func NewEntryID() string {
	return ulid.Make().String()
}

// NewEntry validates the input for the given kind and returns a fully
// formed entry, or a *ValidationError wrapping ErrValidation.
//
// For payment kinds the product/quantity/unit/rate fields are cleared:
// the explicit Kind tag already says everything a payment needs to say.
func NewEntry(kind Kind, in EntryInput) (Entry, error) {
	if !kind.Valid() {
		return Entry{}, &ValidationError{Field: "kind", Reason: "unknown entry kind"}
	}
	if err := validate(kind, in); err != nil {
		return Entry{}, err
	}

	e := Entry{
		ID:        NewEntryID(),
		Date:      in.Date,
		Party:     strings.TrimSpace(in.Party),
		Kind:      kind,
		Amount:    in.Amount,
		CreatedAt: time.Now().UTC(),
	}
	if !kind.IsPayment() {
		e.Product = strings.TrimSpace(in.Product)
		e.Quantity = in.Quantity
		e.Unit = strings.TrimSpace(in.Unit)
		e.UnitPrice = in.UnitPrice
	}
	return e, nil
}

// UpdateEntry applies a patch to an existing entry. The result keeps the
// original ID, Kind and CreatedAt; everything else comes from the patch,
// validated under the entry's kind.
func UpdateEntry(existing Entry, patch EntryPatch) (Entry, error) {
	in := EntryInput(patch)
	if err := validate(existing.Kind, in); err != nil {
		return Entry{}, err
	}

	updated := existing
	updated.Date = patch.Date
	updated.Party = strings.TrimSpace(patch.Party)
	updated.Amount = patch.Amount
	if existing.Kind.IsPayment() {
		updated.Product = ""
		updated.Quantity = decimal.Zero
		updated.Unit = ""
		updated.UnitPrice = decimal.Zero
	} else {
		updated.Product = strings.TrimSpace(patch.Product)
		updated.Quantity = patch.Quantity
		updated.Unit = strings.TrimSpace(patch.Unit)
		updated.UnitPrice = patch.UnitPrice
	}
	return updated, nil
}

func validate(kind Kind, in EntryInput) error {
	if in.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "required"}
	}
	if strings.TrimSpace(in.Party) == "" {
		return &ValidationError{Field: "party", Reason: "required"}
	}
	if !in.Amount.IsPositive() {
		return &ValidationError{Field: "amount", Reason: "must be a positive number"}
	}
	if kind.IsPayment() {
		return nil
	}

	if strings.TrimSpace(in.Product) == "" {
		return &ValidationError{Field: "product", Reason: "required for sales and purchases"}
	}
	// Zero means "not supplied" for the quantity/rate pair.
	if in.Quantity.IsNegative() {
		return &ValidationError{Field: "quantity", Reason: "must be positive when supplied"}
	}
	if in.UnitPrice.IsNegative() {
		return &ValidationError{Field: "unitPrice", Reason: "must be positive when supplied"}
	}
	return nil
}
