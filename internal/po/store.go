package po

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/abhyudyayatech/procure-backend/internal/catalog"
	"github.com/abhyudyayatech/procure-backend/pkg/money"
)

// lineState is the editable per-item record. One entry exists per catalog
// identity; position in the item list is never used as a key.
type lineState struct {
	Quantity    int
	Description string
	SKU         string
	UnitPrice   decimal.Decimal
}

// LineItemStore owns the per-item editable fields of a composition session.
// Entries are created lazily the first time an identity is seen and survive
// reordering or refreshing of the item list.
type LineItemStore struct {
	entries    map[string]*lineState
	taxDivisor decimal.Decimal
}

// NewLineItemStore builds an empty store. taxDivisor is the fixed reference
// divisor applied once when deriving the default unit price from
// tax-inclusive price text (1.18 for the standard 18% reference rate).
func NewLineItemStore(taxDivisor decimal.Decimal) *LineItemStore {
	if taxDivisor.LessThanOrEqual(decimal.Zero) {
		taxDivisor = decimal.NewFromFloat(1.18)
	}
	return &LineItemStore{
		entries:    make(map[string]*lineState),
		taxDivisor: taxDivisor,
	}
}

// Seed creates default entries for identities not yet present. Existing
// entries are left untouched, so user edits survive any number of list
// refreshes. Entries whose identity is absent from items are pruned.
func (s *LineItemStore) Seed(items []catalog.Item) {
	live := make(map[string]struct{}, len(items))
	for _, item := range items {
		live[item.Identity] = struct{}{}
		if _, ok := s.entries[item.Identity]; ok {
			continue
		}
		base := money.Round2(money.ParsePrice(item.PriceText).Div(s.taxDivisor))
		s.entries[item.Identity] = &lineState{
			Quantity:    1,
			Description: item.Title,
			SKU:         strings.ToUpper(item.SKU),
			UnitPrice:   base,
		}
	}
	for identity := range s.entries {
		if _, ok := live[identity]; !ok {
			delete(s.entries, identity)
		}
	}
}

func (s *LineItemStore) get(identity string) *lineState {
	if entry, ok := s.entries[identity]; ok {
		return entry
	}
	entry := &lineState{Quantity: 1, UnitPrice: decimal.Zero}
	s.entries[identity] = entry
	return entry
}

// Quantity returns the stored quantity, defaulting to 1.
func (s *LineItemStore) Quantity(identity string) int {
	return s.get(identity).Quantity
}

// Description returns the stored description.
func (s *LineItemStore) Description(identity string) string {
	return s.get(identity).Description
}

// SKU returns the stored SKU.
func (s *LineItemStore) SKU(identity string) string {
	return s.get(identity).SKU
}

// UnitPrice returns the stored unit price.
func (s *LineItemStore) UnitPrice(identity string) decimal.Decimal {
	return s.get(identity).UnitPrice
}

// SetQuantity stores a quantity, clamped to at least 1.
func (s *LineItemStore) SetQuantity(identity string, qty int) {
	if qty < 1 {
		qty = 1
	}
	s.get(identity).Quantity = qty
}

// SetDescription stores the description verbatim. A blank description is
// legal here; the validation gate rejects it before binding actions.
func (s *LineItemStore) SetDescription(identity, description string) {
	s.get(identity).Description = description
}

// SetSKU upper-cases and stores the SKU.
func (s *LineItemStore) SetSKU(identity, sku string) {
	s.get(identity).SKU = strings.ToUpper(sku)
}

// SetUnitPrice stores a unit price, clamped to at least zero.
func (s *LineItemStore) SetUnitPrice(identity string, price decimal.Decimal) {
	if price.IsNegative() {
		price = decimal.Zero
	}
	s.get(identity).UnitPrice = price
}

// overwrite replaces an entry wholesale. Used by draft rehydration, which
// always wins over both defaults and prior edits.
func (s *LineItemStore) overwrite(identity string, quantity int, description, sku string, unitPrice decimal.Decimal) {
	if quantity < 1 {
		quantity = 1
	}
	if unitPrice.IsNegative() {
		unitPrice = decimal.Zero
	}
	s.entries[identity] = &lineState{
		Quantity:    quantity,
		Description: description,
		SKU:         sku,
		UnitPrice:   unitPrice,
	}
}
