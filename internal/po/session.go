package po

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/abhyudyayatech/procure-backend/internal/catalog"
	"github.com/abhyudyayatech/procure-backend/pkg/config"
)

// OrderFields are the order-level editable fields of a session.
type OrderFields struct {
	PONumber        string
	PODate          string
	Vendor          Vendor
	ShippingAddress string
	TaxRatePercent  decimal.Decimal
}

// SessionConfig carries the defaults a new session starts from.
type SessionConfig struct {
	// TaxDivisor derives the default unit price from tax-inclusive price
	// text. Distinct from the order's own configurable tax rate.
	TaxDivisor decimal.Decimal
	// DefaultTaxRatePercent seeds the order tax rate.
	DefaultTaxRatePercent decimal.Decimal
	// DefaultShippingAddress is used when a draft omits one.
	DefaultShippingAddress string
	// Now supplies the current date; defaults to time.Now.
	Now func() time.Time
}

// Session is one active composition: the item list under edit, the per-item
// store, and the order-level fields. All mutation is synchronous; a session
// belongs to exactly one editor.
type Session struct {
	cfg   SessionConfig
	items []catalog.Item
	store *LineItemStore

	fields  OrderFields
	draftID *int64

	rehydratedFrom *int64
}

// SessionConfigFromOrder builds session defaults from the order-level
// configuration.
func SessionConfigFromOrder(cfg config.OrderConfig) SessionConfig {
	return SessionConfig{
		TaxDivisor:             decimal.NewFromFloat(cfg.PriceInclusiveTaxDivide),
		DefaultTaxRatePercent:  decimal.NewFromFloat(cfg.DefaultTaxRatePercent),
		DefaultShippingAddress: cfg.DefaultShippingAddress,
	}
}

// NewSession starts a composition session with the supplied defaults.
func NewSession(cfg SessionConfig) *Session {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.DefaultTaxRatePercent.IsZero() {
		cfg.DefaultTaxRatePercent = decimal.NewFromInt(18)
	}
	s := &Session{
		cfg:   cfg,
		store: NewLineItemStore(cfg.TaxDivisor),
	}
	s.fields.TaxRatePercent = cfg.DefaultTaxRatePercent
	s.fields.PODate = cfg.Now().Format("2006-01-02")
	s.fields.ShippingAddress = cfg.DefaultShippingAddress
	return s
}

// SetItems replaces the active item list and seeds defaults for identities
// not seen before. Existing per-item edits are preserved.
func (s *Session) SetItems(items []catalog.Item) {
	s.items = append(s.items[:0:0], items...)
	s.store.Seed(s.items)
}

// Items returns the active item list.
func (s *Session) Items() []catalog.Item {
	return s.items
}

// Store exposes the per-item state for edits.
func (s *Session) Store() *LineItemStore {
	return s.store
}

// Fields returns the current order-level fields.
func (s *Session) Fields() OrderFields {
	return s.fields
}

// SetFields replaces the order-level fields. A non-positive tax rate is
// clamped to zero.
func (s *Session) SetFields(fields OrderFields) {
	if fields.TaxRatePercent.IsNegative() {
		fields.TaxRatePercent = decimal.Zero
	}
	s.fields = fields
}

// SetTaxRate updates only the order tax rate, clamped to at least zero.
func (s *Session) SetTaxRate(rate decimal.Decimal) {
	if rate.IsNegative() {
		rate = decimal.Zero
	}
	s.fields.TaxRatePercent = rate
}

// DraftID reports the persisted id this session tracks, if any.
func (s *Session) DraftID() *int64 {
	return s.draftID
}

// Rehydrate loads a persisted draft into the session. Saved lines pair to
// current items by identity when the record carries one, falling back to
// position for legacy records. Loaded values overwrite any existing per-item
// state: an explicit load always wins. Repeat calls for the same draft id
// are ignored so later edits are not clobbered.
func (s *Session) Rehydrate(draft *Record) {
	if draft == nil {
		return
	}
	if draft.ID != nil && s.rehydratedFrom != nil && *s.rehydratedFrom == *draft.ID {
		return
	}

	s.fields.PONumber = draft.PONumber
	s.fields.Vendor = draft.Vendor
	s.fields.PODate = draft.PODate
	if s.fields.PODate == "" {
		s.fields.PODate = s.cfg.Now().Format("2006-01-02")
	}
	s.fields.ShippingAddress = draft.ShippingAddress
	if s.fields.ShippingAddress == "" {
		s.fields.ShippingAddress = s.cfg.DefaultShippingAddress
	}
	if draft.TaxRatePercent.IsPositive() {
		s.fields.TaxRatePercent = draft.TaxRatePercent
	} else {
		s.fields.TaxRatePercent = s.cfg.DefaultTaxRatePercent
	}

	byIdentity := make(map[string]RecordItem, len(draft.Items))
	for _, line := range draft.Items {
		if line.Identity != "" {
			byIdentity[line.Identity] = line
		}
	}

	for i, item := range s.items {
		line, ok := byIdentity[item.Identity]
		if !ok {
			// Legacy records carry no identity; pair by position.
			if i >= len(draft.Items) || draft.Items[i].Identity != "" {
				continue
			}
			line = draft.Items[i]
		}
		s.store.overwrite(item.Identity, line.Quantity, line.Description, line.SKU, line.UnitPrice)
	}

	s.draftID = draft.ID
	if draft.ID != nil {
		id := *draft.ID
		s.rehydratedFrom = &id
	}
}

// Derive recomputes every line and the order summary from current state.
func (s *Session) Derive() ([]LineComputation, Summary) {
	return Derive(s.items, s.store, s.fields.TaxRatePercent)
}

// Validate reports whether the session is complete enough for a binding
// action (final PDF, completed save).
func (s *Session) Validate() ValidationResult {
	lines, _ := s.Derive()
	return Validate(s.fields, lines)
}

// Snapshot builds the canonical record from current state. The persisted id,
// when present, rides along so saves update rather than duplicate.
func (s *Session) Snapshot() *Record {
	lines, _ := s.Derive()
	record := &Record{
		ID:              s.draftID,
		PONumber:        s.fields.PONumber,
		PODate:          s.fields.PODate,
		Vendor:          s.fields.Vendor,
		ShippingAddress: s.fields.ShippingAddress,
		TaxRatePercent:  s.fields.TaxRatePercent,
		Items:           make([]RecordItem, 0, len(lines)),
	}
	for i, line := range lines {
		record.Items = append(record.Items, RecordItem{
			SlNo:        i + 1,
			Identity:    line.Identity,
			Description: line.Description,
			SKU:         line.SKU,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			TotalPrice:  line.TotalPrice,
		})
	}
	return record
}
