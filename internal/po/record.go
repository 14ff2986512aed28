package po

import (
	"github.com/shopspring/decimal"

	// Registers the plain-number JSON encoding for decimals.
	_ "github.com/abhyudyayatech/procure-backend/pkg/money"
)

// Vendor is the supplier block printed on the order.
type Vendor struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	GSTIN   string `json:"gstin"`
	PAN     string `json:"pan"`
}

// RecordItem is one saved line of the canonical record. SlNo is a dense
// 1-based sequence matching item order at save time. Identity carries the
// catalog key alongside the line so reloads can pair by identity; legacy
// records without it fall back to positional pairing.
type RecordItem struct {
	SlNo        int             `json:"sl_no"`
	Identity    string          `json:"identity,omitempty"`
	Description string          `json:"description"`
	SKU         string          `json:"sku"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// Record is the canonical order representation. Every export format and both
// network collaborators consume this one shape; none re-derives totals from
// anything else.
type Record struct {
	ID              *int64          `json:"id,omitempty"`
	PONumber        string          `json:"po_number"`
	PODate          string          `json:"po_date"`
	Vendor          Vendor          `json:"vendor"`
	ShippingAddress string          `json:"shipping_address"`
	Items           []RecordItem    `json:"items"`
	TaxRatePercent  decimal.Decimal `json:"gst_rate"`
}

// Summary holds the three order-level figures. It is always derived, never
// stored between edits.
type Summary struct {
	SubTotal   decimal.Decimal `json:"sub_total"`
	TaxAmount  decimal.Decimal `json:"gst_amount"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// LineComputation is one derived line: the current editable state of an item
// plus its extended price.
type LineComputation struct {
	Identity    string
	Description string
	SKU         string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
}

// Status tags a persisted record.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusCompleted Status = "completed"
)

// ParseStatus validates a status tag from the wire.
func ParseStatus(raw string) (Status, bool) {
	switch Status(raw) {
	case StatusDraft, StatusCompleted:
		return Status(raw), true
	default:
		return "", false
	}
}
