package purchaseorders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/abhyudyayatech/procure-backend/internal/po"
)

// Actor identifies the caller. Identity is established by the outer edge;
// the service only cares about scope.
type Actor struct {
	ID   string
	Role string
}

// RoleAdmin unlocks the all-owners projections.
const RoleAdmin = "admin"

// Elevated reports whether the actor may read beyond their own records.
func (a Actor) Elevated() bool {
	return a.Role == RoleAdmin
}

// SaveInput carries a canonical record plus the requested status tag.
type SaveInput struct {
	Record *po.Record
	Status po.Status
	Actor  Actor
}

// SaveResult returns the stored record with its assigned id and the
// server-derived summary.
type SaveResult struct {
	Record  *po.Record `json:"record"`
	Status  po.Status  `json:"status"`
	Summary po.Summary `json:"summary"`
}

// ListEntry is the summary projection used by the history views.
type ListEntry struct {
	ID         int64           `json:"id"`
	PONumber   string          `json:"po_number"`
	PODate     string          `json:"po_date"`
	VendorName string          `json:"vendor_name"`
	GrandTotal decimal.Decimal `json:"grand_total"`
	Status     po.Status       `json:"status"`
	OwnerID    string          `json:"owner_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Detail is the full stored record plus its persisted financials.
type Detail struct {
	Record    *po.Record `json:"record"`
	Status    po.Status  `json:"status"`
	Summary   po.Summary `json:"summary"`
	OwnerID   string     `json:"owner_id"`
	CreatedAt time.Time  `json:"created_at"`
}
