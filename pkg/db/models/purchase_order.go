package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrder stores one composed order, draft or completed. Vendor fields
// are flattened and line items ride along as a JSON document, which keeps the
// record atomic: a PO is always saved and loaded as one row.
type PurchaseOrder struct {
	ID      int64  `gorm:"column:id;primaryKey;autoIncrement"`
	OwnerID string `gorm:"column:owner_id;index;not null"`

	PONumber string `gorm:"column:po_number;uniqueIndex;not null"`
	PODate   string `gorm:"column:po_date;not null"`
	Status   string `gorm:"column:status;not null;default:'draft'"`

	VendorName    string `gorm:"column:vendor_name;not null"`
	VendorAddress string `gorm:"column:vendor_address;not null;default:''"`
	VendorPhone   string `gorm:"column:vendor_phone;not null;default:''"`
	VendorEmail   string `gorm:"column:vendor_email;not null;default:''"`
	VendorGSTIN   string `gorm:"column:vendor_gstin;not null;default:''"`
	VendorPAN     string `gorm:"column:vendor_pan;not null;default:''"`

	ShippingAddress string `gorm:"column:shipping_address;not null;default:''"`

	ItemsJSON string `gorm:"column:items_json;not null;default:'[]'"`

	TaxRatePercent decimal.Decimal `gorm:"column:gst_rate;type:numeric(6,2);not null"`
	SubTotal       decimal.Decimal `gorm:"column:sub_total;type:numeric(14,2);not null"`
	TaxAmount      decimal.Decimal `gorm:"column:gst_amount;type:numeric(14,2);not null"`
	GrandTotal     decimal.Decimal `gorm:"column:grand_total;type:numeric(14,2);not null"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the legacy table name.
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}
