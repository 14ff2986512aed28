package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhyudyayatech/procure-backend/internal/po"
	"github.com/abhyudyayatech/procure-backend/pkg/config"
)

// Company is the letterhead block stamped on exports.
type Company struct {
	Name    string
	Address string
	GSTIN   string
	Phone   string
	Email   string
}

// CompanyFromConfig copies the configured letterhead.
func CompanyFromConfig(cfg config.CompanyConfig) Company {
	return Company{
		Name:    cfg.Name,
		Address: cfg.Address,
		GSTIN:   cfg.GSTIN,
		Phone:   cfg.Phone,
		Email:   cfg.Email,
	}
}

// Snapshot is the single input every serializer consumes: order fields, the
// derived lines and summary, and the letterhead. Serializers never recompute
// totals from the lines.
type Snapshot struct {
	Fields  po.OrderFields
	Lines   []po.LineComputation
	Summary po.Summary
	Company Company
}

// SnapshotFromRecord adapts a canonical record into serializer input,
// re-deriving the summary through the one shared computation.
func SnapshotFromRecord(record *po.Record, company Company) Snapshot {
	lines := make([]po.LineComputation, 0, len(record.Items))
	for _, item := range record.Items {
		lines = append(lines, po.LineComputation{
			Identity:    item.Identity,
			Description: item.Description,
			SKU:         item.SKU,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}
	return Snapshot{
		Fields: po.OrderFields{
			PONumber:        record.PONumber,
			PODate:          record.PODate,
			Vendor:          record.Vendor,
			ShippingAddress: record.ShippingAddress,
			TaxRatePercent:  record.TaxRatePercent,
		},
		Lines:   lines,
		Summary: po.SummarizeRecord(record),
		Company: company,
	}
}

// CSVFilename derives the download name from the PO number, slashes replaced
// so the name stays path-safe.
func CSVFilename(poNumber string) string {
	safe := strings.ReplaceAll(strings.TrimSpace(poNumber), "/", "_")
	if safe == "" {
		safe = "draft"
	}
	return fmt.Sprintf("PO_%s.csv", safe)
}

// PDFFilename mirrors CSVFilename for rendered documents.
func PDFFilename(poNumber string) string {
	safe := strings.ReplaceAll(strings.TrimSpace(poNumber), "/", "_")
	if safe == "" {
		safe = "draft"
	}
	return fmt.Sprintf("PO_%s.pdf", safe)
}

// QuotationFilename is timestamp-derived, matching the historical exports.
func QuotationFilename(now time.Time) string {
	return fmt.Sprintf("quotation_%d.xlsx", now.UnixMilli())
}

// EstimateFilename is timestamp-derived, matching the historical exports.
func EstimateFilename(now time.Time) string {
	return fmt.Sprintf("estimation_%d.xlsx", now.UnixMilli())
}
