package po

import "strings"

// Sections reported when the validation gate fails.
const (
	SectionVendor    = "vendor"
	SectionPOInfo    = "po_info"
	SectionLineItems = "line_items"
)

// ValidationResult names the incomplete sections, if any.
type ValidationResult struct {
	Missing []string
}

// Complete reports whether a binding action may proceed.
func (v ValidationResult) Complete() bool {
	return len(v.Missing) == 0
}

// Details renders the result as an error-details map.
func (v ValidationResult) Details() map[string]any {
	return map[string]any{"incomplete_sections": v.Missing}
}

// Validate checks completeness before a binding action: vendor name and
// address, PO number and date must be non-blank, and every line description
// must survive trimming. Draft saves skip this gate; finalization does not.
func Validate(fields OrderFields, lines []LineComputation) ValidationResult {
	var missing []string

	if isBlank(fields.Vendor.Name) || isBlank(fields.Vendor.Address) {
		missing = append(missing, SectionVendor)
	}
	if isBlank(fields.PONumber) || isBlank(fields.PODate) {
		missing = append(missing, SectionPOInfo)
	}
	for _, line := range lines {
		if isBlank(line.Description) {
			missing = append(missing, SectionLineItems)
			break
		}
	}

	return ValidationResult{Missing: missing}
}

// ValidateRecord applies the same gate to a canonical record, used by the
// persistence layer before accepting a completed save.
func ValidateRecord(record *Record) ValidationResult {
	fields := OrderFields{
		PONumber:        record.PONumber,
		PODate:          record.PODate,
		Vendor:          record.Vendor,
		ShippingAddress: record.ShippingAddress,
		TaxRatePercent:  record.TaxRatePercent,
	}
	lines := make([]LineComputation, 0, len(record.Items))
	for _, item := range record.Items {
		lines = append(lines, LineComputation{
			Identity:    item.Identity,
			Description: item.Description,
			SKU:         item.SKU,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}
	return Validate(fields, lines)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
