package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

// utf8BOM keeps spreadsheet applications from misreading the rupee symbol.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var termsAndConditions = []string{
	"1. Please send two copies of your invoice.",
	"2. Enter this order in accordance with the prices terms and specifications listed above.",
	"3. Product should be in accordance with the specification mentioned above.",
	"4. Please notify us immediately if you are unable to ship as specified.",
	"5. Transportation Freight Charges and Packing charges: NIL",
	"6. Installation and commissioning: NIL",
	"7. Payment terms: Against Delivery",
	"8. Delivery: 2 to 3 Days",
}

// CSV renders the full PO document as BOM-prefixed, RFC 4180 quoted text:
// letterhead, PO meta, vendor block, shipping address, the priced item
// table, summary rows, and the boilerplate terms block.
func CSV(snap Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	rows := [][]string{
		{snap.Company.Name},
		{snap.Company.Address},
		{fmt.Sprintf("GSTIN: %s | Phone: %s | Email: %s", snap.Company.GSTIN, snap.Company.Phone, snap.Company.Email)},
		{},
		{"PURCHASE ORDER"},
		{},
		{"P.O. Number", snap.Fields.PONumber},
		{"P.O. Date", snap.Fields.PODate},
		{},
		{"VENDOR DETAILS"},
		{"Name", snap.Fields.Vendor.Name},
		{"Address", flatten(snap.Fields.Vendor.Address)},
		{"Phone", snap.Fields.Vendor.Phone},
		{"Email", snap.Fields.Vendor.Email},
		{"GSTIN", snap.Fields.Vendor.GSTIN},
		{"PAN", snap.Fields.Vendor.PAN},
		{},
		{"SHIPPING ADDRESS"},
		{flatten(snap.Fields.ShippingAddress)},
		{},
		{"SL NO", "DESCRIPTION", "SKU", "QTY", "UNIT PRICE", "TOTAL PRICE"},
	}

	for i, line := range snap.Lines {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			line.Description,
			line.SKU,
			strconv.Itoa(line.Quantity),
			line.UnitPrice.StringFixed(2),
			line.TotalPrice.StringFixed(2),
		})
	}

	rows = append(rows,
		[]string{},
		[]string{"", "", "", "", "Sub Total", snap.Summary.SubTotal.StringFixed(2)},
		[]string{"", "", "", "", fmt.Sprintf("GST @ %s%%", snap.Fields.TaxRatePercent.String()), snap.Summary.TaxAmount.StringFixed(2)},
		[]string{"", "", "", "", "Grand Total", snap.Summary.GrandTotal.StringFixed(2)},
		[]string{},
		[]string{"TERMS & CONDITIONS"},
	)
	for _, clause := range termsAndConditions {
		rows = append(rows, []string{clause})
	}

	for _, row := range rows {
		if len(row) == 0 {
			row = []string{""}
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}

	return buf.Bytes(), nil
}

func flatten(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}
