package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	quotationSheet = "Quotation"
	estimateSheet  = "Estimate"
)

// Quotation builds the unpriced spec-sheet workbook: merged letterhead rows
// over the four columns, then one row per line with serial number,
// description, SKU, and quantity. Prices are deliberately absent.
func Quotation(snap Snapshot) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", quotationSheet); err != nil {
		return nil, fmt.Errorf("naming quotation sheet: %w", err)
	}

	rows := [][]any{
		{snap.Company.Name},
		{snap.Company.Address},
		{},
		{"Sl no", "Description", "SKU", "QTY"},
	}
	for i, line := range snap.Lines {
		rows = append(rows, []any{i + 1, line.Description, line.SKU, line.Quantity})
	}

	if err := writeRows(f, quotationSheet, rows); err != nil {
		return nil, err
	}

	if err := f.MergeCell(quotationSheet, "A1", "D1"); err != nil {
		return nil, fmt.Errorf("merging letterhead: %w", err)
	}
	if err := f.MergeCell(quotationSheet, "A2", "D2"); err != nil {
		return nil, fmt.Errorf("merging address: %w", err)
	}
	if err := f.SetColWidth(quotationSheet, "B", "B", 50); err != nil {
		return nil, fmt.Errorf("sizing description column: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing quotation workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Estimate builds the priced estimate workbook: a header row, one row per
// line with quantity and base prices, and the three summary figures aligned
// under the total-price column.
func Estimate(snap Snapshot) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", estimateSheet); err != nil {
		return nil, fmt.Errorf("naming estimate sheet: %w", err)
	}

	rows := [][]any{
		{"ESTIMATE"},
		{},
		{"Sl No", "Quantity", "Unit Price (Base)", "Total Price (Base)"},
	}
	for i, line := range snap.Lines {
		unit, _ := line.UnitPrice.Round(2).Float64()
		total, _ := line.TotalPrice.Float64()
		rows = append(rows, []any{i + 1, line.Quantity, unit, total})
	}

	sub, _ := snap.Summary.SubTotal.Float64()
	tax, _ := snap.Summary.TaxAmount.Float64()
	grand, _ := snap.Summary.GrandTotal.Float64()
	rows = append(rows,
		[]any{},
		[]any{"", "", "Sub Total", sub},
		[]any{"", "", fmt.Sprintf("GST @ %s%%", snap.Fields.TaxRatePercent.String()), tax},
		[]any{"", "", "Grand Total", grand},
	)

	if err := writeRows(f, estimateSheet, rows); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing estimate workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("row coordinate: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing sheet row %d: %w", i+1, err)
		}
	}
	return nil
}
