package po

import (
	"github.com/shopspring/decimal"

	"github.com/abhyudyayatech/procure-backend/internal/catalog"
	"github.com/abhyudyayatech/procure-backend/pkg/money"
)

var hundred = decimal.NewFromInt(100)

// Derive computes every line and the order summary from the item list, the
// per-item store, and the order tax rate. It is pure: no caching, no side
// effects, identical output for identical input. Every export format
// consumes this single computation.
func Derive(items []catalog.Item, store *LineItemStore, taxRatePercent decimal.Decimal) ([]LineComputation, Summary) {
	lines := make([]LineComputation, 0, len(items))
	subTotal := decimal.Zero
	for _, item := range items {
		qty := store.Quantity(item.Identity)
		unit := store.UnitPrice(item.Identity)
		total := money.Round2(unit.Mul(decimal.NewFromInt(int64(qty))))
		lines = append(lines, LineComputation{
			Identity:    item.Identity,
			Description: store.Description(item.Identity),
			SKU:         store.SKU(item.Identity),
			Quantity:    qty,
			UnitPrice:   unit,
			TotalPrice:  total,
		})
		subTotal = subTotal.Add(total)
	}

	return lines, Summarize(subTotal, taxRatePercent)
}

// Summarize applies the order tax rate to a subtotal. Shared by the live
// session and the server-side save path so both produce the same figures.
func Summarize(subTotal, taxRatePercent decimal.Decimal) Summary {
	if taxRatePercent.IsNegative() {
		taxRatePercent = decimal.Zero
	}
	tax := money.Round2(subTotal.Mul(taxRatePercent).Div(hundred))
	return Summary{
		SubTotal:   subTotal,
		TaxAmount:  tax,
		GrandTotal: subTotal.Add(tax),
	}
}

// RecomputeRecord rewrites every line's extended price from its unit price
// and quantity, then summarizes. The persistence path runs this instead of
// trusting client-sent totals.
func RecomputeRecord(record *Record) Summary {
	subTotal := decimal.Zero
	for i := range record.Items {
		line := &record.Items[i]
		if line.Quantity < 1 {
			line.Quantity = 1
		}
		if line.UnitPrice.IsNegative() {
			line.UnitPrice = decimal.Zero
		}
		line.TotalPrice = money.Round2(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
		subTotal = subTotal.Add(line.TotalPrice)
	}
	return Summarize(subTotal, record.TaxRatePercent)
}

// SummarizeRecord computes the summary for a canonical record from its
// stored line totals, without mutating them. Exports use this.
func SummarizeRecord(record *Record) Summary {
	subTotal := decimal.Zero
	for _, line := range record.Items {
		subTotal = subTotal.Add(line.TotalPrice)
	}
	return Summarize(subTotal, record.TaxRatePercent)
}
