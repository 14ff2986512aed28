package po

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhyudyayatech/procure-backend/internal/catalog"
)

// The reference walkthrough: tax-inclusive ₹236.00 backs out to 200.00 at
// the 1.18 divisor, qty 3 extends to 600.00, and an 18% order rate yields
// 108.00 tax and a 708.00 grand total.
func TestDeriveReferenceFigures(t *testing.T) {
	items := []catalog.Item{
		{Identity: "item-1", Title: "Junction box", PriceText: "₹236.00 (Incl. GST)"},
	}
	store := NewLineItemStore(divisor118())
	store.Seed(items)
	store.SetQuantity("item-1", 3)

	lines, summary := Derive(items, store, decimal.NewFromInt(18))
	require.Len(t, lines, 1)

	assert.Equal(t, "200", lines[0].UnitPrice.String())
	assert.Equal(t, "600", lines[0].TotalPrice.String())
	assert.Equal(t, "600", summary.SubTotal.String())
	assert.Equal(t, "108", summary.TaxAmount.String())
	assert.Equal(t, "708", summary.GrandTotal.String())
}

func TestDeriveIsIdempotent(t *testing.T) {
	items := []catalog.Item{
		{Identity: "a", Title: "A", PriceText: "₹99.99"},
		{Identity: "b", Title: "B", PriceText: "₹1,450.00"},
	}
	store := NewLineItemStore(divisor118())
	store.Seed(items)
	store.SetQuantity("a", 7)

	first, firstSummary := Derive(items, store, decimal.NewFromInt(18))
	second, secondSummary := Derive(items, store, decimal.NewFromInt(18))

	assert.Equal(t, first, second)
	assert.True(t, firstSummary.GrandTotal.Equal(secondSummary.GrandTotal))
}

func TestDerivePreservesItemOrder(t *testing.T) {
	items := []catalog.Item{
		{Identity: "b", Title: "Second listed first", PriceText: "₹118.00"},
		{Identity: "a", Title: "First listed second", PriceText: "₹118.00"},
	}
	store := NewLineItemStore(divisor118())
	store.Seed(items)

	lines, _ := Derive(items, store, decimal.NewFromInt(18))
	require.Len(t, lines, 2)
	assert.Equal(t, "b", lines[0].Identity)
	assert.Equal(t, "a", lines[1].Identity)
}

func TestSummarizeZeroRate(t *testing.T) {
	summary := Summarize(decimal.NewFromInt(500), decimal.Zero)
	assert.True(t, summary.TaxAmount.IsZero())
	assert.Equal(t, "500", summary.GrandTotal.String())
}

func TestSummarizeNegativeRateClamped(t *testing.T) {
	summary := Summarize(decimal.NewFromInt(500), decimal.NewFromInt(-5))
	assert.True(t, summary.TaxAmount.IsZero())
}

func TestRecomputeRecordOverridesClientTotals(t *testing.T) {
	record := &Record{
		TaxRatePercent: decimal.NewFromInt(18),
		Items: []RecordItem{
			{
				SlNo:       1,
				Quantity:   3,
				UnitPrice:  decimal.NewFromInt(200),
				TotalPrice: decimal.NewFromInt(999999), // client-sent garbage
			},
		},
	}

	summary := RecomputeRecord(record)

	assert.Equal(t, "600", record.Items[0].TotalPrice.String())
	assert.Equal(t, "600", summary.SubTotal.String())
	assert.Equal(t, "108", summary.TaxAmount.String())
	assert.Equal(t, "708", summary.GrandTotal.String())
}

func TestRecomputeRecordClampsLines(t *testing.T) {
	record := &Record{
		TaxRatePercent: decimal.NewFromInt(18),
		Items: []RecordItem{
			{SlNo: 1, Quantity: 0, UnitPrice: decimal.NewFromInt(-50)},
		},
	}

	RecomputeRecord(record)

	assert.Equal(t, 1, record.Items[0].Quantity)
	assert.True(t, record.Items[0].UnitPrice.IsZero())
	assert.True(t, record.Items[0].TotalPrice.IsZero())
}

func TestSummarizeRecordMatchesStoredTotals(t *testing.T) {
	record := &Record{
		TaxRatePercent: decimal.NewFromInt(18),
		Items: []RecordItem{
			{SlNo: 1, Quantity: 3, UnitPrice: decimal.NewFromInt(200), TotalPrice: decimal.NewFromInt(600)},
			{SlNo: 2, Quantity: 1, UnitPrice: decimal.NewFromInt(150), TotalPrice: decimal.NewFromInt(150)},
		},
	}

	summary := SummarizeRecord(record)
	assert.Equal(t, "750", summary.SubTotal.String())
	assert.Equal(t, "135", summary.TaxAmount.String())
	assert.Equal(t, "885", summary.GrandTotal.String())
}
