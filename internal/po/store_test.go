package po

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/abhyudyayatech/procure-backend/internal/catalog"
)

func divisor118() decimal.Decimal {
	return decimal.RequireFromString("1.18")
}

func TestSeedDerivesDefaultUnitPrice(t *testing.T) {
	store := NewLineItemStore(divisor118())
	store.Seed([]catalog.Item{
		{Identity: "item-1", Title: "Cable tray 2m", PriceText: "₹236.00 (Incl. GST)", SKU: "ct-2m"},
	})

	assert.Equal(t, 1, store.Quantity("item-1"))
	assert.Equal(t, "Cable tray 2m", store.Description("item-1"))
	assert.Equal(t, "CT-2M", store.SKU("item-1"))
	assert.Equal(t, "200", store.UnitPrice("item-1").String())
}

func TestSeedPreservesEditsAcrossRefreshes(t *testing.T) {
	store := NewLineItemStore(divisor118())
	items := []catalog.Item{
		{Identity: "item-1", Title: "Original", PriceText: "₹118.00"},
	}
	store.Seed(items)
	store.SetQuantity("item-1", 5)
	store.SetDescription("item-1", "Edited description")
	store.SetUnitPrice("item-1", decimal.NewFromInt(42))

	store.Seed(items)
	store.Seed(items)

	assert.Equal(t, 5, store.Quantity("item-1"))
	assert.Equal(t, "Edited description", store.Description("item-1"))
	assert.Equal(t, "42", store.UnitPrice("item-1").String())
}

func TestSeedPrunesDeadIdentities(t *testing.T) {
	store := NewLineItemStore(divisor118())
	store.Seed([]catalog.Item{
		{Identity: "keep", Title: "Keep", PriceText: "₹118.00"},
		{Identity: "drop", Title: "Drop", PriceText: "₹118.00"},
	})
	store.SetQuantity("drop", 9)

	store.Seed([]catalog.Item{
		{Identity: "keep", Title: "Keep", PriceText: "₹118.00"},
	})

	// Re-adding the identity later starts from defaults again.
	store.Seed([]catalog.Item{
		{Identity: "keep", Title: "Keep", PriceText: "₹118.00"},
		{Identity: "drop", Title: "Drop", PriceText: "₹118.00"},
	})
	assert.Equal(t, 1, store.Quantity("drop"))
}

func TestSetQuantityClampsToOne(t *testing.T) {
	store := NewLineItemStore(divisor118())
	store.SetQuantity("x", 0)
	assert.Equal(t, 1, store.Quantity("x"))
	store.SetQuantity("x", -4)
	assert.Equal(t, 1, store.Quantity("x"))
	store.SetQuantity("x", 3)
	assert.Equal(t, 3, store.Quantity("x"))
}

func TestSetUnitPriceClampsToZero(t *testing.T) {
	store := NewLineItemStore(divisor118())
	store.SetUnitPrice("x", decimal.NewFromInt(-10))
	assert.True(t, store.UnitPrice("x").IsZero())
}

func TestSetSKUUppercases(t *testing.T) {
	store := NewLineItemStore(divisor118())
	store.SetSKU("x", "abc-123")
	assert.Equal(t, "ABC-123", store.SKU("x"))
}

func TestUnparsablePriceTextDefaultsToZero(t *testing.T) {
	store := NewLineItemStore(divisor118())
	store.Seed([]catalog.Item{
		{Identity: "item-1", Title: "No price listed", PriceText: "contact seller"},
	})
	assert.True(t, store.UnitPrice("item-1").IsZero())
}
