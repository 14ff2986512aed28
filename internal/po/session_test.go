package po

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhyudyayatech/procure-backend/internal/catalog"
	"github.com/abhyudyayatech/procure-backend/pkg/config"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 12, 10, 0, 0, 0, time.UTC)
}

func newTestSession() *Session {
	return NewSession(SessionConfig{
		TaxDivisor:             decimal.RequireFromString("1.18"),
		DefaultTaxRatePercent:  decimal.NewFromInt(18),
		DefaultShippingAddress: "Plot 14, Industrial Area\nBengaluru 560058",
		Now:                    fixedNow,
	})
}

func TestSessionConfigFromOrder(t *testing.T) {
	cfg := SessionConfigFromOrder(config.OrderConfig{
		DefaultTaxRatePercent:   12,
		DefaultShippingAddress:  "Warehouse 3, Peenya\nBengaluru 560058",
		PriceInclusiveTaxDivide: 1.12,
	})

	assert.Equal(t, "1.12", cfg.TaxDivisor.String())
	assert.Equal(t, "12", cfg.DefaultTaxRatePercent.String())

	s := NewSession(cfg)
	assert.Equal(t, "Warehouse 3, Peenya\nBengaluru 560058", s.Fields().ShippingAddress)
	assert.Equal(t, "12", s.Fields().TaxRatePercent.String())
}

func TestNewSessionDefaults(t *testing.T) {
	s := newTestSession()
	fields := s.Fields()

	assert.Equal(t, "2025-06-12", fields.PODate)
	assert.Equal(t, "Plot 14, Industrial Area\nBengaluru 560058", fields.ShippingAddress)
	assert.Equal(t, "18", fields.TaxRatePercent.String())
}

func TestSnapshotAssignsDenseSlNo(t *testing.T) {
	s := newTestSession()
	s.SetItems([]catalog.Item{
		{Identity: "a", Title: "First", PriceText: "₹118.00"},
		{Identity: "b", Title: "Second", PriceText: "₹236.00"},
		{Identity: "c", Title: "Third", PriceText: "₹354.00"},
	})

	record := s.Snapshot()
	require.Len(t, record.Items, 3)
	for i, item := range record.Items {
		assert.Equal(t, i+1, item.SlNo)
	}
	assert.Equal(t, "a", record.Items[0].Identity)
}

func TestRehydratePairsByIdentity(t *testing.T) {
	s := newTestSession()
	s.SetItems([]catalog.Item{
		{Identity: "a", Title: "First", PriceText: "₹118.00"},
		{Identity: "b", Title: "Second", PriceText: "₹118.00"},
	})

	id := int64(7)
	draft := &Record{
		ID:       &id,
		PONumber: "PO/2025/001",
		PODate:   "2025-06-01",
		Vendor:   Vendor{Name: "Acme Supplies", Address: "12 Market Road"},
		// Saved in the opposite order of the current item list.
		Items: []RecordItem{
			{SlNo: 1, Identity: "b", Description: "Second saved", Quantity: 4, UnitPrice: decimal.NewFromInt(90)},
			{SlNo: 2, Identity: "a", Description: "First saved", Quantity: 2, UnitPrice: decimal.NewFromInt(50)},
		},
		TaxRatePercent: decimal.NewFromInt(12),
	}

	s.Rehydrate(draft)

	assert.Equal(t, 2, s.Store().Quantity("a"))
	assert.Equal(t, "First saved", s.Store().Description("a"))
	assert.Equal(t, 4, s.Store().Quantity("b"))
	assert.Equal(t, "Second saved", s.Store().Description("b"))
	assert.Equal(t, "12", s.Fields().TaxRatePercent.String())
	require.NotNil(t, s.DraftID())
	assert.Equal(t, int64(7), *s.DraftID())
}

func TestRehydrateLegacyRecordPairsByPosition(t *testing.T) {
	s := newTestSession()
	s.SetItems([]catalog.Item{
		{Identity: "a", Title: "First", PriceText: "₹118.00"},
		{Identity: "b", Title: "Second", PriceText: "₹118.00"},
	})

	draft := &Record{
		PONumber: "PO/2024/090",
		PODate:   "2024-11-20",
		Vendor:   Vendor{Name: "Old Vendor", Address: "1 Old Street"},
		// Legacy lines carry no identity.
		Items: []RecordItem{
			{SlNo: 1, Description: "Legacy first", Quantity: 6, UnitPrice: decimal.NewFromInt(10)},
			{SlNo: 2, Description: "Legacy second", Quantity: 8, UnitPrice: decimal.NewFromInt(20)},
		},
		TaxRatePercent: decimal.NewFromInt(18),
	}

	s.Rehydrate(draft)

	assert.Equal(t, 6, s.Store().Quantity("a"))
	assert.Equal(t, "Legacy first", s.Store().Description("a"))
	assert.Equal(t, 8, s.Store().Quantity("b"))
	assert.Equal(t, "Legacy second", s.Store().Description("b"))
}

func TestRehydrateDefaultsBlankDateAndShipping(t *testing.T) {
	s := newTestSession()
	s.SetItems([]catalog.Item{{Identity: "a", Title: "A", PriceText: "₹118.00"}})

	s.Rehydrate(&Record{PONumber: "PO/1", Vendor: Vendor{Name: "V"}})

	assert.Equal(t, "2025-06-12", s.Fields().PODate)
	assert.Equal(t, "Plot 14, Industrial Area\nBengaluru 560058", s.Fields().ShippingAddress)
	assert.Equal(t, "18", s.Fields().TaxRatePercent.String())
}

func TestRehydrateSameDraftOnlyOnce(t *testing.T) {
	s := newTestSession()
	s.SetItems([]catalog.Item{{Identity: "a", Title: "A", PriceText: "₹118.00"}})

	id := int64(3)
	draft := &Record{
		ID:    &id,
		Items: []RecordItem{{SlNo: 1, Identity: "a", Description: "Saved", Quantity: 2, UnitPrice: decimal.NewFromInt(10)}},
	}
	s.Rehydrate(draft)
	s.Store().SetQuantity("a", 9)

	// A repeat load of the same draft must not clobber later edits.
	s.Rehydrate(draft)
	assert.Equal(t, 9, s.Store().Quantity("a"))
}

func TestRoundTripThroughSnapshot(t *testing.T) {
	s := newTestSession()
	items := []catalog.Item{
		{Identity: "a", Title: "Widget", PriceText: "₹236.00 (Incl. GST)", SKU: "wd-1"},
	}
	s.SetItems(items)
	s.Store().SetQuantity("a", 3)
	s.SetFields(OrderFields{
		PONumber:        "PO/2025/014",
		PODate:          "2025-06-12",
		Vendor:          Vendor{Name: "Acme", Address: "12 Market Road"},
		ShippingAddress: "Plot 14",
		TaxRatePercent:  decimal.NewFromInt(18),
	})

	snapshot := s.Snapshot()

	fresh := newTestSession()
	fresh.SetItems(items)
	fresh.Rehydrate(snapshot)
	again := fresh.Snapshot()

	assert.Equal(t, snapshot.PONumber, again.PONumber)
	require.Len(t, again.Items, 1)
	assert.Equal(t, 3, again.Items[0].Quantity)
	assert.True(t, snapshot.Items[0].UnitPrice.Equal(again.Items[0].UnitPrice))
	assert.True(t, snapshot.Items[0].TotalPrice.Equal(again.Items[0].TotalPrice))
}

func TestSessionValidate(t *testing.T) {
	s := newTestSession()
	s.SetItems([]catalog.Item{{Identity: "a", Title: "Named item", PriceText: "₹118.00"}})

	result := s.Validate()
	require.False(t, result.Complete())
	assert.Contains(t, result.Missing, SectionVendor)
	assert.Contains(t, result.Missing, SectionPOInfo)

	s.SetFields(OrderFields{
		PONumber:       "PO/2025/014",
		PODate:         "2025-06-12",
		Vendor:         Vendor{Name: "Acme", Address: "12 Market Road"},
		TaxRatePercent: decimal.NewFromInt(18),
	})
	assert.True(t, s.Validate().Complete())
}

func TestSetTaxRateClampsNegative(t *testing.T) {
	s := newTestSession()
	s.SetTaxRate(decimal.NewFromInt(-1))
	assert.True(t, s.Fields().TaxRatePercent.IsZero())
}
