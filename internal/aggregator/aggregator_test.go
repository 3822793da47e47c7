package aggregator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billscan/internal/aggregator"
	"billscan/internal/domain"
)

func TestSanitizeItems_CoercesNumericFields(t *testing.T) {
	items := []domain.RawItem{
		{Name: " Paracetamol ", Rate: "12.5", Quantity: float64(2), Amount: "25.0"},
	}

	got := aggregator.SanitizeItems(items)

	require.Len(t, got, 1)
	assert.Equal(t, domain.BillItem{
		ItemName:     "Paracetamol",
		ItemAmount:   25.0,
		ItemRate:     12.5,
		ItemQuantity: 2.0,
	}, got[0])
}

func TestSanitizeItems_MalformedNumericDefaultsToZero(t *testing.T) {
	items := []domain.RawItem{
		{Name: "Syringe", Rate: "abc", Quantity: nil, Amount: map[string]any{"weird": true}},
	}

	got := aggregator.SanitizeItems(items)

	require.Len(t, got, 1)
	assert.Equal(t, 0.0, got[0].ItemRate)
	assert.Equal(t, 0.0, got[0].ItemQuantity)
	assert.Equal(t, 0.0, got[0].ItemAmount)
}

func TestSanitizeItems_DropsSummaryRows(t *testing.T) {
	items := []domain.RawItem{
		{Name: "Room Rent", Rate: float64(1000), Quantity: float64(2), Amount: float64(2000)},
		{Name: "Grand Total", Amount: float64(2500)},
		{Name: "SUBTOTAL", Amount: float64(2000)},
		{Name: "Net Amount Payable", Amount: float64(2500)},
		{Name: "Sub Total of charges", Amount: float64(100)},
	}

	got := aggregator.SanitizeItems(items)

	require.Len(t, got, 1)
	assert.Equal(t, "Room Rent", got[0].ItemName)
}

func TestSanitizeItems_Idempotent(t *testing.T) {
	items := []domain.RawItem{
		{Name: " Paracetamol ", Rate: "12.5", Quantity: "2", Amount: "25.0"},
		{Name: "Total", Amount: float64(25)},
	}

	once := aggregator.SanitizeItems(items)

	// Feed the sanitized output back through as raw items.
	raw := make([]domain.RawItem, len(once))
	for i, b := range once {
		raw[i] = domain.RawItem{Name: b.ItemName, Rate: b.ItemRate, Quantity: b.ItemQuantity, Amount: b.ItemAmount}
	}
	twice := aggregator.SanitizeItems(raw)

	assert.Equal(t, once, twice)
}

func TestAggregate_TotalItemCountMatchesBillItems(t *testing.T) {
	results := []aggregator.PageResult{
		{
			Extraction: domain.PageExtraction{
				PageNo:   "1",
				PageType: domain.PageTypeBillDetail,
				Items: []domain.RawItem{
					{Name: "Consultation", Rate: float64(500), Quantity: float64(1), Amount: float64(500)},
					{Name: "Total", Amount: float64(500)},
				},
			},
			Usage: domain.Usage{TotalTokens: 100, InputTokens: 80, OutputTokens: 20},
		},
		{
			Extraction: domain.PageExtraction{
				PageNo:   "2",
				PageType: domain.PageTypePharmacy,
				Items: []domain.RawItem{
					{Name: "Paracetamol", Rate: "12.5", Quantity: float64(2), Amount: "25.0"},
					{Name: "Bandage", Rate: float64(40), Quantity: float64(1), Amount: float64(40)},
				},
			},
			Usage: domain.Usage{TotalTokens: 60, InputTokens: 45, OutputTokens: 15},
		},
	}

	resp := aggregator.Aggregate(results)

	assert.True(t, resp.IsSuccess)
	require.Len(t, resp.Data.PagewiseLineItems, 2)

	count := 0
	for _, page := range resp.Data.PagewiseLineItems {
		count += len(page.BillItems)
	}
	assert.Equal(t, count, resp.Data.TotalItemCount)
	assert.Equal(t, 3, resp.Data.TotalItemCount)

	// Page order matches input order
	assert.Equal(t, "1", resp.Data.PagewiseLineItems[0].PageNo)
	assert.Equal(t, "2", resp.Data.PagewiseLineItems[1].PageNo)

	// Usage summed arithmetically
	assert.Equal(t, domain.Usage{TotalTokens: 160, InputTokens: 125, OutputTokens: 35}, resp.TokenUsage)
}

func TestAggregate_EmptyPagesStillSucceed(t *testing.T) {
	results := []aggregator.PageResult{
		{Extraction: domain.PageExtraction{PageNo: "1", PageType: domain.PageTypeBillDetail, Items: []domain.RawItem{}}},
	}

	resp := aggregator.Aggregate(results)

	assert.True(t, resp.IsSuccess)
	require.Len(t, resp.Data.PagewiseLineItems, 1)
	assert.Empty(t, resp.Data.PagewiseLineItems[0].BillItems)
	assert.Equal(t, 0, resp.Data.TotalItemCount)
	assert.Equal(t, domain.Usage{}, resp.TokenUsage)
}
