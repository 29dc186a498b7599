package costs

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"homeledger/server/internal/models"
)

func intPtr(v int) *int { return &v }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestSummarize_ProfitOnlyWhenSold(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	breakdown := models.CostBreakdown{TotalCost: dec("307450")}

	unsold := &models.House{PurchaseYear: intPtr(2020)}
	summary := Summarize(unsold, breakdown, now)
	assert.Nil(t, summary.Profit)

	sold := &models.House{
		PurchaseYear: intPtr(2020),
		SaleYear:     intPtr(2025),
		SalePrice:    decPtr("350000"),
	}
	summary = Summarize(sold, breakdown, now)
	assert.NotNil(t, summary.Profit)
	assert.True(t, dec("42550").Equal(*summary.Profit))
}

func TestSummarize_ProfitMayBeNegative(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	breakdown := models.CostBreakdown{TotalCost: dec("400000")}

	house := &models.House{SalePrice: decPtr("350000")}
	summary := Summarize(house, breakdown, now)
	assert.NotNil(t, summary.Profit)
	assert.True(t, dec("-50000").Equal(*summary.Profit))
}

func TestSummarize_YearsOwned(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	breakdown := models.CostBreakdown{TotalCost: dec("100000")}

	tests := []struct {
		name     string
		house    *models.House
		expected *int
	}{
		{"Both years use sale year", &models.House{PurchaseYear: intPtr(2010), SaleYear: intPtr(2020)}, intPtr(10)},
		{"Only purchase year uses current year", &models.House{PurchaseYear: intPtr(2020)}, intPtr(6)},
		{"No purchase year is undefined", &models.House{SaleYear: intPtr(2020)}, nil},
		{"Nothing is undefined", &models.House{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := Summarize(tt.house, breakdown, now)
			if tt.expected == nil {
				assert.Nil(t, summary.YearsOwned)
			} else {
				assert.NotNil(t, summary.YearsOwned)
				assert.Equal(t, *tt.expected, *summary.YearsOwned)
			}
		})
	}
}

func TestSummarize_CostPerYear(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	breakdown := models.CostBreakdown{TotalCost: dec("100000")}

	// Ten years owned.
	house := &models.House{PurchaseYear: intPtr(2010), SaleYear: intPtr(2020)}
	summary := Summarize(house, breakdown, now)
	assert.NotNil(t, summary.CostPerYear)
	assert.True(t, dec("10000").Equal(*summary.CostPerYear))

	// Bought and sold the same year: zero duration, no per-year figure.
	house = &models.House{PurchaseYear: intPtr(2020), SaleYear: intPtr(2020)}
	summary = Summarize(house, breakdown, now)
	assert.NotNil(t, summary.YearsOwned)
	assert.Equal(t, 0, *summary.YearsOwned)
	assert.Nil(t, summary.CostPerYear)

	// Sale year before purchase year: negative duration, no per-year figure.
	house = &models.House{PurchaseYear: intPtr(2020), SaleYear: intPtr(2018)}
	summary = Summarize(house, breakdown, now)
	assert.Nil(t, summary.CostPerYear)

	// Unknown duration, no per-year figure.
	house = &models.House{}
	summary = Summarize(house, breakdown, now)
	assert.Nil(t, summary.CostPerYear)
}
