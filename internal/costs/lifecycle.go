package costs

import (
	"time"

	"github.com/shopspring/decimal"

	"homeledger/server/internal/models"
)

// Summarize derives the lifecycle figures for a house from its cost
// breakdown:
//
//   - profit is sale price minus total cost, only when a sale price is
//     recorded; it stays nil otherwise, never zero.
//   - years owned is saleYear-purchaseYear when both are present, or the
//     current year minus purchaseYear when only the purchase year is
//     known.
//   - cost per year is total cost over years owned, only when years
//     owned is strictly positive.
//
// The current time is a parameter so callers and tests control "now".
func Summarize(house *models.House, breakdown models.CostBreakdown, now time.Time) models.HouseSummary {
	summary := models.HouseSummary{Breakdown: breakdown}

	if house.SalePrice != nil {
		profit := house.SalePrice.Sub(breakdown.TotalCost)
		summary.Profit = &profit
	}

	switch {
	case house.PurchaseYear != nil && house.SaleYear != nil:
		years := *house.SaleYear - *house.PurchaseYear
		summary.YearsOwned = &years
	case house.PurchaseYear != nil:
		years := now.Year() - *house.PurchaseYear
		summary.YearsOwned = &years
	}

	if summary.YearsOwned != nil && *summary.YearsOwned > 0 {
		perYear := breakdown.TotalCost.Div(decimal.NewFromInt(int64(*summary.YearsOwned)))
		summary.CostPerYear = &perYear
	}

	return summary
}
