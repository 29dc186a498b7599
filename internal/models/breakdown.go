package models

import "github.com/shopspring/decimal"

// CostBreakdown is the derived cost aggregate for one house. It is
// recomputed on demand from non-deleted rows and never persisted.
type CostBreakdown struct {
	HousePurchase         decimal.Decimal `json:"housePurchase"`
	Appliances            decimal.Decimal `json:"appliances"`
	ApplianceInstallation decimal.Decimal `json:"applianceInstallation"`
	ApplianceRepairs      decimal.Decimal `json:"applianceRepairs"`
	ExteriorFeatures      decimal.Decimal `json:"exteriorFeatures"`
	ExteriorMaintenance   decimal.Decimal `json:"exteriorMaintenance"`
	TotalCost             decimal.Decimal `json:"totalCost"`
}

// HouseSummary combines the cost breakdown with the lifecycle figures
// derived from it. Profit is nil until a sale price is recorded;
// CostPerYear is nil unless YearsOwned is present and positive.
type HouseSummary struct {
	Breakdown   CostBreakdown    `json:"breakdown"`
	Profit      *decimal.Decimal `json:"profit,omitempty"`
	YearsOwned  *int             `json:"years_owned,omitempty"`
	CostPerYear *decimal.Decimal `json:"cost_per_year,omitempty"`
}
