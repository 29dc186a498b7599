package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"homeledger/server/internal/costs"
	"homeledger/server/internal/currency"
)

// GetHouseSummary aggregates every cost recorded against a house and
// returns the breakdown together with lifecycle figures, both raw and
// formatted in the house's local currency. A failure on any read aborts
// the whole summary; a partial breakdown is never returned.
func (h *Handler) GetHouseSummary(c *gin.Context) {
	houseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	house, ok := h.houseForUser(c, houseID)
	if !ok {
		return
	}

	breakdown, err := h.aggregator.Aggregate(c.Request.Context(), house.ID)
	if err != nil {
		h.logger.WithError(err).WithField("house_id", house.ID).Error("Failed to aggregate house costs")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate house costs"})
		return
	}

	summary := costs.Summarize(house, breakdown, time.Now())
	info := currency.Lookup(house.Country)

	formatted := gin.H{
		"housePurchase":         currency.Format(breakdown.HousePurchase, house.Country),
		"appliances":            currency.Format(breakdown.Appliances, house.Country),
		"applianceInstallation": currency.Format(breakdown.ApplianceInstallation, house.Country),
		"applianceRepairs":      currency.Format(breakdown.ApplianceRepairs, house.Country),
		"exteriorFeatures":      currency.Format(breakdown.ExteriorFeatures, house.Country),
		"exteriorMaintenance":   currency.Format(breakdown.ExteriorMaintenance, house.Country),
		"totalCost":             currency.Format(breakdown.TotalCost, house.Country),
	}
	if summary.Profit != nil {
		formatted["profit"] = currency.Format(*summary.Profit, house.Country)
	}
	if summary.CostPerYear != nil {
		formatted["costPerYear"] = currency.Format(*summary.CostPerYear, house.Country)
	}

	c.JSON(http.StatusOK, gin.H{
		"house_id":  house.ID,
		"summary":   summary,
		"formatted": formatted,
		"currency":  gin.H{"code": info.Code, "symbol": info.Symbol},
	})
}
