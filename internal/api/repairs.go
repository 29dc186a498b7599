package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"homeledger/server/internal/models"
)

type repairRequest struct {
	Date        string          `json:"date" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Cost        decimal.Decimal `json:"cost"`
}

func (r *repairRequest) validate() (time.Time, string) {
	if r.Cost.IsNegative() {
		return time.Time{}, "Repair cost cannot be negative"
	}
	date, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return time.Time{}, "Repair date must use the YYYY-MM-DD format"
	}
	return date, ""
}

func (h *Handler) ListRepairs(c *gin.Context) {
	applianceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	appliance, err := h.db.GetAppliance(c.Request.Context(), currentUserID(c), applianceID)
	if err != nil {
		h.respondNotFoundOrError(c, err, "appliance")
		return
	}

	repairs, err := h.db.ListRepairs(c.Request.Context(), appliance.ID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list repairs")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list repairs"})
		return
	}
	c.JSON(http.StatusOK, repairs)
}

func (h *Handler) CreateRepair(c *gin.Context) {
	applianceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	appliance, err := h.db.GetAppliance(c.Request.Context(), currentUserID(c), applianceID)
	if err != nil {
		h.respondNotFoundOrError(c, err, "appliance")
		return
	}

	var req repairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Repair date and description are required"})
		return
	}
	date, msg := req.validate()
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	repair := &models.Repair{
		ApplianceID: appliance.ID,
		Date:        date,
		Description: req.Description,
		Cost:        req.Cost,
	}
	if err := h.db.CreateRepair(c.Request.Context(), repair); err != nil {
		h.logger.WithError(err).Error("Failed to create repair")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create repair"})
		return
	}

	h.recordActivity(c, appliance.HouseID, models.ActionCreated, "repair", repair.ID, req.Description)
	c.JSON(http.StatusCreated, repair)
}

func (h *Handler) UpdateRepair(c *gin.Context) {
	repairID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	repair, err := h.db.GetRepair(c.Request.Context(), currentUserID(c), repairID)
	if err != nil {
		h.respondNotFoundOrError(c, err, "repair")
		return
	}

	var req repairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Repair date and description are required"})
		return
	}
	date, msg := req.validate()
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	repair.Date = date
	repair.Description = req.Description
	repair.Cost = req.Cost
	if err := h.db.UpdateRepair(c.Request.Context(), repair); err != nil {
		h.respondNotFoundOrError(c, err, "repair")
		return
	}

	appliance, err := h.db.GetAppliance(c.Request.Context(), currentUserID(c), repair.ApplianceID)
	if err == nil {
		h.recordActivity(c, appliance.HouseID, models.ActionUpdated, "repair", repair.ID, repair.Description)
	}
	c.JSON(http.StatusOK, repair)
}

func (h *Handler) DeleteRepair(c *gin.Context) {
	repairID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	repair, err := h.db.GetRepair(c.Request.Context(), currentUserID(c), repairID)
	if err != nil {
		h.respondNotFoundOrError(c, err, "repair")
		return
	}

	if err := h.db.SoftDeleteRepair(c.Request.Context(), repair.ID); err != nil {
		h.respondNotFoundOrError(c, err, "repair")
		return
	}

	appliance, err := h.db.GetAppliance(c.Request.Context(), currentUserID(c), repair.ApplianceID)
	if err == nil {
		h.recordActivity(c, appliance.HouseID, models.ActionDeleted, "repair", repair.ID, repair.Description)
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
