package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"homeledger/server/internal/models"
)

type exteriorFeatureRequest struct {
	Name      string          `json:"name" binding:"required"`
	BuildYear *int            `json:"build_year"`
	BuildCost decimal.Decimal `json:"build_cost"`
}

type exteriorMaintenanceRequest struct {
	Date        string          `json:"date" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Cost        decimal.Decimal `json:"cost"`
}

func (h *Handler) ListExteriorFeatures(c *gin.Context) {
	houseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := h.houseForUser(c, houseID); !ok {
		return
	}

	features, err := h.db.ListActiveExteriorFeatures(c.Request.Context(), houseID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list exterior features")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list exterior features"})
		return
	}
	c.JSON(http.StatusOK, features)
}

func (h *Handler) CreateExteriorFeature(c *gin.Context) {
	houseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := h.houseForUser(c, houseID); !ok {
		return
	}

	var req exteriorFeatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Feature name is required"})
		return
	}
	if req.BuildCost.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Build cost cannot be negative"})
		return
	}

	feature := &models.ExteriorFeature{
		HouseID:   houseID,
		Name:      req.Name,
		BuildYear: req.BuildYear,
		BuildCost: req.BuildCost,
	}
	if err := h.db.CreateExteriorFeature(c.Request.Context(), feature); err != nil {
		h.logger.WithError(err).Error("Failed to create exterior feature")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create exterior feature"})
		return
	}

	h.recordActivity(c, houseID, models.ActionCreated, "exterior_feature", feature.ID, feature.Name)
	c.JSON(http.StatusCreated, feature)
}

func (h *Handler) UpdateExteriorFeature(c *gin.Context) {
	featureID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	feature, err := h.db.GetExteriorFeature(c.Request.Context(), currentUserID(c), featureID)
	if err != nil {
		h.respondNotFoundOrError(c, err, "exterior feature")
		return
	}

	var req exteriorFeatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Feature name is required"})
		return
	}
	if req.BuildCost.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Build cost cannot be negative"})
		return
	}

	feature.Name = req.Name
	feature.BuildYear = req.BuildYear
	feature.BuildCost = req.BuildCost
	if err := h.db.UpdateExteriorFeature(c.Request.Context(), feature); err != nil {
		h.respondNotFoundOrError(c, err, "exterior feature")
		return
	}

	h.recordActivity(c, feature.HouseID, models.ActionUpdated, "exterior_feature", feature.ID, feature.Name)
	c.JSON(http.StatusOK, feature)
}

func (h *Handler) DeleteExteriorFeature(c *gin.Context) {
	featureID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	feature, err := h.db.GetExteriorFeature(c.Request.Context(), currentUserID(c), featureID)
	if err != nil {
		h.respondNotFoundOrError(c, err, "exterior feature")
		return
	}

	if err := h.db.SoftDeleteExteriorFeature(c.Request.Context(), feature.ID); err != nil {
		h.respondNotFoundOrError(c, err, "exterior feature")
		return
	}

	h.recordActivity(c, feature.HouseID, models.ActionDeleted, "exterior_feature", feature.ID, feature.Name)
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) ListExteriorMaintenance(c *gin.Context) {
	houseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := h.houseForUser(c, houseID); !ok {
		return
	}

	records, err := h.db.ListActiveExteriorMaintenance(c.Request.Context(), houseID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list exterior maintenance")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list exterior maintenance"})
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *Handler) CreateExteriorMaintenance(c *gin.Context) {
	houseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := h.houseForUser(c, houseID); !ok {
		return
	}

	var req exteriorMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Maintenance date and description are required"})
		return
	}
	if req.Cost.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Maintenance cost cannot be negative"})
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Maintenance date must use the YYYY-MM-DD format"})
		return
	}

	record := &models.ExteriorMaintenance{
		HouseID:     houseID,
		Date:        date,
		Description: req.Description,
		Cost:        req.Cost,
	}
	if err := h.db.CreateExteriorMaintenance(c.Request.Context(), record); err != nil {
		h.logger.WithError(err).Error("Failed to create exterior maintenance")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create exterior maintenance"})
		return
	}

	h.recordActivity(c, houseID, models.ActionCreated, "exterior_maintenance", record.ID, req.Description)
	c.JSON(http.StatusCreated, record)
}

func (h *Handler) UpdateExteriorMaintenance(c *gin.Context) {
	recordID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	record, err := h.db.GetExteriorMaintenance(c.Request.Context(), currentUserID(c), recordID)
	if err != nil {
		h.respondNotFoundOrError(c, err, "exterior maintenance")
		return
	}

	var req exteriorMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Maintenance date and description are required"})
		return
	}
	if req.Cost.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Maintenance cost cannot be negative"})
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Maintenance date must use the YYYY-MM-DD format"})
		return
	}

	record.Date = date
	record.Description = req.Description
	record.Cost = req.Cost
	if err := h.db.UpdateExteriorMaintenance(c.Request.Context(), record); err != nil {
		h.respondNotFoundOrError(c, err, "exterior maintenance")
		return
	}

	h.recordActivity(c, record.HouseID, models.ActionUpdated, "exterior_maintenance", record.ID, record.Description)
	c.JSON(http.StatusOK, record)
}

func (h *Handler) DeleteExteriorMaintenance(c *gin.Context) {
	recordID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	record, err := h.db.GetExteriorMaintenance(c.Request.Context(), currentUserID(c), recordID)
	if err != nil {
		h.respondNotFoundOrError(c, err, "exterior maintenance")
		return
	}

	if err := h.db.SoftDeleteExteriorMaintenance(c.Request.Context(), record.ID); err != nil {
		h.respondNotFoundOrError(c, err, "exterior maintenance")
		return
	}

	h.recordActivity(c, record.HouseID, models.ActionDeleted, "exterior_maintenance", record.ID, record.Description)
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
