package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"homeledger/server/internal/models"
)

const dateLayout = "2006-01-02"

type applianceRequest struct {
	Name             string          `json:"name" binding:"required"`
	Brand            string          `json:"brand"`
	ModelNumber      string          `json:"model_number"`
	RoomID           *uint           `json:"room_id"`
	PurchaseDate     string          `json:"purchase_date"`
	PurchaseCost     decimal.Decimal `json:"purchase_cost"`
	InstallationCost decimal.Decimal `json:"installation_cost"`
}

func (r *applianceRequest) validate() (purchaseDate *time.Time, msg string) {
	if r.PurchaseCost.IsNegative() {
		return nil, "Purchase cost cannot be negative"
	}
	if r.InstallationCost.IsNegative() {
		return nil, "Installation cost cannot be negative"
	}
	if r.PurchaseDate != "" {
		parsed, err := time.Parse(dateLayout, r.PurchaseDate)
		if err != nil {
			return nil, "Purchase date must use the YYYY-MM-DD format"
		}
		purchaseDate = &parsed
	}
	return purchaseDate, ""
}

// resolveRoom checks that an optional room assignment stays inside the
// appliance's house.
func (h *Handler) resolveRoom(c *gin.Context, houseID uint, roomID *uint) bool {
	if roomID == nil {
		return true
	}
	room, err := h.db.GetRoom(c.Request.Context(), currentUserID(c), *roomID)
	if err != nil {
		h.respondNotFoundOrError(c, err, "room")
		return false
	}
	if room.HouseID != houseID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Room belongs to a different house"})
		return false
	}
	return true
}

func (h *Handler) ListAppliances(c *gin.Context) {
	houseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := h.houseForUser(c, houseID); !ok {
		return
	}

	appliances, err := h.db.ListActiveAppliances(c.Request.Context(), houseID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list appliances")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list appliances"})
		return
	}
	c.JSON(http.StatusOK, appliances)
}

func (h *Handler) GetAppliance(c *gin.Context) {
	applianceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	appliance, err := h.db.GetAppliance(c.Request.Context(), currentUserID(c), applianceID)
	if err != nil {
		h.respondNotFoundOrError(c, err, "appliance")
		return
	}
	c.JSON(http.StatusOK, appliance)
}

func (h *Handler) CreateAppliance(c *gin.Context) {
	houseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := h.houseForUser(c, houseID); !ok {
		return
	}

	var req applianceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Appliance name is required"})
		return
	}
	purchaseDate, msg := req.validate()
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	if !h.resolveRoom(c, houseID, req.RoomID) {
		return
	}

	appliance := &models.Appliance{
		HouseID:          houseID,
		RoomID:           req.RoomID,
		Name:             req.Name,
		Brand:            req.Brand,
		ModelNumber:      req.ModelNumber,
		PurchaseDate:     purchaseDate,
		PurchaseCost:     req.PurchaseCost,
		InstallationCost: req.InstallationCost,
	}
	if err := h.db.CreateAppliance(c.Request.Context(), appliance); err != nil {
		h.logger.WithError(err).Error("Failed to create appliance")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create appliance"})
		return
	}

	h.recordActivity(c, houseID, models.ActionCreated, "appliance", appliance.ID, appliance.Name)
	c.JSON(http.StatusCreated, appliance)
}

func (h *Handler) UpdateAppliance(c *gin.Context) {
	applianceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	appliance, err := h.db.GetAppliance(c.Request.Context(), currentUserID(c), applianceID)
	if err != nil {
		h.respondNotFoundOrError(c, err, "appliance")
		return
	}

	var req applianceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Appliance name is required"})
		return
	}
	purchaseDate, msg := req.validate()
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	if !h.resolveRoom(c, appliance.HouseID, req.RoomID) {
		return
	}

	appliance.Name = req.Name
	appliance.Brand = req.Brand
	appliance.ModelNumber = req.ModelNumber
	appliance.RoomID = req.RoomID
	appliance.PurchaseDate = purchaseDate
	appliance.PurchaseCost = req.PurchaseCost
	appliance.InstallationCost = req.InstallationCost

	if err := h.db.UpdateAppliance(c.Request.Context(), appliance); err != nil {
		h.respondNotFoundOrError(c, err, "appliance")
		return
	}

	h.recordActivity(c, appliance.HouseID, models.ActionUpdated, "appliance", appliance.ID, appliance.Name)
	c.JSON(http.StatusOK, appliance)
}

// DeleteAppliance soft-deletes an appliance along with its repairs and
// attachments. The rows stay recoverable.
func (h *Handler) DeleteAppliance(c *gin.Context) {
	applianceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	appliance, err := h.db.GetAppliance(c.Request.Context(), currentUserID(c), applianceID)
	if err != nil {
		h.respondNotFoundOrError(c, err, "appliance")
		return
	}

	if err := h.db.SoftDeleteAppliance(c.Request.Context(), appliance.ID); err != nil {
		h.respondNotFoundOrError(c, err, "appliance")
		return
	}

	h.recordActivity(c, appliance.HouseID, models.ActionDeleted, "appliance", appliance.ID, appliance.Name)
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// PermanentDeleteAppliance removes an appliance and its dependents for
// good. The client is expected to confirm with the user first.
func (h *Handler) PermanentDeleteAppliance(c *gin.Context) {
	applianceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	appliance, err := h.db.GetAppliance(c.Request.Context(), currentUserID(c), applianceID)
	if err != nil {
		h.respondNotFoundOrError(c, err, "appliance")
		return
	}

	if err := h.db.PermanentDeleteAppliance(c.Request.Context(), appliance.ID); err != nil {
		h.respondNotFoundOrError(c, err, "appliance")
		return
	}

	h.recordActivity(c, appliance.HouseID, models.ActionPermanentDelete, "appliance", appliance.ID, appliance.Name)
	c.JSON(http.StatusOK, gin.H{"status": "permanently deleted"})
}
