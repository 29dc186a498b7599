package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"homeledger/server/config"
	"homeledger/server/internal/geo"
	"homeledger/server/internal/models"
)

type houseRequest struct {
	Nickname      string           `json:"nickname" binding:"required"`
	Street        string           `json:"street"`
	City          string           `json:"city"`
	PostalCode    string           `json:"postal_code"`
	Country       string           `json:"country"`
	PurchaseYear  *int             `json:"purchase_year"`
	PurchasePrice decimal.Decimal  `json:"purchase_price"`
	SaleYear      *int             `json:"sale_year"`
	SalePrice     *decimal.Decimal `json:"sale_price"`
	SquareFootage *int             `json:"square_footage"`
}

func (r *houseRequest) validate() string {
	if r.PurchasePrice.IsNegative() {
		return "Purchase price cannot be negative"
	}
	if r.SalePrice != nil && r.SalePrice.IsNegative() {
		return "Sale price cannot be negative"
	}
	if r.SquareFootage != nil && *r.SquareFootage < 0 {
		return "Square footage cannot be negative"
	}
	if (r.SaleYear == nil) != (r.SalePrice == nil) {
		return "Sale year and sale price must be provided together"
	}
	return ""
}

func (r *houseRequest) apply(house *models.House) {
	house.Nickname = r.Nickname
	house.Street = r.Street
	house.City = r.City
	house.PostalCode = r.PostalCode
	house.Country = r.Country
	if house.Country == "" {
		house.Country = config.CountryOther
	}
	house.PurchaseYear = r.PurchaseYear
	house.PurchasePrice = r.PurchasePrice
	house.SaleYear = r.SaleYear
	house.SalePrice = r.SalePrice
	house.SquareFootage = r.SquareFootage
}

func (h *Handler) ListHouses(c *gin.Context) {
	houses, err := h.db.ListHouses(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.logger.WithError(err).Error("Failed to list houses")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list houses"})
		return
	}
	c.JSON(http.StatusOK, houses)
}

func (h *Handler) GetHouse(c *gin.Context) {
	houseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	house, ok := h.houseForUser(c, houseID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, house)
}

func (h *Handler) CreateHouse(c *gin.Context) {
	var req houseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nickname is required"})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	house := &models.House{UserID: currentUserID(c)}
	req.apply(house)

	if err := h.db.CreateHouse(c.Request.Context(), house); err != nil {
		h.logger.WithError(err).Error("Failed to create house")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create house"})
		return
	}

	h.recordActivity(c, house.ID, models.ActionCreated, "house", house.ID, house.Nickname)
	h.geocodeAsync(house)
	c.JSON(http.StatusCreated, house)
}

func (h *Handler) UpdateHouse(c *gin.Context) {
	houseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	house, ok := h.houseForUser(c, houseID)
	if !ok {
		return
	}

	var req houseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nickname is required"})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	addressChanged := house.Street != req.Street || house.City != req.City ||
		house.PostalCode != req.PostalCode || house.Country != req.Country
	req.apply(house)
	if addressChanged {
		house.Latitude = nil
		house.Longitude = nil
	}

	if err := h.db.UpdateHouse(c.Request.Context(), house); err != nil {
		h.respondNotFoundOrError(c, err, "house")
		return
	}

	h.recordActivity(c, house.ID, models.ActionUpdated, "house", house.ID, house.Nickname)
	if addressChanged {
		h.geocodeAsync(house)
	}
	c.JSON(http.StatusOK, house)
}

func (h *Handler) DeleteHouse(c *gin.Context) {
	houseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	house, ok := h.houseForUser(c, houseID)
	if !ok {
		return
	}

	if err := h.db.SoftDeleteHouse(c.Request.Context(), currentUserID(c), houseID); err != nil {
		h.respondNotFoundOrError(c, err, "house")
		return
	}

	h.recordActivity(c, houseID, models.ActionDeleted, "house", houseID, house.Nickname)
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// GetHousesMap returns the user's geocoded houses as GeoJSON.
func (h *Handler) GetHousesMap(c *gin.Context) {
	houses, err := h.db.ListHousesWithCoordinates(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.logger.WithError(err).Error("Failed to list houses for map")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list houses"})
		return
	}
	c.JSON(http.StatusOK, geo.HouseFeatureCollection(houses))
}

// geocodeAsync resolves a house address in the background. Lookups hit a
// rate-limited external service, so they never block the request.
func (h *Handler) geocodeAsync(house *models.House) {
	if h.geocoder == nil || !house.HasAddress() {
		return
	}

	id := house.ID
	street, postalCode, city, country := house.Street, house.PostalCode, house.City, house.Country
	go func() {
		lat, lon, err := h.geocoder.GeocodeAddress(street, postalCode, city, country)
		if err != nil {
			h.logger.WithError(err).WithField("house_id", id).Warn("Failed to geocode house")
			return
		}
		if err := h.db.UpdateHouseCoordinates(context.Background(), id, lat, lon); err != nil {
			h.logger.WithError(err).WithField("house_id", id).Warn("Failed to store house coordinates")
			return
		}
		h.logger.WithFields(logrus.Fields{"house_id": id, "lat": lat, "lon": lon}).Info("Geocoded house")
	}()
}
