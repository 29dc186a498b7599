package api

import (
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"homeledger/server/config"
	"homeledger/server/internal/auth"
	"homeledger/server/internal/costs"
	"homeledger/server/internal/database"
	"homeledger/server/internal/geocoding"
	"homeledger/server/internal/models"
	"homeledger/server/internal/queue"
)

type Handler struct {
	db            *database.Database
	cfg           *config.Config
	logger        *logrus.Logger
	tokens        *auth.TokenService
	aggregator    *costs.Aggregator
	geocoder      *geocoding.Geocoder
	activityQueue *queue.ActivityQueue
}

// NewHandler wires the API handler. Geocoder and activity queue are
// optional; a nil geocoder disables coordinate lookups and a nil queue
// disables the activity feed.
func NewHandler(db *database.Database, cfg *config.Config, logger *logrus.Logger,
	geocoder *geocoding.Geocoder, activityQueue *queue.ActivityQueue) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		db:            db,
		cfg:           cfg,
		logger:        logger,
		tokens:        auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLHours),
		aggregator:    costs.NewAggregator(db, logger),
		geocoder:      geocoder,
		activityQueue: activityQueue,
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetMeta returns the static selector vocabularies the client renders.
func (h *Handler) GetMeta(c *gin.Context) {
	kinds := make([]string, len(models.KnownRoomKinds))
	for i, kind := range models.KnownRoomKinds {
		kinds[i] = string(kind)
	}

	c.JSON(http.StatusOK, gin.H{
		"countries":  config.GetCountryNames(),
		"room_kinds": kinds,
	})
}

// parseIDParam reads a numeric path parameter, answering 400 itself when
// the value is not a valid ID.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " parameter"})
		return 0, false
	}
	return uint(id), true
}

// houseForUser loads a house owned by the requesting user, answering 404
// or 500 itself on failure. Ownership misses read as not found.
func (h *Handler) houseForUser(c *gin.Context, houseID uint) (*models.House, bool) {
	house, err := h.db.GetHouse(c.Request.Context(), currentUserID(c), houseID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "House not found"})
		} else {
			h.logger.WithError(err).Error("Failed to get house")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get house"})
		}
		return nil, false
	}
	return house, true
}

// respondNotFoundOrError maps a data-access error to 404 or 500.
func (h *Handler) respondNotFoundOrError(c *gin.Context, err error, what string) {
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
		return
	}
	h.logger.WithError(err).Errorf("Failed to access %s", what)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to access " + what})
}

// recordActivity queues a feed entry. The feed is best-effort: a full or
// closed queue only logs a warning.
func (h *Handler) recordActivity(c *gin.Context, houseID uint, action, entityType string, entityID uint, detail string) {
	if h.activityQueue == nil {
		return
	}

	entry := &models.Activity{
		UserID:     currentUserID(c),
		HouseID:    houseID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     detail,
	}
	if err := h.activityQueue.Push([]*models.Activity{entry}); err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"action": action,
			"entity": entityType,
		}).Warn("Dropped activity entry")
	}
}

// GetActivity returns the recent activity feed for a house.
func (h *Handler) GetActivity(c *gin.Context) {
	houseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := h.houseForUser(c, houseID); !ok {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}

	activities, err := h.db.ListActivities(c.Request.Context(), currentUserID(c), houseID, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list activities")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list activities"})
		return
	}

	c.JSON(http.StatusOK, activities)
}
