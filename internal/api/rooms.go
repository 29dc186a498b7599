package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"homeledger/server/internal/labels"
	"homeledger/server/internal/models"
)

type roomRequest struct {
	Kind      string `json:"kind" binding:"required"`
	KindOther string `json:"kind_other"`
}

func (r *roomRequest) validate() string {
	kind := models.RoomKind(r.Kind)
	if !kind.Valid() {
		return "Unknown room kind"
	}
	if kind == models.RoomKindOther && r.KindOther == "" {
		return "A custom label is required for the other room kind"
	}
	if kind != models.RoomKindOther && r.KindOther != "" {
		return "A custom label is only allowed for the other room kind"
	}
	return ""
}

// ListRooms returns a house's rooms together with grouped, pluralized
// display labels like "2 Bedrooms" or "1 Kitchen".
func (h *Handler) ListRooms(c *gin.Context) {
	houseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := h.houseForUser(c, houseID); !ok {
		return
	}

	rooms, err := h.db.ListRooms(c.Request.Context(), houseID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list rooms")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rooms"})
		return
	}

	counts := make(map[string]int)
	order := make([]string, 0, len(rooms))
	for _, room := range rooms {
		label := room.Label()
		if counts[label] == 0 {
			order = append(order, label)
		}
		counts[label]++
	}

	grouped := make([]string, len(order))
	for i, label := range order {
		grouped[i] = fmt.Sprintf("%d %s", counts[label], labels.Pluralize(label, counts[label]))
	}

	c.JSON(http.StatusOK, gin.H{"rooms": rooms, "labels": grouped})
}

func (h *Handler) CreateRoom(c *gin.Context) {
	houseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := h.houseForUser(c, houseID); !ok {
		return
	}

	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Room kind is required"})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	room := &models.Room{HouseID: houseID, Kind: models.RoomKind(req.Kind), KindOther: req.KindOther}
	if err := h.db.CreateRoom(c.Request.Context(), room); err != nil {
		h.logger.WithError(err).Error("Failed to create room")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create room"})
		return
	}

	h.recordActivity(c, houseID, models.ActionCreated, "room", room.ID, room.Label())
	c.JSON(http.StatusCreated, room)
}

func (h *Handler) UpdateRoom(c *gin.Context) {
	roomID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	room, err := h.db.GetRoom(c.Request.Context(), currentUserID(c), roomID)
	if err != nil {
		h.respondNotFoundOrError(c, err, "room")
		return
	}

	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Room kind is required"})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	room.Kind = models.RoomKind(req.Kind)
	room.KindOther = req.KindOther
	if err := h.db.UpdateRoom(c.Request.Context(), room); err != nil {
		h.respondNotFoundOrError(c, err, "room")
		return
	}

	h.recordActivity(c, room.HouseID, models.ActionUpdated, "room", room.ID, room.Label())
	c.JSON(http.StatusOK, room)
}

func (h *Handler) DeleteRoom(c *gin.Context) {
	roomID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	room, err := h.db.GetRoom(c.Request.Context(), currentUserID(c), roomID)
	if err != nil {
		h.respondNotFoundOrError(c, err, "room")
		return
	}

	if err := h.db.SoftDeleteRoom(c.Request.Context(), room.ID); err != nil {
		h.respondNotFoundOrError(c, err, "room")
		return
	}

	h.recordActivity(c, room.HouseID, models.ActionDeleted, "room", room.ID, room.Label())
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// PermanentDeleteRoom removes a room outright. Appliances assigned to it
// survive and are detached back to the house level.
func (h *Handler) PermanentDeleteRoom(c *gin.Context) {
	roomID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	room, err := h.db.GetRoom(c.Request.Context(), currentUserID(c), roomID)
	if err != nil {
		h.respondNotFoundOrError(c, err, "room")
		return
	}

	if err := h.db.PermanentDeleteRoom(c.Request.Context(), room.ID); err != nil {
		h.respondNotFoundOrError(c, err, "room")
		return
	}

	h.recordActivity(c, room.HouseID, models.ActionPermanentDelete, "room", room.ID, room.Label())
	c.JSON(http.StatusOK, gin.H{"status": "permanently deleted"})
}
