package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homeledger/server/internal/attachments"
	"homeledger/server/internal/models"
)

type attachmentRequest struct {
	FileName    string `json:"file_name" binding:"required"`
	FileURL     string `json:"file_url" binding:"required"`
	Description string `json:"description"`
}

func (h *Handler) ListAttachments(c *gin.Context) {
	applianceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	appliance, err := h.db.GetAppliance(c.Request.Context(), currentUserID(c), applianceID)
	if err != nil {
		h.respondNotFoundOrError(c, err, "appliance")
		return
	}

	list, err := h.db.ListAttachments(c.Request.Context(), appliance.ID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list attachments")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list attachments"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// CreateAttachment stores a manual or receipt as a data URI, enforcing
// the per-appliance count and file size caps.
func (h *Handler) CreateAttachment(c *gin.Context) {
	applianceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	appliance, err := h.db.GetAppliance(c.Request.Context(), currentUserID(c), applianceID)
	if err != nil {
		h.respondNotFoundOrError(c, err, "appliance")
		return
	}

	var req attachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File name and file contents are required"})
		return
	}

	count, err := h.db.CountAttachments(c.Request.Context(), appliance.ID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to count attachments")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create attachment"})
		return
	}

	limits := attachments.Limits{
		MaxPerAppliance: h.cfg.Attachments.MaxPerAppliance,
		MaxFileSize:     h.cfg.Attachments.MaxFileSize,
	}
	mime, size, err := attachments.Validate(req.FileURL, count, limits)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	attachment := &models.Attachment{
		ApplianceID: appliance.ID,
		FileName:    req.FileName,
		FileURL:     req.FileURL,
		FileType:    mime,
		FileSize:    size,
		Description: req.Description,
	}
	if err := h.db.CreateAttachment(c.Request.Context(), attachment); err != nil {
		h.logger.WithError(err).Error("Failed to create attachment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create attachment"})
		return
	}

	h.recordActivity(c, appliance.HouseID, models.ActionCreated, "attachment", attachment.ID, req.FileName)
	c.JSON(http.StatusCreated, attachment)
}

func (h *Handler) DeleteAttachment(c *gin.Context) {
	attachmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	attachment, err := h.db.GetAttachment(c.Request.Context(), currentUserID(c), attachmentID)
	if err != nil {
		h.respondNotFoundOrError(c, err, "attachment")
		return
	}

	if err := h.db.SoftDeleteAttachment(c.Request.Context(), attachment.ID); err != nil {
		h.respondNotFoundOrError(c, err, "attachment")
		return
	}

	appliance, err := h.db.GetAppliance(c.Request.Context(), currentUserID(c), attachment.ApplianceID)
	if err == nil {
		h.recordActivity(c, appliance.HouseID, models.ActionDeleted, "attachment", attachment.ID, attachment.FileName)
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
