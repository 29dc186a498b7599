package models

import "gorm.io/gorm"

// Activity actions.
const (
	ActionCreated         = "created"
	ActionUpdated         = "updated"
	ActionDeleted         = "deleted"
	ActionPermanentDelete = "permanently deleted"
	ActionReminder        = "reminder"
)

// Activity is one entry in a house's activity feed. Entries are written
// through the in-memory batch queue, so the feed is best-effort: a
// dropped entry never fails the mutation it describes.
type Activity struct {
	gorm.Model
	UserID     uint   `gorm:"index;not null" json:"user_id"`
	HouseID    uint   `gorm:"index;not null" json:"house_id"`
	Action     string `gorm:"not null" json:"action"`
	EntityType string `gorm:"not null" json:"entity_type"`
	EntityID   uint   `json:"entity_id"`
	Detail     string `json:"detail"`
}
