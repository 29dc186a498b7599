package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"homeledger/server/internal/models"
)

// InsertActivities writes a batch of activity entries inside an existing
// transaction. The batch processor owns the transaction and retry logic.
func InsertActivities(tx *gorm.DB, batch []*models.Activity) error {
	if len(batch) == 0 {
		return nil
	}
	if err := tx.Create(batch).Error; err != nil {
		return fmt.Errorf("insert activities: %w", err)
	}
	return nil
}

// ListActivities returns the most recent feed entries for a house the
// user owns, newest first.
func (d *Database) ListActivities(ctx context.Context, userID, houseID uint, limit int) ([]models.Activity, error) {
	if limit <= 0 {
		limit = 20
	}

	var activities []models.Activity
	err := d.db.WithContext(ctx).
		Where("user_id = ? AND house_id = ?", userID, houseID).
		Order("created_at DESC").
		Limit(limit).
		Find(&activities).Error
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}
