package database

import (
	"context"
	"fmt"

	"homeledger/server/internal/models"
)

func (d *Database) CreateRepair(ctx context.Context, repair *models.Repair) error {
	if err := d.db.WithContext(ctx).Create(repair).Error; err != nil {
		return fmt.Errorf("create repair: %w", err)
	}
	return nil
}

func (d *Database) ListRepairs(ctx context.Context, applianceID uint) ([]models.Repair, error) {
	var repairs []models.Repair
	err := d.db.WithContext(ctx).
		Where("appliance_id = ?", applianceID).
		Order("date DESC").
		Find(&repairs).Error
	if err != nil {
		return nil, fmt.Errorf("list repairs: %w", err)
	}
	return repairs, nil
}

// ListRepairsForAppliances implements costs.Reader.
func (d *Database) ListRepairsForAppliances(ctx context.Context, applianceIDs []uint) ([]models.Repair, error) {
	if len(applianceIDs) == 0 {
		return nil, nil
	}

	var repairs []models.Repair
	err := d.db.WithContext(ctx).
		Where("appliance_id IN ?", applianceIDs).
		Find(&repairs).Error
	if err != nil {
		return nil, fmt.Errorf("list repairs for appliances: %w", err)
	}
	return repairs, nil
}

func (d *Database) GetRepair(ctx context.Context, userID, id uint) (*models.Repair, error) {
	var repair models.Repair
	err := d.db.WithContext(ctx).
		Joins("JOIN appliances ON appliances.id = repairs.appliance_id").
		Joins("JOIN houses ON houses.id = appliances.house_id").
		Where("repairs.id = ? AND houses.user_id = ?", id, userID).
		Where("appliances.deleted_at IS NULL AND houses.deleted_at IS NULL").
		First(&repair).Error
	if err != nil {
		return nil, asNotFound(err)
	}
	return &repair, nil
}

func (d *Database) UpdateRepair(ctx context.Context, repair *models.Repair) error {
	result := d.db.WithContext(ctx).Model(&models.Repair{}).
		Where("id = ?", repair.ID).
		Select("Date", "Description", "Cost").
		Updates(repair)
	if result.Error != nil {
		return fmt.Errorf("update repair: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *Database) SoftDeleteRepair(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&models.Repair{}, id)
	if result.Error != nil {
		return fmt.Errorf("soft delete repair: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
