package database

import (
	"context"
	"fmt"

	"homeledger/server/internal/models"
)

func (d *Database) CreateExteriorFeature(ctx context.Context, feature *models.ExteriorFeature) error {
	if err := d.db.WithContext(ctx).Create(feature).Error; err != nil {
		return fmt.Errorf("create exterior feature: %w", err)
	}
	return nil
}

// ListActiveExteriorFeatures implements costs.Reader.
func (d *Database) ListActiveExteriorFeatures(ctx context.Context, houseID uint) ([]models.ExteriorFeature, error) {
	var features []models.ExteriorFeature
	err := d.db.WithContext(ctx).
		Where("house_id = ?", houseID).
		Order("created_at").
		Find(&features).Error
	if err != nil {
		return nil, fmt.Errorf("list exterior features: %w", err)
	}
	return features, nil
}

func (d *Database) GetExteriorFeature(ctx context.Context, userID, id uint) (*models.ExteriorFeature, error) {
	var feature models.ExteriorFeature
	err := d.db.WithContext(ctx).
		Joins("JOIN houses ON houses.id = exterior_features.house_id").
		Where("exterior_features.id = ? AND houses.user_id = ? AND houses.deleted_at IS NULL", id, userID).
		First(&feature).Error
	if err != nil {
		return nil, asNotFound(err)
	}
	return &feature, nil
}

func (d *Database) UpdateExteriorFeature(ctx context.Context, feature *models.ExteriorFeature) error {
	result := d.db.WithContext(ctx).Model(&models.ExteriorFeature{}).
		Where("id = ?", feature.ID).
		Select("Name", "BuildYear", "BuildCost").
		Updates(feature)
	if result.Error != nil {
		return fmt.Errorf("update exterior feature: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *Database) SoftDeleteExteriorFeature(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&models.ExteriorFeature{}, id)
	if result.Error != nil {
		return fmt.Errorf("soft delete exterior feature: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *Database) CreateExteriorMaintenance(ctx context.Context, record *models.ExteriorMaintenance) error {
	if err := d.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("create exterior maintenance: %w", err)
	}
	return nil
}

// ListActiveExteriorMaintenance implements costs.Reader.
func (d *Database) ListActiveExteriorMaintenance(ctx context.Context, houseID uint) ([]models.ExteriorMaintenance, error) {
	var records []models.ExteriorMaintenance
	err := d.db.WithContext(ctx).
		Where("house_id = ?", houseID).
		Order("date DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list exterior maintenance: %w", err)
	}
	return records, nil
}

func (d *Database) GetExteriorMaintenance(ctx context.Context, userID, id uint) (*models.ExteriorMaintenance, error) {
	var record models.ExteriorMaintenance
	err := d.db.WithContext(ctx).
		Joins("JOIN houses ON houses.id = exterior_maintenances.house_id").
		Where("exterior_maintenances.id = ? AND houses.user_id = ? AND houses.deleted_at IS NULL", id, userID).
		First(&record).Error
	if err != nil {
		return nil, asNotFound(err)
	}
	return &record, nil
}

func (d *Database) UpdateExteriorMaintenance(ctx context.Context, record *models.ExteriorMaintenance) error {
	result := d.db.WithContext(ctx).Model(&models.ExteriorMaintenance{}).
		Where("id = ?", record.ID).
		Select("Date", "Description", "Cost").
		Updates(record)
	if result.Error != nil {
		return fmt.Errorf("update exterior maintenance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *Database) SoftDeleteExteriorMaintenance(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&models.ExteriorMaintenance{}, id)
	if result.Error != nil {
		return fmt.Errorf("soft delete exterior maintenance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
