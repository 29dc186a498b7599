package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"homeledger/server/internal/models"
)

func (d *Database) CreateAppliance(ctx context.Context, appliance *models.Appliance) error {
	if err := d.db.WithContext(ctx).Create(appliance).Error; err != nil {
		return fmt.Errorf("create appliance: %w", err)
	}
	return nil
}

// ListActiveAppliances implements costs.Reader.
func (d *Database) ListActiveAppliances(ctx context.Context, houseID uint) ([]models.Appliance, error) {
	var appliances []models.Appliance
	err := d.db.WithContext(ctx).
		Where("house_id = ?", houseID).
		Order("created_at").
		Find(&appliances).Error
	if err != nil {
		return nil, fmt.Errorf("list appliances: %w", err)
	}
	return appliances, nil
}

func (d *Database) GetAppliance(ctx context.Context, userID, id uint) (*models.Appliance, error) {
	var appliance models.Appliance
	err := d.db.WithContext(ctx).
		Joins("JOIN houses ON houses.id = appliances.house_id").
		Where("appliances.id = ? AND houses.user_id = ? AND houses.deleted_at IS NULL", id, userID).
		First(&appliance).Error
	if err != nil {
		return nil, asNotFound(err)
	}
	return &appliance, nil
}

func (d *Database) UpdateAppliance(ctx context.Context, appliance *models.Appliance) error {
	result := d.db.WithContext(ctx).Model(&models.Appliance{}).
		Where("id = ?", appliance.ID).
		Select("RoomID", "Name", "Brand", "ModelNumber", "PurchaseDate",
			"PurchaseCost", "InstallationCost").
		Updates(appliance)
	if result.Error != nil {
		return fmt.Errorf("update appliance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDeleteAppliance marks the appliance and its repairs and
// attachments as deleted in one transaction.
func (d *Database) SoftDeleteAppliance(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("appliance_id = ?", id).Delete(&models.Repair{}).Error; err != nil {
			return fmt.Errorf("soft delete repairs: %w", err)
		}
		if err := tx.Where("appliance_id = ?", id).Delete(&models.Attachment{}).Error; err != nil {
			return fmt.Errorf("soft delete attachments: %w", err)
		}

		result := tx.Delete(&models.Appliance{}, id)
		if result.Error != nil {
			return fmt.Errorf("soft delete appliance: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// PermanentDeleteAppliance removes the appliance and every dependent row
// for good, including soft-deleted ones.
func (d *Database) PermanentDeleteAppliance(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("appliance_id = ?", id).Delete(&models.Repair{}).Error; err != nil {
			return fmt.Errorf("delete repairs: %w", err)
		}
		if err := tx.Unscoped().Where("appliance_id = ?", id).Delete(&models.Attachment{}).Error; err != nil {
			return fmt.Errorf("delete attachments: %w", err)
		}

		result := tx.Unscoped().Delete(&models.Appliance{}, id)
		if result.Error != nil {
			return fmt.Errorf("permanently delete appliance: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (d *Database) CreateAttachment(ctx context.Context, attachment *models.Attachment) error {
	if err := d.db.WithContext(ctx).Create(attachment).Error; err != nil {
		return fmt.Errorf("create attachment: %w", err)
	}
	return nil
}

func (d *Database) ListAttachments(ctx context.Context, applianceID uint) ([]models.Attachment, error) {
	var attachments []models.Attachment
	err := d.db.WithContext(ctx).
		Where("appliance_id = ?", applianceID).
		Order("created_at").
		Find(&attachments).Error
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	return attachments, nil
}

func (d *Database) CountAttachments(ctx context.Context, applianceID uint) (int, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&models.Attachment{}).
		Where("appliance_id = ?", applianceID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count attachments: %w", err)
	}
	return int(count), nil
}

func (d *Database) GetAttachment(ctx context.Context, userID, id uint) (*models.Attachment, error) {
	var attachment models.Attachment
	err := d.db.WithContext(ctx).
		Joins("JOIN appliances ON appliances.id = attachments.appliance_id").
		Joins("JOIN houses ON houses.id = appliances.house_id").
		Where("attachments.id = ? AND houses.user_id = ?", id, userID).
		Where("appliances.deleted_at IS NULL AND houses.deleted_at IS NULL").
		First(&attachment).Error
	if err != nil {
		return nil, asNotFound(err)
	}
	return &attachment, nil
}

func (d *Database) SoftDeleteAttachment(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&models.Attachment{}, id)
	if result.Error != nil {
		return fmt.Errorf("soft delete attachment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
