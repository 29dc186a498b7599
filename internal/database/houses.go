package database

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"homeledger/server/internal/models"
)

func (d *Database) CreateHouse(ctx context.Context, house *models.House) error {
	if err := d.db.WithContext(ctx).Create(house).Error; err != nil {
		return fmt.Errorf("create house: %w", err)
	}
	return nil
}

func (d *Database) ListHouses(ctx context.Context, userID uint) ([]models.House, error) {
	var houses []models.House
	err := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&houses).Error
	if err != nil {
		return nil, fmt.Errorf("list houses: %w", err)
	}
	return houses, nil
}

func (d *Database) GetHouse(ctx context.Context, userID, id uint) (*models.House, error) {
	var house models.House
	err := d.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&house).Error
	if err != nil {
		return nil, asNotFound(err)
	}
	return &house, nil
}

func (d *Database) UpdateHouse(ctx context.Context, house *models.House) error {
	result := d.db.WithContext(ctx).Model(&models.House{}).
		Where("id = ? AND user_id = ?", house.ID, house.UserID).
		Select("Nickname", "Street", "City", "PostalCode", "Country",
			"PurchaseYear", "PurchasePrice", "SaleYear", "SalePrice",
			"SquareFootage", "Latitude", "Longitude").
		Updates(house)
	if result.Error != nil {
		return fmt.Errorf("update house: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDeleteHouse marks a house and all of its dependent rows as deleted
// in one transaction. Nothing is removed; a later restore only has to
// clear the markers.
func (d *Database) SoftDeleteHouse(ctx context.Context, userID, id uint) error {
	house, err := d.GetHouse(ctx, userID, id)
	if err != nil {
		return err
	}

	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var applianceIDs []uint
		if err := tx.Model(&models.Appliance{}).
			Where("house_id = ?", house.ID).
			Pluck("id", &applianceIDs).Error; err != nil {
			return fmt.Errorf("collect appliance ids: %w", err)
		}

		if len(applianceIDs) > 0 {
			if err := tx.Where("appliance_id IN ?", applianceIDs).Delete(&models.Repair{}).Error; err != nil {
				return fmt.Errorf("soft delete repairs: %w", err)
			}
			if err := tx.Where("appliance_id IN ?", applianceIDs).Delete(&models.Attachment{}).Error; err != nil {
				return fmt.Errorf("soft delete attachments: %w", err)
			}
		}

		for _, model := range []interface{}{
			&models.Appliance{}, &models.Room{},
			&models.ExteriorFeature{}, &models.ExteriorMaintenance{},
		} {
			if err := tx.Where("house_id = ?", house.ID).Delete(model).Error; err != nil {
				return fmt.Errorf("soft delete house children: %w", err)
			}
		}

		if err := tx.Delete(&models.House{}, house.ID).Error; err != nil {
			return fmt.Errorf("soft delete house: %w", err)
		}
		return nil
	})
}

// HousePurchasePrice implements costs.Reader. A missing price column
// value scans as the zero decimal, which is what aggregation expects.
func (d *Database) HousePurchasePrice(ctx context.Context, houseID uint) (decimal.Decimal, error) {
	var house models.House
	err := d.db.WithContext(ctx).
		Select("purchase_price").
		Where("id = ?", houseID).
		First(&house).Error
	if err != nil {
		return decimal.Zero, asNotFound(err)
	}
	return house.PurchasePrice, nil
}

// ListHousesWithCoordinates returns the user's geocoded houses for the
// map view.
func (d *Database) ListHousesWithCoordinates(ctx context.Context, userID uint) ([]models.House, error) {
	var houses []models.House
	err := d.db.WithContext(ctx).
		Where("user_id = ? AND latitude IS NOT NULL AND longitude IS NOT NULL", userID).
		Find(&houses).Error
	if err != nil {
		return nil, fmt.Errorf("list houses with coordinates: %w", err)
	}
	return houses, nil
}

// UpdateHouseCoordinates stores a geocoding result.
func (d *Database) UpdateHouseCoordinates(ctx context.Context, id uint, lat, lon float64) error {
	result := d.db.WithContext(ctx).Model(&models.House{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"latitude": lat, "longitude": lon})
	if result.Error != nil {
		return fmt.Errorf("update house coordinates: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListHousesMissingCoordinates returns addressed houses that have not
// been geocoded yet, across all users. Used by the startup sweep.
func (d *Database) ListHousesMissingCoordinates(ctx context.Context) ([]models.House, error) {
	var houses []models.House
	err := d.db.WithContext(ctx).
		Where("street != '' AND city != '' AND (latitude IS NULL OR longitude IS NULL)").
		Find(&houses).Error
	if err != nil {
		return nil, fmt.Errorf("list houses missing coordinates: %w", err)
	}
	return houses, nil
}

// ListMaintenanceStaleHouses returns houses that have at least one active
// exterior feature and no exterior maintenance recorded since the cutoff.
// Used by the reminder scheduler, so it spans all users.
func (d *Database) ListMaintenanceStaleHouses(ctx context.Context, cutoff time.Time) ([]models.House, error) {
	var houses []models.House
	err := d.db.WithContext(ctx).
		Where("id IN (?)",
			d.db.Model(&models.ExteriorFeature{}).Select("house_id")).
		Where("id NOT IN (?)",
			d.db.Model(&models.ExteriorMaintenance{}).Select("house_id").Where("date >= ?", cutoff)).
		Find(&houses).Error
	if err != nil {
		return nil, fmt.Errorf("list maintenance-stale houses: %w", err)
	}
	return houses, nil
}
