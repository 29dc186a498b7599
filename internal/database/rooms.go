package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"homeledger/server/internal/models"
)

func (d *Database) CreateRoom(ctx context.Context, room *models.Room) error {
	if err := d.db.WithContext(ctx).Create(room).Error; err != nil {
		return fmt.Errorf("create room: %w", err)
	}
	return nil
}

func (d *Database) ListRooms(ctx context.Context, houseID uint) ([]models.Room, error) {
	var rooms []models.Room
	err := d.db.WithContext(ctx).
		Where("house_id = ?", houseID).
		Order("created_at").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

// GetRoom resolves ownership through the parent house: a room in another
// user's house reads as not found.
func (d *Database) GetRoom(ctx context.Context, userID, id uint) (*models.Room, error) {
	var room models.Room
	err := d.db.WithContext(ctx).
		Joins("JOIN houses ON houses.id = rooms.house_id").
		Where("rooms.id = ? AND houses.user_id = ? AND houses.deleted_at IS NULL", id, userID).
		First(&room).Error
	if err != nil {
		return nil, asNotFound(err)
	}
	return &room, nil
}

func (d *Database) UpdateRoom(ctx context.Context, room *models.Room) error {
	result := d.db.WithContext(ctx).Model(&models.Room{}).
		Where("id = ?", room.ID).
		Select("Kind", "KindOther").
		Updates(room)
	if result.Error != nil {
		return fmt.Errorf("update room: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *Database) SoftDeleteRoom(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&models.Room{}, id)
	if result.Error != nil {
		return fmt.Errorf("soft delete room: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// PermanentDeleteRoom removes the row for good. Appliances that sat in
// the room survive with their room reference cleared.
func (d *Database) PermanentDeleteRoom(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Appliance{}).
			Where("room_id = ?", id).
			Update("room_id", nil).Error; err != nil {
			return fmt.Errorf("detach appliances: %w", err)
		}

		result := tx.Unscoped().Delete(&models.Room{}, id)
		if result.Error != nil {
			return fmt.Errorf("permanently delete room: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
