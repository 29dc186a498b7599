package database

import (
	"context"
	"fmt"

	"homeledger/server/internal/models"
)

func (d *Database) CreateUser(ctx context.Context, user *models.User) error {
	if err := d.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (d *Database) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := d.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, asNotFound(err)
	}
	return &user, nil
}

func (d *Database) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := d.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, asNotFound(err)
	}
	return &user, nil
}

// UpdateDisplayName changes the profile name of an account.
func (d *Database) UpdateDisplayName(ctx context.Context, userID uint, displayName string) error {
	result := d.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("display_name", displayName)
	if result.Error != nil {
		return fmt.Errorf("update display name: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdatePasswordHash replaces the stored bcrypt hash for an account.
func (d *Database) UpdatePasswordHash(ctx context.Context, userID uint, hash string) error {
	result := d.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("password_hash", hash)
	if result.Error != nil {
		return fmt.Errorf("update password hash: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
