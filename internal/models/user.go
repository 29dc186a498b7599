package models

import "gorm.io/gorm"

// User is an account that owns houses. Every data-access method is scoped
// to a user ID; a user can never read or mutate another user's rows.
type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	DisplayName  string `json:"display_name"`
}
