package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Appliance is an interior appliance tracked for a house. Missing cost
// fields default to zero so aggregation never sums a null.
type Appliance struct {
	gorm.Model
	HouseID          uint            `gorm:"index;not null" json:"house_id"`
	RoomID           *uint           `gorm:"index" json:"room_id"`
	Name             string          `gorm:"not null" json:"name"`
	Brand            string          `json:"brand"`
	ModelNumber      string          `json:"model_number"`
	PurchaseDate     *time.Time      `json:"purchase_date"`
	PurchaseCost     decimal.Decimal `gorm:"type:numeric;default:0" json:"purchase_cost"`
	InstallationCost decimal.Decimal `gorm:"type:numeric;default:0" json:"installation_cost"`
}

// Repair is one repair event on an appliance.
type Repair struct {
	gorm.Model
	ApplianceID uint            `gorm:"index;not null" json:"appliance_id"`
	Date        time.Time       `gorm:"not null" json:"date"`
	Description string          `gorm:"not null" json:"description"`
	Cost        decimal.Decimal `gorm:"type:numeric;default:0" json:"cost"`
}

// Attachment is a file stored inline as a data URI on an appliance
// (manuals, receipts, photos). FileSize is the decoded payload size in
// bytes and is validated against the configured cap before insert.
type Attachment struct {
	gorm.Model
	ApplianceID uint   `gorm:"index;not null" json:"appliance_id"`
	FileName    string `gorm:"not null" json:"file_name"`
	FileURL     string `gorm:"not null" json:"file_url"`
	FileType    string `json:"file_type"`
	FileSize    int64  `json:"file_size"`
	Description string `json:"description,omitempty"`
}
