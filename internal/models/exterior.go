package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ExteriorFeature is a built exterior element of a house (deck, fence,
// shed, ...) with its one-time build cost.
type ExteriorFeature struct {
	gorm.Model
	HouseID   uint            `gorm:"index;not null" json:"house_id"`
	Name      string          `gorm:"not null" json:"name"`
	BuildYear *int            `json:"build_year"`
	BuildCost decimal.Decimal `gorm:"type:numeric;default:0" json:"build_cost"`
}

// ExteriorMaintenance is one maintenance event on the exterior of a house
// (gutter cleaning, repainting, ...).
type ExteriorMaintenance struct {
	gorm.Model
	HouseID     uint            `gorm:"index;not null" json:"house_id"`
	Date        time.Time       `gorm:"not null" json:"date"`
	Description string          `gorm:"not null" json:"description"`
	Cost        decimal.Decimal `gorm:"type:numeric;default:0" json:"cost"`
}
