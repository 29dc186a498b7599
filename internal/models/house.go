package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// House is the top-level record a user tracks. Sale year/price are only
// set once the house has been sold; coordinates are filled in by the
// geocoder when an address is available.
type House struct {
	gorm.Model
	UserID        uint             `gorm:"index;not null" json:"user_id"`
	Nickname      string           `gorm:"not null" json:"nickname"`
	Street        string           `json:"street"`
	City          string           `json:"city"`
	PostalCode    string           `json:"postal_code"`
	Country       string           `json:"country"`
	PurchaseYear  *int             `json:"purchase_year"`
	PurchasePrice decimal.Decimal  `gorm:"type:numeric;default:0" json:"purchase_price"`
	SaleYear      *int             `json:"sale_year"`
	SalePrice     *decimal.Decimal `gorm:"type:numeric" json:"sale_price"`
	SquareFootage *int             `json:"square_footage"`
	Latitude      *float64         `json:"latitude"`
	Longitude     *float64         `json:"longitude"`
}

// HasAddress reports whether there is enough address information to
// attempt geocoding.
func (h *House) HasAddress() bool {
	return h.Street != "" && h.City != ""
}

// HasCoordinates reports whether the house has been geocoded.
func (h *House) HasCoordinates() bool {
	return h.Latitude != nil && h.Longitude != nil
}
