package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The storefront reads prices as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string          `gorm:"size:200;not null" json:"name"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Stock       *int            `json:"stock"`
	Image       *string         `gorm:"size:255" json:"image"`
	Description *string         `gorm:"type:text" json:"description"`
	Category    *string         `gorm:"size:100" json:"category"`
	// PriceType is the package tier shown next to the price, e.g. "1-10", "11-20", "custom".
	PriceType *string `gorm:"size:50" json:"price_type"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
