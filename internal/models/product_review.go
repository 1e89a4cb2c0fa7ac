package models

import "time"

type ProductReview struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProductID uint     `gorm:"not null;index" json:"product_id"`
	Product   *Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	CustomerName      string  `gorm:"size:200;not null" json:"customer_name"`
	CustomerPhone     *string `gorm:"size:50" json:"customer_phone"`
	CustomerFacebook  *string `gorm:"size:255" json:"customer_facebook"`
	CustomerInstagram *string `gorm:"size:255" json:"customer_instagram"`

	Rating  int        `gorm:"not null;check:chk_product_reviews_rating,rating >= 1 AND rating <= 5" json:"rating"`
	Comment *string    `gorm:"type:text" json:"comment"`
	Images  StringList `gorm:"type:text" json:"images"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
