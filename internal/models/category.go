package models

import "time"

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ShopID    uint      `gorm:"not null;uniqueIndex:idx_categories_shop_name" json:"shop_id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:idx_categories_shop_name" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
