package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ShopID     uint      `gorm:"not null;index" json:"shop_id"`
	CategoryID *uint     `gorm:"index" json:"category_id"`
	Category   *Category `json:"-"`

	Name        string          `gorm:"size:150;not null" json:"name"`
	SKU         string          `gorm:"size:20;uniqueIndex;not null" json:"sku"`
	Description string          `gorm:"size:1000" json:"description"`
	ImageURL    string          `gorm:"size:500" json:"image_url"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"price"`

	// StockQuantity never goes negative; mutated only through stock.ApplyDelta.
	StockQuantity int `gorm:"not null;default:0" json:"stock_quantity"`

	// One-shot flag: true while a low-stock alert has fired and stock has not
	// yet been replenished to the threshold.
	LowStockAlertSent bool `gorm:"not null;default:false" json:"low_stock_alert_sent"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
