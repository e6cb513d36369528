package models

import "time"

// StockMovement is an append-only audit fact. Rows are created once per stock
// mutation and never updated or deleted; the running sum of QuantityChange per
// product reconciles with its stock_quantity history.
//
// The trail outlives its subjects: deleting a product or removing a staff
// member nulls the reference instead of blocking the delete, so movements
// persist as orphaned facts.
type StockMovement struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	ShopID    uint     `gorm:"not null;index:idx_stock_movements_shop_product,priority:1" json:"shop_id"`
	ProductID *uint    `gorm:"index:idx_stock_movements_shop_product,priority:2" json:"product_id"`
	Product   *Product `gorm:"constraint:OnDelete:SET NULL" json:"-"`

	// Signed, non-zero: +5 restock, -2 sale.
	QuantityChange int    `gorm:"not null" json:"quantity_change"`
	Reason         string `gorm:"size:100;not null" json:"reason"`
	Notes          string `gorm:"size:500" json:"notes"`

	UserID *uint `json:"user_id"`
	User   *User `gorm:"constraint:OnDelete:SET NULL" json:"-"`

	// Groups the movements written by one checkout/adjustment.
	CorrelationID string `gorm:"size:36;index" json:"correlation_id"`

	CreatedAt time.Time `json:"created_at"`
}
