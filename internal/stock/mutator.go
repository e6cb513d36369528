package stock

import (
	"errors"
	"fmt"

	"shopstock-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplyDeltaParams struct {
	ShopID    uint
	ProductID uint
	Delta     int // positive restock, negative sale/removal
	Reason    string
	Notes     string
	UserID    *uint
}

type ApplyDeltaResult struct {
	// Product state after the mutation (name and price are read under the
	// same lock, so checkout totals cannot be torn by concurrent edits).
	Product          models.Product
	PreviousQuantity int
}

// ApplyDelta is the single mutation path for stock_quantity. It must run
// inside the caller's transaction: it locks the product row scoped to
// (product_id, shop_id), rejects any change that would go negative, persists
// the new quantity together with the alert flag in one write, appends the
// audit movement in the same transaction, and queues alert intents on the
// outbox for post-commit delivery.
func ApplyDelta(tx *gorm.DB, out *Outbox, p ApplyDeltaParams) (*ApplyDeltaResult, error) {
	if p.Delta == 0 {
		return nil, ErrInvalidQuantity
	}

	// Row lock held until the enclosing transaction ends; concurrent mutators
	// of the same product serialize here. The shop_id filter is the tenant
	// isolation guarantee, not just a 404.
	var product models.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND shop_id = ?", p.ProductID, p.ShopID).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("lock product %d: %w", p.ProductID, err)
	}

	previous := product.StockQuantity
	newQuantity := previous + p.Delta
	if newQuantity < 0 {
		return nil, &InsufficientStockError{ProductName: product.Name, Available: previous}
	}

	decision := EvaluateAlert(newQuantity, product.LowStockAlertSent)

	// Quantity and flag move together in one write.
	err = tx.Model(&product).Updates(map[string]interface{}{
		"stock_quantity":       newQuantity,
		"low_stock_alert_sent": decision.Flag,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("update product %d stock: %w", p.ProductID, err)
	}
	product.StockQuantity = newQuantity
	product.LowStockAlertSent = decision.Flag

	if err := RecordMovement(tx, Movement{
		ShopID:         p.ShopID,
		ProductID:      p.ProductID,
		QuantityChange: p.Delta,
		Reason:         p.Reason,
		Notes:          p.Notes,
		UserID:         p.UserID,
		CorrelationID:  out.CorrelationID,
	}); err != nil {
		return nil, err
	}

	if decision.Event != "" {
		out.add(AlertEvent{
			Kind:        decision.Event,
			ProductName: product.Name,
			Quantity:    newQuantity,
		})
	}

	return &ApplyDeltaResult{Product: product, PreviousQuantity: previous}, nil
}

// OwnerEmail resolves the alert recipient for a shop. Only the owner receives
// stock alerts; an empty string means no owner is on record.
func OwnerEmail(tx *gorm.DB, shopID uint) string {
	var owner models.User
	err := tx.Where("shop_id = ? AND role = ?", shopID, models.RoleOwner).
		First(&owner).Error
	if err != nil {
		return ""
	}
	return owner.Email
}
