package stock

import (
	"fmt"
	"log"

	"shopstock-backend/internal/database"
	"shopstock-backend/internal/models"

	"gorm.io/gorm"
)

type Movement struct {
	ShopID         uint
	ProductID      uint
	QuantityChange int // signed, non-zero
	Reason         string
	Notes          string
	UserID         *uint
	CorrelationID  string
}

// RecordMovement appends one row to the audit trail inside the caller's unit
// of work. A failure must propagate: stock state and its audit record are
// all-or-nothing.
func RecordMovement(tx *gorm.DB, m Movement) error {
	if m.QuantityChange == 0 {
		return fmt.Errorf("record stock movement: quantity change must be non-zero")
	}

	row := models.StockMovement{
		ShopID:         m.ShopID,
		ProductID:      &m.ProductID,
		QuantityChange: m.QuantityChange,
		Reason:         m.Reason,
		Notes:          m.Notes,
		UserID:         m.UserID,
		CorrelationID:  m.CorrelationID,
	}
	if err := tx.Create(&row).Error; err != nil {
		return fmt.Errorf("record stock movement: %w", err)
	}
	return nil
}

// RecordMovementBestEffort appends a movement outside any unit of work, used
// only for the initial-stock row after product creation has already
// committed. A missing first row is a cosmetic gap, so failures are logged
// and swallowed.
func RecordMovementBestEffort(m Movement) {
	if err := RecordMovement(database.DB, m); err != nil {
		log.Printf("Failed to record stock movement for product %d: %v", m.ProductID, err)
	}
}
