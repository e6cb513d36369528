// Package notify owns the in-app notification rows behind the bell icon.
package notify

import (
	"fmt"

	"shopstock-backend/internal/database"
	"shopstock-backend/internal/models"
)

// Create persists one notification for a shop. Callers on the alert path
// treat a failure as best-effort and only log it.
func Create(shopID uint, message string, typ models.NotificationType) error {
	n := models.Notification{
		ShopID:  shopID,
		Message: message,
		Type:    typ,
	}
	if err := database.DB.Create(&n).Error; err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

// Unread returns the newest unread notifications for a shop.
func Unread(shopID uint, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := database.DB.
		Where("shop_id = ? AND is_read = false", shopID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

// UnreadCount returns how many unread notifications a shop has.
func UnreadCount(shopID uint) (int64, error) {
	var count int64
	err := database.DB.Model(&models.Notification{}).
		Where("shop_id = ? AND is_read = false", shopID).
		Count(&count).Error
	return count, err
}

// MarkRead flags one notification as read, scoped by shop for tenant safety.
func MarkRead(notificationID, shopID uint) error {
	return database.DB.Model(&models.Notification{}).
		Where("id = ? AND shop_id = ?", notificationID, shopID).
		Update("is_read", true).Error
}

// MarkAllRead flags every unread notification of a shop as read.
func MarkAllRead(shopID uint) error {
	return database.DB.Model(&models.Notification{}).
		Where("shop_id = ? AND is_read = false", shopID).
		Update("is_read", true).Error
}
