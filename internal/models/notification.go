package models

import "time"

type NotificationType string

const (
	NotificationAlert   NotificationType = "alert"
	NotificationWarning NotificationType = "warning"
	NotificationSuccess NotificationType = "success"
	NotificationInfo    NotificationType = "info"
)

type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	ShopID    uint             `gorm:"not null;index" json:"shop_id"`
	Message   string           `gorm:"size:255;not null" json:"message"`
	Type      NotificationType `gorm:"size:20;not null;default:info" json:"type"`
	IsRead    bool             `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}
