package models

import (
	"fmt"
	"time"
)

// NotificationType is a closed enumeration of lifecycle and order events.
type NotificationType string

const (
	NotificationTypeExpiring NotificationType = "expiring"
	NotificationTypeExpired  NotificationType = "expired"
	NotificationTypeNewOrder NotificationType = "new_order"
)

// ParseNotificationType validates a type string coming from the outside.
func ParseNotificationType(s string) (NotificationType, error) {
	switch NotificationType(s) {
	case NotificationTypeExpiring, NotificationTypeExpired, NotificationTypeNewOrder:
		return NotificationType(s), nil
	}
	return "", fmt.Errorf("unknown notification type: %q", s)
}

// Notification is keyed unique on (user, type, related entity). The unique
// index is what makes repeated lifecycle evaluation idempotent: concurrent
// inserts for the same key collapse into a single row.
type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    uint             `gorm:"index;not null;uniqueIndex:idx_notifications_user_type_ref" json:"user_id"`
	User      User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Type      NotificationType `gorm:"type:varchar(50);not null;uniqueIndex:idx_notifications_user_type_ref" json:"type"`
	Title     string           `gorm:"type:varchar(255)" json:"title"`
	Message   string           `gorm:"type:text" json:"message"`
	RelatedID uint             `gorm:"not null;uniqueIndex:idx_notifications_user_type_ref" json:"related_id"`
	IsRead    bool             `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time        `gorm:"autoCreateTime" json:"created_at"`
}
