package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// OrderStatus is a closed enumeration. Unrecognized values are rejected at
// the boundary via ParseOrderStatus instead of being stored verbatim.
type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusShipping   OrderStatus = "shipping"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ParseOrderStatus validates a status string coming from the outside.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderStatusProcessing, OrderStatusCompleted, OrderStatusShipping, OrderStatusCancelled:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("unknown order status: %q", s)
}

// Order is created when a conversion carries customer-identifying fields.
// ProductName and ProductPrice are snapshotted from the project at creation
// time and never re-joined afterwards.
type Order struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	ProjectID     uint           `gorm:"index;not null" json:"project_id"`
	Project       Project        `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	CustomerName  string         `gorm:"type:varchar(150)" json:"customer_name"`
	CustomerPhone string         `gorm:"type:varchar(50)" json:"customer_phone"`
	CustomerCity  string         `gorm:"type:varchar(100)" json:"customer_city"`
	ProductName   string         `gorm:"type:varchar(255)" json:"product_name"`
	ProductPrice  string         `gorm:"type:varchar(100)" json:"product_price"`
	Status        OrderStatus    `gorm:"type:varchar(20);default:'processing'" json:"status"`
	CreatedAt     time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// CanDelete reports whether the order may be removed. Transitions between
// statuses are unrestricted, deletion is only allowed once cancelled.
func (o *Order) CanDelete() bool {
	return o.Status == OrderStatusCancelled
}
