package models

import (
	"time"
)

// Conversion is one tracked button click. Append-only, never merged.
type Conversion struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProjectID   uint      `gorm:"index;not null" json:"project_id"`
	Project     Project   `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	ButtonLabel string    `gorm:"type:varchar(255)" json:"button_label"`
	IPAddress   string    `gorm:"type:varchar(45)" json:"ip_address"`
	UserAgent   string    `gorm:"type:text" json:"user_agent"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
