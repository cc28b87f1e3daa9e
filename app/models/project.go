package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project is a single landing page built by a user. The HTML/CSS/JS source is
// stored as-is and served verbatim on the public page URL. ProductName and
// ProductPrice describe what the page sells; orders snapshot both fields at
// creation time. ButtonLabel configures which button click counts as a
// conversion.
type Project struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UUID         string         `gorm:"type:char(36);uniqueIndex;not null" json:"uuid"`
	UserID       uint           `gorm:"index;not null" json:"user_id"`
	User         User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name" validate:"required,min=1,max=255"`
	Slug         string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug" validate:"required,min=1,max=255"`
	HTML         string         `gorm:"type:longtext" json:"html"`
	CSS          string         `gorm:"type:longtext" json:"css"`
	JS           string         `gorm:"type:longtext" json:"js"`
	IsHosted     bool           `gorm:"default:false;index" json:"is_hosted"`
	DurationDays int            `gorm:"default:30" json:"duration_days" validate:"min=1,max=365"`
	ProductName  string         `gorm:"type:varchar(255)" json:"product_name"`
	ProductPrice string         `gorm:"type:varchar(100)" json:"product_price"`
	ButtonLabel  string         `gorm:"type:varchar(255)" json:"button_label"`
	ViewCount    int64          `gorm:"default:0" json:"view_count"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Project) Validate() error {
	v := validator.New()
	return v.Struct(p)
}

// BeforeCreate assigns a public UUID if none is set yet.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == "" {
		p.UUID = uuid.New().String()
	}
	return nil
}

// ExpiresAt returns the instant the hosted page stops being served.
func (p *Project) ExpiresAt() time.Time {
	return p.CreatedAt.AddDate(0, 0, p.DurationDays)
}

// DaysLeft returns the whole days remaining until expiry, negative once past.
func (p *Project) DaysLeft(now time.Time) int {
	daysSinceCreated := int(now.Sub(p.CreatedAt).Hours() / 24)
	return p.DurationDays - daysSinceCreated
}
