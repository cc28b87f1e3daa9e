package models

import (
	"time"
)

const (
	DEVICE_DESKTOP = "desktop"
	DEVICE_MOBILE  = "mobile"
	DEVICE_TABLET  = "tablet"
)

// LivenessWindow is how long a visitor counts as "live" after their last event.
const LivenessWindow = 5 * time.Minute

// Visit aggregates all engagement of one visitor (client IP) on one project.
// There is at most one row per (project, IP) pair; repeated page loads and
// heartbeats merge into it. This deliberately collapses visitors behind a
// shared NAT into one Visit.
type Visit struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ProjectID    uint      `gorm:"not null;uniqueIndex:idx_visits_project_ip" json:"project_id"`
	Project      Project   `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	IPAddress    string    `gorm:"type:varchar(45);not null;uniqueIndex:idx_visits_project_ip" json:"ip_address"`
	UserAgent    string    `gorm:"type:text" json:"user_agent"`
	DeviceType   string    `gorm:"type:varchar(16)" json:"device_type"`
	Browser      string    `gorm:"type:varchar(32)" json:"browser"`
	City         string    `gorm:"type:varchar(100);index" json:"city"`
	Country      string    `gorm:"type:varchar(100)" json:"country"`
	TimeSpent    int       `gorm:"default:0" json:"time_spent"`
	PageViews    int       `gorm:"default:0" json:"page_views"`
	IsLive       bool      `gorm:"default:false;index" json:"is_live"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	LastActivity time.Time `gorm:"index" json:"last_activity"`
}

// IsLiveAt reports whether the visit still falls inside the liveness window.
// The persisted IsLive flag may lag behind this; the sweeper catches it up.
func (v *Visit) IsLiveAt(now time.Time) bool {
	return v.IsLive && now.Sub(v.LastActivity) < LivenessWindow
}
