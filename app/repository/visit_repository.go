package repository

import (
	"context"
	"time"

	"github.com/ManuelReschke/PageFox/app/models"
	"gorm.io/gorm"
)

// visitRepository implements the VisitRepository interface
type visitRepository struct {
	db *gorm.DB
}

// NewVisitRepository creates a new visit repository instance
func NewVisitRepository(db *gorm.DB) VisitRepository {
	return &visitRepository{db: db}
}

// GetByProjectAndIP retrieves the single visit row for a (project, IP) pair
func (r *visitRepository) GetByProjectAndIP(ctx context.Context, projectID uint, ip string) (*models.Visit, error) {
	var visit models.Visit
	err := r.db.WithContext(ctx).Where("project_id = ? AND ip_address = ?", projectID, ip).First(&visit).Error
	if err != nil {
		return nil, err
	}
	return &visit, nil
}

// Create creates a new visit in the database
func (r *visitRepository) Create(ctx context.Context, visit *models.Visit) error {
	return r.db.WithContext(ctx).Create(visit).Error
}

// Update updates an existing visit in the database
func (r *visitRepository) Update(ctx context.Context, visit *models.Visit) error {
	return r.db.WithContext(ctx).Save(visit).Error
}

// MarkStale flips is_live off for visits whose last activity predates olderThan.
// Returns the number of rows demoted; running it twice changes nothing.
func (r *visitRepository) MarkStale(ctx context.Context, olderThan time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Visit{}).
		Where("is_live = ? AND last_activity < ?", true, olderThan).
		Update("is_live", false)
	return result.RowsAffected, result.Error
}

// SumPageViews returns the total page views across the project set
func (r *visitRepository) SumPageViews(ctx context.Context, projectIDs []uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Visit{}).
		Where("project_id IN ?", projectIDs).
		Select("COALESCE(SUM(page_views), 0)").
		Scan(&total).Error
	return total, err
}

// AvgTimeSpent returns the mean time spent in seconds, 0 when there are no visits
func (r *visitRepository) AvgTimeSpent(ctx context.Context, projectIDs []uint) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).
		Model(&models.Visit{}).
		Where("project_id IN ?", projectIDs).
		Select("COALESCE(AVG(time_spent), 0)").
		Scan(&avg).Error
	return avg, err
}

// CountLiveSince counts visits still flagged live with activity at or after since
func (r *visitRepository) CountLiveSince(ctx context.Context, projectIDs []uint, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Visit{}).
		Where("project_id IN ? AND is_live = ? AND last_activity >= ?", projectIDs, true, since).
		Count(&count).Error
	return count, err
}

// CountCreatedByDay groups visits created at or after from by calendar day.
// Keys use the YYYY-MM-DD format.
func (r *visitRepository) CountCreatedByDay(ctx context.Context, projectIDs []uint, from time.Time) (map[string]int, error) {
	var rows []struct {
		Day   string
		Count int
	}
	err := r.db.WithContext(ctx).
		Model(&models.Visit{}).
		Select("DATE_FORMAT(created_at, '%Y-%m-%d') AS day, COUNT(*) AS count").
		Where("project_id IN ? AND created_at >= ?", projectIDs, from).
		Group("day").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Day] = row.Count
	}
	return counts, nil
}

// TopCities returns the most frequent visitor cities in descending order.
// Ties resolve to the city seen first (lowest first row id), matching the
// order visitors actually arrived in.
func (r *visitRepository) TopCities(ctx context.Context, projectIDs []uint, limit int) ([]models.CityStats, error) {
	var rows []struct {
		City    string
		Count   int
		FirstID uint
	}
	err := r.db.WithContext(ctx).
		Model(&models.Visit{}).
		Select("city, COUNT(*) AS count, MIN(id) AS first_id").
		Where("project_id IN ? AND city <> ''", projectIDs).
		Group("city").
		Order("count DESC, first_id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	stats := make([]models.CityStats, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, models.CityStats{City: row.City, Count: row.Count})
	}
	return stats, nil
}

// CountByDevice groups visits by device type
func (r *visitRepository) CountByDevice(ctx context.Context, projectIDs []uint) (map[string]int, error) {
	var rows []struct {
		DeviceType string
		Count      int
	}
	err := r.db.WithContext(ctx).
		Model(&models.Visit{}).
		Select("device_type, COUNT(*) AS count").
		Where("project_id IN ?", projectIDs).
		Group("device_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.DeviceType] = row.Count
	}
	return counts, nil
}
