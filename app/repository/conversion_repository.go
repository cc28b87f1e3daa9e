package repository

import (
	"context"

	"github.com/ManuelReschke/PageFox/app/models"
	"gorm.io/gorm"
)

// conversionRepository implements the ConversionRepository interface
type conversionRepository struct {
	db *gorm.DB
}

// NewConversionRepository creates a new conversion repository instance
func NewConversionRepository(db *gorm.DB) ConversionRepository {
	return &conversionRepository{db: db}
}

// Create appends a new conversion click record
func (r *conversionRepository) Create(ctx context.Context, conversion *models.Conversion) error {
	return r.db.WithContext(ctx).Create(conversion).Error
}

// CountByProjectIDs counts conversion clicks across the project set
func (r *conversionRepository) CountByProjectIDs(ctx context.Context, projectIDs []uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Conversion{}).
		Where("project_id IN ?", projectIDs).
		Count(&count).Error
	return count, err
}
