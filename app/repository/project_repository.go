package repository

import (
	"context"

	"github.com/ManuelReschke/PageFox/app/models"
	"gorm.io/gorm"
)

// projectRepository implements the ProjectRepository interface
type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository instance
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// Create creates a new project in the database
func (r *projectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// GetByID retrieves a project by its ID
func (r *projectRepository) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).First(&project, id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetByUUID retrieves a project by its public UUID
func (r *projectRepository) GetByUUID(ctx context.Context, uuid string) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).Where("uuid = ?", uuid).First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetBySlug retrieves a hosted project by its slug
func (r *projectRepository) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).Where("slug = ? AND is_hosted = ?", slug, true).First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetByUserID retrieves all projects owned by a user
func (r *projectRepository) GetByUserID(userID uint) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&projects).Error
	return projects, err
}

// GetHosted retrieves all projects with hosted content, owner preloaded.
// The lifecycle notifier walks this set.
func (r *projectRepository) GetHosted() ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Preload("User").Where("is_hosted = ?", true).Find(&projects).Error
	return projects, err
}

// Update updates an existing project in the database
func (r *projectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete soft deletes a project by its ID
func (r *projectRepository) Delete(id uint) error {
	return r.db.Delete(&models.Project{}, id).Error
}

// Count returns the total number of projects
func (r *projectRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Project{}).Count(&count).Error
	return count, err
}
