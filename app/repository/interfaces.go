package repository

import (
	"context"
	"time"

	"github.com/ManuelReschke/PageFox/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Count() (int64, error)
}

// ProjectRepository defines the interface for project-related database operations.
// The lookup methods take a context because they sit on publicly reachable
// request paths and must honor the caller's deadline.
type ProjectRepository interface {
	Create(project *models.Project) error
	GetByID(ctx context.Context, id uint) (*models.Project, error)
	GetByUUID(ctx context.Context, uuid string) (*models.Project, error)
	GetBySlug(ctx context.Context, slug string) (*models.Project, error)
	GetByUserID(userID uint) ([]models.Project, error)
	GetHosted() ([]models.Project, error)
	Update(project *models.Project) error
	Delete(id uint) error
	Count() (int64, error)
}

// VisitRepository defines the interface for visit-related database operations.
// The write path is hit by anonymous public traffic, so every method takes a
// context to bound store access.
type VisitRepository interface {
	GetByProjectAndIP(ctx context.Context, projectID uint, ip string) (*models.Visit, error)
	Create(ctx context.Context, visit *models.Visit) error
	Update(ctx context.Context, visit *models.Visit) error
	MarkStale(ctx context.Context, olderThan time.Time) (int64, error)

	SumPageViews(ctx context.Context, projectIDs []uint) (int64, error)
	AvgTimeSpent(ctx context.Context, projectIDs []uint) (float64, error)
	CountLiveSince(ctx context.Context, projectIDs []uint, since time.Time) (int64, error)
	CountCreatedByDay(ctx context.Context, projectIDs []uint, from time.Time) (map[string]int, error)
	TopCities(ctx context.Context, projectIDs []uint, limit int) ([]models.CityStats, error)
	CountByDevice(ctx context.Context, projectIDs []uint) (map[string]int, error)
}

// ConversionRepository defines the interface for conversion click records
type ConversionRepository interface {
	Create(ctx context.Context, conversion *models.Conversion) error
	CountByProjectIDs(ctx context.Context, projectIDs []uint) (int64, error)
}

// OrderRepository defines the interface for order-related database operations
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	GetByProjectIDs(ctx context.Context, projectIDs []uint) ([]models.Order, error)
	CountByProjectIDs(ctx context.Context, projectIDs []uint) (int64, error)
	ListProductPrices(ctx context.Context, projectIDs []uint) ([]string, error)
	UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) error
	Delete(ctx context.Context, id uint) error
}

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateIfAbsent(ctx context.Context, notification *models.Notification) (bool, error)
	GetByUserID(ctx context.Context, userID uint, offset, limit int) ([]models.Notification, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
	MarkRead(ctx context.Context, id, userID uint) error
	MarkAllRead(ctx context.Context, userID uint) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	User         UserRepository
	Project      ProjectRepository
	Visit        VisitRepository
	Conversion   ConversionRepository
	Order        OrderRepository
	Notification NotificationRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Project:      NewProjectRepository(db),
		Visit:        NewVisitRepository(db),
		Conversion:   NewConversionRepository(db),
		Order:        NewOrderRepository(db),
		Notification: NewNotificationRepository(db),
	}
}
