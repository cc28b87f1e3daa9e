package repository

import (
	"context"

	"github.com/ManuelReschke/PageFox/app/models"
	"gorm.io/gorm"
)

// orderRepository implements the OrderRepository interface
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository instance
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create creates a new order in the database
func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// GetByID retrieves an order by its ID
func (r *orderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByProjectIDs retrieves all orders across the project set, newest first
func (r *orderRepository) GetByProjectIDs(ctx context.Context, projectIDs []uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("project_id IN ?", projectIDs).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// CountByProjectIDs counts orders across the project set
func (r *orderRepository) CountByProjectIDs(ctx context.Context, projectIDs []uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("project_id IN ?", projectIDs).
		Count(&count).Error
	return count, err
}

// ListProductPrices returns the snapshotted price strings of all orders in the
// project set. Prices are free text and parsed by the analytics aggregator.
func (r *orderRepository) ListProductPrices(ctx context.Context, projectIDs []uint) ([]string, error) {
	var prices []string
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("project_id IN ?", projectIDs).
		Pluck("product_price", &prices).Error
	return prices, err
}

// UpdateStatus sets the status of an order
func (r *orderRepository) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// Delete soft deletes an order by its ID
func (r *orderRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Order{}, id).Error
}
