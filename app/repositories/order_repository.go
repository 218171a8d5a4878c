package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shashiranjanraj/orderdesk/app/models"
)

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("User").Preload("Product")
}

// Create inserts the order row only; associations are never upserted.
func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(order).Error
}

func (r *orderRepository) FindByID(ctx context.Context, id uint) (models.Order, error) {
	var o models.Order
	err := r.withRelations(ctx).First(&o, id).Error
	return o, translate(err)
}

func (r *orderRepository) FindByIDForUser(ctx context.Context, id, userID uint) (models.Order, error) {
	var o models.Order
	err := r.withRelations(ctx).Where("id = ? AND user_id = ?", id, userID).First(&o).Error
	return o, translate(err)
}

func (r *orderRepository) List(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := r.withRelations(ctx).Order("id").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := r.withRelations(ctx).Where("user_id = ?", userID).Order("id").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) Update(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(order).Error
}

func (r *orderRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Order{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *orderRepository) CountByProduct(ctx context.Context, productID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).Where("product_id = ?", productID).Count(&n).Error
	return n, err
}
