package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/orderdesk/app/models"
)

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) FindByID(ctx context.Context, id uint) (models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	return p, translate(err)
}

func (r *productRepository) List(ctx context.Context) ([]models.Product, error) {
	var ps []models.Product
	if err := r.db.WithContext(ctx).Order("id").Find(&ps).Error; err != nil {
		return nil, err
	}
	return ps, nil
}

func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
