package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/orderdesk/app/models"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	return user, translate(err)
}

func (r *userRepository) FindByLogin(ctx context.Context, usernameOrEmail string) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", usernameOrEmail, usernameOrEmail).
		Order("id").
		First(&user).Error
	return user, translate(err)
}

func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

func (r *userRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username = ?", username)
}

func (r *userRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where(query, arg).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
