package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/orderdesk/app/models"
)

type auditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, entry models.AuditLog) error {
	return r.db.WithContext(ctx).Create(&entry).Error
}

// ListByResource returns entries for one resource, newest first.
func (r *auditLogRepository) ListByResource(ctx context.Context, resource models.AuditResourceType, id uint) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := r.db.WithContext(ctx).
		Where("resource_type = ? AND resource_id = ?", resource, id).
		Order("id DESC").
		Find(&logs).Error
	return logs, err
}
