package models

import "time"

type AuditAction string

const (
	AuditUpdateOrderStatus AuditAction = "UPDATE_ORDER_STATUS"
	AuditUpdateProduct     AuditAction = "UPDATE_PRODUCT"
	AuditDeleteProduct     AuditAction = "DELETE_PRODUCT"
)

type AuditResourceType string

const (
	AuditResourceOrder   AuditResourceType = "order"
	AuditResourceProduct AuditResourceType = "product"
)

// AuditLog records a staff mutation: who did what to which resource, with
// JSON snapshots before and after.
type AuditLog struct {
	ID           uint              `gorm:"primaryKey"                    json:"id"`
	ActorUserID  uint              `gorm:"not null;index"                json:"actor_user_id"`
	Action       AuditAction       `gorm:"size:50;not null;index"        json:"action"`
	ResourceType AuditResourceType `gorm:"size:50;not null;index"        json:"resource_type"`
	ResourceID   uint              `gorm:"not null;index"                json:"resource_id"`
	BeforeJSON   string            `gorm:"type:text"                     json:"before_json"`
	AfterJSON    string            `gorm:"type:text"                     json:"after_json"`
	CreatedAt    time.Time         `gorm:"not null;index"                json:"created_at"`
}
