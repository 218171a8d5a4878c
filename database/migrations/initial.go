package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/orderdesk/app/models"
	"github.com/shashiranjanraj/orderdesk/pkg/migration"
)

func init() {
	migration.Register("20260101000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260101000001_create_products_table", &CreateProductsTable{})
	migration.Register("20260101000002_create_orders_table", &CreateOrdersTable{})
	migration.Register("20260101000003_create_audit_logs_table", &CreateAuditLogsTable{})
}

// -------- 0001: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

// -------- 0002: products --------

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products")
}

// -------- 0003: orders --------

type CreateOrdersTable struct{}

func (m *CreateOrdersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{})
}

func (m *CreateOrdersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("orders")
}

// -------- 0004: audit_logs --------

type CreateAuditLogsTable struct{}

func (m *CreateAuditLogsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.AuditLog{})
}

func (m *CreateAuditLogsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("audit_logs")
}
