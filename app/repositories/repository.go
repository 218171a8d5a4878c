// Package repositories is the persistence boundary. Services depend on the
// interfaces here; the GORM implementations are built per request from an
// injected *gorm.DB, or per transaction inside WithinTx.
package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/orderdesk/app/models"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("repositories: record not found")

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	FindByUsername(ctx context.Context, username string) (models.User, error)
	// FindByLogin matches either username or email in one query.
	FindByLogin(ctx context.Context, usernameOrEmail string) (models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id uint) (models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	// FindByID loads the order with its user and product.
	FindByID(ctx context.Context, id uint) (models.Order, error)
	FindByIDForUser(ctx context.Context, id, userID uint) (models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, id uint) error
	CountByProduct(ctx context.Context, productID uint) (int64, error)
}

type AuditLogRepository interface {
	Create(ctx context.Context, entry models.AuditLog) error
	ListByResource(ctx context.Context, resource models.AuditResourceType, id uint) ([]models.AuditLog, error)
}

// Repos groups the repositories bound to one database handle.
type Repos interface {
	Users() UserRepository
	Products() ProductRepository
	Orders() OrderRepository
	AuditLogs() AuditLogRepository
}

// Store is the request-scoped persistence handle handed to services.
type Store interface {
	Repos
	// WithinTx runs fn with repositories bound to a single transaction.
	// Returning an error rolls back.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
