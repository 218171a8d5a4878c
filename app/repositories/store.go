package repositories

import (
	"context"

	"gorm.io/gorm"
)

type gormRepos struct {
	users     UserRepository
	products  ProductRepository
	orders    OrderRepository
	auditLogs AuditLogRepository
}

func newGormRepos(db *gorm.DB) *gormRepos {
	return &gormRepos{
		users:     NewUserRepository(db),
		products:  NewProductRepository(db),
		orders:    NewOrderRepository(db),
		auditLogs: NewAuditLogRepository(db),
	}
}

func (r *gormRepos) Users() UserRepository         { return r.users }
func (r *gormRepos) Products() ProductRepository   { return r.products }
func (r *gormRepos) Orders() OrderRepository       { return r.orders }
func (r *gormRepos) AuditLogs() AuditLogRepository { return r.auditLogs }

// GormStore implements Store over a *gorm.DB.
type GormStore struct {
	*gormRepos
	db *gorm.DB
}

func NewStore(db *gorm.DB) *GormStore {
	return &GormStore{gormRepos: newGormRepos(db), db: db}
}

func (s *GormStore) WithinTx(ctx context.Context, fn func(r Repos) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// repositories are rebuilt on the tx handle
		return fn(newGormRepos(tx))
	})
}
