package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/shashiranjanraj/orderdesk/app/models"
	"github.com/shashiranjanraj/orderdesk/app/repositories"
	"github.com/shashiranjanraj/orderdesk/pkg/cache"
	"github.com/shashiranjanraj/orderdesk/pkg/event"
	"github.com/shashiranjanraj/orderdesk/pkg/logger"
	"github.com/shashiranjanraj/orderdesk/pkg/validate"
)

// ProductInput creates a product. Price is required and may be zero.
type ProductInput struct {
	Name  string `json:"name"`
	Price *int64 `json:"price"`
}

func (in ProductInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&in.Price, validation.NotNil, validation.Min(0)),
	)
}

// ProductPatch is a partial update: nil fields are left unchanged.
type ProductPatch struct {
	Name  *string `json:"name"`
	Price *int64  `json:"price"`
}

func (in ProductPatch) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&in.Price, validation.Min(0)),
	)
}

const (
	msgCatalogCreate = "Only admin can add new product"
	msgCatalogList   = "Only admin can see all products"
	msgCatalogGet    = "Only SuperAdmin is allowed to this request"
	msgCatalogUpdate = "Only SuperAdmin is allowed to update product"
	msgCatalogDelete = "Only SuperAdmin is allowed to delete product"
)

// CatalogService manages products. Every operation is staff-only.
type CatalogService struct {
	store    repositories.Store
	cache    cache.Store
	cacheTTL time.Duration
	bus      *event.Bus
}

func NewCatalogService(store repositories.Store, c cache.Store, ttl time.Duration, bus *event.Bus) *CatalogService {
	if c == nil {
		c = cache.NewMemory()
	}
	return &CatalogService{store: store, cache: c, cacheTTL: ttl, bus: bus}
}

func productKey(id uint) string { return fmt.Sprintf("product:%d", id) }

func (s *CatalogService) Create(ctx context.Context, actor *models.User, in ProductInput) (models.Product, error) {
	if err := Authorize(actor, OpCreateProduct); err != nil {
		return models.Product{}, err
	}
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.Product{}, invalid(errs)
	}

	p := models.Product{Name: in.Name, Price: *in.Price}
	if err := s.store.Products().Create(ctx, &p); err != nil {
		return models.Product{}, fmt.Errorf("create product: %w", err)
	}

	s.bus.Fire(ctx, "product.created", p)
	return p, nil
}

func (s *CatalogService) List(ctx context.Context, actor *models.User) ([]models.Product, error) {
	if err := Authorize(actor, OpListProducts); err != nil {
		return nil, err
	}
	ps, err := s.store.Products().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if ps == nil {
		ps = []models.Product{}
	}
	return ps, nil
}

// Get reads through the cache. Cache failures degrade to the database.
func (s *CatalogService) Get(ctx context.Context, actor *models.User, id uint) (models.Product, error) {
	if err := Authorize(actor, OpShowProduct); err != nil {
		return models.Product{}, err
	}

	var p models.Product
	found, err := s.cache.Get(ctx, productKey(id), &p)
	if err != nil {
		logger.WithCtx(ctx).Warn().Err(err).Uint("product_id", id).Msg("product cache read failed")
	}
	if found {
		return p, nil
	}

	p, err = s.store.Products().FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.Product{}, notFound("Product with %d ID is not found", id)
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("find product %d: %w", id, err)
	}

	if err := s.cache.Set(ctx, productKey(id), p, s.cacheTTL); err != nil {
		logger.WithCtx(ctx).Warn().Err(err).Uint("product_id", id).Msg("product cache write failed")
	}
	return p, nil
}

// Update applies only the supplied fields and records an audit entry.
func (s *CatalogService) Update(ctx context.Context, actor *models.User, id uint, patch ProductPatch) (models.Product, error) {
	if err := Authorize(actor, OpUpdateProduct); err != nil {
		return models.Product{}, err
	}
	if errs := validate.Struct(patch); validate.HasErrors(errs) {
		return models.Product{}, invalid(errs)
	}

	var updated models.Product
	err := s.store.WithinTx(ctx, func(r repositories.Repos) error {
		p, err := r.Products().FindByID(ctx, id)
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound("Product with this ID %d is not found", id)
		}
		if err != nil {
			return err
		}

		before := p
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Price != nil {
			p.Price = *patch.Price
		}
		if err := r.Products().Update(ctx, &p); err != nil {
			return err
		}
		updated = p
		return audit(ctx, r, actor, models.AuditUpdateProduct, models.AuditResourceProduct, id, before, p)
	})
	if err != nil {
		return models.Product{}, err
	}

	s.forget(ctx, id)
	s.bus.Fire(ctx, "product.updated", updated)
	return updated, nil
}

// Delete removes a product that no order references.
func (s *CatalogService) Delete(ctx context.Context, actor *models.User, id uint) error {
	if err := Authorize(actor, OpDeleteProduct); err != nil {
		return err
	}

	err := s.store.WithinTx(ctx, func(r repositories.Repos) error {
		p, err := r.Products().FindByID(ctx, id)
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound("Product with this ID %d is not found", id)
		}
		if err != nil {
			return err
		}

		n, err := r.Orders().CountByProduct(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return conflict("Product with ID %d is referenced by %d order(s)", id, n)
		}

		if err := r.Products().Delete(ctx, id); err != nil {
			return err
		}
		return audit(ctx, r, actor, models.AuditDeleteProduct, models.AuditResourceProduct, id, p, nil)
	})
	if err != nil {
		return err
	}

	s.forget(ctx, id)
	s.bus.Fire(ctx, "product.deleted", map[string]uint{"id": id})
	return nil
}

func (s *CatalogService) forget(ctx context.Context, id uint) {
	if err := s.cache.Del(ctx, productKey(id)); err != nil {
		logger.WithCtx(ctx).Warn().Err(err).Uint("product_id", id).Msg("product cache invalidation failed")
	}
}
