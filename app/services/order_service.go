package services

import (
	"context"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/shashiranjanraj/orderdesk/app/models"
	"github.com/shashiranjanraj/orderdesk/app/repositories"
	"github.com/shashiranjanraj/orderdesk/pkg/event"
	"github.com/shashiranjanraj/orderdesk/pkg/metrics"
	"github.com/shashiranjanraj/orderdesk/pkg/rbac"
	"github.com/shashiranjanraj/orderdesk/pkg/validate"
)

// OrderInput is used for both placing and updating an order.
type OrderInput struct {
	Quantity  int64 `json:"quantity"`
	ProductID uint  `json:"product_id"`
}

func (in OrderInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Quantity, validation.Required, validation.Min(1)),
		validation.Field(&in.ProductID, validation.Required),
	)
}

type StatusInput struct {
	Status models.OrderStatus `json:"order_statuses"`
}

func (in StatusInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Status, validation.Required,
			validation.In(models.StatusPending, models.StatusInTransit, models.StatusDelivered)),
	)
}

const (
	msgOrdersListAll   = "Only SuperAdmin can see all orders"
	msgOrdersGetAny    = "Only SuperAdmin is allowed to this request"
	msgOrdersStatus    = "Only SuperAdmin is allowed to update order status"
	msgOrdersPlace     = "You are not allowed to place orders"
	msgOrderUpdateMine = "You can not update other user's order"
	msgOrderDeleteMine = "You can not delete other user's order"
	msgOrderNotPending = "You can not delete in_transit and delivered orders"
)

// Domain events fired by OrderService.
const (
	EventOrderCreated       = "order.created"
	EventOrderUpdated       = "order.updated"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderDeleted       = "order.deleted"
)

// OrderService places and manages orders with ownership rules.
type OrderService struct {
	store repositories.Store
	bus   *event.Bus
}

func NewOrderService(store repositories.Store, bus *event.Bus) *OrderService {
	return &OrderService{store: store, bus: bus}
}

// Create places a PENDING order owned by actor.
func (s *OrderService) Create(ctx context.Context, actor *models.User, in OrderInput) (models.OrderView, error) {
	if err := authorize(actor, rbac.PlaceOrder, msgOrdersPlace); err != nil {
		return models.OrderView{}, err
	}
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.OrderView{}, invalid(errs)
	}

	var view models.OrderView
	err := s.store.WithinTx(ctx, func(r repositories.Repos) error {
		if _, err := findProduct(ctx, r, in.ProductID); err != nil {
			return err
		}

		o := models.Order{
			Quantity:  in.Quantity,
			Status:    models.StatusPending,
			UserID:    actor.ID,
			ProductID: in.ProductID,
		}
		if err := r.Orders().Create(ctx, &o); err != nil {
			return err
		}

		loaded, err := r.Orders().FindByID(ctx, o.ID)
		if err != nil {
			return err
		}
		view = loaded.View()
		return nil
	})
	if err != nil {
		return models.OrderView{}, err
	}

	metrics.OrdersCreated.Inc()
	s.bus.Fire(ctx, EventOrderCreated, view)
	return view, nil
}

// ListAll returns every order; staff only.
func (s *OrderService) ListAll(ctx context.Context, actor *models.User) ([]models.OrderView, error) {
	if err := Authorize(actor, OpListOrders); err != nil {
		return nil, err
	}
	orders, err := s.store.Orders().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return models.Views(orders), nil
}

// Get returns any order by id; staff only.
func (s *OrderService) Get(ctx context.Context, actor *models.User, id uint) (models.OrderView, error) {
	if err := Authorize(actor, OpShowOrder); err != nil {
		return models.OrderView{}, err
	}
	o, err := findOrder(ctx, s.store, id)
	if err != nil {
		return models.OrderView{}, err
	}
	return o.View(), nil
}

// ListMine returns the caller's orders.
func (s *OrderService) ListMine(ctx context.Context, actor *models.User) ([]models.OrderView, error) {
	if err := authorize(actor, rbac.ManageOwnOrders, msgOrdersPlace); err != nil {
		return nil, err
	}
	orders, err := s.store.Orders().ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list orders of user %d: %w", actor.ID, err)
	}
	return models.Views(orders), nil
}

// GetMine returns one of the caller's orders. Orders owned by someone else
// are reported exactly like missing ones.
func (s *OrderService) GetMine(ctx context.Context, actor *models.User, id uint) (models.OrderView, error) {
	if err := authorize(actor, rbac.ManageOwnOrders, msgOrdersPlace); err != nil {
		return models.OrderView{}, err
	}
	o, err := s.store.Orders().FindByIDForUser(ctx, id, actor.ID)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.OrderView{}, notFound("No order with this ID %d", id)
	}
	if err != nil {
		return models.OrderView{}, fmt.Errorf("find order %d: %w", id, err)
	}
	return o.View(), nil
}

// Update replaces quantity and product on the caller's own order. Status is
// untouched. Checks run in order: existence, ownership, then the input.
func (s *OrderService) Update(ctx context.Context, actor *models.User, id uint, in OrderInput) (models.OrderView, error) {
	if err := authorize(actor, rbac.ManageOwnOrders, msgOrderUpdateMine); err != nil {
		return models.OrderView{}, err
	}

	var view models.OrderView
	err := s.store.WithinTx(ctx, func(r repositories.Repos) error {
		o, err := findOrder(ctx, r, id)
		if err != nil {
			return err
		}
		if err := requireOwner(actor, o.UserID, msgOrderUpdateMine); err != nil {
			return err
		}
		if errs := validate.Struct(in); validate.HasErrors(errs) {
			return invalid(errs)
		}
		if _, err := findProduct(ctx, r, in.ProductID); err != nil {
			return err
		}

		o.Quantity = in.Quantity
		o.ProductID = in.ProductID
		if err := r.Orders().Update(ctx, &o); err != nil {
			return err
		}

		reloaded, err := r.Orders().FindByID(ctx, id)
		if err != nil {
			return err
		}
		view = reloaded.View()
		return nil
	})
	if err != nil {
		return models.OrderView{}, err
	}

	s.bus.Fire(ctx, EventOrderUpdated, view)
	return view, nil
}

// UpdateStatus sets any of the three statuses; staff only. Transitions are
// not restricted.
func (s *OrderService) UpdateStatus(ctx context.Context, actor *models.User, id uint, in StatusInput) (models.OrderView, error) {
	if err := Authorize(actor, OpUpdateOrderStatus); err != nil {
		return models.OrderView{}, err
	}
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.OrderView{}, invalid(errs)
	}

	var view models.OrderView
	err := s.store.WithinTx(ctx, func(r repositories.Repos) error {
		o, err := findOrder(ctx, r, id)
		if err != nil {
			return err
		}

		before := o.View()
		o.Status = in.Status
		if err := r.Orders().Update(ctx, &o); err != nil {
			return err
		}
		view = o.View()

		return audit(ctx, r, actor, models.AuditUpdateOrderStatus, models.AuditResourceOrder, id,
			map[string]models.OrderStatus{"status": before.Status},
			map[string]models.OrderStatus{"status": view.Status})
	})
	if err != nil {
		return models.OrderView{}, err
	}

	metrics.OrderStatusChanges.WithLabelValues(string(in.Status)).Inc()
	s.bus.Fire(ctx, EventOrderStatusChanged, view)
	return view, nil
}

// Delete removes the caller's own order while it is still PENDING.
func (s *OrderService) Delete(ctx context.Context, actor *models.User, id uint) error {
	if err := authorize(actor, rbac.ManageOwnOrders, msgOrderDeleteMine); err != nil {
		return err
	}

	var deleted models.OrderView
	err := s.store.WithinTx(ctx, func(r repositories.Repos) error {
		o, err := findOrder(ctx, r, id)
		if err != nil {
			return err
		}
		if err := requireOwner(actor, o.UserID, msgOrderDeleteMine); err != nil {
			return err
		}
		if o.Status != models.StatusPending {
			return forbidden(msgOrderNotPending)
		}
		deleted = o.View()
		return r.Orders().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.bus.Fire(ctx, EventOrderDeleted, deleted)
	return nil
}

func findOrder(ctx context.Context, r repositories.Repos, id uint) (models.Order, error) {
	o, err := r.Orders().FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.Order{}, notFound("No order with this ID %d", id)
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("find order %d: %w", id, err)
	}
	return o, nil
}

func findProduct(ctx context.Context, r repositories.Repos, id uint) (models.Product, error) {
	p, err := r.Products().FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.Product{}, notFound("Product with %d ID is not found", id)
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("find product %d: %w", id, err)
	}
	return p, nil
}
