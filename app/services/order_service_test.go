package services_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/orderdesk/app/models"
	"github.com/shashiranjanraj/orderdesk/app/services"
)

func TestOrders_CreateComputesTotal(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.staff(t, "admin")
	alice := e.signup(t, "alice")
	w := e.product(t, admin, "Widget", 100)

	v, err := e.orders.Create(ctx, alice, services.OrderInput{Quantity: 2, ProductID: w.ID})
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, v.Status)
	assert.Equal(t, int64(200), v.TotalPrice)
	assert.Equal(t, "Widget", v.Product.Name)
	assert.Equal(t, "alice", v.User.Username)
	assert.Contains(t, e.events, services.EventOrderCreated)
}

func TestOrders_CreateValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.signup(t, "alice")

	_, err := e.orders.Create(ctx, alice, services.OrderInput{Quantity: 0, ProductID: 1})
	assert.ErrorIs(t, err, services.ErrValidation)
	assert.Equal(t, http.StatusUnprocessableEntity, services.Status(err))

	_, err = e.orders.Create(ctx, alice, services.OrderInput{Quantity: 1, ProductID: 404})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestOrders_DeleteOnlyWhilePending(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.staff(t, "admin")
	alice := e.signup(t, "alice")
	w := e.product(t, admin, "Widget", 100)

	pending, err := e.orders.Create(ctx, alice, services.OrderInput{Quantity: 1, ProductID: w.ID})
	require.NoError(t, err)
	require.NoError(t, e.orders.Delete(ctx, alice, pending.ID))

	_, err = e.orders.GetMine(ctx, alice, pending.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	shipped, err := e.orders.Create(ctx, alice, services.OrderInput{Quantity: 1, ProductID: w.ID})
	require.NoError(t, err)
	_, err = e.orders.UpdateStatus(ctx, admin, shipped.ID, services.StatusInput{Status: models.StatusInTransit})
	require.NoError(t, err)

	err = e.orders.Delete(ctx, alice, shipped.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)
	assert.Equal(t, "You can not delete in_transit and delivered orders", err.Error())

	still, err := e.orders.GetMine(ctx, alice, shipped.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInTransit, still.Status)
}

func TestOrders_GetMineDoesNotLeak(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.staff(t, "admin")
	alice := e.signup(t, "alice")
	bob := e.signup(t, "bob")
	w := e.product(t, admin, "Widget", 100)

	o, err := e.orders.Create(ctx, alice, services.OrderInput{Quantity: 1, ProductID: w.ID})
	require.NoError(t, err)

	_, notMine := e.orders.GetMine(ctx, bob, o.ID)
	_, missing := e.orders.GetMine(ctx, bob, 9999)
	assert.ErrorIs(t, notMine, services.ErrNotFound)
	assert.ErrorIs(t, missing, services.ErrNotFound)

	mine, err := e.orders.ListMine(ctx, bob)
	require.NoError(t, err)
	assert.NotNil(t, mine)
	assert.Empty(t, mine)

	all, err := e.orders.ListAll(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = e.orders.ListAll(ctx, alice)
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = e.orders.Get(ctx, alice, o.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)
}

func TestOrders_UpdateOwnership(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.staff(t, "admin")
	alice := e.signup(t, "alice")
	bob := e.signup(t, "bob")
	w := e.product(t, admin, "Widget", 100)
	g := e.product(t, admin, "Gadget", 30)

	o, err := e.orders.Create(ctx, alice, services.OrderInput{Quantity: 1, ProductID: w.ID})
	require.NoError(t, err)

	_, err = e.orders.Update(ctx, bob, 9999, services.OrderInput{Quantity: 1, ProductID: w.ID})
	assert.ErrorIs(t, err, services.ErrNotFound, "missing id is reported before ownership")

	_, err = e.orders.Update(ctx, bob, o.ID, services.OrderInput{Quantity: 1, ProductID: w.ID})
	assert.ErrorIs(t, err, services.ErrForbidden)

	assert.ErrorIs(t, e.orders.Delete(ctx, bob, o.ID), services.ErrForbidden)

	v, err := e.orders.Update(ctx, alice, o.ID, services.OrderInput{Quantity: 3, ProductID: g.ID})
	require.NoError(t, err)
	assert.Equal(t, "Gadget", v.Product.Name)
	assert.Equal(t, int64(90), v.TotalPrice)
	assert.Equal(t, models.StatusPending, v.Status)
}

func TestOrders_UpdateChecksOwnershipBeforeInput(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.staff(t, "admin")
	alice := e.signup(t, "alice")
	bob := e.signup(t, "bob")
	w := e.product(t, admin, "Widget", 100)

	o, err := e.orders.Create(ctx, alice, services.OrderInput{Quantity: 1, ProductID: w.ID})
	require.NoError(t, err)

	_, err = e.orders.Update(ctx, bob, o.ID, services.OrderInput{Quantity: 0})
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = e.orders.Update(ctx, bob, 9999, services.OrderInput{Quantity: 0})
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = e.orders.Update(ctx, alice, o.ID, services.OrderInput{Quantity: 0, ProductID: w.ID})
	assert.ErrorIs(t, err, services.ErrValidation)
	assert.Equal(t, http.StatusUnprocessableEntity, services.Status(err))
}

func TestOrders_UpdateStatus(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.staff(t, "admin")
	alice := e.signup(t, "alice")
	w := e.product(t, admin, "Widget", 100)

	o, err := e.orders.Create(ctx, alice, services.OrderInput{Quantity: 1, ProductID: w.ID})
	require.NoError(t, err)

	_, err = e.orders.UpdateStatus(ctx, alice, o.ID, services.StatusInput{Status: models.StatusDelivered})
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = e.orders.UpdateStatus(ctx, admin, o.ID, services.StatusInput{Status: "LOST"})
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = e.orders.UpdateStatus(ctx, admin, 9999, services.StatusInput{Status: models.StatusDelivered})
	assert.ErrorIs(t, err, services.ErrNotFound)

	v, err := e.orders.UpdateStatus(ctx, admin, o.ID, services.StatusInput{Status: models.StatusDelivered})
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, v.Status)

	// backwards transitions are allowed
	v, err = e.orders.UpdateStatus(ctx, admin, o.ID, services.StatusInput{Status: models.StatusPending})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, v.Status)

	logs, err := e.store.AuditLogs().ListByResource(ctx, models.AuditResourceOrder, o.ID)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, models.AuditUpdateOrderStatus, logs[0].Action)
	assert.JSONEq(t, `{"status":"DELIVERED"}`, logs[0].BeforeJSON)
	assert.JSONEq(t, `{"status":"PENDING"}`, logs[0].AfterJSON)
	assert.Contains(t, e.events, services.EventOrderStatusChanged)
}
