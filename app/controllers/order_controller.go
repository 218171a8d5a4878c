package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/orderdesk/app/services"
	"github.com/shashiranjanraj/orderdesk/pkg/ctx"
)

type OrderController struct {
	orders *services.OrderService
	ids    Identity
}

func NewOrderController(orders *services.OrderService, ids Identity) *OrderController {
	return &OrderController{orders: orders, ids: ids}
}

func (o *OrderController) Welcome(c *ctx.Context) {
	if _, ok := currentUser(c, o.ids); !ok {
		return
	}
	c.Message("Order routes")
}

func (o *OrderController) Make(c *ctx.Context) {
	user, ok := currentUser(c, o.ids)
	if !ok {
		return
	}
	var in services.OrderInput
	if !c.DecodeJSON(&in) {
		return
	}

	view, err := o.orders.Create(c.Context(), user, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Respond(http.StatusCreated, "Order is created successfully", view)
}

func (o *OrderController) List(c *ctx.Context) {
	user, ok := staffUser(c, o.ids, services.OpListOrders)
	if !ok {
		return
	}
	views, err := o.orders.ListAll(c.Context(), user)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(views)
}

func (o *OrderController) Show(c *ctx.Context) {
	user, ok := staffUser(c, o.ids, services.OpShowOrder)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	view, err := o.orders.Get(c.Context(), user, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(view)
}

func (o *OrderController) Mine(c *ctx.Context) {
	user, ok := currentUser(c, o.ids)
	if !ok {
		return
	}
	views, err := o.orders.ListMine(c.Context(), user)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(views)
}

func (o *OrderController) ShowMine(c *ctx.Context) {
	user, ok := currentUser(c, o.ids)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	view, err := o.orders.GetMine(c.Context(), user, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(view)
}

func (o *OrderController) Update(c *ctx.Context) {
	user, ok := currentUser(c, o.ids)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in services.OrderInput
	if !c.DecodeJSON(&in) {
		return
	}

	view, err := o.orders.Update(c.Context(), user, id, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Respond(http.StatusOK, "Order is updated successfully", view)
}

func (o *OrderController) UpdateStatus(c *ctx.Context) {
	user, ok := staffUser(c, o.ids, services.OpUpdateOrderStatus)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in services.StatusInput
	if !c.DecodeJSON(&in) {
		return
	}

	view, err := o.orders.UpdateStatus(c.Context(), user, id, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Respond(http.StatusOK, "User's order is updated successfully", view)
}

func (o *OrderController) Delete(c *ctx.Context) {
	user, ok := currentUser(c, o.ids)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := o.orders.Delete(c.Context(), user, id); err != nil {
		fail(c, err)
		return
	}
	c.Message("User's order is deleted successfully")
}
