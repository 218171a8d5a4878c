package services

import (
	"github.com/shashiranjanraj/orderdesk/app/models"
	"github.com/shashiranjanraj/orderdesk/pkg/rbac"
)

// Operation names a role-gated service call.
type Operation string

const (
	OpCreateProduct     Operation = "product.create"
	OpListProducts      Operation = "product.list"
	OpShowProduct       Operation = "product.show"
	OpUpdateProduct     Operation = "product.update"
	OpDeleteProduct     Operation = "product.delete"
	OpListOrders        Operation = "order.list"
	OpShowOrder         Operation = "order.show"
	OpUpdateOrderStatus Operation = "order.update_status"
)

type gate struct {
	action rbac.Action
	msg    string
}

var gates = map[Operation]gate{
	OpCreateProduct:     {rbac.ManageCatalog, msgCatalogCreate},
	OpListProducts:      {rbac.ManageCatalog, msgCatalogList},
	OpShowProduct:       {rbac.ManageCatalog, msgCatalogGet},
	OpUpdateProduct:     {rbac.ManageCatalog, msgCatalogUpdate},
	OpDeleteProduct:     {rbac.ManageCatalog, msgCatalogDelete},
	OpListOrders:        {rbac.ViewAllOrders, msgOrdersListAll},
	OpShowOrder:         {rbac.ViewAllOrders, msgOrdersGetAny},
	OpUpdateOrderStatus: {rbac.UpdateOrderStatus, msgOrdersStatus},
}

// Authorize applies the role gate of op. The services run it themselves;
// handlers call it before reading the request so a caller without the role
// is told Forbidden whatever the body or path holds.
func Authorize(actor *models.User, op Operation) error {
	g, ok := gates[op]
	if !ok {
		return forbidden("Operation is not allowed")
	}
	return authorize(actor, g.action, g.msg)
}

// authorize is the single role gate used by every manager. It runs before
// any lookup so a forbidden caller learns nothing about existence.
func authorize(actor *models.User, action rbac.Action, msg string) error {
	if actor == nil || !rbac.Can(actor.Role(), action) {
		return forbidden(msg)
	}
	return nil
}

// requireOwner fails with msg unless actor owns the resource.
func requireOwner(actor *models.User, ownerID uint, msg string) error {
	if actor == nil || !rbac.Owns(actor.ID, ownerID) {
		return forbidden(msg)
	}
	return nil
}
