// Package rbac holds the role model and the action policy shared by every
// service that gates access by role.
package rbac

// Role is the explicit role of an authenticated user.
type Role string

const (
	Customer Role = "customer"
	Staff    Role = "staff"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == Customer || r == Staff
}

// Action names something a caller may attempt.
type Action string

const (
	ManageCatalog     Action = "catalog.manage"
	ViewAllOrders     Action = "orders.view_all"
	UpdateOrderStatus Action = "orders.update_status"
	PlaceOrder        Action = "orders.place"
	ManageOwnOrders   Action = "orders.manage_own"
)

var policy = map[Action]map[Role]bool{
	ManageCatalog:     {Staff: true},
	ViewAllOrders:     {Staff: true},
	UpdateOrderStatus: {Staff: true},
	PlaceOrder:        {Staff: true, Customer: true},
	ManageOwnOrders:   {Staff: true, Customer: true},
}

// Can reports whether role may perform action. Unknown roles and unknown
// actions are denied.
func Can(role Role, action Action) bool {
	return policy[action][role]
}

// Owns reports whether actorID is the owner recorded on a resource.
// A zero owner never matches.
func Owns(actorID, ownerID uint) bool {
	return ownerID != 0 && actorID == ownerID
}
