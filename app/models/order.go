package models

import "time"

// OrderStatus is the delivery state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusInTransit OrderStatus = "IN_TRANSIT"
	StatusDelivered OrderStatus = "DELIVERED"
)

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInTransit, StatusDelivered:
		return true
	}
	return false
}

// Order links one user to one product. Total price is never stored.
type Order struct {
	ID        uint        `gorm:"primaryKey"                                  json:"id"`
	Quantity  int64       `gorm:"not null"                                    json:"quantity"`
	Status    OrderStatus `gorm:"size:20;not null;default:PENDING;index"      json:"status"`
	UserID    uint        `gorm:"not null;index"                              json:"user_id"`
	ProductID uint        `gorm:"not null;index"                              json:"product_id"`
	User      User        `gorm:"constraint:OnDelete:RESTRICT;"               json:"-"`
	Product   Product     `gorm:"constraint:OnDelete:RESTRICT;"               json:"-"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// TotalPrice is quantity × current product price.
func (o Order) TotalPrice() int64 {
	return o.Quantity * o.Product.Price
}

// OrderView is the serialised form returned to clients.
type OrderView struct {
	ID         uint           `json:"id"`
	Quantity   int64          `json:"quantity"`
	Status     OrderStatus    `json:"order_statuses"`
	TotalPrice int64          `json:"total_price"`
	Product    ProductSummary `json:"product"`
	User       UserSummary    `json:"user"`
}

// View expects User and Product to be loaded.
func (o Order) View() OrderView {
	return OrderView{
		ID:         o.ID,
		Quantity:   o.Quantity,
		Status:     o.Status,
		TotalPrice: o.TotalPrice(),
		Product:    o.Product.Summary(),
		User:       o.User.Summary(),
	}
}

// Views converts a slice, never returning nil.
func Views(orders []Order) []OrderView {
	out := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.View())
	}
	return out
}
