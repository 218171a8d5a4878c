package models

import "time"

// Product represents a product in the catalogue. Price is in the smallest
// currency unit.
type Product struct {
	ID        uint      `gorm:"primaryKey"                json:"id"`
	Name      string    `gorm:"size:100;not null;index"   json:"name"`
	Price     int64     `gorm:"not null;default:0"        json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductSummary is the projection embedded in order views.
type ProductSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

func (p Product) Summary() ProductSummary {
	return ProductSummary{ID: p.ID, Name: p.Name, Price: p.Price}
}
