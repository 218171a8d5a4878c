package models

import (
	"time"

	"github.com/shashiranjanraj/orderdesk/pkg/rbac"
)

// User is an account that can place orders. Staff users also manage the
// catalog and see every order.
type User struct {
	ID        uint      `gorm:"primaryKey"                   json:"id"`
	Username  string    `gorm:"size:25;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"size:70;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:255;not null"            json:"-"` // bcrypt hash, never serialised
	IsStaff   bool      `gorm:"not null;default:false"       json:"is_staff"`
	IsActive  bool      `gorm:"not null;default:false"       json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Role derives the explicit role from the staff flag.
func (u *User) Role() rbac.Role {
	if u.IsStaff {
		return rbac.Staff
	}
	return rbac.Customer
}

// UserSummary is the public projection embedded in order views.
type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, Email: u.Email}
}
