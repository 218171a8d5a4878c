package seeders

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/orderdesk/app/models"
	"github.com/shashiranjanraj/orderdesk/app/repositories"
	"github.com/shashiranjanraj/orderdesk/config"
	"github.com/shashiranjanraj/orderdesk/pkg/auth"
)

func init() {
	Register("staff", SeedStaff)
	Register("products", SeedProducts)
}

// SeedStaff makes sure the account named by SEED_STAFF_USERNAME exists and
// is staff. It does nothing when the username is unset.
func SeedStaff(db *gorm.DB) error {
	username := config.Get("SEED_STAFF_USERNAME", "")
	if username == "" {
		return nil
	}

	ctx := context.Background()
	return repositories.NewStore(db).WithinTx(ctx, func(r repositories.Repos) error {
		user, err := r.Users().FindByUsername(ctx, username)
		if err == nil {
			if user.IsStaff && user.IsActive {
				return nil
			}
			user.IsStaff, user.IsActive = true, true
			return r.Users().Update(ctx, &user)
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}

		email := config.Get("SEED_STAFF_EMAIL", "")
		password := config.Get("SEED_STAFF_PASSWORD", "")
		if email == "" || password == "" {
			return fmt.Errorf("SEED_STAFF_EMAIL and SEED_STAFF_PASSWORD are required to create %q", username)
		}

		hash, err := auth.NewPasswordHasher(config.BcryptCost()).Hash(password)
		if err != nil {
			return err
		}
		return r.Users().Create(ctx, &models.User{
			Username: username,
			Email:    email,
			Password: hash,
			IsStaff:  true,
			IsActive: true,
		})
	})
}

var sampleProducts = []models.Product{
	{Name: "Widget", Price: 100},
	{Name: "Gadget", Price: 250},
	{Name: "Gizmo", Price: 75},
}

// SeedProducts fills an empty catalogue with a few sample products.
func SeedProducts(db *gorm.DB) error {
	ctx := context.Background()
	products := repositories.NewStore(db).Products()

	existing, err := products.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, p := range sampleProducts {
		p := p
		if err := products.Create(ctx, &p); err != nil {
			return err
		}
	}
	return nil
}
