package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/shashiranjanraj/orderdesk/app/models"
	"github.com/shashiranjanraj/orderdesk/app/repositories"
	"github.com/shashiranjanraj/orderdesk/app/services"
	"github.com/shashiranjanraj/orderdesk/internal/testdb"
	"github.com/shashiranjanraj/orderdesk/pkg/auth"
	"github.com/shashiranjanraj/orderdesk/pkg/cache"
	"github.com/shashiranjanraj/orderdesk/pkg/event"
)

type env struct {
	store   *repositories.GormStore
	tokens  *auth.TokenService
	bus     *event.Bus
	events  []string
	auth    *services.AuthService
	catalog *services.CatalogService
	orders  *services.OrderService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	e := &env{
		store:  repositories.NewStore(testdb.New(t)),
		tokens: auth.NewTokenService("test-secret", time.Hour, 72*time.Hour, nil),
		bus:    event.NewBus(),
	}
	e.bus.Listen(event.Wildcard, func(_ context.Context, ev event.Event) {
		e.events = append(e.events, ev.Name)
	})
	e.auth = services.NewAuthService(e.store, e.tokens, auth.NewPasswordHasher(bcrypt.MinCost))
	e.catalog = services.NewCatalogService(e.store, cache.NewMemory(), time.Minute, e.bus)
	e.orders = services.NewOrderService(e.store, e.bus)
	return e
}

func (e *env) signup(t *testing.T, username string) *models.User {
	t.Helper()
	u, err := e.auth.Register(context.Background(), services.SignupInput{
		Username: username,
		Email:    username + "@x.com",
		Password: "pw12345",
	})
	require.NoError(t, err)
	return &u
}

func (e *env) staff(t *testing.T, username string) *models.User {
	t.Helper()
	e.signup(t, username)
	u, err := e.auth.Promote(context.Background(), username)
	require.NoError(t, err)
	return &u
}

func (e *env) product(t *testing.T, actor *models.User, name string, price int64) models.Product {
	t.Helper()
	p, err := e.catalog.Create(context.Background(), actor, services.ProductInput{Name: name, Price: &price})
	require.NoError(t, err)
	return p
}
